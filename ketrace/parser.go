// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ketrace

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrDuplicateSource is returned by AddTraceSource if it is called
// more than once on the same Parser: a Parser reads a single trace
// source.
var ErrDuplicateSource = errors.New("ketrace: trace source already set")

// ErrBadExtension is returned by AddTraceSource for a path that does
// not carry the expected trace file extension.
var ErrBadExtension = errors.New("ketrace: unexpected trace file extension")

// traceExtension is the expected suffix for a trace source path.
const traceExtension = ".etl"

// A Callback receives a borrow of each assembled Event, synchronously,
// in record order. It must not retain the Event beyond the call unless
// it deep-copies the trees it needs.
type Callback func(*Event)

// Parser drives a single TraceReader end to end, converting its raw
// records into Events and invoking a user Callback for each one. A
// Parser is single-use: construct one per trace source.
type Parser struct {
	reader TraceReader
	path   string
	source bool

	// Strings, if set, interns each event's category and operation
	// name as it is produced. It is nil by default; the header Struct
	// carries the plain string either way.
	Strings *Flyweight
}

// NewParser constructs a Parser around reader. reader is not opened
// until AddTraceSource.
func NewParser(reader TraceReader) *Parser {
	return &Parser{reader: reader}
}

// AddTraceSource registers the single trace file this Parser will
// read. Calling it twice returns ErrDuplicateSource and leaves the
// Parser unchanged.
func (p *Parser) AddTraceSource(path string) error {
	if p.source {
		return ErrDuplicateSource
	}
	if !strings.EqualFold(filepath.Ext(path), traceExtension) {
		return fmt.Errorf("%w: %s", ErrBadExtension, path)
	}
	p.path = path
	p.source = true
	return nil
}

// Parse opens the registered trace source and drives it to
// completion, calling cb for each successfully decoded event. Events
// whose (provider, opcode, version) triple is unrecognized, or whose
// payload is truncated mid-field, are silently dropped; Parse
// continues with the next record. A reader failure to open or advance
// aborts Parse and returns an error wrapping ErrReader.
//
// Timestamp conversion: the reader-reported StartTime and PerfFreq are
// recorded on Open; the first record's raw timestamp anchors T0_raw.
// Every record's absolute timestamp is then
//
//	T = T0_system + (Traw - T0_raw) * P
//
// where P = 10,000,000.0 / PerfFreq converts raw ticks to
// 100-nanosecond units, matching the reader's reported StartTime
// scale. The multiply is done in floating point and truncated to an
// integer tick count.
func (p *Parser) Parse(cb Callback) error {
	if !p.source {
		return fmt.Errorf("ketrace: Parse called with no trace source")
	}

	startTime, perfFreq, err := p.reader.Open(p.path)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", ErrReader, p.path, err)
	}
	defer p.reader.Close()

	period := 10000000.0 / float64(perfFreq)

	var haveFirst bool
	var t0Raw uint64

	for {
		rec, ok, err := p.reader.Next()
		if err != nil {
			return fmt.Errorf("%w: reading %s: %v", ErrReader, p.path, err)
		}
		if !ok {
			return nil
		}

		if !haveFirst {
			t0Raw = rec.RawTimestamp
			haveFirst = true
		}
		delta := float64(rec.RawTimestamp-t0Raw) * period
		timestamp := startTime + uint64(delta)

		category, operation, payload, ok := Decode(rec.Provider, rec.Opcode, rec.Version, rec.Is64, rec.Payload)
		if !ok {
			continue
		}
		if p.Strings != nil {
			p.Strings.Intern(category)
			p.Strings.Intern(operation)
		}

		header := NewStruct()
		header.AddField(HeaderCategory, MakeString(category))
		header.AddField(HeaderOperation, MakeString(operation))
		header.AddField(HeaderProcessID, MakeU64(uint64(rec.ProcessID)))
		header.AddField(HeaderThreadID, MakeU64(uint64(rec.ThreadID)))
		header.AddField(HeaderProcessorNumber, MakeU8(rec.ProcessorNumber))

		event := NewEvent(timestamp, header, payload)
		cb(event)
	}
}
