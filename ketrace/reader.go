// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ketrace

import "errors"

// ErrReader wraps a failure from a TraceReader to open or advance a
// trace source. The parser aborts on this error; it is the only error
// category that does.
var ErrReader = errors.New("ketrace: reader error")

// Record is one raw event as reported by a TraceReader, before dispatch
// decoding. Provider, Opcode, Version, and Is64 select the decoder;
// ProcessID, ThreadID, and ProcessorNumber become header fields;
// RawTimestamp feeds the parser's timestamp conversion; Payload is the
// opaque byte range the dispatch table decodes.
type Record struct {
	Provider        GUID
	Opcode          uint8
	Version         uint8
	Is64            bool
	RawTimestamp    uint64
	ProcessID       uint32
	ThreadID        uint32
	ProcessorNumber uint8
	Payload         []byte
}

// TraceReader is the external collaborator that opens a trace file and
// iterates its records. The file format itself is out of scope for
// this package: a TraceReader might be backed by an ETL parser, a
// replay log, or a test fixture.
//
// Open reports the reader's start timestamp and the performance
// counter frequency (ticks per second) used to convert RawTimestamp
// values into absolute time.
//
// Next returns the next record, or ok == false when the trace is
// exhausted. A non-nil error aborts the parse with ErrReader.
type TraceReader interface {
	Open(path string) (startTime uint64, perfFreq uint64, err error)
	Next() (rec Record, ok bool, err error)
	Close() error
}
