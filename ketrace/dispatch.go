// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ketrace

// A decodeFunc consumes a payload decoder and produces a Struct of
// named fields. Every registered decoder has this uniform signature;
// dispatch is a flat map from the full (provider, opcode, version)
// tuple to a decoder function, rather than a switch over opcode and
// version.
type decodeFunc func(d *Decoder, is64 bool) (*Struct, error)

type dispatchKey struct {
	provider GUID
	opcode   uint8
	version  uint8
}

type dispatchEntry struct {
	operation string
	decode    decodeFunc
}

// dispatchTable is the closed set of (provider, opcode, version)
// tuples this package knows how to decode. register is called from
// each category's events_*.go file via init.
var dispatchTable = make(map[dispatchKey]dispatchEntry)

// register adds a decoder for (provider, opcode, version) to the
// dispatch table. It panics on a duplicate registration, which would
// indicate a bug in the table itself, not a runtime condition.
func register(provider GUID, opcode, version uint8, operation string, fn decodeFunc) {
	key := dispatchKey{provider, opcode, version}
	if _, dup := dispatchTable[key]; dup {
		panic("ketrace: duplicate dispatch registration")
	}
	dispatchTable[key] = dispatchEntry{operation, fn}
}

// Decode maps (provider, opcode, version, is64) plus a raw payload to
// a (category, operation, fields) triple.
//
// ok is false if the provider is not in the closed category set, if
// (provider, opcode, version) has no registered layout, or if decoding
// failed partway through the payload (a truncated read). In every
// false case the caller's policy is to drop the event and continue;
// Decode itself does no logging, since per-event failures here are
// expected to be frequent and would be too noisy to log individually.
func Decode(provider GUID, opcode, version uint8, is64 bool, payload []byte) (category, operation string, fields *Struct, ok bool) {
	category, ok = categoryFor(provider)
	if !ok {
		return "", "", nil, false
	}

	entry, ok := dispatchTable[dispatchKey{provider, opcode, version}]
	if !ok {
		return "", "", nil, false
	}

	d := NewDecoder(payload)
	fields, err := entry.decode(d, is64)
	if err != nil {
		return "", "", nil, false
	}
	return category, entry.operation, fields, true
}
