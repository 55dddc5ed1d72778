// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ketrace decodes kernel event traces into a stream of
// strongly-typed, self-describing events.
//
// Decoding a trace starts with a Parser: call AddTraceSource to give it a
// trace file, then Parse with a callback to receive each decoded Event. The
// payload of each Event is produced by a large table, keyed by
// (provider, opcode, version, bitness), that reproduces the bit-exact field
// layouts of the underlying instrumentation facility.
package ketrace // import "github.com/go-ketrace/ketrace/ketrace"
