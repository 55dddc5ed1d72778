// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ketrace

// Thread category opcodes.
const (
	threadOpStart   = 1
	threadOpEnd     = 2
	threadOpDCStart = 3
	threadOpDCEnd   = 4
)

func init() {
	register(ProviderThread, threadOpStart, 2, "Start", decodeThreadV2)
	register(ProviderThread, threadOpEnd, 2, "End", decodeThreadV2)
	register(ProviderThread, threadOpDCStart, 2, "DCStart", decodeThreadV2)
	register(ProviderThread, threadOpDCEnd, 2, "DCEnd", decodeThreadV2)
}

// decodeThreadV2 decodes Thread/Start, Thread/End, Thread/DCStart, and
// Thread/DCEnd: process and thread ids followed by a run of
// pointer-width fields describing the thread's stack and entry point.
func decodeThreadV2(d *Decoder, is64 bool) (*Struct, error) {
	s := NewStruct()

	processID, err := d.U32()
	if err != nil {
		return nil, err
	}
	s.AddField("ProcessId", MakeU32(processID))

	threadID, err := d.U32()
	if err != nil {
		return nil, err
	}
	s.AddField("ThreadId", MakeU32(threadID))

	for _, name := range []string{
		"StackBase", "StackLimit", "UserStackBase", "UserStackLimit",
		"StartAddr", "Win32StartAddr", "TebBase",
	} {
		v, err := d.Pointer(is64)
		if err != nil {
			return nil, err
		}
		s.AddField(name, MakeU64(v))
	}

	subProcessTag, err := d.U32()
	if err != nil {
		return nil, err
	}
	s.AddField("SubProcessTag", MakeU32(subProcessTag))

	return s, nil
}
