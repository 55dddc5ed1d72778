// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ketrace

// StackWalk category opcodes.
const stackWalkOpStack = 32

func init() {
	register(ProviderStackWalk, stackWalkOpStack, 2, "Stack", decodeStackWalkV2)
}

// decodeStackWalkV2 decodes StackWalk/Stack: a fixed header followed
// by a variable-length run of 8-byte addresses that always occupy 8
// bytes apiece regardless of the bitness flag.
func decodeStackWalkV2(d *Decoder, is64 bool) (*Struct, error) {
	s := NewStruct()

	eventTimeStamp, err := d.U64()
	if err != nil {
		return nil, err
	}
	s.AddField("EventTimeStamp", MakeU64(eventTimeStamp))

	stackProcess, err := d.U32()
	if err != nil {
		return nil, err
	}
	s.AddField("StackProcess", MakeU32(stackProcess))

	stackThread, err := d.U32()
	if err != nil {
		return nil, err
	}
	s.AddField("StackThread", MakeU32(stackThread))

	frames := NewArray()
	for d.RemainingBytes() >= 8 {
		addr, err := d.U64()
		if err != nil {
			return nil, err
		}
		frames.Append(MakeU64(addr))
	}
	s.AddField("Stack", MakeArray(frames))

	return s, nil
}
