// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ketrace

// PerfInfo category opcodes.
const (
	perfInfoOpSampleProf      = 46
	perfInfoOpDebuggerEnabled = 58
)

func init() {
	register(ProviderPerfInfo, perfInfoOpSampleProf, 2, "SampleProf", decodeSampleProfV2)
	register(ProviderPerfInfo, perfInfoOpDebuggerEnabled, 2, "DebuggerEnabled", decodeDebuggerEnabledV2)
}

// decodeSampleProfV2 decodes PerfInfo/SampleProf: the instruction
// pointer sampled, the thread it belongs to, and the PMU counter
// overflow count.
func decodeSampleProfV2(d *Decoder, is64 bool) (*Struct, error) {
	s := NewStruct()

	ip, err := d.Pointer(is64)
	if err != nil {
		return nil, err
	}
	s.AddField("InstructionPointer", MakeU64(ip))

	threadID, err := d.U32()
	if err != nil {
		return nil, err
	}
	s.AddField("ThreadId", MakeU32(threadID))

	count, err := d.U16()
	if err != nil {
		return nil, err
	}
	s.AddField("Count", MakeU16(count))

	return s, nil
}

// decodeDebuggerEnabledV2 decodes PerfInfo/DebuggerEnabled, which
// carries no fields at all. Both a nil and a zero-length payload must
// decode successfully to an empty Struct.
func decodeDebuggerEnabledV2(d *Decoder, is64 bool) (*Struct, error) {
	return NewStruct(), nil
}
