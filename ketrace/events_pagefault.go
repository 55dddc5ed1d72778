// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ketrace

// PageFault category opcodes.
const (
	pageFaultOpHardFault = 32
)

func init() {
	register(ProviderPageFault, pageFaultOpHardFault, 2, "HardFault", decodeHardFaultV2)
}

// decodeHardFaultV2 decodes PageFault/HardFault: the I/O time the page
// took to read in, the file offset it was read from, the faulting
// virtual address, the backing file object, and the thread that took
// the fault.
func decodeHardFaultV2(d *Decoder, is64 bool) (*Struct, error) {
	s := NewStruct()

	initialTime, err := d.U64()
	if err != nil {
		return nil, err
	}
	s.AddField("InitialTime", MakeU64(initialTime))

	readOffset, err := d.U64()
	if err != nil {
		return nil, err
	}
	s.AddField("ReadOffset", MakeU64(readOffset))

	for _, name := range []string{"VirtualAddress", "FileObject"} {
		v, err := d.Pointer(is64)
		if err != nil {
			return nil, err
		}
		s.AddField(name, MakeU64(v))
	}

	threadID, err := d.U32()
	if err != nil {
		return nil, err
	}
	s.AddField("TThreadId", MakeU32(threadID))

	byteCount, err := d.U32()
	if err != nil {
		return nil, err
	}
	s.AddField("ByteCount", MakeU32(byteCount))

	return s, nil
}
