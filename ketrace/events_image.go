// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ketrace

// Image category opcodes.
const (
	imageOpLoad       = 10
	imageOpUnload     = 2
	imageOpDCStart    = 3
	imageOpDCEnd      = 4
	imageOpKernelBase = 34
)

func init() {
	register(ProviderImage, imageOpLoad, 2, "Load", decodeImageV2)
	register(ProviderImage, imageOpUnload, 2, "Unload", decodeImageV2)
	register(ProviderImage, imageOpDCStart, 2, "DCStart", decodeImageV2)
	register(ProviderImage, imageOpDCEnd, 2, "DCEnd", decodeImageV2)
	register(ProviderImage, imageOpKernelBase, 1, "KernelBase", decodeImageKernelBase)
}

// decodeImageV2 decodes the Image_Load/Unload/DCStart/DCEnd V2 layout
// shared by all four opcodes: a fixed run of pointer-width and u32
// fields followed by a NUL-terminated wide filename.
func decodeImageV2(d *Decoder, is64 bool) (*Struct, error) {
	s := NewStruct()

	baseAddress, err := d.Pointer(is64)
	if err != nil {
		return nil, err
	}
	s.AddField("BaseAddress", MakeU64(baseAddress))

	moduleSize, err := d.Pointer(is64)
	if err != nil {
		return nil, err
	}
	s.AddField("ModuleSize", MakeU64(moduleSize))

	processID, err := d.U32()
	if err != nil {
		return nil, err
	}
	s.AddField("ProcessId", MakeU32(processID))

	checksum, err := d.U32()
	if err != nil {
		return nil, err
	}
	s.AddField("ImageCheckSum", MakeU32(checksum))

	timeDateStamp, err := d.U32()
	if err != nil {
		return nil, err
	}
	s.AddField("TimeDateStamp", MakeU32(timeDateStamp))

	reserved0, err := d.U32()
	if err != nil {
		return nil, err
	}
	s.AddField("Reserved0", MakeU32(reserved0))

	defaultBase, err := d.Pointer(is64)
	if err != nil {
		return nil, err
	}
	s.AddField("DefaultBase", MakeU64(defaultBase))

	for _, name := range []string{"Reserved1", "Reserved2", "Reserved3", "Reserved4"} {
		v, err := d.U32()
		if err != nil {
			return nil, err
		}
		s.AddField(name, MakeU32(v))
	}

	filename, err := d.W16String()
	if err != nil {
		return nil, err
	}
	s.AddField("ImageFileName", MakeWString(filename))

	return s, nil
}

// decodeImageKernelBase decodes Image/KernelBase. The state sink
// treats this operation as a no-op, but the decoder still produces a
// single field.
func decodeImageKernelBase(d *Decoder, is64 bool) (*Struct, error) {
	s := NewStruct()
	baseAddress, err := d.Pointer(is64)
	if err != nil {
		return nil, err
	}
	s.AddField("BaseAddress", MakeU64(baseAddress))
	return s, nil
}
