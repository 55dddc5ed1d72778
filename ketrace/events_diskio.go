// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ketrace

// DiskIO category opcodes.
const (
	diskIOOpRead  = 10
	diskIOOpWrite = 11
)

func init() {
	register(ProviderDiskIO, diskIOOpRead, 2, "Read", decodeDiskIOV2)
	register(ProviderDiskIO, diskIOOpWrite, 2, "Write", decodeDiskIOV2)
}

// decodeDiskIOV2 decodes DiskIO/Read and DiskIO/Write: a fully
// fixed-width layout with no variable tail, which exercises the
// pointer-width composite decoder without any string fields.
func decodeDiskIOV2(d *Decoder, is64 bool) (*Struct, error) {
	s := NewStruct()

	diskNumber, err := d.U32()
	if err != nil {
		return nil, err
	}
	s.AddField("DiskNumber", MakeU32(diskNumber))

	irpFlags, err := d.U32()
	if err != nil {
		return nil, err
	}
	s.AddField("IrpFlags", MakeU32(irpFlags))

	transferSize, err := d.U32()
	if err != nil {
		return nil, err
	}
	s.AddField("TransferSize", MakeU32(transferSize))

	reserved, err := d.U32()
	if err != nil {
		return nil, err
	}
	s.AddField("Reserved", MakeU32(reserved))

	byteOffset, err := d.U64()
	if err != nil {
		return nil, err
	}
	s.AddField("ByteOffset", MakeU64(byteOffset))

	for _, name := range []string{"FileObject", "Irp"} {
		v, err := d.Pointer(is64)
		if err != nil {
			return nil, err
		}
		s.AddField(name, MakeU64(v))
	}

	highResResponseTime, err := d.U64()
	if err != nil {
		return nil, err
	}
	s.AddField("HighResResponseTime", MakeU64(highResResponseTime))

	return s, nil
}
