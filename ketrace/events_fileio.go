// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ketrace

// FileIO category opcodes.
const (
	fileIOOpName    = 0
	fileIOOpCreate  = 32
	fileIOOpCleanup = 35
	fileIOOpClose   = 36
)

func init() {
	register(ProviderFileIO, fileIOOpName, 2, "Name", decodeFileIONameV2)
	register(ProviderFileIO, fileIOOpCreate, 2, "Create", decodeFileIOCreateV2)
	register(ProviderFileIO, fileIOOpCleanup, 2, "Cleanup", decodeFileIOSimpleV2)
	register(ProviderFileIO, fileIOOpClose, 2, "Close", decodeFileIOSimpleV2)
}

// decodeFileIONameV2 decodes FileIO/Name: a file object handle and the
// file's wide-string path.
func decodeFileIONameV2(d *Decoder, is64 bool) (*Struct, error) {
	s := NewStruct()

	fileObject, err := d.Pointer(is64)
	if err != nil {
		return nil, err
	}
	s.AddField("FileObject", MakeU64(fileObject))

	fileName, err := d.W16String()
	if err != nil {
		return nil, err
	}
	s.AddField("FileName", MakeWString(fileName))

	return s, nil
}

// decodeFileIOCreateV2 decodes FileIO/Create: the IRP and file object
// handles, the path, and the create disposition flags.
func decodeFileIOCreateV2(d *Decoder, is64 bool) (*Struct, error) {
	s := NewStruct()

	for _, name := range []string{"IrpPtr", "FileObject"} {
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
	s.AddField("TTID", MakeU32(threadID))

	fileName, err := d.W16String()
	if err != nil {
		return nil, err
	}
	s.AddField("FileName", MakeWString(fileName))

	for _, name := range []string{"CreateOptions", "FileAttributes", "ShareAccess"} {
		v, err := d.U32()
		if err != nil {
			return nil, err
		}
		s.AddField(name, MakeU32(v))
	}

	return s, nil
}

// decodeFileIOSimpleV2 decodes FileIO/Cleanup and FileIO/Close, which
// share the same {IrpPtr, TTID, FileObject, FileKey} layout.
func decodeFileIOSimpleV2(d *Decoder, is64 bool) (*Struct, error) {
	s := NewStruct()

	irpPtr, err := d.Pointer(is64)
	if err != nil {
		return nil, err
	}
	s.AddField("IrpPtr", MakeU64(irpPtr))

	threadID, err := d.U32()
	if err != nil {
		return nil, err
	}
	s.AddField("TTID", MakeU32(threadID))

	for _, name := range []string{"FileObject", "FileKey"} {
		v, err := d.Pointer(is64)
		if err != nil {
			return nil, err
		}
		s.AddField(name, MakeU64(v))
	}

	return s, nil
}
