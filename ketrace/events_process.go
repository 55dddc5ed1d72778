// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ketrace

// Process category opcodes.
const (
	processOpStart   = 1
	processOpEnd     = 2
	processOpDCStart = 3
	processOpDCEnd   = 4
	processOpDefunct = 39
)

func init() {
	register(ProviderProcess, processOpStart, 4, "Start", decodeProcessV4)
	register(ProviderProcess, processOpDefunct, 4, "Defunct", decodeProcessV4)
	register(ProviderProcess, processOpDCStart, 3, "DCStart", decodeProcessV3)
	register(ProviderProcess, processOpDCEnd, 3, "DCEnd", decodeProcessV3)
	register(ProviderProcess, processOpEnd, 3, "End", decodeProcessV3)
}

// decodeProcessCommon reads the fixed prefix shared by every Process
// Start/End/DCStart/DCEnd/Defunct layout: the process identity fields,
// the embedded SID, and the narrow image file name.
func decodeProcessCommon(s *Struct, d *Decoder, is64 bool) error {
	uniqueProcessKey, err := d.Pointer(is64)
	if err != nil {
		return err
	}
	s.AddField("UniqueProcessKey", MakeU64(uniqueProcessKey))

	processID, err := d.U32()
	if err != nil {
		return err
	}
	s.AddField("ProcessId", MakeU32(processID))

	parentID, err := d.U32()
	if err != nil {
		return err
	}
	s.AddField("ParentId", MakeU32(parentID))

	sessionID, err := d.U32()
	if err != nil {
		return err
	}
	s.AddField("SessionId", MakeU32(sessionID))

	exitStatus, err := d.I32()
	if err != nil {
		return err
	}
	s.AddField("ExitStatus", MakeI32(exitStatus))

	directoryTableBase, err := d.Pointer(is64)
	if err != nil {
		return err
	}
	s.AddField("DirectoryTableBase", MakeU64(directoryTableBase))

	flags, err := d.U32()
	if err != nil {
		return err
	}
	s.AddField("Flags", MakeU32(flags))

	sid, err := decodeSID(d, is64)
	if err != nil {
		return err
	}
	s.AddField("UserSID", MakeStruct(sid))

	imageFileName, err := d.CString()
	if err != nil {
		return err
	}
	s.AddField("ImageFileName", MakeString(imageFileName))

	commandLine, err := d.W16String()
	if err != nil {
		return err
	}
	s.AddField("CommandLine", MakeWString(commandLine))

	return nil
}

// decodeProcessV3 decodes Process/DCStart, Process/DCEnd, and
// Process/End at version 3: the common prefix with no package fields.
func decodeProcessV3(d *Decoder, is64 bool) (*Struct, error) {
	s := NewStruct()
	if err := decodeProcessCommon(s, d, is64); err != nil {
		return nil, err
	}
	return s, nil
}

// decodeProcessV4 decodes Process/Start and Process/Defunct at
// version 4, which append PackageFullName and ApplicationId to the
// version-3 layout: newer versions only ever append fields.
func decodeProcessV4(d *Decoder, is64 bool) (*Struct, error) {
	s := NewStruct()
	if err := decodeProcessCommon(s, d, is64); err != nil {
		return nil, err
	}

	packageFullName, err := d.W16String()
	if err != nil {
		return nil, err
	}
	s.AddField("PackageFullName", MakeWString(packageFullName))

	applicationID, err := d.W16String()
	if err != nil {
		return nil, err
	}
	s.AddField("ApplicationId", MakeWString(applicationID))

	return s, nil
}
