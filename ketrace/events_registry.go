// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ketrace

// Registry category opcodes.
const (
	registryOpCreate = 10
	registryOpOpen   = 11
	registryOpDelete = 12
)

func init() {
	register(ProviderRegistry, registryOpCreate, 1, "Create", decodeRegistryV1)
	register(ProviderRegistry, registryOpOpen, 1, "Open", decodeRegistryV1)
	register(ProviderRegistry, registryOpDelete, 1, "Delete", decodeRegistryV1)
}

// decodeRegistryV1 decodes Registry/Create, Registry/Open, and
// Registry/Delete, which share a {InitialTime, Status, KeyHandle,
// KeyName} layout.
func decodeRegistryV1(d *Decoder, is64 bool) (*Struct, error) {
	s := NewStruct()

	initialTime, err := d.U64()
	if err != nil {
		return nil, err
	}
	s.AddField("InitialTime", MakeU64(initialTime))

	status, err := d.U32()
	if err != nil {
		return nil, err
	}
	s.AddField("Status", MakeU32(status))

	keyHandle, err := d.Pointer(is64)
	if err != nil {
		return nil, err
	}
	s.AddField("KeyHandle", MakeU64(keyHandle))

	keyName, err := d.W16String()
	if err != nil {
		return nil, err
	}
	s.AddField("KeyName", MakeWString(keyName))

	return s, nil
}
