// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ketrace

// Tcplp category opcodes.
const (
	tcplpOpConnect    = 12
	tcplpOpDisconnect = 13
)

func init() {
	register(ProviderTcplp, tcplpOpConnect, 1, "Connect", decodeTcplpV1)
	register(ProviderTcplp, tcplpOpDisconnect, 1, "Disconnect", decodeTcplpV1)
}

// decodeTcplpV1 decodes Tcplp/Connect and Tcplp/Disconnect: a process
// id, a size, a {dst, src} pair of 32-bit IPv4 addresses, and their
// ports. No field depends on the bitness flag.
func decodeTcplpV1(d *Decoder, is64 bool) (*Struct, error) {
	s := NewStruct()

	processID, err := d.U32()
	if err != nil {
		return nil, err
	}
	s.AddField("PID", MakeU32(processID))

	size, err := d.U16()
	if err != nil {
		return nil, err
	}
	s.AddField("Size", MakeU16(size))

	for _, name := range []string{"DAddr", "SAddr"} {
		v, err := d.U32()
		if err != nil {
			return nil, err
		}
		s.AddField(name, MakeU32(v))
	}

	for _, name := range []string{"DPort", "SPort"} {
		v, err := d.U16()
		if err != nil {
			return nil, err
		}
		s.AddField(name, MakeU16(v))
	}

	return s, nil
}
