// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ketrace

// Composite decoders shared across several event layouts (spec
// §4.3). decodeSID takes the same (cursor, is_64_bit) shape as a
// top-level decodeFunc; decodeSystemTime and decodeTimeZoneInformation
// have no pointer-width fields and take only the cursor. Each returns
// a nested Struct that callers attach as a single field of their own
// Struct.

// decodeSID reads a security identifier: a pointer-sized handle, a u32
// attribute word, 4 bytes of alignment padding on 64-bit, then a
// variable-length byte array whose length is 4*sub_authority_count+8.
// sub_authority_count is byte 1 of the SID body, read by peeking
// without advancing the cursor.
func decodeSID(d *Decoder, is64 bool) (*Struct, error) {
	if d.RemainingBytes() < 3*8 {
		return nil, ErrTruncated
	}

	psid, err := d.Pointer(is64)
	if err != nil {
		return nil, err
	}
	attributes, err := d.U32()
	if err != nil {
		return nil, err
	}
	if is64 {
		if err := d.Skip(4); err != nil {
			return nil, err
		}
	}

	subAuthByte, ok := d.Lookup(1)
	if !ok {
		return nil, ErrTruncated
	}
	length := 4*int(subAuthByte) + 8
	raw, err := d.Bytes(length)
	if err != nil {
		return nil, err
	}

	s := NewStruct()
	s.AddField("PSid", MakeU64(psid))
	s.AddField("Attributes", MakeU32(attributes))
	s.AddField("SubAuthorityCount", MakeU8(subAuthByte))
	s.AddField("Sid", MakeString(string(raw)))
	return s, nil
}

// decodeSystemTime reads a SYSTEMTIME: eight i16 fields.
func decodeSystemTime(d *Decoder) (*Struct, error) {
	s := NewStruct()
	for _, name := range []string{
		"wYear", "wMonth", "wDayOfWeek", "wDay",
		"wHour", "wMinute", "wSecond", "wMilliseconds",
	} {
		v, err := d.I16()
		if err != nil {
			return nil, err
		}
		s.AddField(name, MakeI16(v))
	}
	return s, nil
}

// decodeTimeZoneInformation reads a TIME_ZONE_INFORMATION, used by
// time-zone-name fields at fixed length 32.
func decodeTimeZoneInformation(d *Decoder) (*Struct, error) {
	s := NewStruct()

	bias, err := d.I32()
	if err != nil {
		return nil, err
	}
	s.AddField("Bias", MakeI32(bias))

	stdName, err := d.FixedW16String(32)
	if err != nil {
		return nil, err
	}
	s.AddField("StandardName", MakeWString(stdName))

	stdDate, err := decodeSystemTime(d)
	if err != nil {
		return nil, err
	}
	s.AddField("StandardDate", MakeStruct(stdDate))

	stdBias, err := d.I32()
	if err != nil {
		return nil, err
	}
	s.AddField("StandardBias", MakeI32(stdBias))

	dstName, err := d.FixedW16String(32)
	if err != nil {
		return nil, err
	}
	s.AddField("DaylightName", MakeWString(dstName))

	dstDate, err := decodeSystemTime(d)
	if err != nil {
		return nil, err
	}
	s.AddField("DaylightDate", MakeStruct(dstDate))

	dstBias, err := d.I32()
	if err != nil {
		return nil, err
	}
	s.AddField("DaylightBias", MakeI32(dstBias))

	return s, nil
}
