// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ketrace

import (
	"encoding/binary"
	"errors"
	"math"
	"unicode/utf16"
)

// ErrTruncated is returned by a Decoder read that would cross the end
// of the buffer. The outer dispatch table treats this as "event
// dropped".
var ErrTruncated = errors.New("ketrace: truncated payload")

// A Decoder is a cursor over a raw event payload, in the style of
// perffile's bufDecoder: every typed read advances the cursor by the
// width of the value it read, and any read that would run past the
// end of the buffer fails instead of panicking.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder returns a Decoder positioned at the start of buf.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// RemainingBytes returns the number of unread bytes.
func (d *Decoder) RemainingBytes() int {
	return len(d.buf) - d.pos
}

func (d *Decoder) require(n int) error {
	if n > d.RemainingBytes() {
		return ErrTruncated
	}
	return nil
}

// Lookup reads the byte at offset bytes past the current position
// without advancing the cursor. It reports false if offset is out of
// range.
func (d *Decoder) Lookup(offset int) (byte, bool) {
	i := d.pos + offset
	if offset < 0 || i >= len(d.buf) {
		return 0, false
	}
	return d.buf[i], true
}

// Skip advances the cursor by n bytes without interpreting them.
func (d *Decoder) Skip(n int) error {
	if err := d.require(n); err != nil {
		return err
	}
	d.pos += n
	return nil
}

// Bytes reads and returns the next n bytes, advancing the cursor.
func (d *Decoder) Bytes(n int) ([]byte, error) {
	if err := d.require(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, d.buf[d.pos:d.pos+n])
	d.pos += n
	return out, nil
}

func (d *Decoder) U8() (uint8, error) {
	if err := d.require(1); err != nil {
		return 0, err
	}
	x := d.buf[d.pos]
	d.pos++
	return x, nil
}

func (d *Decoder) I8() (int8, error) {
	x, err := d.U8()
	return int8(x), err
}

func (d *Decoder) U16() (uint16, error) {
	if err := d.require(2); err != nil {
		return 0, err
	}
	x := binary.LittleEndian.Uint16(d.buf[d.pos:])
	d.pos += 2
	return x, nil
}

func (d *Decoder) I16() (int16, error) {
	x, err := d.U16()
	return int16(x), err
}

func (d *Decoder) U32() (uint32, error) {
	if err := d.require(4); err != nil {
		return 0, err
	}
	x := binary.LittleEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return x, nil
}

func (d *Decoder) I32() (int32, error) {
	x, err := d.U32()
	return int32(x), err
}

func (d *Decoder) U64() (uint64, error) {
	if err := d.require(8); err != nil {
		return 0, err
	}
	x := binary.LittleEndian.Uint64(d.buf[d.pos:])
	d.pos += 8
	return x, nil
}

func (d *Decoder) I64() (int64, error) {
	x, err := d.U64()
	return int64(x), err
}

func (d *Decoder) F32() (float32, error) {
	x, err := d.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(x), nil
}

func (d *Decoder) F64() (float64, error) {
	x, err := d.U64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(x), nil
}

// Pointer reads a u32 or u64 depending on is64, matching the bitness
// flag that governs every pointer, pointer-sized, and SID field (spec
// §4.3).
func (d *Decoder) Pointer(is64 bool) (uint64, error) {
	if is64 {
		return d.U64()
	}
	x, err := d.U32()
	return uint64(x), err
}

// CString reads a narrow, NUL-terminated string, advancing the cursor
// past the NUL. It reports ErrTruncated if no NUL appears before the
// end of the buffer.
func (d *Decoder) CString() (string, error) {
	for i := d.pos; i < len(d.buf); i++ {
		if d.buf[i] == 0 {
			s := string(d.buf[d.pos:i])
			d.pos = i + 1
			return s, nil
		}
	}
	return "", ErrTruncated
}

// W16String reads UTF-16 code units until a NUL terminator and
// advances the cursor past the NUL. It reports ErrTruncated if no NUL
// code unit appears before the end of the buffer.
func (d *Decoder) W16String() (string, error) {
	units := make([]uint16, 0, 16)
	pos := d.pos
	for {
		if pos+2 > len(d.buf) {
			return "", ErrTruncated
		}
		u := binary.LittleEndian.Uint16(d.buf[pos:])
		pos += 2
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	d.pos = pos
	return string(utf16.Decode(units)), nil
}

// FixedW16String reads exactly lengthCodeUnits UTF-16 code units,
// always advancing the cursor by lengthCodeUnits*2 bytes. The
// returned string is truncated at the first NUL code unit (or the
// full decoded text if none appears).
func (d *Decoder) FixedW16String(lengthCodeUnits int) (string, error) {
	if err := d.require(lengthCodeUnits * 2); err != nil {
		return "", err
	}
	units := make([]uint16, lengthCodeUnits)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(d.buf[d.pos+2*i:])
	}
	d.pos += lengthCodeUnits * 2

	for i, u := range units {
		if u == 0 {
			units = units[:i]
			break
		}
	}
	return string(utf16.Decode(units)), nil
}
