// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ketrace

import "math"

// A Kind identifies the concrete type stored in a Value.
type Kind int

const (
	KindInvalid Kind = iota
	KindI8
	KindU8
	KindI16
	KindU16
	KindI32
	KindU32
	KindI64
	KindU64
	KindF32
	KindF64
	KindString
	KindWString
	KindStruct
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindI8:
		return "i8"
	case KindU8:
		return "u8"
	case KindI16:
		return "i16"
	case KindU16:
		return "u16"
	case KindI32:
		return "i32"
	case KindU32:
		return "u32"
	case KindI64:
		return "i64"
	case KindU64:
		return "u64"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindString:
		return "string"
	case KindWString:
		return "wstring"
	case KindStruct:
		return "struct"
	case KindArray:
		return "array"
	}
	return "invalid"
}

// A Value is a single node in the decoded event tree: a scalar leaf, a
// narrow or wide string, a Struct of named fields, or an Array of
// homogeneous elements.
//
// A Value has exactly one owner (its containing Struct, Array, or
// Event); callers only ever see borrows of it. This is a closed tagged
// union rather than a base type with downcasts: Kind reports the
// concrete type and the As* accessors either succeed or report
// "absent", they never panic.
type Value struct {
	kind   Kind
	scalar uint64 // integer/float bit pattern
	str    string // KindString / KindWString payload
	strct  *Struct
	array  *Array
}

// Kind reports the concrete type stored in v.
func (v Value) Kind() Kind { return v.kind }

func MakeI8(x int8) Value   { return Value{kind: KindI8, scalar: uint64(uint8(x))} }
func MakeU8(x uint8) Value  { return Value{kind: KindU8, scalar: uint64(x)} }
func MakeI16(x int16) Value { return Value{kind: KindI16, scalar: uint64(uint16(x))} }
func MakeU16(x uint16) Value { return Value{kind: KindU16, scalar: uint64(x)} }
func MakeI32(x int32) Value { return Value{kind: KindI32, scalar: uint64(uint32(x))} }
func MakeU32(x uint32) Value { return Value{kind: KindU32, scalar: uint64(x)} }
func MakeI64(x int64) Value { return Value{kind: KindI64, scalar: uint64(x)} }
func MakeU64(x uint64) Value { return Value{kind: KindU64, scalar: x} }
func MakeF32(x float32) Value { return Value{kind: KindF32, scalar: uint64(math.Float32bits(x))} }
func MakeF64(x float64) Value { return Value{kind: KindF64, scalar: math.Float64bits(x)} }

// MakeString returns a narrow-string Value. The constructor takes
// ownership of s; callers must not mutate the backing bytes afterward.
func MakeString(s string) Value { return Value{kind: KindString, str: s} }

// MakeWString returns a wide-string (UTF-16-sourced) Value. s is the
// in-memory UTF-8 decoding of the original UTF-16 code-unit sequence.
func MakeWString(s string) Value { return Value{kind: KindWString, str: s} }

// MakeStruct wraps an owned *Struct in a Value.
func MakeStruct(s *Struct) Value { return Value{kind: KindStruct, strct: s} }

// MakeArray wraps an owned *Array in a Value.
func MakeArray(a *Array) Value { return Value{kind: KindArray, array: a} }

func (v Value) isIntegral() bool {
	switch v.kind {
	case KindI8, KindU8, KindI16, KindU16, KindI32, KindU32, KindI64, KindU64:
		return true
	}
	return false
}

func (v Value) signExtend() int64 {
	switch v.kind {
	case KindI8:
		return int64(int8(v.scalar))
	case KindI16:
		return int64(int16(v.scalar))
	case KindI32:
		return int64(int32(v.scalar))
	case KindI64:
		return int64(v.scalar)
	}
	return int64(v.scalar)
}

// AsU64 widens any integral scalar to u64. It reports false if v does
// not hold an integral scalar.
func (v Value) AsU64() (uint64, bool) {
	if !v.isIntegral() {
		return 0, false
	}
	switch v.kind {
	case KindI8, KindI16, KindI32, KindI64:
		return uint64(v.signExtend()), true
	}
	return v.scalar, true
}

// AsI64 widens any integral scalar to i64, sign-extending signed
// values and zero-extending unsigned ones. It reports false if v does
// not hold an integral scalar.
func (v Value) AsI64() (int64, bool) {
	if !v.isIntegral() {
		return 0, false
	}
	switch v.kind {
	case KindI8, KindI16, KindI32, KindI64:
		return v.signExtend(), true
	}
	return int64(v.scalar), true
}

// AsF64 returns the stored floating-point value. It reports false
// unless v holds KindF32 or KindF64.
func (v Value) AsF64() (float64, bool) {
	switch v.kind {
	case KindF32:
		return float64(math.Float32frombits(uint32(v.scalar))), true
	case KindF64:
		return math.Float64frombits(v.scalar), true
	}
	return 0, false
}

// AsString returns the narrow string payload. It reports false unless
// v holds KindString.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsWString returns the wide string payload. It reports false unless
// v holds KindWString.
func (v Value) AsWString() (string, bool) {
	if v.kind != KindWString {
		return "", false
	}
	return v.str, true
}

// AsStruct returns the underlying *Struct. It reports false unless v
// holds KindStruct.
func (v Value) AsStruct() (*Struct, bool) {
	if v.kind != KindStruct {
		return nil, false
	}
	return v.strct, true
}

// AsArray returns the underlying *Array. It reports false unless v
// holds KindArray.
func (v Value) AsArray() (*Array, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.array, true
}

// DeepEqual reports whether a and b are recursively equal: their
// kinds match and, for containers, every field/element compares equal
// position by position.
func DeepEqual(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindStruct:
		return a.strct.deepEqual(b.strct)
	case KindArray:
		return a.array.deepEqual(b.array)
	case KindString, KindWString:
		return a.str == b.str
	default:
		return a.scalar == b.scalar
	}
}

// A Field is one (name, Value) pair of a Struct, in insertion order.
type Field struct {
	Name  string
	Value Value
}

// A Struct is an ordered sequence of (name, Value) fields. Field names
// may repeat; name-based lookup returns the first match. AddField is
// O(1); GetField is O(n) in the field count, which the format caps at
// a few dozen.
type Struct struct {
	fields []Field
}

// NewStruct returns an empty Struct ready for AddField calls.
func NewStruct() *Struct { return &Struct{} }

// AddField appends (name, v) to the end of s.
func (s *Struct) AddField(name string, v Value) {
	s.fields = append(s.fields, Field{name, v})
}

// Fields returns the fields of s in insertion order. The caller must
// not mutate the returned slice.
func (s *Struct) Fields() []Field { return s.fields }

// Len returns the number of fields in s.
func (s *Struct) Len() int { return len(s.fields) }

// GetField returns the first field named name, or false if none
// exists.
func (s *Struct) GetField(name string) (Value, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// GetAsU64 looks up name and widens it to u64. It reports false if the
// field is absent or not an integral scalar.
func (s *Struct) GetAsU64(name string) (uint64, bool) {
	v, ok := s.GetField(name)
	if !ok {
		return 0, false
	}
	return v.AsU64()
}

// GetAsString looks up name as a narrow string. It reports false if
// the field is absent or not a narrow string.
func (s *Struct) GetAsString(name string) (string, bool) {
	v, ok := s.GetField(name)
	if !ok {
		return "", false
	}
	return v.AsString()
}

// GetAsWString looks up name as a wide string. It reports false if
// the field is absent or not a wide string.
func (s *Struct) GetAsWString(name string) (string, bool) {
	v, ok := s.GetField(name)
	if !ok {
		return "", false
	}
	return v.AsWString()
}

// GetAsArray looks up name as an array. It reports false if the field
// is absent or not an array.
func (s *Struct) GetAsArray(name string) (*Array, bool) {
	v, ok := s.GetField(name)
	if !ok {
		return nil, false
	}
	return v.AsArray()
}

func (s *Struct) deepEqual(o *Struct) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil {
		return false
	}
	if len(s.fields) != len(o.fields) {
		return false
	}
	for i := range s.fields {
		if s.fields[i].Name != o.fields[i].Name {
			return false
		}
		if !DeepEqual(s.fields[i].Value, o.fields[i].Value) {
			return false
		}
	}
	return true
}

// An Array is a homogeneous ordered sequence of Values.
type Array struct {
	elems []Value
}

// NewArray returns an empty Array.
func NewArray() *Array { return &Array{} }

// Append adds v to the end of a.
func (a *Array) Append(v Value) { a.elems = append(a.elems, v) }

// Len returns the number of elements in a.
func (a *Array) Len() int { return len(a.elems) }

// At returns the element at index i.
func (a *Array) At(i int) Value { return a.elems[i] }

// Elems returns the elements of a in order. The caller must not
// mutate the returned slice.
func (a *Array) Elems() []Value { return a.elems }

func (a *Array) deepEqual(o *Array) bool {
	if a == o {
		return true
	}
	if a == nil || o == nil {
		return false
	}
	if len(a.elems) != len(o.elems) {
		return false
	}
	for i := range a.elems {
		if !DeepEqual(a.elems[i], o.elems[i]) {
			return false
		}
	}
	return true
}
