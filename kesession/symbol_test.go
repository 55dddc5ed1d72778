// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kesession

import "testing"

// fakeEnumerator is a programmable SymbolEnumerator for tests: the
// production binding is an external collaborator, so tests supply a
// fake instead.
type fakeEnumerator struct {
	bySymbolName map[string][]Symbol
	calls        int
}

func (f *fakeEnumerator) EnumerateSymbols(image Image) ([]Symbol, error) {
	f.calls++
	return f.bySymbolName[image.Filename], nil
}

func TestResolverBoundaryOffsets(t *testing.T) {
	enum := &fakeEnumerator{bySymbolName: map[string][]Symbol{
		"a.dll": {
			{Name: "foo", Offset: 0x100, Size: 0x10},
			{Name: "bar", Offset: 0x200, Size: 0x20},
		},
	}}
	r := NewResolver(enum)
	images := NewImageMap()
	images.LoadImage(1, 0x10000, Image{Filename: "a.dll", Size: 0x10000})

	cases := []struct {
		addr   uint64
		want   string
		wantOK bool
	}{
		{0x10000 + 0x100, "foo", true},        // exactly at S.offset
		{0x10000 + 0x100 + 0x10, "foo", true}, // S.offset+S.size: closed upper bound
		{0x10000 + 0x100 + 0x11, "", false},   // one past the closed bound
		{0x10000 + 0x0FF, "", false},          // just before the first symbol
		{0x10000 + 0x200, "bar", true},
		{0x10000 + 0x220, "bar", true},
		{0x10000 + 0x221, "", false},
	}

	for _, c := range cases {
		sym, ok := r.ResolveSymbol(images, 1, c.addr)
		if ok != c.wantOK {
			t.Errorf("ResolveSymbol(addr=%#x) ok = %v, want %v", c.addr, ok, c.wantOK)
			continue
		}
		if ok && sym.Name != c.want {
			t.Errorf("ResolveSymbol(addr=%#x).Name = %q, want %q", c.addr, sym.Name, c.want)
		}
	}
}

func TestResolverCachesEnumeration(t *testing.T) {
	enum := &fakeEnumerator{bySymbolName: map[string][]Symbol{
		"a.dll": {{Name: "foo", Offset: 0, Size: 0x10}},
	}}
	r := NewResolver(enum)
	images := NewImageMap()
	images.LoadImage(1, 0x1000, Image{Filename: "a.dll", Size: 0x10000})

	for i := 0; i < 5; i++ {
		if _, ok := r.ResolveSymbol(images, 1, 0x1000); !ok {
			t.Fatalf("ResolveSymbol call %d failed", i)
		}
	}
	if enum.calls != 1 {
		t.Errorf("EnumerateSymbols called %d times, want 1 (should be cached per image)", enum.calls)
	}
}

func TestResolverUnknownAddress(t *testing.T) {
	enum := &fakeEnumerator{}
	r := NewResolver(enum)
	images := NewImageMap()

	if _, ok := r.ResolveSymbol(images, 1, 0x1000); ok {
		t.Error("ResolveSymbol with no loaded images reported ok=true")
	}
}

func TestResolveAllSkipsUnresolved(t *testing.T) {
	enum := &fakeEnumerator{bySymbolName: map[string][]Symbol{
		"a.dll": {{Name: "foo", Offset: 0, Size: 0x10}},
	}}
	r := NewResolver(enum)
	images := NewImageMap()
	images.LoadImage(1, 0x1000, Image{Filename: "a.dll", Size: 0x10000})

	names := r.ResolveAll(images, 1, []uint64{0x1000, 0xDEAD, 0x1005})
	if len(names) != 2 {
		t.Fatalf("ResolveAll returned %d names, want 2 (one address has no symbol)", len(names))
	}
}
