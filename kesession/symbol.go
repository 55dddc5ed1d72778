// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kesession

import (
	"sort"

	"github.com/ianlancetaylor/demangle"
)

// A Symbol names one function or routine within an image, at a given
// offset from the image base.
type Symbol struct {
	Name   string
	Offset uint64
	Size   uint64
	// Line is the source line the symbol starts at, or 0 if unknown.
	// Populated only by enumerators backed by line-number info, such
	// as ELFSymbolEnumerator.
	Line int
}

// SymbolEnumerator is the external collaborator that lists the symbols
// of a loaded image. Production callers supply a PDB- or MOF-backed
// implementation; NewELFSymbolEnumerator provides a concrete binding
// for ELF/DWARF images for non-Windows testing and illustration.
type SymbolEnumerator interface {
	EnumerateSymbols(image Image) ([]Symbol, error)
}

// Resolver answers address-to-symbol queries against an ImageMap,
// caching each image's symbol table keyed by Image equality per
// the closed upper bound offset <= S.offset+S.size.
type Resolver struct {
	enum  SymbolEnumerator
	cache map[Image][]Symbol
}

// NewResolver returns a Resolver backed by enum.
func NewResolver(enum SymbolEnumerator) *Resolver {
	return &Resolver{enum: enum, cache: make(map[Image][]Symbol)}
}

func (r *Resolver) symbolsFor(image Image) []Symbol {
	if syms, ok := r.cache[image]; ok {
		return syms
	}
	syms, err := r.enum.EnumerateSymbols(image)
	if err != nil {
		r.cache[image] = nil
		return nil
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].Offset < syms[j].Offset
	})
	r.cache[image] = syms
	return syms
}

// ResolveSymbol finds the image containing addr in pid's address
// space and returns the greatest-offset symbol S with
// S.Offset <= offset <= S.Offset+S.Size, where offset = addr - base.
func (r *Resolver) ResolveSymbol(images *ImageMap, pid uint32, addr uint64) (Symbol, bool) {
	image, base, ok := images.FindImage(pid, addr)
	if !ok {
		return Symbol{}, false
	}
	syms := r.symbolsFor(image)
	if len(syms) == 0 {
		return Symbol{}, false
	}

	offset := addr - base
	i := sort.Search(len(syms), func(i int) bool {
		return syms[i].Offset > offset
	})
	if i == 0 {
		return Symbol{}, false
	}
	s := syms[i-1]
	if offset > s.Offset+s.Size {
		return Symbol{}, false
	}
	return s, true
}

// Resolve is ResolveSymbol plus demangling: mangled C++/Rust names are
// passed through demangle.Filter, which returns its input unchanged if
// it does not recognize the mangling.
func (r *Resolver) Resolve(images *ImageMap, pid uint32, addr uint64) (string, bool) {
	s, ok := r.ResolveSymbol(images, pid, addr)
	if !ok {
		return "", false
	}
	return demangle.Filter(s.Name), true
}

// ResolveAll resolves a whole call stack in one pass, reusing each
// image's cached symbol table across the frames of addrs. Addresses
// that fail to resolve are omitted from the result rather than
// represented as empty strings.
func (r *Resolver) ResolveAll(images *ImageMap, pid uint32, addrs []uint64) []string {
	names := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		if name, ok := r.Resolve(images, pid, addr); ok {
			names = append(names, name)
		}
	}
	return names
}
