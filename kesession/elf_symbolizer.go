// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kesession

import (
	"debug/dwarf"
	"debug/elf"
	"fmt"
	"io"
	"sort"
)

// ELFSymbolEnumerator is a concrete, optional SymbolEnumerator backed
// by an image's ELF file and its DWARF debug info. It is not the
// production path for Windows kernel traces (those symbolize against
// PDBs), but gives the resolver a real, exercised binding for ELF
// images rather than leaving SymbolEnumerator pure interface.
//
// Images are located on disk by Image.Filename; a caller resolving
// Windows-captured traces on a different machine will typically
// substitute a symbol server-backed implementation instead.
type ELFSymbolEnumerator struct{}

// NewELFSymbolEnumerator returns a SymbolEnumerator that reads
// function symbols and line numbers from an image's ELF/DWARF data.
func NewELFSymbolEnumerator() *ELFSymbolEnumerator {
	return &ELFSymbolEnumerator{}
}

// EnumerateSymbols opens image.Filename as an ELF file, walks its
// DWARF subprogram entries into a function table, and annotates each
// function's starting line number from the combined per-CU line
// table.
func (*ELFSymbolEnumerator) EnumerateSymbols(image Image) ([]Symbol, error) {
	f, err := elf.Open(image.Filename)
	if err != nil {
		return nil, fmt.Errorf("kesession: opening %s: %w", image.Filename, err)
	}
	defer f.Close()

	if f.Section(".debug_info") == nil {
		return nil, fmt.Errorf("kesession: no DWARF info in %s", image.Filename)
	}
	d, err := f.DWARF()
	if err != nil {
		return nil, fmt.Errorf("kesession: loading DWARF from %s: %w", image.Filename, err)
	}

	funcs := dwarfFuncs(d)
	lines := dwarfLines(d)

	syms := make([]Symbol, 0, len(funcs))
	for _, fn := range funcs {
		syms = append(syms, Symbol{
			Name:   fn.name,
			Offset: fn.lowpc,
			Size:   fn.highpc - fn.lowpc,
			Line:   lineFor(lines, fn.lowpc),
		})
	}
	return syms, nil
}

type funcRange struct {
	name          string
	lowpc, highpc uint64
}

// dwarfFuncs walks d's subprogram entries into a function table,
// mirroring the production symbolizer's dwarfFuncTable/findIP shape.
func dwarfFuncs(d *dwarf.Data) []funcRange {
	r := d.Reader()
	var out []funcRange
	for {
		ent, err := r.Next()
		if ent == nil || err != nil {
			break
		}
		switch ent.Tag {
		case dwarf.TagSubprogram:
			r.SkipChildren()
			name, ok := ent.Val(dwarf.AttrName).(string)
			if !ok {
				continue
			}
			lowpc, ok := ent.Val(dwarf.AttrLowpc).(uint64)
			if !ok {
				continue
			}
			var highpc uint64
			switch v := ent.Val(dwarf.AttrHighpc).(type) {
			case uint64:
				highpc = v
			case int64:
				highpc = lowpc + uint64(v)
			default:
				continue
			}
			out = append(out, funcRange{name, lowpc, highpc})
		case dwarf.TagCompileUnit, dwarf.TagModule, dwarf.TagNamespace:
		default:
			r.SkipChildren()
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].lowpc < out[j].lowpc })
	return out
}

// dwarfLines builds the combined line table across every compilation
// unit using debug/dwarf's own line-table reader.
func dwarfLines(d *dwarf.Data) []dwarf.LineEntry {
	var out []dwarf.LineEntry
	r := d.Reader()
	for {
		ent, err := r.Next()
		if ent == nil || err != nil {
			break
		}
		if ent.Tag != dwarf.TagCompileUnit {
			r.SkipChildren()
			continue
		}
		lr, err := d.LineReader(ent)
		if err != nil || lr == nil {
			continue
		}
		var e dwarf.LineEntry
		for {
			if err := lr.Next(&e); err != nil {
				if err != io.EOF {
					break
				}
				break
			}
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}

// lineFor returns the source line number of the greatest-address
// entry at or before pc, or 0 if none covers pc.
func lineFor(lines []dwarf.LineEntry, pc uint64) int {
	i := sort.Search(len(lines), func(i int) bool {
		return lines[i].Address > pc
	})
	if i == 0 || lines[i-1].EndSequence {
		return 0
	}
	return lines[i-1].Line
}
