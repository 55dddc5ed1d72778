// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kesession

import "sort"

// Ranges tracks loaded images by base address for a single process and
// answers predecessor queries. It is the per-pid address space one
// ImageMap entry owns.
type Ranges struct {
	entries []rangeEntry
	sorted  bool
}

type rangeEntry struct {
	base  uint64
	image Image
}

// Add inserts image at base, overwriting any existing entry at the
// same base.
func (r *Ranges) Add(base uint64, image Image) {
	for i := range r.entries {
		if r.entries[i].base == base {
			r.entries[i].image = image
			return
		}
	}
	r.entries = append(r.entries, rangeEntry{base, image})
	r.sorted = false
}

// Remove deletes the entry at base, if any. Removing an absent base is
// a no-op.
func (r *Ranges) Remove(base uint64) {
	for i := range r.entries {
		if r.entries[i].base == base {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

func (r *Ranges) ensureSorted() {
	if r.sorted {
		return
	}
	sort.Slice(r.entries, func(i, j int) bool {
		return r.entries[i].base < r.entries[j].base
	})
	r.sorted = true
}

// Find returns the image I at base B such that B <= addr < B+I.Size,
// the greatest such B (strict upper-bound predecessor), with an exact
// match at addr itself winning any tie.
func (r *Ranges) Find(addr uint64) (image Image, base uint64, ok bool) {
	if r == nil {
		return Image{}, 0, false
	}
	r.ensureSorted()

	i := sort.Search(len(r.entries), func(i int) bool {
		return r.entries[i].base > addr
	})
	if i == 0 {
		return Image{}, 0, false
	}
	e := r.entries[i-1]
	if addr < e.base+e.image.Size {
		return e.image, e.base, true
	}
	return Image{}, 0, false
}
