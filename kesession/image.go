// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kesession maintains per-process image and symbol state as a
// trace is parsed: the image map that tracks loaded modules, the
// lazily-built per-image symbol cache, and the state sink that drives
// both from decoded events.
package kesession

// Image describes one loaded module. Two images are equal iff all
// four fields are equal; this is the key the symbol cache is built
// against, not the (pid, base) pair under which it was loaded.
type Image struct {
	Size     uint64
	Checksum uint32
	Stamp    uint32
	Filename string
}

// Equal reports whether i and o describe the same module image.
func (i Image) Equal(o Image) bool {
	return i.Size == o.Size && i.Checksum == o.Checksum &&
		i.Stamp == o.Stamp && i.Filename == o.Filename
}
