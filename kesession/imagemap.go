// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kesession

// ImageMap tracks, per process id, the set of currently loaded images
// keyed by base address. It implements the state machine
// Absent -> Loaded(image) -> Absent driven by Image/Load, Image/Unload,
// and Image/DCStart events.
type ImageMap struct {
	byPID map[uint32]*Ranges
}

// NewImageMap returns an empty ImageMap.
func NewImageMap() *ImageMap {
	return &ImageMap{byPID: make(map[uint32]*Ranges)}
}

// LoadImage inserts or overwrites the image loaded at (pid, base).
func (m *ImageMap) LoadImage(pid uint32, base uint64, image Image) {
	r, ok := m.byPID[pid]
	if !ok {
		r = &Ranges{}
		m.byPID[pid] = r
	}
	r.Add(base, image)
}

// UnloadImage removes the image loaded at (pid, base). An absent pid
// or base is tolerated.
func (m *ImageMap) UnloadImage(pid uint32, base uint64) {
	r, ok := m.byPID[pid]
	if !ok {
		return
	}
	r.Remove(base)
}

// FindImage returns the image containing addr in pid's address space,
// and the base address it was loaded at.
func (m *ImageMap) FindImage(pid uint32, addr uint64) (image Image, base uint64, ok bool) {
	r, ok := m.byPID[pid]
	if !ok {
		return Image{}, 0, false
	}
	return r.Find(addr)
}
