// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ketrace

import "sync"

// StringID is a stable small integer identifying an interned string.
type StringID int32

// A Flyweight de-duplicates repeated strings (operation names,
// filenames) to shrink memory when the same identifier recurs across
// many events. It is append-only: once an id is issued it is never
// reused or invalidated, so Get is safe to call concurrently with
// other readers once Intern has returned that id.
//
// Parser interns each event's category and operation when given a
// Flyweight (see Parser.Strings); kesession.Sink does the same for
// image filenames. Using a Flyweight is optional in both cases: the
// header and payload Struct fields always carry the plain string
// regardless, and Intern is only ever used for its side effect of
// populating the id table. Nothing evicts from it, and its lifetime is
// the process.
type Flyweight struct {
	mu   sync.RWMutex
	ids  map[string]StringID
	strs []string
}

// NewFlyweight returns an empty Flyweight.
func NewFlyweight() *Flyweight {
	return &Flyweight{ids: make(map[string]StringID)}
}

// Intern returns the stable id for s, allocating a new one if s has
// not been seen before.
func (f *Flyweight) Intern(s string) StringID {
	f.mu.RLock()
	if id, ok := f.ids[s]; ok {
		f.mu.RUnlock()
		return id
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.ids[s]; ok {
		return id
	}
	id := StringID(len(f.strs))
	f.strs = append(f.strs, s)
	f.ids[s] = id
	return id
}

// Get returns the string that was interned as id. It panics if id was
// never issued by Intern, the same contract as indexing a slice out
// of bounds.
func (f *Flyweight) Get(id StringID) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.strs[id]
}
