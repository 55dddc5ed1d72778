// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kesession

import (
	"log"

	"github.com/go-ketrace/ketrace/ketrace"
)

// Sink consumes decoded Events and mutates an ImageMap and Resolver in
// response, dispatching by (category, operation). All (category,
// operation) pairs not named below are silently ignored.
type Sink struct {
	Images   *ImageMap
	Resolver *Resolver

	// Stacks collects the resolved symbol names of every StackWalk/Stack
	// event seen, in arrival order. A consumer such as cmd/ketrace
	// reads this after Parse returns.
	Stacks [][]string

	// Strings, if set, interns each loaded image's filename as it is
	// observed.
	Strings *ketrace.Flyweight
}

// NewSink returns a Sink backed by a fresh ImageMap and a Resolver
// backed by enum.
func NewSink(enum SymbolEnumerator) *Sink {
	return &Sink{
		Images:   NewImageMap(),
		Resolver: NewResolver(enum),
	}
}

// Handle is the Callback a Parser invokes for every decoded event.
func (s *Sink) Handle(e *ketrace.Event) {
	pid := uint32(mustU64(e.Header(), ketrace.HeaderProcessID))

	switch e.Category() {
	case ketrace.CategoryImage:
		switch e.Operation() {
		case "Load", "DCStart":
			s.onImageLoad(pid, e.Payload())
		case "Unload":
			s.onImageUnload(pid, e.Payload())
		case "KernelBase":
			// Reserved; no-op.
		}
	case ketrace.CategoryStackWalk:
		if e.Operation() == "Stack" {
			s.onStack(e.Payload())
		}
	}
}

func mustU64(s *ketrace.Struct, name string) uint64 {
	v, _ := s.GetAsU64(name)
	return v
}

func (s *Sink) onImageLoad(pid uint32, payload *ketrace.Struct) {
	size, ok1 := payload.GetAsU64("ModuleSize")
	checksum, ok2 := payload.GetAsU64("ImageCheckSum")
	stamp, ok3 := payload.GetAsU64("TimeDateStamp")
	filename, ok4 := payload.GetAsWString("ImageFileName")
	base, ok5 := payload.GetAsU64("BaseAddress")
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		log.Printf("kesession: field mismatch decoding Image/Load payload for pid %d", pid)
		return
	}

	if s.Strings != nil {
		s.Strings.Intern(filename)
	}

	s.Images.LoadImage(pid, base, Image{
		Size:     size,
		Checksum: uint32(checksum),
		Stamp:    uint32(stamp),
		Filename: filename,
	})
}

func (s *Sink) onImageUnload(pid uint32, payload *ketrace.Struct) {
	base, ok := payload.GetAsU64("BaseAddress")
	if !ok {
		log.Printf("kesession: field mismatch decoding Image/Unload payload for pid %d", pid)
		return
	}
	s.Images.UnloadImage(pid, base)
}

func (s *Sink) onStack(payload *ketrace.Struct) {
	_, ok1 := payload.GetAsU64("EventTimeStamp")
	pid, ok2 := payload.GetAsU64("StackProcess")
	_, ok3 := payload.GetAsU64("StackThread")
	frames, ok4 := payload.GetAsArray("Stack")
	if !ok1 || !ok2 || !ok3 || !ok4 {
		log.Printf("kesession: field mismatch decoding StackWalk/Stack payload")
		return
	}

	addrs := make([]uint64, 0, frames.Len())
	for _, v := range frames.Elems() {
		addr, ok := v.AsU64()
		if !ok {
			log.Printf("kesession: invalid stack frame element, dropping StackWalk/Stack event")
			return
		}
		addrs = append(addrs, addr)
	}

	s.Stacks = append(s.Stacks, s.Resolver.ResolveAll(s.Images, uint32(pid), addrs))
}
