// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ketrace

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// A GUID is a 16-byte provider identifier, stored in the mixed-endian
// on-the-wire layout: Data1 is little-endian, Data2 and Data3 are
// little-endian, Data4 is eight big-endian bytes.
type GUID [16]byte

// String renders g in the canonical uppercase-with-dashes form, e.g.
// "68FDD900-4A3E-11D1-84F4-0000F80464E3".
func (g GUID) String() string {
	d1 := binary.LittleEndian.Uint32(g[0:4])
	d2 := binary.LittleEndian.Uint16(g[4:6])
	d3 := binary.LittleEndian.Uint16(g[6:8])
	return strings.ToUpper(fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		d1, d2, d3, g[8:10], g[10:16]))
}

// ParseGUID parses the canonical dashed GUID string form into a GUID.
func ParseGUID(s string) (GUID, error) {
	var g GUID
	parts := strings.Split(s, "-")
	if len(parts) != 5 {
		return g, fmt.Errorf("ketrace: malformed GUID %q", s)
	}
	lens := []int{8, 4, 4, 4, 12}
	for i, p := range parts {
		if len(p) != lens[i] {
			return g, fmt.Errorf("ketrace: malformed GUID %q", s)
		}
	}
	d1, err := strconv.ParseUint(parts[0], 16, 32)
	if err != nil {
		return g, err
	}
	d2, err := strconv.ParseUint(parts[1], 16, 16)
	if err != nil {
		return g, err
	}
	d3, err := strconv.ParseUint(parts[2], 16, 16)
	if err != nil {
		return g, err
	}
	tail, err := strconv.ParseUint(parts[3]+parts[4], 16, 64)
	if err != nil {
		return g, err
	}
	binary.LittleEndian.PutUint32(g[0:4], uint32(d1))
	binary.LittleEndian.PutUint16(g[4:6], uint16(d2))
	binary.LittleEndian.PutUint16(g[6:8], uint16(d3))
	binary.BigEndian.PutUint64(g[8:16], tail)
	return g, nil
}

func mustGUID(s string) GUID {
	g, err := ParseGUID(s)
	if err != nil {
		panic(err)
	}
	return g
}

// Categories recognized by the dispatch table. This is a
// closed set: a provider GUID outside this map has no category and
// every event from it is dropped as an UnknownTriple.
var (
	ProviderEventTraceEvent = mustGUID("68FDD900-4A3E-11D1-84F4-0000F80464E3")
	ProviderImage           = mustGUID("2CB15D1D-5FC1-11D2-ABE1-00A0C911F518")
	ProviderPerfInfo        = mustGUID("CE1DBFB4-137E-4DA6-87B0-3F59AA102CBC")
	ProviderProcess         = mustGUID("3D6FA8D0-FE05-11D0-9DDA-00C04FD7BA7C")
	ProviderThread          = mustGUID("3D6FA8D1-FE05-11D0-9DDA-00C04FD7BA7C")
	ProviderTcplp           = mustGUID("9A280AC0-C8E0-11D1-84E2-00C04FB998A2")
	ProviderRegistry        = mustGUID("AE53722E-C863-11D2-8659-00C04FA321A1")
	ProviderFileIO          = mustGUID("90CBDC39-4A3E-11D1-84F4-0000F80464E3")
	ProviderDiskIO          = mustGUID("3D6FA8D4-FE05-11D0-9DDA-00C04FD7BA7C")
	ProviderStackWalk       = mustGUID("DEF2FE46-7BD6-4B80-BD94-F57FE20D0CE3")
	ProviderPageFault       = mustGUID("3D6FA8D3-FE05-11D0-9DDA-00C04FD7BA7C")
)

const (
	CategoryEventTraceEvent = "EventTraceEvent"
	CategoryImage           = "Image"
	CategoryPerfInfo        = "PerfInfo"
	CategoryProcess         = "Process"
	CategoryThread          = "Thread"
	CategoryTcplp           = "Tcplp"
	CategoryRegistry        = "Registry"
	CategoryFileIO          = "FileIO"
	CategoryDiskIO          = "DiskIO"
	CategoryStackWalk       = "StackWalk"
	CategoryPageFault       = "PageFault"
)

var providerCategory = map[GUID]string{
	ProviderEventTraceEvent: CategoryEventTraceEvent,
	ProviderImage:           CategoryImage,
	ProviderPerfInfo:        CategoryPerfInfo,
	ProviderProcess:         CategoryProcess,
	ProviderThread:          CategoryThread,
	ProviderTcplp:           CategoryTcplp,
	ProviderRegistry:        CategoryRegistry,
	ProviderFileIO:          CategoryFileIO,
	ProviderDiskIO:          CategoryDiskIO,
	ProviderStackWalk:       CategoryStackWalk,
	ProviderPageFault:       CategoryPageFault,
}

// categoryFor returns the category for a provider GUID, or "" if the
// provider is not in the closed set.
func categoryFor(p GUID) (string, bool) {
	c, ok := providerCategory[p]
	return c, ok
}
