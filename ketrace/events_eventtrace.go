// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ketrace

// EventTrace category opcodes.
const (
	eventTraceOpHeader = 0
)

func init() {
	register(ProviderEventTraceEvent, eventTraceOpHeader, 2, "Header", decodeEventTraceHeaderV2)
}

// decodeEventTraceHeaderV2 decodes EventTrace/Header, the session
// metadata record a trace begins with: buffer sizing and loss counters,
// the logger's clock parameters, and the embedded time zone the logger
// ran under.
func decodeEventTraceHeaderV2(d *Decoder, is64 bool) (*Struct, error) {
	s := NewStruct()

	for _, name := range []string{
		"BufferSize", "Version", "ProviderVersion", "NumberOfProcessors",
	} {
		v, err := d.U32()
		if err != nil {
			return nil, err
		}
		s.AddField(name, MakeU32(v))
	}

	endTime, err := d.U64()
	if err != nil {
		return nil, err
	}
	s.AddField("EndTime", MakeU64(endTime))

	for _, name := range []string{
		"TimerResolution", "MaxFileSize", "LogFileMode", "BuffersWritten",
		"StartBuffers", "PointerSize", "EventsLost", "CPUSpeed",
	} {
		v, err := d.U32()
		if err != nil {
			return nil, err
		}
		s.AddField(name, MakeU32(v))
	}

	for _, name := range []string{"LoggerName", "LogFileName"} {
		v, err := d.Pointer(is64)
		if err != nil {
			return nil, err
		}
		s.AddField(name, MakeU64(v))
	}

	tzi, err := decodeTimeZoneInformation(d)
	if err != nil {
		return nil, err
	}
	s.AddField("TimeZoneInformation", MakeStruct(tzi))

	reserved, err := d.U64()
	if err != nil {
		return nil, err
	}
	s.AddField("Reserved", MakeU64(reserved))

	bootTime, err := d.U64()
	if err != nil {
		return nil, err
	}
	s.AddField("BootTime", MakeU64(bootTime))

	perfFreq, err := d.U64()
	if err != nil {
		return nil, err
	}
	s.AddField("PerfFreq", MakeU64(perfFreq))

	startTime, err := d.U64()
	if err != nil {
		return nil, err
	}
	s.AddField("StartTime", MakeU64(startTime))

	reservedFlags, err := d.U32()
	if err != nil {
		return nil, err
	}
	s.AddField("ReservedFlags", MakeU32(reservedFlags))

	buffersLost, err := d.U32()
	if err != nil {
		return nil, err
	}
	s.AddField("BuffersLost", MakeU32(buffersLost))

	return s, nil
}
