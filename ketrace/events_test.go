// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ketrace

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// payloadBuilder accumulates a canonical payload byte by byte, in a
// fixed field order matching a category's decoder.
type payloadBuilder struct {
	buf bytes.Buffer
}

func (b *payloadBuilder) u32(x uint32) *payloadBuilder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], x)
	b.buf.Write(tmp[:])
	return b
}

func (b *payloadBuilder) u16(x uint16) *payloadBuilder {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], x)
	b.buf.Write(tmp[:])
	return b
}

func (b *payloadBuilder) u64(x uint64) *payloadBuilder {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], x)
	b.buf.Write(tmp[:])
	return b
}

func (b *payloadBuilder) ptr(is64 bool, x uint64) *payloadBuilder {
	if is64 {
		return b.u64(x)
	}
	return b.u32(uint32(x))
}

func (b *payloadBuilder) cstring(s string) *payloadBuilder {
	b.buf.WriteString(s)
	b.buf.WriteByte(0)
	return b
}

func (b *payloadBuilder) wstring(s string) *payloadBuilder {
	for _, r := range s {
		var tmp [2]byte
		binary.LittleEndian.PutUint16(tmp[:], uint16(r))
		b.buf.Write(tmp[:])
	}
	b.buf.Write([]byte{0, 0})
	return b
}

func (b *payloadBuilder) fixedWString(s string, codeUnits int) *payloadBuilder {
	units := make([]uint16, codeUnits)
	for i, r := range []rune(s) {
		if i >= codeUnits {
			break
		}
		units[i] = uint16(r)
	}
	for _, u := range units {
		var tmp [2]byte
		binary.LittleEndian.PutUint16(tmp[:], u)
		b.buf.Write(tmp[:])
	}
	return b
}

func (b *payloadBuilder) bytes() []byte { return b.buf.Bytes() }

// TestImageUnloadV2 decodes a canonical Image/Unload payload.
func TestImageUnloadV2(t *testing.T) {
	const is64 = true
	base := uint64(0x7FEF7780000)
	filename := `\Windows\System32\wbem\fastprox.dll`

	b := new(payloadBuilder)
	b.ptr(is64, base)               // BaseAddress
	b.ptr(is64, 0xE2000)            // ModuleSize
	b.u32(5956)                     // ProcessId
	b.u32(948129)                   // ImageCheckSum
	b.u32(1247534846)               // TimeDateStamp
	b.u32(0)                        // Reserved0
	b.ptr(is64, base)               // DefaultBase == BaseAddress
	b.u32(0).u32(0).u32(0).u32(0)   // Reserved1-4
	b.wstring(filename)             // ImageFileName

	category, operation, fields, ok := Decode(ProviderImage, imageOpUnload, 2, is64, b.bytes())
	if !ok {
		t.Fatal("Decode(Image/Unload) = ok false")
	}
	if category != "Image" || operation != "Unload" {
		t.Fatalf("Decode(Image/Unload) = (%q, %q), want (Image, Unload)", category, operation)
	}

	want := NewStruct()
	want.AddField("BaseAddress", MakeU64(base))
	want.AddField("ModuleSize", MakeU64(0xE2000))
	want.AddField("ProcessId", MakeU32(5956))
	want.AddField("ImageCheckSum", MakeU32(948129))
	want.AddField("TimeDateStamp", MakeU32(1247534846))
	want.AddField("Reserved0", MakeU32(0))
	want.AddField("DefaultBase", MakeU64(base))
	want.AddField("Reserved1", MakeU32(0))
	want.AddField("Reserved2", MakeU32(0))
	want.AddField("Reserved3", MakeU32(0))
	want.AddField("Reserved4", MakeU32(0))
	want.AddField("ImageFileName", MakeWString(filename))

	if !DeepEqual(MakeStruct(fields), MakeStruct(want)) {
		t.Fatalf("Image/Unload fields = %+v, want %+v", fields, want)
	}
}

// TestEventTraceHeaderV2 decodes a canonical EventTrace/Header
// payload, including its embedded TimeZoneInformation composite.
func TestEventTraceHeaderV2(t *testing.T) {
	const is64 = true

	b := new(payloadBuilder)
	b.u32(64 * 1024) // BufferSize
	b.u32(2)         // Version
	b.u32(5)         // ProviderVersion
	b.u32(4)         // NumberOfProcessors

	b.u64(128965619347580000) // EndTime

	b.u32(1000)              // TimerResolution
	b.u32(0)                 // MaxFileSize
	b.u32(1)                 // LogFileMode
	b.u32(42)                // BuffersWritten
	b.u32(24)                // StartBuffers
	b.u32(8)                 // PointerSize
	b.u32(0)                 // EventsLost
	b.u32(2800)              // CPUSpeed

	b.ptr(is64, 0x7FF6E2A10000) // LoggerName
	b.ptr(is64, 0x7FF6E2A20000) // LogFileName

	b.u32(300). // Bias
			fixedWString("Pacific Standard Time", 32)
	for _, v := range []int16{2026, 3, 0, 8, 2, 0, 0, 0} { // StandardDate
		b.u16(uint16(v))
	}
	b.u32(0) // StandardBias
	b.fixedWString("Pacific Daylight Time", 32)
	for _, v := range []int16{2026, 11, 0, 1, 2, 0, 0, 0} { // DaylightDate
		b.u16(uint16(v))
	}
	daylightBias := int32(-60)
	b.u32(uint32(daylightBias)) // DaylightBias

	b.u64(0)                  // Reserved
	b.u64(128965600000000000) // BootTime
	b.u64(10000000)           // PerfFreq
	b.u64(128965619000000000) // StartTime
	b.u32(0)                  // ReservedFlags
	b.u32(0)                  // BuffersLost

	category, operation, fields, ok := Decode(ProviderEventTraceEvent, eventTraceOpHeader, 2, is64, b.bytes())
	if !ok {
		t.Fatal("Decode(EventTraceEvent/Header) = ok false")
	}
	if category != "EventTraceEvent" || operation != "Header" {
		t.Fatalf("Decode(EventTraceEvent/Header) = (%q, %q), want (EventTraceEvent, Header)", category, operation)
	}

	wantTZI := NewStruct()
	wantTZI.AddField("Bias", MakeI32(300))
	wantTZI.AddField("StandardName", MakeWString("Pacific Standard Time"))
	wantStdDate := NewStruct()
	for i, name := range []string{"wYear", "wMonth", "wDayOfWeek", "wDay", "wHour", "wMinute", "wSecond", "wMilliseconds"} {
		wantStdDate.AddField(name, MakeI16([]int16{2026, 3, 0, 8, 2, 0, 0, 0}[i]))
	}
	wantTZI.AddField("StandardDate", MakeStruct(wantStdDate))
	wantTZI.AddField("StandardBias", MakeI32(0))
	wantTZI.AddField("DaylightName", MakeWString("Pacific Daylight Time"))
	wantDstDate := NewStruct()
	for i, name := range []string{"wYear", "wMonth", "wDayOfWeek", "wDay", "wHour", "wMinute", "wSecond", "wMilliseconds"} {
		wantDstDate.AddField(name, MakeI16([]int16{2026, 11, 0, 1, 2, 0, 0, 0}[i]))
	}
	wantTZI.AddField("DaylightDate", MakeStruct(wantDstDate))
	wantTZI.AddField("DaylightBias", MakeI32(-60))

	want := NewStruct()
	want.AddField("BufferSize", MakeU32(64*1024))
	want.AddField("Version", MakeU32(2))
	want.AddField("ProviderVersion", MakeU32(5))
	want.AddField("NumberOfProcessors", MakeU32(4))
	want.AddField("EndTime", MakeU64(128965619347580000))
	want.AddField("TimerResolution", MakeU32(1000))
	want.AddField("MaxFileSize", MakeU32(0))
	want.AddField("LogFileMode", MakeU32(1))
	want.AddField("BuffersWritten", MakeU32(42))
	want.AddField("StartBuffers", MakeU32(24))
	want.AddField("PointerSize", MakeU32(8))
	want.AddField("EventsLost", MakeU32(0))
	want.AddField("CPUSpeed", MakeU32(2800))
	want.AddField("LoggerName", MakeU64(0x7FF6E2A10000))
	want.AddField("LogFileName", MakeU64(0x7FF6E2A20000))
	want.AddField("TimeZoneInformation", MakeStruct(wantTZI))
	want.AddField("Reserved", MakeU64(0))
	want.AddField("BootTime", MakeU64(128965600000000000))
	want.AddField("PerfFreq", MakeU64(10000000))
	want.AddField("StartTime", MakeU64(128965619000000000))
	want.AddField("ReservedFlags", MakeU32(0))
	want.AddField("BuffersLost", MakeU32(0))

	if !DeepEqual(MakeStruct(fields), MakeStruct(want)) {
		t.Fatalf("EventTraceEvent/Header fields = %+v, want %+v", fields, want)
	}
}

// TestProcessStartV4 decodes a canonical Process/Start payload,
// including its embedded SID.
func TestProcessStartV4(t *testing.T) {
	const is64 = true

	b := new(payloadBuilder)
	b.u64(0xFFFFE0001AFC4080) // UniqueProcessKey
	b.u32(2700)               // ProcessId
	b.u32(5896)                // ParentId
	b.u32(5)                   // SessionId
	b.u32(259)                 // ExitStatus (as bit pattern of i32)
	b.ptr(is64, 2745348096)    // DirectoryTableBase
	b.u32(0)                   // Flags

	// SID: pointer-width PSid, u32 Attributes, 4 bytes pad (64-bit),
	// then 4*5+8 = 28 bytes of SID body whose byte 1
	// (sub_authority_count) is 5.
	b.ptr(is64, 0x1122334455667788) // PSid
	b.u32(7)                        // Attributes
	b.u32(0)                        // 64-bit alignment padding
	sidBody := make([]byte, 28)
	sidBody[1] = 5 // sub_authority_count
	b.buf.Write(sidBody)

	b.cstring("xperf.exe")
	b.wstring("xperf  -stop")
	b.wstring("") // PackageFullName
	b.wstring("") // ApplicationId

	category, operation, fields, ok := Decode(ProviderProcess, processOpStart, 4, is64, b.bytes())
	if !ok {
		t.Fatal("Decode(Process/Start) = ok false")
	}
	if category != "Process" || operation != "Start" {
		t.Fatalf("Decode(Process/Start) = (%q, %q), want (Process, Start)", category, operation)
	}

	if v, ok := fields.GetAsU64("UniqueProcessKey"); !ok || v != 0xFFFFE0001AFC4080 {
		t.Errorf("UniqueProcessKey = %#x, %v", v, ok)
	}
	if v, ok := fields.GetAsU64("ProcessId"); !ok || v != 2700 {
		t.Errorf("ProcessId = %v, %v", v, ok)
	}
	if v, ok := fields.GetAsString("ImageFileName"); !ok || v != "xperf.exe" {
		t.Errorf("ImageFileName = %q, %v", v, ok)
	}
	if v, ok := fields.GetAsWString("CommandLine"); !ok || v != "xperf  -stop" {
		t.Errorf("CommandLine = %q, %v", v, ok)
	}
	if v, ok := fields.GetAsWString("PackageFullName"); !ok || v != "" {
		t.Errorf("PackageFullName = %q, %v", v, ok)
	}

	sidVal, ok := fields.GetField("UserSID")
	if !ok {
		t.Fatal("UserSID field missing")
	}
	sid, ok := sidVal.AsStruct()
	if !ok {
		t.Fatal("UserSID is not a struct")
	}
	if v, ok := sid.GetAsU64("SubAuthorityCount"); !ok || v != 5 {
		t.Errorf("SubAuthorityCount = %v, %v, want 5", v, ok)
	}
	if v, ok := sid.GetAsU64("Attributes"); !ok || v != 7 {
		t.Errorf("Attributes = %v, %v, want 7", v, ok)
	}
}

// TestStackWalkStackV2 decodes a canonical StackWalk/Stack payload
// with a multi-frame call stack.
func TestStackWalkStackV2(t *testing.T) {
	const is64 = true

	b := new(payloadBuilder)
	b.u64(1198356524732) // EventTimeStamp
	b.u32(7828)           // StackProcess
	b.u32(1404)           // StackThread
	for i := 0; i < 21; i++ {
		b.u64(uint64(0x400000 + i*0x10))
	}

	category, operation, fields, ok := Decode(ProviderStackWalk, stackWalkOpStack, 2, is64, b.bytes())
	if !ok {
		t.Fatal("Decode(StackWalk/Stack) = ok false")
	}
	if category != "StackWalk" || operation != "Stack" {
		t.Fatalf("Decode(StackWalk/Stack) = (%q, %q), want (StackWalk, Stack)", category, operation)
	}

	stack, ok := fields.GetAsArray("Stack")
	if !ok {
		t.Fatal("Stack field missing or not an array")
	}
	if stack.Len() != 21 {
		t.Fatalf("Stack has %d elements, want 21", stack.Len())
	}
	if v, ok := stack.At(0).AsU64(); !ok || v != 0x400000 {
		t.Errorf("Stack[0] = %#x, %v, want 0x400000", v, ok)
	}
}

// TestPerfInfoDebuggerEnabledV2 verifies that both a nil and a
// zero-length payload decode successfully to an empty struct.
func TestPerfInfoDebuggerEnabledV2(t *testing.T) {
	for _, payload := range [][]byte{nil, {}} {
		category, operation, fields, ok := Decode(ProviderPerfInfo, perfInfoOpDebuggerEnabled, 2, true, payload)
		if !ok {
			t.Fatalf("Decode(PerfInfo/DebuggerEnabled, payload=%v) = ok false", payload)
		}
		if category != "PerfInfo" || operation != "DebuggerEnabled" {
			t.Fatalf("Decode(PerfInfo/DebuggerEnabled) = (%q, %q), want (PerfInfo, DebuggerEnabled)", category, operation)
		}
		if fields.Len() != 0 {
			t.Fatalf("DebuggerEnabled fields = %+v, want empty", fields)
		}
	}
}

func TestDecodeUnknownTriple(t *testing.T) {
	_, _, _, ok := Decode(ProviderImage, 0xFF, 0xFF, true, nil)
	if ok {
		t.Fatal("Decode() on an unregistered (provider, opcode, version) reported ok=true")
	}
}

func TestDecodeUnknownProvider(t *testing.T) {
	var unknown GUID
	_, _, _, ok := Decode(unknown, imageOpLoad, 2, true, nil)
	if ok {
		t.Fatal("Decode() on an unrecognized provider reported ok=true")
	}
}

func TestDecodeTruncatedPayloadDropped(t *testing.T) {
	// Image/Load V2 needs far more than 4 bytes.
	_, _, _, ok := Decode(ProviderImage, imageOpLoad, 2, true, []byte{1, 2, 3, 4})
	if ok {
		t.Fatal("Decode() on a truncated payload reported ok=true")
	}
}

func TestThreadStartV2(t *testing.T) {
	const is64 = true
	b := new(payloadBuilder)
	b.u32(100) // ProcessId
	b.u32(200) // ThreadId
	for i := 0; i < 7; i++ {
		b.ptr(is64, uint64(i))
	}
	b.u32(0) // SubProcessTag

	category, operation, fields, ok := Decode(ProviderThread, threadOpStart, 2, is64, b.bytes())
	if !ok {
		t.Fatal("Decode(Thread/Start) = ok false")
	}
	if category != "Thread" || operation != "Start" {
		t.Fatalf("got (%q, %q)", category, operation)
	}
	if v, ok := fields.GetAsU64("ThreadId"); !ok || v != 200 {
		t.Errorf("ThreadId = %v, %v, want 200", v, ok)
	}
}

func TestFileIONameV2(t *testing.T) {
	const is64 = true
	b := new(payloadBuilder)
	b.ptr(is64, 0xdeadbeef)
	b.wstring(`C:\Windows\System32\ntdll.dll`)

	category, operation, fields, ok := Decode(ProviderFileIO, fileIOOpName, 2, is64, b.bytes())
	if !ok {
		t.Fatal("Decode(FileIO/Name) = ok false")
	}
	if category != "FileIO" || operation != "Name" {
		t.Fatalf("got (%q, %q)", category, operation)
	}
	if v, ok := fields.GetAsWString("FileName"); !ok || v != `C:\Windows\System32\ntdll.dll` {
		t.Errorf("FileName = %q, %v", v, ok)
	}
}

func TestRegistryCreateV1(t *testing.T) {
	const is64 = true
	b := new(payloadBuilder)
	b.u64(123456789) // InitialTime
	b.u32(0)          // Status
	b.ptr(is64, 0x10) // KeyHandle
	b.wstring(`\Registry\Machine\Software`)

	category, operation, fields, ok := Decode(ProviderRegistry, registryOpCreate, 1, is64, b.bytes())
	if !ok {
		t.Fatal("Decode(Registry/Create) = ok false")
	}
	if category != "Registry" || operation != "Create" {
		t.Fatalf("got (%q, %q)", category, operation)
	}
	if v, ok := fields.GetAsWString("KeyName"); !ok || v != `\Registry\Machine\Software` {
		t.Errorf("KeyName = %q, %v", v, ok)
	}
}

func TestDiskIOReadV2(t *testing.T) {
	const is64 = true
	b := new(payloadBuilder)
	b.u32(0).u32(0).u32(4096).u32(0) // DiskNumber, IrpFlags, TransferSize, Reserved
	b.u64(8192)                      // ByteOffset
	b.ptr(is64, 1).ptr(is64, 2)      // FileObject, Irp
	b.u64(500)                       // HighResResponseTime

	category, operation, fields, ok := Decode(ProviderDiskIO, diskIOOpRead, 2, is64, b.bytes())
	if !ok {
		t.Fatal("Decode(DiskIO/Read) = ok false")
	}
	if category != "DiskIO" || operation != "Read" {
		t.Fatalf("got (%q, %q)", category, operation)
	}
	if v, ok := fields.GetAsU64("TransferSize"); !ok || v != 4096 {
		t.Errorf("TransferSize = %v, %v, want 4096", v, ok)
	}
}

func TestTcplpConnectV1(t *testing.T) {
	b := new(payloadBuilder)
	b.u32(4321)                         // PID
	b.u16(40)                           // Size
	b.u32(0x0A000001).u32(0x0A000002)   // DAddr, SAddr
	b.u16(443).u16(51000)               // DPort, SPort

	category, operation, fields, ok := Decode(ProviderTcplp, tcplpOpConnect, 1, true, b.bytes())
	if !ok {
		t.Fatal("Decode(Tcplp/Connect) = ok false")
	}
	if category != "Tcplp" || operation != "Connect" {
		t.Fatalf("got (%q, %q)", category, operation)
	}
	if v, ok := fields.GetAsU64("DPort"); !ok || v != 443 {
		t.Errorf("DPort = %v, %v, want 443", v, ok)
	}
}

func TestPageFaultHardFaultV2(t *testing.T) {
	const is64 = true
	b := new(payloadBuilder)
	b.u64(1000)             // InitialTime
	b.u64(2000)             // ReadOffset
	b.ptr(is64, 0x7ff00000) // VirtualAddress
	b.ptr(is64, 0x10)       // FileObject
	b.u32(42)               // TThreadId
	b.u32(4096)             // ByteCount

	category, operation, fields, ok := Decode(ProviderPageFault, pageFaultOpHardFault, 2, is64, b.bytes())
	if !ok {
		t.Fatal("Decode(PageFault/HardFault) = ok false")
	}
	if category != "PageFault" || operation != "HardFault" {
		t.Fatalf("got (%q, %q)", category, operation)
	}
	if v, ok := fields.GetAsU64("ByteCount"); !ok || v != 4096 {
		t.Errorf("ByteCount = %v, %v, want 4096", v, ok)
	}
}
