// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ketrace

// An Event wraps a timestamp, a header Struct, and a payload Struct.
// Event exclusively owns both trees; callers receive only borrows via
// Header and Payload. An Event is immutable after construction.
type Event struct {
	timestamp uint64
	header    *Struct
	payload   *Struct
}

// NewEvent constructs an Event. It takes ownership of header and
// payload; callers must not retain or mutate them afterward.
func NewEvent(timestamp uint64, header, payload *Struct) *Event {
	return &Event{timestamp, header, payload}
}

// Timestamp returns the event's opaque, monotone timestamp.
func (e *Event) Timestamp() uint64 { return e.timestamp }

// Header returns a borrow of the event's header fields: operation,
// category, process_id, thread_id, processor_number.
func (e *Event) Header() *Struct { return e.header }

// Payload returns a borrow of the event's decoded payload fields.
func (e *Event) Payload() *Struct { return e.payload }

// Well-known header field names, present on every Event.
const (
	HeaderOperation       = "operation"
	HeaderCategory        = "category"
	HeaderProcessID       = "process_id"
	HeaderThreadID        = "thread_id"
	HeaderProcessorNumber = "processor_number"
)

// Category returns the event's category header field, or "" if
// absent.
func (e *Event) Category() string {
	s, _ := e.header.GetAsString(HeaderCategory)
	return s
}

// Operation returns the event's operation header field, or "" if
// absent.
func (e *Event) Operation() string {
	s, _ := e.header.GetAsString(HeaderOperation)
	return s
}
