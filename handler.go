// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jinto

import "go4.org/mem"

// A Handler handles events from parsing an input stream. If a method reports
// an error, parsing stops and that error is returned to the caller without
// modification.
//
// Text arguments are only valid for the duration of the method call. If the
// method needs to retain the text after it returns, it must copy it.
//
// A source may split long strings, keys, numbers, and comments into several
// fragments. Each fragment but the last is delivered by the corresponding
// Part method, and the last by the method that completes the value. The count
// argument n reports the total number of bytes delivered so far, including
// the current fragment.
type Handler interface {
	// Begin a new top-level value.
	BeginDocument() error

	// End the current top-level value.
	EndDocument() error

	// Begin a new object.
	BeginObject() error

	// End the most-recently-opened object, which had n members.
	EndObject(n int) error

	// Begin a new array.
	BeginArray() error

	// End the most-recently-opened array, which had n elements.
	EndArray(n int) error

	// Report a fragment of an object key.
	KeyPart(text mem.RO, n int) error

	// Report the final fragment of an object key.
	Key(text mem.RO, n int) error

	// Report a fragment of a string value.
	StringPart(text mem.RO, n int) error

	// Report the final fragment of a string value.
	StringValue(text mem.RO, n int) error

	// Report a fragment of the raw text of a number.
	NumberPart(text mem.RO) error

	// Report a signed integer value, with the final fragment of its text.
	Int64(v int64, raw mem.RO) error

	// Report an integer value too large for an int64.
	Uint64(v uint64, raw mem.RO) error

	// Report a floating-point value, or an integer too large for a uint64.
	Float64(v float64, raw mem.RO) error

	// Report a Boolean constant, true or false.
	Bool(v bool) error

	// Report the null constant.
	Null() error

	// Report a fragment of a comment.
	CommentPart(text mem.RO) error

	// Report the final fragment of a comment. Line comments include their
	// leading "//" and block comments include "/*" and "*/".
	Comment(text mem.RO) error
}

// eventKind identifies a value event delivered to a converter.
type eventKind byte

const (
	evBeginObject eventKind = iota
	evEndObject
	evBeginArray
	evEndArray
	evKeyPart
	evKey
	evStringPart
	evString
	evNumberPart
	evInt64
	evUint64
	evFloat64
	evBool
	evNull
)

var eventStr = [...]string{
	evBeginObject: "BeginObject",
	evEndObject:   "EndObject",
	evBeginArray:  "BeginArray",
	evEndArray:    "EndArray",
	evKeyPart:     "KeyPart",
	evKey:         "Key",
	evStringPart:  "StringPart",
	evString:      "StringValue",
	evNumberPart:  "NumberPart",
	evInt64:       "Int64",
	evUint64:      "Uint64",
	evFloat64:     "Float64",
	evBool:        "Bool",
	evNull:        "Null",
}

func (k eventKind) String() string {
	if int(k) >= len(eventStr) {
		return "invalid event"
	}
	return eventStr[k]
}

// An event is a single value event. Only the fields relevant to its kind are
// populated.
type event struct {
	kind eventKind
	text mem.RO // key, string, or raw number text
	n    int    // count for ends, keys, and strings
	i    int64
	u    uint64
	f    float64
	b    bool
}
