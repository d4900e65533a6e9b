// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jinto

import (
	"errors"
	"reflect"

	"go4.org/mem"
)

// A Converter is a Handler that converts the events for a single JSON value
// into a Go value. A Converter handles one document: value events after the
// value is complete, or after the end of the first document, are rejected
// with ExtraData. Comments are ignored.
//
// Events may also be delivered without document framing, in which case the
// Converter accepts the events of one value.
type Converter struct {
	top    converter
	active bool // value events are forwarded to top
	ended  bool // a document has ended
	done   bool // the top-level value is complete
}

// NewConverter constructs a Converter that stores into the value pointed to
// by v, which must be a non-nil pointer. It reports an *UnsupportedTypeError
// if the type of the value cannot be converted from JSON.
//
// The Converter updates the value in place as events arrive. If conversion
// fails, the value may have been partially updated.
func NewConverter(v any) (*Converter, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, errors.New("jinto: target must be a non-nil pointer")
	}
	if err := checkType(rv.Type().Elem()); err != nil {
		return nil, err
	}
	c := &Converter{active: true}
	c.top = newConverter(rv.Elem(), c)
	return c, nil
}

// Done reports whether c has received a complete value.
func (c *Converter) Done() bool { return c.done }

func (c *Converter) value(ev event) error {
	if !c.active || c.done {
		return ExtraData
	}
	return c.top.handle(ev)
}

// signalValue implements part of the parent interface.
func (c *Converter) signalValue() { c.done = true }

// signalEnd implements part of the parent interface.
func (c *Converter) signalEnd() { c.done = true }

// BeginDocument implements part of the Handler interface.
func (c *Converter) BeginDocument() error { c.active = !c.ended; return nil }

// EndDocument implements part of the Handler interface.
func (c *Converter) EndDocument() error { c.active, c.ended = false, true; return nil }

// BeginObject implements part of the Handler interface.
func (c *Converter) BeginObject() error { return c.value(event{kind: evBeginObject}) }

// EndObject implements part of the Handler interface.
func (c *Converter) EndObject(n int) error { return c.value(event{kind: evEndObject, n: n}) }

// BeginArray implements part of the Handler interface.
func (c *Converter) BeginArray() error { return c.value(event{kind: evBeginArray}) }

// EndArray implements part of the Handler interface.
func (c *Converter) EndArray(n int) error { return c.value(event{kind: evEndArray, n: n}) }

// KeyPart implements part of the Handler interface.
func (c *Converter) KeyPart(text mem.RO, n int) error {
	return c.value(event{kind: evKeyPart, text: text, n: n})
}

// Key implements part of the Handler interface.
func (c *Converter) Key(text mem.RO, n int) error {
	return c.value(event{kind: evKey, text: text, n: n})
}

// StringPart implements part of the Handler interface.
func (c *Converter) StringPart(text mem.RO, n int) error {
	return c.value(event{kind: evStringPart, text: text, n: n})
}

// StringValue implements part of the Handler interface.
func (c *Converter) StringValue(text mem.RO, n int) error {
	return c.value(event{kind: evString, text: text, n: n})
}

// NumberPart implements part of the Handler interface.
func (c *Converter) NumberPart(text mem.RO) error {
	return c.value(event{kind: evNumberPart, text: text})
}

// Int64 implements part of the Handler interface.
func (c *Converter) Int64(v int64, raw mem.RO) error {
	return c.value(event{kind: evInt64, i: v, text: raw})
}

// Uint64 implements part of the Handler interface.
func (c *Converter) Uint64(v uint64, raw mem.RO) error {
	return c.value(event{kind: evUint64, u: v, text: raw})
}

// Float64 implements part of the Handler interface.
func (c *Converter) Float64(v float64, raw mem.RO) error {
	return c.value(event{kind: evFloat64, f: v, text: raw})
}

// Bool implements part of the Handler interface.
func (c *Converter) Bool(v bool) error { return c.value(event{kind: evBool, b: v}) }

// Null implements part of the Handler interface.
func (c *Converter) Null() error { return c.value(event{kind: evNull}) }

// CommentPart implements part of the Handler interface. Comments are ignored.
func (c *Converter) CommentPart(mem.RO) error { return nil }

// Comment implements part of the Handler interface. Comments are ignored.
func (c *Converter) Comment(mem.RO) error { return nil }
