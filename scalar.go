// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jinto

import (
	"math"
	"reflect"

	"go4.org/mem"
)

// scalar is the shared state of the scalar converters.
type scalar struct {
	up  parent
	bad Error // reported for events of the wrong type
}

// reject handles an event the scalar does not accept. The end of an array is
// passed to the parent as signalEnd, since a scalar element never opens an
// array of its own.
func (s *scalar) reject(ev event) error {
	if ev.kind == evEndArray {
		s.up.signalEnd()
		return nil
	}
	return s.bad
}

// done reports completion of a value to the parent.
func (s *scalar) done() error { s.up.signalValue(); return nil }

type intConverter struct {
	scalar
	v reflect.Value
}

func (c *intConverter) handle(ev event) error {
	switch ev.kind {
	case evNumberPart:
		return nil
	case evInt64:
		if c.v.OverflowInt(ev.i) {
			return NotExact
		}
		c.v.SetInt(ev.i)
		return c.done()
	case evUint64:
		if ev.u > math.MaxInt64 || c.v.OverflowInt(int64(ev.u)) {
			return NotExact
		}
		c.v.SetInt(int64(ev.u))
		return c.done()
	}
	return c.reject(ev)
}

type uintConverter struct {
	scalar
	v reflect.Value
}

func (c *uintConverter) handle(ev event) error {
	switch ev.kind {
	case evNumberPart:
		return nil
	case evInt64:
		if ev.i < 0 || c.v.OverflowUint(uint64(ev.i)) {
			return NotExact
		}
		c.v.SetUint(uint64(ev.i))
		return c.done()
	case evUint64:
		if c.v.OverflowUint(ev.u) {
			return NotExact
		}
		c.v.SetUint(ev.u)
		return c.done()
	}
	return c.reject(ev)
}

type floatConverter struct {
	scalar
	v reflect.Value
}

func (c *floatConverter) handle(ev event) error {
	switch ev.kind {
	case evNumberPart:
		return nil
	case evInt64:
		c.v.SetFloat(float64(ev.i))
	case evUint64:
		c.v.SetFloat(float64(ev.u))
	case evFloat64:
		c.v.SetFloat(ev.f)
	default:
		return c.reject(ev)
	}
	return c.done()
}

type stringConverter struct {
	scalar
	v   reflect.Value
	buf []byte
}

func (c *stringConverter) handle(ev event) error {
	switch ev.kind {
	case evStringPart:
		c.buf = mem.Append(c.buf, ev.text)
		return nil
	case evString:
		c.buf = mem.Append(c.buf, ev.text)
		c.v.SetString(string(c.buf))
		c.buf = c.buf[:0]
		return c.done()
	}
	return c.reject(ev)
}

type boolConverter struct {
	scalar
	v reflect.Value
}

func (c *boolConverter) handle(ev event) error {
	if ev.kind != evBool {
		return c.reject(ev)
	}
	c.v.SetBool(ev.b)
	return c.done()
}

type nullConverter struct {
	scalar
	v reflect.Value
}

func (c *nullConverter) handle(ev event) error {
	if ev.kind != evNull {
		return c.reject(ev)
	}
	c.v.SetZero()
	return c.done()
}

// enumConverter converts a string naming an enumerator. The name is matched
// only once it is complete.
type enumConverter struct {
	scalar
	v   reflect.Value
	tab *enumTable
	buf []byte
}

func (c *enumConverter) handle(ev event) error {
	switch ev.kind {
	case evStringPart:
		c.buf = mem.Append(c.buf, ev.text)
		return nil
	case evString:
		c.buf = mem.Append(c.buf, ev.text)
		val, ok := c.tab.values[string(c.buf)]
		c.buf = c.buf[:0]
		if !ok {
			return UnknownName
		}
		c.v.Set(val)
		return c.done()
	}
	return c.reject(ev)
}
