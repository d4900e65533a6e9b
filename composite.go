// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jinto

import (
	"reflect"

	"go4.org/mem"
)

// sequence converts an array into a slice. Elements are appended in the
// order they arrive.
type sequence struct {
	composite
}

func newSequence(v reflect.Value, up parent) *sequence {
	return &sequence{composite: newComposite(v, up, NotArray)}
}

func (s *sequence) handle(ev event) error {
	if s.active {
		// The end of our own array is bounced back by the child as signalEnd.
		return s.forward(ev, s)
	}
	switch ev.kind {
	case evBeginArray:
		if s.target.IsNil() {
			s.target.Set(reflect.MakeSlice(s.target.Type(), 0, 0))
		} else {
			s.target.SetLen(0)
		}
		s.active = true
		return nil
	case evEndArray:
		s.up.signalEnd()
		return nil
	}
	return s.shape
}

// signalValue implements part of the parent interface.
func (s *sequence) signalValue() {
	s.target.Set(reflect.Append(s.target, s.staging))
	s.staging.SetZero()
}

// mapping converts an object into a map with string keys. A repeated key
// replaces the value stored by an earlier occurrence.
type mapping struct {
	composite
	key []byte // pending key text
}

func newMapping(v reflect.Value, up parent) *mapping {
	return &mapping{composite: newComposite(v, up, NotObject)}
}

func (m *mapping) handle(ev event) error {
	if m.active {
		return m.forward(ev, m)
	}
	switch ev.kind {
	case evBeginObject:
		if m.target.IsNil() {
			m.target.Set(reflect.MakeMap(m.target.Type()))
		}
		return nil
	case evKeyPart:
		m.key = mem.Append(m.key, ev.text)
		return nil
	case evKey:
		m.key = mem.Append(m.key, ev.text)
		m.active = true
		return nil
	case evEndObject:
		m.up.signalValue()
		return nil
	case evEndArray:
		m.up.signalEnd()
		return nil
	}
	return m.shape
}

// signalValue implements part of the parent interface.
func (m *mapping) signalValue() {
	kt := m.target.Type().Key()
	m.target.SetMapIndex(reflect.ValueOf(string(m.key)).Convert(kt), m.staging)
	m.key = m.key[:0]
	m.staging.SetZero()
	m.active = false
}
