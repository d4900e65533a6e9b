// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jinto

import (
	"reflect"

	"go4.org/mem"
)

// record converts an object into a struct whose fields are named by the
// object keys. A key that names no field is an error.
type record struct {
	up     parent
	target reflect.Value
	plan   *typePlan
	fields []converter // constructed on first use
	key    []byte      // pending key text
	field  int         // index of the current field; -1 if unresolved
}

func newRecord(v reflect.Value, p *typePlan, up parent) *record {
	return &record{up: up, target: v, plan: p, fields: make([]converter, len(p.fields)), field: -1}
}

func (r *record) handle(ev event) error {
	if r.field >= 0 {
		return r.fieldConverter().handle(ev)
	}
	switch ev.kind {
	case evBeginObject:
		r.key = r.key[:0]
		return nil
	case evKeyPart:
		r.key = mem.Append(r.key, ev.text)
		return nil
	case evKey:
		r.key = mem.Append(r.key, ev.text)
		i := r.plan.lookup(string(r.key))
		r.key = r.key[:0]
		if i < 0 {
			return UnknownName
		}
		r.field = i
		return nil
	case evEndObject:
		r.up.signalValue()
		return nil
	case evEndArray:
		r.up.signalEnd()
		return nil
	}
	return NotObject
}

func (r *record) fieldConverter() converter {
	c := r.fields[r.field]
	if c == nil {
		c = newConverter(r.target.FieldByIndex(r.plan.fields[r.field].index), r)
		r.fields[r.field] = c
	}
	return c
}

// signalValue implements part of the parent interface.
func (r *record) signalValue() { r.field = -1 }

// signalEnd implements part of the parent interface.
func (r *record) signalEnd() {
	r.field = -1
	r.up.signalValue()
}
