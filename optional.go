// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jinto

import "reflect"

// optional converts null into a nil pointer, and any other value into a
// pointer to a new value of the element type.
type optional struct {
	up      parent
	target  reflect.Value
	staging reflect.Value
	inner   converter // constructed on first use
	active  bool
}

func newOptional(v reflect.Value, up parent) *optional {
	return &optional{up: up, target: v, staging: reflect.New(v.Type().Elem()).Elem()}
}

func (o *optional) handle(ev event) error {
	if !o.active {
		switch ev.kind {
		case evNull:
			o.target.SetZero()
			o.up.signalValue()
			return nil
		case evEndArray:
			o.up.signalEnd()
			return nil
		}
		o.active = true
	}
	if o.inner == nil {
		o.inner = newConverter(o.staging, o)
	}
	return o.inner.handle(ev)
}

// signalValue implements part of the parent interface.
func (o *optional) signalValue() {
	p := reflect.New(o.staging.Type())
	p.Elem().Set(o.staging)
	o.target.Set(p)
	o.staging.SetZero()
	o.active = false
	o.up.signalValue()
}

// signalEnd implements part of the parent interface.
func (o *optional) signalEnd() {
	o.active = false
	o.up.signalEnd()
}
