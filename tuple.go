// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jinto

import "reflect"

// tuple converts an array into a fixed number of positions, each with its
// own type. The positions are the elements of a Go array, or the fields of a
// struct embedding Tuple.
type tuple struct {
	up       parent
	target   reflect.Value
	plan     *typePlan
	children []converter // constructed on first use
	index    int         // current position; -1 before the array opens
}

func newTuple(v reflect.Value, p *typePlan, up parent) *tuple {
	n := len(p.fields)
	if v.Kind() == reflect.Array {
		n = v.Len()
	}
	return &tuple{up: up, target: v, plan: p, children: make([]converter, n), index: -1}
}

func (t *tuple) size() int { return len(t.children) }

// position returns the converter for the current position.
func (t *tuple) position() converter {
	c := t.children[t.index]
	if c == nil {
		var elt reflect.Value
		if t.target.Kind() == reflect.Array {
			elt = t.target.Index(t.index)
		} else {
			elt = t.target.FieldByIndex(t.plan.fields[t.index].index)
		}
		c = newConverter(elt, t)
		t.children[t.index] = c
	}
	return c
}

func (t *tuple) handle(ev event) error {
	switch {
	case t.index < 0:
		switch ev.kind {
		case evBeginArray:
			t.index = 0
			return nil
		case evEndArray:
			t.up.signalEnd()
			return nil
		}
		return NotArray

	case t.index >= t.size():
		if ev.kind == evEndArray {
			t.index = -1
			t.up.signalValue()
			return nil
		}
		return SizeMismatch
	}
	return t.position().handle(ev)
}

// signalValue implements part of the parent interface.
func (t *tuple) signalValue() { t.index++ }

// signalEnd implements part of the parent interface. The array closed before
// every position was filled; the positions not reached keep their values.
func (t *tuple) signalEnd() {
	t.index = -1
	t.up.signalValue()
}
