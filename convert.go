// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jinto

import (
	"fmt"
	"reflect"
)

// A converter consumes the value events for one target value.
//
// A converter reports the completion of its value by calling signalValue on
// its parent. A converter that receives the end of an array it did not open
// reports signalEnd to its parent instead, so that an enclosing composite
// learns that its element scope is exhausted.
type converter interface {
	handle(ev event) error
}

// A parent is notified by its child converters when they complete.
type parent interface {
	// The child has completed a value.
	signalValue()

	// The child saw the end of an enclosing array.
	signalEnd()
}

// newConverter constructs a converter that stores into v, which must be
// settable, and reports to up. The type of v must have been validated by
// checkType.
func newConverter(v reflect.Value, up parent) converter {
	p := planFor(v.Type())
	switch p.cat {
	case catEnum:
		return &enumConverter{scalar: scalar{up: up, bad: NotString}, v: v, tab: p.enum}
	case catInt:
		return &intConverter{scalar: scalar{up: up, bad: NotInteger}, v: v}
	case catUint:
		return &uintConverter{scalar: scalar{up: up, bad: NotInteger}, v: v}
	case catFloat:
		return &floatConverter{scalar: scalar{up: up, bad: NotDouble}, v: v}
	case catString:
		return &stringConverter{scalar: scalar{up: up, bad: NotString}, v: v}
	case catBool:
		return &boolConverter{scalar: scalar{up: up, bad: NotBool}, v: v}
	case catNull:
		return &nullConverter{scalar: scalar{up: up, bad: NotNull}, v: v}
	case catOptional:
		return newOptional(v, up)
	case catSequence:
		return newSequence(v, up)
	case catMap:
		return newMapping(v, up)
	case catTuple:
		return newTuple(v, p, up)
	case catRecord:
		return newRecord(v, p, up)
	default:
		panic(fmt.Sprintf("jinto: no converter for %v", v.Type()))
	}
}

// composite is the shared state of the sequence and map converters. It holds
// a staging value for the element being built and a child converter bound to
// that value, which is constructed on first use.
type composite struct {
	up      parent
	target  reflect.Value
	staging reflect.Value
	child   converter
	active  bool  // a child scope is open
	shape   Error // reported for events that need an open child
}

func newComposite(target reflect.Value, up parent, shape Error) composite {
	return composite{
		up:      up,
		target:  target,
		staging: reflect.New(target.Type().Elem()).Elem(),
		shape:   shape,
	}
}

// forward delivers ev to the child converter, whose parent is self.
func (c *composite) forward(ev event, self parent) error {
	if !c.active {
		return c.shape
	}
	if c.child == nil {
		c.child = newConverter(c.staging, self)
	}
	return c.child.handle(ev)
}

// signalEnd implements part of the parent interface. The child reports the
// end of this composite's own array, so this composite is complete.
func (c *composite) signalEnd() {
	c.active = false
	c.up.signalValue()
}
