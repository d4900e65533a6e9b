// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jinto

import "go4.org/mem"

// NumberKind classifies the decoded value of a JSON number.
type NumberKind byte

// Constants defining the valid NumberKind values.
const (
	IntNumber   NumberKind = iota + 1 // an integer that fits in an int64
	UintNumber                        // an integer that fits only in a uint64
	FloatNumber                       // any other number
)

// A NumberValue is the decoded value of a JSON number. Only the field
// selected by Kind is meaningful.
type NumberValue struct {
	Kind  NumberKind
	Int   int64
	Uint  uint64
	Float float64
}

// ParseNumber decodes text, the text of a JSON number. A number with no
// fraction or exponent is an integer, decoded as an int64 if it fits, or
// otherwise as a uint64 if it fits. All other numbers are decoded as float64.
// ParseNumber reports an error if the magnitude of the number is too large
// for a float64.
func ParseNumber(text mem.RO) (NumberValue, error) {
	if mem.IndexByte(text, '.') < 0 && mem.IndexByte(text, 'e') < 0 && mem.IndexByte(text, 'E') < 0 {
		if v, err := mem.ParseInt(text, 10, 64); err == nil {
			return NumberValue{Kind: IntNumber, Int: v}, nil
		} else if u, err := mem.ParseUint(text, 10, 64); err == nil {
			return NumberValue{Kind: UintNumber, Uint: u}, nil
		}
	}
	f, err := mem.ParseFloat(text, 64)
	if err != nil {
		return NumberValue{}, err
	}
	return NumberValue{Kind: FloatNumber, Float: f}, nil
}

// Report delivers v to the Handler method for its kind, with raw as the
// final fragment of its text.
func (v NumberValue) Report(h Handler, raw mem.RO) error {
	switch v.Kind {
	case IntNumber:
		return h.Int64(v.Int, raw)
	case UintNumber:
		return h.Uint64(v.Uint, raw)
	default:
		return h.Float64(v.Float, raw)
	}
}
