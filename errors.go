// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jinto

import (
	"fmt"
	"reflect"
)

// Error is the type of the errors reported by a Converter when the shape of
// the input does not match the target type. Error values are comparable, so
// callers may check for them with errors.Is.
type Error byte

// Constants defining the valid Error values.
const (
	NotInteger   Error = iota + 1 // value is not an integer
	NotDouble                     // value is not a number
	NotString                     // value is not a string
	NotBool                       // value is not a Boolean
	NotNull                       // value is not null
	NotExact                      // number does not fit the target exactly
	UnknownName                   // name is not an enumerator or a field
	NotArray                      // value is not an array
	NotObject                     // value is not an object
	SizeMismatch                  // array length does not match the tuple
	ExtraData                     // input continues after the value
)

var errorStr = [...]string{
	NotInteger:   "value is not an integer",
	NotDouble:    "value is not a number",
	NotString:    "value is not a string",
	NotBool:      "value is not a Boolean",
	NotNull:      "value is not null",
	NotExact:     "number cannot be represented exactly",
	UnknownName:  "unknown name",
	NotArray:     "value is not an array",
	NotObject:    "value is not an object",
	SizeMismatch: "array size does not match",
	ExtraData:    "extra data after value",
}

// Error satisfies the error interface.
func (e Error) Error() string {
	if e == 0 || int(e) >= len(errorStr) {
		return fmt.Sprintf("conversion error %d", byte(e))
	}
	return errorStr[e]
}

// DecodeError reports a conversion failure together with the location of the
// input token at which it occurred.
type DecodeError struct {
	Location LineCol
	Err      error
}

// Error satisfies the error interface.
func (d *DecodeError) Error() string {
	return fmt.Sprintf("at %s: %v", d.Location, d.Err)
}

// Unwrap supports error wrapping.
func (d *DecodeError) Unwrap() error { return d.Err }

// UnsupportedTypeError is reported when a Converter is constructed for a type
// that has no conversion category.
type UnsupportedTypeError struct {
	Type reflect.Type
}

// Error satisfies the error interface.
func (u *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type %v", u.Type)
}
