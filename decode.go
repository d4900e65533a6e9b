// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jinto

import (
	"bytes"
	"errors"
	"io"
)

// Unmarshal converts the JSON value in data into the value pointed to by v.
// The input must contain exactly one value: further values are reported as
// ExtraData, and an input with no value reports io.ErrUnexpectedEOF.
//
// Conversion failures are reported as a *DecodeError; syntax errors as a
// *SyntaxError.
func Unmarshal(data []byte, v any) error {
	c, err := NewConverter(v)
	if err != nil {
		return err
	}
	st := NewStream(bytes.NewReader(data))
	if err := st.Parse(c); err != nil {
		return locate(st, err)
	} else if !c.Done() {
		return io.ErrUnexpectedEOF
	}
	return nil
}

// A Decoder reads a sequence of JSON values from an input stream and converts
// them into Go values.
type Decoder struct {
	st *Stream
}

// NewDecoder constructs a Decoder that consumes input from r.
func NewDecoder(r io.Reader) *Decoder { return &Decoder{st: NewStream(r)} }

// AllowComments configures d to ignore (true) or reject (false) comments.
func (d *Decoder) AllowComments(ok bool) { d.st.AllowComments(ok) }

// AllowTrailingCommas configures d to allow (true) or reject (false) trailing
// commas in objects and arrays.
func (d *Decoder) AllowTrailingCommas(ok bool) { d.st.AllowTrailingCommas(ok) }

// SetFragmentSize configures d to deliver long text to the converter in
// fragments of at most n bytes. This does not affect the values decoded.
func (d *Decoder) SetFragmentSize(n int) { d.st.SetFragmentSize(n) }

// Decode converts the next JSON value from the input into the value pointed
// to by v. At the end of the input, Decode returns io.EOF.
func (d *Decoder) Decode(v any) error {
	c, err := NewConverter(v)
	if err != nil {
		return err
	}
	if err := d.st.ParseOne(c); err == io.EOF {
		return err
	} else if err != nil {
		return locate(d.st, err)
	}
	return nil
}

// locate attaches the current location of st to a conversion error.
func locate(st *Stream, err error) error {
	var serr *SyntaxError
	if errors.As(err, &serr) {
		return err
	}
	return &DecodeError{Location: st.Location().First, Err: err}
}
