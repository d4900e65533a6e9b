// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package gojson implements a source of jinto parse events driven by the
// tokenizer of github.com/goccy/go-json.
//
// A Source delivers the same events as a jinto.Stream for the same input,
// except that it does not support comments, trailing commas, or text
// fragments, and its errors do not carry locations.
package gojson

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/creachadair/jinto"
	json "github.com/goccy/go-json"
	"go4.org/mem"
)

// A Source reads JSON values from an input stream and delivers events for
// them to a jinto.Handler.
type Source struct {
	dec   *json.Decoder
	stack []frame
}

// A frame records the state of an open object or array.
type frame struct {
	object bool
	key    bool // the next string in an object is a key
	n      int  // members or elements so far
}

// NewSource constructs a Source that consumes input from r.
func NewSource(r io.Reader) *Source {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &Source{dec: dec}
}

// Parse delivers events for each value of the input to h, until the input is
// exhausted or an error occurs.
func (s *Source) Parse(h jinto.Handler) error {
	for {
		if err := s.ParseOne(h); err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
	}
}

// ParseOne delivers events for the next value of the input to h, framed by
// BeginDocument and EndDocument. If no further value is available, ParseOne
// returns io.EOF. Errors reported by h are returned without modification.
//
// If h reports an error, the rest of the current value is skipped, so that a
// later call begins with the next value of the input.
func (s *Source) ParseOne(h jinto.Handler) error {
	err := s.parseOne(h)
	if err != nil {
		s.skip()
	}
	return err
}

// skip discards the tokens of the values that are still open.
func (s *Source) skip() {
	for depth := len(s.stack); depth > 0; {
		tok, err := s.dec.Token()
		if err != nil {
			break
		}
		switch tok {
		case json.Delim('{'), json.Delim('['):
			depth++
		case json.Delim('}'), json.Delim(']'):
			depth--
		}
	}
	s.stack = s.stack[:0]
}

func (s *Source) parseOne(h jinto.Handler) error {
	tok, err := s.dec.Token()
	if err != nil {
		return err
	}
	if err := h.BeginDocument(); err != nil {
		return err
	}
	for {
		if err := s.deliver(h, tok); err != nil {
			return err
		}
		if len(s.stack) == 0 {
			return h.EndDocument()
		}
		tok, err = s.dec.Token()
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		} else if err != nil {
			return err
		}
	}
}

func (s *Source) top() *frame {
	if len(s.stack) == 0 {
		return nil
	}
	return &s.stack[len(s.stack)-1]
}

// valueDone records the completion of a value in the enclosing frame.
func (s *Source) valueDone() {
	if f := s.top(); f != nil {
		f.n++
		f.key = f.object
	}
}

func (s *Source) deliver(h jinto.Handler, tok any) error {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{object: true, key: true})
			return h.BeginObject()
		case '[':
			s.stack = append(s.stack, frame{})
			return h.BeginArray()
		case '}', ']':
			f := s.top()
			if f == nil {
				break
			}
			n := f.n
			s.stack = s.stack[:len(s.stack)-1]
			s.valueDone()
			if v == '}' {
				return h.EndObject(n)
			}
			return h.EndArray(n)
		}
		return fmt.Errorf("unexpected delimiter %q", rune(v))

	case string:
		if f := s.top(); f != nil && f.object && f.key {
			f.key = false
			return h.Key(mem.S(v), len(v))
		}
		s.valueDone()
		return h.StringValue(mem.S(v), len(v))

	case json.Number:
		s.valueDone()
		return number(h, string(v))

	case float64:
		s.valueDone()
		return h.Float64(v, mem.S(strconv.FormatFloat(v, 'g', -1, 64)))

	case bool:
		s.valueDone()
		return h.Bool(v)

	case nil:
		s.valueDone()
		return h.Null()
	}
	return fmt.Errorf("unexpected token %T", tok)
}

// number delivers a number to h, classified as a jinto.Stream does.
func number(h jinto.Handler, text string) error {
	raw := mem.S(text)
	num, err := jinto.ParseNumber(raw)
	if err != nil {
		return fmt.Errorf("number %s out of range", text)
	}
	return num.Report(h, raw)
}

// Unmarshal converts the JSON value in data into the value pointed to by v,
// using a Source. As with jinto.Unmarshal, the input must contain exactly one
// value.
func Unmarshal(data []byte, v any) error {
	c, err := jinto.NewConverter(v)
	if err != nil {
		return err
	}
	if err := NewSource(bytes.NewReader(data)).Parse(c); err != nil {
		return err
	} else if !c.Done() {
		return io.ErrUnexpectedEOF
	}
	return nil
}
