// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
//
// An event script is a sequence of strings, each describing one Handler
// event:
//
//	<  >          BeginDocument, EndDocument
//	{  }  }N      BeginObject, EndObject (with count N, default 0)
//	[  ]  ]N      BeginArray, EndArray (with count N, default 0)
//	kp:text       KeyPart
//	k:text        Key
//	sp:text       StringPart
//	s:text        StringValue
//	np:text       NumberPart
//	i:text        Int64 (text is the raw number)
//	u:text        Uint64
//	f:text        Float64
//	true false    Bool
//	null          Null
//	cp:text       CommentPart
//	c:text        Comment
//
// The tags of text events may include an explicit count, as in "sp4:abcd".
// Otherwise Feed computes the count as the total length of the fragments of
// the current key or string.
package testutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/jinto"
	"go4.org/mem"
)

// Feed delivers the events described by script to h, stopping at the first
// error reported by h.
func Feed(h jinto.Handler, script ...string) error {
	var total int // length of the current key or string so far
	for _, ev := range script {
		isPart, err := feedOne(h, ev, &total)
		if err != nil {
			return err
		} else if !isPart {
			total = 0
		}
	}
	return nil
}

// feedOne delivers a single event to h, and reports whether it was a
// fragment. It panics if ev is malformed.
func feedOne(h jinto.Handler, ev string, total *int) (bool, error) {
	switch ev {
	case "<":
		return false, h.BeginDocument()
	case ">":
		return false, h.EndDocument()
	case "{":
		return false, h.BeginObject()
	case "[":
		return false, h.BeginArray()
	case "true", "false":
		return false, h.Bool(ev == "true")
	case "null":
		return false, h.Null()
	}
	if n, ok := strings.CutPrefix(ev, "}"); ok {
		return false, h.EndObject(count(n))
	} else if n, ok := strings.CutPrefix(ev, "]"); ok {
		return false, h.EndArray(count(n))
	}

	tag, text, ok := strings.Cut(ev, ":")
	if !ok {
		panic(fmt.Sprintf("invalid script event %q", ev))
	}
	name := strings.TrimRight(tag, "0123456789")
	*total += len(text)
	n := *total
	if d := tag[len(name):]; d != "" {
		n = count(d)
	}
	t := mem.S(text)
	switch name {
	case "kp":
		return true, h.KeyPart(t, n)
	case "k":
		return false, h.Key(t, n)
	case "sp":
		return true, h.StringPart(t, n)
	case "s":
		return false, h.StringValue(t, n)
	case "np":
		return true, h.NumberPart(t)
	case "i":
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			panic(fmt.Sprintf("invalid int64 %q: %v", text, err))
		}
		return false, h.Int64(v, t)
	case "u":
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			panic(fmt.Sprintf("invalid uint64 %q: %v", text, err))
		}
		return false, h.Uint64(v, t)
	case "f":
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			panic(fmt.Sprintf("invalid float64 %q: %v", text, err))
		}
		return false, h.Float64(v, t)
	case "cp":
		return true, h.CommentPart(t)
	case "c":
		return false, h.Comment(t)
	}
	panic(fmt.Sprintf("invalid script event %q", ev))
}

func count(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		panic(fmt.Sprintf("invalid count %q", s))
	}
	return n
}

// Recorder is a jinto.Handler that records the events it receives as an
// event script.
type Recorder struct {
	// If true, record the counts of key and string events.
	Counts bool

	// The events recorded so far.
	Events []string
}

func (r *Recorder) add(s string) error { r.Events = append(r.Events, s); return nil }

func (r *Recorder) text(tag string, text mem.RO, n int) error {
	if r.Counts {
		tag += strconv.Itoa(n)
	}
	return r.add(tag + ":" + text.StringCopy())
}

func (r *Recorder) BeginDocument() error { return r.add("<") }
func (r *Recorder) EndDocument() error { return r.add(">") }
func (r *Recorder) BeginObject() error { return r.add("{") }
func (r *Recorder) EndObject(n int) error { return r.add("}" + strconv.Itoa(n)) }
func (r *Recorder) BeginArray() error { return r.add("[") }
func (r *Recorder) EndArray(n int) error { return r.add("]" + strconv.Itoa(n)) }

func (r *Recorder) KeyPart(text mem.RO, n int) error { return r.text("kp", text, n) }
func (r *Recorder) Key(text mem.RO, n int) error { return r.text("k", text, n) }
func (r *Recorder) StringPart(text mem.RO, n int) error { return r.text("sp", text, n) }
func (r *Recorder) StringValue(text mem.RO, n int) error { return r.text("s", text, n) }

func (r *Recorder) NumberPart(text mem.RO) error { return r.add("np:" + text.StringCopy()) }
func (r *Recorder) Int64(_ int64, raw mem.RO) error { return r.add("i:" + raw.StringCopy()) }
func (r *Recorder) Uint64(_ uint64, raw mem.RO) error { return r.add("u:" + raw.StringCopy()) }
func (r *Recorder) Float64(_ float64, raw mem.RO) error { return r.add("f:" + raw.StringCopy()) }
func (r *Recorder) Bool(v bool) error { return r.add(strconv.FormatBool(v)) }
func (r *Recorder) Null() error { return r.add("null") }
func (r *Recorder) CommentPart(text mem.RO) error { return r.add("cp:" + text.StringCopy()) }
func (r *Recorder) Comment(text mem.RO) error { return r.add("c:" + text.StringCopy()) }
