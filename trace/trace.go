// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package trace implements a jinto.Handler that writes a readable line of
// text for each parse event it receives.
package trace

import (
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/jinto"
	"github.com/fatih/color"
	"go4.org/mem"
)

// A Handler writes one line to its writer for each event. Lines are indented
// by the nesting depth of the event. If the Handler has a downstream handler,
// each event is passed on to it after the line is written.
type Handler struct {
	w     io.Writer
	next  jinto.Handler
	depth int
	paint []*color.Color // indexed by style, nil if uncolored
}

// New constructs a Handler that writes to w.
func New(w io.Writer) *Handler { return &Handler{w: w} }

// Tee constructs a Handler that writes to w, and passes each event on to next.
func Tee(w io.Writer, next jinto.Handler) *Handler { return &Handler{w: w, next: next} }

// SetColor enables or disables terminal colors in the output. Colors are
// written when enabled, whether or not the writer is a terminal.
func (h *Handler) SetColor(ok bool) {
	if !ok {
		h.paint = nil
		return
	}
	h.paint = make([]*color.Color, len(styleColor))
	for i, attr := range styleColor {
		h.paint[i] = color.New(attr)
		h.paint[i].EnableColor()
	}
}

type style int

const (
	structColor style = iota
	keyColor
	stringColor
	numberColor
	literalColor
	commentColor
)

var styleColor = [...]color.Attribute{
	structColor:  color.FgMagenta,
	keyColor:     color.FgYellow,
	stringColor:  color.FgGreen,
	numberColor:  color.FgCyan,
	literalColor: color.FgBlue,
	commentColor: color.FgHiBlack,
}

func (h *Handler) emit(c style, name, format string, args ...any) error {
	line := name
	if format != "" {
		line += " " + fmt.Sprintf(format, args...)
	}
	if h.paint != nil {
		line = h.paint[c].Sprint(line)
	}
	_, err := fmt.Fprintf(h.w, "%s%s\n", strings.Repeat("  ", h.depth), line)
	return err
}

func (h *Handler) open(name string, next func(jinto.Handler) error) error {
	if err := h.emit(structColor, name, ""); err != nil {
		return err
	}
	h.depth++
	return h.pass(next)
}

func (h *Handler) close(name string, n int, next func(jinto.Handler) error) error {
	if h.depth > 0 {
		h.depth--
	}
	var err error
	if n < 0 {
		err = h.emit(structColor, name, "")
	} else {
		err = h.emit(structColor, name, "%d", n)
	}
	if err != nil {
		return err
	}
	return h.pass(next)
}

func (h *Handler) pass(next func(jinto.Handler) error) error {
	if h.next == nil {
		return nil
	}
	return next(h.next)
}

// BeginDocument implements part of the jinto.Handler interface.
func (h *Handler) BeginDocument() error {
	return h.open("BeginDocument", jinto.Handler.BeginDocument)
}

// EndDocument implements part of the jinto.Handler interface.
func (h *Handler) EndDocument() error {
	return h.close("EndDocument", -1, jinto.Handler.EndDocument)
}

// BeginObject implements part of the jinto.Handler interface.
func (h *Handler) BeginObject() error {
	return h.open("BeginObject", jinto.Handler.BeginObject)
}

// EndObject implements part of the jinto.Handler interface.
func (h *Handler) EndObject(n int) error {
	return h.close("EndObject", n, func(d jinto.Handler) error { return d.EndObject(n) })
}

// BeginArray implements part of the jinto.Handler interface.
func (h *Handler) BeginArray() error {
	return h.open("BeginArray", jinto.Handler.BeginArray)
}

// EndArray implements part of the jinto.Handler interface.
func (h *Handler) EndArray(n int) error {
	return h.close("EndArray", n, func(d jinto.Handler) error { return d.EndArray(n) })
}

func (h *Handler) text(c style, name string, text mem.RO, n int, next func(jinto.Handler) error) error {
	if err := h.emit(c, name, "%s (%d)", jinto.QuoteRO(text), n); err != nil {
		return err
	}
	return h.pass(next)
}

// KeyPart implements part of the jinto.Handler interface.
func (h *Handler) KeyPart(text mem.RO, n int) error {
	return h.text(keyColor, "KeyPart", text, n, func(d jinto.Handler) error { return d.KeyPart(text, n) })
}

// Key implements part of the jinto.Handler interface.
func (h *Handler) Key(text mem.RO, n int) error {
	return h.text(keyColor, "Key", text, n, func(d jinto.Handler) error { return d.Key(text, n) })
}

// StringPart implements part of the jinto.Handler interface.
func (h *Handler) StringPart(text mem.RO, n int) error {
	return h.text(stringColor, "StringPart", text, n, func(d jinto.Handler) error { return d.StringPart(text, n) })
}

// StringValue implements part of the jinto.Handler interface.
func (h *Handler) StringValue(text mem.RO, n int) error {
	return h.text(stringColor, "String", text, n, func(d jinto.Handler) error { return d.StringValue(text, n) })
}

// NumberPart implements part of the jinto.Handler interface.
func (h *Handler) NumberPart(text mem.RO) error {
	if err := h.emit(numberColor, "NumberPart", "%s", text.StringCopy()); err != nil {
		return err
	}
	return h.pass(func(d jinto.Handler) error { return d.NumberPart(text) })
}

// Int64 implements part of the jinto.Handler interface.
func (h *Handler) Int64(v int64, raw mem.RO) error {
	if err := h.emit(numberColor, "Int64", "%d <%s>", v, raw.StringCopy()); err != nil {
		return err
	}
	return h.pass(func(d jinto.Handler) error { return d.Int64(v, raw) })
}

// Uint64 implements part of the jinto.Handler interface.
func (h *Handler) Uint64(v uint64, raw mem.RO) error {
	if err := h.emit(numberColor, "Uint64", "%d <%s>", v, raw.StringCopy()); err != nil {
		return err
	}
	return h.pass(func(d jinto.Handler) error { return d.Uint64(v, raw) })
}

// Float64 implements part of the jinto.Handler interface.
func (h *Handler) Float64(v float64, raw mem.RO) error {
	if err := h.emit(numberColor, "Float64", "%g <%s>", v, raw.StringCopy()); err != nil {
		return err
	}
	return h.pass(func(d jinto.Handler) error { return d.Float64(v, raw) })
}

// Bool implements part of the jinto.Handler interface.
func (h *Handler) Bool(v bool) error {
	if err := h.emit(literalColor, "Bool", "%v", v); err != nil {
		return err
	}
	return h.pass(func(d jinto.Handler) error { return d.Bool(v) })
}

// Null implements part of the jinto.Handler interface.
func (h *Handler) Null() error {
	if err := h.emit(literalColor, "Null", ""); err != nil {
		return err
	}
	return h.pass(jinto.Handler.Null)
}

// CommentPart implements part of the jinto.Handler interface.
func (h *Handler) CommentPart(text mem.RO) error {
	if err := h.emit(commentColor, "CommentPart", "%s", jinto.QuoteRO(text)); err != nil {
		return err
	}
	return h.pass(func(d jinto.Handler) error { return d.CommentPart(text) })
}

// Comment implements part of the jinto.Handler interface.
func (h *Handler) Comment(text mem.RO) error {
	if err := h.emit(commentColor, "Comment", "%s", jinto.QuoteRO(text)); err != nil {
		return err
	}
	return h.pass(func(d jinto.Handler) error { return d.Comment(text) })
}
