// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jinto

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"go4.org/mem"
)

// Stream is a stream parser that consumes input and delivers events to a
// Handler corresponding with the structure of the input.
type Stream struct {
	s      *Scanner
	tcomma bool // allow trailing commas in objects and arrays
	frag   int  // if positive, the maximum length of a text fragment
}

// NewStream constructs a new Stream that consumes input from r.
func NewStream(r io.Reader) *Stream { return &Stream{s: NewScanner(r)} }

// NewStreamWithScanner constructs a new Stream that consumes input from s.
func NewStreamWithScanner(s *Scanner) *Stream { return &Stream{s: s} }

// AllowComments configures the scanner associated with s to report (true) or
// reject (false) comment tokens.
func (s *Stream) AllowComments(ok bool) { s.s.AllowComments(ok) }

// AllowTrailingCommas configures the parser to allow (true) or reject (false)
// trailing commas in objects and arrays.
func (s *Stream) AllowTrailingCommas(ok bool) { s.tcomma = ok }

// SetFragmentSize configures the parser to deliver strings, keys, numbers, and
// comments longer than n bytes as a sequence of fragments of at most n bytes.
// If n <= 0, text is always delivered in a single event.
func (s *Stream) SetFragmentSize(n int) { s.frag = n }

// Location returns the location of the most recent token read by s.
func (s *Stream) Location() Location { return s.s.Location() }

func (s *Stream) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		switch err := serr.(type) {
		case *SyntaxError:
			*errp = err
		case handlerError:
			*errp = err.error
		default:
			panic(serr)
		}
	}
}

// Parse parses the input stream and delivers events to h until either an error
// occurs or the input is exhausted. Each top-level value is delivered between
// calls to h.BeginDocument and h.EndDocument. In case of a syntax error, the
// returned error has type [*SyntaxError].
func (s *Stream) Parse(h Handler) error {
	for {
		if err := s.ParseOne(h); err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
	}
}

// ParseOne parses a single value from the input stream and delivers events to
// h until the value is complete or an error occurs. If no further value is
// available from the input, ParseOne returns io.EOF. In case of a syntax
// error, the returned error has type [*SyntaxError].
func (s *Stream) ParseOne(h Handler) (err error) {
	defer s.recoverParseError(&err)

	if err := s.nextToken(h); err == io.EOF {
		return err
	} else if err != nil {
		s.syntaxError(err, "%v", err)
	}
	s.checkError(h.BeginDocument())
	s.parseElement(h)
	s.checkError(h.EndDocument())
	return nil
}

// parseElement consumes a single value of any type.
// Precondition: token != Invalid.
func (s *Stream) parseElement(h Handler) {
	switch tok := s.s.Token(); tok {
	case LBrace:
		s.checkError(h.BeginObject())
		n := s.parseMembers(h)
		s.require(RBrace)
		s.checkError(h.EndObject(n))
	case LSquare:
		s.checkError(h.BeginArray())
		n := s.parseElements(h)
		s.require(RSquare)
		s.checkError(h.EndArray(n))
	case String:
		s.emitText(s.unescape(), h.StringPart, h.StringValue)
	case Integer, Number:
		s.emitNumber(h)
	case True, False:
		s.checkError(h.Bool(tok == True))
	case Null:
		s.checkError(h.Null())
	case RBrace, RSquare, Comma, Colon:
		s.syntaxError(nil, "unexpected %v", tok)
	default:
		s.syntaxError(nil, "unknown token %v", tok)
	}
}

// parseMembers consumes zero of more key:value object members, and returns
// the number of members consumed.
// Precondition: token == LBrace.
// Postcondition: token == RBrace.
func (s *Stream) parseMembers(h Handler) int {
	tok := s.advance(h, RBrace, String)
	if tok == RBrace {
		return 0 // end of object
	}
	var n int
	for {
		// Parse a single member: "key": value
		s.emitText(s.unescape(), h.KeyPart, h.Key)
		s.advance(h, Colon)
		s.advance(h)
		s.parseElement(h)
		n++

		// Check whether we have more members (",") or are done ("}").
		tok := s.advance(h, RBrace, Comma)
		if tok == RBrace {
			return n // end of object
		} else if s.tcomma {
			// If trailing commas are allowed and the next token is a close
			// bracket, consider this a valid end of the object. Otherwise, it
			// must be a key for a subsequent element.
			next := s.advance(h, String, RBrace)
			if next == RBrace {
				return n // end of object with trailing comma
			}
		} else {
			s.advance(h, String) // advance to next key
		}
	}
}

// parseElements consumes zero or more comma-separated array values, and
// returns the number of values consumed.
// Precondition: token == LSquare.
// Postcondition: token == RSquare.
func (s *Stream) parseElements(h Handler) int {
	if tok := s.advance(h); tok == RSquare {
		return 0 // end of array
	}
	s.parseElement(h)
	n := 1
	for {
		tok := s.advance(h, RSquare, Comma)
		if tok == RSquare {
			return n // end of array
		}

		// If trailing commas are allowed and the next token is a close bracket,
		// consider this a valid end of the array; otherwise it will fail on the
		// next element
		if next := s.advance(h); s.tcomma && next == RSquare {
			return n // end of array with trailing comma
		}
		s.parseElement(h)
		n++
	}
}

// unescape returns the decoded contents of the current string token.
func (s *Stream) unescape() []byte {
	dec, err := s.s.Unescape()
	if err != nil {
		s.syntaxError(err, "invalid string: %v", err)
	}
	return dec
}

// emitText delivers text to a handler in fragments no longer than the
// fragment size: part receives all fragments but the last, and last receives
// the final (possibly empty) one.
func (s *Stream) emitText(text []byte, part, last func(mem.RO, int) error) {
	var n int
	for s.frag > 0 && len(text) > s.frag {
		n += s.frag
		s.checkError(part(mem.B(text[:s.frag]), n))
		text = text[s.frag:]
	}
	s.checkError(last(mem.B(text), n+len(text)))
}

// emitNumber delivers the current number token to h, classified as by
// ParseNumber.
func (s *Stream) emitNumber(h Handler) {
	num, err := s.s.Number()
	if err != nil {
		s.syntaxError(err, "number %s out of range", s.s.Text())
	}
	raw := s.s.Text()
	for s.frag > 0 && len(raw) > s.frag {
		s.checkError(h.NumberPart(mem.B(raw[:s.frag])))
		raw = raw[s.frag:]
	}
	s.checkError(num.Report(h, mem.B(raw)))
}

// emitComment delivers the current comment token to h.
func (s *Stream) emitComment(h Handler) {
	text := s.s.Text()
	for s.frag > 0 && len(text) > s.frag {
		s.checkError(h.CommentPart(mem.B(text[:s.frag])))
		text = text[s.frag:]
	}
	s.checkError(h.Comment(mem.B(text)))
}

func (s *Stream) nextToken(h Handler) error {
	for {
		if err := s.s.Next(); err != nil {
			return err
		}

		// If we see a comment token, pass it to the handler and fetch the next
		// available token for the rest of the parser.
		if tok := s.s.Token(); tok == LineComment || tok == BlockComment {
			s.emitComment(h)
			continue
		}
		return nil
	}
}

func (s *Stream) advance(h Handler, tokens ...Token) Token {
	if err := s.nextToken(h); err != nil {
		s.syntaxError(err, "%v", tokLabel(tokens, err))
	}
	tok := s.s.Token()
	if len(tokens) != 0 && !tokOneOf(tok, tokens) {
		s.syntaxError(nil, "%v", tokLabel(tokens, tok))
	}
	return tok
}

func (s *Stream) require(token Token) {
	if tok := s.s.Token(); tok != token {
		s.syntaxError(nil, "expected %v, got %v", token, tok)
	}
}

func (s *Stream) syntaxError(err error, msg string, args ...any) {
	panic(&SyntaxError{
		Location: s.s.Location().First,
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	})
}

func (s *Stream) checkError(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []Token, got any) string {
	if len(tokens) == 0 {
		return fmt.Sprint(got)
	}
	var exp string
	if len(tokens) == 1 {
		exp = tokens[0].String()
	} else {
		last := len(tokens) - 1
		ss := make([]string, len(tokens)-1)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}

// tokOneOf reports whether cur is an element of tokens.
func tokOneOf(cur Token, tokens []Token) bool {
	return slices.Contains(tokens, cur)
}

// SyntaxError is the concrete type of errors reported by the stream parser.
type SyntaxError struct {
	Location LineCol
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
