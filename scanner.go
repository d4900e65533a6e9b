// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jinto

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/creachadair/jinto/internal/escape"

	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null

	BlockComment // comment: /* ... */
	LineComment  // comment: // ... <LF>
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",

	BlockComment: "block comment",
	LineComment:  "line comment",
}

func (t Token) String() string {
	if int(t) >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[t]
}

// punctuation maps the self-delimiting runes to their tokens.
var punctuation = map[rune]Token{
	'{': LBrace, '}': RBrace, '[': LSquare, ']': RSquare, ',': Comma, ':': Colon,
}

// literals maps the first rune of each constant to its token.
var literals = map[rune]Token{'t': True, 'f': False, 'n': Null}

// A Scanner reads lexical tokens from an input stream. Each call to Next
// advances the scanner to the next token, or reports an error.
//
// The Scanner decodes the contents of string tokens as it reads them, and
// decodes number tokens on demand, so that a consumer can deliver values
// without further copying.
type Scanner struct {
	r        *bufio.Reader
	comments bool   // allow comments
	raw      []byte // text of the current token
	str      []byte // decoded contents of the current String token
	tok      Token
	err      error

	pos, end int  // start and end offsets of current token
	last     int  // size in bytes of last-read input rune
	lcol     int  // column offset before the last-read rune
	lnl      bool // the last-read rune was a newline

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int
}

// NewScanner constructs a new lexical scanner that consumes input from r.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br}
}

// AllowComments configures the scanner to report (true) or reject (false)
// comment tokens. Comments are a non-standard extension of JSON. If enabled,
// block comments (/* ... */) and line comments (// ...) are recognized and
// reported as tokens.
func (s *Scanner) AllowComments(ok bool) { s.comments = ok }

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF.
func (s *Scanner) Next() error {
	s.raw, s.str = s.raw[:0], s.str[:0]
	s.tok, s.err = Invalid, nil
	for {
		s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
		ch, err := s.rune()
		if err == io.EOF {
			return s.setErr(err)
		} else if err != nil {
			return s.fail(err)
		}

		switch {
		case isSpace(ch):
			continue
		case ch == '"':
			return s.scanString()
		case ch == '-' || isDigit(ch):
			return s.scanNumber(ch)
		case ch == '/' && s.comments:
			return s.scanComment()
		}
		if tok, ok := punctuation[ch]; ok {
			s.put(ch)
			s.tok = tok
			return nil
		} else if tok, ok := literals[ch]; ok {
			return s.scanLiteral(ch, tok)
		}
		return s.failf("unexpected %q", ch)
	}
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token. The return value is
// only valid until the next call of Next. The caller must copy the contents of
// the returned slice if it is needed beyond that.
func (s *Scanner) Text() []byte { return s.raw }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

// Number decodes the text of the current token as a number, classified as by
// ParseNumber. It reports an error if the token is not a number or its
// magnitude is too large for a float64.
func (s *Scanner) Number() (NumberValue, error) {
	if s.tok != Integer && s.tok != Number {
		return NumberValue{}, fmt.Errorf("got %v, want number", s.tok)
	}
	return ParseNumber(mem.B(s.raw))
}

// Unescape returns the decoded contents of the current String token, without
// the enclosing quotation marks. Like Text, the result is only valid until
// the next call of Next.
func (s *Scanner) Unescape() ([]byte, error) {
	if s.tok != String {
		return nil, fmt.Errorf("got %v, want string", s.tok)
	}
	return s.str, nil
}

// scanString scans a string whose opening quotation mark has been read.
func (s *Scanner) scanString() error {
	s.put('"')
	for {
		ch, err := s.rune()
		if err != nil {
			return s.fail(err)
		}
		switch {
		case ch == '"':
			s.put(ch)
			s.tok = String
			return nil
		case ch == '\\':
			s.put(ch)
			if err := s.scanEscape(); err != nil {
				return err
			}
		case ch < ' ':
			return s.failf("unescaped control %q", ch)
		default:
			s.put(ch)
			s.str = utf8.AppendRune(s.str, ch)
		}
	}
}

// scanEscape scans an escape sequence whose backslash has been read, and
// appends its decoding to the string contents. A \u escape for the high half
// of a surrogate pair combines with an immediately following low half.
func (s *Scanner) scanEscape() error {
	ch, err := s.rune()
	if err != nil {
		return s.fail(err)
	}
	s.put(ch)
	if ch != 'u' {
		b, ok := escape.Control(ch)
		if !ok {
			return s.failf("invalid %q after escape", ch)
		}
		s.str = append(s.str, b)
		return nil
	}

	r, err := s.hex4()
	if err != nil {
		return err
	}
	if utf16.IsSurrogate(r) && r < 0xdc00 && s.accept('\\') {
		ch, err := s.rune()
		if err != nil {
			return s.fail(err)
		}
		s.put(ch)
		if ch != 'u' {
			b, ok := escape.Control(ch)
			if !ok {
				return s.failf("invalid %q after escape", ch)
			}
			s.str = append(utf8.AppendRune(s.str, utf8.RuneError), b)
			return nil
		}
		lo, err := s.hex4()
		if err != nil {
			return err
		}
		if p := escape.Pair(r, lo); p != utf8.RuneError {
			r = p
		} else {
			s.str = utf8.AppendRune(s.str, utf8.RuneError)
			r = lo
		}
	}
	s.str = utf8.AppendRune(s.str, r) // a lone surrogate encodes as utf8.RuneError
	return nil
}

// hex4 scans the four hexadecimal digits of a \u escape.
func (s *Scanner) hex4() (rune, error) {
	for range 4 {
		ch, err := s.rune()
		if err != nil {
			return 0, s.failf("invalid Unicode escape: %w", err)
		} else if !isHexDigit(ch) {
			return 0, s.failf("invalid Unicode escape: not a hex digit: %q", ch)
		}
		s.put(ch)
	}
	r, _ := escape.Hex4(mem.B(s.raw[len(s.raw)-4:]))
	return r, nil
}

// scanNumber scans a number beginning with first, and classifies it as an
// Integer or a Number.
func (s *Scanner) scanNumber(first rune) error {
	s.put(first)
	if first == '-' {
		if err := s.need(isDigit, "digit"); err != nil {
			return err
		}
	}
	if _, err := s.take(isDigit); err != nil {
		return err
	} else if hasExtraLeadingZeroes(s.raw) {
		return s.failf("extra leading zeroes")
	}
	s.tok = Integer

	if s.accept('.') {
		if n, err := s.take(isDigit); err != nil {
			return err
		} else if n == 0 {
			return s.failf("no digits after decimal point")
		}
		s.tok = Number
	}
	if s.accept('e') || s.accept('E') {
		if !s.accept('+') {
			s.accept('-')
		}
		if err := s.need(isDigit, "exponent digit"); err != nil {
			return err
		} else if _, err := s.take(isDigit); err != nil {
			return err
		}
		s.tok = Number
	}
	return nil
}

// scanComment scans a comment whose leading slash has been read. A line
// comment includes its terminating newline, if any.
func (s *Scanner) scanComment() error {
	s.put('/')
	ch, err := s.rune()
	if err != nil {
		return s.fail(err)
	}
	switch ch {
	case '/':
		s.put(ch)
		for {
			ch, err := s.rune()
			if err == io.EOF {
				break
			} else if err != nil {
				return s.fail(err)
			}
			s.put(ch)
			if ch == '\n' {
				break
			}
		}
		s.tok = LineComment
		return nil

	case '*':
		s.put(ch)
		star := false // the previous rune was a "*" inside the comment
		for {
			ch, err := s.rune()
			if err != nil {
				return s.fail(err)
			}
			s.put(ch)
			if star && ch == '/' {
				s.tok = BlockComment
				return nil
			}
			star = ch == '*'
		}
	}
	s.unrune()
	return s.failf("invalid %q in comment", ch)
}

// scanLiteral scans a constant beginning with first, which must spell out
// the name of tok.
func (s *Scanner) scanLiteral(first rune, tok Token) error {
	s.put(first)
	if _, err := s.take(isNameRune); err != nil {
		return err
	} else if string(s.raw) != tok.String() {
		return s.failf("unknown constant %q", s.raw)
	}
	s.tok = tok
	return nil
}

func (s *Scanner) put(ch rune) { s.raw = utf8.AppendRune(s.raw, ch) }

func (s *Scanner) rune() (rune, error) {
	ch, nb, err := s.r.ReadRune()
	s.last, s.lcol, s.lnl = nb, s.ecol, ch == '\n' && err == nil
	s.end += nb
	if s.lnl {
		s.eline++
		s.ecol = 0
	} else {
		s.ecol += nb
	}
	return ch, err
}

func (s *Scanner) unrune() {
	if s.last == 0 {
		return
	}
	s.end -= s.last
	s.ecol = s.lcol
	if s.lnl {
		s.eline--
	}
	s.last, s.lnl = 0, false
	s.r.UnreadRune()
}

// accept consumes the next rune if it is want, and reports whether it did.
func (s *Scanner) accept(want rune) bool {
	ch, err := s.rune()
	if err != nil {
		return false
	} else if ch != want {
		s.unrune()
		return false
	}
	s.put(ch)
	return true
}

// need consumes a single rune matching f, or reports an error mentioning the
// desired label.
func (s *Scanner) need(f func(rune) bool, label string) error {
	ch, err := s.rune()
	if err != nil {
		return s.failf("want %s, got error: %w", label, err)
	} else if !f(ch) {
		s.unrune()
		return s.failf("got %q, want %s", ch, label)
	}
	s.put(ch)
	return nil
}

// take consumes runes matching f until the end of input or a rune that does
// not match, which is left unread. It returns the number of runes consumed.
func (s *Scanner) take(f func(rune) bool) (int, error) {
	var nr int
	for {
		ch, err := s.rune()
		if err == io.EOF {
			return nr, nil
		} else if err != nil {
			return nr, s.fail(err)
		} else if !f(ch) {
			s.unrune()
			return nr, nil
		}
		s.put(ch)
		nr++
	}
}

type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

func (s *Scanner) fail(err error) error {
	return s.setErr(posError{s.end, err})
}

func (s *Scanner) failf(msg string, args ...any) error {
	return s.setErr(posError{s.end, fmt.Errorf(msg, args...)})
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }
func isNameRune(ch rune) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// hasExtraLeadingZeroes reports whether the integer part of the number in
// buf has a redundant leading zero, as in 01 or -00.5.
func hasExtraLeadingZeroes(buf []byte) bool {
	if buf[0] == '-' {
		buf = buf[1:]
	}
	return len(buf) > 1 && buf[0] == '0'
}
