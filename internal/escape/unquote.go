// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

var controlDec = [...]byte{
	'"':  '"',
	'/':  '/',
	'\\': '\\',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// Control reports the byte denoted by the single-character escape \c, and
// whether c is a valid single-character escape.
func Control(c rune) (byte, bool) {
	if c < 0 || int(c) >= len(controlDec) || controlDec[c] == 0 {
		return 0, false
	}
	return controlDec[c], true
}

// Hex4 decodes the first four bytes of src as a hexadecimal UTF-16 code
// unit. It reports false if src is too short or contains a non-hex digit.
func Hex4(src mem.RO) (rune, bool) {
	if src.Len() < 4 {
		return 0, false
	}
	var v rune
	for i := range 4 {
		d := hexValue(src.At(i))
		if d < 0 {
			return 0, false
		}
		v = v<<4 | rune(d)
	}
	return v, true
}

func hexValue(b byte) int {
	switch {
	case '0' <= b && b <= '9':
		return int(b - '0')
	case 'a' <= b && b <= 'f':
		return int(b-'a') + 10
	case 'A' <= b && b <= 'F':
		return int(b-'A') + 10
	}
	return -1
}

// Pair combines a UTF-16 surrogate pair into a single rune. If hi and lo are
// not a valid pair, it returns utf8.RuneError.
func Pair(hi, lo rune) rune { return utf16.DecodeRune(hi, lo) }

// AppendUnquote appends to dst the decoded contents of src, the JSON encoding
// of a string with its enclosing double quotation marks already removed.
//
// Invalid escapes and unpaired surrogates are replaced by the Unicode
// replacement rune. AppendUnquote reports an error for an incomplete escape
// sequence.
func AppendUnquote(dst []byte, src mem.RO) ([]byte, error) {
	for {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dst, src), nil
		}
		dst = mem.Append(dst, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}

		c, n := mem.DecodeRune(src)
		src = src.SliceFrom(max(n, 1))
		if c != 'u' {
			if b, ok := Control(c); ok {
				dst = append(dst, b)
			} else {
				dst = utf8.AppendRune(dst, utf8.RuneError)
			}
			continue
		}

		if src.Len() < 4 {
			return nil, errors.New("incomplete Unicode escape")
		}
		r, ok := Hex4(src)
		src = src.SliceFrom(4)
		if !ok {
			r = utf8.RuneError
		} else if utf16.IsSurrogate(r) && mem.HasPrefix(src, mem.S(`\u`)) {
			if lo, ok := Hex4(src.SliceFrom(2)); ok {
				if p := Pair(r, lo); p != utf8.RuneError {
					r = p
					src = src.SliceFrom(6)
				}
			}
		}
		dst = utf8.AppendRune(dst, r) // a lone surrogate encodes as utf8.RuneError
	}
}
