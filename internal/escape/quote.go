// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEnc = [' ']byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
}

const hexDigit = "0123456789abcdef"

// AppendQuote appends to dst the JSON encoding of the string src, without
// enclosing quotation marks.
//
// Control characters, quotation marks and backslashes are escaped. So are
// the replacement rune and the line and paragraph separators, which some
// JavaScript parsers reject in string literals.
func AppendQuote(dst []byte, src mem.RO) []byte {
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		switch {
		case r == '"' || r == '\\':
			dst = append(dst, '\\', byte(r))
		case r < ' ':
			if c := controlEnc[r]; c != 0 {
				dst = append(dst, '\\', c)
			} else {
				dst = appendU(dst, r)
			}
		case r == utf8.RuneError || r == '\u2028' || r == '\u2029':
			dst = appendU(dst, r)
		default:
			dst = mem.Append(dst, src.SliceTo(n))
		}
		src = src.SliceFrom(n)
	}
	return dst
}

// appendU appends the \uXXXX escape of r, which must be in the BMP.
func appendU(dst []byte, r rune) []byte {
	return append(dst, '\\', 'u',
		hexDigit[r>>12&15], hexDigit[r>>8&15], hexDigit[r>>4&15], hexDigit[r&15])
}
