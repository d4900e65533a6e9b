// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jinto

import (
	"errors"
	"strings"

	"github.com/creachadair/jinto/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return QuoteRO(mem.S(src)) }

// QuoteRO is as Quote, but accepts a read-only view such as the text passed
// to the methods of a Handler.
func QuoteRO(src mem.RO) string {
	buf := append(make([]byte, 0, src.Len()+2), '"')
	buf = escape.AppendQuote(buf, src)
	return string(append(buf, '"'))
}

// Unquote decodes a JSON string value.  Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Invalid escapes and unpaired UTF-16 surrogates are replaced by the Unicode
// replacement rune. Unquote reports an error for an incomplete escape
// sequence.
func Unquote(src string) ([]byte, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return nil, errors.New("missing quotations")
	}
	return escape.AppendUnquote(nil, mem.S(src[1:len(src)-1]))
}
