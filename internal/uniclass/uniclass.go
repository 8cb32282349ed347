// Package uniclass holds character classification and UTF-16 decoding shared by
// font matching and run segmentation.
package uniclass

import (
	"unicode"
	"unicode/utf16"
)

// DecodeRune decodes the Unicode scalar starting at UTF-16 index i of text and
// returns it together with the number of code units it occupies. A valid surrogate
// pair is decoded as one scalar of width 2; lone surrogates are returned as their
// raw 16-bit value with width 1.
func DecodeRune(text []uint16, i int) (rune, int) {
	u := rune(text[i])
	if utf16.IsSurrogate(u) && i+1 < len(text) {
		if r := utf16.DecodeRune(u, rune(text[i+1])); r != unicode.ReplacementChar {
			return r, 2
		}
	}
	return u, 1
}

// IsWhitespaceOrNonPrintable is true for white space (except no-break spaces),
// control characters and format characters such as soft hyphens or joiners.
func IsWhitespaceOrNonPrintable(r rune) bool {
	switch r {
	case '\u00a0', '\u2007', '\u202f':
		return false
	}
	return unicode.IsSpace(r) || unicode.IsControl(r) || unicode.Is(unicode.Cf, r)
}

// IsDiacritic is true for combining marks which do not occupy space of their own
// (general category Mn).
func IsDiacritic(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
