package otrun

import (
	"fmt"
	"unicode/utf16"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/glyphrun/internal/uniclass"
)

// Text is a string of UTF-16 code units.
type Text []uint16

// TextFromString converts a Go string to UTF-16 text.
func TextFromString(s string) Text {
	return utf16.Encode([]rune(s))
}

func (t Text) String() string {
	return string(utf16.Decode(t))
}

// Codepoint is a Unicode scalar decoded from UTF-16 text, together with its
// offset in the text and its width in code units (1 or 2).
type Codepoint struct {
	Rune   rune
	Offset int
	Width  int
}

func (cp Codepoint) String() string {
	return fmt.Sprintf("%U@%d", cp.Rune, cp.Offset)
}

// ExtractCodepoint decodes the codepoint starting at index i of text.
// Surrogate pairs are decoded to a single codepoint of width 2. Lone surrogates
// are returned as their raw 16-bit value.
func ExtractCodepoint(text Text, i int) Codepoint {
	r, w := uniclass.DecodeRune(text, i)
	return Codepoint{Rune: r, Offset: i, Width: w}
}

// NextSignificantIndex returns the index of the first codepoint at or after from
// which is neither white space nor non-printable. If there is none, len(text) is
// returned.
func NextSignificantIndex(text Text, from int) int {
	for i := from; i < len(text); {
		cp := ExtractCodepoint(text, i)
		if !IsWhitespaceOrNonPrintable(cp.Rune) {
			return i
		}
		i += cp.Width
	}
	return len(text)
}

// IsWhitespaceOrNonPrintable is true for white space (except no-break spaces),
// control characters and format characters.
func IsWhitespaceOrNonPrintable(r rune) bool {
	return uniclass.IsWhitespaceOrNonPrintable(r)
}

// IsDiacritic is true for non-spacing combining marks.
func IsDiacritic(r rune) bool {
	return uniclass.IsDiacritic(r)
}

// Script returns the Unicode script property of r.
func Script(r rune) language.Script {
	return language.LookupScript(r)
}

// IsSignificantScript is false for the Common and Inherited scripts, which do not
// force a run break. Unknown counts as significant.
func IsSignificantScript(script language.Script) bool {
	return script != language.Common && script != language.Inherited
}
