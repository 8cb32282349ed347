package otrun

import (
	"fmt"
	"strings"

	"github.com/npillmayer/glyphrun/otfont"
)

// GlyphRun is a sequence of glyphs bound to a single font. [Start, End) is the span
// of the input text the run has been produced from, in UTF-16 code units.
//
// Glyph runs are immutable once produced by a Segmenter.
type GlyphRun struct {
	Font   otfont.Font
	Glyphs []otfont.Glyph
	Start  int
	End    int
}

// Len returns the number of glyphs of the run.
func (run GlyphRun) Len() int {
	return len(run.Glyphs)
}

// Runes returns the codepoints the glyphs of the run have been derived from, in order.
func (run GlyphRun) Runes() []rune {
	var runes []rune
	for _, g := range run.Glyphs {
		runes = append(runes, g.Runes...)
	}
	return runes
}

func (run GlyphRun) String() string {
	var sb strings.Builder
	name := "<no font>"
	if run.Font != nil {
		name = run.Font.Name()
	}
	fmt.Fprintf(&sb, "run[%d,%d) %s: ", run.Start, run.End, name)
	for _, g := range run.Glyphs {
		sb.WriteString(g.String())
	}
	return sb.String()
}
