package otrun

import (
	"slices"

	"github.com/npillmayer/glyphrun/otfont"
)

// ReplaceSpecialWhitespaceGlyphs substitutes .notdef glyphs standing for en space,
// em space, thin space or tabulator by the space glyph of the run's font, with an
// additional advance producing the intended width. The original codepoint is kept.
//
// Runs are not modified; if anything has to be replaced, a new run is returned.
// Replacing twice yields the same result as replacing once.
func ReplaceSpecialWhitespaceGlyphs(run GlyphRun) GlyphRun {
	if run.Font == nil {
		return run
	}
	space, ok := run.Font.Glyph(' ')
	if !ok {
		return run
	}
	mono := run.Font.IsMonospace()
	var glyphs []otfont.Glyph
	for i, g := range run.Glyphs {
		xadv, special := whitespaceAdvance(g, space.Width, mono)
		if !special {
			continue
		}
		if glyphs == nil {
			glyphs = slices.Clone(run.Glyphs)
		}
		glyphs[i] = otfont.Glyph{
			Code:     space.Code,
			Runes:    g.Runes,
			Width:    space.Width,
			XAdvance: xadv,
		}
	}
	if glyphs != nil {
		run.Glyphs = glyphs
	}
	return run
}

func whitespaceAdvance(g otfont.Glyph, spaceWidth int, mono bool) (int, bool) {
	if g.HasValidCode() {
		return 0, false
	}
	var xadv int
	switch g.Rune() {
	case '\u2002': // en space
		xadv = 500 - spaceWidth
	case '\u2003': // em space
		xadv = 1000 - spaceWidth
	case '\u2009': // thin space
		xadv = 200 - spaceWidth
	case '\t':
		return 3 * spaceWidth, true
	default:
		return 0, false
	}
	if mono {
		xadv = 0
	}
	return xadv, true
}
