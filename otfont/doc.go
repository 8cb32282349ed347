/*
Package otfont provides the font capability needed for font selection: answering
whether a font has a glyph for a codepoint, and turning UTF-16 text into glyphs.

Fonts are announced to clients as candidates, i.e. a name, a declared Unicode
range and a way to load the font. Candidates are materialized lazily by a
Provider. The declared range is a cheap pre-filter only, the font's character map
is the ground truth (see MatchFont).

Glyph widths are expressed in 1/1000 em, the glyph space unit of PDF.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otfont

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'glyphrun.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphrun.fonts")
}
