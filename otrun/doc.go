/*
Package otrun splits text into glyph runs, each bound to a single font.

Text is given as UTF-16 code units, the encoding of PDF text strings. A Segmenter
is configured with a list of font candidates in priority order. It walks the text
and chooses a font for every run, respecting script boundaries and anchoring
combining diacritics together with their base character in a common font.
Codepoints no candidate can render end up in runs of a default font, possibly as
.notdef glyphs. The resulting runs partition the input text exactly.

Two policies are available: FirstMatch keeps the current font as long as it is
able to render the text, BestMatch switches fonts whenever a higher-priority font
exists for a codepoint.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otrun

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'glyphrun.runs'
func tracer() tracing.Trace {
	return tracing.Select("glyphrun.runs")
}
