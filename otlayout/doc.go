/*
Package otlayout applies OpenType chaining contextual substitutions (GSUB lookup type 6)
to glyph sequences.

A chaining contextual subtable holds rules which describe a glyph context: a backtrack
sequence before the current glyph, an input sequence starting at the current glyph,
and a lookahead sequence after the input. Rules come in three formats (see
https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#chained-sequence-context-format-1-simple-glyph-contexts):

▪︎ format 1 describes contexts as sequences of glyph IDs (GlyphRule),

▪︎ format 2 describes contexts as sequences of glyph classes (ClassRule),

▪︎ format 3 describes contexts as sequences of coverage sets (CoverageRule).

Subtables are assembled from decoded font tables with the NewFormat…Subtable builders,
which validate the decoded records. Matching happens on a GlyphLine, a glyph buffer
with a cursor and an active window. Only the driving code (MatchingContextRule and
ChainingLookup) moves the cursor or changes the window; rule predicates never do.

Subtables, rules, coverages and class definitions are immutable once built and may be
shared between goroutines. A GlyphLine must not be shared.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otlayout

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// ErrVoid is returned for operations on nil or empty structures.
var ErrVoid = errors.New("void structure")

// errFontFormat produces user level errors for font table decoding.
func errFontFormat(message string) error {
	return fmt.Errorf("OpenType font format: %s", message)
}

// tracer writes to trace with key 'glyphrun.layout'
func tracer() tracing.Trace {
	return tracing.Select("glyphrun.layout")
}
