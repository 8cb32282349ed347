/*
Package glyphrun selects fonts for text and applies contextual glyph
substitutions.

Text is split into glyph runs, each rendered with a single font chosen from
a prioritized list of candidate fonts (package otrun). Within a run, GSUB
chaining context substitutions may replace sequences of glyphs depending on
their surroundings (package otlayout).

The functions in this package are shortcuts for common cases. Clients with
more elaborate needs, e.g. custom font providers or range restrictions,
should use the sub-packages directly.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package glyphrun

import (
	"errors"

	"github.com/npillmayer/glyphrun/ot"
	"github.com/npillmayer/glyphrun/otfont"
	"github.com/npillmayer/glyphrun/otlayout"
	"github.com/npillmayer/glyphrun/otrun"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'glyphrun.runs'
func tracer() tracing.Trace {
	return tracing.Select("glyphrun.runs")
}

// Segment splits a string into glyph runs. fonts are names of font files,
// installed system fonts or packaged fonts ("goregular", "gomono"), in
// priority order.
//
// Fonts which fail to load are reported in the returned error, but do not
// prevent segmentation with the remaining fonts.
func Segment(s string, policy otrun.Policy, fonts ...string) ([]otrun.GlyphRun, error) {
	registry := otfont.NewRegistry(nil)
	candidates := make([]otfont.Candidate, 0, len(fonts))
	var errs []error
	for _, name := range fonts {
		c := otfont.System(name, nil)
		if _, err := registry.Font(c); err != nil {
			tracer().Infof("skipping font %s: %v", name, err)
			errs = append(errs, err)
			continue
		}
		candidates = append(candidates, c)
	}
	seg := otrun.NewSegmenter(candidates, otrun.WithPolicy(policy), otrun.WithProvider(registry))
	runs := seg.Segment(otrun.TextFromString(s))
	return runs, errors.Join(errs...)
}

// Substitute applies a chaining context lookup to a sequence of glyphs, with
// nested lookups resolved from list. It returns the resulting glyphs and
// whether any substitution has been applied. glyphs is not modified.
func Substitute(glyphs []ot.GlyphIndex, lookup *otlayout.ChainingLookup,
	list otlayout.LookupList) ([]ot.GlyphIndex, bool) {
	//
	line := otlayout.NewGlyphLine(glyphs...)
	applied := lookup.TransformLine(line, list)
	return line.GlyphIDs(), applied
}
