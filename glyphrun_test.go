package glyphrun

import (
	"slices"
	"testing"

	"github.com/npillmayer/glyphrun/ot"
	"github.com/npillmayer/glyphrun/otlayout"
	"github.com/npillmayer/glyphrun/otrun"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSegmentWithPackagedFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphrun.runs")
	defer teardown()
	//
	runs, err := Segment("Hello World", otrun.BestMatch, "gomono", "goregular")
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Font.Name() != "Go Mono" {
		t.Errorf("expected a single run with Go Mono, have %v", runs)
	}
	runs, err = Segment("abc", otrun.FirstMatch, "no-such-font-anywhere", "goregular")
	if err == nil {
		t.Error("expected error for unknown font")
	}
	if len(runs) != 1 || runs[0].Font.Name() != "Go Regular" {
		t.Errorf("expected segmentation to continue with Go Regular, have %v", runs)
	}
}

// replace is a single substitution lookup.
type replace struct{ from, to ot.GlyphIndex }

func (r replace) TransformOne(line *otlayout.GlyphLine, list otlayout.LookupList) bool {
	if line.At(line.Idx) != r.from {
		line.Idx++
		return false
	}
	line.Set(line.Idx, r.to)
	line.Idx++
	return true
}

func TestSubstitute(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphrun.layout")
	defer teardown()
	//
	st, err := otlayout.NewFormat3Subtable(otlayout.LookupProps{}, otlayout.ChainedCoverageContext{
		BacktrackGlyphCount: 1,
		BacktrackCoverages:  []ot.Coverage{ot.NewCoverage(1)},
		InputGlyphCount:     1,
		InputCoverages:      []ot.Coverage{ot.NewCoverage(2)},
		LookaheadGlyphCount: 1,
		LookaheadCoverages:  []ot.Coverage{ot.NewCoverage(3)},
		SeqLookupRecords:    []otlayout.SubstLookupRecord{{SequenceIndex: 0, LookupListIndex: 0}},
	})
	if err != nil {
		t.Fatal(err)
	}
	lookup := otlayout.NewChainingLookup(st)
	list := otlayout.LookupSlice{replace{from: 2, to: 9}}
	input := []ot.GlyphIndex{1, 2, 3, 2, 3}
	out, applied := Substitute(input, lookup, list)
	if !applied || !slices.Equal(out, []ot.GlyphIndex{1, 9, 3, 2, 3}) {
		t.Errorf("expected only the glyph in context to be replaced, have %v", out)
	}
	if input[1] != 2 {
		t.Error("expected input glyphs to be left unchanged")
	}
}
