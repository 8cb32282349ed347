package otlayout

import (
	"testing"

	"github.com/npillmayer/glyphrun/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const (
	gA ot.GlyphIndex = 10 + iota
	gB
	gC
	gD
	gX
	gMark
	gLig
)

// glyphRule creates a decoded format 1 rule with consistent counts. input is the
// complete input sequence, including the first glyph.
func glyphRule(backtrack, input, lookahead []ot.GlyphIndex, recs ...SubstLookupRecord) ChainedSequenceRule {
	return ChainedSequenceRule{
		BacktrackGlyphCount: uint16(len(backtrack)),
		BacktrackSequence:   backtrack,
		InputGlyphCount:     uint16(len(input)),
		InputSequence:       input[1:],
		LookaheadGlyphCount: uint16(len(lookahead)),
		LookaheadSequence:   lookahead,
		SeqLookupRecords:    recs,
	}
}

func glyphs(g ...ot.GlyphIndex) []ot.GlyphIndex {
	return g
}

func format1(t *testing.T, props LookupProps, start ot.GlyphIndex, rules ...ChainedSequenceRule) *ChainingSubtable {
	t.Helper()
	st, err := NewFormat1Subtable(props, ot.NewCoverage(start), [][]ChainedSequenceRule{rules})
	if err != nil {
		t.Fatalf("cannot build format 1 subtable: %v", err)
	}
	return st
}

func TestChainedGlyphContextMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphrun.layout")
	defer teardown()
	//
	st := format1(t, LookupProps{}, gB, glyphRule(glyphs(gA), glyphs(gB), glyphs(gC)))
	line := NewGlyphLine(gA, gB, gC)
	line.Idx = 1
	rule := st.MatchingContextRule(line)
	if rule == nil {
		t.Fatal("expected rule to match sequence A B C at B")
	}
	if rule.Format() != GlyphFormat {
		t.Errorf("expected glyph format rule, have %s", rule.Format())
	}
	if line.Start != 1 || line.End != 2 {
		t.Errorf("expected match window [1,2), have [%d,%d)", line.Start, line.End)
	}
}

func TestChainedGlyphContextBacktrackMismatch(t *testing.T) {
	st := format1(t, LookupProps{}, gB, glyphRule(glyphs(gA), glyphs(gB), glyphs(gC)))
	line := NewGlyphLine(gX, gB, gC)
	line.Idx = 1
	if rule := st.MatchingContextRule(line); rule != nil {
		t.Fatal("expected backtrack mismatch for sequence X B C")
	}
	if line.Start != 0 || line.End != 3 || line.Idx != 1 {
		t.Errorf("failed match must not change the line, have %s", line)
	}
}

func TestChainedContextEmptyLine(t *testing.T) {
	st := format1(t, LookupProps{}, gB, glyphRule(nil, glyphs(gB), nil))
	if rule := st.MatchingContextRule(NewGlyphLine()); rule != nil {
		t.Error("expected no match on empty glyph line")
	}
	line := NewGlyphLine(gB)
	line.Idx = 1
	if rule := st.MatchingContextRule(line); rule != nil {
		t.Error("expected no match with cursor at end of window")
	}
}

func TestChainedContextRulePriority(t *testing.T) {
	st := format1(t, LookupProps{}, gB,
		glyphRule(nil, glyphs(gB), glyphs(gC)),
		glyphRule(nil, glyphs(gB), nil),
	)
	rules := st.RulesForStartGlyph(gB)
	if len(rules) != 2 {
		t.Fatalf("expected rule set of 2 rules, have %d", len(rules))
	}
	line := NewGlyphLine(gB, gC)
	if rule := st.MatchingContextRule(line); rule != rules[0] {
		t.Errorf("expected first rule to win")
	}
	line = NewGlyphLine(gB, gX)
	if rule := st.MatchingContextRule(line); rule != rules[1] {
		t.Errorf("expected second rule to match if first one fails")
	}
}

func TestChainedContextDegenerate(t *testing.T) {
	st := format1(t, LookupProps{}, gB, glyphRule(nil, glyphs(gB, gC), nil))
	line := NewGlyphLine(gA, gB, gC)
	line.Idx = 1
	if st.MatchingContextRule(line) == nil {
		t.Fatal("expected input-only rule to match")
	}
	if line.End != 3 {
		t.Errorf("expected match to end at 3, have %d", line.End)
	}
	line = NewGlyphLine(gA, gB, gX)
	line.Idx = 1
	if st.MatchingContextRule(line) != nil {
		t.Error("expected input-only rule to fail on wrong input")
	}
}

func TestChainedContextSkipsMarks(t *testing.T) {
	gdef := &ot.GDef{
		GlyphClassDef: ot.ClassDefFromMap(map[ot.GlyphIndex]uint16{gMark: uint16(ot.MarkGlyph)}),
	}
	rule := glyphRule(glyphs(gA), glyphs(gB, gC), glyphs(gD))
	props := LookupProps{Flag: ot.LOOKUP_FLAG_IGNORE_MARKS, Skipper: gdef}
	st := format1(t, props, gB, rule)
	line := NewGlyphLine(gA, gMark, gB, gMark, gC, gMark, gD)
	line.Idx = 2
	if st.MatchingContextRule(line) == nil {
		t.Fatalf("expected marks to be skipped in all contexts")
	}
	if line.Start != 2 || line.End != 5 {
		t.Errorf("expected match window [2,5), have [%d,%d)", line.Start, line.End)
	}
	noskip := format1(t, LookupProps{Skipper: gdef}, gB, rule)
	line = NewGlyphLine(gA, gMark, gB, gMark, gC, gMark, gD)
	line.Idx = 2
	if noskip.MatchingContextRule(line) != nil {
		t.Errorf("expected marks to be visible without lookup flag")
	}
	stmark := format1(t, props, gMark, glyphRule(nil, glyphs(gMark), nil))
	if rules := stmark.RulesForStartGlyph(gMark); len(rules) != 0 {
		t.Errorf("skipped glyph must not start an input sequence")
	}
}

func TestChainedContextRespectsWindow(t *testing.T) {
	st := format1(t, LookupProps{}, gB, glyphRule(glyphs(gA), glyphs(gB), glyphs(gC)))
	line := NewGlyphLine(gA, gB, gC)
	if err := line.SetWindow(1, 3); err != nil {
		t.Fatal(err)
	}
	if st.MatchingContextRule(line) != nil {
		t.Error("backtrack must not look before start of window")
	}
	if err := line.SetWindow(0, 2); err != nil {
		t.Fatal(err)
	}
	line.Idx = 1
	if st.MatchingContextRule(line) != nil {
		t.Error("lookahead must not look past end of window")
	}
}

func TestChainedClassContext(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphrun.layout")
	defer teardown()
	//
	classes := ClassContext{
		Backtrack: ot.ClassDefFromMap(map[ot.GlyphIndex]uint16{gA: 1}),
		Input:     ot.ClassDefFromMap(map[ot.GlyphIndex]uint16{gB: 1, gC: 2}),
		Lookahead: ot.ClassDefFromMap(map[ot.GlyphIndex]uint16{gC: 3}),
	}
	rule := ChainedClassSequenceRule{
		BacktrackGlyphCount: 1,
		BacktrackSequence:   []uint16{1},
		InputGlyphCount:     1,
		LookaheadGlyphCount: 1,
		LookaheadSequence:   []uint16{3},
	}
	st, err := NewFormat2Subtable(LookupProps{}, ot.NewCoverage(gB), classes,
		[][]ChainedClassSequenceRule{nil, {rule}})
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Warnings()) != 0 {
		t.Errorf("expected no warnings, have %v", st.Warnings())
	}
	line := NewGlyphLine(gA, gB, gC)
	line.Idx = 1
	r := st.MatchingContextRule(line)
	if r == nil {
		t.Fatal("expected class rule to match A B C")
	}
	if r.Format() != ClassFormat || line.End != 2 {
		t.Errorf("unexpected match: %s rule, end = %d", r.Format(), line.End)
	}
	// C has input class 2, but backtrack class 0
	line = NewGlyphLine(gC, gB, gC)
	line.Idx = 1
	if st.MatchingContextRule(line) != nil {
		t.Error("backtrack must be classified by backtrack class definition")
	}
	if len(st.RulesForStartGlyph(gC)) != 0 {
		t.Error("glyph outside of coverage must not select a rule set")
	}
}

func TestChainedCoverageContext(t *testing.T) {
	ctx := ChainedCoverageContext{
		BacktrackGlyphCount: 1,
		BacktrackCoverages:  []ot.Coverage{ot.NewCoverage(gA, gX)},
		InputGlyphCount:     2,
		InputCoverages:      []ot.Coverage{ot.NewCoverage(gB), ot.NewCoverage(gC, gD)},
	}
	st, err := NewFormat3Subtable(LookupProps{}, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(st.RulesForStartGlyph(gB)) != 1 {
		t.Error("expected singleton rule set for covered start glyph")
	}
	if len(st.RulesForStartGlyph(gC)) != 0 {
		t.Error("expected empty rule set for uncovered start glyph")
	}
	line := NewGlyphLine(gX, gB, gD, gA)
	line.Idx = 1
	r := st.MatchingContextRule(line)
	if r == nil {
		t.Fatal("expected coverage rule to match X B D")
	}
	if r.ContextLength() != 2 || line.Start != 1 || line.End != 3 {
		t.Errorf("unexpected match window [%d,%d)", line.Start, line.End)
	}
}
