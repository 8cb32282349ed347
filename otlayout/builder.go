package otlayout

import (
	"fmt"

	"github.com/npillmayer/glyphrun/ot"
)

// The record types below mirror the decoded (but not yet validated) structures of
// GSUB lookup type 6 subtables. Counts are the values declared in the font binary;
// builders check them against the lengths of the accompanying arrays.

// ChainedSequenceRule is a decoded format 1 rule. InputGlyphCount includes the first
// input glyph, which is not part of InputSequence.
type ChainedSequenceRule struct {
	BacktrackGlyphCount uint16
	BacktrackSequence   []ot.GlyphIndex
	InputGlyphCount     uint16
	InputSequence       []ot.GlyphIndex
	LookaheadGlyphCount uint16
	LookaheadSequence   []ot.GlyphIndex
	SeqLookupRecords    []SubstLookupRecord
}

// ChainedClassSequenceRule is a decoded format 2 rule. InputGlyphCount includes the
// first input glyph, whose class is not part of InputSequence.
type ChainedClassSequenceRule struct {
	BacktrackGlyphCount uint16
	BacktrackSequence   []uint16
	InputGlyphCount     uint16
	InputSequence       []uint16
	LookaheadGlyphCount uint16
	LookaheadSequence   []uint16
	SeqLookupRecords    []SubstLookupRecord
}

// ChainedCoverageContext is a decoded format 3 subtable.
type ChainedCoverageContext struct {
	BacktrackGlyphCount uint16
	BacktrackCoverages  []ot.Coverage
	InputGlyphCount     uint16
	InputCoverages      []ot.Coverage
	LookaheadGlyphCount uint16
	LookaheadCoverages  []ot.Coverage
	SeqLookupRecords    []SubstLookupRecord
}

const (
	sectionFmt1 = "ChainedContext/1"
	sectionFmt2 = "ChainedContext/2"
	sectionFmt3 = "ChainedContext/3"
)

// NewFormat1Subtable builds a glyph-based chaining subtable. ruleSets[i] holds the
// rules for the glyph with coverage index i.
//
// Errors are confined to the subtable: if a critical error is detected, no subtable
// is returned and the error lists all problems found.
func NewFormat1Subtable(props LookupProps, coverage ot.Coverage, ruleSets [][]ChainedSequenceRule) (*ChainingSubtable, error) {
	ec := &ot.ErrorCollector{}
	if coverage.Len() != len(ruleSets) {
		ec.Errorf(ot.GSUB, sectionFmt1, ot.SeverityCritical,
			"coverage has %d glyphs, but there are %d rule sets", coverage.Len(), len(ruleSets))
	}
	st := &ChainingSubtable{
		format:    GlyphFormat,
		props:     props,
		coverage:  coverage,
		glyphSets: make([][]ContextualRule, len(ruleSets)),
	}
	for i, set := range ruleSets {
		rules := make([]ContextualRule, 0, len(set))
		for j, rec := range set {
			where := fmt.Sprintf("rule set %d, rule %d", i, j)
			checkCounts(ec, sectionFmt1, where, rec.BacktrackGlyphCount, len(rec.BacktrackSequence),
				rec.InputGlyphCount, len(rec.InputSequence), rec.LookaheadGlyphCount, len(rec.LookaheadSequence))
			checkRecords(ec, sectionFmt1, where, rec.SeqLookupRecords, int(rec.InputGlyphCount))
			rules = append(rules, &GlyphRule{
				Backtrack: rec.BacktrackSequence,
				Input:     rec.InputSequence,
				Lookahead: rec.LookaheadSequence,
				Records:   rec.SeqLookupRecords,
			})
		}
		st.glyphSets[i] = rules
	}
	return finish(st, ec)
}

// NewFormat2Subtable builds a class-based chaining subtable. classSets[c] holds the
// rules for input sequences whose first glyph is of input class c. Backtrack and
// lookahead classes are resolved with their own class definitions.
func NewFormat2Subtable(props LookupProps, coverage ot.Coverage, classes ClassContext,
	classSets [][]ChainedClassSequenceRule) (*ChainingSubtable, error) {
	//
	ec := &ot.ErrorCollector{}
	if coverage.IsEmpty() {
		ec.AddError(ot.GSUB, sectionFmt2, "subtable has empty coverage", ot.SeverityMajor)
	}
	cc := classes
	st := &ChainingSubtable{
		format:    ClassFormat,
		props:     props,
		coverage:  coverage,
		classSets: make([][]ContextualRule, len(classSets)),
		classes:   &cc,
	}
	maxB, maxI, maxL := cc.Backtrack.MaxClass(), cc.Input.MaxClass(), cc.Lookahead.MaxClass()
	for c, set := range classSets {
		if len(set) > 0 && c > int(maxI) {
			ec.Errorf(ot.GSUB, sectionFmt2, ot.SeverityMajor,
				"rule set for input class %d, but input classes end at %d", c, maxI)
		}
		rules := make([]ContextualRule, 0, len(set))
		for j, rec := range set {
			where := fmt.Sprintf("class set %d, rule %d", c, j)
			checkCounts(ec, sectionFmt2, where, rec.BacktrackGlyphCount, len(rec.BacktrackSequence),
				rec.InputGlyphCount, len(rec.InputSequence), rec.LookaheadGlyphCount, len(rec.LookaheadSequence))
			checkRecords(ec, sectionFmt2, where, rec.SeqLookupRecords, int(rec.InputGlyphCount))
			checkClasses(ec, where, backtrackWindow, rec.BacktrackSequence, maxB)
			checkClasses(ec, where, inputWindow, rec.InputSequence, maxI)
			checkClasses(ec, where, lookaheadWindow, rec.LookaheadSequence, maxL)
			rules = append(rules, &ClassRule{
				Backtrack: rec.BacktrackSequence,
				Input:     rec.InputSequence,
				Lookahead: rec.LookaheadSequence,
				Records:   rec.SeqLookupRecords,
				classes:   st.classes,
			})
		}
		st.classSets[c] = rules
	}
	return finish(st, ec)
}

// NewFormat3Subtable builds a coverage-based chaining subtable, which holds exactly
// one rule.
func NewFormat3Subtable(props LookupProps, ctx ChainedCoverageContext) (*ChainingSubtable, error) {
	ec := &ot.ErrorCollector{}
	where := "rule"
	if int(ctx.BacktrackGlyphCount) != len(ctx.BacktrackCoverages) {
		countError(ec, sectionFmt3, where, backtrackWindow, int(ctx.BacktrackGlyphCount), len(ctx.BacktrackCoverages))
	}
	if int(ctx.InputGlyphCount) != len(ctx.InputCoverages) {
		countError(ec, sectionFmt3, where, inputWindow, int(ctx.InputGlyphCount), len(ctx.InputCoverages))
	}
	if int(ctx.LookaheadGlyphCount) != len(ctx.LookaheadCoverages) {
		countError(ec, sectionFmt3, where, lookaheadWindow, int(ctx.LookaheadGlyphCount), len(ctx.LookaheadCoverages))
	}
	if len(ctx.InputCoverages) == 0 {
		ec.AddError(ot.GSUB, sectionFmt3, "input sequence must have at least one coverage", ot.SeverityCritical)
	}
	for w, covs := range [][]ot.Coverage{ctx.BacktrackCoverages, ctx.InputCoverages, ctx.LookaheadCoverages} {
		for i, cov := range covs {
			if cov.IsEmpty() {
				ec.Errorf(ot.GSUB, sectionFmt3, ot.SeverityCritical,
					"%s coverage #%d is missing or empty", contextWindow(w), i)
			}
		}
	}
	checkRecords(ec, sectionFmt3, where, ctx.SeqLookupRecords, len(ctx.InputCoverages))
	st := &ChainingSubtable{
		format: CoverageFormat,
		props:  props,
		rule: &CoverageRule{
			Backtrack: ctx.BacktrackCoverages,
			Input:     ctx.InputCoverages,
			Lookahead: ctx.LookaheadCoverages,
			Records:   ctx.SeqLookupRecords,
		},
	}
	return finish(st, ec)
}

// --- Validation helpers -----------------------------------------------------

func finish(st *ChainingSubtable, ec *ot.ErrorCollector) (*ChainingSubtable, error) {
	if ec.HasCriticalErrors() {
		tracer().Errorf("GSUB 6|%d subtable dropped:\n%s", st.format, ec.String())
		return nil, fmt.Errorf("%w: %w", errFontFormat("invalid chaining context subtable"), ec.Err())
	}
	if ec.HasErrors() {
		tracer().Infof("GSUB 6|%d subtable has problems:\n%s", st.format, ec.String())
		st.warnings = ec.Errors()
	}
	return st, nil
}

func checkCounts(ec *ot.ErrorCollector, section, where string,
	btCount uint16, btLen int, inCount uint16, inLen int, laCount uint16, laLen int) {
	//
	if int(btCount) != btLen {
		countError(ec, section, where, backtrackWindow, int(btCount), btLen)
	}
	if inCount == 0 {
		ec.Errorf(ot.GSUB, section, ot.SeverityCritical, "%s: input glyph count is zero", where)
	} else if int(inCount)-1 != inLen {
		countError(ec, section, where, inputWindow, int(inCount)-1, inLen)
	}
	if int(laCount) != laLen {
		countError(ec, section, where, lookaheadWindow, int(laCount), laLen)
	}
}

func countError(ec *ot.ErrorCollector, section, where string, w contextWindow, declared, actual int) {
	ec.Errorf(ot.GSUB, section, ot.SeverityCritical,
		"%s: %s count %d does not match %d entries", where, w, declared, actual)
}

func checkRecords(ec *ot.ErrorCollector, section, where string, records []SubstLookupRecord, inputLen int) {
	for _, rec := range records {
		if int(rec.SequenceIndex) >= inputLen {
			ec.Errorf(ot.GSUB, section, ot.SeverityMajor,
				"%s: lookup record points to sequence index %d beyond input length %d",
				where, rec.SequenceIndex, inputLen)
		}
	}
}

func checkClasses(ec *ot.ErrorCollector, where string, w contextWindow, classes []uint16, maxClass uint16) {
	for _, c := range classes {
		if c > maxClass {
			ec.Errorf(ot.GSUB, sectionFmt2, ot.SeverityMajor,
				"%s: %s class %d is not defined (max. class is %d)", where, w, c, maxClass)
		}
	}
}
