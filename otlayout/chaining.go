package otlayout

import (
	"github.com/npillmayer/glyphrun/ot"
)

// Skipper decides whether a glyph is invisible to context matching, given the flags
// of a lookup. *ot.GDef is the canonical implementation.
type Skipper interface {
	IsSkip(g ot.GlyphIndex, flag ot.LayoutTableLookupFlag, markFilteringSet uint16) bool
}

// LookupProps are the lookup-level properties a subtable needs for matching.
type LookupProps struct {
	Flag             ot.LayoutTableLookupFlag
	MarkFilteringSet uint16  // used if Flag has LOOKUP_FLAG_USE_MARK_FILTERING_SET set
	Skipper          Skipper // usually the font's GDEF; nil skips nothing
}

// ChainingSubtable is a GSUB lookup type 6 subtable of any format.
// It is created by one of the NewFormat…Subtable builders and is immutable thereafter.
type ChainingSubtable struct {
	format    RuleFormat
	props     LookupProps
	coverage  ot.Coverage        // start glyphs, formats 1 and 2
	glyphSets [][]ContextualRule // format 1, by coverage index
	classSets [][]ContextualRule // format 2, by input class
	classes   *ClassContext      // format 2
	rule      *CoverageRule      // format 3
	warnings  []ot.FontError
}

// Format returns the rule format of the subtable.
func (st *ChainingSubtable) Format() RuleFormat {
	return st.format
}

// Props returns the lookup properties the subtable matches with.
func (st *ChainingSubtable) Props() LookupProps {
	return st.props
}

// Warnings returns non-critical problems detected while building the subtable.
func (st *ChainingSubtable) Warnings() []ot.FontError {
	return st.warnings
}

// IsSkip reports whether glyph g is invisible for this subtable's lookup flags.
func (st *ChainingSubtable) IsSkip(g ot.GlyphIndex) bool {
	if st.props.Skipper == nil {
		return false
	}
	return st.props.Skipper.IsSkip(g, st.props.Flag, st.props.MarkFilteringSet)
}

// RulesForStartGlyph returns the rule set for input sequences starting with glyph g,
// in declaration order. Glyphs skipped by the lookup flags never start a sequence.
// The returned slice must not be modified.
func (st *ChainingSubtable) RulesForStartGlyph(g ot.GlyphIndex) []ContextualRule {
	if st == nil || st.IsSkip(g) {
		return nil
	}
	switch st.format {
	case GlyphFormat:
		if inx, ok := st.coverage.Match(g); ok && inx < len(st.glyphSets) {
			return st.glyphSets[inx]
		}
	case ClassFormat:
		if !st.coverage.Contains(g) {
			return nil
		}
		if class := int(st.classes.Input.Lookup(g)); class < len(st.classSets) {
			return st.classSets[class]
		}
	case CoverageFormat:
		if st.rule != nil && st.rule.Input[0].Contains(g) {
			return []ContextualRule{st.rule}
		}
	}
	return nil
}

// MatchingContextRule finds the first rule of the rule set for the glyph at
// line.Idx whose input, lookahead and backtrack contexts match.
//
// On success the window of the line is set to the matched input sequence, i.e.
// line.Start = line.Idx and line.End = (index of last matched input glyph) + 1,
// and the rule is returned. Otherwise the line is left untouched and nil is returned.
func (st *ChainingSubtable) MatchingContextRule(line *GlyphLine) ContextualRule {
	if line == nil || line.Idx >= line.End {
		return nil
	}
	rules := st.RulesForStartGlyph(line.At(line.Idx))
	for _, rule := range rules {
		last, ok := st.matchInput(line, rule)
		if !ok {
			continue
		}
		if !st.matchLookahead(line, rule, last) || !st.matchBacktrack(line, rule) {
			continue
		}
		tracer().Debugf("GSUB 6|%d rule matched at [%d,%d)", st.format, line.Idx, last+1)
		line.Start = line.Idx
		line.End = last + 1
		return rule
	}
	return nil
}

// matchInput checks input positions 1…ContextLength-1, starting after line.Idx.
// It returns the index of the last glyph of the input sequence.
func (st *ChainingSubtable) matchInput(line *GlyphLine, rule ContextualRule) (int, bool) {
	pos := line.Idx
	for j := 1; j < rule.ContextLength(); j++ {
		next, ok := nextMatchable(line, pos, st.IsSkip)
		if !ok || !matchesAt(rule, inputWindow, line.At(next), j) {
			return -1, false
		}
		pos = next
	}
	return pos, true
}

func (st *ChainingSubtable) matchLookahead(line *GlyphLine, rule ContextualRule, last int) bool {
	pos := last
	for j := 0; j < rule.LookaheadLength(); j++ {
		next, ok := nextMatchable(line, pos, st.IsSkip)
		if !ok || !matchesAt(rule, lookaheadWindow, line.At(next), j) {
			return false
		}
		pos = next
	}
	return true
}

func (st *ChainingSubtable) matchBacktrack(line *GlyphLine, rule ContextualRule) bool {
	pos := line.Idx
	for j := 0; j < rule.BacktrackLength(); j++ {
		prev, ok := prevMatchable(line, pos, st.IsSkip)
		if !ok || !matchesAt(rule, backtrackWindow, line.At(prev), j) {
			return false
		}
		pos = prev
	}
	return true
}
