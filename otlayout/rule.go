package otlayout

import (
	"fmt"

	"github.com/npillmayer/glyphrun/ot"
)

// RuleFormat identifies the encoding of a chaining contextual rule.
type RuleFormat uint8

const (
	GlyphFormat    RuleFormat = 1 // contexts are glyph ID sequences
	ClassFormat    RuleFormat = 2 // contexts are glyph class sequences
	CoverageFormat RuleFormat = 3 // contexts are coverage set sequences
)

func (f RuleFormat) String() string {
	switch f {
	case GlyphFormat:
		return "glyph"
	case ClassFormat:
		return "class"
	case CoverageFormat:
		return "coverage"
	}
	return fmt.Sprintf("format(%d)", uint8(f))
}

// SubstLookupRecord is a substitution action of a contextual rule: apply the lookup
// at LookupListIndex to the glyph at SequenceIndex of the matched input sequence.
type SubstLookupRecord struct {
	SequenceIndex   uint16
	LookupListIndex uint16
}

// ContextualRule is one of *GlyphRule, *ClassRule or *CoverageRule.
//
// Context lengths count glyph positions: ContextLength includes the first glyph of
// the input sequence, which is the glyph a rule set is selected by.
type ContextualRule interface {
	Format() RuleFormat
	ContextLength() int
	BacktrackLength() int
	LookaheadLength() int
	SubstLookupRecords() []SubstLookupRecord
	contextualRule()
}

// GlyphRule is a format 1 rule. Input excludes the first input glyph.
// Backtrack is ordered as in the font: Backtrack[0] is the glyph immediately
// preceding the input sequence.
type GlyphRule struct {
	Backtrack []ot.GlyphIndex
	Input     []ot.GlyphIndex
	Lookahead []ot.GlyphIndex
	Records   []SubstLookupRecord
}

// ClassRule is a format 2 rule. Input excludes the class of the first input glyph.
// Class values are interpreted by the class definitions of the subtable the rule
// belongs to, which may differ for backtrack, input and lookahead.
type ClassRule struct {
	Backtrack []uint16
	Input     []uint16
	Lookahead []uint16
	Records   []SubstLookupRecord
	classes   *ClassContext
}

// ClassContext bundles the three class definitions of a format 2 subtable.
type ClassContext struct {
	Backtrack ot.ClassDef
	Input     ot.ClassDef
	Lookahead ot.ClassDef
}

// noClasses puts every glyph into class 0.
var noClasses ClassContext

// CoverageRule is a format 3 rule. Input includes the coverage of the first
// input glyph.
type CoverageRule struct {
	Backtrack []ot.Coverage
	Input     []ot.Coverage
	Lookahead []ot.Coverage
	Records   []SubstLookupRecord
}

func (r *GlyphRule) Format() RuleFormat                      { return GlyphFormat }
func (r *GlyphRule) ContextLength() int                      { return len(r.Input) + 1 }
func (r *GlyphRule) BacktrackLength() int                    { return len(r.Backtrack) }
func (r *GlyphRule) LookaheadLength() int                    { return len(r.Lookahead) }
func (r *GlyphRule) SubstLookupRecords() []SubstLookupRecord { return r.Records }
func (r *GlyphRule) contextualRule()                         {}

func (r *ClassRule) Format() RuleFormat                      { return ClassFormat }
func (r *ClassRule) ContextLength() int                      { return len(r.Input) + 1 }
func (r *ClassRule) BacktrackLength() int                    { return len(r.Backtrack) }
func (r *ClassRule) LookaheadLength() int                    { return len(r.Lookahead) }
func (r *ClassRule) SubstLookupRecords() []SubstLookupRecord { return r.Records }
func (r *ClassRule) contextualRule()                         {}

func (r *CoverageRule) Format() RuleFormat                      { return CoverageFormat }
func (r *CoverageRule) ContextLength() int                      { return len(r.Input) }
func (r *CoverageRule) BacktrackLength() int                    { return len(r.Backtrack) }
func (r *CoverageRule) LookaheadLength() int                    { return len(r.Lookahead) }
func (r *CoverageRule) SubstLookupRecords() []SubstLookupRecord { return r.Records }
func (r *CoverageRule) contextualRule()                         {}

// --- Predicates -------------------------------------------------------------

// contextWindow selects one of the three glyph sequences of a rule.
type contextWindow uint8

const (
	backtrackWindow contextWindow = iota
	inputWindow
	lookaheadWindow
)

func (w contextWindow) String() string {
	return [...]string{"backtrack", "input", "lookahead"}[w]
}

// matchesAt reports whether glyph g matches position at of a context window of rule.
// Input positions are counted from the first glyph of the input sequence, i.e.
// at = 1 denotes the second input glyph. Backtrack positions are counted from the
// glyph closest to the input sequence.
func matchesAt(rule ContextualRule, w contextWindow, g ot.GlyphIndex, at int) bool {
	switch r := rule.(type) {
	case *GlyphRule:
		switch w {
		case backtrackWindow:
			return r.Backtrack[at] == g
		case inputWindow:
			return r.Input[at-1] == g
		default:
			return r.Lookahead[at] == g
		}
	case *ClassRule:
		cc := r.classes
		if cc == nil {
			cc = &noClasses
		}
		switch w {
		case backtrackWindow:
			return cc.Backtrack.Lookup(g) == r.Backtrack[at]
		case inputWindow:
			return cc.Input.Lookup(g) == r.Input[at-1]
		default:
			return cc.Lookahead.Lookup(g) == r.Lookahead[at]
		}
	case *CoverageRule:
		switch w {
		case backtrackWindow:
			return r.Backtrack[at].Contains(g)
		case inputWindow:
			return r.Input[at].Contains(g)
		default:
			return r.Lookahead[at].Contains(g)
		}
	}
	panic(fmt.Sprintf("unknown contextual rule type %T", rule))
}
