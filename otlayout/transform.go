package otlayout

import "github.com/npillmayer/glyphrun/ot"

// maxNestingLevel limits recursion of lookups triggered by substitution actions,
// as fonts may contain cyclic lookup references.
const maxNestingLevel = 64

// Lookup is a GSUB lookup which can be applied at the cursor position of a glyph line.
// TransformOne applies the lookup at line.Idx, advances line.Idx past the glyphs it
// consumed (or by one glyph if nothing applied) and reports whether the line changed.
// Substitution actions of contextual rules address other lookups through list.
type Lookup interface {
	TransformOne(line *GlyphLine, list LookupList) bool
}

// LookupList resolves lookup list indices of substitution actions.
type LookupList interface {
	Lookup(index uint16) Lookup
}

// LookupSlice is a LookupList backed by a slice.
type LookupSlice []Lookup

// Lookup returns the lookup at index, or nil if index is out of range.
func (l LookupSlice) Lookup(index uint16) Lookup {
	if int(index) >= len(l) {
		return nil
	}
	return l[index]
}

// ChainingLookup is a GSUB lookup of type 6, consisting of one or more subtables
// which are tried in order.
type ChainingLookup struct {
	Subtables []*ChainingSubtable
}

// NewChainingLookup creates a lookup from subtables. Nil subtables (e.g., from failed
// builds) are dropped.
func NewChainingLookup(subtables ...*ChainingSubtable) *ChainingLookup {
	lookup := &ChainingLookup{Subtables: make([]*ChainingSubtable, 0, len(subtables))}
	for _, st := range subtables {
		if st != nil {
			lookup.Subtables = append(lookup.Subtables, st)
		}
	}
	return lookup
}

// MatchingContextRule returns the first rule of the first subtable matching at
// line.Idx, together with that subtable, or nil. On a match, the window of the line
// is set to the matched input sequence.
func (lookup *ChainingLookup) MatchingContextRule(line *GlyphLine) (ContextualRule, *ChainingSubtable) {
	for _, st := range lookup.Subtables {
		if rule := st.MatchingContextRule(line); rule != nil {
			return rule, st
		}
	}
	return nil, nil
}

// TransformOne applies the lookup at line.Idx. If a rule matches, its substitution
// actions are applied in order, each at the SequenceIndex-th non-skipped glyph of the
// matched input sequence. Afterwards the window of the line is restored (adjusted for
// glyphs replaced by nested lookups) and the cursor is put after the matched sequence.
// If no rule matches, the cursor advances by one glyph.
func (lookup *ChainingLookup) TransformOne(line *GlyphLine, list LookupList) bool {
	initialIdx, initialLen := line.Idx, line.Len()
	enclosing := window{start: line.Start, end: line.End}
	rule, st := lookup.MatchingContextRule(line)
	if rule == nil {
		line.Idx++
		return false
	}
	line.outer = append(line.outer, enclosing)
	changed := false
	if len(line.outer) <= maxNestingLevel {
		for _, rec := range rule.SubstLookupRecords() {
			nested := lookupAt(list, rec.LookupListIndex)
			if nested == nil {
				tracer().Debugf("GSUB 6: lookup record points to missing lookup %d", rec.LookupListIndex)
				continue
			}
			pos, ok := sequencePosition(line, initialIdx, int(rec.SequenceIndex), st.IsSkip)
			if !ok {
				continue
			}
			line.Idx = pos
			changed = nested.TransformOne(line, list) || changed
		}
	} else {
		tracer().Errorf("GSUB 6: maximum lookup nesting level reached at glyph %d", initialIdx)
	}
	// nested lookups may have replaced glyphs past the matched sequence, even
	// past the enclosing window; ReplaceRange has adjusted both windows for this
	matched := line.End
	n := len(line.outer) - 1
	line.Start, line.End = line.outer[n].start, line.outer[n].end
	line.outer = line.outer[:n]
	line.Idx = min(matched, line.End)
	if line.Idx <= initialIdx && line.Len() >= initialLen {
		line.Idx = min(initialIdx+1, line.End)
	}
	return changed
}

// TransformLine applies the lookup to every position of the active window of line.
func (lookup *ChainingLookup) TransformLine(line *GlyphLine, list LookupList) bool {
	changed := false
	line.Idx = line.Start
	for line.Idx < line.End && line.Idx >= line.Start {
		changed = lookup.TransformOne(line, list) || changed
	}
	return changed
}

func lookupAt(list LookupList, index uint16) Lookup {
	if list == nil {
		return nil
	}
	return list.Lookup(index)
}

// sequencePosition finds the glyph position of input sequence index seq, counting
// non-skipped glyphs from start. It stays within the window of line.
func sequencePosition(line *GlyphLine, start, seq int, skip func(ot.GlyphIndex) bool) (int, bool) {
	pos := start
	for i := 0; i < seq; i++ {
		next, ok := nextMatchable(line, pos, skip)
		if !ok {
			return 0, false
		}
		pos = next
	}
	return pos, pos < line.End
}
