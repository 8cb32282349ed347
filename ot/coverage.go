package ot

import (
	"fmt"
	"slices"
)

// --- Coverage table module -------------------------------------------------

// Coverage denotes an indexed set of glyphs.
// Each LookupSubtable (except an Extension LookupType subtable) in a lookup references
// a Coverage table, which specifies all the glyphs affected by a
// substitution or positioning operation described in the subtable.
// If a glyph does not appear in a Coverage table, the client can skip that subtable
// and move immediately to the next subtable.
//
// The coverage index of a glyph is its position in the ascending list of covered
// glyphs. A Coverage is immutable once constructed.
type Coverage struct {
	glyphs []GlyphIndex // sorted, without duplicates
}

// NewCoverage creates a coverage set from a list of glyphs (in any order).
// Duplicates are silently removed.
func NewCoverage(glyphs ...GlyphIndex) Coverage {
	g := slices.Clone(glyphs)
	slices.Sort(g)
	return Coverage{glyphs: slices.Compact(g)}
}

// CoverageRange creates a coverage set for all glyphs in [from…to] (inclusive).
func CoverageRange(from, to GlyphIndex) Coverage {
	if to < from {
		return Coverage{}
	}
	g := make([]GlyphIndex, 0, int(to-from)+1)
	for i := int(from); i <= int(to); i++ {
		g = append(g, GlyphIndex(i))
	}
	return Coverage{glyphs: g}
}

// Match returns the Coverage Index for a glyph, and true if present.
func (c Coverage) Match(g GlyphIndex) (int, bool) {
	return slices.BinarySearch(c.glyphs, g)
}

// Contains reports whether a glyph is present in the coverage.
func (c Coverage) Contains(g GlyphIndex) bool {
	_, ok := c.Match(g)
	return ok
}

// Len returns the number of glyphs covered.
func (c Coverage) Len() int {
	return len(c.glyphs)
}

// IsEmpty is true for a coverage without glyphs.
func (c Coverage) IsEmpty() bool {
	return len(c.glyphs) == 0
}

// Glyphs returns the covered glyphs in coverage index order.
func (c Coverage) Glyphs() []GlyphIndex {
	return slices.Clone(c.glyphs)
}

func (c Coverage) String() string {
	if len(c.glyphs) > 8 {
		return fmt.Sprintf("Coverage%v…(%d)", c.glyphs[:8], len(c.glyphs))
	}
	return fmt.Sprintf("Coverage%v", c.glyphs)
}
