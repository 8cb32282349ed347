package ot

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
)

// --- Class definition tables -----------------------------------------------

// ClassRange assigns a class to all glyphs in [Start…End] (inclusive).
type ClassRange struct {
	Start, End GlyphIndex
	Class      uint16
}

// ClassDef groups glyphs into classes, denoted as integer values.
//
// From the OpenType specification:
// For efficiency and ease of representation, a font developer can group glyph indices
// to form glyph classes. Class assignments vary in meaning from one lookup subtable
// to another. For example, in the GSUB and GPOS tables, classes are used to describe
// glyph contexts. GDEF tables also use the idea of glyph classes.
//
// Any glyph not included in the range of covered glyph IDs automatically belongs
// to class 0. The zero value of ClassDef maps every glyph to class 0.
//
// ClassDef is immutable after construction and safe for concurrent reads.
type ClassDef struct {
	ranges *treemap.Map // start glyph → ClassRange, ordered
	count  int
}

// NewClassDef creates a class definition from a list of glyph ranges (in any order).
// Ranges must not overlap; an error is returned otherwise.
func NewClassDef(ranges ...ClassRange) (ClassDef, error) {
	rs := append([]ClassRange(nil), ranges...)
	sort.Slice(rs, func(i, j int) bool { return rs[i].Start < rs[j].Start })
	m := treemap.NewWith(utils.UInt16Comparator)
	for i, r := range rs {
		if r.End < r.Start {
			return ClassDef{}, fmt.Errorf("class range [%d…%d] is inverted", r.Start, r.End)
		}
		if i > 0 && r.Start <= rs[i-1].End {
			return ClassDef{}, fmt.Errorf("class ranges [%d…%d] and [%d…%d] overlap",
				rs[i-1].Start, rs[i-1].End, r.Start, r.End)
		}
		m.Put(uint16(r.Start), r)
	}
	return ClassDef{ranges: m, count: len(rs)}, nil
}

// ClassDefFromMap creates a class definition with single-glyph entries, similar to
// a format 1 class definition table. Glyphs mapped to class 0 are dropped.
func ClassDefFromMap(classes map[GlyphIndex]uint16) ClassDef {
	m := treemap.NewWith(utils.UInt16Comparator)
	n := 0
	for g, c := range classes {
		if c == 0 {
			continue
		}
		m.Put(uint16(g), ClassRange{Start: g, End: g, Class: c})
		n++
	}
	return ClassDef{ranges: m, count: n}
}

// Lookup returns the class of glyph g.
func (cdef ClassDef) Lookup(g GlyphIndex) uint16 {
	if cdef.ranges == nil {
		return 0
	}
	_, v := cdef.ranges.Floor(uint16(g))
	if v == nil {
		return 0
	}
	if r := v.(ClassRange); g <= r.End {
		return r.Class
	}
	return 0
}

// MaxClass returns the highest class value assigned by this class definition.
func (cdef ClassDef) MaxClass() uint16 {
	if cdef.ranges == nil {
		return 0
	}
	var hi uint16
	it := cdef.ranges.Iterator()
	for it.Next() {
		if c := it.Value().(ClassRange).Class; c > hi {
			hi = c
		}
	}
	return hi
}

// Len returns the number of class ranges.
func (cdef ClassDef) Len() int {
	return cdef.count
}
