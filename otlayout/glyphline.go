package otlayout

import (
	"fmt"
	"slices"

	"github.com/npillmayer/glyphrun/ot"
)

// GlyphBuffer is a mutable sequence of glyph IDs used by GSUB application.
//
// Implementations may be simple slices or more complex structures (e.g. a glyph
// buffer with parallel positioning data). The interface is intentionally small
// to let clients provide their own storage while still enabling substitutions.
//
// Contract:
//   - Indices are zero-based in the range [0, Len()).
//   - At/Set operate on the current buffer.
//   - Replace returns the resulting buffer. It may return the same receiver or a
//     new buffer. Callers must always use the returned value.
//   - Replace(i, j, repl) follows slice semantics and replaces the range [i:j) with repl.
//   - Out-of-range indices are programmer errors and may panic.
type GlyphBuffer interface {
	// Len returns the number of glyphs in the buffer.
	Len() int
	// At returns the glyph at index i.
	At(i int) ot.GlyphIndex
	// Set overwrites the glyph at index i.
	Set(i int, g ot.GlyphIndex)
	// Replace replaces the range [i:j) with repl and returns the resulting buffer.
	Replace(i, j int, repl []ot.GlyphIndex) GlyphBuffer
}

// GlyphSlice is the default GlyphBuffer implementation backed by a slice.
type GlyphSlice []ot.GlyphIndex

func (b GlyphSlice) Len() int {
	return len(b)
}

func (b GlyphSlice) At(i int) ot.GlyphIndex {
	return b[i]
}

func (b GlyphSlice) Set(i int, g ot.GlyphIndex) {
	b[i] = g
}

func (b GlyphSlice) Replace(i, j int, repl []ot.GlyphIndex) GlyphBuffer {
	return GlyphSlice(slices.Replace([]ot.GlyphIndex(b), i, j, repl...))
}

// GlyphLine is a glyph buffer together with a cursor Idx and an active window
// [Start, End). Matching operations never look outside of the window.
//
// Invariant: 0 ≤ Start ≤ Idx ≤ End ≤ Len(). Idx may equal End, meaning that the
// cursor has run past the last glyph of the window.
type GlyphLine struct {
	Glyphs  GlyphBuffer
	Idx     int
	Start   int
	End     int
	outer   []window // windows of the lookups being applied, innermost last
}

// window is a saved [start, end) window of a glyph line.
type window struct {
	start, end int
}

// NewGlyphLine creates a glyph line with the window spanning all glyphs and the
// cursor at the first glyph.
func NewGlyphLine(glyphs ...ot.GlyphIndex) *GlyphLine {
	return WrapGlyphBuffer(GlyphSlice(slices.Clone(glyphs)))
}

// WrapGlyphBuffer creates a glyph line for a client-provided glyph buffer,
// with the window spanning the whole buffer.
func WrapGlyphBuffer(buf GlyphBuffer) *GlyphLine {
	if buf == nil {
		buf = GlyphSlice{}
	}
	return &GlyphLine{Glyphs: buf, End: buf.Len()}
}

// Len returns the number of glyphs of the underlying buffer.
func (line *GlyphLine) Len() int {
	return line.Glyphs.Len()
}

// At returns the glyph at index i.
func (line *GlyphLine) At(i int) ot.GlyphIndex {
	return line.Glyphs.At(i)
}

// Set overwrites the glyph at index i.
func (line *GlyphLine) Set(i int, g ot.GlyphIndex) {
	line.Glyphs.Set(i, g)
}

// ReplaceRange replaces glyphs [i:j) with repl. Window bounds and cursor behind
// the replaced range shift by the change in length; those at or before i stay.
// A bound inside the replaced range moves to the edge of the replacement: Start
// to its beginning, End and Idx to its end.
func (line *GlyphLine) ReplaceRange(i, j int, repl []ot.GlyphIndex) {
	delta := len(repl) - (j - i)
	line.Glyphs = line.Glyphs.Replace(i, j, repl)
	line.Start = shiftPosition(line.Start, i, j, delta, i)
	line.End = shiftPosition(line.End, i, j, delta, i+len(repl))
	line.Idx = shiftPosition(line.Idx, i, j, delta, i+len(repl))
	line.Idx = max(line.Start, min(line.Idx, line.End))
	for k, w := range line.outer {
		line.outer[k].start = shiftPosition(w.start, i, j, delta, i)
		line.outer[k].end = shiftPosition(w.end, i, j, delta, i+len(repl))
	}
}

// shiftPosition moves pos according to a replacement of [i:j) changing the length
// by delta. Positions up to i stay, positions strictly inside (i,j) are set to inside.
func shiftPosition(pos, i, j, delta, inside int) int {
	switch {
	case pos <= i:
		return pos
	case pos >= j:
		return pos + delta
	}
	return inside
}

// SetWindow sets the active window and puts the cursor at its start.
func (line *GlyphLine) SetWindow(start, end int) error {
	if line == nil {
		return ErrVoid
	}
	if start < 0 || start > end || end > line.Len() {
		return fmt.Errorf("glyph line window [%d,%d) invalid for %d glyphs", start, end, line.Len())
	}
	line.Start, line.End, line.Idx = start, end, start
	return nil
}

// GlyphIDs returns a copy of the glyph IDs of the line.
func (line *GlyphLine) GlyphIDs() []ot.GlyphIndex {
	ids := make([]ot.GlyphIndex, line.Len())
	for i := range ids {
		ids[i] = line.At(i)
	}
	return ids
}

func (line *GlyphLine) String() string {
	return fmt.Sprintf("GlyphLine%v[%d:%d|%d]", line.GlyphIDs(), line.Start, line.End, line.Idx)
}

// --- Glyph indexing ---------------------------------------------------------

// nextMatchable returns the first position after pos within the window whose glyph
// is not skipped.
func nextMatchable(line *GlyphLine, pos int, skip func(ot.GlyphIndex) bool) (int, bool) {
	for i := pos + 1; i < line.End; i++ {
		if !skip(line.At(i)) {
			return i, true
		}
	}
	return line.End, false
}

// prevMatchable returns the first position before pos within the window whose glyph
// is not skipped.
func prevMatchable(line *GlyphLine, pos int, skip func(ot.GlyphIndex) bool) (int, bool) {
	for i := pos - 1; i >= line.Start; i-- {
		if !skip(line.At(i)) {
			return i, true
		}
	}
	return line.Start - 1, false
}
