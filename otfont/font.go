package otfont

import (
	"fmt"
	"unicode"

	"github.com/npillmayer/glyphrun/internal/uniclass"
	"github.com/npillmayer/glyphrun/ot"
)

// Glyph is a glyph of a font, resulting from one or more codepoints.
// Code 0 denotes the .notdef glyph.
type Glyph struct {
	Code     ot.GlyphIndex
	Runes    []rune // codepoints the glyph has been derived from
	Width    int    // advance width in 1/1000 em
	XAdvance int    // additional horizontal advance in 1/1000 em
}

// HasValidCode is true if g is not the .notdef glyph.
func (g Glyph) HasValidCode() bool {
	return g.Code > 0
}

// Rune returns the first codepoint g has been derived from, or -1.
func (g Glyph) Rune() rune {
	if len(g.Runes) == 0 {
		return -1
	}
	return g.Runes[0]
}

func (g Glyph) String() string {
	return fmt.Sprintf("<%d %q w=%d%+d>", g.Code, string(g.Runes), g.Width, g.XAdvance)
}

// GlyphMapper maps a codepoint to a glyph. If the font does not have a glyph for r,
// Glyph returns false and the .notdef glyph standing for r.
type GlyphMapper interface {
	Glyph(r rune) (Glyph, bool)
}

// Font is the capability of a font needed for run segmentation.
type Font interface {
	GlyphMapper
	// Name is the (full) name of the font.
	Name() string
	// ContainsGlyph is true if the font has a glyph other than .notdef for r.
	ContainsGlyph(r rune) bool
	// AppendGlyphs appends glyphs for the codepoints starting in text[from:to], stopping
	// at the first codepoint the font cannot render. It returns the extended glyph slice
	// and the number of UTF-16 units consumed.
	AppendGlyphs(text []uint16, from, to int, out []Glyph) ([]Glyph, int)
	// AppendAnyGlyph appends a glyph for the codepoint at text[at], using .notdef if
	// necessary. It always consumes the codepoint and returns its UTF-16 width.
	AppendAnyGlyph(text []uint16, at int, out []Glyph) ([]Glyph, int)
	// IsMonospace is true for fonts with a fixed advance width.
	IsMonospace() bool
}

// AppendGlyphs implements Font.AppendGlyphs for any glyph mapper. White space and
// non-printable codepoints are always appendable; if the font has no glyph for them,
// a zero-width .notdef glyph stands in for them.
func AppendGlyphs(f GlyphMapper, text []uint16, from, to int, out []Glyph) ([]Glyph, int) {
	to = min(to, len(text))
	pos := from
	for pos < to {
		r, w := uniclass.DecodeRune(text, pos)
		g, ok := f.Glyph(r)
		if !ok {
			if !uniclass.IsWhitespaceOrNonPrintable(r) {
				break
			}
			g.Width = 0
		}
		out = append(out, g)
		pos += w
	}
	return out, pos - from
}

// AppendAnyGlyph implements Font.AppendAnyGlyph for any glyph mapper.
func AppendAnyGlyph(f GlyphMapper, text []uint16, at int, out []Glyph) ([]Glyph, int) {
	r, w := uniclass.DecodeRune(text, at)
	g, _ := f.Glyph(r)
	return append(out, g), w
}

// --- Unicode ranges --------------------------------------------------------

// Span is an inclusive interval of codepoints.
type Span struct {
	Lo, Hi rune
}

// Range is a set of codepoint spans a font declares to cover. The empty Range
// stands for all of Unicode.
type Range []Span

// FullRange covers all codepoints.
var FullRange = Range{{0, unicode.MaxRune}}

// NewRange creates a range covering codepoints lo…hi. Further spans may be added
// with Add.
func NewRange(lo, hi rune) Range {
	return Range{{lo, hi}}
}

// Add returns a range with an additional span lo…hi.
func (rng Range) Add(lo, hi rune) Range {
	return append(rng, Span{lo, hi})
}

// Contains is true if r is inside one of the spans of rng, or if rng is empty.
func (rng Range) Contains(r rune) bool {
	if len(rng) == 0 {
		return true
	}
	for _, s := range rng {
		if s.Lo <= r && r <= s.Hi {
			return true
		}
	}
	return false
}

// --- Candidates ------------------------------------------------------------

// Candidate is a font in a list of fonts to choose from, together with the
// Unicode range it declares to cover. The font is materialized through a Provider,
// which calls Load at most once per candidate name. Candidates created with
// Loaded bypass this and always resolve to their own font, even if other
// fonts share its name (as subsets embedded in PDFs often do).
type Candidate struct {
	Name  string
	Range Range
	Load  func() (Font, error)
	font  Font // set for materialized fonts
}

// Loaded creates a candidate for an already materialized font.
func Loaded(f Font, rng Range) Candidate {
	return Candidate{
		Name:  f.Name(),
		Range: rng,
		Load:  func() (Font, error) { return f, nil },
		font:  f,
	}
}

// Lazy creates a candidate which is loaded on first use.
func Lazy(name string, rng Range, load func() (Font, error)) Candidate {
	return Candidate{Name: name, Range: rng, Load: load}
}

// System creates a candidate for a font file, given either as a path or as the
// name of a system font (e.g., "DejaVuSans"), which is located and loaded on
// first use.
func System(name string, rng Range) Candidate {
	return Lazy(name, rng, func() (Font, error) {
		return LoadSFNT(name)
	})
}

func (c Candidate) String() string {
	return fmt.Sprintf("candidate(%s)", c.Name)
}
