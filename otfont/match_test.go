package otfont

import (
	"errors"
	"testing"

	"github.com/npillmayer/glyphrun/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// mapFont is a font with glyphs for a fixed set of codepoints.
type mapFont struct {
	name   string
	glyphs map[rune]ot.GlyphIndex
}

func newMapFont(name string, runes string) *mapFont {
	f := &mapFont{name: name, glyphs: make(map[rune]ot.GlyphIndex)}
	for i, r := range []rune(runes) {
		f.glyphs[r] = ot.GlyphIndex(i + 1)
	}
	return f
}

func (f *mapFont) Name() string      { return f.name }
func (f *mapFont) IsMonospace() bool { return false }

func (f *mapFont) Glyph(r rune) (Glyph, bool) {
	gid, ok := f.glyphs[r]
	return Glyph{Code: gid, Runes: []rune{r}, Width: 500}, ok
}

func (f *mapFont) ContainsGlyph(r rune) bool {
	_, ok := f.glyphs[r]
	return ok
}

func (f *mapFont) AppendGlyphs(text []uint16, from, to int, out []Glyph) ([]Glyph, int) {
	return AppendGlyphs(f, text, from, to, out)
}

func (f *mapFont) AppendAnyGlyph(text []uint16, at int, out []Glyph) ([]Glyph, int) {
	return AppendAnyGlyph(f, text, at, out)
}

func TestMatchFontPriority(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphrun.fonts")
	defer teardown()
	//
	a := newMapFont("A", "abc")
	b := newMapFont("B", "abcxyz")
	candidates := []Candidate{Loaded(a, nil), Loaded(b, nil)}
	reg := NewRegistry(nil)
	if f, ok := MatchFont('a', candidates, reg); !ok || f != a {
		t.Errorf("expected first candidate to win for 'a', have %v", f)
	}
	if f, ok := MatchFont('x', candidates, reg); !ok || f != b {
		t.Errorf("expected second candidate for 'x', have %v", f)
	}
	if _, ok := MatchFont('q', candidates, reg); ok {
		t.Error("expected no font for 'q'")
	}
	if _, ok := MatchFont('a', nil, reg); ok {
		t.Error("expected no font without candidates")
	}
}

func TestMatchFontWithSameNamedFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphrun.fonts")
	defer teardown()
	//
	a := newMapFont("Subset", "ab")
	b := newMapFont("Subset", "xy")
	candidates := []Candidate{Loaded(a, nil), Loaded(b, nil)}
	reg := NewRegistry(nil)
	if f, ok := MatchFont('a', candidates, reg); !ok || f != a {
		t.Errorf("expected first subset for 'a', have %v", f)
	}
	if f, ok := MatchFont('x', candidates, reg); !ok || f != b {
		t.Errorf("expected second subset for 'x', have %v", f)
	}
	if f, err := reg.Font(candidates[1]); err != nil || f != b {
		t.Errorf("expected registry to resolve candidate to its own font, have %v", f)
	}
}

func TestMatchFontRangeIsPreFilter(t *testing.T) {
	a := newMapFont("A", "abc")
	b := newMapFont("B", "abc")
	candidates := []Candidate{
		Loaded(a, NewRange('x', 'z')), // contains 'a', but does not declare it
		Loaded(b, NewRange('a', 'a').Add('c', 'c')),
	}
	if f, ok := MatchFont('a', candidates, nil); !ok || f != b {
		t.Errorf("expected range to exclude first candidate, have %v", f)
	}
	if _, ok := MatchFont('b', candidates, nil); ok {
		t.Error("expected 'b' to be outside of all declared ranges")
	}
	// declared range is not ground truth
	c := Loaded(newMapFont("C", "xyz"), FullRange)
	if _, ok := MatchFont('a', []Candidate{c}, nil); ok {
		t.Error("expected font without glyph to be rejected despite its range")
	}
}

func TestRegistryCachesFonts(t *testing.T) {
	loads := 0
	a := newMapFont("A", "abc")
	ca := Lazy("A", nil, func() (Font, error) {
		loads++
		return a, nil
	})
	fails := 0
	broken := Lazy("broken", nil, func() (Font, error) {
		fails++
		return nil, errors.New("corrupt font file")
	})
	reg := NewRegistry(a)
	candidates := []Candidate{broken, ca}
	for _, r := range "abcabc" {
		if f, ok := MatchFont(r, candidates, reg); !ok || f != a {
			t.Fatalf("expected font A for %q", r)
		}
	}
	if loads != 1 || fails != 1 {
		t.Errorf("expected each candidate to be loaded once, have %d/%d", loads, fails)
	}
	if _, err := reg.Font(Candidate{Name: "nothing"}); !errors.Is(err, ot.ErrNoFont) {
		t.Errorf("expected ErrNoFont for candidate without loader, have %v", err)
	}
	if names := reg.Names(); len(names) != 1 || names[0] != "A" {
		t.Errorf("expected registry to hold font A only, have %v", names)
	}
	if reg.Default() != a {
		t.Error("expected configured default font")
	}
	reg.LogFontList()
}

func TestDefaultFontIsGoSans(t *testing.T) {
	reg := NewRegistry(nil)
	if reg.Default() == nil || reg.Default().Name() != "Go Regular" {
		t.Errorf("expected Go Sans as default font, have %v", reg.Default())
	}
}

func TestRangeContains(t *testing.T) {
	var all Range
	if !all.Contains('中') || !FullRange.Contains(0x10FFFF) {
		t.Error("expected empty and full range to contain everything")
	}
	latin := NewRange(0, 0x24F)
	if !latin.Contains('é') || latin.Contains('中') {
		t.Error("latin range broken")
	}
}
