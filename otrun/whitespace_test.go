package otrun

import (
	"reflect"
	"testing"
)

func TestReplaceSpecialWhitespace(t *testing.T) {
	f := newTestFont("A", "ab ")
	text := TextFromString("a\u2002\u2003\u2009\tb")
	runs := Segment(text, candidates(f), FirstMatch)
	if len(runs) != 1 {
		t.Fatalf("expected a single run, have %v", runs)
	}
	expected := []int{0, 250, 750, -50, 750, 0}
	space, _ := f.Glyph(' ')
	for i, g := range runs[0].Glyphs {
		if g.XAdvance != expected[i] {
			t.Errorf("glyph %d: expected x-advance %d, have %d", i, expected[i], g.XAdvance)
		}
		if i > 0 && i < 5 && (g.Code != space.Code || g.Width != 250) {
			t.Errorf("glyph %d: expected space glyph, have %s", i, g)
		}
	}
	if runs[0].Glyphs[2].Rune() != '\u2003' {
		t.Error("expected replaced glyph to keep its codepoint")
	}
	checkPartition(t, text, runs)
}

func TestReplaceSpecialWhitespaceIsIdempotent(t *testing.T) {
	f := newTestFont("A", "ab ")
	run := GlyphRun{Font: f, End: 3}
	run.Glyphs, _ = f.AppendGlyphs(TextFromString("a\u2003\t"), 0, 3, nil)
	once := ReplaceSpecialWhitespaceGlyphs(run)
	twice := ReplaceSpecialWhitespaceGlyphs(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("expected normalization to be idempotent:\n%s\n%s", once, twice)
	}
	if run.Glyphs[1].HasValidCode() {
		t.Error("expected original run to be left unchanged")
	}
}

func TestReplaceSpecialWhitespaceMonospace(t *testing.T) {
	f := newTestFont("Mono", "ab ")
	f.mono = true
	run := GlyphRun{Font: f, End: 2}
	run.Glyphs, _ = f.AppendGlyphs(TextFromString("\u2003\t"), 0, 2, nil)
	run = ReplaceSpecialWhitespaceGlyphs(run)
	if run.Glyphs[0].XAdvance != 0 || run.Glyphs[1].XAdvance != 750 {
		t.Errorf("expected em space without and tab with extra advance, have %v", run.Glyphs)
	}
	noSpace := newTestFont("NoSpace", "ab")
	run = GlyphRun{Font: noSpace, End: 1}
	run.Glyphs, _ = noSpace.AppendGlyphs(TextFromString("\u2003"), 0, 1, nil)
	if out := ReplaceSpecialWhitespaceGlyphs(run); out.Glyphs[0].HasValidCode() {
		t.Error("expected font without space glyph to leave whitespace alone")
	}
}
