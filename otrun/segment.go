package otrun

import (
	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/glyphrun/otfont"
)

// Policy controls when a Segmenter switches fonts.
type Policy int

const (
	// FirstMatch keeps the current font as long as it is able to render the text.
	FirstMatch Policy = iota
	// BestMatch switches fonts whenever a higher-priority font exists for a
	// non-whitespace codepoint.
	BestMatch
)

func (p Policy) String() string {
	switch p {
	case FirstMatch:
		return "FirstMatch"
	case BestMatch:
		return "BestMatch"
	}
	return "UnknownPolicy"
}

// Segmenter splits text into glyph runs, choosing fonts from a list of candidates.
// A Segmenter may be used concurrently, provided its Provider is safe for
// concurrent use (as otfont.Registry is).
type Segmenter struct {
	candidates  []otfont.Candidate
	policy      Policy
	provider    otfont.Provider
	defaultFont otfont.Font
}

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithPolicy sets the font switching policy. The default is FirstMatch.
func WithPolicy(p Policy) Option {
	return func(s *Segmenter) {
		s.policy = p
	}
}

// WithDefaultFont sets the font used for codepoints no candidate is able to render.
// If unset, the first candidate is used, or Go Sans if there are no candidates.
func WithDefaultFont(f otfont.Font) Option {
	return func(s *Segmenter) {
		s.defaultFont = f
	}
}

// WithProvider sets the provider materializing font candidates. If unset, a new
// otfont.Registry is used.
func WithProvider(p otfont.Provider) Option {
	return func(s *Segmenter) {
		s.provider = p
	}
}

// NewSegmenter creates a segmenter for a list of font candidates in priority order.
func NewSegmenter(candidates []otfont.Candidate, opts ...Option) *Segmenter {
	s := &Segmenter{candidates: candidates}
	for _, opt := range opts {
		opt(s)
	}
	if s.provider == nil {
		s.provider = otfont.NewRegistry(s.defaultFont)
	}
	return s
}

// Policy returns the font switching policy of s.
func (s *Segmenter) Policy() Policy {
	return s.policy
}

// Segment is a shortcut for segmenting text with a new Segmenter.
func Segment(text Text, candidates []otfont.Candidate, policy Policy) []GlyphRun {
	return NewSegmenter(candidates, WithPolicy(policy)).Segment(text)
}

// Segment splits text into glyph runs. The runs partition text: concatenating the
// codepoints of all runs, in order, yields text. Empty text results in no runs.
func (s *Segmenter) Segment(text Text) []GlyphRun {
	if len(text) == 0 {
		return nil
	}
	seg := &segmentation{
		Segmenter:  s,
		text:       text,
		candidates: s.candidates,
		matches:    make(map[rune]otfont.Font),
	}
	if len(seg.candidates) == 0 {
		seg.candidates = []otfont.Candidate{otfont.Loaded(seg.fallbackFont(), nil)}
	}
	var runs []GlyphRun
	pos, pending := 0, -1
	for pos < len(text) {
		var run GlyphRun
		run, pending = seg.nextRun(pos, pending)
		tracer().Debugf("%s", run)
		runs = append(runs, ReplaceSpecialWhitespaceGlyphs(run))
		pos = run.End
	}
	return runs
}

// segmentation holds the state of one Segment call.
type segmentation struct {
	*Segmenter
	text       Text
	candidates []otfont.Candidate
	matches    map[rune]otfont.Font // memoized font matches, nil for no match
	fallback   otfont.Font
}

// nextRun produces the run starting at pos. pending is the index of a diacritic
// which decides the font of the run, or -1. nextRun returns the run, together
// with the index of a diacritic deciding the font of the following run, or -1.
func (seg *segmentation) nextRun(pos, pending int) (GlyphRun, int) {
	text := seg.text
	sig := NextSignificantIndex(text, pos)
	lookup := sig
	if pending >= 0 {
		lookup = pending
	}
	run := GlyphRun{Start: pos}
	pending = -1
	consumed := 0
	if lookup < len(text) {
		if f, ok := seg.match(ExtractCodepoint(text, lookup).Rune); ok {
			var to int
			to, run.Font, pending = seg.extend(sig, f)
			run.Glyphs, consumed = run.Font.AppendGlyphs(text, pos, to, nil)
			if pos+consumed != to {
				pending = -1 // the diacritic's base is not next
			}
		}
	}
	if consumed == 0 { // no font found or nothing appended
		run.Font = seg.fallbackFont()
		run.Glyphs, consumed = run.Font.AppendGlyphs(text, pos, sig, run.Glyphs[:0])
		at := pos + consumed
		for at <= sig && at < len(text) {
			var w int
			run.Glyphs, w = run.Font.AppendAnyGlyph(text, at, run.Glyphs)
			at += w
		}
		consumed = at - pos
		pending = -1
	}
	run.End = pos + consumed
	return run, pending
}

// extend finds the end of a run with first significant codepoint at sig, to be
// rendered with font f. A combining diacritic directly following the codepoint at
// sig may re-anchor the run to the diacritic's font, which is returned.
func (seg *segmentation) extend(sig int, f otfont.Font) (int, otfont.Font, int) {
	end, pending, anchor := seg.scan(sig, f, true)
	if anchor != nil {
		tracer().Debugf("diacritic re-anchors run at %d to font %s", sig, anchor.Name())
		f = anchor
		end, pending, _ = seg.scan(sig, f, false)
	}
	return end, f, pending
}

// scan walks the text from sig and stops at the first codepoint which must not be
// rendered with font f. It returns the end of the run and the index of a pending
// diacritic (or -1). If mayAnchor is set and the codepoint at sig should rather
// be rendered with the font of the diacritic following it, scan returns that font.
func (seg *segmentation) scan(sig int, f otfont.Font, mayAnchor bool) (int, int, otfont.Font) {
	text := seg.text
	var script language.Script
	hasScript := false
	prev := sig
	for i := sig; i < len(text); {
		cp := ExtractCodepoint(text, i)
		if i > sig {
			if IsDiacritic(cp.Rune) {
				if df, ok := seg.match(cp.Rune); ok && df != f {
					base := ExtractCodepoint(text, prev)
					if df.ContainsGlyph(base.Rune) {
						if prev != sig {
							return prev, i, nil
						}
						if mayAnchor {
							return 0, -1, df
						}
					}
				}
			}
			if seg.policy == BestMatch && !IsWhitespaceOrNonPrintable(cp.Rune) {
				if bf, ok := seg.match(cp.Rune); ok && bf != f {
					return i, -1, nil
				}
			}
		}
		if sc := Script(cp.Rune); IsSignificantScript(sc) {
			if !hasScript {
				script, hasScript = sc, true
			} else if sc != script {
				return i, -1, nil
			}
		}
		prev = i
		i += cp.Width
	}
	return len(text), -1, nil
}

// match finds the best font for r, memoizing results.
func (seg *segmentation) match(r rune) (otfont.Font, bool) {
	if f, ok := seg.matches[r]; ok {
		return f, f != nil
	}
	f, ok := otfont.MatchFont(r, seg.candidates, seg.provider)
	if !ok {
		f = nil
	}
	seg.matches[r] = f
	return f, ok
}

// fallbackFont returns the configured default font, else the font of the first
// candidate, else the default font of the provider.
func (seg *segmentation) fallbackFont() otfont.Font {
	if seg.fallback != nil {
		return seg.fallback
	}
	switch {
	case seg.Segmenter.defaultFont != nil:
		seg.fallback = seg.Segmenter.defaultFont
	case len(seg.candidates) > 0:
		if f, err := seg.provider.Font(seg.candidates[0]); err == nil {
			seg.fallback = f
		}
	}
	if seg.fallback == nil {
		seg.fallback = seg.provider.Default()
	}
	tracer().Debugf("default font is %s", seg.fallback.Name())
	return seg.fallback
}
