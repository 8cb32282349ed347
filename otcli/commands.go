package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/glyphrun/internal/fontload"
	"github.com/npillmayer/glyphrun/otfont"
	"github.com/npillmayer/glyphrun/otrun"
	"github.com/pterm/pterm"
)

// fontOp adds a font candidate, e.g. "font:DejaVuSans:0000-024F,0370-03FF".
func fontOp(intp *Intp, op *Op) (error, bool) {
	if op.noArg() {
		return errors.New("usage: font:<file-or-system-name>[:<lo>-<hi>,...]"), false
	}
	return intp.addFont(op.arg, op.format), false
}

// addFont materializes a candidate immediately, so that load errors get reported
// to the user instead of being skipped during segmentation.
func (intp *Intp) addFont(name, ranges string) error {
	rng, err := parseRange(ranges)
	if err != nil {
		return err
	}
	c := otfont.System(name, rng)
	f, err := intp.registry.Font(c)
	if err != nil {
		return err
	}
	intp.candidates = append(intp.candidates, c)
	pterm.Info.Printf("font %d: %s\n", len(intp.candidates), f.Name())
	return nil
}

// parseRange parses a comma separated list of hex codepoint spans.
func parseRange(s string) (otfont.Range, error) {
	if s == "" {
		return otfont.FullRange, nil
	}
	var rng otfont.Range
	for _, span := range strings.Split(s, ",") {
		lo, hi, found := strings.Cut(span, "-")
		if !found {
			hi = lo
		}
		l, err := strconv.ParseUint(strings.TrimPrefix(lo, "U+"), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("illegal range %q: %w", span, err)
		}
		h, err := strconv.ParseUint(strings.TrimPrefix(hi, "U+"), 16, 32)
		if err != nil || h < l {
			return nil, fmt.Errorf("illegal range %q", span)
		}
		rng = rng.Add(rune(l), rune(h))
	}
	return rng, nil
}

// fontsOp lists the candidates, or the fonts installed on the system
// with "fonts:system".
func fontsOp(intp *Intp, op *Op) (error, bool) {
	if strings.ToLower(op.arg) == "system" {
		data := [][]string{{"Font file"}}
		for _, path := range fontload.SystemFonts() {
			data = append(data, []string{path})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render(), false
	}
	data := [][]string{{"#", "Candidate", "Font", "Range"}}
	for i, c := range intp.candidates {
		fname := "-"
		if f, err := intp.registry.Font(c); err == nil {
			fname = f.Name()
		}
		data = append(data, []string{strconv.Itoa(i + 1), c.Name, fname, rangeString(c.Range)})
	}
	if intp.defaultFont != nil {
		data = append(data, []string{"default", "", intp.defaultFont.Name(), ""})
	}
	if len(data) == 1 {
		pterm.Info.Println("no fonts loaded")
		return nil, false
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render(), false
}

func rangeString(rng otfont.Range) string {
	if len(rng) == 0 {
		return "all"
	}
	spans := make([]string, len(rng))
	for i, s := range rng {
		spans[i] = fmt.Sprintf("%04X-%04X", s.Lo, s.Hi)
	}
	return strings.Join(spans, ",")
}

// defaultOp sets the font for codepoints no candidate is able to render.
func defaultOp(intp *Intp, op *Op) (error, bool) {
	if op.noArg() {
		intp.defaultFont = nil
		pterm.Info.Println("default font reset")
		return nil, false
	}
	f, err := intp.registry.Font(otfont.System(op.arg, nil))
	if err != nil {
		return err, false
	}
	intp.defaultFont = f
	return nil, false
}

// clearOp removes all candidates.
func clearOp(intp *Intp, op *Op) (error, bool) {
	intp.candidates = nil
	intp.defaultFont = nil
	return nil, false
}

func policyOp(intp *Intp, op *Op) (error, bool) {
	return intp.setPolicy(op.arg), false
}

func (intp *Intp) setPolicy(p string) error {
	switch strings.ToLower(p) {
	case "first", "firstmatch":
		intp.policy = otrun.FirstMatch
	case "best", "bestmatch":
		intp.policy = otrun.BestMatch
	default:
		return fmt.Errorf("unknown policy %q, use 'first' or 'best'", p)
	}
	return nil
}

// segmentOp segments text and prints the resulting glyph runs.
func segmentOp(intp *Intp, op *Op) (error, bool) {
	if op.noArg() {
		return errors.New("usage: seg:<text>"), false
	}
	s, err := strconv.Unquote(`"` + strings.ReplaceAll(op.arg, `"`, `\"`) + `"`)
	if err != nil {
		s = op.arg
	}
	opts := []otrun.Option{otrun.WithPolicy(intp.policy), otrun.WithProvider(intp.registry)}
	if intp.defaultFont != nil {
		opts = append(opts, otrun.WithDefaultFont(intp.defaultFont))
	}
	seg := otrun.NewSegmenter(intp.candidates, opts...)
	runs := seg.Segment(otrun.TextFromString(s))
	return printRuns(runs), false
}
