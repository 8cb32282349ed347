package main

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/glyphrun/otrun"
	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/runenames"
)

func printRuns(runs []otrun.GlyphRun) error {
	pterm.Info.Printf("%d run(s)\n", len(runs))
	for i, run := range runs {
		pterm.Printf("Run %d [%d,%d) with font %s\n", i+1, run.Start, run.End, run.Font.Name())
		if err := printGlyphs(run); err != nil {
			return err
		}
	}
	return nil
}

func printGlyphs(run otrun.GlyphRun) error {
	data := [][]string{{"Codepoint", "Name", "Glyph", "Width", "X-Advance"}}
	for _, g := range run.Glyphs {
		r := g.Rune()
		code := "notdef"
		if g.HasValidCode() {
			code = strconv.Itoa(int(g.Code))
		}
		data = append(data, []string{
			fmt.Sprintf("U+%04X", r),
			runenames.Name(r),
			code,
			strconv.Itoa(g.Width),
			strconv.Itoa(g.XAdvance),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
