package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Debugf("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "font", "fonts", "default":
		pterm.Info.Println("Fonts")
		pterm.Println(`
	font:<name>[:<ranges>]   add a font candidate, with lowest priority so far
	                         <name> is a font file, a system font or one of
	                         'goregular' and 'gomono'
	                         <ranges> restricts the candidate, e.g. 0000-024F,0370-03FF
	                         names containing blanks or colons must be quoted,
	                         e.g. font:"C:\Fonts\My Font.ttf"
	fonts                    list candidates
	fonts:system             list font files installed on the system
	default:<name>           font for codepoints no candidate is able to render
	clear                    remove all candidates
	`)
	case "policy", "seg", "segment":
		pterm.Info.Println("Segmentation")
		pterm.Println(`
	policy:first             keep the current font as long as it renders the text
	policy:best              switch to a higher priority font whenever one exists
	seg:<text>               split text into glyph runs and print them

	Text may contain Go escapes, e.g. seg:e\u0301 \u4e2d.
	Runs break at script changes, and a combining diacritic pulls its base
	character into the diacritic's font.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Printf("\t%s\n\n", strings.Join(opNames, ", "))
		pterm.Println("\tCommands may be chained, separated by blanks, e.g.: font:gomono policy:best")
		pterm.Println("\tType help:fonts or help:seg for details")
	}
}
