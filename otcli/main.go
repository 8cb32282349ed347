/*
Command otcli is an interactive tool for inspecting font selection.

Fonts are added as candidates in priority order, then text may be segmented
into glyph runs:

	glyphrun > font:DejaVuSans:0000-024F
	glyphrun > font:goregular
	glyphrun > policy:best
	glyphrun > seg:Grüße, 世界

Text following "seg:" may contain Go string escapes.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/glyphrun/otfont"
	"github.com/npillmayer/glyphrun/otrun"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'glyphrun.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphrun.fonts")
}

var traceKeys = []string{"glyphrun.fonts", "glyphrun.runs", "glyphrun.layout"}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = "Info"
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontnames := flag.String("font", "", "Comma separated list of fonts to use")
	policy := flag.String("policy", "first", "Font selection policy [first|best]")
	flag.Parse()
	setTraceLevel(tracing.LevelError)            // will set the correct level later
	pterm.Info.Println("Welcome to GlyphRun CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("glyphrun > ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	intp := &Intp{repl: repl, registry: otfont.NewRegistry(nil)}
	//
	// load fonts to use
	if *fontnames != "" {
		for _, name := range strings.Split(*fontnames, ",") {
			if err := intp.addFont(strings.TrimSpace(name), ""); err != nil {
				tracer().Errorf("%v", err)
				os.Exit(4)
			}
		}
	}
	if err := intp.setPolicy(*policy); err != nil {
		tracer().Errorf("%v", err)
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		setTraceLevel(tracing.LevelDebug)
	case "Info":
		setTraceLevel(tracing.LevelInfo)
	case "Error":
		setTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

func setTraceLevel(level tracing.TraceLevel) {
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl        *readline.Instance
	registry    *otfont.Registry
	candidates  []otfont.Candidate
	defaultFont otfont.Font
	policy      otrun.Policy
}

func (intp *Intp) String() string {
	if intp == nil {
		return "()"
	}
	names := make([]string, len(intp.candidates))
	for i, c := range intp.candidates {
		names[i] = c.Name
	}
	return fmt.Sprintf("( fonts=%v policy=%s )", names, intp.policy)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			tracer().Errorf("%v", err)
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf("%v", err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code   int
	arg    string
	format string
}

func (op *Op) noArg() bool {
	return op.arg == ""
}

type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	FONT
	FONTS
	DEFAULT
	CLEAR
	POLICY
	SEGMENT
)

var opMap = map[string]int{
	"quit":    QUIT,
	"help":    HELP,
	"font":    FONT,
	"fonts":   FONTS,
	"default": DEFAULT,
	"clear":   CLEAR,
	"policy":  POLICY,
	"seg":     SEGMENT,
}

var opNames = []string{
	"quit",
	"help",
	"font",
	"fonts",
	"default",
	"clear",
	"policy",
	"seg",
}

var command = Command{}

func resetCommand() {
	command.count = 0
	for i := range command.op {
		command.op[i].code = NOOP
		command.op[i].arg = ""
		command.op[i].format = ""
	}
}

// parseCommand splits a line into ops, e.g. "font:DejaVuSans:0-24f policy:best".
// Arguments in double quotes may contain blanks and colons, e.g.
// font:"C:\Fonts\My Font.ttf". A "seg:" op consumes the rest of the line as its
// argument.
func (intp *Intp) parseCommand(line string) (*Command, error) {
	resetCommand()
	steps := splitUnquoted(line, ' ')
	for i, step := range steps {
		if i >= len(command.op) {
			return nil, fmt.Errorf("too many steps in command: %d", len(steps))
		}
		c := splitUnquoted(step, ':')
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			code = HELP
		}
		command.count++
		command.op[i].code = code
		if code == QUIT {
			return &command, nil
		}
		if code == SEGMENT {
			rest := strings.Join(steps[i:], " ")
			command.op[i].arg = rest[strings.Index(rest, ":")+1:]
			tracer().Debugf("seg: text is '%s'", command.op[i].arg)
			return &command, nil
		}
		command.op[i].arg = getOptArg(c, 1)
		command.op[i].format = getOptArg(c, 2)
		tracer().Debugf("parsed command: %v", c)
	}
	return &command, nil
}

func getOptArg(c []string, i int) string {
	if len(c) > i {
		return unquote(c[i])
	}
	return ""
}

// splitUnquoted splits s at every sep which is not enclosed in double quotes.
func splitUnquoted(s string, sep rune) []string {
	var parts []string
	quoted, last := false, 0
	for i, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
		case r == sep && !quoted:
			parts = append(parts, s[last:i])
			last = i + 1
		}
	}
	return append(parts, s[last:])
}

// unquote removes enclosing double quotes. Backslashes are kept as they are,
// as they are path separators on Windows.
func unquote(arg string) string {
	if len(arg) >= 2 && arg[0] == '"' && arg[len(arg)-1] == '"' {
		return arg[1 : len(arg)-1]
	}
	return arg
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:    quitOp,
	HELP:    helpOp,
	FONT:    fontOp,
	FONTS:   fontsOp,
	DEFAULT: defaultOp,
	CLEAR:   clearOp,
	POLICY:  policyOp,
	SEGMENT: segmentOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op {
		if c.code == NOOP {
			break
		}
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}
