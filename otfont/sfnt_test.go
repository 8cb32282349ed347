package otfont

import (
	"testing"
	"unicode/utf16"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/gomono"
)

// --- Test Suite Preparation ------------------------------------------------

type SFNTTestEnviron struct {
	suite.Suite
	regular *SFNT
	mono    *SFNT
}

// listen for 'go test' command --> run test methods
func TestSFNTFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphrun.fonts")
	defer teardown()
	suite.Run(t, new(SFNTTestEnviron))
}

// run once, before test suite methods
func (env *SFNTTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("glyphrun.fonts").SetTraceLevel(tracing.LevelError)
	env.regular = GoRegular()
	var err error
	env.mono, err = ParseSFNT(gomono.TTF)
	env.Require().NoError(err, "cannot parse Go Mono")
	tracing.Select("glyphrun.fonts").SetTraceLevel(tracing.LevelInfo)
}

// --- Tests -----------------------------------------------------------------

func (env *SFNTTestEnviron) TestNames() {
	env.Equal("Go Regular", env.regular.Name())
	env.Equal("Go Mono", env.mono.Name())
	env.Greater(env.regular.NumGlyphs(), 100)
}

func (env *SFNTTestEnviron) TestContainsGlyph() {
	env.True(env.regular.ContainsGlyph('a'), "expected Go Regular to contain 'a'")
	env.True(env.regular.ContainsGlyph('é'), "expected Go Regular to contain 'é'")
	env.False(env.regular.ContainsGlyph('中'), "expected Go Regular to lack Han glyphs")
}

func (env *SFNTTestEnviron) TestGlyphWidths() {
	m, ok := env.regular.Glyph('M')
	env.Require().True(ok)
	env.True(m.HasValidCode())
	env.Greater(m.Width, 0)
	env.Less(m.Width, 1000)
	env.Equal('M', m.Rune())
	notdef, ok := env.regular.Glyph('中')
	env.False(ok)
	env.False(notdef.HasValidCode())
	env.Equal('中', notdef.Rune(), "expected .notdef to remember its codepoint")
}

func (env *SFNTTestEnviron) TestMonospace() {
	env.True(env.mono.IsMonospace(), "expected Go Mono to be monospace")
	env.False(env.regular.IsMonospace(), "expected Go Regular to be proportional")
}

func (env *SFNTTestEnviron) TestAppendGlyphs() {
	text := utf16.Encode([]rune("ab\tc中d"))
	glyphs, n := env.regular.AppendGlyphs(text, 0, len(text), nil)
	env.Equal(4, n, "expected append to stop at Han codepoint")
	env.Len(glyphs, 4)
	glyphs, n = env.regular.AppendGlyphs(text, 1, 3, glyphs[:0])
	env.Equal(2, n, "expected append to respect end of range")
	env.Len(glyphs, 2)
	glyphs, n = env.regular.AppendAnyGlyph(text, 4, glyphs[:0])
	env.Equal(1, n)
	env.Require().Len(glyphs, 1)
	env.False(glyphs[0].HasValidCode(), "expected .notdef for Han codepoint")
	//
	emoji := utf16.Encode([]rune("\U0001F600"))
	glyphs, n = env.regular.AppendAnyGlyph(emoji, 0, nil)
	env.Equal(2, n, "expected surrogate pair to be consumed as a whole")
	env.Equal('\U0001F600', glyphs[0].Rune())
}
