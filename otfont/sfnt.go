package otfont

import (
	"errors"
	"sync"

	"github.com/npillmayer/glyphrun/internal/fontload"
	"github.com/npillmayer/glyphrun/ot"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// glyphSpace is the number of units per em of PDF glyph space.
const glyphSpace = 1000

// SFNT is a Font backed by an OpenType or TrueType font file.
// It is safe for concurrent use.
type SFNT struct {
	name string
	path string
	mono bool
	mu   sync.Mutex
	font *sfnt.Font
	buf  sfnt.Buffer // guarded by mu
}

var _ Font = (*SFNT)(nil)

// ParseSFNT creates a font from the binary content of a font file.
func ParseSFNT(fbytes []byte) (*SFNT, error) {
	sf, err := fontload.ParseOpenTypeFont(fbytes)
	if err != nil {
		return nil, err
	}
	return newSFNT(sf), nil
}

// LoadSFNT loads a font given by file path or system font name.
func LoadSFNT(name string) (*SFNT, error) {
	sf, err := fontload.FindOpenTypeFont(name)
	if err != nil {
		return nil, err
	}
	f := newSFNT(sf)
	if f.name == "" {
		f.name = name
	}
	return f, nil
}

var goRegular *SFNT
var goRegularLoading sync.Once

// GoRegular returns the Go Sans font, which is the default font if nothing else
// has been configured.
func GoRegular() *SFNT {
	goRegularLoading.Do(func() {
		goRegular = newSFNT(fontload.FallbackFont())
	})
	return goRegular
}

func newSFNT(sf *fontload.ScalableFont) *SFNT {
	f := &SFNT{name: sf.Fontname, path: sf.Filepath, font: sf.SFNT}
	i, iok := f.Glyph('i')
	m, mok := f.Glyph('M')
	f.mono = iok && mok && i.Width == m.Width
	tracer().Debugf("font %s: monospace = %v", f.name, f.mono)
	return f
}

// Name is the full name of the font.
func (f *SFNT) Name() string {
	return f.name
}

// Path is the file path the font has been loaded from, if any.
func (f *SFNT) Path() string {
	return f.path
}

// IsMonospace is true if the font has a fixed advance width.
func (f *SFNT) IsMonospace() bool {
	return f.mono
}

// NumGlyphs returns the number of glyphs in the font.
func (f *SFNT) NumGlyphs() int {
	return f.font.NumGlyphs()
}

// ContainsGlyph is true if the font maps r to a glyph other than .notdef.
func (f *SFNT) ContainsGlyph(r rune) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	gid, err := f.font.GlyphIndex(&f.buf, r)
	return err == nil && gid != 0
}

// Glyph returns the glyph for r, with its advance width in 1/1000 em. If the font
// has no glyph for r, the .notdef glyph is returned together with false.
func (f *SFNT) Glyph(r rune) (Glyph, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gid, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		tracer().Debugf("font %s: no glyph index for %U: %v", f.name, r, err)
		gid = 0
	}
	g := Glyph{Code: ot.GlyphIndex(gid), Runes: []rune{r}}
	adv, err := f.font.GlyphAdvance(&f.buf, gid, fixed.I(glyphSpace), font.HintingNone)
	if err != nil && !errors.Is(err, sfnt.ErrNotFound) {
		tracer().Debugf("font %s: no advance for glyph %d: %v", f.name, gid, err)
	}
	if err == nil {
		g.Width = adv.Round()
	}
	return g, gid != 0
}

// AppendGlyphs appends glyphs for the codepoints starting in text[from:to].
func (f *SFNT) AppendGlyphs(text []uint16, from, to int, out []Glyph) ([]Glyph, int) {
	return AppendGlyphs(f, text, from, to, out)
}

// AppendAnyGlyph appends a glyph for the codepoint at text[at], or .notdef.
func (f *SFNT) AppendAnyGlyph(text []uint16, at int, out []Glyph) ([]Glyph, int) {
	return AppendAnyGlyph(f, text, at, out)
}

func (f *SFNT) String() string {
	return "SFNT(" + f.name + ")"
}
