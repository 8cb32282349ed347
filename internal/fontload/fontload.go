// Package fontload locates and loads OpenType font files.
package fontload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'glyphrun.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphrun.fonts")
}

// ScalableFont is a parsed scalable font with original bytes and SFNT view.
type ScalableFont struct {
	Fontname string
	Filepath string
	Binary   []byte
	SFNT     *sfnt.Font
}

// packaged fonts are available without any font files installed.
var packaged = map[string][]byte{
	"goregular": goregular.TTF,
	"gomono":    gomono.TTF,
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, fmt.Errorf("font file %s: %w", fontfile, err)
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err != nil {
		tracer().Infof("font has no full name: %v", err)
		f.Fontname = ""
	}
	tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	return f, nil
}

// FindOpenTypeFont loads a font given by name. name may be the name of a packaged
// font ("goregular", "gomono"), a path to a font file, or the file name of an
// installed system font, with or without extension.
func FindOpenTypeFont(name string) (*ScalableFont, error) {
	if bytez, ok := packaged[normalize(name)]; ok {
		tracer().Debugf("found font %s as packaged font", name)
		f, err := ParseOpenTypeFont(bytez)
		if err != nil {
			return nil, err
		}
		f.Filepath = "packaged"
		return f, nil
	}
	fpath, err := Locate(name)
	if err != nil {
		return nil, err
	}
	return LoadOpenTypeFont(fpath)
}

// Locate resolves a font name to a file path. Existing files are returned as is,
// otherwise name is searched for in the system's font directories.
func Locate(name string) (string, error) {
	if name == "" {
		return "", errors.New("empty font name")
	}
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return name, nil
	}
	fpath, err := findfont.Find(name)
	if err != nil {
		return "", fmt.Errorf("font %q not found: %w", name, err)
	}
	tracer().Debugf("%s is a system font at %s", name, fpath)
	return fpath, nil
}

// SystemFonts lists the paths of all font files installed on the system.
func SystemFonts() []string {
	return findfont.List()
}

var fallback *ScalableFont
var fallbackLoading sync.Once

// FallbackFont is a font that is used if everything else fails.
// Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackLoading.Do(func() {
		f, err := ParseOpenTypeFont(goregular.TTF)
		if err != nil {
			panic("cannot load default font") // this cannot happen
		}
		f.Filepath = "packaged"
		fallback = f
	})
	return fallback
}

func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(name)
}
