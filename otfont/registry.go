package otfont

import (
	"fmt"
	"sort"
	"sync"

	"github.com/npillmayer/glyphrun/ot"
	"github.com/npillmayer/schuko/tracing"
)

// Provider materializes font candidates.
type Provider interface {
	// Font returns the font for candidate c, loading it if necessary.
	Font(c Candidate) (Font, error)
	// Default returns the font to use if no candidate can render a codepoint.
	Default() Font
}

// Registry is a Provider which loads every candidate at most once and caches the
// result, including failures. It is safe for concurrent use.
type Registry struct {
	sync.Mutex
	fonts    map[string]Font
	failures map[string]error
	fallback Font
}

var _ Provider = (*Registry)(nil)

// NewRegistry creates a registry with a default font. If fallback is nil, Go Sans
// is used.
func NewRegistry(fallback Font) *Registry {
	if fallback == nil {
		fallback = GoRegular()
	}
	return &Registry{
		fonts:    make(map[string]Font),
		failures: make(map[string]error),
		fallback: fallback,
	}
}

// Font returns the font for candidate c. Candidates created with Loaded
// resolve to their font directly, all others are identified by name.
// A candidate which failed to load once will not be tried again.
func (fr *Registry) Font(c Candidate) (Font, error) {
	if c.font != nil {
		return c.font, nil
	}
	fr.Lock()
	defer fr.Unlock()
	if f, ok := fr.fonts[c.Name]; ok {
		return f, nil
	}
	if err, ok := fr.failures[c.Name]; ok {
		return nil, err
	}
	if c.Load == nil {
		return nil, errNoLoader(c)
	}
	f, err := c.Load()
	if err == nil && f == nil {
		err = errNoLoader(c)
	}
	if err != nil {
		tracer().Errorf("registry cannot load font %s: %v", c.Name, err)
		fr.failures[c.Name] = err
		return nil, err
	}
	tracer().Debugf("registry stores font %s as %s", f.Name(), c.Name)
	fr.fonts[c.Name] = f
	return f, nil
}

// Default returns the fallback font of the registry.
func (fr *Registry) Default() Font {
	return fr.fallback
}

// Names lists the names of the fonts loaded so far, in alphabetical order.
func (fr *Registry) Names() []string {
	fr.Lock()
	defer fr.Unlock()
	names := make([]string, 0, len(fr.fonts))
	for name := range fr.fonts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LogFontList is a helper function to dump the list of known fonts in a registry
// to the trace (log-level Info).
func (fr *Registry) LogFontList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	defer tracer().SetTraceLevel(level)
	tracer().Infof("--- registered fonts ---")
	for _, name := range fr.Names() {
		fr.Lock()
		f := fr.fonts[name]
		fr.Unlock()
		tracer().Infof("font [%s] = %v", name, f.Name())
	}
	tracer().Infof("default font = %s", fr.fallback.Name())
	tracer().Infof("------------------------")
}

func errNoLoader(c Candidate) error {
	return fmt.Errorf("%w: candidate %q cannot be loaded", ot.ErrNoFont, c.Name)
}
