package otfont

// MatchFont returns the first candidate font, in priority order, which is able to
// render r. A candidate qualifies if its declared range contains r and the font
// actually has a glyph for r. Candidates which fail to load are skipped.
//
// If provider is nil, candidates are loaded without caching.
func MatchFont(r rune, candidates []Candidate, provider Provider) (Font, bool) {
	for _, c := range candidates {
		if !c.Range.Contains(r) {
			continue
		}
		f, err := materialize(c, provider)
		if err != nil {
			tracer().Infof("skipping font candidate %s: %v", c.Name, err)
			continue
		}
		if f.ContainsGlyph(r) {
			return f, true
		}
	}
	return nil, false
}

func materialize(c Candidate, provider Provider) (Font, error) {
	if c.font != nil {
		return c.font, nil
	}
	if provider != nil {
		return provider.Font(c)
	}
	if c.Load == nil {
		return nil, errNoLoader(c)
	}
	f, err := c.Load()
	if err == nil && f == nil {
		err = errNoLoader(c)
	}
	return f, err
}
