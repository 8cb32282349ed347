package ot

// --- GDEF table ------------------------------------------------------------

// GDef carries the parts of a Glyph Definition (GDEF) table which are relevant for
// glyph skipping during context matching: glyph classes, mark attachment classes
// and mark glyph sets.
//
// See also
// https://docs.microsoft.com/en-us/typography/opentype/spec/gdef
type GDef struct {
	GlyphClassDef          ClassDef
	MarkAttachmentClassDef ClassDef
	MarkGlyphSets          []Coverage
}

// GlyphClass returns the GDEF glyph class of glyph g.
func (gdef *GDef) GlyphClass(g GlyphIndex) GlyphClassDefEnum {
	if gdef == nil {
		return UnclassifiedGlyph
	}
	return GlyphClassDefEnum(gdef.GlyphClassDef.Lookup(g))
}

// IsSkip applies lookup-flags to decide whether to skip a glyph while
// matching a context. A nil GDef never skips a glyph.
//
// markFilteringSet is consulted only if flag has LOOKUP_FLAG_USE_MARK_FILTERING_SET set.
func (gdef *GDef) IsSkip(g GlyphIndex, flag LayoutTableLookupFlag, markFilteringSet uint16) bool {
	if gdef == nil {
		return false
	}
	class := gdef.GlyphClass(g)
	if flag&LOOKUP_FLAG_IGNORE_BASE_GLYPHS != 0 && class == BaseGlyph {
		return true
	}
	if flag&LOOKUP_FLAG_IGNORE_LIGATURES != 0 && class == LigatureGlyph {
		return true
	}
	if flag&LOOKUP_FLAG_IGNORE_MARKS != 0 && class == MarkGlyph {
		return true
	}
	if class == MarkGlyph {
		if flag&LOOKUP_FLAG_USE_MARK_FILTERING_SET != 0 {
			if !gdef.inMarkFilteringSet(markFilteringSet, g) {
				return true
			}
		}
		if matype := flag.MarkAttachmentType(); matype != 0 {
			if gdef.MarkAttachmentClassDef.Lookup(g) != matype {
				return true
			}
		}
	}
	return false
}

func (gdef *GDef) inMarkFilteringSet(setIndex uint16, g GlyphIndex) bool {
	if int(setIndex) >= len(gdef.MarkGlyphSets) {
		return false
	}
	return gdef.MarkGlyphSets[setIndex].Contains(g)
}
