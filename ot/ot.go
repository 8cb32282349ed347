package ot

import "encoding/binary"

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// --- Tag -------------------------------------------------------------------

// Tag is defined by the OpenType specification as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline
type Tag uint32

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(binary.BigEndian.Uint32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// Table tags used for error reporting.
var (
	GSUB = T("GSUB")
	GDEF = T("GDEF")
)

// --- Lookup flags ----------------------------------------------------------

// LayoutTableLookupFlag is a flag type for layout tables (GPOS and GSUB).
type LayoutTableLookupFlag uint16

// Lookup flags of layout tables (GPOS and GSUB)
const ( // LookupFlag bit enumeration
	// Note that the RIGHT_TO_LEFT flag is used only for GPOS type 3 lookups and is ignored
	// otherwise. It is not used by client software in determining text direction.
	LOOKUP_FLAG_RIGHT_TO_LEFT             LayoutTableLookupFlag = 0x0001
	LOOKUP_FLAG_IGNORE_BASE_GLYPHS        LayoutTableLookupFlag = 0x0002 // If set, skips over base glyphs
	LOOKUP_FLAG_IGNORE_LIGATURES          LayoutTableLookupFlag = 0x0004 // If set, skips over ligatures
	LOOKUP_FLAG_IGNORE_MARKS              LayoutTableLookupFlag = 0x0008 // If set, skips over all combining marks
	LOOKUP_FLAG_USE_MARK_FILTERING_SET    LayoutTableLookupFlag = 0x0010 // If set, the lookup carries a MarkFilteringSet index
	LOOKUP_FLAG_reserved                  LayoutTableLookupFlag = 0x00E0 // For future use (Set to zero)
	LOOKUP_FLAG_MARK_ATTACHMENT_TYPE_MASK LayoutTableLookupFlag = 0xFF00 // If not zero, skips over all marks of attachment type different from specified.
)

// MarkAttachmentType extracts the mark attachment class from a lookup flag.
// A value of 0 means that marks are not filtered by attachment class.
func (flag LayoutTableLookupFlag) MarkAttachmentType() uint16 {
	return uint16((flag & LOOKUP_FLAG_MARK_ATTACHMENT_TYPE_MASK) >> 8)
}

// --- Glyph classes ---------------------------------------------------------

// GlyphClassDefEnum lists the glyph classes of a GDEF 'GlyphClassDef'-table.
// Glyphs not mentioned in the table have class 0.
type GlyphClassDefEnum uint16

const (
	UnclassifiedGlyph GlyphClassDefEnum = iota
	BaseGlyph                           // single character, spacing glyph
	LigatureGlyph                       // multiple character, spacing glyph
	MarkGlyph                           // non-spacing combining glyph
	ComponentGlyph                      // part of single character, spacing glyph
)
