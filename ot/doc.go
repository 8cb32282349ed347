/*
Package ot provides the OpenType vocabulary shared by the layout and font packages:
glyph indices, tags, lookup flags, coverage sets, class definitions and the
glyph-class information of a GDEF table.

Package `ot` does not parse font binaries. Values of the types in this package are
produced by a font decoder (which lives outside of this module) or constructed
directly by clients and tests. Once constructed, they are immutable and may be
shared between goroutines.

From the OpenType specification: for efficiency and ease of representation, a font
developer can group glyph indices to form glyph classes (see ClassDef), and each
lookup subtable references a set of glyphs it applies to (see Coverage).

# Status

Work in progress.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'glyphrun.layout'
func tracer() tracing.Trace {
	return tracing.Select("glyphrun.layout")
}
