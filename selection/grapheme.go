package selection

import (
	"github.com/outlinelabs/richedit/doc"
	"github.com/rivo/uniseg"
)

// graphemeBoundariesUTF16 returns the UTF-16 code-unit offsets of every
// grapheme-cluster boundary in s, including 0 and len(s)'s UTF-16
// length. uniseg's cluster segmentation is what makes a ZWJ sequence or
// a base rune plus combining marks move as one unit instead of
// stopping mid-cluster.
func graphemeBoundariesUTF16(s string) []uint32 {
	bounds := make([]uint32, 1, 8)
	bounds[0] = 0
	total := uint32(0)
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		total += uint32(doc.UTF16Len(gr.Str()))
		bounds = append(bounds, total)
	}
	return bounds
}

// nextGraphemeBoundary returns the smallest boundary strictly greater
// than offset, or offset itself and false if offset is already the
// last boundary.
func nextGraphemeBoundary(bounds []uint32, offset uint32) (uint32, bool) {
	for _, b := range bounds {
		if b > offset {
			return b, true
		}
	}
	return offset, false
}

// prevGraphemeBoundary returns the largest boundary strictly less than
// offset, or offset itself and false if offset is already 0.
func prevGraphemeBoundary(bounds []uint32, offset uint32) (uint32, bool) {
	found := false
	var best uint32
	for _, b := range bounds {
		if b < offset {
			best = b
			found = true
		}
	}
	return best, found
}
