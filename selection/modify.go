package selection

import (
	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/rangeindex"
)

// Modify moves or extends sel by one unit of granularity in direction,
// returning the resulting selection. sel itself is never mutated.
//
// Character granularity moves by one grapheme cluster: within a Text
// node's payload this uses uniseg segmentation directly; at a node
// boundary it steps one absolute text-storage location and resolves
// the landing Point via rangeindex, which is itself always a
// structural boundary and so never risks splitting a cluster. Every
// other granularity, and any vertical movement regardless of
// granularity, has no answer at the document-model level and is
// delegated to mover.
func Modify(state *doc.EditorState, idx *rangeindex.Index, sel *doc.RangeSelection, kind MoveKind, direction Direction, granularity Granularity, mover NativeMover) (*doc.RangeSelection, error) {
	if sel == nil {
		return nil, ErrInvalidSelection
	}

	forward := direction == DirectionRight || direction == DirectionDown

	var newFocus doc.Point
	var err error
	if granularity == GranularityCharacter && direction != DirectionUp && direction != DirectionDown {
		newFocus, err = moveCharacter(state, idx, sel.Focus, forward)
	} else {
		newFocus, err = moveNative(state, idx, mover, kind, direction, granularity, forward)
	}
	if err != nil {
		return nil, err
	}

	anchor := sel.Anchor
	if kind == MoveCollapse {
		anchor = newFocus
	}
	return &doc.RangeSelection{Anchor: anchor, Focus: newFocus, Format: sel.Format, Style: sel.Style}, nil
}

func moveNative(state *doc.EditorState, idx *rangeindex.Index, mover NativeMover, kind MoveKind, direction Direction, granularity Granularity, forward bool) (doc.Point, error) {
	if mover == nil {
		return doc.Point{}, ErrInvalidSelection
	}
	rng, err := mover.MoveNativeSelection(kind, direction, granularity)
	if err != nil {
		return doc.Point{}, err
	}
	loc := rng.Start
	affinity := rangeindex.AffinityBackward
	if forward {
		loc = rng.End
		affinity = rangeindex.AffinityForward
	}
	return rangeindex.PointAtStringLocation(state, idx, loc, affinity)
}

// moveCharacter resolves the Point one grapheme cluster away from
// focus in the given direction.
func moveCharacter(state *doc.EditorState, idx *rangeindex.Index, focus doc.Point, forward bool) (doc.Point, error) {
	if focus.Kind == doc.PointText {
		n, ok := state.Get(focus.Key)
		if !ok {
			return doc.Point{}, doc.ErrKeyNotFound
		}
		tn, ok := n.(*doc.TextNode)
		if !ok {
			return doc.Point{}, doc.ErrKeyNotFound
		}
		bounds := graphemeBoundariesUTF16(tn.Text)
		if forward {
			if next, ok := nextGraphemeBoundary(bounds, focus.Offset); ok {
				return doc.TextPoint(focus.Key, next), nil
			}
		} else {
			if prev, ok := prevGraphemeBoundary(bounds, focus.Offset); ok {
				return doc.TextPoint(focus.Key, prev), nil
			}
		}
	}

	loc, err := rangeindex.StringLocationForPoint(state, idx, focus)
	if err != nil {
		return doc.Point{}, err
	}
	if forward {
		if loc >= idx.TotalLength() {
			return focus, nil
		}
		return rangeindex.PointAtStringLocation(state, idx, loc+1, rangeindex.AffinityForward)
	}
	if loc <= 0 {
		return focus, nil
	}
	return rangeindex.PointAtStringLocation(state, idx, loc-1, rangeindex.AffinityBackward)
}
