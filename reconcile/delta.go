package reconcile

import (
	"sort"

	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/rangeindex"
)

// DeltaKind is the closed set of reconciler delta variants, dispatched
// by tag rather than by interface, per the node-tree's own "tagged sum
// type, not open dispatch" convention.
type DeltaKind uint8

const (
	DeltaTextUpdate DeltaKind = iota + 1
	DeltaNodeInsertion
	DeltaNodeDeletion
	DeltaAttributeChange
	DeltaAnchorUpdate
)

// ReconcilerDelta is one text-storage mutation the optimized pipeline
// produces. Only the fields relevant to Kind are populated; the rest
// are zero.
type ReconcilerDelta struct {
	Kind DeltaKind
	Key  doc.NodeKey

	// Range is the absolute range this delta targets: the existing
	// range being replaced/deleted for TextUpdate/NodeDeletion, or the
	// attribute range for AttributeChange.
	Range rangeindex.Range
	// Location is the insertion point for NodeInsertion.
	Location int64

	NewText string

	Preamble  string
	Content   string
	Postamble string

	IsDecorator bool

	// FollowedByBlockSibling records the sibling context an insertion
	// delta was computed against, so Stage 4 indexes the new subtree's
	// postamble identically to how Stage 2 rendered it.
	FollowedByBlockSibling bool

	Attrs map[string]any
}

// DeltaBatch is an ordered collection of deltas.
type DeltaBatch struct {
	Deltas []ReconcilerDelta
}

// Order sorts deltas in the Stage 2 policy: all deletions first in
// descending location, then insertions in ascending location, then
// text updates in ascending location, then attribute changes, then
// anchor updates. This order is what makes applying deletions-then-
// insertions-then-updates immune to index drift: deleting
// highest-location-first never invalidates a still-pending deletion's
// range, and inserting lowest-location-first lets each insertion's
// location be resolved against the running total of earlier
// insertions in the same batch.
func (b *DeltaBatch) Order() {
	rank := func(d ReconcilerDelta) int {
		switch d.Kind {
		case DeltaNodeDeletion:
			return 0
		case DeltaNodeInsertion:
			return 1
		case DeltaTextUpdate:
			return 2
		case DeltaAttributeChange:
			return 3
		case DeltaAnchorUpdate:
			return 4
		default:
			return 5
		}
	}
	loc := func(d ReconcilerDelta) int64 {
		switch d.Kind {
		case DeltaNodeDeletion, DeltaTextUpdate, DeltaAttributeChange:
			return d.Range.Start
		case DeltaNodeInsertion:
			return d.Location
		default:
			return 0
		}
	}
	sort.SliceStable(b.Deltas, func(i, j int) bool {
		ri, rj := rank(b.Deltas[i]), rank(b.Deltas[j])
		if ri != rj {
			return ri < rj
		}
		li, lj := loc(b.Deltas[i]), loc(b.Deltas[j])
		if ri == 0 { // deletions: descending location
			return li > lj
		}
		return li < lj
	})
}
