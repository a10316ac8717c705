package rangeindex

import "github.com/outlinelabs/richedit/doc"

// Affinity resolves a boundary ambiguity in PointAtStringLocation: a
// location sitting exactly between two leaves (across a preamble,
// postamble, or leaf/leaf join) could belong to either.
type Affinity uint8

const (
	// AffinityForward picks the successor leaf at its own offset 0.
	AffinityForward Affinity = iota
	// AffinityBackward picks the predecessor leaf at its text end.
	AffinityBackward
)

// StringLocationForPoint resolves a doc.Point to its absolute
// text-storage location, per §4.3: a text point is its node's start
// plus the point's offset; an element point is its node's start plus
// the total contribution of that element's children [0, offset).
func StringLocationForPoint(state *doc.EditorState, idx *Index, p doc.Point) (int64, error) {
	start, err := idx.StartOf(p.Key)
	if err != nil {
		return 0, err
	}

	switch p.Kind {
	case doc.PointText:
		item, ok := idx.Get(p.Key)
		if !ok {
			return 0, ErrNodeNotIndexed
		}
		if int(p.Offset) > item.TextLength {
			return 0, ErrPointOutOfRange
		}
		return start + int64(item.PreambleLength) + int64(p.Offset), nil

	case doc.PointElement:
		n, ok := state.Get(p.Key)
		if !ok {
			return 0, doc.ErrKeyNotFound
		}
		children := doc.ChildrenOf(n)
		if int(p.Offset) > len(children) {
			return 0, ErrPointOutOfRange
		}
		item, ok := idx.Get(p.Key)
		preamble := 0
		if ok {
			preamble = item.PreambleLength
		}
		var childrenSpan int
		for _, c := range children[:p.Offset] {
			ci, ok := idx.Get(c)
			if !ok {
				return 0, ErrNodeNotIndexed
			}
			childrenSpan += ci.TotalContribution()
		}
		return start + int64(preamble) + int64(childrenSpan), nil

	default:
		return 0, ErrPointOutOfRange
	}
}

// PointAtStringLocation finds the Point owning absolute location loc,
// resolving preamble/postamble boundary ties by affinity. Leaves that
// are not Text nodes (LineBreak, Decorator) resolve to an
// element point into their parent at the leaf's own child index
// (affinity backward) or the index immediately after it (affinity
// forward), since neither carries an internal text offset.
func PointAtStringLocation(state *doc.EditorState, idx *Index, loc int64, affinity Affinity) (doc.Point, error) {
	total := idx.TotalLength()
	if loc < 0 || loc > total {
		return doc.Point{}, ErrLocationOutOfRange
	}
	if loc == total {
		return endOfDocument(state, idx)
	}

	slot := idx.fenwick.FindFirstIndexWithPrefix(loc + 1)
	if slot >= idx.fenwick.Len() {
		return doc.Point{}, ErrLocationOutOfRange
	}
	ref, ok := idx.keyAtSlot[slot]
	if !ok {
		return doc.Point{}, ErrNodeNotIndexed
	}

	windowStart := int64(0)
	if slot > 0 {
		windowStart = idx.fenwick.PrefixSum(slot - 1)
	}
	localOffset := loc - windowStart

	switch ref.kind {
	case slotText:
		n, ok := state.Get(ref.key)
		if !ok {
			return doc.Point{}, doc.ErrKeyNotFound
		}
		if _, isText := n.(*doc.TextNode); isText {
			return doc.TextPoint(ref.key, uint32(localOffset)), nil
		}
		return leafBoundaryPoint(state, ref.key, localOffset, affinity)

	case slotPreamble, slotPostamble:
		return elementBoundaryPoint(state, idx, ref.key, ref.kind, localOffset, affinity)

	default:
		return doc.Point{}, ErrNodeNotIndexed
	}
}

// leafBoundaryPoint resolves a location inside a fixed-length
// non-Text leaf (LineBreak or Decorator, length 1) to an element point
// against the leaf's parent: offset 0 sits before the leaf, offset 1
// sits after it.
func leafBoundaryPoint(state *doc.EditorState, leafKey doc.NodeKey, localOffset int64, affinity Affinity) (doc.Point, error) {
	n, ok := state.Get(leafKey)
	if !ok {
		return doc.Point{}, doc.ErrKeyNotFound
	}
	parentKey, has := n.Parent()
	if !has {
		return doc.Point{}, doc.ErrParentMissing
	}
	parent, ok := state.Get(parentKey)
	if !ok {
		return doc.Point{}, doc.ErrKeyNotFound
	}
	idxInParent := indexOfKey(doc.ChildrenOf(parent), leafKey)
	if idxInParent < 0 {
		return doc.Point{}, doc.ErrKeyNotFound
	}
	if localOffset == 0 && affinity == AffinityBackward {
		return doc.ElementPoint(parentKey, uint32(idxInParent)), nil
	}
	return doc.ElementPoint(parentKey, uint32(idxInParent+1)), nil
}

// elementBoundaryPoint resolves a location that fell inside an
// element's preamble or postamble window. Forward affinity descends
// into the element from its start (preamble) or out to the node
// immediately after it (postamble); backward affinity does the
// opposite. Both preamble and postamble are zero-length for every
// element variant currently defined except a block postamble's
// trailing newline, so in practice this path is only exercised at a
// paragraph/heading/etc. boundary.
func elementBoundaryPoint(state *doc.EditorState, idx *Index, key doc.NodeKey, kind slotKind, localOffset int64, affinity Affinity) (doc.Point, error) {
	if kind == slotPreamble {
		if affinity == AffinityBackward {
			return precedingPointOf(state, key)
		}
		return doc.ElementPoint(key, 0), nil
	}

	// slotPostamble: the trailing newline belongs to this element.
	n, ok := state.Get(key)
	if !ok {
		return doc.Point{}, doc.ErrKeyNotFound
	}
	childCount := len(doc.ChildrenOf(n))
	if affinity == AffinityBackward {
		return doc.ElementPoint(key, uint32(childCount)), nil
	}
	return followingPointOf(state, key)
}

// precedingPointOf returns the end-of-content point of key's preceding
// sibling, or an element point at offset 0 of key's parent if key is
// the first child.
func precedingPointOf(state *doc.EditorState, key doc.NodeKey) (doc.Point, error) {
	n, ok := state.Get(key)
	if !ok {
		return doc.Point{}, doc.ErrKeyNotFound
	}
	parentKey, has := n.Parent()
	if !has {
		return doc.ElementPoint(key, 0), nil
	}
	parent, ok := state.Get(parentKey)
	if !ok {
		return doc.Point{}, doc.ErrKeyNotFound
	}
	siblings := doc.ChildrenOf(parent)
	at := indexOfKey(siblings, key)
	if at <= 0 {
		return doc.ElementPoint(parentKey, 0), nil
	}
	return doc.ElementPoint(parentKey, uint32(at)), nil
}

// followingPointOf returns an element point immediately after key in
// its parent's child list, or recurses to key's parent if key is the
// last child.
func followingPointOf(state *doc.EditorState, key doc.NodeKey) (doc.Point, error) {
	n, ok := state.Get(key)
	if !ok {
		return doc.Point{}, doc.ErrKeyNotFound
	}
	parentKey, has := n.Parent()
	if !has {
		return doc.ElementPoint(key, 0), nil
	}
	parent, ok := state.Get(parentKey)
	if !ok {
		return doc.Point{}, doc.ErrKeyNotFound
	}
	siblings := doc.ChildrenOf(parent)
	at := indexOfKey(siblings, key)
	return doc.ElementPoint(parentKey, uint32(at+1)), nil
}

func endOfDocument(state *doc.EditorState, idx *Index) (doc.Point, error) {
	root := state.Root()
	return doc.ElementPoint(root.Key(), uint32(len(root.Children))), nil
}

func indexOfKey(keys []doc.NodeKey, key doc.NodeKey) int {
	for i, k := range keys {
		if k == key {
			return i
		}
	}
	return -1
}
