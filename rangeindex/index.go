package rangeindex

import "github.com/outlinelabs/richedit/doc"

type slotKind uint8

const (
	slotPreamble slotKind = iota
	slotPostamble
	slotText
)

type slotRef struct {
	key  doc.NodeKey
	kind slotKind
}

// Index owns a Fenwick tree of per-node text-storage contributions
// plus the RangeCacheItem recording how each node's contribution is
// composed. nodeIndex (the Fenwick slot) is assigned ancestor-first in
// pre-order by Rebuild; AllocateLeaf/AllocateElement hand out fresh
// slots at the end of the index space for nodes created between
// rebuilds, matching the specification's "new nodes get fresh indices
// at the end" policy.
type Index struct {
	fenwick    *Fenwick
	cache      map[doc.NodeKey]*RangeCacheItem
	keyAtSlot  map[int]slotRef
	nextSlot   int
	generation uint32
}

// NewIndex returns an empty Index with a small initial Fenwick
// capacity; the first Rebuild or Allocate call grows it on demand.
func NewIndex() *Index {
	idx := &Index{}
	idx.reset()
	return idx
}

func (idx *Index) reset() {
	idx.fenwick = NewFenwick(64)
	idx.cache = make(map[doc.NodeKey]*RangeCacheItem)
	idx.keyAtSlot = make(map[int]slotRef)
	idx.nextSlot = 0
	idx.generation++
}

func (idx *Index) allocSlot(key doc.NodeKey, kind slotKind) int {
	slot := idx.nextSlot
	idx.nextSlot++
	idx.keyAtSlot[slot] = slotRef{key: key, kind: kind}
	return slot
}

// Get returns the RangeCacheItem for key, or false if key has never
// been indexed.
func (idx *Index) Get(key doc.NodeKey) (RangeCacheItem, bool) {
	item, ok := idx.cache[key]
	if !ok {
		return RangeCacheItem{}, false
	}
	return *item, ok
}

// TotalLength returns the document's total text-storage length: the
// sum of every indexed node's own contribution.
func (idx *Index) TotalLength() int64 {
	return idx.fenwick.Total()
}

// Fenwick returns the index's underlying Fenwick tree. Exported for
// diagnostics.CheckState, which re-verifies prefix-sum and
// find-first-index-with-prefix behavior directly against it; no other
// caller outside this package should need it.
func (idx *Index) Fenwick() *Fenwick {
	return idx.fenwick
}

// StartOf returns the absolute start location of key's content window:
// the sum of contributions of every node preceding it in the flattened
// pre-order slot sequence. Root's start is always 0.
func (idx *Index) StartOf(key doc.NodeKey) (int64, error) {
	if key == doc.RootKey {
		return 0, nil
	}
	item, ok := idx.cache[key]
	if !ok {
		return 0, ErrNodeNotIndexed
	}
	slot := item.preIndex
	if slot < 0 {
		slot = item.textIndex
	}
	if slot < 0 {
		return 0, ErrNodeNotIndexed
	}
	if slot == 0 {
		return 0, nil
	}
	return idx.fenwick.PrefixSum(slot - 1), nil
}

// preambleLengthFor returns the fixed preamble length contributed by
// an element of the given tag. No node variant in this implementation
// carries a non-empty preamble; the slot still exists so a future
// variant (e.g. a blockquote marker) can occupy it without renumbering
// anything.
func preambleLengthFor(tag doc.ElementTag) int {
	return 0
}

// postambleLengthFor implements ElementTag.IsBlock's documented
// contract: a block element contributes a trailing newline postamble
// only when immediately followed by another block sibling.
func postambleLengthFor(tag doc.ElementTag, followedByBlockSibling bool) int {
	if !tag.IsBlock() || !followedByBlockSibling {
		return 0
	}
	return 1
}

// Rebuild performs a full ancestor-first pre-order walk of state and
// reassigns every Fenwick slot and RangeCacheItem from scratch. This
// is what the legacy reconciler calls after rewriting the document,
// and it is the only operation that restores the "ancestor index <
// descendant index" invariant exactly.
func (idx *Index) Rebuild(state *doc.EditorState) error {
	idx.reset()
	_, err := idx.indexSubtree(state, doc.RootKey, false)
	return err
}

func (idx *Index) indexChildren(state *doc.EditorState, children []doc.NodeKey) (int, error) {
	total := 0
	for i, c := range children {
		followedByBlock := false
		if i+1 < len(children) {
			if next, ok := state.Get(children[i+1]); ok {
				if el, ok := next.(*doc.ElementNode); ok && el.Tag.IsBlock() {
					followedByBlock = true
				}
			}
		}
		contribution, err := idx.indexSubtree(state, c, followedByBlock)
		if err != nil {
			return 0, err
		}
		total += contribution
	}
	return total, nil
}

func (idx *Index) indexSubtree(state *doc.EditorState, key doc.NodeKey, followedByBlockSibling bool) (int, error) {
	n, ok := state.Get(key)
	if !ok {
		return 0, doc.ErrKeyNotFound
	}

	switch v := n.(type) {
	case *doc.RootNode:
		item := newCacheItem(idx.generation)
		childrenLen, err := idx.indexChildren(state, v.Children)
		if err != nil {
			return 0, err
		}
		item.ChildrenLength = childrenLen
		idx.cache[key] = item
		return item.TotalContribution(), nil

	case *doc.ElementNode:
		item := newCacheItem(idx.generation)
		item.preIndex = idx.allocSlot(key, slotPreamble)
		item.PreambleLength = preambleLengthFor(v.Tag)
		idx.fenwick.Add(item.preIndex, int64(item.PreambleLength))

		childrenLen, err := idx.indexChildren(state, v.Children)
		if err != nil {
			return 0, err
		}
		item.ChildrenLength = childrenLen

		item.postIndex = idx.allocSlot(key, slotPostamble)
		item.PostambleLength = postambleLengthFor(v.Tag, followedByBlockSibling)
		idx.fenwick.Add(item.postIndex, int64(item.PostambleLength))

		idx.cache[key] = item
		return item.TotalContribution(), nil

	case *doc.TextNode:
		item := newCacheItem(idx.generation)
		item.textIndex = idx.allocSlot(key, slotText)
		item.TextLength = v.TextLength()
		idx.fenwick.Add(item.textIndex, int64(item.TextLength))
		idx.cache[key] = item
		return item.TotalContribution(), nil

	case *doc.LineBreakNode:
		item := newCacheItem(idx.generation)
		item.textIndex = idx.allocSlot(key, slotText)
		item.TextLength = 1
		idx.fenwick.Add(item.textIndex, 1)
		idx.cache[key] = item
		return 1, nil

	case *doc.DecoratorNode:
		item := newCacheItem(idx.generation)
		item.textIndex = idx.allocSlot(key, slotText)
		item.TextLength = 1
		idx.fenwick.Add(item.textIndex, 1)
		idx.cache[key] = item
		return 1, nil

	case *doc.UnknownNode:
		item := newCacheItem(idx.generation)
		item.preIndex = idx.allocSlot(key, slotPreamble)
		childrenLen, err := idx.indexChildren(state, v.Children)
		if err != nil {
			return 0, err
		}
		item.ChildrenLength = childrenLen
		item.postIndex = idx.allocSlot(key, slotPostamble)
		idx.cache[key] = item
		return item.TotalContribution(), nil

	default:
		return 0, doc.ErrKeyNotFound
	}
}

// ContributionOf computes a subtree's total text-storage contribution
// directly from state, without allocating any Fenwick slot or cache
// entry. The optimized reconciler uses this to size a NodeInsertion
// delta for a subtree that has not been indexed yet.
func ContributionOf(state *doc.EditorState, key doc.NodeKey, followedByBlockSibling bool) (int, error) {
	n, ok := state.Get(key)
	if !ok {
		return 0, doc.ErrKeyNotFound
	}
	switch v := n.(type) {
	case *doc.RootNode:
		return contributionOfChildren(state, v.Children)
	case *doc.ElementNode:
		childrenLen, err := contributionOfChildren(state, v.Children)
		if err != nil {
			return 0, err
		}
		return preambleLengthFor(v.Tag) + childrenLen + postambleLengthFor(v.Tag, followedByBlockSibling), nil
	case *doc.TextNode:
		return v.TextLength(), nil
	case *doc.LineBreakNode, *doc.DecoratorNode:
		return 1, nil
	case *doc.UnknownNode:
		return contributionOfChildren(state, v.Children)
	default:
		return 0, doc.ErrKeyNotFound
	}
}

func contributionOfChildren(state *doc.EditorState, children []doc.NodeKey) (int, error) {
	total := 0
	for i, c := range children {
		followedByBlock := false
		if i+1 < len(children) {
			if next, ok := state.Get(children[i+1]); ok {
				if el, ok := next.(*doc.ElementNode); ok && el.Tag.IsBlock() {
					followedByBlock = true
				}
			}
		}
		contribution, err := ContributionOf(state, c, followedByBlock)
		if err != nil {
			return 0, err
		}
		total += contribution
	}
	return total, nil
}

// AllocateLeaf hands a freshly inserted leaf (Text, LineBreak, or
// Decorator) a fresh Fenwick slot at the end of the index space.
func (idx *Index) AllocateLeaf(key doc.NodeKey, textLength int) *RangeCacheItem {
	item := newCacheItem(idx.generation)
	item.textIndex = idx.allocSlot(key, slotText)
	item.TextLength = textLength
	idx.fenwick.Add(item.textIndex, int64(textLength))
	idx.cache[key] = item
	return item
}

// AllocateElement hands a freshly inserted Element two fresh Fenwick
// slots (preamble, postamble) at the end of the index space. Its
// children, if any, must be indexed separately (AllocateLeaf /
// AllocateElement per child) before ChildrenLength reflects them.
func (idx *Index) AllocateElement(key doc.NodeKey, preambleLength, postambleLength int) *RangeCacheItem {
	item := newCacheItem(idx.generation)
	item.preIndex = idx.allocSlot(key, slotPreamble)
	item.PreambleLength = preambleLength
	idx.fenwick.Add(item.preIndex, int64(preambleLength))
	item.postIndex = idx.allocSlot(key, slotPostamble)
	item.PostambleLength = postambleLength
	idx.fenwick.Add(item.postIndex, int64(postambleLength))
	idx.cache[key] = item
	return item
}

// ApplyTextDelta adjusts the Fenwick slot and cached TextLength for an
// already-indexed leaf by delta code units, and propagates the same
// delta into the cached (but not Fenwick-backed) ChildrenLength of
// every ancestor. Absolute offset queries never depend on
// ChildrenLength — only on Fenwick sums — so a missed propagation
// cannot corrupt PointAtStringLocation/StringLocationForPoint, only
// diagnostics that read ChildrenLength directly.
func (idx *Index) ApplyTextDelta(state *doc.EditorState, key doc.NodeKey, delta int) error {
	item, ok := idx.cache[key]
	if !ok || item.textIndex < 0 {
		return ErrNodeNotIndexed
	}
	item.TextLength += delta
	idx.fenwick.Add(item.textIndex, int64(delta))
	idx.propagateChildrenDelta(state, key, delta)
	return nil
}

// PropagateChildrenDelta adjusts the cached ChildrenLength of every
// ancestor of key by delta, without touching key's own cache entry or
// the Fenwick tree. The optimized reconciler calls this after indexing
// a wholly new subtree under key, to keep ancestor bookkeeping current.
func (idx *Index) PropagateChildrenDelta(state *doc.EditorState, key doc.NodeKey, delta int) {
	idx.propagateChildrenDelta(state, key, delta)
}

func (idx *Index) propagateChildrenDelta(state *doc.EditorState, key doc.NodeKey, delta int) {
	n, ok := state.Get(key)
	if !ok {
		return
	}
	for {
		parentKey, has := n.Parent()
		if !has {
			return
		}
		if parentItem, ok := idx.cache[parentKey]; ok {
			parentItem.ChildrenLength += delta
		}
		pn, ok := state.Get(parentKey)
		if !ok {
			return
		}
		n = pn
	}
}

// Remove zeroes key's Fenwick slot(s) and drops its RangeCacheItem.
// The vacated slot index is never reused, matching the specification's
// "deletion vacates an index without reusing it" policy. Callers that
// need ancestor ChildrenLength kept current must call
// ApplyTextDelta-style bookkeeping themselves before unlinking the
// node from its parent, since Remove has no parent to walk from by the
// time a node has already been detached.
func (idx *Index) Remove(key doc.NodeKey) {
	item, ok := idx.cache[key]
	if !ok {
		return
	}
	if item.preIndex >= 0 {
		idx.fenwick.Add(item.preIndex, -int64(item.PreambleLength))
	}
	if item.postIndex >= 0 {
		idx.fenwick.Add(item.postIndex, -int64(item.PostambleLength))
	}
	if item.textIndex >= 0 {
		idx.fenwick.Add(item.textIndex, -int64(item.TextLength))
	}
	delete(idx.cache, key)
}
