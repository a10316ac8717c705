package rangeindex

// RangeCacheItem records the text-storage contribution of a single
// node, populated and kept current by Index during reconciliation. For
// an Element, ChildrenLength is the sum of its children's total
// contributions and TextLength is always zero; for a leaf,
// ChildrenLength is always zero.
type RangeCacheItem struct {
	PreambleLength  int
	ChildrenLength  int
	TextLength      int
	PostambleLength int

	// Generation is bumped on every full Index.Rebuild and stamped on
	// each item; nothing in the module reads it back, and it plays no
	// role in any offset computation.
	Generation uint32

	preIndex  int // Fenwick slot holding PreambleLength, or -1 for a leaf.
	postIndex int // Fenwick slot holding PostambleLength, or -1 for a leaf.
	textIndex int // Fenwick slot holding TextLength, or -1 for an Element/Root.
}

// TotalContribution is preamble + children + text + postamble, the
// number of text-storage code units this node (including, for a
// container, every descendant) occupies.
func (c RangeCacheItem) TotalContribution() int {
	return c.PreambleLength + c.ChildrenLength + c.TextLength + c.PostambleLength
}

func newCacheItem(generation uint32) *RangeCacheItem {
	return &RangeCacheItem{preIndex: -1, postIndex: -1, textIndex: -1, Generation: generation}
}
