package reconcile

import (
	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/doc/tx"
	"github.com/outlinelabs/richedit/rangeindex"
)

// PatchIndex is Stage 4: after ApplyBatch has mutated text storage,
// idx (which still reflects the pre-batch layout) is brought current
// with the same deltas, in the same order they were applied in. A
// text update adjusts the existing leaf's slot; an insertion allocates
// fresh slots for the whole new subtree and walks them into ancestor
// ChildrenLength; a deletion vacates the removed node's slot(s).
// AttributeChange and AnchorUpdate never touch the index.
func PatchIndex(pending *doc.EditorState, idx *rangeindex.Index, applied []ReconcilerDelta) error {
	for _, d := range applied {
		switch d.Kind {
		case DeltaTextUpdate:
			n, ok := pending.Get(d.Key)
			if !ok {
				return doc.ErrKeyNotFound
			}
			text, ok := n.(*doc.TextNode)
			if !ok {
				return doc.ErrKeyNotFound
			}
			old, ok := idx.Get(d.Key)
			if !ok {
				return rangeindex.ErrNodeNotIndexed
			}
			delta := text.TextLength() - old.TextLength
			if delta != 0 {
				if err := idx.ApplyTextDelta(pending, d.Key, delta); err != nil {
					return err
				}
			}

		case DeltaNodeInsertion:
			contribution, err := indexNewSubtree(pending, idx, d.Key, d.FollowedByBlockSibling)
			if err != nil {
				return err
			}
			idx.PropagateChildrenDelta(pending, d.Key, contribution)

		case DeltaNodeDeletion:
			idx.Remove(d.Key)

		case DeltaAttributeChange, DeltaAnchorUpdate:
			// no index-shaped effect.
		}
	}
	return nil
}

// indexNewSubtree mirrors Index.indexSubtree but hands out slots via
// the incremental AllocateLeaf/AllocateElement entry points instead of
// Rebuild's ancestor-first counter, since key's subtree was created
// between rebuilds and must not renumber anything already indexed.
func indexNewSubtree(state *doc.EditorState, idx *rangeindex.Index, key doc.NodeKey, followedByBlockSibling bool) (int, error) {
	n, ok := state.Get(key)
	if !ok {
		return 0, doc.ErrKeyNotFound
	}

	switch v := n.(type) {
	case *doc.ElementNode:
		childrenLen, err := indexNewChildren(state, idx, v.Children)
		if err != nil {
			return 0, err
		}
		postamble := 0
		if v.Tag.IsBlock() && followedByBlockSibling {
			postamble = 1
		}
		item := idx.AllocateElement(key, 0, postamble)
		item.ChildrenLength = childrenLen
		return item.TotalContribution(), nil

	case *doc.TextNode:
		item := idx.AllocateLeaf(key, v.TextLength())
		return item.TotalContribution(), nil

	case *doc.LineBreakNode, *doc.DecoratorNode:
		item := idx.AllocateLeaf(key, 1)
		return item.TotalContribution(), nil

	case *doc.UnknownNode:
		childrenLen, err := indexNewChildren(state, idx, v.Children)
		if err != nil {
			return 0, err
		}
		item := idx.AllocateElement(key, 0, 0)
		item.ChildrenLength = childrenLen
		return item.TotalContribution(), nil

	default:
		return 0, doc.ErrKeyNotFound
	}
}

func indexNewChildren(state *doc.EditorState, idx *rangeindex.Index, children []doc.NodeKey) (int, error) {
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
		contribution, err := indexNewSubtree(state, idx, c, followedByBlock)
		if err != nil {
			return 0, err
		}
		total += contribution
	}
	return total, nil
}

// ReconcileOptimized runs the full Stage 1-4 pipeline: build the delta
// batch against idx's pre-batch layout, apply it to storage, and patch
// idx to match. On ApplyFailure idx is left untouched, matching
// storage's own rollback.
func ReconcileOptimized(committed, pending *doc.EditorState, dirty map[doc.NodeKey]tx.DirtyCause, idx *rangeindex.Index, storage StorageWriter, allowPartial bool) (DeltaApplicationResult, error) {
	batch, err := BuildDeltaBatch(committed, pending, dirty, idx)
	if err != nil {
		return DeltaApplicationResult{}, err
	}

	result := ApplyBatch(batch, storage, allowPartial)
	if result.Outcome == ApplyFailure {
		return result, nil
	}

	if err := PatchIndex(pending, idx, result.Applied); err != nil {
		return result, err
	}
	return result, nil
}
