package selection

import (
	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/doc/edit"
	"github.com/outlinelabs/richedit/doc/tx"
	"github.com/outlinelabs/richedit/rangeindex"
)

// RemoveRange deletes the document content strictly between from and
// to (order-independent) and returns the collapsed point that remains.
// idx must still reflect the state the transaction was opened against;
// callers that perform other structural edits first should re-Rebuild
// idx or call RemoveRange before those edits.
//
// Nodes fully contained in the range are removed outright; a Text node
// straddling either edge is truncated to its surviving prefix or
// suffix rather than removed, so the two remaining fragments are left
// as ordinary siblings for doc/edit.Normalize to merge back together
// if they turn out to be adjacent and mergeable.
func RemoveRange(t *tx.Transaction, idx *rangeindex.Index, from, to doc.Point) (doc.Point, error) {
	state := t.Pending()
	locFrom, err := rangeindex.StringLocationForPoint(state, idx, from)
	if err != nil {
		return doc.Point{}, err
	}
	locTo, err := rangeindex.StringLocationForPoint(state, idx, to)
	if err != nil {
		return doc.Point{}, err
	}

	start, end := from, to
	lo, hi := locFrom, locTo
	if lo > hi {
		lo, hi = hi, lo
		start, end = end, start
	}
	if lo == hi {
		return start, nil
	}

	if start.Kind == doc.PointText && end.Kind == doc.PointText && start.Key == end.Key {
		n, err := t.GetNodeForWrite(start.Key)
		if err != nil {
			return doc.Point{}, err
		}
		tn := n.(*doc.TextNode)
		before := doc.UTF16Slice(tn.Text, 0, int(start.Offset))
		after := doc.UTF16Slice(tn.Text, int(end.Offset), tn.TextLength())
		tn.Text = before + after
		return doc.TextPoint(start.Key, start.Offset), nil
	}

	contained, err := collectLeavesInRange(state, idx, lo, hi, start.Key, end.Key)
	if err != nil {
		return doc.Point{}, err
	}

	if start.Kind == doc.PointText {
		n, err := t.GetNodeForWrite(start.Key)
		if err != nil {
			return doc.Point{}, err
		}
		tn := n.(*doc.TextNode)
		tn.Text = doc.UTF16Slice(tn.Text, 0, int(start.Offset))
	}
	if end.Kind == doc.PointText {
		n, err := t.GetNodeForWrite(end.Key)
		if err != nil {
			return doc.Point{}, err
		}
		tn := n.(*doc.TextNode)
		tn.Text = doc.UTF16Slice(tn.Text, int(end.Offset), tn.TextLength())
	}
	for _, key := range contained {
		if err := edit.Remove(t, key); err != nil {
			return doc.Point{}, err
		}
	}

	return start, nil
}

// collectLeavesInRange returns every leaf key (other than exclude1/
// exclude2) whose absolute span falls entirely within [lo, hi), walking
// the whole pending tree from Root. idx's cached geometry is read, not
// the mutated node contents, so it must still predate any truncation
// RemoveRange is about to apply.
func collectLeavesInRange(state *doc.EditorState, idx *rangeindex.Index, lo, hi int64, exclude1, exclude2 doc.NodeKey) ([]doc.NodeKey, error) {
	var result []doc.NodeKey
	var walk func(key doc.NodeKey) error
	walk = func(key doc.NodeKey) error {
		n, ok := state.Get(key)
		if !ok {
			return doc.ErrKeyNotFound
		}
		switch n.(type) {
		case *doc.TextNode, *doc.LineBreakNode, *doc.DecoratorNode:
			if key == exclude1 || key == exclude2 {
				return nil
			}
			start, err := idx.StartOf(key)
			if err != nil {
				return err
			}
			item, ok := idx.Get(key)
			if !ok {
				return rangeindex.ErrNodeNotIndexed
			}
			end := start + int64(item.TotalContribution())
			if start >= lo && end <= hi {
				result = append(result, key)
			}
			return nil
		default:
			for _, c := range doc.ChildrenOf(n) {
				if err := walk(c); err != nil {
					return err
				}
			}
			return nil
		}
	}
	if err := walk(doc.RootKey); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteCharacter implements the fused backspace/forward-delete
// semantics: a non-collapsed selection removes its range; a collapsed
// caret at a node or block boundary merges into the neighboring
// sibling or block; otherwise it removes one grapheme cluster.
func DeleteCharacter(t *tx.Transaction, idx *rangeindex.Index, sel *doc.RangeSelection, forward bool) (*doc.RangeSelection, error) {
	if !sel.IsCollapsed() {
		caret, err := RemoveRange(t, idx, sel.Anchor, sel.Focus)
		if err != nil {
			return nil, err
		}
		return collapsedAt(sel, caret), nil
	}

	caret := sel.Focus
	if caret.Kind != doc.PointText {
		// A caret at an element boundary (e.g. straddling a decorator)
		// falls back to deleting the adjacent grapheme/leaf directly.
		return deleteAdjacentGrapheme(t, idx, sel, forward)
	}

	n, err := t.GetNode(caret.Key)
	if err != nil {
		return nil, err
	}
	tn := n.(*doc.TextNode)

	atBoundary := (!forward && caret.Offset == 0) || (forward && int(caret.Offset) == tn.TextLength())
	if !atBoundary {
		return deleteAdjacentGrapheme(t, idx, sel, forward)
	}

	newCaret, err := mergeAcrossBoundary(t, caret.Key, forward)
	if err != nil {
		return nil, err
	}
	return collapsedAt(sel, newCaret), nil
}

func collapsedAt(sel *doc.RangeSelection, p doc.Point) *doc.RangeSelection {
	return &doc.RangeSelection{Anchor: p, Focus: p, Format: sel.Format, Style: sel.Style}
}

func deleteAdjacentGrapheme(t *tx.Transaction, idx *rangeindex.Index, sel *doc.RangeSelection, forward bool) (*doc.RangeSelection, error) {
	state := t.Pending()
	other, err := moveCharacter(state, idx, sel.Focus, forward)
	if err != nil {
		return nil, err
	}
	caret, err := RemoveRange(t, idx, sel.Focus, other)
	if err != nil {
		return nil, err
	}
	return collapsedAt(sel, caret), nil
}

// mergeAcrossBoundary handles deleteCharacter's boundary cases for a
// Text node sitting at offset 0 (backward) or its own end (forward):
// consume an adjacent LineBreak, merge with an adjacent Text sibling,
// or merge the enclosing block into its neighboring block.
func mergeAcrossBoundary(t *tx.Transaction, textKey doc.NodeKey, forward bool) (doc.Point, error) {
	n, err := t.GetNode(textKey)
	if err != nil {
		return doc.Point{}, err
	}
	parentKey, hasParent := n.Parent()
	if !hasParent {
		return doc.TextPoint(textKey, 0), nil
	}
	parent, err := t.GetNode(parentKey)
	if err != nil {
		return doc.Point{}, err
	}
	siblings, err := childrenOfNode(parent)
	if err != nil {
		return doc.Point{}, err
	}
	at := indexOf(siblings, textKey)

	var neighborIdx int
	if forward {
		neighborIdx = at + 1
	} else {
		neighborIdx = at - 1
	}

	if neighborIdx >= 0 && neighborIdx < len(siblings) {
		neighborKey := siblings[neighborIdx]
		neighbor, err := t.GetNode(neighborKey)
		if err != nil {
			return doc.Point{}, err
		}
		switch neighbor.(type) {
		case *doc.LineBreakNode:
			if err := edit.Remove(t, neighborKey); err != nil {
				return doc.Point{}, err
			}
			caretOffset := uint32(0)
			if forward {
				tn, err := t.GetNode(textKey)
				if err != nil {
					return doc.Point{}, err
				}
				caretOffset = uint32(tn.(*doc.TextNode).TextLength())
			}
			return doc.TextPoint(textKey, caretOffset), nil

		case *doc.TextNode:
			return mergeTextSiblings(t, textKey, neighborKey, forward)
		}
	}

	return mergeEnclosingBlock(t, parentKey, forward)
}

// mergeTextSiblings appends one Text sibling's payload to the other and
// removes the consumed node. For a backward delete textKey's payload is
// appended to neighborKey, which survives; for a forward delete
// neighborKey's payload is appended to textKey, which survives. The
// returned caret sits at the join.
func mergeTextSiblings(t *tx.Transaction, textKey, neighborKey doc.NodeKey, forward bool) (doc.Point, error) {
	survivor, victim := textKey, neighborKey
	if !forward {
		survivor, victim = neighborKey, textKey
	}

	victimNode, err := t.GetNode(victim)
	if err != nil {
		return doc.Point{}, err
	}
	victimText := victimNode.(*doc.TextNode).Text

	w, err := t.GetNodeForWrite(survivor)
	if err != nil {
		return doc.Point{}, err
	}
	survivorNode := w.(*doc.TextNode)
	joinOffset := uint32(survivorNode.TextLength())
	survivorNode.Text += victimText

	if err := edit.Remove(t, victim); err != nil {
		return doc.Point{}, err
	}

	if forward {
		return doc.TextPoint(survivor, joinOffset), nil
	}
	return doc.TextPoint(survivor, joinOffset), nil
}

// mergeEnclosingBlock implements the "merge into the previous/next
// block's last/first text node, moving any remaining children with it"
// case. Only blockKey's immediately adjacent sibling in the delete
// direction is considered: when it is an Element the two are merged
// via mergeBlocks; at the document start/end, or when that sibling is
// not an Element, ElementPoint(blockKey, 0) is returned and nothing is
// merged. List items get no special treatment.
func mergeEnclosingBlock(t *tx.Transaction, blockKey doc.NodeKey, forward bool) (doc.Point, error) {
	n, err := t.GetNode(blockKey)
	if err != nil {
		return doc.Point{}, err
	}
	parentKey, hasParent := n.Parent()
	if !hasParent {
		return doc.ElementPoint(blockKey, 0), nil
	}
	parent, err := t.GetNode(parentKey)
	if err != nil {
		return doc.Point{}, err
	}
	siblings, err := childrenOfNode(parent)
	if err != nil {
		return doc.Point{}, err
	}
	at := indexOf(siblings, blockKey)

	var neighborIdx int
	if forward {
		neighborIdx = at + 1
	} else {
		neighborIdx = at - 1
	}
	if neighborIdx < 0 || neighborIdx >= len(siblings) {
		// Document start/end: nothing to merge into.
		return doc.ElementPoint(blockKey, 0), nil
	}

	neighborKey := siblings[neighborIdx]
	neighbor, err := t.GetNode(neighborKey)
	if err != nil {
		return doc.Point{}, err
	}
	if _, isElement := neighbor.(*doc.ElementNode); !isElement {
		return doc.ElementPoint(blockKey, 0), nil
	}

	if forward {
		return mergeBlocks(t, blockKey, neighborKey)
	}
	return mergeBlocks(t, neighborKey, blockKey)
}

// mergeBlocks merges sourceKey's children into targetKey (appended
// after targetKey's own children) and removes sourceKey. If
// sourceKey's first child and targetKey's last child are both Text,
// they are merged into one node at the join instead of left adjacent;
// the caret lands at that join, or at targetKey's end if no merge
// happened.
func mergeBlocks(t *tx.Transaction, targetKey, sourceKey doc.NodeKey) (doc.Point, error) {
	source, err := t.GetNode(sourceKey)
	if err != nil {
		return doc.Point{}, err
	}
	sourceChildren, err := childrenOfNode(source)
	if err != nil {
		return doc.Point{}, err
	}

	target, err := t.GetNode(targetKey)
	if err != nil {
		return doc.Point{}, err
	}
	targetChildren, err := childrenOfNode(target)
	if err != nil {
		return doc.Point{}, err
	}

	caret := doc.ElementPoint(targetKey, uint32(len(targetChildren)))
	remaining := sourceChildren

	if len(sourceChildren) > 0 && len(targetChildren) > 0 {
		firstNode, err := t.GetNode(sourceChildren[0])
		if err != nil {
			return doc.Point{}, err
		}
		lastNode, err := t.GetNode(targetChildren[len(targetChildren)-1])
		if err != nil {
			return doc.Point{}, err
		}
		if firstText, ok := firstNode.(*doc.TextNode); ok {
			if lastKey := targetChildren[len(targetChildren)-1]; lastNode.Kind() == doc.KindText {
				w, err := t.GetNodeForWrite(lastKey)
				if err != nil {
					return doc.Point{}, err
				}
				lastText := w.(*doc.TextNode)
				joinOffset := uint32(lastText.TextLength())
				lastText.Text += firstText.Text
				if err := edit.Remove(t, sourceChildren[0]); err != nil {
					return doc.Point{}, err
				}
				caret = doc.TextPoint(lastKey, joinOffset)
				remaining = sourceChildren[1:]
			}
		}
	}

	for _, c := range remaining {
		if err := edit.Append(t, targetKey, c); err != nil {
			return doc.Point{}, err
		}
	}

	if err := edit.Remove(t, sourceKey); err != nil {
		return doc.Point{}, err
	}
	return caret, nil
}

func childrenOfNode(n doc.Node) ([]doc.NodeKey, error) {
	switch n.(type) {
	case *doc.RootNode, *doc.ElementNode, *doc.UnknownNode:
		return doc.ChildrenOf(n), nil
	default:
		return nil, doc.ErrNotElement
	}
}

func indexOf(keys []doc.NodeKey, key doc.NodeKey) int {
	for i, k := range keys {
		if k == key {
			return i
		}
	}
	return -1
}
