package edit

import (
	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/doc/tx"
)

// selectionAnchorsOn reports whether the pending selection has an anchor
// or focus Point referencing key, in which case Normalize must not drop
// it even if empty.
func selectionAnchorsOn(t *tx.Transaction, key doc.NodeKey) bool {
	sel, ok := t.Pending().Selection.(*doc.RangeSelection)
	if !ok {
		return false
	}
	return sel.Anchor.Key == key || sel.Focus.Key == key
}

// Normalize walks every Element (and Root) in the pending tree and, for
// each, merges runs of adjacent mergeable Text siblings into the first
// node of the run and drops empty Text nodes, unless the pending
// selection anchors on them. It is idempotent and safe to call on a
// tree with no Text children at all. Editor.Update runs this once per
// transaction before garbage collection and the reconciler see the
// pending state (§4.1, §4.2).
func Normalize(t *tx.Transaction) error {
	pending := t.Pending()
	visited := make(map[doc.NodeKey]bool)
	var walk func(key doc.NodeKey) error
	walk = func(key doc.NodeKey) error {
		if visited[key] {
			return nil
		}
		visited[key] = true
		n, ok := pending.Get(key)
		if !ok {
			return nil
		}
		children, err := childrenOf(n)
		if err != nil {
			return nil
		}
		if err := normalizeChildren(t, key); err != nil {
			return err
		}
		n, _ = pending.Get(key)
		children, _ = childrenOf(n)
		for _, c := range children {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(doc.RootKey)
}

// normalizeChildren performs one merge-and-prune pass over parentKey's
// direct children.
func normalizeChildren(t *tx.Transaction, parentKey doc.NodeKey) error {
	parent, err := t.GetNode(parentKey)
	if err != nil {
		return err
	}
	children, err := childrenOf(parent)
	if err != nil {
		return nil
	}
	if len(children) == 0 {
		return nil
	}

	out := make([]doc.NodeKey, 0, len(children))
	i := 0
	changed := false
	for i < len(children) {
		key := children[i]
		node, err := t.GetNode(key)
		if err != nil {
			return err
		}
		tn, isText := node.(*doc.TextNode)
		if !isText {
			out = append(out, key)
			i++
			continue
		}

		j := i + 1
		mergedKey := key
		mergedNode := tn
		for j < len(children) {
			nextNode, err := t.GetNode(children[j])
			if err != nil {
				return err
			}
			nextText, ok := nextNode.(*doc.TextNode)
			if !ok || !mergedNode.MergeableWith(nextText) {
				break
			}
			w, err := t.GetNodeForWrite(mergedKey)
			if err != nil {
				return err
			}
			wt := w.(*doc.TextNode)
			wt.Text += nextText.Text
			mergedNode = wt
			if err := t.RemoveNode(children[j]); err != nil {
				return err
			}
			changed = true
			j++
		}

		finalNode, err := t.GetNode(mergedKey)
		if err != nil {
			return err
		}
		finalText := finalNode.(*doc.TextNode)
		if finalText.TextLength() == 0 && !selectionAnchorsOn(t, mergedKey) {
			if err := t.RemoveNode(mergedKey); err != nil {
				return err
			}
			changed = true
		} else {
			out = append(out, mergedKey)
		}
		i = j
	}

	if !changed {
		return nil
	}
	w, err := t.GetNodeForWrite(parentKey)
	if err != nil {
		return err
	}
	return setChildrenOf(w, out)
}
