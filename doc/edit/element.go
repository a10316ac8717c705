package edit

import (
	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/doc/tx"
)

// NewElement allocates and inserts a detached Element node of the given
// tag into the pending state. The caller must attach it somewhere with
// Append/InsertBefore/InsertAfter before the transaction commits, or it
// will be swept by garbage collection as unreachable from Root.
func NewElement(t *tx.Transaction, tag doc.ElementTag) (*doc.ElementNode, error) {
	key, err := t.CreateKey()
	if err != nil {
		return nil, err
	}
	n := doc.NewElement(key, tag)
	if err := t.PutNode(n); err != nil {
		return nil, err
	}
	return n, nil
}

// NewTextNode allocates and inserts a detached Text node.
func NewTextNode(t *tx.Transaction, text string) (*doc.TextNode, error) {
	key, err := t.CreateKey()
	if err != nil {
		return nil, err
	}
	n := doc.NewText(key, text)
	if err := t.PutNode(n); err != nil {
		return nil, err
	}
	return n, nil
}

// NewLineBreak allocates and inserts a detached LineBreak node.
func NewLineBreak(t *tx.Transaction) (*doc.LineBreakNode, error) {
	key, err := t.CreateKey()
	if err != nil {
		return nil, err
	}
	n := doc.NewLineBreak(key)
	if err := t.PutNode(n); err != nil {
		return nil, err
	}
	return n, nil
}

// NewDecorator allocates and inserts a detached Decorator node.
func NewDecorator(t *tx.Transaction, typ string, payload any) (*doc.DecoratorNode, error) {
	key, err := t.CreateKey()
	if err != nil {
		return nil, err
	}
	n := doc.NewDecorator(key, typ, payload)
	if err := t.PutNode(n); err != nil {
		return nil, err
	}
	return n, nil
}

// isAncestor reports whether candidate is an ancestor of key (or equal
// to it) in the pending tree, used to reject appends that would create
// a cycle.
func isAncestor(t *tx.Transaction, candidate, key doc.NodeKey) (bool, error) {
	cur := key
	for {
		if cur == candidate {
			return true, nil
		}
		n, err := t.GetNode(cur)
		if err != nil {
			return false, err
		}
		parent, has := n.Parent()
		if !has {
			return false, nil
		}
		cur = parent
	}
}

// detachFromParent removes key from its current parent's child list, if
// it has one. It is a no-op if the node is already detached.
func detachFromParent(t *tx.Transaction, key doc.NodeKey) error {
	n, err := t.GetNode(key)
	if err != nil {
		return err
	}
	parentKey, has := n.Parent()
	if !has {
		return nil
	}
	parent, err := t.GetNodeForWrite(parentKey)
	if err != nil {
		return err
	}
	children, err := childrenOf(parent)
	if err != nil {
		return err
	}
	idx := indexOfChild(children, key)
	if idx < 0 {
		return nil
	}
	return setChildrenOf(parent, removeAt(children, idx))
}

// AppendToRoot adds childKey as the last child of the document root.
func AppendToRoot(t *tx.Transaction, childKey doc.NodeKey) error {
	return Append(t, doc.RootKey, childKey)
}

// Append adds childKey as the last child of parentKey, detaching it
// from any current parent first. It fails with ErrCycleDetected if
// parentKey is childKey or a descendant of it.
func Append(t *tx.Transaction, parentKey, childKey doc.NodeKey) error {
	if parentKey == childKey {
		return doc.ErrCycleDetected
	}
	cyclic, err := isAncestor(t, childKey, parentKey)
	if err != nil {
		return err
	}
	if cyclic {
		return doc.ErrCycleDetected
	}

	if err := detachFromParent(t, childKey); err != nil {
		return err
	}

	parent, err := t.GetNodeForWrite(parentKey)
	if err != nil {
		return err
	}
	children, err := childrenOf(parent)
	if err != nil {
		return err
	}
	if err := setChildrenOf(parent, append(children, childKey)); err != nil {
		return err
	}

	child, err := t.GetNodeForWrite(childKey)
	if err != nil {
		return err
	}
	doc.SetParent(child, parentKey)
	return nil
}

// insertRelative inserts newKey into targetKey's parent's child list,
// immediately before targetKey (after=false) or after it (after=true).
func insertRelative(t *tx.Transaction, targetKey, newKey doc.NodeKey, after bool) error {
	target, err := t.GetNode(targetKey)
	if err != nil {
		return err
	}
	parentKey, has := target.Parent()
	if !has {
		return doc.ErrParentMissing
	}

	cyclic, err := isAncestor(t, newKey, parentKey)
	if err != nil {
		return err
	}
	if cyclic {
		return doc.ErrCycleDetected
	}

	if err := detachFromParent(t, newKey); err != nil {
		return err
	}

	parent, err := t.GetNodeForWrite(parentKey)
	if err != nil {
		return err
	}
	children, err := childrenOf(parent)
	if err != nil {
		return err
	}
	idx := indexOfChild(children, targetKey)
	if idx < 0 {
		return doc.ErrKeyNotFound
	}
	if after {
		idx++
	}
	if err := setChildrenOf(parent, insertAt(children, idx, newKey)); err != nil {
		return err
	}

	newNode, err := t.GetNodeForWrite(newKey)
	if err != nil {
		return err
	}
	doc.SetParent(newNode, parentKey)
	return nil
}

// InsertBefore inserts newKey immediately before targetKey as a sibling.
func InsertBefore(t *tx.Transaction, targetKey, newKey doc.NodeKey) error {
	return insertRelative(t, targetKey, newKey, false)
}

// InsertAfter inserts newKey immediately after targetKey as a sibling.
func InsertAfter(t *tx.Transaction, targetKey, newKey doc.NodeKey) error {
	return insertRelative(t, targetKey, newKey, true)
}

// ReplaceWith swaps oldKey for newKey at oldKey's position in its
// parent's child list. If preserveChildren is true and oldKey is a
// container, oldKey's children are reparented onto newKey (appended
// after any children newKey already has) before oldKey is removed.
func ReplaceWith(t *tx.Transaction, oldKey, newKey doc.NodeKey, preserveChildren bool) error {
	old, err := t.GetNode(oldKey)
	if err != nil {
		return err
	}
	parentKey, has := old.Parent()
	if !has {
		return doc.ErrParentMissing
	}

	if preserveChildren {
		oldChildren, err := childrenOf(old)
		if err == nil {
			for _, c := range append([]doc.NodeKey(nil), oldChildren...) {
				if err := Append(t, newKey, c); err != nil {
					return err
				}
			}
		}
	}

	if err := detachFromParent(t, newKey); err != nil {
		return err
	}

	parent, err := t.GetNodeForWrite(parentKey)
	if err != nil {
		return err
	}
	children, err := childrenOf(parent)
	if err != nil {
		return err
	}
	idx := indexOfChild(children, oldKey)
	if idx < 0 {
		return doc.ErrKeyNotFound
	}
	replaced := append([]doc.NodeKey(nil), children...)
	replaced[idx] = newKey
	if err := setChildrenOf(parent, replaced); err != nil {
		return err
	}

	newNode, err := t.GetNodeForWrite(newKey)
	if err != nil {
		return err
	}
	doc.SetParent(newNode, parentKey)

	return Remove(t, oldKey)
}

// Remove unlinks key from its parent's child list and marks the parent
// dirty. The node itself (and, if it is a container, its descendants)
// remains in the pending node map until the next garbage-collection
// sweep (CollectGarbage), matching §3.3's "removal unlinks and marks
// dirty; GC sweeps unreachable keys on commit."
func Remove(t *tx.Transaction, key doc.NodeKey) error {
	if key == doc.RootKey {
		return doc.ErrCannotRemoveRoot
	}
	return detachFromParent(t, key)
}

// Clear detaches every child of key, leaving it empty. Children remain
// in the pending node map until garbage collection.
func Clear(t *tx.Transaction, key doc.NodeKey) error {
	n, err := t.GetNodeForWrite(key)
	if err != nil {
		return err
	}
	children, err := childrenOf(n)
	if err != nil {
		return err
	}
	for _, c := range children {
		if child, err := t.GetNode(c); err == nil {
			doc.ClearParent(child)
		}
	}
	return setChildrenOf(n, nil)
}

// CollectGarbage walks the pending tree from Root, deletes every key in
// the pending node map that is no longer reachable, and marks each
// swept key dirty as removed (unless it was created and then swept
// within the same transaction, in which case it is dropped from the
// dirty set entirely — it never existed in the committed state).
// Editor.Update calls this once per transaction, after normalization
// and before invoking the reconciler.
func CollectGarbage(t *tx.Transaction) []doc.NodeKey {
	pending := t.Pending()
	reachable := make(map[doc.NodeKey]bool, len(pending.NodeMap))
	var walk func(key doc.NodeKey)
	walk = func(key doc.NodeKey) {
		if reachable[key] {
			return
		}
		reachable[key] = true
		n, ok := pending.Get(key)
		if !ok {
			return
		}
		for _, c := range childrenOfSafe(n) {
			walk(c)
		}
	}
	walk(doc.RootKey)

	var swept []doc.NodeKey
	for key := range pending.NodeMap {
		if reachable[key] {
			continue
		}
		swept = append(swept, key)
		// RemoveNode deletes key from the pending map and records it as
		// DirtyRemoved (overriding an earlier DirtyMutated), or drops it
		// from the dirty set if it was DirtyCreated.
		_ = t.RemoveNode(key)
	}
	return swept
}

func childrenOfSafe(n doc.Node) []doc.NodeKey {
	c, err := childrenOf(n)
	if err != nil {
		return nil
	}
	return c
}

// GetDescendantByOffset returns the child of an Element at childIndex,
// or the Element itself (with ok=false) if childIndex equals the child
// count (the "end" position), matching the semantics a Point of kind
// PointElement needs when descending into a subtree.
func GetDescendantByOffset(t *tx.Transaction, elementKey doc.NodeKey, childIndex int) (doc.NodeKey, bool, error) {
	n, err := t.GetNode(elementKey)
	if err != nil {
		return 0, false, err
	}
	children, err := childrenOf(n)
	if err != nil {
		return 0, false, err
	}
	if childIndex < 0 || childIndex > len(children) {
		return 0, false, ErrOffsetOutOfRange
	}
	if childIndex == len(children) {
		return elementKey, false, nil
	}
	return children[childIndex], true, nil
}
