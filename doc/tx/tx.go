package tx

import "github.com/outlinelabs/richedit/doc"

// DirtyCause records why a node was added to a transaction's dirty set,
// distinguishing a fresh insertion from an in-place mutation from a
// removal. The reconciler uses this to decide whether it needs a prior
// absolute range (mutation/removal) or only a target location
// (creation).
type DirtyCause uint8

const (
	DirtyCreated DirtyCause = iota + 1
	DirtyMutated
	DirtyRemoved
)

// Transaction is a scoped mutation context over a doc.EditorState. The
// first write to any node clones it into the pending state, preserving
// the committed state node-for-node (copy-on-write, §3.3).
type Transaction struct {
	committed *doc.EditorState
	pending   *doc.EditorState
	dirty     map[doc.NodeKey]DirtyCause
	keys      *doc.KeyAllocator
	readOnly  bool
	done      bool
}

// Begin opens a writable transaction against committed, using keys to
// allocate any new NodeKeys created during the transaction.
func Begin(committed *doc.EditorState, keys *doc.KeyAllocator) *Transaction {
	return &Transaction{
		committed: committed,
		pending:   committed.ShallowCopy(),
		dirty:     make(map[doc.NodeKey]DirtyCause),
		keys:      keys,
	}
}

// BeginRead opens a read-only transaction against committed. Every
// mutating method returns ErrReadOnlyViolation.
func BeginRead(committed *doc.EditorState) *Transaction {
	return &Transaction{
		committed: committed,
		pending:   committed,
		readOnly:  true,
	}
}

// IsReadOnly reports whether t was opened with BeginRead.
func (t *Transaction) IsReadOnly() bool { return t.readOnly }

// Committed returns the state the transaction was opened against. It is
// never mutated by the transaction.
func (t *Transaction) Committed() *doc.EditorState { return t.committed }

// Pending returns the transaction's working copy. Mutating methods
// write into this state via copy-on-write.
func (t *Transaction) Pending() *doc.EditorState { return t.pending }

// Dirty returns the set of node keys touched during the transaction and
// why. The returned map is owned by the transaction; callers must not
// mutate it.
func (t *Transaction) Dirty() map[doc.NodeKey]DirtyCause { return t.dirty }

// GetNode returns a node from the pending state without cloning it,
// suitable for read-only inspection.
func (t *Transaction) GetNode(key doc.NodeKey) (doc.Node, error) {
	n, ok := t.pending.Get(key)
	if !ok {
		return nil, doc.ErrKeyNotFound
	}
	return n, nil
}

// GetNodeForWrite returns a mutable clone of the node for key, cloning
// it into the pending state on first write this transaction and
// returning the already-cloned instance on subsequent calls (idempotent
// within one transaction — it never re-clones from committed a second
// time, so earlier edits in this transaction are not lost).
func (t *Transaction) GetNodeForWrite(key doc.NodeKey) (doc.Node, error) {
	if t.readOnly {
		return nil, ErrReadOnlyViolation
	}
	if t.done {
		return nil, ErrTransactionFinished
	}
	n, ok := t.pending.Get(key)
	if !ok {
		return nil, doc.ErrKeyNotFound
	}
	if _, alreadyDirty := t.dirty[key]; alreadyDirty {
		return n, nil
	}
	clone := doc.CloneNode(n)
	t.pending.NodeMap[key] = clone
	t.dirty[key] = DirtyMutated
	return clone, nil
}

// CreateKey allocates a fresh NodeKey for a node the caller is about to
// construct and insert with PutNode.
func (t *Transaction) CreateKey() (doc.NodeKey, error) {
	if t.readOnly {
		return 0, ErrReadOnlyViolation
	}
	return t.keys.Next(), nil
}

// PutNode inserts a newly constructed node into the pending state and
// marks it dirty as a creation. The node must not already exist in the
// pending state.
func (t *Transaction) PutNode(n doc.Node) error {
	if t.readOnly {
		return ErrReadOnlyViolation
	}
	if t.done {
		return ErrTransactionFinished
	}
	t.pending.NodeMap[n.Key()] = n
	t.dirty[n.Key()] = DirtyCreated
	return nil
}

// RemoveNode deletes key from the pending node map and marks it dirty
// as a removal. If the node was created earlier in this same
// transaction, it is dropped from the dirty set entirely rather than
// reported as a removal — it never existed in the committed state the
// reconciler is diffing against.
func (t *Transaction) RemoveNode(key doc.NodeKey) error {
	if t.readOnly {
		return ErrReadOnlyViolation
	}
	if key == doc.RootKey {
		return doc.ErrCannotRemoveRoot
	}
	delete(t.pending.NodeMap, key)
	if t.dirty[key] == DirtyCreated {
		delete(t.dirty, key)
		return nil
	}
	t.dirty[key] = DirtyRemoved
	return nil
}

// SetSelection replaces the pending state's selection.
func (t *Transaction) SetSelection(sel doc.BaseSelection) error {
	if t.readOnly {
		return ErrReadOnlyViolation
	}
	t.pending.Selection = sel
	return nil
}

// MarkDirty records that key was structurally touched (e.g. its
// children slice changed) without being individually cloned through
// GetNodeForWrite. If key is already in the dirty set, its existing
// cause is kept.
func (t *Transaction) MarkDirty(key doc.NodeKey, cause DirtyCause) {
	if _, ok := t.dirty[key]; !ok {
		t.dirty[key] = cause
	}
}

// Finish closes the transaction and returns its pending state and dirty
// set. After Finish, further mutating calls return
// ErrTransactionFinished.
func (t *Transaction) Finish() (*doc.EditorState, map[doc.NodeKey]DirtyCause) {
	t.done = true
	return t.pending, t.dirty
}

// Rollback discards the transaction's pending state. The committed
// state handed to Begin is left untouched.
func (t *Transaction) Rollback() {
	t.done = true
	t.pending = t.committed
	t.dirty = nil
}
