package tx

import (
	"testing"

	"github.com/outlinelabs/richedit/doc"
	"github.com/stretchr/testify/require"
)

func newStateWithParagraph() (*doc.EditorState, *doc.KeyAllocator) {
	s := doc.NewEmptyState()
	keys := doc.NewKeyAllocator()

	p := doc.NewElement(keys.Next(), doc.TagParagraph)
	txt := doc.NewText(keys.Next(), "hi")
	doc.SetParent(txt, p.Key())
	p.Children = []doc.NodeKey{txt.Key()}
	doc.SetParent(p, doc.RootKey)

	root := s.Root()
	root.Children = []doc.NodeKey{p.Key()}
	s.NodeMap[p.Key()] = p
	s.NodeMap[txt.Key()] = txt
	return s, keys
}

func TestGetNodeForWriteClonesOncePerTransaction(t *testing.T) {
	committed, keys := newStateWithParagraph()
	txn := Begin(committed, keys)

	var pKey doc.NodeKey
	for k, n := range committed.NodeMap {
		if n.Kind() == doc.KindElement {
			pKey = k
		}
	}

	first, err := txn.GetNodeForWrite(pKey)
	require.NoError(t, err)
	second, err := txn.GetNodeForWrite(pKey)
	require.NoError(t, err)

	require.Same(t, first, second, "second GetNodeForWrite in the same tx must return the already-cloned instance")
	require.NotSame(t, first, committed.NodeMap[pKey], "the clone must not be the committed node")
	require.Equal(t, committed.NodeMap[pKey].Version()+1, first.Version())

	// The write is recorded as a mutation in the dirty set.
	require.Equal(t, DirtyMutated, txn.Dirty()[pKey])
}

func TestReadOnlyTransactionRejectsWrites(t *testing.T) {
	committed, _ := newStateWithParagraph()
	txn := BeginRead(committed)

	var pKey doc.NodeKey
	for k, n := range committed.NodeMap {
		if n.Kind() == doc.KindElement {
			pKey = k
		}
	}

	_, err := txn.GetNodeForWrite(pKey)
	require.ErrorIs(t, err, ErrReadOnlyViolation)

	_, err = txn.CreateKey()
	require.ErrorIs(t, err, ErrReadOnlyViolation)

	err = txn.SetSelection(&doc.RangeSelection{})
	require.ErrorIs(t, err, ErrReadOnlyViolation)
}

func TestCreatedThenRemovedInSameTxLeavesNoDirtyEntry(t *testing.T) {
	committed, keys := newStateWithParagraph()
	txn := Begin(committed, keys)

	key, err := txn.CreateKey()
	require.NoError(t, err)
	n := doc.NewText(key, "temp")
	require.NoError(t, txn.PutNode(n))
	require.Equal(t, DirtyCreated, txn.Dirty()[key])

	require.NoError(t, txn.RemoveNode(key))
	_, stillDirty := txn.Dirty()[key]
	require.False(t, stillDirty)

	_, ok := txn.Pending().Get(key)
	require.False(t, ok)
}

func TestRemovingCommittedNodeMarksDirtyRemoved(t *testing.T) {
	committed, keys := newStateWithParagraph()
	txn := Begin(committed, keys)

	var txtKey doc.NodeKey
	for k, n := range committed.NodeMap {
		if n.Kind() == doc.KindText {
			txtKey = k
		}
	}

	require.NoError(t, txn.RemoveNode(txtKey))
	require.Equal(t, DirtyRemoved, txn.Dirty()[txtKey])

	pending, dirty := txn.Finish()
	_, ok := pending.Get(txtKey)
	require.False(t, ok)
	require.Equal(t, DirtyRemoved, dirty[txtKey])

	// Committed state must be untouched by Finish.
	_, stillInCommitted := committed.Get(txtKey)
	require.True(t, stillInCommitted)
}

func TestCannotRemoveRoot(t *testing.T) {
	committed, keys := newStateWithParagraph()
	txn := Begin(committed, keys)
	err := txn.RemoveNode(doc.RootKey)
	require.ErrorIs(t, err, doc.ErrCannotRemoveRoot)
}
