package selection

import (
	"testing"

	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/doc/tx"
	"github.com/outlinelabs/richedit/rangeindex"
	"github.com/stretchr/testify/require"
)

func TestInsertTextCollapsedIntoTextNode(t *testing.T) {
	s, _, t1, _, _ := buildTwoParagraphDoc()
	idx := rangeindex.NewIndex()
	require.NoError(t, idx.Rebuild(s))

	txn := tx.Begin(s, doc.NewKeyAllocator())
	sel := &doc.RangeSelection{Anchor: doc.TextPoint(t1, 1), Focus: doc.TextPoint(t1, 1)}

	next, err := InsertText(txn, idx, sel, "X")
	require.NoError(t, err)
	require.True(t, next.IsCollapsed())
	require.Equal(t, t1, next.Focus.Key, "a collapsed insertion within a text node never creates a new node")
	require.Equal(t, uint32(2), next.Focus.Offset)

	n, err := txn.GetNode(t1)
	require.NoError(t, err)
	require.Equal(t, "hXi", n.(*doc.TextNode).Text)
}

func TestInsertTextAtEmptyElementBoundary(t *testing.T) {
	s := doc.NewEmptyState()
	keys := doc.NewKeyAllocator()
	p := doc.NewElement(keys.Next(), doc.TagParagraph)
	doc.SetParent(p, doc.RootKey)
	root := s.Root()
	root.Children = []doc.NodeKey{p.Key()}
	s.NodeMap[p.Key()] = p

	idx := rangeindex.NewIndex()
	require.NoError(t, idx.Rebuild(s))

	txn := tx.Begin(s, keys)
	sel := &doc.RangeSelection{Anchor: doc.ElementPoint(p.Key(), 0), Focus: doc.ElementPoint(p.Key(), 0)}

	next, err := InsertText(txn, idx, sel, "hi")
	require.NoError(t, err)
	require.Equal(t, doc.PointText, next.Focus.Kind)
	require.Equal(t, uint32(2), next.Focus.Offset)

	pn, err := txn.GetNode(p.Key())
	require.NoError(t, err)
	children := doc.ChildrenOf(pn)
	require.Len(t, children, 1)

	textNode, err := txn.GetNode(children[0])
	require.NoError(t, err)
	require.Equal(t, "hi", textNode.(*doc.TextNode).Text)
}

func TestInsertTextReplacesNonCollapsedRange(t *testing.T) {
	s, _, t1, _, _ := buildTwoParagraphDoc()
	idx := rangeindex.NewIndex()
	require.NoError(t, idx.Rebuild(s))

	txn := tx.Begin(s, doc.NewKeyAllocator())
	sel := &doc.RangeSelection{Anchor: doc.TextPoint(t1, 0), Focus: doc.TextPoint(t1, 2)}

	next, err := InsertText(txn, idx, sel, "yo")
	require.NoError(t, err)
	require.True(t, next.IsCollapsed())

	n, err := txn.GetNode(t1)
	require.NoError(t, err)
	require.Equal(t, "yo", n.(*doc.TextNode).Text)
}
