package selection

import (
	"testing"

	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/doc/tx"
	"github.com/outlinelabs/richedit/rangeindex"
	"github.com/stretchr/testify/require"
)

func TestRemoveRangeSameNodeSplice(t *testing.T) {
	s, _, t1, _, _ := buildTwoParagraphDoc()
	idx := rangeindex.NewIndex()
	require.NoError(t, idx.Rebuild(s))

	txn := tx.Begin(s, doc.NewKeyAllocator())
	caret, err := RemoveRange(txn, idx, doc.TextPoint(t1, 0), doc.TextPoint(t1, 1))
	require.NoError(t, err)
	require.Equal(t, doc.TextPoint(t1, 0), caret)

	n, err := txn.GetNode(t1)
	require.NoError(t, err)
	require.Equal(t, "i", n.(*doc.TextNode).Text)
}

func TestRemoveRangeSpansMultipleLeaves(t *testing.T) {
	s, _, t1, _, t2 := buildTwoParagraphDoc()
	idx := rangeindex.NewIndex()
	require.NoError(t, idx.Rebuild(s))

	txn := tx.Begin(s, doc.NewKeyAllocator())
	// select from "h|i" through "by|e": removes the rest of p1's text
	// and the "by" prefix of p2's text; the paragraphs are not merged.
	caret, err := RemoveRange(txn, idx, doc.TextPoint(t1, 1), doc.TextPoint(t2, 2))
	require.NoError(t, err)
	require.Equal(t, doc.TextPoint(t1, 1), caret)

	n1, err := txn.GetNode(t1)
	require.NoError(t, err)
	require.Equal(t, "h", n1.(*doc.TextNode).Text)

	n2, err := txn.GetNode(t2)
	require.NoError(t, err)
	require.Equal(t, "e", n2.(*doc.TextNode).Text)
}

func TestDeleteCharacterNonCollapsedRemovesRange(t *testing.T) {
	s, _, t1, _, _ := buildTwoParagraphDoc()
	idx := rangeindex.NewIndex()
	require.NoError(t, idx.Rebuild(s))

	txn := tx.Begin(s, doc.NewKeyAllocator())
	sel := &doc.RangeSelection{Anchor: doc.TextPoint(t1, 0), Focus: doc.TextPoint(t1, 2)}

	next, err := DeleteCharacter(txn, idx, sel, true)
	require.NoError(t, err)
	require.True(t, next.IsCollapsed())
	require.Equal(t, doc.TextPoint(t1, 0), next.Focus)

	n, err := txn.GetNode(t1)
	require.NoError(t, err)
	require.Equal(t, "", n.(*doc.TextNode).Text)
}

func TestDeleteCharacterSingleGraphemeBackward(t *testing.T) {
	s := doc.NewEmptyState()
	keys := doc.NewKeyAllocator()
	p := doc.NewElement(keys.Next(), doc.TagParagraph)
	doc.SetParent(p, doc.RootKey)
	word := doc.NewText(keys.Next(), "hello")
	doc.SetParent(word, p.Key())
	p.Children = []doc.NodeKey{word.Key()}
	s.Root().Children = []doc.NodeKey{p.Key()}
	s.NodeMap[p.Key()] = p
	s.NodeMap[word.Key()] = word

	idx := rangeindex.NewIndex()
	require.NoError(t, idx.Rebuild(s))

	txn := tx.Begin(s, keys)
	sel := &doc.RangeSelection{Anchor: doc.TextPoint(word.Key(), 3), Focus: doc.TextPoint(word.Key(), 3)}

	next, err := DeleteCharacter(txn, idx, sel, false)
	require.NoError(t, err)
	require.Equal(t, doc.TextPoint(word.Key(), 2), next.Focus)

	n, err := txn.GetNode(word.Key())
	require.NoError(t, err)
	require.Equal(t, "helo", n.(*doc.TextNode).Text)
}

func TestDeleteCharacterSingleGraphemeForward(t *testing.T) {
	s := doc.NewEmptyState()
	keys := doc.NewKeyAllocator()
	p := doc.NewElement(keys.Next(), doc.TagParagraph)
	doc.SetParent(p, doc.RootKey)
	word := doc.NewText(keys.Next(), "hello")
	doc.SetParent(word, p.Key())
	p.Children = []doc.NodeKey{word.Key()}
	s.Root().Children = []doc.NodeKey{p.Key()}
	s.NodeMap[p.Key()] = p
	s.NodeMap[word.Key()] = word

	idx := rangeindex.NewIndex()
	require.NoError(t, idx.Rebuild(s))

	txn := tx.Begin(s, keys)
	sel := &doc.RangeSelection{Anchor: doc.TextPoint(word.Key(), 2), Focus: doc.TextPoint(word.Key(), 2)}

	next, err := DeleteCharacter(txn, idx, sel, true)
	require.NoError(t, err)
	require.Equal(t, doc.TextPoint(word.Key(), 2), next.Focus)

	n, err := txn.GetNode(word.Key())
	require.NoError(t, err)
	require.Equal(t, "helo", n.(*doc.TextNode).Text)
}

func TestDeleteCharacterBackwardConsumesLineBreak(t *testing.T) {
	s := doc.NewEmptyState()
	keys := doc.NewKeyAllocator()
	p := doc.NewElement(keys.Next(), doc.TagParagraph)
	doc.SetParent(p, doc.RootKey)
	a := doc.NewText(keys.Next(), "a")
	lb := doc.NewLineBreak(keys.Next())
	b := doc.NewText(keys.Next(), "b")
	doc.SetParent(a, p.Key())
	doc.SetParent(lb, p.Key())
	doc.SetParent(b, p.Key())
	p.Children = []doc.NodeKey{a.Key(), lb.Key(), b.Key()}
	s.Root().Children = []doc.NodeKey{p.Key()}
	s.NodeMap[p.Key()] = p
	s.NodeMap[a.Key()] = a
	s.NodeMap[lb.Key()] = lb
	s.NodeMap[b.Key()] = b

	idx := rangeindex.NewIndex()
	require.NoError(t, idx.Rebuild(s))

	txn := tx.Begin(s, keys)
	sel := &doc.RangeSelection{Anchor: doc.TextPoint(b.Key(), 0), Focus: doc.TextPoint(b.Key(), 0)}

	next, err := DeleteCharacter(txn, idx, sel, false)
	require.NoError(t, err)
	require.Equal(t, doc.TextPoint(b.Key(), 0), next.Focus)

	pn, err := txn.GetNode(p.Key())
	require.NoError(t, err)
	require.Equal(t, []doc.NodeKey{a.Key(), b.Key()}, doc.ChildrenOf(pn))
}

func TestDeleteCharacterBackwardMergesTextSiblings(t *testing.T) {
	s := doc.NewEmptyState()
	keys := doc.NewKeyAllocator()
	p := doc.NewElement(keys.Next(), doc.TagParagraph)
	doc.SetParent(p, doc.RootKey)
	a := doc.NewText(keys.Next(), "hello")
	b := doc.NewText(keys.Next(), "world")
	doc.SetParent(a, p.Key())
	doc.SetParent(b, p.Key())
	p.Children = []doc.NodeKey{a.Key(), b.Key()}
	s.Root().Children = []doc.NodeKey{p.Key()}
	s.NodeMap[p.Key()] = p
	s.NodeMap[a.Key()] = a
	s.NodeMap[b.Key()] = b

	idx := rangeindex.NewIndex()
	require.NoError(t, idx.Rebuild(s))

	txn := tx.Begin(s, keys)
	sel := &doc.RangeSelection{Anchor: doc.TextPoint(b.Key(), 0), Focus: doc.TextPoint(b.Key(), 0)}

	next, err := DeleteCharacter(txn, idx, sel, false)
	require.NoError(t, err)
	require.Equal(t, doc.TextPoint(a.Key(), 5), next.Focus)

	an, err := txn.GetNode(a.Key())
	require.NoError(t, err)
	require.Equal(t, "helloworld", an.(*doc.TextNode).Text)

	pn, err := txn.GetNode(p.Key())
	require.NoError(t, err)
	require.Equal(t, []doc.NodeKey{a.Key()}, doc.ChildrenOf(pn))
}

func TestDeleteCharacterForwardMergesTextSiblings(t *testing.T) {
	s := doc.NewEmptyState()
	keys := doc.NewKeyAllocator()
	p := doc.NewElement(keys.Next(), doc.TagParagraph)
	doc.SetParent(p, doc.RootKey)
	a := doc.NewText(keys.Next(), "hello")
	b := doc.NewText(keys.Next(), "world")
	doc.SetParent(a, p.Key())
	doc.SetParent(b, p.Key())
	p.Children = []doc.NodeKey{a.Key(), b.Key()}
	s.Root().Children = []doc.NodeKey{p.Key()}
	s.NodeMap[p.Key()] = p
	s.NodeMap[a.Key()] = a
	s.NodeMap[b.Key()] = b

	idx := rangeindex.NewIndex()
	require.NoError(t, idx.Rebuild(s))

	txn := tx.Begin(s, keys)
	sel := &doc.RangeSelection{Anchor: doc.TextPoint(a.Key(), 5), Focus: doc.TextPoint(a.Key(), 5)}

	next, err := DeleteCharacter(txn, idx, sel, true)
	require.NoError(t, err)
	require.Equal(t, doc.TextPoint(a.Key(), 5), next.Focus)

	an, err := txn.GetNode(a.Key())
	require.NoError(t, err)
	require.Equal(t, "helloworld", an.(*doc.TextNode).Text)
}

func TestDeleteCharacterBackwardMergesParagraphs(t *testing.T) {
	s, p1, t1, p2, t2 := buildTwoParagraphDoc()
	idx := rangeindex.NewIndex()
	require.NoError(t, idx.Rebuild(s))

	txn := tx.Begin(s, doc.NewKeyAllocator())
	sel := &doc.RangeSelection{Anchor: doc.TextPoint(t2, 0), Focus: doc.TextPoint(t2, 0)}

	next, err := DeleteCharacter(txn, idx, sel, false)
	require.NoError(t, err)
	require.Equal(t, doc.TextPoint(t1, 2), next.Focus)

	t1n, err := txn.GetNode(t1)
	require.NoError(t, err)
	require.Equal(t, "hibye", t1n.(*doc.TextNode).Text)

	p1n, err := txn.GetNode(p1)
	require.NoError(t, err)
	require.Equal(t, []doc.NodeKey{t1}, doc.ChildrenOf(p1n))

	root, err := txn.GetNode(doc.RootKey)
	require.NoError(t, err)
	require.Equal(t, []doc.NodeKey{p1}, doc.ChildrenOf(root))

	_ = p2
}
