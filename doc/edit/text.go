package edit

import (
	"golang.org/x/text/unicode/norm"

	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/doc/tx"
)

// SetText replaces a Text node's payload, normalizing it to NFC first
// so composed and decomposed input from different IMEs store and
// compare identically.
func SetText(t *tx.Transaction, key doc.NodeKey, text string) error {
	n, err := t.GetNodeForWrite(key)
	if err != nil {
		return err
	}
	tn, ok := n.(*doc.TextNode)
	if !ok {
		return doc.ErrNotText
	}
	tn.Text = norm.NFC.String(text)
	return nil
}

// SetFormat replaces a Text node's format bitset wholesale.
func SetFormat(t *tx.Transaction, key doc.NodeKey, format doc.TextFormat) error {
	n, err := t.GetNodeForWrite(key)
	if err != nil {
		return err
	}
	tn, ok := n.(*doc.TextNode)
	if !ok {
		return doc.ErrNotText
	}
	tn.Format = format
	return nil
}

// ToggleFormat flips the given format bits on a Text node.
func ToggleFormat(t *tx.Transaction, key doc.NodeKey, bits doc.TextFormat) error {
	n, err := t.GetNodeForWrite(key)
	if err != nil {
		return err
	}
	tn, ok := n.(*doc.TextNode)
	if !ok {
		return doc.ErrNotText
	}
	tn.Format ^= bits
	return nil
}

// SplitText splits a Text node at the given UTF-16 code-unit offsets
// (which must be sorted ascending and within [0, len]) into len(offsets)+1
// sibling Text nodes inserted in the original node's place, preserving
// format/mode/style/detail on every piece. It returns the keys of the
// resulting pieces in order; the original node's key is always reused
// for the first piece, which is empty when offsets[0] == 0.
func SplitText(t *tx.Transaction, key doc.NodeKey, offsets []uint32) ([]doc.NodeKey, error) {
	n, err := t.GetNodeForWrite(key)
	if err != nil {
		return nil, err
	}
	tn, ok := n.(*doc.TextNode)
	if !ok {
		return nil, doc.ErrNotText
	}

	total := uint32(tn.TextLength())
	prev := uint32(0)
	bounds := make([]uint32, 0, len(offsets)+2)
	bounds = append(bounds, 0)
	for _, o := range offsets {
		if o < prev || o > total {
			return nil, ErrOffsetOutOfRange
		}
		bounds = append(bounds, o)
		prev = o
	}
	bounds = append(bounds, total)

	pieces := make([]string, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		pieces = append(pieces, doc.UTF16Slice(tn.Text, int(bounds[i]), int(bounds[i+1])))
	}

	keys := make([]doc.NodeKey, len(pieces))
	keys[0] = key
	tn.Text = pieces[0]

	if _, hasParent := tn.Parent(); !hasParent {
		return nil, doc.ErrParentMissing
	}

	insertAfterKey := key
	for i := 1; i < len(pieces); i++ {
		piece, err := NewTextNode(t, pieces[i])
		if err != nil {
			return nil, err
		}
		piece.Format = tn.Format
		piece.Mode = tn.Mode
		piece.Style = tn.Style
		piece.Detail = tn.Detail
		if err := InsertAfter(t, insertAfterKey, piece.Key()); err != nil {
			return nil, err
		}
		keys[i] = piece.Key()
		insertAfterKey = piece.Key()
	}
	return keys, nil
}
