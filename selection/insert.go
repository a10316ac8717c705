package selection

import (
	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/doc/edit"
	"github.com/outlinelabs/richedit/doc/tx"
	"github.com/outlinelabs/richedit/rangeindex"
)

// InsertText replaces sel's range with s and returns the collapsed
// selection that results. A non-collapsed sel is removed first. The
// returned point is always a Text point: when sel starts out as a
// collapsed Text point, that same Text node receives s; a collapsed
// Element point gets a new Text node.
func InsertText(t *tx.Transaction, idx *rangeindex.Index, sel *doc.RangeSelection, s string) (*doc.RangeSelection, error) {
	at := sel.Focus
	if !sel.IsCollapsed() {
		collapsed, err := RemoveRange(t, idx, sel.Anchor, sel.Focus)
		if err != nil {
			return nil, err
		}
		at = collapsed
	}

	newPoint, err := insertAt(t, at, s)
	if err != nil {
		return nil, err
	}
	return &doc.RangeSelection{Anchor: newPoint, Focus: newPoint, Format: sel.Format, Style: sel.Style}, nil
}

// insertAt splices s into the document at p, returning the point
// immediately after the inserted text.
func insertAt(t *tx.Transaction, p doc.Point, s string) (doc.Point, error) {
	if p.Kind == doc.PointText {
		n, err := t.GetNodeForWrite(p.Key)
		if err != nil {
			return doc.Point{}, err
		}
		tn, ok := n.(*doc.TextNode)
		if !ok {
			return doc.Point{}, doc.ErrNotText
		}
		before := doc.UTF16Slice(tn.Text, 0, int(p.Offset))
		after := doc.UTF16Slice(tn.Text, int(p.Offset), tn.TextLength())
		tn.Text = before + s + after
		return doc.TextPoint(p.Key, p.Offset+uint32(doc.UTF16Len(s))), nil
	}

	// PointElement: splice a fresh Text node in at the child index.
	newText, err := edit.NewTextNode(t, s)
	if err != nil {
		return doc.Point{}, err
	}
	childKey, hasChildAt, err := edit.GetDescendantByOffset(t, p.Key, int(p.Offset))
	if err != nil {
		return doc.Point{}, err
	}
	if hasChildAt {
		if err := edit.InsertBefore(t, childKey, newText.Key()); err != nil {
			return doc.Point{}, err
		}
	} else if err := edit.Append(t, p.Key, newText.Key()); err != nil {
		return doc.Point{}, err
	}
	return doc.TextPoint(newText.Key(), uint32(newText.TextLength())), nil
}
