package main

import (
	"fmt"

	"github.com/outlinelabs/richedit/doc"
)

// row is one flattened line of the document tree, in display order.
type row struct {
	key   doc.NodeKey
	depth int
	label string
}

// flattenTree walks state pre-order from Root and returns one row per
// node, depth-indented, grounded on the teacher's keytree flattening of
// a lazily-expanded registry key hierarchy into a scrollable list —
// simplified here since a document has no expand/collapse state, every
// node renders.
func flattenTree(state *doc.EditorState) []row {
	var rows []row
	var walk func(key doc.NodeKey, depth int)
	walk = func(key doc.NodeKey, depth int) {
		n, ok := state.Get(key)
		if !ok {
			return
		}
		rows = append(rows, row{key: key, depth: depth, label: describeNode(n)})
		for _, c := range doc.ChildrenOf(n) {
			walk(c, depth+1)
		}
	}
	walk(doc.RootKey, 0)
	return rows
}

func describeNode(n doc.Node) string {
	switch v := n.(type) {
	case *doc.RootNode:
		return "root"
	case *doc.ElementNode:
		return fmt.Sprintf("%s (indent=%d, format=%d)", v.Tag, v.Indent, v.Format)
	case *doc.TextNode:
		return fmt.Sprintf("text %q (format=%d)", v.Text, uint16(v.Format))
	case *doc.LineBreakNode:
		return "linebreak"
	case *doc.DecoratorNode:
		return fmt.Sprintf("decorator %q", v.Type)
	case *doc.UnknownNode:
		return fmt.Sprintf("unknown %q", v.RawType)
	default:
		return "?"
	}
}
