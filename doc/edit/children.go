package edit

import "github.com/outlinelabs/richedit/doc"

// childrenOf returns the ordered child keys of a container node (Root,
// Element, or Unknown-with-children), or ErrNotElement for a leaf.
func childrenOf(n doc.Node) ([]doc.NodeKey, error) {
	switch v := n.(type) {
	case *doc.RootNode:
		return v.Children, nil
	case *doc.ElementNode:
		return v.Children, nil
	case *doc.UnknownNode:
		return v.Children, nil
	default:
		return nil, doc.ErrNotElement
	}
}

// setChildrenOf replaces a container node's child list in place.
func setChildrenOf(n doc.Node, children []doc.NodeKey) error {
	switch v := n.(type) {
	case *doc.RootNode:
		v.Children = children
	case *doc.ElementNode:
		v.Children = children
	case *doc.UnknownNode:
		v.Children = children
	default:
		return doc.ErrNotElement
	}
	doc.BumpVersion(n)
	return nil
}

func indexOfChild(children []doc.NodeKey, key doc.NodeKey) int {
	for i, c := range children {
		if c == key {
			return i
		}
	}
	return -1
}

func removeAt(children []doc.NodeKey, idx int) []doc.NodeKey {
	out := make([]doc.NodeKey, 0, len(children)-1)
	out = append(out, children[:idx]...)
	out = append(out, children[idx+1:]...)
	return out
}

func insertAt(children []doc.NodeKey, idx int, key doc.NodeKey) []doc.NodeKey {
	out := make([]doc.NodeKey, 0, len(children)+1)
	out = append(out, children[:idx]...)
	out = append(out, key)
	out = append(out, children[idx:]...)
	return out
}
