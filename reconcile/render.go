package reconcile

import "github.com/outlinelabs/richedit/doc"

// RenderSubtree flattens key's subtree into the preamble/content/
// postamble triple a NodeInsertion delta or the legacy reconciler
// needs, recursively rendering children for a container. followedByBlockSibling
// only affects an Element's own postamble.
func RenderSubtree(state *doc.EditorState, key doc.NodeKey, followedByBlockSibling bool) (pre, content, post string, isDecorator bool, err error) {
	n, ok := state.Get(key)
	if !ok {
		return "", "", "", false, doc.ErrKeyNotFound
	}

	switch v := n.(type) {
	case *doc.RootNode:
		content, err = renderChildren(state, v.Children)
		return "", content, "", false, err

	case *doc.ElementNode:
		content, err = renderChildren(state, v.Children)
		if err != nil {
			return "", "", "", false, err
		}
		postamble := ""
		if v.Tag.IsBlock() && followedByBlockSibling {
			postamble = "\n"
		}
		return "", content, postamble, false, nil

	case *doc.TextNode:
		return "", v.Text, "", false, nil

	case *doc.LineBreakNode:
		return "", "\n", "", false, nil

	case *doc.DecoratorNode:
		return "", string(rune(doc.DecoratorAttachmentChar)), "", true, nil

	case *doc.UnknownNode:
		content, err = renderChildren(state, v.Children)
		return "", content, "", false, err

	default:
		return "", "", "", false, doc.ErrKeyNotFound
	}
}

func renderChildren(state *doc.EditorState, children []doc.NodeKey) (string, error) {
	out := ""
	for i, c := range children {
		followedByBlock := i+1 < len(children) && isBlockElement(state, children[i+1])
		pre, content, post, _, err := RenderSubtree(state, c, followedByBlock)
		if err != nil {
			return "", err
		}
		out += pre + content + post
	}
	return out, nil
}

func isBlockElement(state *doc.EditorState, key doc.NodeKey) bool {
	n, ok := state.Get(key)
	if !ok {
		return false
	}
	el, ok := n.(*doc.ElementNode)
	return ok && el.Tag.IsBlock()
}
