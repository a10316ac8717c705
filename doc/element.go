package doc

// ElementNode is an ordered container of child nodes. Its Tag names the
// subvariant (paragraph, heading, quote, code block, list, list-item, or
// a user-defined block/inline type) and decides block-ness through
// ElementTag.IsBlock. doc/edit has no per-tag preUpdate/postUpdate
// hooks: every tag is edited by the same operations.
type ElementNode struct {
	Header
	Children  []NodeKey
	Tag       ElementTag
	Format    ElementFormat
	Indent    int
	Direction *Direction
}

// NewElement constructs a detached Element node of the given tag.
func NewElement(key NodeKey, tag ElementTag) *ElementNode {
	return &ElementNode{Header: newHeader(key), Tag: tag}
}

func (n *ElementNode) Kind() Kind { return KindElement }

func (n *ElementNode) clone() Node {
	cp := *n
	cp.Children = append([]NodeKey(nil), n.Children...)
	if n.Direction != nil {
		d := *n.Direction
		cp.Direction = &d
	}
	cp.bumpVersion()
	return &cp
}

func (n *ElementNode) sealedNode() {}

// IndexOf returns the child index of key, or -1 if key is not a direct
// child.
func (n *ElementNode) IndexOf(key NodeKey) int {
	for i, c := range n.Children {
		if c == key {
			return i
		}
	}
	return -1
}
