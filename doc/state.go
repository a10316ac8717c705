package doc

// EditorState is an immutable snapshot of the document: a node map plus
// an optional selection. A new EditorState is produced per committed
// transaction; nothing in this package mutates one in place once it has
// been handed to an Editor as the committed state.
type EditorState struct {
	NodeMap   map[NodeKey]Node
	Selection BaseSelection
}

// NewEmptyState returns a state containing only a Root with no
// children and no selection.
func NewEmptyState() *EditorState {
	root := NewRoot()
	return &EditorState{
		NodeMap: map[NodeKey]Node{RootKey: root},
	}
}

// ShallowCopy returns a new EditorState whose NodeMap is a fresh map
// with the same Node values (not deep-cloned). This is the entry point
// for copy-on-write: a transaction starts from a ShallowCopy of the
// committed state and only clones individual nodes it actually touches.
func (s *EditorState) ShallowCopy() *EditorState {
	cp := &EditorState{NodeMap: make(map[NodeKey]Node, len(s.NodeMap))}
	for k, v := range s.NodeMap {
		cp.NodeMap[k] = v
	}
	if s.Selection != nil {
		cp.Selection = s.Selection.Clone()
	}
	return cp
}

// Get returns the node for key, or nil and false if absent.
func (s *EditorState) Get(key NodeKey) (Node, bool) {
	n, ok := s.NodeMap[key]
	return n, ok
}

// Root returns the state's Root node. It panics if the invariant that
// exactly one Root exists under RootKey has been violated, since every
// code path that constructs an EditorState is responsible for
// maintaining it.
func (s *EditorState) Root() *RootNode {
	n, ok := s.NodeMap[RootKey]
	if !ok {
		panic("doc: state has no root node")
	}
	r, ok := n.(*RootNode)
	if !ok {
		panic("doc: key 0 is not a RootNode")
	}
	return r
}

// Element returns the node for key as *ElementNode, or ErrNotElement if
// it exists but has a different kind, or ErrKeyNotFound if absent.
func (s *EditorState) Element(key NodeKey) (*ElementNode, error) {
	n, ok := s.NodeMap[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	if e, ok := n.(*ElementNode); ok {
		return e, nil
	}
	return nil, ErrNotElement
}

// Text returns the node for key as *TextNode, or ErrNotText if it
// exists but has a different kind, or ErrKeyNotFound if absent.
func (s *EditorState) Text(key NodeKey) (*TextNode, error) {
	n, ok := s.NodeMap[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	if t, ok := n.(*TextNode); ok {
		return t, nil
	}
	return nil, ErrNotText
}

// ChildrenOf returns the ordered child keys of an Element or Root node,
// or nil for a leaf.
func ChildrenOf(n Node) []NodeKey {
	switch v := n.(type) {
	case *RootNode:
		return v.Children
	case *ElementNode:
		return v.Children
	case *UnknownNode:
		return v.Children
	default:
		return nil
	}
}

// Walk performs a pre-order traversal of the live tree starting at
// root's children, calling visit for every reachable node (including
// root itself first). Traversal stops and returns visit's error if
// visit returns non-nil.
func Walk(s *EditorState, visit func(Node) error) error {
	var walk func(key NodeKey) error
	walk = func(key NodeKey) error {
		n, ok := s.Get(key)
		if !ok {
			return ErrKeyNotFound
		}
		if err := visit(n); err != nil {
			return err
		}
		for _, c := range ChildrenOf(n) {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(RootKey)
}
