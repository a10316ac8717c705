package doc

// UnknownNode preserves an unrecognized serialized node verbatim so
// round-tripping a foreign document format does not lose data. RawType
// is the foreign type discriminator and RawAttrs its variant-specific
// attribute bag, both carried opaquely through serialize.ToJSON /
// FromJSON without interpretation.
type UnknownNode struct {
	Header
	RawType  string
	RawAttrs map[string]any
	Children []NodeKey
}

// NewUnknown constructs a detached Unknown node.
func NewUnknown(key NodeKey, rawType string, attrs map[string]any) *UnknownNode {
	return &UnknownNode{Header: newHeader(key), RawType: rawType, RawAttrs: attrs}
}

func (n *UnknownNode) Kind() Kind { return KindUnknown }

func (n *UnknownNode) clone() Node {
	cp := *n
	cp.Children = append([]NodeKey(nil), n.Children...)
	attrs := make(map[string]any, len(n.RawAttrs))
	for k, v := range n.RawAttrs {
		attrs[k] = v
	}
	cp.RawAttrs = attrs
	cp.bumpVersion()
	return &cp
}

func (n *UnknownNode) sealedNode() {}
