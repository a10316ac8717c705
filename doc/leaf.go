package doc

// LineBreakNode is a leaf that contributes exactly one newline (U+000A)
// to text storage and has no children.
type LineBreakNode struct {
	Header
}

// NewLineBreak constructs a detached LineBreak node.
func NewLineBreak(key NodeKey) *LineBreakNode {
	return &LineBreakNode{Header: newHeader(key)}
}

func (n *LineBreakNode) Kind() Kind { return KindLineBreak }

func (n *LineBreakNode) clone() Node {
	cp := *n
	cp.bumpVersion()
	return &cp
}

func (n *LineBreakNode) sealedNode() {}

// DecoratorAttachmentChar is the single UTF-16 code unit a Decorator
// contributes to text storage by default: the object replacement
// character.
const DecoratorAttachmentChar = '￼'

// DecoratorNode is a leaf wrapping an opaque embedded object whose
// rendering is delegated to the host. By default it contributes exactly
// one U+FFFC code unit to text storage.
type DecoratorNode struct {
	Header
	Type    string
	Payload any
}

// NewDecorator constructs a detached Decorator node wrapping payload.
func NewDecorator(key NodeKey, typ string, payload any) *DecoratorNode {
	return &DecoratorNode{Header: newHeader(key), Type: typ, Payload: payload}
}

func (n *DecoratorNode) Kind() Kind { return KindDecorator }

func (n *DecoratorNode) clone() Node {
	cp := *n
	cp.bumpVersion()
	return &cp
}

func (n *DecoratorNode) sealedNode() {}
