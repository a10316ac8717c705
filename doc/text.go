package doc

// TextNode is a leaf node holding a string payload. Offsets against its
// payload (in Point, in splitText, in SetFormat ranges) are UTF-16
// code-unit offsets, matching native attributed-string indexing.
type TextNode struct {
	Header
	Text   string
	Format TextFormat
	Mode   TextMode
	Style  string
	Detail DetailFlag
}

// NewText constructs a detached Text node.
func NewText(key NodeKey, text string) *TextNode {
	return &TextNode{Header: newHeader(key), Text: text}
}

func (n *TextNode) Kind() Kind { return KindText }

func (n *TextNode) clone() Node {
	cp := *n
	cp.bumpVersion()
	return &cp
}

func (n *TextNode) sealedNode() {}

// TextLength returns the UTF-16 code-unit length of the node's payload.
func (n *TextNode) TextLength() int { return UTF16Len(n.Text) }

// IsSimpleText reports whether the node is eligible for normalization
// merges: mode must be Normal (segmented/token text is always atomic).
// Only the mode is checked; the payload is not scanned for segment
// markers.
func (n *TextNode) IsSimpleText() bool {
	return n.Mode == ModeNormal
}

// MergeableWith reports whether two Text nodes are candidates for
// normalization merging (invariant 8): both simple, equal format, equal
// mode, and equal style.
func (n *TextNode) MergeableWith(other *TextNode) bool {
	if !n.IsSimpleText() || !other.IsSimpleText() {
		return false
	}
	return n.Format == other.Format && n.Mode == other.Mode && n.Style == other.Style
}
