package doc

// Kind is the closed set of node variants. It is a tagged sum type, not
// an open interface hierarchy: the reconciler and other visitors switch
// on Kind rather than performing virtual dispatch, which keeps the diff
// algorithm tractable and the variant set inlinable (design notes §9).
type Kind uint8

const (
	KindRoot Kind = iota + 1
	KindElement
	KindText
	KindLineBreak
	KindDecorator
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindLineBreak:
		return "linebreak"
	case KindDecorator:
		return "decorator"
	case KindUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Header is the set of attributes common to every node variant: key,
// parent back-reference, and a monotonic version bumped on every
// copy-on-write clone. parentKey is a weak association — a key looked
// up in the owning EditorState's node map, never an owning reference —
// which keeps the ownership graph acyclic by construction and keeps
// garbage collection a simple mark-from-root sweep over keys.
type Header struct {
	key       NodeKey
	hasParent bool
	parentKey NodeKey
	version   uint64
}

func newHeader(key NodeKey) Header {
	return Header{key: key}
}

// Key returns the node's stable identifier.
func (h *Header) Key() NodeKey { return h.key }

// Parent returns the parent's key and true, or the zero key and false
// if the node is detached (only Root is permanently parentless).
func (h *Header) Parent() (NodeKey, bool) { return h.parentKey, h.hasParent }

// Version returns the node's monotonic revision counter.
func (h *Header) Version() uint64 { return h.version }

func (h *Header) setParent(key NodeKey) {
	h.parentKey = key
	h.hasParent = true
}

func (h *Header) clearParent() {
	h.parentKey = 0
	h.hasParent = false
}

func (h *Header) bumpVersion() { h.version++ }

// Node is the common interface implemented by every node variant. The
// variant set is closed to this package: Node embeds an unexported
// method so external packages cannot add new variants, matching the
// "tagged sum type" guidance in the design notes.
type Node interface {
	Key() NodeKey
	Kind() Kind
	Parent() (NodeKey, bool)
	Version() uint64

	setParent(key NodeKey)
	clearParent()
	bumpVersion()
	clone() Node
	sealedNode()
}

// CloneNode returns a copy-on-write clone of n with its version bumped.
// It is the only way code outside this package may clone a node,
// keeping the clone() method itself unexported and part of the sealed
// Node interface.
func CloneNode(n Node) Node { return n.clone() }

// SetParent sets n's parent back-reference. Exported so doc/tx and
// doc/edit, which perform structural edits, can relink a cloned node
// without the Node interface's lifecycle methods becoming part of its
// public, externally-implementable surface.
func SetParent(n Node, parent NodeKey) { n.setParent(parent) }

// ClearParent detaches n from its parent.
func ClearParent(n Node) { n.clearParent() }

// BumpVersion increments n's version counter. Edit operations that
// mutate a node's fields directly (e.g. appending to an Element's
// Children slice after GetNodeForWrite) call this to record the change;
// clone() already does so for copy-on-write clones.
func BumpVersion(n Node) { n.bumpVersion() }
