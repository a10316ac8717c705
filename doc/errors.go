package doc

import "errors"

var (
	// ErrParentMissing indicates an operation against a node whose parent
	// key does not resolve to a present Element in the node map.
	ErrParentMissing = errors.New("doc: parent missing")

	// ErrCycleDetected indicates an append/insert would make an ancestor
	// a descendant of itself.
	ErrCycleDetected = errors.New("doc: cycle detected")

	// ErrKeyNotFound indicates the given NodeKey is not present in the
	// node map.
	ErrKeyNotFound = errors.New("doc: key not found")

	// ErrCannotRemoveRoot indicates an attempt to remove or reparent the
	// singleton Root node.
	ErrCannotRemoveRoot = errors.New("doc: cannot remove root")

	// ErrNotElement indicates an operation requiring child-holding
	// behavior was applied to a leaf node.
	ErrNotElement = errors.New("doc: node is not an element")

	// ErrNotText indicates a text-only operation was applied to a
	// non-text node.
	ErrNotText = errors.New("doc: node is not a text node")
)
