package serialize

import "errors"

var (
	// ErrNotRootNode is returned by FromJSON when the top-level JSON
	// value's "type" is not "root".
	ErrNotRootNode = errors.New("serialize: top-level node is not a root")
	// ErrNestedRoot is returned by FromJSON when a "root"-typed node
	// appears anywhere but the top level.
	ErrNestedRoot = errors.New("serialize: root node cannot appear as a child")
	// ErrUnknownNodeType is returned by FromJSON when a node's "type"
	// field names none of the recognized variants.
	ErrUnknownNodeType = errors.New("serialize: unrecognized node type")
	// ErrUnknownDirection is returned by FromJSON when an element's
	// "direction" field is set but is neither "ltr" nor "rtl".
	ErrUnknownDirection = errors.New("serialize: unrecognized direction")
)
