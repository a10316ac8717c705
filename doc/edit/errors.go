package edit

import "errors"

// ErrOffsetOutOfRange indicates a child-offset or text-offset argument
// fell outside the valid range for the target node.
var ErrOffsetOutOfRange = errors.New("edit: offset out of range")
