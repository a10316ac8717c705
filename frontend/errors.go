package frontend

import "errors"

var (
	// ErrRangeOutOfBounds is returned by a storage mutation whose range
	// does not fit within the current buffer.
	ErrRangeOutOfBounds = errors.New("frontend: range out of bounds")
	// ErrNoMarkedText is returned by UnmarkText when nothing is marked.
	ErrNoMarkedText = errors.New("frontend: no marked text to unmark")
)
