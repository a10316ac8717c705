package rangeindex

import "errors"

// ErrPointOutOfRange indicates a Point's offset violates the
// document's current bounds.
var ErrPointOutOfRange = errors.New("rangeindex: point out of range")

// ErrLocationOutOfRange indicates an absolute location exceeds the
// document's total text-storage length.
var ErrLocationOutOfRange = errors.New("rangeindex: location out of range")

// ErrNodeNotIndexed indicates a query referenced a node with no
// RangeCacheItem, i.e. one the index has never seen.
var ErrNodeNotIndexed = errors.New("rangeindex: node not indexed")
