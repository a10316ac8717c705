package reconcile

import "github.com/outlinelabs/richedit/rangeindex"

// StorageWriter is the narrow slice of the host's attributed-string
// handle the appliers need. frontend.Frontend implementations satisfy
// this interface structurally; reconcile never imports frontend, to
// keep the dependency direction core -> storage rather than
// core -> frontend -> core.
type StorageWriter interface {
	Replace(rng rangeindex.Range, text string, attrs map[string]any) error
	Insert(location int64, text string, attrs map[string]any) error
	Delete(rng rangeindex.Range) error
	SetAttributes(attrs map[string]any, rng rangeindex.Range) error
}
