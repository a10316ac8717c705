package reconcile

import (
	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/rangeindex"
)

// ReconcileLegacy rebuilds the whole document's text storage from
// scratch: render pending's entire tree, replace storage's full
// existing range with the result, and rebuild idx. It never inspects
// dirty, matching the "no diffing" behavior the optimized path exists
// to avoid; correctness instead of incrementality is the point.
func ReconcileLegacy(pending *doc.EditorState, idx *rangeindex.Index, storage StorageWriter) (DeltaApplicationResult, error) {
	oldTotal := idx.TotalLength()

	_, content, _, _, err := RenderSubtree(pending, doc.RootKey, false)
	if err != nil {
		return DeltaApplicationResult{}, err
	}

	fullRange := rangeindex.Range{Start: 0, End: oldTotal}
	if err := storage.Replace(fullRange, content, nil); err != nil {
		return DeltaApplicationResult{Outcome: ApplyFailure, Reason: err.Error()}, nil
	}

	if err := idx.Rebuild(pending); err != nil {
		return DeltaApplicationResult{}, err
	}

	return DeltaApplicationResult{Outcome: ApplySuccess}, nil
}
