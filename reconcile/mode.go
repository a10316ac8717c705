package reconcile

import (
	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/doc/tx"
	"github.com/outlinelabs/richedit/rangeindex"
)

// ReconcilerMode selects which reconciliation strategy Reconcile runs.
type ReconcilerMode uint8

const (
	// ModeOptimized runs the keyed-diff pipeline (Stages 1-4).
	ModeOptimized ReconcilerMode = iota
	// ModeLegacy rebuilds the whole document on every update.
	ModeLegacy
	// ModeDarkLaunch runs the optimized pipeline for comparison, then
	// discards its text-storage effect and commits the legacy result
	// instead, reporting how the two disagreed.
	ModeDarkLaunch
)

// ParityReport is ModeDarkLaunch's output: a coarse comparison between
// what the optimized pipeline would have produced and what the legacy
// rebuild actually committed. It only compares total text-storage
// length, the one quantity reconcile can check without a read-capable
// StorageWriter. Rendered content is not compared.
type ParityReport struct {
	OptimizedOutcome    ApplyOutcome
	OptimizedTotalAfter int64
	LegacyTotalAfter    int64
	LengthsAgree        bool
}

// Reconcile dispatches to the mode's strategy. ModeDarkLaunch requires
// storage to implement Transactional so the optimized attempt's writes
// can be rolled back before the legacy rebuild commits; callers that
// pass a non-Transactional storage in ModeDarkLaunch get ModeLegacy's
// behavior with an empty ParityReport.
func Reconcile(mode ReconcilerMode, committed, pending *doc.EditorState, dirty map[doc.NodeKey]tx.DirtyCause, idx *rangeindex.Index, storage StorageWriter, allowPartial bool) (DeltaApplicationResult, *ParityReport, error) {
	switch mode {
	case ModeOptimized:
		result, err := ReconcileOptimized(committed, pending, dirty, idx, storage, allowPartial)
		return result, nil, err

	case ModeLegacy:
		result, err := ReconcileLegacy(pending, idx, storage)
		return result, nil, err

	case ModeDarkLaunch:
		txn, ok := storage.(Transactional)
		if !ok {
			result, err := ReconcileLegacy(pending, idx, storage)
			return result, nil, err
		}

		snapshot := txn.Snapshot()
		optResult, err := ReconcileOptimized(committed, pending, dirty, idx, storage, allowPartial)
		if err != nil {
			txn.Restore(snapshot)
			return optResult, nil, err
		}
		optTotal := idx.TotalLength()
		txn.Restore(snapshot)
		// idx now reflects the discarded optimized attempt, not the
		// storage content Restore just put back; resync it against
		// committed (which Restore's snapshot corresponds to) before
		// legacy computes the range it is about to replace.
		if err := idx.Rebuild(committed); err != nil {
			return DeltaApplicationResult{}, nil, err
		}

		legacyResult, err := ReconcileLegacy(pending, idx, storage)
		if err != nil {
			return legacyResult, nil, err
		}
		legacyTotal := idx.TotalLength()

		report := &ParityReport{
			OptimizedOutcome:    optResult.Outcome,
			OptimizedTotalAfter: optTotal,
			LegacyTotalAfter:    legacyTotal,
			LengthsAgree:        optTotal == legacyTotal,
		}
		return legacyResult, report, nil

	default:
		result, err := ReconcileLegacy(pending, idx, storage)
		return result, nil, err
	}
}
