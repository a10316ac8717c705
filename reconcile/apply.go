package reconcile

// ApplyOutcome is the tri-state result of running an applier pass over
// a DeltaBatch.
type ApplyOutcome uint8

const (
	ApplySuccess ApplyOutcome = iota
	ApplyPartialSuccess
	ApplyFailure
)

// DeltaApplicationResult is Stage 3's return value.
type DeltaApplicationResult struct {
	Outcome    ApplyOutcome
	Applied    []ReconcilerDelta
	Failed     []ReconcilerDelta
	FenwickOps int
	Reason     string
}

// Transactional is an optional capability a StorageWriter may
// implement to let ApplyBatch honor the all-or-nothing guarantee on
// Failure: Snapshot is called before the batch starts, Restore is
// called if any delta fails and allowPartial is false.
// frontend.MemoryStorage implements it.
type Transactional interface {
	Snapshot() any
	Restore(any)
}

// ApplyBatch runs batch's deltas against storage in the order Stage 2
// already sorted them into. If allowPartial is false (legacy and the
// optimized path's default), any failure restores storage to its
// pre-batch snapshot (when storage is Transactional) and returns
// ApplyFailure; the caller must treat the whole transaction as failed.
// If allowPartial is true, failed deltas are skipped and reported
// rather than aborting the batch.
func ApplyBatch(batch *DeltaBatch, storage StorageWriter, allowPartial bool) DeltaApplicationResult {
	var snapshot any
	if txn, ok := storage.(Transactional); ok {
		snapshot = txn.Snapshot()
	}

	var applied, failed []ReconcilerDelta
	fenwickOps := 0

	for _, d := range batch.Deltas {
		if err := applyOne(d, storage); err != nil {
			if allowPartial {
				failed = append(failed, d)
				continue
			}
			if txn, ok := storage.(Transactional); ok {
				txn.Restore(snapshot)
			}
			return DeltaApplicationResult{Outcome: ApplyFailure, Reason: err.Error()}
		}
		applied = append(applied, d)
		fenwickOps++
	}

	if len(failed) > 0 {
		return DeltaApplicationResult{
			Outcome:    ApplyPartialSuccess,
			Applied:    applied,
			Failed:     failed,
			FenwickOps: fenwickOps,
			Reason:     "one or more deltas failed to apply",
		}
	}
	return DeltaApplicationResult{Outcome: ApplySuccess, Applied: applied, FenwickOps: fenwickOps}
}

func applyOne(d ReconcilerDelta, storage StorageWriter) error {
	switch d.Kind {
	case DeltaTextUpdate:
		return storage.Replace(d.Range, d.NewText, nil)
	case DeltaNodeInsertion:
		return storage.Insert(d.Location, d.Preamble+d.Content+d.Postamble, nil)
	case DeltaNodeDeletion:
		return storage.Delete(d.Range)
	case DeltaAttributeChange:
		return storage.SetAttributes(d.Attrs, d.Range)
	case DeltaAnchorUpdate:
		return nil
	default:
		return ErrInvariantViolation
	}
}
