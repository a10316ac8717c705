package reconcile

import "errors"

// ErrInvariantViolation is returned by the applier for a delta of
// unknown kind, which fails the enclosing batch.
var ErrInvariantViolation = errors.New("reconcile: invariant violation")

// ErrApplierFailure names an unrecoverable applier error. ApplyBatch
// does not return it: it reports a failed batch through
// DeltaApplicationResult's Outcome and Reason instead.
var ErrApplierFailure = errors.New("reconcile: delta application failed")
