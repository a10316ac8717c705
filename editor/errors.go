package editor

import "errors"

var (
	// ErrReconcileFailed indicates reconcile.Reconcile reported
	// ApplyFailure; the update's edits are discarded and the committed
	// state is left unchanged.
	ErrReconcileFailed = errors.New("editor: reconcile failed, update discarded")
	// ErrSanityCheckFailed indicates Config.SanityChecks is on and
	// diagnostics.CheckState found a violation after a successful
	// reconcile. The committed state still reflects the update; the
	// violation means the index or storage has drifted from it.
	ErrSanityCheckFailed = errors.New("editor: sanity check failed after reconcile")
)
