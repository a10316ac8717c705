package tx

import "errors"

var (
	// ErrReadOnlyViolation indicates a write was attempted against a
	// Transaction opened with BeginRead.
	ErrReadOnlyViolation = errors.New("tx: write attempted in a read-only transaction")

	// ErrTransactionFinished indicates an operation was attempted after
	// Finish or Rollback already closed the transaction.
	ErrTransactionFinished = errors.New("tx: transaction already finished")
)
