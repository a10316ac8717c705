// Package tx implements the update-transaction protocol: a scoped
// mutation context over a doc.EditorState that tracks which nodes were
// touched and clones them copy-on-write.
//
// # Overview
//
// A Transaction is opened against a committed EditorState, mutated by
// node-editing code in doc/edit, and then handed to the reconciler. The
// protocol mirrors the teacher repository's tx.Manager sequence-number
// protocol (Begin increments a pending counter, Commit only advances
// the visible counter once every side effect has landed), generalized
// from on-disk REGF sequence numbers to in-memory pending/committed
// EditorState versions:
//
//  1. Begin — snapshot the committed state into a pending copy.
//  2. [node edits, tracked by the dirty set]
//  3. Reconcile and commit — the caller (editor.Editor) reads Pending
//     and Dirty for reconciliation and swaps pending into committed
//     only after the reconciler succeeds. Finish returns the same pair
//     and closes the transaction; editor.Editor does not call it.
//
// # Crash Recovery
//
// There is no crash recovery in an in-memory editor; the analogous
// failure mode is an error returned from the update body (or from
// normalization or reconciliation). Editor handles that by returning
// before the commit and leaving the previously committed state
// untouched, the in-memory equivalent of the teacher's
// "PrimarySeq != SecondarySeq means an incomplete transaction." A panic
// in the update body is not recovered.
//
// # Thread Safety
//
// A Transaction is NOT thread-safe, matching §5 of the specification:
// the whole core is single-threaded cooperative, pinned to one host
// thread.
package tx
