// Package editor wires doc, doc/tx, doc/edit, rangeindex, reconcile,
// selection, frontend, command and diagnostics together into a single
// host-facing handle: Editor.
//
// # Overview
//
// Editor owns the one committed doc.EditorState, the rangeindex.Index
// kept in lockstep with it, and the frontend.Frontend the reconciler
// writes through. Every mutation happens inside Update, which opens a
// doc/tx.Transaction, runs the caller's body, normalizes the result,
// and hands the before/after states to reconcile.Reconcile before
// swapping the committed state.
//
// # Reentrancy
//
// Calling Update from inside an update body (e.g. a command listener
// that itself dispatches another command) does not run nested — the
// inner body is appended to a FIFO queue and runs after the outer
// Update finishes, the same single-goroutine, not-thread-safe shape as
// the teacher's REGF sequence-number protocol (base.go's
// Sequence1/Sequence2): one writer at a time, queued rather than
// reentered.
package editor
