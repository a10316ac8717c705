// Package edit provides high-level editing operations over a node tree
// inside an open doc/tx.Transaction.
//
// # Overview
//
// This package offers the operations node variants expose on
// themselves in the specification (append, insertBefore/after,
// replaceWith, remove, clear, splitText, setFormat, ...) as free
// functions taking an explicit *tx.Transaction, per the design notes'
// preferred alternative to an implicit thread-local active editor: node
// operations read and write the pending state through the transaction
// handle the caller already has, never through package-level state.
//
// # Structural Operations
//
//	p, _ := edit.NewElement(txn, doc.TagParagraph)
//	t, _ := edit.NewTextNode(txn, "hello")
//	edit.Append(txn, p.Key(), t.Key())
//	edit.AppendToRoot(txn, p.Key())
//
// # Normalization
//
// Normalize merges adjacent mergeable Text siblings and drops empty
// Text nodes (unless the pending selection anchors on them), run once
// at the end of every update body before the reconciler sees the
// pending state (§4.1, §4.2).
//
// # Error Handling
//
// Every operation returns an error instead of panicking: ParentMissing
// for detached nodes, CycleDetected for append operations that would
// create a cycle, KeyNotFound for missing references.
package edit
