// Package reconcile turns a committed/pending pair of doc.EditorState
// snapshots into text-storage mutations and an updated
// rangeindex.Index.
//
// # Overview
//
// Two reconciler implementations share the same entry point
// (Reconcile): Legacy re-renders the whole document and replaces all of
// text storage every time, whichever subtrees are dirty (legacy.go,
// grounded on the teacher's always-append
// strategy/append.go); Optimized runs a four-stage pipeline — keyed
// diff (diff.go), delta emission (delta.go), a text-storage applier
// (apply.go), and a Fenwick/cache patch (optimized.go) — grounded on
// the teacher's in-place merge strategy. ReconcilerMode selects
// between them, or runs both under DarkLaunch to compare.
//
// # Storage
//
// Reconcile never imports the frontend package. It writes through the
// narrow StorageWriter interface, which frontend.Frontend's storage
// methods satisfy structurally.
package reconcile
