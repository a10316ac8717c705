// Package diagnostics carries the editor's observability surface: a
// per-reconcile Metrics record emitted to a host-provided sink, and
// CheckState, which re-verifies the structural invariants doc,
// rangeindex, and reconcile are each supposed to maintain on their own.
// CheckState runs only when editor.Config.SanityChecks is set; a Metrics
// record is built for every Update that reaches the reconciler and goes
// to NoopSink when the host supplies no sink.
package diagnostics
