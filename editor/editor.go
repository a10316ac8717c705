package editor

import (
	"context"
	"fmt"

	"github.com/outlinelabs/richedit/command"
	"github.com/outlinelabs/richedit/diagnostics"
	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/doc/edit"
	"github.com/outlinelabs/richedit/doc/tx"
	"github.com/outlinelabs/richedit/frontend"
	"github.com/outlinelabs/richedit/rangeindex"
	"github.com/outlinelabs/richedit/reconcile"
)

// UpdateListener is notified after every committed Update, with the
// state that was committed before and after it.
type UpdateListener func(prev, next *doc.EditorState)

// Plugin configures an Editor at construction time — registering
// commands, update listeners, or anything else that needs a live
// Editor handle. Plugins run in Config.Plugins order, once, inside New.
type Plugin func(*Editor) error

// Config selects an Editor's reconciliation strategy and optional
// observability hooks.
type Config struct {
	Mode         reconcile.ReconcilerMode
	AllowPartial bool
	SanityChecks bool
	MetricsSink  diagnostics.Sink
	Theme        string
	Plugins      []Plugin
}

// Editor is the host-facing handle over one document: the committed
// doc.EditorState, the rangeindex.Index kept current with it, and the
// frontend.Frontend every reconcile writes through.
type Editor struct {
	committed *doc.EditorState
	keys      *doc.KeyAllocator
	idx       *rangeindex.Index
	storage   frontend.Frontend
	config    Config

	commands  *command.Registry
	listeners []UpdateListener

	updating bool
	queue    []func(*tx.Transaction) error

	pendingVersion   uint64
	committedVersion uint64
}

// New returns an Editor over an empty document, writing through
// storage. Plugins registered in cfg.Plugins run once, in order, before
// New returns.
func New(storage frontend.Frontend, cfg Config) (*Editor, error) {
	state := doc.NewEmptyState()
	idx := rangeindex.NewIndex()
	if err := idx.Rebuild(state); err != nil {
		return nil, err
	}

	e := &Editor{
		committed: state,
		keys:      doc.NewKeyAllocator(),
		idx:       idx,
		storage:   storage,
		config:    cfg,
		commands:  command.NewRegistry(),
	}

	for _, p := range cfg.Plugins {
		if err := p(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// GetEditorState returns the current committed state. The returned
// value is never mutated in place — a new EditorState replaces it on
// every successful Update — so callers may hold onto it across calls.
func (e *Editor) GetEditorState() *doc.EditorState {
	return e.committed
}

// SetEditorState replaces the committed state outright (e.g. after
// serialize.FromJSON, or restoring an undo snapshot) and fully rebuilds
// the range index against it.
func (e *Editor) SetEditorState(s *doc.EditorState) error {
	if err := e.idx.Rebuild(s); err != nil {
		return err
	}
	e.committed = s
	return nil
}

// Index returns the Editor's rangeindex.Index, kept in lockstep with
// GetEditorState's return value. Selection resolution (selection.Modify,
// rangeindex.StringLocationForPoint) needs both together.
func (e *Editor) Index() *rangeindex.Index {
	return e.idx
}

// Read runs fn against the current committed state. It never opens a
// transaction and fn must not mutate anything it reaches through
// state — that's what Update is for.
func (e *Editor) Read(ctx context.Context, fn func(state *doc.EditorState) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(e.committed)
}

// RegisterCommand adds listener to the command registry at the given
// priority and returns a function that removes it.
func (e *Editor) RegisterCommand(cmdType command.Type, priority command.Priority, listener command.Listener) func() {
	return e.commands.Register(cmdType, priority, listener)
}

// DispatchCommand runs cmd through the registered listeners,
// highest-priority first, per command.Registry.Dispatch.
func (e *Editor) DispatchCommand(cmd command.Command) (bool, error) {
	return e.commands.Dispatch(cmd)
}

// RegisterUpdateListener adds fn to the set notified after every
// committed Update and returns a function that removes it.
func (e *Editor) RegisterUpdateListener(fn UpdateListener) func() {
	e.listeners = append(e.listeners, fn)
	id := len(e.listeners) - 1
	return func() {
		if id < len(e.listeners) {
			e.listeners[id] = nil
		}
	}
}

// Update opens a transaction against the committed state, runs body
// against it, normalizes the result, and reconciles it into storage
// before swapping it in as the new committed state.
//
// Calling Update from inside a body already running under Update
// queues it instead of reentering: it runs, in the order queued, once
// the outermost Update's reconcile has committed.
func (e *Editor) Update(ctx context.Context, body func(t *tx.Transaction) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.updating {
		e.queue = append(e.queue, body)
		return nil
	}
	e.updating = true
	defer func() { e.updating = false }()

	if err := e.runUpdate(body); err != nil {
		e.queue = nil
		return err
	}

	for len(e.queue) > 0 {
		next := e.queue[0]
		e.queue = e.queue[1:]
		if err := e.runUpdate(next); err != nil {
			e.queue = nil
			return err
		}
	}
	return nil
}

func (e *Editor) runUpdate(body func(t *tx.Transaction) error) error {
	e.pendingVersion++

	t := tx.Begin(e.committed, e.keys)
	if err := body(t); err != nil {
		return err
	}
	if err := edit.Normalize(t); err != nil {
		return err
	}
	edit.CollectGarbage(t)

	dirty := t.Dirty()
	if len(dirty) == 0 {
		e.committedVersion = e.pendingVersion
		return nil
	}

	pending := t.Pending()
	recorder := diagnostics.NewRecorder(reconcilerKindOf(e.config.Mode))
	recorder.AddNodesProcessed(len(dirty))

	result, _, err := reconcile.Reconcile(e.config.Mode, e.committed, pending, dirty, e.idx, e.storage, e.config.AllowPartial)
	recorder.AddFenwickOp(result.FenwickOps)
	recorder.AddRangesAdded(countInsertions(result.Applied))
	recorder.AddRangesDeleted(countDeletions(result.Applied))

	sink := e.config.MetricsSink
	if sink == nil {
		sink = diagnostics.NoopSink
	}
	recorder.Finish(sink, len(result.Applied), result.Outcome == reconcile.ApplyPartialSuccess)

	if err != nil {
		return err
	}
	if result.Outcome == reconcile.ApplyFailure {
		return fmt.Errorf("%w: %s", ErrReconcileFailed, result.Reason)
	}

	prev := e.committed
	e.committed = pending
	e.committedVersion = e.pendingVersion

	if e.config.SanityChecks {
		if violations := diagnostics.CheckState(e.committed, e.idx, -1); len(violations) > 0 {
			return fmt.Errorf("%w: %v", ErrSanityCheckFailed, violations[0])
		}
	}

	for _, l := range e.listeners {
		if l != nil {
			l(prev, e.committed)
		}
	}
	return nil
}

func reconcilerKindOf(mode reconcile.ReconcilerMode) diagnostics.ReconcilerKind {
	switch mode {
	case reconcile.ModeLegacy:
		return diagnostics.ReconcilerLegacy
	case reconcile.ModeDarkLaunch:
		return diagnostics.ReconcilerDarkLaunch
	default:
		return diagnostics.ReconcilerOptimized
	}
}

func countInsertions(deltas []reconcile.ReconcilerDelta) int {
	n := 0
	for _, d := range deltas {
		if d.Kind == reconcile.DeltaNodeInsertion {
			n++
		}
	}
	return n
}

func countDeletions(deltas []reconcile.ReconcilerDelta) int {
	n := 0
	for _, d := range deltas {
		if d.Kind == reconcile.DeltaNodeDeletion {
			n++
		}
	}
	return n
}
