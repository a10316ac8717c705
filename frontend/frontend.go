package frontend

import (
	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/rangeindex"
	"github.com/outlinelabs/richedit/reconcile"
	"github.com/outlinelabs/richedit/selection"
)

// Frontend is the host-side surface the core depends on: an attributed
// text buffer the reconciler writes through, plus the native-selection
// bridge the selection package defers word/line/vertical movement to.
//
// It embeds reconcile.StorageWriter and selection.NativeMover rather
// than repeating their methods, so any Frontend already satisfies both
// by construction; neither package imports this one.
type Frontend interface {
	reconcile.StorageWriter
	selection.NativeMover

	// UpdateNativeSelection pushes a selection out to the host's native
	// selection UI. Nothing in the core calls it or toggles
	// SetUpdatingNativeSelection; a caller that does call it sets the
	// flag around the call so a feedback callback the host fires in
	// response can tell it apart from a user-driven change.
	UpdateNativeSelection(sel doc.BaseSelection) error

	// SetMarkedText installs IME composition text over selected, and
	// UnmarkText commits or discards it.
	SetMarkedText(text string, attrs map[string]any, selected rangeindex.Range) error
	UnmarkText() error

	IsUpdatingNativeSelection() bool
	SetUpdatingNativeSelection(updating bool)
}
