// Package frontend defines the narrow contract the core reconciler and
// selection packages need from a host's attributed-string surface, and
// ships an in-memory reference implementation exercised by this
// module's own tests and by cmd/richctl and cmd/richview.
//
// A real host (a UITextView-backed iOS layer, a terminal renderer) owns
// its own attributed string type; it only needs to satisfy Frontend
// well enough for reconcile.StorageWriter and selection.NativeMover,
// both of which Frontend composes structurally rather than by
// inheritance, to keep core -> frontend the only dependency direction.
package frontend
