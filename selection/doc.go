// Package selection implements range-selection movement and the
// editing operations that are fused to caret position: grapheme-aware
// character movement, insertText, and deleteCharacter.
//
// # Overview
//
// Modify resolves character-granularity movement directly against a
// Text node's payload using github.com/rivo/uniseg, and against
// rangeindex's absolute-location search when the caret sits on a node
// boundary. Word, line, and paragraph granularity (and any vertical
// movement) have no meaning at the document-model level and are
// delegated to a host-supplied NativeMover, mirroring
// frontend.Frontend.moveNativeSelection.
//
// # Fused editing operations
//
// InsertText and DeleteCharacter implement the compound semantics a
// text view's delegate methods need directly: replacing a selection,
// merging across a node or block boundary, and falling back to
// single-grapheme deletion otherwise.
package selection
