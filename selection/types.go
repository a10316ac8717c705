package selection

import "github.com/outlinelabs/richedit/rangeindex"

// Direction is the movement direction passed to Modify and the
// NativeMover hook.
type Direction uint8

const (
	DirectionLeft Direction = iota
	DirectionRight
	DirectionUp
	DirectionDown
)

// Granularity is the unit of movement Modify resolves.
type Granularity uint8

const (
	GranularityCharacter Granularity = iota
	GranularityWord
	GranularityLine
	GranularityParagraph
)

// MoveKind distinguishes collapsing the selection to the new position
// (Move) from extending it, keeping the anchor fixed (Extend).
type MoveKind uint8

const (
	MoveCollapse MoveKind = iota
	MoveExtend
)

// NativeMover is the host hook Modify defers to for granularities the
// document model has no opinion on: word and line boundaries depend on
// text layout and locale-aware tokenization the core does not own, and
// vertical movement depends on line geometry the core never computes.
// It mirrors frontend.Frontend's moveNativeSelection method; frontend
// is never imported here to keep the dependency direction core ->
// frontend, not the reverse.
type NativeMover interface {
	MoveNativeSelection(kind MoveKind, direction Direction, granularity Granularity) (rangeindex.Range, error)
}
