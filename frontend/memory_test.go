package frontend

import (
	"testing"

	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/rangeindex"
	"github.com/outlinelabs/richedit/selection"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorageInsertAndReplace(t *testing.T) {
	m := NewMemoryStorage()
	require.NoError(t, m.Insert(0, "hello", nil))
	require.Equal(t, "hello", m.Text())

	require.NoError(t, m.Replace(rangeindex.Range{Start: 0, End: 5}, "goodbye", nil))
	require.Equal(t, "goodbye", m.Text())
}

func TestMemoryStorageDeleteRejectsOutOfBounds(t *testing.T) {
	m := NewMemoryStorage()
	require.NoError(t, m.Insert(0, "hi", nil))
	err := m.Delete(rangeindex.Range{Start: 0, End: 5})
	require.ErrorIs(t, err, ErrRangeOutOfBounds)
}

func TestMemoryStorageSetAttributesOverwritesOverlap(t *testing.T) {
	m := NewMemoryStorage()
	require.NoError(t, m.Insert(0, "hello world", map[string]any{"bold": true}))
	require.NoError(t, m.SetAttributes(map[string]any{"italic": true}, rangeindex.Range{Start: 2, End: 4}))

	require.Equal(t, map[string]any{"bold": true}, m.AttributesAt(0))
	require.Equal(t, map[string]any{"italic": true}, m.AttributesAt(2))
	require.Equal(t, map[string]any{"bold": true}, m.AttributesAt(5))
}

func TestMemoryStorageSnapshotRestore(t *testing.T) {
	m := NewMemoryStorage()
	require.NoError(t, m.Insert(0, "hello", nil))
	snap := m.Snapshot()

	require.NoError(t, m.Replace(rangeindex.Range{Start: 0, End: 5}, "bye", nil))
	require.Equal(t, "bye", m.Text())

	m.Restore(snap)
	require.Equal(t, "hello", m.Text())
}

func TestMemoryStorageUpdatingNativeSelectionFlag(t *testing.T) {
	m := NewMemoryStorage()
	require.False(t, m.IsUpdatingNativeSelection())
	m.SetUpdatingNativeSelection(true)
	require.True(t, m.IsUpdatingNativeSelection())
}

func TestMemoryStorageMarkedText(t *testing.T) {
	m := NewMemoryStorage()
	require.ErrorIs(t, m.UnmarkText(), ErrNoMarkedText)

	require.NoError(t, m.SetMarkedText("composing", nil, rangeindex.Range{Start: 0, End: 9}))
	require.NoError(t, m.UnmarkText())
}

func TestMemoryStorageUpdateNativeSelectionRecordsSelection(t *testing.T) {
	m := NewMemoryStorage()
	sel := &doc.RangeSelection{Anchor: doc.TextPoint(1, 0), Focus: doc.TextPoint(1, 2)}
	require.NoError(t, m.UpdateNativeSelection(sel))
}

func TestMoveNativeSelectionWordForward(t *testing.T) {
	m := NewMemoryStorage()
	require.NoError(t, m.Insert(0, "hello world", nil))
	m.SetNativeRange(rangeindex.Range{Start: 0, End: 0})

	rng, err := m.MoveNativeSelection(selection.MoveCollapse, selection.DirectionRight, selection.GranularityWord)
	require.NoError(t, err)
	require.Equal(t, rangeindex.Range{Start: 5, End: 5}, rng)
}

func TestMoveNativeSelectionWordBackward(t *testing.T) {
	m := NewMemoryStorage()
	require.NoError(t, m.Insert(0, "hello world", nil))
	m.SetNativeRange(rangeindex.Range{Start: 11, End: 11})

	rng, err := m.MoveNativeSelection(selection.MoveCollapse, selection.DirectionLeft, selection.GranularityWord)
	require.NoError(t, err)
	require.Equal(t, rangeindex.Range{Start: 6, End: 6}, rng)
}

func TestMoveNativeSelectionExtendKeepsAnchor(t *testing.T) {
	m := NewMemoryStorage()
	require.NoError(t, m.Insert(0, "hello world", nil))
	m.SetNativeRange(rangeindex.Range{Start: 0, End: 0})

	rng, err := m.MoveNativeSelection(selection.MoveExtend, selection.DirectionRight, selection.GranularityWord)
	require.NoError(t, err)
	require.Equal(t, rangeindex.Range{Start: 0, End: 5}, rng)
}

func TestMoveNativeSelectionLineBoundary(t *testing.T) {
	m := NewMemoryStorage()
	require.NoError(t, m.Insert(0, "first\nsecond", nil))
	m.SetNativeRange(rangeindex.Range{Start: 8, End: 8})

	rng, err := m.MoveNativeSelection(selection.MoveCollapse, selection.DirectionLeft, selection.GranularityLine)
	require.NoError(t, err)
	require.Equal(t, rangeindex.Range{Start: 6, End: 6}, rng)
}

func TestMemoryStorageSatisfiesFrontend(t *testing.T) {
	var _ Frontend = NewMemoryStorage()
}
