package editor

import (
	"context"
	"testing"

	"github.com/outlinelabs/richedit/command"
	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/doc/edit"
	"github.com/outlinelabs/richedit/doc/tx"
	"github.com/outlinelabs/richedit/frontend"
	"github.com/outlinelabs/richedit/reconcile"
	"github.com/outlinelabs/richedit/selection"
	"github.com/stretchr/testify/require"
)

func newTestEditor(t *testing.T) (*Editor, *frontend.MemoryStorage) {
	t.Helper()
	storage := frontend.NewMemoryStorage()
	e, err := New(storage, Config{Mode: reconcile.ModeOptimized, SanityChecks: true})
	require.NoError(t, err)
	return e, storage
}

func TestUpdateInsertsParagraphAndReconcilesStorage(t *testing.T) {
	e, storage := newTestEditor(t)

	err := e.Update(context.Background(), func(t *tx.Transaction) error {
		p, err := edit.NewElement(t, doc.TagParagraph)
		if err != nil {
			return err
		}
		txt, err := edit.NewTextNode(t, "hello")
		if err != nil {
			return err
		}
		if err := edit.Append(t, p.Key(), txt.Key()); err != nil {
			return err
		}
		return edit.AppendToRoot(t, p.Key())
	})
	require.NoError(t, err)

	require.Equal(t, "hello", storage.Text())
	require.Len(t, e.GetEditorState().Root().Children, 1)
}

func TestUpdateQueuesReentrantCalls(t *testing.T) {
	e, storage := newTestEditor(t)

	var order []string
	err := e.Update(context.Background(), func(t *tx.Transaction) error {
		order = append(order, "outer")
		txt, err := edit.NewTextNode(t, "A")
		if err != nil {
			return err
		}
		p, err := edit.NewElement(t, doc.TagParagraph)
		if err != nil {
			return err
		}
		if err := edit.Append(t, p.Key(), txt.Key()); err != nil {
			return err
		}
		if err := edit.AppendToRoot(t, p.Key()); err != nil {
			return err
		}

		// Reentrant call: must queue, not run inline.
		qerr := e.Update(context.Background(), func(t *tx.Transaction) error {
			order = append(order, "inner")
			return edit.SetText(t, txt.Key(), "AB")
		})
		require.NoError(t, qerr)
		order = append(order, "outer-done")
		return nil
	})
	require.NoError(t, err)

	require.Equal(t, []string{"outer", "outer-done", "inner"}, order)
	require.Equal(t, "AB", storage.Text())
}

func TestRegisterCommandDispatchesToListener(t *testing.T) {
	e, _ := newTestEditor(t)

	var seen command.Type
	unregister := e.RegisterCommand(command.FormatText, command.PriorityNormal, func(cmd command.Command) (bool, error) {
		seen = cmd.Type
		return true, nil
	})
	defer unregister()

	handled, err := e.DispatchCommand(command.Command{Type: command.FormatText})
	require.NoError(t, err)
	require.True(t, handled)
	require.Equal(t, command.FormatText, seen)
}

func TestRegisterUpdateListenerFiresAfterCommit(t *testing.T) {
	e, _ := newTestEditor(t)

	var calls int
	var lastNext *doc.EditorState
	e.RegisterUpdateListener(func(prev, next *doc.EditorState) {
		calls++
		lastNext = next
	})

	err := e.Update(context.Background(), func(t *tx.Transaction) error {
		txt, err := edit.NewTextNode(t, "x")
		if err != nil {
			return err
		}
		p, err := edit.NewElement(t, doc.TagParagraph)
		if err != nil {
			return err
		}
		if err := edit.Append(t, p.Key(), txt.Key()); err != nil {
			return err
		}
		return edit.AppendToRoot(t, p.Key())
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Same(t, e.GetEditorState(), lastNext)
}

func TestUpdateWithNoDirtyNodesSkipsListenersAndReconcile(t *testing.T) {
	e, _ := newTestEditor(t)

	var calls int
	e.RegisterUpdateListener(func(prev, next *doc.EditorState) { calls++ })

	err := e.Update(context.Background(), func(t *tx.Transaction) error { return nil })
	require.NoError(t, err)
	require.Equal(t, 0, calls)
}

func TestSetEditorStateRebuildsIndex(t *testing.T) {
	e, _ := newTestEditor(t)

	s := doc.NewEmptyState()
	keys := doc.NewKeyAllocator()
	p := doc.NewElement(keys.Next(), doc.TagParagraph)
	txt := doc.NewText(keys.Next(), "seeded")
	doc.SetParent(txt, p.Key())
	p.Children = []doc.NodeKey{txt.Key()}
	doc.SetParent(p, doc.RootKey)
	s.Root().Children = []doc.NodeKey{p.Key()}
	s.NodeMap[p.Key()] = p
	s.NodeMap[txt.Key()] = txt

	require.NoError(t, e.SetEditorState(s))
	require.Same(t, s, e.GetEditorState())

	start, err := e.Index().StartOf(txt.Key())
	require.NoError(t, err)
	require.Equal(t, int64(0), start)
	require.Equal(t, int64(6), e.Index().TotalLength())
}

// TestBasicTextInputFromEmptyDocument implements scenario S1: dispatching
// INSERT_TEXT("Hello") against an empty editor produces a single text
// node holding "Hello" in storage, with the caret landing after it.
func TestBasicTextInputFromEmptyDocument(t *testing.T) {
	e, storage := newTestEditor(t)

	var paraKey, textKey doc.NodeKey
	err := e.Update(context.Background(), func(t *tx.Transaction) error {
		p, err := edit.NewElement(t, doc.TagParagraph)
		if err != nil {
			return err
		}
		paraKey = p.Key()
		return edit.AppendToRoot(t, p.Key())
	})
	require.NoError(t, err)

	e.RegisterCommand(command.InsertText, command.PriorityEditor, func(cmd command.Command) (bool, error) {
		text := cmd.Payload.(string)
		uerr := e.Update(context.Background(), func(tr *tx.Transaction) error {
			at := doc.ElementPoint(paraKey, 0)
			sel := &doc.RangeSelection{Anchor: at, Focus: at}
			newSel, ierr := selection.InsertText(tr, e.Index(), sel, text)
			if ierr != nil {
				return ierr
			}
			textKey = newSel.Focus.Key
			return tr.SetSelection(newSel)
		})
		return true, uerr
	})

	handled, err := e.DispatchCommand(command.Command{Type: command.InsertText, Payload: "Hello"})
	require.NoError(t, err)
	require.True(t, handled)

	require.Equal(t, "Hello", storage.Text())

	tn, err := e.GetEditorState().Text(textKey)
	require.NoError(t, err)
	require.Equal(t, 5, tn.TextLength())

	loc, err := e.Index().StartOf(textKey)
	require.NoError(t, err)
	require.Equal(t, int64(5), loc+int64(tn.TextLength()))
}

// TestBackspaceAtStartOfListItemMergesWithPrevious implements scenario
// S5: two list-item paragraphs "X" and "Y", caret at the very start of
// "Y", DELETE_CHARACTER_BACKWARD merges them into a single "XY" item
// with the caret landing after the "X" that used to precede it.
func TestBackspaceAtStartOfListItemMergesWithPrevious(t *testing.T) {
	e, storage := newTestEditor(t)

	var xTextKey, yTextKey doc.NodeKey
	err := e.Update(context.Background(), func(t *tx.Transaction) error {
		itemX, err := edit.NewElement(t, doc.TagListItem)
		if err != nil {
			return err
		}
		xText, err := edit.NewTextNode(t, "X")
		if err != nil {
			return err
		}
		xTextKey = xText.Key()
		if err := edit.Append(t, itemX.Key(), xText.Key()); err != nil {
			return err
		}

		itemY, err := edit.NewElement(t, doc.TagListItem)
		if err != nil {
			return err
		}
		yText, err := edit.NewTextNode(t, "Y")
		if err != nil {
			return err
		}
		yTextKey = yText.Key()
		if err := edit.Append(t, itemY.Key(), yText.Key()); err != nil {
			return err
		}

		if err := edit.AppendToRoot(t, itemX.Key()); err != nil {
			return err
		}
		return edit.AppendToRoot(t, itemY.Key())
	})
	require.NoError(t, err)
	require.Equal(t, "X\nY", storage.Text())
	require.Len(t, e.GetEditorState().Root().Children, 2)

	var caretAfter doc.Point
	e.RegisterCommand(command.DeleteCharacterBackward, command.PriorityEditor, func(cmd command.Command) (bool, error) {
		uerr := e.Update(context.Background(), func(tr *tx.Transaction) error {
			at := doc.TextPoint(yTextKey, 0)
			sel := &doc.RangeSelection{Anchor: at, Focus: at}
			newSel, derr := selection.DeleteCharacter(tr, e.Index(), sel, false)
			if derr != nil {
				return derr
			}
			caretAfter = newSel.Focus
			return tr.SetSelection(newSel)
		})
		return true, uerr
	})

	handled, err := e.DispatchCommand(command.Command{Type: command.DeleteCharacterBackward})
	require.NoError(t, err)
	require.True(t, handled)

	require.Equal(t, "XY", storage.Text())
	require.Len(t, e.GetEditorState().Root().Children, 1)

	merged, err := e.GetEditorState().Text(xTextKey)
	require.NoError(t, err)
	require.Equal(t, "XY", merged.Text)

	require.Equal(t, doc.PointText, caretAfter.Kind)
	require.Equal(t, xTextKey, caretAfter.Key)
	require.Equal(t, uint32(1), caretAfter.Offset)
}
