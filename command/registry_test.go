package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatchRunsHighestPriorityFirst(t *testing.T) {
	r := NewRegistry()
	var order []string

	r.Register(InsertText, PriorityEditor, func(cmd Command) (bool, error) {
		order = append(order, "editor")
		return true, nil
	})
	r.Register(InsertText, PriorityHigh, func(cmd Command) (bool, error) {
		order = append(order, "high")
		return false, nil
	})

	handled, err := r.Dispatch(Command{Type: InsertText})
	require.NoError(t, err)
	require.True(t, handled)
	require.Equal(t, []string{"high", "editor"}, order)
}

func TestDispatchStopsAtFirstHandler(t *testing.T) {
	r := NewRegistry()
	var calls int

	r.Register(DeleteCharacterForward, PriorityNormal, func(cmd Command) (bool, error) {
		calls++
		return true, nil
	})
	r.Register(DeleteCharacterForward, PriorityLow, func(cmd Command) (bool, error) {
		calls++
		return true, nil
	})

	handled, err := r.Dispatch(Command{Type: DeleteCharacterForward})
	require.NoError(t, err)
	require.True(t, handled)
	require.Equal(t, 1, calls)
}

func TestDispatchPropagatesError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.Register(Paste, PriorityNormal, func(cmd Command) (bool, error) {
		return false, boom
	})

	_, err := r.Dispatch(Command{Type: Paste})
	require.ErrorIs(t, err, boom)
}

func TestDispatchWithNoListenersIsUnhandled(t *testing.T) {
	r := NewRegistry()
	handled, err := r.Dispatch(Command{Type: Copy})
	require.NoError(t, err)
	require.False(t, handled)
}

func TestUnregisterRemovesListener(t *testing.T) {
	r := NewRegistry()
	var calls int
	unregister := r.Register(Cut, PriorityNormal, func(cmd Command) (bool, error) {
		calls++
		return true, nil
	})

	unregister()

	handled, err := r.Dispatch(Command{Type: Cut})
	require.NoError(t, err)
	require.False(t, handled)
	require.Equal(t, 0, calls)
}

func TestRegistrationOrderWithinSamePriority(t *testing.T) {
	r := NewRegistry()
	var order []string

	r.Register(FormatText, PriorityNormal, func(cmd Command) (bool, error) {
		order = append(order, "first")
		return false, nil
	})
	r.Register(FormatText, PriorityNormal, func(cmd Command) (bool, error) {
		order = append(order, "second")
		return true, nil
	})

	_, err := r.Dispatch(Command{Type: FormatText})
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second"}, order)
}

func TestCommandTypeString(t *testing.T) {
	require.Equal(t, "INSERT_TEXT", InsertText.String())
	require.Equal(t, "SELECTION_CHANGE", SelectionChange.String())
}

func TestPayloadPassedThrough(t *testing.T) {
	r := NewRegistry()
	var got any
	r.Register(InsertText, PriorityNormal, func(cmd Command) (bool, error) {
		got = cmd.Payload
		return true, nil
	})

	_, err := r.Dispatch(Command{Type: InsertText, Payload: "hello"})
	require.NoError(t, err)
	require.Equal(t, "hello", got)
}
