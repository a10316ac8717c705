package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/outlinelabs/richedit/command"
	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/doc/tx"
	"github.com/outlinelabs/richedit/selection"
	"github.com/outlinelabs/richedit/serialize"
)

var deleteForward bool

func init() {
	cmd := newDeleteCmd()
	cmd.Flags().BoolVar(&deleteForward, "forward", false, "Delete the following grapheme instead of the preceding one")
	rootCmd.AddCommand(cmd)
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <doc.json> <path> <offset>",
		Short: "Delete one grapheme cluster at a caret",
		Long: `delete places a collapsed caret at the text point named by
<path> and <offset> and runs the fused backspace/forward-delete
semantics: a boundary caret merges into the neighboring node or block,
otherwise it removes one grapheme cluster.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return runDelete(args)
		},
	}
}

func runDelete(args []string) error {
	path, offsetStr := args[1], args[2]
	offset, err := strconv.Atoi(offsetStr)
	if err != nil {
		return fmt.Errorf("invalid offset %q: %w", offsetStr, err)
	}

	state, err := loadState(args[0])
	if err != nil {
		return err
	}
	key, err := resolvePath(state, path)
	if err != nil {
		return err
	}

	e, storage, err := newEditorOver(state)
	if err != nil {
		return err
	}

	at := doc.TextPoint(key, uint32(offset))
	cmdType := command.DeleteCharacterBackward
	if deleteForward {
		cmdType = command.DeleteCharacterForward
	}

	e.RegisterCommand(cmdType, command.PriorityEditor, func(cmd command.Command) (bool, error) {
		uerr := e.Update(context.Background(), func(t *tx.Transaction) error {
			sel := &doc.RangeSelection{Anchor: at, Focus: at}
			newSel, derr := selection.DeleteCharacter(t, e.Index(), sel, deleteForward)
			if derr != nil {
				return derr
			}
			return t.SetSelection(newSel)
		})
		return true, uerr
	})

	if _, err := e.DispatchCommand(command.Command{Type: cmdType}); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	if err := saveState(args[0], outPath, e.GetEditorState()); err != nil {
		return err
	}

	if jsonOut {
		data, err := serialize.ToJSON(e.GetEditorState())
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	printInfo("%s\n", storage.Text())
	return nil
}
