package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/outlinelabs/richedit/command"
	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/doc/tx"
	"github.com/outlinelabs/richedit/selection"
	"github.com/outlinelabs/richedit/serialize"
)

func init() {
	rootCmd.AddCommand(newPasteCmd())
}

func newPasteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paste <doc.json> <path> <offset>",
		Short: "Insert the system clipboard's contents at a point",
		Long: `paste reads the system clipboard and inserts it at the point
named by <path> and <offset>, the same way insert does for an explicit
string argument.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return runPaste(args)
		},
	}
}

func runPaste(args []string) error {
	path := args[1]
	offset, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid offset %q: %w", args[2], err)
	}

	text, err := clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("reading clipboard: %w", err)
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

	n, ok := e.GetEditorState().Get(key)
	if !ok {
		return doc.ErrKeyNotFound
	}
	var at doc.Point
	switch n.(type) {
	case *doc.TextNode:
		at = doc.TextPoint(key, uint32(offset))
	default:
		at = doc.ElementPoint(key, uint32(offset))
	}

	e.RegisterCommand(command.Paste, command.PriorityEditor, func(cmd command.Command) (bool, error) {
		payload := cmd.Payload.(string)
		uerr := e.Update(context.Background(), func(t *tx.Transaction) error {
			sel := &doc.RangeSelection{Anchor: at, Focus: at}
			newSel, ierr := selection.InsertText(t, e.Index(), sel, payload)
			if ierr != nil {
				return ierr
			}
			return t.SetSelection(newSel)
		})
		return true, uerr
	})

	if _, err := e.DispatchCommand(command.Command{Type: command.Paste, Payload: text}); err != nil {
		return fmt.Errorf("paste failed: %w", err)
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
