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

func init() {
	rootCmd.AddCommand(newInsertCmd())
}

func newInsertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insert <doc.json> <path> <offset> <text>",
		Short: "Insert text at a point in the document",
		Long: `insert loads a document, inserts text at the point named by
<path> (a dot-separated list of child indices from the root) and
<offset> (a child index if <path> names an element, a UTF-16 code unit
offset if it names a text node), and writes the result back out.

Example:
  richctl insert doc.json 0 0 "Hello"
  richctl insert doc.json 0.0 5 ", world"`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsert(args)
		},
	}
}

func runInsert(args []string) error {
	path, offsetStr, text := args[1], args[2], args[3]
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

	e.RegisterCommand(command.InsertText, command.PriorityEditor, func(cmd command.Command) (bool, error) {
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

	if _, err := e.DispatchCommand(command.Command{Type: command.InsertText, Payload: text}); err != nil {
		return fmt.Errorf("insert failed: %w", err)
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
