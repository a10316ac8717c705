package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/outlinelabs/richedit/command"
	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/doc/edit"
	"github.com/outlinelabs/richedit/doc/tx"
	"github.com/outlinelabs/richedit/serialize"
)

var formatSet bool

func init() {
	cmd := newFormatCmd()
	cmd.Flags().BoolVar(&formatSet, "set", false, "Set the given bits wholesale instead of toggling them")
	rootCmd.AddCommand(cmd)
}

func newFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format <doc.json> <path> <bits...>",
		Short: "Toggle or set a text node's format bits",
		Long: `format flips (or, with --set, replaces) the given format bits on
the text node named by <path>. Recognized bits: bold, italic,
underline, strikethrough, code, subscript, superscript.

Example:
  richctl format doc.json 0.0 bold italic`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return runFormat(args)
		},
	}
}

func parseFormatBits(names []string) (doc.TextFormat, error) {
	var bits doc.TextFormat
	for _, name := range names {
		switch strings.ToLower(name) {
		case "bold":
			bits |= doc.FormatBold
		case "italic":
			bits |= doc.FormatItalic
		case "underline":
			bits |= doc.FormatUnderline
		case "strikethrough":
			bits |= doc.FormatStrikethrough
		case "code":
			bits |= doc.FormatCode
		case "subscript":
			bits |= doc.FormatSubscript
		case "superscript":
			bits |= doc.FormatSuperscript
		default:
			return 0, fmt.Errorf("unrecognized format bit %q", name)
		}
	}
	return bits, nil
}

func runFormat(args []string) error {
	path := args[1]
	bits, err := parseFormatBits(args[2:])
	if err != nil {
		return err
	}

	state, err := loadState(args[0])
	if err != nil {
		return err
	}
	key, err := resolvePath(state, path)
	if err != nil {
		return err
	}

	e, _, err := newEditorOver(state)
	if err != nil {
		return err
	}

	e.RegisterCommand(command.FormatText, command.PriorityEditor, func(cmd command.Command) (bool, error) {
		uerr := e.Update(context.Background(), func(t *tx.Transaction) error {
			if formatSet {
				return edit.SetFormat(t, key, bits)
			}
			return edit.ToggleFormat(t, key, bits)
		})
		return true, uerr
	})

	if _, err := e.DispatchCommand(command.Command{Type: command.FormatText, Payload: bits}); err != nil {
		return fmt.Errorf("format failed: %w", err)
	}

	if err := saveState(args[0], outPath, e.GetEditorState()); err != nil {
		return err
	}

	tn, err := e.GetEditorState().Text(key)
	if err != nil {
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
	printInfo("format=%d\n", uint16(tn.Format))
	return nil
}
