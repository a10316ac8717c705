package main

import (
	"fmt"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/outlinelabs/richedit/doc"
)

func init() {
	rootCmd.AddCommand(newCopyCmd())
}

func newCopyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy <doc.json> <path> <start> <end>",
		Short: "Copy a text node's [start, end) range to the system clipboard",
		Long: `copy reads the UTF-16 code unit range [start, end) out of the
text node named by <path> and writes it to the system clipboard. This
is the only place richctl touches the clipboard; the core never does.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return runCopy(args)
		},
	}
}

func runCopy(args []string) error {
	path := args[1]
	start, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid start %q: %w", args[2], err)
	}
	end, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("invalid end %q: %w", args[3], err)
	}

	state, err := loadState(args[0])
	if err != nil {
		return err
	}
	key, err := resolvePath(state, path)
	if err != nil {
		return err
	}
	tn, err := state.Text(key)
	if err != nil {
		return err
	}

	slice := doc.UTF16Slice(tn.Text, start, end)
	if err := clipboard.WriteAll(slice); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	printInfo("copied %d characters\n", end-start)
	return nil
}
