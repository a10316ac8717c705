package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/outlinelabs/richedit/serialize"
)

func init() {
	rootCmd.AddCommand(newDumpJSONCmd())
}

func newDumpJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump-json <doc.json>",
		Short: "Print a document's canonical JSON form",
		Long: `dump-json loads a document and re-serializes it, which
normalizes formatting and drops any fields the wire format does not
carry (notably node keys, which are never part of it).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return runDumpJSON(args)
		},
	}
}

func runDumpJSON(args []string) error {
	state, err := loadState(args[0])
	if err != nil {
		return err
	}
	data, err := serialize.ToJSON(state)
	if err != nil {
		return fmt.Errorf("serializing document: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
