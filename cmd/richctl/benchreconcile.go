package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/outlinelabs/richedit/diagnostics"
	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/doc/edit"
	"github.com/outlinelabs/richedit/doc/tx"
	"github.com/outlinelabs/richedit/editor"
	"github.com/outlinelabs/richedit/frontend"
	"github.com/outlinelabs/richedit/reconcile"
)

var (
	benchIterations int
	benchMode       string
)

func init() {
	cmd := newBenchReconcileCmd()
	cmd.Flags().IntVar(&benchIterations, "iterations", 1000, "Number of inserts to run")
	cmd.Flags().StringVar(&benchMode, "mode", "optimized", "Reconciler mode: optimized, legacy, or dark-launch")
	rootCmd.AddCommand(cmd)
}

func newBenchReconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench-reconcile <doc.json>",
		Short: "Measure reconcile cost over repeated appends",
		Long: `bench-reconcile loads a document, then repeatedly appends a
short run of text to its last paragraph, recording diagnostics.Metrics
for every Update and printing an aggregate report. It does not write
the document back out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return runBenchReconcile(args)
		},
	}
}

func parseReconcilerMode(name string) (reconcile.ReconcilerMode, error) {
	switch name {
	case "optimized":
		return reconcile.ModeOptimized, nil
	case "legacy":
		return reconcile.ModeLegacy, nil
	case "dark-launch":
		return reconcile.ModeDarkLaunch, nil
	default:
		return 0, fmt.Errorf("unrecognized mode %q", name)
	}
}

func runBenchReconcile(args []string) error {
	mode, err := parseReconcilerMode(benchMode)
	if err != nil {
		return err
	}

	state, err := loadState(args[0])
	if err != nil {
		return err
	}

	var records []diagnostics.Metrics
	sink := diagnostics.SinkFunc(func(m diagnostics.Metrics) {
		records = append(records, m)
	})

	storage := frontend.NewMemoryStorage()
	e, err := editor.New(storage, editor.Config{Mode: mode, MetricsSink: sink})
	if err != nil {
		return err
	}
	if err := e.SetEditorState(state); err != nil {
		return err
	}

	var paraKey doc.NodeKey
	if children := e.GetEditorState().Root().Children; len(children) > 0 {
		paraKey = children[len(children)-1]
	} else {
		err := e.Update(context.Background(), func(t *tx.Transaction) error {
			p, perr := edit.NewElement(t, doc.TagParagraph)
			if perr != nil {
				return perr
			}
			paraKey = p.Key()
			return edit.AppendToRoot(t, p.Key())
		})
		if err != nil {
			return err
		}
	}

	for i := 0; i < benchIterations; i++ {
		err := e.Update(context.Background(), func(t *tx.Transaction) error {
			txt, terr := edit.NewTextNode(t, "x")
			if terr != nil {
				return terr
			}
			return edit.Append(t, paraKey, txt.Key())
		})
		if err != nil {
			return fmt.Errorf("iteration %d: %w", i, err)
		}
	}

	var totalNS int64
	var totalFenwickOps int
	for _, m := range records {
		totalNS += m.DurationNS
		totalFenwickOps += m.FenwickOps
	}
	count := len(records)
	printInfo("mode=%s iterations=%d final_length=%d\n", benchMode, benchIterations, e.Index().TotalLength())
	if count > 0 {
		printInfo("total_duration_ns=%d avg_duration_ns=%d total_fenwick_ops=%d avg_fenwick_ops=%.2f\n",
			totalNS, totalNS/int64(count), totalFenwickOps, float64(totalFenwickOps)/float64(count))
	}
	return nil
}
