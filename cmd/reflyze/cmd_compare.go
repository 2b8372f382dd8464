package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/reflyze/analysis"
	"github.com/dhamidi/reflyze/format"
)

func newCompareCmd() *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "compare <old.csv> <new.csv>",
		Short: "Show how two CSV reports differ",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldText, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			newText, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if !summary {
				diff, err := analysis.DiffReports(args[0], string(oldText), args[1], string(newText))
				if err != nil {
					return fmt.Errorf("diff: %w", err)
				}
				fmt.Fprint(out, diff)
				return nil
			}

			oldRecords, err := format.ReadCSV(bytes.NewReader(oldText))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			newRecords, err := format.ReadCSV(bytes.NewReader(newText))
			if err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}
			for _, d := range analysis.Deltas(oldRecords, newRecords) {
				fmt.Fprintf(out, "%s\t%d -> %d\t%+d\n", d.Key, d.Old, d.New, d.New-d.Old)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&summary, "summary", false, "print per call site count changes instead of a diff")

	return cmd
}
