package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dhamidi/reflyze/accessor"
	"github.com/dhamidi/reflyze/analysis"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file.java>...",
		Short: "Show how each accessor source is attributed, or why it is skipped",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			analyzer := analysis.NewAnalyzer(cfg.Options(newSyntaxParser(cfg.Parser)))

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, filename := range args {
				src, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read java file: %w", err)
				}
				unit := analysis.Unit{Name: accessor.UnitName(filename), Path: filename, Source: src}

				obs, err := analyzer.Attribute(unit)
				if err != nil {
					fmt.Fprintf(tw, "%s\tskip\t%s\t%v\n", unit.Name, analysis.Classify(err), err)
					continue
				}
				fmt.Fprintf(tw, "%s\tok\t%s\t\n", unit.Name, obs.Key)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().String("parser", "native", "syntax backend: native or treesitter")
	cmd.Flags().StringSlice("reserved", nil, "import prefixes that never name the declaring class")

	return cmd
}
