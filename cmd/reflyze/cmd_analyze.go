package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/reflyze/analysis"
)

func newAnalyzeCmd() *cobra.Command {
	var async bool
	var watch time.Duration

	cmd := &cobra.Command{
		Use:   "analyze <dir|archive>",
		Short: "Write the reflection accessor report for a directory or zip of decompiled sources",
		Long: `Analyze reads decompiled GeneratedMethodAccessor sources, attributes each
accessor to the class and method it invokes, and writes one row per call
site ordered by the number of accessors generated for it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			opts := cfg.Options(newSyntaxParser(cfg.Parser))
			provider := analysis.NewProvider(args[0], cfg.Pattern)
			out := cmd.OutOrStdout()

			if watch > 0 {
				dir, ok := provider.(analysis.DirProvider)
				if !ok {
					return fmt.Errorf("--watch needs a directory, got %s", args[0])
				}
				w := analysis.NewWatcher(dir, cfg.Output, opts, watch)
				w.OnOutcome = func(o analysis.Outcome) { fmt.Fprintln(out, o) }
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				w.Start()
				<-ctx.Done()
				w.Stop()
				return nil
			}

			if async {
				job := analysis.Trigger(provider, cfg.Output, opts)
				fmt.Fprintln(out, job.Message())
				outcome := job.Wait()
				fmt.Fprintln(out, outcome)
				return outcome.Err
			}

			outcome := analysis.AnalyzeAndExport(context.Background(), provider, cfg.Output, opts)
			if outcome.Err != nil {
				return outcome.Err
			}
			fmt.Fprintln(out, outcome)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", analysis.DefaultReportPath, "report file")
	cmd.Flags().StringP("format", "f", "csv", "report format: csv, json or line")
	cmd.Flags().String("parser", "native", "syntax backend: native or treesitter")
	cmd.Flags().String("pattern", analysis.DefaultPattern, "simple class name glob selecting accessor sources")
	cmd.Flags().Int("workers", 0, "units analysed in parallel (0 means one per CPU)")
	cmd.Flags().StringSlice("reserved", nil, "import prefixes that never name the declaring class")
	cmd.Flags().BoolVar(&async, "async", false, "run the analysis as a background job and print its notice first (the command still waits for the job to finish)")
	cmd.Flags().DurationVar(&watch, "watch", 0, "poll the directory at this interval and regenerate the report on change")

	return cmd
}
