package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/reflyze/accessor"
	"github.com/dhamidi/reflyze/config"
	"github.com/dhamidi/reflyze/java/tsparse"
)

var (
	verbosity  int
	logPath    string
	configPath string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "reflyze:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "reflyze",
		Short:         "Correlate decompiled reflection accessors with the methods they invoke",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var path *string
			if logPath != "" {
				path = &logPath
			}
			commonlog.Configure(verbosity, path)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(&logPath, "log", "", "write logs to this file instead of stderr")
	flags.StringVar(&configPath, "config", "", "configuration file (default ./"+config.FileName+")")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCompareCmd())

	return rootCmd
}

// loadConfig reads the configuration file and applies the command's
// explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	set := func(name string, apply func() error) error {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			return nil
		}
		return apply()
	}
	err = firstError(
		set("output", func() (err error) { cfg.Output, err = flags.GetString("output"); return }),
		set("format", func() (err error) { cfg.Format, err = flags.GetString("format"); return }),
		set("parser", func() (err error) { cfg.Parser, err = flags.GetString("parser"); return }),
		set("pattern", func() (err error) { cfg.Pattern, err = flags.GetString("pattern"); return }),
		set("workers", func() (err error) { cfg.Workers, err = flags.GetInt("workers"); return }),
		set("reserved", func() (err error) { cfg.ReservedPrefixes, err = flags.GetStringSlice("reserved"); return }),
	)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func newSyntaxParser(name string) accessor.SyntaxParser {
	if name == config.ParserTreeSitter {
		return tsparse.New()
	}
	return accessor.NativeParser{}
}
