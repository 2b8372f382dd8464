package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/reflyze/config"
	"github.com/dhamidi/reflyze/format"
	"github.com/dhamidi/reflyze/java/parser"
	"github.com/dhamidi/reflyze/java/tsparse"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var backend string
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse <file.java>",
		Short: "Parse a .java file and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read java file: %w", err)
			}

			var node *parser.Node
			switch backend {
			case config.ParserNative:
				node = parser.ParseCompilationUnit(bytes.NewReader(data), parser.WithFile(filename)).Finish()
				if node == nil {
					return fmt.Errorf("parse java file: incomplete or invalid syntax")
				}
			case config.ParserTreeSitter:
				node, err = tsparse.New().Tree(context.Background(), filename, data)
				if err != nil {
					return fmt.Errorf("parse java file: %w", err)
				}
			default:
				return fmt.Errorf("unknown parser: %s", backend)
			}

			out := cmd.OutOrStdout()
			switch outputFormat {
			case "json":
				if err := format.NewTreeJSONEncoder(out, includePositions).Encode(node); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			case "tree":
				if err := format.WriteTree(out, node, includePositions); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if bad := node.FirstError(); bad != nil {
				return fmt.Errorf("%s:%s: %s", filename, bad.Span.Start, bad.Error.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format: tree or json")
	cmd.Flags().StringVar(&backend, "parser", config.ParserNative, "syntax backend: native or treesitter")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include source positions")

	return cmd
}
