// Copyright (C) 2025 P. Mehler. All Rights Reserved.

// Program jtext is a command-line tool for checking, reformatting, and
// querying JSON documents.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pmehler/jtext/ast"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	debug  bool
	logger = zap.NewNop()
)

func main() {
	root := &cobra.Command{
		Use:           "jtext",
		Short:         "Check, reformat, and query JSON documents",
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				lg, err := zap.NewDevelopment()
				if err != nil {
					return fmt.Errorf("create logger: %w", err)
				}
				logger = lg
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	root.AddCommand(checkCmd(), fmtCmd(), getCmd(), yamlCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// dialect holds the input-syntax flags shared by the subcommands.
type dialect struct {
	comments bool
	tcommas  bool
	dups     string
}

func (d *dialect) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.BoolVar(&d.comments, "comments", false, "Allow // and /* */ comments")
	fs.BoolVar(&d.tcommas, "trailing-commas", false, "Allow trailing commas in arrays and objects")
	fs.StringVar(&d.dups, "dup", "reject", `Repeated member policy ("reject", "keep-first", "keep-last")`)
}

func (d *dialect) options() (*ast.Options, error) {
	opts := &ast.Options{
		AllowComments:       d.comments,
		AllowTrailingCommas: d.tcommas,
	}
	switch d.dups {
	case "reject":
		opts.Duplicates = ast.Reject
	case "keep-first":
		opts.Duplicates = ast.KeepFirst
	case "keep-last":
		opts.Duplicates = ast.KeepLast
	default:
		return nil, fmt.Errorf("invalid --dup policy %q", d.dups)
	}
	return opts, nil
}

// openInput opens the named input file, or stdin if path is "" or "-".
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}
