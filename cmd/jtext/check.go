// Copyright (C) 2025 P. Mehler. All Rights Reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/pmehler/jtext"
	"github.com/pmehler/jtext/ast"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func checkCmd() *cobra.Command {
	var d dialect
	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Check the syntax of JSON documents",
		Long: `Check the syntax of the named JSON documents, or standard input.

Each syntax error is reported as a diagnostic of the form

   <name>:<line>:<column>: error: <message>

with 1-based lines and 0-based byte columns. The exit status is nonzero
if any input fails to parse.`,

		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := d.options()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{"-"}
			}
			nfail := 0
			for _, path := range args {
				if err := checkInput(path, opts); err != nil {
					printDiagnostic(err)
					nfail++
				}
			}
			if nfail != 0 {
				return fmt.Errorf("%d of %d inputs failed", nfail, len(args))
			}
			return nil
		},
	}
	d.bind(cmd)
	return cmd
}

// checkInput parses every value in the named input and reports the first
// error, if any.
func checkInput(path string, opts *ast.Options) error {
	in, err := openInput(path)
	if err != nil {
		return err
	}
	defer in.Close()

	rd := ast.NewReader(in, opts)
	nvals := 0
	for {
		if _, err := rd.Value(); err == io.EOF {
			logger.Debug("input checked", zap.String("path", path), zap.Int("values", nvals))
			return nil
		} else if err != nil {
			return err
		}
		nvals++
	}
}

// printDiagnostic writes err to stderr, colorizing the severity marker of a
// structured parse error.
func printDiagnostic(err error) {
	var pe *jtext.Error
	if errors.As(err, &pe) {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", pe.Context, color.RedString("error"), pe.Message)
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", color.RedString("error"), err)
}
