// Copyright (C) 2025 P. Mehler. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pmehler/jtext/ast"
	"github.com/spf13/cobra"
)

func fmtCmd() *cobra.Command {
	var d dialect
	var compact bool
	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Reformat a JSON document",
		Long: `Reformat the named JSON document, or standard input, to stdout.

The input may contain a sequence of values; each is reformatted in order.
Comments and trailing commas accepted via the dialect flags are not
preserved in the output.`,
		Args: cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := d.options()
			if err != nil {
				return err
			}
			var path string
			if len(args) != 0 {
				path = args[0]
			}
			in, err := openInput(path)
			if err != nil {
				return err
			}
			defer in.Close()

			rd := ast.NewReader(in, opts)
			for {
				v, err := rd.Value()
				if err == io.EOF {
					return nil
				} else if err != nil {
					printDiagnostic(err)
					return fmt.Errorf("reformat failed")
				}
				if compact {
					fmt.Println(v.JSON())
				} else if err := ast.Format(os.Stdout, v); err != nil {
					return err
				}
			}
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "Write compact output on a single line")
	d.bind(cmd)
	return cmd
}
