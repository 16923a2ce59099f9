// Copyright (C) 2025 P. Mehler. All Rights Reserved.

package main

import (
	"fmt"
	"os"

	"github.com/pmehler/jtext/ast"
	"github.com/pmehler/jtext/pointer"
	"github.com/spf13/cobra"
)

func getCmd() *cobra.Command {
	var d dialect
	var compact bool
	cmd := &cobra.Command{
		Use:   "get <pointer> [file]",
		Short: "Extract the value at a JSON Pointer",
		Long: `Extract the value designated by an RFC 6901 JSON Pointer from the
named JSON document, or standard input, and write it to stdout.

The empty pointer designates the whole document. Examples:

   jtext get /users/0/name config.json
   jtext get "" config.json`,
		Args: cobra.RangeArgs(1, 2),

		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := d.options()
			if err != nil {
				return err
			}
			var path string
			if len(args) == 2 {
				path = args[1]
			}
			in, err := openInput(path)
			if err != nil {
				return err
			}
			defer in.Close()

			root, err := ast.NewReader(in, opts).Value()
			if err != nil {
				printDiagnostic(err)
				return fmt.Errorf("parse failed")
			}
			v, err := pointer.Resolve(root, args[0])
			if err != nil {
				return err
			}
			if compact {
				fmt.Println(v.JSON())
				return nil
			}
			return ast.Format(os.Stdout, v)
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "Write compact output on a single line")
	d.bind(cmd)
	return cmd
}
