// Copyright (C) 2025 P. Mehler. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/pmehler/jtext/ast"
	"github.com/spf13/cobra"
)

func yamlCmd() *cobra.Command {
	var compact bool
	cmd := &cobra.Command{
		Use:   "yaml [file]",
		Short: "Convert a YAML document to JSON",
		Long: `Convert the named YAML document, or standard input, to JSON on stdout.

Mapping keys are rendered in sorted order. Keys and scalars that have no
JSON counterpart (non-string keys, timestamps, and so on) are rejected.`,
		Args: cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) != 0 {
				path = args[0]
			}
			in, err := openInput(path)
			if err != nil {
				return err
			}
			defer in.Close()

			data, err := io.ReadAll(in)
			if err != nil {
				return err
			}
			var doc any
			if err := yaml.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("parse YAML: %w", err)
			}
			v, err := toValue(doc)
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
	return cmd
}

// toValue converts a decoded YAML document into a Value, reporting an error
// instead of panicking for document shapes JSON cannot express.
func toValue(doc any) (v ast.Value, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("convert to JSON: %v", p)
		}
	}()
	return ast.ToValue(normalize(doc)), nil
}

// normalize rewrites the container types produced by the YAML decoder into
// the []any and map[string]any shapes ToValue accepts.
func normalize(doc any) any {
	switch t := doc.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for key, val := range t {
			out[key] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for key, val := range t {
			ks, ok := key.(string)
			if !ok {
				panic(fmt.Sprintf("non-string mapping key %v", key))
			}
			out[ks] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, elt := range t {
			out[i] = normalize(elt)
		}
		return out
	default:
		return doc
	}
}
