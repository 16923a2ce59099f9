// Copyright (C) 2025 P. Mehler. All Rights Reserved.

package ast

import (
	"bufio"
	"io"
	"strings"

	"github.com/pmehler/jtext"
)

// A Formatter renders values as indented JSON text.
//
// The zero Formatter is ready for use and indents by two spaces per level.
type Formatter struct {
	// Indent is the indentation unit. If empty, two spaces are used.
	Indent string
}

// Format renders v to w as indented JSON followed by a newline.
func (f Formatter) Format(w io.Writer, v Value) error {
	indent := f.Indent
	if indent == "" {
		indent = "  "
	}
	bw := bufio.NewWriter(w)
	formatValue(bw, v, "", indent)
	bw.WriteByte('\n')
	return bw.Flush()
}

// Format renders v to w with the default formatting settings.
func Format(w io.Writer, v Value) error { return Formatter{}.Format(w, v) }

// FormatToString renders v as a string with the default formatting settings.
func FormatToString(v Value) string {
	var sb strings.Builder
	Formatter{}.Format(&sb, v)
	return sb.String()
}

func formatValue(w *bufio.Writer, v Value, cur, unit string) {
	if isBoring(v) {
		formatInline(w, v)
		return
	}
	in := cur + unit
	switch t := v.(type) {
	case Object:
		w.WriteString("{\n")
		for i, m := range t {
			w.WriteString(in)
			w.WriteString(jtext.Quote(m.Key))
			w.WriteString(": ")
			formatValue(w, m.Value, in, unit)
			if i+1 < len(t) {
				w.WriteByte(',')
			}
			w.WriteByte('\n')
		}
		w.WriteString(cur)
		w.WriteByte('}')
	case Array:
		w.WriteString("[\n")
		for i, elt := range t {
			w.WriteString(in)
			formatValue(w, elt, in, unit)
			if i+1 < len(t) {
				w.WriteByte(',')
			}
			w.WriteByte('\n')
		}
		w.WriteString(cur)
		w.WriteByte(']')
	default:
		w.WriteString(v.JSON())
	}
}

// formatInline renders a boring value on a single line, with a space after
// each comma for legibility.
func formatInline(w *bufio.Writer, v Value) {
	arr, ok := v.(Array)
	if !ok || len(arr) == 0 {
		w.WriteString(v.JSON())
		return
	}
	w.WriteByte('[')
	for i, elt := range arr {
		if i > 0 {
			w.WriteString(", ")
		}
		w.WriteString(elt.JSON())
	}
	w.WriteByte(']')
}

// isBoring reports whether v is simple enough to render on one line: any
// scalar, an empty container, or a short array of scalars.
func isBoring(v Value) bool {
	switch t := v.(type) {
	case Object:
		return len(t) == 0
	case Array:
		if len(t) > 3 {
			return false
		}
		for _, elt := range t {
			switch elt.(type) {
			case Object, Array:
				return false
			}
		}
		return true
	default:
		return true
	}
}
