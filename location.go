// Copyright (C) 2025 P. Mehler. All Rights Reserved.

package jtext

import "fmt"

// A Context identifies a location in an input stream for diagnostics.  It
// marks the start of the token or value being reported, captured before the
// token's meaning is decided.
type Context struct {
	Name   string // the name of the input stream, e.g. a file path
	Line   int    // line number, 1-based
	Column int    // byte offset of the column in the line, 0-based
}

// String renders c in the conventional "name:line:column" form.  An unnamed
// stream is rendered as "<input>".
func (c Context) String() string {
	name := c.Name
	if name == "" {
		name = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", name, c.Line, c.Column)
}
