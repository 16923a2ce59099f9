// Copyright (C) 2025 P. Mehler. All Rights Reserved.

package jtext

import "fmt"

// An ErrorKind classifies the errors reported while reading JSON input.
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	ErrOther               ErrorKind = iota // none of the below
	ErrIO                                   // error reading the underlying stream
	ErrUnexpectedEOF                        // end of input while expecting more
	ErrSyntax                               // malformed input text
	ErrInvalidEscape                        // invalid character escape in a string
	ErrUnexpectedValue                      // a value of the wrong kind or shape
	ErrDuplicateMember                      // repeated object member under the reject policy
	ErrUnterminatedComment                  // end of input inside a block comment
	ErrInvalidUnicode                       // invalid Unicode character
	ErrUnpairedSurrogate                    // unpaired UTF-16 surrogate escape
)

var kindStr = [...]string{
	ErrOther:               "other error",
	ErrIO:                  "I/O error",
	ErrUnexpectedEOF:       "unexpected end-of-file",
	ErrSyntax:              "syntax error",
	ErrInvalidEscape:       "invalid character escape",
	ErrUnexpectedValue:     "unexpected value",
	ErrDuplicateMember:     "duplicate object member",
	ErrUnterminatedComment: "unterminated multiline comment",
	ErrInvalidUnicode:      "invalid Unicode character",
	ErrUnpairedSurrogate:   "unpaired UTF-16 surrogate",
}

func (k ErrorKind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[ErrOther]
	}
	return kindStr[k]
}

// Error is the concrete type of errors reported by the scanner and reader.
// The first error encountered aborts the read that produced it; errors are
// never silently recovered.
type Error struct {
	Kind    ErrorKind // what went wrong
	Context Context   // where it went wrong
	Message string    // kind-specific description

	err error
}

// Error satisfies the error interface. The rendered form is
// "name:line:column: error: message".
func (e *Error) Error() string {
	return fmt.Sprintf("%s: error: %s", e.Context, e.Message)
}

// Unwrap supports error wrapping. The result is nil unless e records an
// underlying cause, such as an I/O error from the stream.
func (e *Error) Unwrap() error { return e.err }
