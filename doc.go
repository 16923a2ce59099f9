// Copyright (C) 2025 P. Mehler. All Rights Reserved.

// Package jtext implements a lexical scanner for JSON text, along with the
// diagnostic and string-encoding machinery shared by the packages built on
// top of it.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON. Construct a scanner
// from an io.Reader and call its Next method to iterate over the stream. Next
// advances to the next input token and returns nil, or reports an error:
//
//	s := jtext.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other error
// indicates an I/O or lexical error in the input.
//
//	if s.Err() != io.EOF {
//	   log.Fatalf("Scanning failed: %v", s.Err())
//	}
//
// By default the scanner accepts only the grammar of RFC 8259. Call
// AllowComments to additionally accept // line comments and /* ... */ block
// comments, which are then reported as tokens of their own so that callers
// may keep or discard them.
//
// # Diagnostics
//
// Scan errors other than io.EOF have concrete type *Error, carrying an
// ErrorKind classifying the failure and a Context locating it in the input.
// A Context renders as "name:line:column", with 1-based lines and 0-based
// byte columns, and the whole error renders in the conventional
// compiler-diagnostic shape:
//
//	config.json:3:17: error: invalid character escape: '\q'
//
// The scanner itself does not know the name of its input; Context values it
// reports carry an empty name, and the higher-level readers fill in the
// stream name they were configured with.
//
// # Parsing
//
// Use the ast subpackage to parse full values into syntax trees, or to fold
// over the elements of a large array or object without materializing the
// whole container. The pointer subpackage resolves RFC 6901 JSON Pointers
// against parsed values.
package jtext
