// Copyright (C) 2025 P. Mehler. All Rights Reserved.

package ast

import (
	"fmt"

	"github.com/creachadair/mds/mapset"
	"github.com/pmehler/jtext"
)

// FoldArray consumes an array from r, invoking f once per element with the
// accumulator and the fully-parsed element, in order. The elements of the
// array are never collected into an Array; each is handed to f and released,
// so folding a very large array needs memory for only one element at a time
// (nested containers are still fully materialized).
//
// Each element is visited before the following delimiter is read. If parsing
// fails partway, or f reports an error, FoldArray returns the accumulator as
// of the last completed invocation of f together with the error, so the
// caller keeps everything that was successfully read from a truncated or
// malformed document. At the end of the input FoldArray returns io.EOF.
//
// The callback f must not re-enter r.
func FoldArray[A any](r *Reader, acc A, f func(acc A, v Value) (A, error)) (A, error) {
	if err := r.foldStart(jtext.LSquare, "array"); err != nil {
		return acc, err
	}
	first := true
	for {
		v, done, err := r.foldElement(first)
		if err != nil {
			return acc, err
		} else if done {
			return acc, nil
		}
		first = false

		next, err := f(acc, v)
		if err != nil {
			return acc, err
		}
		acc = next
	}
}

// FoldObject consumes an object from r, invoking f once per member with the
// accumulator, the member's key, and its fully-parsed value, in the order
// the members appear in the input. It has the same incremental consumption
// and partial-result contract as FoldArray.
//
// The reader's repeated-member policy applies per streamed member: under
// Reject a repeated key stops the fold with an error, under KeepFirst the
// repeat is parsed but not visited, and under KeepLast every occurrence is
// visited (a later visit supersedes an earlier one in an overwriting
// accumulator).
func FoldObject[A any](r *Reader, acc A, f func(acc A, key string, v Value) (A, error)) (A, error) {
	if err := r.foldStart(jtext.LBrace, "object"); err != nil {
		return acc, err
	}
	seen := mapset.New[string]()
	first := true
	for {
		key, v, visit, done, err := r.foldMember(first, seen)
		if err != nil {
			return acc, err
		} else if done {
			return acc, nil
		}
		first = false
		if !visit {
			continue
		}

		next, err := f(acc, key, v)
		if err != nil {
			return acc, err
		}
		acc = next
	}
}

// foldStart consumes the opening token of a fold and requires it to begin a
// container of the stated kind. At a clean end of input it reports io.EOF.
func (r *Reader) foldStart(open jtext.Token, label string) (err error) {
	defer r.recoverParseError(&err)
	if err := r.nextToken(); err != nil {
		return err
	}
	if tok := r.sc.Token(); tok != open {
		r.failf(jtext.ErrUnexpectedValue, "unexpected %v value: value must be an %s", tok, label)
	}
	return nil
}

// foldElement parses one array element, or reports that the array ended.
func (r *Reader) foldElement(first bool) (_ Value, done bool, err error) {
	defer r.recoverParseError(&err)
	if first {
		if tok := r.advance("expected value"); tok == jtext.RSquare {
			return nil, true, nil
		}
		return r.parseValue(), false, nil
	}
	if tok := r.advance("expected ',' or ']'", jtext.RSquare, jtext.Comma); tok == jtext.RSquare {
		return nil, true, nil
	}
	if next := r.advance("expected value"); next == jtext.RSquare {
		if r.tcomma {
			return nil, true, nil // end of array with trailing comma
		}
		r.failf(jtext.ErrSyntax, "expected value, got %v", next)
	}
	return r.parseValue(), false, nil
}

// foldMember parses one object member, or reports that the object ended.
// The visit result is false when the repeated-member policy suppresses the
// member.
func (r *Reader) foldMember(first bool, seen mapset.Set[string]) (key string, _ Value, visit, done bool, err error) {
	defer r.recoverParseError(&err)

	var tok jtext.Token
	if first {
		tok = r.advance("expected member name", jtext.String, jtext.RBrace)
	} else {
		if tok = r.advance("expected ',' or '}'", jtext.RBrace, jtext.Comma); tok == jtext.RBrace {
			return "", nil, false, true, nil
		}
		if r.tcomma {
			tok = r.advance("expected member name", jtext.String, jtext.RBrace)
		} else {
			tok = r.advance("expected member name", jtext.String)
		}
	}
	if tok == jtext.RBrace {
		return "", nil, false, true, nil
	}

	key = r.sc.Unescape()
	keyCtx := r.context()
	r.advance("expected ':'", jtext.Colon)
	r.advance("expected value")
	v := r.parseValue()

	visit = true
	if seen.Has(key) {
		switch r.dups {
		case KeepFirst:
			visit = false
		case KeepLast:
			// visit every occurrence
		default: // Reject
			panic(&jtext.Error{
				Kind:    jtext.ErrDuplicateMember,
				Context: keyCtx,
				Message: fmt.Sprintf("object member %q is not unique", key),
			})
		}
	} else {
		seen.Add(key)
	}
	return key, v, visit, false, nil
}
