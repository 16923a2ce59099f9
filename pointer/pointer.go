// Copyright (C) 2025 P. Mehler. All Rights Reserved.

// Package pointer implements JSON Pointer resolution as defined by RFC 6901.
package pointer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pmehler/jtext/ast"
)

// ErrCannotResolve is the sentinel reported when a pointer does not designate
// a value in the target document. Every resolution failure wraps this error,
// whatever its proximate cause; callers who want to distinguish the causes
// can inspect the error text.
var ErrCannotResolve = errors.New("cannot resolve pointer")

// Resolve returns the value designated by pointer within root. The empty
// pointer designates root itself.
//
// Resolve reports an error wrapping ErrCannotResolve if the pointer is not
// syntactically valid, or if any reference token does not match a value at
// its step: a missing object key, an array index that is out of range or not
// in canonical form, the "-" end-of-array marker, or a step into a value
// that is neither an object nor an array.
func Resolve(root ast.Value, pointer string) (ast.Value, error) {
	if pointer == "" {
		return root, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("%w %q: missing leading slash", ErrCannotResolve, pointer)
	}
	cur := root
	for _, tok := range strings.Split(pointer[1:], "/") {
		next, err := step(cur, unescapeToken(tok))
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrCannotResolve, pointer, err)
		}
		cur = next
	}
	return cur, nil
}

// MustResolve returns the value designated by pointer within root, or panics
// if the pointer cannot be resolved.
func MustResolve(root ast.Value, pointer string) ast.Value {
	v, err := Resolve(root, pointer)
	if err != nil {
		panic(fmt.Sprintf("resolve failed: %v", err))
	}
	return v
}

// step moves one reference token deeper into v.
func step(v ast.Value, tok string) (ast.Value, error) {
	switch t := v.(type) {
	case ast.Object:
		if m := t.Find(tok); m != nil {
			return m.Value, nil
		}
		return nil, fmt.Errorf("no member %q", tok)
	case ast.Array:
		n, err := parseIndex(tok)
		if err != nil {
			return nil, err
		}
		if n >= len(t) {
			return nil, fmt.Errorf("index %d out of range (0..%d)", n, len(t)-1)
		}
		return t[n], nil
	default:
		return nil, fmt.Errorf("cannot traverse %s value", ast.Kind(v))
	}
}

// unescapeToken replaces the escape sequences of a reference token. Order
// matters: "~1" is rewritten before "~0", so that "~01" decodes to "~1" and
// not to "/".
func unescapeToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~1", "/")
	return strings.ReplaceAll(tok, "~0", "~")
}

// parseIndex parses tok as a canonical base-10 array index: no sign, no
// leading zeroes, digits only. The "-" marker from RFC 6901 designates the
// position after the last element, which is never an existing value, so it
// is rejected here along with everything else non-canonical.
func parseIndex(tok string) (int, error) {
	if tok == "" || (tok[0] == '0' && len(tok) > 1) {
		return 0, fmt.Errorf("invalid array index %q", tok)
	}
	n := 0
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid array index %q", tok)
		}
		if n > (1<<31-1)/10 {
			return 0, fmt.Errorf("array index %q out of range", tok)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
