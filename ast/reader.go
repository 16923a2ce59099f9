// Copyright (C) 2025 P. Mehler. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/pmehler/jtext"
)

// ErrExtraInput is reported by ParseSingle when the input contains data
// after the first value.
var ErrExtraInput = errors.New("extra input after value")

// A DuplicatePolicy specifies how a reader treats an object literal whose
// member names repeat. Repeated names are a policy event, never silently
// kept: the resulting Object always has unique keys.
type DuplicatePolicy byte

// Constants defining the valid DuplicatePolicy values.
const (
	Reject    DuplicatePolicy = iota // report an error at the second occurrence
	KeepFirst                        // keep the first occurrence, parse and discard later ones
	KeepLast                         // keep the last occurrence, overwriting earlier ones
)

var policyStr = [...]string{Reject: "reject", KeepFirst: "keep-first", KeepLast: "keep-last"}

func (p DuplicatePolicy) String() string {
	if int(p) >= len(policyStr) {
		return fmt.Sprintf("policy(%d)", p)
	}
	return policyStr[p]
}

// Options carries the construction-time settings of a Reader, fixed for the
// reader's lifetime. A nil *Options provides the defaults: strict RFC 8259
// input and the Reject duplicate policy.
type Options struct {
	// AllowComments permits // and /* */ comments in the input.
	AllowComments bool

	// AllowTrailingCommas permits a comma before a closing "]" or "}".
	AllowTrailingCommas bool

	// Duplicates is the policy for repeated object member names.
	Duplicates DuplicatePolicy

	// Name is the stream name used in diagnostics. If empty, the name is
	// taken from the input when it has a Name method (as *os.File does);
	// otherwise diagnostics use "<input>".
	Name string
}

// A Reader reads JSON values from an input stream. Successive calls continue
// from wherever the previous value ended, so one reader can consume a whole
// sequence of JSON values from a single stream.
//
// A Reader owns its stream while in use and keeps no other mutable state
// than the scan position; callers sharing a reader across goroutines must
// serialize access themselves.
type Reader struct {
	sc     *jtext.Scanner
	name   string
	tcomma bool
	dups   DuplicatePolicy
}

// NewReader constructs a Reader that consumes input from r, configured by
// opts. A nil opts is equivalent to the zero Options.
func NewReader(r io.Reader, opts *Options) *Reader {
	var o Options
	if opts != nil {
		o = *opts
	}
	name := o.Name
	if name == "" {
		if n, ok := r.(interface{ Name() string }); ok {
			name = n.Name()
		}
	}
	sc := jtext.NewScanner(r)
	sc.AllowComments(o.AllowComments)
	return &Reader{sc: sc, name: name, tcomma: o.AllowTrailingCommas, dups: o.Duplicates}
}

// Parse parses and returns the JSON values from r with default options. In
// case of error, any complete values already parsed are returned along with
// the error.
func Parse(r io.Reader) ([]Value, error) {
	rd := NewReader(r, nil)
	var vs []Value
	for {
		v, err := rd.Value()
		if err == io.EOF {
			return vs, nil
		} else if err != nil {
			return vs, err
		}
		vs = append(vs, v)
	}
}

// ParseSingle parses and returns the single JSON value from r with default
// options. It reports ErrExtraInput if the input contains anything other
// than whitespace after the first value.
func ParseSingle(r io.Reader) (Value, error) {
	rd := NewReader(r, nil)
	v, err := rd.Value()
	if err == io.EOF {
		return nil, errors.New("no value found")
	} else if err != nil {
		return nil, err
	}
	if _, err := rd.Value(); err != io.EOF {
		return v, ErrExtraInput
	}
	return v, nil
}

// Value parses a single value of any kind from the input. At the end of the
// input, Value reports io.EOF. Any other error has concrete type
// *jtext.Error; no partial value is returned on error.
func (r *Reader) Value() (Value, error) {
	v, _, err := r.readValue()
	return v, err
}

// Object parses a single value from the input and requires it to be an
// object. The value is fully consumed from the stream before the check;
// there is no rollback on a kind mismatch.
func (r *Reader) Object() (Object, error) {
	v, ctx, err := r.readValue()
	if err != nil {
		return nil, err
	}
	obj, ok := v.(Object)
	if !ok {
		return nil, &jtext.Error{
			Kind:    jtext.ErrUnexpectedValue,
			Context: ctx,
			Message: fmt.Sprintf("unexpected %s value: value must be an object", Kind(v)),
		}
	}
	return obj, nil
}

// Array parses a single value from the input and requires it to be an
// array. The value is fully consumed from the stream before the check;
// there is no rollback on a kind mismatch.
func (r *Reader) Array() (Array, error) {
	v, ctx, err := r.readValue()
	if err != nil {
		return nil, err
	}
	arr, ok := v.(Array)
	if !ok {
		return nil, &jtext.Error{
			Kind:    jtext.ErrUnexpectedValue,
			Context: ctx,
			Message: fmt.Sprintf("unexpected %s value: value must be an array", Kind(v)),
		}
	}
	return arr, nil
}

// readValue parses one value and reports the context of its first token.
func (r *Reader) readValue() (_ Value, ctx jtext.Context, err error) {
	defer r.recoverParseError(&err)
	if err := r.nextToken(); err != nil {
		return nil, ctx, err
	}
	ctx = r.context()
	return r.parseValue(), ctx, nil
}

// parseValue consumes a single value of any kind.
// Precondition: the scanner is positioned on the value's first token.
func (r *Reader) parseValue() Value {
	switch tok := r.sc.Token(); tok {
	case jtext.LBrace:
		return r.parseObject()
	case jtext.LSquare:
		return r.parseArray()
	case jtext.String:
		return String(r.sc.Unescape())
	case jtext.Number:
		return Number(r.sc.Float64())
	case jtext.True:
		return Bool(true)
	case jtext.False:
		return Bool(false)
	case jtext.Null:
		return Null
	default:
		r.failf(jtext.ErrUnexpectedValue, "unexpected %v value", tok)
		panic("unreachable")
	}
}

// parseObject consumes the members of an object and the closing brace.
// Precondition: token == LBrace.
func (r *Reader) parseObject() Object {
	var obj Object
	if tok := r.advance("expected member name", jtext.String, jtext.RBrace); tok == jtext.RBrace {
		return obj // end of object
	}
	for {
		// Parse a single member: "key": value
		key := r.sc.Unescape()
		keyCtx := r.context()
		r.advance("expected ':'", jtext.Colon)
		r.advance("expected value")
		v := r.parseValue()
		r.insertMember(&obj, key, v, keyCtx)

		// Check whether we have more members (",") or are done ("}").
		if tok := r.advance("expected ',' or '}'", jtext.RBrace, jtext.Comma); tok == jtext.RBrace {
			return obj // end of object
		}
		if r.tcomma {
			// If trailing commas are allowed and the next token is a close
			// brace, consider this a valid end of the object. Otherwise, it
			// must be a key for a subsequent member.
			if next := r.advance("expected member name", jtext.String, jtext.RBrace); next == jtext.RBrace {
				return obj // end of object with trailing comma
			}
		} else {
			r.advance("expected member name", jtext.String)
		}
	}
}

// insertMember stores a parsed member into obj at its key-sorted position,
// applying the repeated-member policy when the key is already present.
func (r *Reader) insertMember(obj *Object, key string, v Value, ctx jtext.Context) {
	i, found := obj.search(key)
	if !found {
		*obj = slices.Insert(*obj, i, &Member{Key: key, Value: v})
		return
	}
	switch r.dups {
	case KeepFirst:
		// The repeat was parsed to consume its input; discard it.
	case KeepLast:
		(*obj)[i].Value = v
	default: // Reject
		panic(&jtext.Error{
			Kind:    jtext.ErrDuplicateMember,
			Context: ctx,
			Message: fmt.Sprintf("object member %q is not unique", key),
		})
	}
}

// parseArray consumes the elements of an array and the closing bracket.
// Precondition: token == LSquare.
func (r *Reader) parseArray() Array {
	var arr Array
	if tok := r.advance("expected value"); tok == jtext.RSquare {
		return arr // end of array
	}
	arr = append(arr, r.parseValue())
	for {
		if tok := r.advance("expected ',' or ']'", jtext.RSquare, jtext.Comma); tok == jtext.RSquare {
			return arr // end of array
		}

		// If trailing commas are allowed and the next token is a close
		// bracket, consider this a valid end of the array.
		if next := r.advance("expected value"); next == jtext.RSquare {
			if r.tcomma {
				return arr // end of array with trailing comma
			}
			r.failf(jtext.ErrSyntax, "expected value, got %v", next)
		}
		arr = append(arr, r.parseValue())
	}
}

// nextToken advances the scanner to the next non-comment token. It reports
// io.EOF unwrapped at a clean end of input.
func (r *Reader) nextToken() error {
	for {
		if err := r.sc.Next(); err != nil {
			if err == io.EOF {
				return io.EOF
			}
			return r.stamp(err)
		}
		if tok := r.sc.Token(); tok == jtext.LineComment || tok == jtext.BlockComment {
			continue // comments are discarded
		}
		return nil
	}
}

// advance moves to the next token and requires it to be one of tokens, if
// any are named. An end of input here is inside a value, so it is reported
// as an unexpected end-of-file with the given context message.
func (r *Reader) advance(want string, tokens ...jtext.Token) jtext.Token {
	if err := r.nextToken(); err != nil {
		if err == io.EOF {
			r.failf(jtext.ErrUnexpectedEOF, "unexpected end-of-file: %s", want)
		}
		panic(err)
	}
	tok := r.sc.Token()
	if len(tokens) != 0 && !slices.Contains(tokens, tok) {
		r.failf(jtext.ErrSyntax, "%s", tokLabel(tokens, tok))
	}
	return tok
}

func (r *Reader) failf(kind jtext.ErrorKind, msg string, args ...any) {
	panic(&jtext.Error{
		Kind:    kind,
		Context: r.context(),
		Message: fmt.Sprintf(msg, args...),
	})
}

func (r *Reader) recoverParseError(errp *error) {
	if p := recover(); p != nil {
		if err, ok := p.(*jtext.Error); ok {
			*errp = r.stamp(err)
		} else {
			panic(p)
		}
	}
}

// stamp fills the reader's stream name into an error that lacks one.
func (r *Reader) stamp(err error) error {
	if e, ok := err.(*jtext.Error); ok && e.Context.Name == "" {
		e.Context.Name = r.name
	}
	return err
}

// context reports the location of the start of the current token.
func (r *Reader) context() jtext.Context {
	ctx := r.sc.Context()
	ctx.Name = r.name
	return ctx
}

// tokLabel makes a human-readable summary for an expectation mismatch.
func tokLabel(tokens []jtext.Token, got jtext.Token) string {
	ss := make([]string, len(tokens))
	for i, tok := range tokens {
		ss[i] = tok.String()
	}
	var exp string
	if len(ss) == 1 {
		exp = ss[0]
	} else {
		last := len(ss) - 1
		exp = strings.Join(ss[:last], ", ") + " or " + ss[last]
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}
