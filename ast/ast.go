// Copyright (C) 2025 P. Mehler. All Rights Reserved.

// Package ast defines the syntax tree for JSON values, and a reader that
// constructs syntax trees from JSON source text.
package ast

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pmehler/jtext"
)

// A Value is a JSON value: Null, a Bool, a String, a Number, an Array, or an
// Object. A Value is immutable once constructed and may be shared freely.
type Value interface {
	// JSON renders the value as compact JSON text.
	JSON() string

	// String renders a human-readable representation of the value.
	String() string
}

// Null is the JSON null constant.
var Null Value = nullValue{}

type nullValue struct{}

func (nullValue) JSON() string   { return "null" }
func (nullValue) String() string { return "null" }

// A Bool is a JSON Boolean constant, true or false.
type Bool bool

func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

func (b Bool) String() string { return b.JSON() }

// A String is a JSON string value, holding its decoded (unescaped) content.
type String string

func (s String) JSON() string { return jtext.Quote(string(s)) }

func (s String) String() string { return string(s) }

func (s String) Len() int { return len(s) }

// A Number is a JSON number value. All numbers are stored as doubles,
// whether or not the source text was integral.
type Number float64

func (n Number) JSON() string { return strconv.FormatFloat(float64(n), 'g', -1, 64) }

func (n Number) String() string { return n.JSON() }

// Int returns n truncated toward zero.
func (n Number) Int() int64 { return int64(float64(n)) }

// An Array is a sequence of JSON values.
type Array []Value

func (a Array) JSON() string {
	if len(a) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(a[0].JSON())
	for _, elt := range a[1:] {
		sb.WriteByte(',')
		sb.WriteString(elt.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (a Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a)) }

func (a Array) Len() int { return len(a) }

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

func (m *Member) JSON() string { return jtext.Quote(m.Key) + ":" + m.Value.JSON() }

func (m *Member) String() string { return fmt.Sprintf("Member(key=%q)", m.Key) }

// Field constructs an object member with the given key and value.
// The value must be a type accepted by ToValue.
func Field(key string, value any) *Member {
	return &Member{Key: key, Value: ToValue(value)}
}

// An Object is a collection of key-value members, ordered by key.
// Keys are unique by construction: the reader applies its repeated-member
// policy before a member is stored, so an Object never holds two members
// with the same key.
type Object []*Member

// Find returns the member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	if i, ok := o.search(key); ok {
		return o[i]
	}
	return nil
}

// Get returns the value of the member of o with the given key, or an error
// if no such member exists.
func (o Object) Get(key string) (Value, error) {
	if m := o.Find(key); m != nil {
		return m.Value, nil
	}
	return nil, fmt.Errorf("object member %q is not present", key)
}

func (o Object) Len() int { return len(o) }

func (o Object) JSON() string {
	if len(o) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	sb.WriteString(o[0].JSON())
	for _, m := range o[1:] {
		sb.WriteByte(',')
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (o Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o)) }

// search locates the insertion point for key in o, and reports whether a
// member with that key is already present.
func (o Object) search(key string) (int, bool) {
	return slices.BinarySearchFunc(o, key, func(m *Member, key string) int {
		return strings.Compare(m.Key, key)
	})
}

// As returns v as a value of concrete type T, or an error if v is of any
// other kind.
func As[T Value](v Value) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}
	var zero T
	return zero, fmt.Errorf("unexpected %s value: want %s", Kind(v), Kind(zero))
}

// Must returns v as a value of concrete type T, or panics if v is of any
// other kind. It is shorthand for As in contexts where the caller has
// already guaranteed the kind of v, so that a mismatch is a program bug.
func Must[T Value](v Value) T {
	t, err := As[T](v)
	if err != nil {
		panic(err)
	}
	return t
}

// Kind reports the JSON kind of v as a human-readable label.
func Kind(v Value) string {
	switch v.(type) {
	case nullValue:
		return "null"
	case Bool:
		return "boolean"
	case String:
		return "string"
	case Number:
		return "number"
	case Array:
		return "array"
	case Object:
		return "object"
	case nil:
		return "empty"
	}
	return fmt.Sprintf("%T", v)
}
