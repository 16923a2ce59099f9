// Copyright (C) 2025 P. Mehler. All Rights Reserved.

package ast

import (
	"fmt"
	"slices"
)

// A Valuer is a type that can render itself as a JSON value. It is the
// opt-in hook for native types that want a JSON representation without any
// runtime reflection.
type Valuer interface {
	JSONValue() Value
}

// ToValue converts a native Go value into a Value. It accepts nil, booleans,
// strings, integers, floating-point values, []any, map[string]any, and any
// type implementing Value or Valuer; the rules apply recursively to slice
// elements and map values. ToValue panics if v does not have one of those
// types: conversion of an unsupported type is a program bug, not a
// recoverable condition.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case Value:
		return t
	case Valuer:
		return t.JSONValue()
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Number(t)
	case int32:
		return Number(t)
	case int64:
		return Number(t)
	case uint:
		return Number(t)
	case uint32:
		return Number(t)
	case uint64:
		return Number(t)
	case float32:
		return Number(t)
	case float64:
		return Number(t)
	case []any:
		out := make(Array, len(t))
		for i, elt := range t {
			out[i] = ToValue(elt)
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		out := make(Object, len(keys))
		for i, key := range keys {
			out[i] = &Member{Key: key, Value: ToValue(t[key])}
		}
		return out
	default:
		panic(fmt.Sprintf("invalid value %T", v))
	}
}
