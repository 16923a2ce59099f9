// Copyright (C) 2025 P. Mehler. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. A UTF-16
// surrogate pair of \uXXXX escapes is combined into a single code point.
// Unquote reports an error for an incomplete escape sequence, an invalid
// escape character, or an unpaired surrogate.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	for src.Len() != 0 {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
		dec = mem.Append(dec, src.SliceTo(i))

		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		b := src.At(0)
		src = src.SliceFrom(1)
		switch b {
		case '"', '\\', '/':
			dec = append(dec, b)
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			r, rest, err := decodeHexRune(src)
			if err != nil {
				return nil, err
			}
			src = rest
			if utf16.IsSurrogate(r) {
				lo, rest, err := decodeSurrogateTail(src)
				if err != nil {
					return nil, err
				}
				r = utf16.DecodeRune(r, lo)
				if r == utf8.RuneError {
					return nil, errors.New("unpaired UTF-16 surrogate")
				}
				src = rest
			}
			dec = utf8.AppendRune(dec, r)
		default:
			return nil, fmt.Errorf("invalid character escape: '\\%c'", b)
		}
	}
	return dec, nil
}

// decodeHexRune decodes the four hex digits of a \uXXXX escape from the front
// of src, whose "\u" prefix has already been removed.
func decodeHexRune(src mem.RO) (rune, mem.RO, error) {
	if src.Len() < 4 {
		return 0, src, errors.New("incomplete Unicode escape")
	}
	var v rune
	for i := 0; i < 4; i++ {
		b := src.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += rune(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += rune(b-'a') + 10
		} else if 'A' <= b && b <= 'F' {
			v += rune(b-'A') + 10
		} else {
			return 0, src, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, src.SliceFrom(4), nil
}

// decodeSurrogateTail decodes the \uXXXX escape that must chase a high
// surrogate.
func decodeSurrogateTail(src mem.RO) (rune, mem.RO, error) {
	if src.Len() < 2 || src.At(0) != '\\' || src.At(1) != 'u' {
		return 0, src, errors.New("unpaired UTF-16 surrogate")
	}
	return decodeHexRune(src.SliceFrom(2))
}
