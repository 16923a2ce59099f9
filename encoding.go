// Copyright (C) 2025 P. Mehler. All Rights Reserved.

package jtext

import (
	"errors"
	"strings"

	"github.com/pmehler/jtext/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string {
	var sb strings.Builder
	sb.Grow(len(src) + 2)
	sb.WriteByte('"')
	sb.Write(escape.Quote(mem.S(src)))
	sb.WriteByte('"')
	return sb.String()
}

// Unquote decodes a JSON string value.  Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents; UTF-16
// surrogate pairs are combined. Unquote reports an error for a malformed
// escape sequence or an unpaired surrogate.
func Unquote(src string) (string, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return "", errors.New("missing quotations")
	}
	dec, err := escape.Unquote(mem.S(src[1 : len(src)-1]))
	if err != nil {
		return "", err
	}
	return string(dec), nil
}
