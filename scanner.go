// Copyright (C) 2025 P. Mehler. All Rights Reserved.

package jtext

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/pmehler/jtext/internal/escape"

	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Number               // number
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null

	BlockComment // comment: /* ... */
	LineComment  // comment: // ... <LF>
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",

	BlockComment: "block comment",
	LineComment:  "line comment",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Scanner reads lexical tokens from an input stream.  Each call to Next
// advances the scanner to the next token, or reports an error.
//
// The scanner keeps at most one rune of putback in its buffered reader, used
// to give back the delimiter that ends a number or constant.
type Scanner struct {
	r        *bufio.Reader
	comments bool         // allow comments
	buf      bytes.Buffer // current token
	tok      Token
	err      error

	// Apparent position of the start of the current token (p) and of the
	// scan point (e). Lines are 0-based here; Context converts to 1-based.
	pline, pcol int
	eline, ecol int

	// Position before the most recently read rune, restored by unrune.
	sline, scol int
	last        int // size in bytes of the last-read rune
}

// NewScanner constructs a new lexical scanner that consumes input from r.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br}
}

// AllowComments configures the scanner to report (true) or reject (false)
// comment tokens. Comments are a non-standard extension of the JSON spec.  If
// enabled, C++ style block comments (/* ... */) and line comments (// ...)
// are recognized and emitted as tokens.
func (s *Scanner) AllowComments(ok bool) { s.comments = ok }

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF.
func (s *Scanner) Next() error {
	s.buf.Reset()
	s.err = nil
	s.tok = Invalid
	s.pline, s.pcol = s.eline, s.ecol

	for {
		ch, err := s.rune()
		if err == io.EOF {
			return s.setErr(err)
		} else if err != nil {
			return s.failIO(err)
		}

		// Discard whitespace.
		if isSpace(ch) {
			s.pline, s.pcol = s.eline, s.ecol
			continue
		}

		// Handle punctuation.
		if t, ok := selfDelim(ch); ok {
			s.buf.WriteRune(ch)
			s.tok = t
			return nil
		}

		// Handle numbers.
		if isNumStart(ch) {
			return s.scanNumber(ch)
		}

		// Handle string values.
		if ch == '"' {
			return s.scanString(ch)
		}

		// Handle comments, if enabled.
		if ch == '/' && s.comments {
			return s.scanComment(ch)
		}

		// Handle constants: true, false, null
		var want mem.RO
		switch ch {
		case 't':
			s.tok = True
			want = mem.S("true")
			err = s.scanName(ch)
		case 'f':
			s.tok = False
			want = mem.S("false")
			err = s.scanName(ch)
		case 'n':
			s.tok = Null
			want = mem.S("null")
			err = s.scanName(ch)
		default:
			return s.fail(ErrSyntax, "syntax error at %q", string(ch))
		}
		if err != nil {
			return err
		} else if got := mem.B(s.buf.Bytes()); !got.Equal(want) {
			return s.fail(ErrSyntax, "syntax error at '%s': unknown constant", got.StringCopy())
		}
		return nil // OK, token is already set
	}
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token.  The return value is
// only valid until the next call of Next. The caller must copy the contents of
// the returned slice if it is needed beyond that.
func (s *Scanner) Text() []byte { return s.buf.Bytes() }

// Context returns the location of the start of the current token. The stream
// name is left empty; the reader that owns the scanner fills it in.
func (s *Scanner) Context() Context {
	return Context{Line: s.pline + 1, Column: s.pcol}
}

// Unescape returns the decoded content of the current token.
// Precondition: Token() == String.
func (s *Scanner) Unescape() string {
	text := s.buf.Bytes()
	dec, err := escape.Unquote(mem.B(text[1 : len(text)-1]))
	if err != nil {
		panic(err) // unreachable: the scanner validated the escapes
	}
	return string(dec)
}

// Float64 returns the value of the current token as a double.
// Precondition: Token() == Number.
func (s *Scanner) Float64() float64 {
	v, err := strconv.ParseFloat(s.buf.String(), 64)
	if err != nil {
		panic(err) // unreachable: the scanner validated the number grammar
	}
	return v
}

func (s *Scanner) scanString(open rune) error {
	s.buf.WriteRune(open)
	for {
		ch, err := s.rune()
		if err == io.EOF {
			return s.fail(ErrUnexpectedEOF, "unexpected end-of-file: unterminated string")
		} else if err != nil {
			return s.failIO(err)
		}
		if ch == '"' {
			s.buf.WriteRune(ch)
			s.tok = String
			return nil
		}
		if ch == '\\' {
			s.buf.WriteRune(ch)
			if err := s.scanEscape(); err != nil {
				return err
			}
		} else if ch < ' ' {
			return s.fail(ErrSyntax, "syntax error at %q: unescaped control character", string(ch))
		} else if ch == utf8.RuneError && s.last == 1 {
			return s.fail(ErrInvalidUnicode, "invalid Unicode character")
		} else {
			s.buf.WriteRune(ch)
		}
	}
}

// scanEscape consumes and validates the remainder of a \-escape whose leading
// backslash has already been consumed.
func (s *Scanner) scanEscape() error {
	ch, err := s.rune()
	if err == io.EOF {
		return s.fail(ErrUnexpectedEOF, "unexpected end-of-file: incomplete escape sequence")
	} else if err != nil {
		return s.failIO(err)
	}
	switch ch {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		s.buf.WriteRune(ch)
		return nil
	case 'u':
		s.buf.WriteRune(ch)
		hi, err := s.readHex4()
		if err != nil {
			return err
		}
		if !utf16.IsSurrogate(rune(hi)) {
			if !utf8.ValidRune(rune(hi)) {
				return s.fail(ErrInvalidUnicode, `invalid Unicode character: \u%04x`, hi)
			}
			return nil
		}
		if rune(hi) >= surrLow {
			// A low surrogate with no preceding high surrogate.
			return s.fail(ErrUnpairedSurrogate, "unpaired UTF-16 surrogate")
		}

		// A high surrogate must be immediately chased by a \uXXXX low
		// surrogate, and the pair must combine to a valid code point.
		for _, want := range [...]rune{'\\', 'u'} {
			ch, err := s.rune()
			if err == io.EOF {
				return s.fail(ErrUnexpectedEOF, "unexpected end-of-file: incomplete escape sequence")
			} else if err != nil {
				return s.failIO(err)
			} else if ch != want {
				return s.fail(ErrUnpairedSurrogate, "unpaired UTF-16 surrogate")
			}
			s.buf.WriteRune(ch)
		}
		lo, err := s.readHex4()
		if err != nil {
			return err
		}
		if utf16.DecodeRune(rune(hi), rune(lo)) == utf8.RuneError {
			return s.fail(ErrUnpairedSurrogate, "unpaired UTF-16 surrogate")
		}
		return nil
	default:
		return s.fail(ErrInvalidEscape, `invalid character escape: '\%s'`, string(ch))
	}
}

func (s *Scanner) scanNumber(start rune) error {
	s.buf.WriteRune(start)

	if start == '-' {
		// If there is a leading sign, we need at least one digit.
		// Otherwise, we already have one in start.
		ch, err := s.require(isDigit, "digit")
		if err != nil {
			return err
		}
		s.buf.WriteRune(ch)
	}

	// Consume the remainder of the integer part.
	_, ch, err := s.readWhile(isDigit)
	if err != nil && err != io.EOF {
		return s.failIO(err)
	}

	// Check for extra leading zeroes, which are disallowed by the JSON spec.
	// That is: 0.12 is OK, 01.2 is not.
	if hasExtraLeadingZeroes(s.buf.Bytes()) {
		return s.fail(ErrSyntax, "syntax error at '%s': extra leading zeroes", s.buf.String())
	}
	if err == io.EOF {
		s.tok = Number
		return nil
	}

	// If a decimal point follows, consume a fractional part.
	if ch == '.' {
		s.buf.WriteRune(ch)
		var nr int
		nr, ch, err = s.readWhile(isDigit)
		if err != nil && err != io.EOF {
			return s.failIO(err)
		} else if nr == 0 {
			return s.fail(ErrSyntax, "syntax error at '%s': no digits after decimal point", s.buf.String())
		}
	}

	// If an exponent follows, consume it.
	if ch != 'E' && ch != 'e' {
		s.unrune()
		s.tok = Number
		return nil
	}

	s.buf.WriteRune(ch)
	ch, err = s.require(isExpStart, "sign or digit")
	if err != nil {
		return err
	}
	s.buf.WriteRune(ch)
	nr, _, err := s.readWhile(isDigit)
	if nr == 0 && (ch == '-' || ch == '+') {
		// It's OK to have no digits if the previous rune was not a sign,
		// otherwise we have to have at least one.
		return s.fail(ErrSyntax, "syntax error at '%s': missing exponent digits", s.buf.String())
	} else if err == io.EOF {
		s.tok = Number
		return nil
	} else if err != nil {
		return s.failIO(err)
	}
	s.unrune()
	s.tok = Number
	return nil
}

func (s *Scanner) scanComment(first rune) error {
	s.buf.WriteRune(first)
	ch, err := s.rune()
	if err == io.EOF {
		return s.fail(ErrSyntax, "syntax error at %q", "/")
	} else if err != nil {
		return s.failIO(err)
	}
	switch ch {
	case '/': // line comment to LF
		s.buf.WriteRune(ch)
		_, end, err := s.readWhile(isNotLF)
		if err == nil {
			s.buf.WriteRune(end)
		} else if err != io.EOF {
			return s.failIO(err)
		}
		s.tok = LineComment
		return nil

	case '*': // block comment
		s.buf.WriteRune(ch)
		for {
			_, end, err := s.readWhile(isNotStar)
			if err == io.EOF {
				return s.fail(ErrUnterminatedComment, "unterminated multiline comment")
			} else if err != nil {
				return s.failIO(err)
			}
			s.buf.WriteRune(end) // end == '*'

			// Check whether we have "*/", which would end the comment. A run
			// of stars must be consumed here one by one: each star may be the
			// one preceding the closing slash.
			for {
				next, err := s.rune()
				if err == io.EOF {
					return s.fail(ErrUnterminatedComment, "unterminated multiline comment")
				} else if err != nil {
					return s.failIO(err)
				}
				s.buf.WriteRune(next)
				if next == '/' {
					s.tok = BlockComment
					return nil
				}
				if next != '*' {
					break // keep scanning for the end of the block
				}
			}
		}

	default:
		s.unrune()
		return s.fail(ErrSyntax, "syntax error at %q: invalid comment", "/"+string(ch))
	}
}

func (s *Scanner) scanName(first rune) error {
	s.buf.WriteRune(first)
	_, _, err := s.readWhile(isNameRune)
	if err == io.EOF {
		return nil
	} else if err != nil {
		return s.failIO(err)
	}
	s.unrune()
	return nil
}

func (s *Scanner) rune() (rune, error) {
	ch, nb, err := s.r.ReadRune()
	s.last = nb
	s.sline, s.scol = s.eline, s.ecol
	if ch == '\n' {
		s.eline++
		s.ecol = 0
	} else {
		s.ecol += nb
	}
	return ch, err
}

func (s *Scanner) unrune() {
	s.eline, s.ecol = s.sline, s.scol
	s.last = 0
	s.r.UnreadRune()
}

// require reads a single rune matching f from the input, or reports an error
// mentioning the desired label.
func (s *Scanner) require(f func(rune) bool, label string) (rune, error) {
	ch, err := s.rune()
	if err == io.EOF {
		return 0, s.fail(ErrUnexpectedEOF, "unexpected end-of-file: want %s", label)
	} else if err != nil {
		return 0, s.failIO(err)
	} else if !f(ch) {
		s.unrune()
		return 0, s.fail(ErrSyntax, "syntax error at %q: want %s", string(ch), label)
	}
	return ch, nil
}

// readWhile consumes runes matching f from the input until EOF or until a rune
// not matching f is found. The first non-matching rune (if any) is returned.
// It is the caller's responsibility to unread this rune, if desired.
// The int reports the number of runes consumed.
func (s *Scanner) readWhile(f func(rune) bool) (int, rune, error) {
	var nr int
	for {
		ch, err := s.rune()
		if err != nil {
			return nr, 0, err
		} else if !f(ch) {
			return nr, ch, nil
		}
		s.buf.WriteRune(ch)
		nr++
	}
}

// readHex4 reads exactly 4 hexadecimal digits from the input and returns
// their value.
func (s *Scanner) readHex4() (int, error) {
	var v int
	for i := 0; i < 4; i++ {
		ch, err := s.rune()
		if err == io.EOF {
			return 0, s.fail(ErrUnexpectedEOF, "unexpected end-of-file: incomplete Unicode escape")
		} else if err != nil {
			return 0, s.failIO(err)
		}
		d := hexValue(ch)
		if d < 0 {
			return 0, s.fail(ErrInvalidEscape, "invalid Unicode escape: %q is not a hex digit", string(ch))
		}
		s.buf.WriteRune(ch)
		v = v<<4 | d
	}
	return v, nil
}

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

func (s *Scanner) fail(kind ErrorKind, msg string, args ...any) error {
	return s.setErr(&Error{
		Kind:    kind,
		Context: s.Context(),
		Message: fmt.Sprintf(msg, args...),
	})
}

func (s *Scanner) failIO(err error) error {
	return s.setErr(&Error{
		Kind:    ErrIO,
		Context: s.Context(),
		Message: err.Error(),
		err:     err,
	})
}

// surrLow is the first UTF-16 low surrogate.
const surrLow = 0xDC00

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNotStar(ch rune) bool  { return ch != '*' }
func isNotLF(ch rune) bool    { return ch != '\n' }
func isNumStart(ch rune) bool { return ch == '-' || isDigit(ch) }
func isExpStart(ch rune) bool { return ch == '-' || ch == '+' || isDigit(ch) }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }
func isNameRune(ch rune) bool { return ch >= 'a' && ch <= 'z' }

func hexValue(ch rune) int {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0')
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10
	case ch >= 'A' && ch <= 'F':
		return int(ch-'A') + 10
	}
	return -1
}

// hasExtraLeadingZeroes reports whether the representation of an integer in
// buf has redundant leading zeroes, disallowed by the spec.
//
// OK: 0, 0.1, -1.0, -0.1 are all OK.
// Bad: -01, 01.2, -01.0, 00.1.
func hasExtraLeadingZeroes(buf []byte) bool {
	if buf[0] == '-' {
		buf = buf[1:] // skip leading sign
	}
	if buf[0] == '0' {
		// A leading zero is OK if it's the only digit.
		return len(buf) > 1
	}
	return false
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch rune) (Token, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
