// Copyright (C) 2025 P. Mehler. All Rights Reserved.

package jtext_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pmehler/jtext"
)

func scanAll(t *testing.T, s *jtext.Scanner) []jtext.Token {
	t.Helper()
	var got []jtext.Token
	for s.Next() == nil {
		got = append(got, s.Token())
	}
	if s.Err() != io.EOF {
		t.Errorf("Next failed: %v", s.Err())
	}
	return got
}

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []jtext.Token
	}{
		// Empty inputs
		{"", nil},
		{"  ", nil},
		{"\n\n  \n", nil},
		{"\t  \r\n \t  \r\n", nil},

		// Constants
		{"true false null", []jtext.Token{jtext.True, jtext.False, jtext.Null}},

		// Punctuation
		{"{ [ ] } , :", []jtext.Token{
			jtext.LBrace, jtext.LSquare, jtext.RSquare, jtext.RBrace, jtext.Comma, jtext.Colon,
		}},

		// Strings
		{`"" "a b c" "a\nb\tc"`, []jtext.Token{jtext.String, jtext.String, jtext.String}},
		{`"\"\\\/\b\f\n\r\t"`, []jtext.Token{jtext.String}},
		{`"\u0000\u01fc\uAA9c"`, []jtext.Token{jtext.String}},
		{`"\ud83d\ude06"`, []jtext.Token{jtext.String}}, // surrogate pair

		// Numbers
		{`0 -1 5139 2.3 5e+9 3.6E+4 -0.001E-100`, []jtext.Token{
			jtext.Number, jtext.Number, jtext.Number,
			jtext.Number, jtext.Number, jtext.Number, jtext.Number,
		}},

		// Mixed types
		{`{true,"false":-15 null[]}`, []jtext.Token{
			jtext.LBrace, jtext.True, jtext.Comma, jtext.String, jtext.Colon,
			jtext.Number, jtext.Null, jtext.LSquare, jtext.RSquare, jtext.RBrace,
		}},
		{`{"a": true, "b":[null, 1, 0.5]}`, []jtext.Token{
			jtext.LBrace,
			jtext.String, jtext.Colon, jtext.True, jtext.Comma,
			jtext.String, jtext.Colon,
			jtext.LSquare,
			jtext.Null, jtext.Comma, jtext.Number, jtext.Comma, jtext.Number,
			jtext.RSquare,
			jtext.RBrace,
		}},
		{`"a",1,true
       false["b"]
       `, []jtext.Token{
			jtext.String, jtext.Comma, jtext.Number, jtext.Comma, jtext.True,
			jtext.False, jtext.LSquare, jtext.String, jtext.RSquare,
		}},
	}

	for _, test := range tests {
		s := jtext.NewScanner(strings.NewReader(test.input))
		got := scanAll(t, s)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScanner_withComments(t *testing.T) {
	tests := []struct {
		input string
		want  []jtext.Token
		coms  []string
	}{
		{"/* block comment */\n\n\n", []jtext.Token{jtext.BlockComment},
			[]string{"/* block comment */"}},
		{"// line 1\n\n// line 2\n", []jtext.Token{jtext.LineComment, jtext.LineComment},
			[]string{"// line 1\n", "// line 2\n"}}, // N.B. includes terminating newline, if present
		{"// line at EOF", []jtext.Token{jtext.LineComment},
			[]string{"// line at EOF"}},
		{`{
 "x": 1, // howdy do
 "y" /* hide me */ : 2.0 }`, []jtext.Token{
			jtext.LBrace, jtext.String, jtext.Colon, jtext.Number, jtext.Comma, jtext.LineComment,
			jtext.String, jtext.BlockComment, jtext.Colon, jtext.Number, jtext.RBrace,
		}, []string{
			"// howdy do\n", "/* hide me */",
		}},

		{"/* x */\n{\n}//foo", []jtext.Token{
			jtext.BlockComment, jtext.LBrace, jtext.RBrace, jtext.LineComment,
		}, []string{
			"/* x */", "//foo",
		}},

		{"/**\n*/", []jtext.Token{jtext.BlockComment}, []string{"/**\n*/"}},

		// Star runs inside and at the end of a block comment.
		{`/* a*b */ /* c** */ 0`, []jtext.Token{
			jtext.BlockComment, jtext.BlockComment, jtext.Number,
		}, []string{
			"/* a*b */", "/* c** */",
		}},

		{`/**/"foo"/***/"bar"/****/"baz"/*****/false/*x*/null`, []jtext.Token{
			jtext.BlockComment, jtext.String,
			jtext.BlockComment, jtext.String,
			jtext.BlockComment, jtext.String,
			jtext.BlockComment, jtext.False,
			jtext.BlockComment, jtext.Null,
		}, []string{
			"/**/", "/***/", "/****/", "/*****/", "/*x*/",
		}},
	}

	for _, test := range tests {
		var coms []string
		s := jtext.NewScanner(strings.NewReader(test.input))
		s.AllowComments(true)
		var got []jtext.Token
		for s.Next() == nil {
			got = append(got, s.Token())
			if tok := s.Token(); tok == jtext.LineComment || tok == jtext.BlockComment {
				coms = append(coms, string(s.Text()))
			}
		}
		if s.Err() != io.EOF {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
		if diff := cmp.Diff(test.coms, coms); diff != "" {
			t.Errorf("Input: %#q\nComments: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScanner_errors(t *testing.T) {
	tests := []struct {
		input    string
		comments bool
		kind     jtext.ErrorKind
	}{
		{`"abc`, false, jtext.ErrUnexpectedEOF},               // unterminated string
		{"\"a\nb\"", false, jtext.ErrSyntax},                  // unescaped control character
		{"\"\xff\"", false, jtext.ErrInvalidUnicode},          // invalid UTF-8 in string
		{`"\q"`, false, jtext.ErrInvalidEscape},               // unknown escape letter
		{`"\u12"`, false, jtext.ErrUnexpectedEOF},             // truncated Unicode escape
		{`"\u12x9"`, false, jtext.ErrInvalidEscape},           // non-hex in Unicode escape
		{`"\udc00"`, false, jtext.ErrUnpairedSurrogate},       // low surrogate first
		{`"\ud800 "`, false, jtext.ErrUnpairedSurrogate},      // high surrogate not chased
		{`"\ud800\ud800"`, false, jtext.ErrUnpairedSurrogate}, // two high surrogates
		{`01`, false, jtext.ErrSyntax},                        // extra leading zero
		{`-01.5`, false, jtext.ErrSyntax},                     // extra leading zero
		{`1.`, false, jtext.ErrSyntax},                        // no digits after point
		{`5e+`, false, jtext.ErrSyntax},                       // missing exponent digits
		{`-`, false, jtext.ErrUnexpectedEOF},                  // sign with no digits
		{`tru`, false, jtext.ErrSyntax},                       // unknown constant
		{`nulll`, false, jtext.ErrSyntax},                     // unknown constant
		{`@`, false, jtext.ErrSyntax},                         // stray punctuation
		{"/* x", true, jtext.ErrUnterminatedComment},
		{"/* x *", true, jtext.ErrUnterminatedComment},
		{"/x", true, jtext.ErrSyntax}, // invalid comment opener
		{"// ok", false, jtext.ErrSyntax}, // comments not enabled
	}

	for _, test := range tests {
		s := jtext.NewScanner(strings.NewReader(test.input))
		s.AllowComments(test.comments)
		var err error
		for {
			if err = s.Next(); err != nil {
				break
			}
		}
		if err == io.EOF {
			t.Errorf("Input: %#q: scan succeeded, want %v error", test.input, test.kind)
			continue
		}
		var se *jtext.Error
		if !errors.As(err, &se) {
			t.Errorf("Input: %#q: got %v, want *jtext.Error", test.input, err)
		} else if se.Kind != test.kind {
			t.Errorf("Input: %#q: got %v error, want %v", test.input, se.Kind, test.kind)
		}
	}
}

func TestScanner_positions(t *testing.T) {
	type tokPos struct {
		Tok jtext.Token
		Pos string
	}
	tests := []struct {
		input string
		want  []tokPos
	}{
		{"", nil},
		{"{ }", []tokPos{{jtext.LBrace, "<input>:1:0"}, {jtext.RBrace, "<input>:1:2"}}},
		{`"foo" // bar`, []tokPos{{jtext.String, "<input>:1:0"}, {jtext.LineComment, "<input>:1:6"}}},
		{"/* ok */\ntrue\n false\n", []tokPos{
			{jtext.BlockComment, "<input>:1:0"}, {jtext.True, "<input>:2:0"}, {jtext.False, "<input>:3:1"},
		}},
		{"/* ok\n*/\n null", []tokPos{{jtext.BlockComment, "<input>:1:0"}, {jtext.Null, "<input>:3:1"}}},
		{"[1, 2,\n 3]", []tokPos{
			{jtext.LSquare, "<input>:1:0"}, {jtext.Number, "<input>:1:1"}, {jtext.Comma, "<input>:1:2"},
			{jtext.Number, "<input>:1:4"}, {jtext.Comma, "<input>:1:5"},
			{jtext.Number, "<input>:2:1"}, {jtext.RSquare, "<input>:2:2"},
		}},
	}
	for _, tc := range tests {
		var got []tokPos
		s := jtext.NewScanner(strings.NewReader(tc.input))
		s.AllowComments(true)
		for s.Next() == nil {
			got = append(got, tokPos{s.Token(), s.Context().String()})
		}
		if s.Err() != io.EOF {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestScanner_decode(t *testing.T) {
	mustScan := func(t *testing.T, input string, want jtext.Token) *jtext.Scanner {
		t.Helper()
		s := jtext.NewScanner(strings.NewReader(input))
		if err := s.Next(); err != nil {
			t.Fatalf("Next failed: %v", err)
		} else if s.Token() != want {
			t.Fatalf("Next token: got %v, want %v", s.Token(), want)
		}
		return s
	}

	t.Run("Number", func(t *testing.T) {
		s := mustScan(t, `3.25e-5`, jtext.Number)
		if got, want := s.Float64(), 3.25e-5; got != want {
			t.Errorf("Float64: got %v, want %v", got, want)
		}
	})
	t.Run("Truncated", func(t *testing.T) {
		s := mustScan(t, `-15`, jtext.Number)
		if got, want := s.Float64(), -15.0; got != want {
			t.Errorf("Float64: got %v, want %v", got, want)
		}
	})
	t.Run("Constants", func(t *testing.T) {
		mustScan(t, `true`, jtext.True)
		mustScan(t, `false`, jtext.False)
		mustScan(t, `null`, jtext.Null)
	})
	t.Run("String", func(t *testing.T) {
		const wantText = `"a\tb\u0020c\n"` // as written, with quotes
		const wantDec = "a\tb c\n"          // with escapes undone
		s := mustScan(t, wantText, jtext.String)
		if got := string(s.Text()); got != wantText {
			t.Errorf("Text: got %#q, want %#q", got, wantText)
		}
		if got := s.Unescape(); got != wantDec {
			t.Errorf("Unescape: got %#q, want %#q", got, wantDec)
		}
	})
	t.Run("SurrogatePair", func(t *testing.T) {
		s := mustScan(t, `"\ud83d\ude06"`, jtext.String)
		if got, want := s.Unescape(), "\U0001F606"; got != want {
			t.Errorf("Unescape: got %#q, want %#q", got, want)
		}
	})
}

func TestContext(t *testing.T) {
	tests := []struct {
		ctx  jtext.Context
		want string
	}{
		{jtext.Context{Name: "config.json", Line: 3, Column: 17}, "config.json:3:17"},
		{jtext.Context{Line: 1, Column: 0}, "<input>:1:0"},
	}
	for _, test := range tests {
		if got := test.ctx.String(); got != test.want {
			t.Errorf("Context %+v: got %q, want %q", test.ctx, got, test.want)
		}
	}
}

func TestErrorFormat(t *testing.T) {
	s := jtext.NewScanner(strings.NewReader(`{"a": 01}`))
	var err error
	for {
		if err = s.Next(); err != nil {
			break
		}
	}
	const want = `<input>:1:6: error: syntax error at '01': extra leading zeroes`
	if err == io.EOF {
		t.Fatal("scan succeeded, want syntax error")
	}
	if got := err.Error(); got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{" ", `" "`},
		{"a\t\nb", `"a\t\nb"`},
		{"\x00\x01\x02", `"\u0000\u0001\u0002"`},
		{`a "b c\" d"`, `"a \"b c\\\" d\""`},
		{`\ufffd`, `"\\ufffd"`},
		{"\u2028 \u2029 \ufffd", `"\u2028 \u2029 \ufffd"`},
		{"This is the end\v", `"This is the end\u000b"`},
		{"<\x1e>", `"<\u001e>"`},
	}
	for _, test := range tests {
		got := jtext.Quote(test.input)
		if got != test.want {
			t.Errorf("Input: %#q\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{``, ``, true},                        // missing quotes
		{`"missing quote`, ``, true},          // missing quotes
		{`missing quote"`, ``, true},          // missing quotes
		{`""`, ``, false},                     // ok
		{`"ok go"`, "ok go", false},           // ok
		{`"abc\ndef"`, "abc\ndef", false},     // C escapes
		{`"\tabc\n"`, "\tabc\n", false},       // C escapes
		{`"\b\f\n\r\t"`, "\b\f\n\r\t", false}, // C escapes
		{`"a \u0026 b"`, "a & b", false},     // short Unicode escape
		{`"\u"`, ``, true},                    // incomplete Unicode escape
		{`"\u00"`, ``, true},                  // incomplete Unicode escape
		{`"\u00x9"`, ``, true},                // invalid Unicode escape
		{`"\u019 "`, ``, true},                // invalid Unicode escape
		{`"\udc00"`, ``, true},               // unpaired surrogate
		{`"\ud83d\ude06"`, "\U0001F606", false},
		{`"a\"b"`, `a"b`, false},        // ok
		{`"a\\b\\cd"`, `a\b\cd`, false}, // ok
	}

	for _, test := range tests {
		got, err := jtext.Unquote(test.input)
		if err != nil {
			if !test.fail {
				t.Errorf("Unquote(%#q): got %v, want no error", test.input, err)
			}
			continue
		}
		if test.fail {
			t.Errorf("Unquote(%#q): got nil, want error", test.input)
		}
		if got != test.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, got, test.want)
		}
	}
}
