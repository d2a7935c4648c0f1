package adn

import (
	"errors"
	"reflect"
	"testing"
)

func tok(k TokenKind, text string) Token {
	return Token{Kind: k, Text: []rune(text)}
}

func bare(k TokenKind) Token {
	return Token{Kind: k}
}

func TestLex(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Token
	}{
		{
			name: "xpass: empty input",
			src:  "",
			want: []Token{bare(TokenEndOfFile)},
		},
		{
			name: "xpass: only whitespace and commas",
			src:  " \t\r\n,,\u00a0\u2003\u1680\u2000\u200a\u2028\u2029\u202f\u205f\u3000\ufeff\u0085",
			want: []Token{bare(TokenEndOfFile)},
		},
		{
			name: "xpass: unicode whitespace separates identifiers",
			src:  "a\u1680b\u2000c\u200ad\u2028e\u2029f\u202fg\u205fh",
			want: []Token{
				tok(TokenIdentifier, "a"),
				tok(TokenIdentifier, "b"),
				tok(TokenIdentifier, "c"),
				tok(TokenIdentifier, "d"),
				tok(TokenIdentifier, "e"),
				tok(TokenIdentifier, "f"),
				tok(TokenIdentifier, "g"),
				tok(TokenIdentifier, "h"),
				bare(TokenEndOfFile),
			},
		},
		{
			name: "xpass: structural tokens, chars and numbers",
			src:  "( [\n{\t}]) \"str\" \\ä \\🍆 3.145 .1 42",
			want: []Token{
				bare(TokenParenLeft),
				bare(TokenBracketLeft),
				bare(TokenCurlyLeft),
				bare(TokenCurlyRight),
				bare(TokenBracketRight),
				bare(TokenParenRight),
				tok(TokenString, "str"),
				tok(TokenChar, "ä"),
				tok(TokenChar, "🍆"),
				tok(TokenFloat, "3.145"),
				tok(TokenFloat, ".1"),
				tok(TokenInt, "42"),
				bare(TokenEndOfFile),
			},
		},
		{
			name: "xpass: prefixes",
			src:  "#'`a",
			want: []Token{
				bare(TokenHash),
				bare(TokenQuote),
				bare(TokenBackquote),
				tok(TokenIdentifier, "a"),
				bare(TokenEndOfFile),
			},
		},
		{
			name: "xpass: quotes inside an identifier",
			src:  "it's a`b",
			want: []Token{
				tok(TokenIdentifier, "it's"),
				tok(TokenIdentifier, "a`b"),
				bare(TokenEndOfFile),
			},
		},
		{
			name: "xpass: identifier stops at delimiters",
			src:  "(foo-bar)baz#qux{x}",
			want: []Token{
				bare(TokenParenLeft),
				tok(TokenIdentifier, "foo-bar"),
				bare(TokenParenRight),
				tok(TokenIdentifier, "baz"),
				bare(TokenHash),
				tok(TokenIdentifier, "qux"),
				bare(TokenCurlyLeft),
				tok(TokenIdentifier, "x"),
				bare(TokenCurlyRight),
				bare(TokenEndOfFile),
			},
		},
		{
			name: "xpass: comment keeps text without semicolon or newline",
			src:  "a ; note (not a list)\nb",
			want: []Token{
				tok(TokenIdentifier, "a"),
				tok(TokenComment, " note (not a list)"),
				tok(TokenIdentifier, "b"),
				bare(TokenEndOfFile),
			},
		},
		{
			name: "xpass: comment at end of input",
			src:  ";last",
			want: []Token{
				tok(TokenComment, "last"),
				bare(TokenEndOfFile),
			},
		},
		{
			name: "xpass: empty comment",
			src:  ";\n",
			want: []Token{
				{Kind: TokenComment, Text: []rune{}},
				bare(TokenEndOfFile),
			},
		},
		{
			name: "xpass: string escapes",
			src:  `"a\nb\rc\td\"e\\f\qg"`,
			want: []Token{
				tok(TokenString, "a\nb\rc\td\"e\\fqg"),
				bare(TokenEndOfFile),
			},
		},
		{
			name: "xpass: empty string",
			src:  `""`,
			want: []Token{
				{Kind: TokenString, Text: []rune{}},
				bare(TokenEndOfFile),
			},
		},
		{
			name: "xpass: string with delimiters inside",
			src:  `"( ; #"`,
			want: []Token{
				tok(TokenString, "( ; #"),
				bare(TokenEndOfFile),
			},
		},
		{
			name: "xpass: char of whitespace",
			src:  `\ x`,
			want: []Token{
				tok(TokenChar, " "),
				tok(TokenIdentifier, "x"),
				bare(TokenEndOfFile),
			},
		},
		{
			name: "xpass: null code point is whitespace",
			src:  "a\x00b",
			want: []Token{
				tok(TokenIdentifier, "a"),
				tok(TokenIdentifier, "b"),
				bare(TokenEndOfFile),
			},
		},
		{
			name: "xpass: signed numbers",
			src:  "-42 +7 -.5 +1.25",
			want: []Token{
				tok(TokenInt, "-42"),
				tok(TokenInt, "+7"),
				tok(TokenFloat, "-.5"),
				tok(TokenFloat, "+1.25"),
				bare(TokenEndOfFile),
			},
		},
		{
			name: "xpass: bare signs are identifiers",
			src:  "+ - -> -foo",
			want: []Token{
				tok(TokenIdentifier, "+"),
				tok(TokenIdentifier, "-"),
				tok(TokenIdentifier, "->"),
				tok(TokenIdentifier, "-foo"),
				bare(TokenEndOfFile),
			},
		},
		{
			name: "xpass: permissive numeric runs",
			src:  "3a9 1.2.3",
			want: []Token{
				tok(TokenInt, "3a9"),
				tok(TokenFloat, "1.2.3"),
				bare(TokenEndOfFile),
			},
		},
		{
			name: "xfail: char at end of input",
			src:  `\`,
			want: []Token{
				{Kind: TokenError, Fault: CharUnterminated},
				bare(TokenEndOfFile),
			},
		},
		{
			name: "xfail: unterminated string",
			src:  `"abc`,
			want: []Token{
				{Kind: TokenError, Text: []rune("abc"), Fault: StringUnterminated},
				bare(TokenEndOfFile),
			},
		},
		{
			name: "xfail: string ending in escape",
			src:  `"abc\`,
			want: []Token{
				{Kind: TokenError, Text: []rune("abc"), Fault: StringUnterminated},
				bare(TokenEndOfFile),
			},
		},
		{
			name: "xfail: float with trailing dot",
			src:  "3. x",
			want: []Token{
				{Kind: TokenError, Text: []rune("3."), Fault: FloatMalformed},
				tok(TokenIdentifier, "x"),
				bare(TokenEndOfFile),
			},
		},
		{
			name: "xfail: float with trailing dot at end of input",
			src:  "3.",
			want: []Token{
				{Kind: TokenError, Text: []rune("3."), Fault: FloatMalformed | FloatUnterminated},
				bare(TokenEndOfFile),
			},
		},
		{
			name: "xfail: lone dot",
			src:  "(.)",
			want: []Token{
				bare(TokenParenLeft),
				{Kind: TokenError, Text: []rune("."), Fault: FloatMalformed},
				bare(TokenParenRight),
				bare(TokenEndOfFile),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LexString(tt.src)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LexString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLexer_NextAfterEndOfFile(t *testing.T) {
	l := NewLexer([]rune("a"))
	if got := l.Next(); got.Kind != TokenIdentifier {
		t.Fatalf("Next() = %v, want identifier", got)
	}
	for i := 0; i < 3; i++ {
		if got := l.Next(); got.Kind != TokenEndOfFile {
			t.Fatalf("Next() = %v, want EndOfFile", got)
		}
	}
}

func TestLex_CharIsOneCodePoint(t *testing.T) {
	got := Lex([]rune("\\🍆🍆"))
	if len(got) != 3 {
		t.Fatalf("Lex() = %v, want 3 tokens", got)
	}
	if got[0].Kind != TokenChar || len(got[0].Text) != 1 || got[0].Text[0] != '🍆' {
		t.Errorf("Lex()[0] = %v, want Char(🍆)", got[0])
	}
	if got[1].Kind != TokenIdentifier || string(got[1].Text) != "🍆" {
		t.Errorf("Lex()[1] = %v, want Identifier(🍆)", got[1])
	}
}

func TestLexFault_String(t *testing.T) {
	tests := []struct {
		f    LexFault
		want string
	}{
		{LexFaultNone, "None"},
		{CharUnterminated, "CharUnterminated"},
		{FloatMalformed | FloatUnterminated, "FloatUnterminated|FloatMalformed"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("String() = %v, want %v", got, tt.want)
		}
		if got, err := ParseLexFault(tt.want); err != nil || got != tt.f {
			t.Errorf("ParseLexFault(%q) = %v, %v, want %v", tt.want, got, err, tt.f)
		}
	}
	if _, err := ParseLexFault("CharUnterminated|Bogus"); !errors.Is(err, ErrUnknownFault) {
		t.Errorf("ParseLexFault() error = %v, want ErrUnknownFault", err)
	}
}
