package adn

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Element
	}{
		{
			name: "xpass: empty input",
			src:  "",
			want: nil,
		},
		{
			name: "xpass: empty list",
			src:  "()",
			want: []Element{List()},
		},
		{
			name: "xpass: scalars",
			src:  `abc -42 .5 \x "s\tt"`,
			want: []Element{
				Ident("abc"),
				Int(-42),
				Float(0.5),
				Char('x'),
				Str("s\tt"),
			},
		},
		{
			name: "xpass: reserved words stay identifiers",
			src:  "true false nil",
			want: []Element{Ident("true"), Ident("false"), Ident("nil")},
		},
		{
			name: "xpass: nested collections",
			src:  "(a [b {c d}] ())",
			want: []Element{
				List(
					Ident("a"),
					Vector(Ident("b"), Map(KV(Ident("c"), Ident("d")))),
					List(),
				),
			},
		},
		{
			name: "xpass: map",
			src:  "{a b}",
			want: []Element{Map(KV(Ident("a"), Ident("b")))},
		},
		{
			name: "xpass: map keeps duplicate keys in order",
			src:  "{k 1 k 2}",
			want: []Element{Map(KV(Ident("k"), Int(1)), KV(Ident("k"), Int(2)))},
		},
		{
			name: "xpass: composite map keys",
			src:  "{(a b) [1] {x y} z}",
			want: []Element{
				Map(
					KV(List(Ident("a"), Ident("b")), Vector(Int(1))),
					KV(Map(KV(Ident("x"), Ident("y"))), Ident("z")),
				),
			},
		},
		{
			name: "xpass: top-level forms in source order",
			src:  "a (b) [c] {d e}",
			want: []Element{
				Ident("a"),
				List(Ident("b")),
				Vector(Ident("c")),
				Map(KV(Ident("d"), Ident("e"))),
			},
		},
		{
			name: "xpass: prefixes stack on the next form",
			src:  "##'x `(y) '#[z]",
			want: []Element{
				WithPrefix(Ident("x"), Prefix{Hash: 2, Quote: 1}),
				WithPrefix(List(Ident("y")), Prefix{Backquote: 1}),
				WithPrefix(Vector(Ident("z")), Prefix{Hash: 1, Quote: 1}),
			},
		},
		{
			name: "xpass: dangling prefix at end of input is dropped",
			src:  "'",
			want: nil,
		},
		{
			name: "xpass: dangling prefixes after a form are dropped",
			src:  "a #'`",
			want: []Element{Ident("a")},
		},
		{
			name: "xpass: comments are kept as elements",
			src:  "(a ; first\n b) ;tail",
			want: []Element{
				List(Ident("a"), MustComment(" first"), Ident("b")),
				MustComment("tail"),
			},
		},
		{
			name: "xfail: dangling map key",
			src:  "{a}",
			want: []Element{{Kind: KindMap, Pairs: []Pair{}, Fault: UnmatchedMapKey}},
		},
		{
			name: "xfail: unterminated list keeps children",
			src:  "(a b",
			want: []Element{{Kind: KindList, Children: []Element{Ident("a"), Ident("b")}, Fault: UnmatchedParens}},
		},
		{
			name: "xfail: unterminated vector",
			src:  "[1",
			want: []Element{{Kind: KindVector, Children: []Element{Int(1)}, Fault: UnmatchedBrackets}},
		},
		{
			name: "xfail: unterminated map before key",
			src:  "{a 1",
			want: []Element{{Kind: KindMap, Pairs: []Pair{KV(Ident("a"), Int(1))}, Fault: UnmatchedCurlies}},
		},
		{
			name: "xfail: unterminated map before value",
			src:  "{a 1 b",
			want: []Element{{Kind: KindMap, Pairs: []Pair{KV(Ident("a"), Int(1))}, Fault: UnmatchedCurlies | UnmatchedMapKey}},
		},
		{
			name: "xfail: stray closers",
			src:  ") ] }",
			want: []Element{
				{Kind: KindError, Fault: UnmatchedParens, Raw: ")"},
				{Kind: KindError, Fault: UnmatchedBrackets, Raw: "]"},
				{Kind: KindError, Fault: UnmatchedCurlies, Raw: "}"},
			},
		},
		{
			name: "xfail: mismatched closer becomes a child",
			src:  "(a ])",
			want: []Element{
				List(Ident("a"), Element{Kind: KindError, Fault: UnmatchedBrackets, Raw: "]"}),
			},
		},
		{
			name: "xfail: lexer error keeps siblings",
			src:  `(a "open`,
			want: []Element{
				{
					Kind: KindList,
					Children: []Element{
						Ident("a"),
						{Kind: KindError, Fault: LexerFault, LexFault: StringUnterminated, Raw: "open"},
					},
					Fault: UnmatchedParens,
				},
			},
		},
		{
			name: "xfail: float with trailing dot",
			src:  "3.",
			want: []Element{
				{Kind: KindError, Fault: LexerFault, LexFault: FloatMalformed | FloatUnterminated, Raw: "3."},
			},
		},
		{
			name: "xfail: malformed numbers",
			src:  "3a9 1.2.3 1.5e3 99999999999999999999",
			want: []Element{
				{Kind: KindError, Fault: NumberFormat, Raw: "3a9"},
				{Kind: KindError, Fault: NumberFormat, Raw: "1.2.3"},
				{Kind: KindError, Fault: NumberFormat, Raw: "1.5e3"},
				{Kind: KindError, Fault: NumberFormat, Raw: "99999999999999999999"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.src)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParser_Next(t *testing.T) {
	s := NewTokenStream(LexString("a b"))
	for _, want := range []string{"a", "b"} {
		n := DefaultParser.Next(s)
		if got, _ := n.AsText(); n.Kind != KindIdentifier || got != want {
			t.Fatalf("Next() = %v, want %v", n, want)
		}
	}
	for i := 0; i < 2; i++ {
		if n := DefaultParser.Next(s); n.Kind != KindEndOfFile {
			t.Fatalf("Next() = %v, want EndOfFile", n)
		}
	}
}

func TestParser_WithoutEndOfFileToken(t *testing.T) {
	tokens := []Token{bare(TokenParenLeft), tok(TokenIdentifier, "a")}
	got := DefaultParser.ParseAll(tokens)
	want := []Element{{Kind: KindList, Children: []Element{Ident("a")}, Fault: UnmatchedParens}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseAll() = %v, want %v", got, want)
	}
}

func TestParser_NestingTooDeep(t *testing.T) {
	p := NewParser(3)

	got := p.ParseAll(LexString("(((a))) ((((b)))) c"))
	if len(got) != 3 {
		t.Fatalf("ParseAll() = %v, want 3 forms", got)
	}
	if got[0].Faulty() {
		t.Errorf("ParseAll()[0] = %v, want no fault", got[0])
	}

	inner := got[1].Children[0].Children[0].Children[0]
	if inner.Kind != KindError || !inner.Fault.Has(NestingTooDeep) {
		t.Errorf("innermost = %v, want NestingTooDeep", inner)
	}
	if got[1].Fault != FaultNone {
		t.Errorf("outer fault = %v, want None", got[1].Fault)
	}

	if s, _ := got[2].AsText(); s != "c" {
		t.Errorf("ParseAll()[2] = %v, want c", got[2])
	}
}

func TestParser_AdversarialDepth(t *testing.T) {
	depth := 100000
	src := strings.Repeat("[", depth) + strings.Repeat("]", depth) + " x"

	got := Parse(src)
	if len(got) != 2 {
		t.Fatalf("Parse() returned %d forms, want 2", len(got))
	}
	if !got[0].Faulty() {
		t.Errorf("Parse()[0] not faulted")
	}
	if s, _ := got[1].AsText(); s != "x" {
		t.Errorf("Parse()[1] = %v, want x", got[1])
	}

	quotes := strings.Repeat("'", depth) + "y"
	got = Parse(quotes)
	if len(got) != 1 || got[0].Prefix.Quote != depth {
		t.Errorf("Parse() prefix = %+v, want %d quotes", got[0].Prefix, depth)
	}
}

func TestNewParser_DefaultDepth(t *testing.T) {
	if got := NewParser(0); got != DefaultParser {
		t.Errorf("NewParser(0) = %v, want DefaultParser", got)
	}
}

func TestFault_String(t *testing.T) {
	tests := []struct {
		f    Fault
		want string
	}{
		{FaultNone, "None"},
		{UnmatchedCurlies | UnmatchedMapKey, "UnmatchedCurlies|UnmatchedMapKey"},
		{NestingTooDeep, "NestingTooDeep"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("String() = %v, want %v", got, tt.want)
		}
		if tt.f != FaultNone && !tt.f.Has(tt.f) {
			t.Errorf("Has(%v) = false", tt.f)
		}
		if got, err := ParseFault(tt.want); err != nil || got != tt.f {
			t.Errorf("ParseFault(%q) = %v, %v, want %v", tt.want, got, err, tt.f)
		}
	}
}

func TestParseFault_Unknown(t *testing.T) {
	for _, s := range []string{"", "Bogus", "UnmatchedParens|", "LexerFault|unmatchedparens"} {
		if _, err := ParseFault(s); !errors.Is(err, ErrUnknownFault) {
			t.Errorf("ParseFault(%q) error = %v, want ErrUnknownFault", s, err)
		}
	}
}
