package adn

import (
	"fmt"
	"strconv"
	"strings"
)

type TokenKind int

const (
	TokenParenLeft TokenKind = iota
	TokenParenRight
	TokenBracketLeft
	TokenBracketRight
	TokenCurlyLeft
	TokenCurlyRight
	TokenHash
	TokenQuote
	TokenBackquote
	TokenIdentifier
	TokenInt
	TokenFloat
	TokenChar
	TokenString
	TokenComment
	TokenEndOfFile
	TokenError
)

var tokenKindNames = [...]string{
	TokenParenLeft:    "ParenLeft",
	TokenParenRight:   "ParenRight",
	TokenBracketLeft:  "BracketLeft",
	TokenBracketRight: "BracketRight",
	TokenCurlyLeft:    "CurlyLeft",
	TokenCurlyRight:   "CurlyRight",
	TokenHash:         "Hash",
	TokenQuote:        "Quote",
	TokenBackquote:    "Backquote",
	TokenIdentifier:   "Identifier",
	TokenInt:          "Int",
	TokenFloat:        "Float",
	TokenChar:         "Char",
	TokenString:       "String",
	TokenComment:      "Comment",
	TokenEndOfFile:    "EndOfFile",
	TokenError:        "Error",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// LexFault is a bitset of lexical fault kinds. Zero means the token is valid.
type LexFault uint8

const (
	CharUnterminated LexFault = 1 << iota
	StringUnterminated
	FloatUnterminated
	FloatMalformed

	LexFaultNone LexFault = 0
)

var lexFaultNames = []struct {
	f    LexFault
	name string
}{
	{CharUnterminated, "CharUnterminated"},
	{StringUnterminated, "StringUnterminated"},
	{FloatUnterminated, "FloatUnterminated"},
	{FloatMalformed, "FloatMalformed"},
}

// Has reports whether every bit of o is set in f.
func (f LexFault) Has(o LexFault) bool {
	return o != 0 && f&o == o
}

func (f LexFault) String() string {
	if f == LexFaultNone {
		return "None"
	}
	var names []string
	for _, n := range lexFaultNames {
		if f&n.f != 0 {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// ParseLexFault reads back the output of LexFault.String.
func ParseLexFault(s string) (f LexFault, err error) {
	if s == "None" {
		return LexFaultNone, nil
	}
next:
	for _, name := range strings.Split(s, "|") {
		for _, n := range lexFaultNames {
			if n.name == name {
				f |= n.f
				continue next
			}
		}
		return LexFaultNone, fmt.Errorf("%w: %q", ErrUnknownFault, name)
	}
	return
}

// Token is one lexical unit. Text holds the payload code points and is empty
// for purely structural kinds.
type Token struct {
	Kind  TokenKind
	Text  []rune
	Fault LexFault
}

func (t Token) String() string {
	switch t.Kind {
	case TokenIdentifier, TokenInt, TokenFloat, TokenChar, TokenString, TokenComment:
		return t.Kind.String() + "(" + strconv.Quote(string(t.Text)) + ")"
	case TokenError:
		return "Error(" + t.Fault.String() + ", " + strconv.Quote(string(t.Text)) + ")"
	}
	return t.Kind.String()
}
