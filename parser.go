package adn

import (
	"strconv"
)

type Parser interface {
	// Next parses one top-level form from s. It returns a KindEndOfFile
	// element, without consuming anything, once s is exhausted.
	Next(s *TokenStream) Element
	// ParseAll parses every form in tokens, excluding the end of file
	// sentinel.
	ParseAll(tokens []Token) []Element
}

// DefaultMaxDepth bounds how many collections may be nested inside each other.
const DefaultMaxDepth = 512

type parser struct {
	maxDepth int
}

var DefaultParser = parser{maxDepth: DefaultMaxDepth}

// NewParser returns a parser that replaces collections nested deeper than
// maxDepth with a NestingTooDeep error. maxDepth <= 0 selects DefaultMaxDepth.
func NewParser(maxDepth int) Parser {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return parser{maxDepth: maxDepth}
}

// Parse lexes and parses src with DefaultParser.
func Parse(src string) []Element {
	return DefaultParser.ParseAll(LexString(src))
}

// ParseRunes lexes and parses an already decoded buffer with DefaultParser.
func ParseRunes(src []rune) []Element {
	return DefaultParser.ParseAll(Lex(src))
}

// TokenStream is a read cursor over a token sequence.
type TokenStream struct {
	c cursor[Token]
}

func NewTokenStream(tokens []Token) *TokenStream {
	return &TokenStream{c: cursor[Token]{buf: tokens}}
}

// Done reports whether only the end of file remains.
func (s *TokenStream) Done() bool {
	t, ok := s.c.peek()
	return !ok || t.Kind == TokenEndOfFile
}

// accept consumes the next token if it has kind k.
func (s *TokenStream) accept(k TokenKind) bool {
	t, ok := s.c.peek()
	if ok && t.Kind == k {
		s.c.next()
		return true
	}
	return false
}

func (e parser) ParseAll(tokens []Token) (elements []Element) {
	s := NewTokenStream(tokens)
	for {
		n := e.Next(s)
		if n.Kind == KindEndOfFile {
			return
		}
		elements = append(elements, n)
	}
}

func (e parser) Next(s *TokenStream) Element {
	return e.parseNode(s, 0)
}

// parseNode folds any run of prefix tokens into counters on the form that
// follows them.
func (e parser) parseNode(s *TokenStream, depth int) (n Element) {
	var pre Prefix
	for {
		if s.Done() {
			n.Kind = KindEndOfFile
			break
		}

		t, _ := s.c.next()
		if t.Kind == TokenHash {
			pre.Hash++
			continue
		}
		if t.Kind == TokenQuote {
			pre.Quote++
			continue
		}
		if t.Kind == TokenBackquote {
			pre.Backquote++
			continue
		}

		n = e.parseForm(s, t, depth)
		break
	}

	n.Prefix.Hash += pre.Hash
	n.Prefix.Quote += pre.Quote
	n.Prefix.Backquote += pre.Backquote
	return
}

func (e parser) parseForm(s *TokenStream, t Token, depth int) (n Element) {
	switch t.Kind {
	case TokenParenLeft:
		return e.parseSequence(s, KindList, TokenParenRight, UnmatchedParens, depth)
	case TokenBracketLeft:
		return e.parseSequence(s, KindVector, TokenBracketRight, UnmatchedBrackets, depth)
	case TokenCurlyLeft:
		return e.parseMap(s, depth)

	case TokenParenRight:
		return faulted(UnmatchedParens, ")")
	case TokenBracketRight:
		return faulted(UnmatchedBrackets, "]")
	case TokenCurlyRight:
		return faulted(UnmatchedCurlies, "}")

	case TokenIdentifier:
		return Element{Kind: KindIdentifier, Value: Text(t.Text)}
	case TokenString:
		return Element{Kind: KindString, Value: Text(t.Text)}
	case TokenComment:
		return Element{Kind: KindComment, Value: Text(t.Text)}
	case TokenChar:
		if len(t.Text) != 1 {
			break
		}
		return Element{Kind: KindChar, Value: CharValue(t.Text[0])}
	case TokenInt:
		return ParseInt(string(t.Text))
	case TokenFloat:
		return ParseFloat(string(t.Text))
	}

	n = faulted(LexerFault, string(t.Text))
	n.LexFault = t.Fault
	return
}

func faulted(f Fault, raw string) Element {
	return Element{Kind: KindError, Fault: f, Raw: raw}
}

// parseSequence parses the children of a list or vector whose opening token
// has already been consumed.
func (e parser) parseSequence(s *TokenStream, kind Kind, closer TokenKind, unmatched Fault, depth int) (n Element) {
	if depth >= e.maxDepth {
		return e.skipNested(s)
	}

	n = Element{Kind: kind, Children: []Element{}}
	for {
		if s.accept(closer) {
			return
		}

		child := e.parseNode(s, depth+1)
		if child.Kind == KindEndOfFile {
			n.Fault |= unmatched
			return
		}
		n.Children = append(n.Children, child)
	}
}

// parseMap parses the pairs of a map whose opening token has already been
// consumed.
func (e parser) parseMap(s *TokenStream, depth int) (n Element) {
	if depth >= e.maxDepth {
		return e.skipNested(s)
	}

	n = Element{Kind: KindMap, Pairs: []Pair{}}
	for {
		if s.accept(TokenCurlyRight) {
			return
		}

		key := e.parseNode(s, depth+1)
		if key.Kind == KindEndOfFile {
			n.Fault |= UnmatchedCurlies
			return
		}
		if s.accept(TokenCurlyRight) {
			n.Fault |= UnmatchedMapKey
			return
		}

		value := e.parseNode(s, depth+1)
		if value.Kind == KindEndOfFile {
			n.Fault |= UnmatchedCurlies | UnmatchedMapKey
			return
		}
		n.Pairs = append(n.Pairs, Pair{Key: key, Value: value})
	}
}

// skipNested discards a collection that is nested too deeply, including
// everything inside it, without recursing.
func (e parser) skipNested(s *TokenStream) Element {
	level := 1
	for level > 0 && !s.Done() {
		t, _ := s.c.next()
		switch t.Kind {
		case TokenParenLeft, TokenBracketLeft, TokenCurlyLeft:
			level++
		case TokenParenRight, TokenBracketRight, TokenCurlyRight:
			level--
		}
	}
	return faulted(NestingTooDeep, "")
}

// ParseInt converts base 10 integer text into an Int element, or an Error
// element tagged NumberFormat when text is not a decimal int64.
func ParseInt(text string) Element {
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return faulted(NumberFormat, text)
	}
	return Element{Kind: KindInt, Value: IntValue(v)}
}

// ParseFloat converts text of the form [+-]?[0-9]*.[0-9]+ into a Float
// element, or an Error element tagged NumberFormat.
func ParseFloat(text string) Element {
	if !isDecimalFloat(text) {
		return faulted(NumberFormat, text)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return faulted(NumberFormat, text)
	}
	return Element{Kind: KindFloat, Value: FloatValue(v)}
}

func isDecimalFloat(text string) bool {
	i := 0
	if i < len(text) && (text[i] == '+' || text[i] == '-') {
		i++
	}
	for i < len(text) && isDigit(rune(text[i])) {
		i++
	}
	if i >= len(text) || text[i] != '.' {
		return false
	}
	i++
	frac := i
	for i < len(text) && isDigit(rune(text[i])) {
		i++
	}
	return i > frac && i == len(text)
}
