package adn

import (
	"errors"
	"strings"
)

var (
	ErrInvalidIdentifier = errors.New("text does not read back as an identifier")
	ErrInvalidComment    = errors.New("comment text must not contain a newline")
)

// Producer builds atoms whose text has to survive a round trip through
// String and Parse.
type Producer interface {
	Identifier(s string) (n Element, err error)
	Comment(s string) (n Element, err error)
}

type producer struct{}

var DefaultProducer = producer{}

func MustIdentifier(s string) (n Element) {
	var err error
	n, err = DefaultProducer.Identifier(s)
	if err != nil {
		panic(err)
	}
	return
}
func (e producer) Identifier(s string) (n Element, err error) {
	tokens := LexString(s)
	if len(tokens) != 2 || tokens[0].Kind != TokenIdentifier || string(tokens[0].Text) != s {
		return Element{}, ErrInvalidIdentifier
	}
	return Ident(s), nil
}

func MustComment(s string) (n Element) {
	var err error
	n, err = DefaultProducer.Comment(s)
	if err != nil {
		panic(err)
	}
	return
}
func (e producer) Comment(s string) (n Element, err error) {
	if strings.ContainsRune(s, '\n') {
		return Element{}, ErrInvalidComment
	}
	return Element{Kind: KindComment, Value: Text(s)}, nil
}

// Ident builds an identifier without checking that s reads back as one.
func Ident(s string) Element {
	return Element{Kind: KindIdentifier, Value: Text(s)}
}

func Int(i int64) Element {
	return Element{Kind: KindInt, Value: IntValue(i)}
}

func Float(f float64) Element {
	return Element{Kind: KindFloat, Value: FloatValue(f)}
}

func Char(r rune) Element {
	return Element{Kind: KindChar, Value: CharValue(r)}
}

func Str(s string) Element {
	return Element{Kind: KindString, Value: Text(s)}
}

func List(children ...Element) Element {
	if children == nil {
		children = make([]Element, 0)
	}
	return Element{Kind: KindList, Children: children}
}

func Vector(children ...Element) Element {
	if children == nil {
		children = make([]Element, 0)
	}
	return Element{Kind: KindVector, Children: children}
}

func Map(pairs ...Pair) Element {
	if pairs == nil {
		pairs = make([]Pair, 0)
	}
	return Element{Kind: KindMap, Pairs: pairs}
}

func KV(key, value Element) Pair {
	return Pair{Key: key, Value: value}
}

// WithPrefix returns e with p added to its prefix counters.
func WithPrefix(e Element, p Prefix) Element {
	e.Prefix.Hash += p.Hash
	e.Prefix.Quote += p.Quote
	e.Prefix.Backquote += p.Backquote
	return e
}

// Equal compares kind, prefixes, payload, faults and nested structure.
func Equal(a, b Element) bool {
	if a.Kind != b.Kind || a.Prefix != b.Prefix || a.Fault != b.Fault || a.LexFault != b.LexFault {
		return false
	}
	if a.Value != b.Value || a.Raw != b.Raw {
		return false
	}
	if len(a.Children) != len(b.Children) || len(a.Pairs) != len(b.Pairs) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	for i := range a.Pairs {
		if !Equal(a.Pairs[i].Key, b.Pairs[i].Key) || !Equal(a.Pairs[i].Value, b.Pairs[i].Value) {
			return false
		}
	}
	return true
}

// StripComments returns a copy of elements with every comment removed at all
// levels. Map entries are paired up again after removal; a key left without
// a value is dropped and the map is marked UnmatchedMapKey.
func StripComments(elements []Element) []Element {
	out := make([]Element, 0, len(elements))
	for _, e := range elements {
		if e.Kind == KindComment {
			continue
		}
		out = append(out, stripComments(e))
	}
	return out
}

func stripComments(e Element) Element {
	switch e.Kind {
	case KindList, KindVector:
		e.Children = StripComments(e.Children)
	case KindMap:
		flat := make([]Element, 0, 2*len(e.Pairs))
		for _, p := range e.Pairs {
			flat = append(flat, p.Key, p.Value)
		}
		flat = StripComments(flat)

		e.Pairs = make([]Pair, 0, len(flat)/2)
		for i := 0; i+1 < len(flat); i += 2 {
			e.Pairs = append(e.Pairs, Pair{Key: flat[i], Value: flat[i+1]})
		}
		if len(flat)%2 == 1 {
			e.Fault |= UnmatchedMapKey
		}
	}
	return e
}
