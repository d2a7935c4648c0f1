package adn

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Kind int

const (
	KindIdentifier Kind = iota
	KindInt
	KindFloat
	KindChar
	KindString
	KindComment
	KindList
	KindVector
	KindMap
	KindEndOfFile
	KindError
)

var kindNames = [...]string{
	KindIdentifier: "Identifier",
	KindInt:        "Int",
	KindFloat:      "Float",
	KindChar:       "Char",
	KindString:     "String",
	KindComment:    "Comment",
	KindList:       "List",
	KindVector:     "Vector",
	KindMap:        "Map",
	KindEndOfFile:  "EndOfFile",
	KindError:      "Error",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Fault is a bitset of parse fault kinds. Faults combine, e.g. input ending
// inside a map value sets UnmatchedCurlies|UnmatchedMapKey.
type Fault uint16

const (
	LexerFault Fault = 1 << iota
	UnmatchedParens
	UnmatchedBrackets
	UnmatchedCurlies
	UnmatchedMapKey
	NumberFormat
	NestingTooDeep

	FaultNone Fault = 0
)

var faultNames = []struct {
	f    Fault
	name string
}{
	{LexerFault, "LexerFault"},
	{UnmatchedParens, "UnmatchedParens"},
	{UnmatchedBrackets, "UnmatchedBrackets"},
	{UnmatchedCurlies, "UnmatchedCurlies"},
	{UnmatchedMapKey, "UnmatchedMapKey"},
	{NumberFormat, "NumberFormat"},
	{NestingTooDeep, "NestingTooDeep"},
}

// Has reports whether every bit of o is set in f.
func (f Fault) Has(o Fault) bool {
	return o != 0 && f&o == o
}

func (f Fault) String() string {
	if f == FaultNone {
		return "None"
	}
	var names []string
	for _, n := range faultNames {
		if f&n.f != 0 {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// ErrUnknownFault is returned by ParseFault and ParseLexFault for a name that
// String never produces.
var ErrUnknownFault = errors.New("unknown fault name")

// ParseFault reads back the output of Fault.String.
func ParseFault(s string) (f Fault, err error) {
	if s == "None" {
		return FaultNone, nil
	}
next:
	for _, name := range strings.Split(s, "|") {
		for _, n := range faultNames {
			if n.name == name {
				f |= n.f
				continue next
			}
		}
		return FaultNone, fmt.Errorf("%w: %q", ErrUnknownFault, name)
	}
	return
}

// Scalar is the payload of an atom. The element's Kind selects the variant:
// Text for identifiers, strings and comments, IntValue, FloatValue and
// CharValue for the rest.
type Scalar interface {
	isScalar()
}

type (
	Text       string
	IntValue   int64
	FloatValue float64
	CharValue  rune
)

func (Text) isScalar()       {}
func (IntValue) isScalar()   {}
func (FloatValue) isScalar() {}
func (CharValue) isScalar()  {}

// Prefix counts the dispatch prefixes that preceded an element. What they
// mean is left to whoever interprets the tree.
type Prefix struct {
	Hash      int
	Quote     int
	Backquote int
}

func (p Prefix) IsZero() bool {
	return p == Prefix{}
}

// Pair is one entry of a map's association list.
type Pair struct {
	Key   Element
	Value Element
}

// Element is one node of a parsed tree. Children is only populated for lists
// and vectors, Pairs only for maps. A faulted composite keeps whatever it had
// collected before the fault.
type Element struct {
	Kind
	Prefix   Prefix
	Value    Scalar
	Children []Element
	Pairs    []Pair
	Fault    Fault

	// set on Error elements built from a lexer error token
	LexFault LexFault
	// offending source text of an Error element
	Raw string
}

func (e Element) IsComposite() bool {
	return e.Kind == KindList || e.Kind == KindVector || e.Kind == KindMap
}

func (e Element) IsError() bool {
	return e.Kind == KindError
}

// Faulty reports whether e or anything below it carries a fault.
func (e Element) Faulty() bool {
	if e.Fault != FaultNone || e.LexFault != LexFaultNone || e.Kind == KindError {
		return true
	}
	for _, c := range e.Children {
		if c.Faulty() {
			return true
		}
	}
	for _, p := range e.Pairs {
		if p.Key.Faulty() || p.Value.Faulty() {
			return true
		}
	}
	return false
}

// AsText returns the text of an identifier, string or comment.
func (e Element) AsText() (s string, ok bool) {
	switch e.Kind {
	case KindIdentifier, KindString, KindComment:
		var t Text
		t, ok = e.Value.(Text)
		s = string(t)
	}
	return
}

func (e Element) AsInt() (i int64, ok bool) {
	if e.Kind == KindInt {
		var v IntValue
		v, ok = e.Value.(IntValue)
		i = int64(v)
	}
	return
}

func (e Element) AsFloat() (f float64, ok bool) {
	if e.Kind == KindFloat {
		var v FloatValue
		v, ok = e.Value.(FloatValue)
		f = float64(v)
	}
	return
}

func (e Element) AsChar() (r rune, ok bool) {
	if e.Kind == KindChar {
		var v CharValue
		v, ok = e.Value.(CharValue)
		r = rune(v)
	}
	return
}

// Lookup returns the value of the first pair whose key equals key. Map keys
// may be any element so this is a linear scan over the association list.
func (e Element) Lookup(key Element) (v Element, ok bool) {
	if e.Kind != KindMap {
		return
	}
	for _, p := range e.Pairs {
		if Equal(p.Key, key) {
			return p.Value, true
		}
	}
	return
}

// LookupAll returns the values of every pair whose key equals key, in source
// order.
func (e Element) LookupAll(key Element) (vs []Element) {
	if e.Kind != KindMap {
		return
	}
	for _, p := range e.Pairs {
		if Equal(p.Key, key) {
			vs = append(vs, p.Value)
		}
	}
	return
}

// Clone returns a deep copy of e that shares no slices with it.
func (e Element) Clone() Element {
	c := e
	if e.Children != nil {
		c.Children = make([]Element, len(e.Children))
		for i, ch := range e.Children {
			c.Children[i] = ch.Clone()
		}
	}
	if e.Pairs != nil {
		c.Pairs = make([]Pair, len(e.Pairs))
		for i, p := range e.Pairs {
			c.Pairs[i] = Pair{Key: p.Key.Clone(), Value: p.Value.Clone()}
		}
	}
	return c
}
