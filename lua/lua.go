// Package lua exposes parsed ADN trees to an embedded gopher-lua state.
//
// Elements become tables of the form
//
//	{kind="list", children={...}, quote=1}
//	{kind="map", pairs={{key=..., value=...}, ...}}
//	{kind="int", value=42}
//	{kind="error", fault="UnmatchedParens", raw=")"}
//
// Prefix counters (hash, quote, backquote) and fault names are only present
// when set.
package lua

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/alttpo/adn"
	"github.com/pkg/errors"
	lua "github.com/yuin/gopher-lua"
)

const ModuleName = "adn"

var (
	ErrNotATable   = errors.New("element must be a table")
	ErrUnknownKind = errors.New("unknown element kind")
	ErrBadPayload  = errors.New("element value does not match its kind")
	ErrTooDeep     = errors.New("element tables nested too deeply")
)

var kindsByName = map[string]adn.Kind{}

func init() {
	for k := adn.KindIdentifier; k <= adn.KindError; k++ {
		kindsByName[kindName(k)] = k
	}
}

func kindName(k adn.Kind) string {
	return strings.ToLower(k.String())
}

// ToLua converts e into a Lua table owned by L.
func ToLua(L *lua.LState, e adn.Element) lua.LValue {
	t := L.NewTable()
	t.RawSetString("kind", lua.LString(kindName(e.Kind)))

	switch e.Kind {
	case adn.KindIdentifier, adn.KindString, adn.KindComment:
		s, _ := e.AsText()
		t.RawSetString("value", lua.LString(s))
	case adn.KindInt:
		i, _ := e.AsInt()
		t.RawSetString("value", lua.LNumber(i))
	case adn.KindFloat:
		f, _ := e.AsFloat()
		t.RawSetString("value", lua.LNumber(f))
	case adn.KindChar:
		r, _ := e.AsChar()
		t.RawSetString("value", lua.LString(string(r)))
	case adn.KindList, adn.KindVector:
		t.RawSetString("children", ToLuaAll(L, e.Children))
	case adn.KindMap:
		pairs := L.NewTable()
		for _, p := range e.Pairs {
			pt := L.NewTable()
			pt.RawSetString("key", ToLua(L, p.Key))
			pt.RawSetString("value", ToLua(L, p.Value))
			pairs.Append(pt)
		}
		t.RawSetString("pairs", pairs)
	}

	setCount(t, "hash", e.Prefix.Hash)
	setCount(t, "quote", e.Prefix.Quote)
	setCount(t, "backquote", e.Prefix.Backquote)

	if e.Fault != adn.FaultNone {
		t.RawSetString("fault", lua.LString(e.Fault.String()))
	}
	if e.LexFault != adn.LexFaultNone {
		t.RawSetString("lexfault", lua.LString(e.LexFault.String()))
	}
	if e.Raw != "" {
		t.RawSetString("raw", lua.LString(e.Raw))
	}
	return t
}

func setCount(t *lua.LTable, name string, n int) {
	if n > 0 {
		t.RawSetString(name, lua.LNumber(n))
	}
}

// ToLuaAll converts elements into a Lua array.
func ToLuaAll(L *lua.LState, elements []adn.Element) *lua.LTable {
	t := L.CreateTable(len(elements), 0)
	for _, e := range elements {
		t.Append(ToLua(L, e))
	}
	return t
}

// FromLua converts a table produced by ToLua (or written by hand in the same
// shape) back into an element, faults included. Tables nested deeper than
// adn.DefaultMaxDepth, cyclic ones among them, are rejected with ErrTooDeep.
func FromLua(v lua.LValue) (adn.Element, error) {
	return fromLua(v, 0)
}

func fromLua(v lua.LValue, depth int) (e adn.Element, err error) {
	if depth > adn.DefaultMaxDepth {
		return e, ErrTooDeep
	}
	t, ok := v.(*lua.LTable)
	if !ok {
		return e, ErrNotATable
	}

	name := lua.LVAsString(t.RawGetString("kind"))
	kind, ok := kindsByName[name]
	if !ok {
		return e, errors.Wrapf(ErrUnknownKind, "kind %q", name)
	}

	value := t.RawGetString("value")
	switch kind {
	case adn.KindIdentifier, adn.KindString, adn.KindComment:
		s, ok := value.(lua.LString)
		if !ok {
			return e, errors.Wrapf(ErrBadPayload, "%s wants a string, got %s", name, value.Type())
		}
		switch kind {
		case adn.KindIdentifier:
			e = adn.Ident(string(s))
		case adn.KindString:
			e = adn.Str(string(s))
		default:
			e, err = adn.DefaultProducer.Comment(string(s))
			if err != nil {
				return
			}
		}
	case adn.KindInt:
		n, ok := value.(lua.LNumber)
		if !ok || !isWhole(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return e, errors.Wrapf(ErrBadPayload, "int wants a whole number, got %s", lua.LVAsString(value))
		}
		e = adn.Int(int64(n))
	case adn.KindFloat:
		n, ok := value.(lua.LNumber)
		if !ok {
			return e, errors.Wrapf(ErrBadPayload, "float wants a number, got %s", value.Type())
		}
		e = adn.Float(float64(n))
	case adn.KindChar:
		s, ok := value.(lua.LString)
		if !ok || utf8.RuneCountInString(string(s)) != 1 {
			return e, errors.Wrapf(ErrBadPayload, "char wants a single code point, got %q", lua.LVAsString(value))
		}
		r, _ := utf8.DecodeRuneInString(string(s))
		e = adn.Char(r)
	case adn.KindList, adn.KindVector:
		var children []adn.Element
		children, err = fromLuaArray(t.RawGetString("children"), depth+1)
		if err != nil {
			return e, errors.Wrap(err, name)
		}
		if kind == adn.KindList {
			e = adn.List(children...)
		} else {
			e = adn.Vector(children...)
		}
	case adn.KindMap:
		var pairs []adn.Pair
		pairs, err = fromLuaPairs(t.RawGetString("pairs"), depth+1)
		if err != nil {
			return e, errors.Wrap(err, "map")
		}
		e = adn.Map(pairs...)
	case adn.KindError:
		e = adn.Element{Kind: adn.KindError}
	default:
		return e, errors.Wrapf(ErrUnknownKind, "kind %q cannot be rebuilt", name)
	}

	if e.Prefix.Hash, err = count(t, "hash"); err != nil {
		return
	}
	if e.Prefix.Quote, err = count(t, "quote"); err != nil {
		return
	}
	if e.Prefix.Backquote, err = count(t, "backquote"); err != nil {
		return
	}
	err = restoreFaults(t, &e)
	return
}

func isWhole(n lua.LNumber) bool {
	f := float64(n)
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}

// count reads a prefix counter. A missing field is zero.
func count(t *lua.LTable, field string) (int, error) {
	v := t.RawGetString(field)
	if v == lua.LNil {
		return 0, nil
	}
	n, ok := v.(lua.LNumber)
	if !ok || !isWhole(n) || n < 0 || n > math.MaxInt32 {
		return 0, errors.Wrapf(ErrBadPayload, "%s wants a non-negative whole number, got %s", field, lua.LVAsString(v))
	}
	return int(n), nil
}

func restoreFaults(t *lua.LTable, e *adn.Element) (err error) {
	if v := t.RawGetString("fault"); v != lua.LNil {
		s, ok := v.(lua.LString)
		if !ok {
			return errors.Wrapf(ErrBadPayload, "fault wants a string, got %s", v.Type())
		}
		if e.Fault, err = adn.ParseFault(string(s)); err != nil {
			return errors.Wrap(ErrBadPayload, err.Error())
		}
	}
	if v := t.RawGetString("lexfault"); v != lua.LNil {
		s, ok := v.(lua.LString)
		if !ok {
			return errors.Wrapf(ErrBadPayload, "lexfault wants a string, got %s", v.Type())
		}
		if e.LexFault, err = adn.ParseLexFault(string(s)); err != nil {
			return errors.Wrap(ErrBadPayload, err.Error())
		}
	}
	if v := t.RawGetString("raw"); v != lua.LNil {
		s, ok := v.(lua.LString)
		if !ok {
			return errors.Wrapf(ErrBadPayload, "raw wants a string, got %s", v.Type())
		}
		e.Raw = string(s)
	}
	return nil
}

func fromLuaArray(v lua.LValue, depth int) (elements []adn.Element, err error) {
	if v == lua.LNil {
		return nil, nil
	}
	t, ok := v.(*lua.LTable)
	if !ok {
		return nil, ErrNotATable
	}
	for i := 1; i <= t.Len(); i++ {
		var e adn.Element
		e, err = fromLua(t.RawGetInt(i), depth)
		if err != nil {
			return nil, errors.Wrapf(err, "child %d", i)
		}
		elements = append(elements, e)
	}
	return
}

func fromLuaPairs(v lua.LValue, depth int) (pairs []adn.Pair, err error) {
	if v == lua.LNil {
		return nil, nil
	}
	t, ok := v.(*lua.LTable)
	if !ok {
		return nil, ErrNotATable
	}
	for i := 1; i <= t.Len(); i++ {
		pt, ok := t.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, errors.Wrapf(ErrNotATable, "pair %d", i)
		}
		var p adn.Pair
		if p.Key, err = fromLua(pt.RawGetString("key"), depth); err != nil {
			return nil, errors.Wrapf(err, "key %d", i)
		}
		if p.Value, err = fromLua(pt.RawGetString("value"), depth); err != nil {
			return nil, errors.Wrapf(err, "value %d", i)
		}
		pairs = append(pairs, p)
	}
	return
}
