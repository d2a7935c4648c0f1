package lua

import (
	"strings"

	"github.com/alttpo/adn"
	lua "github.com/yuin/gopher-lua"
)

// Preload makes `require "adn"` available in L.
func Preload(L *lua.LState) {
	L.PreloadModule(ModuleName, Loader)
}

// Loader builds the adn module table:
//
//	forms, nfaulty = adn.parse(text [, maxdepth])
//	tokens = adn.tokens(text)
//	text = adn.format(text)
//	text = adn.encode(element_or_array)
//	forms = adn.strip(forms)
func Loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"parse":  luaParse,
		"tokens": luaTokens,
		"format": luaFormat,
		"encode": luaEncode,
		"strip":  luaStrip,
	})
	L.Push(mod)
	return 1
}

func luaParse(L *lua.LState) int {
	src := L.CheckString(1)
	p := adn.NewParser(L.OptInt(2, 0))

	elements := p.ParseAll(adn.LexString(src))
	faulty := 0
	for _, e := range elements {
		if e.Faulty() {
			faulty++
		}
	}

	L.Push(ToLuaAll(L, elements))
	L.Push(lua.LNumber(faulty))
	return 2
}

func luaTokens(L *lua.LState) int {
	tokens := adn.LexString(L.CheckString(1))
	t := L.CreateTable(len(tokens), 0)
	for _, tok := range tokens {
		tt := L.NewTable()
		tt.RawSetString("kind", lua.LString(strings.ToLower(tok.Kind.String())))
		if len(tok.Text) > 0 {
			tt.RawSetString("text", lua.LString(string(tok.Text)))
		}
		if tok.Fault != adn.LexFaultNone {
			tt.RawSetString("fault", lua.LString(tok.Fault.String()))
		}
		t.Append(tt)
	}
	L.Push(t)
	return 1
}

func luaFormat(L *lua.LState) int {
	L.Push(lua.LString(adn.Format(adn.Parse(L.CheckString(1)))))
	return 1
}

// luaEncode accepts a single element table or an array of them.
func luaEncode(L *lua.LState) int {
	t := L.CheckTable(1)
	if t.RawGetString("kind") != lua.LNil {
		e, err := FromLua(t)
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		L.Push(lua.LString(e.String()))
		return 1
	}

	elements, err := fromLuaArray(t, 0)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LString(adn.Format(elements)))
	return 1
}

func luaStrip(L *lua.LState) int {
	elements, err := fromLuaArray(L.CheckTable(1), 0)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(ToLuaAll(L, adn.StripComments(elements)))
	return 1
}
