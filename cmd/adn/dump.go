package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alttpo/adn"
	"github.com/fatih/color"
)

var (
	kindColor   = color.New(color.FgHiCyan, color.Bold)
	valueColor  = color.New(color.FgHiGreen)
	prefixColor = color.New(color.FgHiYellow)
	faultColor  = color.New(color.FgHiRed, color.Bold)
	labelColor  = color.New(color.FgHiMagenta)
)

// dumpElements writes an indented debug view of elements, one node per line.
func dumpElements(w io.Writer, elements []adn.Element) {
	for _, e := range elements {
		dumpElement(w, e, 0, "")
	}
}

func dumpElement(w io.Writer, e adn.Element, depth int, label string) {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", depth))
	if label != "" {
		sb.WriteString(labelColor.Sprint(label + ": "))
	}
	sb.WriteString(kindColor.Sprint(e.Kind.String()))

	if v := payload(e); v != "" {
		sb.WriteRune(' ')
		sb.WriteString(valueColor.Sprint(v))
	}
	if !e.Prefix.IsZero() {
		sb.WriteRune(' ')
		sb.WriteString(prefixColor.Sprintf("#%d '%d `%d", e.Prefix.Hash, e.Prefix.Quote, e.Prefix.Backquote))
	}
	if e.Fault != adn.FaultNone {
		sb.WriteRune(' ')
		sb.WriteString(faultColor.Sprint("fault=" + e.Fault.String()))
	}
	if e.LexFault != adn.LexFaultNone {
		sb.WriteRune(' ')
		sb.WriteString(faultColor.Sprint("lex=" + e.LexFault.String()))
	}
	if e.Raw != "" {
		sb.WriteRune(' ')
		sb.WriteString(strconv.Quote(e.Raw))
	}
	fmt.Fprintln(w, sb.String())

	for _, c := range e.Children {
		dumpElement(w, c, depth+1, "")
	}
	for _, p := range e.Pairs {
		dumpElement(w, p.Key, depth+1, "key")
		dumpElement(w, p.Value, depth+2, "value")
	}
}

func payload(e adn.Element) string {
	switch e.Kind {
	case adn.KindIdentifier:
		s, _ := e.AsText()
		return s
	case adn.KindString, adn.KindComment:
		s, _ := e.AsText()
		return strconv.Quote(s)
	case adn.KindChar:
		r, _ := e.AsChar()
		return strconv.QuoteRune(r)
	case adn.KindInt:
		i, _ := e.AsInt()
		return strconv.FormatInt(i, 10)
	case adn.KindFloat:
		f, _ := e.AsFloat()
		return adn.FormatFloat(f)
	}
	return ""
}

func dumpTokens(w io.Writer, tokens []adn.Token) {
	for _, t := range tokens {
		if t.Kind == adn.TokenError {
			fmt.Fprintln(w, faultColor.Sprint(t.String()))
			continue
		}
		fmt.Fprintln(w, kindColor.Sprint(t.String()))
	}
}
