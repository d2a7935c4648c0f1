package adn

import (
	"strconv"
	"strings"
)

// String renders e as notation text. Error elements render as !!(fault)!!.
func (e Element) String() string {
	var sb strings.Builder
	e.appendToBuilder(&sb)
	return sb.String()
}

// Format renders top-level forms one per line.
func Format(elements []Element) string {
	var sb strings.Builder
	appendJoined(&sb, elements, '\n')
	return sb.String()
}

func appendJoined(sb *strings.Builder, elements []Element, sep rune) {
	for i, c := range elements {
		if i > 0 && elements[i-1].Kind != KindComment {
			sb.WriteRune(sep)
		}
		c.appendToBuilder(sb)
	}
}

func (e Element) appendToBuilder(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("#", e.Prefix.Hash))
	sb.WriteString(strings.Repeat("'", e.Prefix.Quote))
	sb.WriteString(strings.Repeat("`", e.Prefix.Backquote))

	switch e.Kind {
	case KindList:
		sb.WriteRune('(')
		appendJoined(sb, e.Children, ' ')
		sb.WriteRune(')')
	case KindVector:
		sb.WriteRune('[')
		appendJoined(sb, e.Children, ' ')
		sb.WriteRune(']')
	case KindMap:
		sb.WriteRune('{')
		for i, p := range e.Pairs {
			if i > 0 && e.Pairs[i-1].Value.Kind != KindComment {
				sb.WriteRune(' ')
			}
			p.Key.appendToBuilder(sb)
			if p.Key.Kind != KindComment {
				sb.WriteRune(' ')
			}
			p.Value.appendToBuilder(sb)
		}
		sb.WriteRune('}')
	case KindIdentifier:
		s, _ := e.AsText()
		sb.WriteString(s)
	case KindString:
		s, _ := e.AsText()
		appendQuoted(sb, s)
	case KindComment:
		s, _ := e.AsText()
		sb.WriteRune(';')
		sb.WriteString(s)
		sb.WriteRune('\n')
	case KindChar:
		r, _ := e.AsChar()
		sb.WriteRune('\\')
		sb.WriteRune(r)
	case KindInt:
		i, _ := e.AsInt()
		sb.WriteString(strconv.FormatInt(i, 10))
	case KindFloat:
		f, _ := e.AsFloat()
		sb.WriteString(FormatFloat(f))
	case KindError:
		sb.WriteString("!!(")
		sb.WriteString(e.Fault.String())
		if e.LexFault != LexFaultNone {
			sb.WriteRune(' ')
			sb.WriteString(e.LexFault.String())
		}
		sb.WriteString(")!!")
	}
}

// FormatFloat renders f in the shortest decimal form that reads back to the
// same value. The result always contains a '.' so it lexes as a float.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}

func appendQuoted(sb *strings.Builder, s string) {
	sb.WriteRune('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			sb.WriteRune('\\')
			sb.WriteRune(r)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteRune('"')
}

// Quote returns s as a string literal.
func Quote(s string) string {
	var sb strings.Builder
	appendQuoted(&sb, s)
	return sb.String()
}
