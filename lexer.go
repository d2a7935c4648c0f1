package adn

// Lexer turns a code-point buffer into tokens, one per call to Next.
type Lexer struct {
	c cursor[rune]
}

func NewLexer(src []rune) *Lexer {
	return &Lexer{c: cursor[rune]{buf: src}}
}

// Lex scans src to the end. The returned slice always ends with exactly one
// TokenEndOfFile.
func Lex(src []rune) (tokens []Token) {
	l := NewLexer(src)
	for {
		t := l.Next()
		tokens = append(tokens, t)
		if t.Kind == TokenEndOfFile {
			return
		}
	}
}

// LexString decodes s as UTF-8 and scans it. Invalid byte sequences decode to
// U+FFFD.
func LexString(s string) []Token {
	return Lex([]rune(s))
}

func isWhitespace(r rune) bool {
	if r >= 0 && r <= ' ' {
		return true
	}
	switch r {
	case ',',
		0x0085, // next line
		0x00A0, // no-break space
		0x1680, // ogham space mark
		0x2028, // line separator
		0x2029, // paragraph separator
		0x202F, // narrow no-break space
		0x205F, // medium mathematical space
		0x3000, // ideographic space
		0xFEFF: // zero width no-break space
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}

func isDelimiter(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}', '#':
		return true
	}
	return isWhitespace(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

var structural = map[rune]TokenKind{
	'(':  TokenParenLeft,
	')':  TokenParenRight,
	'[':  TokenBracketLeft,
	']':  TokenBracketRight,
	'{':  TokenCurlyLeft,
	'}':  TokenCurlyRight,
	'#':  TokenHash,
	'\'': TokenQuote,
	'`':  TokenBackquote,
}

func (l *Lexer) skipWhitespace() {
	for {
		r, ok := l.c.peek()
		if !ok || !isWhitespace(r) {
			return
		}
		l.c.next()
	}
}

// Next scans one token. Once the buffer is exhausted every call returns
// TokenEndOfFile.
func (l *Lexer) Next() (t Token) {
	l.skipWhitespace()

	r, ok := l.c.next()
	if !ok {
		t.Kind = TokenEndOfFile
		return
	}

	if k, ok := structural[r]; ok {
		t.Kind = k
		return
	}

	switch r {
	case ';':
		return l.comment()
	case '\\':
		return l.char()
	case '"':
		return l.quoted()
	}

	if isDigit(r) || r == '.' {
		return l.number(r)
	}
	if r == '+' || r == '-' {
		if n, ok := l.c.peek(); ok && (isDigit(n) || n == '.') {
			return l.number(r)
		}
	}

	t.Kind = TokenIdentifier
	t.Text, _ = l.run(r)
	return
}

func (l *Lexer) comment() (t Token) {
	t.Kind = TokenComment
	t.Text = []rune{}
	for {
		r, ok := l.c.next()
		if !ok || r == '\n' {
			return
		}
		t.Text = append(t.Text, r)
	}
}

func (l *Lexer) char() (t Token) {
	r, ok := l.c.next()
	if !ok {
		t.Kind = TokenError
		t.Fault = CharUnterminated
		return
	}
	t.Kind = TokenChar
	t.Text = []rune{r}
	return
}

func (l *Lexer) quoted() (t Token) {
	t.Kind = TokenString
	t.Text = []rune{}
	for {
		r, ok := l.c.next()
		if !ok {
			break
		}
		if r == '"' {
			return
		}
		if r == '\\' {
			r, ok = l.c.next()
			if !ok {
				break
			}
			switch r {
			case 'n':
				r = '\n'
			case 'r':
				r = '\r'
			case 't':
				r = '\t'
			}
		}
		t.Text = append(t.Text, r)
	}

	t.Kind = TokenError
	t.Fault = StringUnterminated
	return
}

// run collects first plus every code point up to the next delimiter. eof
// reports whether the run stopped at the end of the buffer.
func (l *Lexer) run(first rune) (text []rune, eof bool) {
	text = []rune{first}
	for {
		r, ok := l.c.peek()
		if !ok {
			return text, true
		}
		if isDelimiter(r) {
			return text, false
		}
		l.c.next()
		text = append(text, r)
	}
}

// number classifies a numeric run by its dots only; the parser does the
// actual conversion and reports text that is not a decimal number.
func (l *Lexer) number(first rune) (t Token) {
	var eof bool
	t.Text, eof = l.run(first)

	dots := 0
	for _, r := range t.Text {
		if r == '.' {
			dots++
		}
	}
	if dots == 0 {
		t.Kind = TokenInt
		return
	}

	if t.Text[len(t.Text)-1] == '.' {
		t.Kind = TokenError
		t.Fault = FloatMalformed
		if eof {
			t.Fault |= FloatUnterminated
		}
		return
	}

	t.Kind = TokenFloat
	return
}
