package syntax

import (
	"fmt"
	"strings"
)

// tokenKind classifies a lexical token.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokInt
	tokFloat
	tokChar
	tokString
	tokComment
	tokPunct
)

// token is a lexeme with its source span.
type token struct {
	kind    tokenKind
	text    string
	start   int
	end     int
	line    int
	col     int
	endLine int
}

// SyntaxError reports source that is outside the supported grammar.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// puncts lists punctuators, longest first so that ">>>" wins over ">>".
var puncts = []string{
	">>>",
	"<<", ">>", "==", "!=", "<=", ">=", "&&", "||", "++", "--",
	"+", "-", "*", "/", "%", "&", "|", "^", "!", "~", "<", ">",
	"?", ":", ".", ",", ";", "=", "[", "]", "{", "}", "(", ")",
}

// lexer splits source into tokens, tracking line and column.
type lexer struct {
	src  []byte
	pos  int
	line int
	col  int
}

func lex(src []byte) ([]token, error) {
	l := &lexer{src: src, line: 1, col: 1}
	var toks []token
	for {
		t, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.kind == tokEOF {
			return toks, nil
		}
	}
}

func (l *lexer) errorf(line, col int, format string, args ...any) error {
	return &SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// advance consumes n bytes, updating the position counters.
func (l *lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.src[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

func (l *lexer) peekByte(off int) byte {
	if l.pos+off < len(l.src) {
		return l.src[l.pos+off]
	}
	return 0
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\r', '\n', '\f', '\v':
			l.advance(1)
		default:
			return
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()

	t := token{start: l.pos, line: l.line, col: l.col}
	if l.pos >= len(l.src) {
		t.end, t.endLine = l.pos, l.line
		return t, nil
	}

	c := l.src[l.pos]
	switch {
	case c == '/' && l.peekByte(1) == '/':
		t.kind = tokComment
		for l.pos < len(l.src) && l.src[l.pos] != '\n' {
			l.advance(1)
		}
		// Keep "\r" of CRLF files out of the comment text.
		if l.pos > t.start && l.src[l.pos-1] == '\r' {
			t.end = l.pos - 1
			t.endLine = l.line
			t.text = string(l.src[t.start:t.end])
			return t, nil
		}

	case c == '/' && l.peekByte(1) == '*':
		t.kind = tokComment
		l.advance(2)
		for {
			if l.pos >= len(l.src) {
				return t, l.errorf(t.line, t.col, "unterminated block comment")
			}
			if l.src[l.pos] == '*' && l.peekByte(1) == '/' {
				l.advance(2)
				break
			}
			l.advance(1)
		}

	case isIdentStart(c):
		t.kind = tokIdent
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.advance(1)
		}

	case isDigit(c):
		t.kind = l.lexNumber()

	case c == '"' || c == '\'':
		t.kind = tokString
		if c == '\'' {
			t.kind = tokChar
		}
		if err := l.lexQuoted(c); err != nil {
			return t, err
		}

	default:
		p := matchPunct(l.src[l.pos:])
		if p == "" {
			return t, l.errorf(t.line, t.col, "unexpected character %q", c)
		}
		t.kind = tokPunct
		l.advance(len(p))
	}

	t.end = l.pos
	t.endLine = l.line
	t.text = string(l.src[t.start:t.end])
	return t, nil
}

func (l *lexer) lexNumber() tokenKind {
	if l.src[l.pos] == '0' && (l.peekByte(1) == 'x' || l.peekByte(1) == 'X' || l.peekByte(1) == 'b' || l.peekByte(1) == 'B') {
		l.advance(2)
		for l.pos < len(l.src) && (isHexDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
			l.advance(1)
		}
		return tokInt
	}

	kind := tokInt
	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.advance(1)
	}
	if l.peekByte(0) == '.' && isDigit(l.peekByte(1)) {
		kind = tokFloat
		l.advance(1)
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.advance(1)
		}
	}
	if e := l.peekByte(0); e == 'e' || e == 'E' {
		off := 1
		if s := l.peekByte(1); s == '+' || s == '-' {
			off = 2
		}
		if isDigit(l.peekByte(off)) {
			kind = tokFloat
			l.advance(off)
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.advance(1)
			}
		}
	}
	return kind
}

// lexQuoted consumes a string or character literal delimited by quote.
func (l *lexer) lexQuoted(quote byte) error {
	line, col := l.line, l.col
	l.advance(1)
	for {
		if l.pos >= len(l.src) || l.src[l.pos] == '\n' {
			return l.errorf(line, col, "unterminated literal")
		}
		switch l.src[l.pos] {
		case '\\':
			if l.pos+1 >= len(l.src) {
				return l.errorf(line, col, "unterminated literal")
			}
			l.advance(2)
		case quote:
			l.advance(1)
			return nil
		default:
			l.advance(1)
		}
	}
}

func matchPunct(b []byte) string {
	for _, p := range puncts {
		if len(b) >= len(p) && strings.HasPrefix(string(b[:len(p)]), p) {
			return p
		}
	}
	return ""
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
