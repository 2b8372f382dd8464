package parser

import (
	"sort"
	"unicode"
	"unicode/utf8"
)

type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	return l.peekN(0)
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) hasPrefix(s string) bool {
	if l.pos+len(s) > len(l.input) {
		return false
	}
	return string(l.input[l.pos:l.pos+len(s)]) == s
}

func (l *Lexer) NextToken() Token {
	start := l.Position()

	ch := l.peek()
	switch {
	case l.pos >= len(l.input):
		return Token{Kind: TokenEOF, Span: Span{Start: start, End: start}}
	case l.hasPrefix("//"):
		for l.peek() != 0 && l.peek() != '\n' {
			l.advance()
		}
		return l.token(TokenLineComment, start)
	case l.hasPrefix("/*"):
		l.advanceN(2)
		for l.peek() != 0 && !l.hasPrefix("*/") {
			l.advance()
		}
		l.advanceN(2)
		return l.token(TokenComment, start)
	case isSpace(ch):
		for isSpace(l.peek()) {
			l.advance()
		}
		return l.token(TokenWhitespace, start)
	case isJavaLetter(ch):
		return l.scanIdentOrKeyword(start)
	case isDigit(ch), ch == '.' && isDigit(l.peekN(1)):
		return l.scanNumber(start)
	case ch == '\'':
		l.scanQuoted('\'')
		return l.token(TokenCharLiteral, start)
	case l.hasPrefix(`"""`):
		l.advanceN(3)
		for l.peek() != 0 && !l.hasPrefix(`"""`) {
			if l.peek() == '\\' {
				l.advance()
			}
			l.advance()
		}
		l.advanceN(3)
		return l.token(TokenTextBlock, start)
	case ch == '"':
		l.scanQuoted('"')
		return l.token(TokenStringLiteral, start)
	}

	return l.scanOperator(start)
}

// scanQuoted consumes a single-line quoted literal, honoring backslash
// escapes. An unterminated literal stops at the end of the line.
func (l *Lexer) scanQuoted(quote byte) {
	l.advance()
	for l.peek() != 0 && l.peek() != quote && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() == quote {
		l.advance()
	}
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for isJavaLetterOrDigit(l.peek()) {
		l.advance()
	}
	literal := string(l.input[start.Offset:l.pos])

	if literal == "non" && l.hasPrefix("-sealed") && !isJavaLetterOrDigit(l.peekN(7)) {
		l.advanceN(7)
		return l.token(TokenNonSealed, start)
	}

	return l.token(LookupKeyword(literal), start)
}

func (l *Lexer) scanNumber(start Position) Token {
	kind := TokenIntLiteral
	digits := isDigit

	switch {
	case l.hasPrefix("0x") || l.hasPrefix("0X"):
		l.advanceN(2)
		digits = isHexDigit
	case l.hasPrefix("0b") || l.hasPrefix("0B"):
		l.advanceN(2)
		digits = func(ch byte) bool { return ch == '0' || ch == '1' }
	}

	consume := func() {
		for digits(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}

	consume()
	if l.peek() == '.' && (digits(l.peekN(1)) || !isJavaLetter(l.peekN(1)) && l.peekN(1) != '.') {
		kind = TokenFloatLiteral
		l.advance()
		consume()
	}

	exponent := byte('e')
	if start.Offset+1 < len(l.input) && (l.input[start.Offset+1] == 'x' || l.input[start.Offset+1] == 'X') {
		exponent = 'p'
	}
	if l.peek()|0x20 == exponent {
		kind = TokenFloatLiteral
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}

	switch l.peek() | 0x20 {
	case 'f', 'd':
		if exponent == 'e' || kind == TokenFloatLiteral {
			kind = TokenFloatLiteral
			l.advance()
		}
	case 'l':
		l.advance()
	}

	return l.token(kind, start)
}

// operators is sorted longest first so the first prefix match wins.
var operators = func() []TokenKind {
	var kinds []TokenKind
	for kind := range punctuation {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool {
		a, b := punctuation[kinds[i]], punctuation[kinds[j]]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
	return kinds
}()

func (l *Lexer) scanOperator(start Position) Token {
	for _, kind := range operators {
		if l.hasPrefix(punctuation[kind]) {
			l.advanceN(len(punctuation[kind]))
			return l.token(kind, start)
		}
	}

	_, size := utf8.DecodeRune(l.input[l.pos:])
	l.advanceN(size)
	return l.token(TokenError, start)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// Bytes >= 0x80 belong to a multi-byte rune; CFR output only contains them
// inside identifiers when renameillegalidents is off, so any of them is
// accepted as an identifier byte.
func isJavaLetter(ch byte) bool {
	if ch >= utf8.RuneSelf {
		return true
	}
	return unicode.IsLetter(rune(ch)) || ch == '_' || ch == '$'
}

func isJavaLetterOrDigit(ch byte) bool {
	return isJavaLetter(ch) || isDigit(ch)
}
