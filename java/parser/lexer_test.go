package parser

import "testing"

func lexKinds(input string) []TokenKind {
	lexer := NewLexer([]byte(input), "test.java")
	var got []TokenKind
	for {
		tok := lexer.NextToken()
		switch tok.Kind {
		case TokenWhitespace, TokenComment, TokenLineComment:
			continue
		}
		got = append(got, tok.Kind)
		if tok.Kind == TokenEOF {
			return got
		}
	}
}

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"class", []TokenKind{TokenClass, TokenEOF}},
		{"public class Main {}", []TokenKind{TokenPublic, TokenClass, TokenIdent, TokenLBrace, TokenRBrace, TokenEOF}},
		{"123", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"123L", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"0x1F", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"0b1010", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"1_000_000", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"3.14", []TokenKind{TokenFloatLiteral, TokenEOF}},
		{"1e10", []TokenKind{TokenFloatLiteral, TokenEOF}},
		{"2.5f", []TokenKind{TokenFloatLiteral, TokenEOF}},
		{"1d", []TokenKind{TokenFloatLiteral, TokenEOF}},
		{".5", []TokenKind{TokenFloatLiteral, TokenEOF}},
		{"\"hello\"", []TokenKind{TokenStringLiteral, TokenEOF}},
		{`"a \" b"`, []TokenKind{TokenStringLiteral, TokenEOF}},
		{"'a'", []TokenKind{TokenCharLiteral, TokenEOF}},
		{`'\n'`, []TokenKind{TokenCharLiteral, TokenEOF}},
		{"\"\"\"\nHello\n\"\"\"", []TokenKind{TokenTextBlock, TokenEOF}},
		{"// comment\nclass", []TokenKind{TokenClass, TokenEOF}},
		{"/* block */ class", []TokenKind{TokenClass, TokenEOF}},
		{"+ - * / %", []TokenKind{TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent, TokenEOF}},
		{"== != < <= > >=", []TokenKind{TokenEQ, TokenNE, TokenLT, TokenLE, TokenGT, TokenGE, TokenEOF}},
		{"&& || !", []TokenKind{TokenAnd, TokenOr, TokenNot, TokenEOF}},
		{"<< >> >>>", []TokenKind{TokenShl, TokenShr, TokenUShr, TokenEOF}},
		{">>>= >>= <<=", []TokenKind{TokenUShrAssign, TokenShrAssign, TokenShlAssign, TokenEOF}},
		{"++ --", []TokenKind{TokenIncrement, TokenDecrement, TokenEOF}},
		{"->", []TokenKind{TokenArrow, TokenEOF}},
		{"::", []TokenKind{TokenColonColon, TokenEOF}},
		{"...", []TokenKind{TokenEllipsis, TokenEOF}},
		{"@", []TokenKind{TokenAt, TokenEOF}},
		{"a.b", []TokenKind{TokenIdent, TokenDot, TokenIdent, TokenEOF}},
		{"true false null", []TokenKind{TokenTrue, TokenFalse, TokenNull, TokenEOF}},
		{"var yield record", []TokenKind{TokenVar, TokenYield, TokenRecord, TokenEOF}},
		{"non-sealed class", []TokenKind{TokenNonSealed, TokenClass, TokenEOF}},
		{"non - sealed", []TokenKind{TokenIdent, TokenMinus, TokenSealed, TokenEOF}},
		{"$proxy12 _x", []TokenKind{TokenIdent, TokenIdent, TokenEOF}},
		{"#", []TokenKind{TokenError, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := lexKinds(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	lexer := NewLexer([]byte("package a;\n  import b;"), "Test.java")

	var tokens []Token
	for {
		tok := lexer.NextToken()
		if tok.Kind == TokenEOF {
			break
		}
		if tok.Kind != TokenWhitespace {
			tokens = append(tokens, tok)
		}
	}

	if len(tokens) != 6 {
		t.Fatalf("got %d tokens, want 6", len(tokens))
	}
	imp := tokens[3]
	if imp.Kind != TokenImport || imp.Literal != "import" {
		t.Fatalf("token 3 = %v %q, want import", imp.Kind, imp.Literal)
	}
	if imp.Span.Start.Line != 2 || imp.Span.Start.Column != 3 {
		t.Errorf("import starts at %s, want 2:3", imp.Span.Start)
	}
	if imp.Span.Start.File != "Test.java" {
		t.Errorf("file = %q, want Test.java", imp.Span.Start.File)
	}
	if imp.Span.End.Offset-imp.Span.Start.Offset != len("import") {
		t.Errorf("span covers %d bytes, want %d", imp.Span.End.Offset-imp.Span.Start.Offset, len("import"))
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenKind
	}{
		{"class", TokenClass},
		{"while", TokenWhile},
		{"abstract", TokenAbstract},
		{"permits", TokenPermits},
		{"non-sealed", TokenIdent},
		{"invoke", TokenIdent},
		{"Class", TokenIdent},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			if got := LookupKeyword(tt.ident); got != tt.want {
				t.Errorf("LookupKeyword(%q) = %v, want %v", tt.ident, got, tt.want)
			}
		})
	}
}

func TestTokenKindString(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want string
	}{
		{TokenEOF, "EOF"},
		{TokenIdent, "Identifier"},
		{TokenClass, "class"},
		{TokenNonSealed, "non-sealed"},
		{TokenSemicolon, ";"},
		{TokenUShrAssign, ">>>="},
		{TokenKind(9999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("TokenKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}
