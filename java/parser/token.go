package parser

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenLineComment

	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenStringLiteral
	TokenTextBlock
	TokenTrue
	TokenFalse
	TokenNull

	// Reserved words. Order matches keywordOrder below.
	TokenAbstract
	TokenAssert
	TokenBoolean
	TokenBreak
	TokenByte
	TokenCase
	TokenCatch
	TokenChar
	TokenClass
	TokenConst
	TokenContinue
	TokenDefault
	TokenDo
	TokenDouble
	TokenElse
	TokenEnum
	TokenExtends
	TokenFinal
	TokenFinally
	TokenFloat
	TokenFor
	TokenGoto
	TokenIf
	TokenImplements
	TokenImport
	TokenInstanceof
	TokenInt
	TokenInterface
	TokenLong
	TokenNative
	TokenNew
	TokenPackage
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenReturn
	TokenShort
	TokenStatic
	TokenStrictfp
	TokenSuper
	TokenSwitch
	TokenSynchronized
	TokenThis
	TokenThrow
	TokenThrows
	TokenTransient
	TokenTry
	TokenVoid
	TokenVolatile
	TokenWhile

	// Contextual keywords. The parser treats them as identifiers
	// wherever a name is legal.
	TokenVar
	TokenYield
	TokenRecord
	TokenSealed
	TokenNonSealed
	TokenPermits

	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenEllipsis
	TokenAt
	TokenColonColon

	TokenAssign
	TokenEQ
	TokenNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenAnd
	TokenOr
	TokenNot
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenBitNot
	TokenShl
	TokenShr
	TokenUShr
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenIncrement
	TokenDecrement
	TokenQuestion
	TokenColon
	TokenArrow
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenShlAssign
	TokenShrAssign
	TokenUShrAssign
)

var keywordOrder = []string{
	"abstract", "assert", "boolean", "break", "byte", "case", "catch",
	"char", "class", "const", "continue", "default", "do", "double",
	"else", "enum", "extends", "final", "finally", "float", "for", "goto",
	"if", "implements", "import", "instanceof", "int", "interface", "long",
	"native", "new", "package", "private", "protected", "public", "return",
	"short", "static", "strictfp", "super", "switch", "synchronized",
	"this", "throw", "throws", "transient", "try", "void", "volatile",
	"while",
	"var", "yield", "record", "sealed", "non-sealed", "permits",
}

var punctuation = map[TokenKind]string{
	TokenLParen: "(", TokenRParen: ")", TokenLBrace: "{", TokenRBrace: "}",
	TokenLBracket: "[", TokenRBracket: "]", TokenSemicolon: ";",
	TokenComma: ",", TokenDot: ".", TokenEllipsis: "...", TokenAt: "@",
	TokenColonColon: "::", TokenAssign: "=", TokenEQ: "==", TokenNE: "!=",
	TokenLT: "<", TokenLE: "<=", TokenGT: ">", TokenGE: ">=",
	TokenAnd: "&&", TokenOr: "||", TokenNot: "!", TokenBitAnd: "&",
	TokenBitOr: "|", TokenBitXor: "^", TokenBitNot: "~", TokenShl: "<<",
	TokenShr: ">>", TokenUShr: ">>>", TokenPlus: "+", TokenMinus: "-",
	TokenStar: "*", TokenSlash: "/", TokenPercent: "%",
	TokenIncrement: "++", TokenDecrement: "--", TokenQuestion: "?",
	TokenColon: ":", TokenArrow: "->", TokenPlusAssign: "+=",
	TokenMinusAssign: "-=", TokenStarAssign: "*=", TokenSlashAssign: "/=",
	TokenPercentAssign: "%=", TokenAndAssign: "&=", TokenOrAssign: "|=",
	TokenXorAssign: "^=", TokenShlAssign: "<<=", TokenShrAssign: ">>=",
	TokenUShrAssign: ">>>=",
}

var (
	keywords       = make(map[string]TokenKind, len(keywordOrder)+3)
	tokenKindNames = map[TokenKind]string{
		TokenEOF:           "EOF",
		TokenError:         "Error",
		TokenWhitespace:    "Whitespace",
		TokenComment:       "Comment",
		TokenLineComment:   "LineComment",
		TokenIdent:         "Identifier",
		TokenIntLiteral:    "IntLiteral",
		TokenFloatLiteral:  "FloatLiteral",
		TokenCharLiteral:   "CharLiteral",
		TokenStringLiteral: "StringLiteral",
		TokenTextBlock:     "TextBlock",
		TokenTrue:          "true",
		TokenFalse:         "false",
		TokenNull:          "null",
	}
)

func init() {
	for i, word := range keywordOrder {
		kind := TokenAbstract + TokenKind(i)
		keywords[word] = kind
		tokenKindNames[kind] = word
	}
	keywords["true"] = TokenTrue
	keywords["false"] = TokenFalse
	keywords["null"] = TokenNull
	for kind, text := range punctuation {
		tokenKindNames[kind] = text
	}
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

// LookupKeyword maps an identifier to its keyword kind, or TokenIdent.
// "non-sealed" is never produced here since it is not a single identifier;
// the lexer recognizes it separately.
func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok && kind != TokenNonSealed {
		return kind
	}
	return TokenIdent
}
