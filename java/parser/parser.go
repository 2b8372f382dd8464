package parser

import (
	"bytes"
	"fmt"
	"io"
	"slices"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithComments() Option {
	return func(p *Parser) {
		p.includeComments = true
	}
}

func WithPositions() Option {
	return func(p *Parser) {
		p.includePositions = true
	}
}

type parseFunc func(*Parser) *Node

type Parser struct {
	file             string
	includeComments  bool
	includePositions bool
	reader           io.Reader
	input            []byte
	tokens           []Token
	comments         []Token
	pos              int
	entry            parseFunc
	incomplete       bool
	splits           []tokenSplit
}

type tokenSplit struct {
	pos  int
	orig Token
}

// SyntaxError reports the first error node of a parse, or an input that
// ended before a complete compilation unit was read.
type SyntaxError struct {
	File    string
	Pos     Position
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Pos.Line == 0 {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return fmt.Sprintf("%s:%s: %s", e.File, e.Pos, e.Message)
}

// Parse parses a complete compilation unit. Unlike Finish it fails on any
// syntax error instead of returning a tree with error nodes.
func Parse(file string, src []byte, opts ...Option) (*Node, error) {
	p := ParseCompilationUnit(bytes.NewReader(src), append([]Option{WithFile(file)}, opts...)...)
	node := p.Finish()
	if node == nil {
		return nil, &SyntaxError{File: file, Message: "incomplete or empty compilation unit"}
	}
	if bad := node.FirstError(); bad != nil {
		msg := bad.Error.Message
		if got := bad.Error.Got; got != nil && got.Kind != TokenEOF {
			msg += fmt.Sprintf(", got %q", got.Literal)
		}
		return nil, &SyntaxError{File: file, Pos: bad.Span.Start, Message: msg}
	}
	return node, nil
}

func (p *Parser) IncludesPositions() bool {
	return p.includePositions
}

func (p *Parser) Comments() []Token {
	return p.comments
}

func ParseCompilationUnit(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseCompilationUnit, opts)
}

func ParseExpression(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseExpression, opts)
}

func ParseStatement(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseStatement, opts)
}

func newParser(r io.Reader, entry parseFunc, opts []Option) *Parser {
	p := &Parser{reader: r, entry: entry}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Finish reads the whole input and parses it. It returns nil when the input
// is empty, unreadable, or ends in the middle of a construct.
func (p *Parser) Finish() *Node {
	if p.input == nil {
		data, err := io.ReadAll(p.reader)
		if err != nil {
			return nil
		}
		p.input = data
	}
	if len(bytes.TrimSpace(p.input)) == 0 {
		return nil
	}

	p.tokenize()
	result := p.entry(p)
	if p.incomplete {
		return nil
	}
	return result
}

func (p *Parser) Reset(r io.Reader) {
	p.reader = r
	p.input = nil
	p.tokens = nil
	p.comments = nil
	p.pos = 0
	p.incomplete = false
	p.splits = nil
}

func (p *Parser) tokenize() {
	lexer := NewLexer(p.input, p.file)
	p.tokens = p.tokens[:0]
	p.comments = p.comments[:0]
	p.splits = p.splits[:0]
	p.pos = 0
	p.incomplete = false
	for {
		tok := lexer.NextToken()
		switch tok.Kind {
		case TokenWhitespace:
			continue
		case TokenComment, TokenLineComment:
			if p.includeComments {
				p.comments = append(p.comments, tok)
			}
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			return
		}
	}
}

func (p *Parser) peek() Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) && tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

// accept consumes the next token if it has the given kind.
func (p *Parser) accept(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of the given kind. On mismatch it records an
// error node on parent (when not nil) and consumes nothing.
func (p *Parser) expect(parent *Node, kind TokenKind) *Token {
	tok := p.peek()
	if tok.Kind == kind {
		p.advance()
		return &tok
	}
	if tok.Kind == TokenEOF {
		p.incomplete = true
	}
	if parent != nil {
		parent.AddChild(&Node{
			Kind: KindError,
			Span: tok.Span,
			Error: &Error{
				Message:  "expected " + kind.String(),
				Expected: []TokenKind{kind},
				Got:      &tok,
			},
		})
	}
	return nil
}

func (p *Parser) isIdentifierLike() bool {
	return isIdentifierKind(p.peek().Kind)
}

func isIdentifierKind(kind TokenKind) bool {
	switch kind {
	case TokenIdent, TokenVar, TokenYield, TokenRecord,
		TokenSealed, TokenNonSealed, TokenPermits:
		return true
	}
	return false
}

// expectIdentifier consumes an identifier-like token and returns it as an
// Identifier node, or an error node when the next token is not a name.
func (p *Parser) expectIdentifier() *Node {
	if p.isIdentifierLike() {
		return leaf(KindIdentifier, p.advance())
	}
	node := &Node{Kind: KindIdentifier}
	p.expect(node, TokenIdent)
	return node.Children[0]
}

// mustProgress returns a function that reports whether the parser moved
// since it was created, forcing one token forward when it did not.
func (p *Parser) mustProgress() func() bool {
	saved := p.pos
	return func() bool {
		if p.pos == saved {
			if !p.check(TokenEOF) {
				p.advance()
			}
			return false
		}
		return true
	}
}

func (p *Parser) startNode(kind NodeKind) *Node {
	return &Node{
		Kind: kind,
		Span: Span{Start: p.peek().Span.Start},
	}
}

func (p *Parser) finishNode(n *Node) *Node {
	if p.pos > 0 && p.pos <= len(p.tokens) {
		n.Span.End = p.tokens[p.pos-1].Span.End
	}
	return n
}

func (p *Parser) errorNode(msg string, recoverTo ...TokenKind) *Node {
	tok := p.peek()
	if tok.Kind == TokenEOF {
		p.incomplete = true
	}
	node := &Node{
		Kind:  KindError,
		Span:  tok.Span,
		Error: &Error{Message: msg, Got: &tok},
	}
	p.recoverTo(recoverTo)
	return node
}

// recoverTo skips tokens until it stands in front of one of the given kinds
// or in front of a closing brace that does not balance a brace skipped on
// the way. Loops calling it guarantee progress through mustProgress.
func (p *Parser) recoverTo(kinds []TokenKind) {
	depth := 0
	for !p.check(TokenEOF) {
		if depth == 0 && p.match(kinds...) {
			return
		}
		switch p.peek().Kind {
		case TokenLBrace:
			depth++
		case TokenRBrace:
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}

// speculate runs fn and rewinds the token position afterwards, returning
// fn's verdict. Error nodes built during speculation are discarded.
func (p *Parser) speculate(fn func() bool) bool {
	save, incomplete, splits := p.pos, p.incomplete, len(p.splits)
	ok := fn()
	p.pos, p.incomplete = save, incomplete
	for len(p.splits) > splits {
		last := p.splits[len(p.splits)-1]
		p.splits = p.splits[:len(p.splits)-1]
		p.tokens[last.pos] = last.orig
		p.tokens = slices.Delete(p.tokens, last.pos+1, last.pos+2)
	}
	return ok
}

func (p *Parser) parseCompilationUnit() *Node {
	node := p.startNode(KindCompilationUnit)

	if p.check(TokenPackage) || p.isAnnotatedPackage() {
		node.AddChild(p.parsePackageDecl())
	}

	for p.check(TokenImport) || p.check(TokenSemicolon) {
		if p.accept(TokenSemicolon) {
			continue
		}
		node.AddChild(p.parseImportDecl())
	}

	for !p.check(TokenEOF) {
		if p.accept(TokenSemicolon) {
			continue
		}
		progress := p.mustProgress()
		node.AddChild(p.parseTypeDecl())
		progress()
	}

	return p.finishNode(node)
}

func (p *Parser) isAnnotatedPackage() bool {
	if !p.check(TokenAt) || p.peekN(1).Kind == TokenInterface {
		return false
	}
	return p.speculate(func() bool {
		for p.check(TokenAt) {
			p.parseAnnotation()
		}
		return p.check(TokenPackage)
	})
}

func (p *Parser) parsePackageDecl() *Node {
	node := p.startNode(KindPackageDecl)
	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}
	p.expect(node, TokenPackage)
	node.AddChild(p.parseQualifiedName())
	p.expect(node, TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseImportDecl() *Node {
	node := p.startNode(KindImportDecl)
	p.expect(node, TokenImport)

	if p.check(TokenStatic) {
		node.AddChild(leaf(KindIdentifier, p.advance()))
	}

	node.AddChild(p.parseQualifiedName())

	if p.check(TokenDot) && p.peekN(1).Kind == TokenStar {
		p.advance()
		node.AddChild(leaf(KindIdentifier, p.advance()))
	}

	p.expect(node, TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseQualifiedName() *Node {
	node := p.startNode(KindQualifiedName)
	node.AddChild(p.expectIdentifier())

	for p.check(TokenDot) && isIdentifierKind(p.peekN(1).Kind) {
		p.advance()
		node.AddChild(leaf(KindIdentifier, p.advance()))
	}

	return p.finishNode(node)
}

var typeDeclRecovery = []TokenKind{
	TokenAt, TokenPublic, TokenPrivate, TokenProtected, TokenAbstract,
	TokenStatic, TokenFinal, TokenStrictfp, TokenClass, TokenInterface,
	TokenEnum,
}

func (p *Parser) parseTypeDecl() *Node {
	modifiers := p.parseModifiers()
	if decl := p.parseTypeDeclBody(modifiers); decl != nil {
		return decl
	}
	return p.errorNode("expected class, interface, enum, record, or @interface", typeDeclRecovery...)
}

// parseTypeDeclBody dispatches on the keyword that follows the modifiers.
// It returns nil when no type declaration starts here.
func (p *Parser) parseTypeDeclBody(modifiers *Node) *Node {
	switch p.peek().Kind {
	case TokenClass:
		return p.parseClassDecl(KindClassDecl, modifiers)
	case TokenInterface:
		return p.parseClassDecl(KindInterfaceDecl, modifiers)
	case TokenEnum:
		return p.parseClassDecl(KindEnumDecl, modifiers)
	case TokenRecord:
		if isIdentifierKind(p.peekN(1).Kind) {
			return p.parseClassDecl(KindRecordDecl, modifiers)
		}
	case TokenAt:
		if p.peekN(1).Kind == TokenInterface {
			p.advance()
			return p.parseClassDecl(KindAnnotationDecl, modifiers)
		}
	}
	return nil
}

func (p *Parser) parseModifiers() *Node {
	node := p.startNode(KindModifiers)

	for {
		switch p.peek().Kind {
		case TokenAt:
			if p.peekN(1).Kind == TokenInterface {
				return p.finishNode(node)
			}
			node.AddChild(p.parseAnnotation())
		case TokenPublic, TokenProtected, TokenPrivate,
			TokenAbstract, TokenStatic, TokenFinal,
			TokenStrictfp, TokenNative, TokenSynchronized,
			TokenTransient, TokenVolatile, TokenNonSealed:
			node.AddChild(leaf(KindIdentifier, p.advance()))
		case TokenDefault:
			// "default" is a modifier only on interface methods, never
			// in front of a switch label colon or arrow.
			if next := p.peekN(1).Kind; next == TokenColon || next == TokenArrow {
				return p.finishNode(node)
			}
			node.AddChild(leaf(KindIdentifier, p.advance()))
		case TokenSealed:
			if !p.startsDeclarationAfterModifier() {
				return p.finishNode(node)
			}
			node.AddChild(leaf(KindIdentifier, p.advance()))
		default:
			return p.finishNode(node)
		}
	}
}

func (p *Parser) startsDeclarationAfterModifier() bool {
	switch p.peekN(1).Kind {
	case TokenClass, TokenInterface, TokenAbstract, TokenPublic,
		TokenProtected, TokenPrivate, TokenStatic, TokenFinal, TokenStrictfp:
		return true
	}
	return false
}

func (p *Parser) parseAnnotation() *Node {
	node := p.startNode(KindAnnotation)
	p.expect(node, TokenAt)
	node.AddChild(p.parseQualifiedName())

	if p.accept(TokenLParen) {
		for !p.check(TokenRParen) && !p.check(TokenEOF) {
			progress := p.mustProgress()
			if p.isIdentifierLike() && p.peekN(1).Kind == TokenAssign {
				elem := p.startNode(KindAnnotationElement)
				elem.AddChild(leaf(KindIdentifier, p.advance()))
				p.advance()
				elem.AddChild(p.parseElementValue())
				node.AddChild(p.finishNode(elem))
			} else {
				node.AddChild(p.parseElementValue())
			}
			if !p.accept(TokenComma) || !progress() {
				break
			}
		}
		p.expect(node, TokenRParen)
	}

	return p.finishNode(node)
}

func (p *Parser) parseElementValue() *Node {
	switch {
	case p.check(TokenAt):
		return p.parseAnnotation()
	case p.check(TokenLBrace):
		node := p.startNode(KindArrayInit)
		p.advance()
		for !p.check(TokenRBrace) && !p.check(TokenEOF) {
			node.AddChild(p.parseElementValue())
			if !p.accept(TokenComma) {
				break
			}
		}
		p.expect(node, TokenRBrace)
		return p.finishNode(node)
	}
	return p.parseTernaryExpr()
}

// parseClassDecl parses every flavour of type declaration. The resulting
// node holds, in order: modifiers, the name, optional type parameters,
// record components, supertypes, and the body block.
func (p *Parser) parseClassDecl(kind NodeKind, modifiers *Node) *Node {
	node := p.startNode(kind)
	if modifiers != nil {
		node.Span.Start = modifiers.Span.Start
		node.AddChild(modifiers)
	}

	p.advance() // class, interface, enum, record, or the interface of @interface
	node.AddChild(p.expectIdentifier())

	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}
	if kind == KindRecordDecl {
		node.AddChild(p.parseParameters())
	}

	for p.match(TokenExtends, TokenImplements, TokenPermits) {
		p.advance()
		for {
			progress := p.mustProgress()
			node.AddChild(p.parseType())
			if !p.accept(TokenComma) || !progress() {
				break
			}
		}
	}

	node.AddChild(p.parseClassBody(kind == KindEnumDecl))
	return p.finishNode(node)
}

func (p *Parser) parseTypeParameters() *Node {
	node := p.startNode(KindTypeParameters)
	p.expect(node, TokenLT)

	for !p.check(TokenEOF) {
		progress := p.mustProgress()
		param := p.startNode(KindTypeParameter)
		for p.check(TokenAt) {
			param.AddChild(p.parseAnnotation())
		}
		param.AddChild(p.expectIdentifier())
		if p.accept(TokenExtends) {
			param.AddChild(p.parseType())
			for p.accept(TokenBitAnd) {
				param.AddChild(p.parseType())
			}
		}
		node.AddChild(p.finishNode(param))
		if !p.accept(TokenComma) || !progress() {
			break
		}
	}

	if !p.expectGT() {
		node.AddChild(p.errorNode("expected >", TokenLBrace, TokenIdent))
	}
	return p.finishNode(node)
}

func (p *Parser) parseType() *Node {
	node := p.startNode(KindType)

	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}

	switch {
	case p.match(TokenBoolean, TokenByte, TokenChar, TokenShort,
		TokenInt, TokenLong, TokenFloat, TokenDouble, TokenVoid):
		node.AddChild(leaf(KindIdentifier, p.advance()))
	case p.isIdentifierLike():
		for {
			node.AddChild(p.parseQualifiedName())
			if p.check(TokenLT) {
				node.AddChild(p.parseTypeArguments())
			}
			// Outer<T>.Inner
			if !(p.check(TokenDot) && isIdentifierKind(p.peekN(1).Kind)) {
				break
			}
			p.advance()
		}
	default:
		return p.errorNode("expected type", TokenIdent, TokenSemicolon, TokenRParen, TokenComma)
	}
	node = p.finishNode(node)

	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		wrapper := &Node{Kind: KindArrayType, Span: Span{Start: node.Span.Start}}
		wrapper.AddChild(node)
		p.advance()
		p.advance()
		node = p.finishNode(wrapper)
	}

	return node
}

func (p *Parser) parseTypeArguments() *Node {
	node := p.startNode(KindTypeArguments)
	p.expect(node, TokenLT)

	for !p.check(TokenGT) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		if p.check(TokenQuestion) {
			wildcard := p.startNode(KindWildcard)
			p.advance()
			if p.match(TokenExtends, TokenSuper) {
				wildcard.AddChild(leaf(KindIdentifier, p.advance()))
				wildcard.AddChild(p.parseType())
			}
			node.AddChild(p.finishNode(wildcard))
		} else {
			node.AddChild(p.parseType())
		}
		if !p.accept(TokenComma) || !progress() {
			break
		}
	}

	if !p.expectGT() {
		node.AddChild(p.errorNode("expected >", TokenSemicolon, TokenLParen, TokenRParen, TokenIdent))
	}
	return p.finishNode(node)
}

// expectGT consumes one '>' closing a type argument list. Compound tokens
// such as '>>' are split in two, leaving the remainder for the enclosing
// list. Splits are journaled so speculation can undo them.
func (p *Parser) expectGT() bool {
	var remainder TokenKind
	switch p.peek().Kind {
	case TokenGT:
		p.advance()
		return true
	case TokenShr:
		remainder = TokenGT
	case TokenUShr:
		remainder = TokenShr
	case TokenGE:
		remainder = TokenAssign
	case TokenShrAssign:
		remainder = TokenGE
	case TokenUShrAssign:
		remainder = TokenShrAssign
	default:
		return false
	}

	orig := p.tokens[p.pos]
	p.splits = append(p.splits, tokenSplit{pos: p.pos, orig: orig})

	gt, rest := orig, orig
	gt.Kind, gt.Literal = TokenGT, ">"
	gt.Span.End = orig.Span.Start
	gt.Span.End.Offset++
	gt.Span.End.Column++
	rest.Kind, rest.Literal = remainder, orig.Literal[1:]
	rest.Span.Start = gt.Span.End

	p.tokens[p.pos] = gt
	p.tokens = slices.Insert(p.tokens, p.pos+1, rest)
	p.advance()
	return true
}

var memberRecovery = []TokenKind{
	TokenAt, TokenPublic, TokenPrivate, TokenProtected, TokenAbstract,
	TokenStatic, TokenFinal, TokenNative, TokenSynchronized, TokenTransient,
	TokenVolatile, TokenStrictfp, TokenClass, TokenInterface, TokenEnum,
	TokenVoid, TokenBoolean, TokenByte, TokenChar, TokenShort, TokenInt,
	TokenLong, TokenFloat, TokenDouble, TokenLT, TokenIdent,
}

func (p *Parser) parseClassBody(enum bool) *Node {
	node := p.startNode(KindBlock)
	if p.expect(node, TokenLBrace) == nil {
		return p.finishNode(node)
	}

	if enum {
		p.parseEnumConstants(node)
	}

	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseClassMember())
		progress()
	}

	p.expect(node, TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseEnumConstants(body *Node) {
	for p.isIdentifierLike() || p.check(TokenAt) {
		progress := p.mustProgress()
		node := p.startNode(KindEnumConstant)
		for p.check(TokenAt) {
			node.AddChild(p.parseAnnotation())
		}
		node.AddChild(p.expectIdentifier())
		if p.check(TokenLParen) {
			node.AddChild(p.parseArguments())
		}
		if p.check(TokenLBrace) {
			node.AddChild(p.parseClassBody(false))
		}
		body.AddChild(p.finishNode(node))
		if !p.accept(TokenComma) || !progress() {
			break
		}
	}
	p.accept(TokenSemicolon)
}

func (p *Parser) parseClassMember() *Node {
	switch {
	case p.check(TokenSemicolon):
		node := p.startNode(KindEmptyStmt)
		p.advance()
		return p.finishNode(node)
	case p.check(TokenLBrace), p.check(TokenStatic) && p.peekN(1).Kind == TokenLBrace:
		node := p.startNode(KindInitializer)
		if p.check(TokenStatic) {
			node.AddChild(leaf(KindIdentifier, p.advance()))
		}
		node.AddChild(p.parseBlock())
		return p.finishNode(node)
	}

	modifiers := p.parseModifiers()

	if decl := p.parseTypeDeclBody(modifiers); decl != nil {
		return decl
	}

	var typeParams *Node
	if p.check(TokenLT) {
		typeParams = p.parseTypeParameters()
	}

	// Constructor: Name(...)  Compact record constructor: Name {...}
	if p.check(TokenIdent) && (p.peekN(1).Kind == TokenLParen || p.peekN(1).Kind == TokenLBrace) {
		return p.parseConstructor(modifiers, typeParams)
	}

	if !p.startsType() {
		return p.errorNode("expected member declaration", memberRecovery...)
	}

	typ := p.parseType()
	if p.isIdentifierLike() && p.peekN(1).Kind == TokenLParen {
		return p.parseMethod(modifiers, typeParams, typ)
	}
	if typeParams != nil {
		return p.errorNode("expected method declaration", memberRecovery...)
	}
	return p.parseField(modifiers, typ)
}

func (p *Parser) startsType() bool {
	return p.isIdentifierLike() || p.match(TokenAt, TokenBoolean, TokenByte,
		TokenChar, TokenShort, TokenInt, TokenLong, TokenFloat, TokenDouble, TokenVoid)
}

func (p *Parser) newMember(kind NodeKind, modifiers, typeParams *Node) *Node {
	node := p.startNode(kind)
	if modifiers != nil {
		node.Span.Start = modifiers.Span.Start
		node.AddChild(modifiers)
	}
	node.AddChild(typeParams)
	return node
}

func (p *Parser) parseConstructor(modifiers, typeParams *Node) *Node {
	node := p.newMember(KindConstructorDecl, modifiers, typeParams)
	node.AddChild(p.expectIdentifier())

	if p.check(TokenLParen) {
		node.AddChild(p.parseParameters())
	}
	if p.check(TokenThrows) {
		node.AddChild(p.parseThrowsList())
	}

	node.AddChild(p.parseBlock())
	return p.finishNode(node)
}

func (p *Parser) parseMethod(modifiers, typeParams, returnType *Node) *Node {
	node := p.newMember(KindMethodDecl, modifiers, typeParams)
	node.AddChild(returnType)
	node.AddChild(p.expectIdentifier())
	node.AddChild(p.parseParameters())

	// legacy array return syntax: int m()[]
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		p.advance()
		p.advance()
	}

	if p.check(TokenThrows) {
		node.AddChild(p.parseThrowsList())
	}

	switch {
	case p.check(TokenLBrace):
		node.AddChild(p.parseBlock())
	case p.accept(TokenDefault):
		node.AddChild(p.parseElementValue())
		p.expect(node, TokenSemicolon)
	default:
		p.expect(node, TokenSemicolon)
	}

	return p.finishNode(node)
}

func (p *Parser) parseField(modifiers, typ *Node) *Node {
	node := p.newMember(KindFieldDecl, modifiers, nil)
	node.AddChild(typ)
	p.parseVariables(node)
	p.expect(node, TokenSemicolon)
	return p.finishNode(node)
}

// parseVariables parses a comma separated declarator list, appending one
// Variable node per declarator to parent.
func (p *Parser) parseVariables(parent *Node) {
	for {
		progress := p.mustProgress()
		variable := p.startNode(KindVariable)
		variable.AddChild(p.expectIdentifier())
		for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
			p.advance()
			p.advance()
		}
		if p.accept(TokenAssign) {
			variable.AddChild(p.parseVarInitializer())
		}
		parent.AddChild(p.finishNode(variable))
		if !p.accept(TokenComma) || !progress() {
			return
		}
	}
}

func (p *Parser) parseVarInitializer() *Node {
	if p.check(TokenLBrace) {
		return p.parseArrayInitializer()
	}
	return p.parseExpression()
}

func (p *Parser) parseArrayInitializer() *Node {
	node := p.startNode(KindArrayInit)
	p.expect(node, TokenLBrace)

	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		node.AddChild(p.parseVarInitializer())
		if !p.accept(TokenComma) {
			break
		}
	}

	p.expect(node, TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseParameters() *Node {
	node := p.startNode(KindParameters)
	p.expect(node, TokenLParen)

	for !p.check(TokenRParen) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseParameter())
		if !p.accept(TokenComma) || !progress() {
			break
		}
	}

	p.expect(node, TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parseParameter() *Node {
	node := p.startNode(KindParameter)
	node.AddChild(p.parseModifiers())
	node.AddChild(p.parseType())

	if p.check(TokenEllipsis) {
		node.AddChild(leaf(KindIdentifier, p.advance()))
	}

	if p.check(TokenThis) {
		// receiver parameter
		node.AddChild(leaf(KindThis, p.advance()))
	} else {
		node.AddChild(p.expectIdentifier())
	}

	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		p.advance()
		p.advance()
	}

	return p.finishNode(node)
}

func (p *Parser) parseThrowsList() *Node {
	node := p.startNode(KindThrowsList)
	p.expect(node, TokenThrows)

	for {
		progress := p.mustProgress()
		node.AddChild(p.parseType())
		if !p.accept(TokenComma) || !progress() {
			break
		}
	}

	return p.finishNode(node)
}
