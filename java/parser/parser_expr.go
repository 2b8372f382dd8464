package parser

var expressionRecovery = []TokenKind{TokenSemicolon, TokenRParen, TokenComma, TokenRBracket}

func isAssignOp(kind TokenKind) bool {
	switch kind {
	case TokenAssign, TokenPlusAssign, TokenMinusAssign, TokenStarAssign,
		TokenSlashAssign, TokenPercentAssign, TokenAndAssign, TokenOrAssign,
		TokenXorAssign, TokenShlAssign, TokenShrAssign, TokenUShrAssign:
		return true
	}
	return false
}

func binaryPrecedence(kind TokenKind) int {
	switch kind {
	case TokenOr:
		return 1
	case TokenAnd:
		return 2
	case TokenBitOr:
		return 3
	case TokenBitXor:
		return 4
	case TokenBitAnd:
		return 5
	case TokenEQ, TokenNE:
		return 6
	case TokenLT, TokenGT, TokenLE, TokenGE, TokenInstanceof:
		return 7
	case TokenShl, TokenShr, TokenUShr:
		return 8
	case TokenPlus, TokenMinus:
		return 9
	case TokenStar, TokenSlash, TokenPercent:
		return 10
	}
	return 0
}

func (p *Parser) parseExpression() *Node {
	if p.isLambdaStart() {
		return p.parseLambda()
	}

	left := p.parseTernaryExpr()
	if !isAssignOp(p.peek().Kind) {
		return left
	}

	node := &Node{Kind: KindAssignExpr, Span: Span{Start: left.Span.Start}}
	node.AddChild(left)
	op := p.advance()
	node.Token = &op
	node.AddChild(p.parseExpression())
	return p.finishNode(node)
}

func (p *Parser) parseTernaryExpr() *Node {
	cond := p.parseBinary(1)
	if !p.check(TokenQuestion) {
		return cond
	}

	node := &Node{Kind: KindTernaryExpr, Span: Span{Start: cond.Span.Start}}
	node.AddChild(cond)
	p.advance()
	node.AddChild(p.parseExpression())
	p.expect(node, TokenColon)
	if p.isLambdaStart() {
		node.AddChild(p.parseLambda())
	} else {
		node.AddChild(p.parseTernaryExpr())
	}
	return p.finishNode(node)
}

// parseBinary is a precedence climbing parser over the binary operators,
// with instanceof sharing the relational level.
func (p *Parser) parseBinary(minPrec int) *Node {
	left := p.parseUnary()

	for {
		kind := p.peek().Kind
		prec := binaryPrecedence(kind)
		if prec == 0 || prec < minPrec {
			return left
		}

		if kind == TokenInstanceof {
			node := &Node{Kind: KindInstanceofExpr, Span: Span{Start: left.Span.Start}}
			node.AddChild(left)
			p.advance()
			if p.check(TokenFinal) {
				node.AddChild(p.parseModifiers())
			}
			node.AddChild(p.parseType())
			if p.isIdentifierLike() {
				node.AddChild(leaf(KindIdentifier, p.advance()))
			}
			left = p.finishNode(node)
			continue
		}

		op := p.advance()
		node := &Node{Kind: KindBinaryExpr, Token: &op, Span: Span{Start: left.Span.Start}}
		node.AddChild(left)
		node.AddChild(p.parseBinary(prec + 1))
		left = p.finishNode(node)
	}
}

func (p *Parser) parseUnary() *Node {
	switch p.peek().Kind {
	case TokenPlus, TokenMinus, TokenIncrement, TokenDecrement, TokenNot, TokenBitNot:
		node := p.startNode(KindUnaryExpr)
		op := p.advance()
		node.Token = &op
		node.AddChild(p.parseUnary())
		return p.finishNode(node)
	case TokenLParen:
		if p.isCast() {
			return p.parseCast()
		}
	}
	return p.parsePostfix(p.parsePrimary())
}

var primitiveTypes = []TokenKind{
	TokenBoolean, TokenByte, TokenChar, TokenShort,
	TokenInt, TokenLong, TokenFloat, TokenDouble,
}

// isCast decides whether the parenthesis at the current position opens a
// cast. Primitive casts are recognized from the type alone; reference casts
// need an operand that cannot continue a binary expression.
func (p *Parser) isCast() bool {
	if p.peekN(1).Kind != TokenAt {
		for _, kind := range primitiveTypes {
			if p.peekN(1).Kind != kind {
				continue
			}
			next := p.peekN(2).Kind
			return next == TokenRParen || next == TokenLBracket
		}
		if !isIdentifierKind(p.peekN(1).Kind) {
			return false
		}
	}

	return p.speculate(func() bool {
		p.advance()
		if typ := p.parseType(); typ.FirstError() != nil {
			return false
		}
		for p.accept(TokenBitAnd) {
			if typ := p.parseType(); typ.FirstError() != nil {
				return false
			}
		}
		if !p.accept(TokenRParen) {
			return false
		}
		switch kind := p.peek().Kind; {
		case isIdentifierKind(kind):
			return true
		case kind == TokenLParen, kind == TokenNot, kind == TokenBitNot,
			kind == TokenThis, kind == TokenSuper, kind == TokenNew,
			kind == TokenSwitch, kind == TokenIntLiteral, kind == TokenFloatLiteral,
			kind == TokenCharLiteral, kind == TokenStringLiteral, kind == TokenTextBlock,
			kind == TokenTrue, kind == TokenFalse, kind == TokenNull:
			return true
		}
		for _, kind := range primitiveTypes {
			if p.check(kind) {
				return true
			}
		}
		return false
	})
}

// parseCast yields the target type (several for an intersection cast)
// followed by the operand.
func (p *Parser) parseCast() *Node {
	node := p.startNode(KindCastExpr)
	p.expect(node, TokenLParen)
	node.AddChild(p.parseType())
	for p.accept(TokenBitAnd) {
		node.AddChild(p.parseType())
	}
	p.expect(node, TokenRParen)

	if p.isLambdaStart() {
		node.AddChild(p.parseLambda())
	} else {
		node.AddChild(p.parseUnary())
	}
	return p.finishNode(node)
}

func (p *Parser) isLambdaStart() bool {
	if p.isIdentifierLike() {
		return p.peekN(1).Kind == TokenArrow
	}
	if !p.check(TokenLParen) {
		return false
	}
	depth := 0
	for i := 0; ; i++ {
		switch p.peekN(i).Kind {
		case TokenLParen:
			depth++
		case TokenRParen:
			depth--
			if depth == 0 {
				return p.peekN(i+1).Kind == TokenArrow
			}
		case TokenEOF, TokenSemicolon, TokenLBrace, TokenRBrace:
			return false
		}
	}
}

// parseLambda yields the parameters (a single Identifier for the
// parenthesis free form) followed by the body block or expression.
func (p *Parser) parseLambda() *Node {
	node := p.startNode(KindLambdaExpr)

	if p.isIdentifierLike() {
		node.AddChild(leaf(KindIdentifier, p.advance()))
	} else {
		node.AddChild(p.parseLambdaParameters())
	}

	p.expect(node, TokenArrow)
	if p.check(TokenLBrace) {
		node.AddChild(p.parseBlock())
	} else {
		node.AddChild(p.parseExpression())
	}
	return p.finishNode(node)
}

func (p *Parser) parseLambdaParameters() *Node {
	node := p.startNode(KindParameters)
	p.expect(node, TokenLParen)

	for !p.check(TokenRParen) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		if p.isIdentifierLike() && (p.peekN(1).Kind == TokenComma || p.peekN(1).Kind == TokenRParen) {
			param := p.startNode(KindParameter)
			param.AddChild(leaf(KindIdentifier, p.advance()))
			node.AddChild(p.finishNode(param))
		} else {
			node.AddChild(p.parseParameter())
		}
		if !p.accept(TokenComma) || !progress() {
			break
		}
	}

	p.expect(node, TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parsePrimary() *Node {
	tok := p.peek()

	switch tok.Kind {
	case TokenIntLiteral, TokenFloatLiteral, TokenCharLiteral, TokenStringLiteral,
		TokenTextBlock, TokenTrue, TokenFalse, TokenNull:
		return leaf(KindLiteral, p.advance())

	case TokenLParen:
		node := p.startNode(KindParenExpr)
		p.advance()
		node.AddChild(p.parseExpression())
		p.expect(node, TokenRParen)
		return p.finishNode(node)

	case TokenThis, TokenSuper:
		kind := KindThis
		if tok.Kind == TokenSuper {
			kind = KindSuper
		}
		target := leaf(kind, p.advance())
		if p.check(TokenLParen) {
			// explicit constructor invocation
			return p.parseCall(target)
		}
		return target

	case TokenNew:
		return p.parseNew(nil)

	case TokenSwitch:
		node := p.startNode(KindSwitchExpr)
		p.advance()
		node.AddChild(p.parseCondition())
		p.parseSwitchBody(node)
		return p.finishNode(node)

	case TokenBoolean, TokenByte, TokenChar, TokenShort, TokenInt,
		TokenLong, TokenFloat, TokenDouble, TokenVoid:
		// int.class, int[].class, int[]::new
		typ := p.parseType()
		switch {
		case p.check(TokenDot) && p.peekN(1).Kind == TokenClass:
			return p.parseClassLiteral(typ)
		case p.check(TokenColonColon):
			return typ
		}
		return p.errorNode("expected .class", expressionRecovery...)

	case TokenLT:
		// <T>call()
		node := p.startNode(KindCallExpr)
		target := p.startNode(KindFieldAccess)
		target.AddChild(p.parseTypeArguments())
		target.AddChild(p.expectIdentifier())
		node.AddChild(p.finishNode(target))
		node.AddChild(p.parseArguments())
		return p.finishNode(node)
	}

	if p.isIdentifierLike() {
		name := leaf(KindIdentifier, p.advance())
		if p.check(TokenLParen) {
			return p.parseCall(name)
		}
		return name
	}

	return p.errorNode("expected expression", expressionRecovery...)
}

// parseCall wraps target, a bare name or a FieldAccess whose last
// Identifier is the method name, in a CallExpr with its arguments.
func (p *Parser) parseCall(target *Node) *Node {
	node := &Node{Kind: KindCallExpr, Span: Span{Start: target.Span.Start}}
	node.AddChild(target)
	node.AddChild(p.parseArguments())
	return p.finishNode(node)
}

func (p *Parser) parseArguments() *Node {
	node := p.startNode(KindArguments)
	p.expect(node, TokenLParen)

	for !p.check(TokenRParen) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseExpression())
		if !p.accept(TokenComma) || !progress() {
			break
		}
	}

	p.expect(node, TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parseClassLiteral(typ *Node) *Node {
	node := &Node{Kind: KindClassLiteral, Span: Span{Start: typ.Span.Start}}
	node.AddChild(typ)
	p.advance()
	p.advance()
	return p.finishNode(node)
}

func (p *Parser) parsePostfix(left *Node) *Node {
	for {
		switch p.peek().Kind {
		case TokenDot:
			left = p.parseSelector(left)

		case TokenLBracket:
			if p.peekN(1).Kind == TokenRBracket {
				// String[].class, String[]::new
				typ := &Node{Kind: KindArrayType, Span: Span{Start: left.Span.Start}}
				typ.AddChild(left)
				p.advance()
				p.advance()
				left = p.finishNode(typ)
				continue
			}
			node := &Node{Kind: KindArrayAccess, Span: Span{Start: left.Span.Start}}
			node.AddChild(left)
			p.advance()
			node.AddChild(p.parseExpression())
			p.expect(node, TokenRBracket)
			left = p.finishNode(node)

		case TokenColonColon:
			node := &Node{Kind: KindMethodRef, Span: Span{Start: left.Span.Start}}
			node.AddChild(left)
			p.advance()
			if p.check(TokenLT) {
				node.AddChild(p.parseTypeArguments())
			}
			if p.check(TokenNew) {
				node.AddChild(leaf(KindIdentifier, p.advance()))
			} else {
				node.AddChild(p.expectIdentifier())
			}
			left = p.finishNode(node)

		case TokenIncrement, TokenDecrement:
			node := &Node{Kind: KindPostfixExpr, Span: Span{Start: left.Span.Start}}
			op := p.advance()
			node.Token = &op
			node.AddChild(left)
			left = p.finishNode(node)

		case TokenLT:
			// List<String>::new
			if !p.isGenericMethodRef(left) {
				return left
			}
			typ := &Node{Kind: KindType, Span: Span{Start: left.Span.Start}}
			typ.AddChild(left)
			typ.AddChild(p.parseTypeArguments())
			left = p.finishNode(typ)

		default:
			return left
		}
	}
}

func (p *Parser) isGenericMethodRef(left *Node) bool {
	if left.Kind != KindIdentifier && left.Kind != KindFieldAccess {
		return false
	}
	return p.speculate(func() bool {
		args := p.parseTypeArguments()
		return args.FirstError() == nil && p.check(TokenColonColon)
	})
}

// parseSelector handles what may follow a dot: a field, a (generic) method
// call, a qualified this, super or class creation, or a class literal.
func (p *Parser) parseSelector(left *Node) *Node {
	switch p.peekN(1).Kind {
	case TokenClass:
		return p.parseClassLiteral(left)
	case TokenNew:
		p.advance()
		return p.parseNew(left)
	}

	p.advance()
	node := &Node{Kind: KindFieldAccess, Span: Span{Start: left.Span.Start}}
	node.AddChild(left)

	switch {
	case p.check(TokenThis):
		node.AddChild(leaf(KindThis, p.advance()))
	case p.check(TokenSuper):
		node.AddChild(leaf(KindSuper, p.advance()))
	default:
		if p.check(TokenLT) {
			node.AddChild(p.parseTypeArguments())
		}
		node.AddChild(p.expectIdentifier())
	}

	node = p.finishNode(node)
	if p.check(TokenLParen) {
		return p.parseCall(node)
	}
	return node
}

// parseNew parses class instance and array creation. A NewExpr holds an
// optional outer instance, optional type arguments, the type, the
// arguments and an optional anonymous class body. A NewArrayExpr holds the
// type, the dimension expressions and an optional initializer.
func (p *Parser) parseNew(outer *Node) *Node {
	start := p.peek().Span.Start
	if outer != nil {
		start = outer.Span.Start
	}
	p.expect(nil, TokenNew)

	var typeArgs *Node
	if p.check(TokenLT) {
		typeArgs = p.parseTypeArguments()
	}
	typ := p.parseType()

	if p.check(TokenLBracket) || (p.check(TokenLBrace) && typ.Kind == KindArrayType) {
		node := &Node{Kind: KindNewArrayExpr, Span: Span{Start: start}}
		node.AddChild(typ)
		for p.check(TokenLBracket) && p.peekN(1).Kind != TokenRBracket {
			p.advance()
			node.AddChild(p.parseExpression())
			p.expect(node, TokenRBracket)
		}
		for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
			p.advance()
			p.advance()
		}
		if p.check(TokenLBrace) {
			node.AddChild(p.parseArrayInitializer())
		}
		return p.finishNode(node)
	}

	node := &Node{Kind: KindNewExpr, Span: Span{Start: start}}
	node.AddChild(outer)
	node.AddChild(typeArgs)
	node.AddChild(typ)
	node.AddChild(p.parseArguments())
	if p.check(TokenLBrace) {
		node.AddChild(p.parseClassBody(false))
	}
	return p.finishNode(node)
}
