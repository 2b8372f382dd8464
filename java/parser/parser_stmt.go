package parser

func (p *Parser) parseBlock() *Node {
	node := p.startNode(KindBlock)
	if p.expect(node, TokenLBrace) == nil {
		return p.finishNode(node)
	}

	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseStatement())
		progress()
	}

	p.expect(node, TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseStatement() *Node {
	switch p.peek().Kind {
	case TokenLBrace:
		return p.parseBlock()
	case TokenSemicolon:
		node := p.startNode(KindEmptyStmt)
		p.advance()
		return p.finishNode(node)
	case TokenIf:
		return p.parseIfStmt()
	case TokenFor:
		return p.parseForStmt()
	case TokenWhile:
		node := p.startNode(KindWhileStmt)
		p.advance()
		node.AddChild(p.parseCondition())
		node.AddChild(p.parseStatement())
		return p.finishNode(node)
	case TokenDo:
		node := p.startNode(KindDoStmt)
		p.advance()
		node.AddChild(p.parseStatement())
		p.expect(node, TokenWhile)
		node.AddChild(p.parseCondition())
		p.expect(node, TokenSemicolon)
		return p.finishNode(node)
	case TokenSwitch:
		node := p.startNode(KindSwitchStmt)
		p.advance()
		node.AddChild(p.parseCondition())
		p.parseSwitchBody(node)
		return p.finishNode(node)
	case TokenReturn:
		return p.parseKeywordExprStmt(KindReturnStmt, true)
	case TokenThrow:
		return p.parseKeywordExprStmt(KindThrowStmt, false)
	case TokenBreak, TokenContinue:
		kind := KindBreakStmt
		if p.check(TokenContinue) {
			kind = KindContinueStmt
		}
		node := p.startNode(kind)
		p.advance()
		if p.isIdentifierLike() {
			node.AddChild(leaf(KindIdentifier, p.advance()))
		}
		p.expect(node, TokenSemicolon)
		return p.finishNode(node)
	case TokenTry:
		return p.parseTryStmt()
	case TokenSynchronized:
		if p.peekN(1).Kind != TokenLParen {
			break
		}
		node := p.startNode(KindSynchronizedStmt)
		p.advance()
		node.AddChild(p.parseCondition())
		node.AddChild(p.parseBlock())
		return p.finishNode(node)
	case TokenAssert:
		node := p.startNode(KindAssertStmt)
		p.advance()
		node.AddChild(p.parseExpression())
		if p.accept(TokenColon) {
			node.AddChild(p.parseExpression())
		}
		p.expect(node, TokenSemicolon)
		return p.finishNode(node)
	case TokenYield:
		if p.isYieldStmt() {
			return p.parseKeywordExprStmt(KindYieldStmt, false)
		}
	}

	if p.isIdentifierLike() && p.peekN(1).Kind == TokenColon {
		node := p.startNode(KindLabeledStmt)
		node.AddChild(leaf(KindIdentifier, p.advance()))
		p.advance()
		node.AddChild(p.parseStatement())
		return p.finishNode(node)
	}

	if p.startsLocalClass() {
		node := p.startNode(KindLocalClassDecl)
		node.AddChild(p.parseTypeDeclBody(p.parseModifiers()))
		return p.finishNode(node)
	}

	if p.isLocalVarDecl() {
		node := p.parseLocalVarDecl()
		p.expect(node, TokenSemicolon)
		return p.finishNode(node)
	}

	node := p.startNode(KindExprStmt)
	node.AddChild(p.parseExpression())
	p.expect(node, TokenSemicolon)
	return p.finishNode(node)
}

// parseKeywordExprStmt parses return, throw and yield. Only return may omit
// its expression.
func (p *Parser) parseKeywordExprStmt(kind NodeKind, optional bool) *Node {
	node := p.startNode(kind)
	p.advance()
	if !optional || !p.check(TokenSemicolon) {
		node.AddChild(p.parseExpression())
	}
	p.expect(node, TokenSemicolon)
	return p.finishNode(node)
}

// parseCondition parses a parenthesized expression and returns the
// expression itself.
func (p *Parser) parseCondition() *Node {
	open := p.startNode(KindParenExpr)
	if p.expect(open, TokenLParen) == nil {
		return open.Children[0]
	}
	expr := p.parseExpression()
	if p.expect(open, TokenRParen) == nil {
		expr.AddChild(open.Children[0])
	}
	return expr
}

func (p *Parser) parseIfStmt() *Node {
	node := p.startNode(KindIfStmt)
	p.advance()
	node.AddChild(p.parseCondition())
	node.AddChild(p.parseStatement())
	if p.accept(TokenElse) {
		node.AddChild(p.parseStatement())
	}
	return p.finishNode(node)
}

// parseForStmt produces either an EnhancedForStmt holding modifiers, type,
// name, iterable and body, or a ForStmt holding four children: the init
// group, the condition (EmptyStmt when absent), the update group, and the
// body.
func (p *Parser) parseForStmt() *Node {
	start := p.peek().Span.Start
	p.advance()
	header := &Node{}
	p.expect(header, TokenLParen)

	if p.isLocalVarDecl() {
		save := p.pos
		modifiers := p.parseModifiers()
		typ := p.parseType()
		if p.isIdentifierLike() && p.peekN(1).Kind == TokenColon {
			node := &Node{Kind: KindEnhancedForStmt, Span: Span{Start: start}}
			node.Children = append(node.Children, header.Children...)
			node.AddChild(modifiers)
			node.AddChild(typ)
			node.AddChild(leaf(KindIdentifier, p.advance()))
			p.advance()
			node.AddChild(p.parseExpression())
			p.expect(node, TokenRParen)
			node.AddChild(p.parseStatement())
			return p.finishNode(node)
		}
		p.pos = save
	}

	node := &Node{Kind: KindForStmt, Span: Span{Start: start}}
	node.Children = append(node.Children, header.Children...)

	if p.isLocalVarDecl() {
		node.AddChild(p.parseLocalVarDecl())
	} else {
		node.AddChild(p.parseExpressionList(TokenSemicolon))
	}
	p.expect(node, TokenSemicolon)

	if p.check(TokenSemicolon) {
		node.AddChild(p.finishNode(p.startNode(KindEmptyStmt)))
	} else {
		node.AddChild(p.parseExpression())
	}
	p.expect(node, TokenSemicolon)

	node.AddChild(p.parseExpressionList(TokenRParen))
	p.expect(node, TokenRParen)

	node.AddChild(p.parseStatement())
	return p.finishNode(node)
}

// parseExpressionList parses comma separated expressions up to, but not
// including, end. The result is an Arguments node.
func (p *Parser) parseExpressionList(end TokenKind) *Node {
	node := p.startNode(KindArguments)
	for !p.check(end) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseExpression())
		if !p.accept(TokenComma) || !progress() {
			break
		}
	}
	return p.finishNode(node)
}

func (p *Parser) parseTryStmt() *Node {
	node := p.startNode(KindTryStmt)
	p.advance()

	if p.check(TokenLParen) {
		node.AddChild(p.parseResources())
	}
	node.AddChild(p.parseBlock())

	handled := false
	for p.check(TokenCatch) {
		handled = true
		node.AddChild(p.parseCatchClause())
	}
	if p.check(TokenFinally) {
		handled = true
		clause := p.startNode(KindFinallyClause)
		p.advance()
		clause.AddChild(p.parseBlock())
		node.AddChild(p.finishNode(clause))
	}

	if !handled && node.FirstChildOfKind(KindResources) == nil {
		p.expect(node, TokenCatch)
	}
	return p.finishNode(node)
}

func (p *Parser) parseResources() *Node {
	node := p.startNode(KindResources)
	p.expect(node, TokenLParen)

	for !p.check(TokenRParen) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		if p.isLocalVarDecl() {
			node.AddChild(p.parseLocalVarDecl())
		} else {
			node.AddChild(p.parseExpression())
		}
		if !p.accept(TokenSemicolon) || !progress() {
			break
		}
	}

	p.expect(node, TokenRParen)
	return p.finishNode(node)
}

// parseCatchClause yields modifiers, one Type per alternative of a
// multi-catch, the parameter name, and the handler block.
func (p *Parser) parseCatchClause() *Node {
	node := p.startNode(KindCatchClause)
	p.advance()
	p.expect(node, TokenLParen)

	node.AddChild(p.parseModifiers())
	node.AddChild(p.parseType())
	for p.accept(TokenBitOr) {
		node.AddChild(p.parseType())
	}
	node.AddChild(p.expectIdentifier())

	p.expect(node, TokenRParen)
	node.AddChild(p.parseBlock())
	return p.finishNode(node)
}

// parseSwitchBody appends one SwitchCase per label group to node. A case
// holds its labels (default as an Identifier) followed by either the
// statements of a colon group or the single body of an arrow case.
func (p *Parser) parseSwitchBody(node *Node) {
	if p.expect(node, TokenLBrace) == nil {
		return
	}

	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseSwitchCase())
		progress()
	}

	p.expect(node, TokenRBrace)
}

func (p *Parser) parseSwitchCase() *Node {
	node := p.startNode(KindSwitchCase)

	switch {
	case p.check(TokenDefault):
		node.AddChild(leaf(KindIdentifier, p.advance()))
	case p.accept(TokenCase):
		for {
			progress := p.mustProgress()
			if p.check(TokenDefault) {
				node.AddChild(leaf(KindIdentifier, p.advance()))
			} else {
				node.AddChild(p.parseTernaryExpr())
				// type pattern: case Foo f
				if p.isIdentifierLike() {
					node.AddChild(leaf(KindIdentifier, p.advance()))
				}
			}
			if !p.accept(TokenComma) || !progress() {
				break
			}
		}
	default:
		node.AddChild(p.errorNode("expected case or default", TokenCase, TokenDefault))
		return p.finishNode(node)
	}

	if p.accept(TokenArrow) {
		switch {
		case p.check(TokenLBrace):
			node.AddChild(p.parseBlock())
		case p.check(TokenThrow):
			node.AddChild(p.parseStatement())
		default:
			stmt := p.startNode(KindExprStmt)
			stmt.AddChild(p.parseExpression())
			p.expect(stmt, TokenSemicolon)
			node.AddChild(p.finishNode(stmt))
		}
		return p.finishNode(node)
	}

	p.expect(node, TokenColon)
	for !p.startsSwitchLabel() && !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseStatement())
		progress()
	}
	return p.finishNode(node)
}

func (p *Parser) startsSwitchLabel() bool {
	if p.check(TokenCase) {
		return true
	}
	if p.check(TokenDefault) {
		next := p.peekN(1).Kind
		return next == TokenColon || next == TokenArrow
	}
	return false
}

func (p *Parser) isYieldStmt() bool {
	switch p.peekN(1).Kind {
	case TokenAssign, TokenDot, TokenLBracket, TokenColon, TokenSemicolon,
		TokenIncrement, TokenDecrement, TokenPlusAssign, TokenMinusAssign:
		return false
	}
	return true
}

func (p *Parser) startsLocalClass() bool {
	switch p.peek().Kind {
	case TokenClass, TokenInterface, TokenEnum:
		return true
	case TokenRecord:
		return isIdentifierKind(p.peekN(1).Kind) && p.peekN(2).Kind != TokenAssign
	case TokenAt, TokenAbstract, TokenFinal, TokenStatic, TokenStrictfp, TokenSealed, TokenNonSealed:
		return p.speculate(func() bool {
			p.parseModifiers()
			switch p.peek().Kind {
			case TokenClass, TokenInterface, TokenEnum:
				return true
			case TokenRecord:
				return isIdentifierKind(p.peekN(1).Kind)
			case TokenAt:
				return p.peekN(1).Kind == TokenInterface
			}
			return false
		})
	}
	return false
}

// isLocalVarDecl reports whether a local variable declaration starts here:
// optional modifiers, an error free type, and a declarator name.
func (p *Parser) isLocalVarDecl() bool {
	if !p.startsType() || p.check(TokenVoid) {
		if !p.match(TokenFinal, TokenAt) {
			return false
		}
	}
	return p.speculate(func() bool {
		p.parseModifiers()
		if !p.startsType() || p.check(TokenVoid) {
			return false
		}
		if typ := p.parseType(); typ.FirstError() != nil {
			return false
		}
		if !p.isIdentifierLike() {
			return false
		}
		switch p.peekN(1).Kind {
		case TokenAssign, TokenSemicolon, TokenComma, TokenColon, TokenLBracket, TokenRParen:
			return true
		}
		return false
	})
}

func (p *Parser) parseLocalVarDecl() *Node {
	node := p.startNode(KindLocalVarDecl)
	node.AddChild(p.parseModifiers())
	node.AddChild(p.parseType())
	p.parseVariables(node)
	return p.finishNode(node)
}
