// Package tsparse parses Java with the tree-sitter Java grammar and converts
// the result into the concrete syntax tree of package parser, so callers can
// switch parser backends without changing how they walk the tree.
package tsparse

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/dhamidi/reflyze/java/parser"
)

// Parser is safe for concurrent use; every call creates its own tree-sitter
// parser.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse parses one compilation unit. Like parser.Parse it fails with a
// *parser.SyntaxError when tree-sitter had to recover from an error.
func (p *Parser) Parse(file string, src []byte) (*parser.Node, error) {
	return p.ParseCtx(context.Background(), file, src)
}

func (p *Parser) ParseCtx(ctx context.Context, file string, src []byte) (*parser.Node, error) {
	if len(strings.TrimSpace(string(src))) == 0 {
		return nil, &parser.SyntaxError{File: file, Message: "incomplete or empty compilation unit"}
	}

	root, err := p.Tree(ctx, file, src)
	if err != nil {
		return nil, err
	}
	if bad := root.FirstError(); bad != nil {
		return nil, &parser.SyntaxError{File: file, Pos: bad.Span.Start, Message: bad.Error.Message}
	}
	return root, nil
}

// Tree converts whatever tree-sitter produced, error nodes included.
func (p *Parser) Tree(ctx context.Context, file string, src []byte) (*parser.Node, error) {
	sp := sitter.NewParser()
	defer sp.Close()
	sp.SetLanguage(java.GetLanguage())

	tree, err := sp.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}
	defer tree.Close()

	c := &converter{file: file, src: src}
	return c.convert(tree.RootNode(), ""), nil
}

var nodeKinds = map[string]parser.NodeKind{
	"program":                             parser.KindCompilationUnit,
	"package_declaration":                 parser.KindPackageDecl,
	"class_declaration":                   parser.KindClassDecl,
	"interface_declaration":               parser.KindInterfaceDecl,
	"enum_declaration":                    parser.KindEnumDecl,
	"record_declaration":                  parser.KindRecordDecl,
	"annotation_type_declaration":         parser.KindAnnotationDecl,
	"class_body":                          parser.KindBlock,
	"interface_body":                      parser.KindBlock,
	"enum_body":                           parser.KindBlock,
	"annotation_type_body":                parser.KindBlock,
	"enum_constant":                       parser.KindEnumConstant,
	"field_declaration":                   parser.KindFieldDecl,
	"constant_declaration":                parser.KindFieldDecl,
	"method_declaration":                  parser.KindMethodDecl,
	"annotation_type_element_declaration": parser.KindMethodDecl,
	"constructor_declaration":             parser.KindConstructorDecl,
	"compact_constructor_declaration":     parser.KindConstructorDecl,
	"static_initializer":                  parser.KindInitializer,
	"modifiers":                           parser.KindModifiers,
	"type_parameters":                     parser.KindTypeParameters,
	"type_parameter":                      parser.KindTypeParameter,
	"type_arguments":                      parser.KindTypeArguments,
	"wildcard":                            parser.KindWildcard,
	"annotation":                          parser.KindAnnotation,
	"marker_annotation":                   parser.KindAnnotation,
	"element_value_pair":                  parser.KindAnnotationElement,
	"element_value_array_initializer":     parser.KindArrayInit,
	"formal_parameters":                   parser.KindParameters,
	"inferred_parameters":                 parser.KindParameters,
	"formal_parameter":                    parser.KindParameter,
	"spread_parameter":                    parser.KindParameter,
	"receiver_parameter":                  parser.KindParameter,
	"argument_list":                       parser.KindArguments,
	"throws":                              parser.KindThrowsList,
	"variable_declarator":                 parser.KindVariable,
	"block":                               parser.KindBlock,
	"constructor_body":                    parser.KindBlock,
	"expression_statement":                parser.KindExprStmt,
	"if_statement":                        parser.KindIfStmt,
	"for_statement":                       parser.KindForStmt,
	"enhanced_for_statement":              parser.KindEnhancedForStmt,
	"while_statement":                     parser.KindWhileStmt,
	"do_statement":                        parser.KindDoStmt,
	"switch_block_statement_group":        parser.KindSwitchCase,
	"switch_rule":                         parser.KindSwitchCase,
	"return_statement":                    parser.KindReturnStmt,
	"break_statement":                     parser.KindBreakStmt,
	"continue_statement":                  parser.KindContinueStmt,
	"throw_statement":                     parser.KindThrowStmt,
	"try_statement":                       parser.KindTryStmt,
	"try_with_resources_statement":        parser.KindTryStmt,
	"resource_specification":              parser.KindResources,
	"resource":                            parser.KindLocalVarDecl,
	"catch_clause":                        parser.KindCatchClause,
	"finally_clause":                      parser.KindFinallyClause,
	"synchronized_statement":              parser.KindSynchronizedStmt,
	"assert_statement":                    parser.KindAssertStmt,
	"labeled_statement":                   parser.KindLabeledStmt,
	"local_variable_declaration":          parser.KindLocalVarDecl,
	"local_class_declaration":             parser.KindLocalClassDecl,
	"yield_statement":                     parser.KindYieldStmt,
	"assignment_expression":               parser.KindAssignExpr,
	"ternary_expression":                  parser.KindTernaryExpr,
	"binary_expression":                   parser.KindBinaryExpr,
	"unary_expression":                    parser.KindUnaryExpr,
	"update_expression":                   parser.KindPostfixExpr,
	"cast_expression":                     parser.KindCastExpr,
	"instanceof_expression":               parser.KindInstanceofExpr,
	"explicit_constructor_invocation":     parser.KindCallExpr,
	"method_reference":                    parser.KindMethodRef,
	"field_access":                        parser.KindFieldAccess,
	"array_access":                        parser.KindArrayAccess,
	"object_creation_expression":          parser.KindNewExpr,
	"array_creation_expression":           parser.KindNewArrayExpr,
	"array_initializer":                   parser.KindArrayInit,
	"lambda_expression":                   parser.KindLambdaExpr,
	"parenthesized_expression":            parser.KindParenExpr,
	"class_literal":                       parser.KindClassLiteral,
}

var leafKinds = map[string]parser.NodeKind{
	"identifier":                     parser.KindIdentifier,
	"this":                           parser.KindThis,
	"super":                          parser.KindSuper,
	"decimal_integer_literal":        parser.KindLiteral,
	"hex_integer_literal":            parser.KindLiteral,
	"octal_integer_literal":          parser.KindLiteral,
	"binary_integer_literal":         parser.KindLiteral,
	"decimal_floating_point_literal": parser.KindLiteral,
	"hex_floating_point_literal":     parser.KindLiteral,
	"character_literal":              parser.KindLiteral,
	"string_literal":                 parser.KindLiteral,
	"text_block":                     parser.KindLiteral,
	"true":                           parser.KindLiteral,
	"false":                          parser.KindLiteral,
	"null_literal":                   parser.KindLiteral,
}

var typeKinds = map[string]bool{
	"type_identifier":        true,
	"scoped_type_identifier": true,
	"generic_type":           true,
	"integral_type":          true,
	"floating_point_type":    true,
	"boolean_type":           true,
	"void_type":              true,
	"array_type":             true,
}

// operatorKinds lists the nodes whose operator becomes the node's token.
var operatorKinds = map[string]bool{
	"assignment_expression": true,
	"binary_expression":     true,
	"unary_expression":      true,
	"update_expression":     true,
}

type converter struct {
	file string
	src  []byte
}

func (c *converter) position(p sitter.Point, offset uint32) parser.Position {
	return parser.Position{
		File:   c.file,
		Offset: int(offset),
		Line:   int(p.Row) + 1,
		Column: int(p.Column) + 1,
	}
}

func (c *converter) span(n *sitter.Node) parser.Span {
	return parser.Span{
		Start: c.position(n.StartPoint(), n.StartByte()),
		End:   c.position(n.EndPoint(), n.EndByte()),
	}
}

func (c *converter) token(n *sitter.Node) parser.Token {
	text := n.Content(c.src)
	return parser.Token{
		Kind:    tokenKind(text),
		Span:    c.span(n),
		Literal: text,
	}
}

// tokenKind classifies text the way the native lexer does.
func tokenKind(text string) parser.TokenKind {
	return parser.NewLexer([]byte(text), "").NextToken().Kind
}

func (c *converter) leaf(kind parser.NodeKind, n *sitter.Node) *parser.Node {
	tok := c.token(n)
	return &parser.Node{Kind: kind, Span: tok.Span, Token: &tok}
}

func (c *converter) errorNode(n *sitter.Node, msg string) *parser.Node {
	tok := c.token(n)
	return &parser.Node{
		Kind:  parser.KindError,
		Span:  tok.Span,
		Error: &parser.Error{Message: msg, Got: &tok},
	}
}

// convert maps n onto a parser node. The result is nil for nodes without
// structural meaning, such as comments and punctuation.
func (c *converter) convert(n *sitter.Node, field string) *parser.Node {
	typ := n.Type()

	switch {
	case n.IsMissing():
		return c.errorNode(n, "expected "+typ)
	case typ == "ERROR":
		return c.errorNode(n, "syntax error")
	case typ == "line_comment", typ == "block_comment", typ == "comment":
		return nil
	case typeKinds[typ]:
		return c.convertType(n)
	case typ == "import_declaration":
		return c.convertImport(n)
	case typ == "scoped_identifier":
		return c.qualifiedName(n)
	case typ == "method_invocation":
		return c.convertCall(n)
	case typ == "switch_expression":
		return c.convertSwitch(n)
	case typ == "parenthesized_expression" && field == "condition":
		// conditions of if, while, do and switch are bare expressions
		if inner := n.NamedChild(0); inner != nil {
			return c.convert(inner, "")
		}
	}

	if !n.IsNamed() {
		return nil
	}

	if kind, ok := leafKinds[typ]; ok {
		return c.leaf(kind, n)
	}

	kind, ok := nodeKinds[typ]
	if !ok {
		return nil
	}

	node := &parser.Node{Kind: kind, Span: c.span(n)}
	c.addChildren(node, n)
	if operatorKinds[typ] {
		if op := n.ChildByFieldName("operator"); op != nil {
			tok := c.token(op)
			node.Token = &tok
		}
	}
	if typ == "package_declaration" || typ == "annotation" || typ == "marker_annotation" {
		wrapName(node)
	}
	return node
}

// addChildren converts the children of n onto node. Named nodes without a
// counterpart, like superclass or catch_type, are spliced in place.
func (c *converter) addChildren(node *parser.Node, n *sitter.Node) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if converted := c.convert(child, n.FieldNameForChild(i)); converted != nil {
			node.AddChild(converted)
			continue
		}
		if node.Kind == parser.KindModifiers && !child.IsNamed() {
			node.AddChild(c.leaf(parser.KindIdentifier, child))
			continue
		}
		if child.IsNamed() && !child.IsMissing() {
			c.addChildren(node, child)
		}
	}
}

// wrapName turns a bare Identifier name into a one element QualifiedName,
// the shape the native parser produces for package and annotation names.
func wrapName(node *parser.Node) {
	for i, child := range node.Children {
		if child.Kind == parser.KindIdentifier {
			node.Children[i] = &parser.Node{
				Kind:     parser.KindQualifiedName,
				Span:     child.Span,
				Children: []*parser.Node{child},
			}
			return
		}
		if child.Kind == parser.KindQualifiedName {
			return
		}
	}
}

func (c *converter) qualifiedName(n *sitter.Node) *parser.Node {
	node := &parser.Node{Kind: parser.KindQualifiedName, Span: c.span(n)}
	var collect func(*sitter.Node)
	collect = func(n *sitter.Node) {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			switch child.Type() {
			case "identifier", "type_identifier":
				node.AddChild(c.leaf(parser.KindIdentifier, child))
			case "scoped_identifier", "scoped_type_identifier":
				collect(child)
			}
		}
	}
	if n.Type() == "identifier" || n.Type() == "type_identifier" {
		node.AddChild(c.leaf(parser.KindIdentifier, n))
	} else {
		collect(n)
	}
	return node
}

func (c *converter) convertImport(n *sitter.Node) *parser.Node {
	node := &parser.Node{Kind: parser.KindImportDecl, Span: c.span(n)}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "static", "asterisk":
			node.AddChild(c.leaf(parser.KindIdentifier, child))
		case "identifier", "scoped_identifier":
			node.AddChild(c.qualifiedName(child))
		}
	}
	return node
}

// convertType produces Type nodes shaped like the native parser's: a
// QualifiedName with optional TypeArguments, or a primitive Identifier,
// wrapped in one ArrayType per dimension.
func (c *converter) convertType(n *sitter.Node) *parser.Node {
	span := c.span(n)

	switch n.Type() {
	case "array_type":
		elem := c.convertType(n.ChildByFieldName("element"))
		dims := n.ChildByFieldName("dimensions")
		depth := 1
		if dims != nil {
			depth = strings.Count(dims.Content(c.src), "[")
		}
		for range depth {
			elem = &parser.Node{Kind: parser.KindArrayType, Span: span, Children: []*parser.Node{elem}}
		}
		return elem
	case "integral_type", "floating_point_type", "boolean_type", "void_type":
		return &parser.Node{Kind: parser.KindType, Span: span, Children: []*parser.Node{c.leaf(parser.KindIdentifier, n)}}
	case "generic_type":
		node := &parser.Node{Kind: parser.KindType, Span: span}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			switch child.Type() {
			case "type_identifier", "scoped_type_identifier":
				node.AddChild(c.qualifiedName(child))
			case "type_arguments":
				node.AddChild(c.convert(child, ""))
			}
		}
		return node
	}
	return &parser.Node{Kind: parser.KindType, Span: span, Children: []*parser.Node{c.qualifiedName(n)}}
}

// convertCall builds CallExpr[target, Arguments] where target is the bare
// method name or a FieldAccess ending in it.
func (c *converter) convertCall(n *sitter.Node) *parser.Node {
	node := &parser.Node{Kind: parser.KindCallExpr, Span: c.span(n)}

	name := c.leaf(parser.KindIdentifier, n.ChildByFieldName("name"))
	target := name
	if object := n.ChildByFieldName("object"); object != nil {
		target = &parser.Node{Kind: parser.KindFieldAccess, Span: c.span(n)}
		target.AddChild(c.convert(object, "object"))
		if args := n.ChildByFieldName("type_arguments"); args != nil {
			target.AddChild(c.convert(args, ""))
		}
		target.AddChild(name)
		target.Span.End = name.Span.End
	}
	node.AddChild(target)

	if args := n.ChildByFieldName("arguments"); args != nil {
		node.AddChild(c.convert(args, "arguments"))
	}
	return node
}

// convertSwitch flattens the switch block into the switch node. tree-sitter
// uses switch_expression in statement position too; there it becomes a
// SwitchStmt.
func (c *converter) convertSwitch(n *sitter.Node) *parser.Node {
	kind := parser.KindSwitchExpr
	if parent := n.Parent(); parent != nil {
		switch parent.Type() {
		case "block", "constructor_body", "switch_block_statement_group", "labeled_statement":
			kind = parser.KindSwitchStmt
		}
	}

	node := &parser.Node{Kind: kind, Span: c.span(n)}
	if cond := n.ChildByFieldName("condition"); cond != nil {
		node.AddChild(c.convert(cond, "condition"))
	}
	body := n.ChildByFieldName("body")
	if body == nil {
		return node
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		group := body.NamedChild(i)
		kase := c.convert(group, "")
		if kase == nil {
			continue
		}
		for j := 0; j < int(group.NamedChildCount()); j++ {
			label := group.NamedChild(j)
			if label.Type() == "switch_label" && strings.HasPrefix(label.Content(c.src), "default") {
				kase.Children = append([]*parser.Node{c.leaf(parser.KindIdentifier, label.Child(0))}, kase.Children...)
			}
		}
		node.AddChild(kase)
	}
	return node
}
