package parser

import "strings"

type NodeKind int

const (
	KindError NodeKind = iota

	KindCompilationUnit
	KindPackageDecl
	KindImportDecl

	KindClassDecl
	KindInterfaceDecl
	KindEnumDecl
	KindRecordDecl
	KindAnnotationDecl
	KindEnumConstant

	KindFieldDecl
	KindMethodDecl
	KindConstructorDecl
	KindInitializer

	KindModifiers
	KindTypeParameters
	KindTypeParameter
	KindTypeArguments
	KindType
	KindArrayType
	KindWildcard
	KindAnnotation
	KindAnnotationElement
	KindParameters
	KindParameter
	KindArguments
	KindThrowsList
	KindVariable

	KindBlock
	KindEmptyStmt
	KindExprStmt
	KindIfStmt
	KindForStmt
	KindEnhancedForStmt
	KindWhileStmt
	KindDoStmt
	KindSwitchStmt
	KindSwitchCase
	KindReturnStmt
	KindBreakStmt
	KindContinueStmt
	KindThrowStmt
	KindTryStmt
	KindResources
	KindCatchClause
	KindFinallyClause
	KindSynchronizedStmt
	KindAssertStmt
	KindLabeledStmt
	KindLocalVarDecl
	KindLocalClassDecl
	KindYieldStmt

	KindAssignExpr
	KindTernaryExpr
	KindBinaryExpr
	KindUnaryExpr
	KindPostfixExpr
	KindCastExpr
	KindInstanceofExpr
	KindCallExpr
	KindMethodRef
	KindFieldAccess
	KindArrayAccess
	KindNewExpr
	KindNewArrayExpr
	KindArrayInit
	KindLambdaExpr
	KindParenExpr
	KindLiteral
	KindIdentifier
	KindQualifiedName
	KindThis
	KindSuper
	KindClassLiteral
	KindSwitchExpr
)

var nodeKindNames = [...]string{
	KindError:             "Error",
	KindCompilationUnit:   "CompilationUnit",
	KindPackageDecl:       "PackageDecl",
	KindImportDecl:        "ImportDecl",
	KindClassDecl:         "ClassDecl",
	KindInterfaceDecl:     "InterfaceDecl",
	KindEnumDecl:          "EnumDecl",
	KindRecordDecl:        "RecordDecl",
	KindAnnotationDecl:    "AnnotationDecl",
	KindEnumConstant:      "EnumConstant",
	KindFieldDecl:         "FieldDecl",
	KindMethodDecl:        "MethodDecl",
	KindConstructorDecl:   "ConstructorDecl",
	KindInitializer:       "Initializer",
	KindModifiers:         "Modifiers",
	KindTypeParameters:    "TypeParameters",
	KindTypeParameter:     "TypeParameter",
	KindTypeArguments:     "TypeArguments",
	KindType:              "Type",
	KindArrayType:         "ArrayType",
	KindWildcard:          "Wildcard",
	KindAnnotation:        "Annotation",
	KindAnnotationElement: "AnnotationElement",
	KindParameters:        "Parameters",
	KindParameter:         "Parameter",
	KindArguments:         "Arguments",
	KindThrowsList:        "ThrowsList",
	KindVariable:          "Variable",
	KindBlock:             "Block",
	KindEmptyStmt:         "EmptyStmt",
	KindExprStmt:          "ExprStmt",
	KindIfStmt:            "IfStmt",
	KindForStmt:           "ForStmt",
	KindEnhancedForStmt:   "EnhancedForStmt",
	KindWhileStmt:         "WhileStmt",
	KindDoStmt:            "DoStmt",
	KindSwitchStmt:        "SwitchStmt",
	KindSwitchCase:        "SwitchCase",
	KindReturnStmt:        "ReturnStmt",
	KindBreakStmt:         "BreakStmt",
	KindContinueStmt:      "ContinueStmt",
	KindThrowStmt:         "ThrowStmt",
	KindTryStmt:           "TryStmt",
	KindResources:         "Resources",
	KindCatchClause:       "CatchClause",
	KindFinallyClause:     "FinallyClause",
	KindSynchronizedStmt:  "SynchronizedStmt",
	KindAssertStmt:        "AssertStmt",
	KindLabeledStmt:       "LabeledStmt",
	KindLocalVarDecl:      "LocalVarDecl",
	KindLocalClassDecl:    "LocalClassDecl",
	KindYieldStmt:         "YieldStmt",
	KindAssignExpr:        "AssignExpr",
	KindTernaryExpr:       "TernaryExpr",
	KindBinaryExpr:        "BinaryExpr",
	KindUnaryExpr:         "UnaryExpr",
	KindPostfixExpr:       "PostfixExpr",
	KindCastExpr:          "CastExpr",
	KindInstanceofExpr:    "InstanceofExpr",
	KindCallExpr:          "CallExpr",
	KindMethodRef:         "MethodRef",
	KindFieldAccess:       "FieldAccess",
	KindArrayAccess:       "ArrayAccess",
	KindNewExpr:           "NewExpr",
	KindNewArrayExpr:      "NewArrayExpr",
	KindArrayInit:         "ArrayInit",
	KindLambdaExpr:        "LambdaExpr",
	KindParenExpr:         "ParenExpr",
	KindLiteral:           "Literal",
	KindIdentifier:        "Identifier",
	KindQualifiedName:     "QualifiedName",
	KindThis:              "This",
	KindSuper:             "Super",
	KindClassLiteral:      "ClassLiteral",
	KindSwitchExpr:        "SwitchExpr",
}

func (k NodeKind) String() string {
	if k >= 0 && int(k) < len(nodeKindNames) && nodeKindNames[k] != "" {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// IsTypeDecl reports whether k declares a named type.
func (k NodeKind) IsTypeDecl() bool {
	switch k {
	case KindClassDecl, KindInterfaceDecl, KindEnumDecl, KindRecordDecl, KindAnnotationDecl:
		return true
	}
	return false
}

type Error struct {
	Message  string
	Expected []TokenKind
	Got      *Token
}

type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
	Error    *Error
}

func leaf(kind NodeKind, tok Token) *Node {
	return &Node{Kind: kind, Token: &tok, Span: tok.Span}
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Name returns the declared name of a declaration node: the literal of its
// first direct Identifier child.
func (n *Node) Name() string {
	if id := n.FirstChildOfKind(KindIdentifier); id != nil {
		return id.TokenLiteral()
	}
	return ""
}

// QualifiedName joins the identifiers of a QualifiedName node with dots.
// For any other node kind it returns the token literal.
func (n *Node) QualifiedName() string {
	if n.Kind != KindQualifiedName {
		return n.TokenLiteral()
	}
	parts := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		parts = append(parts, child.TokenLiteral())
	}
	return strings.Join(parts, ".")
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// FirstError returns the first error node in source order, or nil.
func (n *Node) FirstError() *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if found != nil {
			return false
		}
		if node.IsError() {
			found = node
			return false
		}
		return true
	})
	return found
}

func (n *Node) String() string {
	var b strings.Builder
	n.writeIndent(&b, 0, false)
	return b.String()
}

func (n *Node) StringWithPositions() string {
	var b strings.Builder
	n.writeIndent(&b, 0, true)
	return b.String()
}

func (n *Node) writeIndent(b *strings.Builder, indent int, showPositions bool) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.Kind.String())
	if showPositions {
		b.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	if n.Token != nil {
		b.WriteString(" " + n.Token.Literal)
	}
	if n.Error != nil {
		b.WriteString(" ERROR: " + n.Error.Message)
	}
	b.WriteByte('\n')

	for _, child := range n.Children {
		child.writeIndent(b, indent+1, showPositions)
	}
}
