// Package parser provides an error-tolerant parser for Java source code.
//
// # Overview
//
// The parser reads a compilation unit, an expression or a statement and
// produces a concrete syntax tree of [Node] values. It is tuned for the
// output of class file decompilers: source that is usually well formed but
// may be truncated or contain constructs a decompiler failed to recover.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Parser    │
//	│  (bytes)    │     │  (tokens)   │     │   (CST)     │
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// # Error Recovery
//
// Syntax errors do not stop the parse. The parser records a node of kind
// KindError at the failure point, skips ahead to a token that can resume
// the enclosing construct, and continues. [Parser.Finish] returns nil only
// when the input is empty or ends in the middle of a construct.
//
// [Parse] is the strict entry point: it reports the first error node as a
// [*SyntaxError] and returns no tree.
//
// # Tree Shape
//
// Children appear in source order. Declarations start with their Modifiers
// node and carry their name as the first direct Identifier child, so
// [Node.Name] works for classes, methods, fields and parameters alike.
// A method call is a CallExpr whose first child is either the bare method
// name or a FieldAccess ending in it, followed by the Arguments node.
//
// # Usage
//
//	root, err := parser.Parse("GeneratedMethodAccessor1.java", src)
//	if err != nil {
//	    return err
//	}
//	for _, imp := range root.ChildrenOfKind(parser.KindImportDecl) {
//	    fmt.Println(imp.FirstChildOfKind(parser.KindQualifiedName).QualifiedName())
//	}
package parser
