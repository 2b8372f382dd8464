// Package accessor correlates decompiled reflection accessor classes with
// the class and method each one was generated to invoke.
//
// The package is pure: it works on syntax trees and never touches the file
// system. A unit flows through NewSourceUnit, then Attribute (which combines
// the declaring class resolver and the invoked method extractor), and the
// resulting observations are folded by an Aggregator and ranked with Rank.
package accessor

import (
	"fmt"
	"strings"

	"github.com/dhamidi/reflyze/java/parser"
)

// SyntaxParser turns Java source into a syntax tree. Both the native parser
// and the tree-sitter backend satisfy it.
type SyntaxParser interface {
	Parse(file string, src []byte) (*parser.Node, error)
}

// NativeParser adapts parser.Parse to SyntaxParser.
type NativeParser struct{}

func (NativeParser) Parse(file string, src []byte) (*parser.Node, error) {
	return parser.Parse(file, src)
}

// ParseError reports a unit whose source could not be turned into a
// SourceUnit: a syntax error, or a compilation unit declaring no type.
type ParseError struct {
	Unit string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Unit, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SourceUnit is one decompiled compilation unit.
type SourceUnit struct {
	// Name is the simple name of the accessor class.
	Name string
	// ImportNames holds the imported names in source order. Wildcard
	// imports lose their trailing ".*"; static imports keep the member.
	ImportNames []string
	// Declarations holds the top-level type declarations. A valid unit has
	// at least one.
	Declarations []*parser.Node
}

// NewSourceUnit collects imports and top-level declarations from a parsed
// compilation unit.
func NewSourceUnit(name string, root *parser.Node) (*SourceUnit, error) {
	if root == nil || root.Kind != parser.KindCompilationUnit {
		return nil, &ParseError{Unit: name, Err: fmt.Errorf("not a compilation unit")}
	}

	unit := &SourceUnit{Name: name}
	for _, child := range root.Children {
		switch {
		case child.Kind == parser.KindImportDecl:
			if imported := importName(child); imported != "" {
				unit.ImportNames = append(unit.ImportNames, imported)
			}
		case child.Kind.IsTypeDecl():
			unit.Declarations = append(unit.Declarations, child)
		}
	}

	if len(unit.Declarations) == 0 {
		return nil, &ParseError{Unit: name, Err: fmt.Errorf("no top-level type declaration")}
	}
	return unit, nil
}

func importName(decl *parser.Node) string {
	if name := decl.FirstChildOfKind(parser.KindQualifiedName); name != nil {
		return name.QualifiedName()
	}
	return ""
}

// RootDeclaration returns the single top-level declaration, or false when
// the unit declares several types.
func (u *SourceUnit) RootDeclaration() (*parser.Node, bool) {
	if len(u.Declarations) != 1 {
		return nil, false
	}
	return u.Declarations[0], true
}

// ParseUnit parses src with p and builds the SourceUnit for the accessor
// called name. Every failure is a *ParseError.
func ParseUnit(p SyntaxParser, name string, src []byte) (*SourceUnit, error) {
	root, err := p.Parse(name+".java", src)
	if err != nil {
		return nil, &ParseError{Unit: name, Err: err}
	}
	return NewSourceUnit(name, root)
}

// UnitName derives the accessor name from a decompiled file name.
func UnitName(file string) string {
	if i := strings.LastIndexAny(file, `/\`); i >= 0 {
		file = file[i+1:]
	}
	return strings.TrimSuffix(file, ".java")
}
