package accessor

import (
	"errors"
	"fmt"

	"github.com/dhamidi/reflyze/java/parser"
)

// ErrShapeMismatch is matched by every *ShapeError.
var ErrShapeMismatch = errors.New("shape mismatch")

// ShapeError reports the step of the accessor pattern a unit failed.
type ShapeError struct {
	Unit string
	Step string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: shape mismatch at %s", e.Unit, e.Step)
}

func (e *ShapeError) Is(target error) bool {
	return target == ErrShapeMismatch
}

const (
	StepRootDeclaration = "root declaration"
	StepInvokeMethod    = "invoke method"
	StepTryBlock        = "try block"
	StepReturn          = "return statement"
	StepCall            = "call expression"
	StepCallee          = "callee name"
)

// InvokedMethod returns the simple name of the method an accessor invokes.
// The accessor must look like
//
//	class GeneratedMethodAccessorN {
//	    Object invoke(Object target, Object[] args) {
//	        ...
//	        try {
//	            return target.method(...);
//	        }
//	        ...
//	    }
//	}
//
// Only direct children are inspected at each level. The first method named
// invoke is used. Its body may hold several try statements (decompilers
// emit one around the receiver cast); the first whose own block holds a
// return statement is used, and that block's first return must be a plain
// call.
func InvokedMethod(unit *SourceUnit) (string, error) {
	mismatch := func(step string) (string, error) {
		return "", &ShapeError{Unit: unit.Name, Step: step}
	}

	root, ok := unit.RootDeclaration()
	if !ok {
		return mismatch(StepRootDeclaration)
	}
	switch root.Kind {
	case parser.KindClassDecl, parser.KindInterfaceDecl:
	default:
		return mismatch(StepRootDeclaration)
	}

	invoke := findInvoke(root)
	if invoke == nil {
		return mismatch(StepInvokeMethod)
	}
	body := invoke.FirstChildOfKind(parser.KindBlock)
	if body == nil {
		return mismatch(StepInvokeMethod)
	}

	var ret *parser.Node
	tried := false
	for _, stmt := range body.ChildrenOfKind(parser.KindTryStmt) {
		tried = true
		if block := stmt.FirstChildOfKind(parser.KindBlock); block != nil {
			if ret = block.FirstChildOfKind(parser.KindReturnStmt); ret != nil {
				break
			}
		}
	}
	if !tried {
		return mismatch(StepTryBlock)
	}
	if ret == nil {
		return mismatch(StepReturn)
	}

	if len(ret.Children) != 1 || ret.Children[0].Kind != parser.KindCallExpr {
		return mismatch(StepCall)
	}

	name := calleeName(ret.Children[0])
	if name == "" {
		return mismatch(StepCallee)
	}
	return name, nil
}

func findInvoke(decl *parser.Node) *parser.Node {
	body := decl.FirstChildOfKind(parser.KindBlock)
	if body == nil {
		return nil
	}
	for _, member := range body.ChildrenOfKind(parser.KindMethodDecl) {
		if member.Name() == "invoke" {
			return member
		}
	}
	return nil
}

// calleeName reads the method name from a call target: a bare Identifier,
// or the last Identifier of a FieldAccess. Calls on this or super without a
// name (constructor invocations) have none.
func calleeName(call *parser.Node) string {
	if len(call.Children) == 0 {
		return ""
	}
	target := call.Children[0]
	switch target.Kind {
	case parser.KindIdentifier:
		return target.TokenLiteral()
	case parser.KindFieldAccess:
		if last := target.LastChild(); last != nil && last.Kind == parser.KindIdentifier {
			return last.TokenLiteral()
		}
	}
	return ""
}
