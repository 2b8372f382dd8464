package parser

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestParseExpression(t *testing.T) {
	tests := []struct {
		input string
		kind  NodeKind
	}{
		{"42", KindLiteral},
		{"x", KindIdentifier},
		{"x + y", KindBinaryExpr},
		{"x * y + z", KindBinaryExpr},
		{"-x", KindUnaryExpr},
		{"!x", KindUnaryExpr},
		{"x++", KindPostfixExpr},
		{"a ? b : c", KindTernaryExpr},
		{"x = 5", KindAssignExpr},
		{"x += 5", KindAssignExpr},
		{"(x)", KindParenExpr},
		{"obj.field", KindFieldAccess},
		{"obj.method()", KindCallExpr},
		{"method(1, 2)", KindCallExpr},
		{"this.<T>method()", KindCallExpr},
		{"super.toString()", KindCallExpr},
		{"arr[0]", KindArrayAccess},
		{"new Foo()", KindNewExpr},
		{"new Foo<>()", KindNewExpr},
		{"new Runnable() { public void run() {} }", KindNewExpr},
		{"new int[10]", KindNewArrayExpr},
		{"new Object[]{a, b}", KindNewArrayExpr},
		{"x -> x + 1", KindLambdaExpr},
		{"(a, b) -> a + b", KindLambdaExpr},
		{"(String s) -> { return s; }", KindLambdaExpr},
		{"obj::method", KindMethodRef},
		{"String[]::new", KindMethodRef},
		{"List<String>::new", KindMethodRef},
		{"x instanceof Foo", KindInstanceofExpr},
		{"x instanceof Foo f", KindInstanceofExpr},
		{"(int) x", KindCastExpr},
		{"(Foo) x", KindCastExpr},
		{"(List<String>) x", KindCastExpr},
		{"(Foo) (x)", KindCastExpr},
		{"(a) + b", KindBinaryExpr},
		{"String.class", KindClassLiteral},
		{"String[].class", KindClassLiteral},
		{"int.class", KindClassLiteral},
		{"int[].class", KindClassLiteral},
		{"switch (x) { case 1 -> \"a\"; default -> \"b\"; }", KindSwitchExpr},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := ParseExpression(strings.NewReader(tt.input)).Finish()
			if node == nil {
				t.Fatal("Finish returned nil")
			}
			if node.Kind != tt.kind {
				t.Errorf("got %v, want %v\n%s", node.Kind, tt.kind, node)
			}
			if bad := node.FirstError(); bad != nil {
				t.Errorf("unexpected error node: %s", bad.Error.Message)
			}
		})
	}
}

func TestParseStatement(t *testing.T) {
	tests := []struct {
		input string
		kind  NodeKind
	}{
		{"{ }", KindBlock},
		{";", KindEmptyStmt},
		{"return;", KindReturnStmt},
		{"return x;", KindReturnStmt},
		{"int x = 1;", KindLocalVarDecl},
		{"final String[] names = {\"a\"};", KindLocalVarDecl},
		{"Map<String, List<String>> m = new HashMap<>();", KindLocalVarDecl},
		{"var x = foo();", KindLocalVarDecl},
		{"x = 1;", KindExprStmt},
		{"foo.bar();", KindExprStmt},
		{"if (a) b(); else c();", KindIfStmt},
		{"for (int i = 0; i < n; i++) {}", KindForStmt},
		{"for (;;) {}", KindForStmt},
		{"for (String s : list) {}", KindEnhancedForStmt},
		{"while (x) {}", KindWhileStmt},
		{"do { } while (x);", KindDoStmt},
		{"switch (x) { case 1: break; default: return; }", KindSwitchStmt},
		{"label: for (;;) { break label; }", KindLabeledStmt},
		{"throw new RuntimeException(\"x\");", KindThrowStmt},
		{"try { a(); } catch (Exception e) { }", KindTryStmt},
		{"try { a(); } catch (A | B e) { } finally { }", KindTryStmt},
		{"try (InputStream in = open()) { }", KindTryStmt},
		{"synchronized (lock) { }", KindSynchronizedStmt},
		{"assert x : \"msg\";", KindAssertStmt},
		{"class Local {}", KindLocalClassDecl},
		{"final class Local {}", KindLocalClassDecl},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := ParseStatement(strings.NewReader(tt.input)).Finish()
			if node == nil {
				t.Fatal("Finish returned nil")
			}
			if node.Kind != tt.kind {
				t.Errorf("got %v, want %v\n%s", node.Kind, tt.kind, node)
			}
			if bad := node.FirstError(); bad != nil {
				t.Errorf("unexpected error node: %s", bad.Error.Message)
			}
		})
	}
}

func TestParseCompilationUnit(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty class", "class Foo {}"},
		{"class with package", "package com.example;\nclass Foo {}"},
		{"class with import", "import java.util.List;\nclass Foo {}"},
		{"static and wildcard imports", "import static java.util.Collections.emptyList;\nimport java.util.*;\nclass Foo {}"},
		{"class with field", "class Foo { int x; }"},
		{"class with method", "class Foo { void bar() {} }"},
		{"class with constructor", "class Foo { Foo() {} }"},
		{"class extends", "class Foo extends Bar {}"},
		{"class implements", "class Foo implements Bar, Baz {}"},
		{"generic class", "class Foo<T extends Comparable<T>> {}"},
		{"interface", "interface Foo { default void x() {} }"},
		{"enum", "enum Color { RED, GREEN, BLUE }"},
		{"enum with body", "enum Op { ADD(1) { int apply() { return 1; } }; Op(int x) {} }"},
		{"record", "record Point(int x, int y) {}"},
		{"annotation", "@interface Marker { String value() default \"\"; }"},
		{"annotated class", "@Deprecated public class Foo {}"},
		{"annotated method", "class Foo { @SuppressWarnings({\"a\", \"b\"}) void x() {} }"},
		{"static initializer", "class Foo { static { init(); } }"},
		{"nested class", "class Foo { static class Bar {} }"},
		{"varargs", "class Foo { void x(String... args) {} }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParseCompilationUnit(strings.NewReader(tt.input), WithFile("test.java"))
			node := p.Finish()
			if node == nil {
				t.Fatal("Finish returned nil")
			}
			if node.Kind != KindCompilationUnit {
				t.Errorf("got %v, want CompilationUnit", node.Kind)
			}
			if bad := node.FirstError(); bad != nil {
				t.Errorf("unexpected error node at %s: %s\n%s", bad.Span.Start, bad.Error.Message, node)
			}
		})
	}
}

func TestParseAccessorSource(t *testing.T) {
	src, err := os.ReadFile("testdata/GeneratedMethodAccessor1.java")
	if err != nil {
		t.Fatal(err)
	}

	root, err := Parse("GeneratedMethodAccessor1.java", src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var imports []string
	for _, imp := range root.ChildrenOfKind(KindImportDecl) {
		imports = append(imports, imp.FirstChildOfKind(KindQualifiedName).QualifiedName())
	}
	want := "com.example.OrderService java.lang.reflect.InvocationTargetException sun.reflect.MethodAccessorImpl"
	if got := strings.Join(imports, " "); got != want {
		t.Errorf("imports = %q, want %q", got, want)
	}

	class := root.FirstChildOfKind(KindClassDecl)
	if class == nil || class.Name() != "GeneratedMethodAccessor1" {
		t.Fatalf("class = %v", class)
	}

	method := class.FirstChildOfKind(KindBlock).FirstChildOfKind(KindMethodDecl)
	if method == nil || method.Name() != "invoke" {
		t.Fatalf("method = %v", method)
	}

	tries := method.FirstChildOfKind(KindBlock).ChildrenOfKind(KindTryStmt)
	if len(tries) != 2 {
		t.Fatalf("got %d try statements, want 2", len(tries))
	}
	if got := len(tries[0].ChildrenOfKind(KindCatchClause)); got != 1 {
		t.Errorf("first try has %d catch clauses, want 1", got)
	}

	ret := tries[1].FirstChildOfKind(KindBlock).FirstChildOfKind(KindReturnStmt)
	if ret == nil || len(ret.Children) != 1 || ret.Children[0].Kind != KindCallExpr {
		t.Fatalf("return = %v", ret)
	}
	target := ret.Children[0].Children[0]
	if target.Kind != KindFieldAccess || target.LastChild().TokenLiteral() != "placeOrder" {
		t.Errorf("call target = %s", target)
	}
}

func TestParseSyntaxError(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"empty", "", 0},
		{"truncated", "class A {\n void x() {", 0},
		{"missing expression", "class A {\n int x = ;\n}", 2},
		{"garbage member", "class A {\n  + \n}", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Parse("A.java", []byte(tt.input))
			if root != nil {
				t.Errorf("expected no tree, got\n%s", root)
			}
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("err = %v, want *SyntaxError", err)
			}
			if syntaxErr.File != "A.java" {
				t.Errorf("File = %q", syntaxErr.File)
			}
			if syntaxErr.Pos.Line != tt.line {
				t.Errorf("line = %d, want %d (%v)", syntaxErr.Pos.Line, tt.line, err)
			}
		})
	}
}

func TestShiftAfterRejectedTypeArguments(t *testing.T) {
	node := ParseExpression(strings.NewReader("a < b >> c")).Finish()
	if node == nil {
		t.Fatal("Finish returned nil")
	}
	if node.Kind != KindBinaryExpr || node.TokenLiteral() != "<" {
		t.Fatalf("root = %s", node)
	}
	right := node.Children[1]
	if right.Kind != KindBinaryExpr || right.TokenLiteral() != ">>" {
		t.Errorf("right operand = %s", right)
	}
}

func TestErrorRecovery(t *testing.T) {
	src := "class A {\n  void broken() { int = ; }\n  void ok() { return; }\n}"
	node := ParseCompilationUnit(strings.NewReader(src)).Finish()
	if node == nil {
		t.Fatal("Finish returned nil")
	}
	if node.FirstError() == nil {
		t.Fatal("expected an error node")
	}

	var names []string
	for _, m := range node.FirstChildOfKind(KindClassDecl).FirstChildOfKind(KindBlock).ChildrenOfKind(KindMethodDecl) {
		names = append(names, m.Name())
	}
	if got := strings.Join(names, ","); got != "broken,ok" {
		t.Errorf("methods = %q, want broken,ok", got)
	}
}

func TestParseWithComments(t *testing.T) {
	p := ParseCompilationUnit(strings.NewReader("// header\nclass A { /* body */ }"), WithComments())
	if p.Finish() == nil {
		t.Fatal("Finish returned nil")
	}
	if got := len(p.Comments()); got != 2 {
		t.Errorf("got %d comments, want 2", got)
	}
}
