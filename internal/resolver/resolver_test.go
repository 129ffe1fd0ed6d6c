package resolver

import (
	"bytes"
	"testing"

	"github.com/tangerineArc/thanatos/internal/ast"
	"github.com/tangerineArc/thanatos/internal/diagnostics"
	"github.com/tangerineArc/thanatos/internal/lexer"
	"github.com/tangerineArc/thanatos/internal/parser"
)

func resolve(t *testing.T, source string) ([]ast.Stmt, map[ast.Expr]int, *diagnostics.Sink) {
	t.Helper()
	var buf bytes.Buffer
	sink := diagnostics.New(&buf)
	tokens := lexer.New(source, sink).ScanTokens()
	statements := parser.New(tokens, sink).Parse()
	if sink.HadError {
		t.Fatalf("unexpected parse error")
	}
	locals := New(sink).Resolve(statements)
	return statements, locals, sink
}

func TestResolveNestedFunctionDistance(t *testing.T) {
	// `x` is read one block-scope below its declaration inside `inner`,
	// which is itself nested one function-call scope below `outer`.
	source := `
function outer() {
	let x = 1;
	function inner() {
		{
			print x;
		}
	}
}`
	_, locals, sink := resolve(t, source)
	if sink.HadError {
		t.Fatalf("unexpected resolve error")
	}

	found := false
	for expr, distance := range locals {
		if v, ok := expr.(*ast.VariableExpr); ok && v.Name.Lexeme == "x" {
			found = true
			if distance != 2 {
				t.Errorf("got distance %d, want 2 (inner's block, then inner's param scope)", distance)
			}
		}
	}
	if !found {
		t.Fatal("no recorded reference to x")
	}
}

func TestResolveTopLevelReferenceUnrecorded(t *testing.T) {
	source := `let x = 1; print x;`
	_, locals, sink := resolve(t, source)
	if sink.HadError {
		t.Fatalf("unexpected resolve error")
	}
	for expr := range locals {
		if v, ok := expr.(*ast.VariableExpr); ok && v.Name.Lexeme == "x" {
			t.Fatalf("top-level reference to x should be unrecorded (global), got an entry")
		}
	}
}

func TestResolveSelfReferenceBan(t *testing.T) {
	_, _, sink := resolve(t, "{ let a = a; }")
	if !sink.HadError {
		t.Fatal("expected \"Can't read local variable in its own initializer.\"")
	}
}

func TestResolveReturnAtTopLevel(t *testing.T) {
	_, _, sink := resolve(t, "return 1;")
	if !sink.HadError {
		t.Fatal("expected \"Can't return from top-level code.\"")
	}
}

func TestResolveReturnValueFromInitializer(t *testing.T) {
	_, _, sink := resolve(t, "class A { construct() { return 1; } }")
	if !sink.HadError {
		t.Fatal("expected \"Can't return a value from an initializer.\"")
	}
}

func TestResolveBareReturnFromInitializerIsFine(t *testing.T) {
	_, _, sink := resolve(t, "class A { construct() { return; } }")
	if sink.HadError {
		t.Fatal("bare return from an initializer should be allowed")
	}
}

func TestResolveThisOutsideClass(t *testing.T) {
	_, _, sink := resolve(t, "print this;")
	if !sink.HadError {
		t.Fatal("expected \"Can't use 'this' outside of a class.\"")
	}
}

func TestResolveSuperOutsideClass(t *testing.T) {
	_, _, sink := resolve(t, "print super.x;")
	if !sink.HadError {
		t.Fatal("expected \"Can't use 'super' outside of a class.\"")
	}
}

func TestResolveSuperWithNoSuperclass(t *testing.T) {
	_, _, sink := resolve(t, "class A { m() { super.m(); } }")
	if !sink.HadError {
		t.Fatal("expected \"Can't use 'super' in a class with no superclass.\"")
	}
}

func TestResolveSelfInheritance(t *testing.T) {
	_, _, sink := resolve(t, "class A < A {}")
	if !sink.HadError {
		t.Fatal("expected \"A class can't inherit from itself.\"")
	}
}

func TestResolveAlreadyDeclaredInScope(t *testing.T) {
	_, _, sink := resolve(t, "{ let a = 1; let a = 2; }")
	if !sink.HadError {
		t.Fatal("expected \"Already a variable with this name in this scope.\"")
	}
}

func TestResolveShadowingAcrossScopesIsFine(t *testing.T) {
	_, _, sink := resolve(t, `let a = "outer"; { let a = "inner"; print a; } print a;`)
	if sink.HadError {
		t.Fatal("shadowing in a nested scope should not be an error")
	}
}
