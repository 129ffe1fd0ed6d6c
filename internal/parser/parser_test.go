package parser

import (
	"bytes"
	"testing"

	"github.com/tangerineArc/thanatos/internal/ast"
	"github.com/tangerineArc/thanatos/internal/diagnostics"
	"github.com/tangerineArc/thanatos/internal/lexer"
)

func parse(t *testing.T, source string) ([]ast.Stmt, *diagnostics.Sink) {
	t.Helper()
	var buf bytes.Buffer
	sink := diagnostics.New(&buf)
	tokens := lexer.New(source, sink).ScanTokens()
	statements := New(tokens, sink).Parse()
	return statements, sink
}

func checkNoErrors(t *testing.T, sink *diagnostics.Sink) {
	t.Helper()
	if sink.HadError {
		t.Fatalf("unexpected parse error")
	}
}

func TestParseExpressionStatement(t *testing.T) {
	statements, sink := parse(t, "1 + 2;")
	checkNoErrors(t, sink)

	if len(statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(statements))
	}
	if _, ok := statements[0].(*ast.ExpressionStmt); !ok {
		t.Fatalf("got %T, want *ast.ExpressionStmt", statements[0])
	}
}

func TestParsePrecedence(t *testing.T) {
	statements, sink := parse(t, "1 + 2 * 3;")
	checkNoErrors(t, sink)

	got := ast.Print(statements)
	want := "(expr; (+ 1 (* 2 3)))\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseAssignmentRetargeting(t *testing.T) {
	statements, sink := parse(t, "a = 1;")
	checkNoErrors(t, sink)

	exprStmt := statements[0].(*ast.ExpressionStmt)
	if _, ok := exprStmt.Expression.(*ast.AssignExpr); !ok {
		t.Fatalf("got %T, want *ast.AssignExpr", exprStmt.Expression)
	}
}

func TestParseSetRetargeting(t *testing.T) {
	statements, sink := parse(t, "a.b = 1;")
	checkNoErrors(t, sink)

	exprStmt := statements[0].(*ast.ExpressionStmt)
	if _, ok := exprStmt.Expression.(*ast.SetExpr); !ok {
		t.Fatalf("got %T, want *ast.SetExpr", exprStmt.Expression)
	}
}

func TestParseInvalidAssignmentTargetIsNonFatal(t *testing.T) {
	statements, sink := parse(t, "1 = 2; print 3;")
	if !sink.HadError {
		t.Fatal("expected a diagnostic for an invalid assignment target")
	}
	// parsing continues: both statements should still be produced
	if len(statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(statements))
	}
}

func TestParseForDesugaring(t *testing.T) {
	statements, sink := parse(t, "for (let i = 0; i < 3; i = i + 1) print i;")
	checkNoErrors(t, sink)

	block, ok := statements[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.BlockStmt", statements[0])
	}
	if len(block.Statements) != 2 {
		t.Fatalf("got %d statements in desugared block, want 2 (init, while)", len(block.Statements))
	}
	if _, ok := block.Statements[0].(*ast.LetStmt); !ok {
		t.Fatalf("got %T, want *ast.LetStmt as first statement", block.Statements[0])
	}
	whileStmt, ok := block.Statements[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.WhileStmt as second statement", block.Statements[1])
	}
	body, ok := whileStmt.Body.(*ast.BlockStmt)
	if !ok {
		t.Fatalf("got %T, want desugared while body to be a block", whileStmt.Body)
	}
	if len(body.Statements) != 2 {
		t.Fatalf("got %d statements in while body, want 2 (print, increment)", len(body.Statements))
	}
}

func TestParseForOmittedClauses(t *testing.T) {
	statements, sink := parse(t, "for (;;) print 1;")
	checkNoErrors(t, sink)

	whileStmt, ok := statements[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.WhileStmt", statements[0])
	}
	lit, ok := whileStmt.Condition.(*ast.LiteralExpr)
	if !ok {
		t.Fatalf("got %T, want omitted condition to become a Literal(true)", whileStmt.Condition)
	}
	if lit.Value != true {
		t.Errorf("got %v, want true", lit.Value)
	}
}

func TestParseClassDeclaration(t *testing.T) {
	statements, sink := parse(t, `class B < A { construct() { this.x = 1; } greet() { print "hi"; } }`)
	checkNoErrors(t, sink)

	classStmt, ok := statements[0].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.ClassStmt", statements[0])
	}
	if classStmt.Superclass == nil || classStmt.Superclass.Name.Lexeme != "A" {
		t.Fatalf("expected superclass A")
	}
	if len(classStmt.Methods) != 2 {
		t.Fatalf("got %d methods, want 2", len(classStmt.Methods))
	}
}

func TestParseTooManyArgumentsIsNonFatal(t *testing.T) {
	var source bytes.Buffer
	source.WriteString("f(")
	for i := 0; i < 256; i++ {
		if i > 0 {
			source.WriteString(", ")
		}
		source.WriteString("1")
	}
	source.WriteString(");")

	_, sink := parse(t, source.String())
	if !sink.HadError {
		t.Fatal("expected a diagnostic for more than 255 arguments")
	}
}

func TestParseDeterminism(t *testing.T) {
	source := `function fib(n) { if (n < 2) return n; return fib(n - 1) + fib(n - 2); }`
	statements1, sink1 := parse(t, source)
	checkNoErrors(t, sink1)
	statements2, sink2 := parse(t, source)
	checkNoErrors(t, sink2)

	got1 := ast.Print(statements1)
	got2 := ast.Print(statements2)
	if got1 != got2 {
		t.Errorf("re-parsing the same input produced different printed forms:\n%q\n%q", got1, got2)
	}
}

func TestSynchronizeRecoversMultipleErrors(t *testing.T) {
	// two independent malformed declarations, separated by ';'
	var buf bytes.Buffer
	sink := diagnostics.New(&buf)
	New(lexer.New("let ; let ;", sink).ScanTokens(), sink).Parse()
	if !sink.HadError {
		t.Fatal("expected parse errors")
	}
	if got := bytes.Count(buf.Bytes(), []byte("\n")); got != 2 {
		t.Errorf("got %d diagnostics, want 2: %q", got, buf.String())
	}
}
