package ast

import (
	"testing"

	"github.com/tangerineArc/thanatos/internal/token"
)

func tok(t token.Type, lexeme string) token.Token {
	return token.Token{Type: t, Lexeme: lexeme, Line: 1}
}

func TestPrintBinaryExpression(t *testing.T) {
	expr := &BinaryExpr{
		Left:     &LiteralExpr{Value: 1.0},
		Operator: tok(token.PLUS, "+"),
		Right:    &LiteralExpr{Value: 2.0},
	}
	stmt := &ExpressionStmt{Expression: expr}

	got := Print([]Stmt{stmt})
	want := "(expr; (+ 1 2))\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintVoidLiteral(t *testing.T) {
	stmt := &PrintStmt{Expression: &LiteralExpr{Value: nil}}
	got := Print([]Stmt{stmt})
	want := "(print void)\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintIfWithoutElse(t *testing.T) {
	stmt := &IfStmt{
		Condition:  &LiteralExpr{Value: true},
		ThenBranch: &PrintStmt{Expression: &LiteralExpr{Value: 1.0}},
	}
	got := Print([]Stmt{stmt})
	want := "(if true (print 1))\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintClassWithSuperclass(t *testing.T) {
	stmt := &ClassStmt{
		Name:       tok(token.IDENTIFIER, "B"),
		Superclass: &VariableExpr{Name: tok(token.IDENTIFIER, "A")},
		Methods: []*FunctionStmt{
			{Name: tok(token.IDENTIFIER, "greet"), Body: []Stmt{
				&PrintStmt{Expression: &LiteralExpr{Value: "hi"}},
			}},
		},
	}
	got := Print([]Stmt{stmt})
	want := "(class B < A (function greet () (print hi)))\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
