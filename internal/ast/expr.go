// Package ast defines the typed tree representation produced by the parser
// and walked by the resolver and interpreter.
//
// Every node implements Accept, dispatching to the matching method of
// whichever ExprVisitor/StmtVisitor is walking the tree — the resolver and
// the interpreter are each one such visitor. Node identity (the pointer
// itself) is what the resolver's locals table keys on, so two syntactically
// identical occurrences of, say, Variable("x") remain distinguishable.
package ast

import "github.com/tangerineArc/thanatos/internal/token"

// Expr is any node that produces a value.
type Expr interface {
	Accept(v ExprVisitor) (any, error)
}

// ExprVisitor is implemented by each consumer of the expression tree
// (resolver, interpreter). Visit methods return `any` because Go has no
// union return type; each visitor casts the result to its own value
// representation internally.
type ExprVisitor interface {
	VisitAssignExpr(e *AssignExpr) (any, error)
	VisitBinaryExpr(e *BinaryExpr) (any, error)
	VisitCallExpr(e *CallExpr) (any, error)
	VisitGetExpr(e *GetExpr) (any, error)
	VisitGroupingExpr(e *GroupingExpr) (any, error)
	VisitLiteralExpr(e *LiteralExpr) (any, error)
	VisitLogicalExpr(e *LogicalExpr) (any, error)
	VisitSetExpr(e *SetExpr) (any, error)
	VisitSuperExpr(e *SuperExpr) (any, error)
	VisitThisExpr(e *ThisExpr) (any, error)
	VisitUnaryExpr(e *UnaryExpr) (any, error)
	VisitVariableExpr(e *VariableExpr) (any, error)
}

// LiteralExpr carries a parsed literal value: float64, string, bool, or nil
// (void).
type LiteralExpr struct {
	Value any
}

func (e *LiteralExpr) Accept(v ExprVisitor) (any, error) { return v.VisitLiteralExpr(e) }

// VariableExpr is a reference to a named variable.
type VariableExpr struct {
	Name token.Token
}

func (e *VariableExpr) Accept(v ExprVisitor) (any, error) { return v.VisitVariableExpr(e) }

// AssignExpr assigns Value to the variable Name.
type AssignExpr struct {
	Name  token.Token
	Value Expr
}

func (e *AssignExpr) Accept(v ExprVisitor) (any, error) { return v.VisitAssignExpr(e) }

// UnaryExpr applies a prefix operator to Right.
type UnaryExpr struct {
	Operator token.Token
	Right    Expr
}

func (e *UnaryExpr) Accept(v ExprVisitor) (any, error) { return v.VisitUnaryExpr(e) }

// BinaryExpr applies an infix operator that always evaluates both operands.
type BinaryExpr struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (e *BinaryExpr) Accept(v ExprVisitor) (any, error) { return v.VisitBinaryExpr(e) }

// LogicalExpr is `and`/`or`; kept distinct from BinaryExpr so the
// interpreter knows to short-circuit.
type LogicalExpr struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (e *LogicalExpr) Accept(v ExprVisitor) (any, error) { return v.VisitLogicalExpr(e) }

// GroupingExpr is a parenthesised sub-expression.
type GroupingExpr struct {
	Expression Expr
}

func (e *GroupingExpr) Accept(v ExprVisitor) (any, error) { return v.VisitGroupingExpr(e) }

// CallExpr invokes Callee with Arguments. Paren is the closing ')', used to
// report arity errors at a useful location.
type CallExpr struct {
	Callee    Expr
	Paren     token.Token
	Arguments []Expr
}

func (e *CallExpr) Accept(v ExprVisitor) (any, error) { return v.VisitCallExpr(e) }

// GetExpr reads a property (field or method) named Name off Object.
type GetExpr struct {
	Object Expr
	Name   token.Token
}

func (e *GetExpr) Accept(v ExprVisitor) (any, error) { return v.VisitGetExpr(e) }

// SetExpr writes Value into the property Name on Object.
type SetExpr struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

func (e *SetExpr) Accept(v ExprVisitor) (any, error) { return v.VisitSetExpr(e) }

// ThisExpr is a `this` reference inside a method body.
type ThisExpr struct {
	Keyword token.Token
}

func (e *ThisExpr) Accept(v ExprVisitor) (any, error) { return v.VisitThisExpr(e) }

// SuperExpr is a `super.Method` reference inside a subclass method body.
type SuperExpr struct {
	Keyword token.Token
	Method  token.Token
}

func (e *SuperExpr) Accept(v ExprVisitor) (any, error) { return v.VisitSuperExpr(e) }
