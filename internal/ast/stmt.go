package ast

import "github.com/tangerineArc/thanatos/internal/token"

// Stmt is any node that performs an action but does not itself produce a
// value.
type Stmt interface {
	Accept(v StmtVisitor) (any, error)
}

// StmtVisitor is implemented by each consumer of the statement tree.
type StmtVisitor interface {
	VisitBlockStmt(s *BlockStmt) (any, error)
	VisitClassStmt(s *ClassStmt) (any, error)
	VisitExpressionStmt(s *ExpressionStmt) (any, error)
	VisitFunctionStmt(s *FunctionStmt) (any, error)
	VisitIfStmt(s *IfStmt) (any, error)
	VisitLetStmt(s *LetStmt) (any, error)
	VisitPrintStmt(s *PrintStmt) (any, error)
	VisitReturnStmt(s *ReturnStmt) (any, error)
	VisitWhileStmt(s *WhileStmt) (any, error)
}

// ExpressionStmt evaluates Expression and discards the result.
type ExpressionStmt struct {
	Expression Expr
}

func (s *ExpressionStmt) Accept(v StmtVisitor) (any, error) { return v.VisitExpressionStmt(s) }

// PrintStmt evaluates Expression and writes its stringified form to stdout.
type PrintStmt struct {
	Expression Expr
}

func (s *PrintStmt) Accept(v StmtVisitor) (any, error) { return v.VisitPrintStmt(s) }

// LetStmt declares Name in the current scope, bound to Initializer's value
// (void if Initializer is nil).
type LetStmt struct {
	Name        token.Token
	Initializer Expr
}

func (s *LetStmt) Accept(v StmtVisitor) (any, error) { return v.VisitLetStmt(s) }

// BlockStmt executes Statements in a fresh child scope.
type BlockStmt struct {
	Statements []Stmt
}

func (s *BlockStmt) Accept(v StmtVisitor) (any, error) { return v.VisitBlockStmt(s) }

// IfStmt executes ThenBranch or ElseBranch (nil if absent) depending on
// Condition.
type IfStmt struct {
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt
}

func (s *IfStmt) Accept(v StmtVisitor) (any, error) { return v.VisitIfStmt(s) }

// WhileStmt repeats Body while Condition evaluates truthy.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func (s *WhileStmt) Accept(v StmtVisitor) (any, error) { return v.VisitWhileStmt(s) }

// FunctionStmt declares a named function (or, as a method inside a
// ClassStmt, a method — the distinction is made by how the parser hangs
// this node off its parent, not by a field on the node itself).
type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

func (s *FunctionStmt) Accept(v StmtVisitor) (any, error) { return v.VisitFunctionStmt(s) }

// ReturnStmt propagates Value (void if nil) to the enclosing call frame.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr
}

func (s *ReturnStmt) Accept(v StmtVisitor) (any, error) { return v.VisitReturnStmt(s) }

// ClassStmt declares a class, optionally inheriting from Superclass, with
// Methods each parsed as a FunctionStmt.
type ClassStmt struct {
	Name       token.Token
	Superclass *VariableExpr
	Methods    []*FunctionStmt
}

func (s *ClassStmt) Accept(v StmtVisitor) (any, error) { return v.VisitClassStmt(s) }
