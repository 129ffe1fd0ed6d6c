// Package resolver performs a single static pass over the parsed AST,
// binding every variable reference to the number of enclosing scopes
// between its use and its declaration. The interpreter later uses that
// hop-distance to jump straight to the right environment instead of
// walking the chain at runtime.
package resolver

import (
	"github.com/tangerineArc/thanatos/internal/ast"
	"github.com/tangerineArc/thanatos/internal/diagnostics"
	"github.com/tangerineArc/thanatos/internal/token"
)

type functionType int

const (
	functionTypeNone functionType = iota
	functionTypeFunction
	functionTypeInitializer
	functionTypeMethod
)

type classType int

const (
	classTypeNone classType = iota
	classTypeClass
	classTypeSubclass
)

// Resolver walks the tree once, before evaluation, maintaining a stack of
// lexical scopes identical in shape to the ones the interpreter builds at
// runtime.
type Resolver struct {
	sink *diagnostics.Sink

	scopes []map[string]bool
	locals map[ast.Expr]int

	currentFunction functionType
	currentClass    classType
}

// New creates a Resolver reporting semantic errors to sink.
func New(sink *diagnostics.Sink) *Resolver {
	return &Resolver{
		sink:            sink,
		locals:          make(map[ast.Expr]int),
		currentFunction: functionTypeNone,
		currentClass:    classTypeNone,
	}
}

// Resolve walks statements and returns the hop-distance table: for every
// Expr node that refers to a local variable, the number of scopes between
// its use and its declaring scope. An Expr absent from the map refers to a
// global, resolved dynamically at runtime.
func (r *Resolver) Resolve(statements []ast.Stmt) map[ast.Expr]int {
	r.resolveStmts(statements)
	return r.locals
}

func (r *Resolver) resolveStmts(statements []ast.Stmt) {
	for _, stmt := range statements {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	stmt.Accept(r)
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	expr.Accept(r)
}

// --- scope stack ---

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.sink.AtLexeme(name.Line, name.Lexeme, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// unresolved: treated as global, looked up dynamically at runtime
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, fnType functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = fnType
	defer func() { r.currentFunction = enclosingFunction }()

	r.beginScope()
	defer r.endScope()

	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
}

// --- StmtVisitor ---

func (r *Resolver) VisitBlockStmt(s *ast.BlockStmt) (any, error) {
	r.beginScope()
	r.resolveStmts(s.Statements)
	r.endScope()
	return nil, nil
}

func (r *Resolver) VisitClassStmt(s *ast.ClassStmt) (any, error) {
	enclosingClass := r.currentClass
	r.currentClass = classTypeClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.sink.AtLexeme(s.Superclass.Name.Line, s.Superclass.Name.Lexeme, "A class can't inherit from itself.")
		} else {
			r.currentClass = classTypeSubclass
			r.resolveExpr(s.Superclass)
		}
	}

	if s.Superclass != nil {
		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range s.Methods {
		declType := functionTypeMethod
		if method.Name.Lexeme == "construct" {
			declType = functionTypeInitializer
		}
		r.resolveFunction(method, declType)
	}

	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}

	return nil, nil
}

func (r *Resolver) VisitExpressionStmt(s *ast.ExpressionStmt) (any, error) {
	r.resolveExpr(s.Expression)
	return nil, nil
}

func (r *Resolver) VisitFunctionStmt(s *ast.FunctionStmt) (any, error) {
	r.declare(s.Name)
	r.define(s.Name)
	r.resolveFunction(s, functionTypeFunction)
	return nil, nil
}

func (r *Resolver) VisitIfStmt(s *ast.IfStmt) (any, error) {
	r.resolveExpr(s.Condition)
	r.resolveStmt(s.ThenBranch)
	if s.ElseBranch != nil {
		r.resolveStmt(s.ElseBranch)
	}
	return nil, nil
}

func (r *Resolver) VisitLetStmt(s *ast.LetStmt) (any, error) {
	r.declare(s.Name)
	if s.Initializer != nil {
		r.resolveExpr(s.Initializer)
	}
	r.define(s.Name)
	return nil, nil
}

func (r *Resolver) VisitPrintStmt(s *ast.PrintStmt) (any, error) {
	r.resolveExpr(s.Expression)
	return nil, nil
}

func (r *Resolver) VisitReturnStmt(s *ast.ReturnStmt) (any, error) {
	if r.currentFunction == functionTypeNone {
		r.sink.AtLexeme(s.Keyword.Line, s.Keyword.Lexeme, "Can't return from top-level code.")
	}
	if s.Value != nil {
		if r.currentFunction == functionTypeInitializer {
			r.sink.AtLexeme(s.Keyword.Line, s.Keyword.Lexeme, "Can't return a value from an initializer.")
		}
		r.resolveExpr(s.Value)
	}
	return nil, nil
}

func (r *Resolver) VisitWhileStmt(s *ast.WhileStmt) (any, error) {
	r.resolveExpr(s.Condition)
	r.resolveStmt(s.Body)
	return nil, nil
}

// --- ExprVisitor ---

func (r *Resolver) VisitVariableExpr(e *ast.VariableExpr) (any, error) {
	if len(r.scopes) > 0 {
		if ready, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !ready {
			r.sink.AtLexeme(e.Name.Line, e.Name.Lexeme, "Can't read local variable in its own initializer.")
		}
	}
	r.resolveLocal(e, e.Name)
	return nil, nil
}

func (r *Resolver) VisitAssignExpr(e *ast.AssignExpr) (any, error) {
	r.resolveExpr(e.Value)
	r.resolveLocal(e, e.Name)
	return nil, nil
}

func (r *Resolver) VisitBinaryExpr(e *ast.BinaryExpr) (any, error) {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *Resolver) VisitCallExpr(e *ast.CallExpr) (any, error) {
	r.resolveExpr(e.Callee)
	for _, arg := range e.Arguments {
		r.resolveExpr(arg)
	}
	return nil, nil
}

func (r *Resolver) VisitGetExpr(e *ast.GetExpr) (any, error) {
	r.resolveExpr(e.Object)
	return nil, nil
}

func (r *Resolver) VisitGroupingExpr(e *ast.GroupingExpr) (any, error) {
	r.resolveExpr(e.Expression)
	return nil, nil
}

func (r *Resolver) VisitLiteralExpr(e *ast.LiteralExpr) (any, error) {
	return nil, nil
}

func (r *Resolver) VisitLogicalExpr(e *ast.LogicalExpr) (any, error) {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *Resolver) VisitSetExpr(e *ast.SetExpr) (any, error) {
	r.resolveExpr(e.Value)
	r.resolveExpr(e.Object)
	return nil, nil
}

func (r *Resolver) VisitSuperExpr(e *ast.SuperExpr) (any, error) {
	switch r.currentClass {
	case classTypeNone:
		r.sink.AtLexeme(e.Keyword.Line, e.Keyword.Lexeme, "Can't use 'super' outside of a class.")
	case classTypeClass:
		r.sink.AtLexeme(e.Keyword.Line, e.Keyword.Lexeme, "Can't use 'super' in a class with no superclass.")
	}
	r.resolveLocal(e, e.Keyword)
	return nil, nil
}

func (r *Resolver) VisitThisExpr(e *ast.ThisExpr) (any, error) {
	if r.currentClass == classTypeNone {
		r.sink.AtLexeme(e.Keyword.Line, e.Keyword.Lexeme, "Can't use 'this' outside of a class.")
		return nil, nil
	}
	r.resolveLocal(e, e.Keyword)
	return nil, nil
}

func (r *Resolver) VisitUnaryExpr(e *ast.UnaryExpr) (any, error) {
	r.resolveExpr(e.Right)
	return nil, nil
}
