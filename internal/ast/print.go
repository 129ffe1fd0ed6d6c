package ast

import (
	"fmt"
	"strings"
)

// Print renders statements as a parenthesised (Lisp-style) tree, the way
// the original implementation's AstPrinter rendered expressions. Used by
// the `ast` CLI subcommand and by parser determinism tests — re-parsing
// identical input must yield byte-identical Print output (§8 property 2).
func Print(statements []Stmt) string {
	p := &printer{}
	var sb strings.Builder
	for _, stmt := range statements {
		result, _ := stmt.Accept(p)
		sb.WriteString(result.(string))
		sb.WriteByte('\n')
	}
	return sb.String()
}

type printer struct{}

func (p *printer) parenthesize(name string, exprs ...Expr) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, e := range exprs {
		sb.WriteByte(' ')
		result, _ := e.Accept(p)
		sb.WriteString(result.(string))
	}
	sb.WriteByte(')')
	return sb.String()
}

func (p *printer) VisitLiteralExpr(e *LiteralExpr) (any, error) {
	if e.Value == nil {
		return "void", nil
	}
	return fmt.Sprintf("%v", e.Value), nil
}

func (p *printer) VisitVariableExpr(e *VariableExpr) (any, error) {
	return e.Name.Lexeme, nil
}

func (p *printer) VisitAssignExpr(e *AssignExpr) (any, error) {
	return p.parenthesize("= "+e.Name.Lexeme, e.Value), nil
}

func (p *printer) VisitUnaryExpr(e *UnaryExpr) (any, error) {
	return p.parenthesize(e.Operator.Lexeme, e.Right), nil
}

func (p *printer) VisitBinaryExpr(e *BinaryExpr) (any, error) {
	return p.parenthesize(e.Operator.Lexeme, e.Left, e.Right), nil
}

func (p *printer) VisitLogicalExpr(e *LogicalExpr) (any, error) {
	return p.parenthesize(e.Operator.Lexeme, e.Left, e.Right), nil
}

func (p *printer) VisitGroupingExpr(e *GroupingExpr) (any, error) {
	return p.parenthesize("group", e.Expression), nil
}

func (p *printer) VisitCallExpr(e *CallExpr) (any, error) {
	return p.parenthesize("call", append([]Expr{e.Callee}, e.Arguments...)...), nil
}

func (p *printer) VisitGetExpr(e *GetExpr) (any, error) {
	return p.parenthesize("get "+e.Name.Lexeme, e.Object), nil
}

func (p *printer) VisitSetExpr(e *SetExpr) (any, error) {
	return p.parenthesize("set "+e.Name.Lexeme, e.Object, e.Value), nil
}

func (p *printer) VisitThisExpr(e *ThisExpr) (any, error) {
	return "this", nil
}

func (p *printer) VisitSuperExpr(e *SuperExpr) (any, error) {
	return "(super " + e.Method.Lexeme + ")", nil
}

func (p *printer) VisitExpressionStmt(s *ExpressionStmt) (any, error) {
	return p.parenthesize("expr;", s.Expression), nil
}

func (p *printer) VisitPrintStmt(s *PrintStmt) (any, error) {
	return p.parenthesize("print", s.Expression), nil
}

func (p *printer) VisitLetStmt(s *LetStmt) (any, error) {
	if s.Initializer == nil {
		return "(let " + s.Name.Lexeme + ")", nil
	}
	return p.parenthesize("let "+s.Name.Lexeme, s.Initializer), nil
}

func (p *printer) VisitBlockStmt(s *BlockStmt) (any, error) {
	var sb strings.Builder
	sb.WriteString("(block")
	for _, stmt := range s.Statements {
		result, _ := stmt.Accept(p)
		sb.WriteByte(' ')
		sb.WriteString(result.(string))
	}
	sb.WriteByte(')')
	return sb.String(), nil
}

func (p *printer) VisitIfStmt(s *IfStmt) (any, error) {
	cond, _ := s.Condition.Accept(p)
	then, _ := s.ThenBranch.Accept(p)
	if s.ElseBranch == nil {
		return fmt.Sprintf("(if %s %s)", cond, then), nil
	}
	els, _ := s.ElseBranch.Accept(p)
	return fmt.Sprintf("(if %s %s %s)", cond, then, els), nil
}

func (p *printer) VisitWhileStmt(s *WhileStmt) (any, error) {
	cond, _ := s.Condition.Accept(p)
	body, _ := s.Body.Accept(p)
	return fmt.Sprintf("(while %s %s)", cond, body), nil
}

func (p *printer) VisitFunctionStmt(s *FunctionStmt) (any, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(function %s (", s.Name.Lexeme)
	for i, param := range s.Params {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(param.Lexeme)
	}
	sb.WriteString(") ")
	for i, stmt := range s.Body {
		if i > 0 {
			sb.WriteByte(' ')
		}
		result, _ := stmt.Accept(p)
		sb.WriteString(result.(string))
	}
	sb.WriteByte(')')
	return sb.String(), nil
}

func (p *printer) VisitReturnStmt(s *ReturnStmt) (any, error) {
	if s.Value == nil {
		return "(return)", nil
	}
	result, _ := s.Value.Accept(p)
	return fmt.Sprintf("(return %s)", result), nil
}

func (p *printer) VisitClassStmt(s *ClassStmt) (any, error) {
	var sb strings.Builder
	sb.WriteString("(class " + s.Name.Lexeme)
	if s.Superclass != nil {
		sb.WriteString(" < " + s.Superclass.Name.Lexeme)
	}
	for _, method := range s.Methods {
		result, _ := method.Accept(p)
		sb.WriteByte(' ')
		sb.WriteString(result.(string))
	}
	sb.WriteByte(')')
	return sb.String(), nil
}
