// Package interp implements the tree-walking evaluator: environments,
// runtime values, and the post-order walk that executes statements and
// evaluates expressions.
package interp

import (
	"fmt"
	"io"
	"time"

	"github.com/tangerineArc/thanatos/internal/ast"
	"github.com/tangerineArc/thanatos/internal/token"
)

// RuntimeError is a runtime fault: type mismatch, arity mismatch,
// undefined variable/property, non-callable call, wrong superclass kind.
// It carries the token nearest the fault so the driver can report a line.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// returnSignal is the non-local control-flow value used to propagate a
// `return` statement's value up to the enclosing call frame. It satisfies
// the `error` interface purely so it can travel through the same
// (any, error) channel every Accept call already returns — it is never a
// real error and must be type-switched for, never logged as one. This is
// the explicit early-exit signal the design favors over panics.
type returnSignal struct {
	value Value
}

func (r *returnSignal) Error() string { return "return" }

// Interpreter walks the AST produced by the parser, using the hop
// distances recorded by the resolver to resolve local variable, `this`,
// and `super` references without a linear environment search.
type Interpreter struct {
	out io.Writer

	globals *Environment
	env     *Environment
	locals  map[ast.Expr]int
}

// New creates an Interpreter that writes `print` output to out and
// resolves local references using locals (the resolver's hop-distance
// table). The universe environment is pre-populated with the built-in
// clock().
func New(out io.Writer, locals map[ast.Expr]int) *Interpreter {
	globals := NewEnvironment()
	globals.Define("clock", &NativeFunction{
		NameStr: "clock",
		ArityV:  0,
		Fn: func(interp *Interpreter, arguments []Value) (Value, error) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	})

	return &Interpreter{
		out:     out,
		globals: globals,
		env:     globals,
		locals:  locals,
	}
}

// SetLocals merges locals into the hop-distance table consulted by
// variable, this, and super lookups. The REPL calls this once per line,
// since each line is resolved independently and produces its own locals
// table keyed by that line's AST node pointers; entries from earlier lines
// are kept so that functions and classes defined there still find their
// local bindings when called later.
func (in *Interpreter) SetLocals(locals map[ast.Expr]int) {
	if in.locals == nil {
		in.locals = make(map[ast.Expr]int, len(locals))
	}
	for expr, distance := range locals {
		in.locals[expr] = distance
	}
}

// Interpret executes statements in the global environment, stopping at
// the first RuntimeError (as *RuntimeError) it encounters.
func (in *Interpreter) Interpret(statements []ast.Stmt) error {
	for _, stmt := range statements {
		if _, err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execute(stmt ast.Stmt) (Value, error) {
	return stmt.Accept(in)
}

func (in *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	return expr.Accept(in)
}

// executeBlock runs statements in env, restoring the interpreter's
// previous environment on every exit path — normal completion, an error,
// or a propagated return.
func (in *Interpreter) executeBlock(statements []ast.Stmt, env *Environment) (Value, error) {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	var result Value
	for _, stmt := range statements {
		v, err := in.execute(stmt)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// lookUpVariable resolves name either via the resolver's recorded hop
// distance (if expr has an entry in locals) or, absent one, via the
// global environment's slow path.
func (in *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) (Value, error) {
	if distance, ok := in.locals[expr]; ok {
		return in.env.GetAt(distance, name.Lexeme), nil
	}
	return in.globals.Get(name.Lexeme)
}

// --- StmtVisitor ---

func (in *Interpreter) VisitExpressionStmt(s *ast.ExpressionStmt) (any, error) {
	_, err := in.evaluate(s.Expression)
	return nil, err
}

func (in *Interpreter) VisitPrintStmt(s *ast.PrintStmt) (any, error) {
	v, err := in.evaluate(s.Expression)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(in.out, stringify(v))
	return nil, nil
}

func (in *Interpreter) VisitLetStmt(s *ast.LetStmt) (any, error) {
	var value Value
	if s.Initializer != nil {
		v, err := in.evaluate(s.Initializer)
		if err != nil {
			return nil, err
		}
		value = v
	}
	in.env.Define(s.Name.Lexeme, value)
	return nil, nil
}

func (in *Interpreter) VisitBlockStmt(s *ast.BlockStmt) (any, error) {
	return in.executeBlock(s.Statements, NewChildEnvironment(in.env))
}

func (in *Interpreter) VisitIfStmt(s *ast.IfStmt) (any, error) {
	cond, err := in.evaluate(s.Condition)
	if err != nil {
		return nil, err
	}
	if truthy(cond) {
		return in.execute(s.ThenBranch)
	}
	if s.ElseBranch != nil {
		return in.execute(s.ElseBranch)
	}
	return nil, nil
}

func (in *Interpreter) VisitWhileStmt(s *ast.WhileStmt) (any, error) {
	for {
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return nil, err
		}
		if !truthy(cond) {
			return nil, nil
		}
		if _, err := in.execute(s.Body); err != nil {
			return nil, err
		}
	}
}

func (in *Interpreter) VisitFunctionStmt(s *ast.FunctionStmt) (any, error) {
	fn := NewFunction(s, in.env, false)
	in.env.Define(s.Name.Lexeme, fn)
	return nil, nil
}

func (in *Interpreter) VisitReturnStmt(s *ast.ReturnStmt) (any, error) {
	var value Value
	if s.Value != nil {
		v, err := in.evaluate(s.Value)
		if err != nil {
			return nil, err
		}
		value = v
	}
	return nil, &returnSignal{value: value}
}

func (in *Interpreter) VisitClassStmt(s *ast.ClassStmt) (any, error) {
	var superclass *Class
	if s.Superclass != nil {
		v, err := in.evaluate(s.Superclass)
		if err != nil {
			return nil, err
		}
		sc, ok := v.(*Class)
		if !ok {
			return nil, &RuntimeError{Token: s.Superclass.Name, Message: "Superclass must be a class."}
		}
		superclass = sc
	}

	in.env.Define(s.Name.Lexeme, nil)

	classEnv := in.env
	if superclass != nil {
		classEnv = NewChildEnvironment(in.env)
		classEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, method := range s.Methods {
		fn := NewFunction(method, classEnv, method.Name.Lexeme == "construct")
		methods[method.Name.Lexeme] = fn
	}

	class := NewClass(s.Name.Lexeme, superclass, methods)
	if err := in.env.Assign(s.Name.Lexeme, class); err != nil {
		return nil, err
	}
	return nil, nil
}

// --- ExprVisitor ---

func (in *Interpreter) VisitLiteralExpr(e *ast.LiteralExpr) (any, error) {
	return e.Value, nil
}

func (in *Interpreter) VisitVariableExpr(e *ast.VariableExpr) (any, error) {
	v, err := in.lookUpVariable(e.Name, e)
	if err != nil {
		return nil, &RuntimeError{Token: e.Name, Message: err.Error()}
	}
	return v, nil
}

func (in *Interpreter) VisitAssignExpr(e *ast.AssignExpr) (any, error) {
	value, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}

	if distance, ok := in.locals[e]; ok {
		in.env.AssignAt(distance, e.Name.Lexeme, value)
	} else if err := in.globals.Assign(e.Name.Lexeme, value); err != nil {
		return nil, &RuntimeError{Token: e.Name, Message: err.Error()}
	}

	return value, nil
}

func (in *Interpreter) VisitUnaryExpr(e *ast.UnaryExpr) (any, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.BANG:
		return !truthy(right), nil
	case token.MINUS:
		n, ok := right.(float64)
		if !ok {
			return nil, &RuntimeError{Token: e.Operator, Message: "Operand must be a number."}
		}
		return -n, nil
	case token.PLUS:
		n, ok := right.(float64)
		if !ok {
			return nil, &RuntimeError{Token: e.Operator, Message: "Operand must be a number."}
		}
		return n, nil
	}

	return nil, &RuntimeError{Token: e.Operator, Message: "Unreachable unary operator."}
}

func (in *Interpreter) VisitBinaryExpr(e *ast.BinaryExpr) (any, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.PLUS:
		if ln, ok := left.(float64); ok {
			if rn, ok := right.(float64); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, &RuntimeError{Token: e.Operator, Message: "Operands must be two numbers or two strings."}
	case token.MINUS:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln - rn, nil
	case token.STAR:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln * rn, nil
	case token.SLASH:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln / rn, nil
	case token.GREATER:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln > rn, nil
	case token.GREATER_EQUAL:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln >= rn, nil
	case token.LESS:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln < rn, nil
	case token.LESS_EQUAL:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln <= rn, nil
	case token.EQUAL_EQUAL:
		return valuesEqual(left, right), nil
	case token.BANG_EQUAL:
		return !valuesEqual(left, right), nil
	}

	return nil, &RuntimeError{Token: e.Operator, Message: "Unreachable binary operator."}
}

func numberOperands(operator token.Token, left, right Value) (float64, float64, error) {
	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if !lok || !rok {
		return 0, 0, &RuntimeError{Token: operator, Message: "Operands must be numbers."}
	}
	return ln, rn, nil
}

func (in *Interpreter) VisitLogicalExpr(e *ast.LogicalExpr) (any, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	if e.Operator.Type == token.OR {
		if truthy(left) {
			return left, nil
		}
	} else {
		if !truthy(left) {
			return left, nil
		}
	}

	return in.evaluate(e.Right)
}

func (in *Interpreter) VisitGroupingExpr(e *ast.GroupingExpr) (any, error) {
	return in.evaluate(e.Expression)
}

func (in *Interpreter) VisitCallExpr(e *ast.CallExpr) (any, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	arguments := make([]Value, 0, len(e.Arguments))
	for _, argExpr := range e.Arguments {
		arg, err := in.evaluate(argExpr)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, arg)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, &RuntimeError{Token: e.Paren, Message: "Can only call functions and classes."}
	}

	if len(arguments) != callable.Arity() {
		return nil, &RuntimeError{
			Token:   e.Paren,
			Message: fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(arguments)),
		}
	}

	return callable.Call(in, arguments)
}

func (in *Interpreter) VisitGetExpr(e *ast.GetExpr) (any, error) {
	object, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}

	instance, ok := object.(*Instance)
	if !ok {
		return nil, &RuntimeError{Token: e.Name, Message: "Only instances have properties."}
	}

	return instance.Get(e.Name)
}

func (in *Interpreter) VisitSetExpr(e *ast.SetExpr) (any, error) {
	object, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}

	instance, ok := object.(*Instance)
	if !ok {
		return nil, &RuntimeError{Token: e.Name, Message: "Only instances have fields."}
	}

	value, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}

	instance.Set(e.Name, value)
	return value, nil
}

func (in *Interpreter) VisitThisExpr(e *ast.ThisExpr) (any, error) {
	v, err := in.lookUpVariable(e.Keyword, e)
	if err != nil {
		return nil, &RuntimeError{Token: e.Keyword, Message: err.Error()}
	}
	return v, nil
}

func (in *Interpreter) VisitSuperExpr(e *ast.SuperExpr) (any, error) {
	distance, ok := in.locals[e]
	if !ok {
		return nil, &RuntimeError{Token: e.Keyword, Message: "Undefined variable 'super'."}
	}

	superclass := in.env.GetAt(distance, "super").(*Class)
	instance := in.env.GetAt(distance-1, "this").(*Instance)

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, &RuntimeError{Token: e.Method, Message: fmt.Sprintf("Undefined property '%s'.", e.Method.Lexeme)}
	}

	return method.Bind(instance), nil
}
