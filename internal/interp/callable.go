package interp

import (
	"fmt"

	"github.com/tangerineArc/thanatos/internal/ast"
	"github.com/tangerineArc/thanatos/internal/token"
)

// Callable is anything that can appear as the callee of a Call expression:
// a user-defined function, a native function, or a class (instantiation).
type Callable interface {
	Arity() int
	Call(interp *Interpreter, arguments []Value) (Value, error)
}

// Function is a user-defined function or method value: the declaration
// AST node plus the environment captured at definition time (the
// closure). isInitializer marks a class's `construct` method, which
// always yields `this` regardless of what it returns.
type Function struct {
	declaration   *ast.FunctionStmt
	closure       *Environment
	isInitializer bool
}

func NewFunction(declaration *ast.FunctionStmt, closure *Environment, isInitializer bool) *Function {
	return &Function{declaration: declaration, closure: closure, isInitializer: isInitializer}
}

func (f *Function) name() string { return f.declaration.Name.Lexeme }

func (f *Function) Arity() int { return len(f.declaration.Params) }

// Call creates a fresh environment enclosed by the closure, binds each
// parameter, and executes the body there. A propagated return yields its
// value; normal completion yields void — except for an initializer,
// which always yields `this`.
func (f *Function) Call(interp *Interpreter, arguments []Value) (Value, error) {
	env := NewChildEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, arguments[i])
	}

	result, err := interp.executeBlock(f.declaration.Body, env)
	if ret, ok := err.(*returnSignal); ok {
		if f.isInitializer {
			return f.closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return result, nil
}

// Bind produces a new function value whose closure is a fresh environment
// defining `this` as instance, enclosed by the original closure — used
// both for plain method lookup and for super-method resolution.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewChildEnvironment(f.closure)
	env.Define("this", instance)
	return NewFunction(f.declaration, env, f.isInitializer)
}

// NativeFunction wraps a host-provided callable, such as the built-in
// clock().
type NativeFunction struct {
	NameStr string
	ArityV  int
	Fn      func(interp *Interpreter, arguments []Value) (Value, error)
}

func (n *NativeFunction) Arity() int { return n.ArityV }

func (n *NativeFunction) Call(interp *Interpreter, arguments []Value) (Value, error) {
	return n.Fn(interp, arguments)
}

// Class is a runtime class value: a name, an optional superclass, and its
// own method table (not including inherited methods, which are found by
// walking Superclass).
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

// FindMethod searches the class's own methods, then recurses into the
// superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Arity is the arity of the class's `construct` method, 0 if it has none.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("construct"); ok {
		return init.Arity()
	}
	return 0
}

// Call instantiates the class: create an Instance, then bind and invoke
// `construct` (if present) with the given arguments.
func (c *Class) Call(interp *Interpreter, arguments []Value) (Value, error) {
	instance := NewInstance(c)
	if init, ok := c.FindMethod("construct"); ok {
		if _, err := init.Bind(instance).Call(interp, arguments); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a runtime object: a reference to its class and a mapping
// from field name to value. Fields come into existence on first
// assignment.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Value)}
}

// Get reads a property off the instance: fields take priority over
// methods, and a method hit is bound to this instance.
func (i *Instance) Get(name token.Token) (Value, error) {
	if v, ok := i.Fields[name.Lexeme]; ok {
		return v, nil
	}
	if method, ok := i.Class.FindMethod(name.Lexeme); ok {
		return method.Bind(i), nil
	}
	return nil, &RuntimeError{Token: name, Message: fmt.Sprintf("Undefined property '%s'.", name.Lexeme)}
}

// Set writes value into the instance's field table under name.
func (i *Instance) Set(name token.Token, value Value) {
	i.Fields[name.Lexeme] = value
}
