package interpreter

import (
	"fmt"

	"github.com/LAK132/lox/ast"
)

// Callable is anything that can appear on the left of a Call expression:
// a native (Go-implemented) function, an interpreted (user-declared)
// function or method, or a class's constructor.
type Callable interface {
	Arity() int
	Call(i *TreeWalkInterpreter, arguments []any) (any, error)
	String() string
}

// NativeFunction wraps a Go function exposed to Lox programs (e.g. "clock").
type NativeFunction struct {
	Name string
	Fn   func(i *TreeWalkInterpreter, arguments []any) (any, error)
	Ar   int
}

func (n *NativeFunction) Arity() int { return n.Ar }

func (n *NativeFunction) Call(i *TreeWalkInterpreter, arguments []any) (any, error) {
	return n.Fn(i, arguments)
}

func (n *NativeFunction) String() string {
	return fmt.Sprintf("<native fn %s>", n.Name)
}

// InterpretedFunction is a user-declared function or method. It carries the
// environment active at declaration time (its closure) so it can be called
// later with that lexical scope still in effect.
type InterpretedFunction struct {
	Declaration   ast.FunctionStmt
	Closure       *Environment
	IsInitializer bool
}

func (f *InterpretedFunction) Arity() int {
	return len(f.Declaration.Params)
}

// bind returns a copy of the function whose closure is a new environment,
// enclosed by the original closure, with "this" bound to instance. Used both
// for plain method lookup ("instance.method") and for super-method lookup.
func (f *InterpretedFunction) bind(instance *Instance) *InterpretedFunction {
	env := MakeNestedEnvironment(f.Closure)
	env.define("this", instance)
	return &InterpretedFunction{
		Declaration:   f.Declaration,
		Closure:       env,
		IsInitializer: f.IsInitializer,
	}
}

// Call executes the function body in a fresh environment enclosing its
// closure, with parameters bound to arguments. A "return" statement is
// propagated as a panic'd *returnSignal, recovered here exactly once per
// call frame.
func (f *InterpretedFunction) Call(i *TreeWalkInterpreter, arguments []any) (result any, err error) {
	env := MakeNestedEnvironment(f.Closure)
	for idx, param := range f.Declaration.Params {
		env.define(param.Lexeme, arguments[idx])
	}

	defer func() {
		if f.IsInitializer {
			result = f.Closure.getAt(0, "this")
		}
		if r := recover(); r != nil {
			if signal, ok := r.(*returnSignal); ok {
				if f.IsInitializer {
					result = f.Closure.getAt(0, "this")
				} else {
					result = signal.value
				}
				return
			}
			panic(r)
		}
	}()

	i.executeBlock(f.Declaration.Body, env)
	return nil, nil
}

func (f *InterpretedFunction) String() string {
	return fmt.Sprintf("<fn %s>", f.Declaration.Name.Lexeme)
}

// returnSignal carries a "return" statement's value up through the call
// stack via panic/recover, unwound exactly once per InterpretedFunction.Call.
type returnSignal struct {
	value any
}

// Constructor is the Callable produced when a Type is invoked as a value,
// e.g. "Shape(3)". Its arity mirrors that of the type's "init" method, or 0
// if the type declares none.
type Constructor struct {
	Type *Type
}

func (c *Constructor) Arity() int {
	if init, ok := c.Type.findMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

func (c *Constructor) Call(i *TreeWalkInterpreter, arguments []any) (any, error) {
	instance := &Instance{Type: c.Type, Fields: make(map[string]any)}
	if init, ok := c.Type.findMethod("init"); ok {
		bound := init.bind(instance)
		if _, err := bound.Call(i, arguments); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *Constructor) String() string {
	return fmt.Sprintf("<class %s>", c.Type.Name)
}
