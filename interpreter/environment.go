package interpreter

import (
	"fmt"

	"github.com/LAK132/lox/token"
)

// Environment binds variable names to values and forms a cactus stack via
// enclosing: many child environments may share a single parent. Closures
// capture a child environment by pointer, so later definitions made through
// that same pointer remain visible to every closure holding it.
type Environment struct {
	values    map[string]any
	enclosing *Environment
}

// MakeEnvironment creates a top-level (global) environment with no parent.
func MakeEnvironment() *Environment {
	return &Environment{
		values: make(map[string]any),
	}
}

// MakeNestedEnvironment creates a new environment whose enclosing scope is
// the given parent.
func MakeNestedEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]any),
		enclosing: enclosing,
	}
}

// define binds name to value in this environment's own frame, overwriting
// any existing binding for it (re-declaring a var is legal in Lox).
func (env *Environment) define(name string, value any) {
	env.values[name] = value
}

// set is an alias for define. VisitVarStmt calls define directly; nothing
// in this package calls set.
func (env *Environment) set(name string, value any) {
	env.define(name, value)
}

// get walks the environment chain starting at env, returning the first
// binding found for name.Lexeme.
func (env *Environment) get(name token.Token) (any, error) {
	if value, ok := env.values[name.Lexeme]; ok {
		return value, nil
	}
	if env.enclosing != nil {
		return env.enclosing.get(name)
	}
	msg := fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)
	return nil, CreateRuntimeError(name.Line, name.Column, msg)
}

// ancestor walks exactly distance enclosing links up from env.
func (env *Environment) ancestor(distance int) *Environment {
	e := env
	for i := 0; i < distance; i++ {
		e = e.enclosing
	}
	return e
}

// getAt reads name from the frame exactly distance scopes up, as computed
// by the resolver. It does not walk further than that frame.
func (env *Environment) getAt(distance int, name string) any {
	return env.ancestor(distance).values[name]
}

// assignAt assigns value to name in the frame exactly distance scopes up.
func (env *Environment) assignAt(distance int, name token.Token, value any) {
	env.ancestor(distance).values[name.Lexeme] = value
}

// assign updates an existing binding for name.Lexeme, walking the
// environment chain. It is a runtime error to assign to an undeclared name.
func (env *Environment) assign(name token.Token, value any) error {
	if _, ok := env.values[name.Lexeme]; ok {
		env.values[name.Lexeme] = value
		return nil
	}
	if env.enclosing != nil {
		return env.enclosing.assign(name, value)
	}
	msg := fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)
	return CreateRuntimeError(name.Line, name.Column, msg)
}
