package interpreter

import "fmt"

// Type models a Lox class: its name, an optional superclass, its own
// methods (source order, later duplicates winning per SPEC semantics), and
// a Constructor that refers back to it. The Constructor<->Type cycle is
// left to Go's tracing garbage collector to reclaim once unreachable.
type Type struct {
	Name        string
	Superclass  *Type
	Methods     map[string]*InterpretedFunction
	constructor *Constructor
}

// MakeType builds a Type and its back-referencing Constructor.
func MakeType(name string, superclass *Type, methods map[string]*InterpretedFunction) *Type {
	t := &Type{Name: name, Superclass: superclass, Methods: methods}
	t.constructor = &Constructor{Type: t}
	return t
}

// AsCallable returns the Type's constructor as a Callable value.
func (t *Type) AsCallable() Callable {
	return t.constructor
}

// Arity and Call make *Type itself satisfy Callable, by delegating to its
// constructor: evaluating a class statement binds the Type to its name, and
// that same binding is what a constructor call ("Shape(3)") and a subclass
// declaration ("class B < A") both look up, so the Type has to be directly
// callable rather than only its constructor.
func (t *Type) Arity() int {
	return t.AsCallable().Arity()
}

func (t *Type) Call(i *TreeWalkInterpreter, arguments []any) (any, error) {
	return t.AsCallable().Call(i, arguments)
}

// findMethod looks up name on the type itself, then recursively on its
// superclass chain.
func (t *Type) findMethod(name string) (*InterpretedFunction, bool) {
	if method, ok := t.Methods[name]; ok {
		return method, true
	}
	if t.Superclass != nil {
		return t.Superclass.findMethod(name)
	}
	return nil, false
}

func (t *Type) String() string {
	return t.Name
}

// Instance is a runtime object of some Type, holding its own field values.
// Field reads fall through to a bound method on the type when no field of
// that name exists; field writes only ever create/update fields.
type Instance struct {
	Type   *Type
	Fields map[string]any
}

// Get reads a field, falling through to a bound method lookup.
func (instance *Instance) Get(name string) (any, bool) {
	if value, ok := instance.Fields[name]; ok {
		return value, true
	}
	if method, ok := instance.Type.findMethod(name); ok {
		return method.bind(instance), true
	}
	return nil, false
}

// Set assigns a field on the instance, creating it if absent.
func (instance *Instance) Set(name string, value any) {
	instance.Fields[name] = value
}

func (instance *Instance) String() string {
	return fmt.Sprintf("%s instance", instance.Type.Name)
}
