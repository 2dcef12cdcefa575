package interpreter

import (
	"fmt"

	"github.com/LAK132/lox/token"
)

// RuntimeError is raised for a type mismatch, arity mismatch, undefined
// name, or undefined property encountered while evaluating. It carries the
// offending token (when one was available at the call site) so the
// diagnostics package can render the "at '<lexeme>'" form of the external
// wire format.
type RuntimeError struct {
	Line    int32
	Column  int
	Token   *token.Token
	Message string
}

func CreateRuntimeError(line int32, column int, message string) RuntimeError {
	return RuntimeError{
		Line:    line,
		Column:  column,
		Message: message,
	}
}

// CreateRuntimeErrorAt builds a RuntimeError anchored to the token that
// triggered it (the operator, call-paren, or property name token).
func CreateRuntimeErrorAt(tok token.Token, message string) RuntimeError {
	return RuntimeError{
		Line:    tok.Line,
		Column:  tok.Column,
		Token:   &tok,
		Message: message,
	}
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("💥 Lox Runtime error:\nline:%d, column:%d - %s", e.Line, e.Column, e.Message)
}

// DiagnosticInfo implements diagnostics.Positioned.
func (e RuntimeError) DiagnosticInfo() (int32, *token.Token, string) {
	return e.Line, e.Token, e.Message
}
