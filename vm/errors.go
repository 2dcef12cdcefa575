package vm

import (
	"fmt"

	"github.com/LAK132/lox/token"
)

// RuntimeError is raised for a type mismatch encountered while executing an
// arithmetic, comparison, or unary opcode (e.g. adding a string to a
// number). It carries the source line of the opcode that raised it, looked
// up from the bytecode's parallel Lines slice, so the diagnostics package
// can render the "[line N] Error: <message>" wire format.
type RuntimeError struct {
	Line    int32
	Message string
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("💥 RuntimeError: %s", e.Message)
}

// DiagnosticInfo implements diagnostics.Positioned. The bytecode VM never
// has a token to anchor to, only a line.
func (e RuntimeError) DiagnosticInfo() (int32, *token.Token, string) {
	return e.Line, nil, e.Message
}

// DeveloperError signals a programmer invariant violation rather than a
// user-facing mistake in the Lox program being run: an unknown opcode, or
// stack over/underflow from a miscompiled chunk. It deliberately does not
// implement diagnostics.Positioned, so it renders through diagnostics'
// fallback form rather than claiming a source line it doesn't have.
type DeveloperError struct {
	Message string
}

func (e DeveloperError) Error() string {
	return fmt.Sprintf("🤖 DeveloperError: %s", e.Message)
}
