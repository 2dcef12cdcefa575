// Package diagnostics renders the internal, per-stage error structs
// (scanner, parser, resolver, interpreter, compiler, VM) to the single
// external wire format the driver prints to stderr:
//
//	[line <N>] Error<where>: <message>
//
// This keeps each stage's own denser, contextual Error() string (used for
// debugging and tests) decoupled from the one line-oriented format actual
// users of the CLI see.
package diagnostics

import (
	"fmt"
	"io"

	"github.com/LAK132/lox/token"
)

// Positioned is implemented by any per-stage error struct that can report
// its source line, the specific token it was anchored to (nil if none),
// and its message. lexer.ScanError, parser.SyntaxError,
// resolver.ResolveError, interpreter.RuntimeError and vm.RuntimeError
// implement it; compiler.SemanticError, compiler.DeveloperError and
// vm.DeveloperError do not, so Format renders them in its fallback form.
type Positioned interface {
	error
	DiagnosticInfo() (line int32, tok *token.Token, message string)
}

// Format renders err to the external wire format. An error that does not
// implement Positioned is rendered as a bare line-only diagnostic.
func Format(err error) string {
	p, ok := err.(Positioned)
	if !ok {
		return fmt.Sprintf("[line 0] Error: %s", err.Error())
	}

	line, tok, message := p.DiagnosticInfo()
	where := ""
	if tok != nil {
		if tok.TokenType == token.EOF {
			where = " at end"
		} else {
			where = fmt.Sprintf(" at '%s'", tok.Lexeme)
		}
	}
	return fmt.Sprintf("[line %d] Error%s: %s", line, where, message)
}

// Report writes the formatted diagnostic for err to w, followed by a
// newline, mirroring the one-diagnostic-per-error contract of §6.
func Report(w io.Writer, err error) {
	fmt.Fprintln(w, Format(err))
}

// ReportAll writes a formatted diagnostic line for every error in errs.
func ReportAll(w io.Writer, errs []error) {
	for _, err := range errs {
		Report(w, err)
	}
}
