package parser

import (
	"fmt"

	"github.com/LAK132/lox/token"
)

// SyntaxError is raised for an unexpected token during parsing. It carries
// the offending token itself (rather than just its position) so a
// diagnostic sink can render the "at end" / "at '<lexeme>'" distinction
// required by the external diagnostic format.
type SyntaxError struct {
	Line    int32
	Column  int
	Token   token.Token
	Message string
}

func CreateSyntaxError(line int32, column int, message string) SyntaxError {
	return SyntaxError{
		Line:    line,
		Column:  column,
		Message: message,
	}
}

// CreateSyntaxErrorAt builds a SyntaxError anchored to a specific token, used
// wherever the diagnostic must distinguish "at end" from "at '<lexeme>'".
func CreateSyntaxErrorAt(tok token.Token, message string) SyntaxError {
	return SyntaxError{
		Line:    tok.Line,
		Column:  tok.Column,
		Token:   tok,
		Message: message,
	}
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("💥 Lox Syntax error:\nline:%d, column:%d - %s", e.Line, e.Column, e.Message)
}

// DiagnosticInfo implements diagnostics.Positioned. SyntaxError always has an
// anchoring token when produced via CreateSyntaxErrorAt (the common case);
// CreateSyntaxError's zero-value Token renders as a pure line-only
// diagnostic.
func (e SyntaxError) DiagnosticInfo() (int32, *token.Token, string) {
	if e.Token.Lexeme == "" && e.Token.TokenType == "" {
		return e.Line, nil, e.Message
	}
	tok := e.Token
	return e.Line, &tok, e.Message
}
