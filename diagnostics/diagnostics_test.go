package diagnostics

import (
	"bytes"
	"errors"
	"testing"

	"github.com/LAK132/lox/interpreter"
	"github.com/LAK132/lox/lexer"
	"github.com/LAK132/lox/parser"
	"github.com/LAK132/lox/resolver"
	"github.com/LAK132/lox/token"
)

func TestFormatScanErrorIsLineOnly(t *testing.T) {
	err := &lexer.ScanError{Line: 3, Message: "Unexpected character."}
	got := Format(err)
	want := "[line 3] Error: Unexpected character."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatSyntaxErrorAtToken(t *testing.T) {
	tok := token.CreateLiteralToken(token.MINUS, nil, "-", 1, 0)
	err := parser.CreateSyntaxErrorAt(tok, "Expect expression.")
	got := Format(err)
	want := "[line 1] Error at '-': Expect expression."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatSyntaxErrorAtEnd(t *testing.T) {
	tok := token.CreateToken(token.EOF, 2, 0)
	err := parser.CreateSyntaxErrorAt(tok, "Expect ';' after value.")
	got := Format(err)
	want := "[line 2] Error at end: Expect ';' after value."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatResolveError(t *testing.T) {
	tok := token.CreateLiteralToken(token.THIS, nil, "this", 4, 0)
	err := resolver.ResolveError{Token: tok, Message: "Can't use 'this' outside of a class."}
	got := Format(err)
	want := "[line 4] Error at 'this': Can't use 'this' outside of a class."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatRuntimeErrorScenarioH(t *testing.T) {
	tok := token.CreateToken(token.MINUS, 1, 0)
	err := interpreter.CreateRuntimeErrorAt(tok, "Operand must be a number.")
	got := Format(err)
	want := "[line 1] Error at '-': Operand must be a number."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatPlainErrorFallsBackToLineZero(t *testing.T) {
	got := Format(errors.New("boom"))
	want := "[line 0] Error: boom"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReportAllWritesOneLinePerError(t *testing.T) {
	var buf bytes.Buffer
	errs := []error{
		&lexer.ScanError{Line: 1, Message: "Unexpected character."},
		&lexer.ScanError{Line: 2, Message: "Unterminated string."},
	}
	ReportAll(&buf, errs)
	want := "[line 1] Error: Unexpected character.\n[line 2] Error: Unterminated string.\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
