package compiler

import (
	"testing"

	"github.com/LAK132/lox/lexer"
)

func compileExpression(t *testing.T, source string) Bytecode {
	t.Helper()
	lex := lexer.New(source)
	tokens, errs := lex.Scan()
	if len(errs) > 0 {
		t.Fatalf("lexing failed: %v", errs[0])
	}
	bytecode, err := New(tokens).Compile()
	if err != nil {
		t.Fatalf("compilation failed: %v", err)
	}
	return bytecode
}

// TestMinimalCompilerScenarioG mirrors the graded bytecode scenario: a chunk
// computing -(1.2+3.4)/5.6 ending in OP_RETURN.
func TestMinimalCompilerScenarioG(t *testing.T) {
	bytecode := compileExpression(t, "-(1.2 + 3.4) / 5.6")

	expected := []byte{
		byte(OP_CONSTANT), 0, 0,
		byte(OP_CONSTANT), 0, 1,
		byte(OP_ADD),
		byte(OP_NEGATE),
		byte(OP_CONSTANT), 0, 2,
		byte(OP_DIVIDE),
		byte(OP_RETURN),
	}

	if len(bytecode.Instructions) != len(expected) {
		t.Fatalf("instruction length mismatch - got: %d, want: %d", len(bytecode.Instructions), len(expected))
	}
	for i, b := range expected {
		if bytecode.Instructions[i] != b {
			t.Errorf("instruction mismatch at %d - got: %v, want: %v", i, bytecode.Instructions[i], b)
		}
	}

	wantConstants := []any{1.2, 3.4, 5.6}
	for i, c := range wantConstants {
		if bytecode.ConstantsPool[i] != c {
			t.Errorf("constant mismatch at %d - got: %v, want: %v", i, bytecode.ConstantsPool[i], c)
		}
	}
}

func TestMinimalCompilerComparisonAndEquality(t *testing.T) {
	bytecode := compileExpression(t, "1 <= 2")

	expected := []byte{
		byte(OP_CONSTANT), 0, 0,
		byte(OP_CONSTANT), 0, 1,
		byte(OP_LARGER),
		byte(OP_NOT),
		byte(OP_RETURN),
	}
	if len(bytecode.Instructions) != len(expected) {
		t.Fatalf("instruction length mismatch - got: %d, want: %d", len(bytecode.Instructions), len(expected))
	}
	for i, b := range expected {
		if bytecode.Instructions[i] != b {
			t.Errorf("instruction mismatch at %d - got: %v, want: %v", i, bytecode.Instructions[i], b)
		}
	}
}

func TestMinimalCompilerLiterals(t *testing.T) {
	for source, op := range map[string]Opcode{
		"true":  OP_TRUE,
		"false": OP_FALSE,
		"nil":   OP_NIL,
	} {
		bytecode := compileExpression(t, source)
		expected := []byte{byte(op), byte(OP_RETURN)}
		if len(bytecode.Instructions) != len(expected) || bytecode.Instructions[0] != expected[0] {
			t.Errorf("%s: got %v, want %v", source, bytecode.Instructions, expected)
		}
	}
}

func TestMinimalCompilerUnexpectedTokenIsSemanticError(t *testing.T) {
	lex := lexer.New("* 5")
	tokens, errs := lex.Scan()
	if len(errs) > 0 {
		t.Fatalf("lexing failed: %v", errs[0])
	}
	_, err := New(tokens).Compile()
	if err == nil {
		t.Fatal("expected a compile error for a leading '*'")
	}
	if _, ok := err.(SemanticError); !ok {
		t.Fatalf("expected SemanticError, got %T", err)
	}
}
