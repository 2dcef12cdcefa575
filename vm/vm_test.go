package vm

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/LAK132/lox/compiler"
	"github.com/LAK132/lox/lexer"
	"github.com/LAK132/lox/parser"
)

// captureStdout temporarily swaps os.Stdout so tests can assert on what a
// VM run printed.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	original := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = original

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func compileMinimal(t *testing.T, source string) compiler.Bytecode {
	t.Helper()
	lex := lexer.New(source)
	tokens, errs := lex.Scan()
	if len(errs) > 0 {
		t.Fatalf("lexing failed: %v", errs[0])
	}
	bytecode, err := compiler.New(tokens).Compile()
	if err != nil {
		t.Fatalf("compilation failed: %v", err)
	}
	return bytecode
}

// TestVMScenarioG mirrors the graded bytecode scenario: running the
// compiled form of -(1.2+3.4)/5.6 prints the single negative result.
func TestVMScenarioG(t *testing.T) {
	bytecode := compileMinimal(t, "-(1.2 + 3.4) / 5.6")

	output := captureStdout(t, func() {
		vm := New()
		if err := vm.Run(bytecode); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	want := "-0.8214285714285714\n"
	if output != want {
		t.Errorf("got: %q, want: %q", output, want)
	}
}

func TestVMConstantPushOrder(t *testing.T) {
	bytecode := compiler.Bytecode{
		Instructions: []byte{
			byte(compiler.OP_CONSTANT), 0, 0,
			byte(compiler.OP_CONSTANT), 0, 1,
			byte(compiler.OP_ADD),
			byte(compiler.OP_RETURN),
		},
		ConstantsPool: []any{float64(5), float64(1)},
		Lines:         []int32{1, 1, 1, 1, 1, 1, 1, 1},
	}

	output := captureStdout(t, func() {
		vm := New()
		if err := vm.Run(bytecode); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	if output != "6\n" {
		t.Errorf("got: %q, want: %q", output, "6\n")
	}
}

func TestVMArithmeticTypeMismatchIsRuntimeError(t *testing.T) {
	bytecode := compiler.Bytecode{
		Instructions: []byte{
			byte(compiler.OP_CONSTANT), 0, 0,
			byte(compiler.OP_TRUE),
			byte(compiler.OP_ADD),
			byte(compiler.OP_RETURN),
		},
		ConstantsPool: []any{float64(5)},
		Lines:         []int32{7, 7, 7, 7, 7, 7},
	}

	vm := New()
	err := vm.Run(bytecode)
	if err == nil {
		t.Fatal("expected a runtime error for adding a number to a boolean")
	}
	runtimeErr, ok := err.(RuntimeError)
	if !ok {
		t.Fatalf("expected RuntimeError, got %T", err)
	}
	if runtimeErr.Line != 7 {
		t.Errorf("expected the error anchored at line 7, got %d", runtimeErr.Line)
	}
}

func TestVMNegateNonNumberIsRuntimeError(t *testing.T) {
	bytecode := compiler.Bytecode{
		Instructions: []byte{
			byte(compiler.OP_FALSE),
			byte(compiler.OP_NEGATE),
			byte(compiler.OP_RETURN),
		},
		ConstantsPool: []any{},
		Lines:         []int32{3, 3, 3},
	}

	vm := New()
	if err := vm.Run(bytecode); err == nil {
		t.Fatal("expected a runtime error for negating a boolean")
	}
}

func TestVMComparisonAndEquality(t *testing.T) {
	bytecode := compileMinimal(t, "1 <= 2")

	output := captureStdout(t, func() {
		vm := New()
		if err := vm.Run(bytecode); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	if output != "true\n" {
		t.Errorf("got: %q, want: %q", output, "true\n")
	}
}

// TestVMGlobalsAndLocals exercises the ASTCompiler extension's globals,
// locals and control-flow opcodes (OP_GET/SET_GLOBAL, OP_GET/SET_LOCAL,
// OP_JUMP, OP_JUMP_IF_FALSE, OP_SCOPE_EXIT) end to end through the lexer,
// parser and ASTCompiler.
func TestVMGlobalsAndLocals(t *testing.T) {
	source := `
var total = 0;
var i = 0;
while (i < 3) {
	total = total + i;
	i = i + 1;
}
print total;
`
	output := runExtensionSource(t, source)
	if output != "3\n" {
		t.Errorf("got: %q, want: %q", output, "3\n")
	}
}

func TestVMIfElse(t *testing.T) {
	source := `
var x = 10;
if (x > 5) {
	print 1;
} else {
	print 0;
}
`
	output := runExtensionSource(t, source)
	if output != "1\n" {
		t.Errorf("got: %q, want: %q", output, "1\n")
	}
}

// TestVMLocalsInBlock exercises OP_GET_LOCAL/OP_SET_LOCAL/OP_SCOPE_EXIT
// directly: a block declares a local, reads and writes it, then the block
// exits and its slot is popped.
func TestVMLocalsInBlock(t *testing.T) {
	source := `
{
	var a = 1;
	a = a + 1;
	print a;
}
`
	output := runExtensionSource(t, source)
	if output != "2\n" {
		t.Errorf("got: %q, want: %q", output, "2\n")
	}
}

// runExtensionSource runs source through the lexer, parser and ASTCompiler
// extension, then executes the resulting bytecode on a fresh VM, returning
// whatever it printed to stdout.
func runExtensionSource(t *testing.T, source string) string {
	t.Helper()

	lex := lexer.New(source)
	tokens, errs := lex.Scan()
	if len(errs) > 0 {
		t.Fatalf("lexing failed: %v", errs[0])
	}

	p := parser.Make(tokens)
	statements, parseErrors := p.Parse()
	if len(parseErrors) > 0 {
		t.Fatalf("parsing failed: %v", parseErrors[0])
	}

	astCompiler := compiler.NewASTCompiler()
	bytecode, err := astCompiler.CompileAST(statements)
	if err != nil {
		t.Fatalf("compilation failed: %v", err)
	}

	return captureStdout(t, func() {
		vm := New()
		if err := vm.Run(bytecode); err != nil {
			t.Fatalf("unexpected runtime error: %v", err)
		}
	})
}
