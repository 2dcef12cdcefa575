package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LAK132/lox/compiler"
	"github.com/LAK132/lox/diagnostics"
	"github.com/LAK132/lox/interpreter"
	"github.com/LAK132/lox/lexer"
	"github.com/LAK132/lox/parser"
	"github.com/LAK132/lox/resolver"
	"github.com/LAK132/lox/vm"
)

// captureStdout temporarily swaps os.Stdout so a scenario's printed output
// can be asserted on.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	original := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = original

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

// runTree runs source through the full tree-walking pipeline: scanner,
// parser, resolver, interpreter.
func runTree(t *testing.T, source string) (string, error) {
	t.Helper()

	tokens, scanErrors := lexer.New(source).Scan()
	require.Empty(t, scanErrors)

	statements, parseErrors := parser.Make(tokens).Parse()
	require.Empty(t, parseErrors)

	locals, resolveErrors := resolver.New().Resolve(statements)
	require.Empty(t, resolveErrors)

	interp := interpreter.Make()
	for expr, depth := range locals {
		interp.Resolve(expr, depth)
	}

	var runErr error
	output := captureStdout(t, func() {
		runErr = interp.Interpret(statements)
	})
	return output, runErr
}

// Scenario A: operator precedence.
func TestScenarioA_OperatorPrecedence(t *testing.T) {
	output, err := runTree(t, "print 1 + 2 * 3;")
	require.NoError(t, err)
	assert.Equal(t, "7\n", output)
}

// Scenario B: string concatenation.
func TestScenarioB_StringConcatenation(t *testing.T) {
	output, err := runTree(t, `var a = "Hi"; var b = " there"; print a + b;`)
	require.NoError(t, err)
	assert.Equal(t, "Hi there\n", output)
}

// Scenario C: a for loop desugared into a while loop accumulates correctly.
func TestScenarioC_ForLoopAccumulation(t *testing.T) {
	output, err := runTree(t, "var a=0; for (var i=0; i<5; i=i+1) a = a+i; print a;")
	require.NoError(t, err)
	assert.Equal(t, "10\n", output)
}

// Scenario D: a closure keeps its own private copy of a captured variable
// across repeated calls.
func TestScenarioD_ClosureCapture(t *testing.T) {
	source := `fun mk(){var c=0; fun f(){c=c+1; return c;} return f;} var g=mk(); print g(); print g(); print g();`
	output, err := runTree(t, source)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", output)
}

// Scenario E: a subclass with no methods of its own resolves an inherited
// method through its superclass at call time.
func TestScenarioE_InheritedMethod(t *testing.T) {
	source := `class A{greet(){print "hi";}} class B<A{} B().greet();`
	output, err := runTree(t, source)
	require.NoError(t, err)
	assert.Equal(t, "hi\n", output)
}

// Scenario F: a constructor stores its argument onto the new instance.
func TestScenarioF_ConstructorFieldAssignment(t *testing.T) {
	source := `class A{init(n){this.n=n;}} print A(7).n;`
	output, err := runTree(t, source)
	require.NoError(t, err)
	assert.Equal(t, "7\n", output)
}

// Scenario G: the minimal bytecode compiler and VM agree on
// -(1.2 + 3.4) / 5.6.
func TestScenarioG_BytecodeArithmetic(t *testing.T) {
	tokens, scanErrors := lexer.New("-(1.2 + 3.4) / 5.6").Scan()
	require.Empty(t, scanErrors)

	bytecode, err := compiler.New(tokens).Compile()
	require.NoError(t, err)

	output := captureStdout(t, func() {
		require.NoError(t, vm.New().Run(bytecode))
	})
	assert.Equal(t, "-0.8214285714285714\n", output)
}

// Scenario H: negating a non-number reports a single diagnostic anchored
// to the '-' operator.
func TestScenarioH_NegateTypeError(t *testing.T) {
	_, err := runTree(t, `-"a";`)
	require.Error(t, err)
	assert.Equal(t, "[line 1] Error at '-': Operand must be a number.", diagnostics.Format(err))
}
