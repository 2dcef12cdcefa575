package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/LAK132/lox/compiler"
	"github.com/LAK132/lox/lexer"
	"github.com/LAK132/lox/parser"
	"github.com/LAK132/lox/vm"
)

// runCompiledCmd implements the bytecode-VM "runc" command.
type runCompiledCmd struct{}

func (*runCompiledCmd) Name() string { return "runc" }
func (*runCompiledCmd) Synopsis() string {
	return "Execute a Lox source file by compiling it to bytecode and running it on the VM"
}
func (*runCompiledCmd) Usage() string {
	return `runc <file>:
  Execute Lox code on the bytecode VM.
`
}
func (r *runCompiledCmd) SetFlags(f *flag.FlagSet) {}

func (r *runCompiledCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}
	filename := args[0]

	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	tokens, scanErrors := lexer.New(string(data)).Scan()
	if len(scanErrors) > 0 {
		for _, scanError := range scanErrors {
			fmt.Fprintln(os.Stderr, scanError)
		}
		return subcommands.ExitFailure
	}

	statements, parseErrors := parser.Make(tokens).Parse()
	if len(parseErrors) > 0 {
		for _, parseError := range parseErrors {
			fmt.Fprintln(os.Stderr, parseError)
		}
		return subcommands.ExitFailure
	}

	astCompiler := compiler.NewASTCompiler()
	bytecode, err := astCompiler.CompileAST(statements)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := vm.New().Run(bytecode); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
