package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/LAK132/lox/interpreter"
	"github.com/LAK132/lox/lexer"
	"github.com/LAK132/lox/parser"
	"github.com/LAK132/lox/resolver"
)

// runCmd implements the tree-walking "run" command.
type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute a Lox source file with the tree-walking interpreter" }
func (*runCmd) Usage() string {
	return `run <file>:
  Execute Lox code with the tree-walking interpreter.
`
}
func (r *runCmd) SetFlags(f *flag.FlagSet) {}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	locals, resolveErrors := resolver.New().Resolve(statements)
	if len(resolveErrors) > 0 {
		for _, resolveError := range resolveErrors {
			fmt.Fprintln(os.Stderr, resolveError)
		}
		return subcommands.ExitFailure
	}

	interp := interpreter.Make()
	for expr, depth := range locals {
		interp.Resolve(expr, depth)
	}

	if err := interp.Interpret(statements); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
