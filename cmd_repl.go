package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/google/subcommands"

	"github.com/LAK132/lox/interpreter"
	"github.com/LAK132/lox/lexer"
	"github.com/LAK132/lox/parser"
	"github.com/LAK132/lox/resolver"
)

var (
	replBlueColor = color.New(color.FgBlue)
	replRedColor  = color.New(color.FgRed)
)

// replCmd implements the tree-walking "repl" command.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive tree-walking REPL session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive REPL backed by the tree-walking interpreter.
`
}
func (r *replCmd) SetFlags(f *flag.FlagSet) {}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	replBlueColor.Println("Welcome to Lox!")

	rl, err := readline.New(">>> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to start readline: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	interp := interpreter.Make()

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Println("Good bye!")
			return subcommands.ExitSuccess
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.TrimSpace(line) == "exit" {
			fmt.Println("Good bye!")
			return subcommands.ExitSuccess
		}
		rl.SaveHistory(line)

		tokens, scanErrors := lexer.New(line).Scan()
		if len(scanErrors) > 0 {
			for _, scanError := range scanErrors {
				replRedColor.Println(scanError)
			}
			continue
		}

		statements, parseErrors := parser.Make(tokens).Parse()
		if len(parseErrors) > 0 {
			for _, parseError := range parseErrors {
				replRedColor.Println(parseError)
			}
			continue
		}

		locals, resolveErrors := resolver.New().Resolve(statements)
		if len(resolveErrors) > 0 {
			for _, resolveError := range resolveErrors {
				replRedColor.Println(resolveError)
			}
			continue
		}
		for expr, depth := range locals {
			interp.Resolve(expr, depth)
		}

		if err := interp.Interpret(statements); err != nil {
			replRedColor.Println(err)
		}
	}
}
