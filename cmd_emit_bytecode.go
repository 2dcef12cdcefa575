package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"

	"github.com/LAK132/lox/compiler"
	"github.com/LAK132/lox/lexer"
	"github.com/LAK132/lox/parser"
)

// dumpBytecodeCmd implements the "dump" command: compile a source file and
// write out its bytecode, either disassembled as text or as raw hex.
type dumpBytecodeCmd struct {
	diassemble   bool
	dumpBytecode bool
}

func (*dumpBytecodeCmd) Name() string { return "dump" }
func (*dumpBytecodeCmd) Synopsis() string {
	return "Compile a source file and dump its bytecode to disk"
}
func (*dumpBytecodeCmd) Usage() string {
	return `dump <file>`
}

func (cmd *dumpBytecodeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.diassemble, "diassemble", true, "diassemble the bytecode and dump it to a text file.")
	f.BoolVar(&cmd.dumpBytecode, "dumpBytecode", true, "Writes the encoded bytecode as hexadecimal to a file")
}

func (cmd *dumpBytecodeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}
	sourceFile := args[0]
	data, err := os.ReadFile(sourceFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file:\n\t%v\n", err)
		return subcommands.ExitFailure
	}

	tokens, scanErrors := lexer.New(string(data)).Scan()
	if len(scanErrors) > 0 {
		fmt.Fprintf(os.Stderr, "💥 Lexing error:\n")
		for _, scanError := range scanErrors {
			fmt.Fprintf(os.Stderr, "\t%v\n", scanError)
		}
		return subcommands.ExitFailure
	}

	statements, parseErrs := parser.Make(tokens).Parse()
	if len(parseErrs) > 0 {
		fmt.Fprintf(os.Stderr, "💥 Parsing error:\n")
		for _, pErr := range parseErrs {
			fmt.Fprintf(os.Stderr, "\t%v\n", pErr)
		}
		return subcommands.ExitFailure
	}

	astCompiler := compiler.NewASTCompiler()
	if _, err := astCompiler.CompileAST(statements); err != nil {
		fmt.Fprintf(os.Stderr, "💥 Compilation error:\n\t%v\n", err)
		return subcommands.ExitFailure
	}

	fileName := strings.TrimSuffix(sourceFile, filepath.Ext(sourceFile))

	if cmd.diassemble {
		if _, err := astCompiler.DiassembleBytecode(true, fileName); err != nil {
			fmt.Fprintf(os.Stderr, "💥 Bytecode diassemble error:\n\t%s\n", err.Error())
			return subcommands.ExitFailure
		}
	}

	if cmd.dumpBytecode {
		if err := astCompiler.DumpBytecode(fileName); err != nil {
			fmt.Fprintf(os.Stderr, "💥 Dump bytecode error:\n\t%s\n", err.Error())
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess
}
