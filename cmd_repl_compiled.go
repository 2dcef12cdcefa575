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

	"github.com/LAK132/lox/compiler"
	"github.com/LAK132/lox/lexer"
	"github.com/LAK132/lox/parser"
	"github.com/LAK132/lox/token"
	"github.com/LAK132/lox/vm"
)

var (
	replCGreenColor  = color.New(color.FgGreen)
	replCRedColor    = color.New(color.FgRed)
	replCCyanColor   = color.New(color.FgCyan)
	replCYellowColor = color.New(color.FgYellow)
)

const replCompiledBanner = `
██╗      ██████╗ ██╗  ██╗
██║     ██╔═══██╗╚██╗██╔╝
██║     ██║   ██║ ╚███╔╝
██║     ██║   ██║ ██╔██╗
███████╗╚██████╔╝██╔╝ ██╗
╚══════╝ ╚═════╝ ╚═╝  ╚═╝
`

type replCompiledCmd struct {
	diassemble   bool
	dumpBytecode bool
	dumpAST      bool
}

func (*replCompiledCmd) Name() string { return "replc" }
func (*replCompiledCmd) Synopsis() string {
	return "Start an interactive REPL session backed by the bytecode compiler and VM"
}
func (*replCompiledCmd) Usage() string {
	return `replc`
}

func (cmd *replCompiledCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.diassemble, "diassemble", false, "diassemble the bytecode and dump it to a .dnic file")
	f.BoolVar(&cmd.dumpBytecode, "dumpBytecode", false, "Writes the encoded bytecode as hexadecimal to a .nic file")
	f.BoolVar(&cmd.dumpAST, "dumpAST", false, "Writes the AST as JSON to a file")
	f.BoolVar(&cmd.diassemble, "di", false, "Shorthand for diassemble.")
	f.BoolVar(&cmd.dumpBytecode, "du", false, "Shorthand for dumpBytecode")
	f.BoolVar(&cmd.dumpAST, "da", false, "Shorthand for dumpAST.")
}

func (cmd *replCompiledCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	replCCyanColor.Println("Welcome to the compiled Lox REPL!")
	replCGreenColor.Println(replCompiledBanner)

	rl, err := readline.New(">>> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to start readline: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	astCompiler := compiler.NewASTCompiler()
	machine := vm.New()
	var buffer strings.Builder

	for {
		if buffer.Len() == 0 {
			rl.SetPrompt(">>> ")
		} else {
			rl.SetPrompt("... ")
		}

		line, err := rl.Readline()
		if err != nil {
			fmt.Println("Good bye!")
			return subcommands.ExitSuccess
		}

		if strings.TrimSpace(line) == "exit" && buffer.Len() == 0 {
			fmt.Println("Good bye!")
			return subcommands.ExitSuccess
		}
		rl.SaveHistory(line)

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)
		source := buffer.String()

		tokens, scanErrors := lexer.New(source).Scan()
		if len(scanErrors) > 0 {
			for _, scanError := range scanErrors {
				replCRedColor.Println(scanError)
			}
			buffer.Reset()
			continue
		}

		if !isInputReady(tokens) {
			continue
		}

		p := parser.Make(tokens)
		statements, parseErrs := p.Parse()
		if len(parseErrs) > 0 {
			// If all parse errors are syntax errors that occur at the position of the EOF token,
			// it means that the user has not finished typing their input yet.
			// We should wait for more input instead of showing an error.
			if allParseErrorsAtEOF(parseErrs, tokens[len(tokens)-1]) {
				continue
			}
			for _, pErr := range parseErrs {
				replCRedColor.Println(pErr)
			}
			buffer.Reset()
			continue
		}

		// astCompiler keeps one chunk for the whole session: each input's
		// statements are appended to it, constants and global names included.
		bytecode, err := astCompiler.CompileAST(statements)
		if err != nil {
			replCRedColor.Println(err)
			buffer.Reset()
			continue
		}

		if cmd.diassemble {
			if _, err := astCompiler.DiassembleBytecode(true, ""); err != nil {
				fmt.Fprintf(os.Stderr, "💥 Bytecode diassemble error:\n\t%s\n", err.Error())
				continue
			}
		}
		if cmd.dumpBytecode {
			if err := astCompiler.DumpBytecode(""); err != nil {
				fmt.Fprintf(os.Stderr, "💥 Dump bytecode error:\n\t%s\n", err.Error())
			}
		}
		if cmd.dumpAST {
			if err := p.PrintToFile(statements, "ast.json"); err != nil {
				fmt.Fprintf(os.Stderr, "💥 Dump AST error:\n\t%s\n", err.Error())
				continue
			}
		}

		if runtimeErr := machine.Run(bytecode); runtimeErr != nil {
			replCYellowColor.Println(runtimeErr)
		}
		buffer.Reset()
	}
}

// isInputReady checks if the input is ready to be parsed and executed. It checks for balanced
// braces, and also checks if the last non-EOF token is an operator or a keyword that expects
// more input.
//
// For example, if the user types `if (x > 5) {`, the REPL should wait for more input until the
// user finishes the block with a `}`.
func isInputReady(tokens []token.Token) bool {
	braceBalance := 0
	for _, tok := range tokens {
		switch tok.TokenType {
		case token.LBRACE:
			braceBalance++
		case token.RBRACE:
			braceBalance--
		}
	}

	if braceBalance > 0 {
		return false
	}

	last := lastNonEOF(tokens)
	if last == nil {
		return true
	}

	switch last.TokenType {
	case token.ASSIGN,
		token.PLUS,
		token.MINUS,
		token.STAR,
		token.SLASH,
		token.BANG,
		token.EQUAL_EQUAL,
		token.NOT_EQUAL,
		token.LESS,
		token.LESS_EQUAL,
		token.LARGER,
		token.LARGER_EQUAL,
		token.COMMA,
		token.LPAREN,
		token.LBRACE,
		token.IF,
		token.ELSE,
		token.WHILE,
		token.FOR,
		token.FUNC,
		token.RETURN,
		token.VAR,
		token.AND,
		token.OR,
		token.PRINT:
		return false
	}

	return true
}

// lastNonEOF returns the last non-EOF token from the list of tokens. If all tokens are EOF, it
// returns nil.
func lastNonEOF(tokens []token.Token) *token.Token {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].TokenType != token.EOF {
			return &tokens[i]
		}
	}
	return nil
}

// allParseErrorsAtEOF checks if all parse errors are syntax errors that occur at the position
// of the EOF token.
func allParseErrorsAtEOF(parseErrs []error, eof token.Token) bool {
	for _, parseErr := range parseErrs {
		syntaxErr, ok := parseErr.(parser.SyntaxError)
		if !ok {
			return false
		}
		if syntaxErr.Line != eof.Line || syntaxErr.Column != eof.Column {
			return false
		}
	}
	return len(parseErrs) > 0
}
