// This file implements the minimal single-pass Pratt compiler: it parses a
// token stream directly into a Bytecode chunk, one expression at a time,
// with no intermediate AST. It handles literals, grouping, unary and binary
// arithmetic, comparison and equality, terminated by OP_RETURN. It does not
// know about variables, statements or control flow — ASTCompiler
// (ast_compiler.go) covers that richer, AST-driven extension.
package compiler

import (
	"fmt"

	"github.com/LAK132/lox/token"
)

// Precedence levels for the grammar's rules, ordered from lowest to highest.
// Rules with a higher precedence bind tighter.
const (
	PREC_NONE       = iota
	PREC_ASSIGNMENT // =
	PREC_OR         // or
	PREC_AND        // and
	PREC_EQUALITY   // == !=
	PREC_COMPARISON // < > <= >=
	PREC_TERM       // + -
	PREC_FACTOR     // * /
	PREC_UNARY      // ! -
	PREC_CALL       // . ()
	PREC_PRIMARY
)

type ParseFunc func(*Compiler)

// parseRule defines a token type's prefix/infix compiling behaviour and its
// infix binding precedence.
type parseRule struct {
	prefix     ParseFunc
	infix      ParseFunc
	precedence int
}

// Compiler is the single-pass Pratt compiler. It walks a flat token stream
// exactly once, emitting bytecode as it goes; there is no separate parse
// tree.
type Compiler struct {
	bytecode Bytecode

	readPosition int32
	totalTokens  int32
	tokens       []token.Token
	currentTok   token.Token
	nextTok      token.Token

	parsingRules map[token.TokenType]parseRule
}

// New creates a Compiler over the given token stream.
func New(tokens []token.Token) *Compiler {
	c := &Compiler{
		bytecode: Bytecode{
			Instructions:  Instructions{},
			ConstantsPool: []any{},
		},
		totalTokens: int32(len(tokens)),
		tokens:      tokens,
	}

	c.parsingRules = map[token.TokenType]parseRule{
		token.PLUS:         {prefix: nil, infix: (*Compiler).binary, precedence: PREC_TERM},
		token.MINUS:        {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: PREC_TERM},
		token.STAR:         {prefix: nil, infix: (*Compiler).binary, precedence: PREC_FACTOR},
		token.SLASH:        {prefix: nil, infix: (*Compiler).binary, precedence: PREC_FACTOR},
		token.BANG:         {prefix: (*Compiler).unary, infix: nil, precedence: PREC_NONE},
		token.EQUAL_EQUAL:  {prefix: nil, infix: (*Compiler).binary, precedence: PREC_EQUALITY},
		token.NOT_EQUAL:    {prefix: nil, infix: (*Compiler).binary, precedence: PREC_EQUALITY},
		token.LESS:         {prefix: nil, infix: (*Compiler).binary, precedence: PREC_COMPARISON},
		token.LESS_EQUAL:   {prefix: nil, infix: (*Compiler).binary, precedence: PREC_COMPARISON},
		token.LARGER:       {prefix: nil, infix: (*Compiler).binary, precedence: PREC_COMPARISON},
		token.LARGER_EQUAL: {prefix: nil, infix: (*Compiler).binary, precedence: PREC_COMPARISON},
		token.NUMBER:       {prefix: (*Compiler).number, infix: nil, precedence: PREC_NONE},
		token.TRUE:         {prefix: (*Compiler).literal, infix: nil, precedence: PREC_NONE},
		token.FALSE:        {prefix: (*Compiler).literal, infix: nil, precedence: PREC_NONE},
		token.NULL:          {prefix: (*Compiler).literal, infix: nil, precedence: PREC_NONE},
		token.LPAREN:       {prefix: (*Compiler).grouping, infix: nil, precedence: PREC_NONE},
	}

	return c
}

// Compile compiles a single expression into Bytecode, terminated by
// OP_RETURN.
func (c *Compiler) Compile() (bytecode Bytecode, err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case SemanticError:
				err = v
			case DeveloperError:
				err = v
			default:
				err = SemanticError{Message: fmt.Sprintf("%v", v)}
			}
		}
	}()

	c.parsePresedence(PREC_ASSIGNMENT)
	c.emit(OP_RETURN)
	return c.bytecode, nil
}

func (c *Compiler) getParseRule(tokenType token.TokenType) parseRule {
	rule, ok := c.parsingRules[tokenType]
	if !ok {
		return parseRule{prefix: nil, infix: nil, precedence: PREC_NONE}
	}
	return rule
}

// parsePresedence parses and compiles an expression with at least the given
// binding precedence: advance once, apply the prefix rule, then keep
// consuming infix operators whose precedence is >= p.
func (c *Compiler) parsePresedence(presedence int) {
	c.advance()

	rule := c.getParseRule(c.currentTok.TokenType)
	if rule.prefix == nil {
		panic(SemanticError{Message: "Expected expression."})
	}
	rule.prefix(c)

	for c.getParseRule(c.nextTok.TokenType).precedence >= presedence && !c.isFinished() {
		c.advance()
		rule := c.getParseRule(c.currentTok.TokenType)
		if rule.infix == nil {
			panic(SemanticError{Message: "Invalid syntax."})
		}
		rule.infix(c)
	}
}

// grouping handles a parenthesized expression: "(" expression ")".
func (c *Compiler) grouping() {
	c.parsePresedence(PREC_ASSIGNMENT)
	c.consume(token.RPAREN, "Expect ')' after expression.")
}

// binary parses and emits code for a binary operator, compiling the
// right-hand operand at one precedence level higher than its own (so that
// e.g. "1 + 2 + 3" associates left).
func (c *Compiler) binary() {
	operator := c.currentTok
	rule := c.getParseRule(operator.TokenType)
	c.parsePresedence(rule.precedence + 1)

	switch operator.TokenType {
	case token.PLUS:
		c.emit(OP_ADD)
	case token.MINUS:
		c.emit(OP_SUBTRACT)
	case token.STAR:
		c.emit(OP_MULTIPLY)
	case token.SLASH:
		c.emit(OP_DIVIDE)
	case token.EQUAL_EQUAL:
		c.emit(OP_EQUALITY)
	case token.NOT_EQUAL:
		c.emit(OP_EQUALITY)
		c.emit(OP_NOT)
	case token.LESS:
		c.emit(OP_LESS)
	case token.LARGER:
		c.emit(OP_LARGER)
	case token.LESS_EQUAL:
		// a <= b  ==  !(a > b)
		c.emit(OP_LARGER)
		c.emit(OP_NOT)
	case token.LARGER_EQUAL:
		// a >= b  ==  !(a < b)
		c.emit(OP_LESS)
		c.emit(OP_NOT)
	}
}

// unary parses and emits code for a unary operator (- or !).
func (c *Compiler) unary() {
	operatorType := c.currentTok.TokenType
	c.parsePresedence(PREC_UNARY)
	switch operatorType {
	case token.MINUS:
		c.emit(OP_NEGATE)
	case token.BANG:
		c.emit(OP_NOT)
	}
}

// number compiles a NUMBER literal into an OP_CONSTANT instruction.
func (c *Compiler) number() {
	c.addConstant(c.currentTok.Literal)
}

// literal compiles the true/false/nil keywords into their 0-operand
// opcodes.
func (c *Compiler) literal() {
	switch c.currentTok.TokenType {
	case token.TRUE:
		c.emit(OP_TRUE)
	case token.FALSE:
		c.emit(OP_FALSE)
	case token.NULL:
		c.emit(OP_NIL)
	}
}

// addConstant appends a value to the constant pool and emits an
// OP_CONSTANT instruction referencing it. More than 256 constants in a
// single chunk is a compile error.
func (c *Compiler) addConstant(value any) {
	if len(c.bytecode.ConstantsPool) >= 256 {
		panic(SemanticError{Message: "Too many constants in one chunk."})
	}
	c.bytecode.ConstantsPool = append(c.bytecode.ConstantsPool, value)
	index := len(c.bytecode.ConstantsPool) - 1
	c.emit(OP_CONSTANT, index)
}

func (c *Compiler) emit(opcode Opcode, operands ...int) {
	instruction, err := AssembleInstruction(opcode, operands...)
	if err != nil {
		panic(DeveloperError{Message: err.Error()})
	}
	c.bytecode.Instructions = append(c.bytecode.Instructions, instruction...)
	for range instruction {
		c.bytecode.Lines = append(c.bytecode.Lines, c.currentTok.Line)
	}
}

func (c *Compiler) consume(tokenType token.TokenType, errorMsg string) {
	if c.nextTok.TokenType == tokenType {
		c.advance()
		return
	}
	panic(SemanticError{Message: errorMsg})
}

func (c *Compiler) isFinished() bool {
	return c.currentTok.TokenType == token.EOF
}

// advance moves currentTok to the next token and refills nextTok, stopping
// once the token stream is exhausted.
func (c *Compiler) advance() {
	if c.isFinished() {
		return
	}
	c.currentTok = c.tokens[c.readPosition]
	c.readPosition++
	if c.readPosition < c.totalTokens {
		c.nextTok = c.tokens[c.readPosition]
	} else {
		c.nextTok = c.currentTok
	}
}
