// Recursive descent parser
// https://en.wikipedia.org/wiki/Recursive_descent_parser
//
//	A Recursive descent parser is a top-down parser because it starts from the top
//
// grammar rule and works its way down in to the nested sub-experessions before reaching
// the leaves of the syntax tree (terminal rules)
package parser

import (
	"fmt"

	"github.com/LAK132/lox/ast"
	"github.com/LAK132/lox/token"
)

const maxArguments = 255

var comparisonTokenTypes = []token.TokenType{
	token.LARGER,
	token.LARGER_EQUAL,
	token.LESS,
	token.LESS_EQUAL,
}

var equalityTokenTypes = []token.TokenType{
	token.NOT_EQUAL,
	token.EQUAL_EQUAL,
}

var termTokenTypes = []token.TokenType{
	token.MINUS,
	token.PLUS,
}

var factorExpressionTypes = []token.TokenType{
	token.STAR,
	token.SLASH,
}

// unaryExpressionTypes are the prefix operators accepted by unary(): "!" and
// "-". A binary-only operator (STAR, PLUS, SLASH) in prefix position falls
// through to primary(), which rejects it with "Expect expression.".
var unaryExpressionTypes = []token.TokenType{
	token.BANG,
	token.MINUS,
}

// statementStartTokens are the keywords synchronize() treats as the start of
// the next statement/declaration after a parse error.
var statementStartTokens = []token.TokenType{
	token.CLASS, token.FUNC, token.VAR, token.FOR,
	token.IF, token.WHILE, token.PRINT, token.RETURN,
}

type Parser struct {
	tokens   []token.Token
	position int
}

// NOTE: The parsers position is always one unit ahead of the
// current token

// Make initializes and returns a new Parser instance over the given tokens.
func Make(tokens []token.Token) *Parser {
	return &Parser{
		tokens:   tokens,
		position: 0,
	}
}

// Print prints the AST as prettified JSON to standard output.
func (parser *Parser) Print(statements []ast.Stmt) {
	_, err := PrintASTJSON(statements)
	if err != nil {
		fmt.Println("error producing AST JSON:", err)
	}
}

// PrintToFile writes the AST for the provided statements to a .json file at the given path.
func (parser *Parser) PrintToFile(statements []ast.Stmt, path string) error {
	return WriteASTJSONToFile(statements, path)
}

// peek returns the token at the parser's current position without advancing.
func (parser *Parser) peek() token.Token {
	return parser.tokens[parser.position]
}

// previous returns the token at the parser's previous position (position-1).
func (parser *Parser) previous() token.Token {
	return parser.tokens[parser.position-1]
}

// advance increments the parser's position by one unit and returns the
// token that was just consumed.
func (parser *Parser) advance() token.Token {
	if !parser.isFinished() {
		parser.position++
	}
	return parser.previous()
}

// isFinished determines whether the parser has reached the EOF token.
func (parser *Parser) isFinished() bool {
	tok := parser.peek()
	return tok.TokenType == token.EOF
}

// checkType determines if the provided tokenType matches the TokenType
// at the parser's current position.
func (parser *Parser) checkType(tokenType token.TokenType) bool {
	if parser.isFinished() {
		return false
	}
	tok := parser.peek()
	return tok.TokenType == tokenType
}

// isMatch determines if the TokenType at the current position matches any
// of the provided tokenTypes. If a match is found the parser advances past
// it.
func (parser *Parser) isMatch(tokenTypes []token.TokenType) bool {
	for i := range tokenTypes {
		tokenType := tokenTypes[i]
		if parser.checkType(tokenType) {
			parser.advance()
			return true
		}
	}
	return false
}

// synchronize discards tokens until it reaches a likely statement boundary,
// so that a single parse error does not cascade into a string of bogus
// follow-on errors. If the offending token itself starts a statement it
// stops there; otherwise it advances past a consumed ';', or stops right
// before the next statement-starting keyword.
func (parser *Parser) synchronize() {
	for _, kind := range statementStartTokens {
		if parser.peek().TokenType == kind {
			return
		}
	}
	parser.advance()
	for !parser.isFinished() {
		if parser.previous().TokenType == token.SEMICOLON {
			return
		}
		for _, kind := range statementStartTokens {
			if parser.peek().TokenType == kind {
				return
			}
		}
		parser.advance()
	}
}

// Parse parses the entire token stream into a slice of Stmt (statement) nodes,
// continuing until the end of input. Errors during parsing are collected
// and the parser synchronizes to the next declaration to find additional
// errors where possible.
//
// Returns:
//   - []Stmt: the successfully parsed statements.
//   - []error: all errors that occurred during parsing.
func (parser *Parser) Parse() ([]ast.Stmt, []error) {
	statements := []ast.Stmt{}
	errors := []error{}

	for !parser.isFinished() {
		statement, err := parser.declaration()
		if err != nil {
			errors = append(errors, err)
			parser.synchronize()
			continue
		}
		statements = append(statements, statement)
	}

	return statements, errors
}

// declaration parses a class, function, or variable declaration, falling
// through to a general statement when none of those apply.
func (parser *Parser) declaration() (ast.Stmt, error) {
	if parser.isMatch([]token.TokenType{token.CLASS}) {
		return parser.classDeclaration()
	}
	if parser.isMatch([]token.TokenType{token.FUNC}) {
		return parser.function("function")
	}
	if parser.isMatch([]token.TokenType{token.VAR}) {
		return parser.variableDeclaration()
	}
	return parser.statement()
}

// classDeclaration parses "class IDENT ( '<' IDENT )? '{' function* '}'".
func (parser *Parser) classDeclaration() (ast.Stmt, error) {
	name, err := parser.consume(token.IDENTIFIER, "Expect class name.")
	if err != nil {
		return nil, err
	}

	var superclass *ast.Variable
	if parser.isMatch([]token.TokenType{token.LESS}) {
		superName, err := parser.consume(token.IDENTIFIER, "Expect superclass name.")
		if err != nil {
			return nil, err
		}
		v := ast.Variable{Name: superName}
		superclass = &v
	}

	if _, err := parser.consume(token.LBRACE, "Expect '{' before class body."); err != nil {
		return nil, err
	}

	methods := []ast.FunctionStmt{}
	for !parser.checkType(token.RBRACE) && !parser.isFinished() {
		method, err := parser.function("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method.(ast.FunctionStmt))
	}

	if _, err := parser.consume(token.RBRACE, "Expect '}' after class body."); err != nil {
		return nil, err
	}

	return ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}, nil
}

// function parses "IDENT '(' parameters? ')' block" for a function or
// method declaration. kind is "function" or "method" and is only used to
// produce clearer error messages.
func (parser *Parser) function(kind string) (ast.Stmt, error) {
	name, err := parser.consume(token.IDENTIFIER, "Expect "+kind+" name.")
	if err != nil {
		return nil, err
	}

	if _, err := parser.consume(token.LPAREN, "Expect '(' after "+kind+" name."); err != nil {
		return nil, err
	}

	params := []token.Token{}
	if !parser.checkType(token.RPAREN) {
		for {
			if len(params) >= maxArguments {
				tok := parser.peek()
				return nil, CreateSyntaxErrorAt(tok, fmt.Sprintf("Can't have more than %d parameters.", maxArguments))
			}
			param, err := parser.consume(token.IDENTIFIER, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !parser.isMatch([]token.TokenType{token.COMMA}) {
				break
			}
		}
	}
	if _, err := parser.consume(token.RPAREN, "Expect ')' after parameters."); err != nil {
		return nil, err
	}

	if _, err := parser.consume(token.LBRACE, "Expect '{' before "+kind+" body."); err != nil {
		return nil, err
	}
	body, err := parser.block()
	if err != nil {
		return nil, err
	}

	return ast.FunctionStmt{Name: name, Params: params, Body: body}, nil
}

// variableDeclaration parses a variable declaration statement.
func (parser *Parser) variableDeclaration() (ast.Stmt, error) {
	tok, consumeError := parser.consume(token.IDENTIFIER, "Expect variable name.")
	if consumeError != nil {
		return nil, consumeError
	}

	var initialiser ast.Expression
	if parser.isMatch([]token.TokenType{token.ASSIGN}) {
		var err error
		initialiser, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := parser.consume(token.SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}

	return ast.VarStmt{
		Name:        tok,
		Initializer: initialiser,
	}, nil
}

// statement parses a single statement.
func (parser *Parser) statement() (ast.Stmt, error) {
	if parser.isMatch([]token.TokenType{token.PRINT}) {
		return parser.printStatement()
	}
	if parser.isMatch([]token.TokenType{token.RETURN}) {
		return parser.returnStatement()
	}
	if parser.isMatch([]token.TokenType{token.FOR}) {
		return parser.forStatement()
	}
	if parser.isMatch([]token.TokenType{token.LBRACE}) {
		statements, err := parser.block()
		if err != nil {
			return nil, err
		}
		return ast.BlockStmt{Statements: statements}, nil
	}
	if parser.isMatch([]token.TokenType{token.IF}) {
		return parser.ifStatement()
	}
	if parser.isMatch([]token.TokenType{token.WHILE}) {
		return parser.whileStatement()
	}

	return parser.expressionStatement()
}

// printStatement parses "print <expression> ;".
func (parser *Parser) printStatement() (ast.Stmt, error) {
	expression, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.SEMICOLON, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return ast.PrintStmt{Expression: expression}, nil
}

// returnStatement parses "return <expression>? ;".
func (parser *Parser) returnStatement() (ast.Stmt, error) {
	keyword := parser.previous()

	var value ast.Expression
	if !parser.checkType(token.SEMICOLON) {
		var err error
		value, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := parser.consume(token.SEMICOLON, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return ast.ReturnStmt{Keyword: keyword, Value: value}, nil
}

// forStatement parses "for ( init ; cond ; inc ) body" and desugars it into
// a block: "{ init; while (cond) { body; inc; } }", with cond defaulting to
// the literal "true" when omitted.
func (parser *Parser) forStatement() (ast.Stmt, error) {
	if _, err := parser.consume(token.LPAREN, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer ast.Stmt
	var err error
	if parser.isMatch([]token.TokenType{token.SEMICOLON}) {
		initializer = nil
	} else if parser.isMatch([]token.TokenType{token.VAR}) {
		initializer, err = parser.variableDeclaration()
		if err != nil {
			return nil, err
		}
	} else {
		initializer, err = parser.expressionStatement()
		if err != nil {
			return nil, err
		}
	}

	var condition ast.Expression
	if !parser.checkType(token.SEMICOLON) {
		condition, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := parser.consume(token.SEMICOLON, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment ast.Expression
	if !parser.checkType(token.RPAREN) {
		increment, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := parser.consume(token.RPAREN, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := parser.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = ast.BlockStmt{Statements: []ast.Stmt{body, ast.ExpressionStmt{Expression: increment}}}
	}
	if condition == nil {
		condition = ast.Literal{Value: true}
	}
	body = ast.WhileStmt{Condition: condition, Body: body}

	if initializer != nil {
		body = ast.BlockStmt{Statements: []ast.Stmt{initializer, body}}
	}

	return body, nil
}

// whileStatement parses a "while ( condition ) body" statement.
func (parser *Parser) whileStatement() (ast.Stmt, error) {
	if _, err := parser.consume(token.LPAREN, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.RPAREN, "Expect ')' after condition."); err != nil {
		return nil, err
	}

	body, err := parser.statement()
	if err != nil {
		return nil, err
	}

	return ast.WhileStmt{
		Condition: condition,
		Body:      body,
	}, nil
}

// ifStatement parses "if ( condition ) then-stmt ( else else-stmt )?".
func (parser *Parser) ifStatement() (ast.Stmt, error) {
	if _, err := parser.consume(token.LPAREN, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	conditionExpr, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.RPAREN, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	thenStmt, err := parser.statement()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Stmt
	if parser.isMatch([]token.TokenType{token.ELSE}) {
		stmt, err := parser.statement()
		if err != nil {
			return nil, err
		}
		elseStmt = stmt
	}

	return ast.IfStmt{
		Condition: conditionExpr,
		Then:      thenStmt,
		Else:      elseStmt,
	}, nil
}

// expressionStatement parses a statement consisting of a single expression.
func (parser *Parser) expressionStatement() (ast.Stmt, error) {
	expression, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(token.SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return ast.ExpressionStmt{Expression: expression}, nil
}

// block parses a block statement consisting of a list of statement AST
// nodes, terminated by '}'.
func (parser *Parser) block() ([]ast.Stmt, error) {
	statements := []ast.Stmt{}

	for !parser.checkType(token.RBRACE) && !parser.isFinished() {
		stmt, err := parser.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	if _, err := parser.consume(token.RBRACE, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}

// expression is the entry point for parsing expressions.
func (parser *Parser) expression() (ast.Expression, error) {
	return parser.assignment()
}

// assignment parses an assignment expression. Only a Variable (→ Assign) or
// a Get (→ Set) expression on the left of '=' is a valid target; anything
// else is a syntax error.
func (parser *Parser) assignment() (ast.Expression, error) {
	expression, err := parser.or()
	if err != nil {
		return nil, err
	}
	if parser.isMatch([]token.TokenType{token.ASSIGN}) {
		equalsToken := parser.previous()
		value, err := parser.assignment()
		if err != nil {
			return nil, err
		}
		switch v := expression.(type) {
		case ast.Variable:
			return ast.Assign{Name: v.Name, Value: value}, nil
		case ast.Get:
			return ast.Set{Object: v.Object, Name: v.Name, Value: value}, nil
		default:
			return nil, CreateSyntaxErrorAt(equalsToken, "Invalid assignment target.")
		}
	}

	return expression, nil
}

// or parses a logical OR expression, left-associative.
func (parser *Parser) or() (ast.Expression, error) {
	expr, err := parser.and()
	if err != nil {
		return nil, err
	}

	for parser.isMatch([]token.TokenType{token.OR}) {
		op := parser.previous()
		rightExpr, err := parser.and()
		if err != nil {
			return nil, err
		}
		expr = ast.Logical{Left: expr, Operator: op, Right: rightExpr}
	}

	return expr, nil
}

// and parses a logical AND expression, left-associative.
func (parser *Parser) and() (ast.Expression, error) {
	expr, err := parser.equality()
	if err != nil {
		return nil, err
	}

	for parser.isMatch([]token.TokenType{token.AND}) {
		op := parser.previous()
		rightExpr, err := parser.equality()
		if err != nil {
			return nil, err
		}
		expr = ast.Logical{Left: expr, Operator: op, Right: rightExpr}
	}
	return expr, nil
}

// equality parses "==" and "!=" expressions.
func (parser *Parser) equality() (ast.Expression, error) {
	exp, err := parser.comparison()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(equalityTokenTypes) {
		operator := parser.previous()
		right, err := parser.comparison()
		if err != nil {
			return nil, err
		}
		exp = ast.Binary{Left: exp, Operator: operator, Right: right}
	}
	return exp, nil
}

// comparison parses "<", "<=", ">", ">=" expressions.
func (parser *Parser) comparison() (ast.Expression, error) {
	exp, err := parser.term()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(comparisonTokenTypes) {
		operator := parser.previous()
		right, err := parser.term()
		if err != nil {
			return nil, err
		}
		exp = ast.Binary{Left: exp, Operator: operator, Right: right}
	}
	return exp, nil
}

// term parses "+" and "-" expressions.
func (parser *Parser) term() (ast.Expression, error) {
	exp, err := parser.factor()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(termTokenTypes) {
		operator := parser.previous()
		right, err := parser.factor()
		if err != nil {
			return nil, err
		}
		exp = ast.Binary{Left: exp, Operator: operator, Right: right}
	}
	return exp, nil
}

// factor parses "*" and "/" expressions.
func (parser *Parser) factor() (ast.Expression, error) {
	exp, err := parser.unary()
	if err != nil {
		return nil, err
	}
	for parser.isMatch(factorExpressionTypes) {
		operator := parser.previous()
		right, err := parser.unary()
		if err != nil {
			return nil, err
		}
		exp = ast.Binary{Left: exp, Operator: operator, Right: right}
	}
	return exp, nil
}

// unary parses unary prefix expressions "!" or "-".
func (parser *Parser) unary() (ast.Expression, error) {
	if parser.isMatch(unaryExpressionTypes) {
		operator := parser.previous()
		right, err := parser.unary()
		if err != nil {
			return nil, err
		}
		return ast.Unary{Operator: operator, Right: right}, nil
	}
	return parser.call()
}

// call parses a primary expression followed by zero or more call/property
// suffixes: "primary ( '(' arguments? ')' | '.' IDENT )*".
func (parser *Parser) call() (ast.Expression, error) {
	expr, err := parser.primary()
	if err != nil {
		return nil, err
	}

	for {
		if parser.isMatch([]token.TokenType{token.LPAREN}) {
			expr, err = parser.finishCall(expr)
			if err != nil {
				return nil, err
			}
		} else if parser.isMatch([]token.TokenType{token.DOT}) {
			name, err := parser.consume(token.IDENTIFIER, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = ast.Get{Object: expr, Name: name}
		} else {
			break
		}
	}

	return expr, nil
}

// finishCall parses the argument list and closing ')' of a call expression,
// given the already-parsed callee.
func (parser *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	arguments := []ast.Expression{}
	if !parser.checkType(token.RPAREN) {
		for {
			if len(arguments) >= maxArguments {
				tok := parser.peek()
				return nil, CreateSyntaxErrorAt(tok, fmt.Sprintf("Can't have more than %d arguments.", maxArguments))
			}
			arg, err := parser.expression()
			if err != nil {
				return nil, err
			}
			arguments = append(arguments, arg)
			if !parser.isMatch([]token.TokenType{token.COMMA}) {
				break
			}
		}
	}

	paren, err := parser.consume(token.RPAREN, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}

	return ast.Call{Callee: callee, Paren: paren, Arguments: arguments}, nil
}

// primary parses the most basic forms of expressions: literals, grouping,
// identifiers, "this" and "super.method".
func (parser *Parser) primary() (ast.Expression, error) {
	if parser.isMatch([]token.TokenType{token.FALSE}) {
		return ast.Literal{Value: false}, nil
	}
	if parser.isMatch([]token.TokenType{token.NULL}) {
		return ast.Literal{Value: nil}, nil
	}
	if parser.isMatch([]token.TokenType{token.TRUE}) {
		return ast.Literal{Value: true}, nil
	}

	if parser.isMatch([]token.TokenType{token.NUMBER, token.STRING}) {
		return ast.Literal{Value: parser.previous().Literal}, nil
	}

	if parser.isMatch([]token.TokenType{token.THIS}) {
		return ast.This{Keyword: parser.previous()}, nil
	}

	if parser.isMatch([]token.TokenType{token.SUPER}) {
		keyword := parser.previous()
		if _, err := parser.consume(token.DOT, "Expect '.' after 'super'."); err != nil {
			return nil, err
		}
		method, err := parser.consume(token.IDENTIFIER, "Expect superclass method name.")
		if err != nil {
			return nil, err
		}
		return ast.Super{Keyword: keyword, Method: method}, nil
	}

	if parser.isMatch([]token.TokenType{token.IDENTIFIER}) {
		return ast.Variable{Name: parser.previous()}, nil
	}

	if parser.isMatch([]token.TokenType{token.LPAREN}) {
		expr, err := parser.expression()
		if err != nil {
			return nil, err
		}
		if _, err := parser.consume(token.RPAREN, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return ast.Grouping{Expression: expr}, nil
	}

	currentToken := parser.peek()
	return nil, CreateSyntaxErrorAt(currentToken, "Expect expression.")
}

// consume advances past the current token if it matches tokenType,
// otherwise it produces a SyntaxError anchored at the current token.
func (parser *Parser) consume(tokenType token.TokenType, errorMessage string) (token.Token, error) {
	if parser.checkType(tokenType) {
		return parser.advance(), nil
	}
	currentToken := parser.peek()
	return token.Token{}, CreateSyntaxErrorAt(currentToken, errorMessage)
}
