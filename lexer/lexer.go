package lexer

import (
	"strconv"

	"github.com/LAK132/lox/token"
)

func isLetter(char rune) bool {
	return rune('a') <= char && char <= rune('z') || rune('A') <= char && char <= rune('Z') || char == rune('_')
}

func isDigit(char rune) bool {
	return rune('0') <= char && char <= rune('9')
}

func isAlphaNumeric(char rune) bool {
	return isLetter(char) || isDigit(char)
}

// ScanError reports a malformed lexeme encountered while scanning. It carries
// the line the lexeme started on and a human-readable message, matching the
// shape of parser.SyntaxError and interpreter.RuntimeError.
type ScanError struct {
	Line    int32
	Message string
}

func (e *ScanError) Error() string {
	return e.Message
}

// DiagnosticInfo implements diagnostics.Positioned. A scan error never has
// an offending token (scanning hasn't produced one yet), so it always
// renders as a pure line-only diagnostic.
func (e *ScanError) DiagnosticInfo() (int32, *token.Token, string) {
	return e.Line, nil, e.Message
}

// Lexer represents a lexical scanner for processing input text into tokens.
// It maintains the current scanning state, including the position within the
// input, the current character, and metadata for line/column tracking.
// The Lexer also records tokens and errors encountered during scanning.
type Lexer struct {
	// rune slice of the input string being scanned.
	characters []rune

	// Total number of runes in the input.
	totalChars int

	// Stores the sequence of tokens produced during lexing.
	tokens []token.Token

	// The index of the character that was previously read
	position int

	// The current character being examined.
	currentChar rune

	// The index of the next position where the next character
	// will be read
	readPosition int

	// Tracks the number of lines processed (incremented on newline).
	lineCount int32

	// Tracks the character's position within the current line.
	// Gets reset on every new line back to 0
	column int

	// Stores every scanning error encountered. Scanning never aborts on
	// error; it records the error positionally and keeps advancing, so a
	// single Scan() call can surface every bad lexeme in a source file.
	errors []error
}

// New initializes and returns a new Lexer instance for the given source text.
func New(input string) *Lexer {
	lexer := &Lexer{
		characters: []rune(input),
		lineCount:  1,
	}
	lexer.totalChars = len(lexer.characters)
	lexer.readChar()
	return lexer
}

// advance moves the lexer's reading position forward by one character.
func (lexer *Lexer) advance() {
	lexer.position = lexer.readPosition
	lexer.readPosition++
	lexer.column++
}

// readChar reads the character at the Lexer's readPosition. If there are no
// more characters to read, it sets the current character to rune(0).
func (lexer *Lexer) readChar() {
	if lexer.readPosition >= lexer.totalChars {
		lexer.currentChar = rune(0)
	} else {
		lexer.currentChar = lexer.characters[lexer.readPosition]
	}
	lexer.advance()
}

// peek returns the character at the Lexer's readPosition without consuming it.
func (lexer *Lexer) peek() rune {
	if lexer.readPosition >= lexer.totalChars {
		return rune(0)
	}
	return lexer.characters[lexer.readPosition]
}

// handleComment consumes a "//" line comment through to the next newline
// (exclusive) or end of input.
func (lexer *Lexer) handleComment() {
	for lexer.currentChar != rune('\n') && lexer.currentChar != rune(0) {
		lexer.readChar()
	}
}

// handleNumber scans a sequence of digits (and at most one decimal point,
// itself followed by at least one digit) and creates a NUMBER token.
func (lexer *Lexer) handleNumber() error {
	initPos := lexer.position

	for isDigit(lexer.currentChar) {
		lexer.readChar()
	}

	if lexer.currentChar == '.' && isDigit(lexer.peek()) {
		lexer.readChar()
		for isDigit(lexer.currentChar) {
			lexer.readChar()
		}
	}

	text := string(lexer.characters[initPos:lexer.position])
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return &ScanError{Line: lexer.lineCount, Message: "Invalid number '" + text + "'."}
	}
	lexer.tokens = append(lexer.tokens, token.CreateLiteralToken(token.NUMBER, value, text, lexer.lineCount, lexer.column))
	return nil
}

// handleIdentifier processes a user identifier or a language keyword.
func (lexer *Lexer) handleIdentifier() {
	initPos := lexer.position

	for isAlphaNumeric(lexer.currentChar) {
		lexer.readChar()
	}

	lexeme := string(lexer.characters[initPos:lexer.position])
	var tokenType token.TokenType = token.IDENTIFIER
	if keywordType, exists := token.KeyWords[lexeme]; exists {
		tokenType = keywordType
	}
	lexer.tokens = append(lexer.tokens, token.CreateLiteralToken(tokenType, nil, lexeme, lexer.lineCount, lexer.column))
}

// handleStringLiteral processes string literals in the input. No escape
// processing is performed — the literal value is the raw inner text.
func (lexer *Lexer) handleStringLiteral() error {
	startLine := lexer.lineCount
	lexer.readChar() // consume the opening quote
	initPos := lexer.position

	for lexer.currentChar != '"' && lexer.currentChar != rune(0) {
		if lexer.currentChar == '\n' {
			lexer.lineCount++
			lexer.column = 0
		}
		lexer.readChar()
	}

	if lexer.currentChar == rune(0) {
		return &ScanError{Line: startLine, Message: "Unterminated string."}
	}

	stringLiteral := string(lexer.characters[initPos:lexer.position])
	lexer.tokens = append(lexer.tokens, token.CreateLiteralToken(token.STRING, stringLiteral, stringLiteral, startLine, lexer.column))
	// consume the closing quote
	lexer.readChar()
	return nil
}

// isMatch checks whether the current character equals expected and, if so,
// consumes it.
func (lexer *Lexer) isMatch(expected rune) bool {
	if lexer.currentChar != expected {
		return false
	}
	lexer.readChar()
	return true
}

// isWhiteSpace determines whether a rune is whitespace (' ', '\r', '\t') or a
// newline, updating line/column bookkeeping for the latter.
func (lexer *Lexer) isWhiteSpace(char rune) bool {
	if char == rune(' ') || char == rune('\r') || char == rune('\t') {
		return true
	}
	if char == rune('\n') {
		lexer.lineCount++
		lexer.column = 0
		return true
	}
	return false
}

// skipWhiteSpace advances the lexer past any run of whitespace.
func (lexer *Lexer) skipWhiteSpace() {
	for lexer.isWhiteSpace(lexer.currentChar) {
		lexer.readChar()
	}
}

// createToken processes the current character and appends zero or one
// tokens (or a scan error) to the lexer's state.
func (lexer *Lexer) createToken() {
	lexer.skipWhiteSpace()
	if lexer.currentChar == rune(0) {
		return
	}

	switch lexer.currentChar {
	case rune('('):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.LPAREN, lexer.lineCount, lexer.column))
	case rune(')'):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.RPAREN, lexer.lineCount, lexer.column))
	case rune('{'):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.LBRACE, lexer.lineCount, lexer.column))
	case rune('}'):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.RBRACE, lexer.lineCount, lexer.column))
	case rune(';'):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.SEMICOLON, lexer.lineCount, lexer.column))
	case rune(','):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.COMMA, lexer.lineCount, lexer.column))
	case rune('.'):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.DOT, lexer.lineCount, lexer.column))
	case rune('*'):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.STAR, lexer.lineCount, lexer.column))
	case rune('+'):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.PLUS, lexer.lineCount, lexer.column))
	case rune('-'):
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.MINUS, lexer.lineCount, lexer.column))
	case rune('/'):
		if lexer.peek() == '/' {
			lexer.handleComment()
			return
		}
		lexer.tokens = append(lexer.tokens, token.CreateToken(token.SLASH, lexer.lineCount, lexer.column))
	case rune('='):
		lexer.readChar()
		if lexer.isMatch(rune('=')) {
			lexer.tokens = append(lexer.tokens, token.CreateToken(token.EQUAL_EQUAL, lexer.lineCount, lexer.column))
		} else {
			lexer.tokens = append(lexer.tokens, token.CreateToken(token.ASSIGN, lexer.lineCount, lexer.column))
		}
		return
	case rune('!'):
		lexer.readChar()
		if lexer.isMatch(rune('=')) {
			lexer.tokens = append(lexer.tokens, token.CreateToken(token.NOT_EQUAL, lexer.lineCount, lexer.column))
		} else {
			lexer.tokens = append(lexer.tokens, token.CreateToken(token.BANG, lexer.lineCount, lexer.column))
		}
		return
	case rune('<'):
		lexer.readChar()
		if lexer.isMatch(rune('=')) {
			lexer.tokens = append(lexer.tokens, token.CreateToken(token.LESS_EQUAL, lexer.lineCount, lexer.column))
		} else {
			lexer.tokens = append(lexer.tokens, token.CreateToken(token.LESS, lexer.lineCount, lexer.column))
		}
		return
	case rune('>'):
		lexer.readChar()
		if lexer.isMatch(rune('=')) {
			lexer.tokens = append(lexer.tokens, token.CreateToken(token.LARGER_EQUAL, lexer.lineCount, lexer.column))
		} else {
			lexer.tokens = append(lexer.tokens, token.CreateToken(token.LARGER, lexer.lineCount, lexer.column))
		}
		return
	case rune('"'):
		if err := lexer.handleStringLiteral(); err != nil {
			lexer.errors = append(lexer.errors, err)
		}
		return
	default:
		if isLetter(lexer.currentChar) {
			lexer.handleIdentifier()
			return
		} else if isDigit(lexer.currentChar) {
			if err := lexer.handleNumber(); err != nil {
				lexer.errors = append(lexer.errors, err)
			}
			return
		}
		lexer.errors = append(lexer.errors, &ScanError{
			Line:    lexer.lineCount,
			Message: "Unexpected character.",
		})
	}

	lexer.readChar()
}

// Scan performs lexical analysis on the input and returns every token found,
// plus every scan error encountered. Unlike a fail-fast scanner, Scan never
// aborts on the first malformed lexeme: it records the error and continues,
// so a single pass reports every problem in a source file.
func (lexer *Lexer) Scan() ([]token.Token, []error) {
	for lexer.currentChar != rune(0) {
		lexer.createToken()
	}
	lexer.tokens = append(lexer.tokens, token.CreateToken(token.EOF, lexer.lineCount, lexer.column))
	return lexer.tokens, lexer.errors
}
