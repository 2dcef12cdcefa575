package token

import (
	"testing"
)

func TestCreateToken(t *testing.T) {
	tests := []struct {
		name      string
		tokenType TokenType
		line      int32
		column    int
		wantLex   string
	}{
		{name: "Create ASSIGN token", tokenType: ASSIGN, line: 1, column: 4, wantLex: "="},
		{name: "Create LPAREN token", tokenType: LPAREN, line: 2, column: 0, wantLex: "("},
		{name: "Create EOF token", tokenType: EOF, line: 9, column: 0, wantLex: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CreateToken(tt.tokenType, tt.line, tt.column)
			if got.TokenType != tt.tokenType {
				t.Errorf("TokenType = %v, want %v", got.TokenType, tt.tokenType)
			}
			if got.Lexeme != tt.wantLex {
				t.Errorf("Lexeme = %q, want %q", got.Lexeme, tt.wantLex)
			}
			if got.Line != tt.line || got.Column != tt.column {
				t.Errorf("position = (%d,%d), want (%d,%d)", got.Line, got.Column, tt.line, tt.column)
			}
		})
	}
}

func TestCreateLiteralToken(t *testing.T) {
	tok := CreateLiteralToken(NUMBER, 42.0, "42", 1, 0)
	if tok.TokenType != NUMBER {
		t.Fatalf("TokenType = %v, want NUMBER", tok.TokenType)
	}
	if tok.Literal != 42.0 {
		t.Fatalf("Literal = %v, want 42.0", tok.Literal)
	}
	if tok.Lexeme != "42" {
		t.Fatalf("Lexeme = %q, want %q", tok.Lexeme, "42")
	}
}

func TestKeyWordsTable(t *testing.T) {
	for word, want := range map[string]TokenType{
		"and": AND, "class": CLASS, "else": ELSE, "false": FALSE,
		"for": FOR, "fun": FUNC, "if": IF, "nil": NULL, "or": OR,
		"print": PRINT, "return": RETURN, "super": SUPER, "this": THIS,
		"true": TRUE, "var": VAR, "while": WHILE,
	} {
		if got, ok := KeyWords[word]; !ok || got != want {
			t.Errorf("KeyWords[%q] = %v, %v; want %v, true", word, got, ok, want)
		}
	}
}

func TestTokenString(t *testing.T) {
	tok := CreateLiteralToken(IDENTIFIER, nil, "myVar", 1, 0)
	want := `Token {Type: IDENTIFIER, Value: "myVar"}`
	if got := tok.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
