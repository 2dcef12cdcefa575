package lexer

import (
	"testing"

	"github.com/LAK132/lox/token"
)

func kinds(tokens []token.Token) []token.TokenType {
	out := make([]token.TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.TokenType
	}
	return out
}

func assertKinds(t *testing.T, got []token.TokenType, want []token.TokenType) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanPunctuationAndOperators(t *testing.T) {
	lx := New("(){},.-+;/*==!=<=>=<>=!")
	tokens, errs := lx.Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}
	assertKinds(t, kinds(tokens), []token.TokenType{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.COMMA, token.DOT, token.MINUS, token.PLUS, token.SEMICOLON,
		token.SLASH, token.STAR, token.EQUAL_EQUAL, token.NOT_EQUAL,
		token.LESS_EQUAL, token.LARGER_EQUAL, token.LESS, token.LARGER_EQUAL,
		token.BANG, token.EOF,
	})
}

func TestScanCommentIsSkipped(t *testing.T) {
	lx := New("1 // this is a comment\n+ 2")
	tokens, errs := lx.Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}
	assertKinds(t, kinds(tokens), []token.TokenType{token.NUMBER, token.PLUS, token.NUMBER, token.EOF})
	if tokens[0].Line != 1 || tokens[2].Line != 2 {
		t.Errorf("line tracking across comment wrong: %d, %d", tokens[0].Line, tokens[2].Line)
	}
}

func TestScanStringLiteral(t *testing.T) {
	lx := New(`"hello there"`)
	tokens, errs := lx.Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}
	assertKinds(t, kinds(tokens), []token.TokenType{token.STRING, token.EOF})
	if tokens[0].Literal != "hello there" {
		t.Errorf("Literal = %v, want %q", tokens[0].Literal, "hello there")
	}
}

func TestScanUnterminatedStringIsError(t *testing.T) {
	lx := New(`"unterminated`)
	_, errs := lx.Scan()
	if len(errs) != 1 {
		t.Fatalf("errors = %d, want 1", len(errs))
	}
}

func TestScanNumberLiteral(t *testing.T) {
	lx := New("123 45.67")
	tokens, errs := lx.Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}
	if tokens[0].Literal != 123.0 || tokens[1].Literal != 45.67 {
		t.Errorf("literals = %v, %v", tokens[0].Literal, tokens[1].Literal)
	}
}

func TestScanIdentifiersAndKeywords(t *testing.T) {
	lx := New("var x = foo and bar")
	tokens, errs := lx.Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}
	assertKinds(t, kinds(tokens), []token.TokenType{
		token.VAR, token.IDENTIFIER, token.ASSIGN, token.IDENTIFIER,
		token.AND, token.IDENTIFIER, token.EOF,
	})
}

func TestScanAccumulatesMultipleErrors(t *testing.T) {
	lx := New("@ 1 # 2")
	_, errs := lx.Scan()
	if len(errs) != 2 {
		t.Fatalf("errors = %d, want 2 (scanning must not abort at the first bad lexeme)", len(errs))
	}
}
