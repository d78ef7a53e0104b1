package lexer

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/ilikepi63/moor/token"
)

func TestKeywordRecognition(t *testing.T) {
	tests := []struct {
		input    string
		expected token.Type
	}{
		{"SELECT", token.SELECT},
		{"select", token.SELECT},
		{"From", token.FROM},
		{"autoincrement", token.AUTOINCREMENT},
		{"users", token.IDENT},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.expected {
			t.Errorf("input %q: expected token type %v, got %v (literal: %q)",
				tt.input, tt.expected, tok.Type, tok.Literal)
		}
	}
}

func TestTokenSequence(t *testing.T) {
	input := "SELECT a, b FROM t WHERE a >= 10;"
	l := New(input)

	expected := []struct {
		typ     token.Type
		literal string
	}{
		{token.SELECT, "SELECT"},
		{token.IDENT, "a"},
		{token.COMMA, ","},
		{token.IDENT, "b"},
		{token.FROM, "FROM"},
		{token.IDENT, "t"},
		{token.WHERE, "WHERE"},
		{token.IDENT, "a"},
		{token.GTE, ">="},
		{token.INT, "10"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	}

	for i, e := range expected {
		tok := l.NextToken()
		if tok.Type != e.typ {
			t.Errorf("token %d: expected type %v, got %v", i, e.typ, tok.Type)
		}
		if tok.Literal != e.literal {
			t.Errorf("token %d: expected literal %q, got %q", i, e.literal, tok.Literal)
		}
	}
}

func TestOperators(t *testing.T) {
	input := "+ - * / % = == <> != < > <= >= ||"
	l := New(input)

	expected := []token.Type{
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
		token.EQ, token.EQ, token.NEQ, token.NEQ,
		token.LT, token.GT, token.LTE, token.GTE, token.CONCAT,
		token.EOF,
	}

	for i, e := range expected {
		tok := l.NextToken()
		if tok.Type != e {
			t.Errorf("token %d: expected %v, got %v (literal %q)", i, e, tok.Type, tok.Literal)
		}
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"'hello'", "hello"},
		{"''", ""},
		{"'it''s'", "it's"},
		{"'a''''b'", "a''b"},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != token.STRING {
			t.Fatalf("input %q: expected STRING, got %v", tt.input, tok.Type)
		}
		if tok.Literal != tt.expected {
			t.Errorf("input %q: expected literal %q, got %q", tt.input, tt.expected, tok.Literal)
		}
	}
}

func TestQuotedIdentifiers(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"users"`, "users"},
		{`"select"`, "select"},
		{`"odd ""name"""`, `odd "name"`},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != token.IDENT {
			t.Fatalf("input %q: expected IDENT, got %v", tt.input, tok.Type)
		}
		if tok.Literal != tt.expected {
			t.Errorf("input %q: expected literal %q, got %q", tt.input, tt.expected, tok.Literal)
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input   string
		typ     token.Type
		literal string
	}{
		{"0", token.INT, "0"},
		{"12345", token.INT, "12345"},
		{"1.5", token.FLOAT, "1.5"},
		{".5", token.FLOAT, ".5"},
		{"1e10", token.FLOAT, "1e10"},
		{"2.5E-3", token.FLOAT, "2.5E-3"},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.typ {
			t.Errorf("input %q: expected %v, got %v", tt.input, tt.typ, tok.Type)
		}
		if tok.Literal != tt.literal {
			t.Errorf("input %q: expected literal %q, got %q", tt.input, tt.literal, tok.Literal)
		}
	}
}

func TestComments(t *testing.T) {
	input := `SELECT -- line comment
/* block
   comment */ a /* nested /* inner */ still */ FROM t`
	l := New(input)

	expected := []token.Type{
		token.SELECT, token.IDENT, token.FROM, token.IDENT, token.EOF,
	}
	for i, e := range expected {
		tok := l.NextToken()
		if tok.Type != e {
			t.Errorf("token %d: expected %v, got %v (literal %q)", i, e, tok.Type, tok.Literal)
		}
	}
}

func TestPositions(t *testing.T) {
	input := "SELECT a\nFROM t"
	got := Tokenize(input)

	want := []token.Token{
		{Type: token.SELECT, Literal: "SELECT", Pos: 0, End: 6, Line: 1, Column: 1},
		{Type: token.IDENT, Literal: "a", Pos: 7, End: 8, Line: 1, Column: 8},
		{Type: token.FROM, Literal: "FROM", Pos: 9, End: 13, Line: 2, Column: 1},
		{Type: token.IDENT, Literal: "t", Pos: 14, End: 15, Line: 2, Column: 6},
		{Type: token.EOF, Literal: "", Pos: 15, End: 15, Line: 2, Column: 7},
	}

	if diff := deep.Equal(got, want); diff != nil {
		for _, d := range diff {
			t.Error(d)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	toks, errs := TokenizeAll("SELECT 'abc")
	if len(errs) != 1 {
		t.Fatalf("expected 1 scan error, got %d", len(errs))
	}
	if errs[0].Line != 1 {
		t.Errorf("expected error on line 1, got %d", errs[0].Line)
	}

	var illegal bool
	for _, tok := range toks {
		if tok.Type == token.ILLEGAL {
			illegal = true
		}
	}
	if !illegal {
		t.Error("expected an ILLEGAL token for the unterminated string")
	}
}

func TestIllegalCharacter(t *testing.T) {
	toks, errs := TokenizeAll("SELECT a ? b")
	if len(errs) != 1 {
		t.Fatalf("expected 1 scan error, got %d", len(errs))
	}
	var illegal int
	for _, tok := range toks {
		if tok.Type == token.ILLEGAL {
			illegal++
		}
	}
	if illegal != 1 {
		t.Errorf("expected 1 ILLEGAL token, got %d", illegal)
	}
}

func TestAlwaysEndsWithEOF(t *testing.T) {
	for _, input := range []string{"", ";", "SELECT", "'unterminated"} {
		toks := Tokenize(input)
		if len(toks) == 0 || toks[len(toks)-1].Type != token.EOF {
			t.Errorf("input %q: token stream does not end with EOF", input)
		}
	}
}
