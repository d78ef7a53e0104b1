// Package lexer implements a lexical scanner for SQL.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ilikepi63/moor/token"
)

// ScanError describes a lexical error: an unterminated literal or an
// unrecognized character. It is always localized to a single offset range.
type ScanError struct {
	Msg    string
	Pos    int
	End    int
	Line   int
	Column int
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Column, e.Msg)
}

// Lexer represents a lexical scanner for SQL. It always terminates and
// always produces an EOF token; unscannable input yields an ILLEGAL token
// plus a recorded *ScanError so the caller can confine the failure to the
// statement in progress.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int
	column       int
	errors       []*ScanError
}

// New creates a new Lexer for the given input.
func New(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// Errors returns the scan errors recorded so far.
func (l *Lexer) Errors() []*ScanError {
	return l.errors
}

// readChar reads the next character and advances the position.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
	} else {
		r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += size
	}
	l.column++
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

// peekChar returns the next character without advancing the position.
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// NextToken returns the next token from the input. Whitespace and comments
// are consumed and discarded.
func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespaceAndComments()

	startPos := l.position
	startLine := l.line
	startColumn := l.column
	tok.Line = startLine
	tok.Column = startColumn
	tok.Pos = startPos

	switch l.ch {
	case '+':
		tok = l.newToken(token.PLUS, string(l.ch))
	case '-':
		tok = l.newToken(token.MINUS, string(l.ch))
	case '*':
		tok = l.newToken(token.ASTERISK, string(l.ch))
	case '/':
		tok = l.newToken(token.SLASH, string(l.ch))
	case '%':
		tok = l.newToken(token.PERCENT, string(l.ch))
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = l.newToken(token.CONCAT, "||")
		} else {
			l.scanError(tok.Pos, "unrecognized character '|'")
			tok = l.newToken(token.ILLEGAL, string(l.ch))
		}
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.EQ, "==")
		} else {
			tok = l.newToken(token.EQ, string(l.ch))
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.NEQ, "!=")
		} else {
			l.scanError(tok.Pos, "unrecognized character '!'")
			tok = l.newToken(token.ILLEGAL, string(l.ch))
		}
	case '<':
		if l.peekChar() == '>' {
			l.readChar()
			tok = l.newToken(token.NEQ, "<>")
		} else if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.LTE, "<=")
		} else {
			tok = l.newToken(token.LT, string(l.ch))
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.newToken(token.GTE, ">=")
		} else {
			tok = l.newToken(token.GT, string(l.ch))
		}
	case ',':
		tok = l.newToken(token.COMMA, string(l.ch))
	case ';':
		tok = l.newToken(token.SEMICOLON, string(l.ch))
	case '(':
		tok = l.newToken(token.LPAREN, string(l.ch))
	case ')':
		tok = l.newToken(token.RPAREN, string(l.ch))
	case '.':
		// A float may start with a dot (e.g. .5)
		if isDigit(l.peekChar()) {
			tok.Type = token.FLOAT
			tok.Literal = l.readFloatFromDot()
			tok.End = l.position
			return tok
		}
		tok = l.newToken(token.DOT, string(l.ch))
	case '\'':
		lit, ok := l.readString(tok.Pos)
		tok.Literal = lit
		tok.End = l.position
		if ok {
			tok.Type = token.STRING
		} else {
			tok.Type = token.ILLEGAL
		}
		return tok
	case '"':
		// Quoted identifier: never keyword-matched
		lit, ok := l.readQuotedIdentifier(tok.Pos)
		tok.Literal = lit
		tok.End = l.position
		if ok {
			tok.Type = token.IDENT
		} else {
			tok.Type = token.ILLEGAL
		}
		return tok
	case 0:
		tok.Literal = ""
		tok.Type = token.EOF
		tok.End = l.position
		return tok
	default:
		if isDigit(l.ch) {
			tok.Literal, tok.Type = l.readNumber()
			tok.End = l.position
			return tok
		} else if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(strings.ToUpper(tok.Literal))
			tok.End = l.position
			return tok
		}
		l.scanError(tok.Pos, fmt.Sprintf("unrecognized character %q", l.ch))
		tok = l.newToken(token.ILLEGAL, string(l.ch))
	}

	tok.Pos = startPos
	tok.Line = startLine
	tok.Column = startColumn
	l.readChar()
	tok.End = l.position
	return tok
}

func (l *Lexer) newToken(tokenType token.Type, literal string) token.Token {
	return token.Token{
		Type:    tokenType,
		Literal: literal,
	}
}

func (l *Lexer) scanError(pos int, msg string) {
	l.errors = append(l.errors, &ScanError{
		Msg:    msg,
		Pos:    pos,
		End:    l.readPosition,
		Line:   l.line,
		Column: l.column,
	})
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '-' && l.peekChar() == '-':
			l.skipLineComment()
		case l.ch == '/' && l.peekChar() == '*':
			l.skipBlockComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func (l *Lexer) skipBlockComment() {
	l.readChar() // consume /
	l.readChar() // consume *

	// Nested block comments are allowed
	depth := 1
	for depth > 0 {
		if l.ch == '/' && l.peekChar() == '*' {
			l.readChar()
			l.readChar()
			depth++
		} else if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			depth--
		} else if l.ch == 0 {
			break
		} else {
			l.readChar()
		}
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readQuotedIdentifier reads a "double quoted" identifier with "" doubling.
// The second return value is false if the closing quote is missing.
func (l *Lexer) readQuotedIdentifier(start int) (string, bool) {
	var result strings.Builder
	l.readChar() // consume opening "

	for {
		if l.ch == '"' {
			if l.peekChar() == '"' {
				result.WriteRune('"')
				l.readChar()
				l.readChar()
			} else {
				l.readChar() // consume closing "
				return result.String(), true
			}
		} else if l.ch == 0 {
			l.scanError(start, "unterminated quoted identifier")
			return result.String(), false
		} else {
			result.WriteRune(l.ch)
			l.readChar()
		}
	}
}

func (l *Lexer) readNumber() (string, token.Type) {
	position := l.position
	tokenType := token.INT

	for isDigit(l.ch) {
		l.readChar()
	}

	// Decimal point
	if l.ch == '.' && isDigit(l.peekChar()) {
		tokenType = token.FLOAT
		l.readChar() // consume the dot
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// Exponent
	if l.ch == 'e' || l.ch == 'E' {
		tokenType = token.FLOAT
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return l.input[position:l.position], tokenType
}

// readFloatFromDot reads a float literal that starts with a dot (e.g. .5)
func (l *Lexer) readFloatFromDot() string {
	position := l.position
	l.readChar() // consume the dot
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == 'e' || l.ch == 'E' {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[position:l.position]
}

// readString reads a 'single quoted' string literal with '' doubling as the
// only escape mechanism. The second return value is false if the closing
// quote is missing.
func (l *Lexer) readString(start int) (string, bool) {
	var result strings.Builder
	l.readChar() // consume opening quote

	for {
		if l.ch == '\'' {
			if l.peekChar() == '\'' {
				result.WriteRune('\'')
				l.readChar()
				l.readChar()
			} else {
				l.readChar() // consume closing quote
				return result.String(), true
			}
		} else if l.ch == 0 {
			l.scanError(start, "unterminated string literal")
			return result.String(), false
		} else {
			result.WriteRune(l.ch)
			l.readChar()
		}
	}
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// Tokenize returns all tokens from the input as a slice. The slice always
// ends with an EOF token.
func Tokenize(input string) []token.Token {
	toks, _ := TokenizeAll(input)
	return toks
}

// TokenizeAll returns all tokens plus any scan errors encountered.
func TokenizeAll(input string) ([]token.Token, []*ScanError) {
	l := New(input)
	var tokens []token.Token

	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}

	return tokens, l.errors
}
