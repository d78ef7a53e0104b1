// Package parser implements a recursive-descent parser for SQL.
package parser

import (
	"strconv"

	"github.com/ilikepi63/moor/ast"
	"github.com/ilikepi63/moor/lexer"
	"github.com/ilikepi63/moor/token"
)

// Operator precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	OR_PREC     // OR
	AND_PREC    // AND
	NOT_PREC    // NOT x
	COMPARE     // =, <>, <, >, <=, >=, IS, IN, LIKE, BETWEEN
	CONCAT_PREC // ||
	SUM         // +, -
	PRODUCT     // *, /, %
	PREFIX      // -x, +x
	CALL        // function(), table.column
)

var precedences = map[token.Type]int{
	token.OR:       OR_PREC,
	token.AND:      AND_PREC,
	token.EQ:       COMPARE,
	token.NEQ:      COMPARE,
	token.LT:       COMPARE,
	token.GT:       COMPARE,
	token.LTE:      COMPARE,
	token.GTE:      COMPARE,
	token.IS:       COMPARE,
	token.IN:       COMPARE,
	token.LIKE:     COMPARE,
	token.BETWEEN:  COMPARE,
	token.NOT:      COMPARE, // NOT IN, NOT LIKE, NOT BETWEEN
	token.CONCAT:   CONCAT_PREC,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.PERCENT:  PRODUCT,
	token.LPAREN:   CALL,
	token.DOT:      CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser parses a token sequence produced by the lexer. The token slice is
// immutable; the cursor position is the only mutable state, and it advances
// monotonically except when the driver resets it at a recovery point.
type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	errors   []error // statement-aborting errors, in order of occurrence
	warnings []error // lenient-skip diagnostics that do not abort a statement

	scanErrs map[int]*lexer.ScanError // keyed by token start offset

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New creates a Parser that scans the lexer's whole input up front.
func New(l *lexer.Lexer) *Parser {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	p := NewFromTokens(tokens)
	for _, se := range l.Errors() {
		p.scanErrs[se.Pos] = se
	}
	return p
}

// NewFromTokens creates a Parser over an existing token slice. The slice
// must end with an EOF token; if it does not, one is appended.
func NewFromTokens(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		tokens = append(tokens, token.Token{Type: token.EOF})
	}
	p := &Parser{
		tokens:   tokens,
		scanErrs: make(map[int]*lexer.ScanError),
	}

	p.prefixParseFns = make(map[token.Type]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseReference)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.NULL, p.parseNullLiteral)
	p.registerPrefix(token.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(token.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(token.NOT, p.parseNotExpression)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.PLUS, p.parsePrefixExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.CASE, p.parseCaseExpression)
	p.registerPrefix(token.EXISTS, p.parseExistsExpression)

	p.infixParseFns = make(map[token.Type]infixParseFn)
	for _, op := range []token.Type{
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
		token.EQ, token.NEQ, token.LT, token.GT, token.LTE, token.GTE,
		token.AND, token.OR, token.CONCAT,
	} {
		p.registerInfix(op, p.parseInfixExpression)
	}
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.DOT, p.parseDotExpression)
	p.registerInfix(token.LIKE, p.parseLikeExpression)
	p.registerInfix(token.BETWEEN, p.parseBetweenExpression)
	p.registerInfix(token.IN, p.parseInExpression)
	p.registerInfix(token.IS, p.parseIsExpression)
	p.registerInfix(token.NOT, p.parseNotInfixExpression)

	p.curToken = p.tokens[0]
	p.peekToken = p.tokenAt(1)

	return p
}

func (p *Parser) registerPrefix(tokenType token.Type, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.Type, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

// Errors returns the statement-aborting errors recorded so far.
func (p *Parser) Errors() []error {
	return p.errors
}

// tokenAt returns the token at an absolute index, clamped to EOF.
func (p *Parser) tokenAt(i int) token.Token {
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) nextToken() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.curToken = p.tokens[p.pos]
	p.peekToken = p.tokenAt(p.pos + 1)
}

func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type == t
}

func (p *Parser) peekPeekTokenIs(t token.Type) bool {
	return p.tokenAt(p.pos+2).Type == t
}

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.expectedError(t.String(), p.peekToken)
	return false
}

// expectedError records a SyntaxError, or the underlying ScanError when the
// offending token came from a lexical failure.
func (p *Parser) expectedError(expected string, tok token.Token) {
	if tok.Type == token.ILLEGAL {
		if se, ok := p.scanErrs[tok.Pos]; ok {
			p.errors = append(p.errors, se)
			return
		}
	}
	p.errors = append(p.errors, &SyntaxError{Expected: expected, Token: tok})
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// -----------------------------------------------------------------------------
// Expression parsing
// -----------------------------------------------------------------------------

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.expectedError("expression", p.curToken)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}

		p.nextToken()
		leftExp = infix(leftExp)
		if leftExp == nil {
			return nil
		}
	}

	return leftExp
}

func (p *Parser) parseReference() ast.Expression {
	return &ast.Reference{Token: p.curToken, Column: p.curToken.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := &ast.IntegerLiteral{Token: p.curToken}
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.expectedError("integer literal", p.curToken)
		return nil
	}
	lit.Value = value
	return lit
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	lit := &ast.FloatLiteral{Token: p.curToken}
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.expectedError("numeric literal", p.curToken)
		return nil
	}
	lit.Value = value
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Token: p.curToken}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
	}
	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// parseNotExpression parses prefix NOT with its own tier so that
// NOT a = b groups as NOT (a = b).
func (p *Parser) parseNotExpression() ast.Expression {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: "NOT",
	}
	p.nextToken()
	expression.Right = p.parseExpression(NOT_PREC)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: canonicalOperator(p.curToken),
		Left:     left,
	}
	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// canonicalOperator normalizes operator spellings so that structural
// equality does not depend on which variant the source used.
func canonicalOperator(tok token.Token) string {
	switch tok.Type {
	case token.EQ:
		return "="
	case token.NEQ:
		return "<>"
	case token.AND:
		return "AND"
	case token.OR:
		return "OR"
	}
	return tok.Literal
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()

	// Scalar subquery
	if p.curTokenIs(token.SELECT) {
		subq := p.parseSelectStatement()
		if subq == nil {
			return nil
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return &ast.SubqueryExpression{Token: tok, Subquery: subq}
	}

	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

// parseDotExpression turns ident.ident into a table-qualified reference.
func (p *Parser) parseDotExpression(left ast.Expression) ast.Expression {
	ref, ok := left.(*ast.Reference)
	if !ok || ref.Table != "" {
		p.expectedError("column reference", p.curToken)
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	return &ast.Reference{Token: p.curToken, Table: ref.Column, Column: p.curToken.Literal}
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	ref, ok := function.(*ast.Reference)
	if !ok || ref.Table != "" {
		p.expectedError("function name", p.curToken)
		return nil
	}
	exp := &ast.FunctionCall{Token: p.curToken, Name: ref.Column}

	// COUNT(*)
	if p.peekTokenIs(token.ASTERISK) && p.peekPeekTokenIs(token.RPAREN) {
		exp.Star = true
		p.nextToken()
		p.nextToken()
		return exp
	}

	if p.peekTokenIs(token.DISTINCT) {
		exp.Distinct = true
		p.nextToken()
	}

	exp.Arguments = p.parseExpressionList(token.RPAREN)
	if exp.Arguments == nil {
		return nil
	}
	return exp
}

// parseExpressionList parses a comma-separated expression list and consumes
// the terminating end token. The cursor must be on the token before the
// first expression.
func (p *Parser) parseExpressionList(end token.Type) []ast.Expression {
	list := []ast.Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	list = append(list, expr)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return nil
		}
		list = append(list, expr)
	}

	if !p.expectPeek(end) {
		return nil
	}

	return list
}

func (p *Parser) parseCaseExpression() ast.Expression {
	expr := &ast.CaseExpression{Token: p.curToken}
	p.nextToken()

	// Simple CASE operand
	if !p.curTokenIs(token.WHEN) {
		expr.Operand = p.parseExpression(LOWEST)
		if expr.Operand == nil {
			return nil
		}
		p.nextToken()
	}

	for p.curTokenIs(token.WHEN) {
		when := &ast.WhenClause{}
		p.nextToken()
		when.Condition = p.parseExpression(LOWEST)
		if when.Condition == nil {
			return nil
		}
		if !p.expectPeek(token.THEN) {
			return nil
		}
		p.nextToken()
		when.Result = p.parseExpression(LOWEST)
		if when.Result == nil {
			return nil
		}
		expr.WhenClauses = append(expr.WhenClauses, when)
		p.nextToken()
	}

	if len(expr.WhenClauses) == 0 {
		p.expectedError("WHEN", p.curToken)
		return nil
	}

	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		expr.ElseClause = p.parseExpression(LOWEST)
		if expr.ElseClause == nil {
			return nil
		}
		p.nextToken()
	}

	if !p.curTokenIs(token.END) {
		p.expectedError("END", p.curToken)
		return nil
	}
	return expr
}

func (p *Parser) parseExistsExpression() ast.Expression {
	expr := &ast.ExistsExpression{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if !p.expectPeek(token.SELECT) {
		return nil
	}
	expr.Subquery = p.parseSelectStatement()
	if expr.Subquery == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseLikeExpression(left ast.Expression) ast.Expression {
	return p.parseLike(left, false)
}

func (p *Parser) parseLike(left ast.Expression, not bool) ast.Expression {
	expr := &ast.LikeExpression{Token: p.curToken, Expr: left, Not: not}
	p.nextToken()
	expr.Pattern = p.parseExpression(COMPARE)
	if expr.Pattern == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseBetweenExpression(left ast.Expression) ast.Expression {
	return p.parseBetween(left, false)
}

func (p *Parser) parseBetween(left ast.Expression, not bool) ast.Expression {
	expr := &ast.BetweenExpression{Token: p.curToken, Expr: left, Not: not}
	p.nextToken()
	expr.Low = p.parseExpression(COMPARE)
	if expr.Low == nil {
		return nil
	}
	if !p.expectPeek(token.AND) {
		return nil
	}
	p.nextToken()
	expr.High = p.parseExpression(COMPARE)
	if expr.High == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseInExpression(left ast.Expression) ast.Expression {
	return p.parseIn(left, false)
}

func (p *Parser) parseIn(left ast.Expression, not bool) ast.Expression {
	expr := &ast.InExpression{Token: p.curToken, Expr: left, Not: not}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	if p.peekTokenIs(token.SELECT) {
		p.nextToken()
		expr.Subquery = p.parseSelectStatement()
		if expr.Subquery == nil {
			return nil
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return expr
	}

	expr.Values = p.parseExpressionList(token.RPAREN)
	if expr.Values == nil {
		return nil
	}
	return expr
}

// parseIsExpression handles IS NULL and IS NOT NULL.
func (p *Parser) parseIsExpression(left ast.Expression) ast.Expression {
	expr := &ast.IsNullExpression{Token: p.curToken, Expr: left}
	if p.peekTokenIs(token.NOT) {
		expr.Not = true
		p.nextToken()
	}
	if !p.expectPeek(token.NULL) {
		return nil
	}
	return expr
}

// parseNotInfixExpression handles NOT IN, NOT LIKE and NOT BETWEEN.
func (p *Parser) parseNotInfixExpression(left ast.Expression) ast.Expression {
	switch p.peekToken.Type {
	case token.IN:
		p.nextToken()
		return p.parseIn(left, true)
	case token.LIKE:
		p.nextToken()
		return p.parseLike(left, true)
	case token.BETWEEN:
		p.nextToken()
		return p.parseBetween(left, true)
	}
	p.expectedError("IN, LIKE or BETWEEN", p.peekToken)
	return nil
}
