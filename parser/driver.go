package parser

import (
	"github.com/ilikepi63/moor/ast"
	"github.com/ilikepi63/moor/token"
)

// ParseProgram parses every statement in the input. A statement that fails
// to parse is dropped: the failure is recorded as a Diagnostic, the parser
// resynchronizes past the next semicolon, and parsing continues with the
// following statement. The returned program holds only complete statements,
// in source order.
func (p *Parser) ParseProgram() (*ast.Program, []Diagnostic) {
	program := &ast.Program{Statements: []ast.Statement{}}
	var diags []Diagnostic

	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}

		before := len(p.errors)
		stmt := p.parseStatement()

		if stmt == nil || len(p.errors) > before {
			diags = append(diags, p.statementDiagnostic(before))
			diags = append(diags, p.takeWarnings()...)
			p.recoverToStatementBoundary()
			continue
		}

		// A complete statement must be followed by a separator or the end
		// of input, otherwise trailing garbage would be silently ignored.
		if !p.peekTokenIs(token.SEMICOLON) && !p.peekTokenIs(token.EOF) {
			p.expectedError(";", p.peekToken)
			diags = append(diags, p.statementDiagnostic(before))
			diags = append(diags, p.takeWarnings()...)
			p.recoverToStatementBoundary()
			continue
		}

		program.Statements = append(program.Statements, stmt)
		diags = append(diags, p.takeWarnings()...)
		p.nextToken()
	}

	return program, diags
}

// statementDiagnostic wraps the first error the failed statement recorded.
func (p *Parser) statementDiagnostic(before int) Diagnostic {
	if len(p.errors) > before {
		return Diagnostic{Err: p.errors[before]}
	}
	err := &SyntaxError{Expected: "statement", Token: p.curToken}
	p.errors = append(p.errors, err)
	return Diagnostic{Err: err}
}

// takeWarnings drains the lenient-skip warnings into diagnostics.
func (p *Parser) takeWarnings() []Diagnostic {
	if len(p.warnings) == 0 {
		return nil
	}
	diags := make([]Diagnostic, 0, len(p.warnings))
	for _, w := range p.warnings {
		diags = append(diags, Diagnostic{Err: w, Warning: true})
	}
	p.warnings = p.warnings[:0]
	return diags
}

// recoverToStatementBoundary advances past the remainder of a failed
// statement, consuming up to and including the next semicolon. The cursor
// always moves forward, so a failed statement can never stall the driver.
func (p *Parser) recoverToStatementBoundary() {
	for !p.curTokenIs(token.SEMICOLON) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
	if p.curTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
}

// ParseStatement parses a single statement from tokens beginning at start.
// On success it returns the statement and the index of the first token after
// it (excluding any trailing semicolon). On failure it returns the error and
// the index the parser had reached.
func ParseStatement(tokens []token.Token, start int) (ast.Statement, int, error) {
	p := NewFromTokens(tokens)
	for p.pos < start && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}

	if p.curTokenIs(token.EOF) {
		err := &SyntaxError{Expected: "statement", Token: p.curToken}
		return nil, p.pos, err
	}

	stmt := p.parseStatement()
	if stmt == nil || len(p.errors) > 0 {
		if len(p.errors) > 0 {
			return nil, p.pos, p.errors[0]
		}
		return nil, p.pos, &SyntaxError{Expected: "statement", Token: p.curToken}
	}

	return stmt, p.pos + 1, nil
}
