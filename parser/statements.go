package parser

import (
	"github.com/ilikepi63/moor/ast"
	"github.com/ilikepi63/moor/token"
)

// parseStatement parses one statement starting at the current token and
// leaves the cursor on the statement's last token. It returns nil after
// recording an error; no partial statement node is ever returned.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.SELECT:
		if stmt := p.parseSelectStatement(); stmt != nil {
			return stmt
		}
	case token.INSERT:
		if stmt := p.parseInsertStatement(); stmt != nil {
			return stmt
		}
	case token.UPDATE:
		if stmt := p.parseUpdateStatement(); stmt != nil {
			return stmt
		}
	case token.DELETE:
		if stmt := p.parseDeleteStatement(); stmt != nil {
			return stmt
		}
	case token.CREATE:
		return p.parseCreateStatement()
	case token.BEGIN:
		if stmt := p.parseBeginStatement(); stmt != nil {
			return stmt
		}
	case token.COMMIT:
		return p.parseCommitStatement()
	case token.ROLLBACK:
		return p.parseRollbackStatement()
	default:
		p.expectedError("statement", p.curToken)
	}
	return nil
}

// -----------------------------------------------------------------------------
// SELECT
// -----------------------------------------------------------------------------

func (p *Parser) parseSelectStatement() *ast.SelectStatement {
	stmt := &ast.SelectStatement{Token: p.curToken}
	p.nextToken()

	if p.curTokenIs(token.DISTINCT) {
		stmt.Distinct = true
		p.nextToken()
	} else if p.curTokenIs(token.ALL) {
		p.nextToken()
	}

	stmt.Columns = p.parseResultColumns()
	if stmt.Columns == nil {
		return nil
	}

	if p.peekTokenIs(token.FROM) {
		p.nextToken()
		if !p.parseFromClause(stmt) {
			return nil
		}
	}

	if p.peekTokenIs(token.WHERE) {
		p.nextToken()
		p.nextToken()
		stmt.Where = p.parseExpression(LOWEST)
		if stmt.Where == nil {
			return nil
		}
	}

	if p.peekTokenIs(token.GROUP) {
		p.nextToken()
		if !p.expectPeek(token.BY) {
			return nil
		}
		stmt.GroupBy = p.parseGroupByItems()
		if stmt.GroupBy == nil {
			return nil
		}
		if p.peekTokenIs(token.HAVING) {
			p.nextToken()
			p.nextToken()
			stmt.Having = p.parseExpression(LOWEST)
			if stmt.Having == nil {
				return nil
			}
		}
	}

	if p.peekTokenIs(token.ORDER) {
		p.nextToken()
		if !p.expectPeek(token.BY) {
			return nil
		}
		stmt.OrderBy = p.parseOrderByItems()
		if stmt.OrderBy == nil {
			return nil
		}
	}

	if p.peekTokenIs(token.LIMIT) {
		p.nextToken()
		p.nextToken()
		stmt.Limit = p.parseExpression(LOWEST)
		if stmt.Limit == nil {
			return nil
		}
		if p.peekTokenIs(token.OFFSET) {
			p.nextToken()
			p.nextToken()
			stmt.Offset = p.parseExpression(LOWEST)
			if stmt.Offset == nil {
				return nil
			}
		}
	}

	return stmt
}

// parseResultColumns parses the result-column list; the cursor is on the
// first token of the first column.
func (p *Parser) parseResultColumns() []ast.ResultColumn {
	var cols []ast.ResultColumn

	col := p.parseResultColumn()
	if col == nil {
		return nil
	}
	cols = append(cols, col)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		col := p.parseResultColumn()
		if col == nil {
			return nil
		}
		cols = append(cols, col)
	}

	return cols
}

func (p *Parser) parseResultColumn() ast.ResultColumn {
	// Bare *
	if p.curTokenIs(token.ASTERISK) {
		return &ast.StarResultColumn{Token: p.curToken}
	}

	// table.*
	if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.DOT) && p.peekPeekTokenIs(token.ASTERISK) {
		col := &ast.StarResultColumn{Token: p.curToken, Table: p.curToken.Literal}
		p.nextToken()
		p.nextToken()
		return col
	}

	col := &ast.ExpressionResultColumn{Token: p.curToken}
	col.Expression = p.parseExpression(LOWEST)
	if col.Expression == nil {
		return nil
	}

	if p.peekTokenIs(token.AS) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		col.Alias = p.curToken.Literal
	} else if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		col.Alias = p.curToken.Literal
	}

	return col
}

// parseFromClause parses table references and joins; the cursor is on FROM.
func (p *Parser) parseFromClause(stmt *ast.SelectStatement) bool {
	p.nextToken()

	ref := p.parseTableReference()
	if ref == nil {
		return false
	}
	stmt.From = append(stmt.From, ref)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		ref := p.parseTableReference()
		if ref == nil {
			return false
		}
		stmt.From = append(stmt.From, ref)
	}

	for p.peekTokenIs(token.JOIN) || p.peekTokenIs(token.INNER) ||
		p.peekTokenIs(token.LEFT) || p.peekTokenIs(token.CROSS) {
		join := p.parseJoinClause()
		if join == nil {
			return false
		}
		stmt.Joins = append(stmt.Joins, join)
	}

	return true
}

func (p *Parser) parseTableReference() ast.TableReference {
	if p.curTokenIs(token.LPAREN) {
		tok := p.curToken
		if !p.expectPeek(token.SELECT) {
			return nil
		}
		sub := p.parseSelectStatement()
		if sub == nil {
			return nil
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		st := &ast.SubqueryTable{Token: tok, Select: sub}
		st.Alias = p.parseOptionalAlias()
		return st
	}

	if !p.curTokenIs(token.IDENT) {
		p.expectedError("table name", p.curToken)
		return nil
	}

	nt := &ast.NamedTable{Token: p.curToken, Name: p.curToken.Literal}
	nt.Alias = p.parseOptionalAlias()
	return nt
}

// parseOptionalAlias consumes [AS] ident if present.
func (p *Parser) parseOptionalAlias() string {
	if p.peekTokenIs(token.AS) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return ""
		}
		return p.curToken.Literal
	}
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		return p.curToken.Literal
	}
	return ""
}

func (p *Parser) parseJoinClause() *ast.JoinClause {
	join := &ast.JoinClause{Token: p.peekToken}

	switch p.peekToken.Type {
	case token.JOIN:
		join.JoinType = "INNER"
		p.nextToken()
	case token.INNER:
		join.JoinType = "INNER"
		p.nextToken()
		if !p.expectPeek(token.JOIN) {
			return nil
		}
	case token.LEFT:
		join.JoinType = "LEFT OUTER"
		p.nextToken()
		if p.peekTokenIs(token.OUTER) {
			p.nextToken()
		}
		if !p.expectPeek(token.JOIN) {
			return nil
		}
	case token.CROSS:
		join.JoinType = "CROSS"
		p.nextToken()
		if !p.expectPeek(token.JOIN) {
			return nil
		}
	}

	p.nextToken()
	join.Table = p.parseTableReference()
	if join.Table == nil {
		return nil
	}

	if p.peekTokenIs(token.ON) {
		p.nextToken()
		p.nextToken()
		join.On = p.parseExpression(LOWEST)
		if join.On == nil {
			return nil
		}
	}

	return join
}

// parseGroupByItems parses the expressions after GROUP BY; cursor on BY.
func (p *Parser) parseGroupByItems() []ast.Expression {
	var items []ast.Expression

	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	items = append(items, expr)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return nil
		}
		items = append(items, expr)
	}

	return items
}

// parseOrderByItems parses the entries after ORDER BY; cursor on BY.
func (p *Parser) parseOrderByItems() []*ast.OrderByItem {
	var items []*ast.OrderByItem

	for {
		p.nextToken()
		item := &ast.OrderByItem{}
		item.Expression = p.parseExpression(LOWEST)
		if item.Expression == nil {
			return nil
		}
		if p.peekTokenIs(token.ASC) {
			p.nextToken()
		} else if p.peekTokenIs(token.DESC) {
			item.Desc = true
			p.nextToken()
		}
		items = append(items, item)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	return items
}

// -----------------------------------------------------------------------------
// INSERT
// -----------------------------------------------------------------------------

func (p *Parser) parseInsertStatement() *ast.InsertStatement {
	stmt := &ast.InsertStatement{Token: p.curToken}

	stmt.OrConflict = p.parseOrConflict()
	if !p.expectPeek(token.INTO) {
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Table = p.curToken.Literal

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		stmt.Columns = p.parseIdentList()
		if stmt.Columns == nil {
			return nil
		}
	}

	switch {
	case p.peekTokenIs(token.VALUES):
		p.nextToken()
		for {
			if !p.expectPeek(token.LPAREN) {
				return nil
			}
			row := p.parseExpressionList(token.RPAREN)
			if row == nil {
				return nil
			}
			stmt.Values = append(stmt.Values, row)
			if !p.peekTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
	case p.peekTokenIs(token.SELECT):
		p.nextToken()
		stmt.Select = p.parseSelectStatement()
		if stmt.Select == nil {
			return nil
		}
	case p.peekTokenIs(token.DEFAULT):
		p.nextToken()
		if !p.expectPeek(token.VALUES) {
			return nil
		}
		stmt.DefaultValues = true
	default:
		p.expectedError("VALUES, SELECT or DEFAULT VALUES", p.peekToken)
		return nil
	}

	return stmt
}

// parseOrConflict consumes an OR ROLLBACK / ABORT / REPLACE / FAIL / IGNORE
// conflict clause if present; the cursor is on INSERT or UPDATE.
func (p *Parser) parseOrConflict() string {
	if !p.peekTokenIs(token.OR) {
		return ""
	}
	p.nextToken()
	switch p.peekToken.Type {
	case token.ROLLBACK, token.ABORT, token.REPLACE, token.FAIL, token.IGNORE:
		p.nextToken()
		return p.curToken.Type.String()
	}
	p.expectedError("conflict clause", p.peekToken)
	return ""
}

// parseIdentList parses ( ident, ident, ... ); cursor on the opening paren.
func (p *Parser) parseIdentList() []string {
	var names []string

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	names = append(names, p.curToken.Literal)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		names = append(names, p.curToken.Literal)
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	return names
}

// -----------------------------------------------------------------------------
// UPDATE
// -----------------------------------------------------------------------------

func (p *Parser) parseUpdateStatement() *ast.UpdateStatement {
	stmt := &ast.UpdateStatement{Token: p.curToken}

	stmt.OrConflict = p.parseOrConflict()
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Table = p.curToken.Literal

	if !p.expectPeek(token.SET) {
		return nil
	}

	stmt.Set = p.parseSetComponents()
	if stmt.Set == nil {
		return nil
	}

	if p.peekTokenIs(token.WHERE) {
		p.nextToken()
		p.nextToken()
		stmt.Where = p.parseExpression(LOWEST)
		if stmt.Where == nil {
			return nil
		}
	}

	return stmt
}

// parseSetComponents parses the column = expression pairs of a SET clause.
// Each left-hand side must be a bare, optionally table-qualified reference.
func (p *Parser) parseSetComponents() []*ast.SetComponent {
	var comps []*ast.SetComponent

	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		ref := &ast.Reference{Token: p.curToken, Column: p.curToken.Literal}
		if p.peekTokenIs(token.DOT) {
			p.nextToken()
			if !p.expectPeek(token.IDENT) {
				return nil
			}
			ref = &ast.Reference{Token: p.curToken, Table: ref.Column, Column: p.curToken.Literal}
		}

		if !p.expectPeek(token.EQ) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}

		comps = append(comps, &ast.SetComponent{Column: ref, Expression: value})

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	return comps
}

// -----------------------------------------------------------------------------
// DELETE
// -----------------------------------------------------------------------------

func (p *Parser) parseDeleteStatement() *ast.DeleteStatement {
	stmt := &ast.DeleteStatement{Token: p.curToken}

	if !p.expectPeek(token.FROM) {
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Table = p.curToken.Literal

	if p.peekTokenIs(token.WHERE) {
		p.nextToken()
		p.nextToken()
		stmt.Where = p.parseExpression(LOWEST)
		if stmt.Where == nil {
			return nil
		}
	}

	return stmt
}

// -----------------------------------------------------------------------------
// Transactions
// -----------------------------------------------------------------------------

func (p *Parser) parseBeginStatement() *ast.BeginStatement {
	stmt := &ast.BeginStatement{Token: p.curToken}

	switch p.peekToken.Type {
	case token.DEFERRED, token.IMMEDIATE, token.EXCLUSIVE:
		p.nextToken()
		stmt.Mode = p.curToken.Type.String()
	}

	if p.peekTokenIs(token.TRANSACTION) {
		p.nextToken()
	}

	return stmt
}

func (p *Parser) parseCommitStatement() ast.Statement {
	stmt := &ast.CommitStatement{Token: p.curToken}
	if p.peekTokenIs(token.TRANSACTION) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseRollbackStatement() ast.Statement {
	stmt := &ast.RollbackStatement{Token: p.curToken}
	if p.peekTokenIs(token.TRANSACTION) {
		p.nextToken()
	}
	return stmt
}
