package parser

import (
	"strconv"

	"github.com/ilikepi63/moor/ast"
	"github.com/ilikepi63/moor/token"
)

func (p *Parser) parseCreateStatement() ast.Statement {
	switch p.peekToken.Type {
	case token.TABLE:
		if stmt := p.parseCreateTableStatement(); stmt != nil {
			return stmt
		}
	case token.UNIQUE, token.INDEX:
		if stmt := p.parseCreateIndexStatement(); stmt != nil {
			return stmt
		}
	case token.VIEW:
		if stmt := p.parseCreateViewStatement(); stmt != nil {
			return stmt
		}
	case token.TRIGGER:
		if stmt := p.parseCreateTriggerStatement(); stmt != nil {
			return stmt
		}
	default:
		p.expectedError("TABLE, INDEX, VIEW or TRIGGER", p.peekToken)
	}
	return nil
}

// parseIfNotExists consumes an IF NOT EXISTS clause if present. The second
// return value is false when the clause started but was malformed.
func (p *Parser) parseIfNotExists() (bool, bool) {
	if !p.peekTokenIs(token.IF) {
		return false, true
	}
	p.nextToken()
	if !p.expectPeek(token.NOT) {
		return false, false
	}
	if !p.expectPeek(token.EXISTS) {
		return false, false
	}
	return true, true
}

// -----------------------------------------------------------------------------
// CREATE TABLE
// -----------------------------------------------------------------------------

func (p *Parser) parseCreateTableStatement() *ast.CreateTableStatement {
	stmt := &ast.CreateTableStatement{Token: p.curToken}

	if !p.expectPeek(token.TABLE) {
		return nil
	}

	ifNotExists, ok := p.parseIfNotExists()
	if !ok {
		return nil
	}
	stmt.IfNotExists = ifNotExists

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = p.curToken.Literal

	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	for {
		p.nextToken()
		switch p.curToken.Type {
		case token.PRIMARY, token.UNIQUE, token.CHECK, token.FOREIGN, token.CONSTRAINT:
			con := p.parseTableConstraint()
			if con == nil {
				return nil
			}
			stmt.Constraints = append(stmt.Constraints, con)
		default:
			def := p.parseColumnDefinition()
			if def == nil {
				return nil
			}
			stmt.Columns = append(stmt.Columns, def)
		}

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	return stmt
}

func (p *Parser) parseColumnDefinition() *ast.ColumnDefinition {
	if !p.curTokenIs(token.IDENT) {
		p.expectedError("column name", p.curToken)
		return nil
	}
	def := &ast.ColumnDefinition{Token: p.curToken, Name: p.curToken.Literal}

	if p.peekTokenIs(token.IDENT) {
		def.Type = p.parseTypeName()
		if def.Type == nil {
			return nil
		}
	}

	for {
		con, ok := p.parseColumnConstraint()
		if !ok {
			return nil
		}
		if con == nil {
			break
		}
		def.Constraints = append(def.Constraints, con)
	}

	return def
}

// parseTypeName parses a type name with optional integer arguments, such as
// VARCHAR(255) or DECIMAL(10, 2); the cursor is on the column name.
func (p *Parser) parseTypeName() *ast.TypeName {
	p.nextToken()
	tn := &ast.TypeName{Name: p.curToken.Literal}

	if !p.peekTokenIs(token.LPAREN) {
		return tn
	}
	p.nextToken()

	for {
		if !p.expectPeek(token.INT) {
			return nil
		}
		arg, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
		if err != nil {
			p.expectedError("integer", p.curToken)
			return nil
		}
		tn.Args = append(tn.Args, arg)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	return tn
}

// parseColumnConstraint parses the next column constraint. It returns
// (nil, true) when the next token does not start a constraint and
// (nil, false) when a constraint was started but malformed.
func (p *Parser) parseColumnConstraint() (*ast.ColumnConstraint, bool) {
	switch p.peekToken.Type {
	case token.PRIMARY:
		p.nextToken()
		con := &ast.ColumnConstraint{Token: p.curToken, Kind: ast.PrimaryKeyConstraint}
		if !p.expectPeek(token.KEY) {
			return nil, false
		}
		if p.peekTokenIs(token.ASC) {
			p.nextToken()
		} else if p.peekTokenIs(token.DESC) {
			con.Desc = true
			p.nextToken()
		}
		if p.peekTokenIs(token.AUTOINCREMENT) {
			con.Autoincrement = true
			p.nextToken()
		}
		return con, true

	case token.NOT:
		p.nextToken()
		con := &ast.ColumnConstraint{Token: p.curToken, Kind: ast.NotNullConstraint}
		if !p.expectPeek(token.NULL) {
			return nil, false
		}
		return con, true

	case token.UNIQUE:
		p.nextToken()
		return &ast.ColumnConstraint{Token: p.curToken, Kind: ast.UniqueColumnConstraint}, true

	case token.DEFAULT:
		p.nextToken()
		con := &ast.ColumnConstraint{Token: p.curToken, Kind: ast.DefaultConstraint}
		p.nextToken()
		con.Default = p.parseExpression(COMPARE)
		if con.Default == nil {
			return nil, false
		}
		return con, true

	case token.CHECK:
		p.nextToken()
		con := &ast.ColumnConstraint{Token: p.curToken, Kind: ast.CheckColumnConstraint}
		if !p.expectPeek(token.LPAREN) {
			return nil, false
		}
		p.nextToken()
		con.Check = p.parseExpression(LOWEST)
		if con.Check == nil || !p.expectPeek(token.RPAREN) {
			return nil, false
		}
		return con, true

	case token.REFERENCES:
		p.nextToken()
		con := &ast.ColumnConstraint{Token: p.curToken, Kind: ast.ReferencesConstraint}
		if !p.expectPeek(token.IDENT) {
			return nil, false
		}
		con.RefTable = p.curToken.Literal
		if p.peekTokenIs(token.LPAREN) {
			p.nextToken()
			cols, ok := p.parseKeyColumnList()
			if !ok {
				return nil, false
			}
			con.RefColumns = cols
		}
		return con, true
	}

	return nil, true
}

func (p *Parser) parseTableConstraint() *ast.TableConstraint {
	con := &ast.TableConstraint{Token: p.curToken}

	if p.curTokenIs(token.CONSTRAINT) {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		con.Name = p.curToken.Literal
		p.nextToken()
	}

	switch p.curToken.Type {
	case token.PRIMARY:
		con.Kind = ast.PrimaryKeyTableConstraint
		if !p.expectPeek(token.KEY) {
			return nil
		}
		if !p.expectPeek(token.LPAREN) {
			return nil
		}
		cols, ok := p.parseKeyColumnList()
		if !ok {
			return nil
		}
		con.Columns = cols

	case token.UNIQUE:
		con.Kind = ast.UniqueTableConstraint
		if !p.expectPeek(token.LPAREN) {
			return nil
		}
		cols, ok := p.parseKeyColumnList()
		if !ok {
			return nil
		}
		con.Columns = cols

	case token.CHECK:
		con.Kind = ast.CheckTableConstraint
		if !p.expectPeek(token.LPAREN) {
			return nil
		}
		p.nextToken()
		con.Check = p.parseExpression(LOWEST)
		if con.Check == nil {
			return nil
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}

	case token.FOREIGN:
		con.Kind = ast.ForeignKeyConstraint
		if !p.expectPeek(token.KEY) {
			return nil
		}
		if !p.expectPeek(token.LPAREN) {
			return nil
		}
		cols, ok := p.parseKeyColumnList()
		if !ok {
			return nil
		}
		con.Columns = cols
		if !p.expectPeek(token.REFERENCES) {
			return nil
		}
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		con.RefTable = p.curToken.Literal
		if p.peekTokenIs(token.LPAREN) {
			p.nextToken()
			refCols, ok := p.parseKeyColumnList()
			if !ok {
				return nil
			}
			con.RefColumns = refCols
		}

	default:
		p.expectedError("table constraint", p.curToken)
		return nil
	}

	return con
}

// parseKeyColumnList parses a parenthesized column name list; the cursor is
// on the opening paren. Entries that are not plain identifiers are skipped
// with a warning instead of aborting the statement.
func (p *Parser) parseKeyColumnList() ([]string, bool) {
	var names []string

	for {
		if p.peekTokenIs(token.IDENT) {
			p.nextToken()
			names = append(names, p.curToken.Literal)
		} else if p.peekTokenIs(token.RPAREN) || p.peekTokenIs(token.EOF) {
			break
		} else {
			p.warnings = append(p.warnings, &SyntaxError{Expected: "column name", Token: p.peekToken})
			for !p.peekTokenIs(token.COMMA) && !p.peekTokenIs(token.RPAREN) && !p.peekTokenIs(token.EOF) {
				p.nextToken()
			}
		}

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}

	return names, true
}

// -----------------------------------------------------------------------------
// CREATE INDEX
// -----------------------------------------------------------------------------

func (p *Parser) parseCreateIndexStatement() *ast.CreateIndexStatement {
	stmt := &ast.CreateIndexStatement{Token: p.curToken}

	if p.peekTokenIs(token.UNIQUE) {
		stmt.Unique = true
		p.nextToken()
	}
	if !p.expectPeek(token.INDEX) {
		return nil
	}

	ifNotExists, ok := p.parseIfNotExists()
	if !ok {
		return nil
	}
	stmt.IfNotExists = ifNotExists

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = p.curToken.Literal

	if !p.expectPeek(token.ON) {
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Table = p.curToken.Literal

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		col := &ast.IndexColumn{Name: p.curToken.Literal}
		if p.peekTokenIs(token.ASC) {
			p.nextToken()
		} else if p.peekTokenIs(token.DESC) {
			col.Desc = true
			p.nextToken()
		}
		stmt.Columns = append(stmt.Columns, col)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
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

// -----------------------------------------------------------------------------
// CREATE VIEW
// -----------------------------------------------------------------------------

func (p *Parser) parseCreateViewStatement() *ast.CreateViewStatement {
	stmt := &ast.CreateViewStatement{Token: p.curToken}

	if !p.expectPeek(token.VIEW) {
		return nil
	}

	ifNotExists, ok := p.parseIfNotExists()
	if !ok {
		return nil
	}
	stmt.IfNotExists = ifNotExists

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = p.curToken.Literal

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		stmt.Columns = p.parseIdentList()
		if stmt.Columns == nil {
			return nil
		}
	}

	if !p.expectPeek(token.AS) {
		return nil
	}
	if !p.expectPeek(token.SELECT) {
		return nil
	}

	stmt.Select = p.parseSelectStatement()
	if stmt.Select == nil {
		return nil
	}

	return stmt
}

// -----------------------------------------------------------------------------
// CREATE TRIGGER
// -----------------------------------------------------------------------------

func (p *Parser) parseCreateTriggerStatement() *ast.CreateTriggerStatement {
	stmt := &ast.CreateTriggerStatement{Token: p.curToken}

	if !p.expectPeek(token.TRIGGER) {
		return nil
	}

	ifNotExists, ok := p.parseIfNotExists()
	if !ok {
		return nil
	}
	stmt.IfNotExists = ifNotExists

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = p.curToken.Literal

	switch p.peekToken.Type {
	case token.BEFORE, token.AFTER:
		p.nextToken()
		stmt.Timing = p.curToken.Type.String()
	case token.INSTEAD:
		p.nextToken()
		if !p.expectPeek(token.OF) {
			return nil
		}
		stmt.Timing = "INSTEAD OF"
	}

	switch p.peekToken.Type {
	case token.DELETE, token.INSERT:
		p.nextToken()
		stmt.Event = p.curToken.Type.String()
	case token.UPDATE:
		p.nextToken()
		stmt.Event = p.curToken.Type.String()
		if p.peekTokenIs(token.OF) {
			p.nextToken()
			for {
				if !p.expectPeek(token.IDENT) {
					return nil
				}
				stmt.UpdateOf = append(stmt.UpdateOf, p.curToken.Literal)
				if !p.peekTokenIs(token.COMMA) {
					break
				}
				p.nextToken()
			}
		}
	default:
		p.expectedError("DELETE, INSERT or UPDATE", p.peekToken)
		return nil
	}

	if !p.expectPeek(token.ON) {
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Table = p.curToken.Literal

	if p.peekTokenIs(token.FOR) {
		p.nextToken()
		if !p.expectPeek(token.EACH) {
			return nil
		}
		if !p.expectPeek(token.ROW) {
			return nil
		}
		stmt.ForEachRow = true
	}

	if p.peekTokenIs(token.WHEN) {
		p.nextToken()
		p.nextToken()
		stmt.When = p.parseExpression(LOWEST)
		if stmt.When == nil {
			return nil
		}
	}

	if !p.expectPeek(token.BEGIN) {
		return nil
	}

	for {
		if p.peekTokenIs(token.END) {
			p.nextToken()
			break
		}
		if p.peekTokenIs(token.EOF) {
			p.expectedError("END", p.peekToken)
			return nil
		}
		p.nextToken()
		if p.curTokenIs(token.SEMICOLON) {
			continue
		}
		body := p.parseStatement()
		if body == nil {
			return nil
		}
		stmt.Body = append(stmt.Body, body)
		if !p.expectPeek(token.SEMICOLON) {
			return nil
		}
	}

	if len(stmt.Body) == 0 {
		p.expectedError("statement", p.curToken)
		return nil
	}

	return stmt
}
