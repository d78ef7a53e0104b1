// Package moor provides a SQL front end: a scanner, a recursive descent
// statement parser with a Pratt expression parser, and a multi-statement
// driver with statement-level error recovery.
//
// Example usage:
//
//	program, diags := moor.ParseAll(sql)
//	for _, d := range diags {
//	    // report recovered failures
//	}
//	// work with program.Statements
package moor

import (
	"fmt"

	"github.com/ilikepi63/moor/ast"
	"github.com/ilikepi63/moor/lexer"
	"github.com/ilikepi63/moor/parser"
	"github.com/ilikepi63/moor/token"
)

// ParseAll parses every statement in the input. Statements that fail to
// parse are dropped and reported as diagnostics; the surviving statements
// are returned in source order.
func ParseAll(input string) (*ast.Program, []parser.Diagnostic) {
	p := parser.New(lexer.New(input))
	return p.ParseProgram()
}

// Parse parses input that is expected to contain exactly one statement.
func Parse(input string) (ast.Statement, error) {
	p := parser.New(lexer.New(input))
	program, diags := p.ParseProgram()
	for _, d := range diags {
		if !d.Warning {
			return nil, d.Err
		}
	}
	if len(program.Statements) != 1 {
		return nil, fmt.Errorf("expected one statement, got %d", len(program.Statements))
	}
	return program.Statements[0], nil
}

// ParseStatement parses a single statement from tokens starting at start
// and returns the statement and the index of the first token after it.
func ParseStatement(tokens []token.Token, start int) (ast.Statement, int, error) {
	return parser.ParseStatement(tokens, start)
}

// Tokenize returns all tokens from the input, ending with an EOF token.
func Tokenize(input string) []token.Token {
	return lexer.Tokenize(input)
}

// Equal reports whether two AST nodes are structurally equal, ignoring
// token positions and other source trivia.
func Equal(a, b ast.Node) bool {
	return ast.Equal(a, b)
}

// Re-export core types for convenience
type (
	Program      = ast.Program
	Statement    = ast.Statement
	Expression   = ast.Expression
	ResultColumn = ast.ResultColumn
	Token        = token.Token
	Diagnostic   = parser.Diagnostic
	SyntaxError  = parser.SyntaxError
	ScanError    = lexer.ScanError
)

// Statement types
type (
	SelectStatement        = ast.SelectStatement
	InsertStatement        = ast.InsertStatement
	UpdateStatement        = ast.UpdateStatement
	DeleteStatement        = ast.DeleteStatement
	CreateTableStatement   = ast.CreateTableStatement
	CreateIndexStatement   = ast.CreateIndexStatement
	CreateViewStatement    = ast.CreateViewStatement
	CreateTriggerStatement = ast.CreateTriggerStatement
	BeginStatement         = ast.BeginStatement
	CommitStatement        = ast.CommitStatement
	RollbackStatement      = ast.RollbackStatement
)

// Expression types
type (
	Reference          = ast.Reference
	IntegerLiteral     = ast.IntegerLiteral
	FloatLiteral       = ast.FloatLiteral
	StringLiteral      = ast.StringLiteral
	NullLiteral        = ast.NullLiteral
	BooleanLiteral     = ast.BooleanLiteral
	PrefixExpression   = ast.PrefixExpression
	InfixExpression    = ast.InfixExpression
	BetweenExpression  = ast.BetweenExpression
	InExpression       = ast.InExpression
	LikeExpression     = ast.LikeExpression
	IsNullExpression   = ast.IsNullExpression
	ExistsExpression   = ast.ExistsExpression
	CaseExpression     = ast.CaseExpression
	FunctionCall       = ast.FunctionCall
	SubqueryExpression = ast.SubqueryExpression
)

// Helper types
type (
	StarResultColumn       = ast.StarResultColumn
	ExpressionResultColumn = ast.ExpressionResultColumn
	NamedTable             = ast.NamedTable
	SubqueryTable          = ast.SubqueryTable
	JoinClause             = ast.JoinClause
	OrderByItem            = ast.OrderByItem
	SetComponent           = ast.SetComponent
	WhenClause             = ast.WhenClause
	ColumnDefinition       = ast.ColumnDefinition
	ColumnConstraint       = ast.ColumnConstraint
	TableConstraint        = ast.TableConstraint
	IndexColumn            = ast.IndexColumn
	TypeName               = ast.TypeName
)

// Visitor defines an interface for AST visitors.
type Visitor interface {
	Visit(node ast.Node) Visitor
}

// Walk traverses an AST in depth-first order.
func Walk(v Visitor, node ast.Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *ast.Program:
		for _, stmt := range n.Statements {
			Walk(v, stmt)
		}
	case *ast.SelectStatement:
		for _, col := range n.Columns {
			if ec, ok := col.(*ast.ExpressionResultColumn); ok {
				Walk(v, ec.Expression)
			}
		}
		for _, ref := range n.From {
			if st, ok := ref.(*ast.SubqueryTable); ok {
				Walk(v, st.Select)
			}
		}
		for _, join := range n.Joins {
			if st, ok := join.Table.(*ast.SubqueryTable); ok {
				Walk(v, st.Select)
			}
			if join.On != nil {
				Walk(v, join.On)
			}
		}
		if n.Where != nil {
			Walk(v, n.Where)
		}
		for _, g := range n.GroupBy {
			Walk(v, g)
		}
		if n.Having != nil {
			Walk(v, n.Having)
		}
		for _, o := range n.OrderBy {
			Walk(v, o.Expression)
		}
		if n.Limit != nil {
			Walk(v, n.Limit)
		}
		if n.Offset != nil {
			Walk(v, n.Offset)
		}
	case *ast.InsertStatement:
		for _, row := range n.Values {
			for _, val := range row {
				Walk(v, val)
			}
		}
		if n.Select != nil {
			Walk(v, n.Select)
		}
	case *ast.UpdateStatement:
		for _, sc := range n.Set {
			Walk(v, sc.Column)
			Walk(v, sc.Expression)
		}
		if n.Where != nil {
			Walk(v, n.Where)
		}
	case *ast.DeleteStatement:
		if n.Where != nil {
			Walk(v, n.Where)
		}
	case *ast.CreateTableStatement:
		for _, col := range n.Columns {
			for _, con := range col.Constraints {
				if con.Default != nil {
					Walk(v, con.Default)
				}
				if con.Check != nil {
					Walk(v, con.Check)
				}
			}
		}
		for _, con := range n.Constraints {
			if con.Check != nil {
				Walk(v, con.Check)
			}
		}
	case *ast.CreateIndexStatement:
		if n.Where != nil {
			Walk(v, n.Where)
		}
	case *ast.CreateViewStatement:
		Walk(v, n.Select)
	case *ast.CreateTriggerStatement:
		if n.When != nil {
			Walk(v, n.When)
		}
		for _, stmt := range n.Body {
			Walk(v, stmt)
		}
	case *ast.PrefixExpression:
		Walk(v, n.Right)
	case *ast.InfixExpression:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *ast.BetweenExpression:
		Walk(v, n.Expr)
		Walk(v, n.Low)
		Walk(v, n.High)
	case *ast.InExpression:
		Walk(v, n.Expr)
		for _, val := range n.Values {
			Walk(v, val)
		}
		if n.Subquery != nil {
			Walk(v, n.Subquery)
		}
	case *ast.LikeExpression:
		Walk(v, n.Expr)
		Walk(v, n.Pattern)
	case *ast.IsNullExpression:
		Walk(v, n.Expr)
	case *ast.ExistsExpression:
		Walk(v, n.Subquery)
	case *ast.FunctionCall:
		for _, arg := range n.Arguments {
			Walk(v, arg)
		}
	case *ast.CaseExpression:
		if n.Operand != nil {
			Walk(v, n.Operand)
		}
		for _, wc := range n.WhenClauses {
			if wc.Condition != nil {
				Walk(v, wc.Condition)
			}
			Walk(v, wc.Result)
		}
		if n.ElseClause != nil {
			Walk(v, n.ElseClause)
		}
	case *ast.SubqueryExpression:
		Walk(v, n.Subquery)
	}
}

// Inspector provides a convenient way to inspect AST nodes.
type Inspector struct {
	nodes []ast.Node
}

// NewInspector creates a new Inspector for the given program.
func NewInspector(program *ast.Program) *Inspector {
	insp := &Inspector{}
	Walk(collector{insp}, program)
	return insp
}

type collector struct {
	insp *Inspector
}

func (c collector) Visit(node ast.Node) Visitor {
	c.insp.nodes = append(c.insp.nodes, node)
	return c
}

// FindReferences returns all column references in the AST.
func (insp *Inspector) FindReferences() []*ast.Reference {
	var refs []*ast.Reference
	for _, node := range insp.nodes {
		if r, ok := node.(*ast.Reference); ok {
			refs = append(refs, r)
		}
	}
	return refs
}

// FindFunctionCalls returns all function calls in the AST.
func (insp *Inspector) FindFunctionCalls() []*ast.FunctionCall {
	var calls []*ast.FunctionCall
	for _, node := range insp.nodes {
		if fc, ok := node.(*ast.FunctionCall); ok {
			calls = append(calls, fc)
		}
	}
	return calls
}

// FindSelectStatements returns all SELECT statements in the AST.
func (insp *Inspector) FindSelectStatements() []*ast.SelectStatement {
	var stmts []*ast.SelectStatement
	for _, node := range insp.nodes {
		if ss, ok := node.(*ast.SelectStatement); ok {
			stmts = append(stmts, ss)
		}
	}
	return stmts
}

// FindTableNames returns the distinct table names read or written by the
// program's statements, in first-seen order.
func (insp *Inspector) FindTableNames() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, node := range insp.nodes {
		switch n := node.(type) {
		case *ast.SelectStatement:
			for _, ref := range n.From {
				if nt, ok := ref.(*ast.NamedTable); ok {
					add(nt.Name)
				}
			}
			for _, join := range n.Joins {
				if nt, ok := join.Table.(*ast.NamedTable); ok {
					add(nt.Name)
				}
			}
		case *ast.InsertStatement:
			add(n.Table)
		case *ast.UpdateStatement:
			add(n.Table)
		case *ast.DeleteStatement:
			add(n.Table)
		case *ast.CreateTableStatement:
			add(n.Name)
		}
	}
	return names
}
