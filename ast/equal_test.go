package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ilikepi63/moor/token"
)

func ref(name string) *Reference {
	return &Reference{Column: name}
}

func num(v int64) *IntegerLiteral {
	return &IntegerLiteral{Value: v}
}

func TestEqualIgnoresTokens(t *testing.T) {
	a := &Reference{Token: token.Token{Pos: 0, Line: 1, Column: 1, Literal: "x"}, Column: "x"}
	b := &Reference{Token: token.Token{Pos: 99, Line: 7, Column: 3, Literal: "x"}, Column: "x"}
	assert.True(t, Equal(a, b))
}

func TestEqualExpressions(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Node
		equal bool
	}{
		{
			"same infix",
			&InfixExpression{Left: ref("a"), Operator: "+", Right: num(1)},
			&InfixExpression{Left: ref("a"), Operator: "+", Right: num(1)},
			true,
		},
		{
			"different operator",
			&InfixExpression{Left: ref("a"), Operator: "+", Right: num(1)},
			&InfixExpression{Left: ref("a"), Operator: "-", Right: num(1)},
			false,
		},
		{
			"different literal value",
			num(1),
			num(2),
			false,
		},
		{
			"different node kinds",
			num(1),
			&FloatLiteral{Value: 1},
			false,
		},
		{
			"qualified vs bare reference",
			&Reference{Table: "t", Column: "a"},
			ref("a"),
			false,
		},
		{
			"between not flag",
			&BetweenExpression{Expr: ref("a"), Low: num(1), High: num(2)},
			&BetweenExpression{Expr: ref("a"), Not: true, Low: num(1), High: num(2)},
			false,
		},
		{
			"in list order matters",
			&InExpression{Expr: ref("a"), Values: []Expression{num(1), num(2)}},
			&InExpression{Expr: ref("a"), Values: []Expression{num(2), num(1)}},
			false,
		},
		{
			"function call",
			&FunctionCall{Name: "count", Star: true},
			&FunctionCall{Name: "count", Star: true},
			true,
		},
		{
			"case expression",
			&CaseExpression{WhenClauses: []*WhenClause{{Condition: ref("a"), Result: num(1)}}},
			&CaseExpression{WhenClauses: []*WhenClause{{Condition: ref("a"), Result: num(1)}}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, Equal(tt.a, tt.b))
			assert.Equal(t, tt.equal, Equal(tt.b, tt.a), "equality must be symmetric")
		})
	}
}

func TestEqualStatements(t *testing.T) {
	sel := func() *SelectStatement {
		return &SelectStatement{
			Columns: []ResultColumn{&StarResultColumn{}},
			From:    []TableReference{&NamedTable{Name: "t"}},
			Where:   &InfixExpression{Left: ref("a"), Operator: "=", Right: num(1)},
		}
	}

	assert.True(t, Equal(sel(), sel()))

	other := sel()
	other.Distinct = true
	assert.False(t, Equal(sel(), other))

	upd := &UpdateStatement{
		Table: "t",
		Set:   []*SetComponent{{Column: ref("a"), Expression: num(1)}},
	}
	assert.False(t, Equal(sel(), upd))
	assert.True(t, Equal(upd, upd))
}

func TestEqualPrograms(t *testing.T) {
	a := &Program{Statements: []Statement{&CommitStatement{}, &RollbackStatement{}}}
	b := &Program{Statements: []Statement{&CommitStatement{}, &RollbackStatement{}}}
	c := &Program{Statements: []Statement{&CommitStatement{}}}

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestEqualNil(t *testing.T) {
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(ref("a"), nil))
	assert.False(t, Equal(nil, ref("a")))
}

func TestEqualSelfIdempotent(t *testing.T) {
	nodes := []Node{
		ref("a"),
		num(42),
		&StringLiteral{Value: "it's"},
		&NullLiteral{},
		&BooleanLiteral{Value: true},
		&ExistsExpression{Subquery: &SelectStatement{Columns: []ResultColumn{&StarResultColumn{}}}},
		&DeleteStatement{Table: "t"},
		&BeginStatement{Mode: "IMMEDIATE"},
	}
	for _, n := range nodes {
		assert.True(t, Equal(n, n), "%T must equal itself", n)
	}
}
