// Package ast defines the Abstract Syntax Tree nodes for SQL.
package ast

import (
	"strconv"
	"strings"

	"github.com/ilikepi63/moor/token"
)

// Node represents a node in the AST. Nodes are immutable after construction
// and form a tree of owned children; no node is shared between statements.
type Node interface {
	TokenLiteral() string
	String() string
}

// Statement represents a statement node.
type Statement interface {
	Node
	statementNode()
}

// Expression represents an expression node.
type Expression interface {
	Node
	expressionNode()
}

// ResultColumn represents one entry of a SELECT result-column list.
type ResultColumn interface {
	Node
	resultColumnNode()
}

// TableReference represents one entry of a FROM clause.
type TableReference interface {
	Node
	tableReferenceNode()
}

// Program is the root node of every AST.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out strings.Builder
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString(";\n")
	}
	return out.String()
}

// -----------------------------------------------------------------------------
// Literals and references
// -----------------------------------------------------------------------------

// Reference represents a column reference, optionally table-qualified.
type Reference struct {
	Token  token.Token
	Table  string // optional
	Column string
}

func (r *Reference) expressionNode()      {}
func (r *Reference) TokenLiteral() string { return r.Token.Literal }
func (r *Reference) String() string {
	if r.Table != "" {
		return r.Table + "." + r.Column
	}
	return r.Column
}

// IntegerLiteral represents an integer literal.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) String() string       { return strconv.FormatInt(il.Value, 10) }

// FloatLiteral represents a floating-point literal.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Literal }
func (fl *FloatLiteral) String() string {
	return strconv.FormatFloat(fl.Value, 'g', -1, 64)
}

// StringLiteral represents a string literal. Value holds the unescaped text.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string {
	return "'" + strings.ReplaceAll(sl.Value, "'", "''") + "'"
}

// NullLiteral represents a NULL literal.
type NullLiteral struct {
	Token token.Token
}

func (nl *NullLiteral) expressionNode()      {}
func (nl *NullLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NullLiteral) String() string       { return "NULL" }

// BooleanLiteral represents TRUE or FALSE.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) String() string {
	if bl.Value {
		return "TRUE"
	}
	return "FALSE"
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

// PrefixExpression represents a prefix expression (NOT x, -x, +x).
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) String() string {
	if pe.Operator == "NOT" {
		return "(NOT " + pe.Right.String() + ")"
	}
	return "(" + pe.Operator + pe.Right.String() + ")"
}

// InfixExpression represents a binary operator expression (a + b, a AND b).
type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + ie.Operator + " " + ie.Right.String() + ")"
}

// BetweenExpression represents expr [NOT] BETWEEN low AND high.
type BetweenExpression struct {
	Token token.Token
	Expr  Expression
	Not   bool
	Low   Expression
	High  Expression
}

func (be *BetweenExpression) expressionNode()      {}
func (be *BetweenExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BetweenExpression) String() string {
	not := ""
	if be.Not {
		not = "NOT "
	}
	return be.Expr.String() + " " + not + "BETWEEN " + be.Low.String() + " AND " + be.High.String()
}

// InExpression represents expr [NOT] IN (values) or expr [NOT] IN (subquery).
type InExpression struct {
	Token    token.Token
	Expr     Expression
	Not      bool
	Values   []Expression
	Subquery *SelectStatement
}

func (ie *InExpression) expressionNode()      {}
func (ie *InExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InExpression) String() string {
	not := ""
	if ie.Not {
		not = "NOT "
	}
	if ie.Subquery != nil {
		return ie.Expr.String() + " " + not + "IN (" + ie.Subquery.String() + ")"
	}
	var vals []string
	for _, v := range ie.Values {
		vals = append(vals, v.String())
	}
	return ie.Expr.String() + " " + not + "IN (" + strings.Join(vals, ", ") + ")"
}

// LikeExpression represents expr [NOT] LIKE pattern.
type LikeExpression struct {
	Token   token.Token
	Expr    Expression
	Not     bool
	Pattern Expression
}

func (le *LikeExpression) expressionNode()      {}
func (le *LikeExpression) TokenLiteral() string { return le.Token.Literal }
func (le *LikeExpression) String() string {
	not := ""
	if le.Not {
		not = "NOT "
	}
	return le.Expr.String() + " " + not + "LIKE " + le.Pattern.String()
}

// IsNullExpression represents expr IS [NOT] NULL.
type IsNullExpression struct {
	Token token.Token
	Expr  Expression
	Not   bool
}

func (in *IsNullExpression) expressionNode()      {}
func (in *IsNullExpression) TokenLiteral() string { return in.Token.Literal }
func (in *IsNullExpression) String() string {
	if in.Not {
		return in.Expr.String() + " IS NOT NULL"
	}
	return in.Expr.String() + " IS NULL"
}

// ExistsExpression represents EXISTS (subquery).
type ExistsExpression struct {
	Token    token.Token
	Subquery *SelectStatement
}

func (ee *ExistsExpression) expressionNode()      {}
func (ee *ExistsExpression) TokenLiteral() string { return ee.Token.Literal }
func (ee *ExistsExpression) String() string {
	return "EXISTS (" + ee.Subquery.String() + ")"
}

// FunctionCall represents a function call. Star is true for COUNT(*).
type FunctionCall struct {
	Token     token.Token
	Name      string
	Distinct  bool
	Star      bool
	Arguments []Expression
}

func (fc *FunctionCall) expressionNode()      {}
func (fc *FunctionCall) TokenLiteral() string { return fc.Token.Literal }
func (fc *FunctionCall) String() string {
	if fc.Star {
		return fc.Name + "(*)"
	}
	var args []string
	for _, a := range fc.Arguments {
		args = append(args, a.String())
	}
	distinct := ""
	if fc.Distinct {
		distinct = "DISTINCT "
	}
	return fc.Name + "(" + distinct + strings.Join(args, ", ") + ")"
}

// WhenClause is one WHEN condition THEN result arm of a CASE expression.
type WhenClause struct {
	Condition Expression
	Result    Expression
}

// CaseExpression represents CASE [operand] WHEN ... THEN ... [ELSE ...] END.
type CaseExpression struct {
	Token       token.Token
	Operand     Expression // optional
	WhenClauses []*WhenClause
	ElseClause  Expression // optional
}

func (ce *CaseExpression) expressionNode()      {}
func (ce *CaseExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CaseExpression) String() string {
	var out strings.Builder
	out.WriteString("CASE")
	if ce.Operand != nil {
		out.WriteString(" ")
		out.WriteString(ce.Operand.String())
	}
	for _, wc := range ce.WhenClauses {
		out.WriteString(" WHEN ")
		out.WriteString(wc.Condition.String())
		out.WriteString(" THEN ")
		out.WriteString(wc.Result.String())
	}
	if ce.ElseClause != nil {
		out.WriteString(" ELSE ")
		out.WriteString(ce.ElseClause.String())
	}
	out.WriteString(" END")
	return out.String()
}

// SubqueryExpression represents a parenthesized scalar subquery.
type SubqueryExpression struct {
	Token    token.Token
	Subquery *SelectStatement
}

func (se *SubqueryExpression) expressionNode()      {}
func (se *SubqueryExpression) TokenLiteral() string { return se.Token.Literal }
func (se *SubqueryExpression) String() string {
	return "(" + se.Subquery.String() + ")"
}

// -----------------------------------------------------------------------------
// Result columns and table references
// -----------------------------------------------------------------------------

// StarResultColumn represents * or table.* in a result-column list.
type StarResultColumn struct {
	Token token.Token
	Table string // optional qualifier
}

func (sc *StarResultColumn) resultColumnNode()    {}
func (sc *StarResultColumn) TokenLiteral() string { return sc.Token.Literal }
func (sc *StarResultColumn) String() string {
	if sc.Table != "" {
		return sc.Table + ".*"
	}
	return "*"
}

// ExpressionResultColumn represents expr [[AS] alias] in a result-column list.
type ExpressionResultColumn struct {
	Token      token.Token
	Expression Expression
	Alias      string // optional
}

func (ec *ExpressionResultColumn) resultColumnNode()    {}
func (ec *ExpressionResultColumn) TokenLiteral() string { return ec.Token.Literal }
func (ec *ExpressionResultColumn) String() string {
	if ec.Alias != "" {
		return ec.Expression.String() + " AS " + ec.Alias
	}
	return ec.Expression.String()
}

// NamedTable represents a plain table reference with an optional alias.
type NamedTable struct {
	Token token.Token
	Name  string
	Alias string // optional
}

func (nt *NamedTable) tableReferenceNode()  {}
func (nt *NamedTable) TokenLiteral() string { return nt.Token.Literal }
func (nt *NamedTable) String() string {
	if nt.Alias != "" {
		return nt.Name + " AS " + nt.Alias
	}
	return nt.Name
}

// SubqueryTable represents (SELECT ...) [AS alias] in a FROM clause.
type SubqueryTable struct {
	Token  token.Token
	Select *SelectStatement
	Alias  string // optional
}

func (st *SubqueryTable) tableReferenceNode()  {}
func (st *SubqueryTable) TokenLiteral() string { return st.Token.Literal }
func (st *SubqueryTable) String() string {
	s := "(" + st.Select.String() + ")"
	if st.Alias != "" {
		s += " AS " + st.Alias
	}
	return s
}

// JoinClause represents one JOIN step applied to the preceding table refs.
type JoinClause struct {
	Token    token.Token
	JoinType string // "INNER", "LEFT OUTER", "CROSS"
	Table    TableReference
	On       Expression // optional
}

func (jc *JoinClause) TokenLiteral() string { return jc.Token.Literal }
func (jc *JoinClause) String() string {
	s := jc.JoinType + " JOIN " + jc.Table.String()
	if jc.On != nil {
		s += " ON " + jc.On.String()
	}
	return s
}

// OrderByItem is one ORDER BY entry.
type OrderByItem struct {
	Expression Expression
	Desc       bool
}

func (o *OrderByItem) String() string {
	if o.Desc {
		return o.Expression.String() + " DESC"
	}
	return o.Expression.String()
}

// -----------------------------------------------------------------------------
// DML statements
// -----------------------------------------------------------------------------

// SelectStatement represents a SELECT statement.
type SelectStatement struct {
	Token    token.Token
	Distinct bool
	Columns  []ResultColumn
	From     []TableReference
	Joins    []*JoinClause
	Where    Expression // optional
	GroupBy  []Expression
	Having   Expression // optional
	OrderBy  []*OrderByItem
	Limit    Expression // optional
	Offset   Expression // optional, only with Limit
}

func (ss *SelectStatement) statementNode()       {}
func (ss *SelectStatement) TokenLiteral() string { return ss.Token.Literal }
func (ss *SelectStatement) String() string {
	var out strings.Builder
	out.WriteString("SELECT ")
	if ss.Distinct {
		out.WriteString("DISTINCT ")
	}
	var cols []string
	for _, c := range ss.Columns {
		cols = append(cols, c.String())
	}
	out.WriteString(strings.Join(cols, ", "))
	if len(ss.From) > 0 {
		out.WriteString(" FROM ")
		var tabs []string
		for _, t := range ss.From {
			tabs = append(tabs, t.String())
		}
		out.WriteString(strings.Join(tabs, ", "))
	}
	for _, j := range ss.Joins {
		out.WriteString(" ")
		out.WriteString(j.String())
	}
	if ss.Where != nil {
		out.WriteString(" WHERE ")
		out.WriteString(ss.Where.String())
	}
	if len(ss.GroupBy) > 0 {
		out.WriteString(" GROUP BY ")
		var groups []string
		for _, g := range ss.GroupBy {
			groups = append(groups, g.String())
		}
		out.WriteString(strings.Join(groups, ", "))
	}
	if ss.Having != nil {
		out.WriteString(" HAVING ")
		out.WriteString(ss.Having.String())
	}
	if len(ss.OrderBy) > 0 {
		out.WriteString(" ORDER BY ")
		var items []string
		for _, o := range ss.OrderBy {
			items = append(items, o.String())
		}
		out.WriteString(strings.Join(items, ", "))
	}
	if ss.Limit != nil {
		out.WriteString(" LIMIT ")
		out.WriteString(ss.Limit.String())
		if ss.Offset != nil {
			out.WriteString(" OFFSET ")
			out.WriteString(ss.Offset.String())
		}
	}
	return out.String()
}

// SetComponent is one column = expression pair of an UPDATE SET clause.
// The column is always a bare reference, never an arbitrary expression.
type SetComponent struct {
	Column     *Reference
	Expression Expression
}

func (sc *SetComponent) String() string {
	return sc.Column.String() + " = " + sc.Expression.String()
}

// UpdateStatement represents an UPDATE statement.
type UpdateStatement struct {
	Token      token.Token
	OrConflict string // "", "ROLLBACK", "ABORT", "REPLACE", "FAIL", "IGNORE"
	Table      string
	Set        []*SetComponent
	Where      Expression // optional
}

func (us *UpdateStatement) statementNode()       {}
func (us *UpdateStatement) TokenLiteral() string { return us.Token.Literal }
func (us *UpdateStatement) String() string {
	var out strings.Builder
	out.WriteString("UPDATE ")
	if us.OrConflict != "" {
		out.WriteString("OR " + us.OrConflict + " ")
	}
	out.WriteString(us.Table)
	out.WriteString(" SET ")
	var comps []string
	for _, c := range us.Set {
		comps = append(comps, c.String())
	}
	out.WriteString(strings.Join(comps, ", "))
	if us.Where != nil {
		out.WriteString(" WHERE ")
		out.WriteString(us.Where.String())
	}
	return out.String()
}

// InsertStatement represents an INSERT statement. Exactly one of Values,
// Select or DefaultValues describes the row source.
type InsertStatement struct {
	Token         token.Token
	OrConflict    string
	Table         string
	Columns       []string
	Values        [][]Expression
	Select        *SelectStatement
	DefaultValues bool
}

func (is *InsertStatement) statementNode()       {}
func (is *InsertStatement) TokenLiteral() string { return is.Token.Literal }
func (is *InsertStatement) String() string {
	var out strings.Builder
	out.WriteString("INSERT ")
	if is.OrConflict != "" {
		out.WriteString("OR " + is.OrConflict + " ")
	}
	out.WriteString("INTO ")
	out.WriteString(is.Table)
	if len(is.Columns) > 0 {
		out.WriteString(" (" + strings.Join(is.Columns, ", ") + ")")
	}
	switch {
	case is.DefaultValues:
		out.WriteString(" DEFAULT VALUES")
	case is.Select != nil:
		out.WriteString(" ")
		out.WriteString(is.Select.String())
	default:
		out.WriteString(" VALUES ")
		var rows []string
		for _, row := range is.Values {
			var vals []string
			for _, v := range row {
				vals = append(vals, v.String())
			}
			rows = append(rows, "("+strings.Join(vals, ", ")+")")
		}
		out.WriteString(strings.Join(rows, ", "))
	}
	return out.String()
}

// DeleteStatement represents a DELETE statement.
type DeleteStatement struct {
	Token token.Token
	Table string
	Where Expression // optional
}

func (ds *DeleteStatement) statementNode()       {}
func (ds *DeleteStatement) TokenLiteral() string { return ds.Token.Literal }
func (ds *DeleteStatement) String() string {
	s := "DELETE FROM " + ds.Table
	if ds.Where != nil {
		s += " WHERE " + ds.Where.String()
	}
	return s
}

// -----------------------------------------------------------------------------
// DDL statements
// -----------------------------------------------------------------------------

// TypeName is a column type such as INTEGER or VARCHAR(40).
type TypeName struct {
	Name string
	Args []int64 // optional size/scale arguments
}

func (tn *TypeName) String() string {
	if len(tn.Args) == 0 {
		return tn.Name
	}
	var args []string
	for _, a := range tn.Args {
		args = append(args, strconv.FormatInt(a, 10))
	}
	return tn.Name + "(" + strings.Join(args, ", ") + ")"
}

// ColumnConstraintKind enumerates the column constraint variants.
type ColumnConstraintKind int

const (
	PrimaryKeyConstraint ColumnConstraintKind = iota
	NotNullConstraint
	UniqueColumnConstraint
	DefaultConstraint
	CheckColumnConstraint
	ReferencesConstraint
)

// ColumnConstraint is one constraint attached to a column definition.
type ColumnConstraint struct {
	Token         token.Token
	Kind          ColumnConstraintKind
	Desc          bool // PRIMARY KEY DESC
	Autoincrement bool
	Default       Expression // DEFAULT
	Check         Expression // CHECK
	RefTable      string     // REFERENCES
	RefColumns    []string
}

func (cc *ColumnConstraint) String() string {
	switch cc.Kind {
	case PrimaryKeyConstraint:
		s := "PRIMARY KEY"
		if cc.Desc {
			s += " DESC"
		}
		if cc.Autoincrement {
			s += " AUTOINCREMENT"
		}
		return s
	case NotNullConstraint:
		return "NOT NULL"
	case UniqueColumnConstraint:
		return "UNIQUE"
	case DefaultConstraint:
		return "DEFAULT " + cc.Default.String()
	case CheckColumnConstraint:
		return "CHECK (" + cc.Check.String() + ")"
	case ReferencesConstraint:
		s := "REFERENCES " + cc.RefTable
		if len(cc.RefColumns) > 0 {
			s += " (" + strings.Join(cc.RefColumns, ", ") + ")"
		}
		return s
	}
	return ""
}

// ColumnDefinition is one column of a CREATE TABLE statement.
type ColumnDefinition struct {
	Token       token.Token
	Name        string
	Type        *TypeName // optional
	Constraints []*ColumnConstraint
}

func (cd *ColumnDefinition) String() string {
	var out strings.Builder
	out.WriteString(cd.Name)
	if cd.Type != nil {
		out.WriteString(" ")
		out.WriteString(cd.Type.String())
	}
	for _, c := range cd.Constraints {
		out.WriteString(" ")
		out.WriteString(c.String())
	}
	return out.String()
}

// TableConstraintKind enumerates the table constraint variants.
type TableConstraintKind int

const (
	PrimaryKeyTableConstraint TableConstraintKind = iota
	UniqueTableConstraint
	CheckTableConstraint
	ForeignKeyConstraint
)

// TableConstraint is a table-level constraint of a CREATE TABLE statement.
type TableConstraint struct {
	Token      token.Token
	Name       string // optional CONSTRAINT name
	Kind       TableConstraintKind
	Columns    []string
	Check      Expression // CHECK
	RefTable   string     // FOREIGN KEY
	RefColumns []string
}

func (tc *TableConstraint) String() string {
	var out strings.Builder
	if tc.Name != "" {
		out.WriteString("CONSTRAINT " + tc.Name + " ")
	}
	switch tc.Kind {
	case PrimaryKeyTableConstraint:
		out.WriteString("PRIMARY KEY (" + strings.Join(tc.Columns, ", ") + ")")
	case UniqueTableConstraint:
		out.WriteString("UNIQUE (" + strings.Join(tc.Columns, ", ") + ")")
	case CheckTableConstraint:
		out.WriteString("CHECK (" + tc.Check.String() + ")")
	case ForeignKeyConstraint:
		out.WriteString("FOREIGN KEY (" + strings.Join(tc.Columns, ", ") + ") REFERENCES " + tc.RefTable)
		if len(tc.RefColumns) > 0 {
			out.WriteString(" (" + strings.Join(tc.RefColumns, ", ") + ")")
		}
	}
	return out.String()
}

// CreateTableStatement represents CREATE TABLE.
type CreateTableStatement struct {
	Token       token.Token
	IfNotExists bool
	Name        string
	Columns     []*ColumnDefinition
	Constraints []*TableConstraint
}

func (ct *CreateTableStatement) statementNode()       {}
func (ct *CreateTableStatement) TokenLiteral() string { return ct.Token.Literal }
func (ct *CreateTableStatement) String() string {
	var out strings.Builder
	out.WriteString("CREATE TABLE ")
	if ct.IfNotExists {
		out.WriteString("IF NOT EXISTS ")
	}
	out.WriteString(ct.Name)
	out.WriteString(" (")
	var defs []string
	for _, c := range ct.Columns {
		defs = append(defs, c.String())
	}
	for _, c := range ct.Constraints {
		defs = append(defs, c.String())
	}
	out.WriteString(strings.Join(defs, ", "))
	out.WriteString(")")
	return out.String()
}

// IndexColumn is one indexed column of a CREATE INDEX statement.
type IndexColumn struct {
	Name string
	Desc bool
}

func (ic *IndexColumn) String() string {
	if ic.Desc {
		return ic.Name + " DESC"
	}
	return ic.Name
}

// CreateIndexStatement represents CREATE [UNIQUE] INDEX.
type CreateIndexStatement struct {
	Token       token.Token
	Unique      bool
	IfNotExists bool
	Name        string
	Table       string
	Columns     []*IndexColumn
	Where       Expression // optional partial index predicate
}

func (ci *CreateIndexStatement) statementNode()       {}
func (ci *CreateIndexStatement) TokenLiteral() string { return ci.Token.Literal }
func (ci *CreateIndexStatement) String() string {
	var out strings.Builder
	out.WriteString("CREATE ")
	if ci.Unique {
		out.WriteString("UNIQUE ")
	}
	out.WriteString("INDEX ")
	if ci.IfNotExists {
		out.WriteString("IF NOT EXISTS ")
	}
	out.WriteString(ci.Name + " ON " + ci.Table + " (")
	var cols []string
	for _, c := range ci.Columns {
		cols = append(cols, c.String())
	}
	out.WriteString(strings.Join(cols, ", "))
	out.WriteString(")")
	if ci.Where != nil {
		out.WriteString(" WHERE " + ci.Where.String())
	}
	return out.String()
}

// CreateViewStatement represents CREATE VIEW.
type CreateViewStatement struct {
	Token       token.Token
	IfNotExists bool
	Name        string
	Columns     []string // optional explicit column names
	Select      *SelectStatement
}

func (cv *CreateViewStatement) statementNode()       {}
func (cv *CreateViewStatement) TokenLiteral() string { return cv.Token.Literal }
func (cv *CreateViewStatement) String() string {
	var out strings.Builder
	out.WriteString("CREATE VIEW ")
	if cv.IfNotExists {
		out.WriteString("IF NOT EXISTS ")
	}
	out.WriteString(cv.Name)
	if len(cv.Columns) > 0 {
		out.WriteString(" (" + strings.Join(cv.Columns, ", ") + ")")
	}
	out.WriteString(" AS " + cv.Select.String())
	return out.String()
}

// CreateTriggerStatement represents CREATE TRIGGER.
type CreateTriggerStatement struct {
	Token       token.Token
	IfNotExists bool
	Name        string
	Timing      string // "", "BEFORE", "AFTER", "INSTEAD OF"
	Event       string // "DELETE", "INSERT", "UPDATE"
	UpdateOf    []string
	Table       string
	ForEachRow  bool
	When        Expression // optional
	Body        []Statement
}

func (ct *CreateTriggerStatement) statementNode()       {}
func (ct *CreateTriggerStatement) TokenLiteral() string { return ct.Token.Literal }
func (ct *CreateTriggerStatement) String() string {
	var out strings.Builder
	out.WriteString("CREATE TRIGGER ")
	if ct.IfNotExists {
		out.WriteString("IF NOT EXISTS ")
	}
	out.WriteString(ct.Name)
	if ct.Timing != "" {
		out.WriteString(" " + ct.Timing)
	}
	out.WriteString(" " + ct.Event)
	if len(ct.UpdateOf) > 0 {
		out.WriteString(" OF " + strings.Join(ct.UpdateOf, ", "))
	}
	out.WriteString(" ON " + ct.Table)
	if ct.ForEachRow {
		out.WriteString(" FOR EACH ROW")
	}
	if ct.When != nil {
		out.WriteString(" WHEN " + ct.When.String())
	}
	out.WriteString(" BEGIN ")
	for _, s := range ct.Body {
		out.WriteString(s.String())
		out.WriteString("; ")
	}
	out.WriteString("END")
	return out.String()
}

// -----------------------------------------------------------------------------
// Transaction statements
// -----------------------------------------------------------------------------

// BeginStatement represents BEGIN [DEFERRED|IMMEDIATE|EXCLUSIVE] [TRANSACTION].
type BeginStatement struct {
	Token token.Token
	Mode  string // "", "DEFERRED", "IMMEDIATE", "EXCLUSIVE"
}

func (bs *BeginStatement) statementNode()       {}
func (bs *BeginStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BeginStatement) String() string {
	if bs.Mode != "" {
		return "BEGIN " + bs.Mode + " TRANSACTION"
	}
	return "BEGIN TRANSACTION"
}

// CommitStatement represents COMMIT [TRANSACTION].
type CommitStatement struct {
	Token token.Token
}

func (cs *CommitStatement) statementNode()       {}
func (cs *CommitStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *CommitStatement) String() string       { return "COMMIT TRANSACTION" }

// RollbackStatement represents ROLLBACK [TRANSACTION].
type RollbackStatement struct {
	Token token.Token
}

func (rs *RollbackStatement) statementNode()       {}
func (rs *RollbackStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *RollbackStatement) String() string       { return "ROLLBACK TRANSACTION" }
