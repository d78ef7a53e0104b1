package parser

import (
	"testing"

	"github.com/ilikepi63/moor/ast"
	"github.com/ilikepi63/moor/lexer"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New(input))
	program, diags := p.ParseProgram()
	checkDiagnostics(t, diags)
	return program
}

func parseOneStatement(t *testing.T, input string) ast.Statement {
	t.Helper()
	program := parseProgram(t, input)
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	return program.Statements[0]
}

func checkDiagnostics(t *testing.T, diags []Diagnostic) {
	t.Helper()
	for _, d := range diags {
		t.Errorf("parser diagnostic: %s", d)
	}
	if t.Failed() {
		t.FailNow()
	}
}

func TestSelectStatement(t *testing.T) {
	tests := []struct {
		input    string
		expected int // number of result columns
	}{
		{"SELECT 1", 1},
		{"SELECT a, b, c FROM t", 3},
		{"SELECT * FROM users", 1},
		{"SELECT DISTINCT name FROM products", 1},
		{"SELECT u.*, count(*) FROM users u", 2},
	}

	for _, tt := range tests {
		stmt, ok := parseOneStatement(t, tt.input).(*ast.SelectStatement)
		if !ok {
			t.Fatalf("input %q: expected SelectStatement", tt.input)
		}
		if len(stmt.Columns) != tt.expected {
			t.Errorf("input %q: expected %d columns, got %d", tt.input, tt.expected, len(stmt.Columns))
		}
	}
}

func TestSelectClauses(t *testing.T) {
	input := `SELECT dept, count(*) AS n
FROM employees
WHERE salary > 1000
GROUP BY dept
HAVING count(*) > 2
ORDER BY n DESC
LIMIT 10 OFFSET 5`

	stmt, ok := parseOneStatement(t, input).(*ast.SelectStatement)
	if !ok {
		t.Fatalf("expected SelectStatement")
	}

	if stmt.Where == nil {
		t.Error("expected WHERE clause")
	}
	if len(stmt.GroupBy) != 1 {
		t.Errorf("expected 1 GROUP BY item, got %d", len(stmt.GroupBy))
	}
	if stmt.Having == nil {
		t.Error("expected HAVING clause")
	}
	if len(stmt.OrderBy) != 1 || !stmt.OrderBy[0].Desc {
		t.Errorf("expected 1 descending ORDER BY item, got %+v", stmt.OrderBy)
	}
	if stmt.Limit == nil || stmt.Offset == nil {
		t.Error("expected LIMIT and OFFSET")
	}
}

func TestSelectJoins(t *testing.T) {
	tests := []struct {
		input    string
		joinType string
		hasOn    bool
	}{
		{"SELECT * FROM a JOIN b ON a.id = b.id", "INNER", true},
		{"SELECT * FROM a INNER JOIN b ON a.id = b.id", "INNER", true},
		{"SELECT * FROM a LEFT JOIN b ON a.id = b.id", "LEFT OUTER", true},
		{"SELECT * FROM a LEFT OUTER JOIN b ON a.id = b.id", "LEFT OUTER", true},
		{"SELECT * FROM a CROSS JOIN b", "CROSS", false},
	}

	for _, tt := range tests {
		stmt, ok := parseOneStatement(t, tt.input).(*ast.SelectStatement)
		if !ok {
			t.Fatalf("input %q: expected SelectStatement", tt.input)
		}
		if len(stmt.Joins) != 1 {
			t.Fatalf("input %q: expected 1 join, got %d", tt.input, len(stmt.Joins))
		}
		join := stmt.Joins[0]
		if join.JoinType != tt.joinType {
			t.Errorf("input %q: expected join type %q, got %q", tt.input, tt.joinType, join.JoinType)
		}
		if (join.On != nil) != tt.hasOn {
			t.Errorf("input %q: ON clause presence mismatch", tt.input)
		}
	}
}

func TestSelectSubqueryTable(t *testing.T) {
	stmt, ok := parseOneStatement(t, "SELECT * FROM (SELECT a FROM t) AS sub").(*ast.SelectStatement)
	if !ok {
		t.Fatalf("expected SelectStatement")
	}
	if len(stmt.From) != 1 {
		t.Fatalf("expected 1 table reference, got %d", len(stmt.From))
	}
	sub, ok := stmt.From[0].(*ast.SubqueryTable)
	if !ok {
		t.Fatalf("expected SubqueryTable, got %T", stmt.From[0])
	}
	if sub.Alias != "sub" {
		t.Errorf("expected alias %q, got %q", "sub", sub.Alias)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"SELECT a + b * c", "SELECT (a + (b * c))"},
		{"SELECT (a + b) * c", "SELECT ((a + b) * c)"},
		{"SELECT -a * b", "SELECT ((-a) * b)"},
		{"SELECT a = b AND c = d", "SELECT ((a = b) AND (c = d))"},
		{"SELECT a OR b AND c", "SELECT (a OR (b AND c))"},
		{"SELECT NOT a = b", "SELECT (NOT (a = b))"},
		{"SELECT a || b || c", "SELECT ((a || b) || c)"},
		{"SELECT a == b", "SELECT (a = b)"},
		{"SELECT a != b", "SELECT (a <> b)"},
		{"SELECT a + b > c - d", "SELECT ((a + b) > (c - d))"},
	}

	for _, tt := range tests {
		stmt := parseOneStatement(t, tt.input)
		if stmt.String() != tt.expected {
			t.Errorf("input %q: expected %q, got %q", tt.input, tt.expected, stmt.String())
		}
	}
}

func TestExpressionForms(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"SELECT a FROM t WHERE a BETWEEN 1 AND 10", "a BETWEEN 1 AND 10"},
		{"SELECT a FROM t WHERE a NOT BETWEEN 1 AND 10", "a NOT BETWEEN 1 AND 10"},
		{"SELECT a FROM t WHERE a IN (1, 2, 3)", "a IN (1, 2, 3)"},
		{"SELECT a FROM t WHERE a NOT IN (1, 2)", "a NOT IN (1, 2)"},
		{"SELECT a FROM t WHERE name LIKE 'J%'", "name LIKE 'J%'"},
		{"SELECT a FROM t WHERE name NOT LIKE 'J%'", "name NOT LIKE 'J%'"},
		{"SELECT a FROM t WHERE b IS NULL", "b IS NULL"},
		{"SELECT a FROM t WHERE b IS NOT NULL", "b IS NOT NULL"},
	}

	for _, tt := range tests {
		stmt, ok := parseOneStatement(t, tt.input).(*ast.SelectStatement)
		if !ok {
			t.Fatalf("input %q: expected SelectStatement", tt.input)
		}
		if got := stmt.Where.String(); got != tt.expected {
			t.Errorf("input %q: expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestCaseExpression(t *testing.T) {
	input := "SELECT CASE WHEN a > 1 THEN 'big' WHEN a > 0 THEN 'small' ELSE 'none' END FROM t"
	stmt, ok := parseOneStatement(t, input).(*ast.SelectStatement)
	if !ok {
		t.Fatalf("expected SelectStatement")
	}
	col, ok := stmt.Columns[0].(*ast.ExpressionResultColumn)
	if !ok {
		t.Fatalf("expected ExpressionResultColumn, got %T", stmt.Columns[0])
	}
	ce, ok := col.Expression.(*ast.CaseExpression)
	if !ok {
		t.Fatalf("expected CaseExpression, got %T", col.Expression)
	}
	if len(ce.WhenClauses) != 2 {
		t.Errorf("expected 2 WHEN clauses, got %d", len(ce.WhenClauses))
	}
	if ce.ElseClause == nil {
		t.Error("expected ELSE clause")
	}
}

func TestSimpleCaseExpression(t *testing.T) {
	input := "SELECT CASE status WHEN 1 THEN 'on' ELSE 'off' END FROM t"
	stmt := parseOneStatement(t, input).(*ast.SelectStatement)
	ce := stmt.Columns[0].(*ast.ExpressionResultColumn).Expression.(*ast.CaseExpression)
	if ce.Operand == nil {
		t.Error("expected CASE operand")
	}
}

func TestCaseWithoutWhenFails(t *testing.T) {
	p := New(lexer.New("SELECT CASE END FROM t"))
	program, diags := p.ParseProgram()
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic")
	}
	if len(program.Statements) != 0 {
		t.Errorf("expected 0 statements, got %d", len(program.Statements))
	}
}

func TestFunctionCalls(t *testing.T) {
	tests := []struct {
		input    string
		name     string
		star     bool
		distinct bool
		args     int
	}{
		{"SELECT count(*) FROM t", "count", true, false, 0},
		{"SELECT count(DISTINCT a) FROM t", "count", false, true, 1},
		{"SELECT coalesce(a, b, 0) FROM t", "coalesce", false, false, 3},
		{"SELECT now()", "now", false, false, 0},
	}

	for _, tt := range tests {
		stmt := parseOneStatement(t, tt.input).(*ast.SelectStatement)
		fc, ok := stmt.Columns[0].(*ast.ExpressionResultColumn).Expression.(*ast.FunctionCall)
		if !ok {
			t.Fatalf("input %q: expected FunctionCall", tt.input)
		}
		if fc.Name != tt.name || fc.Star != tt.star || fc.Distinct != tt.distinct || len(fc.Arguments) != tt.args {
			t.Errorf("input %q: got %+v", tt.input, fc)
		}
	}
}

func TestQualifiedReferences(t *testing.T) {
	stmt := parseOneStatement(t, "SELECT t.a FROM t").(*ast.SelectStatement)
	ref, ok := stmt.Columns[0].(*ast.ExpressionResultColumn).Expression.(*ast.Reference)
	if !ok {
		t.Fatalf("expected Reference")
	}
	if ref.Table != "t" || ref.Column != "a" {
		t.Errorf("expected t.a, got %s.%s", ref.Table, ref.Column)
	}
}

func TestInsertStatement(t *testing.T) {
	stmt, ok := parseOneStatement(t, "INSERT INTO users (id, name) VALUES (1, 'ann'), (2, 'bob')").(*ast.InsertStatement)
	if !ok {
		t.Fatalf("expected InsertStatement")
	}
	if stmt.Table != "users" {
		t.Errorf("expected table users, got %q", stmt.Table)
	}
	if len(stmt.Columns) != 2 {
		t.Errorf("expected 2 columns, got %d", len(stmt.Columns))
	}
	if len(stmt.Values) != 2 || len(stmt.Values[0]) != 2 {
		t.Errorf("expected 2 rows of 2 values, got %+v", stmt.Values)
	}
}

func TestInsertSelect(t *testing.T) {
	stmt := parseOneStatement(t, "INSERT INTO archive SELECT * FROM users WHERE old = 1").(*ast.InsertStatement)
	if stmt.Select == nil {
		t.Error("expected SELECT source")
	}
}

func TestInsertDefaultValues(t *testing.T) {
	stmt := parseOneStatement(t, "INSERT INTO logs DEFAULT VALUES").(*ast.InsertStatement)
	if !stmt.DefaultValues {
		t.Error("expected DEFAULT VALUES")
	}
}

func TestInsertOrConflict(t *testing.T) {
	stmt := parseOneStatement(t, "INSERT OR IGNORE INTO users (id) VALUES (1)").(*ast.InsertStatement)
	if stmt.OrConflict != "IGNORE" {
		t.Errorf("expected IGNORE, got %q", stmt.OrConflict)
	}
}

func TestUpdateStatement(t *testing.T) {
	stmt, ok := parseOneStatement(t, "UPDATE users SET name = 'ann', age = age + 1 WHERE id = 7").(*ast.UpdateStatement)
	if !ok {
		t.Fatalf("expected UpdateStatement")
	}
	if stmt.Table != "users" {
		t.Errorf("expected table users, got %q", stmt.Table)
	}
	if len(stmt.Set) != 2 {
		t.Fatalf("expected 2 set components, got %d", len(stmt.Set))
	}
	if stmt.Set[0].Column.Column != "name" {
		t.Errorf("expected first target name, got %q", stmt.Set[0].Column.Column)
	}
	if stmt.Where == nil {
		t.Error("expected WHERE clause")
	}
}

func TestUpdateBadSetTarget(t *testing.T) {
	p := New(lexer.New("UPDATE t SET a = * d"))
	program, diags := p.ParseProgram()
	if len(program.Statements) != 0 {
		t.Errorf("expected 0 statements, got %d", len(program.Statements))
	}
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic")
	}
}

func TestDeleteStatement(t *testing.T) {
	stmt, ok := parseOneStatement(t, "DELETE FROM sessions WHERE expires < 100").(*ast.DeleteStatement)
	if !ok {
		t.Fatalf("expected DeleteStatement")
	}
	if stmt.Table != "sessions" {
		t.Errorf("expected table sessions, got %q", stmt.Table)
	}
	if stmt.Where == nil {
		t.Error("expected WHERE clause")
	}
}

func TestTransactionStatements(t *testing.T) {
	program := parseProgram(t, "BEGIN IMMEDIATE TRANSACTION; COMMIT; ROLLBACK TRANSACTION;")
	if len(program.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(program.Statements))
	}
	begin, ok := program.Statements[0].(*ast.BeginStatement)
	if !ok || begin.Mode != "IMMEDIATE" {
		t.Errorf("expected BEGIN IMMEDIATE, got %+v", program.Statements[0])
	}
	if _, ok := program.Statements[1].(*ast.CommitStatement); !ok {
		t.Errorf("expected CommitStatement, got %T", program.Statements[1])
	}
	if _, ok := program.Statements[2].(*ast.RollbackStatement); !ok {
		t.Errorf("expected RollbackStatement, got %T", program.Statements[2])
	}
}

func TestCreateTable(t *testing.T) {
	input := `CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(100) NOT NULL,
		email TEXT UNIQUE,
		age INTEGER DEFAULT 0 CHECK (age >= 0),
		dept_id INTEGER REFERENCES departments (id),
		UNIQUE (name, email),
		FOREIGN KEY (dept_id) REFERENCES departments (id)
	)`

	stmt, ok := parseOneStatement(t, input).(*ast.CreateTableStatement)
	if !ok {
		t.Fatalf("expected CreateTableStatement")
	}
	if !stmt.IfNotExists {
		t.Error("expected IF NOT EXISTS")
	}
	if stmt.Name != "users" {
		t.Errorf("expected table users, got %q", stmt.Name)
	}
	if len(stmt.Columns) != 5 {
		t.Fatalf("expected 5 columns, got %d", len(stmt.Columns))
	}
	if len(stmt.Constraints) != 2 {
		t.Fatalf("expected 2 table constraints, got %d", len(stmt.Constraints))
	}

	id := stmt.Columns[0]
	if len(id.Constraints) != 1 || id.Constraints[0].Kind != ast.PrimaryKeyConstraint || !id.Constraints[0].Autoincrement {
		t.Errorf("expected autoincrement primary key on id, got %+v", id.Constraints)
	}

	name := stmt.Columns[1]
	if name.Type == nil || name.Type.Name != "VARCHAR" || len(name.Type.Args) != 1 || name.Type.Args[0] != 100 {
		t.Errorf("expected VARCHAR(100), got %+v", name.Type)
	}

	fk := stmt.Constraints[1]
	if fk.Kind != ast.ForeignKeyConstraint || fk.RefTable != "departments" {
		t.Errorf("expected foreign key to departments, got %+v", fk)
	}
}

func TestCreateTableKeyColumnSkip(t *testing.T) {
	input := "CREATE TABLE t (a INTEGER, b INTEGER, PRIMARY KEY (a, 1, b))"
	p := New(lexer.New(input))
	program, diags := p.ParseProgram()

	if len(program.Statements) != 1 {
		t.Fatalf("expected statement to survive, got %d statements", len(program.Statements))
	}
	var warnings int
	for _, d := range diags {
		if d.Warning {
			warnings++
		}
	}
	if warnings != 1 {
		t.Fatalf("expected 1 warning, got %d (%v)", warnings, diags)
	}

	stmt := program.Statements[0].(*ast.CreateTableStatement)
	pk := stmt.Constraints[0]
	if len(pk.Columns) != 2 || pk.Columns[0] != "a" || pk.Columns[1] != "b" {
		t.Errorf("expected key columns [a b], got %v", pk.Columns)
	}
}

func TestCreateIndex(t *testing.T) {
	stmt, ok := parseOneStatement(t, "CREATE UNIQUE INDEX idx_users_email ON users (email DESC) WHERE email IS NOT NULL").(*ast.CreateIndexStatement)
	if !ok {
		t.Fatalf("expected CreateIndexStatement")
	}
	if !stmt.Unique {
		t.Error("expected UNIQUE")
	}
	if stmt.Name != "idx_users_email" || stmt.Table != "users" {
		t.Errorf("unexpected names: %q on %q", stmt.Name, stmt.Table)
	}
	if len(stmt.Columns) != 1 || !stmt.Columns[0].Desc {
		t.Errorf("expected 1 descending column, got %+v", stmt.Columns)
	}
	if stmt.Where == nil {
		t.Error("expected partial index predicate")
	}
}

func TestCreateView(t *testing.T) {
	stmt, ok := parseOneStatement(t, "CREATE VIEW active (id, name) AS SELECT id, name FROM users WHERE active = 1").(*ast.CreateViewStatement)
	if !ok {
		t.Fatalf("expected CreateViewStatement")
	}
	if stmt.Name != "active" || len(stmt.Columns) != 2 || stmt.Select == nil {
		t.Errorf("unexpected view: %+v", stmt)
	}
}

func TestCreateTrigger(t *testing.T) {
	input := `CREATE TRIGGER audit_users AFTER UPDATE OF name, email ON users
FOR EACH ROW WHEN old_name <> new_name
BEGIN
	INSERT INTO audit (tbl) VALUES ('users');
	DELETE FROM cache WHERE tbl = 'users';
END`

	stmt, ok := parseOneStatement(t, input).(*ast.CreateTriggerStatement)
	if !ok {
		t.Fatalf("expected CreateTriggerStatement")
	}
	if stmt.Timing != "AFTER" || stmt.Event != "UPDATE" {
		t.Errorf("expected AFTER UPDATE, got %s %s", stmt.Timing, stmt.Event)
	}
	if len(stmt.UpdateOf) != 2 {
		t.Errorf("expected 2 UPDATE OF columns, got %v", stmt.UpdateOf)
	}
	if !stmt.ForEachRow {
		t.Error("expected FOR EACH ROW")
	}
	if stmt.When == nil {
		t.Error("expected WHEN clause")
	}
	if len(stmt.Body) != 2 {
		t.Fatalf("expected 2 body statements, got %d", len(stmt.Body))
	}
}

func TestScanErrorSurfaces(t *testing.T) {
	p := New(lexer.New("SELECT 'unterminated"))
	program, diags := p.ParseProgram()
	if len(program.Statements) != 0 {
		t.Errorf("expected 0 statements, got %d", len(program.Statements))
	}
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if _, ok := diags[0].Err.(*lexer.ScanError); !ok {
		t.Errorf("expected *lexer.ScanError, got %T", diags[0].Err)
	}
}

func TestParseStatementCursor(t *testing.T) {
	tokens := lexer.Tokenize("UPDATE t SET a = 1; SELECT b FROM t;")

	stmt, next, err := ParseStatement(tokens, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := stmt.(*ast.UpdateStatement); !ok {
		t.Fatalf("expected UpdateStatement, got %T", stmt)
	}
	if tokens[next].Literal != ";" {
		t.Fatalf("expected cursor on separator, got %q", tokens[next].Literal)
	}

	stmt2, _, err := ParseStatement(tokens, next+1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := stmt2.(*ast.SelectStatement); !ok {
		t.Fatalf("expected SelectStatement, got %T", stmt2)
	}
}
