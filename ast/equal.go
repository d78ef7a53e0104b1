package ast

// Equal reports whether two nodes are structurally equal: all semantic
// fields recursively equal, source positions ignored. Both arguments may
// be nil; two nils are equal. The type switches below are exhaustive over
// the node variants — a variant missing here makes Equal return false for
// values of that type, which the equality tests catch.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *Program:
		b, ok := b.(*Program)
		return ok && equalStatements(a.Statements, b.Statements)
	case Statement:
		b, ok := b.(Statement)
		return ok && equalStatement(a, b)
	case Expression:
		b, ok := b.(Expression)
		return ok && equalExpr(a, b)
	case ResultColumn:
		b, ok := b.(ResultColumn)
		return ok && equalResultColumn(a, b)
	case TableReference:
		b, ok := b.(TableReference)
		return ok && equalTableReference(a, b)
	}
	return false
}

func equalStatements(a, b []Statement) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalStatement(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalStatement(a, b Statement) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *SelectStatement:
		b, ok := b.(*SelectStatement)
		return ok && equalSelect(a, b)
	case *InsertStatement:
		b, ok := b.(*InsertStatement)
		if !ok || a.OrConflict != b.OrConflict || a.Table != b.Table ||
			a.DefaultValues != b.DefaultValues ||
			!equalStrings(a.Columns, b.Columns) ||
			!equalSelectPtr(a.Select, b.Select) {
			return false
		}
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !equalExprs(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case *UpdateStatement:
		b, ok := b.(*UpdateStatement)
		if !ok || a.OrConflict != b.OrConflict || a.Table != b.Table ||
			!equalExpr(a.Where, b.Where) || len(a.Set) != len(b.Set) {
			return false
		}
		for i := range a.Set {
			if !equalReference(a.Set[i].Column, b.Set[i].Column) ||
				!equalExpr(a.Set[i].Expression, b.Set[i].Expression) {
				return false
			}
		}
		return true
	case *DeleteStatement:
		b, ok := b.(*DeleteStatement)
		return ok && a.Table == b.Table && equalExpr(a.Where, b.Where)
	case *CreateTableStatement:
		b, ok := b.(*CreateTableStatement)
		if !ok || a.IfNotExists != b.IfNotExists || a.Name != b.Name ||
			len(a.Columns) != len(b.Columns) || len(a.Constraints) != len(b.Constraints) {
			return false
		}
		for i := range a.Columns {
			if !equalColumnDef(a.Columns[i], b.Columns[i]) {
				return false
			}
		}
		for i := range a.Constraints {
			if !equalTableConstraint(a.Constraints[i], b.Constraints[i]) {
				return false
			}
		}
		return true
	case *CreateIndexStatement:
		b, ok := b.(*CreateIndexStatement)
		if !ok || a.Unique != b.Unique || a.IfNotExists != b.IfNotExists ||
			a.Name != b.Name || a.Table != b.Table ||
			!equalExpr(a.Where, b.Where) || len(a.Columns) != len(b.Columns) {
			return false
		}
		for i := range a.Columns {
			if a.Columns[i].Name != b.Columns[i].Name || a.Columns[i].Desc != b.Columns[i].Desc {
				return false
			}
		}
		return true
	case *CreateViewStatement:
		b, ok := b.(*CreateViewStatement)
		return ok && a.IfNotExists == b.IfNotExists && a.Name == b.Name &&
			equalStrings(a.Columns, b.Columns) && equalSelectPtr(a.Select, b.Select)
	case *CreateTriggerStatement:
		b, ok := b.(*CreateTriggerStatement)
		return ok && a.IfNotExists == b.IfNotExists && a.Name == b.Name &&
			a.Timing == b.Timing && a.Event == b.Event &&
			equalStrings(a.UpdateOf, b.UpdateOf) && a.Table == b.Table &&
			a.ForEachRow == b.ForEachRow && equalExpr(a.When, b.When) &&
			equalStatements(a.Body, b.Body)
	case *BeginStatement:
		b, ok := b.(*BeginStatement)
		return ok && a.Mode == b.Mode
	case *CommitStatement:
		_, ok := b.(*CommitStatement)
		return ok
	case *RollbackStatement:
		_, ok := b.(*RollbackStatement)
		return ok
	}
	return false
}

func equalSelect(a, b *SelectStatement) bool {
	if a.Distinct != b.Distinct ||
		len(a.Columns) != len(b.Columns) ||
		len(a.From) != len(b.From) ||
		len(a.Joins) != len(b.Joins) ||
		len(a.GroupBy) != len(b.GroupBy) ||
		len(a.OrderBy) != len(b.OrderBy) {
		return false
	}
	for i := range a.Columns {
		if !equalResultColumn(a.Columns[i], b.Columns[i]) {
			return false
		}
	}
	for i := range a.From {
		if !equalTableReference(a.From[i], b.From[i]) {
			return false
		}
	}
	for i := range a.Joins {
		ja, jb := a.Joins[i], b.Joins[i]
		if ja.JoinType != jb.JoinType || !equalTableReference(ja.Table, jb.Table) ||
			!equalExpr(ja.On, jb.On) {
			return false
		}
	}
	if !equalExpr(a.Where, b.Where) || !equalExpr(a.Having, b.Having) ||
		!equalExpr(a.Limit, b.Limit) || !equalExpr(a.Offset, b.Offset) {
		return false
	}
	for i := range a.GroupBy {
		if !equalExpr(a.GroupBy[i], b.GroupBy[i]) {
			return false
		}
	}
	for i := range a.OrderBy {
		if a.OrderBy[i].Desc != b.OrderBy[i].Desc ||
			!equalExpr(a.OrderBy[i].Expression, b.OrderBy[i].Expression) {
			return false
		}
	}
	return true
}

func equalSelectPtr(a, b *SelectStatement) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return equalSelect(a, b)
}

func equalResultColumn(a, b ResultColumn) bool {
	switch a := a.(type) {
	case *StarResultColumn:
		b, ok := b.(*StarResultColumn)
		return ok && a.Table == b.Table
	case *ExpressionResultColumn:
		b, ok := b.(*ExpressionResultColumn)
		return ok && a.Alias == b.Alias && equalExpr(a.Expression, b.Expression)
	}
	return false
}

func equalTableReference(a, b TableReference) bool {
	switch a := a.(type) {
	case *NamedTable:
		b, ok := b.(*NamedTable)
		return ok && a.Name == b.Name && a.Alias == b.Alias
	case *SubqueryTable:
		b, ok := b.(*SubqueryTable)
		return ok && a.Alias == b.Alias && equalSelectPtr(a.Select, b.Select)
	}
	return false
}

func equalExpr(a, b Expression) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *Reference:
		b, ok := b.(*Reference)
		return ok && a.Table == b.Table && a.Column == b.Column
	case *IntegerLiteral:
		b, ok := b.(*IntegerLiteral)
		return ok && a.Value == b.Value
	case *FloatLiteral:
		b, ok := b.(*FloatLiteral)
		return ok && a.Value == b.Value
	case *StringLiteral:
		b, ok := b.(*StringLiteral)
		return ok && a.Value == b.Value
	case *NullLiteral:
		_, ok := b.(*NullLiteral)
		return ok
	case *BooleanLiteral:
		b, ok := b.(*BooleanLiteral)
		return ok && a.Value == b.Value
	case *PrefixExpression:
		b, ok := b.(*PrefixExpression)
		return ok && a.Operator == b.Operator && equalExpr(a.Right, b.Right)
	case *InfixExpression:
		b, ok := b.(*InfixExpression)
		return ok && a.Operator == b.Operator &&
			equalExpr(a.Left, b.Left) && equalExpr(a.Right, b.Right)
	case *BetweenExpression:
		b, ok := b.(*BetweenExpression)
		return ok && a.Not == b.Not && equalExpr(a.Expr, b.Expr) &&
			equalExpr(a.Low, b.Low) && equalExpr(a.High, b.High)
	case *InExpression:
		b, ok := b.(*InExpression)
		return ok && a.Not == b.Not && equalExpr(a.Expr, b.Expr) &&
			equalExprs(a.Values, b.Values) && equalSelectPtr(a.Subquery, b.Subquery)
	case *LikeExpression:
		b, ok := b.(*LikeExpression)
		return ok && a.Not == b.Not && equalExpr(a.Expr, b.Expr) &&
			equalExpr(a.Pattern, b.Pattern)
	case *IsNullExpression:
		b, ok := b.(*IsNullExpression)
		return ok && a.Not == b.Not && equalExpr(a.Expr, b.Expr)
	case *ExistsExpression:
		b, ok := b.(*ExistsExpression)
		return ok && equalSelectPtr(a.Subquery, b.Subquery)
	case *FunctionCall:
		b, ok := b.(*FunctionCall)
		return ok && a.Name == b.Name && a.Distinct == b.Distinct &&
			a.Star == b.Star && equalExprs(a.Arguments, b.Arguments)
	case *CaseExpression:
		b, ok := b.(*CaseExpression)
		if !ok || !equalExpr(a.Operand, b.Operand) ||
			!equalExpr(a.ElseClause, b.ElseClause) ||
			len(a.WhenClauses) != len(b.WhenClauses) {
			return false
		}
		for i := range a.WhenClauses {
			if !equalExpr(a.WhenClauses[i].Condition, b.WhenClauses[i].Condition) ||
				!equalExpr(a.WhenClauses[i].Result, b.WhenClauses[i].Result) {
				return false
			}
		}
		return true
	case *SubqueryExpression:
		b, ok := b.(*SubqueryExpression)
		return ok && equalSelectPtr(a.Subquery, b.Subquery)
	}
	return false
}

func equalExprs(a, b []Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalExpr(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalReference(a, b *Reference) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Table == b.Table && a.Column == b.Column
}

func equalColumnDef(a, b *ColumnDefinition) bool {
	if a.Name != b.Name || len(a.Constraints) != len(b.Constraints) {
		return false
	}
	if (a.Type == nil) != (b.Type == nil) {
		return false
	}
	if a.Type != nil {
		if a.Type.Name != b.Type.Name || len(a.Type.Args) != len(b.Type.Args) {
			return false
		}
		for i := range a.Type.Args {
			if a.Type.Args[i] != b.Type.Args[i] {
				return false
			}
		}
	}
	for i := range a.Constraints {
		ca, cb := a.Constraints[i], b.Constraints[i]
		if ca.Kind != cb.Kind || ca.Desc != cb.Desc ||
			ca.Autoincrement != cb.Autoincrement ||
			!equalExpr(ca.Default, cb.Default) || !equalExpr(ca.Check, cb.Check) ||
			ca.RefTable != cb.RefTable || !equalStrings(ca.RefColumns, cb.RefColumns) {
			return false
		}
	}
	return true
}

func equalTableConstraint(a, b *TableConstraint) bool {
	return a.Name == b.Name && a.Kind == b.Kind &&
		equalStrings(a.Columns, b.Columns) && equalExpr(a.Check, b.Check) &&
		a.RefTable == b.RefTable && equalStrings(a.RefColumns, b.RefColumns)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
