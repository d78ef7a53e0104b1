// Package token defines constants representing the lexical tokens of SQL.
package token

// Type represents the type of a lexical token.
type Type int

const (
	// Special tokens
	ILLEGAL Type = iota
	EOF
	COMMENT

	// Identifiers and literals
	IDENT  // table_name, column_name, "quoted identifier"
	INT    // 12345
	FLOAT  // 123.45, 1e10, .5
	STRING // 'string literal'

	// Operators
	PLUS     // +
	MINUS    // -
	ASTERISK // *
	SLASH    // /
	PERCENT  // %
	EQ       // = or ==
	NEQ      // <> or !=
	LT       // <
	GT       // >
	LTE      // <=
	GTE      // >=
	CONCAT   // ||

	// Delimiters
	COMMA     // ,
	SEMICOLON // ;
	LPAREN    // (
	RPAREN    // )
	DOT       // .

	keyword_beg
	// Keywords - DML
	SELECT
	INSERT
	UPDATE
	DELETE
	INTO
	VALUES
	FROM
	WHERE
	SET
	DEFAULT

	// Keywords - query clauses
	JOIN
	INNER
	LEFT
	OUTER
	CROSS
	ON
	AND
	OR
	NOT
	IN
	EXISTS
	BETWEEN
	LIKE
	IS
	NULL
	AS
	DISTINCT
	ALL
	ORDER
	BY
	ASC
	DESC
	GROUP
	HAVING
	LIMIT
	OFFSET

	// Keywords - case expression
	CASE
	WHEN
	THEN
	ELSE
	END

	// Keywords - DDL
	CREATE
	TABLE
	INDEX
	VIEW
	TRIGGER
	UNIQUE
	PRIMARY
	FOREIGN
	KEY
	REFERENCES
	CHECK
	CONSTRAINT
	AUTOINCREMENT
	IF
	BEFORE
	AFTER
	INSTEAD
	OF
	FOR
	EACH
	ROW

	// Keywords - transactions and conflict clauses
	BEGIN
	COMMIT
	ROLLBACK
	TRANSACTION
	DEFERRED
	IMMEDIATE
	EXCLUSIVE
	ABORT
	FAIL
	IGNORE
	REPLACE

	// Keywords - boolean literals
	TRUE
	FALSE
	keyword_end
)

var tokenNames = map[Type]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	COMMENT:   "COMMENT",
	IDENT:     "IDENT",
	INT:       "INT",
	FLOAT:     "FLOAT",
	STRING:    "STRING",
	PLUS:      "+",
	MINUS:     "-",
	ASTERISK:  "*",
	SLASH:     "/",
	PERCENT:   "%",
	EQ:        "=",
	NEQ:       "<>",
	LT:        "<",
	GT:        ">",
	LTE:       "<=",
	GTE:       ">=",
	CONCAT:    "||",
	COMMA:     ",",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",
	DOT:       ".",
}

var keywords = map[string]Type{
	"SELECT":        SELECT,
	"INSERT":        INSERT,
	"UPDATE":        UPDATE,
	"DELETE":        DELETE,
	"INTO":          INTO,
	"VALUES":        VALUES,
	"FROM":          FROM,
	"WHERE":         WHERE,
	"SET":           SET,
	"DEFAULT":       DEFAULT,
	"JOIN":          JOIN,
	"INNER":         INNER,
	"LEFT":          LEFT,
	"OUTER":         OUTER,
	"CROSS":         CROSS,
	"ON":            ON,
	"AND":           AND,
	"OR":            OR,
	"NOT":           NOT,
	"IN":            IN,
	"EXISTS":        EXISTS,
	"BETWEEN":       BETWEEN,
	"LIKE":          LIKE,
	"IS":            IS,
	"NULL":          NULL,
	"AS":            AS,
	"DISTINCT":      DISTINCT,
	"ALL":           ALL,
	"ORDER":         ORDER,
	"BY":            BY,
	"ASC":           ASC,
	"DESC":          DESC,
	"GROUP":         GROUP,
	"HAVING":        HAVING,
	"LIMIT":         LIMIT,
	"OFFSET":        OFFSET,
	"CASE":          CASE,
	"WHEN":          WHEN,
	"THEN":          THEN,
	"ELSE":          ELSE,
	"END":           END,
	"CREATE":        CREATE,
	"TABLE":         TABLE,
	"INDEX":         INDEX,
	"VIEW":          VIEW,
	"TRIGGER":       TRIGGER,
	"UNIQUE":        UNIQUE,
	"PRIMARY":       PRIMARY,
	"FOREIGN":       FOREIGN,
	"KEY":           KEY,
	"REFERENCES":    REFERENCES,
	"CHECK":         CHECK,
	"CONSTRAINT":    CONSTRAINT,
	"AUTOINCREMENT": AUTOINCREMENT,
	"IF":            IF,
	"BEFORE":        BEFORE,
	"AFTER":         AFTER,
	"INSTEAD":       INSTEAD,
	"OF":            OF,
	"FOR":           FOR,
	"EACH":          EACH,
	"ROW":           ROW,
	"BEGIN":         BEGIN,
	"COMMIT":        COMMIT,
	"ROLLBACK":      ROLLBACK,
	"TRANSACTION":   TRANSACTION,
	"DEFERRED":      DEFERRED,
	"IMMEDIATE":     IMMEDIATE,
	"EXCLUSIVE":     EXCLUSIVE,
	"ABORT":         ABORT,
	"FAIL":          FAIL,
	"IGNORE":        IGNORE,
	"REPLACE":       REPLACE,
	"TRUE":          TRUE,
	"FALSE":         FALSE,
}

// String returns a string representation of the token type.
func (t Type) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	for kw, typ := range keywords {
		if typ == t {
			return kw
		}
	}
	return "UNKNOWN"
}

// LookupIdent checks if an identifier is a keyword. Callers pass the
// upper-cased lexeme; quoted identifiers must never go through this lookup.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword.
func (t Type) IsKeyword() bool {
	return t > keyword_beg && t < keyword_end
}

// Token represents a lexical token with position information. Tokens are
// immutable once produced. Pos and End are byte offsets into the source;
// Line and Column are carried for diagnostics only and never participate
// in AST equality.
type Token struct {
	Type    Type
	Literal string
	Pos     int // byte offset of the first byte of the lexeme
	End     int // byte offset just past the lexeme
	Line    int
	Column  int
}
