package parser

import (
	"fmt"

	"github.com/ilikepi63/moor/token"
)

// SyntaxError is an expected-construct violation raised by the expression or
// statement parser. It carries the expected construct and the offending
// token; an EOF token stands in for "end of input".
type SyntaxError struct {
	Expected string
	Token    token.Token
}

func (e *SyntaxError) Error() string {
	got := e.Token.Type.String()
	if e.Token.Type == token.EOF {
		got = "end of input"
	} else if e.Token.Literal != "" && e.Token.Literal != got {
		got = fmt.Sprintf("%s %q", got, e.Token.Literal)
	}
	return fmt.Sprintf("line %d, col %d: expected %s, got %s",
		e.Token.Line, e.Token.Column, e.Expected, got)
}

// Diagnostic records a failure the multi-statement driver recovered from.
// Unless it is a warning, the statement that produced it contributed nothing
// to the result.
type Diagnostic struct {
	Err     error
	Warning bool
}

func (d Diagnostic) String() string {
	if d.Warning {
		return "warning: " + d.Err.Error()
	}
	return d.Err.Error()
}
