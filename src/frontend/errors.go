package frontend

import (
	"errors"
	"fmt"
)

// ErrorKind tells lexical errors apart from syntax errors.
type ErrorKind int

const (
	Lexical ErrorKind = iota // Lexical errors are invalid words.
	Syntax                   // Syntax errors are malformed statements.
)

// ErrSyntax is returned by Parse when the input contained at least one lexical or syntax error.
var ErrSyntax = errors.New("syntax error(s)")

// Error is a single diagnostic tied to a source line.
type Error struct {
	Kind ErrorKind // Lexical or Syntax.
	Line int       // Source line, one-indexed.
	Msg  string    // Human readable message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("ERROR %d:\t%s", e.Line, e.Msg)
}

func (k ErrorKind) String() string {
	if k == Lexical {
		return "lexical"
	}
	return "syntax"
}
