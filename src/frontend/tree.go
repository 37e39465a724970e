// tree.go provides the entry points of the front end. The scanner runs concurrently to the parser which lets one
// thread scan the source string for lexemes while the other checks the grammar and hands every well formed
// operation to a Builder.

package frontend

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"ilocfe/src/util"
)

// Parse parses the ILOC source src, passing every well formed operation to b in program order. Diagnostics are
// printed to diag, one per line, in source order. Parse returns the number of operations built, and an error
// wrapping ErrSyntax if any lexical or syntax error was found. Malformed lines are dropped and parsing continues.
func Parse(src string, b Builder, diag io.Writer) (int, error) {
	l := newLexer(src, lexGlobal)
	perr := util.NewPerror(0, diag)

	// Start scanner and run it concurrently to the parser.
	go l.run()

	p := parser{l: l, b: b, perr: perr}
	p.program()
	perr.Stop()

	n := perr.Len()
	util.Logger().Debug("parse finished",
		zap.Int("operations", p.count),
		zap.Int("errors", n),
		zap.Int("bytes", len(src)))
	if n > 0 {
		return p.count, fmt.Errorf("%w: %d error(s)", ErrSyntax, n)
	}
	return p.count, nil
}

// TokenStream writes the token stream of src to out, one token per line. Lexical errors are printed to diag.
func TokenStream(src string, out, diag io.Writer) error {
	l := newLexer(src, lexGlobal)
	perr := util.NewPerror(0, diag)
	go l.run()

	for {
		t := l.nextItem()
		if t.typ == itemError {
			perr.Append(&Error{Kind: Lexical, Line: t.line, Msg: t.msg})
			continue
		}
		if _, err := fmt.Fprintf(out, "%d: < %s, \"%s\" >\n", t.line, t.name(), t.lexeme()); err != nil {
			// Drain the scanner before giving up.
			for range l.items {
			}
			perr.Stop()
			return err
		}
		if t.typ == itemEOF {
			break
		}
	}
	perr.Stop()
	if n := perr.Len(); n > 0 {
		return fmt.Errorf("%w: %d error(s)", ErrSyntax, n)
	}
	return nil
}
