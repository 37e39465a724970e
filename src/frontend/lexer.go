// This lexer follows the structure of Rob Pike's talk on Go scanners.
// Link to the talk on YouTube: https://www.youtube.com/watch?v=HxaD_trXwRE
// Link to presentation slides: https://talks.golang.org/2011/lex.slide#1
//
// The lexer uses state functions stateFunc to define the lexer state. State transitions happen on key runes. ILOC is
// line oriented, so newlines are tokens of their own and every lexical error resynchronises at the end of its line.

package frontend

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"ilocfe/src/ir/iloc"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// stateFunc defines the state of the lexer.
type stateFunc func(*lexer) stateFunc

// itemType is used to differentiate different tokens scanned by the lexer.
type itemType int

// item contains a lexeme scanned by the lexer and its line in the source stream.
type item struct {
	typ  itemType // Token category.
	val  int      // Opcode for operation tokens, number for CONST and REG.
	msg  string   // Error message of itemError.
	line int      // Line of token in source stream.
}

// lexer is a lexical type that traverses a source stream character by character and emits lexemes.
type lexer struct {
	input string    // The source stream of characters to scan for lexemes.
	start int       // The starting position of the current token.
	pos   int       // The current position of the scanner in the source stream.
	width int       // The width of the currently scanned rune in bytes.
	line  int       // The current line in the source stream. Not zero-indexed.
	state stateFunc // The start state of the lexer.
	items chan item // A channel for emitting item tokens.
}

// ---------------------
// ----- Constants -----
// ---------------------

const eof = -1

const (
	itemError itemType = iota - 1
	itemEOF
	itemEOL
	itemMemop
	itemLoadI
	itemArithop
	itemOutput
	itemNop
	itemConst
	itemReg
	itemComma
	itemInto
)

// -------------------
// ----- Globals -----
// -------------------

// itemNames provides the category name of each itemType for the token stream dump.
var itemNames = [...]string{
	itemEOF:     "ENDFILE",
	itemEOL:     "NEWLINE",
	itemMemop:   "MEMOP",
	itemLoadI:   "LOADI",
	itemArithop: "ARITHOP",
	itemOutput:  "OUTPUT",
	itemNop:     "NOP",
	itemConst:   "CONST",
	itemReg:     "REG",
	itemComma:   "COMMA",
	itemInto:    "INTO",
}

// --------------------------
// ----- Item functions -----
// --------------------------

// lexeme returns the source text of the item.
func (i item) lexeme() string {
	switch i.typ {
	case itemEOF:
		return ""
	case itemError:
		return i.msg
	case itemEOL:
		return `\n`
	case itemMemop, itemLoadI, itemArithop, itemOutput, itemNop:
		return iloc.Opcode(i.val).String()
	case itemConst:
		return fmt.Sprintf("%d", i.val)
	case itemReg:
		return fmt.Sprintf("r%d", i.val)
	case itemComma:
		return ","
	case itemInto:
		return "=>"
	}
	return "?"
}

// name returns the category name of the item.
func (i item) name() string {
	if i.typ == itemError {
		return "ERROR"
	}
	if int(i.typ) < len(itemNames) {
		return itemNames[i.typ]
	}
	return "UNKNOWN"
}

// String returns a print friendly string representation of the item.
func (i item) String() string {
	return fmt.Sprintf("\"%s\" (%s)", i.lexeme(), i.name())
}

// ---------------------------
// ----- Lexer functions -----
// ---------------------------

// newLexer creates and returns a pointer to a new lexer.
func newLexer(src string, start stateFunc) *lexer {
	return &lexer{
		input: src,
		line:  1,
		state: start,
		items: make(chan item, 2),
	}
}

// run initiates the traversal of the input stream of the lexer, resulting in tokens being emitted
// on the lexer's items channel.
func (l *lexer) run() {
	defer close(l.items)
	for state := l.state; state != nil; {
		state = state(l)
	}
}

// emit sends an item of type typ with value val back to the caller.
func (l *lexer) emit(typ itemType, val int) {
	l.items <- item{
		typ:  typ,
		val:  val,
		line: l.line,
	}
	l.start = l.pos
}

// next returns the next rune in the input.
func (l *lexer) next() (r rune) {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += l.width
	return r
}

// ignore skips over the pending input before this point.
func (l *lexer) ignore() {
	l.start = l.pos
}

// backup steps back one rune. Should only be called once per call of next.
func (l *lexer) backup() {
	if l.pos > l.start {
		l.pos -= l.width
	}
}

// peek returns, but does not consume, the next rune in the input.
func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// acceptRun consumes a sequence of runes from the set of valid characters defined by the valid string.
func (l *lexer) acceptRun(valid string) {
	for strings.IndexRune(valid, l.next()) >= 0 {
	}
	l.backup()
}

// nextItem returns the next item from the input.
func (l *lexer) nextItem() item {
	return <-l.items
}

// errorf emits an error item, discards the rest of the line and emits the end of line, so the parser drops the
// statement and resumes on the next line.
func (l *lexer) errorf(format string, args ...interface{}) stateFunc {
	l.items <- item{
		typ:  itemError,
		msg:  fmt.Sprintf(format, args...),
		line: l.line,
	}
	for r := l.next(); r != '\n' && r != eof; r = l.next() {
		if r == '\r' {
			if l.peek() == '\n' {
				l.next()
			}
			break
		}
	}
	l.emit(itemEOL, 0)
	l.line++
	return lexGlobal
}
