package frontend

import (
	"fmt"

	"ilocfe/src/ir/iloc"
	"ilocfe/src/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Builder receives every well formed operation in program order.
type Builder interface {
	Build(op iloc.Opcode, line int, vals ...int) iloc.NodeID
}

// parser is a recursive descent parser over the lexer's item stream. Each statement is one line.
type parser struct {
	l     *lexer       // Source of items.
	b     Builder      // Destination of operations.
	perr  *util.Perror // Destination of diagnostics.
	word  item         // Current item.
	eof   bool         // Set true once itemEOF has been read.
	tb    [3]int       // Operand values of the current statement.
	count int          // Number of operations built.
}

// ---------------------
// ----- Functions -----
// ---------------------

// next reads the next item. The item stream is not read past itemEOF.
func (p *parser) next() {
	if p.eof {
		return
	}
	p.word = p.l.nextItem()
	p.eof = p.word.typ == itemEOF
}

// program parses statements until the end of input.
func (p *parser) program() {
	for p.next(); p.word.typ != itemEOF; p.next() {
		line := p.word.line
		switch p.word.typ {
		case itemMemop:
			p.finishMemop(iloc.Opcode(p.word.val), line)
		case itemLoadI:
			p.finishLoadI(line)
		case itemArithop:
			p.finishArithop(iloc.Opcode(p.word.val), line)
		case itemOutput:
			p.finishOutput(line)
		case itemNop:
			p.finishNop(line)
		case itemEOL:
		default:
			p.errorf(line, "Operation expected at start of line, found %s.", p.word)
		}
	}
}

// errorf reports a syntax error at line and skips to the end of the line. A pending lexical error is reported
// in place of the syntax error.
func (p *parser) errorf(line int, format string, args ...interface{}) {
	if p.word.typ == itemError {
		p.perr.Append(&Error{Kind: Lexical, Line: p.word.line, Msg: p.word.msg})
	} else {
		p.perr.Append(&Error{Kind: Syntax, Line: line, Msg: fmt.Sprintf(format, args...)})
	}
	for p.word.typ != itemEOL && p.word.typ != itemEOF {
		p.next()
	}
}

// expect reads the next item and reports msg unless it is of type typ.
func (p *parser) expect(typ itemType, line int, msg string) bool {
	p.next()
	if p.word.typ != typ {
		p.errorf(line, "%s", msg)
		return false
	}
	return true
}

// endOfLine reads the next item and reports an error unless it ends the statement.
func (p *parser) endOfLine(line int) bool {
	p.next()
	if p.word.typ != itemEOL && p.word.typ != itemEOF {
		p.errorf(line, "Extra token at end of line %s.", p.word)
		return false
	}
	return true
}

// build passes the completed statement to the Builder.
func (p *parser) build(op iloc.Opcode, line int, vals ...int) {
	p.b.Build(op, line, vals...)
	p.count++
}

// finishMemop parses MEMOP REG INTO REG.
func (p *parser) finishMemop(op iloc.Opcode, line int) {
	if !p.expect(itemReg, line, "Missing source register in load or store.") {
		return
	}
	p.tb[0] = p.word.val
	if !p.expect(itemInto, line, "Missing '=>' in load or store.") {
		return
	}
	if !p.expect(itemReg, line, "Missing target register in load or store.") {
		return
	}
	p.tb[1] = p.word.val
	if !p.endOfLine(line) {
		return
	}
	p.build(op, line, p.tb[0], p.tb[1])
}

// finishLoadI parses LOADI CONST INTO REG.
func (p *parser) finishLoadI(line int) {
	if !p.expect(itemConst, line, "Missing constant in loadI.") {
		return
	}
	p.tb[0] = p.word.val
	if !p.expect(itemInto, line, "Missing '=>' in loadI.") {
		return
	}
	if !p.expect(itemReg, line, "Missing target register in loadI.") {
		return
	}
	p.tb[1] = p.word.val
	if !p.endOfLine(line) {
		return
	}
	p.build(iloc.LoadI, line, p.tb[0], p.tb[1])
}

// finishArithop parses ARITHOP REG COMMA REG INTO REG.
func (p *parser) finishArithop(op iloc.Opcode, line int) {
	if !p.expect(itemReg, line, fmt.Sprintf("Missing first source register in %s.", op)) {
		return
	}
	p.tb[0] = p.word.val
	if !p.expect(itemComma, line, fmt.Sprintf("Missing comma in %s.", op)) {
		return
	}
	if !p.expect(itemReg, line, fmt.Sprintf("Missing second source register in %s.", op)) {
		return
	}
	p.tb[1] = p.word.val
	if !p.expect(itemInto, line, fmt.Sprintf("Missing '=>' in %s.", op)) {
		return
	}
	if !p.expect(itemReg, line, fmt.Sprintf("Missing target register in %s.", op)) {
		return
	}
	p.tb[2] = p.word.val
	if !p.endOfLine(line) {
		return
	}
	p.build(op, line, p.tb[0], p.tb[1], p.tb[2])
}

// finishOutput parses OUTPUT CONST.
func (p *parser) finishOutput(line int) {
	if !p.expect(itemConst, line, "Missing constant in output.") {
		return
	}
	p.tb[0] = p.word.val
	if !p.endOfLine(line) {
		return
	}
	p.build(iloc.Output, line, p.tb[0])
}

// finishNop parses NOP.
func (p *parser) finishNop(line int) {
	if !p.endOfLine(line) {
		return
	}
	p.build(iloc.Nop, line)
}
