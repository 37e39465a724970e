package frontend

import (
	"strconv"

	"ilocfe/src/ir/iloc"
)

// lexGlobal starts the lexing process and serves as the default state.
func lexGlobal(l *lexer) stateFunc {
	for {
		r := l.next()
		switch {
		case r == ' ' || r == '\t':
			l.ignore()
		case r == '\n':
			l.emit(itemEOL, 0)
			l.line++
		case r == '\r':
			// Accept both \r\n and a lone \r.
			if l.peek() == '\n' {
				l.next()
			}
			l.emit(itemEOL, 0)
			l.line++
		case r == ',':
			l.emit(itemComma, 0)
		case r == '=':
			if l.peek() != '>' {
				return l.errorf("%q is not a valid word.", "=")
			}
			l.next()
			l.emit(itemInto, 0)
		case r == '/':
			if l.peek() != '/' {
				return l.errorf("%q is not a valid word.", "/")
			}
			// Comment: ignore up to, not including, the newline.
			for c := l.next(); c != '\n' && c != '\r' && c != eof; c = l.next() {
			}
			l.backup()
			l.ignore()
		case isAlpha(r):
			return lexWord
		case isDigit(r):
			return lexNumber
		case r == eof:
			l.emit(itemEOF, 0)
			return nil
		default:
			return l.errorf("%q is not a valid word.", string(r))
		}
	}
}

// lexWord scans opcodes and registers.
func lexWord(l *lexer) stateFunc {
	// We know that the currently scanned rune is an alphabetic character.
	l.acceptRun(alpha)
	word := l.input[l.start:l.pos]

	// Register: r followed by a decimal number.
	if word == "r" && isDigit(l.peek()) {
		l.acceptRun(digits)
		n, err := strconv.Atoi(l.input[l.start+1 : l.pos])
		if err != nil || n > iloc.MaxValue {
			return l.errorf("%q is not a valid word.", l.input[l.start:l.pos])
		}
		l.emit(itemReg, n)
		return lexGlobal
	}

	kw, op := isKeyword(word)
	if !kw {
		return l.errorf("%q is not a valid word.", word)
	}

	// Every opcode but nop must be followed by a blank.
	typ := opcodeItem(op)
	if typ != itemNop {
		if r := l.peek(); r != ' ' && r != '\t' {
			return l.errorf("%q is not a valid word.", word)
		}
	}
	l.emit(typ, int(op))
	return lexGlobal
}

// lexNumber scans a non-negative decimal constant.
func lexNumber(l *lexer) stateFunc {
	// We've scanned the first digit already.
	l.acceptRun(digits)
	n, err := strconv.Atoi(l.input[l.start:l.pos])
	if err != nil || n > iloc.MaxValue {
		return l.errorf("%q is not a valid word.", l.input[l.start:l.pos])
	}
	l.emit(itemConst, n)
	return lexGlobal
}

// ----------------------------
// ----- Helper functions -----
// ----------------------------

const alpha = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
const digits = "0123456789"

// isAlpha return true if rune r is an alphabetic character in the set [a-zA-Z].
func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isDigit return true if rune r is a digit in the range [0-9].
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
