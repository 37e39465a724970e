// Package iloc provides the in-memory intermediate representation of a single ILOC basic block, the arena that owns
// its nodes, and the local renaming pass that assigns virtual registers and next-use distances.
package iloc

import "fmt"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Opcode identifies an ILOC operation.
type Opcode uint8

// SlotRole defines how an operation reads or writes one of its three operand slots.
type SlotRole uint8

// ---------------------
// ----- Constants -----
// ---------------------

const (
	Load   Opcode = iota // Load identifies load r1 => r2; r2 = MEM(r1).
	LoadI                // LoadI identifies loadI c => r2; r2 = c.
	Store                // Store identifies store r1 => r2; MEM(r2) = r1.
	Add                  // Add identifies add r1, r2 => r3.
	Sub                  // Sub identifies sub r1, r2 => r3.
	Mult                 // Mult identifies mult r1, r2 => r3.
	Lshift               // Lshift identifies lshift r1, r2 => r3.
	Rshift               // Rshift identifies rshift r1, r2 => r3.
	Output               // Output identifies output c; prints MEM(c).
	Nop                  // Nop does nothing.
)

const (
	Unused SlotRole = iota // Unused slots are Absent for the opcode.
	Use                    // Use slots read a source register.
	Def                    // Def slots write a source register.
	Lit                    // Lit slots hold a literal constant.
)

// -------------------
// ----- Globals -----
// -------------------

// mnemonics provides the textual ILOC name of every Opcode.
var mnemonics = [...]string{
	"load",
	"loadI",
	"store",
	"add",
	"sub",
	"mult",
	"lshift",
	"rshift",
	"output",
	"nop",
}

// roles is the canonical opcode to slot role table shared by the Builder, the Renamer and the Printer.
var roles = [...][3]SlotRole{
	Load:   {Use, Unused, Def},
	LoadI:  {Lit, Unused, Def},
	Store:  {Use, Unused, Use},
	Add:    {Use, Use, Def},
	Sub:    {Use, Use, Def},
	Mult:   {Use, Use, Def},
	Lshift: {Use, Use, Def},
	Rshift: {Use, Use, Def},
	Output: {Lit, Unused, Unused},
	Nop:    {Unused, Unused, Unused},
}

// ---------------------
// ----- Functions -----
// ---------------------

// String returns the ILOC mnemonic of op.
func (op Opcode) String() string {
	if int(op) < len(mnemonics) {
		return mnemonics[op]
	}
	return fmt.Sprintf("opcode(%d)", uint8(op))
}

// Valid returns true if op is a known Opcode.
func (op Opcode) Valid() bool {
	return int(op) < len(roles)
}

// Roles returns the slot roles of op.
func (op Opcode) Roles() [3]SlotRole {
	return roles[op]
}

// Arity returns the number of operand values the Builder expects for op.
func (op Opcode) Arity() int {
	n := 0
	for _, e1 := range roles[op] {
		if e1 != Unused {
			n++
		}
	}
	return n
}

// IsArithmetic returns true for the binary three-address operations.
func (op Opcode) IsArithmetic() bool {
	return op >= Add && op <= Rshift
}
