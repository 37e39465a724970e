package iloc

import (
	"fmt"
	"math"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// OperandKind tags the content of an operand slot.
type OperandKind uint8

// Operand is one of the three slots of a Node.
type Operand struct {
	Kind OperandKind // What SR holds.
	SR   int         // Source register id for Register, the constant for Literal, -1 for Absent.
	VR   int         // Virtual register assigned by the Renamer. -1 until renamed.
	NU   int         // Distance to next use. Infinity if there is none.
	PR   int         // Reserved for a physical register. Always -1.
}

// ---------------------
// ----- Constants -----
// ---------------------

const (
	Absent   OperandKind = iota // Absent slots are not used by the opcode.
	Register                    // Register slots name a source register.
	Literal                     // Literal slots hold a constant.
)

// Infinity is the next-use distance of a value that is not used again in the block.
const Infinity = math.MaxInt

// MaxValue bounds register numbers and constants.
const MaxValue = math.MaxInt32

// none marks an unset register, virtual register or physical register.
const none = -1

// ---------------------
// ----- Functions -----
// ---------------------

// absent returns an operand for an unused slot.
func absent() Operand {
	return Operand{Kind: Absent, SR: none, VR: none, NU: Infinity, PR: none}
}

// IsRegister returns true if the operand names a source register.
func (o Operand) IsRegister() bool {
	return o.Kind == Register
}

// Renamed returns true if the Renamer assigned a virtual register to the operand.
func (o Operand) Renamed() bool {
	return o.Kind == Register && o.VR >= 0
}

// String returns the printer representation of the operand.
func (o Operand) String() string {
	switch o.Kind {
	case Literal:
		return fmt.Sprintf("[ val %d ]", o.SR)
	case Register:
		if !o.Renamed() {
			return fmt.Sprintf("[ sr%d ]", o.SR)
		}
		nu := o.NU
		if nu == Infinity {
			nu = -1
		}
		return fmt.Sprintf("[ sr%d vr%d nu=%d ]", o.SR, o.VR, nu)
	}
	return "[ ]"
}
