package iloc

import (
	"fmt"
	"io"
	"strings"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Block is a single ILOC basic block: the arena owning its nodes and their program order.
type Block struct {
	arena   *Arena   // Storage of all nodes.
	seq     Sequence // Program order.
	renamed bool     // Set true once Rename has run.
}

// ---------------------
// ----- Functions -----
// ---------------------

// NewBlock returns an empty block whose arena uses pools of poolSize nodes.
func NewBlock(poolSize int) *Block {
	return &Block{
		arena: NewArena(poolSize),
	}
}

// Build creates the next node of the block. The number of values must equal op.Arity(); they fill the slots that
// are not Unused for op, in slot order. A register value outside [0, MaxValue] panics.
func (b *Block) Build(op Opcode, line int, vals ...int) NodeID {
	if !op.Valid() {
		panic(fmt.Sprintf("line %d: unknown opcode %d", line, op))
	}
	if len(vals) != op.Arity() {
		panic(fmt.Sprintf("line %d: %s takes %d operands, got %d", line, op, op.Arity(), len(vals)))
	}
	i2 := 0
	for _, e1 := range op.Roles() {
		switch e1 {
		case Use, Def:
			if vals[i2] < 0 || vals[i2] > MaxValue {
				panic(fmt.Sprintf("line %d: register r%d out of range", line, vals[i2]))
			}
			i2++
		case Lit:
			i2++
		}
	}
	id := b.arena.Alloc(op, line)
	n := b.arena.Node(id)
	i2 = 0
	for i1, e1 := range op.Roles() {
		switch e1 {
		case Use, Def:
			n.Ops[i1].Kind = Register
		case Lit:
			n.Ops[i1].Kind = Literal
		default:
			continue
		}
		n.Ops[i1].SR = vals[i2]
		i2++
	}
	b.seq.Append(id)
	return id
}

// Node returns the node with handle id.
func (b *Block) Node(id NodeID) *Node {
	return b.arena.Node(id)
}

// At returns the node at position i in program order.
func (b *Block) At(i int) *Node {
	return b.arena.Node(b.seq.At(i))
}

// Len returns the number of nodes in the block.
func (b *Block) Len() int {
	return b.seq.Len()
}

// Sequence returns the program order of the block.
func (b *Block) Sequence() *Sequence {
	return &b.seq
}

// Arena returns the arena owning the block's nodes.
func (b *Block) Arena() *Arena {
	return b.arena
}

// Renamed returns true if the block has been renamed.
func (b *Block) Renamed() bool {
	return b.renamed
}

// String returns the textual representation of the node.
func (n *Node) String() string {
	return fmt.Sprintf("%s\t%s, %s, %s", n.Op, n.Ops[0], n.Ops[1], n.Ops[2])
}

// String returns the textual representation of all nodes in program order, one per line.
func (b *Block) String() string {
	sb := strings.Builder{}
	for _, e1 := range b.seq.All() {
		sb.WriteString(b.arena.Node(e1).String())
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Print writes the textual representation of the block to w.
func (b *Block) Print(w io.Writer) error {
	_, err := io.WriteString(w, b.String())
	return err
}
