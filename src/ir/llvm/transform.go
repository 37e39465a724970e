// Package llvm provides means to lower a renamed ILOC block into LLVM IR for the system installed LLVM
// runtime.
package llvm

import (
	"errors"
	"fmt"
	"path/filepath"
)

import (
	"go.uber.org/zap"
	"tinygo.org/x/go-llvm"
)

import (
	"ilocfe/src/ir/iloc"
	"ilocfe/src/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// lowering holds the state of lowering one block into the body of main.
type lowering struct {
	ctx    llvm.Context
	b      llvm.Builder
	m      llvm.Module
	i32    llvm.Type
	mem    llvm.Value         // The block's memory.
	printf llvm.Value         // printf declaration.
	frmt   llvm.Value         // Format string of output. Created on first use.
	vals   map[int]llvm.Value // SSA value of every defined virtual register.
	liveIn map[int]bool       // Virtual registers used without a definition in the block.
}

// ---------------------
// ----- Constants -----
// ---------------------

const memSize = 32768 // Size of the block's memory in bytes.
const wordSize = 4    // Width of a memory access in bytes.

// ---------------------
// ----- functions -----
// ---------------------

// GenLLVM lowers the renamed block blk into an LLVM module with a single main function and returns the module's
// textual IR. Memory is a zero initialised global byte array. Virtual registers become SSA values; a virtual
// register that is used before any definition in the block reads as zero.
func GenLLVM(opt util.Options, blk *iloc.Block) (string, error) {
	if blk == nil {
		return "", errors.New("block is <nil>")
	}
	if !blk.Renamed() && blk.Len() > 0 {
		return "", errors.New("block must be renamed before lowering to LLVM IR")
	}

	ctx := llvm.NewContext()
	defer ctx.Dispose()

	// Builder constructs LLVM IR instructions on basic block level.
	b := ctx.NewBuilder()
	defer b.Dispose()

	// Set module name equal file name.
	name := filepath.Base(opt.Src)
	if len(opt.Src) == 0 {
		name = "block"
	}
	m := ctx.NewModule(name)
	defer m.Dispose()
	m.SetTarget(llvm.DefaultTargetTriple())

	l := lowering{
		ctx:    ctx,
		b:      b,
		m:      m,
		i32:    ctx.Int32Type(),
		vals:   make(map[int]llvm.Value, blk.Len()),
		liveIn: make(map[int]bool),
	}
	l.genMemory()
	l.printf = l.genPrintf()

	ftyp := llvm.FunctionType(l.i32, nil, false)
	main := llvm.AddFunction(m, "main", ftyp)
	bb := ctx.AddBasicBlock(main, "entry")
	b.SetInsertPointAtEnd(bb)

	for _, e1 := range blk.Sequence().All() {
		if err := l.gen(blk.Node(e1)); err != nil {
			return "", err
		}
	}
	b.CreateRet(llvm.ConstInt(l.i32, 0, false))

	if err := llvm.VerifyModule(m, llvm.ReturnStatusAction); err != nil {
		return "", fmt.Errorf("LLVM module verification failed: %w", err)
	}

	util.Logger().Debug("llvm lowering finished",
		zap.String("module", name),
		zap.Int("operations", blk.Len()),
		zap.Int("values", len(l.vals)),
		zap.Int("live-in", len(l.liveIn)))
	return m.String(), nil
}

// gen generates LLVM IR for the node n.
func (l *lowering) gen(n *iloc.Node) error {
	switch {
	case n.Op == iloc.Load:
		l.def(n.Ops[2], l.b.CreateLoad(l.addr(l.use(n.Ops[0])), ""))
	case n.Op == iloc.LoadI:
		l.def(n.Ops[2], llvm.ConstInt(l.i32, uint64(n.Ops[0].SR), false))
	case n.Op == iloc.Store:
		l.b.CreateStore(l.use(n.Ops[0]), l.addr(l.use(n.Ops[2])))
	case n.Op.IsArithmetic():
		op1, op2 := l.use(n.Ops[0]), l.use(n.Ops[1])
		var res llvm.Value
		switch n.Op {
		case iloc.Add:
			res = l.b.CreateAdd(op1, op2, "")
		case iloc.Sub:
			res = l.b.CreateSub(op1, op2, "")
		case iloc.Mult:
			res = l.b.CreateMul(op1, op2, "")
		case iloc.Lshift:
			res = l.b.CreateShl(op1, op2, "")
		case iloc.Rshift:
			res = l.b.CreateAShr(op1, op2, "")
		}
		l.def(n.Ops[2], res)
	case n.Op == iloc.Output:
		a := n.Ops[0].SR
		if a < 0 || a > memSize-wordSize {
			return fmt.Errorf("line %d: output address %d outside memory of %d bytes", n.Line, a, memSize)
		}
		if l.frmt.IsNil() {
			l.frmt = l.b.CreateGlobalStringPtr("%d\n", "fmt")
		}
		v := l.b.CreateLoad(l.addr(llvm.ConstInt(l.i32, uint64(a), false)), "")
		l.b.CreateCall(l.printf, []llvm.Value{l.frmt, v}, "")
	case n.Op == iloc.Nop:
	default:
		return fmt.Errorf("line %d: unexpected opcode %s", n.Line, n.Op)
	}
	return nil
}

// def binds the virtual register of the defined operand o to v.
func (l *lowering) def(o iloc.Operand, v llvm.Value) {
	if !v.IsAConstant().IsNil() {
		l.vals[o.VR] = v
		return
	}
	v.SetName(fmt.Sprintf("vr%d", o.VR))
	l.vals[o.VR] = v
}

// use returns the value of the used operand o. Live-in virtual registers read as zero.
func (l *lowering) use(o iloc.Operand) llvm.Value {
	if v, ok := l.vals[o.VR]; ok {
		return v
	}
	if !l.liveIn[o.VR] {
		l.liveIn[o.VR] = true
		util.Logger().Warn("virtual register is live into the block, reading zero",
			zap.Int("vr", o.VR),
			zap.Int("sr", o.SR))
	}
	return llvm.ConstInt(l.i32, 0, false)
}

// addr returns an i32 pointer to the byte at address a of the block's memory.
func (l *lowering) addr(a llvm.Value) llvm.Value {
	idx := []llvm.Value{llvm.ConstInt(l.i32, 0, false), a}
	p := l.b.CreateInBoundsGEP(l.mem, idx, "")
	return l.b.CreateBitCast(p, llvm.PointerType(l.i32, 0), "")
}

// genMemory generates the global byte array backing load, store and output.
func (l *lowering) genMemory() {
	typ := llvm.ArrayType(l.ctx.Int8Type(), memSize)
	l.mem = llvm.AddGlobal(l.m, typ, "mem")
	l.mem.SetInitializer(llvm.ConstNull(typ))
	l.mem.SetLinkage(llvm.InternalLinkage)
	l.mem.SetAlignment(wordSize)
}

// genPrintf generates the LLVM IR printf definition.
func (l *lowering) genPrintf() llvm.Value {
	// Declare printf.
	args := []llvm.Type{llvm.PointerType(l.ctx.Int8Type(), 0)}
	ftyp := llvm.FunctionType(l.ctx.Int32Type(), args, true)
	return llvm.AddFunction(l.m, "printf", ftyp)
}
