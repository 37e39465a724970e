package iloc_test

import (
	"math"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ilocfe/src/ir/iloc"
)

var _ = Describe("Block", func() {
	var b *iloc.Block

	BeforeEach(func() {
		b = iloc.NewBlock(2)
	})

	It("should place two operands in slot one and three", func() {
		id := b.Build(iloc.Load, 3, 1, 2)
		n := b.Node(id)

		Expect(n.Ops[0]).To(HaveField("Kind", iloc.Register))
		Expect(n.Ops[0].SR).To(Equal(1))
		Expect(n.Ops[1].Kind).To(Equal(iloc.Absent))
		Expect(n.Ops[1].SR).To(Equal(-1))
		Expect(n.Ops[2].Kind).To(Equal(iloc.Register))
		Expect(n.Ops[2].SR).To(Equal(2))
	})

	It("should tag literal slots", func() {
		n := b.Node(b.Build(iloc.LoadI, 1, 1024, 5))
		Expect(n.Ops[0].Kind).To(Equal(iloc.Literal))
		Expect(n.Ops[0].SR).To(Equal(1024))
		Expect(n.Ops[2].Kind).To(Equal(iloc.Register))

		o := b.Node(b.Build(iloc.Output, 2, 1024))
		Expect(o.Ops[0].Kind).To(Equal(iloc.Literal))
		Expect(o.Ops[1].Kind).To(Equal(iloc.Absent))
		Expect(o.Ops[2].Kind).To(Equal(iloc.Absent))
	})

	It("should fill all three slots of arithmetic operations", func() {
		n := b.Node(b.Build(iloc.Rshift, 1, 4, 5, 6))
		Expect([]int{n.Ops[0].SR, n.Ops[1].SR, n.Ops[2].SR}).To(Equal([]int{4, 5, 6}))
	})

	It("should panic on an arity mismatch", func() {
		Expect(func() { b.Build(iloc.Add, 1, 1, 2) }).To(Panic())
		Expect(func() { b.Build(iloc.Nop, 1, 1) }).To(Panic())
		Expect(func() { b.Build(iloc.Opcode(99), 1) }).To(Panic())
	})

	It("should panic on a register outside the int32 range", func() {
		Expect(func() { b.Build(iloc.LoadI, 1, 1, math.MaxInt) }).To(Panic())
		Expect(func() { b.Build(iloc.Load, 1, -1, 2) }).To(Panic())
		Expect(func() { b.Build(iloc.Add, 1, 1, iloc.MaxValue+1, 2) }).To(Panic())
		Expect(b.Len()).To(Equal(0))
	})

	It("should keep program order across pools", func() {
		for i := 1; i <= 5; i++ {
			b.Build(iloc.Output, i, i)
		}
		Expect(b.Len()).To(Equal(5))
		Expect(b.Arena().Pools()).To(Equal(3))
		for i := 0; i < 5; i++ {
			Expect(b.At(i).Line).To(Equal(i + 1))
		}
	})

	Describe("printing", func() {
		BeforeEach(func() {
			b.Build(iloc.LoadI, 1, 5, 1)
			b.Build(iloc.Add, 2, 1, 1, 2)
			b.Build(iloc.Store, 3, 2, 3)
			b.Build(iloc.Output, 4, 1024)
			b.Build(iloc.Nop, 5)
		})

		It("should print source registers before renaming", func() {
			Expect(b.String()).To(Equal(
				"loadI\t[ val 5 ], [ ], [ sr1 ]\n" +
					"add\t[ sr1 ], [ sr1 ], [ sr2 ]\n" +
					"store\t[ sr2 ], [ ], [ sr3 ]\n" +
					"output\t[ val 1024 ], [ ], [ ]\n" +
					"nop\t[ ], [ ], [ ]\n"))
		})

		It("should print identically twice", func() {
			Expect(b.String()).To(Equal(b.String()))
		})

		It("should print virtual registers and next uses after renaming", func() {
			iloc.Rename(b)
			lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
			Expect(lines).To(HaveLen(5))
			Expect(lines[0]).To(Equal("loadI\t[ val 5 ], [ ], [ sr1 vr2 nu=1 ]"))
			Expect(lines[1]).To(Equal("add\t[ sr1 vr2 nu=-1 ], [ sr1 vr2 nu=-1 ], [ sr2 vr0 nu=2 ]"))
			Expect(lines[2]).To(Equal("store\t[ sr2 vr0 nu=-1 ], [ ], [ sr3 vr1 nu=-1 ]"))
			Expect(lines[3]).To(Equal("output\t[ val 1024 ], [ ], [ ]"))
		})

		It("should write the same text through Print", func() {
			sb := strings.Builder{}
			Expect(b.Print(&sb)).To(Succeed())
			Expect(sb.String()).To(Equal(b.String()))
		})
	})
})

var _ = Describe("Opcode", func() {
	It("should know its mnemonic and arity", func() {
		Expect(iloc.LoadI.String()).To(Equal("loadI"))
		Expect(iloc.Lshift.String()).To(Equal("lshift"))
		Expect(iloc.Opcode(200).String()).To(Equal("opcode(200)"))
		Expect(iloc.Nop.Arity()).To(Equal(0))
		Expect(iloc.Output.Arity()).To(Equal(1))
		Expect(iloc.Store.Arity()).To(Equal(2))
		Expect(iloc.Mult.Arity()).To(Equal(3))
		Expect(iloc.Mult.IsArithmetic()).To(BeTrue())
		Expect(iloc.Load.IsArithmetic()).To(BeFalse())
	})
})
