package iloc_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ilocfe/src/ir/iloc"
)

// stamp returns the virtual register and next use of slot i of the node at position pos.
func stamp(b *iloc.Block, pos, i int) [2]int {
	o := b.At(pos).Ops[i]
	return [2]int{o.VR, o.NU}
}

const inf = iloc.Infinity

var _ = Describe("Renamer", func() {
	var b *iloc.Block

	BeforeEach(func() {
		b = iloc.NewBlock(0)
	})

	It("should rename the reference block", func() {
		b.Build(iloc.LoadI, 1, 5, 1)
		b.Build(iloc.Add, 2, 1, 1, 2)
		b.Build(iloc.Store, 3, 2, 3)

		Expect(iloc.Rename(b)).To(Equal(2))
		Expect(b.Renamed()).To(BeTrue())

		Expect(stamp(b, 0, 2)).To(Equal([2]int{2, 1}))
		Expect(stamp(b, 1, 0)).To(Equal([2]int{2, inf}))
		Expect(stamp(b, 1, 1)).To(Equal([2]int{2, inf}))
		Expect(stamp(b, 1, 2)).To(Equal([2]int{0, 2}))
		Expect(stamp(b, 2, 0)).To(Equal([2]int{0, inf}))
		Expect(stamp(b, 2, 2)).To(Equal([2]int{1, inf}))
	})

	It("should report live counts per position", func() {
		b.Build(iloc.LoadI, 1, 5, 1)
		b.Build(iloc.Add, 2, 1, 1, 2)
		b.Build(iloc.Store, 3, 2, 3)

		r := iloc.NewRenamer(b)
		Expect(r.Run()).To(Equal(2))
		Expect(r.Live).To(Equal([]int{1, 2, 2}))
		Expect(r.VRs).To(Equal(3))
	})

	It("should return zero for an empty block", func() {
		r := iloc.NewRenamer(b)
		Expect(r.Run()).To(Equal(0))
		Expect(r.VRs).To(Equal(0))
		Expect(r.Live).To(BeEmpty())
		Expect(b.Renamed()).To(BeFalse())
	})

	It("should keep one live range for a register live into the block", func() {
		b.Build(iloc.Add, 1, 1, 2, 3)
		b.Build(iloc.Add, 2, 1, 3, 4)

		Expect(iloc.Rename(b)).To(Equal(2))

		// r4 is a dead definition.
		Expect(stamp(b, 1, 2)).To(Equal([2]int{0, inf}))
		// r1 is never defined: both uses share one virtual register.
		Expect(stamp(b, 1, 0)).To(Equal([2]int{1, inf}))
		Expect(stamp(b, 0, 0)).To(Equal([2]int{1, 1}))
		Expect(stamp(b, 1, 1)).To(Equal([2]int{2, inf}))
		Expect(stamp(b, 0, 2)).To(Equal([2]int{2, 1}))
		Expect(stamp(b, 0, 1)).To(Equal([2]int{3, inf}))
	})

	It("should split a redefined register into separate live ranges", func() {
		b.Build(iloc.LoadI, 1, 1, 1)
		b.Build(iloc.Store, 2, 1, 2)
		b.Build(iloc.LoadI, 3, 2, 1)
		b.Build(iloc.Store, 4, 1, 2)

		r := iloc.NewRenamer(b)
		Expect(r.Run()).To(Equal(2))
		Expect(r.Live).To(Equal([]int{1, 2, 1, 2}))

		Expect(stamp(b, 3, 0)).To(Equal([2]int{0, inf}))
		Expect(stamp(b, 3, 2)).To(Equal([2]int{1, inf}))
		Expect(stamp(b, 2, 2)).To(Equal([2]int{0, 3}))
		Expect(stamp(b, 1, 0)).To(Equal([2]int{2, inf}))
		Expect(stamp(b, 1, 2)).To(Equal([2]int{1, 3}))
		Expect(stamp(b, 0, 2)).To(Equal([2]int{2, 1}))
	})

	It("should let both uses of one register see the same next use", func() {
		b.Build(iloc.Add, 1, 1, 1, 1)

		Expect(iloc.Rename(b)).To(Equal(1))
		Expect(stamp(b, 0, 2)).To(Equal([2]int{0, inf}))
		Expect(stamp(b, 0, 0)).To(Equal([2]int{1, inf}))
		Expect(stamp(b, 0, 1)).To(Equal([2]int{1, inf}))
	})

	It("should treat output operands as literals without liveness", func() {
		// output's constant is an address, not a register: no virtual register is minted for it.
		b.Build(iloc.LoadI, 1, 1024, 1)
		b.Build(iloc.Output, 2, 1024)

		r := iloc.NewRenamer(b)
		Expect(r.Run()).To(Equal(0))
		Expect(r.VRs).To(Equal(1))
		Expect(b.At(1).Ops[0].VR).To(Equal(-1))
		Expect(b.At(0).Ops[0].VR).To(Equal(-1))
		Expect(stamp(b, 0, 2)).To(Equal([2]int{0, inf}))
	})

	It("should size its tables by a large sparse register", func() {
		b.Build(iloc.LoadI, 1, 1, 1<<20)
		b.Build(iloc.Store, 2, 1<<20, 3)

		r := iloc.NewRenamer(b)
		Expect(r.Run()).To(Equal(2))
		Expect(stamp(b, 0, 2)).To(Equal([2]int{0, 1}))
		Expect(stamp(b, 1, 0)).To(Equal([2]int{0, inf}))
	})

	It("should leave nop and unused slots alone", func() {
		b.Build(iloc.Nop, 1)
		b.Build(iloc.Load, 2, 1, 2)

		Expect(iloc.Rename(b)).To(Equal(1))
		for _, o := range b.At(0).Ops {
			Expect(o.VR).To(Equal(-1))
		}
		Expect(b.At(1).Ops[1].VR).To(Equal(-1))
	})

	Describe("properties", func() {
		blocks := map[string]func(b *iloc.Block){
			"straight line": func(b *iloc.Block) {
				b.Build(iloc.LoadI, 1, 8, 1)
				b.Build(iloc.LoadI, 2, 12, 2)
				b.Build(iloc.Load, 3, 1, 3)
				b.Build(iloc.Load, 4, 2, 4)
				b.Build(iloc.Mult, 5, 3, 4, 5)
				b.Build(iloc.Sub, 6, 5, 3, 6)
				b.Build(iloc.Lshift, 7, 6, 4, 7)
				b.Build(iloc.Store, 8, 7, 1)
				b.Build(iloc.Output, 9, 8)
			},
			"live in": func(b *iloc.Block) {
				b.Build(iloc.Add, 1, 10, 11, 12)
				b.Build(iloc.Add, 2, 12, 13, 14)
				b.Build(iloc.Rshift, 3, 10, 14, 15)
				b.Build(iloc.Store, 4, 15, 11)
			},
			"dead definitions": func(b *iloc.Block) {
				b.Build(iloc.LoadI, 1, 1, 0)
				b.Build(iloc.LoadI, 2, 2, 0)
				b.Build(iloc.LoadI, 3, 3, 0)
			},
		}

		for name, build := range blocks {
			build := build
			It("should mint dense increasing virtual registers for "+name, func() {
				build(b)
				r := iloc.NewRenamer(b)
				maxlive := r.Run()

				// Collect virtual registers in discovery order of the backward walk.
				seen := map[int]bool{}
				next := 0
				regs := map[int]bool{}
				for pos := b.Len() - 1; pos >= 0; pos-- {
					n := b.At(pos)
					rl := n.Op.Roles()
					order := []int{}
					for i := range rl {
						if rl[i] == iloc.Def {
							order = append(order, i)
						}
					}
					for i := range rl {
						if rl[i] == iloc.Use {
							order = append(order, i)
						}
					}
					for _, i := range order {
						o := n.Ops[i]
						regs[o.SR] = true
						Expect(o.VR).To(BeNumerically(">=", 0))
						if !seen[o.VR] {
							Expect(o.VR).To(Equal(next))
							seen[o.VR] = true
							next++
						}
					}
				}
				Expect(next).To(Equal(r.VRs))

				Expect(maxlive).To(BeNumerically(">=", 0))
				Expect(maxlive).To(BeNumerically("<=", b.Len()))
				Expect(maxlive).To(BeNumerically("<=", len(regs)))
			})
		}
	})
})
