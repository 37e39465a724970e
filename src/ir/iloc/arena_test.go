package iloc_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"ilocfe/src/ir/iloc"
)

var _ = Describe("Arena", func() {
	It("should fall back to the default pool size", func() {
		a := iloc.NewArena(0)
		Expect(a.PoolSize()).To(Equal(iloc.DefaultPoolSize))
		Expect(a.Len()).To(Equal(0))
		Expect(a.Pools()).To(Equal(0))
	})

	It("should allocate nodes with every slot absent", func() {
		a := iloc.NewArena(4)
		id := a.Alloc(iloc.Add, 7)

		n := a.Node(id)
		Expect(n.Op).To(Equal(iloc.Add))
		Expect(n.Line).To(Equal(7))
		for _, o := range n.Ops {
			Expect(o.Kind).To(Equal(iloc.Absent))
			Expect(o.SR).To(Equal(-1))
			Expect(o.VR).To(Equal(-1))
			Expect(o.PR).To(Equal(-1))
		}
	})

	It("should open a new pool when the current one is full", func() {
		a := iloc.NewArena(3)
		ids := make([]iloc.NodeID, 0, 7)
		for i := 0; i < 7; i++ {
			ids = append(ids, a.Alloc(iloc.Nop, i+1))
		}

		Expect(a.Len()).To(Equal(7))
		Expect(a.Pools()).To(Equal(3))
		for i, id := range ids {
			Expect(id).To(Equal(iloc.NodeID(i)))
			Expect(a.Node(id).Line).To(Equal(i + 1))
		}
	})

	It("should keep node pointers stable across growth", func() {
		a := iloc.NewArena(2)
		first := a.Node(a.Alloc(iloc.LoadI, 1))
		for i := 0; i < 10; i++ {
			a.Alloc(iloc.Nop, i+2)
		}

		first.Ops[0].SR = 42
		Expect(a.Node(0).Ops[0].SR).To(Equal(42))
	})

	It("should drop every pool on reset", func() {
		a := iloc.NewArena(2)
		for i := 0; i < 5; i++ {
			a.Alloc(iloc.Nop, i)
		}
		a.Reset()

		Expect(a.Len()).To(Equal(0))
		Expect(a.Pools()).To(Equal(0))
		Expect(a.Alloc(iloc.Nop, 1)).To(Equal(iloc.NodeID(0)))
	})
})

var _ = Describe("Sequence", func() {
	var s *iloc.Sequence

	BeforeEach(func() {
		s = &iloc.Sequence{}
		for i := 0; i < 4; i++ {
			s.Append(iloc.NodeID(i * 10))
		}
	})

	It("should iterate in program order", func() {
		var pos []int
		var ids []iloc.NodeID
		for i, id := range s.All() {
			pos = append(pos, i)
			ids = append(ids, id)
		}
		Expect(pos).To(Equal([]int{0, 1, 2, 3}))
		Expect(ids).To(Equal([]iloc.NodeID{0, 10, 20, 30}))
	})

	It("should iterate backward with program positions", func() {
		var pos []int
		var ids []iloc.NodeID
		for i, id := range s.Backward() {
			pos = append(pos, i)
			ids = append(ids, id)
		}
		Expect(pos).To(Equal([]int{3, 2, 1, 0}))
		Expect(ids).To(Equal([]iloc.NodeID{30, 20, 10, 0}))
	})

	It("should stop iterating when the consumer breaks", func() {
		n := 0
		for range s.Backward() {
			n++
			break
		}
		Expect(n).To(Equal(1))
	})

	It("should remove idempotently", func() {
		s.Remove(20)
		Expect(s.Len()).To(Equal(3))
		s.Remove(20)
		Expect(s.Len()).To(Equal(3))
		Expect(s.At(2)).To(Equal(iloc.NodeID(30)))
	})

	It("should ignore removal from an empty sequence", func() {
		e := &iloc.Sequence{}
		e.Remove(0)
		Expect(e.Len()).To(Equal(0))
	})
})
