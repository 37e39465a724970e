package iloc

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Renamer holds the state of one renaming pass over a Block. A Renamer is used once.
type Renamer struct {
	b       *Block
	active  []int // active maps a source register to its open virtual register, or none.
	lastUse []int // lastUse maps a source register to the position of its closest later use, or Infinity.
	live    int   // Number of source registers with an open live range.

	VRs     int   // Number of virtual registers minted.
	MaxLive int   // Maximum number of simultaneously open live ranges.
	Live    []int // Live[i] is the number of open live ranges just above the node at position i.
}

// ---------------------
// ----- Functions -----
// ---------------------

// Rename assigns virtual registers and next-use distances to every register operand of b and returns MAXLIVE.
// b must be completely built from an error free parse.
func Rename(b *Block) int {
	return NewRenamer(b).Run()
}

// NewRenamer returns a Renamer for block b.
func NewRenamer(b *Block) *Renamer {
	return &Renamer{b: b}
}

// Run performs the backward pass and returns MAXLIVE. An empty block yields 0 and is left untouched.
func (r *Renamer) Run() int {
	l := r.b.Len()
	if l == 0 {
		return 0
	}

	// Size the tables by the largest register id. Literals don't count.
	nsr := 1
	for _, e1 := range r.b.seq.All() {
		for _, e2 := range r.b.arena.Node(e1).Ops {
			if e2.Kind == Register && e2.SR >= nsr {
				nsr = e2.SR + 1
			}
		}
	}
	r.active = make([]int, nsr)
	r.lastUse = make([]int, nsr)
	for i1 := range r.active {
		r.active[i1] = none
		r.lastUse[i1] = Infinity
	}
	r.Live = make([]int, l)

	for pos, e1 := range r.b.seq.Backward() {
		n := r.b.arena.Node(e1)
		rl := n.Op.Roles()

		// Definitions first; walking upwards, the value is dead above its definition.
		for i1 := range n.Ops {
			if rl[i1] == Def {
				r.def(&n.Ops[i1])
			}
		}

		// Uses in slot order. Both uses of the same register see the same lastUse.
		for i1 := range n.Ops {
			if rl[i1] == Use {
				r.use(&n.Ops[i1])
			}
		}
		for i1 := range n.Ops {
			if rl[i1] == Use {
				r.lastUse[n.Ops[i1].SR] = pos
			}
		}

		r.Live[pos] = r.live
		if r.live > r.MaxLive {
			r.MaxLive = r.live
		}
	}
	r.b.renamed = true
	return r.MaxLive
}

// def stamps a defined operand and closes its live range.
func (r *Renamer) def(o *Operand) {
	if r.active[o.SR] == none {
		// Dead definition.
		r.active[o.SR] = r.mint()
	} else {
		r.live--
	}
	o.VR = r.active[o.SR]
	o.NU = r.lastUse[o.SR]
	r.active[o.SR] = none
	r.lastUse[o.SR] = Infinity
}

// use stamps a used operand, opening a live range if it is the last use.
func (r *Renamer) use(o *Operand) {
	if r.active[o.SR] == none {
		r.active[o.SR] = r.mint()
		r.live++
	}
	o.VR = r.active[o.SR]
	o.NU = r.lastUse[o.SR]
}

// mint returns the next virtual register.
func (r *Renamer) mint() int {
	vr := r.VRs
	r.VRs++
	return vr
}
