package iloc

import "iter"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Sequence is the program order of a block: an append-only list of node handles. It does not own the nodes.
type Sequence struct {
	ids []NodeID
}

// ---------------------
// ----- Functions -----
// ---------------------

// Append adds id after the last node of the sequence.
func (s *Sequence) Append(id NodeID) {
	s.ids = append(s.ids, id)
}

// Len returns the number of nodes in the sequence.
func (s *Sequence) Len() int {
	return len(s.ids)
}

// At returns the handle at position i in program order.
func (s *Sequence) At(i int) NodeID {
	return s.ids[i]
}

// All iterates the sequence in program order, yielding each node's zero-based position and handle.
func (s *Sequence) All() iter.Seq2[int, NodeID] {
	return func(yield func(int, NodeID) bool) {
		for i1, e1 := range s.ids {
			if !yield(i1, e1) {
				return
			}
		}
	}
}

// Backward iterates the sequence from the last node to the first, yielding each node's position and handle.
func (s *Sequence) Backward() iter.Seq2[int, NodeID] {
	return func(yield func(int, NodeID) bool) {
		for i1 := len(s.ids) - 1; i1 >= 0; i1-- {
			if !yield(i1, s.ids[i1]) {
				return
			}
		}
	}
}

// Remove detaches id from the sequence. Removing a handle that is not in the sequence is a no-op.
func (s *Sequence) Remove(id NodeID) {
	for i1, e1 := range s.ids {
		if e1 == id {
			s.ids = append(s.ids[:i1], s.ids[i1+1:]...)
			return
		}
	}
}
