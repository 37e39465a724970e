package iloc

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// NodeID is a stable handle of a Node allocated in an Arena.
type NodeID int

// Node is one ILOC operation.
type Node struct {
	Line int        // Source line of the operation.
	Op   Opcode     // Operation.
	Ops  [3]Operand // Operand slots, see Opcode.Roles.
}

// pool is a fixed capacity chunk of nodes. Its backing array is never reallocated.
type pool struct {
	nodes []Node
}

// Arena owns the storage of all nodes of a block. Nodes are allocated from fixed size pools and never freed
// individually.
type Arena struct {
	size  int     // Capacity of every pool.
	pools []*pool // Pools in allocation order. Only the last one has free slots.
}

// ---------------------
// ----- Constants -----
// ---------------------

// DefaultPoolSize is the number of nodes per pool when none is configured.
const DefaultPoolSize = 2000

// ---------------------
// ----- Functions -----
// ---------------------

// NewArena returns an empty arena with pools of size nodes. A size below 1 selects DefaultPoolSize.
func NewArena(size int) *Arena {
	if size < 1 {
		size = DefaultPoolSize
	}
	return &Arena{
		size:  size,
		pools: make([]*pool, 0, 1),
	}
}

// Alloc returns the handle of a new node with all three slots Absent.
func (a *Arena) Alloc(op Opcode, line int) NodeID {
	var p *pool
	if l := len(a.pools); l > 0 && len(a.pools[l-1].nodes) < a.size {
		p = a.pools[l-1]
	} else {
		p = &pool{nodes: make([]Node, 0, a.size)}
		a.pools = append(a.pools, p)
	}
	p.nodes = append(p.nodes, Node{
		Line: line,
		Op:   op,
		Ops:  [3]Operand{absent(), absent(), absent()},
	})
	return NodeID((len(a.pools)-1)*a.size + len(p.nodes) - 1)
}

// Node returns the node with handle id. The pointer stays valid until Reset.
func (a *Arena) Node(id NodeID) *Node {
	return &a.pools[int(id)/a.size].nodes[int(id)%a.size]
}

// Len returns the number of allocated nodes.
func (a *Arena) Len() int {
	if len(a.pools) == 0 {
		return 0
	}
	return (len(a.pools)-1)*a.size + len(a.pools[len(a.pools)-1].nodes)
}

// Pools returns the number of pools allocated so far.
func (a *Arena) Pools() int {
	return len(a.pools)
}

// PoolSize returns the capacity of each pool.
func (a *Arena) PoolSize() int {
	return a.size
}

// Reset releases every pool. Handles and node pointers obtained before Reset must not be used afterwards.
func (a *Arena) Reset() {
	for i1 := range a.pools {
		a.pools[i1] = nil
	}
	a.pools = a.pools[:0]
}
