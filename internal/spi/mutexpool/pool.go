package mutexpool

import "sync/atomic"

const (
	// DefaultCapacity is the number of nodes pre-constructed by Shared.
	DefaultCapacity = 64

	chunkBits  = 6
	chunkSize  = 1 << chunkBits // 64 nodes per chunk
	chunkMask  = chunkSize - 1
	maxChunks  = 1024
	maxTracked = chunkSize * maxChunks // 65536 tracked nodes per pool
)

// chunk is a lazily allocated block of node slots.
type chunk [chunkSize]atomic.Pointer[MutexNode]

// Pool is a lock-free free-list of MutexNodes.
//
// The zero Pool is empty and ready to use: Allocate constructs nodes on
// demand. Use New to pre-fill it.
type Pool struct {
	// top packs tag<<32 | index of the head node (index 0 = empty).
	top atomic.Uint64

	// nextIndex hands out table indices; index 0 is reserved for "none".
	nextIndex atomic.Uint32

	// chunks maps index-1 to nodes: chunks[(i-1)>>chunkBits][(i-1)&chunkMask].
	// 1024 pointers = 8KB per pool, chunks allocated on first use.
	chunks [maxChunks]atomic.Pointer[chunk]

	// Instrumentation only, never consulted by push/pop.
	constructed atomic.Int64
	free        atomic.Int64
	borrowed    atomic.Int64
}

// Stats is a point-in-time view of pool counters.
//
// The counters are updated independently, so under concurrent use a
// snapshot may be momentarily inconsistent.
type Stats struct {
	Constructed int64 // Nodes ever constructed by this pool.
	Free        int64 // Nodes currently on the free-list.
	Borrowed    int64 // Nodes handed out by Allocate and not yet released.
}

// New creates a pool pre-filled with capacity unlocked nodes. Capacity is
// clamped to the number of nodes a pool can track.
//
// Example:
//
//	p := mutexpool.New(64)
//	n := p.Allocate()
//	n.Lock()
//	// ...
//	n.Unlock()
//	p.Release(n)
func New(capacity int) *Pool {
	p := &Pool{}
	for i := 0; i < min(capacity, maxTracked); i++ {
		p.push(p.construct())
	}
	return p
}

// Allocate pops an idle node, or constructs a new one if the free-list is
// empty. It never blocks.
//
// The returned node is unlocked and exclusively owned by the caller until it
// is passed to Release.
func (p *Pool) Allocate() *MutexNode {
	n := p.pop()
	if n == nil {
		n = p.construct()
	}
	p.borrowed.Add(1)
	return n
}

// Release returns a node obtained from Allocate to the free-list.
//
// The node must be unlocked. Untracked nodes (constructed after the table
// filled up) are dropped and reclaimed by the GC.
func (p *Pool) Release(n *MutexNode) {
	p.borrowed.Add(-1)
	if n.index == 0 {
		return
	}
	p.push(n)
}

// Stats returns the current pool counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Constructed: p.constructed.Load(),
		Free:        p.free.Load(),
		Borrowed:    p.borrowed.Load(),
	}
}

// construct allocates a node and registers it in the index table.
func (p *Pool) construct() *MutexNode {
	n := NewMutexNode()
	p.constructed.Add(1)

	idx := p.nextIndex.Add(1)
	if idx == 0 || idx > maxTracked {
		// Table full: the node works normally but never enters the free-list.
		return n
	}

	slot := idx - 1
	c := p.chunks[slot>>chunkBits].Load()
	if c == nil {
		fresh := &chunk{}
		if p.chunks[slot>>chunkBits].CompareAndSwap(nil, fresh) {
			c = fresh
		} else {
			c = p.chunks[slot>>chunkBits].Load()
		}
	}
	n.index = idx
	c[slot&chunkMask].Store(n)
	return n
}

// lookup resolves a non-zero table index.
func (p *Pool) lookup(idx uint32) *MutexNode {
	slot := idx - 1
	return p.chunks[slot>>chunkBits].Load()[slot&chunkMask].Load()
}

// push is a Treiber stack push. n.next is refreshed before every attempt.
func (p *Pool) push(n *MutexNode) {
	for {
		old := p.top.Load()
		n.next.Store(headIndex(old))
		if p.top.CompareAndSwap(old, packHead(headTag(old)+1, n.index)) {
			p.free.Add(1)
			return
		}
	}
}

// pop is a Treiber stack pop. Returns nil when the free-list is empty.
func (p *Pool) pop() *MutexNode {
	for {
		old := p.top.Load()
		idx := headIndex(old)
		if idx == 0 {
			return nil
		}
		n := p.lookup(idx)
		next := n.next.Load()
		if p.top.CompareAndSwap(old, packHead(headTag(old)+1, next)) {
			p.free.Add(-1)
			return n
		}
	}
}

func packHead(tag, index uint32) uint64 {
	return uint64(tag)<<32 | uint64(index)
}

func headTag(head uint64) uint32 {
	return uint32(head >> 32)
}

func headIndex(head uint64) uint32 {
	return uint32(head)
}
