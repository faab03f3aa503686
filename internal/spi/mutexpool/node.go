package mutexpool

import (
	"sync"
	"sync/atomic"
)

// MutexNode is a pooled binary semaphore.
//
// Lock blocks while the node is held; Unlock releases it and wakes one
// blocked goroutine. Lock and Unlock may be called from different goroutines.
//
// Layout:
//   - next: free-list link, meaningful only while the node sits in a Pool
//   - index: immutable slot in the owning Pool's table (0 = untracked)
//   - mu/cond/locked: the semaphore itself
type MutexNode struct {
	next  atomic.Uint32
	index uint32

	mu     sync.Mutex
	cond   sync.Cond
	locked bool // Protected by mu.
}

// NewMutexNode creates an unlocked node that belongs to no pool.
func NewMutexNode() *MutexNode {
	n := &MutexNode{}
	n.cond.L = &n.mu
	return n
}

// Lock acquires the node, blocking until it is released.
func (n *MutexNode) Lock() {
	n.mu.Lock()
	for n.locked {
		n.cond.Wait()
	}
	n.locked = true
	n.mu.Unlock()
}

// Unlock releases the node and wakes one goroutine blocked in Lock.
func (n *MutexNode) Unlock() {
	n.mu.Lock()
	n.locked = false
	n.cond.Signal()
	n.mu.Unlock()
}

// Locked reports whether the node is currently held.
//
// Diagnostics only: the answer may be stale by the time it is returned.
func (n *MutexNode) Locked() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.locked
}
