package locking

import (
	"fmt"
	"sync/atomic"

	"github.com/whyoleg/sweet-spi/internal/spi/goroutine"
	"github.com/whyoleg/sweet-spi/internal/spi/mutexpool"
)

// status is the coarse lock state.
type status uint8

const (
	unlocked status = iota
	thin
	fat
)

func (s status) String() string {
	switch s {
	case unlocked:
		return "UNLOCKED"
	case thin:
		return "THIN"
	case fat:
		return "FAT"
	default:
		return "UNKNOWN"
	}
}

// lockState is one immutable snapshot of a Lock.
//
// Invariants:
//   - unlocked: nested == 0, waiters == 0, owner == 0, node == nil
//   - thin: nested >= 1, waiters == 0, owner != 0, node == nil
//   - fat: node != nil; owner == 0 only while a hand-off is in flight
//     (nested == 0 then)
type lockState struct {
	status  status
	nested  int32
	waiters int32
	owner   int64 // Goroutine ID, 0 = none.
	node    *mutexpool.MutexNode
}

// unlockedState is shared by every unlocked Lock. Reinstalling the same
// pointer is harmless: an unlocked snapshot carries no other information.
var unlockedState = &lockState{status: unlocked}

// Lock is a reentrant mutual-exclusion lock that stays allocation-light and
// kernel-free until it is contended.
//
// The zero Lock is unlocked and uses the shared mutexpool. A Lock must not
// be copied after first use.
//
// Lock implements sync.Locker.
type Lock struct {
	state atomic.Pointer[lockState]
	pool  *mutexpool.Pool
}

// New creates an unlocked Lock backed by the process-wide pool.
func New() *Lock {
	return NewWithPool(mutexpool.Shared())
}

// NewWithPool creates an unlocked Lock that borrows nodes from pool.
func NewWithPool(pool *mutexpool.Pool) *Lock {
	l := &Lock{pool: pool}
	l.state.Store(unlockedState)
	return l
}

// Lock acquires the lock, blocking while another goroutine holds it.
//
// The owning goroutine may call Lock again; each call must be matched by an
// Unlock before other goroutines can acquire the lock.
func (l *Lock) Lock() {
	self := goroutine.ID()
	for {
		cur := l.state.Load()
		s := view(cur)

		switch s.status {
		case unlocked:
			// Fast path: no contention, no allocation beyond the snapshot.
			if l.state.CompareAndSwap(cur, &lockState{status: thin, nested: 1, owner: self}) {
				return
			}

		case thin:
			if s.owner == self {
				next := &lockState{status: thin, nested: s.nested + 1, waiters: s.waiters, owner: self}
				if l.state.CompareAndSwap(cur, next) {
					return
				}
				continue
			}

			// Contended: inflate with a node that is already held, so the
			// second Lock below parks until the owner hands off.
			pool := l.nodes()
			node := pool.Allocate()
			node.Lock()
			inflated := &lockState{status: fat, nested: s.nested, waiters: s.waiters + 1, owner: s.owner, node: node}
			if l.state.CompareAndSwap(cur, inflated) {
				node.Lock()
				l.resume(self)
				return
			}
			// Lost the race before blocking: give the node back and retry.
			node.Unlock()
			pool.Release(node)

		case fat:
			if s.owner == self {
				next := &lockState{status: fat, nested: s.nested + 1, waiters: s.waiters, owner: self, node: s.node}
				if l.state.CompareAndSwap(cur, next) {
					return
				}
				continue
			}

			// Queue on the attached node. This also covers the ownerless
			// hand-off window: whichever waiter takes the node owns the lock.
			next := &lockState{status: fat, nested: s.nested, waiters: s.waiters + 1, owner: s.owner, node: s.node}
			if l.state.CompareAndSwap(cur, next) {
				s.node.Lock()
				l.resume(self)
				return
			}
		}
	}
}

// Unlock releases one level of ownership.
//
// It panics with *ProtocolViolationError if the calling goroutine does not
// hold the lock, including when the lock is not held at all.
func (l *Lock) Unlock() {
	self := goroutine.ID()
	for {
		cur := l.state.Load()
		s := view(cur)

		if s.status == unlocked || s.owner != self {
			panic(&ProtocolViolationError{Expected: s.owner, Actual: self})
		}

		switch s.status {
		case thin:
			next := unlockedState
			if s.nested > 1 {
				next = &lockState{status: thin, nested: s.nested - 1, waiters: s.waiters, owner: self}
			}
			if l.state.CompareAndSwap(cur, next) {
				return
			}

		case fat:
			if s.nested > 1 {
				next := &lockState{status: fat, nested: s.nested - 1, waiters: s.waiters, owner: self, node: s.node}
				if l.state.CompareAndSwap(cur, next) {
					return
				}
				continue
			}

			// Last level: give up ownership and wake exactly one waiter.
			released := &lockState{status: fat, nested: 0, waiters: s.waiters - 1, node: s.node}
			if l.state.CompareAndSwap(cur, released) {
				s.node.Unlock()
				return
			}
		}
		// CAS failed: a contender changed waiters concurrently. Retry.
	}
}

// resume runs on a goroutine that was just woken through the node and now
// owns the lock. It records ownership and deflates if nobody else waits.
func (l *Lock) resume(self int64) {
	for {
		cur := l.state.Load()
		s := view(cur)

		if s.waiters == 0 {
			if l.state.CompareAndSwap(cur, &lockState{status: thin, nested: 1, owner: self}) {
				s.node.Unlock()
				l.nodes().Release(s.node)
				return
			}
			continue
		}

		next := &lockState{status: fat, nested: 1, waiters: s.waiters, owner: self, node: s.node}
		if l.state.CompareAndSwap(cur, next) {
			// The node stays held: remaining waiters keep parking on it.
			return
		}
	}
}

// nodes returns the pool this lock borrows from.
func (l *Lock) nodes() *mutexpool.Pool {
	if l.pool != nil {
		return l.pool
	}
	return mutexpool.Shared()
}

// view maps the zero Lock's nil snapshot to the unlocked state.
func view(s *lockState) *lockState {
	if s == nil {
		return unlockedState
	}
	return s
}

// String returns a debug representation of the current state.
//
// Example:
//   - "UNLOCKED"
//   - "THIN owner=7 nested=2"
//   - "FAT owner=7 nested=1 waiters=3"
func (l *Lock) String() string {
	s := view(l.state.Load())
	switch s.status {
	case thin:
		return fmt.Sprintf("%s owner=%d nested=%d", s.status, s.owner, s.nested)
	case fat:
		return fmt.Sprintf("%s owner=%d nested=%d waiters=%d", s.status, s.owner, s.nested, s.waiters)
	default:
		return s.status.String()
	}
}
