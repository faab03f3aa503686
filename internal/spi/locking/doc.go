// Package locking implements the adaptive reentrant lock that guards the
// service registry.
//
// # States
//
// A Lock is always in exactly one of three states:
//
//	UNLOCKED  nobody holds the lock
//	THIN      held by one goroutine, no blocking primitive attached
//	FAT       held (or being handed off), a pooled MutexNode parks waiters
//
// The whole state (status, nesting depth, waiter count, owner, node) lives
// in one immutable snapshot that is replaced with a single compare-and-swap.
// No field is ever updated on its own, so no goroutine can observe a torn
// state.
//
// # Inflation and deflation
//
// The uncontended path (UNLOCKED ↔ THIN, plus reentrant nesting) never
// touches a blocking primitive. A goroutine that finds the lock THIN and
// owned by someone else borrows a node from the mutexpool, inflates the lock
// to FAT and parks on the node. The owner's final Unlock hands the lock over
// by releasing the node; the woken goroutine becomes the owner and, if
// nobody else is queued, deflates back to THIN and returns the node to the
// pool.
//
// # Memory ordering
//
// Every transition is an atomic read-modify-write of the state pointer, so
// an Unlock happens-before the Lock that installs the next snapshot. A
// goroutine woken through a node additionally synchronizes with the
// releasing goroutine through the node's mutex.
//
// # Errors
//
// Unlock by a goroutine that does not hold the lock is a programming error
// and panics with *ProtocolViolationError. The lock never logs.
package locking
