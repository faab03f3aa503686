package locking

import (
	"errors"
	"fmt"
)

// ErrProtocolViolation is the sentinel wrapped by every ProtocolViolationError.
var ErrProtocolViolation = errors.New("locking: protocol violation")

// ProtocolViolationError reports an Unlock by a goroutine that does not hold
// the lock. It is raised with panic: the caller's locking is broken and there
// is nothing sensible to recover to.
//
// Fields:
//   - Expected: Goroutine ID of the recorded owner (0 if the lock is not held)
//   - Actual: Goroutine ID of the caller
type ProtocolViolationError struct {
	Expected int64
	Actual   int64
}

// Error implements the error interface.
func (e *ProtocolViolationError) Error() string {
	if e.Expected == 0 {
		return fmt.Sprintf("locking: unlock of unlocked lock by goroutine %d", e.Actual)
	}
	return fmt.Sprintf("locking: lock held by a different goroutine: expected %d, actual %d", e.Expected, e.Actual)
}

// Unwrap returns ErrProtocolViolation so callers can use errors.Is.
func (e *ProtocolViolationError) Unwrap() error {
	return ErrProtocolViolation
}
