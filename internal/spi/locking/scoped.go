package locking

import "sync"

// WithLock runs body while holding l and returns its result.
//
// l is released on every exit path: normal return, returned error, and
// panic. Errors and panics from body reach the caller unchanged, after the
// unlock.
//
// Example:
//
//	mu := locking.New()
//	n, err := locking.WithLock(mu, func() (int, error) {
//		counter++
//		return counter, nil
//	})
func WithLock[T any](l sync.Locker, body func() (T, error)) (T, error) {
	l.Lock()
	defer l.Unlock()
	return body()
}

// Do is WithLock for bodies that only report an error.
func Do(l sync.Locker, body func() error) error {
	l.Lock()
	defer l.Unlock()
	return body()
}

// NoopLocker is the lock for single-threaded hosts: Lock and Unlock do
// nothing. It satisfies sync.Locker so it can stand in for Lock wherever
// there is no concurrency to guard against.
type NoopLocker struct{}

var (
	_ sync.Locker = NoopLocker{}
	_ sync.Locker = (*Lock)(nil)
)

// Lock does nothing.
func (NoopLocker) Lock() {}

// Unlock does nothing.
func (NoopLocker) Unlock() {}
