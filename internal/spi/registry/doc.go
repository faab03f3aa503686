// Package registry holds the process-wide list of service modules and
// aggregates it exactly once, on first read.
//
// Generated code registers one Module per package from an init function.
// The first call to Loader (or Modules) freezes the list: aggregation runs
// under the registry's lock with a re-check inside the critical section, so
// concurrent first readers run it once and every later reader takes the
// lock-free fast path. Registering after that point fails with
// ErrAlreadyInitialized.
//
// The lock is a sync.Locker chosen at construction: the adaptive
// locking.Lock by default, locking.NoopLocker for single-threaded hosts.
package registry
