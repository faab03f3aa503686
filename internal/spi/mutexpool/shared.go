package mutexpool

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

// CapacityEnv overrides DefaultCapacity for the shared pool.
//
// It is read once, when Shared is first called.
const CapacityEnv = "SWEETSPI_MUTEX_POOL_CAPACITY"

var (
	sharedOnce sync.Once
	sharedPool *Pool
)

// Shared returns the process-wide pool used by locks that were not given one
// explicitly. It is constructed on first use and lives for the rest of the
// process.
func Shared() *Pool {
	sharedOnce.Do(func() {
		capacity, err := capacityFromEnv(os.LookupEnv)
		if err != nil {
			// Misconfiguration must not break locking; fall back silently.
			capacity = DefaultCapacity
		}
		sharedPool = New(capacity)
	})
	return sharedPool
}

// capacityFromEnv resolves the shared pool capacity.
//
// Returns DefaultCapacity when the variable is unset, or an error when it is
// set to something other than a non-negative integer.
func capacityFromEnv(lookup func(string) (string, bool)) (int, error) {
	raw, ok := lookup(CapacityEnv)
	if !ok || raw == "" {
		return DefaultCapacity, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("mutexpool: invalid %s=%q: %w", CapacityEnv, raw, err)
	}
	if n < 0 || n > maxTracked {
		return 0, fmt.Errorf("mutexpool: %s=%d out of range [0, %d]", CapacityEnv, n, maxTracked)
	}
	return n, nil
}
