package spi

import "github.com/whyoleg/sweet-spi/internal/spi/mutexpool"

// Version information for the sweet-spi runtime.
const (
	// Version is the current version of the runtime.
	Version = "0.1.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 1

	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// Info provides runtime information about the service registry.
type Info struct {
	// Version is the runtime version string.
	Version string

	// Lock names the lock guarding registry initialization.
	Lock string

	// Initialized reports whether the registry has been read.
	Initialized bool

	// Pool is a snapshot of the shared blocking-node pool.
	Pool mutexpool.Stats
}

// GetInfo returns information about the runtime.
//
// Example:
//
//	info := spi.GetInfo()
//	fmt.Printf("sweet-spi %s (%s), %d pooled nodes free\n", info.Version, info.Lock, info.Pool.Free)
func GetInfo() Info {
	return Info{
		Version:     Version,
		Lock:        "adaptive thin/fat",
		Initialized: defaultRegistry.Initialized(),
		Pool:        mutexpool.Shared().Stats(),
	}
}
