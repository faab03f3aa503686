// Package spi discovers service implementations across packages without
// reflection.
//
// A package declares a service as a typed handle and registers a module
// listing the services it declares and the providers it implements. Any
// package can then load every provider of a service.
//
// # Quick Start
//
//	// package greet
//	type Greeter interface{ Greet() string }
//
//	var GreeterService = spi.NewService[Greeter]("example.com/greet.Greeter")
//
//	// package english
//	type english struct{}
//
//	func (english) Greet() string { return "Hello" }
//
//	func init() {
//		spi.MustRegister(&spi.StaticModule{
//			ModuleName: "example.com/english",
//			Provides: map[string][]spi.Provider{
//				greet.GreeterService.Name(): {spi.Instance(english{})},
//			},
//		})
//	}
//
//	// package main
//	greeters, err := spi.Load(greet.GreeterService)
//
// # Registration window
//
// Modules must be registered before the first Load. The first Load freezes
// the registry; later registrations fail with ErrAlreadyInitialized (and
// MustRegister panics). In practice this means registering from init
// functions.
//
// # Concurrency
//
// Register, Load and their Must variants are safe for concurrent use. The
// registry is aggregated exactly once, under an adaptive reentrant lock that
// costs a single compare-and-swap when uncontended and only parks goroutines
// on a pooled blocking node when several of them race for first access.
//
// # Configuration
//
// The adaptive lock draws its blocking nodes from a process-wide pool of 64
// nodes. Set SWEETSPI_MUTEX_POOL_CAPACITY to change the pre-filled size.
package spi
