// Package goroutine identifies the calling goroutine.
//
// The adaptive lock records its owner as a goroutine ID so that the owner can
// re-enter the lock and so that Unlock can reject callers that do not hold it.
// IDs are extracted from the header line of runtime.Stack:
//
//	goroutine 123 [running]:
//
// Performance: ~1µs per call (dominated by runtime.Stack). IDs are positive
// and never reused while the goroutine is alive.
package goroutine
