// Copyright 2025 The sweet-spi Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0-style
// license that can be found in the LICENSE file.

package goroutine

import "runtime"

// ID returns the current goroutine ID.
//
// Returns:
//   - int64: Goroutine ID (always positive), or 0 if the stack header
//     could not be parsed
func ID() int64 {
	// Only the first line is needed: "goroutine 123 [running]:\n..."
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parseGID(buf[:n])
}

// parseGID extracts the goroutine ID from stack trace bytes.
//
// Expected format: "goroutine 123 [running]:..."
// Returns the numeric ID (123 in this example) or 0 if the format is invalid.
func parseGID(buf []byte) int64 {
	const prefix = "goroutine "
	const prefixLen = len(prefix)

	if len(buf) < prefixLen || string(buf[:prefixLen]) != prefix {
		return 0
	}

	var gid int64
	for i := prefixLen; i < len(buf); i++ {
		c := buf[i]
		if c < '0' || c > '9' {
			// Usually the space before "[running]".
			break
		}
		gid = gid*10 + int64(c-'0')
	}
	return gid
}
