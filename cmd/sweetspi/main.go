// Package main implements the sweetspi CLI tool.
//
// The tool exercises the runtime's adaptive lock outside of tests, which is
// useful when porting to a new platform or checking a change under a real
// scheduler:
//
//	sweetspi stress -goroutines 64 -iterations 10000
//	sweetspi version
package main

import (
	"fmt"
	"os"

	"github.com/whyoleg/sweet-spi/spi"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "stress":
		os.Exit(stressCommand(os.Args[2:]))
	case "version", "--version", "-v":
		fmt.Printf("sweetspi version %s\n", spi.Version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`sweetspi - service provider runtime tooling

USAGE:
    sweetspi <command> [arguments]

COMMANDS:
    stress     Hammer the adaptive lock and verify mutual exclusion
    version    Show version information
    help       Show this help message

EXAMPLES:
    # Default contention run
    sweetspi stress

    # Many goroutines, nested acquisitions, several locks sharing one pool
    sweetspi stress -goroutines 128 -iterations 5000 -locks 4 -depth 3

ENVIRONMENT:
    SWEETSPI_MUTEX_POOL_CAPACITY    Pre-filled size of the shared node pool (default 64)

`)
}
