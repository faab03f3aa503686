// stress.go implements the 'sweetspi stress' command.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/whyoleg/sweet-spi/internal/spi/locking"
	"github.com/whyoleg/sweet-spi/internal/spi/mutexpool"
)

// stressConfig holds the parsed 'stress' flags.
type stressConfig struct {
	goroutines int
	iterations int
	locks      int
	depth      int
	capacity   int
}

// stressReport summarizes one stress run.
type stressReport struct {
	expected int
	counted  int
	elapsed  time.Duration
	before   mutexpool.Stats
	after    mutexpool.Stats
}

// stressCommand parses args, runs the stress test and prints a report.
//
// Returns the process exit code: 0 on success, 1 on a failed invariant,
// 2 on bad arguments.
func stressCommand(args []string) int {
	cfg, err := parseStressArgs(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	report, err := runStress(context.Background(), cfg)
	printReport(os.Stdout, cfg, report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		return 1
	}
	fmt.Println("PASS")
	return 0
}

// parseStressArgs parses and validates the 'stress' flags.
func parseStressArgs(args []string, output io.Writer) (stressConfig, error) {
	cfg := stressConfig{}
	fs := flag.NewFlagSet("stress", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&cfg.goroutines, "goroutines", 32, "number of competing goroutines")
	fs.IntVar(&cfg.iterations, "iterations", 1000, "critical sections per goroutine")
	fs.IntVar(&cfg.locks, "locks", 1, "number of locks sharing one node pool")
	fs.IntVar(&cfg.depth, "depth", 1, "reentrant acquisitions per critical section")
	fs.IntVar(&cfg.capacity, "capacity", mutexpool.DefaultCapacity, "pre-filled node pool size")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	for _, f := range []struct {
		name  string
		value int
		min   int
	}{
		{"goroutines", cfg.goroutines, 1},
		{"iterations", cfg.iterations, 1},
		{"locks", cfg.locks, 1},
		{"depth", cfg.depth, 1},
		{"capacity", cfg.capacity, 0},
	} {
		if f.value < f.min {
			return cfg, fmt.Errorf("-%s must be >= %d, got %d", f.name, f.min, f.value)
		}
	}
	return cfg, nil
}

// runStress runs cfg.goroutines workers, each doing cfg.iterations nested
// critical sections round-robin over cfg.locks locks, and checks that no
// increment was lost and every borrowed node came back to the pool.
func runStress(ctx context.Context, cfg stressConfig) (stressReport, error) {
	pool := mutexpool.New(cfg.capacity)
	locks := make([]*locking.Lock, cfg.locks)
	counters := make([]int, cfg.locks)
	for i := range locks {
		locks[i] = locking.NewWithPool(pool)
	}

	report := stressReport{
		expected: cfg.goroutines * cfg.iterations,
		before:   pool.Stats(),
	}

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.goroutines; w++ {
		g.Go(func() error {
			for i := 0; i < cfg.iterations; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				k := (w + i) % cfg.locks
				if err := enter(locks[k], cfg.depth, func() { counters[k]++ }); err != nil {
					return err
				}
			}
			return nil
		})
	}
	err := g.Wait()
	report.elapsed = time.Since(start)
	report.after = pool.Stats()

	for _, c := range counters {
		report.counted += c
	}
	if err != nil {
		return report, err
	}

	if report.counted != report.expected {
		return report, fmt.Errorf("lost updates: counted %d, expected %d", report.counted, report.expected)
	}
	if report.after.Borrowed != 0 || report.after.Free != report.after.Constructed {
		return report, fmt.Errorf("node leak: %+v", report.after)
	}
	return report, nil
}

// enter acquires l depth times, runs body, then unwinds.
func enter(l *locking.Lock, depth int, body func()) error {
	return locking.Do(l, func() error {
		if depth > 1 {
			return enter(l, depth-1, body)
		}
		body()
		return nil
	})
}

func printReport(w io.Writer, cfg stressConfig, r stressReport) {
	fmt.Fprintf(w, "goroutines=%d iterations=%d locks=%d depth=%d\n",
		cfg.goroutines, cfg.iterations, cfg.locks, cfg.depth)
	fmt.Fprintf(w, "counted %d/%d in %v\n", r.counted, r.expected, r.elapsed)
	fmt.Fprintf(w, "pool before: constructed=%d free=%d borrowed=%d\n",
		r.before.Constructed, r.before.Free, r.before.Borrowed)
	fmt.Fprintf(w, "pool after:  constructed=%d free=%d borrowed=%d\n",
		r.after.Constructed, r.after.Free, r.after.Borrowed)
}
