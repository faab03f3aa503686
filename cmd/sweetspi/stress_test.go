// stress_test.go tests the 'sweetspi stress' command.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"
)

// TestParseStressArgs_Defaults verifies the default configuration.
func TestParseStressArgs_Defaults(t *testing.T) {
	cfg, err := parseStressArgs(nil, io.Discard)
	if err != nil {
		t.Fatalf("parseStressArgs() error: %v", err)
	}

	want := stressConfig{goroutines: 32, iterations: 1000, locks: 1, depth: 1, capacity: 64}
	if cfg != want {
		t.Errorf("parseStressArgs() = %+v, want %+v", cfg, want)
	}
}

func TestParseStressArgs_Flags(t *testing.T) {
	args := []string{"-goroutines", "8", "-iterations=10", "-locks", "3", "-depth", "2", "-capacity", "0"}
	cfg, err := parseStressArgs(args, io.Discard)
	if err != nil {
		t.Fatalf("parseStressArgs() error: %v", err)
	}

	want := stressConfig{goroutines: 8, iterations: 10, locks: 3, depth: 2, capacity: 0}
	if cfg != want {
		t.Errorf("parseStressArgs() = %+v, want %+v", cfg, want)
	}
}

func TestParseStressArgs_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero goroutines", []string{"-goroutines", "0"}},
		{"negative depth", []string{"-depth", "-1"}},
		{"negative capacity", []string{"-capacity", "-5"}},
		{"unknown flag", []string{"-bogus"}},
		{"positional", []string{"extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseStressArgs(tt.args, io.Discard); err == nil {
				t.Errorf("parseStressArgs(%v) should fail", tt.args)
			}
		})
	}
}

func TestParseStressArgs_Help(t *testing.T) {
	var buf bytes.Buffer
	_, err := parseStressArgs([]string{"-h"}, &buf)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("parseStressArgs(-h) error = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(buf.String(), "-goroutines") {
		t.Errorf("help output missing flags:\n%s", buf.String())
	}
}

// TestRunStress verifies a contended run counts every increment and
// returns every node.
func TestRunStress(t *testing.T) {
	tests := []struct {
		name string
		cfg  stressConfig
	}{
		{"single lock", stressConfig{goroutines: 8, iterations: 200, locks: 1, depth: 1, capacity: 4}},
		{"nested", stressConfig{goroutines: 8, iterations: 100, locks: 1, depth: 3, capacity: 4}},
		{"shared pool", stressConfig{goroutines: 12, iterations: 100, locks: 4, depth: 2, capacity: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := runStress(context.Background(), tt.cfg)
			if err != nil {
				t.Fatalf("runStress() error: %v", err)
			}
			if report.counted != report.expected {
				t.Errorf("counted %d, expected %d", report.counted, report.expected)
			}
			if report.after.Free != report.after.Constructed {
				t.Errorf("pool after run: %+v", report.after)
			}

			var buf bytes.Buffer
			printReport(&buf, tt.cfg, report)
			if !strings.Contains(buf.String(), "pool after:") {
				t.Errorf("report missing pool line:\n%s", buf.String())
			}
		})
	}
}

// TestRunStress_Cancelled verifies workers stop when the context is done.
func TestRunStress_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runStress(ctx, stressConfig{goroutines: 2, iterations: 10, locks: 1, depth: 1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("runStress() error = %v, want context.Canceled", err)
	}
}
