package locking

import (
	"errors"
	"sync"
	"testing"

	"github.com/whyoleg/sweet-spi/internal/spi/mutexpool"
)

// TestWithLock_ReturnsResult verifies the body's value comes back and the
// lock is released afterwards.
func TestWithLock_ReturnsResult(t *testing.T) {
	l := NewWithPool(mutexpool.New(0))

	got, err := WithLock(l, func() (string, error) {
		if s := snapshot(l); s.status != thin {
			t.Errorf("inside body: %s, want held", l.String())
		}
		return "sweet", nil
	})
	if err != nil {
		t.Fatalf("WithLock() error: %v", err)
	}
	if got != "sweet" {
		t.Errorf("WithLock() = %q, want %q", got, "sweet")
	}
	if s := snapshot(l); s.status != unlocked {
		t.Errorf("after WithLock(): %s, want UNLOCKED", l.String())
	}
}

// TestWithLock_PropagatesError verifies the body's error is returned
// unchanged after the unlock.
func TestWithLock_PropagatesError(t *testing.T) {
	l := NewWithPool(mutexpool.New(0))
	errBody := errors.New("body failed")

	_, err := WithLock(l, func() (int, error) {
		return 0, errBody
	})
	if err != errBody {
		t.Errorf("WithLock() error = %v, want %v", err, errBody)
	}
	if s := snapshot(l); s.status != unlocked {
		t.Errorf("after failing body: %s, want UNLOCKED", l.String())
	}
}

// TestDo_ReleasesOnPanic verifies a panicking body still unlocks and the
// panic value reaches the caller.
func TestDo_ReleasesOnPanic(t *testing.T) {
	l := NewWithPool(mutexpool.New(0))

	recovered := func() (r any) {
		defer func() { r = recover() }()
		_ = Do(l, func() error {
			panic("boom")
		})
		return nil
	}()

	if recovered != "boom" {
		t.Errorf("recovered %v, want boom", recovered)
	}
	if s := snapshot(l); s.status != unlocked {
		t.Errorf("after panicking body: %s, want UNLOCKED", l.String())
	}
}

// TestDo_Reentrant verifies scoped sections nest on the owning goroutine.
func TestDo_Reentrant(t *testing.T) {
	l := NewWithPool(mutexpool.New(0))

	err := Do(l, func() error {
		return Do(l, func() error {
			if s := snapshot(l); s.nested != 2 {
				t.Errorf("inner section nested = %d, want 2", s.nested)
			}
			return nil
		})
	})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if s := snapshot(l); s.status != unlocked {
		t.Errorf("after nested Do(): %s, want UNLOCKED", l.String())
	}
}

// TestDo_Counter verifies scoped increments from many goroutines add up.
func TestDo_Counter(t *testing.T) {
	const (
		numGoroutines = 8
		numIterations = 250
	)
	l := New()
	counter := 0

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for g := 0; g < numGoroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < numIterations; i++ {
				_ = Do(l, func() error {
					counter++
					return nil
				})
			}
		}()
	}
	wg.Wait()

	if want := numGoroutines * numIterations; counter != want {
		t.Errorf("counter = %d, want %d", counter, want)
	}
}

// TestNoopLocker verifies the single-threaded locker runs bodies directly.
func TestNoopLocker(t *testing.T) {
	calls := 0
	n, err := WithLock(NoopLocker{}, func() (int, error) {
		calls++
		return calls, nil
	})
	if err != nil || n != 1 {
		t.Errorf("WithLock(NoopLocker) = %d, %v; want 1, nil", n, err)
	}
}
