package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeClock advances virtual time only when the limiter sleeps.
type fakeClock struct {
	t     time.Time
	slept []time.Duration
	// short shortens the first sleep to simulate an early wakeup.
	short time.Duration
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(_ context.Context, d time.Duration) error {
	c.slept = append(c.slept, d)
	if c.short > 0 {
		d -= c.short
		c.short = 0
	}
	c.t = c.t.Add(d)
	return nil
}

func newTestLimiter(limit int) (*Limiter, *fakeClock) {
	clk := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := New(limit, time.Second)
	l.now = clk.now
	l.sleep = clk.sleep
	return l, clk
}

func TestLimiter_SixthCallWaitsForWindow(t *testing.T) {
	l, clk := newTestLimiter(5)
	start := clk.t

	for i := 1; i <= 6; i++ {
		if err := l.Acquire(context.Background()); err != nil {
			t.Fatalf("Acquire #%d: %v", i, err)
		}
		if i < 5 && clk.t != start {
			t.Errorf("Acquire #%d should not block, clock advanced by %v", i, clk.t.Sub(start))
		}
	}

	if got := clk.t.Sub(start); got < time.Second {
		t.Errorf("sixth call returned after %v, want at least 1s", got)
	}
	if len(clk.slept) != 1 || clk.slept[0] != time.Second {
		t.Errorf("slept %v, want a single 1s sleep", clk.slept)
	}
	if got := l.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1 after the window reset", got)
	}
}

func TestLimiter_RechecksAfterEarlyWakeup(t *testing.T) {
	l, clk := newTestLimiter(2)
	clk.short = 100 * time.Millisecond

	for i := 0; i < 2; i++ {
		if err := l.Acquire(context.Background()); err != nil {
			t.Fatalf("Acquire: %v", err)
		}
	}

	if len(clk.slept) != 2 {
		t.Fatalf("slept %d times, want 2 (early wakeup must be re-checked)", len(clk.slept))
	}
	if clk.slept[1] != 100*time.Millisecond {
		t.Errorf("second sleep = %v, want the 100ms remainder", clk.slept[1])
	}
}

func TestLimiter_WindowAlreadyElapsed(t *testing.T) {
	l, clk := newTestLimiter(3)

	_ = l.Acquire(context.Background())
	clk.t = clk.t.Add(2 * time.Second)
	_ = l.Acquire(context.Background())
	_ = l.Acquire(context.Background())

	if len(clk.slept) != 0 {
		t.Errorf("slept %v, want no sleep once the window has elapsed", clk.slept)
	}
	if got := l.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0 after reset", got)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l, clk := newTestLimiter(5)
	start := clk.t

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Acquire(context.Background()); err != nil {
				t.Errorf("Acquire: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := clk.t.Sub(start); got != 2*time.Second {
		t.Errorf("10 calls at 5/s took %v of virtual time, want 2s", got)
	}
}

func TestLimiter_Cancelled(t *testing.T) {
	l := New(1, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The first call opens the window and immediately hits the limit.
	err := l.Acquire(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Acquire() error = %v, want context.Canceled", err)
	}
}

func TestLimiter_Disabled(t *testing.T) {
	l, clk := newTestLimiter(0)
	for i := 0; i < 100; i++ {
		_ = l.Acquire(context.Background())
	}
	if len(clk.slept) != 0 {
		t.Error("a limit of zero should never sleep")
	}
}

func TestLimiter_RealClock(t *testing.T) {
	if testing.Short() {
		t.Skip("sleeps for a second")
	}

	l := New(5, time.Second)
	start := time.Now()
	for i := 0; i < 6; i++ {
		if err := l.Acquire(context.Background()); err != nil {
			t.Fatalf("Acquire: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < time.Second {
		t.Errorf("six calls finished after %v, want at least 1s", elapsed)
	}
}
