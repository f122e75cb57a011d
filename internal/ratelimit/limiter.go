// Package ratelimit throttles catalog API requests to a fixed count per
// rolling window.
//
// The limiter is acquired after a request completes, so it holds back the
// requests that follow rather than the one just made:
//
//	limiter := ratelimit.New(5, time.Second)
//	resp, err := client.Do(req)
//	...
//	if err := limiter.Acquire(ctx); err != nil {
//	    return err
//	}
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter allows at most limit requests per period.
//
// State is a window start and the number of requests recorded since then.
// Callers are serialized: while one caller sleeps for the window to elapse,
// the others queue on the mutex, which is what makes the limiter the
// bottleneck for every worker sharing it.
type Limiter struct {
	limit  int
	period time.Duration

	mu          sync.Mutex
	windowStart time.Time
	count       int

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a Limiter allowing limit requests per period.
// A limit of zero or less disables throttling.
func New(limit int, period time.Duration) *Limiter {
	return &Limiter{
		limit:  limit,
		period: period,
		now:    time.Now,
		sleep:  sleepContext,
	}
}

// Acquire records one request and blocks until another one may be issued
// without exceeding the limit for the current window.
//
// After sleeping the window is checked again rather than assumed elapsed.
// Returns ctx.Err() if the context is cancelled while waiting; the request
// stays recorded in that case.
func (l *Limiter) Acquire(ctx context.Context) error {
	if l.limit <= 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.windowStart.IsZero() {
		l.windowStart = l.now()
	}

	l.count++
	for l.count >= l.limit {
		elapsed := l.now().Sub(l.windowStart)
		if elapsed >= l.period {
			l.windowStart = l.now()
			l.count = 0
			break
		}
		if err := l.sleep(ctx, l.period-elapsed); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of requests recorded in the current window.
func (l *Limiter) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
