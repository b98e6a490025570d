package clock

// Package clock provides time functionality that can be replaced in tests,
// so the simulated login latency and session expiry never require real
// sleeps.

import (
	"sync"
	"time"
)

// Clock provides the two time operations the services need.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// After returns a channel that delivers the time after d has elapsed.
	After(d time.Duration) <-chan time.Time
}

// System implements Clock using real system time.
type System struct{}

// Now returns the current system time.
func (System) Now() time.Time { return time.Now() }

// After defers to time.After.
func (System) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Fake implements Clock with a controllable time for testing. After fires
// immediately with the fake time advanced by d, and records the requested
// duration so tests can assert on the simulated latency.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	waited []time.Duration
}

// NewFake creates a Fake clock starting at t.
func NewFake(t time.Time) *Fake {
	return &Fake{now: t}
}

// Now returns the fake time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// After records d and fires immediately.
func (f *Fake) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	f.waited = append(f.waited, d)
	fireAt := f.now.Add(d)
	f.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- fireAt
	return ch
}

// Advance moves the fake time forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// Waited returns the durations passed to After, in order.
func (f *Fake) Waited() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]time.Duration, len(f.waited))
	copy(out, f.waited)
	return out
}
