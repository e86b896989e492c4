package engine

import "time"

// TimeProvider abstracts the clock so tick deltas can be driven without a
// real frame loop in tests
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the real system clock with monotonic readings
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates the real-time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// Ticker derives per-tick deltas from a TimeProvider for the frame loop
type Ticker struct {
	tp   TimeProvider
	last time.Time
}

// NewTicker starts measuring from the provider's current time
func NewTicker(tp TimeProvider) *Ticker {
	return &Ticker{tp: tp, last: tp.Now()}
}

// Delta returns the elapsed time since the previous call
func (t *Ticker) Delta() time.Duration {
	now := t.tp.Now()
	dt := now.Sub(t.last)
	t.last = now
	if dt < 0 {
		dt = 0
	}
	return dt
}
