// Package latency simulates the response time of remote AI backends.
package latency

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Simulator waits a random duration in [min, max] before returning.
// A zero Simulator returns immediately.
type Simulator struct {
	min, max time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Simulator. If max < min, max is raised to min.
// rng may be nil when min == max.
func New(min, max time.Duration, rng *rand.Rand) *Simulator {
	if max < min {
		max = min
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{min: min, max: max, rng: rng}
}

// Fixed returns a Simulator that always waits d.
func Fixed(d time.Duration) *Simulator {
	return New(d, d, nil)
}

// Instant returns a Simulator that never waits.
func Instant() *Simulator {
	return &Simulator{}
}

// Next draws the next delay.
func (s *Simulator) Next() time.Duration {
	if s == nil || s.max <= 0 {
		return 0
	}
	if s.max == s.min {
		return s.min
	}
	s.mu.Lock()
	n := s.rng.Int63n(int64(s.max-s.min) + 1)
	s.mu.Unlock()
	return s.min + time.Duration(n)
}

// Wait blocks for the next delay or until ctx is done.
func (s *Simulator) Wait(ctx context.Context) error {
	d := s.Next()
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
