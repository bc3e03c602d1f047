// Package circuitbreaker guards calls to unreliable dependencies such as
// remote AI endpoints or downstream HTTP handlers.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State represents the state of the circuit breaker.
type State int

const (
	// Closed is the initial state where requests are allowed.
	Closed State = iota
	// Open state is when the circuit has tripped and requests are blocked.
	Open
	// HalfOpen lets trial requests through to test recovery.
	HalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Closed:
		return "Closed"
	case Open:
		return "Open"
	case HalfOpen:
		return "Half-Open"
	default:
		return "Unknown"
	}
}

// ErrCircuitOpen is returned when the circuit breaker is in the Open state.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// Config holds the settings of a Breaker.
type Config struct {
	// Name identifies the breaker in state-change callbacks.
	Name string
	// FailureThreshold is the number of consecutive failures that trips the circuit.
	FailureThreshold uint32
	// SuccessThreshold is the number of consecutive half-open successes that closes it again.
	SuccessThreshold uint32
	// Timeout is how long the circuit stays open before allowing a trial request.
	Timeout time.Duration
	// OnStateChange, if set, is called after every transition. It must not call back into the breaker.
	OnStateChange func(name string, from, to State)
	// IsFailure decides whether an error counts against the circuit.
	// Defaults to every non-nil error except context cancellation.
	IsFailure func(err error) bool
}

// Breaker implements the circuit breaker pattern.
type Breaker struct {
	cfg Config
	now func() time.Time

	mu                   sync.Mutex
	state                State
	consecutiveFailures  uint32
	consecutiveSuccesses uint32
	openedAt             time.Time
}

// New creates a Breaker. Zero thresholds are raised to 1.
func New(cfg Config) *Breaker {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 1
	}
	if cfg.SuccessThreshold == 0 {
		cfg.SuccessThreshold = 1
	}
	if cfg.IsFailure == nil {
		cfg.IsFailure = defaultIsFailure
	}
	return &Breaker{cfg: cfg, now: time.Now, state: Closed}
}

func defaultIsFailure(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}

// State returns the current state of the circuit breaker.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refresh()
	return b.state
}

// Execute runs req if the circuit allows it and records the outcome.
func (b *Breaker) Execute(req func() error) error {
	if err := b.allow(); err != nil {
		return err
	}
	err := req()
	b.record(err)
	return err
}

// Do is Execute for calls that return a value.
func Do[T any](b *Breaker, req func() (T, error)) (T, error) {
	var out T
	err := b.Execute(func() error {
		var err error
		out, err = req()
		return err
	})
	return out, err
}

func (b *Breaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refresh()
	if b.state == Open {
		return ErrCircuitOpen
	}
	return nil
}

// refresh moves an expired Open circuit to HalfOpen. Caller holds mu.
func (b *Breaker) refresh() {
	if b.state == Open && b.now().Sub(b.openedAt) >= b.cfg.Timeout {
		b.setState(HalfOpen)
	}
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.cfg.IsFailure(err) {
		switch b.state {
		case HalfOpen:
			b.consecutiveSuccesses++
			if b.consecutiveSuccesses >= b.cfg.SuccessThreshold {
				b.setState(Closed)
			}
		case Closed:
			b.consecutiveFailures = 0
		}
		return
	}

	switch b.state {
	case HalfOpen:
		b.trip()
	case Closed:
		b.consecutiveFailures++
		if b.consecutiveFailures >= b.cfg.FailureThreshold {
			b.trip()
		}
	}
}

func (b *Breaker) trip() {
	b.openedAt = b.now()
	b.setState(Open)
}

// setState resets the counters and fires the callback. Caller holds mu.
func (b *Breaker) setState(to State) {
	from := b.state
	b.state = to
	b.consecutiveFailures = 0
	b.consecutiveSuccesses = 0
	if from != to && b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(b.cfg.Name, from, to)
	}
}
