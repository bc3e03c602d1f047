package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errBoom = errors.New("boom")

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(transitions *[]string) (*Breaker, *fakeClock) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	b := New(Config{
		Name:             "test",
		FailureThreshold: 2,
		SuccessThreshold: 2,
		Timeout:          time.Minute,
		OnStateChange: func(_ string, from, to State) {
			*transitions = append(*transitions, from.String()+"->"+to.String())
		},
	})
	b.now = clock.now
	return b, clock
}

func fail() error { return errBoom }
func ok() error { return nil }

func TestBreaker_FullCycle(t *testing.T) {
	var transitions []string
	b, clock := newTestBreaker(&transitions)

	_ = b.Execute(fail)
	if b.State() != Closed {
		t.Fatal("one failure should not trip")
	}
	_ = b.Execute(fail)
	if b.State() != Open {
		t.Fatal("two failures should trip")
	}
	if err := b.Execute(ok); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("err = %v, want ErrCircuitOpen", err)
	}

	clock.advance(time.Minute)
	if b.State() != HalfOpen {
		t.Fatalf("state = %v, want Half-Open", b.State())
	}
	_ = b.Execute(ok)
	_ = b.Execute(ok)
	if b.State() != Closed {
		t.Fatalf("state = %v, want Closed", b.State())
	}

	want := []string{"Closed->Open", "Open->Half-Open", "Half-Open->Closed"}
	if len(transitions) != len(want) {
		t.Fatalf("transitions = %v, want %v", transitions, want)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("transition[%d] = %s, want %s", i, transitions[i], want[i])
		}
	}
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	var transitions []string
	b, clock := newTestBreaker(&transitions)
	_ = b.Execute(fail)
	_ = b.Execute(fail)
	clock.advance(2 * time.Minute)

	_ = b.Execute(fail)
	if b.State() != Open {
		t.Fatalf("state = %v, want Open", b.State())
	}
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	var transitions []string
	b, _ := newTestBreaker(&transitions)
	_ = b.Execute(fail)
	_ = b.Execute(ok)
	_ = b.Execute(fail)
	if b.State() != Closed {
		t.Fatal("non-consecutive failures should not trip")
	}
}

func TestBreaker_CancellationIsNotFailure(t *testing.T) {
	var transitions []string
	b, _ := newTestBreaker(&transitions)
	for i := 0; i < 5; i++ {
		_ = b.Execute(func() error { return context.Canceled })
	}
	if b.State() != Closed {
		t.Fatal("cancelled calls must not trip the circuit")
	}
}

func TestDo_ReturnsValue(t *testing.T) {
	b := New(Config{FailureThreshold: 1, Timeout: time.Second})
	v, err := Do(b, func() (string, error) { return "ok", nil })
	if err != nil || v != "ok" {
		t.Fatalf("Do() = %q, %v", v, err)
	}
	_, _ = Do(b, func() (int, error) { return 0, errBoom })
	if _, err := Do(b, func() (int, error) { return 1, nil }); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("err = %v, want ErrCircuitOpen", err)
	}
}
