package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBreaker_Transitions(t *testing.T) {
	b := NewBreaker(BreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenProbes: 1})

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	errDB := errors.New("db")
	fail := func(context.Context) (int, error) { return 0, errDB }
	ok := func(context.Context) (int, error) { return 1, nil }
	ctx := context.Background()

	if _, err := Guard(ctx, b, fail); !errors.Is(err, errDB) {
		t.Fatalf("expected db error, got %v", err)
	}
	if state := b.State(); state != BreakerClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	_, _ = Guard(ctx, b, fail)
	if state := b.State(); state != BreakerOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}
	if _, err := Guard(ctx, b, ok); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if state := b.State(); state != BreakerHalfOpen {
		t.Fatalf("expected half-open after timeout, got %s", state)
	}
	if v, err := Guard(ctx, b, ok); err != nil || v != 1 {
		t.Fatalf("expected probe to pass, got %d %v", v, err)
	}
	if state := b.State(); state != BreakerClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}
}

func TestBreaker_PermanentErrorsDoNotTrip(t *testing.T) {
	b := NewBreaker(BreakerConfig{Enabled: true, FailureThreshold: 1})
	_, _ = Guard(context.Background(), b, func(context.Context) (int, error) {
		return 0, Permanent(errors.New("not found"))
	})
	if state := b.State(); state != BreakerClosed {
		t.Fatalf("expected closed, got %s", state)
	}
}

func TestGuard_NilBreaker(t *testing.T) {
	v, err := Guard(context.Background(), nil, func(context.Context) (string, error) { return "x", nil })
	if err != nil || v != "x" {
		t.Fatalf("unexpected result %q %v", v, err)
	}
}
