package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry_RetriesOnce(t *testing.T) {
	t.Parallel()

	calls := 0
	got, err := Retry(t.Context(), RetryConfig{MaxTries: 2, Interval: time.Millisecond}, func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Retry returned error: %v", err)
	}
	if got != "ok" || calls != 2 {
		t.Fatalf("got %q after %d calls", got, calls)
	}
}

func TestRetry_GivesUpAfterMaxTries(t *testing.T) {
	t.Parallel()

	errDown := errors.New("down")
	calls := 0
	_, err := Retry(t.Context(), RetryConfig{MaxTries: 2, Interval: time.Millisecond}, func(context.Context) (int, error) {
		calls++
		return 0, errDown
	})
	if !errors.Is(err, errDown) {
		t.Fatalf("expected last error, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestRetry_PermanentStopsImmediately(t *testing.T) {
	t.Parallel()

	errMissing := errors.New("missing")
	calls := 0
	_, err := Retry(t.Context(), RetryConfig{MaxTries: 5, Interval: time.Millisecond}, func(context.Context) (int, error) {
		calls++
		return 0, Permanent(errMissing)
	})
	if !errors.Is(err, errMissing) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single call, got %d", calls)
	}
}
