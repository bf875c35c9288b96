package resilience

import "context"

// Outcome carries a value together with whether it was substituted by a
// neutral fallback. Err holds the failure that caused the substitution.
type Outcome[T any] struct {
	Value    T
	Degraded bool
	Err      error
}

// Healthy wraps a value that was computed without falling back.
func Healthy[T any](value T) Outcome[T] {
	return Outcome[T]{Value: value}
}

// FailOpen runs fn and, when it fails, returns neutral flagged as degraded
// instead of propagating the error. Context cancellation is not swallowed.
func FailOpen[T any](ctx context.Context, neutral T, fn func(context.Context) (T, error)) (Outcome[T], error) {
	value, err := fn(ctx)
	if err == nil {
		return Healthy(value), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Outcome[T]{Value: neutral, Degraded: true, Err: err}, ctxErr
	}
	return Outcome[T]{Value: neutral, Degraded: true, Err: err}, nil
}
