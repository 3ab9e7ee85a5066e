package retry

import (
	"context"
	"time"
)

// Do executes the given function with retry logic.
// It respects context cancellation during backoff waits.
// Returns the result on success, or the last error if all attempts fail.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	return DoWithEvents(ctx, cfg, fn, nil)
}

// DoWithEvents is Do with an observer for narrating the retry lifecycle.
// Only transient errors are retried; a permanent error returns immediately.
func DoWithEvents[T any](ctx context.Context, cfg Config, fn func() (T, error), observe Observer) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		observe.emit(Event{Type: EventAttempt, Attempt: attempt + 1, MaxAttempts: cfg.MaxAttempts})

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				observe.emit(Event{Type: EventRecovered, Attempt: attempt + 1, MaxAttempts: cfg.MaxAttempts})
			}
			return result, nil
		}

		lastErr = err
		observe.emit(Event{Type: EventFailed, Attempt: attempt + 1, MaxAttempts: cfg.MaxAttempts, Err: err})

		if !IsTransient(err) {
			return zero, err
		}

		// Don't sleep after the last attempt
		if attempt < cfg.MaxAttempts-1 {
			delay := cfg.Delay(attempt)
			observe.emit(Event{Type: EventRetrying, Attempt: attempt + 1, MaxAttempts: cfg.MaxAttempts, Delay: delay})

			// Respect context cancellation during sleep
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
				// Continue to next attempt
			}
		}
	}

	observe.emit(Event{Type: EventExhausted, Attempt: cfg.MaxAttempts, MaxAttempts: cfg.MaxAttempts, Err: lastErr})
	return zero, lastErr
}
