package util

import (
	"context"
	"time"
)

// Sleep is swapped out in tests to observe backoff without waiting.
var Sleep = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Retry runs fn up to attempts times, doubling the delay between failures
// starting from baseDelay. The last error is returned once attempts are
// exhausted. There is no delay after the final failure.
func Retry[T any](ctx context.Context, attempts int, baseDelay time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt < attempts {
			delay := baseDelay << (attempt - 1)
			if sleepErr := Sleep(ctx, delay); sleepErr != nil {
				return zero, sleepErr
			}
		}
	}

	return zero, lastErr
}
