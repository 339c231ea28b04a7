package feed

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// RetryPolicy bounds the retries for one document fetch. Transport
// failures and server errors are retried with exponential backoff;
// client errors (missing files, bad requests) are not, since the
// mirror will answer them the same way every time.
type RetryPolicy struct {
	// MaxRetries is the number of retry attempts after the initial call.
	MaxRetries int

	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration

	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration

	// Jitter randomizes delays to avoid synchronized retries.
	Jitter bool
}

// defaultRetryPolicy keeps a refresh responsive: two quick retries and
// bounded backoff before a source falls back to its cached copy.
var defaultRetryPolicy = RetryPolicy{
	MaxRetries: 2,
	BaseDelay:  300 * time.Millisecond,
	MaxDelay:   3 * time.Second,
	Jitter:     true,
}

// permanentError marks a fetch failure that retrying cannot fix.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// retryFetch runs fn until it succeeds, the policy is exhausted, the
// error is permanent, or the context ends. The last error is returned
// when all attempts fail.
func retryFetch(ctx context.Context, policy RetryPolicy, fn func() error) error {
	var lastErr error

	attempts := policy.MaxRetries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable(err) {
			return err
		}
		if attempt < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoffDelay(attempt, policy)):
			}
		}
	}

	return lastErr
}

// retryable reports whether another attempt could change the outcome.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var perm *permanentError
	return !errors.As(err, &perm)
}

// backoffDelay computes the delay before the next attempt: the base
// delay doubled per attempt, capped at the maximum.
func backoffDelay(attempt int, policy RetryPolicy) time.Duration {
	base := policy.BaseDelay
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	ceiling := policy.MaxDelay
	if ceiling <= 0 {
		ceiling = 30 * time.Second
	}

	delay := base
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay > ceiling {
			delay = ceiling
			break
		}
	}

	// Jitter spreads the delay between 0.5x and 1.5x.
	if policy.Jitter {
		delay = time.Duration(float64(delay) * (0.5 + rand.Float64()))
	}
	if delay > ceiling {
		delay = ceiling
	}
	return delay
}
