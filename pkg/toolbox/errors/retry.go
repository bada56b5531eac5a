package errors

import (
	"context"
	"math/rand/v2"
	"time"
)

// RetryConfig is the backoff policy for transient transmit failures.
// The wait doubles after every failed attempt and is capped at MaxBackoff.
type RetryConfig struct {
	// MaxAttempts counts the first try. One or less means no retry.
	MaxAttempts int

	// InitialBackoff is the wait after the first failure.
	InitialBackoff time.Duration

	// MaxBackoff caps the wait. Zero means uncapped.
	MaxBackoff time.Duration

	// Jitter spreads each wait by up to this fraction either way (0.0-1.0).
	Jitter float64
}

// DefaultRetry retries a transient transmit failure a few times with short
// backoff. Backoff blocks the poll loop, so the delays stay small.
var DefaultRetry = RetryConfig{
	MaxAttempts:    3,
	InitialBackoff: 10 * time.Millisecond,
	MaxBackoff:     100 * time.Millisecond,
	Jitter:         0.1,
}

// NoRetry disables retries. It is the correlator default.
var NoRetry = RetryConfig{
	MaxAttempts: 1,
}

// Enabled reports whether the configuration allows more than one attempt.
func (c RetryConfig) Enabled() bool {
	return c.MaxAttempts > 1
}

// Delay returns the wait after the n-th failed attempt, counting from 1.
func (c RetryConfig) Delay(n int) time.Duration {
	d := c.InitialBackoff
	for i := 1; i < n && d > 0; i++ {
		if c.MaxBackoff > 0 && d >= c.MaxBackoff {
			break
		}
		d *= 2
	}
	if c.MaxBackoff > 0 && d > c.MaxBackoff {
		d = c.MaxBackoff
	}
	if c.Jitter > 0 && d > 0 {
		d += time.Duration(float64(d) * c.Jitter * (rand.Float64()*2 - 1))
	}
	return d
}

// Attempt describes a transient failure that is about to be retried.
type Attempt struct {
	// Number is the failed attempt, counting from 1.
	Number int

	// Err is what the attempt returned.
	Err error

	// Wait is how long Retry sleeps before the next attempt.
	Wait time.Duration
}

// Retry runs op until it succeeds, fails with an error that is not
// transient, or runs out of attempts. onRetry, when set, sees every failure
// that will be retried before the wait starts.
//
// A final failure is returned as a *CategorizedError whose Retries field
// holds the number of attempts made.
func Retry[T any](
	ctx context.Context,
	cfg RetryConfig,
	op func(context.Context) (T, error),
	onRetry func(Attempt),
) (T, error) {
	var zero T
	attempts := max(cfg.MaxAttempts, 1)

	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return zero, &CategorizedError{Err: err, Category: CategoryPermanent, Retries: n - 1, Context: "transmit cancelled"}
		}

		v, err := op(ctx)
		if err == nil {
			return v, nil
		}

		cat := Categorize(err)
		if cat != CategoryTransient {
			return zero, &CategorizedError{Err: err, Category: cat, Retries: n, Context: "transmit failed"}
		}
		if n >= attempts {
			return zero, &CategorizedError{Err: err, Category: cat, Retries: n, Context: "transmit attempts exhausted"}
		}

		wait := cfg.Delay(n)
		if onRetry != nil {
			onRetry(Attempt{Number: n, Err: err, Wait: wait})
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, &CategorizedError{Err: ctx.Err(), Category: CategoryPermanent, Retries: n, Context: "transmit cancelled"}
		case <-timer.C:
		}
	}
}
