package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// Backoff retries an operation with exponential backoff and optional jitter.
// Attempts counts the first call, so Attempts == 1 means "no retries".
type Backoff struct {
	Attempts   int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Multiplier float64
	Jitter     bool

	// sleep is replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewExponentialBackoff returns the policy used for database reconnects.
func NewExponentialBackoff() *Backoff {
	return &Backoff{
		Attempts:   6,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   30 * time.Second,
		Multiplier: 2.0,
		Jitter:     true,
	}
}

// Once is a policy that runs the operation a single time.
func Once() *Backoff {
	return &Backoff{Attempts: 1}
}

// Do runs fn until it succeeds, the attempts are used up, or ctx is done.
func (b *Backoff) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := b.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		lastErr = err

		if attempt == attempts-1 {
			break
		}

		delay := b.delay(attempt)
		slog.DebugContext(ctx, "Retry attempt failed, waiting before next attempt",
			"event", "retry_attempt",
			"attempt", attempt+1, "max_attempts", attempts,
			"delay_ms", delay.Milliseconds(), "error", err)

		if err := b.wait(ctx, delay); err != nil {
			return err
		}
	}

	if attempts == 1 {
		return lastErr
	}
	return fmt.Errorf("operation failed after %d attempts: %w", attempts, lastErr)
}

func (b *Backoff) delay(attempt int) time.Duration {
	mult := b.Multiplier
	if mult <= 0 {
		mult = 2.0
	}
	d := float64(b.BaseDelay) * math.Pow(mult, float64(attempt))
	if b.MaxDelay > 0 && d > float64(b.MaxDelay) {
		d = float64(b.MaxDelay)
	}
	if b.Jitter {
		// Up to 25% extra.
		d += rand.Float64() * d * 0.25
	}
	return time.Duration(d)
}

func (b *Backoff) wait(ctx context.Context, d time.Duration) error {
	if b.sleep != nil {
		return b.sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Permanent marks err as not worth retrying; Do returns it unwrapped at once.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

type permanentError struct{ err error }

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }
