// Package retry provides the retry-with-backoff combinator shared by every
// remote-call wrapper in the pipeline.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy controls how Do retries a failing operation.
type Policy struct {
	// Attempts is the total number of tries, including the first one.
	Attempts int

	// BaseDelay is the wait before the second attempt; it doubles after
	// every failure (base, 2*base, 4*base, ...).
	BaseDelay time.Duration

	// Sleep overrides how backoff waits are performed. Tests inject a
	// recorder here; nil means a context-aware timer sleep.
	Sleep func(time.Duration)
}

// DefaultPolicy matches the remote-call contract used across the gateways:
// three attempts with 1s/2s/4s backoff.
func DefaultPolicy() Policy {
	return Policy{Attempts: 3, BaseDelay: time.Second}
}

// Do runs fn until it succeeds or the policy's attempts are exhausted.
// The last error is returned wrapped with the attempt count. Context
// cancellation stops retrying immediately.
func (p Policy) Do(ctx context.Context, fn func(context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	delay := p.BaseDelay
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := p.sleep(ctx, delay); err != nil {
				return err
			}
			delay *= 2
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

func (p Policy) sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	if p.Sleep != nil {
		p.Sleep(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
