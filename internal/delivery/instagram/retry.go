package instagram

import (
	"context"
	"time"

	"github.com/yourusername/instagram-ai-bot/internal/domain/constants"
)

// RetryPolicy bounds how a flaky step is re-attempted. Tests inject a zero
// backoff so nothing actually sleeps.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
	Retryable   func(error) bool
}

// DefaultSettlePolicy is the bounded wait used while a freshly opened thread
// finishes rendering.
func DefaultSettlePolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: constants.ThreadSettleMaxAttempts,
		Backoff: func(attempt int) time.Duration {
			return time.Duration(attempt) * constants.ThreadSettleDelaySeconds * time.Second
		},
		Retryable: func(error) bool { return true },
	}
}

// Do runs op until it succeeds, the policy is exhausted, a non-retryable
// error occurs, or ctx is cancelled. The last error is returned.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(lastErr) {
			return lastErr
		}
		if attempt < attempts && p.Backoff != nil {
			if delay := p.Backoff(attempt); delay > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(delay):
				}
			}
		}
	}
	return lastErr
}
