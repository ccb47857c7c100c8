package instagram

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryPolicyStopsOnSuccess(t *testing.T) {
	calls := 0
	policy := RetryPolicy{MaxAttempts: 5, Retryable: func(error) bool { return true }}
	err := policy.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryPolicyExhaustsAttempts(t *testing.T) {
	calls := 0
	wantErr := errors.New("always fails")
	policy := RetryPolicy{MaxAttempts: 3, Retryable: func(error) bool { return true }}
	err := policy.Do(context.Background(), func() error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want last error", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryPolicyNonRetryableStopsEarly(t *testing.T) {
	calls := 0
	fatal := errors.New("fatal")
	policy := RetryPolicy{
		MaxAttempts: 5,
		Retryable:   func(err error) bool { return !errors.Is(err, fatal) },
	}
	err := policy.Do(context.Background(), func() error {
		calls++
		return fatal
	})
	if !errors.Is(err, fatal) || calls != 1 {
		t.Errorf("err = %v calls = %d, want immediate stop", err, calls)
	}
}

func TestRetryPolicyHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	policy := RetryPolicy{
		MaxAttempts: 3,
		Backoff:     func(int) time.Duration { return time.Hour },
		Retryable:   func(error) bool { return true },
	}
	err := policy.Do(ctx, func() error { return errors.New("x") })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
