package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testError         = errors.New("test error")
	nonRetryableError = errors.New("non-retryable error")
)

func fastConfig() RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxBackoff = 5 * time.Millisecond
	cfg.EnableJitter = false
	return cfg
}

func TestRetry_SuccessOnFirstAttempt(t *testing.T) {
	attemptCount := 0

	result, err := Retry(context.Background(), "test", fastConfig(), func(ctx context.Context) (string, error) {
		attemptCount++
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 1, attemptCount, "should only attempt once on success")
}

func TestRetry_SuccessAfterRetries(t *testing.T) {
	attemptCount := 0

	result, err := Retry(context.Background(), "test", fastConfig(), func(ctx context.Context) (int, error) {
		attemptCount++
		if attemptCount < 3 {
			return 0, testError
		}
		return 42, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, 3, attemptCount)
}

func TestRetry_FailureAfterMaxAttempts(t *testing.T) {
	attemptCount := 0

	_, err := Retry(context.Background(), "load providers", fastConfig(), func(ctx context.Context) (string, error) {
		attemptCount++
		return "", testError
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, testError)
	assert.Contains(t, err.Error(), "load providers failed after 3 attempts")
	assert.Equal(t, 3, attemptCount)
}

func TestRetry_NonRetryableErrorReturnedAsIs(t *testing.T) {
	cfg := fastConfig()
	cfg.RetryableChecker = func(err error) bool { return !errors.Is(err, nonRetryableError) }
	attemptCount := 0

	_, err := Retry(context.Background(), "test", cfg, func(ctx context.Context) (string, error) {
		attemptCount++
		return "", nonRetryableError
	})

	assert.Equal(t, nonRetryableError, err)
	assert.Equal(t, 1, attemptCount)
}

func TestRetry_ContextCanceledNotRetried(t *testing.T) {
	attemptCount := 0

	_, err := Retry(context.Background(), "test", fastConfig(), func(ctx context.Context) (string, error) {
		attemptCount++
		return "", context.Canceled
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attemptCount)
}

func TestRetry_ContextCancellationDuringBackoff(t *testing.T) {
	cfg := fastConfig()
	cfg.InitialBackoff = time.Second
	cfg.MaxBackoff = time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Retry(ctx, "test", cfg, func(ctx context.Context) (string, error) {
		return "", testError
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestRetry_ZeroMaxAttemptsRunsOnce(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxAttempts = 0
	attemptCount := 0

	_, err := Retry(context.Background(), "test", cfg, func(ctx context.Context) (string, error) {
		attemptCount++
		return "", testError
	})

	assert.Error(t, err)
	assert.Equal(t, 1, attemptCount)
}

func TestNoRetry(t *testing.T) {
	attemptCount := 0

	_, err := Retry(context.Background(), "test", NoRetry(), func(ctx context.Context) (string, error) {
		attemptCount++
		return "", testError
	})

	assert.ErrorIs(t, err, testError)
	assert.Equal(t, 1, attemptCount)
}

func TestCalculateBackoff_ExponentialGrowth(t *testing.T) {
	cfg := RetryConfig{
		InitialBackoff:    100 * time.Millisecond,
		MaxBackoff:        time.Second,
		BackoffMultiplier: 2.0,
	}

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, time.Second},
		{10, time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, calculateBackoff(tt.attempt, cfg), "attempt %d", tt.attempt)
	}
}

func TestCalculateBackoff_WithJitter(t *testing.T) {
	cfg := RetryConfig{
		InitialBackoff:    100 * time.Millisecond,
		MaxBackoff:        time.Second,
		BackoffMultiplier: 2.0,
		EnableJitter:      true,
	}

	for i := 0; i < 50; i++ {
		d := calculateBackoff(2, cfg)
		assert.GreaterOrEqual(t, d, 150*time.Millisecond)
		assert.LessOrEqual(t, d, 250*time.Millisecond)
	}
}

func TestAddJitter_ZeroDuration(t *testing.T) {
	assert.Equal(t, time.Duration(0), addJitter(0))
}

func TestShouldRetry_NilError(t *testing.T) {
	assert.False(t, shouldRetry(nil, DefaultRetryConfig()))
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 50*time.Millisecond, cfg.InitialBackoff)
	assert.Equal(t, time.Second, cfg.MaxBackoff)
	assert.Equal(t, 2.0, cfg.BackoffMultiplier)
	assert.True(t, cfg.EnableJitter)
}
