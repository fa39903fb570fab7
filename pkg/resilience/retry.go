package resilience

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/aidmatch/trust-engine/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var retryAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "trust_engine_retry_attempts_total",
	Help: "Attempts made by retried upstream operations",
}, []string{"operation", "outcome"}) // outcome: "success", "retry", "failed"

// RetryConfig controls how an operation is retried
type RetryConfig struct {
	MaxAttempts       int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
	EnableJitter      bool

	// RetryableChecker decides whether an error is worth another attempt.
	// When nil every error except context cancellation is retried.
	RetryableChecker func(err error) bool
}

// DefaultRetryConfig returns settings suited to snapshot store reads
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    50 * time.Millisecond,
		MaxBackoff:        time.Second,
		BackoffMultiplier: 2.0,
		EnableJitter:      true,
	}
}

// NoRetry runs the operation exactly once
func NoRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 1}
}

// Retry runs op until it succeeds, returns a non-retryable error, the context
// ends or the attempts are exhausted. The last error is returned wrapped.
func Retry[T any](ctx context.Context, name string, cfg RetryConfig, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			retryAttemptsTotal.WithLabelValues(name, "success").Inc()
			return result, nil
		}
		lastErr = err

		if !shouldRetry(err, cfg) || attempt == attempts {
			break
		}
		retryAttemptsTotal.WithLabelValues(name, "retry").Inc()

		backoff := calculateBackoff(attempt, cfg)
		logger.WithContext(ctx).Debug("retrying operation",
			zap.String("operation", name),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			retryAttemptsTotal.WithLabelValues(name, "failed").Inc()
			return zero, fmt.Errorf("%s: %w", name, ctx.Err())
		case <-timer.C:
		}
	}

	retryAttemptsTotal.WithLabelValues(name, "failed").Inc()
	if !shouldRetry(lastErr, cfg) {
		return zero, lastErr
	}
	return zero, fmt.Errorf("%s failed after %d attempts: %w", name, attempts, lastErr)
}

func shouldRetry(err error, cfg RetryConfig) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if cfg.RetryableChecker != nil {
		return cfg.RetryableChecker(err)
	}
	return true
}

// calculateBackoff returns the wait after the given 1-based attempt
func calculateBackoff(attempt int, cfg RetryConfig) time.Duration {
	multiplier := cfg.BackoffMultiplier
	if multiplier < 1 {
		multiplier = 1
	}

	backoff := float64(cfg.InitialBackoff) * math.Pow(multiplier, float64(attempt-1))
	if cfg.MaxBackoff > 0 && backoff > float64(cfg.MaxBackoff) {
		backoff = float64(cfg.MaxBackoff)
	}

	d := time.Duration(backoff)
	if cfg.EnableJitter {
		d = addJitter(d)
	}
	return d
}

// addJitter spreads d by up to +/-25%
func addJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return d
	}
	spread := float64(d) * 0.25
	return time.Duration(float64(d) - spread + rand.Float64()*2*spread)
}
