package loader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/iconidentify/xgallery/internal/config"
	"github.com/iconidentify/xgallery/internal/domain"
)

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// retryConfigFrom maps the data settings onto a RetryConfig.
// Fewer than one attempt means a single try.
func retryConfigFrom(cfg config.DataConfig) RetryConfig {
	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	maxDelay := cfg.MaxRetryDelay
	if maxDelay < cfg.RetryDelay {
		maxDelay = cfg.RetryDelay
	}
	return RetryConfig{
		MaxAttempts:   attempts,
		InitialDelay:  cfg.RetryDelay,
		MaxDelay:      maxDelay,
		BackoffFactor: 2.0,
	}
}

// RetryWithCheck executes fn with exponential backoff while shouldRetry accepts the error.
func RetryWithCheck[T any](
	ctx context.Context,
	cfg RetryConfig,
	fn func() (T, error),
	shouldRetry func(error) bool,
) (T, error) {
	var lastErr error
	var zero T

	attempts := max(cfg.MaxAttempts, 1)
	delay := cfg.InitialDelay

	for attempt := 0; attempt < attempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !shouldRetry(err) {
			break
		}

		// Don't wait after the last attempt
		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * cfg.BackoffFactor)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return zero, lastErr
}

// StatusError reports a non-2xx response from the document host.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d", domain.ErrUnexpectedStatus, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return domain.ErrUnexpectedStatus
}

// isRetryableError reports whether another attempt could succeed.
// Transport failures, 429 and 5xx responses are retried; everything else is final.
func isRetryableError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}
	return errors.Is(err, domain.ErrLoadFailed)
}
