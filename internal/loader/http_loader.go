package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/iconidentify/xgallery/internal/config"
	"github.com/iconidentify/xgallery/internal/domain"
)

// HTTPLoader fetches the tweet document from an http(s) URL.
type HTTPLoader struct {
	client   *http.Client
	url      string
	maxBytes int64
	retry    RetryConfig
	logger   *slog.Logger
	shared   *sharedLoad
}

// NewHTTPLoader creates a loader for cfg.Source. cfg.Timeout bounds each request.
func NewHTTPLoader(cfg config.DataConfig, logger *slog.Logger) *HTTPLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPLoader{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		url:      cfg.Source,
		maxBytes: cfg.MaxBytes,
		retry:    retryConfigFrom(cfg),
		logger:   logger,
		shared:   newSharedLoad("http", cfg.Source, logger),
	}
}

// Source returns the document URL.
func (l *HTTPLoader) Source() string {
	return l.url
}

// Load fetches and decodes the document, retrying transient failures.
// Failures resolve to an empty slice.
func (l *HTTPLoader) Load(ctx context.Context) []domain.RawTweet {
	return l.shared.load(ctx, l.fetchWithRetry)
}

func (l *HTTPLoader) fetchWithRetry(ctx context.Context) ([]domain.RawTweet, error) {
	attempt := 0
	return RetryWithCheck(ctx, l.retry, func() ([]domain.RawTweet, error) {
		attempt++
		tweets, err := l.fetch(ctx)
		if err != nil && attempt < l.retry.MaxAttempts && isRetryableError(err) {
			l.logger.Warn("tweet document fetch failed, retrying",
				"source", l.url,
				"attempt", attempt,
				"error", err,
			)
		}
		return tweets, err
	}, isRetryableError)
}

func (l *HTTPLoader) fetch(ctx context.Context) ([]domain.RawTweet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w: %w", domain.ErrLoadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	if l.maxBytes > 0 && resp.ContentLength > l.maxBytes {
		return nil, fmt.Errorf("%w: content length %d", domain.ErrDocumentTooLarge, resp.ContentLength)
	}

	body, err := readLimited(resp.Body, l.maxBytes)
	if err != nil {
		return nil, err
	}

	return Decode(body, l.logger)
}

// Ping issues a HEAD request and checks for a 2xx status.
func (l *HTTPLoader) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, l.url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return nil
}

// Close cancels any read in flight.
func (l *HTTPLoader) Close() {
	l.shared.close()
}
