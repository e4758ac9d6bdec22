// Package loader reads the tweet export document.
//
// Loaders never fail: any problem reading or decoding the document is logged
// and the load resolves to an empty slice, so callers always get a usable
// (possibly empty) sequence.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/iconidentify/xgallery/internal/config"
	"github.com/iconidentify/xgallery/internal/domain"
	"github.com/iconidentify/xgallery/internal/metrics"
)

// Loader reads the tweet document once per call.
type Loader interface {
	// Load returns the decoded records, or an empty slice if the document
	// could not be read. The returned slice may be shared with concurrent
	// callers and must not be modified.
	Load(ctx context.Context) []domain.RawTweet

	// Ping checks that the document source is reachable without decoding it.
	Ping(ctx context.Context) error

	// Source describes where the document is read from.
	Source() string

	// Close cancels any read in flight, including retry backoff.
	// Loads after Close resolve to an empty slice.
	Close()
}

// New returns an HTTPLoader for http(s) sources and a FileLoader otherwise.
func New(cfg config.DataConfig, logger *slog.Logger) Loader {
	if cfg.IsRemote() {
		return NewHTTPLoader(cfg, logger)
	}
	return NewFileLoader(cfg, logger)
}

// fetchFunc performs one read of the document.
type fetchFunc func(ctx context.Context) ([]domain.RawTweet, error)

// sharedLoad runs fetch, joining a read already in flight for the same loader.
// Nothing is retained once the read completes, so the next call reads again.
// The shared read outlives the caller that started it but not the loader.
type sharedLoad struct {
	group  singleflight.Group
	kind   string
	source string
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

func newSharedLoad(kind, source string, logger *slog.Logger) *sharedLoad {
	ctx, cancel := context.WithCancel(context.Background())
	return &sharedLoad{
		kind:   kind,
		source: source,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *sharedLoad) close() {
	s.cancel()
}

func (s *sharedLoad) load(ctx context.Context, fetch fetchFunc) []domain.RawTweet {
	if err := s.ctx.Err(); err != nil {
		s.fail(fmt.Errorf("loader closed: %w", err))
		return []domain.RawTweet{}
	}

	ch := s.group.DoChan(s.source, func() (interface{}, error) {
		start := time.Now()
		defer metrics.ObserveLoad(start)
		metrics.Loads.WithLabelValues(s.kind).Inc()

		fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		defer cancel()
		stop := context.AfterFunc(s.ctx, cancel)
		defer stop()

		return fetch(fetchCtx)
	})

	select {
	case <-ctx.Done():
		metrics.LoadsAbandoned.WithLabelValues(s.kind).Inc()
		s.logger.Warn("stopped waiting for tweet document",
			"source", s.source,
			"error", ctx.Err(),
		)
		return []domain.RawTweet{}
	case res := <-ch:
		if res.Err != nil {
			s.fail(res.Err)
			return []domain.RawTweet{}
		}
		tweets, _ := res.Val.([]domain.RawTweet)
		if tweets == nil {
			return []domain.RawTweet{}
		}
		if res.Shared {
			s.logger.Debug("joined in-flight load", "source", s.source)
		}
		return tweets
	}
}

func (s *sharedLoad) fail(err error) {
	metrics.LoadFailures.WithLabelValues(s.kind).Inc()
	s.logger.Error("failed to load tweet document",
		"source", s.source,
		"error", err,
	)
}
