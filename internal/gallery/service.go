package gallery

import (
	"context"
	"log/slog"

	"github.com/iconidentify/xgallery/internal/domain"
	"github.com/iconidentify/xgallery/internal/loader"
)

// Service runs one load followed by one build per request.
type Service struct {
	loader  loader.Loader
	builder *Builder
	logger  *slog.Logger
}

// NewService creates a gallery service.
func NewService(l loader.Loader, b *Builder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		loader:  l,
		builder: b,
		logger:  logger,
	}
}

// Users loads the document and returns the user gallery.
func (s *Service) Users(ctx context.Context) []domain.UserSummary {
	tweets := s.loader.Load(ctx)
	users := s.builder.BuildUsers(tweets)
	s.logger.Debug("built user gallery", "tweets", len(tweets), "users", len(users))
	return users
}

// Timeline loads the document and returns screenName's timeline.
// An empty screenName yields an empty timeline without loading.
func (s *Service) Timeline(ctx context.Context, screenName string) []domain.TweetView {
	if screenName == "" {
		return []domain.TweetView{}
	}
	tweets := s.loader.Load(ctx)
	views := s.builder.BuildTimeline(tweets, screenName)
	s.logger.Debug("built timeline", "screen_name", screenName, "tweets", len(views))
	return views
}

// Snapshot loads the document once and builds every view from it.
func (s *Service) Snapshot(ctx context.Context) ([]domain.UserSummary, map[string][]domain.TweetView) {
	tweets := s.loader.Load(ctx)
	users := s.builder.BuildUsers(tweets)
	timelines := make(map[string][]domain.TweetView, len(users))
	for _, u := range users {
		timelines[u.ScreenName] = s.builder.BuildTimeline(tweets, u.ScreenName)
	}
	return users, timelines
}

// Ping reports whether the document source is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.loader.Ping(ctx)
}

// Source describes where the document is read from.
func (s *Service) Source() string {
	return s.loader.Source()
}

// Close stops any document read in flight.
func (s *Service) Close() {
	s.loader.Close()
}
