package handler

import (
	"context"
	"io"
	"log/slog"

	"github.com/iconidentify/xgallery/internal/domain"
)

// testLogger returns a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockGalleryService is a test implementation of GalleryService.
type mockGalleryService struct {
	users     []domain.UserSummary
	timelines map[string][]domain.TweetView
	requested []string
}

func newMockGalleryService() *mockGalleryService {
	return &mockGalleryService{
		users:     []domain.UserSummary{},
		timelines: make(map[string][]domain.TweetView),
	}
}

func (m *mockGalleryService) Users(ctx context.Context) []domain.UserSummary {
	return m.users
}

func (m *mockGalleryService) Timeline(ctx context.Context, screenName string) []domain.TweetView {
	m.requested = append(m.requested, screenName)
	if views, ok := m.timelines[screenName]; ok {
		return views
	}
	return []domain.TweetView{}
}

// mockPinger is a test implementation of Pinger.
type mockPinger struct {
	err    error
	source string
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.err
}

func (m *mockPinger) Source() string {
	return m.source
}
