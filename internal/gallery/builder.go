// Package gallery derives the user-gallery and timeline view models from raw tweets.
package gallery

import (
	"log/slog"
	"slices"
	"time"

	"github.com/iconidentify/xgallery/internal/domain"
	"github.com/iconidentify/xgallery/internal/mediaurl"
	"github.com/iconidentify/xgallery/internal/metrics"
	"github.com/iconidentify/xgallery/internal/timefmt"
)

// Builder turns raw tweets into display-ready view models.
// It never modifies its input.
type Builder struct {
	urls   *mediaurl.Deriver
	dates  *timefmt.Formatter
	logger *slog.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(urls *mediaurl.Deriver, dates *timefmt.Formatter, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		urls:   urls,
		dates:  dates,
		logger: logger,
	}
}

// BuildUsers collapses tweets into one summary per screen_name, in order of
// first appearance. The first name seen for a handle wins. Handles are
// compared exactly, so case variants are distinct users.
func (b *Builder) BuildUsers(tweets []domain.RawTweet) []domain.UserSummary {
	start := time.Now()
	defer metrics.ObserveBuild("users", start)

	users := make([]domain.UserSummary, 0)
	index := make(map[string]int)

	for i := range tweets {
		t := &tweets[i]
		if pos, ok := index[t.ScreenName]; ok {
			users[pos].TweetCount++
			continue
		}
		index[t.ScreenName] = len(users)
		users = append(users, domain.UserSummary{
			ScreenName: t.ScreenName,
			Name:       t.Name,
			AvatarURL:  b.urls.AvatarURL(t.Name),
			TweetCount: 1,
		})
	}

	return users
}

// BuildTimeline returns screenName's tweets, most recent first.
// Tweets with the same timestamp keep their input order. Tweets whose
// created_at cannot be parsed are left out and logged.
func (b *Builder) BuildTimeline(tweets []domain.RawTweet, screenName string) []domain.TweetView {
	start := time.Now()
	defer metrics.ObserveBuild("timeline", start)

	views := make([]domain.TweetView, 0)
	for i := range tweets {
		t := &tweets[i]
		if t.ScreenName != screenName {
			continue
		}

		postedAt, err := b.dates.Parse(t.CreatedAt)
		if err != nil {
			metrics.IncSkipped("invalid_created_at")
			b.logger.Warn("skipping tweet with invalid created_at",
				"error", domain.NewRecordError(t.ID, "parse created_at", err),
				"screen_name", t.ScreenName,
			)
			continue
		}

		views = append(views, b.view(t, postedAt))
	}

	slices.SortStableFunc(views, func(a, c domain.TweetView) int {
		return c.PostedAt.Compare(a.PostedAt)
	})

	return views
}

func (b *Builder) view(t *domain.RawTweet, postedAt time.Time) domain.TweetView {
	mediaURLs := make([]string, len(t.Media))
	for i := range t.Media {
		mediaURLs[i] = b.urls.MediaURL(t.ScreenName, t.ID.String(), i, postedAt)
	}

	return domain.TweetView{
		RawTweet:      *t,
		PostedAt:      postedAt,
		TimestampMS:   postedAt.UnixMilli(),
		FormattedTime: b.dates.Format(postedAt),
		MediaURLs:     mediaURLs,
		AvatarURL:     b.urls.AvatarURL(t.Name),
	}
}
