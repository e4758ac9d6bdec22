package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/iconidentify/xgallery/internal/config"
	"github.com/iconidentify/xgallery/internal/domain"
	"github.com/iconidentify/xgallery/internal/mediaurl"
	"github.com/iconidentify/xgallery/internal/timefmt"
)

// testLogger returns a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testBuilder() *Builder {
	urls := mediaurl.NewDeriver(config.MediaConfig{
		AvatarHost: "avatars.example.com",
		MediaHost:  "media.example.com",
	}, time.UTC)
	return NewBuilder(urls, timefmt.NewFormatter(time.UTC), testLogger())
}

func media(n int) []json.RawMessage {
	items := make([]json.RawMessage, n)
	for i := range items {
		items[i] = json.RawMessage(fmt.Sprintf(`{"type":"photo","n":%d}`, i))
	}
	return items
}

// =============================================================================
// BuildUsers Tests
// =============================================================================

func TestBuildUsers_DedupFirstWriteWins(t *testing.T) {
	tweets := []domain.RawTweet{
		{ScreenName: "a", Name: "Alice1"},
		{ScreenName: "b", Name: "Bob"},
		{ScreenName: "a", Name: "Alice2"},
	}

	users := testBuilder().BuildUsers(tweets)

	got := make([][2]string, len(users))
	for i, u := range users {
		got[i] = [2]string{u.ScreenName, u.Name}
	}
	want := [][2]string{{"a", "Alice1"}, {"b", "Bob"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildUsers() = %v, want %v", got, want)
	}

	if users[0].TweetCount != 2 || users[1].TweetCount != 1 {
		t.Errorf("tweet counts = %d/%d, want 2/1", users[0].TweetCount, users[1].TweetCount)
	}
	if users[0].AvatarURL != "https://avatars.example.com/images/Alice1.jpg" {
		t.Errorf("AvatarURL = %q", users[0].AvatarURL)
	}
}

func TestBuildUsers_OrderOfFirstAppearance(t *testing.T) {
	tweets := []domain.RawTweet{
		{ScreenName: "zed"},
		{ScreenName: "amy"},
		{ScreenName: "zed"},
		{ScreenName: "mia"},
	}

	users := testBuilder().BuildUsers(tweets)

	var got []string
	for _, u := range users {
		got = append(got, u.ScreenName)
	}
	if want := []string{"zed", "amy", "mia"}; !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v (insertion order, not sorted)", got, want)
	}
}

func TestBuildUsers_CaseSensitive(t *testing.T) {
	tweets := []domain.RawTweet{
		{ScreenName: "Alice", Name: "Upper"},
		{ScreenName: "alice", Name: "Lower"},
	}

	if users := testBuilder().BuildUsers(tweets); len(users) != 2 {
		t.Errorf("len(users) = %d, want 2 distinct handles", len(users))
	}
}

func TestBuildUsers_EmptyNameUsesFallbackAvatar(t *testing.T) {
	users := testBuilder().BuildUsers([]domain.RawTweet{{ScreenName: "ghost"}})

	if users[0].AvatarURL != "https://avatars.example.com/images/unknown.jpg" {
		t.Errorf("AvatarURL = %q, want unknown fallback", users[0].AvatarURL)
	}
}

func TestBuildUsers_Empty(t *testing.T) {
	users := testBuilder().BuildUsers(nil)
	if users == nil || len(users) != 0 {
		t.Errorf("BuildUsers(nil) = %v, want empty slice", users)
	}
}

// =============================================================================
// BuildTimeline Tests
// =============================================================================

func TestBuildTimeline_FilterAndSortDescending(t *testing.T) {
	tweets := []domain.RawTweet{
		{ScreenName: "a", ID: "old", CreatedAt: "2020-01-01"},
		{ScreenName: "b", ID: "other", CreatedAt: "2022-01-01"},
		{ScreenName: "a", ID: "new", CreatedAt: "2021-01-01"},
	}

	views := testBuilder().BuildTimeline(tweets, "a")

	var got []domain.TweetID
	for _, v := range views {
		got = append(got, v.ID)
	}
	if want := []domain.TweetID{"new", "old"}; !reflect.DeepEqual(got, want) {
		t.Errorf("timeline ids = %v, want %v", got, want)
	}
}

func TestBuildTimeline_StableForEqualTimestamps(t *testing.T) {
	tweets := []domain.RawTweet{
		{ScreenName: "a", ID: "1", CreatedAt: "2020-01-01T00:00:00Z"},
		{ScreenName: "a", ID: "2", CreatedAt: "2020-01-01T00:00:00Z"},
		{ScreenName: "a", ID: "3", CreatedAt: "2021-01-01T00:00:00Z"},
		{ScreenName: "a", ID: "4", CreatedAt: "Wed Jan 01 00:00:00 +0000 2020"},
	}

	views := testBuilder().BuildTimeline(tweets, "a")

	var got []domain.TweetID
	for _, v := range views {
		got = append(got, v.ID)
	}
	if want := []domain.TweetID{"3", "1", "2", "4"}; !reflect.DeepEqual(got, want) {
		t.Errorf("timeline ids = %v, want %v", got, want)
	}
}

func TestBuildTimeline_UnknownUser(t *testing.T) {
	tweets := []domain.RawTweet{{ScreenName: "a", CreatedAt: "2020-01-01"}}

	views := testBuilder().BuildTimeline(tweets, "nobody")
	if views == nil || len(views) != 0 {
		t.Errorf("BuildTimeline(unknown) = %v, want empty slice", views)
	}
}

func TestBuildTimeline_ExactMatch(t *testing.T) {
	tweets := []domain.RawTweet{
		{ScreenName: "Alice", CreatedAt: "2020-01-01"},
		{ScreenName: "alice ", CreatedAt: "2020-01-01"},
	}

	if views := testBuilder().BuildTimeline(tweets, "alice"); len(views) != 0 {
		t.Errorf("len(views) = %d, want 0 for inexact handles", len(views))
	}
}

func TestBuildTimeline_SkipsInvalidTimestamps(t *testing.T) {
	tweets := []domain.RawTweet{
		{ScreenName: "a", ID: "good", CreatedAt: "2020-01-01"},
		{ScreenName: "a", ID: "bad", CreatedAt: "not a date"},
		{ScreenName: "a", ID: "missing"},
	}

	views := testBuilder().BuildTimeline(tweets, "a")
	if len(views) != 1 || views[0].ID != "good" {
		t.Errorf("views = %+v, want only the parsable tweet", views)
	}
}

func TestBuildTimeline_MediaURLsAligned(t *testing.T) {
	tweets := []domain.RawTweet{
		{ScreenName: "alice", ID: "123", CreatedAt: "2023-05-01T10:00:00Z", Media: media(3)},
	}

	views := testBuilder().BuildTimeline(tweets, "alice")
	if len(views) != 1 {
		t.Fatalf("len(views) = %d, want 1", len(views))
	}

	urls := views[0].MediaURLs
	if len(urls) != 3 {
		t.Fatalf("len(MediaURLs) = %d, want 3", len(urls))
	}
	for i, u := range urls {
		suffix := fmt.Sprintf("alice_123_photo_%d_20230501.jpg", i+1)
		if !strings.HasSuffix(u, suffix) {
			t.Errorf("MediaURLs[%d] = %q, want suffix %q", i, u, suffix)
		}
	}
}

func TestBuildTimeline_DerivedFields(t *testing.T) {
	tweets := []domain.RawTweet{{
		ScreenName:    "alice",
		Name:          "Alice",
		ID:            "9",
		CreatedAt:     "2023-05-01T10:00:00Z",
		FullText:      "hello",
		ReplyCount:    1,
		RetweetCount:  2,
		FavoriteCount: 3,
	}}

	views := testBuilder().BuildTimeline(tweets, "alice")
	if len(views) != 1 {
		t.Fatalf("len(views) = %d, want 1", len(views))
	}
	v := views[0]

	if v.FormattedTime != "2023年5月1日 10:00" {
		t.Errorf("FormattedTime = %q", v.FormattedTime)
	}
	if v.TimestampMS != time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC).UnixMilli() {
		t.Errorf("TimestampMS = %d", v.TimestampMS)
	}
	if v.MediaURLs == nil || len(v.MediaURLs) != 0 {
		t.Errorf("MediaURLs = %v, want empty non-nil slice", v.MediaURLs)
	}
	if v.AvatarURL != "https://avatars.example.com/images/Alice.jpg" {
		t.Errorf("AvatarURL = %q", v.AvatarURL)
	}
	if v.FullText != "hello" || v.FavoriteCount != 3 {
		t.Errorf("raw fields not carried over: %+v", v.RawTweet)
	}
	if v.Interaction.Liked || v.Interaction.Retweeted {
		t.Error("interaction state should start cleared")
	}
}

func TestBuildTimeline_DoesNotMutateInput(t *testing.T) {
	tweets := []domain.RawTweet{
		{ScreenName: "a", ID: "1", CreatedAt: "2020-01-01", Media: media(1)},
		{ScreenName: "a", ID: "2", CreatedAt: "2021-01-01"},
	}
	before := make([]domain.RawTweet, len(tweets))
	copy(before, tweets)

	testBuilder().BuildTimeline(tweets, "a")
	testBuilder().BuildUsers(tweets)

	if !reflect.DeepEqual(tweets, before) {
		t.Error("builders must not modify their input")
	}
}

// =============================================================================
// Service Tests
// =============================================================================

type fakeLoader struct {
	tweets []domain.RawTweet
	calls  int
	err    error
	closed bool
}

func (f *fakeLoader) Load(ctx context.Context) []domain.RawTweet {
	f.calls++
	if f.tweets == nil {
		return []domain.RawTweet{}
	}
	return f.tweets
}

func (f *fakeLoader) Ping(ctx context.Context) error { return f.err }

func (f *fakeLoader) Source() string { return "fake.json" }

func (f *fakeLoader) Close() { f.closed = true }

func TestService_UsersAndTimeline(t *testing.T) {
	fl := &fakeLoader{tweets: []domain.RawTweet{
		{ScreenName: "a", Name: "A", CreatedAt: "2020-01-01"},
		{ScreenName: "b", Name: "B", CreatedAt: "2020-01-02"},
	}}
	svc := NewService(fl, testBuilder(), testLogger())

	if users := svc.Users(context.Background()); len(users) != 2 {
		t.Errorf("len(Users()) = %d, want 2", len(users))
	}
	if views := svc.Timeline(context.Background(), "b"); len(views) != 1 {
		t.Errorf("len(Timeline(b)) = %d, want 1", len(views))
	}
	if fl.calls != 2 {
		t.Errorf("loader calls = %d, want one per request", fl.calls)
	}
}

func TestService_TimelineEmptySelector(t *testing.T) {
	fl := &fakeLoader{}
	svc := NewService(fl, testBuilder(), testLogger())

	if views := svc.Timeline(context.Background(), ""); views == nil || len(views) != 0 {
		t.Errorf("Timeline(\"\") = %v, want empty slice", views)
	}
	if fl.calls != 0 {
		t.Errorf("loader calls = %d, want 0 for empty selector", fl.calls)
	}
}

func TestService_EmptyDocument(t *testing.T) {
	svc := NewService(&fakeLoader{}, testBuilder(), testLogger())

	if users := svc.Users(context.Background()); len(users) != 0 {
		t.Errorf("Users() = %v, want empty", users)
	}
	if views := svc.Timeline(context.Background(), "a"); len(views) != 0 {
		t.Errorf("Timeline() = %v, want empty", views)
	}
}

func TestService_Snapshot(t *testing.T) {
	fl := &fakeLoader{tweets: []domain.RawTweet{
		{ScreenName: "a", CreatedAt: "2020-01-01"},
		{ScreenName: "b", CreatedAt: "2020-01-02"},
		{ScreenName: "a", CreatedAt: "2020-01-03"},
	}}
	svc := NewService(fl, testBuilder(), testLogger())

	users, timelines := svc.Snapshot(context.Background())
	if len(users) != 2 {
		t.Fatalf("len(users) = %d, want 2", len(users))
	}
	if len(timelines["a"]) != 2 || len(timelines["b"]) != 1 {
		t.Errorf("timelines = a:%d b:%d, want 2 and 1", len(timelines["a"]), len(timelines["b"]))
	}
	if fl.calls != 1 {
		t.Errorf("loader calls = %d, want 1", fl.calls)
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Data.Source = "https://example.com/twitter.json"
	cfg.Display.TimeZone = "UTC"

	svc, err := NewFromConfig(cfg, testLogger())
	if err != nil {
		t.Fatalf("NewFromConfig() error = %v", err)
	}
	if svc.Source() != "https://example.com/twitter.json" {
		t.Errorf("Source() = %q", svc.Source())
	}

	cfg.Display.TimeZone = "Not/AZone"
	if _, err := NewFromConfig(cfg, testLogger()); err == nil {
		t.Error("NewFromConfig() should fail for an unknown time zone")
	}
}

func TestService_CloseClosesLoader(t *testing.T) {
	fl := &fakeLoader{}
	NewService(fl, testBuilder(), testLogger()).Close()

	if !fl.closed {
		t.Error("Close() did not close the loader")
	}
}
