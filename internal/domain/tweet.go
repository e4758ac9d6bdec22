package domain

import (
	"encoding/json"
	"time"
)

// TweetID is a unique identifier for a tweet.
type TweetID string

// String returns the string representation of the TweetID.
func (id TweetID) String() string {
	return string(id)
}

// RawTweet is one record of the exported tweet document, exactly as decoded.
// The pipeline treats it as read-only input.
type RawTweet struct {
	ScreenName    string            `json:"screen_name"`
	Name          string            `json:"name"`
	ID            TweetID           `json:"id"`
	CreatedAt     string            `json:"created_at"`
	FullText      string            `json:"full_text"`
	Media         []json.RawMessage `json:"media,omitempty"`
	ReplyCount    int64             `json:"reply_count"`
	RetweetCount  int64             `json:"retweet_count"`
	FavoriteCount int64             `json:"favorite_count"`
}

// HasMedia returns true if the tweet carries any media descriptors.
func (t *RawTweet) HasMedia() bool {
	return len(t.Media) > 0
}

// UserSummary is the deduplicated per-handle record shown in the user gallery.
type UserSummary struct {
	ScreenName string `json:"screen_name"`
	Name       string `json:"name"`
	AvatarURL  string `json:"avatar_url"`
	TweetCount int    `json:"tweet_count"`
}

// Interaction holds the decorative like/retweet toggle state of a rendered tweet.
// The pipeline always emits the zero value; renderers own the toggling.
type Interaction struct {
	Liked     bool `json:"liked"`
	Retweeted bool `json:"retweeted"`
}

// TweetView is a RawTweet enriched with display-ready fields.
type TweetView struct {
	RawTweet
	PostedAt      time.Time   `json:"-"`
	TimestampMS   int64       `json:"timestamp_ms"`
	FormattedTime string      `json:"formatted_time"`
	MediaURLs     []string    `json:"media_urls"`
	AvatarURL     string      `json:"avatar_url"`
	Interaction   Interaction `json:"interaction"`
}
