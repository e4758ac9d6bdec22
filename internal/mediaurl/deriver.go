// Package mediaurl derives deterministic avatar and photo URLs for exported tweets.
package mediaurl

import (
	"strconv"
	"strings"
	"time"

	"github.com/iconidentify/xgallery/internal/config"
	"github.com/iconidentify/xgallery/internal/naming"
)

// FallbackToken replaces names that sanitize to nothing.
const FallbackToken = "unknown"

// Deriver builds avatar and media URLs against fixed image hosts.
type Deriver struct {
	avatarHost string
	mediaHost  string
	loc        *time.Location
}

// NewDeriver creates a Deriver. Media file dates are taken in loc; nil means time.Local.
func NewDeriver(cfg config.MediaConfig, loc *time.Location) *Deriver {
	if loc == nil {
		loc = time.Local
	}
	return &Deriver{
		avatarHost: cfg.AvatarHost,
		mediaHost:  cfg.MediaHost,
		loc:        loc,
	}
}

// AvatarURL returns the avatar image URL for a display name.
func (d *Deriver) AvatarURL(displayName string) string {
	return "https://" + d.avatarHost + "/images/" + EscapeComponent(token(displayName)) + ".jpg"
}

// MediaURL returns the URL of the index-th (zero-based) photo of a tweet.
// The file name carries the one-based photo number and the tweet's calendar date.
func (d *Deriver) MediaURL(screenName string, tweetID string, index int, createdAt time.Time) string {
	return "https://" + d.mediaHost + "/" + EscapeComponent(d.MediaFileName(screenName, tweetID, index, createdAt))
}

// MediaFileName returns the unescaped file name MediaURL points at,
// e.g. alice_123_photo_1_20230501.jpg.
func (d *Deriver) MediaFileName(screenName string, tweetID string, index int, createdAt time.Time) string {
	var b strings.Builder
	b.WriteString(token(screenName))
	b.WriteByte('_')
	b.WriteString(tweetID)
	b.WriteString("_photo_")
	b.WriteString(strconv.Itoa(index + 1))
	b.WriteByte('_')
	b.WriteString(createdAt.In(d.loc).Format("20060102"))
	b.WriteString(".jpg")
	return b.String()
}

func token(name string) string {
	if s := naming.Sanitize(name); s != "" {
		return s
	}
	return FallbackToken
}

const upperhex = "0123456789ABCDEF"

// EscapeComponent percent-encodes s the way browsers' encodeURIComponent does:
// only ASCII letters, digits and -_.!~*'() are left as is.
func EscapeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldKeep(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func shouldKeep(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
