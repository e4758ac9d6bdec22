package loader

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/iconidentify/xgallery/internal/domain"
	"github.com/iconidentify/xgallery/internal/metrics"
)

// utf8BOM is written by some Windows editors ahead of the document.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode reads a JSON array of tweet records.
// Fields are decoded leniently: missing or mistyped fields take their zero
// value, and array elements that are not objects are skipped.
func Decode(r io.Reader, logger *slog.Logger) ([]domain.RawTweet, error) {
	if logger == nil {
		logger = slog.Default()
	}

	br := bufio.NewReader(r)
	if bom, _ := br.Peek(len(utf8BOM)); bytes.Equal(bom, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	var elems []json.RawMessage
	dec := json.NewDecoder(br)
	if err := dec.Decode(&elems); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, domain.ErrNotAnArray
		}
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("decode document: trailing data after array")
	}
	if elems == nil {
		// top-level null
		return nil, domain.ErrNotAnArray
	}

	tweets := make([]domain.RawTweet, 0, len(elems))
	for i, raw := range elems {
		tweet, ok := decodeRecord(raw)
		if !ok {
			logger.Warn("skipping non-object record", "index", i)
			metrics.IncSkipped("not_object")
			continue
		}
		tweets = append(tweets, tweet)
	}
	return tweets, nil
}

func decodeRecord(raw json.RawMessage) (domain.RawTweet, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return domain.RawTweet{}, false
	}

	return domain.RawTweet{
		ScreenName:    flexString(fields["screen_name"]),
		Name:          flexString(fields["name"]),
		ID:            domain.TweetID(flexString(fields["id"])),
		CreatedAt:     flexString(fields["created_at"]),
		FullText:      flexString(fields["full_text"]),
		Media:         flexArray(fields["media"]),
		ReplyCount:    flexInt(fields["reply_count"]),
		RetweetCount:  flexInt(fields["retweet_count"]),
		FavoriteCount: flexInt(fields["favorite_count"]),
	}, true
}

// flexString returns strings as is and numbers and booleans in their literal
// form. Absent, null, object and array values yield "".
func flexString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '{', '[', 'n':
		return ""
	default:
		// number, true or false; the literal keeps large IDs exact
		return string(raw)
	}
}

// flexInt accepts JSON numbers and numeric strings. Anything else yields 0.
func flexInt(raw json.RawMessage) int64 {
	s := flexString(raw)
	if s == "" {
		return 0
	}
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}

// flexArray returns the elements of a JSON array. Non-arrays yield nil.
func flexArray(raw json.RawMessage) []json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}
