// Package timefmt parses tweet timestamps and renders them for display.
package timefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iconidentify/xgallery/internal/domain"
)

// TwitterLayout is the created_at layout used by Twitter's v1.1 API and archive exports.
const TwitterLayout = "Mon Jan 02 15:04:05 -0700 2006"

// zoned layouts carry their own offset.
var zonedLayouts = []string{
	TwitterLayout,
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	time.RubyDate,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02T15:04:05Z0700",
}

// local layouts are interpreted in the formatter's location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
}

// Formatter parses and formats timestamps in a fixed location.
type Formatter struct {
	loc *time.Location
}

// NewFormatter creates a Formatter for loc; nil means time.Local.
func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{loc: loc}
}

// Location returns the formatter's display location.
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// Parse converts a created_at value into an instant.
// A bare date (2006-01-02) is taken as UTC midnight, as browsers do.
// All-digit values are epoch milliseconds.
func (f *Formatter) Parse(createdAt string) (time.Time, error) {
	s := strings.TrimSpace(createdAt)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty value: %w", domain.ErrInvalidTimestamp)
	}

	if isDigits(s) {
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse %q: %w", createdAt, domain.ErrInvalidTimestamp)
		}
		return time.UnixMilli(ms), nil
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, f.loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("parse %q: %w", createdAt, domain.ErrInvalidTimestamp)
}

// Format renders t in zh-CN long form, e.g. "2023年5月1日 18:05".
func (f *Formatter) Format(t time.Time) string {
	lt := t.In(f.loc)
	return fmt.Sprintf("%d年%d月%d日 %02d:%02d", lt.Year(), int(lt.Month()), lt.Day(), lt.Hour(), lt.Minute())
}

// FormatString parses createdAt and formats it.
func (f *Formatter) FormatString(createdAt string) (string, error) {
	t, err := f.Parse(createdAt)
	if err != nil {
		return "", err
	}
	return f.Format(t), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
