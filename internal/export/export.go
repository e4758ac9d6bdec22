// Package export writes a self-contained, browsable copy of the gallery.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iconidentify/xgallery/internal/domain"
	"github.com/iconidentify/xgallery/internal/mediaurl"
	"github.com/iconidentify/xgallery/internal/naming"
	"github.com/iconidentify/xgallery/pkg/ui"
)

// Source supplies the views to export.
type Source interface {
	Snapshot(ctx context.Context) ([]domain.UserSummary, map[string][]domain.TweetView)
	Source() string
}

// Options controls an export run.
type Options struct {
	DestPath string
}

// Result summarizes a finished export.
type Result struct {
	ExportID    string    `json:"export_id"`
	DestPath    string    `json:"-"`
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generated_at"`
	UsersCount  int       `json:"users"`
	TweetsCount int       `json:"tweets"`
	MediaCount  int       `json:"media"`
}

// UsersFile is the layout of data/users.json.
type UsersFile struct {
	Users     []domain.UserSummary `json:"users"`
	Timelines map[string]string    `json:"timelines"`
}

// TimelineFile is the layout of one data/timelines/<name>.json file.
type TimelineFile struct {
	ScreenName string             `json:"screen_name"`
	Tweets     []domain.TweetView `json:"tweets"`
}

// Exporter writes gallery snapshots to disk.
type Exporter struct {
	source Source
	logger *slog.Logger
	now    func() time.Time
}

// NewExporter creates an exporter reading from source.
func NewExporter(source Source, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// Export loads the document once and writes pages, data files and a manifest under opts.DestPath.
func (e *Exporter) Export(ctx context.Context, opts Options) (*Result, error) {
	dest, err := cleanDestPath(opts.DestPath)
	if err != nil {
		return nil, err
	}

	e.logger.Info("starting export", "dest", dest, "source", e.source.Source())

	timelinesDir := filepath.Join(dest, "data", "timelines")
	if err := os.MkdirAll(timelinesDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	users, timelines := e.source.Snapshot(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		ExportID:    uuid.New().String(),
		DestPath:    dest,
		Source:      e.source.Source(),
		GeneratedAt: e.now().UTC(),
		UsersCount:  len(users),
	}

	index := UsersFile{
		Users:     users,
		Timelines: make(map[string]string, len(users)),
	}
	files := timelineFileNames(users)

	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		views := timelines[u.ScreenName]
		if views == nil {
			views = []domain.TweetView{}
		}
		rel := "data/timelines/" + files[u.ScreenName]
		if err := writeJSON(filepath.Join(dest, filepath.FromSlash(rel)), TimelineFile{ScreenName: u.ScreenName, Tweets: views}); err != nil {
			return nil, fmt.Errorf("write timeline for %s: %w", u.ScreenName, err)
		}
		index.Timelines[u.ScreenName] = rel

		result.TweetsCount += len(views)
		for _, v := range views {
			result.MediaCount += len(v.MediaURLs)
		}
	}

	if err := writeJSON(filepath.Join(dest, "data", "users.json"), index); err != nil {
		return nil, fmt.Errorf("write users.json: %w", err)
	}

	if err := writePages(dest); err != nil {
		return nil, fmt.Errorf("write pages: %w", err)
	}

	if err := writeJSON(filepath.Join(dest, "manifest.json"), result); err != nil {
		return nil, fmt.Errorf("write manifest.json: %w", err)
	}

	e.logger.Info("export complete",
		"export_id", result.ExportID,
		"users", result.UsersCount,
		"tweets", result.TweetsCount,
		"media", result.MediaCount,
	)

	return result, nil
}

// timelineFileNames assigns each screen name a unique file name derived from Sanitize.
// Names that sanitize to the same token get _2, _3, ... in user order.
func timelineFileNames(users []domain.UserSummary) map[string]string {
	names := make(map[string]string, len(users))
	taken := make(map[string]bool, len(users))
	for _, u := range users {
		base := naming.Sanitize(u.ScreenName)
		if base == "" {
			base = mediaurl.FallbackToken
		}
		name := base
		for n := 2; taken[strings.ToLower(name)]; n++ {
			name = base + "_" + strconv.Itoa(n)
		}
		taken[strings.ToLower(name)] = true
		names[u.ScreenName] = name + ".json"
	}
	return names
}

func writePages(dest string) error {
	pages := map[string][]byte{
		"index.html": ui.WithOfflineMode(ui.IndexHTML),
		"user.html":  ui.WithOfflineMode(ui.UserHTML),
		"styles.css": ui.StylesCSS,
	}
	for name, data := range pages {
		if err := writeFileSync(filepath.Join(dest, name), data, 0644); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writeFileSync(path, data, 0644)
}

func writeFileSync(path string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// cleanDestPath expands ~ and normalizes the destination.
func cleanDestPath(dest string) (string, error) {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return "", fmt.Errorf("destination path is required")
	}
	if strings.HasPrefix(dest, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			dest = filepath.Join(home, dest[2:])
		}
	}
	dest = filepath.Clean(dest)

	if info, err := os.Stat(dest); err == nil && !info.IsDir() {
		return "", fmt.Errorf("destination is not a directory: %s", dest)
	}
	return dest, nil
}
