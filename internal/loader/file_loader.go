package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/iconidentify/xgallery/internal/config"
	"github.com/iconidentify/xgallery/internal/domain"
)

// FileLoader reads the tweet document from the local filesystem.
type FileLoader struct {
	path     string
	maxBytes int64
	logger   *slog.Logger
	shared   *sharedLoad
}

// NewFileLoader creates a loader for the path in cfg.Source.
func NewFileLoader(cfg config.DataConfig, logger *slog.Logger) *FileLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileLoader{
		path:     cfg.Source,
		maxBytes: cfg.MaxBytes,
		logger:   logger,
		shared:   newSharedLoad("file", cfg.Source, logger),
	}
}

// Source returns the document path.
func (l *FileLoader) Source() string {
	return l.path
}

// Load reads and decodes the document. Failures resolve to an empty slice.
func (l *FileLoader) Load(ctx context.Context) []domain.RawTweet {
	return l.shared.load(ctx, l.fetch)
}

func (l *FileLoader) fetch(ctx context.Context) ([]domain.RawTweet, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailed, err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil {
		if info.IsDir() {
			return nil, fmt.Errorf("%w: %s is a directory", domain.ErrLoadFailed, l.path)
		}
		if l.maxBytes > 0 && info.Size() > l.maxBytes {
			return nil, fmt.Errorf("%w: file size %d", domain.ErrDocumentTooLarge, info.Size())
		}
	}

	body, err := readLimited(f, l.maxBytes)
	if err != nil {
		return nil, err
	}

	return Decode(body, l.logger)
}

// Ping checks that the document exists and is a regular file.
func (l *FileLoader) Ping(ctx context.Context) error {
	info, err := os.Stat(l.path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", l.path)
	}
	return nil
}

// readLimited reads r fully, failing if it holds more than limit bytes.
// limit <= 0 disables it.
func readLimited(r io.Reader, limit int64) (io.Reader, error) {
	if limit <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read document: %w: %w", domain.ErrLoadFailed, err)
		}
		return bytes.NewReader(data), nil
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read document: %w: %w", domain.ErrLoadFailed, err)
	}
	if int64(len(data)) > limit {
		return nil, domain.ErrDocumentTooLarge
	}
	return bytes.NewReader(data), nil
}

// Close cancels any read in flight.
func (l *FileLoader) Close() {
	l.shared.close()
}
