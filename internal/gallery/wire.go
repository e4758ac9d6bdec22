package gallery

import (
	"fmt"
	"log/slog"

	"github.com/iconidentify/xgallery/internal/config"
	"github.com/iconidentify/xgallery/internal/loader"
	"github.com/iconidentify/xgallery/internal/mediaurl"
	"github.com/iconidentify/xgallery/internal/timefmt"
)

// NewFromConfig assembles a Service from loaded configuration.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Service, error) {
	loc, err := cfg.Display.Location()
	if err != nil {
		return nil, fmt.Errorf("display time zone: %w", err)
	}

	builder := NewBuilder(
		mediaurl.NewDeriver(cfg.Media, loc),
		timefmt.NewFormatter(loc),
		logger,
	)
	return NewService(loader.New(cfg.Data, logger), builder, logger), nil
}
