// xgallery TUI - terminal browser for the tweet gallery.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/iconidentify/xgallery/cmd/xgallery-tui/internal/config"
	"github.com/iconidentify/xgallery/cmd/xgallery-tui/internal/ui"
	galleryconfig "github.com/iconidentify/xgallery/internal/config"
	"github.com/iconidentify/xgallery/internal/gallery"
)

func main() {
	cfg := config.Load()

	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewTextHandler(logOut, nil))
	slog.SetDefault(logger)

	galleryCfg, err := galleryconfig.Load(cfg.GalleryConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Source != "" {
		galleryCfg.Data.Source = cfg.Source
	}

	svc, err := gallery.NewFromConfig(galleryCfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing TUI: %v\n", err)
		os.Exit(1)
	}

	err = ui.NewApp(cfg, svc).Run()
	svc.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
