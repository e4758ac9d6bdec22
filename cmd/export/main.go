package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iconidentify/xgallery/internal/config"
	"github.com/iconidentify/xgallery/internal/export"
	"github.com/iconidentify/xgallery/internal/gallery"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse flags
	dest := flag.String("dest", "", "Destination directory for the export (required)")
	configPath := flag.String("config", "", "Path to config file")
	source := flag.String("source", "", "Override the tweet document path or URL")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("xgallery-export %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	if *dest == "" {
		fmt.Fprintln(os.Stderr, "Error: --dest flag is required")
		fmt.Fprintln(os.Stderr, "Usage: xgallery-export --dest /path/to/site")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("xgallery export",
		"version", Version,
		"dest", *dest,
	)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *source != "" {
		cfg.Data.Source = *source
	}

	gallerySvc, err := gallery.NewFromConfig(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize gallery", "error", err)
		os.Exit(1)
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nExport cancelled")
		cancel()
	}()

	result, err := export.NewExporter(gallerySvc, logger).Export(ctx, export.Options{DestPath: *dest})
	gallerySvc.Close()
	if err != nil {
		if ctx.Err() != nil {
			logger.Info("export was cancelled")
			os.Exit(130)
		}
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}

	// Print summary
	fmt.Println()
	fmt.Println("Export Complete!")
	fmt.Println("----------------")
	fmt.Printf("Export ID:   %s\n", result.ExportID)
	fmt.Printf("Destination: %s\n", result.DestPath)
	fmt.Printf("Users:       %d\n", result.UsersCount)
	fmt.Printf("Tweets:      %d\n", result.TweetsCount)
	fmt.Printf("Media links: %d\n", result.MediaCount)
	fmt.Println()
	fmt.Println(viewerHint(result.DestPath))
	fmt.Println()
}

// viewerHint tells the user how to browse an export. The pages fetch
// gallery.json, which browsers refuse over file://, so they need a server.
func viewerHint(dest string) string {
	return fmt.Sprintf("Browse the gallery with: xgallery-viewer --dir %s", dest)
}
