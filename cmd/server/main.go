package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/iconidentify/xgallery/internal/api"
	"github.com/iconidentify/xgallery/internal/api/handler"
	"github.com/iconidentify/xgallery/internal/config"
	"github.com/iconidentify/xgallery/internal/gallery"
	"github.com/iconidentify/xgallery/internal/metrics"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *showVersion {
		fmt.Printf("xgallery %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	// Setup logger
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var logHandler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		logHandler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	logger.Info("starting xgallery",
		"version", Version,
		"build_time", BuildTime,
	)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize services
	gallerySvc, err := gallery.NewFromConfig(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize gallery", "error", err)
		os.Exit(1)
	}

	// Initialize handlers
	galleryHandler := handler.NewGalleryHandler(gallerySvc, logger)
	healthHandler := handler.NewHealthHandler(gallerySvc)
	uiHandler := handler.NewUIHandler()

	// Setup router
	router := api.NewRouter(galleryHandler, healthHandler, uiHandler, metrics.Handler(), cfg.Server.RequestTimeout)

	// Setup HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting HTTP server",
			"addr", srv.Addr,
			"source", gallerySvc.Source(),
		)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	gallerySvc.Close()

	logger.Info("server stopped")
}
