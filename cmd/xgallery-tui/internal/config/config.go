// Package config provides configuration management for the xgallery TUI.
package config

import (
	"os"
	"time"
)

// Config holds the TUI configuration.
type Config struct {
	// Path to the gallery config file shared with the server
	GalleryConfig string

	// Document source override; empty keeps the gallery config value
	Source string

	// Log file; empty discards logs so the screen stays clean
	LogFile string

	// Refresh intervals
	AutoRefresh time.Duration
	LoadTimeout time.Duration
}

// Load returns configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		GalleryConfig: getEnv("XGALLERY_CONFIG", ""),
		Source:        getEnv("XGALLERY_SOURCE", ""),
		LogFile:       getEnv("XGALLERY_TUI_LOG", ""),
		AutoRefresh:   getDuration("XGALLERY_TUI_REFRESH", 0),
		LoadTimeout:   getDuration("XGALLERY_TUI_LOAD_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d >= 0 {
			return d
		}
	}
	return defaultVal
}
