package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	Media   MediaConfig   `yaml:"media"`
	Display DisplayConfig `yaml:"display"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host           string        `yaml:"host" envconfig:"SERVER_HOST"`
	Port           int           `yaml:"port" envconfig:"SERVER_PORT"`
	ReadTimeout    time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
	RequestTimeout time.Duration `yaml:"request_timeout" envconfig:"SERVER_REQUEST_TIMEOUT"`
}

// DataConfig describes where the tweet export document lives.
type DataConfig struct {
	// Source is a local path or an http(s) URL.
	Source   string        `yaml:"source" envconfig:"DATA_SOURCE"`
	Timeout  time.Duration `yaml:"timeout" envconfig:"DATA_TIMEOUT"`
	MaxBytes int64         `yaml:"max_bytes" envconfig:"DATA_MAX_BYTES"`

	// Retry settings for remote sources. One attempt (the default) disables retries.
	RetryAttempts int           `yaml:"retry_attempts" envconfig:"DATA_RETRY_ATTEMPTS"`
	RetryDelay    time.Duration `yaml:"retry_delay" envconfig:"DATA_RETRY_DELAY"`
	MaxRetryDelay time.Duration `yaml:"max_retry_delay" envconfig:"DATA_MAX_RETRY_DELAY"`
}

// MediaConfig holds the external image hosts used for derived URLs.
type MediaConfig struct {
	AvatarHost string `yaml:"avatar_host" envconfig:"AVATAR_HOST"`
	MediaHost  string `yaml:"media_host" envconfig:"MEDIA_HOST"`
}

// DisplayConfig controls how timestamps are rendered.
type DisplayConfig struct {
	// TimeZone is an IANA zone name, or "Local" for the host zone.
	TimeZone string `yaml:"time_zone" envconfig:"DISPLAY_TIMEZONE"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           9848,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			RequestTimeout: time.Minute,
		},
		Data: DataConfig{
			Source:        "twitter.json",
			Timeout:       30 * time.Second,
			MaxBytes:      256 << 20,
			RetryAttempts: 1,
			RetryDelay:    500 * time.Millisecond,
			MaxRetryDelay: 5 * time.Second,
		},
		Media: MediaConfig{
			AvatarHost: "r4.dlozs.top",
			MediaHost:  "r3.dlozs.top",
		},
		Display: DisplayConfig{
			TimeZone: "Local",
		},
	}
}

// Load reads configuration from defaults, a .env file, a YAML file and
// environment variables, in increasing order of precedence.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if err := loadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// Load from YAML file if provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// Override with environment variables
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// loadDotEnv exports variables from path without overriding ones already set.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// Validate checks that required configuration values are set.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Data.Source == "" {
		return fmt.Errorf("DATA_SOURCE is required")
	}
	if c.Data.MaxBytes <= 0 {
		return fmt.Errorf("DATA_MAX_BYTES must be positive")
	}
	if c.Data.RetryAttempts < 0 {
		return fmt.Errorf("DATA_RETRY_ATTEMPTS must not be negative")
	}
	if err := validateHost("AVATAR_HOST", c.Media.AvatarHost); err != nil {
		return err
	}
	if err := validateHost("MEDIA_HOST", c.Media.MediaHost); err != nil {
		return err
	}
	if _, err := c.Display.Location(); err != nil {
		return err
	}
	return nil
}

func validateHost(name, host string) error {
	if host == "" {
		return fmt.Errorf("%s is required", name)
	}
	if strings.Contains(host, "://") || strings.ContainsAny(host, "/?# ") {
		return fmt.Errorf("%s must be a bare host name, got %q", name, host)
	}
	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsRemote reports whether the data source is fetched over HTTP.
func (c *DataConfig) IsRemote() bool {
	s := strings.ToLower(c.Source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Location resolves the display time zone.
func (c *DisplayConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" || strings.EqualFold(c.TimeZone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("DISPLAY_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}
