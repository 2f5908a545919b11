// Package config loads taskdeck settings from defaults, an optional .env
// file and TASKDECK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvAPIURL  = "TASKDECK_API_URL"
	EnvTimeout = "TASKDECK_TIMEOUT"
	EnvAddr    = "TASKDECK_ADDR"
	EnvDB      = "TASKDECK_DB"
	EnvLogFile = "TASKDECK_LOG_FILE"
	EnvDebug   = "TASKDECK_DEBUG"
)

// Defaults
const (
	DefaultAPIURL  = "http://localhost:5000"
	DefaultTimeout = 10 * time.Second
	DefaultAddr    = ":5000"
	DefaultDBPath  = "tasks.db"
)

// Config holds all configuration options.
type Config struct {
	API    APIConfig
	Server ServerConfig
	Log    LogConfig
}

// APIConfig describes how to reach the task backend.
type APIConfig struct {
	BaseURL string        `env:"TASKDECK_API_URL"`
	Timeout time.Duration `env:"TASKDECK_TIMEOUT"`
}

// ServerConfig configures the bundled reference backend.
type ServerConfig struct {
	Addr   string `env:"TASKDECK_ADDR"`
	DBPath string `env:"TASKDECK_DB"`
}

// LogConfig controls where logs go.
type LogConfig struct {
	File  string `env:"TASKDECK_LOG_FILE"`
	Debug bool   `env:"TASKDECK_DEBUG"`
}

// NewConfig returns a configuration populated with defaults.
func NewConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultAPIURL,
			Timeout: DefaultTimeout,
		},
		Server: ServerConfig{
			Addr:   DefaultAddr,
			DBPath: DefaultDBPath,
		},
	}
}

// Load builds a Config from defaults, the given .env files (missing files
// are ignored) and the environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	c := NewConfig()
	if err := c.LoadFromEnvironment(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFromEnvironment overrides fields from TASKDECK_* variables.
func (c *Config) LoadFromEnvironment() error {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &ConfigError{Field: "api.timeout", Message: fmt.Sprintf("invalid duration %q", v)}
		}
		c.API.Timeout = d
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvDB); v != "" {
		c.Server.DBPath = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return &ConfigError{Field: "log.debug", Message: fmt.Sprintf("invalid boolean %q", v)}
		}
		c.Log.Debug = b
	}
	return nil
}

// Validate checks the configuration for obviously broken values.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return &ConfigError{Field: "api.base_url", Message: "base URL cannot be empty"}
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ConfigError{Field: "api.base_url", Message: fmt.Sprintf("base URL must be an http(s) URL, got %q", c.API.BaseURL)}
	}
	if c.API.Timeout <= 0 {
		return &ConfigError{Field: "api.timeout", Message: "timeout must be positive"}
	}
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	if c.Server.DBPath == "" {
		return &ConfigError{Field: "server.db_path", Message: "database path cannot be empty"}
	}
	return nil
}

// APIBaseURL returns the base URL without a trailing slash.
func (c *Config) APIBaseURL() string {
	return strings.TrimRight(c.API.BaseURL, "/")
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
