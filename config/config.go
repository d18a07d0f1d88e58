// Package config provides configuration management for labsite.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/labsite/labsite/publication"
	"github.com/labsite/labsite/roster"
)

// Configuration validation errors.
var (
	ErrMissingResources   = errors.New("resources is required")
	ErrInvalidResourceURL = errors.New("resources URL must be http or https with a host")
	ErrMissingRosterPath  = errors.New("paths.roster is required")
	ErrMissingCatalogPath = errors.New("paths.publications is required")
	ErrMissingServerAddr  = errors.New("server.addr is required")
	ErrInvalidReadTimeout = errors.New("server.read_timeout_sec must be non-negative")
	ErrInvalidHTTPTimeout = errors.New("http.timeout_sec must be non-negative")
	ErrInvalidLogLevel    = errors.New("log_level must be one of: debug, info, warn, error")
)

// Environment variables that override the file.
const (
	EnvResources  = "LABSITE_RESOURCES"
	EnvServerAddr = "SERVER_ADDR"
)

// Config represents the complete labsite configuration.
type Config struct {
	// Resources is the resource root: a local directory or an http(s) URL.
	Resources string `yaml:"resources"`
	// BaseURL is prepended to photo and icon paths in rendered pages.
	BaseURL  string       `yaml:"base_url"`
	Paths    PathsConfig  `yaml:"paths"`
	Server   ServerConfig `yaml:"server"`
	HTTP     HTTPConfig   `yaml:"http"`
	LogLevel string       `yaml:"log_level"`
}

// PathsConfig locates the data files below the resource root.
type PathsConfig struct {
	Roster       string `yaml:"roster"`
	Publications string `yaml:"publications"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	ReadTimeoutSec int    `yaml:"read_timeout_sec"`
}

// HTTPConfig contains settings for fetching remote resources.
type HTTPConfig struct {
	// TimeoutSec is the client timeout; 0 means none.
	TimeoutSec int `yaml:"timeout_sec"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Resources: "Resources",
		Paths: PathsConfig{
			Roster:       roster.RosterPath,
			Publications: publication.CatalogPath,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			ReadTimeoutSec: 10,
		},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvResources); v != "" {
		c.Resources = v
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Server.Addr = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Resources) == "" {
		return ErrMissingResources
	}
	if c.IsRemote() {
		u, err := url.Parse(c.Resources)
		if err != nil || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidResourceURL, c.Resources)
		}
	}

	if c.Paths.Roster == "" {
		return ErrMissingRosterPath
	}
	if c.Paths.Publications == "" {
		return ErrMissingCatalogPath
	}

	if c.Server.Addr == "" {
		return ErrMissingServerAddr
	}
	if c.Server.ReadTimeoutSec < 0 {
		return ErrInvalidReadTimeout
	}
	if c.HTTP.TimeoutSec < 0 {
		return ErrInvalidHTTPTimeout
	}

	if c.LogLevel != "" {
		switch strings.ToLower(c.LogLevel) {
		case "debug", "info", "warn", "warning", "error":
		default:
			return ErrInvalidLogLevel
		}
	}

	return nil
}

// IsRemote reports whether resources are fetched over HTTP.
func (c *Config) IsRemote() bool {
	lower := strings.ToLower(c.Resources)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// ReadTimeout returns the server read timeout.
func (s *ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSec) * time.Second
}

// Timeout returns the client timeout.
func (h *HTTPConfig) Timeout() time.Duration {
	return time.Duration(h.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Resources: %s, Server: %s}", c.Resources, c.Server.Addr)
}
