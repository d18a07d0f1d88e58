package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "labsite.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

const validConfigYAML = `
resources: "https://lab.example.org/Resources"
base_url: "/resources/"
paths:
  roster: "people/people.txt"
  publications: "pub/ExPub.txt"
server:
  addr: ":9000"
  read_timeout_sec: 5
http:
  timeout_sec: 15
log_level: "debug"
`

func TestLoad_Valid(t *testing.T) {
	t.Setenv(EnvResources, "")
	t.Setenv(EnvServerAddr, "")

	cfg, err := Load(createTempConfigFile(t, validConfigYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Resources != "https://lab.example.org/Resources" {
		t.Errorf("Resources = %q", cfg.Resources)
	}
	if !cfg.IsRemote() {
		t.Error("IsRemote() = false, want true")
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":9000")
	}
	if cfg.Server.ReadTimeout() != 5*time.Second {
		t.Errorf("ReadTimeout() = %v, want 5s", cfg.Server.ReadTimeout())
	}
	if cfg.HTTP.Timeout() != 15*time.Second {
		t.Errorf("Timeout() = %v, want 15s", cfg.HTTP.Timeout())
	}
	if cfg.BaseURL != "/resources/" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv(EnvResources, "")
	t.Setenv(EnvServerAddr, "")

	cfg, err := Load(createTempConfigFile(t, "resources: ./site\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Paths.Roster != "people/people.txt" || cfg.Paths.Publications != "pub/ExPub.txt" {
		t.Errorf("Paths = %+v, want defaults", cfg.Paths)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}
	if cfg.HTTP.Timeout() != 0 {
		t.Errorf("HTTP timeout = %v, want none", cfg.HTTP.Timeout())
	}
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv(EnvResources, "/srv/lab")
	t.Setenv(EnvServerAddr, "127.0.0.1:3000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Resources != "/srv/lab" {
		t.Errorf("Resources = %q, want env override", cfg.Resources)
	}
	if cfg.Server.Addr != "127.0.0.1:3000" {
		t.Errorf("Server.Addr = %q, want env override", cfg.Server.Addr)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv(EnvResources, "")
	t.Setenv(EnvServerAddr, "")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of missing file succeeded")
	}
	if _, err := Load(createTempConfigFile(t, "server: [unclosed")); err == nil {
		t.Error("Load() of invalid YAML succeeded")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"default", func(c *Config) {}, nil},
		{"no resources", func(c *Config) { c.Resources = " " }, ErrMissingResources},
		{"url without host", func(c *Config) { c.Resources = "https://" }, ErrInvalidResourceURL},
		{"no roster", func(c *Config) { c.Paths.Roster = "" }, ErrMissingRosterPath},
		{"no catalog", func(c *Config) { c.Paths.Publications = "" }, ErrMissingCatalogPath},
		{"no addr", func(c *Config) { c.Server.Addr = "" }, ErrMissingServerAddr},
		{"negative read timeout", func(c *Config) { c.Server.ReadTimeoutSec = -1 }, ErrInvalidReadTimeout},
		{"negative http timeout", func(c *Config) { c.HTTP.TimeoutSec = -1 }, ErrInvalidHTTPTimeout},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, ErrInvalidLogLevel},
		{"warning log level", func(c *Config) { c.LogLevel = "WARNING" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}
