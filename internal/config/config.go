// Package config loads the client configuration: defaults, then an optional
// YAML file, then environment overrides (a .env file is honored if present).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config is the client configuration.
type Config struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	SessionPath    string `yaml:"session_path"`
}

// DefaultBaseURL is the production Vendora API.
const DefaultBaseURL = "https://api.vendora.app/api/v1"

// Environment overrides.
const (
	EnvBaseURL     = "VENDORA_API_URL"
	EnvSessionPath = "VENDORA_SESSION"
	EnvTimeout     = "VENDORA_TIMEOUT_SECONDS"
)

// Default returns the built-in configuration.
func Default() Config {
	sessionPath := "vendora.sqlite3"
	if home, err := os.UserHomeDir(); err == nil {
		sessionPath = filepath.Join(home, ".vendora", "session.sqlite3")
	}
	return Config{
		BaseURL:        DefaultBaseURL,
		TimeoutSeconds: 10,
		SessionPath:    sessionPath,
	}
}

// Load builds the configuration. A missing YAML file is fine when path is
// empty (no file requested); a named file that cannot be read is an error.
func Load(path string) (Config, error) {
	// Side effect only: a .env file, if present, populates the environment.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvSessionPath); v != "" {
		cfg.SessionPath = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid %s: %q", EnvTimeout, v)
		}
		cfg.TimeoutSeconds = n
	}

	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 10
	}
	return cfg, nil
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
