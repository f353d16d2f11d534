package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("expected default base URL, got %q", cfg.BaseURL)
	}
	if cfg.Timeout() != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.Timeout())
	}
	if cfg.SessionPath == "" {
		t.Error("expected a default session path")
	}
}

func TestYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "base_url: http://localhost:8000/api/v1\ntimeout_seconds: 5\nsession_path: /tmp/s.sqlite3\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8000/api/v1" {
		t.Errorf("unexpected base URL: %q", cfg.BaseURL)
	}
	if cfg.TimeoutSeconds != 5 {
		t.Errorf("expected timeout 5, got %d", cfg.TimeoutSeconds)
	}
	if cfg.SessionPath != "/tmp/s.sqlite3" {
		t.Errorf("unexpected session path: %q", cfg.SessionPath)
	}
}

func TestMissingNamedFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing named config file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvBaseURL, "http://127.0.0.1:9000/api/v1")
	t.Setenv(EnvTimeout, "3")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://127.0.0.1:9000/api/v1" {
		t.Errorf("env override ignored: %q", cfg.BaseURL)
	}
	if cfg.Timeout() != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", cfg.Timeout())
	}

	t.Setenv(EnvTimeout, "zero")
	if _, err := Load(""); err == nil {
		t.Error("expected error for non-numeric timeout")
	}
}
