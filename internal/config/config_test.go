package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("failed to parse default config: %v", err)
	}

	if len(cfg.Sources.Feeds) == 0 {
		t.Error("expected feeds to be populated")
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}

	if cfg.Generation.NewsletterPath != "/generate-newsletter" {
		t.Errorf("unexpected newsletter path %q", cfg.Generation.NewsletterPath)
	}

	if cfg.Validation.MinContentLength != 100 {
		t.Errorf("expected min content length 100, got %d", cfg.Validation.MinContentLength)
	}
}

func TestParseMinimalConfig(t *testing.T) {
	data := []byte(`
generation:
  base_url: "http://intern.bonn.de:4000"
server:
  port: 9000
`)
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("failed to parse minimal config: %v", err)
	}

	if cfg.Generation.BaseURL != "http://intern.bonn.de:4000" {
		t.Errorf("unexpected base url %q", cfg.Generation.BaseURL)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	// Defaults should still be set for unspecified fields
	if cfg.Generation.InternalPath != "/generate-internal" {
		t.Errorf("expected default internal path, got %q", cfg.Generation.InternalPath)
	}
	if cfg.Validation.DebounceMS != 1000 {
		t.Errorf("expected default debounce, got %d", cfg.Validation.DebounceMS)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, DefaultConfigYAML, 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if len(cfg.Sources.Feeds) == 0 {
		t.Error("expected feeds to be populated from file")
	}
}

func TestGetDataDir(t *testing.T) {
	cfg := &Config{}
	defaultDir := cfg.GetDataDir()
	if defaultDir == "" {
		t.Error("expected non-empty default data dir")
	}

	cfg.Output.DataDir = "/custom/path"
	if cfg.GetDataDir() != "/custom/path" {
		t.Errorf("expected '/custom/path', got %q", cfg.GetDataDir())
	}
	if cfg.DatabasePath() != filepath.Join("/custom/path", "taxletter.db") {
		t.Errorf("unexpected database path %q", cfg.DatabasePath())
	}
}
