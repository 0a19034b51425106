package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Render.Format != "svg" {
		t.Errorf("format = %q, want svg", cfg.Render.Format)
	}
	if cfg.Cache.TTLDays != 30 {
		t.Errorf("ttl = %d, want 30", cfg.Cache.TTLDays)
	}
	if cfg.Cache.Disabled {
		t.Error("cache disabled by default")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[render]
format = "dot"
detailed = true

[cache]
disabled = true
ttl_days = 7
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Render.Format != "dot" || !cfg.Render.Detailed {
		t.Errorf("render = %+v", cfg.Render)
	}
	if !cfg.Cache.Disabled || cfg.Cache.TTLDays != 7 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
}

func TestLoadConfigPartialFile(t *testing.T) {
	// Omitted keys keep their defaults.
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[render]\nformat = \"json\"\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Render.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Render.Format)
	}
	if cfg.Cache.TTLDays != 30 {
		t.Errorf("ttl = %d, want 30", cfg.Cache.TTLDays)
	}
}

func TestLoadConfigBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err == nil {
		t.Error("parse error not reported")
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults on parse error", cfg)
	}
}
