package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds user preferences loaded from the TOML config file.
// Command-line flags override config values, which override defaults.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
}

// RenderConfig configures default render output.
type RenderConfig struct {
	// Format is the default output format: dot, svg, or json.
	Format string `toml:"format"`
	// Detailed includes step metadata in node labels.
	Detailed bool `toml:"detailed"`
}

// CacheConfig configures the artifact cache.
type CacheConfig struct {
	// Disabled turns the artifact cache off entirely.
	Disabled bool `toml:"disabled"`
	// TTLDays is how long rendered artifacts stay valid. Zero means the
	// default of 30 days.
	TTLDays int `toml:"ttl_days"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Render: RenderConfig{Format: "svg"},
		Cache:  CacheConfig{TTLDays: 30},
	}
}

// LoadConfig reads the config file at path on top of the defaults.
// A missing file or empty path just yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Cache.TTLDays <= 0 {
		cfg.Cache.TTLDays = 30
	}
	if cfg.Render.Format == "" {
		cfg.Render.Format = "svg"
	}
	return cfg, nil
}
