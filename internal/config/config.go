package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/spinesniff/internal/logging"
	"github.com/danmuck/spinesniff/internal/skeleton"
)

// Config is the resolved spinesniff configuration.
type Config struct {
	Detector skeleton.Config
	Logging  logging.Config
}

type fileConfig struct {
	Detector struct {
		AtlasSuffix  string `toml:"atlas_suffix"`
		TextSuffix   string `toml:"text_suffix"`
		BinarySuffix string `toml:"binary_suffix"`
		MaxAliasHops int    `toml:"max_alias_hops"`
	} `toml:"detector"`
	Metrics struct {
		Enabled bool `toml:"enabled"`
	} `toml:"metrics"`
	Logging struct {
		Level     string `toml:"level"`
		Timestamp bool   `toml:"timestamp"`
		NoColor   bool   `toml:"no_color"`
	} `toml:"logging"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Detector: skeleton.DefaultConfig(),
		Logging:  logging.DefaultConfig(logging.ProfileRuntime),
	}
}

// Load reads a TOML file and overlays defined keys onto Default.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	return resolve(raw, meta)
}

// Parse is Load for in-memory TOML.
func Parse(data string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed: %w", err)
	}
	return resolve(raw, meta)
}

func resolve(raw fileConfig, meta toml.MetaData) (Config, error) {
	cfg := Default()

	if meta.IsDefined("detector", "atlas_suffix") {
		cfg.Detector.AtlasSuffix = strings.TrimSpace(raw.Detector.AtlasSuffix)
	}
	if meta.IsDefined("detector", "text_suffix") {
		cfg.Detector.TextSuffix = strings.TrimSpace(raw.Detector.TextSuffix)
	}
	if meta.IsDefined("detector", "binary_suffix") {
		cfg.Detector.BinarySuffix = strings.TrimSpace(raw.Detector.BinarySuffix)
	}
	if meta.IsDefined("detector", "max_alias_hops") {
		cfg.Detector.MaxAliasHops = raw.Detector.MaxAliasHops
	}
	if meta.IsDefined("metrics", "enabled") {
		cfg.Detector.Metrics = raw.Metrics.Enabled
	}

	if meta.IsDefined("logging", "level") {
		lvl, ok := logging.ParseLevel(raw.Logging.Level)
		if !ok {
			return Config{}, fmt.Errorf("logging level invalid: %q", raw.Logging.Level)
		}
		cfg.Logging.Level = lvl
	}
	if meta.IsDefined("logging", "timestamp") {
		cfg.Logging.Timestamp = raw.Logging.Timestamp
	}
	if meta.IsDefined("logging", "no_color") {
		cfg.Logging.NoColor = raw.Logging.NoColor
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key: %s", undecoded[0])
	}
	if err := ValidateDetector(cfg.Detector); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ValidateDetector checks suffixes and limits of a detector configuration.
func ValidateDetector(cfg skeleton.Config) error {
	if cfg.AtlasSuffix == "" {
		return fmt.Errorf("detector config missing atlas_suffix")
	}
	if cfg.TextSuffix == "" {
		return fmt.Errorf("detector config missing text_suffix")
	}
	if cfg.BinarySuffix == "" {
		return fmt.Errorf("detector config missing binary_suffix")
	}
	if cfg.AtlasSuffix == cfg.TextSuffix || cfg.AtlasSuffix == cfg.BinarySuffix {
		return fmt.Errorf("detector atlas_suffix %q must differ from companion suffixes", cfg.AtlasSuffix)
	}
	if cfg.MaxAliasHops <= 0 {
		return fmt.Errorf("detector max_alias_hops must be positive")
	}
	return nil
}
