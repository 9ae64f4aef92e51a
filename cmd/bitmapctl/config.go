package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// Config holds settings read from a YAML file. Command-line flags override
// them.
type Config struct {
	LogLevel      string `yaml:"log_level"`
	Parallel      bool   `yaml:"parallel"`
	Workers       int    `yaml:"workers"`
	JPEGQuality   int    `yaml:"jpeg_quality"`
	Compress      bool   `yaml:"compress"`
	DefaultFormat string `yaml:"default_format"`
}

func defaultConfig() Config {
	return Config{
		LogLevel:      "info",
		DefaultFormat: "png",
	}
}

// LoadConfig reads path over the defaults. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return cfg, err
	}
	if cfg.JPEGQuality < 0 || cfg.JPEGQuality > 100 {
		return cfg, fmt.Errorf("jpeg_quality %d out of range [0, 100]", cfg.JPEGQuality)
	}
	cfg.DefaultFormat = strings.TrimPrefix(strings.ToLower(cfg.DefaultFormat), ".")
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}
