// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers defaults, an optional YAML file, and environment variables.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":5001".
	Addr string `koanf:"addr"`

	// DataDir holds the {key}_summary.json files served by the API.
	DataDir string `koanf:"data_dir"`

	// Strategies is the closed set of strategy keys to load, in display
	// order. Empty means every summary file found in DataDir.
	Strategies []string `koanf:"strategies"`

	// ComparisonThreshold picks the fixed-threshold strategy that appears in
	// comparison views.
	ComparisonThreshold int `koanf:"comparison_threshold"`

	// AllowedOrigins lists CORS origins; "*" allows any.
	AllowedOrigins []string `koanf:"allowed_origins"`

	// GzipEnabled compresses responses for clients that accept gzip.
	GzipEnabled bool `koanf:"gzip_enabled"`

	// MetricsEnabled turns Prometheus recording on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":5001",
		DataDir:             "processed_data",
		ComparisonThreshold: 16,
		AllowedOrigins:      []string{"*"},
		GzipEnabled:         true,
		MetricsEnabled:      true,
	}
}
