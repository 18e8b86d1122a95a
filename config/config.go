// SPDX-License-Identifier: MIT

// Package config provides configuration loading and management for opldsm.
//
// A run is configured from three layers, later ones winning for non-zero
// values: DefaultConfig, an optional YAML file (--config), then CLI flags and
// positional arguments.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/opldsm/cluster"
	"github.com/katalvlaran/opldsm/dsm"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config represents the complete opldsm configuration.
type Config struct {
	// Input is the OPL text file to read.
	Input string `yaml:"input"`
	// Output is the CSV file to write the selected matrix to.
	Output string `yaml:"output"`
	// Matrix selects the view to write: PO, PP or OO.
	Matrix string `yaml:"matrix"`
	// Clusters enables spectral reordering into this many clusters (0 = off).
	Clusters int `yaml:"clusters"`
	// Seed fixes the clustering RNG; nil picks a time-based seed per run.
	Seed *int64 `yaml:"seed"`
	// ClusterReport is an optional CSV path for the sorted cluster labels.
	ClusterReport string `yaml:"cluster_report"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Spectral SpectralConfig `yaml:"spectral"`
}

// SpectralConfig tunes the spectral partitioner. Zero values keep the
// partitioner's defaults.
type SpectralConfig struct {
	Tolerance     float64 `yaml:"tolerance"`
	MaxSweeps     int     `yaml:"max_sweeps"`
	Restarts      int     `yaml:"restarts"`
	MaxKMeansIter int     `yaml:"max_kmeans_iter"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Matrix:   string(dsm.KindPO),
		LogLevel: "info",
		Spectral: SpectralConfig{
			Tolerance:     cluster.DefaultTolerance,
			Restarts:      cluster.DefaultRestarts,
			MaxKMeansIter: cluster.DefaultMaxKMeansIter,
		},
	}
}

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input is required: %w", ErrInvalidConfig)
	}
	if c.Output == "" {
		return fmt.Errorf("output is required: %w", ErrInvalidConfig)
	}
	if _, err := dsm.ParseKind(c.Matrix); err != nil {
		return fmt.Errorf("matrix: %w: %w", ErrInvalidConfig, err)
	}
	if c.Clusters < 0 {
		return fmt.Errorf("clusters must be >= 0, got %d: %w", c.Clusters, ErrInvalidConfig)
	}
	if c.ClusterReport != "" && c.Clusters == 0 {
		return fmt.Errorf("cluster_report needs clusters > 0: %w", ErrInvalidConfig)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	s := c.Spectral
	if s.Tolerance < 0 || s.MaxSweeps < 0 || s.Restarts < 0 || s.MaxKMeansIter < 0 {
		return fmt.Errorf("spectral settings must be non-negative: %w", ErrInvalidConfig)
	}
	return nil
}

// Kind returns the parsed matrix kind. Call after Validate.
func (c *Config) Kind() dsm.Kind {
	k, _ := dsm.ParseKind(c.Matrix)
	return k
}

// Options translates the spectral block into partitioner options.
func (s SpectralConfig) Options() []cluster.Option {
	return []cluster.Option{
		cluster.WithTolerance(s.Tolerance),
		cluster.WithMaxSweeps(s.MaxSweeps),
		cluster.WithRestarts(s.Restarts),
		cluster.WithMaxKMeansIter(s.MaxKMeansIter),
	}
}

// ParseLogLevel maps debug|info|warn|error (case-insensitive) to a slog
// level. The empty string means info.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log_level %q: %w", s, ErrInvalidConfig)
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Input != "" {
		c.Input = other.Input
	}
	if other.Output != "" {
		c.Output = other.Output
	}
	if other.Matrix != "" {
		c.Matrix = other.Matrix
	}
	if other.Clusters != 0 {
		c.Clusters = other.Clusters
	}
	if other.Seed != nil {
		seed := *other.Seed
		c.Seed = &seed
	}
	if other.ClusterReport != "" {
		c.ClusterReport = other.ClusterReport
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}

	// Spectral
	if other.Spectral.Tolerance != 0 {
		c.Spectral.Tolerance = other.Spectral.Tolerance
	}
	if other.Spectral.MaxSweeps != 0 {
		c.Spectral.MaxSweeps = other.Spectral.MaxSweeps
	}
	if other.Spectral.Restarts != 0 {
		c.Spectral.Restarts = other.Spectral.Restarts
	}
	if other.Spectral.MaxKMeansIter != 0 {
		c.Spectral.MaxKMeansIter = other.Spectral.MaxKMeansIter
	}
}
