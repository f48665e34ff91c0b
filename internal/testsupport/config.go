// Package testsupport provides shared fixtures for package tests: seeded
// configurations and hand-built FITS files with controlled headers.
package testsupport

import (
	"path/filepath"
	"testing"

	"starsort/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithTolerance overrides the temperature window width on the test config.
func WithTolerance(toleranceC float64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Organize.TempToleranceC = toleranceC
	}
}
