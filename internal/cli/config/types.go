// Package config provides configuration management for the sqlclause CLI.
//
// The shared target types live in internal/config and pkg/core; this package
// adds the CLI fields and the layered koanf loader.
package config

import (
	"github.com/leapstack-labs/sqlclause/internal/cli/output"
	"github.com/leapstack-labs/sqlclause/pkg/core"
)

// TargetConfig is an alias for the shared target configuration.
// This allows CLI code to use config.TargetConfig without importing pkg/core.
type TargetConfig = core.TargetConfig

// Config holds all CLI configuration options.
type Config struct {
	// Dialect overrides the dialect implied by the target type.
	Dialect      string                   `koanf:"dialect"`
	Verbose      bool                     `koanf:"verbose"`
	OutputFormat string                   `koanf:"output"`
	Target       *TargetConfig            `koanf:"target"`
	Targets      map[string]*TargetConfig `koanf:"targets"`

	// TargetName is the named target selected with --target, if any.
	TargetName string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultOutput = string(output.ModeAuto) // Auto-detect: TTY=text, non-TTY=markdown
	EnvPrefix     = "SQLCLAUSE_"
)

// DefaultConfig returns the configuration used when nothing was loaded.
func DefaultConfig() *Config {
	return &Config{
		OutputFormat: DefaultOutput,
		Target:       &TargetConfig{},
	}
}
