package config

import (
	"fmt"

	"github.com/leapstack-labs/sqlclause/internal/cli/output"
	intconfig "github.com/leapstack-labs/sqlclause/internal/config"
	"github.com/leapstack-labs/sqlclause/pkg/dialect"
)

// DefaultSchemaForType returns the default schema for a database type.
// This is a convenience wrapper that delegates to the shared config function.
func DefaultSchemaForType(dbType string) string {
	return intconfig.DefaultSchemaForType(dbType)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return err
	}
	if c.Dialect != "" {
		if _, err := dialect.Lookup(c.Dialect); err != nil {
			return fmt.Errorf("invalid dialect: %w", err)
		}
	}
	if err := intconfig.ValidateTarget(c.Target); err != nil {
		return fmt.Errorf("invalid target configuration: %w", err)
	}
	return nil
}

// ResolveDialect returns the explicit dialect, or the one implied by the target type.
func (c *Config) ResolveDialect() (*dialect.Dialect, error) {
	if c.Dialect != "" {
		return dialect.Lookup(c.Dialect)
	}
	if c.Target != nil && c.Target.Type != "" {
		return dialect.Lookup(c.Target.Type)
	}
	return nil, dialect.ErrDialectRequired
}

// OutputMode returns the parsed output format, falling back to auto.
func (c *Config) OutputMode() output.Mode {
	m, err := output.ParseMode(c.OutputFormat)
	if err != nil {
		return output.ModeAuto
	}
	return m
}
