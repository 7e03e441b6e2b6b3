// Package config provides shared target configuration for sqlclause.
// This package is decoupled from CLI concerns; the CLI loader builds on it.
package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlclause/pkg/adapter"
	"github.com/leapstack-labs/sqlclause/pkg/core"
	"github.com/leapstack-labs/sqlclause/pkg/dialect"
)

// TargetConfig is the database target configuration.
type TargetConfig = core.TargetConfig

// DefaultSchemaForType returns the default schema for a database type.
// It looks up the dialect in the registry. Dialects without a schema
// concept (MySQL uses the database) and unknown types return "".
func DefaultSchemaForType(dbType string) string {
	if d, ok := dialect.Get(dbType); ok {
		return d.DefaultSchema
	}
	return ""
}

// ValidateTarget checks if the target configuration is valid.
// It uses the adapter registry to determine which adapter types are available.
func ValidateTarget(t *TargetConfig) error {
	if t == nil {
		return fmt.Errorf("target is required")
	}
	if t.Type == "" {
		return fmt.Errorf("target type is required")
	}

	// Use adapter registry as single source of truth
	if !adapter.IsRegistered(strings.ToLower(t.Type)) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		}
	}

	if t.Port < 0 || t.Port > 65535 {
		return fmt.Errorf("target port %d is out of range", t.Port)
	}
	return nil
}
