package config

import (
	"strings"

	"github.com/leapstack-labs/sqlclause/pkg/core"
	"github.com/leapstack-labs/sqlclause/pkg/dialect"
)

// Default target values.
const (
	DefaultTargetType     = "sqlite"
	DefaultSQLiteDatabase = ":memory:"
	DefaultPostgresPort   = 5432
	DefaultMySQLPort      = 3306
)

// CanonicalType resolves a target type through the dialect registry so that
// aliases such as "postgresql" or "mariadb" select the same defaults.
func CanonicalType(dbType string) string {
	if d, ok := dialect.Get(dbType); ok {
		return d.Name
	}
	return strings.ToLower(dbType)
}

// ApplyTargetDefaults applies default values to a TargetConfig based on the target type.
func ApplyTargetDefaults(t *core.TargetConfig) {
	if t == nil {
		return
	}
	if t.Type == "" {
		t.Type = DefaultTargetType
	}

	// Apply default schema based on type
	if t.Schema == "" {
		t.Schema = DefaultSchemaForType(t.Type)
	}

	switch CanonicalType(t.Type) {
	case "postgres":
		if t.Port == 0 {
			t.Port = DefaultPostgresPort
		}
	case "mysql":
		if t.Port == 0 {
			t.Port = DefaultMySQLPort
		}
	case "sqlite":
		if t.Database == "" {
			t.Database = DefaultSQLiteDatabase
		}
	}
}
