// Package adapter provides the database adapter contract used by the query layer
// to execute statements assembled from normalized clauses.
//
// This package contains the public contract that all database adapters must implement.
// Concrete adapter implementations are in pkg/adapters/ subdirectories and register
// themselves from init().
package adapter

import (
	"context"

	"github.com/leapstack-labs/sqlclause/pkg/core"
	"github.com/leapstack-labs/sqlclause/pkg/dialect"
)

// Short names for the core types used throughout the adapter contract.
type (
	// Config is an alias for core.AdapterConfig.
	Config = core.AdapterConfig

	// Column is an alias for core.Column.
	Column = core.Column

	// Metadata is an alias for core.TableMetadata.
	Metadata = core.TableMetadata

	// Rows is an alias for core.Rows.
	Rows = core.Rows
)

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows and reports the rows affected.
	Exec(ctx context.Context, sql string) (int64, error)

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string) (*Rows, error)

	// GetTableMetadata retrieves column metadata for a table.
	GetTableMetadata(ctx context.Context, table string) (*Metadata, error)

	// Dialect returns the dialect profile clauses must be normalized with
	// before their SQL is sent to this adapter.
	Dialect() *dialect.Dialect
}
