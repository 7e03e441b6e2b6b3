// Package sqlite provides an embedded SQLite database adapter for sqlclause,
// backed by the pure Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"github.com/leapstack-labs/sqlclause/pkg/adapter"
	"github.com/leapstack-labs/sqlclause/pkg/dialect"
	litedialect "github.com/leapstack-labs/sqlclause/pkg/dialects/sqlite"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// DialectName returns the SQL dialect for this adapter.
func (a *Adapter) DialectName() string {
	return litedialect.SQLite.Name
}

// Dialect returns the SQLite dialect profile.
func (a *Adapter) Dialect() *dialect.Dialect {
	return litedialect.SQLite
}

// Connect opens the database file named by Path (or Database), or an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn := buildSQLiteDSN(cfg)
	a.Logger.Debug("opening sqlite database", slog.String("dsn", dsn))

	if err := a.Open(ctx, "sqlite", dsn, cfg); err != nil {
		return err
	}
	if isMemory(cfg) {
		// Every pooled connection would otherwise see its own empty database.
		a.DB.SetMaxOpenConns(1)
	}
	return nil
}

func dbPath(cfg adapter.Config) string {
	switch {
	case cfg.Path != "":
		return cfg.Path
	case cfg.Database != "":
		return cfg.Database
	}
	return MemoryPath
}

func isMemory(cfg adapter.Config) bool {
	return dbPath(cfg) == MemoryPath
}

// buildSQLiteDSN builds a modernc DSN. Every option becomes a _pragma parameter,
// e.g. {"foreign_keys": "1"} -> _pragma=foreign_keys(1).
func buildSQLiteDSN(cfg adapter.Config) string {
	path := dbPath(cfg)

	keys := make([]string, 0, len(cfg.Options))
	for k := range cfg.Options {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return path
	}
	sort.Strings(keys)

	params := make([]string, len(keys))
	for i, k := range keys {
		params[i] = "_pragma=" + url.QueryEscape(fmt.Sprintf("%s(%s)", k, cfg.Options[k]))
	}
	return "file:" + path + "?" + strings.Join(params, "&")
}

// GetTableMetadata retrieves metadata for a table using PRAGMA table_info.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	if a.DB == nil {
		return nil, adapter.ErrNotConnected
	}

	d := litedialect.SQLite
	schema, name := adapter.ParseQualifiedName(table, d)
	qualified := d.QuoteIdentifier(schema) + "." + d.QuoteIdentifier(name)

	//nolint:gosec // identifiers are quoted by the dialect
	rows, err := a.DB.QueryContext(ctx, fmt.Sprintf("PRAGMA %s.table_info(%s)", d.QuoteIdentifier(schema), d.QuoteIdentifier(name)))
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []adapter.Column
	for rows.Next() {
		var (
			cid      int
			col      adapter.Column
			notNull  int
			defValue sql.NullString
			pk       int
		)
		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull, &defValue, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Position = cid + 1
		col.Nullable = notNull == 0
		col.PrimaryKey = pk > 0
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}

	if len(columns) == 0 {
		return nil, &adapter.TableNotFoundError{Table: table}
	}

	return &adapter.Metadata{
		Schema:   schema,
		Name:     name,
		Columns:  columns,
		RowCount: a.CountRows(ctx, qualified),
	}, nil
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
