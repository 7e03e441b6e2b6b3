package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/sqlclause/pkg/core"
	"github.com/leapstack-labs/sqlclause/pkg/dialect"
	"github.com/leapstack-labs/sqlclause/pkg/ident"
)

// ErrNotConnected is returned by operations on an adapter without an open connection.
var ErrNotConnected = errors.New("database connection not established")

// TableNotFoundError is returned when metadata is requested for a missing table.
type TableNotFoundError struct {
	Table string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table %s not found", e.Table)
}

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close, Exec, and Query implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    core.AdapterConfig
	Logger *slog.Logger
}

// Open opens and pings a database/sql handle, closing it again when the ping fails.
func (b *BaseSQLAdapter) Open(ctx context.Context, driver, dsn string, cfg core.AdapterConfig) error {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s connection: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to connect to %s: %w", cfg.Type, err)
	}

	b.DB = db
	b.Cfg = cfg
	b.logger().Debug("connected",
		slog.String("type", cfg.Type),
		slog.String("driver", driver),
		slog.String("database", cfg.Database))
	return nil
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		b.logger().Debug("closing database connection")
		return b.DB.Close()
	}
	return nil
}

// Exec executes a SQL statement that doesn't return rows.
func (b *BaseSQLAdapter) Exec(ctx context.Context, sqlStr string) (int64, error) {
	if b.DB == nil {
		return 0, ErrNotConnected
	}
	b.logger().Debug("exec", slog.String("sql", sqlStr))
	res, err := b.DB.ExecContext(ctx, sqlStr)
	if err != nil {
		return 0, fmt.Errorf("failed to execute SQL: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		// Not every driver reports affected rows.
		return 0, nil
	}
	return n, nil
}

// Query executes a SQL statement that returns rows.
func (b *BaseSQLAdapter) Query(ctx context.Context, sqlStr string) (*core.Rows, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}
	b.logger().Debug("query", slog.String("sql", sqlStr))
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := b.DB.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return &core.Rows{Rows: rows}, nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

func (b *BaseSQLAdapter) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

// ParseQualifiedName splits a table reference into schema and name.
// Uses the dialect's default schema if not specified.
func ParseQualifiedName(table string, d *dialect.Dialect) (schema, name string) {
	if parts := splitQualified(table); len(parts) == 2 {
		return parts[0], parts[1]
	}
	return d.DefaultSchema, unquote(table)
}

// GetTableMetadataCommon provides a shared implementation of GetTableMetadata.
// Uses information_schema.columns with dialect-appropriate placeholders.
func (b *BaseSQLAdapter) GetTableMetadataCommon(ctx context.Context, table string, d *dialect.Dialect) (*core.TableMetadata, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}

	schema, tableName := ParseQualifiedName(table, d)
	if schema == "" {
		schema = b.Cfg.Database
	}

	// The placeholders come from the dialect and are safe (? or $N)
	//nolint:gosec // Placeholders are safe - they come from dialect.FormatPlaceholder
	query := fmt.Sprintf(`
		SELECT 
			column_name,
			data_type,
			is_nullable,
			ordinal_position
		FROM information_schema.columns 
		WHERE table_schema = %s AND table_name = %s
		ORDER BY ordinal_position
	`, d.FormatPlaceholder(1), d.FormatPlaceholder(2))

	rows, err := b.DB.QueryContext(ctx, query, schema, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []core.Column
	for rows.Next() {
		var col core.Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.Type, &nullable, &col.Position); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Nullable = nullable == "YES"
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}

	if len(columns) == 0 {
		return nil, &TableNotFoundError{Table: table}
	}

	return &core.TableMetadata{
		Schema:   schema,
		Name:     tableName,
		Columns:  columns,
		RowCount: b.CountRows(ctx, d.QuoteIdentifier(schema)+"."+d.QuoteIdentifier(tableName)),
	}, nil
}

// CountRows returns the row count of an already-quoted table reference, or 0 when
// the count fails.
func (b *BaseSQLAdapter) CountRows(ctx context.Context, quotedTable string) int64 {
	var rowCount int64
	countQuery := "SELECT COUNT(*) FROM " + quotedTable //nolint:gosec // quoted by the dialect
	if err := b.DB.QueryRowContext(ctx, countQuery).Scan(&rowCount); err != nil {
		b.logger().Debug("row count failed", slog.String("table", quotedTable), slog.String("error", err.Error()))
		return 0
	}
	return rowCount
}

// splitQualified splits schema.table on the first dot outside quotes and strips
// any identifier quotes from the parts.
func splitQualified(table string) []string {
	var quote byte
	for i := 0; i < len(table); i++ {
		c := table[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case ident.IsQuoteChar(c):
			quote = c
		case c == '.':
			return []string{unquote(table[:i]), unquote(table[i+1:])}
		}
	}
	return []string{unquote(table)}
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if inner, ok := ident.Unquote(s); ok {
		return strings.ReplaceAll(inner, s[:1]+s[:1], s[:1])
	}
	return s
}
