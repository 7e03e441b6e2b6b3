// Package postgres provides a PostgreSQL database adapter for sqlclause.
//
// The pgx stdlib driver is used by default; set options.driver to "pq" to use lib/pq.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/leapstack-labs/sqlclause/pkg/adapter"
	"github.com/leapstack-labs/sqlclause/pkg/dialect"
	pgdialect "github.com/leapstack-labs/sqlclause/pkg/dialects/postgres"
	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
)

// Driver names accepted in options.driver.
const (
	DriverPgx = "pgx"
	DriverPq  = "pq"
)

// Adapter implements the adapter.Adapter interface for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new PostgreSQL adapter instance.
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
	return pgdialect.Postgres.Name
}

// Dialect returns the PostgreSQL dialect profile.
func (a *Adapter) Dialect() *dialect.Dialect {
	return pgdialect.Postgres
}

// Connect establishes a connection to PostgreSQL.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	driver, err := driverName(cfg)
	if err != nil {
		return err
	}

	a.Logger.Debug("connecting to postgres",
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Database),
		slog.String("driver", driver))

	return a.Open(ctx, driver, buildPostgresDSN(cfg), cfg)
}

// driverName maps options.driver to a registered database/sql driver name.
func driverName(cfg adapter.Config) (string, error) {
	switch strings.ToLower(cfg.Options["driver"]) {
	case "", DriverPgx:
		return "pgx", nil
	case DriverPq, "libpq", "lib/pq":
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported postgres driver %q (use %q or %q)", cfg.Options["driver"], DriverPgx, DriverPq)
	}
}

// dsnOptions are passed through from options into the connection string.
var dsnOptions = map[string]bool{
	"connect_timeout":  true,
	"application_name": true,
	"sslrootcert":      true,
	"sslcert":          true,
	"sslkey":           true,
	"search_path":      true,
}

// buildPostgresDSN constructs a PostgreSQL key=value connection string understood
// by both pgx and lib/pq.
func buildPostgresDSN(cfg adapter.Config) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	sslmode := "disable"
	if mode, ok := cfg.Options["sslmode"]; ok {
		sslmode = mode
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		host, port, dsnValue(cfg.Database), sslmode)

	if cfg.Username != "" {
		dsn += fmt.Sprintf(" user=%s", dsnValue(cfg.Username))
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", dsnValue(cfg.Password))
	}

	keys := make([]string, 0, len(cfg.Options))
	for k := range cfg.Options {
		if dsnOptions[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		dsn += fmt.Sprintf(" %s=%s", k, dsnValue(cfg.Options[k]))
	}

	return dsn
}

// dsnValue single-quotes values containing spaces or quotes.
func dsnValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// GetTableMetadata retrieves metadata for a specified table.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	return a.GetTableMetadataCommon(ctx, table, pgdialect.Postgres)
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
