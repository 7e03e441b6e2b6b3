// Package mysql provides a MySQL database adapter for sqlclause.
package mysql

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/leapstack-labs/sqlclause/pkg/adapter"
	"github.com/leapstack-labs/sqlclause/pkg/dialect"
	mydialect "github.com/leapstack-labs/sqlclause/pkg/dialects/mysql"
)

// Adapter implements the adapter.Adapter interface for MySQL and MariaDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new MySQL adapter instance.
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
	return mydialect.MySQL.Name
}

// Dialect returns the MySQL dialect profile.
func (a *Adapter) Dialect() *dialect.Dialect {
	return mydialect.MySQL
}

// Connect establishes a connection to MySQL.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn, err := buildMySQLDSN(cfg)
	if err != nil {
		return err
	}

	a.Logger.Debug("connecting to mysql", slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	return a.Open(ctx, "mysql", dsn, cfg)
}

// buildMySQLDSN constructs a go-sql-driver DSN.
// The tls, collation, timeout and loc options map to driver fields; anything else
// (charset, sql_mode) is passed through as a DSN parameter.
func buildMySQLDSN(cfg adapter.Config) (string, error) {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 3306
	}

	mc := mysql.NewConfig()
	mc.User = cfg.Username
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	mc.DBName = cfg.Database
	mc.ParseTime = true

	for k, v := range cfg.Options {
		switch k {
		case "tls":
			mc.TLSConfig = v
		case "collation":
			mc.Collation = v
		case "timeout":
			d, err := time.ParseDuration(v)
			if err != nil {
				return "", fmt.Errorf("invalid mysql timeout %q: %w", v, err)
			}
			mc.Timeout = d
		case "loc":
			loc, err := time.LoadLocation(v)
			if err != nil {
				return "", fmt.Errorf("invalid mysql location %q: %w", v, err)
			}
			mc.Loc = loc
		default:
			if mc.Params == nil {
				mc.Params = make(map[string]string)
			}
			mc.Params[k] = v
		}
	}

	return mc.FormatDSN(), nil
}

// GetTableMetadata retrieves metadata for a specified table.
// An unqualified table is looked up in the connected database.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	return a.GetTableMetadataCommon(ctx, table, mydialect.MySQL)
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
