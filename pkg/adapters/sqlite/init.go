package sqlite

import (
	"log/slog"

	"github.com/leapstack-labs/sqlclause/pkg/adapter"
	litedialect "github.com/leapstack-labs/sqlclause/pkg/dialects/sqlite"
)

func init() {
	adapter.RegisterDialect(litedialect.SQLite, func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
