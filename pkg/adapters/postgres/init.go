package postgres

import (
	"log/slog"

	"github.com/leapstack-labs/sqlclause/pkg/adapter"
	pgdialect "github.com/leapstack-labs/sqlclause/pkg/dialects/postgres"
)

// Import this package with a blank identifier to register the adapter under the
// dialect name and its aliases:
//
//	import _ "github.com/leapstack-labs/sqlclause/pkg/adapters/postgres"
func init() {
	adapter.RegisterDialect(pgdialect.Postgres, func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
