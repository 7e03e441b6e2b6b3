package mysql

import (
	"log/slog"

	"github.com/leapstack-labs/sqlclause/pkg/adapter"
	mydialect "github.com/leapstack-labs/sqlclause/pkg/dialects/mysql"
)

func init() {
	adapter.RegisterDialect(mydialect.MySQL, func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
