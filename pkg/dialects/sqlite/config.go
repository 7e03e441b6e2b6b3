// Package sqlite provides the SQLite SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package sqlite

import "github.com/leapstack-labs/sqlclause/pkg/core"

// Config is the SQLite dialect configuration.
var Config = &core.DialectConfig{
	Name:          "sqlite",
	Aliases:       []string{"sqlite3"},
	DefaultSchema: "main",
	Placeholder:   core.PlaceholderQuestion,
	Quotes: core.QuoteConfig{
		Identifier: `"`,
		Column:     `"`,
		Literal:    `'`,
	},

	Functions: []string{
		// Aggregates
		"SUM", "TOTAL", "COUNT", "AVG", "MIN", "MAX", "GROUP_CONCAT",
		// Strings
		"UPPER", "LOWER", "LENGTH", "TRIM", "LTRIM", "RTRIM", "SUBSTR", "REPLACE",
		"INSTR", "PRINTF", "HEX", "QUOTE",
		// Numbers
		"ABS", "ROUND", "RANDOM",
		// Null handling
		"COALESCE", "IFNULL", "NULLIF",
		// Date/time
		"DATE", "TIME", "DATETIME", "JULIANDAY", "STRFTIME", "UNIXEPOCH",
		// Type inspection
		"TYPEOF",
	},
}
