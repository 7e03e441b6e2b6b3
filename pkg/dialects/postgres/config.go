// Package postgres provides the PostgreSQL SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package postgres

import "github.com/leapstack-labs/sqlclause/pkg/core"

// Config is the PostgreSQL dialect configuration.
// This is pure data - accessible by both Adapter and the clause engine.
var Config = &core.DialectConfig{
	Name:          "postgres",
	Aliases:       []string{"postgresql", "pg", "pgsql"},
	DefaultSchema: "public",
	Placeholder:   core.PlaceholderDollar,
	Quotes: core.QuoteConfig{
		Identifier: `"`,
		Column:     `"`,
		Literal:    `'`,
	},
	SupportsCastOperator: true,

	Functions: []string{
		// Aggregates
		"SUM", "COUNT", "AVG", "MIN", "MAX",
		"STDDEV", "STDDEV_POP", "STDDEV_SAMP",
		"VARIANCE", "VAR_POP", "VAR_SAMP",
		"ARRAY_AGG", "STRING_AGG",
		"JSONB_AGG", "JSON_AGG",
		"BOOL_AND", "BOOL_OR", "EVERY",
		// Strings
		"UPPER", "LOWER", "LENGTH", "CHAR_LENGTH", "TRIM", "LTRIM", "RTRIM",
		"CONCAT", "SUBSTRING", "REPLACE", "INITCAP", "MD5",
		// Numbers
		"ABS", "CEIL", "FLOOR", "ROUND", "TRUNC",
		// Null handling
		"COALESCE", "NULLIF", "GREATEST", "LEAST",
		// Date/time
		"NOW", "DATE_TRUNC", "DATE_PART", "AGE", "TO_CHAR", "TO_DATE", "TO_TIMESTAMP",
		// Value generators
		"GEN_RANDOM_UUID", "RANDOM",
	},
}
