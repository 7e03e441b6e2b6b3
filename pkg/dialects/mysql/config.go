// Package mysql provides the MySQL SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package mysql

import "github.com/leapstack-labs/sqlclause/pkg/core"

// Config is the MySQL dialect configuration.
var Config = &core.DialectConfig{
	Name:        "mysql",
	Aliases:     []string{"mariadb"},
	Placeholder: core.PlaceholderQuestion,
	Quotes: core.QuoteConfig{
		Identifier: "`",
		Column:     "`",
		Literal:    `'`,
	},

	Functions: []string{
		// Aggregates
		"SUM", "COUNT", "AVG", "MIN", "MAX",
		"STD", "STDDEV", "VARIANCE", "GROUP_CONCAT", "BIT_AND", "BIT_OR",
		// Strings
		"UPPER", "LOWER", "UCASE", "LCASE", "LENGTH", "CHAR_LENGTH", "TRIM", "LTRIM", "RTRIM",
		"CONCAT", "CONCAT_WS", "SUBSTRING", "REPLACE", "LEFT", "RIGHT", "MD5", "SHA1",
		// Numbers
		"ABS", "CEIL", "CEILING", "FLOOR", "ROUND", "TRUNCATE", "MOD",
		// Null handling
		"COALESCE", "IFNULL", "NULLIF", "GREATEST", "LEAST",
		// Date/time
		"NOW", "CURDATE", "CURTIME", "DATE", "DATE_FORMAT", "YEAR", "MONTH", "DAY",
		"UNIX_TIMESTAMP", "FROM_UNIXTIME",
		// Value generators
		"UUID", "RAND",
	},
}
