package core

// DialectConfig holds the static configuration for a SQL dialect.
// This is pure data with no behavior.
//
// The runtime lookups (function and keyword sets, quoting helpers) live in
// pkg/dialect.Dialect, which is built from this config.
type DialectConfig struct {
	// Name is the dialect identifier (e.g., "mysql", "postgres")
	Name string

	// Aliases are alternative registry names (e.g., "postgresql", "pg")
	Aliases []string

	// Quotes defines the canonical quote characters
	Quotes QuoteConfig

	// DefaultSchema is the default schema name ("public" for Postgres, "main" for SQLite)
	DefaultSchema string

	// Placeholder defines how query parameters are formatted
	Placeholder PlaceholderStyle

	// SupportsCastOperator enables `expr::type` suffix handling
	SupportsCastOperator bool

	// Functions are the built-in function names recognized in clause items (case-insensitive)
	Functions []string

	// ReservedWords may only be used as identifiers when quoted (case-insensitive)
	ReservedWords []string
}

// QuoteConfig defines the canonical quote characters for a dialect.
type QuoteConfig struct {
	Identifier string // SELECT, ORDER BY and WHERE identifiers
	Column     string // COLUMNS lists
	Literal    string // VALUES string content
}

// PlaceholderStyle defines how query parameters are formatted.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (MySQL, SQLite).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. for parameters (PostgreSQL).
	PlaceholderDollar
)
