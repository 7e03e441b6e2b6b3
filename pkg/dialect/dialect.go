// Package dialect provides the SQL dialect profiles consumed by the clause engine.
//
// A Dialect is a passive, read-only holder of the canonical quote characters,
// the recognized built-in function names and the reserved keywords for one
// database backend. Concrete dialects are registered from pkg/dialects/*/ packages.
// A built Dialect is never mutated and may be shared across goroutines.
package dialect

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlclause/pkg/core"
)

// Dialect represents a SQL dialect profile.
type Dialect struct {
	Name    string
	Aliases []string
	Quotes  core.QuoteConfig

	// Database-specific settings
	DefaultSchema string                // Default schema name ("public" for Postgres)
	Placeholder   core.PlaceholderStyle // How to format query parameters

	castOperator bool

	// Case-insensitive lookups, keys upper-cased
	functions     map[string]struct{}
	reservedWords map[string]struct{}
}

// Config returns the pure data configuration for this dialect.
func (d *Dialect) Config() *core.DialectConfig {
	return &core.DialectConfig{
		Name:                 d.Name,
		Aliases:              append([]string(nil), d.Aliases...),
		Quotes:               d.Quotes,
		DefaultSchema:        d.DefaultSchema,
		Placeholder:          d.Placeholder,
		SupportsCastOperator: d.castOperator,
		Functions:            d.Functions(),
		ReservedWords:        d.ReservedWords(),
	}
}

// GetName returns the dialect name.
func (d *Dialect) GetName() string {
	return d.Name
}

// IsFunction returns true if name is a recognized built-in function.
func (d *Dialect) IsFunction(name string) bool {
	_, ok := d.functions[strings.ToUpper(name)]
	return ok
}

// IsReservedWord returns true if the word may only be used as an identifier when quoted.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[strings.ToUpper(word)]
	return ok
}

// SupportsCast returns true if the dialect understands the `expr::type` cast suffix.
func (d *Dialect) SupportsCast() bool {
	return d.castOperator
}

// Functions returns all recognized function names (sorted, upper-case).
func (d *Dialect) Functions() []string {
	return sortedKeys(d.functions)
}

// ReservedWords returns all reserved keywords (sorted, upper-case).
func (d *Dialect) ReservedWords() []string {
	return sortedKeys(d.reservedWords)
}

// QuoteIdentifier wraps name in the identifier quote, doubling any embedded quote.
func (d *Dialect) QuoteIdentifier(name string) string {
	return Quote(name, d.Quotes.Identifier)
}

// QuoteColumn wraps name in the column-list quote, doubling any embedded quote.
func (d *Dialect) QuoteColumn(name string) string {
	return Quote(name, d.Quotes.Column)
}

// QuoteLiteral wraps s in the string literal quote, doubling any embedded quote.
func (d *Dialect) QuoteLiteral(s string) string {
	return Quote(s, d.Quotes.Literal)
}

// Quote wraps s in q, escaping embedded q characters by doubling them.
func Quote(s, q string) string {
	return q + strings.ReplaceAll(s, q, q+q) + q
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
// Returns "?" for PlaceholderQuestion style, "$1", "$2" etc. for PlaceholderDollar style.
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case core.PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// Validate checks that every field the clause engine depends on is set.
func (d *Dialect) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("dialect name is required")
	}
	for _, q := range []struct {
		field, value string
	}{
		{"identifier", d.Quotes.Identifier},
		{"column", d.Quotes.Column},
		{"literal", d.Quotes.Literal},
	} {
		if len(q.value) != 1 {
			return fmt.Errorf("dialect %s: %s quote must be a single character, got %q", d.Name, q.field, q.value)
		}
	}
	return nil
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name and ANSI double-quote defaults.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name: name,
			Quotes: core.QuoteConfig{
				Identifier: `"`,
				Column:     `"`,
				Literal:    `'`,
			},
			functions:     make(map[string]struct{}),
			reservedWords: make(map[string]struct{}),
		},
	}
}

// New creates a dialect builder from a DialectConfig.
// This is the preferred constructor for the registered dialects.
func New(cfg *core.DialectConfig) *Builder {
	b := &Builder{
		dialect: &Dialect{
			Name:          cfg.Name,
			Aliases:       append([]string(nil), cfg.Aliases...),
			Quotes:        cfg.Quotes,
			DefaultSchema: cfg.DefaultSchema,
			Placeholder:   cfg.Placeholder,
			castOperator:  cfg.SupportsCastOperator,
			functions:     make(map[string]struct{}),
			reservedWords: make(map[string]struct{}),
		},
	}
	b.Functions(cfg.Functions...)
	b.WithReservedWords(cfg.ReservedWords...)
	return b
}

// Quotes configures the canonical quote characters.
func (b *Builder) Quotes(identifier, column, literal string) *Builder {
	b.dialect.Quotes = core.QuoteConfig{
		Identifier: identifier,
		Column:     column,
		Literal:    literal,
	}
	return b
}

// Functions adds recognized built-in functions to the dialect.
func (b *Builder) Functions(funcs ...string) *Builder {
	for _, f := range funcs {
		b.dialect.functions[strings.ToUpper(f)] = struct{}{}
	}
	return b
}

// WithReservedWords registers words that need quoting when used as identifiers.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.reservedWords[strings.ToUpper(w)] = struct{}{}
	}
	return b
}

// CastOperator enables or disables the `::` cast suffix.
func (b *Builder) CastOperator(enabled bool) *Builder {
	b.dialect.castOperator = enabled
	return b
}

// DefaultSchema sets the default schema name.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.dialect.DefaultSchema = schema
	return b
}

// PlaceholderStyle sets how query parameters are formatted.
func (b *Builder) PlaceholderStyle(style core.PlaceholderStyle) *Builder {
	b.dialect.Placeholder = style
	return b
}

// Aliases sets alternative registry names.
func (b *Builder) Aliases(names ...string) *Builder {
	b.dialect.Aliases = append(b.dialect.Aliases, names...)
	return b
}

// Build validates and returns the constructed dialect.
// The builder must not be used afterwards.
func (b *Builder) Build() (*Dialect, error) {
	if err := b.dialect.Validate(); err != nil {
		return nil, err
	}
	d := b.dialect
	b.dialect = nil
	return d, nil
}

// MustBuild is like Build but panics on an incomplete profile.
// Intended for package-level dialect variables.
func (b *Builder) MustBuild() *Dialect {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}
