package postgres

import (
	"testing"

	"github.com/leapstack-labs/sqlclause/pkg/core"
	"github.com/leapstack-labs/sqlclause/pkg/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresProfile(t *testing.T) {
	assert.Equal(t, "postgres", Postgres.GetName())
	assert.Equal(t, `"`, Postgres.Quotes.Identifier)
	assert.Equal(t, `"`, Postgres.Quotes.Column)
	assert.Equal(t, `'`, Postgres.Quotes.Literal)
	assert.Equal(t, "public", Postgres.DefaultSchema)
	assert.Equal(t, core.PlaceholderDollar, Postgres.Placeholder)
	assert.True(t, Postgres.SupportsCast())
	assert.Equal(t, "$3", Postgres.FormatPlaceholder(3))
}

func TestPostgresKeywordsAndFunctions(t *testing.T) {
	assert.True(t, Postgres.IsReservedWord("user"))
	assert.True(t, Postgres.IsReservedWord("ORDER"))
	assert.False(t, Postgres.IsReservedWord("name"))

	assert.True(t, Postgres.IsFunction("count"))
	assert.True(t, Postgres.IsFunction("DATE_TRUNC"))
	assert.False(t, Postgres.IsFunction("GROUP_CONCAT"))
}

func TestPostgresRegistered(t *testing.T) {
	for _, name := range []string{"postgres", "PostgreSQL", "pg"} {
		d, ok := dialect.Get(name)
		require.True(t, ok, name)
		assert.Same(t, Postgres, d)
	}
}
