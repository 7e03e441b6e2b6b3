package clause_test

import (
	"testing"

	"github.com/leapstack-labs/sqlclause/internal/testutil"
	"github.com/leapstack-labs/sqlclause/pkg/clause"
	"github.com/leapstack-labs/sqlclause/pkg/dialect"
	"github.com/leapstack-labs/sqlclause/pkg/dialects/mysql"
	"github.com/leapstack-labs/sqlclause/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlclause/pkg/dialects/sqlite"
	"github.com/leapstack-labs/sqlclause/pkg/ident"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name  string
		d     *dialect.Dialect
		input any
		items []string
		want  string
	}{
		{name: "nil selects everything", d: mysql.MySQL, input: nil, items: []string{"*"}, want: "*"},
		{name: "empty string", d: mysql.MySQL, input: "", want: "*"},
		{name: "list", d: mysql.MySQL, input: []string{"id", "name"}, items: []string{"`id`", "`name`"}, want: "`id`, `name`"},
		{name: "string", d: mysql.MySQL, input: "id, name", want: "`id`, `name`"},
		{name: "keyword prefix", d: mysql.MySQL, input: "SELECT id", want: "`id`"},
		{name: "brackets", d: mysql.MySQL, input: "(id, name)", want: "`id`, `name`"},
		{name: "trailing comma", d: mysql.MySQL, input: "id, name,", want: "`id`, `name`"},
		{name: "mixed quotes to backtick", d: mysql.MySQL, input: "`a`, \"b\", 'c'", want: "`a`, `b`, `c`"},
		{name: "mixed quotes to double", d: postgres.Postgres, input: "`a`, \"b\", 'c'", want: `"a", "b", "c"`},
		{name: "quoted keyword", d: mysql.MySQL, input: "`order`", want: "`order`"},
		{name: "embedded quote re-escaped", d: postgres.Postgres, input: "`we\"ird`", want: `"we""ird"`},
		{name: "wildcard alone", d: mysql.MySQL, input: "*", want: "*"},
		{name: "count star keeps case", d: mysql.MySQL, input: "COUNT(*)", want: "COUNT(*)"},
		{name: "function name upper-cased", d: mysql.MySQL, input: "count(*)", want: "COUNT(*)"},
		{name: "function with column", d: mysql.MySQL, input: "UPPER(name)", want: "UPPER(`name`)"},
		{name: "nested functions", d: mysql.MySQL, input: "upper(lower(name))", want: "UPPER(LOWER(`name`))"},
		{name: "function arguments", d: mysql.MySQL, input: "COALESCE(nick, name, 'anon'), id", want: "COALESCE(`nick`, `name`, 'anon'), `id`"},
		{name: "count distinct", d: sqlite.SQLite, input: "COUNT(DISTINCT email)", want: `COUNT(DISTINCT "email")`},
		{name: "no-arg function", d: postgres.Postgres, input: "now()", want: "NOW()"},
		{name: "literal argument", d: postgres.Postgres, input: "DATE_TRUNC('day', created_at)", want: `DATE_TRUNC('day', "created_at")`},
		{name: "qualified column", d: mysql.MySQL, input: "users.id, u.*", want: "`users`.`id`, `u`.*"},
		{name: "cast suffix", d: postgres.Postgres, input: "created_at::date", want: `"created_at"::date`},
		{name: "cast on function", d: postgres.Postgres, input: "SUM(amount)::text", want: `SUM("amount")::text`},
		{name: "dollar identifier", d: sqlite.SQLite, input: "price$", want: `"price$"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := clause.Select(tt.d, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Render())
			assert.Equal(t, tt.want, c.String())
			if tt.items != nil {
				assert.Equal(t, tt.items, c.Items())
			}
			assert.Empty(t, c.Connectors())
		})
	}
}

func TestSelect_Errors(t *testing.T) {
	tests := []struct {
		name    string
		d       *dialect.Dialect
		input   any
		wantErr error
	}{
		{name: "wildcard with column", d: mysql.MySQL, input: "* , id", wantErr: clause.ErrWildcardMisuse},
		{name: "wildcard list", d: mysql.MySQL, input: []string{"id", "*"}, wantErr: clause.ErrWildcardMisuse},
		{name: "cast wildcard with column", d: postgres.Postgres, input: "*::text, id", wantErr: clause.ErrWildcardMisuse},
		{name: "bare select keyword", d: mysql.MySQL, input: "select", wantErr: ident.ErrReservesKeyword},
		{name: "bare select keyword padded", d: postgres.Postgres, input: "  SELECT ", wantErr: ident.ErrReservesKeyword},
		{name: "leading quote only", d: mysql.MySQL, input: "'id", wantErr: clause.ErrMismatchedQuotes},
		{name: "trailing quote only", d: mysql.MySQL, input: "id`", wantErr: clause.ErrMismatchedQuotes},
		{name: "different quotes", d: mysql.MySQL, input: "\"id`", wantErr: clause.ErrMismatchedQuotes},
		{name: "reserved keyword", d: mysql.MySQL, input: "order", wantErr: ident.ErrReservesKeyword},
		{name: "invalid characters", d: mysql.MySQL, input: "first-name", wantErr: ident.ErrInvalidCharacters},
		{name: "injection attempt", d: mysql.MySQL, input: "id; DROP TABLE users", wantErr: ident.ErrForbiddenCharacters},
		{name: "cast without operator support", d: mysql.MySQL, input: "a::int", wantErr: ident.ErrInvalidCharacters},
		{name: "double cast", d: postgres.Postgres, input: "a::int::text", wantErr: clause.ErrInvalidCastSuffix},
		{name: "bad cast type", d: postgres.Postgres, input: "a::var-char", wantErr: clause.ErrInvalidCastSuffix},
		{name: "unknown function", d: mysql.MySQL, input: "my_func(id)", wantErr: ident.ErrInvalidCharacters},
		{name: "empty argument", d: mysql.MySQL, input: "COALESCE(a,,b)", wantErr: clause.ErrUnsupportedInput},
		{name: "unsupported type", d: mysql.MySQL, input: 42, wantErr: clause.ErrUnsupportedInput},
		{name: "unsupported element", d: mysql.MySQL, input: []any{"id", 3}, wantErr: clause.ErrUnsupportedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := clause.Select(tt.d, tt.input)
			require.Error(t, err)
			assert.Nil(t, c, "no partial clause on failure")
			assert.ErrorIs(t, err, tt.wantErr)

			var cerr *clause.Error
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, clause.KindSelect, cerr.Clause)
		})
	}
}

func TestColumns(t *testing.T) {
	c, err := clause.Columns(mysql.MySQL, nil)
	require.NoError(t, err)
	assert.Equal(t, "", c.Render())
	assert.True(t, c.IsEmpty())

	c, err = clause.Columns(mysql.MySQL, "id")
	require.NoError(t, err)
	assert.Equal(t, "(`id`)", c.Render())

	c, err = clause.Columns(sqlite.SQLite, "COLUMNS (id, 'name')")
	require.NoError(t, err)
	assert.Equal(t, []string{`"id"`, `"name"`}, c.Items())
	assert.Equal(t, `("id", "name")`, c.Render())

	_, err = clause.Columns(mysql.MySQL, "*")
	assert.ErrorIs(t, err, clause.ErrWildcardMisuse)
}

func TestValues(t *testing.T) {
	tests := []struct {
		name  string
		d     *dialect.Dialect
		input any
		want  string
	}{
		{name: "nil", d: mysql.MySQL, input: nil, want: ""},
		{name: "mixed string input", d: mysql.MySQL, input: "'a', 1, NULL, hello", want: "VALUES ('a', 1, NULL, 'hello')"},
		{name: "keyword prefix and brackets", d: mysql.MySQL, input: "VALUES ('it''s', 2)", want: "VALUES ('it''s', 2)"},
		{name: "requoted literal", d: postgres.Postgres, input: `"bob", -1.5e3`, want: "VALUES ('bob', -1.5e3)"},
		{name: "keywords upper-cased", d: sqlite.SQLite, input: "true, default, null", want: "VALUES (TRUE, DEFAULT, NULL)"},
		{name: "typed values", d: mysql.MySQL, input: []any{nil, true, false, 3, int64(-7), 2.5, "x", "42"}, want: "VALUES (NULL, TRUE, FALSE, 3, -7, 2.5, 'x', 42)"},
		{name: "bare text with quote", d: mysql.MySQL, input: []string{"it's"}, want: "VALUES ('it''s')"},
		{name: "function value", d: postgres.Postgres, input: "now(), lower('ABC')", want: "VALUES (NOW(), LOWER('ABC'))"},
		{name: "cast literal", d: postgres.Postgres, input: "'2024-01-01'::date", want: "VALUES ('2024-01-01'::date)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := clause.Values(tt.d, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Render())
		})
	}
}

func TestValues_Errors(t *testing.T) {
	_, err := clause.Values(mysql.MySQL, `'a\b'`)
	assert.ErrorIs(t, err, clause.ErrForbiddenLiteral)
	assert.ErrorIs(t, err, ident.ErrForbiddenCharacters)

	_, err = clause.Values(mysql.MySQL, []any{"nul\x00byte"})
	assert.ErrorIs(t, err, ident.ErrForbiddenCharacters)

	_, err = clause.Values(mysql.MySQL, "*")
	assert.ErrorIs(t, err, clause.ErrWildcardMisuse)

	_, err = clause.Values(mysql.MySQL, "'open")
	assert.ErrorIs(t, err, clause.ErrMismatchedQuotes)

	_, err = clause.Values(mysql.MySQL, []any{struct{}{}})
	assert.ErrorIs(t, err, clause.ErrUnsupportedInput)
}

func TestOrderBy(t *testing.T) {
	tests := []struct {
		name  string
		d     *dialect.Dialect
		input any
		want  string
	}{
		{name: "nil", d: mysql.MySQL, input: nil, want: ""},
		{name: "single", d: mysql.MySQL, input: "name", want: "\nORDER BY `name`"},
		{name: "direction kept verbatim", d: mysql.MySQL, input: "ORDER BY name desc, id ASC", want: "\nORDER BY `name` desc, `id` ASC"},
		{name: "list", d: postgres.Postgres, input: []string{"`created_at` DESC", "id"}, want: "\nORDER BY \"created_at\" DESC, \"id\""},
		{name: "function with direction", d: sqlite.SQLite, input: "LOWER(name) DESC", want: "\nORDER BY LOWER(\"name\") DESC"},
		{name: "cast with direction", d: postgres.Postgres, input: "score::int DESC", want: "\nORDER BY \"score\"::int DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := clause.OrderBy(tt.d, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Render())
		})
	}

	_, err := clause.OrderBy(mysql.MySQL, "*")
	assert.ErrorIs(t, err, clause.ErrWildcardMisuse)
}

func TestLimit(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
		limit int
	}{
		{name: "nil", input: nil, want: ""},
		{name: "empty", input: "", want: ""},
		{name: "int", input: 10, want: "\nLIMIT 10", limit: 10},
		{name: "string", input: "25", want: "\nLIMIT 25", limit: 25},
		{name: "keyword", input: "limit 5", want: "\nLIMIT 5", limit: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := clause.Limit(mysql.MySQL, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Render())
			assert.Equal(t, tt.limit, c.Limit())
		})
	}

	for _, bad := range []any{0, -1, "abc", "10, 5", "10 OFFSET 5", 1.5} {
		_, err := clause.Limit(mysql.MySQL, bad)
		assert.Error(t, err, "%v", bad)
	}
	_, err := clause.Limit(mysql.MySQL, "10, 5")
	assert.ErrorIs(t, err, clause.ErrInvalidLimit)
}

func TestNew_UnknownClauseType(t *testing.T) {
	_, err := clause.New(mysql.MySQL, clause.Kind(99), "id")
	assert.ErrorIs(t, err, clause.ErrUnknownClauseType)

	_, err = clause.New(nil, clause.KindSelect, "id")
	assert.ErrorIs(t, err, dialect.ErrDialectRequired)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  clause.Kind
	}{
		{"select", clause.KindSelect},
		{"COLUMNS", clause.KindColumns},
		{"values", clause.KindValues},
		{"ORDER BY", clause.KindOrderBy},
		{"order-by", clause.KindOrderBy},
		{"orderby", clause.KindOrderBy},
		{"where", clause.KindWhere},
		{"limit", clause.KindLimit},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := clause.ParseKind(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := clause.ParseKind("having")
	assert.ErrorIs(t, err, clause.ErrUnknownClauseType)
}

func TestRender_Idempotent(t *testing.T) {
	tests := []struct {
		kind  clause.Kind
		d     *dialect.Dialect
		input any
	}{
		{clause.KindSelect, mysql.MySQL, "id, 'name', COUNT(*)"},
		{clause.KindSelect, postgres.Postgres, "`we\"ird`, amount::numeric, DATE_TRUNC('day', ts)"},
		{clause.KindColumns, mysql.MySQL, []string{"a", "`b``c`"}},
		{clause.KindValues, mysql.MySQL, []any{"it's", 1, nil, "x y"}},
		{clause.KindOrderBy, sqlite.SQLite, "name DESC, id"},
		{clause.KindWhere, mysql.MySQL, []string{"a = 1 OR b = 'x  AND y'", "c IS NULL"}},
		{clause.KindWhere, postgres.Postgres, "ts::date BETWEEN '2024-01-01' AND '2024-02-01' AND LOWER(name) = 'bob'"},
		{clause.KindWhere, mysql.MySQL, "(a = 1 OR b = 2) AND c = 3"},
		{clause.KindLimit, mysql.MySQL, 3},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			first, err := clause.New(tt.d, tt.kind, tt.input)
			require.NoError(t, err)

			second, err := clause.New(tt.d, tt.kind, first.Render())
			require.NoError(t, err, "re-normalizing %q", first.Render())

			assert.Equal(t, first.Render(), second.Render())
			assert.Equal(t, first.Items(), second.Items())
		})
	}
}

func TestNormalizer(t *testing.T) {
	n, err := clause.NewNormalizer(mysql.MySQL, clause.KindOrderBy, clause.WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)
	assert.Equal(t, clause.KindOrderBy, n.Kind())

	items, err := n.Normalize("a, b DESC")
	require.NoError(t, err)
	assert.Equal(t, []string{"`a`", "`b` DESC"}, items)

	logger, logs := testutil.NewCaptureLogger()
	captured, err := clause.NewNormalizer(mysql.MySQL, clause.KindWhere, clause.WithLogger(logger))
	require.NoError(t, err)
	_, err = captured.Normalize("a = 1 AND b = 2")
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "normalized where clause")
	assert.Contains(t, logs.String(), "connectors=1")

	w, err := clause.NewNormalizer(mysql.MySQL, clause.KindWhere)
	require.NoError(t, err)
	items, err = w.Normalize("a = 1 OR b = 2")
	require.NoError(t, err)
	assert.Equal(t, []string{"`a` = 1", "`b` = 2"}, items)

	l, err := clause.NewNormalizer(mysql.MySQL, clause.KindLimit)
	require.NoError(t, err)
	items, err = l.Normalize("LIMIT 7")
	require.NoError(t, err)
	assert.Equal(t, []string{"7"}, items)
}

func TestClause_ItemsIsCopy(t *testing.T) {
	c, err := clause.Select(mysql.MySQL, "a, b")
	require.NoError(t, err)

	items := c.Items()
	items[0] = "mutated"
	assert.Equal(t, "`a`, `b`", c.Render())
	assert.Same(t, mysql.MySQL, c.Dialect())
	assert.Equal(t, clause.KindSelect, c.Kind())
}
