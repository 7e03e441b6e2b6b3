package clause_test

import (
	"testing"

	"github.com/leapstack-labs/sqlclause/pkg/clause"
	"github.com/leapstack-labs/sqlclause/pkg/dialects/mysql"
	"github.com/leapstack-labs/sqlclause/pkg/dialects/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhere(t *testing.T) {
	tests := []struct {
		name       string
		input      any
		items      []string
		connectors []clause.BoolOp
		want       string
	}{
		{
			name:       "and",
			input:      "col_1 = 1 AND col_2 = 2",
			items:      []string{"`col_1` = 1", "`col_2` = 2"},
			connectors: []clause.BoolOp{clause.And},
			want:       "\nWHERE (`col_1` = 1) AND (`col_2` = 2)",
		},
		{
			name:       "list boundary forced to and",
			input:      []string{"col_1 = 1 OR col_2 = 2", "col_3 = 3 OR col_4 = 4"},
			items:      []string{"`col_1` = 1", "`col_2` = 2", "`col_3` = 3", "`col_4` = 4"},
			connectors: []clause.BoolOp{clause.Or, clause.And, clause.Or},
			want:       "\nWHERE (`col_1` = 1) OR (`col_2` = 2) AND (`col_3` = 3) OR (`col_4` = 4)",
		},
		{
			name:       "single predicate",
			input:      "WHERE status = 'active'",
			items:      []string{"`status` = 'active'"},
			connectors: nil,
			want:       "\nWHERE (`status` = 'active')",
		},
		{
			name:       "lower case connectors",
			input:      "a = 1 or b = 2 and c = 3",
			items:      []string{"`a` = 1", "`b` = 2", "`c` = 3"},
			connectors: []clause.BoolOp{clause.Or, clause.And},
			want:       "\nWHERE (`a` = 1) OR (`b` = 2) AND (`c` = 3)",
		},
		{
			name:       "bracketed predicates",
			input:      "(a = 1) AND [b = 2]",
			items:      []string{"`a` = 1", "`b` = 2"},
			connectors: []clause.BoolOp{clause.And},
			want:       "\nWHERE (`a` = 1) AND (`b` = 2)",
		},
		{
			name:       "bracketed group flattened",
			input:      "(a = 1 OR b = 2) AND c = 3",
			items:      []string{"`a` = 1", "`b` = 2", "`c` = 3"},
			connectors: []clause.BoolOp{clause.Or, clause.And},
			want:       "\nWHERE (`a` = 1) OR (`b` = 2) AND (`c` = 3)",
		},
		{
			name:       "nested groups flattened",
			input:      "x = 0 OR ((a = 1 AND b = 2) OR c = 3)",
			items:      []string{"`x` = 0", "`a` = 1", "`b` = 2", "`c` = 3"},
			connectors: []clause.BoolOp{clause.Or, clause.And, clause.Or},
			want:       "\nWHERE (`x` = 0) OR (`a` = 1) AND (`b` = 2) OR (`c` = 3)",
		},
		{
			name:       "bracketed between stays one predicate",
			input:      "(age BETWEEN 18 AND 30) OR vip = 1",
			items:      []string{"`age` BETWEEN 18 AND 30", "`vip` = 1"},
			connectors: []clause.BoolOp{clause.Or},
			want:       "\nWHERE (`age` BETWEEN 18 AND 30) OR (`vip` = 1)",
		},
		{
			name:       "connector inside literal",
			input:      "name = 'salt AND pepper'",
			items:      []string{"`name` = 'salt AND pepper'"},
			connectors: nil,
			want:       "\nWHERE (`name` = 'salt AND pepper')",
		},
		{
			name:       "between keeps its and",
			input:      "age BETWEEN 18 AND 30 AND active = 1",
			items:      []string{"`age` BETWEEN 18 AND 30", "`active` = 1"},
			connectors: []clause.BoolOp{clause.And},
			want:       "\nWHERE (`age` BETWEEN 18 AND 30) AND (`active` = 1)",
		},
		{
			name:       "whitespace collapsed outside quotes",
			input:      "  `note`   LIKE   'a  b%'  ",
			items:      []string{"`note` LIKE 'a  b%'"},
			connectors: nil,
			want:       "\nWHERE (`note` LIKE 'a  b%')",
		},
		{
			name:       "operator without spaces",
			input:      "qty>=10",
			items:      []string{"`qty` >=10"},
			connectors: nil,
			want:       "\nWHERE (`qty` >=10)",
		},
		{
			name:       "function operand",
			input:      "lower(email) = 'a@b.c'",
			items:      []string{"LOWER(`email`) = 'a@b.c'"},
			connectors: nil,
			want:       "\nWHERE (LOWER(`email`) = 'a@b.c')",
		},
		{
			name:       "identifier containing or",
			input:      "color = 'red' AND origin IS NULL",
			items:      []string{"`color` = 'red'", "`origin` IS NULL"},
			connectors: []clause.BoolOp{clause.And},
			want:       "\nWHERE (`color` = 'red') AND (`origin` IS NULL)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := clause.Where(mysql.MySQL, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.items, c.Items())
			assert.Equal(t, tt.connectors, c.Connectors())
			assert.Equal(t, tt.want, c.Render())
			assert.Len(t, c.Connectors(), len(c.Items())-1)
		})
	}
}

func TestWhere_ItemsRoundTrip(t *testing.T) {
	for _, input := range []string{
		"(a = 1 OR b = 2) AND c = 3",
		"(priority = 1 AND (owner IS NULL OR owner = 'me'))",
	} {
		t.Run(input, func(t *testing.T) {
			first, err := clause.Where(mysql.MySQL, input)
			require.NoError(t, err)

			second, err := clause.Where(mysql.MySQL, first.Items())
			require.NoError(t, err)
			assert.Equal(t, first.Items(), second.Items())
		})
	}
}

func TestWhere_Empty(t *testing.T) {
	for _, input := range []any{nil, "", "WHERE", []string{}} {
		c, err := clause.Where(mysql.MySQL, input)
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
		assert.Empty(t, c.Connectors())
		assert.Equal(t, "", c.Render())
	}
}

func TestWhere_Postgres(t *testing.T) {
	c, err := clause.Where(postgres.Postgres, "created_at::date = '2024-01-01' OR `user` IS NULL")
	require.NoError(t, err)
	assert.Equal(t, []string{`"created_at"::date = '2024-01-01'`, `"user" IS NULL`}, c.Items())
	assert.Equal(t, "\nWHERE (\"created_at\"::date = '2024-01-01') OR (\"user\" IS NULL)", c.Render())
}

func TestWhere_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		wantErr error
	}{
		{name: "dangling connector", input: "a = 1 AND", wantErr: clause.ErrEmptyPredicate},
		{name: "dangling connector in group", input: "(a = 1 OR) AND b = 2", wantErr: clause.ErrEmptyPredicate},
		{name: "wildcard operand", input: "* = 1", wantErr: clause.ErrWildcardMisuse},
		{name: "mismatched operand quote", input: "`a = 1", wantErr: clause.ErrMismatchedQuotes},
		{name: "unsupported element", input: []any{"a = 1", 7}, wantErr: clause.ErrUnsupportedInput},
		{name: "unsupported input", input: 3.14, wantErr: clause.ErrUnsupportedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := clause.Where(mysql.MySQL, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPredicate(t *testing.T) {
	c, err := clause.Where(mysql.MySQL, "a = 1 OR b = 2")
	require.NoError(t, err)

	p := c.Predicate()
	require.NotNil(t, p)
	assert.False(t, p.IsLeaf())
	require.Len(t, p.Items, 2)
	assert.True(t, p.Items[0].IsLeaf())
	assert.Equal(t, "`a` = 1", p.Items[0].Text)
	assert.Equal(t, "(`a` = 1) OR (`b` = 2)", p.String())

	assert.Equal(t, "AND", clause.And.String())
	assert.Equal(t, "OR", clause.Or.String())

	sel, err := clause.Select(mysql.MySQL, "a")
	require.NoError(t, err)
	assert.Nil(t, sel.Predicate())
}
