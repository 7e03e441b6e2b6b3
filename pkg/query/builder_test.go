package query

import (
	"testing"

	"github.com/leapstack-labs/sqlclause/pkg/clause"
	"github.com/leapstack-labs/sqlclause/pkg/dialect"
	"github.com/leapstack-labs/sqlclause/pkg/dialects/mysql"
	"github.com/leapstack-labs/sqlclause/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlclause/pkg/ident"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder(t *testing.T, d *dialect.Dialect) *Builder {
	t.Helper()
	b, err := NewBuilder(d)
	require.NoError(t, err)
	return b
}

func TestBuilder_Table(t *testing.T) {
	b := newBuilder(t, mysql.MySQL)

	tests := []struct {
		input   string
		want    string
		wantErr error
	}{
		{input: "users", want: "`users`"},
		{input: "shop.users", want: "`shop`.`users`"},
		{input: " shop . users ", want: "`shop`.`users`"},
		{input: `"order"`, want: "`order`"},
		{input: "order", wantErr: ident.ErrReservesKeyword},
		{input: "users; --", wantErr: ident.ErrForbiddenCharacters},
		{input: "", wantErr: ident.ErrEmptyIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := b.Table(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := b.Table("a.b.c")
	assert.Error(t, err)
}

func TestBuilder_Select(t *testing.T) {
	tests := []struct {
		name string
		d    *dialect.Dialect
		opts SelectOptions
		want string
	}{
		{
			name: "everything",
			d:    mysql.MySQL,
			want: "SELECT * FROM `users`;",
		},
		{
			name: "all clauses",
			d:    mysql.MySQL,
			opts: SelectOptions{
				Columns: []string{"id", "name"},
				Where:   "age > 18 AND active = 1",
				OrderBy: "name DESC",
				Limit:   10,
			},
			want: "SELECT `id`, `name` FROM `users`\nWHERE (`age` > 18) AND (`active` = 1)\nORDER BY `name` DESC\nLIMIT 10;",
		},
		{
			name: "postgres quoting and cast",
			d:    postgres.Postgres,
			opts: SelectOptions{
				Columns: "COUNT(*)",
				Where:   "created_at::date = '2024-01-01'",
			},
			want: "SELECT COUNT(*) FROM \"users\"\nWHERE (\"created_at\"::date = '2024-01-01');",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newBuilder(t, tt.d).Select("users", tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuilder_SelectErrors(t *testing.T) {
	b := newBuilder(t, mysql.MySQL)

	_, err := b.Select("users", SelectOptions{Columns: "*, id"})
	assert.ErrorIs(t, err, clause.ErrWildcardMisuse)

	_, err = b.Select("users", SelectOptions{Where: "a = 1 AND"})
	assert.ErrorIs(t, err, clause.ErrEmptyPredicate)

	_, err = b.Select("users", SelectOptions{OrderBy: "*"})
	assert.ErrorIs(t, err, clause.ErrWildcardMisuse)

	_, err = b.Select("users", SelectOptions{Limit: -3})
	assert.ErrorIs(t, err, clause.ErrInvalidLimit)
}

func TestBuilder_Insert(t *testing.T) {
	b := newBuilder(t, mysql.MySQL)

	got, err := b.Insert("users", "id, name", []any{1, "ada"})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `users` (`id`, `name`) VALUES (1, 'ada');", got)

	got, err = b.Insert("users", nil, "2, 'bob'")
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `users` VALUES (2, 'bob');", got)

	_, err = b.Insert("users", "id, name", []any{1})
	assert.ErrorIs(t, err, ErrColumnValueMismatch)

	_, err = b.Insert("users", "id", nil)
	assert.ErrorIs(t, err, ErrNoValues)
}

func TestBuilder_Update(t *testing.T) {
	b := newBuilder(t, postgres.Postgres)

	got, err := b.Update("users", []string{"name", "email"}, []any{"ada", nil}, "id = 1")
	require.NoError(t, err)
	assert.Equal(t, "UPDATE \"users\" SET \"name\" = 'ada', \"email\" = NULL\nWHERE (\"id\" = 1);", got)

	_, err = b.Update("users", nil, []any{"x"}, "id = 1")
	assert.ErrorIs(t, err, ErrNoColumns)

	_, err = b.Update("users", "a, b", "1", "id = 1")
	assert.ErrorIs(t, err, ErrColumnValueMismatch)
}

func TestBuilder_Delete(t *testing.T) {
	b := newBuilder(t, mysql.MySQL)

	got, err := b.Delete("users", "id = 1 OR id = 2")
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM `users`\nWHERE (`id` = 1) OR (`id` = 2);", got)

	for _, where := range []any{nil, "", "WHERE"} {
		_, err = b.Delete("users", where)
		assert.ErrorIs(t, err, ErrUnboundedDelete)
	}
}

func TestNewBuilder_RequiresDialect(t *testing.T) {
	_, err := NewBuilder(nil)
	assert.ErrorIs(t, err, dialect.ErrDialectRequired)
}

func TestColumnName(t *testing.T) {
	tests := []struct {
		item string
		want string
		ok   bool
	}{
		{"`id`", "id", true},
		{"`users`.`id`", "id", true},
		{`"we""ird"`, `we"ird`, true},
		{"`a.b`", "a.b", true},
		{"*", "", false},
		{"`u`.*", "", false},
		{"COUNT(*)", "", false},
		{`"ts"::date`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.item, func(t *testing.T) {
			got, ok := columnName(tt.item)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
