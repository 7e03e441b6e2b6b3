package sqlite

import (
	"context"
	"testing"

	"github.com/leapstack-labs/sqlclause/internal/testutil"
	"github.com/leapstack-labs/sqlclause/pkg/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSQLiteDSN(t *testing.T) {
	tests := []struct {
		name   string
		config adapter.Config
		want   string
	}{
		{name: "default in-memory", config: adapter.Config{}, want: ":memory:"},
		{name: "path wins over database", config: adapter.Config{Path: "app.db", Database: "other.db"}, want: "app.db"},
		{name: "database as path", config: adapter.Config{Database: "data/app.db"}, want: "data/app.db"},
		{
			name: "pragmas",
			config: adapter.Config{
				Path:    "app.db",
				Options: map[string]string{"journal_mode": "wal", "foreign_keys": "1"},
			},
			want: "file:app.db?_pragma=foreign_keys%281%29&_pragma=journal_mode%28wal%29",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildSQLiteDSN(tt.config))
		})
	}
}

func TestAdapter_InMemory(t *testing.T) {
	ctx := context.Background()
	adp := New(testutil.NewTestLogger(t))
	require.NoError(t, adp.Connect(ctx, adapter.Config{Type: "sqlite"}))
	defer func() { _ = adp.Close() }()

	_, err := adp.Exec(ctx, `CREATE TABLE "users" ("id" INTEGER PRIMARY KEY, "name" TEXT NOT NULL, "email" TEXT)`)
	require.NoError(t, err)

	n, err := adp.Exec(ctx, `INSERT INTO "users" ("id", "name", "email") VALUES (1, 'ada', NULL), (2, 'bob', 'b@x.io')`)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	meta, err := adp.GetTableMetadata(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, "main", meta.Schema)
	assert.Equal(t, []string{"id", "name", "email"}, meta.ColumnNames())
	assert.True(t, meta.Columns[0].PrimaryKey)
	assert.False(t, meta.Columns[1].Nullable)
	assert.True(t, meta.Columns[2].Nullable)
	assert.Equal(t, 1, meta.Columns[0].Position)
	assert.Equal(t, int64(2), meta.RowCount)

	rows, err := adp.Query(ctx, `SELECT "name" FROM "users" ORDER BY "id"`)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"ada", "bob"}, names)

	_, err = adp.GetTableMetadata(ctx, "ghost")
	var notFound *adapter.TableNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestAdapter_Registry(t *testing.T) {
	for _, name := range []string{"sqlite", "sqlite3"} {
		factory, ok := adapter.Get(name)
		require.True(t, ok, name)
		adp, ok := factory(nil).(*Adapter)
		require.True(t, ok)
		assert.Equal(t, "sqlite", adp.DialectName())
	}
}
