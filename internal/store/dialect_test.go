package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewDialect(t *testing.T) {
	require.IsType(t, &SQLiteDialect{}, NewDialect(DialectSQLite))
	require.IsType(t, &PostgresDialect{}, NewDialect(DialectPostgres))
	// unknown falls back to SQLite
	require.IsType(t, &SQLiteDialect{}, NewDialect("unknown"))
}

func TestDialectBasics(t *testing.T) {
	sqlite, pg := &SQLiteDialect{}, &PostgresDialect{}

	require.Equal(t, "sqlite", sqlite.DriverName())
	require.Equal(t, "postgres", pg.DriverName())
	require.Equal(t, "?", sqlite.Placeholder(3))
	require.Equal(t, "$3", pg.Placeholder(3))
	require.NotEmpty(t, sqlite.InitStatements())
	require.Empty(t, pg.InitStatements())
	require.Len(t, sqlite.Migrations(), len(pg.Migrations()))
}

func TestIsDuplicateKeyError(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		err     error
		want    bool
	}{
		{"sqlite nil", &SQLiteDialect{}, nil, false},
		{"sqlite unique", &SQLiteDialect{}, errors.New("UNIQUE constraint failed: levels.name"), true},
		{"sqlite other", &SQLiteDialect{}, errors.New("no such table"), false},
		{"postgres nil", &PostgresDialect{}, nil, false},
		{"postgres duplicate", &PostgresDialect{}, errors.New(`pq: duplicate key value violates unique constraint "levels_name_key"`), true},
		{"postgres code", &PostgresDialect{}, errors.New("ERROR 23505"), true},
		{"postgres other", &PostgresDialect{}, errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.dialect.IsDuplicateKeyError(tt.err))
		})
	}
}

func TestQueryBuilder(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		query   string
		want    string
	}{
		{"sqlite untouched", &SQLiteDialect{}, "SELECT * FROM levels WHERE id = ? AND seed = ?", "SELECT * FROM levels WHERE id = ? AND seed = ?"},
		{"postgres numbered", &PostgresDialect{}, "SELECT * FROM levels WHERE id = ? AND seed = ?", "SELECT * FROM levels WHERE id = $1 AND seed = $2"},
		{"postgres none", &PostgresDialect{}, "SELECT COUNT(*) FROM levels", "SELECT COUNT(*) FROM levels"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NewQueryBuilder(tt.dialect).Build(tt.query))
		})
	}
}

func TestPostgresConfig(t *testing.T) {
	cfg := DefaultPostgresConfig()
	cfg.Password = "hunter2"

	require.Equal(t, "host=localhost port=5432 user=towerhouse password=hunter2 dbname=towerhouse sslmode=disable", cfg.DSN())
	require.NotContains(t, cfg.String(), "hunter2")
	require.Equal(t, 5*time.Minute, cfg.ConnMaxLifetime)

	def := DefaultConfig("data/levels.db")
	require.Equal(t, string(DialectSQLite), def.Driver)
	require.Equal(t, "data/levels.db", def.SQLitePath)
}
