package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{"", DialectSQLite, false},
		{"SQLite", DialectSQLite, false},
		{"postgres", DialectPostgres, false},
		{"pgx", DialectPostgres, false},
		{"mysql", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDialect(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	dsn := sqliteDSN("/tmp/x.db")
	assert.Contains(t, dsn, "/tmp/x.db?")
	assert.Contains(t, dsn, "_pragma=foreign_keys%281%29")
	assert.Contains(t, dsn, "_pragma=journal_mode%28WAL%29")
	assert.Contains(t, dsn, "_txlock=immediate")
	assert.Contains(t, dsn, "_time_format=sqlite")

	custom := sqliteDSN("file:/tmp/x.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5)&_pragma=journal_mode(DELETE)&_txlock=deferred&_time_format=sqlite")
	assert.Equal(t, "file:/tmp/x.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5)&_pragma=journal_mode(DELETE)&_txlock=deferred&_time_format=sqlite", custom)

	assert.Equal(t, "/tmp/x.db", sqlitePath("file:/tmp/x.db?_txlock=immediate"))
}

func TestCreateConnectionPoolRejectsMemory(t *testing.T) {
	_, err := CreateConnectionPool(context.Background(), PoolConfig{Dialect: DialectSQLite, DatabaseURL: ":memory:"})
	assert.Error(t, err)

	_, err = CreateConnectionPool(context.Background(), PoolConfig{Dialect: DialectSQLite})
	assert.Error(t, err)
}
