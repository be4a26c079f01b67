package database

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := Connect(Config{Driver: "mysql", DSN: "x"})
	require.Error(t, err)
}

func TestDDLPlaceholders(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, DSN: ":memory:", MaxConns: 1})
	require.NoError(t, err)
	defer db.Close()

	out := DDL(db, "CREATE TABLE t (id {{serial}}, at {{timestamp}})")
	assert.Equal(t, "CREATE TABLE t (id INTEGER PRIMARY KEY AUTOINCREMENT, at DATETIME)", out)
}

func TestIsUniqueViolation(t *testing.T) {
	ctx := context.Background()
	db, err := Connect(Config{Driver: DriverSQLite, DSN: ":memory:", MaxConns: 1})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, ExecScript(ctx, db, `
CREATE TABLE t (id {{serial}}, name TEXT UNIQUE NOT NULL);
CREATE INDEX idx_t_name ON t(name);
`))
	_, err = db.ExecContext(ctx, `INSERT INTO t (name) VALUES ('a')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO t (name) VALUES ('a')`)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestQuoteLiteral(t *testing.T) {
	assert.Equal(t, "'Asia/Shanghai'", quoteLiteral("Asia/Shanghai"))
	assert.Equal(t, "'it''s'", quoteLiteral("it's"))
}
