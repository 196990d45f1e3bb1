// Package repotest provides database fixtures for repository and service
// tests.
package repotest

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/server/migrations"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// NewSQLiteDB returns a migrated in-memory SQLite database closed on test
// cleanup. A single connection keeps every caller on the same database.
func NewSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	db.SetMaxOpenConns(1)

	require.NoError(t, migrations.Up(context.Background(), db, dbx.SQLite))
	return db
}

// NewSQLiteFileDB returns a migrated file-backed SQLite database in a temp
// dir, opened with WAL and a busy timeout and several connections, for
// tests that exercise concurrent writers.
func NewSQLiteFileDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.db")
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_txlock=immediate", path)

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	db.SetMaxOpenConns(8)

	require.NoError(t, migrations.Up(context.Background(), db, dbx.SQLite))
	return db
}
