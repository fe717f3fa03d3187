package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// OpenTestDB opens an in-memory sqlite database with the schema applied.
// The connection pool is pinned to one connection because every in-memory
// sqlite connection sees its own database.
func OpenTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	for _, migration := range migrationFiles(t) {
		ddl, err := os.ReadFile(migration)
		require.NoError(t, err)
		_, err = db.Exec(string(ddl))
		require.NoError(t, err, "failed to apply %s", migration)
	}

	return db
}

// migrationFiles resolves the up migrations relative to this source file,
// so tests in any package share the same schema.
func migrationFiles(t *testing.T) []string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)

	pattern := filepath.Join(filepath.Dir(file), "..", "db", "migrations", "*.up.sql")
	matches, err := filepath.Glob(pattern)
	require.NoError(t, err)
	require.NotEmpty(t, matches, "no migrations found at %s", pattern)
	return matches
}
