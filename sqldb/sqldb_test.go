package sqldb

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// testDB returns an empty in-memory database. The pool is capped at one
// connection because every sqlite3 connection to ":memory:" would get its
// own database.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		db.Close()
	})
	return db
}
