// Package sqldb implements the database interfaces of core and auth using
// database/sql and prepared statements.
package sqldb

import (
	"database/sql"
)

func mustPrepare(db *sql.DB, query string) *sql.Stmt {
	stmt, err := db.Prepare(query)
	if err != nil {
		panic(err)
	}
	return stmt
}
