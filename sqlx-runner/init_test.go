package runner

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/mgutz/logxi"

	_ "modernc.org/sqlite"
)

func init() {
	logxi.Suppress(true)
}

// newTestDB opens an in-memory sqlite database. A single connection keeps
// every query on the same memory database.
func newTestDB(t *testing.T) *DB {
	dbx, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	dbx.SetMaxOpenConns(1)
	t.Cleanup(func() { dbx.Close() })
	return NewDBFromSqlx(dbx)
}

func installFixtures(t *testing.T, db *DB) {
	sqls := []string{
		`CREATE TABLE people (id INTEGER PRIMARY KEY, name TEXT, email TEXT)`,
		`INSERT INTO people (id, name, email) VALUES (1, 'Mario', 'mario@acme.com')`,
		`INSERT INTO people (id, name, email) VALUES (2, 'John', 'john@acme.com')`,
		`INSERT INTO people (id, name, email) VALUES (3, 'Grant', NULL)`,
	}
	for _, sql := range sqls {
		db.DB.MustExec(sql)
	}
}
