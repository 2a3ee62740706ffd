package testsupport

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var memoryDBCounter atomic.Int64

// NewSQLiteMemoryDB opens the process wide shared in-memory database.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}

// NewIsolatedSQLiteDB opens a fresh named in-memory database so tests do not
// see each other's rows.
func NewIsolatedSQLiteDB() (*sql.DB, error) {
	name := fmt.Sprintf("file:translink_test_%d?mode=memory&cache=shared", memoryDBCounter.Add(1))
	db, err := sql.Open("sqlite3", name)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// NewBunSQLiteDB wraps an isolated in-memory database in a bun.DB.
func NewBunSQLiteDB() (*bun.DB, error) {
	sqldb, err := NewIsolatedSQLiteDB()
	if err != nil {
		return nil, err
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}
