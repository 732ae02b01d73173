//go:build cgo
// +build cgo

package drafts

import (
	_ "github.com/mattn/go-sqlite3"
)

const sqliteDriver = "sqlite3"

// sqliteDSN appends the connection options in the cgo driver's syntax.
func sqliteDSN(path string) string {
	return path + "?_journal_mode=WAL&_foreign_keys=off"
}
