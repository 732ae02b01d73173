//go:build !cgo
// +build !cgo

package drafts

import (
	_ "modernc.org/sqlite"
)

const sqliteDriver = "sqlite"

// sqliteDSN appends the connection options in the pure-Go driver's syntax.
func sqliteDSN(path string) string {
	return path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(0)"
}
