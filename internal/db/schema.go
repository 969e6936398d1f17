package db

import (
	"database/sql"
)

type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// HasTable checks information_schema for a table in the current database.
// Used by the health surface to report missing migrations instead of
// failing queries one by one.
func HasTable(q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)

	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// NullIfEmpty stores optional strings as NULL instead of "".
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
