package db

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"log"
)

// QueryRower dipakai oleh *sql.DB dan *sql.Tx (keduanya punya QueryRow).
type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// Execer dipakai untuk ALTER TABLE on-demand.
type Execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

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
		// kalau bad connection, jangan spam log, cukup false
		if errors.Is(err, driver.ErrBadConn) {
			return false
		}
		return false
	}
	return name.Valid && name.String != ""
}

func HasColumn(q QueryRower, table, column string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		  AND column_name = ?
		LIMIT 1
	`, table, column).Scan(&name)

	if err != nil {
		if errors.Is(err, driver.ErrBadConn) {
			return false
		}
		return false
	}
	return name.Valid && name.String != ""
}

type queryExecer interface {
	QueryRower
	Execer
}

// EnsureColumn menambahkan kolom opsional saat pertama kali dibutuhkan.
// definition contoh: "DOUBLE NULL". Kolom yang sudah ada dibiarkan.
func EnsureColumn(q queryExecer, table, column, definition string) bool {
	if HasColumn(q, table, column) {
		return true
	}
	if _, err := q.Exec("ALTER TABLE " + table + " ADD COLUMN " + column + " " + definition); err != nil {
		log.Printf("[SCHEMA] gagal tambah kolom %s.%s: %v", table, column, err)
		return false
	}
	log.Printf("[SCHEMA] kolom %s.%s ditambahkan", table, column)
	return true
}

// NullIfEmpty helps store optional strings without wiping existing data.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
