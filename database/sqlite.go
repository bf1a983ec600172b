package database

import (
	"bytes"
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// sqliteDriverName is the go-sqlite3 driver with a Unicode-aware LOWER. SQLite's builtin
// LOWER only folds ASCII, while search patterns are lowered with strings.ToLower.
const sqliteDriverName = "sqlite3_unicode"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", unicodeLower, true)
		},
	})
}

func unicodeLower(v any) any {
	switch s := v.(type) {
	case string:
		return strings.ToLower(s)
	case []byte:
		if s == nil {
			return nil
		}
		return string(bytes.ToLower(s))
	default:
		return v
	}
}

func sqliteDialector(path string) gorm.Dialector {
	return &sqlite.Dialector{DriverName: sqliteDriverName, DSN: sqliteDSN(path)}
}
