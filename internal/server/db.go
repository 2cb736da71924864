package server

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// OpenDB opens the SQLite database at path and applies the pragmas the
// server relies on. Migrations are run separately by the caller.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA busy_timeout=5000;`,
		`PRAGMA synchronous=NORMAL;`,
		`PRAGMA foreign_keys=ON;`,
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	// SQLite serializes writers; one writer connection avoids SQLITE_BUSY
	// churn when concurrent inserts race on the allocator.
	db.SetMaxOpenConns(1)

	return db, nil
}
