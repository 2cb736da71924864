package server

import (
	"path/filepath"
	"testing"
)

// OpenTestStore opens a migrated SQLite store in t.TempDir() and registers
// cleanup.
func OpenTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.sqlite")

	db, err := OpenDB(path)
	if err != nil {
		t.Fatalf("open test sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := RunMigrations(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return NewSQLiteStore(db)
}
