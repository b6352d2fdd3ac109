// Package storagetest opens throwaway in-memory stores for tests, applying
// the real sqlite migration files so test schemas cannot drift from the ones
// shipped under migrations/.
package storagetest

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Open returns an in-memory database with all up migrations applied and the
// same pragmas the runtime connection uses.
func Open(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		t.Fatalf("pragma: %v", err)
	}
	for _, stmt := range migrationStatements(t) {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("apply migration statement: %v\n%s", err, stmt)
		}
	}
	return db
}

func migrationStatements(t *testing.T) []string {
	t.Helper()

	_, self, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("caller lookup failed")
	}
	dir := filepath.Join(filepath.Dir(self), "..", "..", "migrations", "sqlite")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		t.Fatalf("no up migrations in %s", dir)
	}

	var stmts []string
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read migration %s: %v", name, err)
		}
		for _, stmt := range strings.Split(string(data), ";") {
			if strings.TrimSpace(stmt) != "" {
				stmts = append(stmts, stmt)
			}
		}
	}
	return stmts
}
