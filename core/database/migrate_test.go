package database

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestMigrationsDirPerDriver(t *testing.T) {
	if got, want := migrationsDir(Config{}), filepath.Join("migrations", "sqlite"); got != want {
		t.Fatalf("sqlite dir = %s, want %s", got, want)
	}
	if got, want := migrationsDir(Config{Driver: DriverPostgres}), filepath.Join("migrations", "postgres"); got != want {
		t.Fatalf("postgres dir = %s, want %s", got, want)
	}
}

func TestMigrateURL(t *testing.T) {
	url, err := migrateURL(Config{Path: "market.db"})
	if err != nil {
		t.Fatalf("sqlite url: %v", err)
	}
	if url != "sqlite://market.db" {
		t.Fatalf("sqlite url = %s", url)
	}

	url, err = migrateURL(Config{
		Driver: DriverPostgres,
		User:   "u", Password: "p", Host: "h", Port: "5432", Name: "db", SSLMode: "disable",
	})
	if err != nil {
		t.Fatalf("postgres url: %v", err)
	}
	if url != "postgres://u:p@h:5432/db?sslmode=disable" {
		t.Fatalf("postgres url = %s", url)
	}
}

// Both migration sets must let the store assign the ads id: inserts never
// supply it and rely on RETURNING id.
func TestAdsIDAssignedByStorePerDriver(t *testing.T) {
	_, self, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("caller lookup failed")
	}
	root := filepath.Join(filepath.Dir(self), "..", "..")

	pg, err := os.ReadFile(filepath.Join(root, "migrations", "postgres", "0002_create_ads.up.sql"))
	if err != nil {
		t.Fatalf("read postgres migration: %v", err)
	}
	if !strings.Contains(string(pg), "GENERATED ALWAYS AS IDENTITY") {
		t.Fatalf("postgres ads.id must be an identity column:\n%s", pg)
	}

	lite, err := os.ReadFile(filepath.Join(root, "migrations", "sqlite", "0002_create_ads.up.sql"))
	if err != nil {
		t.Fatalf("read sqlite migration: %v", err)
	}
	if !strings.Contains(string(lite), "id          INTEGER PRIMARY KEY") {
		t.Fatalf("sqlite ads.id must be a rowid alias:\n%s", lite)
	}
}
