package engine_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"switrs-db/internal/dialect"
	"switrs-db/internal/engine"
)

/*
Package-level test helpers
*/

func newBuilder(tb testing.TB, opts engine.Options) (*engine.Builder, *sql.DB) {
	tb.Helper()
	db, d, err := dialect.Open(context.Background(), "sqlite", ":memory:")
	if err != nil {
		tb.Fatalf("open sqlite :memory:: %v", err)
	}
	tb.Cleanup(func() { _ = db.Close() })
	return engine.New(db, d, opts), db
}

func fixture(name string) string {
	return filepath.Join("testdata", name)
}

func writeFile(tb testing.TB, dir, name, content string) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tb.Fatalf("write %s: %v", name, err)
	}
	return path
}

func countRows(tb testing.TB, db *sql.DB, table string) int {
	tb.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		tb.Fatalf("count %s: %v", table, err)
	}
	return n
}

func mustCreate(tb testing.TB, b *engine.Builder, name, pkType, ddl string) {
	tb.Helper()
	if err := b.CreateTable(context.Background(), name, pkType, ddl); err != nil {
		tb.Fatalf("CreateTable(%s): %v", name, err)
	}
}
