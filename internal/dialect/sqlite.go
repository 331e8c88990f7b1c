package dialect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // registers "sqlite"
)

// SqliteDialect targets modernc.org/sqlite, the default engine.
type SqliteDialect struct{}

func (d *SqliteDialect) Name() string { return "sqlite" }

// AfterConnect enables foreign key enforcement, which SQLite leaves off by
// default. Without it lookup references are never checked.
func (d *SqliteDialect) AfterConnect(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON")
	return err
}

func (d *SqliteDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *SqliteDialect) DropQuery(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
}

func (d *SqliteDialect) CountQuery(table string) string {
	return DefaultCountQuery(table)
}

func (d *SqliteDialect) Placeholder(index int) string {
	return "?"
}
