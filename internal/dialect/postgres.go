package dialect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "github.com/lib/pq"              // registers "postgres"
)

// PostgresDialect serves both the lib/pq ("postgres") and pgx ("pgx")
// drivers; they share SQL syntax and differ only in the registered name.
type PostgresDialect struct {
	driver string
}

func (d *PostgresDialect) Name() string {
	if d.driver == "" {
		return "postgres"
	}
	return d.driver
}

func (d *PostgresDialect) AfterConnect(ctx context.Context, db *sql.DB) error {
	return nil
}

func (d *PostgresDialect) InsertQuery(table string, cols []string) string {
	// Generate placeholders ($1, $2, ...)
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *PostgresDialect) DropQuery(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)
}

func (d *PostgresDialect) CountQuery(table string) string {
	return DefaultCountQuery(table)
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}
