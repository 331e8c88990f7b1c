package dialect

import (
	"context"
	"database/sql"
)

// Dialect abstracts database-specific SQL generation.
type Dialect interface {
	// Name is the canonical driver name passed to sql.Open.
	Name() string

	// AfterConnect runs session setup on a fresh connection pool.
	AfterConnect(ctx context.Context, db *sql.DB) error

	// Query Generation
	InsertQuery(table string, cols []string) string
	DropQuery(table string) string
	CountQuery(table string) string
	Placeholder(index int) string // Returns ?, $1, @p1, :1
}
