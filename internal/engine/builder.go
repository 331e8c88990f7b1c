// Package engine creates tables from DDL templates and bulk loads them from
// CSV extracts.
package engine

import (
	"context"
	"database/sql"

	"switrs-db/internal/dialect"
)

// Conn is the database handle every operation runs on. *sql.DB, *sql.Conn
// and *sql.Tx all satisfy it.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NullPolicy decides which CSV cells are stored as NULL. Empty cells always
// are; DashAsNull additionally maps a lone "-".
type NullPolicy struct {
	DashAsNull bool
}

// Cell converts a trimmed CSV field into a bind value.
func (p NullPolicy) Cell(s string) sql.NullString {
	if s == "" || (p.DashAsNull && s == "-") {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Options tunes a Builder. The zero value is usable.
type Options struct {
	Nulls NullPolicy

	// OnTable is called after each table has been created and loaded.
	OnTable func(name string)

	// OnRow is called after each inserted row.
	OnRow func(table string, inserted int)
}

// Builder runs table creation and loading against one connection.
type Builder struct {
	conn    Conn
	dialect dialect.Dialect
	opts    Options
}

func New(conn Conn, d dialect.Dialect, opts Options) *Builder {
	return &Builder{conn: conn, dialect: d, opts: opts}
}
