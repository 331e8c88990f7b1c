package dialect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// GetDialect returns the Dialect implementation for a driver name.
func GetDialect(driver string) Dialect {
	switch driver {
	case "postgres":
		return &PostgresDialect{driver: "postgres"}
	case "pgx":
		return &PostgresDialect{driver: "pgx"}
	case "sqlserver", "mssql":
		return &MSSQLDialect{}
	case "oracle":
		return &OracleDialect{}
	case "mysql":
		return &MysqlDialect{}
	default: // sqlite
		return &SqliteDialect{}
	}
}

// DetectDriver guesses the driver from the shape of a DSN.
func DetectDriver(dsn string) string {
	lower := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"),
		strings.Contains(lower, "sslmode"):
		return "postgres"
	case strings.HasPrefix(lower, "sqlserver://"):
		return "sqlserver"
	case strings.HasPrefix(lower, "oracle://"):
		return "oracle"
	case strings.Contains(lower, "@tcp("), strings.Contains(lower, "@unix("):
		return "mysql"
	default:
		return "sqlite"
	}
}

// Open connects to the database and applies the dialect's session setup.
// The pool is capped at one connection: the build is sequential, and SQLite
// in-memory databases and PRAGMAs only live on a single connection.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, Dialect, error) {
	d := GetDialect(driver)

	db, err := sql.Open(d.Name(), dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	if err := d.AfterConnect(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to prepare session: %w", err)
	}

	return db, d, nil
}

// Ensure interface implementation
var _ Dialect = (*MysqlDialect)(nil)
var _ Dialect = (*PostgresDialect)(nil)
var _ Dialect = (*MSSQLDialect)(nil)
var _ Dialect = (*OracleDialect)(nil)
var _ Dialect = (*SqliteDialect)(nil)
