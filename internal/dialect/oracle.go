package dialect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/sijms/go-ora/v2" // Oracle Driver
)

type OracleDialect struct{}

func (d *OracleDialect) Name() string { return "oracle" }

func (d *OracleDialect) AfterConnect(ctx context.Context, db *sql.DB) error {
	return nil
}

func (d *OracleDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *OracleDialect) DropQuery(table string) string {
	// No IF EXISTS before 23c; the caller treats a failure as a warning.
	return fmt.Sprintf("DROP TABLE %s CASCADE CONSTRAINTS", table)
}

func (d *OracleDialect) CountQuery(table string) string {
	return DefaultCountQuery(table)
}

func (d *OracleDialect) Placeholder(index int) string {
	// Oracle uses :1, :2, etc. (1-based index)
	return fmt.Sprintf(":%d", index+1)
}
