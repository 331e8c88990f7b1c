package dialect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql" // MySQL Driver
)

type MysqlDialect struct{}

func (d *MysqlDialect) Name() string { return "mysql" }

func (d *MysqlDialect) AfterConnect(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 1")
	return err
}

func (d *MysqlDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *MysqlDialect) DropQuery(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
}

func (d *MysqlDialect) CountQuery(table string) string {
	return DefaultCountQuery(table)
}

func (d *MysqlDialect) Placeholder(index int) string {
	return "?"
}
