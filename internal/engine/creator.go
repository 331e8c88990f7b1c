package engine

import (
	"context"
	"errors"
	"log"
	"os"

	"switrs-db/internal/dialect"
	"switrs-db/internal/errs"
	"switrs-db/internal/template"
)

// CreateTable renders the DDL template at ddlPath with the table name and
// primary key type and executes it. It is not idempotent: creating an
// existing table fails unless the DDL itself tolerates it.
func (b *Builder) CreateTable(ctx context.Context, name, pkType, ddlPath string) error {
	raw, err := os.ReadFile(ddlPath)
	if err != nil {
		return errs.IO("read ddl", ddlPath, err)
	}

	ddl, err := template.Render(string(raw), map[string]string{
		"table":   name,
		"pk_type": pkType,
	})
	if err != nil {
		var e *errs.Error
		if errors.As(err, &e) {
			e.Subject = ddlPath
		}
		return err
	}

	stmts := dialect.SplitStatements(ddl)
	if len(stmts) == 0 {
		log.Printf("Warning: %s renders no statements for table %s\n", ddlPath, name)
	}
	for _, stmt := range stmts {
		if _, err := b.conn.ExecContext(ctx, stmt); err != nil {
			return errs.Database("create table", name, err)
		}
	}
	return nil
}
