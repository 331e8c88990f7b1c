package engine

import (
	"context"
	"fmt"
	"log"

	"switrs-db/internal/schema"
)

// Result statuses.
const (
	StatusLoaded     = "LOADED"
	StatusCreated    = "CREATED" // primary table without data
	StatusFailed     = "FAILED"
	StatusVerified   = "OK"
	StatusMismatch   = "MISMATCH"
	StatusVerifyFail = "VERIFY_FAIL"
)

// InitLookupTables creates and loads every lookup table, each with its own
// DDL override or defaultDDL. Lookup tables are independent of each other;
// they are processed in name order. The first failure aborts the run and
// tables built before it are left in place.
func (b *Builder) InitLookupTables(ctx context.Context, lookups map[string]schema.LookupTable, defaultDDL string) ([]schema.BuildResult, error) {
	var results []schema.BuildResult

	for _, name := range schema.SortedNames(lookups) {
		table := lookups[name]
		log.Printf("Loading lookup table %s", name)

		res := schema.BuildResult{TableName: name, Kind: schema.KindLookup}
		err := b.CreateTable(ctx, name, table.PKType, table.ResolveDDL(defaultDDL))
		if err == nil {
			res.Rows, err = b.LoadData(ctx, name, table.Data)
		}
		if err != nil {
			res.Status, res.ErrorMsg = StatusFailed, err.Error()
			return append(results, res), err
		}

		res.Status = StatusLoaded
		results = append(results, res)
		b.tableDone(name)
	}

	return results, nil
}

// CreatePrimaryTables creates each primary table in listed order and loads it
// when it names a data file. Lookup tables must already exist.
func (b *Builder) CreatePrimaryTables(ctx context.Context, tables []schema.PrimaryTable) ([]schema.BuildResult, error) {
	var results []schema.BuildResult

	for _, table := range tables {
		log.Printf("Creating table %s", table.Name)

		res := schema.BuildResult{TableName: table.Name, Kind: schema.KindPrimary, Status: StatusCreated}
		err := b.CreateTable(ctx, table.Name, "", table.Schema)
		if err == nil && table.Data != "" {
			res.Status = StatusLoaded
			res.Rows, err = b.LoadData(ctx, table.Name, table.Data)
		}
		if err != nil {
			res.Status, res.ErrorMsg = StatusFailed, err.Error()
			return append(results, res), err
		}

		results = append(results, res)
		b.tableDone(table.Name)
	}

	return results, nil
}

// Build runs the full build: every lookup table, then every primary table.
// Results cover every table attempted, including the one that failed.
func (b *Builder) Build(ctx context.Context, s *schema.Schema) ([]schema.BuildResult, error) {
	results, err := b.InitLookupTables(ctx, s.LookupTables, s.LookupSchema)
	if err != nil {
		return results, err
	}

	primary, err := b.CreatePrimaryTables(ctx, s.Tables)
	return append(results, primary...), err
}

// Drop removes every table named in s: primary tables in reverse listed
// order, then lookup tables. Failures are logged and skipped. It returns the
// number of tables dropped.
func (b *Builder) Drop(ctx context.Context, s *schema.Schema) int {
	var names []string
	for i := len(s.Tables) - 1; i >= 0; i-- {
		names = append(names, s.Tables[i].Name)
	}
	names = append(names, s.LookupNames()...)

	dropped := 0
	for _, name := range names {
		if _, err := b.conn.ExecContext(ctx, b.dialect.DropQuery(name)); err != nil {
			log.Printf("Warning: Failed to drop %s: %v (continuing...)\n", name, err)
			continue
		}
		dropped++
		if dropped%5 == 0 || dropped == len(names) {
			log.Printf("Dropped %d/%d tables...", dropped, len(names))
		}
	}
	return dropped
}

// Verify re-counts the rows of every built table.
func (b *Builder) Verify(ctx context.Context, results []schema.BuildResult) []schema.BuildResult {
	verified := make([]schema.BuildResult, 0, len(results))
	for _, res := range results {
		if res.Status == StatusFailed {
			verified = append(verified, res)
			continue
		}

		var count int
		err := b.conn.QueryRowContext(ctx, b.dialect.CountQuery(res.TableName)).Scan(&count)

		switch {
		case err != nil:
			res.Status = StatusVerifyFail
			res.ErrorMsg = err.Error()
		case count != res.Rows:
			res.Status = StatusMismatch
			res.ErrorMsg = fmt.Sprintf("loaded %d rows but table holds %d", res.Rows, count)
		default:
			res.Status = StatusVerified
		}
		res.Actual = count
		verified = append(verified, res)
	}
	return verified
}

func (b *Builder) tableDone(name string) {
	if b.opts.OnTable != nil {
		b.opts.OnTable(name)
	}
}
