package cmd

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"switrs-db/internal/errs"
	"switrs-db/internal/schema"
)

func TestWithDataFiles(t *testing.T) {
	s := &schema.Schema{
		Tables: []schema.PrimaryTable{
			{Name: "collisions", Schema: "schema/collisions.sql"},
			{Name: "parties", Schema: "schema/parties.sql", Data: "data/parties.csv"},
		},
		LookupSchema: "schema/pk_table.sql",
	}

	out, err := withDataFiles(s, []string{"collisions=/extracts/CollisionRecords.txt"})
	if err != nil {
		t.Fatalf("withDataFiles: %v", err)
	}
	if out.Tables[0].Data != "/extracts/CollisionRecords.txt" {
		t.Errorf("collisions data = %q", out.Tables[0].Data)
	}
	if out.Tables[1].Data != "data/parties.csv" {
		t.Errorf("parties data = %q", out.Tables[1].Data)
	}
	if s.Tables[0].Data != "" {
		t.Error("withDataFiles mutated the input schema")
	}

	for _, bad := range []string{"collisions", "=x.csv", "victims=x.csv"} {
		if _, err := withDataFiles(s, []string{bad}); err == nil {
			t.Errorf("withDataFiles(%q): expected error", bad)
		}
	}
}

func TestTableLabelConcurrentUse(t *testing.T) {
	var label tableLabel
	if got := label.String(); got != "" {
		t.Fatalf("zero label = %q", got)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			label.Set(fmt.Sprintf("table_%d", i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = label.String()
		}
	}()
	wg.Wait()

	if got := label.String(); got != "table_999" {
		t.Errorf("label = %q, want table_999", got)
	}
}

func TestErrorLine(t *testing.T) {
	err := fmt.Errorf("build aborted: %w", errs.Database("create table", "collisions", errors.New("no such table: beat_type")))
	want := "database error: build aborted: create table collisions: no such table: beat_type"
	if got := errorLine(err); got != want {
		t.Errorf("errorLine() = %q, want %q", got, want)
	}
	if got := errorLine(errors.New("unknown flag")); got != "unknown flag" {
		t.Errorf("errorLine(plain) = %q", got)
	}
}
