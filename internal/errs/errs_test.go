package errs_test

import (
	"errors"
	"io/fs"
	"testing"

	"switrs-db/internal/errs"
)

func TestErrorMatchesKindAndCause(t *testing.T) {
	err := errs.IO("read ddl", "schema/pk_table.sql", fs.ErrNotExist)

	if !errors.Is(err, errs.ErrIO) {
		t.Errorf("expected ErrIO kind, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected cause fs.ErrNotExist to be reachable")
	}
	if errors.Is(err, errs.ErrDatabase) {
		t.Errorf("IO error must not match ErrDatabase")
	}

	want := "read ddl schema/pk_table.sql: file does not exist"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestKindOf(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), errs.Configf("load", "Schemas.toml", "missing %q", "tables"))
	if got := errs.KindOf(wrapped); got != errs.ErrConfig {
		t.Errorf("KindOf = %v, want ErrConfig", got)
	}
	if got := errs.KindOf(errors.New("plain")); got != nil {
		t.Errorf("KindOf(plain) = %v, want nil", got)
	}
}
