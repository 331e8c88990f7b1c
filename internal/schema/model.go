package schema

import "path/filepath"

// LookupTable is a small code -> description table referenced by primary
// tables. Schema overrides the shared lookup DDL template when set.
type LookupTable struct {
	PKType string `toml:"pk_type" yaml:"pk_type"`
	Data   string `toml:"data" yaml:"data"`
	Schema string `toml:"schema,omitempty" yaml:"schema,omitempty"`
}

// ResolveDDL returns the DDL template path for the table.
func (l LookupTable) ResolveDDL(defaultDDL string) string {
	if l.Schema != "" {
		return l.Schema
	}
	return defaultDDL
}

// PrimaryTable is a top-level data table. Data is optional; without it the
// table is created empty.
type PrimaryTable struct {
	Name   string `toml:"name" yaml:"name"`
	Schema string `toml:"schema" yaml:"schema"`
	Data   string `toml:"data,omitempty" yaml:"data,omitempty"`
}

// Schema is the declarative build specification. It is read-only after Load.
type Schema struct {
	Tables       []PrimaryTable
	LookupSchema string
	LookupTables map[string]LookupTable
}

// Resolve returns a copy of s with every relative path joined to baseDir.
func (s *Schema) Resolve(baseDir string) *Schema {
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}

	out := &Schema{
		Tables:       make([]PrimaryTable, len(s.Tables)),
		LookupSchema: join(s.LookupSchema),
		LookupTables: make(map[string]LookupTable, len(s.LookupTables)),
	}
	for i, t := range s.Tables {
		out.Tables[i] = PrimaryTable{Name: t.Name, Schema: join(t.Schema), Data: join(t.Data)}
	}
	for name, l := range s.LookupTables {
		out.LookupTables[name] = LookupTable{PKType: l.PKType, Data: join(l.Data), Schema: join(l.Schema)}
	}
	return out
}

// LookupNames returns the lookup table names in sorted order.
func (s *Schema) LookupNames() []string {
	return SortedNames(s.LookupTables)
}

// Table kinds.
const (
	KindLookup  = "lookup"
	KindPrimary = "primary"
)

// Table is one step of the build plan.
type Table struct {
	Name         string
	Kind         string
	PKType       string
	DDL          string // template path
	Data         string // CSV path, may be empty for primary tables
	Dependencies []string
}

// BuildResult reports the outcome of building one table.
type BuildResult struct {
	TableName string
	Kind      string
	Rows      int
	Actual    int
	Status    string
	ErrorMsg  string
}
