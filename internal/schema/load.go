package schema

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"switrs-db/internal/errs"
)

// document mirrors the on-disk layout. The lookup mapping is accepted under
// both lookup_tables and lookup-tables.
type document struct {
	Tables           []PrimaryTable         `toml:"tables" yaml:"tables"`
	LookupSchema     string                 `toml:"lookup_schema" yaml:"lookup_schema"`
	LookupTables     map[string]LookupTable `toml:"lookup_tables" yaml:"lookup_tables"`
	LookupTablesDash map[string]LookupTable `toml:"lookup-tables" yaml:"lookup-tables"`
}

// Load reads the build specification at path. The format is chosen by
// extension: .yaml/.yml are YAML, anything else is TOML.
func Load(path string) (*Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.IO("read build spec", path, err)
	}
	return Parse(raw, formatOf(path), path)
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}

// Parse decodes raw as the given format ("toml" or "yaml"). name is only used
// in error messages.
func Parse(raw []byte, format, name string) (*Schema, error) {
	var doc document
	switch format {
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, errs.Config("decode build spec", name, err)
		}
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, errs.Config("decode build spec", name, errors.New(strict.String()))
			}
			return nil, errs.Config("decode build spec", name, err)
		}
	default:
		return nil, errs.Configf("decode build spec", name, "unsupported format %q", format)
	}

	return doc.validate(name)
}

func (d *document) validate(name string) (*Schema, error) {
	if d.Tables == nil {
		return nil, errs.Configf("validate build spec", name, "missing required field %q", "tables")
	}
	if d.LookupSchema == "" {
		return nil, errs.Configf("validate build spec", name, "missing required field %q", "lookup_schema")
	}

	lookups := d.LookupTables
	switch {
	case d.LookupTables != nil && d.LookupTablesDash != nil:
		return nil, errs.Configf("validate build spec", name, "both %q and %q are set", "lookup_tables", "lookup-tables")
	case lookups == nil:
		lookups = d.LookupTablesDash
	}
	if lookups == nil {
		return nil, errs.Configf("validate build spec", name, "missing required field %q", "lookup_tables")
	}

	for _, n := range SortedNames(lookups) {
		l := lookups[n]
		if l.PKType == "" {
			return nil, errs.Configf("validate build spec", name, "lookup table %q: missing %q", n, "pk_type")
		}
		if l.Data == "" {
			return nil, errs.Configf("validate build spec", name, "lookup table %q: missing %q", n, "data")
		}
	}

	seen := make(map[string]bool, len(d.Tables))
	for i, t := range d.Tables {
		if t.Name == "" {
			return nil, errs.Configf("validate build spec", name, "tables[%d]: missing %q", i, "name")
		}
		if t.Schema == "" {
			return nil, errs.Configf("validate build spec", name, "table %q: missing %q", t.Name, "schema")
		}
		if seen[t.Name] {
			return nil, errs.Configf("validate build spec", name, "table %q listed twice", t.Name)
		}
		if _, ok := lookups[t.Name]; ok {
			return nil, errs.Configf("validate build spec", name, "table %q is both a primary and a lookup table", t.Name)
		}
		seen[t.Name] = true
	}

	return &Schema{
		Tables:       d.Tables,
		LookupSchema: d.LookupSchema,
		LookupTables: lookups,
	}, nil
}

// SortedNames returns the keys of m in sorted order.
func SortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s *Schema) String() string {
	return fmt.Sprintf("%d primary tables, %d lookup tables", len(s.Tables), len(s.LookupTables))
}
