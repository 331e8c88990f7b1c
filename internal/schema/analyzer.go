package schema

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"switrs-db/internal/dialect"
	"switrs-db/internal/errs"
	"switrs-db/internal/template"
)

// ---------------------------------------------------------------------
// 1. Plan construction
// ---------------------------------------------------------------------

var referencesRe = regexp.MustCompile(`(?i)\bREFERENCES\s+[\["` + "`" + `]?([A-Za-z_][A-Za-z0-9_.]*)`)

// Analyze renders every DDL template named in s and returns the build plan:
// lookup tables in name order followed by primary tables in listed order.
// Each table's Dependencies are the tables its DDL references.
func Analyze(s *Schema) ([]*Table, error) {
	// Lookup tables usually share one template; parse each file once.
	cache := make(map[string]*template.Template)
	load := func(path string) (*template.Template, error) {
		if t, ok := cache[path]; ok {
			return t, nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errs.IO("read ddl", path, err)
		}
		t, err := template.Parse(string(raw))
		if err != nil {
			return nil, err
		}
		cache[path] = t
		return t, nil
	}

	var plan []*Table
	add := func(t *Table) error {
		tmpl, err := load(t.DDL)
		if err != nil {
			return err
		}
		ddl, err := tmpl.Render(map[string]string{"table": t.Name, "pk_type": t.PKType})
		if err != nil {
			var e *errs.Error
			if errors.As(err, &e) {
				e.Subject = t.DDL
			}
			return err
		}
		t.Dependencies = References(ddl)
		plan = append(plan, t)
		return nil
	}

	for _, name := range s.LookupNames() {
		l := s.LookupTables[name]
		t := &Table{Name: name, Kind: KindLookup, PKType: l.PKType, DDL: l.ResolveDDL(s.LookupSchema), Data: l.Data}
		if err := add(t); err != nil {
			return nil, err
		}
	}
	for _, p := range s.Tables {
		t := &Table{Name: p.Name, Kind: KindPrimary, DDL: p.Schema, Data: p.Data}
		if err := add(t); err != nil {
			return nil, err
		}
	}

	return plan, nil
}

// References returns the distinct table names referenced by foreign keys in
// ddl, in order of appearance. Bracket, double-quote and backtick quoting is
// stripped and a schema prefix such as "main." is dropped. Comments and string
// literals are ignored.
func References(ddl string) []string {
	seen := make(map[string]bool)
	deps := []string{}
	for _, m := range referencesRe.FindAllStringSubmatch(dialect.StripLiterals(ddl), -1) {
		name := m[1]
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			name = name[i+1:]
		}
		key := strings.ToUpper(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		deps = append(deps, name)
	}
	return deps
}

// ---------------------------------------------------------------------
// 2. Ordering check
// ---------------------------------------------------------------------

// CheckOrder verifies that every table's dependencies are created before it.
// Names are compared case-insensitively, as unquoted SQL identifiers are. A
// table may reference itself.
func CheckOrder(plan []*Table) error {
	known := make(map[string]*Table, len(plan))
	for _, t := range plan {
		known[strings.ToUpper(t.Name)] = t
	}

	processed := make(map[string]bool, len(plan))
	for _, t := range plan {
		self := strings.ToUpper(t.Name)
		for _, dep := range t.Dependencies {
			key := strings.ToUpper(dep)
			if key == self || processed[key] {
				continue
			}
			if d, ok := known[key]; ok {
				return errs.Config("check build order", t.Name,
					fmt.Errorf("references %s table %q which is created later", d.Kind, d.Name))
			}
			return errs.Config("check build order", t.Name,
				fmt.Errorf("references %q which is not declared in the build spec", dep))
		}
		processed[self] = true
	}
	return nil
}
