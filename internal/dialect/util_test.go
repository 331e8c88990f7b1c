package dialect_test

import (
	"reflect"
	"testing"

	"switrs-db/internal/dialect"
)

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   []string
	}{
		{
			name:   "single without terminator",
			script: "CREATE TABLE a (id INT)",
			want:   []string{"CREATE TABLE a (id INT)"},
		},
		{
			name: "two statements and trailing whitespace",
			script: `CREATE TABLE a (id INT);
CREATE INDEX a_id ON a (id);
`,
			want: []string{"CREATE TABLE a (id INT)", "CREATE INDEX a_id ON a (id)"},
		},
		{
			name:   "semicolons inside quotes",
			script: `INSERT INTO a VALUES ('x;y', "q;", [b;c], 'it''s;');SELECT 1`,
			want:   []string{`INSERT INTO a VALUES ('x;y', "q;", [b;c], 'it''s;')`, "SELECT 1"},
		},
		{
			name: "comments",
			script: `-- header; not a statement
CREATE TABLE a (
    id INT -- trailing; comment
);
/* block; comment */`,
			want: []string{"CREATE TABLE a (\n    id INT -- trailing; comment\n)"},
		},
		{
			name:   "empty",
			script: " ;\n; ",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dialect.SplitStatements(tt.script)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitStatements() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestStripLiterals(t *testing.T) {
	script := `-- parties REFERENCES collisions
CREATE TABLE "victims" ( /* REFERENCES x */
    note TEXT DEFAULT 'REFERENCES y; it''s',
    case_id INT REFERENCES "collisions" ("case_id")
)`
	want := " \n" +
		"CREATE TABLE \"victims\" (  \n" +
		"    note TEXT DEFAULT '',\n" +
		"    case_id INT REFERENCES \"collisions\" (\"case_id\")\n" +
		")"
	if got := dialect.StripLiterals(script); got != want {
		t.Errorf("StripLiterals() =\n%s\nwant:\n%s", got, want)
	}
}

func TestInsertQueryPlaceholders(t *testing.T) {
	cols := []string{"key", "description"}
	tests := []struct {
		driver string
		want   string
	}{
		{"sqlite", "INSERT INTO beat_type (key, description) VALUES (?, ?)"},
		{"mysql", "INSERT INTO beat_type (key, description) VALUES (?, ?)"},
		{"postgres", "INSERT INTO beat_type (key, description) VALUES ($1, $2)"},
		{"pgx", "INSERT INTO beat_type (key, description) VALUES ($1, $2)"},
		{"sqlserver", "INSERT INTO beat_type (key, description) VALUES (@p1, @p2)"},
		{"oracle", "INSERT INTO beat_type (key, description) VALUES (:1, :2)"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d := dialect.GetDialect(tt.driver)
			if got := d.InsertQuery("beat_type", cols); got != tt.want {
				t.Errorf("InsertQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectDriver(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@localhost/switrs":              "postgres",
		"host=localhost dbname=switrs sslmode=disable": "postgres",
		"sqlserver://sa:pw@localhost?database=switrs":  "sqlserver",
		"oracle://u:p@localhost:1521/XE":               "oracle",
		"root:root@tcp(127.0.0.1:3306)/switrs":         "mysql",
		"switrs.db":                                    "sqlite",
		":memory:":                                     "sqlite",
	}
	for dsn, want := range tests {
		if got := dialect.DetectDriver(dsn); got != want {
			t.Errorf("DetectDriver(%q) = %q, want %q", dsn, got, want)
		}
	}
}
