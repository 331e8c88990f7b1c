package engine

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"switrs-db/internal/errs"
)

// RowError describes a row the database rejected.
type RowError struct {
	Line    int
	Columns []string
	Values  []string
	Err     error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Fields(), e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Fields renders the row as col=value pairs.
func (e *RowError) Fields() string {
	var b strings.Builder
	for i, c := range e.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c)
		b.WriteByte('=')
		if i < len(e.Values) {
			b.WriteString(e.Values[i])
		}
	}
	return b.String()
}

// LoadData inserts every row of the CSV file at csvPath into table and
// returns the number of rows inserted. The header row names the columns.
// Loading stops at the first bad row; rows inserted before it stay.
func (b *Builder) LoadData(ctx context.Context, table, csvPath string) (int, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return 0, errs.IO("open csv", csvPath, err)
	}
	defer f.Close()

	r := csv.NewReader(newPaddingReader(unicode.UTF8BOM.NewDecoder().Reader(f)))
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return 0, nil
	}
	if err != nil {
		return 0, errs.Format("read csv header", csvPath, err)
	}
	columns := trimAll(header)
	if len(columns) == 0 {
		return 0, nil
	}

	query := b.dialect.InsertQuery(table, columns)
	stmt, err := b.conn.PrepareContext(ctx, query)
	if err != nil {
		return 0, errs.Database("prepare insert", table, err)
	}
	defer stmt.Close()

	args := make([]any, len(columns))
	count := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, errs.Format("read csv row", csvPath, err)
		}

		values := trimAll(record)
		for i, v := range values {
			args[i] = b.opts.Nulls.Cell(v)
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			line, _ := r.FieldPos(0)
			rowErr := &RowError{Line: line, Columns: columns, Values: values, Err: err}
			log.Printf("error on insert: %v, row: %s\n", err, rowErr.Fields())
			return count, errs.Database("insert into", table, rowErr)
		}
		count++
		if b.opts.OnRow != nil {
			b.opts.OnRow(table, count)
		}
	}

	return count, nil
}

func trimAll(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.TrimSpace(f)
	}
	return out
}

// paddingReader drops spaces and tabs between a closing quote and the next
// delimiter or line end, so a row such as `A, "Clear" ,Sky` parses. Quoted
// content and unquoted fields pass through as they are.
type paddingReader struct {
	r       *bufio.Reader
	inQuote bool
	closed  bool // just left a quoted field
	atStart bool // only blanks seen since the last delimiter
	pending []byte
	out     []byte
}

func newPaddingReader(r io.Reader) *paddingReader {
	return &paddingReader{r: bufio.NewReader(r), atStart: true}
}

func (p *paddingReader) Read(buf []byte) (int, error) {
	for len(p.out) == 0 {
		c, err := p.r.ReadByte()
		if err != nil {
			return 0, err
		}
		p.out = p.step(p.out[:0], c)
	}
	n := copy(buf, p.out)
	p.out = p.out[n:]
	return n, nil
}

func (p *paddingReader) step(out []byte, c byte) []byte {
	if p.inQuote {
		if c == '"' {
			p.inQuote, p.closed = false, true
		}
		return append(out, c)
	}

	if p.closed {
		switch {
		case c == ' ' || c == '\t':
			p.pending = append(p.pending, c)
			return out
		case c == '"' && len(p.pending) == 0:
			// Doubled quote inside a quoted field.
			p.inQuote, p.closed = true, false
			return append(out, c)
		case c == ',' || c == '\n' || c == '\r':
		default:
			out = append(out, p.pending...)
		}
		p.pending, p.closed = p.pending[:0], false
	}

	switch {
	case c == ',' || c == '\n' || c == '\r':
		p.atStart = true
	case c == '"' && p.atStart:
		p.inQuote, p.atStart = true, false
	case c != ' ' && c != '\t':
		p.atStart = false
	}
	return append(out, c)
}
