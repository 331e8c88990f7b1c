package dialect

import (
	"fmt"
	"strings"
)

// GeneratePlaceholders is a helper function to create a slice of placeholder strings.
// It takes the number of placeholders needed and a function that returns the placeholder for a given index.
// It returns a comma-separated string of the generated placeholders.
func GeneratePlaceholders(count int, placeholderFunc func(int) string) string {
	placeholders := make([]string, count)
	for i := 0; i < count; i++ {
		placeholders[i] = placeholderFunc(i)
	}
	return strings.Join(placeholders, ", ")
}

// DefaultCountQuery is the portable row count query.
func DefaultCountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
}

type span int

const (
	spanCode span = iota
	spanComment
	spanQuoted
)

// scan walks script and calls fn for every comment, every quoted run and
// every other single byte. end is exclusive. Unterminated comments and quotes
// run to the end of script.
func scan(script string, fn func(kind span, start, end int)) {
	for i := 0; i < len(script); {
		c := script[i]
		switch {
		case c == '-' && i+1 < len(script) && script[i+1] == '-':
			end := len(script)
			if nl := strings.IndexByte(script[i:], '\n'); nl >= 0 {
				end = i + nl
			}
			fn(spanComment, i, end)
			i = end
		case c == '/' && i+1 < len(script) && script[i+1] == '*':
			end := len(script)
			if j := strings.Index(script[i+2:], "*/"); j >= 0 {
				end = i + 2 + j + 2
			}
			fn(spanComment, i, end)
			i = end
		case c == '\'' || c == '"' || c == '`' || c == '[':
			closer := c
			if c == '[' {
				closer = ']'
			}
			j := i + 1
			for ; j < len(script); j++ {
				if script[j] != closer {
					continue
				}
				// Doubled quote is an escaped quote.
				if closer != ']' && j+1 < len(script) && script[j+1] == closer {
					j++
					continue
				}
				break
			}
			end := min(j+1, len(script))
			fn(spanQuoted, i, end)
			i = end
		default:
			fn(spanCode, i, i+1)
			i++
		}
	}
}

// SplitStatements splits a SQL script on top-level semicolons. Semicolons
// inside quotes ('...', "...", `...`, [...]) and comments (-- and /* */) do
// not split. Statements are trimmed and the terminating semicolon dropped;
// statements that are empty or comment-only are skipped.
func SplitStatements(script string) []string {
	var (
		stmts   []string
		start   int
		hasCode bool
	)
	emit := func(end int) {
		if hasCode {
			stmts = append(stmts, strings.TrimSpace(script[start:end]))
		}
		hasCode = false
	}
	code := func(i int) {
		if !hasCode {
			start = i
			hasCode = true
		}
	}

	scan(script, func(kind span, i, _ int) {
		switch c := script[i]; {
		case kind == spanComment:
		case kind == spanQuoted:
			code(i)
		case c == ';':
			emit(i)
		case c != ' ' && c != '\t' && c != '\n' && c != '\r':
			code(i)
		}
	})
	emit(len(script))

	return stmts
}

// StripLiterals returns script with every comment replaced by a space and
// every string literal emptied to ''. Quoted identifiers are kept.
func StripLiterals(script string) string {
	var b strings.Builder
	b.Grow(len(script))
	scan(script, func(kind span, start, end int) {
		switch {
		case kind == spanComment:
			b.WriteByte(' ')
		case kind == spanQuoted && script[start] == '\'':
			b.WriteString("''")
		default:
			b.WriteString(script[start:end])
		}
	})
	return b.String()
}
