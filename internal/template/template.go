// Package template renders DDL text templates.
//
// A placeholder is written {name}; whitespace inside the braces is ignored.
// {{ and }} produce literal braces, and braces around anything that is not a
// placeholder name are copied as they are. Everything else is copied through
// untouched, so SQL quoting and whitespace in the template survive rendering.
package template

import (
	"fmt"
	"strings"

	"switrs-db/internal/errs"
)

type segment struct {
	literal string
	name    string // set for placeholders
	offset  int
}

// Template is a parsed DDL template. It is immutable and safe to render any
// number of times.
type Template struct {
	segments []segment
}

// Parse splits text into literal runs and placeholders.
func Parse(text string) (*Template, error) {
	var (
		segs []segment
		lit  strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(text); {
		c := text[i]
		if c != '{' && c != '}' {
			lit.WriteByte(c)
			i++
			continue
		}
		if i+1 < len(text) && text[i+1] == c {
			lit.WriteByte(c)
			i += 2
			continue
		}
		if c == '}' {
			lit.WriteByte(c)
			i++
			continue
		}

		end := strings.IndexByte(text[i+1:], '}')
		if end < 0 {
			return nil, errs.Template("parse", "", fmt.Errorf("unterminated placeholder at offset %d", i))
		}
		name := strings.TrimSpace(text[i+1 : i+1+end])
		if !validName(name) {
			// Not a placeholder: keep the brace and scan on from the next byte.
			lit.WriteByte(c)
			i++
			continue
		}
		flush()
		segs = append(segs, segment{name: name, offset: i})
		i += end + 2
	}
	flush()

	return &Template{segments: segs}, nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// Placeholders returns the distinct placeholder names in order of first use.
func (t *Template) Placeholders() []string {
	seen := make(map[string]bool)
	var names []string
	for _, s := range t.segments {
		if s.name != "" && !seen[s.name] {
			seen[s.name] = true
			names = append(names, s.name)
		}
	}
	return names
}

// Render substitutes vars into the template. A placeholder with no entry in
// vars is an error; extra entries are ignored.
func (t *Template) Render(vars map[string]string) (string, error) {
	var b strings.Builder
	for _, s := range t.segments {
		if s.name == "" {
			b.WriteString(s.literal)
			continue
		}
		v, ok := vars[s.name]
		if !ok {
			return "", errs.Template("render", "", fmt.Errorf("no value for placeholder %q at offset %d", s.name, s.offset))
		}
		b.WriteString(v)
	}
	return b.String(), nil
}

// Render parses and renders text in one step.
func Render(text string, vars map[string]string) (string, error) {
	t, err := Parse(text)
	if err != nil {
		return "", err
	}
	return t.Render(vars)
}
