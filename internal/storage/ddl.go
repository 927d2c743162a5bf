package storage

import (
	"context"
	"fmt"
	"strings"
)

// Dialect describes how a backend quotes names and spells its TEXT type.
type Dialect struct {
	// Quote wraps one identifier segment.
	Quote func(string) string
	// TextType is the column type used for every column.
	TextType string
	// IfNotExists wraps a CREATE TABLE statement so it is a no-op when the
	// table exists. It receives the quoted table name and the statement.
	IfNotExists func(qualified, stmt string) string
}

// QuoteWith returns a quoting function that wraps identifiers in open/close,
// doubling any embedded close character.
func QuoteWith(open, close string) func(string) string {
	return func(id string) string {
		return open + strings.ReplaceAll(id, close, close+close) + close
	}
}

// Qualified quotes each dot-separated segment of name.
func (d Dialect) Qualified(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = d.Quote(p)
	}
	return strings.Join(parts, ".")
}

// QuoteAll quotes each column.
func (d Dialect) QuoteAll(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = d.Quote(c)
	}
	return out
}

// CreateTable renders CREATE TABLE for table with every column as TextType.
func (d Dialect) CreateTable(table string, columns []string) (string, error) {
	if strings.TrimSpace(table) == "" {
		return "", fmt.Errorf("ddl: table must not be empty")
	}
	if len(columns) == 0 {
		return "", fmt.Errorf("ddl: no columns for %s", table)
	}
	var b strings.Builder
	q := d.Qualified(table)
	b.WriteString("CREATE TABLE ")
	if d.IfNotExists == nil {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(q)
	b.WriteString(" (\n")
	for i, c := range columns {
		fmt.Fprintf(&b, "  %s %s", d.Quote(c), d.TextType)
		if i < len(columns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(")")
	if d.IfNotExists != nil {
		return d.IfNotExists(q, b.String()), nil
	}
	return b.String(), nil
}

// Bootstrap returns a DDLBootstrapper that executes d.CreateTable.
func (d Dialect) Bootstrap() DDLBootstrapper {
	return func(ctx context.Context, repo Repository, table string, columns []string) error {
		stmt, err := d.CreateTable(table, columns)
		if err != nil {
			return err
		}
		if err := repo.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create table %s: %w", table, err)
		}
		return nil
	}
}
