// Package parser selects a table parser by kind. Both kinds return a
// records.Sheet whose rows are exactly as wide as the header.
package parser

import (
	"context"
	"fmt"
	"io"

	"gemmap/internal/config"
	"gemmap/internal/parser/csv"
	"gemmap/internal/parser/xlsx"
	"gemmap/pkg/records"
)

// Parser turns raw bytes into a header plus rows.
type Parser interface {
	Parse(ctx context.Context, r io.Reader) (records.Sheet, error)
}

// New returns the parser for kind ("csv" or "xlsx") configured from opts.
func New(kind string, opts config.Options) (Parser, error) {
	switch kind {
	case "csv":
		return csv.NewParser(csv.Options{
			Comma:        opts.Rune("comma", ','),
			StrictQuotes: opts.Bool("strict_quotes", false),
			Encoding:     opts.String("encoding", ""),
		}), nil
	case "xlsx":
		return xlsx.NewParser(xlsx.Options{Sheet: opts.String("sheet", "")}), nil
	default:
		return nil, fmt.Errorf("unknown parser kind %q", kind)
	}
}
