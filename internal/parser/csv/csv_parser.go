// Package csv parses vendor CSV exports into a records.Sheet. Every cell is
// kept as text. The input encoding is detected (or forced by option) and
// ragged rows are padded or truncated to the header width with a warning,
// so the row count always matches the data lines of the file.
package csv

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"gemmap/pkg/records"
)

// Options configures the CSV parser. The zero value reads comma-separated,
// auto-detected input with lenient quoting.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// StrictQuotes disables encoding/csv's LazyQuotes.
	StrictQuotes bool

	// Encoding forces an input encoding ("utf-8", "windows-1252", "latin-1").
	// Empty or "auto" detects it.
	Encoding string
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// warnLimit caps the per-file ragged-row warnings written to the log.
const warnLimit = 50

// Parse reads the whole of r. A missing header row is an error; a header
// with no data rows yields an empty sheet.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (records.Sheet, error) {
	var sheet records.Sheet

	raw, err := io.ReadAll(r)
	if err != nil {
		return sheet, fmt.Errorf("read csv: %w", err)
	}
	data, enc, err := Decode(raw, p.opt.Encoding)
	if err != nil {
		return sheet, err
	}
	log.WithField("encoding", enc).Debug("csv input decoded")

	cr := csv.NewReader(bytes.NewReader(data))
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = !p.opt.StrictQuotes

	h, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return sheet, errors.New("read csv header: empty input")
	}
	if err != nil {
		return sheet, fmt.Errorf("read csv header: %w", err)
	}
	sheet.Header = CleanHeaders(h)
	width := len(sheet.Header)

	ragged := 0
	for line := 2; ; line++ {
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return sheet, err
			}
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sheet, fmt.Errorf("read csv row %d: %w", line, err)
		}
		if len(row) != width {
			if ragged < warnLimit {
				log.WithFields(log.Fields{"line": line, "got": len(row), "want": width}).
					Warn("csv row width differs from header; padding or truncating")
			}
			ragged++
			row = fit(row, width)
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	if ragged > 0 {
		log.WithField("rows", ragged).Warn("csv rows repaired to header width")
	}
	return sheet, nil
}

// fit pads row with "" or truncates it to exactly n cells.
func fit(row []string, n int) []string {
	if len(row) >= n {
		return row[:n]
	}
	out := make([]string, n)
	copy(out, row)
	return out
}
