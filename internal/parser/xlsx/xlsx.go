// Package xlsx parses one worksheet of an Excel workbook into a
// records.Sheet. Cells are read as their raw stored text so numbers keep the
// spelling the vendor typed rather than the display format.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	pcsv "gemmap/internal/parser/csv"
	"gemmap/pkg/records"
)

// Options configures the workbook parser.
type Options struct {
	// Sheet names the worksheet to read. Empty means the active sheet.
	Sheet string
}

// Parser reads workbooks according to Options.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// Parse reads the configured worksheet from r. The first non-blank row is
// the header. Fully blank rows after it are skipped; other rows are padded
// or truncated to the header width.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (records.Sheet, error) {
	var sheet records.Sheet

	f, err := excelize.OpenReader(r)
	if err != nil {
		return sheet, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	name := p.opt.Sheet
	if name == "" {
		name = f.GetSheetName(f.GetActiveSheetIndex())
	}
	rows, err := f.Rows(name)
	if err != nil {
		return sheet, fmt.Errorf("read sheet %q: %w", name, err)
	}
	defer rows.Close()

	line := 0
	for rows.Next() {
		line++
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return sheet, err
			}
		}
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return sheet, fmt.Errorf("read sheet %q row %d: %w", name, line, err)
		}
		if blank(cols) {
			continue
		}
		if sheet.Header == nil {
			sheet.Header = pcsv.CleanHeaders(cols)
			continue
		}
		sheet.Rows = append(sheet.Rows, fit(cols, len(sheet.Header)))
	}
	if err := rows.Error(); err != nil {
		return sheet, fmt.Errorf("read sheet %q: %w", name, err)
	}
	if sheet.Header == nil {
		return sheet, errors.New("read sheet header: empty worksheet")
	}
	log.WithFields(log.Fields{"sheet": name, "rows": len(sheet.Rows)}).Debug("worksheet parsed")
	return sheet, nil
}

func blank(cols []string) bool {
	for _, c := range cols {
		if c != "" {
			return false
		}
	}
	return true
}

// fit pads row with "" or truncates it to exactly n cells. excelize drops
// trailing empty cells, so short rows are normal here and not logged.
func fit(row []string, n int) []string {
	if len(row) >= n {
		return row[:n]
	}
	out := make([]string, n)
	copy(out, row)
	return out
}
