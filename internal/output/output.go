// Package output writes converted tables as CSV or XLSX.
//
// Cells are always written as text so values such as "00123" or "1.050"
// reach the marketplace exactly as read. Digest fingerprints a table's
// content independently of the file format.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/zeebo/xxh3"

	"gemmap/pkg/records"
)

// Formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// SheetName is the worksheet written to XLSX output.
const SheetName = "Sheet1"

// Write renders t to w in the given format.
func Write(w io.Writer, format string, t records.Table) error {
	switch strings.ToLower(format) {
	case "", FormatCSV:
		return WriteCSV(w, t)
	case FormatXLSX:
		return WriteXLSX(w, t)
	default:
		return fmt.Errorf("output: unsupported format %q", format)
	}
}

// WriteFile writes t to path, replacing any existing file.
func WriteFile(path, format string, t records.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, format, t); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// WriteCSV writes the header then one line per row.
func WriteCSV(w io.Writer, t records.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for i := 0; i < t.Len(); i++ {
		if err := cw.Write(t.Values(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX streams t into a single-sheet workbook.
func WriteXLSX(w io.Writer, t records.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("xlsx stream: %w", err)
	}
	if err := sw.SetRow("A1", cells(t.Columns)); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}
	for i := 0; i < t.Len(); i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cells(t.Values(i))); err != nil {
			return fmt.Errorf("xlsx row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("xlsx flush: %w", err)
	}
	return f.Write(w)
}

func cells(vals []string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

// Digest returns a hex xxh3 fingerprint of the header and every cell in
// order. Equal tables always share a digest.
func Digest(t records.Table) string {
	h := xxh3.New()
	writeLine := func(vals []string) {
		for i, v := range vals {
			_, _ = h.WriteString(strconv.Itoa(len(v)))
			_, _ = h.WriteString(":")
			_, _ = h.WriteString(v)
			if i < len(vals)-1 {
				_, _ = h.WriteString(",")
			}
		}
		_, _ = h.WriteString("\n")
	}
	writeLine(t.Columns)
	for i := 0; i < t.Len(); i++ {
		writeLine(t.Values(i))
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
