package mapping

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"gemmap/internal/config"
	"gemmap/internal/parser"
)

// Load reads a mapping table from path (csv or xlsx by extension). An empty
// path yields the identity table. A file with fewer than two columns also
// yields the identity table and logs a warning.
func Load(ctx context.Context, path string) (Table, error) {
	if path == "" {
		return Identity(), nil
	}
	p, err := parser.New(config.KindForPath(path), config.Options{})
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mapping %s: %w", path, err)
	}
	defer f.Close()

	sheet, err := p.Parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("parse mapping %s: %w", path, err)
	}
	t, ok := FromSheet(sheet)
	if !ok {
		log.WithField("mapping", path).
			Warn("mapping file must have at least two columns (expected_field, vendor_column); using identity mapping")
	}
	return t, nil
}
