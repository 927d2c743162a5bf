// Package sqlite implements a SQLite-backed storage.Repository.
package sqlite

// Config holds SQLite repository configuration derived from storage.Config.
type Config struct {
	// DSN is a SQLite connection string or file path, e.g.:
	//   "file:gemmap.db?cache=shared"
	//   "gemmap.db"
	DSN string

	// Table is the target table. "main.gemmap_upload" is accepted and quoted
	// segment by segment.
	Table string

	// Columns is the ordered list of destination columns.
	Columns []string
}
