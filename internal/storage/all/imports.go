// Package all registers every built-in storage backend. Import it for side
// effects:
//
//	import _ "gemmap/internal/storage/all"
//
// Kinds made available: "postgres", "mssql", "mysql", "sqlite".
package all

import (
	_ "gemmap/internal/storage/mssql"
	_ "gemmap/internal/storage/mysql"
	_ "gemmap/internal/storage/postgres"
	_ "gemmap/internal/storage/sqlite"
)
