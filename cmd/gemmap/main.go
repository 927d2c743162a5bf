// Command gemmap converts vendor jewelry inventory spreadsheets into the
// marketplace bulk-upload table.
//
//	gemmap convert vendor.csv --mapping acme.xlsx --out upload.csv
//	gemmap convert --config job.yaml
//	gemmap validate --config job.yaml
//	gemmap columns --vendor
//	gemmap mapping-template --out mapping.xlsx
package main

import (
	"os"

	// register all backends with the storage factory; the job picks one.
	_ "gemmap/internal/storage/all"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
