// Package source reads observations for hotspot detection from CSV files and
// SQLite tables.
package source

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/TrevorS/hotspot"
)

// Read loads observations from path in the given format ("csv" or
// "sqlite"). A CSV path of "-" reads standard input. table names the SQLite
// table and is ignored for CSV.
func Read(ctx context.Context, format, path, table string) ([]hotspot.Observation, error) {
	switch format {
	case "csv":
		var r io.Reader = os.Stdin
		if path != "-" {
			f, err := os.Open(path)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			r = f
		}
		return ReadCSV(r)
	case "sqlite":
		db, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return ReadSQLite(ctx, db, table)
	default:
		return nil, fmt.Errorf("source: unsupported format %q", format)
	}
}
