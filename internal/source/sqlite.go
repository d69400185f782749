package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"regexp"

	_ "modernc.org/sqlite"

	"github.com/TrevorS/hotspot"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// OpenSQLite opens an existing SQLite database.
func OpenSQLite(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("source: sqlite: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("source: sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("source: sqlite: %s: %w", path, err)
	}
	return db, nil
}

// ReadSQLite reads the longitude, latitude and value columns of table, in
// rowid order. Rows with a NULL in any of them are skipped.
func ReadSQLite(ctx context.Context, db *sql.DB, table string) ([]hotspot.Observation, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("source: sqlite: invalid table name %q", table)
	}

	query := fmt.Sprintf(`SELECT longitude, latitude, value FROM "%s"
		WHERE longitude IS NOT NULL AND latitude IS NOT NULL AND value IS NOT NULL
		ORDER BY rowid`, table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("source: sqlite: failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var obs []hotspot.Observation
	for rows.Next() {
		var o hotspot.Observation
		if err := rows.Scan(&o.Longitude, &o.Latitude, &o.Value); err != nil {
			return nil, fmt.Errorf("source: sqlite: failed to scan %s: %w", table, err)
		}
		obs = append(obs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("source: sqlite: %w", err)
	}
	return obs, nil
}
