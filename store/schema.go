package store

import (
	"context"
	"database/sql"
	"fmt"
)

// DefaultTable is the snapshot table name used when WithTable is not given.
const DefaultTable = "metric_snapshot"

func schemaDDL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    name        TEXT PRIMARY KEY,
    compression INTEGER NOT NULL,
    size        INTEGER NOT NULL,
    payload     BLOB,
    updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`, table)
}

// EnsureSchema creates the snapshot table if it does not already exist.
// The table name is interpolated into SQL and must come from trusted input.
func EnsureSchema(ctx context.Context, db *sql.DB, table string) error {
	_, err := db.ExecContext(ctx, schemaDDL(table))
	return err
}
