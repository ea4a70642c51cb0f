package sqlindex

import (
	"context"
	"database/sql"
)

const pointsSchema = `
CREATE TABLE IF NOT EXISTS points (
    idx   INTEGER PRIMARY KEY,
    point BLOB NOT NULL
);
`

// EnsureSchema creates the points table if it does not already exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, pointsSchema)
	return err
}
