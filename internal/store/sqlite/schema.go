package sqlite

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS saves (
		key        TEXT PRIMARY KEY,
		data       BLOB NOT NULL,
		updated_at TEXT DEFAULT (datetime('now'))
	);`

	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("executing DDL: %w", err)
	}
	return nil
}
