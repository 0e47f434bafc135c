package sqlite

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS transitions (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		entity      TEXT NOT NULL,
		state       TEXT NOT NULL,
		tag         TEXT NOT NULL DEFAULT '',
		time_ns     INTEGER NOT NULL,
		recorded_at TEXT DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS colors (
		id    INTEGER PRIMARY KEY AUTOINCREMENT,
		state TEXT NOT NULL,
		color TEXT NOT NULL,
		CONSTRAINT uq_color_state UNIQUE (state)
	);

	CREATE INDEX IF NOT EXISTS idx_transitions_entity ON transitions (entity);
	CREATE INDEX IF NOT EXISTS idx_transitions_entity_time ON transitions (entity, time_ns);
	`

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(ddl) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	return nil
}

func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(stripped, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		statements = append(statements, current.String())
	}

	return statements
}
