package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS transitions (
    id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    entity      TEXT NOT NULL,
    state       TEXT NOT NULL,
    tag         TEXT NOT NULL DEFAULT '',
    time_ns     BIGINT NOT NULL,
    recorded_at TIMESTAMPTZ DEFAULT now()
);

CREATE TABLE IF NOT EXISTS colors (
    id    BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    state TEXT NOT NULL,
    color TEXT NOT NULL,
    CONSTRAINT uq_color_state UNIQUE (state)
);

CREATE INDEX IF NOT EXISTS idx_transitions_entity ON transitions (entity);
CREATE INDEX IF NOT EXISTS idx_transitions_entity_time ON transitions (entity, time_ns);
`
	_, err := c.pool.Exec(ctx, ddl)
	if err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
