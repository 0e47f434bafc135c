package sqlite

import (
	"context"
	"fmt"

	"statemap/internal/store"
)

// SetStateColor upserts a color. The conflict update keeps the original row
// id, which preserves first-set ordering for ListColors.
func (c *Client) SetStateColor(ctx context.Context, state, color string) error {
	query := `
	INSERT INTO colors (state, color)
	VALUES (?, ?)
	ON CONFLICT (state) DO UPDATE SET color = excluded.color
	`

	if _, err := c.db.ExecContext(ctx, query, state, color); err != nil {
		return fmt.Errorf("setting color: %w", err)
	}
	return nil
}

func (c *Client) ListColors(ctx context.Context) ([]store.StateColor, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT state, color FROM colors ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("listing colors: %w", err)
	}
	defer rows.Close()

	var colors []store.StateColor
	for rows.Next() {
		var color store.StateColor
		if err := rows.Scan(&color.State, &color.Color); err != nil {
			return nil, fmt.Errorf("scanning color: %w", err)
		}
		colors = append(colors, color)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing colors: %w", err)
	}
	return colors, nil
}
