package postgres

import (
	"context"
	"fmt"

	"statemap/internal/store"
)

func (c *Client) ListEntities(ctx context.Context) ([]store.EntitySummary, error) {
	query := `
SELECT entity, COUNT(*), MIN(time_ns), MAX(time_ns)
FROM transitions
GROUP BY entity
ORDER BY MIN(id)
`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	defer rows.Close()

	var entities []store.EntitySummary
	for rows.Next() {
		var e store.EntitySummary
		var count, first, last int64
		if err := rows.Scan(&e.Name, &count, &first, &last); err != nil {
			return nil, fmt.Errorf("scanning entity: %w", err)
		}
		e.Transitions = int(count)
		e.FirstTime = uint64(first)
		e.LastTime = uint64(last)
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	return entities, nil
}
