package sqlite

import (
	"context"
	"fmt"

	"statemap/internal/store"
)

// AppendTransition inserts a transition unless the entity already has a
// later one recorded; guard and insert run as one statement.
func (c *Client) AppendTransition(ctx context.Context, t store.Transition) error {
	query := `
	INSERT INTO transitions (entity, state, tag, time_ns)
	SELECT ?, ?, ?, ?
	WHERE NOT EXISTS (
		SELECT 1 FROM transitions WHERE entity = ? AND time_ns > ?
	)
	`

	result, err := c.db.ExecContext(ctx, query,
		t.Entity,
		t.State,
		t.Tag,
		int64(t.Time),
		t.Entity,
		int64(t.Time),
	)
	if err != nil {
		return fmt.Errorf("appending transition: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("appending transition: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("entity %q at %d: %w", t.Entity, t.Time, store.ErrNonMonotonicTime)
	}
	return nil
}

func (c *Client) ListTransitions(ctx context.Context) ([]store.Transition, error) {
	query := `
	SELECT entity, state, tag, time_ns
	FROM transitions t
	ORDER BY (SELECT MIN(id) FROM transitions f WHERE f.entity = t.entity), time_ns, id
	`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing transitions: %w", err)
	}
	defer rows.Close()

	var transitions []store.Transition
	for rows.Next() {
		var t store.Transition
		var timeNS int64
		if err := rows.Scan(&t.Entity, &t.State, &t.Tag, &timeNS); err != nil {
			return nil, fmt.Errorf("scanning transition: %w", err)
		}
		t.Time = uint64(timeNS)
		transitions = append(transitions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing transitions: %w", err)
	}
	return transitions, nil
}
