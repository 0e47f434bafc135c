package store

import (
	"context"
	"fmt"

	"statemap/internal/statemap"
)

// Load replays a recorded store into sm: colors first in first-set order,
// then every transition in the store's canonical order.
func Load(ctx context.Context, db Store, sm *statemap.Statemap) error {
	colors, err := db.ListColors(ctx)
	if err != nil {
		return fmt.Errorf("listing colors: %w", err)
	}
	for _, color := range colors {
		if err := sm.SetStateColor(color.State, color.Color); err != nil {
			return fmt.Errorf("replaying color for %s: %w", color.State, err)
		}
	}

	transitions, err := db.ListTransitions(ctx)
	if err != nil {
		return fmt.Errorf("listing transitions: %w", err)
	}
	for _, t := range transitions {
		if err := sm.SetState(t.Entity, t.State, t.Tag, statemap.Timestamp(t.Time)); err != nil {
			return fmt.Errorf("replaying transition for %s: %w", t.Entity, err)
		}
	}

	return nil
}
