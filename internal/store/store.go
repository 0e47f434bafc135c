// Package store persists recorded transitions and colors so a statemap can
// be built up across process runs and emitted later.
package store

import (
	"context"
	"errors"
)

// ErrNonMonotonicTime is returned by AppendTransition when a transition's
// time is earlier than the entity's last recorded time. Enforcing this at
// write time guarantees a recorded database always replays cleanly through
// the statemap model.
var ErrNonMonotonicTime = errors.New("non-monotonic timestamp")

type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	AppendTransition(ctx context.Context, t Transition) error
	SetStateColor(ctx context.Context, state, color string) error
	Reset(ctx context.Context) error

	// ListTransitions returns every transition, entities in first-recorded
	// order and each entity's transitions in time order.
	ListTransitions(ctx context.Context) ([]Transition, error)
	// ListColors returns colors in the order they were first set.
	ListColors(ctx context.Context) ([]StateColor, error)
	ListEntities(ctx context.Context) ([]EntitySummary, error)
}
