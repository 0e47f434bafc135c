package statemap

import (
	"errors"
	"fmt"
)

var ErrNonMonotonicTime = errors.New("non-monotonic timestamp")

// Transition records an entity entering a state at a point in time.
type Transition struct {
	Time  Timestamp
	State int
	Tag   string
}

// Timeline is the ordered transition history of a single entity. Timestamps
// must be non-decreasing in insertion order.
type Timeline struct {
	entity      string
	transitions []Transition
}

func newTimeline(entity string) *Timeline {
	return &Timeline{entity: entity}
}

func (t *Timeline) Entity() string {
	return t.entity
}

func (t *Timeline) Len() int {
	return len(t.transitions)
}

// Append adds a transition. It fails if ts is earlier than the last appended
// timestamp; on failure the timeline is unchanged.
func (t *Timeline) Append(ts Timestamp, state int, tag string) error {
	if n := len(t.transitions); n > 0 {
		if last := t.transitions[n-1].Time; ts < last {
			return fmt.Errorf("entity %q: time %d precedes %d: %w", t.entity, ts, last, ErrNonMonotonicTime)
		}
	}
	t.transitions = append(t.transitions, Transition{Time: ts, State: state, Tag: tag})
	return nil
}

// Transitions returns the recorded transitions in insertion order.
func (t *Timeline) Transitions() []Transition {
	return append([]Transition{}, t.transitions...)
}
