// Package statemap models the statemap protocol: an ordered sequence of JSON
// records describing how named entities transition between named states over
// time. A Statemap is built up with SetState and SetStateColor calls and then
// emitted as protocol records for external visualization tools to consume.
package statemap

import (
	"errors"
	"time"
)

var ErrNoTransitions = errors.New("no transitions recorded")

// Timestamp is an absolute point in time in nanoseconds since the Unix epoch.
type Timestamp uint64

// TimeOf converts a time.Time to a Timestamp.
func TimeOf(t time.Time) Timestamp {
	return Timestamp(t.UnixNano())
}

// Statemap owns a state registry and one timeline per entity. Entity
// insertion order is preserved for deterministic emission.
type Statemap struct {
	title    string
	host     string
	start    Timestamp
	hasStart bool
	registry *Registry
	entities map[string]*Timeline
	order    []string
}

// New creates an empty statemap. An empty host means no host is recorded.
func New(title, host string) *Statemap {
	return &Statemap{
		title:    title,
		host:     host,
		registry: NewRegistry(),
		entities: make(map[string]*Timeline),
	}
}

func (s *Statemap) Title() string {
	return s.title
}

func (s *Statemap) Host() string {
	return s.host
}

// SetStart fixes an explicit start time. Without it the start time is derived
// as the minimum recorded timestamp. An explicit start later than the first
// recorded transition clamps that transition's relative time to zero on
// emission.
func (s *Statemap) SetStart(ts Timestamp) {
	s.start = ts
	s.hasStart = true
}

// SetState records that entity entered state at ts. The state name is
// interned on first use and the entity's timeline is created on its first
// transition. An empty tag means no tag. Fails with ErrNonMonotonicTime if ts
// is earlier than the entity's last recorded timestamp; the statemap is
// unchanged on failure and remains usable.
func (s *Statemap) SetState(entity, state, tag string, ts Timestamp) error {
	id := s.registry.ResolveOrCreate(state)
	timeline, ok := s.entities[entity]
	if !ok {
		timeline = newTimeline(entity)
		s.entities[entity] = timeline
		s.order = append(s.order, entity)
	}
	return timeline.Append(ts, id, tag)
}

// SetStateColor records a display color for a state name. The state does not
// need to have appeared in any transition.
func (s *Statemap) SetStateColor(state, color string) error {
	return s.registry.SetColor(state, color)
}

// StartTime returns the explicit start time if one was set, otherwise the
// minimum timestamp across all recorded transitions. Fails with
// ErrNoTransitions when neither exists.
func (s *Statemap) StartTime() (Timestamp, error) {
	if s.hasStart {
		return s.start, nil
	}
	var min Timestamp
	found := false
	for _, entity := range s.order {
		timeline := s.entities[entity]
		if timeline.Len() == 0 {
			continue
		}
		first := timeline.transitions[0].Time
		if !found || first < min {
			min = first
			found = true
		}
	}
	if !found {
		return 0, ErrNoTransitions
	}
	return min, nil
}

// Entities returns the entity names in insertion order.
func (s *Statemap) Entities() []string {
	return append([]string{}, s.order...)
}

// Transitions returns the recorded transitions for an entity, or nil if the
// entity is unknown.
func (s *Statemap) Transitions(entity string) []Transition {
	timeline, ok := s.entities[entity]
	if !ok {
		return nil
	}
	return timeline.Transitions()
}

// States returns the known state names indexed by numeric id.
func (s *Statemap) States() []string {
	return s.registry.States()
}

// Colors returns the recorded state colors in the order they were first set.
func (s *Statemap) Colors() []StateColor {
	return s.registry.Colors()
}
