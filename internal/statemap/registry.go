package statemap

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidColor = errors.New("invalid color")

// StateColor pairs a state name with its display color.
type StateColor struct {
	Name  string
	Color string
}

// Registry interns state names to stable numeric ids. Ids are assigned in
// first-seen order starting at zero and are never reused or reassigned.
type Registry struct {
	ids        map[string]int
	names      []string
	colors     map[string]string
	colorOrder []string
}

func NewRegistry() *Registry {
	return &Registry{
		ids:    make(map[string]int),
		colors: make(map[string]string),
	}
}

// ResolveOrCreate returns the id for name, assigning the next id if the name
// has not been seen before.
func (r *Registry) ResolveOrCreate(name string) int {
	if id, ok := r.ids[name]; ok {
		return id
	}
	id := len(r.names)
	r.ids[name] = id
	r.names = append(r.names, name)
	return id
}

func (r *Registry) Lookup(name string) (int, bool) {
	id, ok := r.ids[name]
	return id, ok
}

// States returns the known state names indexed by id.
func (r *Registry) States() []string {
	return append([]string{}, r.names...)
}

// SetColor records a display color for a state name. The name is interned
// immediately, so setting a color counts as first documented usage for id
// assignment. Re-setting a color overwrites the value but keeps the name's
// position in the Colors ordering.
func (r *Registry) SetColor(name, color string) error {
	if strings.TrimSpace(color) == "" {
		return fmt.Errorf("state %q: %w", name, ErrInvalidColor)
	}
	r.ResolveOrCreate(name)
	if _, ok := r.colors[name]; !ok {
		r.colorOrder = append(r.colorOrder, name)
	}
	r.colors[name] = color
	return nil
}

// Colors returns the recorded colors in the order they were first set.
func (r *Registry) Colors() []StateColor {
	out := make([]StateColor, 0, len(r.colorOrder))
	for _, name := range r.colorOrder {
		out = append(out, StateColor{Name: name, Color: r.colors[name]})
	}
	return out
}
