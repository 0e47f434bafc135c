package store

// Transition is one recorded state change. State is the state name; numeric
// ids are assigned by the statemap model on replay, not persisted.
type Transition struct {
	Entity string
	State  string
	Tag    string
	Time   uint64
}

type StateColor struct {
	State string
	Color string
}

type EntitySummary struct {
	Name        string
	Transitions int
	FirstTime   uint64
	LastTime    uint64
}
