package statemap

import (
	"encoding/json"
	"io"
	"time"
)

// Version is the statemap protocol version emitted in the header record.
const Version = 1

// Record is one line of statemap protocol output: a Header, a StateMetadata,
// or a Datum.
type Record interface {
	record()
}

// Header opens the protocol sequence. Start is the effective start time split
// into whole seconds and remaining nanoseconds.
type Header struct {
	Version int       `json:"version"`
	Title   string    `json:"title"`
	Host    string    `json:"host,omitempty"`
	Start   [2]uint64 `json:"start"`
}

// StateMetadata assigns a display color to a numeric state id.
type StateMetadata struct {
	State int    `json:"state"`
	Color string `json:"color"`
}

// Datum records one transition. Time is nanoseconds relative to the header's
// start time, serialized as a decimal string per the protocol.
type Datum struct {
	Time   Timestamp `json:"time,string"`
	Entity string    `json:"entity"`
	State  int       `json:"state"`
	Tag    string    `json:"tag,omitempty"`
}

func (Header) record()        {}
func (StateMetadata) record() {}
func (Datum) record()         {}

// Emitter walks a statemap and yields protocol records in order: one header,
// one state-metadata record per recorded color, then every transition of
// every entity. It is a snapshot of the statemap at the time Emit was called;
// re-emitting an unmodified statemap yields identical output.
type Emitter struct {
	sm       *Statemap
	start    Timestamp
	colors   []StateColor
	entities []string
	header   bool
	ci       int
	ei       int
	ti       int
}

// Emit prepares an emission pass. The effective start time is computed once
// here and held fixed for the whole pass. Fails with ErrNoTransitions when no
// explicit start time was set and no transition was recorded.
func (s *Statemap) Emit() (*Emitter, error) {
	start, err := s.StartTime()
	if err != nil {
		return nil, err
	}
	return &Emitter{
		sm:       s,
		start:    start,
		colors:   s.Colors(),
		entities: s.Entities(),
	}, nil
}

// Next returns the next protocol record, or false when the sequence is
// exhausted.
func (e *Emitter) Next() (Record, bool) {
	if !e.header {
		e.header = true
		nanos := uint64(e.start)
		return Header{
			Version: Version,
			Title:   e.sm.title,
			Host:    e.sm.host,
			Start:   [2]uint64{nanos / uint64(time.Second), nanos % uint64(time.Second)},
		}, true
	}

	if e.ci < len(e.colors) {
		color := e.colors[e.ci]
		e.ci++
		id, _ := e.sm.registry.Lookup(color.Name)
		return StateMetadata{State: id, Color: color.Color}, true
	}

	for e.ei < len(e.entities) {
		timeline := e.sm.entities[e.entities[e.ei]]
		if e.ti < len(timeline.transitions) {
			tr := timeline.transitions[e.ti]
			e.ti++
			// An explicit start later than a recorded time would underflow.
			var rel Timestamp
			if tr.Time > e.start {
				rel = tr.Time - e.start
			}
			return Datum{
				Time:   rel,
				Entity: timeline.entity,
				State:  tr.State,
				Tag:    tr.Tag,
			}, true
		}
		e.ei++
		e.ti = 0
	}

	return nil, false
}

// WriteTo drains the emitter to w as JSON lines, one record per line.
func (e *Emitter) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for {
		rec, ok := e.Next()
		if !ok {
			return total, nil
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return total, err
		}
		data = append(data, '\n')
		n, err := w.Write(data)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
}
