package statemap

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func collect(t *testing.T, sm *Statemap) []Record {
	t.Helper()
	emitter, err := sm.Emit()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	var records []Record
	for {
		rec, ok := emitter.Next()
		if !ok {
			return records
		}
		records = append(records, rec)
	}
}

func TestEmitExampleScenario(t *testing.T) {
	sm := New("demo", "host1")
	if err := sm.SetState("main", "working", "", 100); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := sm.SetState("main", "idle", "", 150); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := sm.SetStateColor("working", "red"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []Record{
		Header{Version: 1, Title: "demo", Host: "host1", Start: [2]uint64{0, 100}},
		StateMetadata{State: 0, Color: "red"},
		Datum{Time: 0, Entity: "main", State: 0},
		Datum{Time: 50, Entity: "main", State: 1},
	}
	if got := collect(t, sm); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected records: %#v", got)
	}
}

func TestEmitOrdering(t *testing.T) {
	sm := New("sched", "")
	calls := []struct {
		entity, state string
		ts            Timestamp
	}{
		{"cpu0", "on-cpu", 1000},
		{"cpu1", "off-cpu", 1100},
		{"cpu0", "off-cpu", 1200},
		{"cpu1", "on-cpu", 1300},
	}
	for _, call := range calls {
		if err := sm.SetState(call.entity, call.state, "", call.ts); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	records := collect(t, sm)
	if len(records) != 5 {
		t.Fatalf("expected header plus one datum per call, got %d records", len(records))
	}
	if _, ok := records[0].(Header); !ok {
		t.Fatalf("expected header first, got %#v", records[0])
	}
	// Entities in insertion order, each entity's data in timestamp order.
	want := []Datum{
		{Time: 0, Entity: "cpu0", State: 0},
		{Time: 200, Entity: "cpu0", State: 1},
		{Time: 100, Entity: "cpu1", State: 1},
		{Time: 300, Entity: "cpu1", State: 0},
	}
	for i, datum := range want {
		got, ok := records[i+1].(Datum)
		if !ok || got != datum {
			t.Fatalf("record %d: expected %#v, got %#v", i+1, datum, records[i+1])
		}
	}
}

func TestEmitIdempotent(t *testing.T) {
	sm := New("demo", "host1")
	if err := sm.SetStateColor("working", "#ff0000"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := sm.SetState("main", "working", "spin", 2_000_000_100); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := sm.SetState("main", "idle", "", 2_000_000_150); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var first, second bytes.Buffer
	for _, buf := range []*bytes.Buffer{&first, &second} {
		emitter, err := sm.Emit()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := emitter.WriteTo(buf); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatalf("repeated emission differs:\n%s\n%s", first.String(), second.String())
	}
}

func TestEmitJSONLines(t *testing.T) {
	sm := New("demo", "")
	if err := sm.SetState("main", "working", "boot", 2_000_000_100); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := sm.SetStateColor("working", "#ff0000"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	emitter, err := sm.Emit()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	var buf bytes.Buffer
	if _, err := emitter.WriteTo(&buf); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := `{"version":1,"title":"demo","start":[2,100]}
{"state":0,"color":"#ff0000"}
{"time":"0","entity":"main","state":0,"tag":"boot"}
`
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s", got)
	}
}

func TestEmitNoTransitions(t *testing.T) {
	t.Run("empty statemap", func(t *testing.T) {
		sm := New("demo", "")
		if _, err := sm.Emit(); !errors.Is(err, ErrNoTransitions) {
			t.Fatalf("expected ErrNoTransitions, got %v", err)
		}
	})

	t.Run("colors alone are not transitions", func(t *testing.T) {
		sm := New("demo", "")
		if err := sm.SetStateColor("working", "red"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := sm.Emit(); !errors.Is(err, ErrNoTransitions) {
			t.Fatalf("expected ErrNoTransitions, got %v", err)
		}
	})

	t.Run("explicit start allows emitting without data", func(t *testing.T) {
		sm := New("demo", "")
		sm.SetStart(100)
		records := collect(t, sm)
		if len(records) != 1 {
			t.Fatalf("expected header only, got %d records", len(records))
		}
	})
}

func TestEmitColorForUnusedState(t *testing.T) {
	sm := New("demo", "")
	if err := sm.SetState("main", "working", "", 100); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := sm.SetStateColor("never-entered", "#00ff00"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records := collect(t, sm)
	meta, ok := records[1].(StateMetadata)
	if !ok {
		t.Fatalf("expected state metadata, got %#v", records[1])
	}
	// "working" took id 0 via its transition, so the colored-but-unused
	// state gets the next id.
	if meta.State != 1 || meta.Color != "#00ff00" {
		t.Fatalf("unexpected metadata: %#v", meta)
	}
}

func TestEmitAfterRejectedCall(t *testing.T) {
	sm := New("demo", "")
	if err := sm.SetState("main", "working", "", 100); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := sm.SetState("main", "idle", "", 50); !errors.Is(err, ErrNonMonotonicTime) {
		t.Fatalf("expected ErrNonMonotonicTime, got %v", err)
	}
	if err := sm.SetState("main", "idle", "", 150); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records := collect(t, sm)
	// Header plus the two accepted calls only.
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if datum := records[2].(Datum); datum.Time != 50 || datum.State != 1 {
		t.Fatalf("unexpected final datum: %#v", datum)
	}
}

func TestEmitResumableBuilding(t *testing.T) {
	sm := New("demo", "")
	if err := sm.SetState("main", "working", "", 100); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	first := collect(t, sm)

	// The statemap returns to building after a pass; a fresh emission
	// includes data recorded since.
	if err := sm.SetState("main", "idle", "", 200); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second := collect(t, sm)
	if len(second) != len(first)+1 {
		t.Fatalf("expected one more record, got %d then %d", len(first), len(second))
	}
}
