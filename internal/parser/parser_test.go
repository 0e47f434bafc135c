package parser

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Run("datum with tag", func(t *testing.T) {
		line, err := Parse([]byte(`{"time":"1000","entity":"cpu0","state":"on-cpu","tag":"pid 1234"}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if line.Color != nil {
			t.Fatalf("expected datum line, got color %#v", line.Color)
		}
		want := &Datum{Time: 1000, Entity: "cpu0", State: "on-cpu", Tag: "pid 1234"}
		if !reflect.DeepEqual(line.Datum, want) {
			t.Fatalf("unexpected datum: %#v", line.Datum)
		}
	})

	t.Run("datum without tag", func(t *testing.T) {
		line, err := Parse([]byte(`{"time":"0","entity":"cpu0","state":"idle"}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if line.Datum.Tag != "" {
			t.Fatalf("expected empty tag, got %q", line.Datum.Tag)
		}
	})

	t.Run("color line", func(t *testing.T) {
		line, err := Parse([]byte(`{"state":"on-cpu","color":"#2e7d32"}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if line.Datum != nil {
			t.Fatalf("expected color line, got datum %#v", line.Datum)
		}
		want := &Color{State: "on-cpu", Color: "#2e7d32"}
		if !reflect.DeepEqual(line.Color, want) {
			t.Fatalf("unexpected color: %#v", line.Color)
		}
	})

	t.Run("numeric time rejected", func(t *testing.T) {
		_, err := Parse([]byte(`{"time":1000,"entity":"cpu0","state":"on-cpu"}`))
		if !errors.Is(err, ErrBadTime) {
			t.Fatalf("expected ErrBadTime, got %v", err)
		}
	})

	t.Run("non-integer time rejected", func(t *testing.T) {
		for _, value := range []string{`"12.5"`, `"-3"`, `"soon"`, `""`} {
			_, err := Parse([]byte(`{"time":` + value + `,"entity":"cpu0","state":"on-cpu"}`))
			if !errors.Is(err, ErrBadTime) {
				t.Fatalf("time %s: expected ErrBadTime, got %v", value, err)
			}
		}
	})

	t.Run("missing time rejected", func(t *testing.T) {
		_, err := Parse([]byte(`{"entity":"cpu0","state":"on-cpu"}`))
		if !errors.Is(err, ErrBadTime) {
			t.Fatalf("expected ErrBadTime, got %v", err)
		}
	})

	t.Run("missing entity", func(t *testing.T) {
		_, err := Parse([]byte(`{"time":"1000","state":"on-cpu"}`))
		if !errors.Is(err, ErrMissingEntity) {
			t.Fatalf("expected ErrMissingEntity, got %v", err)
		}
	})

	t.Run("missing state", func(t *testing.T) {
		_, err := Parse([]byte(`{"time":"1000","entity":"cpu0"}`))
		if !errors.Is(err, ErrMissingState) {
			t.Fatalf("expected ErrMissingState, got %v", err)
		}
	})

	t.Run("color mixed with datum fields", func(t *testing.T) {
		_, err := Parse([]byte(`{"time":"1000","entity":"cpu0","state":"on-cpu","color":"red"}`))
		if !errors.Is(err, ErrBadLine) {
			t.Fatalf("expected ErrBadLine, got %v", err)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Parse([]byte(`{"time":"1000","entity":"cpu0","state":"on-cpu","weight":2}`))
		if !errors.Is(err, ErrBadLine) {
			t.Fatalf("expected ErrBadLine, got %v", err)
		}
	})

	t.Run("trailing content rejected", func(t *testing.T) {
		for _, line := range []string{
			`{"state":"on-cpu","color":"red"} junk`,
			`{"state":"on-cpu","color":"red"}{"state":"idle","color":"blue"}`,
			`{"time":"5","entity":"cpu0","state":"on-cpu"} 7`,
		} {
			_, err := Parse([]byte(line))
			if !errors.Is(err, ErrBadLine) {
				t.Fatalf("line %s: expected ErrBadLine, got %v", line, err)
			}
		}
	})

	t.Run("not json", func(t *testing.T) {
		_, err := Parse([]byte("cpu0 on-cpu 1000"))
		if !errors.Is(err, ErrBadLine) {
			t.Fatalf("expected ErrBadLine, got %v", err)
		}
	})
}

func TestParseReader(t *testing.T) {
	t.Run("skips blank lines", func(t *testing.T) {
		input := "{\"state\":\"on-cpu\",\"color\":\"red\"}\n\n{\"time\":\"5\",\"entity\":\"cpu0\",\"state\":\"on-cpu\"}\n"
		lines, err := ParseReader(strings.NewReader(input))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(lines))
		}
		if lines[0].Color == nil || lines[1].Datum == nil {
			t.Fatalf("unexpected line kinds: %#v", lines)
		}
	})

	t.Run("errors carry line numbers", func(t *testing.T) {
		input := "{\"time\":\"5\",\"entity\":\"cpu0\",\"state\":\"on-cpu\"}\n{\"time\":\"bad\",\"entity\":\"cpu0\",\"state\":\"idle\"}\n"
		_, err := ParseReader(strings.NewReader(input))
		if !errors.Is(err, ErrBadTime) {
			t.Fatalf("expected ErrBadTime, got %v", err)
		}
		if !strings.Contains(err.Error(), "line 2") {
			t.Fatalf("expected line number in error, got %v", err)
		}
	})
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	contents := "{\"time\":\"5\",\"entity\":\"cpu0\",\"state\":\"on-cpu\"}\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing input: %v", err)
	}
	lines, err := ParseFile(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
}

func TestParseFile_Missing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error")
	}
}
