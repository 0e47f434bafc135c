// Package parser reads raw transition logs: line-oriented JSON in which each
// line is either a datum ({"time":"<ns>","entity":...,"state":...,"tag":...})
// or a color assignment ({"state":...,"color":...}). States are referred to
// by name; mapping names to numeric ids happens in the statemap model, not
// here.
package parser

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	ErrBadLine       = errors.New("malformed input line")
	ErrBadTime       = errors.New("illegal time value")
	ErrMissingEntity = errors.New("line missing required 'entity' field")
	ErrMissingState  = errors.New("line missing required 'state' field")
)

// Datum is one raw transition: entity entered state at an absolute time in
// nanoseconds.
type Datum struct {
	Time   uint64
	Entity string
	State  string
	Tag    string
}

// Color assigns a display color to a state name.
type Color struct {
	State string
	Color string
}

// Line is one parsed input line; exactly one of Datum or Color is set.
type Line struct {
	Datum *Datum
	Color *Color
}

type rawLine struct {
	Time   json.RawMessage `json:"time"`
	Entity string          `json:"entity"`
	State  string          `json:"state"`
	Tag    string          `json:"tag"`
	Color  string          `json:"color"`
}

func Parse(content []byte) (*Line, error) {
	decoder := json.NewDecoder(bytes.NewReader(content))
	decoder.DisallowUnknownFields()

	var raw rawLine
	if err := decoder.Decode(&raw); err != nil {
		return nil, ErrBadLine
	}
	// A line is exactly one JSON value.
	if _, err := decoder.Token(); err != io.EOF {
		return nil, ErrBadLine
	}

	if strings.TrimSpace(raw.State) == "" {
		return nil, ErrMissingState
	}

	if raw.Color != "" {
		if raw.Time != nil || raw.Entity != "" || raw.Tag != "" {
			return nil, ErrBadLine
		}
		return &Line{Color: &Color{State: raw.State, Color: raw.Color}}, nil
	}

	if strings.TrimSpace(raw.Entity) == "" {
		return nil, ErrMissingEntity
	}
	time, err := parseTime(raw.Time)
	if err != nil {
		return nil, err
	}

	return &Line{Datum: &Datum{
		Time:   time,
		Entity: raw.Entity,
		State:  raw.State,
		Tag:    raw.Tag,
	}}, nil
}

// parseTime requires the time to be a JSON string holding a base-10 unsigned
// integer, the form collectors write to avoid precision loss in consumers
// that read JSON numbers as floats.
func parseTime(raw json.RawMessage) (uint64, error) {
	if raw == nil {
		return 0, ErrBadTime
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, ErrBadTime
	}
	time, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, ErrBadTime
	}
	return time, nil
}

// ParseReader parses every non-blank line from r. Errors carry the
// one-based line number.
func ParseReader(r io.Reader) ([]Line, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []Line
	number := 0
	for scanner.Scan() {
		number++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		line, err := Parse(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", number, err)
		}
		lines = append(lines, *line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func ParseFile(path string) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines, err := ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lines, nil
}
