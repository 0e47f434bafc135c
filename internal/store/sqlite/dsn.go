package sqlite

import (
	"fmt"
	"path/filepath"
	"strings"
)

// parseDSN turns a sqlite:// DSN into a driver path. Accepted forms are
// sqlite://:memory:, sqlite://relative.db, and sqlite:///absolute/path.db.
// Relative paths are anchored with ./ so the driver never treats them as
// URI options.
func parseDSN(dsn string) (string, error) {
	if !strings.HasPrefix(dsn, "sqlite://") {
		return "", fmt.Errorf("invalid sqlite DSN scheme, expected sqlite://")
	}

	path := strings.TrimPrefix(dsn, "sqlite://")
	if path == "" {
		return "", fmt.Errorf("sqlite DSN has no database path")
	}

	if path == ":memory:" {
		return path, nil
	}

	if filepath.IsAbs(path) || strings.HasPrefix(path, "./") {
		return path, nil
	}
	return "./" + path, nil
}
