// Package ingest loads raw transition logs into a statemap model.
package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"statemap/internal/config"
	"statemap/internal/parser"
	"statemap/internal/statemap"
)

type Result struct {
	TransitionsLoaded int
	ColorsLoaded      int
	FilesRead         int
	Errors            []error
}

type Options struct {
	// FailFast aborts on the first error instead of collecting it and
	// continuing with the remaining input.
	FailFast bool
}

// Run applies the configured colors and then replays every input log into
// sm. Files are visited in config order, lines in file order, so repeated
// runs over the same input produce the same model. Per-file and per-line
// failures land in Result.Errors unless FailFast is set.
func Run(ctx context.Context, cfg *config.ProjectConfig, sm *statemap.Statemap, options Options) (*Result, error) {
	result := &Result{}

	for _, entry := range cfg.Colors {
		if err := sm.SetStateColor(entry.State, entry.Color); err != nil {
			if options.FailFast {
				return nil, fmt.Errorf("configured color for %s: %w", entry.State, err)
			}
			result.Errors = append(result.Errors, fmt.Errorf("configured color for %s: %w", entry.State, err))
			continue
		}
		result.ColorsLoaded++
	}

	files, err := walkInputFiles(cfg.Inputs, cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("walking input files: %w", err)
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lines, err := parser.ParseFile(path)
		if err != nil {
			if options.FailFast {
				return nil, err
			}
			result.Errors = append(result.Errors, err)
			continue
		}
		result.FilesRead++

		for _, line := range lines {
			if line.Color != nil {
				if err := sm.SetStateColor(line.Color.State, line.Color.Color); err != nil {
					if options.FailFast {
						return nil, fmt.Errorf("%s: %w", path, err)
					}
					result.Errors = append(result.Errors, fmt.Errorf("%s: %w", path, err))
					continue
				}
				result.ColorsLoaded++
				continue
			}

			datum := line.Datum
			if err := sm.SetState(datum.Entity, datum.State, datum.Tag, statemap.Timestamp(datum.Time)); err != nil {
				if options.FailFast {
					return nil, fmt.Errorf("%s: %w", path, err)
				}
				result.Errors = append(result.Errors, fmt.Errorf("%s: %w", path, err))
				continue
			}
			result.TransitionsLoaded++
		}
	}

	return result, nil
}

func walkInputFiles(roots []string, excludes []string) ([]string, error) {
	excluded := make([]string, 0, len(excludes))
	for _, path := range excludes {
		if path == "" {
			continue
		}
		excluded = append(excluded, filepath.Clean(path))
	}

	var files []string
	for _, root := range roots {
		if root == "" {
			continue
		}
		root = filepath.Clean(root)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() && isExcluded(path, excluded) {
				return filepath.SkipDir
			}
			if d.IsDir() {
				return nil
			}
			if !strings.HasSuffix(strings.ToLower(d.Name()), ".json") {
				return nil
			}
			if isExcluded(path, excluded) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func isExcluded(path string, excludes []string) bool {
	clean := filepath.Clean(path)
	for _, exclude := range excludes {
		if exclude == clean || strings.HasPrefix(clean, exclude+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}
