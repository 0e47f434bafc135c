package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

type ProjectConfig struct {
	Project      string         `yaml:"project"`
	Version      int            `yaml:"version"`
	Title        string         `yaml:"title"`
	Host         string         `yaml:"host"`
	Database     DatabaseConfig `yaml:"database"`
	Inputs       []string       `yaml:"inputs"`
	Exclude      []string       `yaml:"exclude"`
	Colors       []StateColor   `yaml:"colors"`
	StrictColors bool           `yaml:"strict_colors"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// StateColor assigns a display color to a state name. Entries keep their
// document order, which fixes the order of emitted color metadata.
type StateColor struct {
	State string `yaml:"state"`
	Color string `yaml:"color"`
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if strings.TrimSpace(cfg.Title) == "" {
		return fmt.Errorf("statemap title is required")
	}

	seen := make(map[string]struct{})
	for i, entry := range cfg.Colors {
		if strings.TrimSpace(entry.State) == "" {
			return fmt.Errorf("color %d state is required", i)
		}
		if strings.TrimSpace(entry.Color) == "" {
			return fmt.Errorf("color %d value is required", i)
		}
		if cfg.StrictColors && !hexColor.MatchString(entry.Color) {
			return fmt.Errorf("color %d: %q is not #rrggbb", i, entry.Color)
		}
		key := strings.ToLower(entry.State)
		if _, exists := seen[key]; exists {
			return fmt.Errorf("duplicate color for state: %s", entry.State)
		}
		seen[key] = struct{}{}
	}

	return nil
}
