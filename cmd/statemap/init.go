package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var projectName string
	var title string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new statemap project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			if strings.TrimSpace(title) == "" {
				title = projectName
			}
			return runInit(projectName, title)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	cmd.Flags().StringVar(&title, "title", "", "Statemap title (defaults to the project name)")
	return cmd
}

func runInit(projectName, title string) error {
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("%s already exists", configFile)
	}

	contents := fmt.Sprintf("project: %s\nversion: 1\n\ntitle: %s\n# host: myhost\n\ndatabase:\n  dsn: sqlite://statemap.db\n\ninputs:\n  - ./data/\n\nexclude: []\n\ncolors: []\n  # - state: on-cpu\n  #   color: \"#2e7d32\"\n\nstrict_colors: false\n", projectName, title)
	if err := os.WriteFile(configFile, []byte(contents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configFile, err)
	}

	return nil
}
