package main

import (
	"os"

	"github.com/spf13/cobra"
)

// configFile is resolved relative to the working directory, like the rest of
// the project layout.
const configFile = "statemap.yaml"

func main() {
	root := &cobra.Command{
		Use:   "statemap",
		Short: "Record entity state transitions and emit statemap protocol output",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(initCmd())
	root.AddCommand(recordCmd())
	root.AddCommand(ingestCmd())
	root.AddCommand(emitCmd())
	root.AddCommand(entitiesCmd())
	root.AddCommand(resetCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
