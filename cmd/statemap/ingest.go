package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"statemap/internal/config"
	"statemap/internal/ingest"
	"statemap/internal/statemap"
	"statemap/internal/store"
)

var ingestFailFast bool

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load input files into the transition store",
		RunE:  runIngest,
	}
	cmd.Flags().BoolVar(&ingestFailFast, "fail-fast", false, "Stop at the first bad record instead of collecting errors")
	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(configFile)
	if err != nil {
		return err
	}

	sm := statemap.New(cfg.Title, cfg.Host)
	result, err := ingest.Run(ctx, cfg, sm, ingest.Options{FailFast: ingestFailFast})
	if err != nil {
		return err
	}

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := persistStatemap(ctx, db, sm); err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Ingestion complete.")
	fmt.Fprintf(os.Stdout, "  Files read:         %d\n", result.FilesRead)
	fmt.Fprintf(os.Stdout, "  Transitions loaded: %d\n", result.TransitionsLoaded)
	fmt.Fprintf(os.Stdout, "  Colors loaded:      %d\n", result.ColorsLoaded)

	if len(result.Errors) > 0 {
		fmt.Fprintf(os.Stdout, "\nErrors (%d):\n", len(result.Errors))
		for _, item := range result.Errors {
			fmt.Fprintf(os.Stdout, "  - %v\n", item)
		}
		return fmt.Errorf("ingestion completed with errors")
	}

	return nil
}

// persistStatemap writes the in-memory model back out in first-seen order so
// the store replays it identically.
func persistStatemap(ctx context.Context, db store.Store, sm *statemap.Statemap) error {
	for _, entry := range sm.Colors() {
		if err := db.SetStateColor(ctx, entry.Name, entry.Color); err != nil {
			return fmt.Errorf("persisting color for %s: %w", entry.Name, err)
		}
	}

	states := sm.States()
	for _, entity := range sm.Entities() {
		for _, tr := range sm.Transitions(entity) {
			err := db.AppendTransition(ctx, store.Transition{
				Entity: entity,
				State:  states[tr.State],
				Tag:    tr.Tag,
				Time:   uint64(tr.Time),
			})
			if err != nil {
				return fmt.Errorf("persisting transition for %s: %w", entity, err)
			}
		}
	}
	return nil
}
