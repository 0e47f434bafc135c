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

var emitInputs []string

func emitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Emit recorded data as statemap protocol records on stdout",
		RunE:  runEmit,
	}
	cmd.Flags().StringSliceVar(&emitInputs, "input", nil, "Emit directly from these input paths instead of the store")
	return cmd
}

func runEmit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(configFile)
	if err != nil {
		return err
	}

	sm := statemap.New(cfg.Title, cfg.Host)

	if len(emitInputs) > 0 {
		if err := ingestInputs(ctx, cfg, sm, emitInputs); err != nil {
			return err
		}
	} else {
		for _, entry := range cfg.Colors {
			if err := sm.SetStateColor(entry.State, entry.Color); err != nil {
				return err
			}
		}

		db, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close(ctx)

		if err := store.Load(ctx, db, sm); err != nil {
			return err
		}
	}

	emitter, err := sm.Emit()
	if err != nil {
		return err
	}
	if _, err := emitter.WriteTo(os.Stdout); err != nil {
		return fmt.Errorf("writing statemap: %w", err)
	}
	return nil
}

// ingestInputs replays the given paths into sm, stopping at the first bad
// record.
func ingestInputs(ctx context.Context, cfg *config.ProjectConfig, sm *statemap.Statemap, inputs []string) error {
	inputCfg := *cfg
	inputCfg.Inputs = inputs
	_, err := ingest.Run(ctx, &inputCfg, sm, ingest.Options{FailFast: true})
	return err
}
