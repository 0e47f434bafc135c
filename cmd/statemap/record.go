package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"statemap/internal/config"
	"statemap/internal/store"
)

func recordCmd() *cobra.Command {
	var entity string
	var state string
	var timeValue string
	var tag string
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a single state transition",
		RunE: func(cmd *cobra.Command, args []string) error {
			if entity == "" {
				return fmt.Errorf("--entity is required")
			}
			if state == "" {
				return fmt.Errorf("--state is required")
			}
			time, err := strconv.ParseUint(timeValue, 10, 64)
			if err != nil {
				return fmt.Errorf("--time must be a decimal nanosecond value")
			}
			return runRecord(store.Transition{Entity: entity, State: state, Tag: tag, Time: time})
		},
	}
	cmd.Flags().StringVar(&entity, "entity", "", "Entity name")
	cmd.Flags().StringVar(&state, "state", "", "State the entity entered")
	cmd.Flags().StringVar(&timeValue, "time", "", "Absolute time in nanoseconds")
	cmd.Flags().StringVar(&tag, "tag", "", "Optional tag for this transition")
	cmd.AddCommand(recordColorCmd())
	return cmd
}

func recordColorCmd() *cobra.Command {
	var state string
	var color string
	cmd := &cobra.Command{
		Use:   "color",
		Short: "Assign a display color to a state",
		RunE: func(cmd *cobra.Command, args []string) error {
			if state == "" {
				return fmt.Errorf("--state is required")
			}
			if strings.TrimSpace(color) == "" {
				return fmt.Errorf("--color is required")
			}
			return runRecordColor(state, color)
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "State name")
	cmd.Flags().StringVar(&color, "color", "", "Display color, e.g. #2e7d32")
	return cmd
}

func runRecord(transition store.Transition) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(configFile)
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
	return db.AppendTransition(ctx, transition)
}

func runRecordColor(state, color string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(configFile)
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
	return db.SetStateColor(ctx, state, color)
}
