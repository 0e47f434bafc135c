package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"statemap/internal/config"
)

func entitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entities",
		Short: "List recorded entities",
		RunE:  runEntities,
	}
	return cmd
}

func runEntities(cmd *cobra.Command, args []string) error {
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

	entities, err := db.ListEntities(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ENTITY\tTRANSITIONS\tFIRST (ns)\tLAST (ns)")
	for _, entity := range entities {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", entity.Name, entity.Transitions, entity.FirstTime, entity.LastTime)
	}
	return w.Flush()
}
