package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"worldloom/world"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Manage stat definitions",
	}
	cmd.AddCommand(statsListCmd())
	cmd.AddCommand(statsCreateCmd())
	cmd.AddCommand(statsDeleteCmd())
	return cmd
}

func statsListCmd() *cobra.Command {
	var worldID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stats in a world",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if worldID == "" {
				return fmt.Errorf("--world is required")
			}
			ctx := context.Background()
			db, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close(ctx)

			stats, err := db.ListStats(ctx, worldID)
			if err != nil {
				return err
			}
			if len(stats) == 0 {
				fmt.Fprintln(os.Stdout, "No stats found.")
				return nil
			}
			for _, s := range stats {
				fmt.Fprintf(os.Stdout, "%s  %s  [%d..%d]\n", s.ID, s.Name, s.Min, s.Max)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&worldID, "world", "", "World id")
	return cmd
}

func statsCreateCmd() *cobra.Command {
	var worldID, name string
	var min, max int
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a stat definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			if worldID == "" {
				return fmt.Errorf("--world is required")
			}
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			if max < min {
				return fmt.Errorf("--max must be >= --min")
			}
			ctx := context.Background()
			db, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close(ctx)

			s := world.Stat{ID: uuid.NewString(), WorldID: worldID, Name: name, Min: min, Max: max}
			if err := db.CreateStat(ctx, &s); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, s.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&worldID, "world", "", "World id")
	cmd.Flags().StringVar(&name, "name", "", "Stat name")
	cmd.Flags().IntVar(&min, "min", 0, "Minimum value")
	cmd.Flags().IntVar(&max, "max", 20, "Maximum value")
	return cmd
}

func statsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stat definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			db, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close(ctx)
			return db.DeleteStat(ctx, args[0])
		},
	}
}
