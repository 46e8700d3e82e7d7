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

func worldsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worlds",
		Short: "Manage worlds",
	}
	cmd.AddCommand(worldsListCmd())
	cmd.AddCommand(worldsCreateCmd())
	cmd.AddCommand(worldsDeleteCmd())
	return cmd
}

func worldsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all worlds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			db, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close(ctx)

			worlds, err := db.ListWorlds(ctx)
			if err != nil {
				return err
			}
			if len(worlds) == 0 {
				fmt.Fprintln(os.Stdout, "No worlds yet. Create one with: worldloom worlds create --name <name>")
				return nil
			}
			for _, w := range worlds {
				fmt.Fprintf(os.Stdout, "%s  %s\n", w.ID, w.Name)
			}
			return nil
		},
	}
}

func worldsCreateCmd() *cobra.Command {
	var name string
	var description string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a world",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			ctx := context.Background()
			db, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close(ctx)

			w := world.World{ID: uuid.NewString(), Name: name, Description: description}
			if err := db.CreateWorld(ctx, &w); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, w.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "World name")
	cmd.Flags().StringVar(&description, "description", "", "World description")
	return cmd
}

func worldsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a world and everything it owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			db, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close(ctx)
			return db.DeleteWorld(ctx, args[0])
		},
	}
}
