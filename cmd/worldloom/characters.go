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

func charactersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "characters",
		Short: "Manage characters",
	}
	cmd.AddCommand(charactersListCmd())
	cmd.AddCommand(charactersCreateCmd())
	cmd.AddCommand(charactersDeleteCmd())
	return cmd
}

func charactersListCmd() *cobra.Command {
	var worldID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List characters in a world",
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

			chars, err := db.ListCharacters(ctx, worldID)
			if err != nil {
				return err
			}
			if len(chars) == 0 {
				fmt.Fprintln(os.Stdout, "No characters found.")
				return nil
			}
			for _, c := range chars {
				class := c.ClassID
				if class == "" {
					class = "-"
				}
				fmt.Fprintf(os.Stdout, "%s  %s  class=%s\n", c.ID, c.Name, class)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&worldID, "world", "", "World id")
	return cmd
}

func charactersCreateCmd() *cobra.Command {
	var worldID, name, classID, description string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a character",
		RunE: func(cmd *cobra.Command, args []string) error {
			if worldID == "" {
				return fmt.Errorf("--world is required")
			}
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			ctx := context.Background()
			db, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close(ctx)

			c := world.Character{
				ID:          uuid.NewString(),
				WorldID:     worldID,
				Name:        name,
				ClassID:     classID,
				Description: description,
			}
			if err := db.CreateCharacter(ctx, &c); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, c.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&worldID, "world", "", "World id")
	cmd.Flags().StringVar(&name, "name", "", "Character name")
	cmd.Flags().StringVar(&classID, "class", "", "Class id (optional)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	return cmd
}

func charactersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			db, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close(ctx)
			return db.DeleteCharacter(ctx, args[0])
		},
	}
}
