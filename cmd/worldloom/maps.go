package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"worldloom/store"
	"worldloom/world"
)

func mapsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maps",
		Short: "Manage maps (open one interactively with the editor command)",
	}
	cmd.AddCommand(mapsListCmd())
	cmd.AddCommand(mapsCreateCmd())
	cmd.AddCommand(mapsShowCmd())
	cmd.AddCommand(mapsUpdateCmd())
	cmd.AddCommand(mapsDeleteCmd())
	return cmd
}

func mapsListCmd() *cobra.Command {
	var worldID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List maps in a world",
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

			maps, err := db.ListMaps(ctx, worldID)
			if err != nil {
				return err
			}
			if len(maps) == 0 {
				fmt.Fprintln(os.Stdout, "No maps found.")
				return nil
			}
			for _, m := range maps {
				fmt.Fprintf(os.Stdout, "%s  %s  %dx%d  layers=%d\n", m.ID, m.Name, m.GridWidth, m.GridHeight, len(m.Layers))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&worldID, "world", "", "World id")
	return cmd
}

func mapsCreateCmd() *cobra.Command {
	var worldID, name, description, imagePath string
	var gridWidth, gridHeight int
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a map",
		RunE: func(cmd *cobra.Command, args []string) error {
			if worldID == "" {
				return fmt.Errorf("--world is required")
			}
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			if gridWidth <= 0 || gridHeight <= 0 {
				return fmt.Errorf("--grid-width and --grid-height must be positive")
			}
			ctx := context.Background()
			db, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close(ctx)

			m := world.Map{
				ID:          uuid.NewString(),
				WorldID:     worldID,
				Name:        name,
				Description: description,
				ImagePath:   imagePath,
				GridWidth:   gridWidth,
				GridHeight:  gridHeight,
				Layers:      []world.Layer{world.NewLayer("Base")},
			}
			if err := db.CreateMap(ctx, &m); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, m.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&worldID, "world", "", "World id")
	cmd.Flags().StringVar(&name, "name", "", "Map name")
	cmd.Flags().StringVar(&description, "description", "", "Map description")
	cmd.Flags().StringVar(&imagePath, "image", "", "Background image path, relative to the assets directory")
	cmd.Flags().IntVar(&gridWidth, "grid-width", 40, "Grid width in cells")
	cmd.Flags().IntVar(&gridHeight, "grid-height", 24, "Grid height in cells")
	return cmd
}

func mapsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a map's layers and object counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			db, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close(ctx)

			m, err := db.GetMap(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s  %dx%d\n", m.Name, m.GridWidth, m.GridHeight)
			if m.ImagePath != "" {
				fmt.Fprintf(os.Stdout, "image: %s\n", m.ImagePath)
			}
			for i, l := range m.Layers {
				markers, zones := 0, 0
				for _, o := range l.Objects {
					switch o.Kind {
					case world.KindMarker:
						markers++
					case world.KindZone:
						zones++
					}
				}
				visibility := ""
				if !l.Visible {
					visibility = "  (hidden)"
				}
				fmt.Fprintf(os.Stdout, "%d. %s  markers=%d zones=%d%s\n", i+1, l.Name, markers, zones, visibility)
			}
			return nil
		},
	}
}

func mapsUpdateCmd() *cobra.Command {
	var name, description, imagePath string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a map's name, description, or background image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var upd store.MapUpdate
			if cmd.Flags().Changed("name") {
				upd.Name = &name
			}
			if cmd.Flags().Changed("description") {
				upd.Description = &description
			}
			if cmd.Flags().Changed("image") {
				upd.ImagePath = &imagePath
			}
			if upd.Name == nil && upd.Description == nil && upd.ImagePath == nil {
				return fmt.Errorf("nothing to update; pass --name, --description, or --image")
			}
			ctx := context.Background()
			db, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close(ctx)
			return db.UpdateMap(ctx, args[0], upd)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New map name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&imagePath, "image", "", "New background image path")
	return cmd
}

func mapsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			db, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close(ctx)
			return db.DeleteMap(ctx, args[0])
		},
	}
}
