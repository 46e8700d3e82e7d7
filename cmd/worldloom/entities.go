package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"worldloom/store/sqlite"
	"worldloom/world"
)

// namedEntity abstracts the entity groups that share the name+description
// shape, so their subcommands come from one constructor.
type namedEntity struct {
	use      string
	short    string
	create   func(ctx context.Context, db *sqlite.Client, worldID, name, description string) (string, error)
	list     func(ctx context.Context, db *sqlite.Client, worldID string) ([][2]string, error)
	remove   func(ctx context.Context, db *sqlite.Client, id string) error
	singular string
}

func campaignsCmd() *cobra.Command {
	return namedEntityCmd(namedEntity{
		use: "campaigns", short: "Manage campaigns", singular: "campaign",
		create: func(ctx context.Context, db *sqlite.Client, worldID, name, description string) (string, error) {
			c := world.Campaign{ID: uuid.NewString(), WorldID: worldID, Name: name, Description: description}
			return c.ID, db.CreateCampaign(ctx, &c)
		},
		list: func(ctx context.Context, db *sqlite.Client, worldID string) ([][2]string, error) {
			items, err := db.ListCampaigns(ctx, worldID)
			if err != nil {
				return nil, err
			}
			rows := make([][2]string, len(items))
			for i, it := range items {
				rows[i] = [2]string{it.ID, it.Name}
			}
			return rows, nil
		},
		remove: func(ctx context.Context, db *sqlite.Client, id string) error {
			return db.DeleteCampaign(ctx, id)
		},
	})
}

func classesCmd() *cobra.Command {
	return namedEntityCmd(namedEntity{
		use: "classes", short: "Manage character classes", singular: "class",
		create: func(ctx context.Context, db *sqlite.Client, worldID, name, description string) (string, error) {
			c := world.CharacterClass{ID: uuid.NewString(), WorldID: worldID, Name: name, Description: description}
			return c.ID, db.CreateClass(ctx, &c)
		},
		list: func(ctx context.Context, db *sqlite.Client, worldID string) ([][2]string, error) {
			items, err := db.ListClasses(ctx, worldID)
			if err != nil {
				return nil, err
			}
			rows := make([][2]string, len(items))
			for i, it := range items {
				rows[i] = [2]string{it.ID, it.Name}
			}
			return rows, nil
		},
		remove: func(ctx context.Context, db *sqlite.Client, id string) error {
			return db.DeleteClass(ctx, id)
		},
	})
}

func abilitiesCmd() *cobra.Command {
	return namedEntityCmd(namedEntity{
		use: "abilities", short: "Manage abilities", singular: "ability",
		create: func(ctx context.Context, db *sqlite.Client, worldID, name, description string) (string, error) {
			a := world.Ability{ID: uuid.NewString(), WorldID: worldID, Name: name, Description: description}
			return a.ID, db.CreateAbility(ctx, &a)
		},
		list: func(ctx context.Context, db *sqlite.Client, worldID string) ([][2]string, error) {
			items, err := db.ListAbilities(ctx, worldID)
			if err != nil {
				return nil, err
			}
			rows := make([][2]string, len(items))
			for i, it := range items {
				rows[i] = [2]string{it.ID, it.Name}
			}
			return rows, nil
		},
		remove: func(ctx context.Context, db *sqlite.Client, id string) error {
			return db.DeleteAbility(ctx, id)
		},
	})
}

func locationsCmd() *cobra.Command {
	return namedEntityCmd(namedEntity{
		use: "locations", short: "Manage locations", singular: "location",
		create: func(ctx context.Context, db *sqlite.Client, worldID, name, description string) (string, error) {
			l := world.Location{ID: uuid.NewString(), WorldID: worldID, Name: name, Description: description}
			return l.ID, db.CreateLocation(ctx, &l)
		},
		list: func(ctx context.Context, db *sqlite.Client, worldID string) ([][2]string, error) {
			items, err := db.ListLocations(ctx, worldID)
			if err != nil {
				return nil, err
			}
			rows := make([][2]string, len(items))
			for i, it := range items {
				rows[i] = [2]string{it.ID, it.Name}
			}
			return rows, nil
		},
		remove: func(ctx context.Context, db *sqlite.Client, id string) error {
			return db.DeleteLocation(ctx, id)
		},
	})
}

func questsCmd() *cobra.Command {
	return namedEntityCmd(namedEntity{
		use: "quests", short: "Manage quests", singular: "quest",
		create: func(ctx context.Context, db *sqlite.Client, worldID, name, description string) (string, error) {
			q := world.Quest{ID: uuid.NewString(), WorldID: worldID, Name: name, Description: description}
			return q.ID, db.CreateQuest(ctx, &q)
		},
		list: func(ctx context.Context, db *sqlite.Client, worldID string) ([][2]string, error) {
			items, err := db.ListQuests(ctx, worldID)
			if err != nil {
				return nil, err
			}
			rows := make([][2]string, len(items))
			for i, it := range items {
				rows[i] = [2]string{it.ID, it.Name}
			}
			return rows, nil
		},
		remove: func(ctx context.Context, db *sqlite.Client, id string) error {
			return db.DeleteQuest(ctx, id)
		},
	})
}

func namedEntityCmd(e namedEntity) *cobra.Command {
	cmd := &cobra.Command{
		Use:   e.use,
		Short: e.short,
	}

	var worldID string
	list := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s in a world", e.use),
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

			rows, err := e.list(ctx, db, worldID)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintf(os.Stdout, "No %s found.\n", e.use)
				return nil
			}
			for _, row := range rows {
				fmt.Fprintf(os.Stdout, "%s  %s\n", row[0], row[1])
			}
			return nil
		},
	}
	list.Flags().StringVar(&worldID, "world", "", "World id")

	var createWorldID, name, description string
	create := &cobra.Command{
		Use:   "create",
		Short: fmt.Sprintf("Create a %s", e.singular),
		RunE: func(cmd *cobra.Command, args []string) error {
			if createWorldID == "" {
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

			id, err := e.create(ctx, db, createWorldID, name, description)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, id)
			return nil
		},
	}
	create.Flags().StringVar(&createWorldID, "world", "", "World id")
	create.Flags().StringVar(&name, "name", "", "Name")
	create.Flags().StringVar(&description, "description", "", "Description")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: fmt.Sprintf("Delete a %s", e.singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			db, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close(ctx)
			return e.remove(ctx, db, args[0])
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}
