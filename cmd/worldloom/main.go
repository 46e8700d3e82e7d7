// Command worldloom manages worlds and their entities from the terminal:
// scaffolding a project, CRUD for every entity type, and map bookkeeping.
// The interactive map editing itself lives in the editor command.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "worldloom",
		Short: "Worldbuilding toolkit for tabletop campaigns",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&configPath, "config", "worldloom.yaml", "Path to the config file")

	root.AddCommand(initCmd())
	root.AddCommand(versionCmd())
	root.AddCommand(worldsCmd())
	root.AddCommand(campaignsCmd())
	root.AddCommand(classesCmd())
	root.AddCommand(charactersCmd())
	root.AddCommand(statsCmd())
	root.AddCommand(abilitiesCmd())
	root.AddCommand(locationsCmd())
	root.AddCommand(questsCmd())
	root.AddCommand(mapsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
