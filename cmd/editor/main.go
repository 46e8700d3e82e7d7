// Command editor is the interactive map editor. It opens one map from the
// worldloom database and runs an Ebitengine window around an editing session.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"golang.design/x/clipboard"

	"worldloom/assets"
	"worldloom/config"
	"worldloom/editor"
	"worldloom/store/sqlite"
)

func main() {
	configPath := flag.String("config", "worldloom.yaml", "path to the config file")
	mapID := flag.String("map", "", "id of the map to open")
	worldID := flag.String("world", "", "world to open; its first map is used when -map is empty")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	if err := run(*configPath, *mapID, *worldID, log); err != nil {
		log.Fatal().Err(err).Msg("editor exited")
	}
}

func run(configPath, mapID, worldID string, log zerolog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(lvl)
	}

	ctx := context.Background()
	client, err := sqlite.New(ctx, cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("opening database %s: %w", cfg.DatabasePath(), err)
	}
	defer client.Close(ctx)
	if err := client.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("preparing schema: %w", err)
	}

	if mapID == "" {
		mapID, err = pickMap(ctx, client, worldID)
		if err != nil {
			return err
		}
	}

	if err := clipboard.Init(); err != nil {
		// Coordinate copy degrades to a no-op; everything else still works.
		log.Warn().Err(err).Msg("clipboard unavailable")
	} else {
		clipboardReady = true
	}

	dialog := newDialog(client, log)
	session, err := editor.NewSession(ctx, mapID, editor.Options{
		Maps:            client,
		Entities:        client,
		Modal:           dialog,
		Logger:          log,
		MarkerHitRadius: cfg.Editor.MarkerHitRadius,
	})
	if err != nil {
		return fmt.Errorf("opening map %s: %w", mapID, err)
	}

	app := newApp(session, dialog, cfg, log)

	if watcher, err := assets.NewWatcher(cfg.AssetsDir); err != nil {
		log.Warn().Err(err).Str("dir", cfg.AssetsDir).Msg("asset watching disabled")
	} else {
		defer watcher.Close()
		app.watchBackground(watcher)
	}

	ebiten.SetWindowSize(cfg.Editor.WindowWidth, cfg.Editor.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Worldloom Editor - " + session.Map().Name)
	return ebiten.RunGame(app)
}

// pickMap resolves which map to open when none was named: the first map of
// the given world, or of the only world in the database.
func pickMap(ctx context.Context, client *sqlite.Client, worldID string) (string, error) {
	if worldID == "" {
		worlds, err := client.ListWorlds(ctx)
		if err != nil {
			return "", fmt.Errorf("listing worlds: %w", err)
		}
		if len(worlds) != 1 {
			return "", fmt.Errorf("found %d worlds; pass -world or -map", len(worlds))
		}
		worldID = worlds[0].ID
	}
	maps, err := client.ListMaps(ctx, worldID)
	if err != nil {
		return "", fmt.Errorf("listing maps: %w", err)
	}
	if len(maps) == 0 {
		return "", fmt.Errorf("world %s has no maps; create one with the worldloom CLI", worldID)
	}
	return maps[0].ID, nil
}
