package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"worldloom/config"
	"worldloom/store/sqlite"
)

// openStore loads the project config and opens the database behind it,
// creating the data directory and schema on first use.
func openStore(ctx context.Context) (*sqlite.Client, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath()), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	client, err := sqlite.New(ctx, cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", cfg.DatabasePath(), err)
	}
	if err := client.EnsureSchema(ctx); err != nil {
		_ = client.Close(ctx)
		return nil, fmt.Errorf("preparing schema: %w", err)
	}
	return client, nil
}
