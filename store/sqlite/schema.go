package sqlite

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS worlds (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT DEFAULT '',
		created_at  TEXT DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS campaigns (
		id          TEXT PRIMARY KEY,
		world_id    TEXT NOT NULL REFERENCES worlds(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		description TEXT DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS classes (
		id          TEXT PRIMARY KEY,
		world_id    TEXT NOT NULL REFERENCES worlds(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		description TEXT DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS characters (
		id          TEXT PRIMARY KEY,
		world_id    TEXT NOT NULL REFERENCES worlds(id) ON DELETE CASCADE,
		class_id    TEXT REFERENCES classes(id) ON DELETE SET NULL,
		name        TEXT NOT NULL,
		description TEXT DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS stats (
		id       TEXT PRIMARY KEY,
		world_id TEXT NOT NULL REFERENCES worlds(id) ON DELETE CASCADE,
		name     TEXT NOT NULL,
		min      INTEGER DEFAULT 0,
		max      INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS abilities (
		id          TEXT PRIMARY KEY,
		world_id    TEXT NOT NULL REFERENCES worlds(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		description TEXT DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS locations (
		id          TEXT PRIMARY KEY,
		world_id    TEXT NOT NULL REFERENCES worlds(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		description TEXT DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS quests (
		id          TEXT PRIMARY KEY,
		world_id    TEXT NOT NULL REFERENCES worlds(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		description TEXT DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS maps (
		id          TEXT PRIMARY KEY,
		world_id    TEXT NOT NULL REFERENCES worlds(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		description TEXT DEFAULT '',
		image_path  TEXT DEFAULT '',
		grid_width  INTEGER DEFAULT 0,
		grid_height INTEGER DEFAULT 0,
		layers      TEXT NOT NULL DEFAULT '[]',
		updated_at  TEXT DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_campaigns_world ON campaigns (world_id);
	CREATE INDEX IF NOT EXISTS idx_classes_world ON classes (world_id);
	CREATE INDEX IF NOT EXISTS idx_characters_world ON characters (world_id);
	CREATE INDEX IF NOT EXISTS idx_stats_world ON stats (world_id);
	CREATE INDEX IF NOT EXISTS idx_abilities_world ON abilities (world_id);
	CREATE INDEX IF NOT EXISTS idx_locations_world ON locations (world_id);
	CREATE INDEX IF NOT EXISTS idx_quests_world ON quests (world_id);
	CREATE INDEX IF NOT EXISTS idx_maps_world ON maps (world_id);
	`

	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
