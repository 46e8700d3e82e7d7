package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"worldloom/store"
	"worldloom/world"
)

// scanErr maps sql.ErrNoRows to the store sentinel.
func scanErr(what string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return fmt.Errorf("getting %s: %w", what, err)
}

func (c *Client) CreateMap(ctx context.Context, m *world.Map) error {
	if m.Layers == nil {
		m.Layers = []world.Layer{}
	}
	layers, err := json.Marshal(m.Layers)
	if err != nil {
		return fmt.Errorf("marshaling layers: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		"INSERT INTO maps (id, world_id, name, description, image_path, grid_width, grid_height, layers) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		m.ID, m.WorldID, m.Name, m.Description, m.ImagePath, m.GridWidth, m.GridHeight, string(layers))
	if err != nil {
		return fmt.Errorf("creating map: %w", err)
	}
	return nil
}

func (c *Client) ListMaps(ctx context.Context, worldID string) ([]world.Map, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT id, world_id, name, description, image_path, grid_width, grid_height, layers FROM maps WHERE world_id = ? ORDER BY name", worldID)
	if err != nil {
		return nil, fmt.Errorf("listing maps: %w", err)
	}
	defer rows.Close()

	var out []world.Map
	for rows.Next() {
		m, err := scanMap(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (c *Client) GetMap(ctx context.Context, id string) (*world.Map, error) {
	row := c.db.QueryRowContext(ctx,
		"SELECT id, world_id, name, description, image_path, grid_width, grid_height, layers FROM maps WHERE id = ?", id)
	m, err := scanMap(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func scanMap(scan func(dest ...any) error) (*world.Map, error) {
	var m world.Map
	var layers string
	if err := scan(&m.ID, &m.WorldID, &m.Name, &m.Description, &m.ImagePath,
		&m.GridWidth, &m.GridHeight, &layers); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(layers), &m.Layers); err != nil {
		return nil, fmt.Errorf("decoding layers for map %s: %w", m.ID, err)
	}
	if m.Layers == nil {
		m.Layers = []world.Layer{}
	}
	return &m, nil
}

// UpdateMap applies a partial update. Nil fields are untouched. A non-nil
// Layers slice replaces the whole stored document, matching the editor's
// replace-on-write persistence.
func (c *Client) UpdateMap(ctx context.Context, id string, upd store.MapUpdate) error {
	sets := []string{"updated_at = datetime('now')"}
	args := []any{}

	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.ImagePath != nil {
		sets = append(sets, "image_path = ?")
		args = append(args, *upd.ImagePath)
	}
	if upd.Layers != nil {
		layers, err := json.Marshal(upd.Layers)
		if err != nil {
			return fmt.Errorf("marshaling layers: %w", err)
		}
		sets = append(sets, "layers = ?")
		args = append(args, string(layers))
	}

	args = append(args, id)
	query := "UPDATE maps SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating map: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (c *Client) DeleteMap(ctx context.Context, id string) error {
	return c.deleteByID(ctx, "maps", id)
}
