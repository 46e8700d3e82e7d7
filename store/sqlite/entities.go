package sqlite

import (
	"context"
	"fmt"

	"worldloom/store"
	"worldloom/world"
)

// deleteByID removes one row and maps a zero-row result to store.ErrNotFound.
func (c *Client) deleteByID(ctx context.Context, table, id string) error {
	res, err := c.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
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

func (c *Client) CreateWorld(ctx context.Context, w *world.World) error {
	_, err := c.db.ExecContext(ctx,
		"INSERT INTO worlds (id, name, description) VALUES (?, ?, ?)",
		w.ID, w.Name, w.Description)
	if err != nil {
		return fmt.Errorf("creating world: %w", err)
	}
	return nil
}

func (c *Client) ListWorlds(ctx context.Context) ([]world.World, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT id, name, description FROM worlds ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing worlds: %w", err)
	}
	defer rows.Close()

	var out []world.World
	for rows.Next() {
		var w world.World
		if err := rows.Scan(&w.ID, &w.Name, &w.Description); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (c *Client) GetWorld(ctx context.Context, id string) (*world.World, error) {
	var w world.World
	err := c.db.QueryRowContext(ctx,
		"SELECT id, name, description FROM worlds WHERE id = ?", id).
		Scan(&w.ID, &w.Name, &w.Description)
	if err != nil {
		return nil, scanErr("world", err)
	}
	return &w, nil
}

func (c *Client) DeleteWorld(ctx context.Context, id string) error {
	return c.deleteByID(ctx, "worlds", id)
}

func (c *Client) CreateCampaign(ctx context.Context, v *world.Campaign) error {
	_, err := c.db.ExecContext(ctx,
		"INSERT INTO campaigns (id, world_id, name, description) VALUES (?, ?, ?, ?)",
		v.ID, v.WorldID, v.Name, v.Description)
	if err != nil {
		return fmt.Errorf("creating campaign: %w", err)
	}
	return nil
}

func (c *Client) ListCampaigns(ctx context.Context, worldID string) ([]world.Campaign, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT id, world_id, name, description FROM campaigns WHERE world_id = ? ORDER BY name", worldID)
	if err != nil {
		return nil, fmt.Errorf("listing campaigns: %w", err)
	}
	defer rows.Close()

	var out []world.Campaign
	for rows.Next() {
		var v world.Campaign
		if err := rows.Scan(&v.ID, &v.WorldID, &v.Name, &v.Description); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (c *Client) DeleteCampaign(ctx context.Context, id string) error {
	return c.deleteByID(ctx, "campaigns", id)
}

func (c *Client) CreateCharacter(ctx context.Context, v *world.Character) error {
	classID := any(v.ClassID)
	if v.ClassID == "" {
		classID = nil
	}
	_, err := c.db.ExecContext(ctx,
		"INSERT INTO characters (id, world_id, class_id, name, description) VALUES (?, ?, ?, ?, ?)",
		v.ID, v.WorldID, classID, v.Name, v.Description)
	if err != nil {
		return fmt.Errorf("creating character: %w", err)
	}
	return nil
}

func (c *Client) ListCharacters(ctx context.Context, worldID string) ([]world.Character, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT id, world_id, COALESCE(class_id, ''), name, description FROM characters WHERE world_id = ? ORDER BY name", worldID)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	defer rows.Close()

	var out []world.Character
	for rows.Next() {
		var v world.Character
		if err := rows.Scan(&v.ID, &v.WorldID, &v.ClassID, &v.Name, &v.Description); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (c *Client) DeleteCharacter(ctx context.Context, id string) error {
	return c.deleteByID(ctx, "characters", id)
}

func (c *Client) CreateClass(ctx context.Context, v *world.CharacterClass) error {
	_, err := c.db.ExecContext(ctx,
		"INSERT INTO classes (id, world_id, name, description) VALUES (?, ?, ?, ?)",
		v.ID, v.WorldID, v.Name, v.Description)
	if err != nil {
		return fmt.Errorf("creating class: %w", err)
	}
	return nil
}

func (c *Client) ListClasses(ctx context.Context, worldID string) ([]world.CharacterClass, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT id, world_id, name, description FROM classes WHERE world_id = ? ORDER BY name", worldID)
	if err != nil {
		return nil, fmt.Errorf("listing classes: %w", err)
	}
	defer rows.Close()

	var out []world.CharacterClass
	for rows.Next() {
		var v world.CharacterClass
		if err := rows.Scan(&v.ID, &v.WorldID, &v.Name, &v.Description); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (c *Client) DeleteClass(ctx context.Context, id string) error {
	return c.deleteByID(ctx, "classes", id)
}

func (c *Client) CreateStat(ctx context.Context, v *world.Stat) error {
	_, err := c.db.ExecContext(ctx,
		"INSERT INTO stats (id, world_id, name, min, max) VALUES (?, ?, ?, ?, ?)",
		v.ID, v.WorldID, v.Name, v.Min, v.Max)
	if err != nil {
		return fmt.Errorf("creating stat: %w", err)
	}
	return nil
}

func (c *Client) ListStats(ctx context.Context, worldID string) ([]world.Stat, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT id, world_id, name, min, max FROM stats WHERE world_id = ? ORDER BY name", worldID)
	if err != nil {
		return nil, fmt.Errorf("listing stats: %w", err)
	}
	defer rows.Close()

	var out []world.Stat
	for rows.Next() {
		var v world.Stat
		if err := rows.Scan(&v.ID, &v.WorldID, &v.Name, &v.Min, &v.Max); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (c *Client) DeleteStat(ctx context.Context, id string) error {
	return c.deleteByID(ctx, "stats", id)
}

func (c *Client) CreateAbility(ctx context.Context, v *world.Ability) error {
	_, err := c.db.ExecContext(ctx,
		"INSERT INTO abilities (id, world_id, name, description) VALUES (?, ?, ?, ?)",
		v.ID, v.WorldID, v.Name, v.Description)
	if err != nil {
		return fmt.Errorf("creating ability: %w", err)
	}
	return nil
}

func (c *Client) ListAbilities(ctx context.Context, worldID string) ([]world.Ability, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT id, world_id, name, description FROM abilities WHERE world_id = ? ORDER BY name", worldID)
	if err != nil {
		return nil, fmt.Errorf("listing abilities: %w", err)
	}
	defer rows.Close()

	var out []world.Ability
	for rows.Next() {
		var v world.Ability
		if err := rows.Scan(&v.ID, &v.WorldID, &v.Name, &v.Description); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (c *Client) DeleteAbility(ctx context.Context, id string) error {
	return c.deleteByID(ctx, "abilities", id)
}

func (c *Client) CreateLocation(ctx context.Context, v *world.Location) error {
	_, err := c.db.ExecContext(ctx,
		"INSERT INTO locations (id, world_id, name, description) VALUES (?, ?, ?, ?)",
		v.ID, v.WorldID, v.Name, v.Description)
	if err != nil {
		return fmt.Errorf("creating location: %w", err)
	}
	return nil
}

func (c *Client) ListLocations(ctx context.Context, worldID string) ([]world.Location, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT id, world_id, name, description FROM locations WHERE world_id = ? ORDER BY name", worldID)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	defer rows.Close()

	var out []world.Location
	for rows.Next() {
		var v world.Location
		if err := rows.Scan(&v.ID, &v.WorldID, &v.Name, &v.Description); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (c *Client) GetLocation(ctx context.Context, id string) (*world.Location, error) {
	var v world.Location
	err := c.db.QueryRowContext(ctx,
		"SELECT id, world_id, name, description FROM locations WHERE id = ?", id).
		Scan(&v.ID, &v.WorldID, &v.Name, &v.Description)
	if err != nil {
		return nil, scanErr("location", err)
	}
	return &v, nil
}

func (c *Client) DeleteLocation(ctx context.Context, id string) error {
	return c.deleteByID(ctx, "locations", id)
}

func (c *Client) CreateQuest(ctx context.Context, v *world.Quest) error {
	_, err := c.db.ExecContext(ctx,
		"INSERT INTO quests (id, world_id, name, description) VALUES (?, ?, ?, ?)",
		v.ID, v.WorldID, v.Name, v.Description)
	if err != nil {
		return fmt.Errorf("creating quest: %w", err)
	}
	return nil
}

func (c *Client) ListQuests(ctx context.Context, worldID string) ([]world.Quest, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT id, world_id, name, description FROM quests WHERE world_id = ? ORDER BY name", worldID)
	if err != nil {
		return nil, fmt.Errorf("listing quests: %w", err)
	}
	defer rows.Close()

	var out []world.Quest
	for rows.Next() {
		var v world.Quest
		if err := rows.Scan(&v.ID, &v.WorldID, &v.Name, &v.Description); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (c *Client) GetQuest(ctx context.Context, id string) (*world.Quest, error) {
	var v world.Quest
	err := c.db.QueryRowContext(ctx,
		"SELECT id, world_id, name, description FROM quests WHERE id = ?", id).
		Scan(&v.ID, &v.WorldID, &v.Name, &v.Description)
	if err != nil {
		return nil, scanErr("quest", err)
	}
	return &v, nil
}

func (c *Client) DeleteQuest(ctx context.Context, id string) error {
	return c.deleteByID(ctx, "quests", id)
}
