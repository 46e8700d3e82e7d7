// Package store defines the persistence contract backing the entity managers
// and the map editor.
package store

import (
	"context"
	"errors"

	"worldloom/world"
)

// ErrNotFound is returned when a lookup by id matches nothing.
var ErrNotFound = errors.New("not found")

// MapUpdate is a partial update. Nil fields are left untouched. The editor
// always sends the complete Layers slice on any layer or object mutation;
// there is no per-object patching.
type MapUpdate struct {
	Name        *string
	Description *string
	ImagePath   *string
	Layers      []world.Layer
}

// Store is the full persistence surface. The sqlite client implements it;
// consumers should depend on the narrow subset they use.
type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	CreateWorld(ctx context.Context, w *world.World) error
	ListWorlds(ctx context.Context) ([]world.World, error)
	GetWorld(ctx context.Context, id string) (*world.World, error)
	DeleteWorld(ctx context.Context, id string) error

	CreateCampaign(ctx context.Context, c *world.Campaign) error
	ListCampaigns(ctx context.Context, worldID string) ([]world.Campaign, error)
	DeleteCampaign(ctx context.Context, id string) error

	CreateCharacter(ctx context.Context, c *world.Character) error
	ListCharacters(ctx context.Context, worldID string) ([]world.Character, error)
	DeleteCharacter(ctx context.Context, id string) error

	CreateClass(ctx context.Context, c *world.CharacterClass) error
	ListClasses(ctx context.Context, worldID string) ([]world.CharacterClass, error)
	DeleteClass(ctx context.Context, id string) error

	CreateStat(ctx context.Context, s *world.Stat) error
	ListStats(ctx context.Context, worldID string) ([]world.Stat, error)
	DeleteStat(ctx context.Context, id string) error

	CreateAbility(ctx context.Context, a *world.Ability) error
	ListAbilities(ctx context.Context, worldID string) ([]world.Ability, error)
	DeleteAbility(ctx context.Context, id string) error

	CreateLocation(ctx context.Context, l *world.Location) error
	ListLocations(ctx context.Context, worldID string) ([]world.Location, error)
	GetLocation(ctx context.Context, id string) (*world.Location, error)
	DeleteLocation(ctx context.Context, id string) error

	CreateQuest(ctx context.Context, q *world.Quest) error
	ListQuests(ctx context.Context, worldID string) ([]world.Quest, error)
	GetQuest(ctx context.Context, id string) (*world.Quest, error)
	DeleteQuest(ctx context.Context, id string) error

	CreateMap(ctx context.Context, m *world.Map) error
	ListMaps(ctx context.Context, worldID string) ([]world.Map, error)
	GetMap(ctx context.Context, id string) (*world.Map, error)
	UpdateMap(ctx context.Context, id string, upd MapUpdate) error
	DeleteMap(ctx context.Context, id string) error
}
