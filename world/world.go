// Package world holds the domain model shared by the editor, the stores, and
// the CLI managers.
package world

// World is the root container; every other entity belongs to exactly one world.
type World struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Campaign groups sessions and quests inside a world.
type Campaign struct {
	ID          string `json:"id"`
	WorldID     string `json:"world_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Character is a player or non-player character.
type Character struct {
	ID          string `json:"id"`
	WorldID     string `json:"world_id"`
	Name        string `json:"name"`
	ClassID     string `json:"class_id,omitempty"`
	Description string `json:"description,omitempty"`
}

// CharacterClass is an archetype characters can take.
type CharacterClass struct {
	ID          string `json:"id"`
	WorldID     string `json:"world_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Stat is a named numeric attribute definition (e.g. Strength).
type Stat struct {
	ID      string `json:"id"`
	WorldID string `json:"world_id"`
	Name    string `json:"name"`
	Min     int    `json:"min"`
	Max     int    `json:"max"`
}

// Ability is a learnable skill. Prerequisite graph editing is out of scope;
// only the flat entity is modeled.
type Ability struct {
	ID          string `json:"id"`
	WorldID     string `json:"world_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Location is a named place; markers on maps may link to one.
type Location struct {
	ID          string `json:"id"`
	WorldID     string `json:"world_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Quest is a task or storyline; markers on maps may link to one.
type Quest struct {
	ID          string `json:"id"`
	WorldID     string `json:"world_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
