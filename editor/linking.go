package editor

import "worldloom/world"

// LinkKind says which entity type a pending link attaches.
type LinkKind int

const (
	LinkLocation LinkKind = iota
	LinkQuest
)

// PendingLink is a drawn-but-unconfirmed marker awaiting an entity id from
// the linking dialog. At most one exists at a time, and it is never
// persisted; cancelling the dialog discards it without touching any layer.
type PendingLink struct {
	Object world.MapObject
	Kind   LinkKind
}

// resolvePendingLink finalizes the pending marker with the confirmed entity
// id and appends it to its layer in a single update.
func (s *Session) resolvePendingLink(entityID string) {
	if s.pending == nil {
		return
	}
	obj := s.pending.Object
	switch s.pending.Kind {
	case LinkLocation:
		obj.LocationID = entityID
	case LinkQuest:
		obj.QuestID = entityID
	}
	s.pending = nil

	layer := s.m.LayerByID(obj.LayerID)
	if layer == nil {
		// the layer was deleted while the dialog was open; drop the marker
		return
	}
	layer.Objects = append(layer.Objects, obj)
	s.persist()
}

// cancelPendingLink discards the pending marker with no layer mutation.
func (s *Session) cancelPendingLink() {
	s.pending = nil
}
