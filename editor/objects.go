package editor

import (
	"worldloom/geo"
	"worldloom/world"
)

// PlaceMarker handles a canvas click with the add-location or add-quest tool
// active. The click is given in screen coordinates. The marker is not added
// to any layer yet; it is held as the pending link and the linking dialog is
// requested. Fails when no layer is active or a pending link is outstanding.
func (s *Session) PlaceMarker(screen geo.Point) error {
	if s.tools.current != ToolAddLocation && s.tools.current != ToolAddQuest {
		return nil
	}
	if s.pending != nil {
		s.alert("Finish or cancel the current linking dialog first.")
		return ErrPendingLink
	}
	layer := s.activeLayer()
	if layer == nil {
		s.alert("Select a layer before adding to the map.")
		return ErrNoActiveLayer
	}

	at := s.viewport.ToWorld(screen)
	candidate := world.NewMarker(layer.ID, at)
	kind := LinkLocation
	modalType := ModalLinkLocation
	if s.tools.current == ToolAddQuest {
		kind = LinkQuest
		modalType = ModalLinkQuest
	}
	s.pending = &PendingLink{Object: candidate, Kind: kind}

	if s.modal != nil {
		s.modal.Show(ModalRequest{
			Type:      modalType,
			WorldID:   s.m.WorldID,
			OnConfirm: s.resolvePendingLink,
			OnCancel:  s.cancelPendingLink,
		})
	}
	return nil
}

// AddZoneVertex appends a vertex (converted to world space) to the zone
// draft. The first vertex requires an active layer so the later commit has a
// write target.
func (s *Session) AddZoneVertex(screen geo.Point) error {
	if s.tools.current != ToolDrawZone {
		return nil
	}
	if !s.tools.draft.active() && s.activeLayer() == nil {
		s.alert("Select a layer before adding to the map.")
		return ErrNoActiveLayer
	}
	s.tools.draft.add(s.viewport.ToWorld(screen))
	return nil
}

// CompleteZone finishes the zone draft: with three or more vertices the zone
// is committed to the active layer and persisted, otherwise the draft is
// silently discarded. Triggered by double-click or the confirm key.
func (s *Session) CompleteZone() (committed bool) {
	points, ok := s.tools.draft.take()
	if !ok {
		return false
	}
	layer := s.activeLayer()
	if layer == nil {
		return false
	}
	layer.Objects = append(layer.Objects, world.NewZone(layer.ID, points))
	s.persist()
	return true
}

// ZoneDrafting reports whether a zone draft has at least one vertex.
func (s *Session) ZoneDrafting() bool {
	return s.tools.draft.active()
}

// ZonePreview returns the committed draft vertices plus the current pointer
// position in world space, for rendering the rubber-band feedback. ok is
// false when no draft is in progress.
func (s *Session) ZonePreview(pointerScreen geo.Point) (points []geo.Point, cursor geo.Point, ok bool) {
	if !s.tools.draft.active() {
		return nil, geo.Point{}, false
	}
	pts := make([]geo.Point, len(s.tools.draft.points))
	copy(pts, s.tools.draft.points)
	return pts, s.viewport.ToWorld(pointerScreen), true
}

// MoveObject repositions a marker in world space. Zones do not move as a
// unit in the current design.
func (s *Session) MoveObject(id string, to geo.Point) {
	for i := range s.m.Layers {
		objs := s.m.Layers[i].Objects
		for j := range objs {
			if objs[j].ID != id || objs[j].Kind != world.KindMarker {
				continue
			}
			objs[j].X = to.X
			objs[j].Y = to.Y
			s.persist()
			return
		}
	}
}

// DragObject repositions a marker locally without persisting. Drags stream
// positions every frame; only the terminal position is worth a store write,
// which EndDrag issues.
func (s *Session) DragObject(id string, to geo.Point) {
	for i := range s.m.Layers {
		objs := s.m.Layers[i].Objects
		for j := range objs {
			if objs[j].ID != id || objs[j].Kind != world.KindMarker {
				continue
			}
			objs[j].X = to.X
			objs[j].Y = to.Y
			s.dragMoved = true
			return
		}
	}
}

// EndDrag persists the result of a drag, if any positions were applied.
func (s *Session) EndDrag() {
	if !s.dragMoved {
		return
	}
	s.dragMoved = false
	s.persist()
}

// DeleteObject removes an object from its owning layer.
func (s *Session) DeleteObject(id string) {
	for i := range s.m.Layers {
		objs := s.m.Layers[i].Objects
		for j := range objs {
			if objs[j].ID != id {
				continue
			}
			s.m.Layers[i].Objects = append(objs[:j], objs[j+1:]...)
			if s.selectedID == id {
				s.selectedID = ""
			}
			s.persist()
			return
		}
	}
}
