package editor

import (
	"context"
	"fmt"

	"worldloom/geo"
	"worldloom/world"
)

// Select sets the selection directly. Pass "" to clear. The selection state
// is not tool-gated; only the select tool routes clicks here.
func (s *Session) Select(id string) {
	s.selectedID = id
}

// SelectAt hit-tests a click in screen coordinates and selects the top-most
// object under it, or clears the selection on empty canvas. Invisible layers
// are skipped. Markers win within a fixed screen-pixel radius; zones match
// by polygon containment.
func (s *Session) SelectAt(screen geo.Point) (hit bool) {
	at := s.viewport.ToWorld(screen)
	radius := s.markerHitRadius / s.viewport.Zoom

	// top-most layer first, top-most object within a layer first
	for i := len(s.m.Layers) - 1; i >= 0; i-- {
		layer := &s.m.Layers[i]
		if !layer.Visible {
			continue
		}
		for j := len(layer.Objects) - 1; j >= 0; j-- {
			o := layer.Objects[j]
			switch o.Kind {
			case world.KindMarker:
				if o.Position().DistSq(at) <= radius*radius {
					s.selectedID = o.ID
					return true
				}
			case world.KindZone:
				if geo.PolygonContains(o.Points, at) {
					s.selectedID = o.ID
					return true
				}
			}
		}
	}
	s.selectedID = ""
	return false
}

// Inspector describes the side-panel contents for the current selection.
// Empty states are represented, never errors: a missing object or a missing
// linked entity yields HasObject/zero link fields rather than a failure.
type Inspector struct {
	HasObject bool
	Object    world.MapObject
	LayerName string

	LinkedLocation *world.Location
	LinkedQuest    *world.Quest
}

// ResolveSelection resolves the selected object and its layer name from
// local map state. It never blocks and must run on the update loop, where
// the map is mutated.
func (s *Session) ResolveSelection() Inspector {
	if s.selectedID == "" {
		return Inspector{}
	}
	obj, ok := s.m.ObjectByID(s.selectedID)
	if !ok {
		return Inspector{}
	}
	ins := Inspector{HasObject: true, Object: obj}
	if l := s.m.LayerByID(obj.LayerID); l != nil {
		ins.LayerName = l.Name
	}
	return ins
}

// FetchLinks fills in the linked Location or Quest for a resolved inspector.
// It reads only the inspector copy and the entity store, never live map
// state, so callers may run it off the update loop. A link to an entity that
// no longer exists renders as no data, not as an error.
func (s *Session) FetchLinks(ctx context.Context, ins Inspector) (Inspector, error) {
	if !ins.HasObject || s.entities == nil {
		return ins, nil
	}
	if ins.Object.LocationID != "" {
		loc, err := s.entities.GetLocation(ctx, ins.Object.LocationID)
		if err == nil {
			ins.LinkedLocation = loc
		} else if !isNotFound(err) {
			return ins, fmt.Errorf("fetching linked location: %w", err)
		}
	}
	if ins.Object.QuestID != "" {
		q, err := s.entities.GetQuest(ctx, ins.Object.QuestID)
		if err == nil {
			ins.LinkedQuest = q
		} else if !isNotFound(err) {
			return ins, fmt.Errorf("fetching linked quest: %w", err)
		}
	}
	return ins, nil
}

// InspectSelection resolves the selection and fetches its links in one call.
func (s *Session) InspectSelection(ctx context.Context) (Inspector, error) {
	return s.FetchLinks(ctx, s.ResolveSelection())
}
