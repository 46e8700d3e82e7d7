package editor

import (
	"fmt"

	"worldloom/world"
)

// AddLayer appends a new visible empty layer and makes it the active write
// target. An empty name gets a positional default.
func (s *Session) AddLayer(name string) world.Layer {
	if name == "" {
		name = fmt.Sprintf("Layer %d", len(s.m.Layers)+1)
	}
	l := world.NewLayer(name)
	s.m.Layers = append(s.m.Layers, l)
	s.activeLayerID = l.ID
	s.persist()
	return l
}

// DeleteLayer asks for confirmation through the modal collaborator, then
// removes the layer and all its objects. If it was the active layer, the
// active selection is cleared, never auto-reassigned.
func (s *Session) DeleteLayer(id string) {
	l := s.m.LayerByID(id)
	if l == nil {
		return
	}
	name := l.Name
	if s.modal == nil {
		s.removeLayer(id)
		return
	}
	s.modal.Show(ModalRequest{
		Type:    ModalConfirmation,
		Message: fmt.Sprintf("Delete layer %q and all of its objects?", name),
		OnConfirm: func(string) {
			s.removeLayer(id)
		},
	})
}

func (s *Session) removeLayer(id string) {
	idx := -1
	for i := range s.m.Layers {
		if s.m.Layers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	if s.selectedID != "" {
		for _, o := range s.m.Layers[idx].Objects {
			if o.ID == s.selectedID {
				s.selectedID = ""
				break
			}
		}
	}
	s.m.Layers = append(s.m.Layers[:idx], s.m.Layers[idx+1:]...)
	if s.activeLayerID == id {
		s.activeLayerID = ""
	}
	s.persist()
}

// ToggleVisibility flips a layer's visible flag. Invisible layers are
// excluded from hit-testing and rendering but stay in persisted state.
func (s *Session) ToggleVisibility(id string) {
	l := s.m.LayerByID(id)
	if l == nil {
		return
	}
	l.Visible = !l.Visible
	s.persist()
}

// SetActiveLayer sets the write target for new objects. Pass "" to clear.
func (s *Session) SetActiveLayer(id string) {
	if id == "" {
		s.activeLayerID = ""
		return
	}
	if s.m.LayerByID(id) != nil {
		s.activeLayerID = id
	}
}

// activeLayer resolves the active layer, or nil when none is selected.
func (s *Session) activeLayer() *world.Layer {
	if s.activeLayerID == "" {
		return nil
	}
	return s.m.LayerByID(s.activeLayerID)
}
