package editor

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"worldloom/geo"
	"worldloom/store"
	"worldloom/world"
)

type fakeMaps struct {
	m       *world.Map
	updates []store.MapUpdate
}

func (f *fakeMaps) GetMap(ctx context.Context, id string) (*world.Map, error) {
	if f.m == nil || f.m.ID != id {
		return nil, store.ErrNotFound
	}
	return f.m, nil
}

func (f *fakeMaps) UpdateMap(ctx context.Context, id string, upd store.MapUpdate) error {
	f.updates = append(f.updates, upd)
	return nil
}

func (f *fakeMaps) lastLayers(t *testing.T) []world.Layer {
	t.Helper()
	if len(f.updates) == 0 {
		t.Fatalf("no persisted updates")
	}
	return f.updates[len(f.updates)-1].Layers
}

type fakeEntities struct {
	locations map[string]world.Location
	quests    map[string]world.Quest
}

func (f *fakeEntities) ListLocations(ctx context.Context, worldID string) ([]world.Location, error) {
	return nil, nil
}

func (f *fakeEntities) CreateLocation(ctx context.Context, l *world.Location) error {
	f.locations[l.ID] = *l
	return nil
}

func (f *fakeEntities) GetLocation(ctx context.Context, id string) (*world.Location, error) {
	l, ok := f.locations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &l, nil
}

func (f *fakeEntities) ListQuests(ctx context.Context, worldID string) ([]world.Quest, error) {
	return nil, nil
}

func (f *fakeEntities) CreateQuest(ctx context.Context, q *world.Quest) error {
	f.quests[q.ID] = *q
	return nil
}

func (f *fakeEntities) GetQuest(ctx context.Context, id string) (*world.Quest, error) {
	q, ok := f.quests[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &q, nil
}

type recordingModal struct {
	requests []ModalRequest
}

func (r *recordingModal) Show(req ModalRequest) {
	r.requests = append(r.requests, req)
}

func (r *recordingModal) last(t *testing.T) ModalRequest {
	t.Helper()
	if len(r.requests) == 0 {
		t.Fatalf("no modal requests recorded")
	}
	return r.requests[len(r.requests)-1]
}

func testMap(layers ...world.Layer) *world.Map {
	if layers == nil {
		layers = []world.Layer{}
	}
	return &world.Map{
		ID:      "map-1",
		WorldID: "world-1",
		Name:    "Overworld",
		Layers:  layers,
	}
}

func newTestSession(t *testing.T, m *world.Map) (*Session, *fakeMaps, *fakeEntities, *recordingModal) {
	t.Helper()
	maps := &fakeMaps{m: m}
	entities := &fakeEntities{
		locations: map[string]world.Location{},
		quests:    map[string]world.Quest{},
	}
	modal := &recordingModal{}
	s, err := NewSession(context.Background(), m.ID, Options{
		Maps:     maps,
		Entities: entities,
		Modal:    modal,
		Logger:   zerolog.Nop(),
		RunAsync: func(f func()) { f() },
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s, maps, entities, modal
}

func TestActiveLayerAutoSelection(t *testing.T) {
	t.Run("topmost_wins", func(t *testing.T) {
		l1 := world.NewLayer("L1")
		l2 := world.NewLayer("L2")
		s, _, _, _ := newTestSession(t, testMap(l1, l2))
		if s.ActiveLayerID() != l2.ID {
			t.Fatalf("active = %q, want top-most %q", s.ActiveLayerID(), l2.ID)
		}
	})

	t.Run("empty_map_has_none", func(t *testing.T) {
		s, _, _, _ := newTestSession(t, testMap())
		if s.ActiveLayerID() != "" {
			t.Fatalf("active = %q, want none", s.ActiveLayerID())
		}
	})
}

func TestAddLayer(t *testing.T) {
	s, maps, _, _ := newTestSession(t, testMap())
	l := s.AddLayer("")
	if l.Name != "Layer 1" || !l.Visible {
		t.Fatalf("unexpected new layer %+v", l)
	}
	if s.ActiveLayerID() != l.ID {
		t.Fatalf("new layer should become active")
	}
	persisted := maps.lastLayers(t)
	if len(persisted) != 1 || persisted[0].ID != l.ID {
		t.Fatalf("persisted layers = %+v", persisted)
	}
}

func TestDeleteLayer(t *testing.T) {
	t.Run("confirm_removes_layer_and_objects", func(t *testing.T) {
		l1 := world.NewLayer("L1")
		l2 := world.NewLayer("L2")
		l2.Objects = append(l2.Objects, world.NewMarker(l2.ID, geo.Point{X: 1, Y: 2}))
		s, maps, _, modal := newTestSession(t, testMap(l1, l2))

		s.DeleteLayer(l2.ID)
		req := modal.last(t)
		if req.Type != ModalConfirmation {
			t.Fatalf("expected confirmation request, got %s", req.Type)
		}
		if len(s.Map().Layers) != 2 {
			t.Fatalf("layer removed before confirmation")
		}
		req.OnConfirm("")

		if len(s.Map().Layers) != 1 || s.Map().Layers[0].ID != l1.ID {
			t.Fatalf("layers after delete = %+v", s.Map().Layers)
		}
		if s.ActiveLayerID() != "" {
			t.Fatalf("active layer should clear when the active layer is deleted")
		}
		persisted := maps.lastLayers(t)
		if len(persisted) != 1 {
			t.Fatalf("persisted layers = %+v", persisted)
		}
	})

	t.Run("deleting_inactive_layer_keeps_active", func(t *testing.T) {
		l1 := world.NewLayer("L1")
		l2 := world.NewLayer("L2")
		s, _, _, modal := newTestSession(t, testMap(l1, l2))

		s.DeleteLayer(l1.ID)
		modal.last(t).OnConfirm("")
		if s.ActiveLayerID() != l2.ID {
			t.Fatalf("active = %q, want unchanged %q", s.ActiveLayerID(), l2.ID)
		}
	})

	t.Run("unconfirmed_delete_is_noop", func(t *testing.T) {
		l1 := world.NewLayer("L1")
		s, maps, _, _ := newTestSession(t, testMap(l1))
		s.DeleteLayer(l1.ID)
		if len(s.Map().Layers) != 1 || len(maps.updates) != 0 {
			t.Fatalf("delete mutated state without confirmation")
		}
	})
}

func TestToggleVisibility(t *testing.T) {
	l := world.NewLayer("L1")
	l.Objects = append(l.Objects, world.NewMarker(l.ID, geo.Point{X: 3, Y: 4}))
	s, maps, _, _ := newTestSession(t, testMap(l))

	s.ToggleVisibility(l.ID)
	got := s.Map().Layers[0]
	if got.Visible {
		t.Fatalf("visible flag should flip to false")
	}
	if len(got.Objects) != 1 {
		t.Fatalf("toggling visibility must not alter the object list")
	}
	persisted := maps.lastLayers(t)
	if persisted[0].Visible || len(persisted[0].Objects) != 1 {
		t.Fatalf("persisted layer = %+v", persisted[0])
	}

	s.ToggleVisibility(l.ID)
	if !s.Map().Layers[0].Visible {
		t.Fatalf("second toggle should restore visibility")
	}
}

func TestPlaceMarkerLinkFlow(t *testing.T) {
	t.Run("confirm_appends_linked_marker", func(t *testing.T) {
		l := world.NewLayer("L1")
		s, maps, _, modal := newTestSession(t, testMap(l))
		s.Viewport().Pan = geo.Point{X: 100, Y: 50}
		s.Viewport().Zoom = 2
		s.SetTool(ToolAddLocation)

		if err := s.PlaceMarker(geo.Point{X: 140, Y: 70}); err != nil {
			t.Fatalf("PlaceMarker: %v", err)
		}
		if !s.PendingLinkActive() {
			t.Fatalf("expected a pending link")
		}
		if len(maps.updates) != 0 {
			t.Fatalf("marker persisted before the linking dialog resolved")
		}
		req := modal.last(t)
		if req.Type != ModalLinkLocation || req.WorldID != "world-1" {
			t.Fatalf("unexpected modal request %+v", req)
		}

		req.OnConfirm("loc-9")
		if s.PendingLinkActive() {
			t.Fatalf("pending link should clear on confirm")
		}
		persisted := maps.lastLayers(t)
		if len(persisted[0].Objects) != 1 {
			t.Fatalf("persisted objects = %+v", persisted[0].Objects)
		}
		obj := persisted[0].Objects[0]
		if obj.Kind != world.KindMarker || obj.LocationID != "loc-9" {
			t.Fatalf("object = %+v", obj)
		}
		// (140-100)/2, (70-50)/2
		if !almostEqual(obj.X, 20) || !almostEqual(obj.Y, 10) {
			t.Fatalf("world position = (%v, %v), want (20, 10)", obj.X, obj.Y)
		}
	})

	t.Run("cancel_leaves_layers_unchanged", func(t *testing.T) {
		l := world.NewLayer("L1")
		s, maps, _, modal := newTestSession(t, testMap(l))
		s.SetTool(ToolAddQuest)

		if err := s.PlaceMarker(geo.Point{X: 5, Y: 5}); err != nil {
			t.Fatalf("PlaceMarker: %v", err)
		}
		req := modal.last(t)
		if req.Type != ModalLinkQuest {
			t.Fatalf("unexpected modal type %s", req.Type)
		}
		req.OnCancel()
		if s.PendingLinkActive() {
			t.Fatalf("pending link should clear on cancel")
		}
		if len(s.Map().Layers[0].Objects) != 0 || len(maps.updates) != 0 {
			t.Fatalf("cancel must not mutate layers")
		}
	})

	t.Run("no_active_layer_alerts", func(t *testing.T) {
		s, maps, _, modal := newTestSession(t, testMap())
		s.SetTool(ToolAddLocation)
		if err := s.PlaceMarker(geo.Point{}); err != ErrNoActiveLayer {
			t.Fatalf("err = %v, want ErrNoActiveLayer", err)
		}
		if modal.last(t).Type != ModalAlert {
			t.Fatalf("expected an alert request")
		}
		if len(maps.updates) != 0 {
			t.Fatalf("no mutation expected")
		}
	})

	t.Run("second_draw_while_pending_rejected", func(t *testing.T) {
		l := world.NewLayer("L1")
		s, _, _, _ := newTestSession(t, testMap(l))
		s.SetTool(ToolAddLocation)
		if err := s.PlaceMarker(geo.Point{X: 1, Y: 1}); err != nil {
			t.Fatalf("first PlaceMarker: %v", err)
		}
		if err := s.PlaceMarker(geo.Point{X: 2, Y: 2}); err != ErrPendingLink {
			t.Fatalf("err = %v, want ErrPendingLink", err)
		}
	})

	t.Run("layer_deleted_while_dialog_open_drops_marker", func(t *testing.T) {
		l := world.NewLayer("L1")
		s, maps, _, modal := newTestSession(t, testMap(l))
		s.SetTool(ToolAddLocation)
		if err := s.PlaceMarker(geo.Point{X: 1, Y: 1}); err != nil {
			t.Fatalf("PlaceMarker: %v", err)
		}
		linkReq := modal.last(t)

		s.DeleteLayer(l.ID)
		modal.last(t).OnConfirm("")
		updatesBefore := len(maps.updates)

		linkReq.OnConfirm("loc-1")
		if len(maps.updates) != updatesBefore {
			t.Fatalf("resolving against a deleted layer must not persist")
		}
	})
}

func TestZoneDrawing(t *testing.T) {
	t.Run("three_points_commit_exactly", func(t *testing.T) {
		l := world.NewLayer("L1")
		s, maps, _, _ := newTestSession(t, testMap(l))
		s.SetTool(ToolDrawZone)

		for _, p := range []geo.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}} {
			if err := s.AddZoneVertex(p); err != nil {
				t.Fatalf("AddZoneVertex(%+v): %v", p, err)
			}
		}
		if !s.CompleteZone() {
			t.Fatalf("CompleteZone should commit with 3 vertices")
		}
		persisted := maps.lastLayers(t)
		objs := persisted[0].Objects
		if len(objs) != 1 || objs[0].Kind != world.KindZone {
			t.Fatalf("persisted objects = %+v", objs)
		}
		want := []geo.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
		if len(objs[0].Points) != len(want) {
			t.Fatalf("points = %+v", objs[0].Points)
		}
		for i, p := range want {
			if objs[0].Points[i] != p {
				t.Fatalf("point %d = %+v, want %+v", i, objs[0].Points[i], p)
			}
		}
	})

	t.Run("two_points_discard_and_reset", func(t *testing.T) {
		l := world.NewLayer("L1")
		s, maps, _, _ := newTestSession(t, testMap(l))
		s.SetTool(ToolDrawZone)
		_ = s.AddZoneVertex(geo.Point{X: 0, Y: 0})
		_ = s.AddZoneVertex(geo.Point{X: 10, Y: 0})
		if s.CompleteZone() {
			t.Fatalf("CompleteZone must not commit with 2 vertices")
		}
		if s.ZoneDrafting() {
			t.Fatalf("draft should reset after a failed completion")
		}
		if len(s.Map().Layers[0].Objects) != 0 || len(maps.updates) != 0 {
			t.Fatalf("discarded draft must not mutate layers")
		}
	})

	t.Run("switching_tools_discards_draft", func(t *testing.T) {
		l := world.NewLayer("L1")
		s, _, _, _ := newTestSession(t, testMap(l))
		s.SetTool(ToolDrawZone)
		_ = s.AddZoneVertex(geo.Point{X: 0, Y: 0})
		s.SetTool(ToolSelect)
		if s.ZoneDrafting() {
			t.Fatalf("leaving draw-zone should discard the draft")
		}
	})

	t.Run("preview_returns_draft_plus_cursor", func(t *testing.T) {
		l := world.NewLayer("L1")
		s, _, _, _ := newTestSession(t, testMap(l))
		s.SetTool(ToolDrawZone)
		_ = s.AddZoneVertex(geo.Point{X: 0, Y: 0})
		_ = s.AddZoneVertex(geo.Point{X: 10, Y: 0})

		pts, cursor, ok := s.ZonePreview(geo.Point{X: 4, Y: 6})
		if !ok || len(pts) != 2 {
			t.Fatalf("preview = %+v ok=%v", pts, ok)
		}
		if cursor != (geo.Point{X: 4, Y: 6}) {
			t.Fatalf("cursor = %+v", cursor)
		}
	})
}

func TestSelection(t *testing.T) {
	marker := func(l *world.Layer, x, y float64) world.MapObject {
		o := world.NewMarker(l.ID, geo.Point{X: x, Y: y})
		l.Objects = append(l.Objects, o)
		return o
	}

	t.Run("marker_hit_within_radius", func(t *testing.T) {
		l := world.NewLayer("L1")
		o := marker(&l, 100, 100)
		s, _, _, _ := newTestSession(t, testMap(l))
		if !s.SelectAt(geo.Point{X: 104, Y: 103}) {
			t.Fatalf("click near marker should hit")
		}
		if s.SelectedID() != o.ID {
			t.Fatalf("selected = %q, want %q", s.SelectedID(), o.ID)
		}
	})

	t.Run("zone_hit_by_containment", func(t *testing.T) {
		l := world.NewLayer("L1")
		z := world.NewZone(l.ID, []geo.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}})
		l.Objects = append(l.Objects, z)
		s, _, _, _ := newTestSession(t, testMap(l))
		if !s.SelectAt(geo.Point{X: 8, Y: 5}) {
			t.Fatalf("click inside zone should hit")
		}
		if s.SelectedID() != z.ID {
			t.Fatalf("selected = %q, want zone", s.SelectedID())
		}
	})

	t.Run("invisible_layer_skipped", func(t *testing.T) {
		l := world.NewLayer("L1")
		l.Visible = false
		marker(&l, 100, 100)
		s, _, _, _ := newTestSession(t, testMap(l))
		if s.SelectAt(geo.Point{X: 100, Y: 100}) {
			t.Fatalf("objects on invisible layers must not be hit")
		}
	})

	t.Run("empty_canvas_clears_selection", func(t *testing.T) {
		l := world.NewLayer("L1")
		o := marker(&l, 100, 100)
		s, _, _, _ := newTestSession(t, testMap(l))
		s.Select(o.ID)
		s.SelectAt(geo.Point{X: 500, Y: 500})
		if s.SelectedID() != "" {
			t.Fatalf("selection should clear on empty click")
		}
	})

	t.Run("topmost_layer_wins", func(t *testing.T) {
		l1 := world.NewLayer("L1")
		marker(&l1, 50, 50)
		l2 := world.NewLayer("L2")
		top := marker(&l2, 50, 50)
		s, _, _, _ := newTestSession(t, testMap(l1, l2))
		s.SelectAt(geo.Point{X: 50, Y: 50})
		if s.SelectedID() != top.ID {
			t.Fatalf("selected = %q, want top-most %q", s.SelectedID(), top.ID)
		}
	})
}

func TestMoveAndDeleteObject(t *testing.T) {
	l := world.NewLayer("L1")
	o := world.NewMarker(l.ID, geo.Point{X: 1, Y: 1})
	l.Objects = append(l.Objects, o)
	s, maps, _, _ := newTestSession(t, testMap(l))

	s.MoveObject(o.ID, geo.Point{X: 42, Y: -7})
	moved, ok := s.Map().ObjectByID(o.ID)
	if !ok || moved.X != 42 || moved.Y != -7 {
		t.Fatalf("moved object = %+v", moved)
	}
	if len(maps.updates) != 1 {
		t.Fatalf("move should persist once, got %d updates", len(maps.updates))
	}

	s.Select(o.ID)
	s.DeleteObject(o.ID)
	if _, ok := s.Map().ObjectByID(o.ID); ok {
		t.Fatalf("object should be removed")
	}
	if s.SelectedID() != "" {
		t.Fatalf("deleting the selected object should clear selection")
	}
}

func TestDragPersistsOnce(t *testing.T) {
	l := world.NewLayer("L1")
	o := world.NewMarker(l.ID, geo.Point{X: 1, Y: 1})
	l.Objects = append(l.Objects, o)
	s, maps, _, _ := newTestSession(t, testMap(l))

	s.DragObject(o.ID, geo.Point{X: 5, Y: 5})
	s.DragObject(o.ID, geo.Point{X: 9, Y: 3})
	if len(maps.updates) != 0 {
		t.Fatalf("dragging should not persist intermediate positions, got %d updates", len(maps.updates))
	}

	s.EndDrag()
	if len(maps.updates) != 1 {
		t.Fatalf("ending a drag should persist once, got %d updates", len(maps.updates))
	}
	moved, _ := s.Map().ObjectByID(o.ID)
	if moved.X != 9 || moved.Y != 3 {
		t.Fatalf("object after drag = %+v", moved)
	}

	// A release without any movement writes nothing.
	s.EndDrag()
	if len(maps.updates) != 1 {
		t.Fatalf("idle EndDrag should not persist, got %d updates", len(maps.updates))
	}
}

func TestInspectSelection(t *testing.T) {
	t.Run("linked_location_resolves", func(t *testing.T) {
		l := world.NewLayer("L1")
		o := world.NewMarker(l.ID, geo.Point{X: 1, Y: 1})
		o.LocationID = "loc-1"
		l.Objects = append(l.Objects, o)
		s, _, entities, _ := newTestSession(t, testMap(l))
		entities.locations["loc-1"] = world.Location{ID: "loc-1", WorldID: "world-1", Name: "Harbor"}

		s.Select(o.ID)
		ins, err := s.InspectSelection(context.Background())
		if err != nil {
			t.Fatalf("InspectSelection: %v", err)
		}
		if !ins.HasObject || ins.LayerName != "L1" {
			t.Fatalf("inspector = %+v", ins)
		}
		if ins.LinkedLocation == nil || ins.LinkedLocation.Name != "Harbor" {
			t.Fatalf("linked location = %+v", ins.LinkedLocation)
		}
	})

	t.Run("dangling_link_is_empty_state", func(t *testing.T) {
		l := world.NewLayer("L1")
		o := world.NewMarker(l.ID, geo.Point{X: 1, Y: 1})
		o.QuestID = "gone"
		l.Objects = append(l.Objects, o)
		s, _, _, _ := newTestSession(t, testMap(l))

		s.Select(o.ID)
		ins, err := s.InspectSelection(context.Background())
		if err != nil {
			t.Fatalf("InspectSelection: %v", err)
		}
		if !ins.HasObject || ins.LinkedQuest != nil {
			t.Fatalf("inspector = %+v", ins)
		}
	})

	t.Run("no_selection_is_empty", func(t *testing.T) {
		s, _, _, _ := newTestSession(t, testMap(world.NewLayer("L1")))
		ins, err := s.InspectSelection(context.Background())
		if err != nil || ins.HasObject {
			t.Fatalf("inspector = %+v err = %v", ins, err)
		}
	})

	// FetchLinks works from the resolved snapshot only, so a fetch started
	// before a mutation still completes against the state it captured.
	t.Run("fetch_uses_resolved_snapshot", func(t *testing.T) {
		l := world.NewLayer("L1")
		o := world.NewMarker(l.ID, geo.Point{X: 1, Y: 1})
		o.LocationID = "loc-1"
		l.Objects = append(l.Objects, o)
		s, _, entities, _ := newTestSession(t, testMap(l))
		entities.locations["loc-1"] = world.Location{ID: "loc-1", WorldID: "world-1", Name: "Harbor"}

		s.Select(o.ID)
		snapshot := s.ResolveSelection()
		if !snapshot.HasObject || snapshot.LayerName != "L1" {
			t.Fatalf("resolved = %+v", snapshot)
		}

		s.DeleteObject(o.ID)
		ins, err := s.FetchLinks(context.Background(), snapshot)
		if err != nil {
			t.Fatalf("FetchLinks: %v", err)
		}
		if ins.LinkedLocation == nil || ins.LinkedLocation.Name != "Harbor" {
			t.Fatalf("linked location = %+v", ins.LinkedLocation)
		}
	})
}
