package main

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"worldloom/editor"
	"worldloom/world"
)

type stubEntities struct {
	locations []world.Location
	quests    []world.Quest
}

func (s *stubEntities) ListLocations(ctx context.Context, worldID string) ([]world.Location, error) {
	return s.locations, nil
}

func (s *stubEntities) CreateLocation(ctx context.Context, l *world.Location) error { return nil }

func (s *stubEntities) GetLocation(ctx context.Context, id string) (*world.Location, error) {
	return nil, nil
}

func (s *stubEntities) ListQuests(ctx context.Context, worldID string) ([]world.Quest, error) {
	return s.quests, nil
}

func (s *stubEntities) CreateQuest(ctx context.Context, q *world.Quest) error { return nil }

func (s *stubEntities) GetQuest(ctx context.Context, id string) (*world.Quest, error) {
	return nil, nil
}

func newTestDialog(entities *stubEntities) *Dialog {
	d := newDialog(entities, zerolog.Nop())
	d.runAsync = func(f func()) { f() }
	return d
}

func TestDialogLoadsEntriesInBackground(t *testing.T) {
	entities := &stubEntities{locations: []world.Location{
		{ID: "l2", Name: "Tower"},
		{ID: "l1", Name: "Harbor"},
	}}
	d := newTestDialog(entities)

	d.Show(editor.ModalRequest{Type: editor.ModalLinkLocation, WorldID: "w1"})
	if !d.open || !d.loading {
		t.Fatalf("dialog should open immediately with the list still loading")
	}
	if len(d.entries) != 0 {
		t.Fatalf("entries before drain = %+v", d.entries)
	}

	d.drainEntries()
	if d.loading {
		t.Fatalf("drain should finish the load")
	}
	if len(d.entries) != 2 || d.entries[0].name != "Harbor" || d.entries[1].name != "Tower" {
		t.Fatalf("entries = %+v, want sorted by name", d.entries)
	}
}

func TestDialogDiscardsStaleLoads(t *testing.T) {
	entities := &stubEntities{locations: []world.Location{{ID: "l1", Name: "Harbor"}}}
	d := newTestDialog(entities)

	t.Run("reopened_dialog_keeps_latest", func(t *testing.T) {
		d.Show(editor.ModalRequest{Type: editor.ModalLinkLocation, WorldID: "w1"})
		entities.locations = []world.Location{{ID: "q1", Name: "Rescue"}}
		entities.quests = []world.Quest{{ID: "q1", Name: "Rescue"}}
		d.Show(editor.ModalRequest{Type: editor.ModalLinkQuest, WorldID: "w1"})

		d.drainEntries()
		if len(d.entries) != 1 || d.entries[0].name != "Rescue" {
			t.Fatalf("entries = %+v, want only the latest dialog's list", d.entries)
		}
	})

	t.Run("closed_dialog_drops_result", func(t *testing.T) {
		d.Show(editor.ModalRequest{Type: editor.ModalLinkQuest, WorldID: "w1"})
		d.close()
		d.drainEntries()
		if len(d.entries) != 0 || d.loading {
			t.Fatalf("closed dialog should not keep loaded entries")
		}
	})
}
