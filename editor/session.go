// Package editor implements the map editing core: viewport transform, tool
// state machine, layer and object mutation, the draw-then-link workflow, and
// the selection inspector. It renders nothing; cmd/editor translates input
// events into calls on Session and draws from its state.
package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"worldloom/store"
	"worldloom/world"
)

var (
	// ErrNoActiveLayer is returned when a draw action has no write target.
	ErrNoActiveLayer = errors.New("no active layer selected")

	// ErrPendingLink is returned when a draw action starts while another
	// drawn object still awaits its linking dialog.
	ErrPendingLink = errors.New("a drawn object is still awaiting linking")
)

// MapPersister is the slice of the store the session writes maps through.
type MapPersister interface {
	GetMap(ctx context.Context, id string) (*world.Map, error)
	UpdateMap(ctx context.Context, id string, upd store.MapUpdate) error
}

// EntityDirectory resolves and creates the domain entities markers link to.
type EntityDirectory interface {
	ListLocations(ctx context.Context, worldID string) ([]world.Location, error)
	CreateLocation(ctx context.Context, l *world.Location) error
	GetLocation(ctx context.Context, id string) (*world.Location, error)
	ListQuests(ctx context.Context, worldID string) ([]world.Quest, error)
	CreateQuest(ctx context.Context, q *world.Quest) error
	GetQuest(ctx context.Context, id string) (*world.Quest, error)
}

// Options configures a Session.
type Options struct {
	Maps     MapPersister
	Entities EntityDirectory
	Modal    ModalService
	Logger   zerolog.Logger

	// MarkerHitRadius is the marker pick radius in screen pixels.
	// Zero means DefaultMarkerHitRadius.
	MarkerHitRadius float64

	// RunAsync executes persistence work off the update loop. Defaults to
	// spawning a goroutine; tests inject an inline runner.
	RunAsync func(func())
}

// DefaultMarkerHitRadius is the marker pick radius in screen pixels.
const DefaultMarkerHitRadius = 8.0

// Session is the editing context for one open map. All mutation routes
// through its methods; UI components hold a reference rather than sharing
// ambient globals. Mutations are optimistic: local state changes first and
// the durable write happens fire-and-forget, with failures logged and not
// rolled back.
type Session struct {
	maps     MapPersister
	entities EntityDirectory
	modal    ModalService
	log      zerolog.Logger
	runAsync func(func())

	m        *world.Map
	viewport *Viewport
	tools    toolState

	activeLayerID string
	selectedID    string
	pending       *PendingLink
	dragMoved     bool

	markerHitRadius float64
}

// NewSession loads the map and prepares an editing session. If the map has
// layers and none is active, the top-most (last) layer becomes active.
func NewSession(ctx context.Context, mapID string, opts Options) (*Session, error) {
	if opts.Maps == nil {
		return nil, errors.New("editor: Options.Maps is required")
	}
	m, err := opts.Maps.GetMap(ctx, mapID)
	if err != nil {
		return nil, fmt.Errorf("loading map %s: %w", mapID, err)
	}
	if err := m.Validate(); err != nil {
		// Malformed objects are skipped by rendering and hit-testing, so an
		// invalid document is still editable.
		opts.Logger.Warn().Err(err).Str("map_id", mapID).Msg("map failed validation")
	}

	s := &Session{
		maps:            opts.Maps,
		entities:        opts.Entities,
		modal:           opts.Modal,
		log:             opts.Logger,
		runAsync:        opts.RunAsync,
		m:               m,
		viewport:        NewViewport(),
		markerHitRadius: opts.MarkerHitRadius,
	}
	if s.runAsync == nil {
		s.runAsync = func(f func()) { go f() }
	}
	if s.markerHitRadius <= 0 {
		s.markerHitRadius = DefaultMarkerHitRadius
	}
	if len(m.Layers) > 0 {
		s.activeLayerID = m.Layers[len(m.Layers)-1].ID
	}
	return s, nil
}

// Map exposes the live map state for rendering. Callers must not mutate it.
func (s *Session) Map() *world.Map { return s.m }

// Viewport exposes the pan/zoom controller.
func (s *Session) Viewport() *Viewport { return s.viewport }

// Tool returns the active tool.
func (s *Session) Tool() Tool { return s.tools.current }

// SetTool switches tools; leaving draw-zone discards any zone draft.
func (s *Session) SetTool(t Tool) { s.tools.set(t) }

// ActiveLayerID returns the current write target, or "" when none.
func (s *Session) ActiveLayerID() string { return s.activeLayerID }

// SelectedID returns the selected object id, or "" when nothing is selected.
func (s *Session) SelectedID() string { return s.selectedID }

// PendingLinkActive reports whether a drawn object awaits linking.
func (s *Session) PendingLinkActive() bool { return s.pending != nil }

// isNotFound matches the store's missing-row sentinel.
func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

// alert raises a blocking alert through the modal collaborator.
func (s *Session) alert(msg string) {
	if s.modal != nil {
		s.modal.Show(ModalRequest{Type: ModalAlert, Message: msg})
	}
}

// persist writes the whole layers slice through the map store. The local
// state is already updated; a failed write is logged and not rolled back, so
// the UI can diverge from durable state until the next full reload.
func (s *Session) persist() {
	layers := s.m.CloneLayers()
	id := s.m.ID
	s.runAsync(func() {
		if err := s.maps.UpdateMap(context.Background(), id, store.MapUpdate{Layers: layers}); err != nil {
			s.log.Error().Err(err).Str("map_id", id).Msg("persisting layers failed; local state kept")
		}
	})
}
