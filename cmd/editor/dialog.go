package main

import (
	"context"
	"fmt"
	"image/color"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"worldloom/editor"
	"worldloom/world"
)

const dialogListMax = 8

type dialogEntry struct {
	id   string
	name string
}

type dialogEntries struct {
	gen     int
	entries []dialogEntry
}

// Dialog is the modal layer of the editor window. While open it captures all
// input. Link dialogs offer the world's existing entities plus a text input
// that creates a new one on Enter.
type Dialog struct {
	entities editor.EntityDirectory
	log      zerolog.Logger

	open      bool
	req       editor.ModalRequest
	entries   []dialogEntry
	highlight int
	input     string
	errText   string
	runes     []rune

	// Entity lists load off the update loop; gen discards results from a
	// dialog that has since closed or reopened.
	loading   bool
	gen       int
	entriesCh chan dialogEntries
	runAsync  func(func())
}

func newDialog(entities editor.EntityDirectory, log zerolog.Logger) *Dialog {
	return &Dialog{
		entities:  entities,
		log:       log,
		entriesCh: make(chan dialogEntries, 4),
		runAsync:  func(f func()) { go f() },
	}
}

func (d *Dialog) IsOpen() bool { return d.open }

// Show implements editor.ModalService. Link dialogs open immediately and
// load their entity list in the background so a slow store never stalls a
// frame.
func (d *Dialog) Show(req editor.ModalRequest) {
	d.req = req
	d.open = true
	d.input = ""
	d.errText = ""
	d.highlight = 0
	d.entries = nil
	d.gen++
	d.loading = false

	if req.Type != editor.ModalLinkLocation && req.Type != editor.ModalLinkQuest {
		return
	}
	d.loading = true
	gen := d.gen
	typ := req.Type
	worldID := req.WorldID
	d.runAsync(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		var entries []dialogEntry
		switch typ {
		case editor.ModalLinkLocation:
			locs, err := d.entities.ListLocations(ctx, worldID)
			if err != nil {
				d.log.Error().Err(err).Msg("listing locations for link dialog")
			}
			for _, l := range locs {
				entries = append(entries, dialogEntry{id: l.ID, name: l.Name})
			}
		case editor.ModalLinkQuest:
			quests, err := d.entities.ListQuests(ctx, worldID)
			if err != nil {
				d.log.Error().Err(err).Msg("listing quests for link dialog")
			}
			for _, q := range quests {
				entries = append(entries, dialogEntry{id: q.ID, name: q.Name})
			}
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
		d.entriesCh <- dialogEntries{gen: gen, entries: entries}
	})
}

// drainEntries folds finished background loads into the dialog, dropping
// results that belong to a closed or superseded dialog.
func (d *Dialog) drainEntries() {
	for {
		select {
		case res := <-d.entriesCh:
			if res.gen != d.gen || !d.open {
				continue
			}
			d.entries = res.entries
			d.loading = false
			if d.highlight >= len(d.entries) {
				d.highlight = 0
			}
		default:
			return
		}
	}
}

func (d *Dialog) close() {
	d.open = false
	d.req = editor.ModalRequest{}
	d.entries = nil
	d.input = ""
	d.errText = ""
	d.loading = false
	d.gen++
}

func (d *Dialog) confirm(entityID string) {
	onConfirm := d.req.OnConfirm
	d.close()
	if onConfirm != nil {
		onConfirm(entityID)
	}
}

func (d *Dialog) cancel() {
	onCancel := d.req.OnCancel
	d.close()
	if onCancel != nil {
		onCancel()
	}
}

// Update processes input for the dialog. Returns true while the dialog is
// open so the caller can skip canvas and panel input.
func (d *Dialog) Update() bool {
	d.drainEntries()
	if !d.open {
		return false
	}

	switch d.req.Type {
	case editor.ModalAlert:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			d.confirm("")
		}
	case editor.ModalConfirmation:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			d.confirm("")
		} else if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			d.cancel()
		}
	case editor.ModalLinkLocation, editor.ModalLinkQuest:
		d.updateLink()
	default:
		d.cancel()
	}
	// Input that closed the dialog is consumed; report open for this frame
	// so the canvas does not also act on it.
	return true
}

func (d *Dialog) updateLink() {
	d.runes = ebiten.AppendInputChars(d.runes[:0])
	for _, r := range d.runes {
		if r == '\n' || r == '\r' {
			continue
		}
		d.input += string(r)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(d.input) > 0 {
		d.input = d.input[:len(d.input)-1]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && d.highlight > 0 {
		d.highlight--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && d.highlight < len(d.entries)-1 {
		d.highlight++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		d.cancel()
		return
	}
	if !inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return
	}

	if d.input != "" {
		id, err := d.createEntity(d.input)
		if err != nil {
			d.errText = err.Error()
			d.log.Error().Err(err).Msg("creating entity from link dialog")
			return
		}
		d.confirm(id)
		return
	}
	if d.highlight >= 0 && d.highlight < len(d.entries) {
		d.confirm(d.entries[d.highlight].id)
		return
	}
	d.errText = "type a name to create, or pick an entry"
}

func (d *Dialog) createEntity(name string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	id := uuid.NewString()
	switch d.req.Type {
	case editor.ModalLinkLocation:
		l := world.Location{ID: id, WorldID: d.req.WorldID, Name: name}
		if err := d.entities.CreateLocation(ctx, &l); err != nil {
			return "", fmt.Errorf("creating location: %w", err)
		}
	case editor.ModalLinkQuest:
		q := world.Quest{ID: id, WorldID: d.req.WorldID, Name: name}
		if err := d.entities.CreateQuest(ctx, &q); err != nil {
			return "", fmt.Errorf("creating quest: %w", err)
		}
	}
	return id, nil
}

func (d *Dialog) title() string {
	switch d.req.Type {
	case editor.ModalAlert:
		return d.req.Message
	case editor.ModalConfirmation:
		return d.req.Message + "  [Enter = yes, Esc = no]"
	case editor.ModalLinkLocation:
		return "Link marker to a location"
	case editor.ModalLinkQuest:
		return "Link marker to a quest"
	}
	return ""
}

// Draw renders the dialog overlay into the provided screen.
func (d *Dialog) Draw(screen *ebiten.Image) {
	if !d.open {
		return
	}
	sw := screen.Bounds().Dx()
	sh := screen.Bounds().Dy()

	lines := []string{d.title()}
	if d.req.Type == editor.ModalLinkLocation || d.req.Type == editor.ModalLinkQuest {
		start := 0
		if d.highlight >= dialogListMax {
			start = d.highlight - dialogListMax + 1
		}
		for i := start; i < len(d.entries) && i < start+dialogListMax; i++ {
			cursor := "  "
			if i == d.highlight && d.input == "" {
				cursor = "> "
			}
			lines = append(lines, cursor+d.entries[i].name)
		}
		if len(d.entries) == 0 {
			if d.loading {
				lines = append(lines, "  (loading)")
			} else {
				lines = append(lines, "  (none yet)")
			}
		}
		lines = append(lines, "New: "+d.input+"_")
		lines = append(lines, "[Enter = link/create, Esc = cancel]")
	}
	if d.errText != "" {
		lines = append(lines, "! "+d.errText)
	}

	boxH := 16*len(lines) + 24
	o := &ebiten.DrawImageOptions{}
	back := ebiten.NewImage(sw, boxH)
	back.Fill(color.RGBA{R: 0, G: 0, B: 0, A: 0xcc})
	o.GeoM.Translate(0, float64(sh/2-boxH/2))
	screen.DrawImage(back, o)

	y := sh/2 - boxH/2 + 12
	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, sw/2-200, y)
		y += 16
	}
}
