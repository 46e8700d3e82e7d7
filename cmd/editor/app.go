package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ebitenui/ebitenui"
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"golang.design/x/clipboard"

	"worldloom/assets"
	"worldloom/config"
	"worldloom/editor"
	"worldloom/geo"
	"worldloom/world"
)

// wheelNotchDeltaY converts one wheel notch into the pixel-style delta the
// viewport expects, so a notch zooms by 0.1.
const wheelNotchDeltaY = 100.0

const doubleClickWindow = 350 * time.Millisecond

// clipboardReady is set once clipboard.Init succeeds; coordinate copy is a
// no-op otherwise.
var clipboardReady bool

type inspectorResult struct {
	id  string
	ins editor.Inspector
	err error
}

// App is the ebiten.Game wrapper around an editing session: it translates
// raw input into session calls and draws the canvas and panels.
type App struct {
	session *editor.Session
	dialog  *Dialog
	cfg     config.Config
	log     zerolog.Logger

	ui         *ebitenui.UI
	toolBar    *ToolBar
	layerPanel *LayerPanel
	canvas     *Canvas

	width  int
	height int

	dragID        string
	lastClickTime time.Time
	lastClickPos  geo.Point

	inspector   editor.Inspector
	inspectorID string
	insCh       chan inspectorResult

	bgChanges chan string

	layerSig string
}

func newApp(session *editor.Session, dialog *Dialog, cfg config.Config, log zerolog.Logger) *App {
	a := &App{
		session:   session,
		dialog:    dialog,
		cfg:       cfg,
		log:       log,
		width:     cfg.Editor.WindowWidth,
		height:    cfg.Editor.WindowHeight,
		insCh:     make(chan inspectorResult, 4),
		bgChanges: make(chan string, 4),
	}
	a.canvas = newCanvas(cfg.AssetsDir, cfg.Editor.GridCellSize, session.Map().ImagePath, log)
	a.ui, a.toolBar, a.layerPanel = buildEditorUI(uiCallbacks{
		onToolSelected:     session.SetTool,
		onLayerSelected:    a.selectLayer,
		onNewLayer:         func() { session.AddLayer("") },
		onDeleteLayer:      a.deleteLayer,
		onToggleVisibility: a.toggleLayerVisibility,
		onZoomIn:           func() { session.Viewport().ZoomStep(editor.ZoomStepFactor) },
		onZoomOut:          func() { session.Viewport().ZoomStep(1 / editor.ZoomStepFactor) },
		onResetView:        func() { session.Viewport().Reset() },
		onCopyCoords:       a.copySelectedCoords,
		onDeleteObject:     a.deleteSelected,
	}, session.Tool())
	return a
}

// watchBackground forwards asset change events into the update loop.
func (a *App) watchBackground(w *assets.Watcher) {
	go func() {
		for {
			select {
			case path, ok := <-w.Events:
				if !ok {
					return
				}
				select {
				case a.bgChanges <- path:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				a.log.Warn().Err(err).Msg("asset watcher error")
			}
		}
	}()
}

func (a *App) selectLayer(idx int) {
	layers := a.session.Map().Layers
	if idx >= 0 && idx < len(layers) {
		a.session.SetActiveLayer(layers[idx].ID)
	}
}

func (a *App) deleteLayer(idx int) {
	layers := a.session.Map().Layers
	if idx >= 0 && idx < len(layers) {
		a.session.DeleteLayer(layers[idx].ID)
	}
}

func (a *App) toggleLayerVisibility(idx int) {
	layers := a.session.Map().Layers
	if idx >= 0 && idx < len(layers) {
		a.session.ToggleVisibility(layers[idx].ID)
	}
}

func (a *App) deleteSelected() {
	if id := a.session.SelectedID(); id != "" {
		a.session.DeleteObject(id)
	}
}

func (a *App) copySelectedCoords() {
	if !clipboardReady {
		return
	}
	o, ok := a.session.Map().ObjectByID(a.session.SelectedID())
	if !ok {
		return
	}
	p := o.Position()
	if o.Kind == world.KindZone {
		p = geo.Centroid(o.Points)
	}
	clipboard.Write(clipboard.FmtText, []byte(fmt.Sprintf("%.1f, %.1f", p.X, p.Y)))
	a.log.Debug().Str("object_id", o.ID).Msg("coordinates copied")
}

func (a *App) Update() error {
	a.drainChannels()

	if a.dialog.Update() {
		a.syncLayerPanel()
		return nil
	}
	a.ui.Update()
	a.handleKeys()
	a.handleMouse()
	a.syncLayerPanel()
	a.syncInspector()
	return nil
}

func (a *App) drainChannels() {
	for {
		select {
		case path := <-a.bgChanges:
			a.canvas.ReloadIfBackground(path)
		case res := <-a.insCh:
			if res.id != a.inspectorID {
				continue
			}
			if res.err != nil {
				a.log.Error().Err(res.err).Msg("resolving selection details")
				continue
			}
			a.inspector = res.ins
		default:
			return
		}
	}
}

func (a *App) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && a.session.ZoneDrafting() {
		a.session.CompleteZone()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.session.Select("")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) {
		a.deleteSelected()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.copySelectedCoords()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.session.Viewport().Reset()
	}

	keys := []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5}
	for i, key := range keys {
		if inpututil.IsKeyJustPressed(key) {
			a.session.SetTool(toolOrder[i])
			a.toolBar.SetTool(toolOrder[i])
		}
	}
}

// canvasPoint converts window coordinates into canvas-local coordinates.
// ok is false when the cursor is over one of the side panels.
func (a *App) canvasPoint(sx, sy int) (geo.Point, bool) {
	pt := geo.Point{X: float64(sx - leftPanelWidth), Y: float64(sy)}
	if sx < leftPanelWidth || sx >= a.width-rightPanelWidth || sy < 0 || sy >= a.height {
		return pt, false
	}
	return pt, true
}

func (a *App) handleMouse() {
	sx, sy := ebiten.CursorPosition()
	pt, onCanvas := a.canvasPoint(sx, sy)
	hot := onCanvas && !ebuiinput.UIHovered
	v := a.session.Viewport()

	if hot {
		if _, wy := ebiten.Wheel(); wy != 0 {
			v.ZoomBy(-wy * wheelNotchDeltaY)
		}
	}

	// Middle-drag pans with any tool.
	if hot && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		v.BeginPan(pt)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		v.PanTo(pt)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		v.EndPan()
	}

	leftJust := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	leftHeld := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	leftReleased := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	switch a.session.Tool() {
	case editor.ToolPan:
		if leftJust && hot {
			v.BeginPan(pt)
		}
		if leftHeld {
			v.PanTo(pt)
		}
		if leftReleased {
			v.EndPan()
		}

	case editor.ToolSelect:
		if leftJust && hot {
			if a.session.SelectAt(pt) {
				if o, ok := a.session.Map().ObjectByID(a.session.SelectedID()); ok && o.Kind == world.KindMarker {
					a.dragID = o.ID
				}
			}
		}
		if a.dragID != "" && leftHeld {
			a.session.DragObject(a.dragID, v.ToWorld(pt))
		}
		if leftReleased {
			a.session.EndDrag()
			a.dragID = ""
		}

	case editor.ToolAddLocation, editor.ToolAddQuest:
		if leftJust && hot {
			// The session raises its own alert when the click cannot land.
			_ = a.session.PlaceMarker(pt)
		}

	case editor.ToolDrawZone:
		if leftJust && hot {
			now := time.Now()
			if now.Sub(a.lastClickTime) < doubleClickWindow && pt.DistSq(a.lastClickPos) < 25 {
				a.session.CompleteZone()
				a.lastClickTime = time.Time{}
				return
			}
			_ = a.session.AddZoneVertex(pt)
			a.lastClickTime = now
			a.lastClickPos = pt
		}
	}
}

// syncLayerPanel pushes the layer list into the UI whenever layers or the
// active selection changed since the last frame.
func (a *App) syncLayerPanel() {
	m := a.session.Map()
	entries := make([]LayerEntry, len(m.Layers))
	activeIdx := -1
	sig := ""
	for i, l := range m.Layers {
		label := fmt.Sprintf("%d. %s", i+1, l.Name)
		if !l.Visible {
			label += " (hidden)"
		}
		entries[i] = LayerEntry{Index: i, Label: label}
		sig += l.ID + "|" + label + ";"
		if l.ID == a.session.ActiveLayerID() {
			activeIdx = i
		}
	}
	sig += fmt.Sprint(activeIdx)
	if sig == a.layerSig {
		return
	}
	a.layerSig = sig
	a.layerPanel.SetLayers(entries)
	if activeIdx >= 0 {
		a.layerPanel.SetSelected(activeIdx)
	}
}

// syncInspector refreshes the panel when the selection changes. The object
// and layer name resolve synchronously on the update loop; only the linked
// entity fetch runs in a goroutine, on a copy of the inspector, so the map
// is never read concurrently. The result lands on insCh and is folded in by
// drainChannels.
func (a *App) syncInspector() {
	sel := a.session.SelectedID()
	if sel == a.inspectorID {
		return
	}
	a.inspectorID = sel
	a.inspector = a.session.ResolveSelection()
	if !a.inspector.HasObject {
		return
	}
	if a.inspector.Object.LocationID == "" && a.inspector.Object.QuestID == "" {
		return
	}
	go func(id string, ins editor.Inspector) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		full, err := a.session.FetchLinks(ctx, ins)
		a.insCh <- inspectorResult{id: id, ins: full, err: err}
	}(sel, a.inspector)
}

func (a *App) Draw(screen *ebiten.Image) {
	sx, sy := ebiten.CursorPosition()
	pt, onCanvas := a.canvasPoint(sx, sy)

	a.canvas.Draw(screen, a.session, leftPanelWidth, a.width-rightPanelWidth, pt, onCanvas)
	a.ui.Draw(screen)
	a.drawInspector(screen)
	a.drawStatus(screen, pt, onCanvas)
	a.dialog.Draw(screen)
}

func (a *App) drawInspector(screen *ebiten.Image) {
	x := a.width - rightPanelWidth + 12
	y := 48

	line := func(s string) {
		ebitenutil.DebugPrintAt(screen, s, x, y)
		y += 16
	}

	ins := a.inspector
	if !ins.HasObject {
		line("Nothing selected")
		return
	}
	line("Kind:  " + string(ins.Object.Kind))
	line("Layer: " + ins.LayerName)
	switch ins.Object.Kind {
	case world.KindMarker:
		line(fmt.Sprintf("At:    %.1f, %.1f", ins.Object.X, ins.Object.Y))
	case world.KindZone:
		c := geo.Centroid(ins.Object.Points)
		line(fmt.Sprintf("Vertices: %d", len(ins.Object.Points)))
		line(fmt.Sprintf("Centroid: %.1f, %.1f", c.X, c.Y))
	}

	if ins.Object.LocationID != "" {
		if ins.LinkedLocation != nil {
			line("Location: " + ins.LinkedLocation.Name)
			if ins.LinkedLocation.Description != "" {
				line("  " + ins.LinkedLocation.Description)
			}
		} else {
			line("Location: (missing)")
		}
	}
	if ins.Object.QuestID != "" {
		if ins.LinkedQuest != nil {
			line("Quest: " + ins.LinkedQuest.Name)
			if ins.LinkedQuest.Description != "" {
				line("  " + ins.LinkedQuest.Description)
			}
		} else {
			line("Quest: (missing)")
		}
	}
}

func (a *App) drawStatus(screen *ebiten.Image, pt geo.Point, onCanvas bool) {
	layerName := "(none)"
	if l := a.session.Map().LayerByID(a.session.ActiveLayerID()); l != nil {
		layerName = l.Name
	}
	status := fmt.Sprintf("Tool: %s | Zoom: %.2fx | Layer: %s", a.session.Tool(), a.session.Viewport().Zoom, layerName)
	if onCanvas {
		w := a.session.Viewport().ToWorld(pt)
		status += fmt.Sprintf(" | %.1f, %.1f", w.X, w.Y)
	}
	ebitenutil.DebugPrintAt(screen, status, leftPanelWidth+8, a.height-20)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.width, a.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
