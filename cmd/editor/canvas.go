package main

import (
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

	"worldloom/editor"
	"worldloom/geo"
	"worldloom/world"
)

var (
	canvasBackground = color.RGBA{24, 24, 28, 255}
	gridColor        = color.RGBA{60, 60, 70, 255}
	gridBorderColor  = color.RGBA{110, 110, 130, 255}
	locationColor    = color.RGBA{70, 130, 240, 255}
	questColor       = color.RGBA{230, 180, 60, 255}
	unlinkedColor    = color.RGBA{150, 150, 150, 255}
	zoneColor        = color.RGBA{90, 200, 120, 255}
	draftColor       = color.RGBA{120, 230, 150, 255}
	selectionColor   = color.RGBA{255, 255, 255, 255}
)

const markerDrawRadius = 6

// Canvas renders the map between the side panels: background image, grid,
// layers bottom-to-top, the zone draft rubber band, and the selection ring.
type Canvas struct {
	assetsDir string
	gridCell  int
	log       zerolog.Logger

	bg     *ebiten.Image
	bgPath string
}

func newCanvas(assetsDir string, gridCell int, imagePath string, log zerolog.Logger) *Canvas {
	c := &Canvas{assetsDir: assetsDir, gridCell: gridCell, bgPath: imagePath, log: log}
	c.loadBackground()
	return c
}

func (c *Canvas) loadBackground() {
	if c.bgPath == "" {
		return
	}
	path := c.bgPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.assetsDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("background image unavailable")
		return
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("decoding background image failed")
		return
	}
	c.bg = ebiten.NewImageFromImage(img)
	c.log.Debug().Str("path", path).Msg("background image loaded")
}

// ReloadIfBackground reloads the background when the changed file is the one
// the map references.
func (c *Canvas) ReloadIfBackground(changed string) {
	if c.bgPath == "" {
		return
	}
	if filepath.Base(changed) != filepath.Base(c.bgPath) {
		return
	}
	c.loadBackground()
}

// Draw renders the canvas into the [x0, x1) horizontal band of the screen.
// pointer is the cursor in canvas-local coordinates for draft feedback.
func (c *Canvas) Draw(screen *ebiten.Image, s *editor.Session, x0, x1 int, pointer geo.Point, pointerOnCanvas bool) {
	h := screen.Bounds().Dy()
	clip := screen.SubImage(image.Rect(x0, 0, x1, h)).(*ebiten.Image)
	clip.Fill(canvasBackground)

	v := s.Viewport()
	toScreen := func(w geo.Point) (float32, float32) {
		p := v.ToScreen(w)
		return float32(p.X) + float32(x0), float32(p.Y)
	}

	if c.bg != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(v.Zoom, v.Zoom)
		op.GeoM.Translate(v.Pan.X+float64(x0), v.Pan.Y)
		clip.DrawImage(c.bg, op)
	}

	c.drawGrid(clip, s, toScreen)

	m := s.Map()
	for i := range m.Layers {
		layer := &m.Layers[i]
		if !layer.Visible {
			continue
		}
		for _, o := range layer.Objects {
			switch o.Kind {
			case world.KindZone:
				c.drawZone(clip, o, toScreen, o.ID == s.SelectedID())
			case world.KindMarker:
				c.drawMarker(clip, o, toScreen, o.ID == s.SelectedID())
			}
		}
	}

	if pointerOnCanvas {
		if points, cursor, ok := s.ZonePreview(pointer); ok {
			c.drawDraft(clip, points, cursor, toScreen)
		}
	}
}

func (c *Canvas) drawGrid(dst *ebiten.Image, s *editor.Session, toScreen func(geo.Point) (float32, float32)) {
	m := s.Map()
	if m.GridWidth <= 0 || m.GridHeight <= 0 || c.gridCell <= 0 {
		return
	}
	cell := float64(c.gridCell)
	w := float64(m.GridWidth) * cell
	h := float64(m.GridHeight) * cell
	for i := 0; i <= m.GridWidth; i++ {
		x := float64(i) * cell
		x0, y0 := toScreen(geo.Point{X: x})
		x1, y1 := toScreen(geo.Point{X: x, Y: h})
		col := gridColor
		if i == 0 || i == m.GridWidth {
			col = gridBorderColor
		}
		vector.StrokeLine(dst, x0, y0, x1, y1, 1, col, false)
	}
	for j := 0; j <= m.GridHeight; j++ {
		y := float64(j) * cell
		x0, y0 := toScreen(geo.Point{Y: y})
		x1, y1 := toScreen(geo.Point{X: w, Y: y})
		col := gridColor
		if j == 0 || j == m.GridHeight {
			col = gridBorderColor
		}
		vector.StrokeLine(dst, x0, y0, x1, y1, 1, col, false)
	}
}

func (c *Canvas) drawZone(dst *ebiten.Image, o world.MapObject, toScreen func(geo.Point) (float32, float32), selected bool) {
	if len(o.Points) < 2 {
		return
	}
	col := zoneColor
	width := float32(2)
	if selected {
		col = selectionColor
		width = 3
	}
	for i := range o.Points {
		a := o.Points[i]
		b := o.Points[(i+1)%len(o.Points)]
		ax, ay := toScreen(a)
		bx, by := toScreen(b)
		vector.StrokeLine(dst, ax, ay, bx, by, width, col, true)
	}
	cx, cy := toScreen(geo.Centroid(o.Points))
	vector.DrawFilledCircle(dst, cx, cy, 3, col, true)
}

func (c *Canvas) drawMarker(dst *ebiten.Image, o world.MapObject, toScreen func(geo.Point) (float32, float32), selected bool) {
	col := unlinkedColor
	switch {
	case o.LocationID != "":
		col = locationColor
	case o.QuestID != "":
		col = questColor
	}
	x, y := toScreen(o.Position())
	vector.DrawFilledCircle(dst, x, y, markerDrawRadius, col, true)
	if selected {
		vector.StrokeCircle(dst, x, y, markerDrawRadius+3, 2, selectionColor, true)
	}
}

func (c *Canvas) drawDraft(dst *ebiten.Image, points []geo.Point, cursor geo.Point, toScreen func(geo.Point) (float32, float32)) {
	for i := 0; i < len(points)-1; i++ {
		ax, ay := toScreen(points[i])
		bx, by := toScreen(points[i+1])
		vector.StrokeLine(dst, ax, ay, bx, by, 2, draftColor, true)
	}
	lx, ly := toScreen(points[len(points)-1])
	cx, cy := toScreen(cursor)
	vector.StrokeLine(dst, lx, ly, cx, cy, 1, draftColor, true)
	for _, p := range points {
		px, py := toScreen(p)
		vector.DrawFilledCircle(dst, px, py, 3, draftColor, true)
	}
}
