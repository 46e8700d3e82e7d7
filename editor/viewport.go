package editor

import "worldloom/geo"

// Zoom bounds are clamped on every mutation.
const (
	MinZoom = 0.1
	MaxZoom = 5.0

	// wheelZoomRate converts wheel deltaY into a zoom delta.
	wheelZoomRate = 0.001

	// ZoomStepFactor is applied by the zoom in/out buttons.
	ZoomStepFactor = 1.2
)

// Viewport owns the pan offset and zoom factor and converts between screen
// and world coordinates. Zoom is anchored at the canvas origin, not at the
// cursor: panning is unchanged by zooming.
type Viewport struct {
	Pan  geo.Point
	Zoom float64

	panning  bool
	panStart geo.Point
}

func NewViewport() *Viewport {
	return &Viewport{Zoom: 1}
}

func clampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// ZoomBy applies a wheel delta: zoom' = clamp(zoom - deltaY*0.001).
func (v *Viewport) ZoomBy(deltaY float64) {
	v.Zoom = clampZoom(v.Zoom - deltaY*wheelZoomRate)
}

// ZoomStep multiplies the zoom by factor (ZoomStepFactor or its inverse).
func (v *Viewport) ZoomStep(factor float64) {
	v.Zoom = clampZoom(v.Zoom * factor)
}

// Reset restores the identity transform.
func (v *Viewport) Reset() {
	v.Pan = geo.Point{}
	v.Zoom = 1
	v.panning = false
}

// BeginPan records the drag origin so that subsequent moves reposition the
// pan absolutely: pan' = pointer - (pointerAtStart - panAtStart).
func (v *Viewport) BeginPan(pointer geo.Point) {
	v.panStart = pointer.Sub(v.Pan)
	v.panning = true
}

// PanTo repositions the pan while a drag is active; no-op otherwise.
func (v *Viewport) PanTo(pointer geo.Point) {
	if !v.panning {
		return
	}
	v.Pan = pointer.Sub(v.panStart)
}

// EndPan finishes a drag.
func (v *Viewport) EndPan() {
	v.panning = false
}

// Panning reports whether a pan drag is in progress.
func (v *Viewport) Panning() bool {
	return v.panning
}

// ToWorld maps a screen point to world space: (screen - pan) / zoom.
func (v *Viewport) ToWorld(screen geo.Point) geo.Point {
	return screen.Sub(v.Pan).Scale(1 / v.Zoom)
}

// ToScreen is the exact inverse of ToWorld: world*zoom + pan.
func (v *Viewport) ToScreen(world geo.Point) geo.Point {
	return world.Scale(v.Zoom).Add(v.Pan)
}
