package editor

import (
	"math"
	"testing"

	"worldloom/geo"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func TestViewportZoomBy(t *testing.T) {
	cases := []struct {
		name   string
		start  float64
		deltaY float64
		want   float64
	}{
		{"wheel_up_zooms_in", 1.0, -100, 1.1},
		{"wheel_down_zooms_out", 1.0, 100, 0.9},
		{"zero_delta_noop", 1.37, 0, 1.37},
		{"clamped_at_max", 4.95, -200, 5.0},
		{"clamped_at_min", 0.15, 200, 0.1},
		{"huge_delta_clamped", 1.0, 1e9, 0.1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := NewViewport()
			v.Zoom = c.start
			v.ZoomBy(c.deltaY)
			if !almostEqual(v.Zoom, c.want) {
				t.Fatalf("zoom = %v, want %v", v.Zoom, c.want)
			}
			if v.Zoom < MinZoom || v.Zoom > MaxZoom {
				t.Fatalf("zoom %v outside [%v, %v]", v.Zoom, MinZoom, MaxZoom)
			}
		})
	}
}

func TestViewportZoomStep(t *testing.T) {
	v := NewViewport()
	v.ZoomStep(ZoomStepFactor)
	if !almostEqual(v.Zoom, 1.2) {
		t.Fatalf("zoom after one step = %v, want 1.2", v.Zoom)
	}
	v.ZoomStep(1 / ZoomStepFactor)
	if !almostEqual(v.Zoom, 1.0) {
		t.Fatalf("zoom after step back = %v, want 1.0", v.Zoom)
	}

	v.Zoom = 4.5
	v.ZoomStep(ZoomStepFactor)
	if !almostEqual(v.Zoom, MaxZoom) {
		t.Fatalf("zoom = %v, want clamped to %v", v.Zoom, MaxZoom)
	}
}

func TestViewportRoundTrip(t *testing.T) {
	viewports := []*Viewport{
		{Pan: geo.Point{}, Zoom: 1},
		{Pan: geo.Point{X: 120, Y: -45}, Zoom: 0.1},
		{Pan: geo.Point{X: -3.5, Y: 999}, Zoom: 5.0},
		{Pan: geo.Point{X: 17, Y: 17}, Zoom: 2.7},
	}
	points := []geo.Point{
		{},
		{X: 10, Y: 10},
		{X: -250.25, Y: 0.001},
		{X: 1e6, Y: -1e6},
	}

	for _, v := range viewports {
		for _, p := range points {
			got := v.ToWorld(v.ToScreen(p))
			if math.Abs(got.X-p.X) > 1e-6 || math.Abs(got.Y-p.Y) > 1e-6 {
				t.Fatalf("round trip of %+v through %+v = %+v", p, v, got)
			}
		}
	}
}

func TestViewportPanDrag(t *testing.T) {
	v := NewViewport()
	v.Pan = geo.Point{X: 10, Y: 10}

	v.BeginPan(geo.Point{X: 100, Y: 50})
	v.PanTo(geo.Point{X: 120, Y: 80})
	if !almostEqual(v.Pan.X, 30) || !almostEqual(v.Pan.Y, 40) {
		t.Fatalf("pan = %+v, want {30 40}", v.Pan)
	}

	// moves reposition absolutely, not incrementally
	v.PanTo(geo.Point{X: 120, Y: 80})
	if !almostEqual(v.Pan.X, 30) || !almostEqual(v.Pan.Y, 40) {
		t.Fatalf("repeated move changed pan: %+v", v.Pan)
	}

	v.EndPan()
	v.PanTo(geo.Point{X: 500, Y: 500})
	if !almostEqual(v.Pan.X, 30) || !almostEqual(v.Pan.Y, 40) {
		t.Fatalf("move after EndPan changed pan: %+v", v.Pan)
	}
}

func TestViewportReset(t *testing.T) {
	v := NewViewport()
	v.Pan = geo.Point{X: 55, Y: -20}
	v.Zoom = 3.3
	v.BeginPan(geo.Point{X: 1, Y: 1})
	v.Reset()
	if v.Pan != (geo.Point{}) || v.Zoom != 1 || v.Panning() {
		t.Fatalf("reset left state: pan=%+v zoom=%v panning=%v", v.Pan, v.Zoom, v.Panning())
	}
}
