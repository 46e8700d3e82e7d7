package geo

import "testing"

func TestPolygonContains(t *testing.T) {
	triangle := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}

	cases := []struct {
		name string
		pt   Point
		want bool
	}{
		{"inside", Point{X: 8, Y: 5}, true},
		{"outside", Point{X: 2, Y: 8}, false},
		{"far_away", Point{X: -100, Y: -100}, false},
		{"vertex", Point{X: 0, Y: 0}, true},
		{"on_edge", Point{X: 5, Y: 0}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := PolygonContains(triangle, c.pt); got != c.want {
				t.Fatalf("PolygonContains(%+v) = %v, want %v", c.pt, got, c.want)
			}
		})
	}
}

func TestPolygonDegenerate(t *testing.T) {
	if _, err := Polygon([]Point{{X: 0, Y: 0}, {X: 1, Y: 1}}); err == nil {
		t.Fatalf("expected error for fewer than 3 points")
	}
	if PolygonContains([]Point{{X: 0, Y: 0}}, Point{}) {
		t.Fatalf("degenerate polygon must not contain anything")
	}
}

func TestCentroid(t *testing.T) {
	got := Centroid([]Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}})
	if got.X != 5 || got.Y != 5 {
		t.Fatalf("centroid = %+v, want {5 5}", got)
	}
	if Centroid(nil) != (Point{}) {
		t.Fatalf("empty centroid should be the origin")
	}
}

func TestPointOps(t *testing.T) {
	p := Point{X: 3, Y: 4}
	if p.Add(Point{X: 1, Y: 1}) != (Point{X: 4, Y: 5}) {
		t.Fatalf("Add broken")
	}
	if p.Sub(Point{X: 1, Y: 1}) != (Point{X: 2, Y: 3}) {
		t.Fatalf("Sub broken")
	}
	if p.Scale(2) != (Point{X: 6, Y: 8}) {
		t.Fatalf("Scale broken")
	}
	if p.DistSq(Point{}) != 25 {
		t.Fatalf("DistSq broken")
	}
}
