package geo

import (
	"errors"

	geom "github.com/peterstace/simplefeatures/geom"
)

// ErrDegeneratePolygon is returned when fewer than three vertices are provided.
var ErrDegeneratePolygon = errors.New("polygon requires at least 3 points")

// Point is a position in map world space (unzoomed, unpanned coordinates).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p minus q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p with both axes multiplied by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// DistSq returns the squared distance between p and q.
func (p Point) DistSq(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Polygon builds a closed simplefeatures polygon from world-space vertices.
// The ring is closed automatically; callers pass the vertices as drawn.
func Polygon(points []Point) (geom.Polygon, error) {
	if len(points) < 3 {
		return geom.Polygon{}, ErrDegeneratePolygon
	}
	flat := make([]float64, 0, (len(points)+1)*2)
	for _, p := range points {
		flat = append(flat, p.X, p.Y)
	}
	// close the ring
	flat = append(flat, points[0].X, points[0].Y)
	seq := geom.NewSequence(flat, geom.DimXY)
	ring, err := geom.NewLineString(seq)
	if err != nil {
		return geom.Polygon{}, err
	}
	poly, err := geom.NewPolygon([]geom.LineString{ring})
	if err != nil {
		return geom.Polygon{}, err
	}
	return poly, nil
}

// PolygonContains reports whether the polygon described by points contains pt.
// Boundary points count as contained. Degenerate inputs report false.
func PolygonContains(points []Point, pt Point) bool {
	poly, err := Polygon(points)
	if err != nil {
		return false
	}
	p, err := geom.NewPoint(geom.Coordinates{
		XY:   geom.XY{X: pt.X, Y: pt.Y},
		Type: geom.DimXY,
	})
	if err != nil {
		return false
	}
	return geom.Intersects(p.AsGeometry(), poly.AsGeometry())
}

// Centroid returns the arithmetic mean of the vertices. Used for labeling
// zones, not for geometric correctness.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var c Point
	for _, p := range points {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(points))
	return Point{X: c.X / n, Y: c.Y / n}
}
