package world

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"worldloom/geo"
)

// ObjectKind discriminates the MapObject variant. Legacy documents written
// without a kind are normalized during decoding by field presence.
type ObjectKind string

const (
	KindMarker ObjectKind = "marker"
	KindZone   ObjectKind = "zone"
)

var (
	ErrUnknownLayer  = errors.New("object references a layer not present in the map")
	ErrMalformedKind = errors.New("object matches neither marker nor zone shape")
	ErrTooFewPoints  = errors.New("zone requires at least 3 points")
)

// Map is a single editable map owned by a world. Layers are ordered
// bottom-to-top; later layers draw on top.
type Map struct {
	ID          string  `json:"id"`
	WorldID     string  `json:"world_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	ImagePath   string  `json:"image_path,omitempty"`
	GridWidth   int     `json:"grid_width"`
	GridHeight  int     `json:"grid_height"`
	Layers      []Layer `json:"layers"`
}

// Layer is a named, independently toggle-visible bucket of map objects.
type Layer struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Type    string      `json:"type,omitempty"`
	Visible bool        `json:"visible"`
	Objects []MapObject `json:"objects"`
}

// MapObject is a tagged variant: a point marker or a polygon zone, never both.
// Marker fields are X/Y plus optional entity links; zone fields are Points.
type MapObject struct {
	ID      string     `json:"id"`
	LayerID string     `json:"layer_id"`
	Kind    ObjectKind `json:"kind"`

	// marker
	X          float64 `json:"x,omitempty"`
	Y          float64 `json:"y,omitempty"`
	LocationID string  `json:"location_id,omitempty"`
	QuestID    string  `json:"quest_id,omitempty"`

	// zone
	Points []geo.Point `json:"points,omitempty"`
}

// NewMarker builds an unlinked marker at a world-space position.
func NewMarker(layerID string, at geo.Point) MapObject {
	return MapObject{
		ID:      uuid.NewString(),
		LayerID: layerID,
		Kind:    KindMarker,
		X:       at.X,
		Y:       at.Y,
	}
}

// NewZone builds a zone from committed vertices. Callers enforce the
// 3-vertex minimum before committing; Validate catches violations after.
func NewZone(layerID string, points []geo.Point) MapObject {
	pts := make([]geo.Point, len(points))
	copy(pts, points)
	return MapObject{
		ID:      uuid.NewString(),
		LayerID: layerID,
		Kind:    KindZone,
		Points:  pts,
	}
}

// Position returns the marker position as a geo.Point.
func (o MapObject) Position() geo.Point {
	return geo.Point{X: o.X, Y: o.Y}
}

// Linked reports whether the marker carries an entity link.
func (o MapObject) Linked() bool {
	return o.LocationID != "" || o.QuestID != ""
}

// UnmarshalJSON decodes an object and, for legacy documents without a kind,
// infers it: points present means zone, otherwise marker.
func (o *MapObject) UnmarshalJSON(data []byte) error {
	type alias MapObject
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.Kind == "" {
		if len(a.Points) > 0 {
			a.Kind = KindZone
		} else {
			a.Kind = KindMarker
		}
	}
	*o = MapObject(a)
	return nil
}

// Validate checks the object's shape against its kind.
func (o MapObject) Validate() error {
	switch o.Kind {
	case KindMarker:
		if len(o.Points) != 0 {
			return fmt.Errorf("marker %s: %w", o.ID, ErrMalformedKind)
		}
	case KindZone:
		if len(o.Points) < 3 {
			return fmt.Errorf("zone %s: %w", o.ID, ErrTooFewPoints)
		}
	default:
		return fmt.Errorf("object %s: %w", o.ID, ErrMalformedKind)
	}
	return nil
}

// NewLayer builds an empty visible layer.
func NewLayer(name string) Layer {
	return Layer{
		ID:      uuid.NewString(),
		Name:    name,
		Visible: true,
		Objects: []MapObject{},
	}
}

// LayerByID returns a pointer into the map's layer slice, or nil.
func (m *Map) LayerByID(id string) *Layer {
	for i := range m.Layers {
		if m.Layers[i].ID == id {
			return &m.Layers[i]
		}
	}
	return nil
}

// ObjectByID scans all layers for the object. Linear scan; maps stay small
// enough that an index has not been worth carrying.
func (m *Map) ObjectByID(id string) (MapObject, bool) {
	for i := range m.Layers {
		for _, o := range m.Layers[i].Objects {
			if o.ID == id {
				return o, true
			}
		}
	}
	return MapObject{}, false
}

// Validate checks structural invariants: object kinds are well formed and
// every object's layer reference resolves within this map.
func (m *Map) Validate() error {
	ids := make(map[string]struct{}, len(m.Layers))
	for i := range m.Layers {
		ids[m.Layers[i].ID] = struct{}{}
	}
	for i := range m.Layers {
		for _, o := range m.Layers[i].Objects {
			if err := o.Validate(); err != nil {
				return err
			}
			if _, ok := ids[o.LayerID]; !ok {
				return fmt.Errorf("object %s: %w", o.ID, ErrUnknownLayer)
			}
		}
	}
	return nil
}

// CloneLayers deep-copies the layers slice. The editor hands copies to the
// store so in-flight writes never alias live editing state.
func (m *Map) CloneLayers() []Layer {
	res := make([]Layer, len(m.Layers))
	for i, l := range m.Layers {
		res[i] = l
		res[i].Objects = make([]MapObject, len(l.Objects))
		for j, o := range l.Objects {
			res[i].Objects[j] = o
			if o.Points != nil {
				pts := make([]geo.Point, len(o.Points))
				copy(pts, o.Points)
				res[i].Objects[j].Points = pts
			}
		}
	}
	return res
}
