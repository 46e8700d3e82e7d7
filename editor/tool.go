package editor

import "worldloom/geo"

// Tool is the active editing tool. Switching tools is a plain assignment with
// no side effect other than resetting an in-progress zone draft when leaving
// ToolDrawZone.
type Tool int

const (
	ToolPan Tool = iota
	ToolSelect
	ToolAddLocation
	ToolAddQuest
	ToolDrawZone
)

func (t Tool) String() string {
	switch t {
	case ToolPan:
		return "Pan"
	case ToolSelect:
		return "Select"
	case ToolAddLocation:
		return "Add Location"
	case ToolAddQuest:
		return "Add Quest"
	case ToolDrawZone:
		return "Draw Zone"
	default:
		return "Unknown"
	}
}

// zoneDraft accumulates vertices for an in-progress zone. States: idle
// (no vertices) -> accumulating -> committed or discarded (both reset).
type zoneDraft struct {
	points []geo.Point
}

func (d *zoneDraft) active() bool {
	return len(d.points) > 0
}

func (d *zoneDraft) add(p geo.Point) {
	d.points = append(d.points, p)
}

func (d *zoneDraft) reset() {
	d.points = nil
}

// take returns the accumulated vertices if there are enough to commit, and
// resets the draft either way. ok is false for fewer than three vertices.
func (d *zoneDraft) take() (points []geo.Point, ok bool) {
	pts := d.points
	d.points = nil
	if len(pts) < 3 {
		return nil, false
	}
	return pts, true
}

// toolState tracks the active tool and the zone-drawing sub-state.
type toolState struct {
	current Tool
	draft   zoneDraft
}

func (s *toolState) set(t Tool) {
	if s.current == ToolDrawZone && t != ToolDrawZone {
		s.draft.reset()
	}
	s.current = t
}
