package main

import "github.com/ebitenui/ebitenui/widget"

// LayerEntry is a small value used by the UI list to represent a layer row.
type LayerEntry struct {
	Index int
	Label string
}

// LayerPanel holds the layer list widget and guards against programmatic
// selections being re-delivered to the session as user clicks.
type LayerPanel struct {
	list    *widget.List
	entries []any

	onSelected func(idx int)
	// suppressEvents, when true, causes the selection handler to ignore
	// programmatic selections.
	suppressEvents bool
}

func (lp *LayerPanel) SetLayers(entries []LayerEntry) {
	if lp == nil || lp.list == nil {
		return
	}
	lp.suppressEvents = true
	rows := make([]any, len(entries))
	for i, e := range entries {
		rows[i] = e
	}
	lp.entries = rows
	lp.list.SetEntries(rows)
	lp.suppressEvents = false
}

func (lp *LayerPanel) SetSelected(idx int) {
	if lp == nil || lp.list == nil {
		return
	}
	if idx < 0 || idx >= len(lp.entries) {
		return
	}
	lp.suppressEvents = true
	lp.list.SetSelectedEntry(lp.entries[idx])
	lp.suppressEvents = false
}

// SelectedIndex returns the highlighted layer row, or -1.
func (lp *LayerPanel) SelectedIndex() int {
	if lp == nil || lp.list == nil {
		return -1
	}
	if sel, ok := lp.list.SelectedEntry().(LayerEntry); ok {
		return sel.Index
	}
	return -1
}
