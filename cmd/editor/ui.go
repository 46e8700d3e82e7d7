package main

import (
	"bytes"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"worldloom/editor"
)

const (
	leftPanelWidth  = 240
	rightPanelWidth = 280
)

// uiCallbacks carries the handlers the panels invoke back into the app.
type uiCallbacks struct {
	onToolSelected     func(tool editor.Tool)
	onLayerSelected    func(idx int)
	onNewLayer         func()
	onDeleteLayer      func(idx int)
	onToggleVisibility func(idx int)
	onZoomIn           func()
	onZoomOut          func()
	onResetView        func()
	onCopyCoords       func()
	onDeleteObject     func()
}

func buildEditorUI(cb uiCallbacks, initialTool editor.Tool) (*ebitenui.UI, *ToolBar, *LayerPanel) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	toolbarContainer, toolBar := buildToolBar(ui.PrimaryTheme, &fontFace, cb.onToolSelected, initialTool)
	leftPanel, layerPanel := buildLeftPanel(ui.PrimaryTheme, &fontFace, cb)
	rightPanel := buildRightPanel(ui.PrimaryTheme, &fontFace, cb)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	leftPanel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	rightPanel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	toolbarContainer.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(leftPanel)
	root.AddChild(rightPanel)
	root.AddChild(toolbarContainer)

	ui.Container = root
	return ui, toolBar, layerPanel
}

func buildLeftPanel(theme *widget.Theme, fontFace *text.Face, cb uiCallbacks) (*widget.Container, *LayerPanel) {
	layerPanel := &LayerPanel{onSelected: cb.onLayerSelected}

	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelWidth, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{34, 34, 40, 255})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)

	layersLabel := widget.NewLabel(
		widget.LabelOpts.Text("Layers", fontFace, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
	)
	panel.AddChild(layersLabel)

	layerList := widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(LayerEntry); ok {
				return entry.Label
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(LayerEntry)
			if !ok || layerPanel.suppressEvents {
				return
			}
			if layerPanel.onSelected != nil {
				layerPanel.onSelected(entry.Index)
			}
		}),
	)
	panel.AddChild(layerList)
	layerPanel.list = layerList

	buttonsRow := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
	)
	buttonsRow.AddChild(panelButton(theme, fontFace, "New", func() {
		if cb.onNewLayer != nil {
			cb.onNewLayer()
		}
	}))
	buttonsRow.AddChild(panelButton(theme, fontFace, "Delete", func() {
		if idx := layerPanel.SelectedIndex(); idx >= 0 && cb.onDeleteLayer != nil {
			cb.onDeleteLayer(idx)
		}
	}))
	buttonsRow.AddChild(panelButton(theme, fontFace, "Show/Hide", func() {
		if idx := layerPanel.SelectedIndex(); idx >= 0 && cb.onToggleVisibility != nil {
			cb.onToggleVisibility(idx)
		}
	}))
	panel.AddChild(buttonsRow)

	viewLabel := widget.NewLabel(
		widget.LabelOpts.Text("View", fontFace, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
	)
	panel.AddChild(viewLabel)

	viewRow := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
	)
	viewRow.AddChild(panelButton(theme, fontFace, "+", cb.onZoomIn))
	viewRow.AddChild(panelButton(theme, fontFace, "-", cb.onZoomOut))
	viewRow.AddChild(panelButton(theme, fontFace, "Reset", cb.onResetView))
	panel.AddChild(viewRow)

	return panel, layerPanel
}

func buildRightPanel(theme *widget.Theme, fontFace *text.Face, cb uiCallbacks) *widget.Container {
	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(rightPanelWidth, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{34, 34, 40, 255})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)

	title := widget.NewLabel(
		widget.LabelOpts.Text("Inspector", fontFace, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
	)
	panel.AddChild(title)

	// The inspector body is drawn by the app over this panel; only the
	// action buttons live in the widget tree.
	spacer := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(rightPanelWidth-16, 220),
		),
	)
	panel.AddChild(spacer)

	actionsRow := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
	)
	actionsRow.AddChild(panelButton(theme, fontFace, "Copy Coords", cb.onCopyCoords))
	actionsRow.AddChild(panelButton(theme, fontFace, "Delete", cb.onDeleteObject))
	panel.AddChild(actionsRow)

	return panel
}

func panelButton(theme *widget.Theme, fontFace *text.Face, label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text(label, fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if onClick != nil {
				onClick()
			}
		}),
	)
}
