package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"worldloom/editor"
)

// toolOrder maps toolbar button positions to editor tools.
var toolOrder = []editor.Tool{
	editor.ToolPan,
	editor.ToolSelect,
	editor.ToolAddLocation,
	editor.ToolAddQuest,
	editor.ToolDrawZone,
}

// ToolBar contains the radio-group state for the floating tool buttons.
type ToolBar struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
}

func (tb *ToolBar) SetTool(t editor.Tool) {
	if tb == nil || tb.group == nil {
		return
	}
	for i, tool := range toolOrder {
		if tool == t && i < len(tb.buttons) {
			tb.group.SetActive(tb.buttons[i])
			return
		}
	}
}

func buildToolBar(theme *widget.Theme, fontFace *text.Face, onToolSelected func(tool editor.Tool), initialTool editor.Tool) (*widget.Container, *ToolBar) {
	buttonTextColor := &widget.ButtonTextColor{
		Idle:     color.Black,
		Hover:    color.Black,
		Pressed:  color.RGBA{0, 0, 200, 255},
		Disabled: color.Gray{Y: 128},
	}

	toolbar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(320, 48),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 240, 255})),
	)

	var toolButtons []*widget.Button
	for _, tool := range toolOrder {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(tool.String(), fontFace, buttonTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(48, 40),
			),
		)
		toolButtons = append(toolButtons, btn)
		toolbar.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(toolButtons))
	for _, b := range toolButtons {
		elements = append(elements, b)
	}

	group := widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if onToolSelected == nil {
				return
			}
			for idx, b := range toolButtons {
				if args.Active == b {
					onToolSelected(toolOrder[idx])
					return
				}
			}
		}),
	)

	for i, tool := range toolOrder {
		if tool == initialTool {
			group.SetActive(toolButtons[i])
		}
	}

	return toolbar, &ToolBar{group: group, buttons: toolButtons}
}
