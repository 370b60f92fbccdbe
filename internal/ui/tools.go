package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"MarkBoard/internal/ink"
	"MarkBoard/internal/input"
	"MarkBoard/internal/render"
)

type colorSwatch struct {
	widget.BaseWidget
	Swatch   render.Swatch
	OnTapped func(render.Swatch)

	selected bool
	border   *canvas.Rectangle
}

func newColorSwatch(s render.Swatch, tapped func(render.Swatch)) *colorSwatch {
	cs := &colorSwatch{Swatch: s, OnTapped: tapped}
	cs.ExtendBaseWidget(cs)
	return cs
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	c, ok := render.ParseColor(s.Swatch.Value)
	if !ok {
		c = color.NRGBA{A: 255}
	}
	rect := canvas.NewRectangle(c)
	rect.SetMinSize(fyne.NewSize(28, 28))
	rect.CornerRadius = 14

	s.border = canvas.NewRectangle(color.Transparent)
	s.border.CornerRadius = 16
	s.border.StrokeWidth = 2
	s.applyBorder()

	return widget.NewSimpleRenderer(container.NewStack(s.border, container.NewPadded(rect)))
}

func (s *colorSwatch) applyBorder() {
	if s.border == nil {
		return
	}
	if s.selected {
		s.border.StrokeColor = color.Gray{Y: 60}
	} else {
		s.border.StrokeColor = color.Transparent
	}
	s.border.Refresh()
}

func (s *colorSwatch) SetSelected(v bool) {
	s.selected = v
	s.applyBorder()
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Swatch)
	}
}

var widthLabels = []struct {
	label string
	width ink.WidthCategory
}{
	{"Thin", ink.WidthThin},
	{"Medium", ink.WidthMedium},
	{"Thick", ink.WidthThick},
}

// NewToolbar builds the tool, colour and width controls for board. The
// export and clear actions are supplied by the caller.
func NewToolbar(board *BoardWidget, actions ...*widget.ToolbarAction) fyne.CanvasObject {
	status := widget.NewLabel("")
	showTool := func() {
		switch board.Tool().Tool {
		case input.ToolPen:
			status.SetText("Pen")
		case input.ToolEraser:
			status.SetText("Eraser")
		default:
			status.SetText("Pointer")
		}
	}

	items := []widget.ToolbarItem{
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			board.SetTool(input.ToolPen)
			showTool()
		}),
		widget.NewToolbarAction(theme.ContentRemoveIcon(), func() {
			board.SetTool(input.ToolEraser)
			showTool()
		}),
		widget.NewToolbarAction(theme.CancelIcon(), func() {
			board.SetTool(input.ToolNone)
			showTool()
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ZoomInIcon(), board.ZoomIn),
		widget.NewToolbarAction(theme.ZoomOutIcon(), board.ZoomOut),
		widget.NewToolbarAction(theme.ViewRestoreIcon(), board.ResetView),
	}
	if len(actions) > 0 {
		items = append(items, widget.NewToolbarSeparator())
		for _, a := range actions {
			items = append(items, a)
		}
	}
	tb := widget.NewToolbar(items...)

	current := board.Tool().Color
	var swatches []*colorSwatch
	onColorTapped := func(s render.Swatch) {
		board.SetColor(s.Value)
		for _, sw := range swatches {
			sw.SetSelected(sw.Swatch.Value == s.Value)
		}
	}
	colorBox := container.NewHBox()
	for _, s := range render.Palette {
		sw := newColorSwatch(s, onColorTapped)
		sw.selected = s.Value == current
		swatches = append(swatches, sw)
		colorBox.Add(sw)
	}

	labels := make([]string, len(widthLabels))
	for i, w := range widthLabels {
		labels[i] = w.label
	}
	widths := widget.NewRadioGroup(labels, func(sel string) {
		for _, w := range widthLabels {
			if w.label == sel {
				board.SetWidth(w.width)
			}
		}
	})
	widths.Horizontal = true
	for _, w := range widthLabels {
		if w.width == board.Tool().Width {
			widths.SetSelected(w.label)
		}
	}

	showTool()
	return container.NewHBox(
		tb,
		widget.NewSeparator(),
		colorBox,
		widget.NewSeparator(),
		widths,
		layout.NewSpacer(),
		status,
	)
}
