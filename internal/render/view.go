package render

import "MarkBoard/internal/state"

// View binds a renderer to one surface and a stroke source, so callers can
// repaint without knowing where strokes live.
type View struct {
	Renderer *Renderer
	Surface  Surface
	Strokes  func() state.Collection
	// Offset returns the translation from container space to surface space.
	Offset func() (x, y float64)
}

// Paint repaints the surface with the current strokes and optional live
// gesture.
func (v *View) Paint(live *Live) {
	f := Frame{Live: live}
	if v.Strokes != nil {
		f.Strokes = v.Strokes()
	}
	if v.Offset != nil {
		f.OffsetX, f.OffsetY = v.Offset()
	}
	v.Renderer.Repaint(v.Surface, f)
}
