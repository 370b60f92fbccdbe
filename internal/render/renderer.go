// Package render repaints a drawing surface from a stroke collection.
package render

import (
	"image/color"

	"MarkBoard/internal/logger"
	"MarkBoard/internal/state"
)

// Paint is the resolved style for one path.
type Paint struct {
	Color color.NRGBA
	Width float64
}

// Surface is a 2D drawing target with round caps and joins. Coordinates are
// pixels in the surface's own space.
type Surface interface {
	Clear()
	SetPaint(p Paint)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadTo(cx, cy, x, y float64)
	// Stroke paints the current path and starts a new one.
	Stroke()
	// Dot fills a circle with the current paint colour.
	Dot(x, y, r float64)
}

// Projector maps logical points to container pixels.
type Projector interface {
	ToAbsolute(p state.Point) (state.Point, bool)
}

// Live is the gesture still in progress.
type Live struct {
	Points []state.Point
	Style  state.Style
}

// Frame is everything painted in one repaint.
type Frame struct {
	Strokes state.Collection
	Live    *Live

	// OffsetX and OffsetY are added to every projected point, to move from
	// container space to the surface's own space.
	OffsetX, OffsetY float64
}

type Renderer struct {
	proj Projector
}

func NewRenderer(proj Projector) *Renderer {
	return &Renderer{proj: proj}
}

// Repaint clears s and paints f onto it. Committed strokes are smoothed
// with quadratic segments; the live gesture is drawn as a polyline.
func (r *Renderer) Repaint(s Surface, f Frame) {
	s.Clear()
	skipped := 0
	for _, st := range f.Strokes {
		if !r.paintStroke(s, st, f) {
			skipped++
		}
	}
	if skipped > 0 {
		logger.For("render").Debug("strokes skipped", "count", skipped)
	}
	if f.Live != nil {
		r.paintLive(s, *f.Live, f)
	}
}

func (r *Renderer) project(p state.Point, f Frame) (x, y float64, ok bool) {
	abs, ok := r.proj.ToAbsolute(p)
	if !ok {
		return 0, 0, false
	}
	return abs.X + f.OffsetX, abs.Y + f.OffsetY, true
}

func paintFor(style state.Style) (Paint, bool) {
	c, ok := ParseColor(style.Color)
	if !ok || style.Width <= 0 {
		return Paint{}, false
	}
	return Paint{Color: withOpacity(c, style.Opacity), Width: style.Width}, true
}

func (r *Renderer) paintStroke(s Surface, st state.Stroke, f Frame) bool {
	if len(st.Points) == 0 {
		return false
	}
	paint, ok := paintFor(st.Style)
	if !ok {
		return false
	}
	s.SetPaint(paint)

	if len(st.Points) == 1 {
		x, y, ok := r.project(st.Points[0], f)
		if !ok {
			return false
		}
		s.Dot(x, y, paint.Width/2)
		return true
	}

	started := false
	for i := 1; i < len(st.Points); i++ {
		px, py, ok := r.project(st.Points[i-1], f)
		if !ok {
			continue
		}
		x, y, ok := r.project(st.Points[i], f)
		if !ok {
			continue
		}
		if !started {
			s.MoveTo(px, py)
			started = true
		}
		s.QuadTo(px, py, (px+x)/2, (py+y)/2)
	}
	if !started {
		return false
	}
	s.Stroke()
	return true
}

func (r *Renderer) paintLive(s Surface, l Live, f Frame) {
	paint, ok := paintFor(l.Style)
	if !ok || len(l.Points) == 0 {
		return
	}
	s.SetPaint(paint)

	if len(l.Points) == 1 {
		if x, y, ok := r.project(l.Points[0], f); ok {
			s.Dot(x, y, paint.Width/2)
		}
		return
	}

	started := false
	for _, p := range l.Points {
		x, y, ok := r.project(p, f)
		if !ok {
			continue
		}
		if !started {
			s.MoveTo(x, y)
			started = true
			continue
		}
		s.LineTo(x, y)
	}
	if started {
		s.Stroke()
	}
}
