// Package coords maps viewport positions to the logical coordinate space
// of the content surface and back.
//
// Logical coordinates are fractions of the content's untransformed size, so
// a point keeps its place on the content while the viewport is resized,
// scrolled or zoomed.
package coords

import (
	"math"

	"MarkBoard/internal/state"
)

// Rect is an axis-aligned box in viewport pixels.
type Rect struct {
	Left, Top, Width, Height float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Left+r.Width && y >= r.Top && y <= r.Top+r.Height
}

// Content describes the annotated content inside the container.
type Content struct {
	Rect         Rect
	ScrollHeight float64
}

// Layout is a snapshot of the surface geometry.
type Layout struct {
	Container    Rect
	ScrollLeft   float64
	ScrollTop    float64
	ScrollWidth  float64
	ScrollHeight float64
	ClientWidth  float64
	ClientHeight float64

	// Content is nil when no separate content surface is configured.
	Content *Content
}

// Surface answers geometry queries. ok is false while nothing is mounted.
type Surface interface {
	Layout() (layout Layout, ok bool)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func() (Layout, bool)

func (f SurfaceFunc) Layout() (Layout, bool) { return f() }

// Size is the untransformed content size in pixels.
type Size struct {
	Width, Height float64
}

func (s Size) Zero() bool { return s.Width == 0 || s.Height == 0 }

// Units carries what is needed to turn pixel distances into logical ones.
type Units struct {
	Scale        float64
	LogicalWidth float64
}

// Logical converts a physical pixel distance to logical units. It returns
// 0 when the surface cannot be measured.
func (u Units) Logical(px float64) float64 {
	if u.Scale <= 0 || u.LogicalWidth <= 0 {
		return 0
	}
	return px / u.Scale / u.LogicalWidth
}

type Option func(*Mapper)

// WithLogicalWidth fixes the content's untransformed width. Zero means the
// size falls back to the container metrics.
func WithLogicalWidth(w float64) Option {
	return func(m *Mapper) { m.logicalWidth = w }
}

func WithScale(s float64) Option {
	return func(m *Mapper) { m.scale = s }
}

func WithClock(c state.Clock) Option {
	return func(m *Mapper) { m.clock = c }
}

// Mapper converts between viewport and logical coordinates.
type Mapper struct {
	surface      Surface
	logicalWidth float64
	scale        float64
	clock        state.Clock
}

func NewMapper(surface Surface, opts ...Option) *Mapper {
	m := &Mapper{
		surface: surface,
		scale:   1,
		clock:   state.SystemClock,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Mapper) Scale() float64 { return m.scale }

func (m *Mapper) SetScale(s float64) { m.scale = s }

func (m *Mapper) SetLogicalWidth(w float64) { m.logicalWidth = w }

func (m *Mapper) layout() (Layout, bool) {
	if m.surface == nil {
		return Layout{}, false
	}
	return m.surface.Layout()
}

// LogicalSize returns the content's untransformed size, or a zero Size when
// it cannot be measured yet.
func (m *Mapper) LogicalSize() Size {
	l, ok := m.layout()
	if !ok {
		return Size{}
	}
	return m.logicalSize(l)
}

func (m *Mapper) logicalSize(l Layout) Size {
	if l.Content == nil || m.logicalWidth <= 0 {
		w := l.ScrollWidth
		if w == 0 {
			w = l.ClientWidth
		}
		h := l.ScrollHeight
		if h == 0 {
			h = l.ClientHeight
		}
		return finiteSize(w, h)
	}
	if m.scale <= 0 {
		return Size{}
	}
	return finiteSize(m.logicalWidth, l.Content.ScrollHeight/m.scale)
}

func finiteSize(w, h float64) Size {
	if !finite(w) || !finite(h) || w < 0 || h < 0 {
		return Size{}
	}
	return Size{Width: w, Height: h}
}

// contentOffset is the content's top-left relative to the container's
// scrolled origin.
func contentOffset(l Layout) (x, y float64) {
	if l.Content == nil {
		return 0, 0
	}
	x = l.Content.Rect.Left - l.Container.Left + l.ScrollLeft
	y = l.Content.Rect.Top - l.Container.Top + l.ScrollTop
	return x, y
}

// Units reports the scale and logical width used for tolerance conversion.
func (m *Mapper) Units() Units {
	return Units{Scale: m.scale, LogicalWidth: m.LogicalSize().Width}
}

// ToLogical maps a viewport position to logical coordinates and stamps it
// with the current time. ok is false while the surface is unmeasurable.
func (m *Mapper) ToLogical(vx, vy float64) (state.Point, bool) {
	if !finite(vx) || !finite(vy) {
		return state.Point{}, false
	}
	l, ok := m.layout()
	if !ok {
		return state.Point{}, false
	}
	size := m.logicalSize(l)
	if size.Zero() {
		return state.Point{}, false
	}
	absX := vx - l.Container.Left + l.ScrollLeft
	absY := vy - l.Container.Top + l.ScrollTop
	ox, oy := contentOffset(l)

	return state.Point{
		X:         (absX - ox) / size.Width,
		Y:         (absY - oy) / size.Height,
		Timestamp: m.clock(),
	}, true
}

// ToAbsolute maps a logical point to container pixels, scroll included.
func (m *Mapper) ToAbsolute(p state.Point) (state.Point, bool) {
	if !p.Valid() {
		return state.Point{}, false
	}
	l, ok := m.layout()
	if !ok {
		return state.Point{}, false
	}
	size := m.logicalSize(l)
	if size.Zero() {
		return state.Point{}, false
	}
	ox, oy := contentOffset(l)
	return state.Point{
		X:         p.X*size.Width + ox,
		Y:         p.Y*size.Height + oy,
		Timestamp: p.Timestamp,
	}, true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ToViewport is the exact inverse of ToLogical: it maps a logical point
// back to viewport coordinates under the current scroll position.
func (m *Mapper) ToViewport(p state.Point) (state.Point, bool) {
	abs, ok := m.ToAbsolute(p)
	if !ok {
		return state.Point{}, false
	}
	l, _ := m.layout()
	abs.X += l.Container.Left - l.ScrollLeft
	abs.Y += l.Container.Top - l.ScrollTop
	return abs, true
}
