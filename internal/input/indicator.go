package input

import "MarkBoard/internal/coords"

type HoverKind int

const (
	HoverMove HoverKind = iota
	HoverTouch
	HoverEnd
	HoverLeave
)

// Hover is a pointer observation from anywhere in the window, not only the
// drawing surface.
type Hover struct {
	Kind     HoverKind
	X, Y     float64
	Contacts int
}

// PointerSource delivers hover observations until unsubscribed.
type PointerSource interface {
	Subscribe(fn func(Hover)) (unsubscribe func())
}

// Indicator tracks where the eraser cursor should be drawn. All methods are
// safe on a nil *Indicator.
type Indicator struct {
	container func() (coords.Rect, bool)
	onChange  func(x, y float64, visible bool)

	x, y    float64
	visible bool
	release func()
}

// NewIndicator creates an indicator confined to the container rectangle.
// onChange is called whenever position or visibility changes.
func NewIndicator(container func() (coords.Rect, bool), onChange func(x, y float64, visible bool)) *Indicator {
	return &Indicator{container: container, onChange: onChange}
}

// Position returns the last shown position and whether it is visible.
func (ind *Indicator) Position() (x, y float64, visible bool) {
	if ind == nil {
		return 0, 0, false
	}
	return ind.x, ind.y, ind.visible
}

func (ind *Indicator) Show(x, y float64) {
	if ind == nil || (ind.visible && ind.x == x && ind.y == y) {
		return
	}
	ind.x, ind.y, ind.visible = x, y, true
	ind.notify()
}

func (ind *Indicator) Hide() {
	if ind == nil || !ind.visible {
		return
	}
	ind.visible = false
	ind.notify()
}

func (ind *Indicator) notify() {
	if ind.onChange != nil {
		ind.onChange(ind.x, ind.y, ind.visible)
	}
}

// Track keeps a subscription on src while tool is the eraser and releases
// it, hiding the indicator, for any other tool.
func (ind *Indicator) Track(tool Tool, src PointerSource) {
	if ind == nil {
		return
	}
	if tool != ToolEraser {
		ind.Close()
		return
	}
	if ind.release != nil || src == nil {
		return
	}
	ind.release = src.Subscribe(ind.handle)
}

// Close releases any subscription and hides the indicator.
func (ind *Indicator) Close() {
	if ind == nil {
		return
	}
	if ind.release != nil {
		ind.release()
		ind.release = nil
	}
	ind.Hide()
}

func (ind *Indicator) handle(h Hover) {
	switch h.Kind {
	case HoverEnd, HoverLeave:
		ind.Hide()
		return
	case HoverTouch:
		if h.Contacts != 1 {
			ind.Hide()
			return
		}
	}
	if ind.inside(h.X, h.Y) {
		ind.Show(h.X, h.Y)
	} else {
		ind.Hide()
	}
}

func (ind *Indicator) inside(x, y float64) bool {
	if ind.container == nil {
		return false
	}
	r, ok := ind.container()
	return ok && r.Contains(x, y)
}
