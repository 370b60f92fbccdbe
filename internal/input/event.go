// Package input routes pointer and touch events to the stroke recorder or
// the eraser, depending on the active tool.
package input

import "MarkBoard/internal/ink"

type Tool string

const (
	ToolNone   Tool = ""
	ToolPen    Tool = "pen"
	ToolEraser Tool = "eraser"
)

func (t Tool) Active() bool { return t == ToolPen || t == ToolEraser }

// Config is the tool selection in effect for one event.
type Config struct {
	Tool  Tool
	Width ink.WidthCategory
	Color string
}

type Kind int

const (
	PointerDown Kind = iota
	PointerMove
	PointerUp
	// PointerLeave is sent when the pointer leaves the surface.
	PointerLeave
	TouchStart
	TouchMove
	TouchEnd
)

func (k Kind) touch() bool {
	return k == TouchStart || k == TouchMove || k == TouchEnd
}

var kindNames = [...]string{"pointer-down", "pointer-move", "pointer-up", "pointer-leave", "touch-start", "touch-move", "touch-end"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Contact is one finger on a touch screen, in viewport coordinates.
type Contact struct {
	X, Y float64
}

// Event is a raw input event in viewport coordinates.
type Event struct {
	Kind Kind
	X, Y float64
	// Touches lists the active contacts of a touch event.
	Touches []Contact
	// OnSurface is false when the element under the input is not the
	// drawing surface.
	OnSurface bool
}

// Position is the event's primary location: the first contact for touch
// events, X/Y otherwise.
func (e Event) Position() (x, y float64) {
	if e.Kind.touch() && len(e.Touches) > 0 {
		return e.Touches[0].X, e.Touches[0].Y
	}
	return e.X, e.Y
}
