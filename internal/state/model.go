package state

import "math"

// Point is a position in logical coordinates: fractions of the content
// surface's untransformed width and height. Values outside [0,1] address
// the padding above (negative) or below (>1) the content.
type Point struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Timestamp int64   `json:"timestamp"`
}

// Valid reports whether both coordinates are finite numbers.
func (p Point) Valid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

type Tool string

const ToolPen Tool = "pen"

// Style is the pen snapshot taken when a stroke is committed.
type Style struct {
	Color   string  `json:"color"`
	Width   float64 `json:"width"`
	Opacity float64 `json:"opacity"`
}

// Stroke is one committed pen gesture. It is never modified after commit;
// erasure replaces it with new strokes.
type Stroke struct {
	ID        string  `json:"id"`
	Tool      Tool    `json:"tool"`
	Points    []Point `json:"points"`
	Style     Style   `json:"style"`
	Timestamp int64   `json:"timestamp"`
}

// Valid reports whether the stroke has at least one point and every point
// is usable.
func (s Stroke) Valid() bool {
	if len(s.Points) == 0 {
		return false
	}
	for _, p := range s.Points {
		if !p.Valid() {
			return false
		}
	}
	return true
}

// Collection is the ordered stroke list owned by the caller.
type Collection []Stroke

// Clone returns a copy of the collection. Point slices are shared since
// strokes are immutable.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// PointCount returns the total number of points across all strokes.
func (c Collection) PointCount() int {
	n := 0
	for _, s := range c {
		n += len(s.Points)
	}
	return n
}
