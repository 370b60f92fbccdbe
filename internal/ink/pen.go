// Package ink captures pen gestures into strokes and erases parts of
// existing strokes along an eraser path.
package ink

import "MarkBoard/internal/state"

// WidthCategory is the discrete pen width selection.
type WidthCategory string

const (
	WidthThin   WidthCategory = "thin"
	WidthMedium WidthCategory = "medium"
	WidthThick  WidthCategory = "thick"
)

// DefaultWidth applies to any category missing from a WidthTable.
const DefaultWidth = 3.0

// WidthTable resolves categories to stroke widths in pixels.
type WidthTable map[WidthCategory]float64

func DefaultWidths() WidthTable {
	return WidthTable{
		WidthThin:   2,
		WidthMedium: 4,
		WidthThick:  6,
	}
}

func (t WidthTable) Resolve(c WidthCategory) float64 {
	if w, ok := t[c]; ok && w > 0 {
		return w
	}
	return DefaultWidth
}

// Pen is the active pen selection at the moment a stroke is committed.
type Pen struct {
	Color  string
	Width  WidthCategory
	Widths WidthTable
}

// Style snapshots the pen.
func (p Pen) Style() state.Style {
	widths := p.Widths
	if widths == nil {
		widths = DefaultWidths()
	}
	return state.Style{
		Color:   p.Color,
		Width:   widths.Resolve(p.Width),
		Opacity: 1,
	}
}
