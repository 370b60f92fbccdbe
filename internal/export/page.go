// Package export paints a stroke collection onto snapshot surfaces: PNG
// images and PDF pages sized to the content's logical size.
package export

import (
	"errors"

	"MarkBoard/internal/render"
	"MarkBoard/internal/state"
)

var ErrEmptyPage = errors.New("export: page has no area")

// Page projects logical points onto a page of the content's logical size.
type Page struct {
	Width, Height float64
}

func (p Page) ToAbsolute(pt state.Point) (state.Point, bool) {
	if !pt.Valid() || p.Width <= 0 || p.Height <= 0 {
		return state.Point{}, false
	}
	return state.Point{X: pt.X * p.Width, Y: pt.Y * p.Height, Timestamp: pt.Timestamp}, true
}

func (p Page) valid() bool { return p.Width >= 1 && p.Height >= 1 }

func paint(s render.Surface, page Page, strokes state.Collection) {
	render.NewRenderer(page).Repaint(s, render.Frame{Strokes: strokes})
}
