package ink

import "MarkBoard/internal/state"

// Path is the bounded point history of an eraser gesture. Once it grows
// past limit it is cut back to the keep most recent points.
type Path struct {
	points []state.Point
	limit  int
	keep   int
}

func NewPath(limit, keep int) *Path {
	if limit <= 0 {
		limit = DefaultPathLimit
	}
	if keep <= 0 || keep > limit {
		keep = min(DefaultPathKeep, limit)
	}
	return &Path{limit: limit, keep: keep}
}

// Reset starts a new gesture at p.
func (p *Path) Reset(start state.Point) {
	p.points = append(p.points[:0], start)
}

func (p *Path) Add(pt state.Point) {
	p.points = append(p.points, pt)
	if len(p.points) > p.limit {
		n := copy(p.points, p.points[len(p.points)-p.keep:])
		p.points = p.points[:n]
	}
}

func (p *Path) Clear() { p.points = p.points[:0] }

func (p *Path) Len() int { return len(p.points) }

// Points returns the retained points. The slice is only valid until the
// next Add or Reset.
func (p *Path) Points() []state.Point { return p.points }
