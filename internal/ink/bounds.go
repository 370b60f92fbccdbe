package ink

import "MarkBoard/internal/state"

// box is an axis-aligned bounding box in logical coordinates.
type box struct {
	minX, minY, maxX, maxY float64
}

func boundsOf(points []state.Point) (box, bool) {
	if len(points) == 0 {
		return box{}, false
	}
	b := box{points[0].X, points[0].Y, points[0].X, points[0].Y}
	for _, p := range points[1:] {
		if p.X < b.minX {
			b.minX = p.X
		}
		if p.X > b.maxX {
			b.maxX = p.X
		}
		if p.Y < b.minY {
			b.minY = p.Y
		}
		if p.Y > b.maxY {
			b.maxY = p.Y
		}
	}
	return b, true
}

func (b box) pad(d float64) box {
	return box{b.minX - d, b.minY - d, b.maxX + d, b.maxY + d}
}

func (b box) overlaps(o box) bool {
	return !(b.maxX < o.minX || o.maxX < b.minX || b.maxY < o.minY || o.maxY < b.minY)
}
