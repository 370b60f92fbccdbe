package ink

import (
	"math"

	"MarkBoard/internal/coords"
	"MarkBoard/internal/logger"
	"MarkBoard/internal/state"
)

const (
	DefaultRadiusPx        = 30.0
	DefaultSampleSpacingPx = 5.0
	DefaultMinSamples      = 10
	DefaultPathLimit       = 50
	DefaultPathKeep        = 30
)

// EraserConfig holds the eraser's tuning values. Distances are in physical
// pixels and are converted to logical units on every pass.
type EraserConfig struct {
	RadiusPx        float64
	SampleSpacingPx float64
	MinSamples      int
	PathLimit       int
	PathKeep        int
}

func DefaultEraserConfig() EraserConfig {
	return EraserConfig{
		RadiusPx:        DefaultRadiusPx,
		SampleSpacingPx: DefaultSampleSpacingPx,
		MinSamples:      DefaultMinSamples,
		PathLimit:       DefaultPathLimit,
		PathKeep:        DefaultPathKeep,
	}
}

// Eraser removes the parts of strokes touched by an eraser path.
type Eraser struct {
	cfg EraserConfig
}

func NewEraser(cfg EraserConfig) *Eraser {
	if cfg.MinSamples < 1 {
		cfg.MinSamples = 1
	}
	return &Eraser{cfg: cfg}
}

func (e *Eraser) Config() EraserConfig { return e.cfg }

// NewPath returns an empty eraser path bounded by the configured limits.
func (e *Eraser) NewPath() *Path {
	return NewPath(e.cfg.PathLimit, e.cfg.PathKeep)
}

// Erase applies path to strokes. When at least one stroke lost a point or
// was split it returns the replacement collection and true; otherwise it
// returns nil and false and the input must be kept as is.
//
// Malformed strokes are left out of a replacement but never cause one on
// their own.
func (e *Eraser) Erase(path []state.Point, strokes state.Collection, u coords.Units) (state.Collection, bool) {
	if len(path) == 0 || len(strokes) == 0 {
		return nil, false
	}
	hit := newHitTester(path, u.Logical(e.cfg.RadiusPx), u.Logical(e.cfg.SampleSpacingPx), e.cfg.MinSamples)
	if hit == nil {
		return nil, false
	}

	out := make(state.Collection, 0, len(strokes))
	changed, dropped := false, 0
	for _, s := range strokes {
		if !s.Valid() {
			dropped++
			continue
		}
		runs, didChange := hit.split(s.Points)
		if !didChange {
			out = append(out, s)
			continue
		}
		changed = true
		for i, run := range runs {
			d := s
			d.ID = state.DerivedID(s.ID, i)
			d.Points = run
			out = append(out, d)
		}
	}
	if !changed {
		return nil, false
	}
	logger.For("eraser").Debug("erase pass changed strokes",
		"before", len(strokes), "after", len(out), "dropped", dropped)
	return out, true
}

type hitTester struct {
	path       []state.Point
	reach      box
	radius     float64
	interval   float64
	minSamples int
}

func newHitTester(path []state.Point, radius, interval float64, minSamples int) *hitTester {
	if radius <= 0 || interval <= 0 {
		return nil
	}
	valid := make([]state.Point, 0, len(path))
	for _, p := range path {
		if p.Valid() {
			valid = append(valid, p)
		}
	}
	b, ok := boundsOf(valid)
	if !ok {
		return nil
	}
	return &hitTester{
		path:       valid,
		reach:      b.pad(radius),
		radius:     radius,
		interval:   interval,
		minSamples: minSamples,
	}
}

// near reports whether p lies strictly within the radius of the path.
func (h *hitTester) near(p state.Point) bool {
	if len(h.path) == 1 {
		return math.Hypot(p.X-h.path[0].X, p.Y-h.path[0].Y) < h.radius
	}
	for i := 0; i+1 < len(h.path); i++ {
		if distanceToSegment(p, h.path[i], h.path[i+1]) < h.radius {
			return true
		}
	}
	return false
}

// crosses samples the stroke segment a→b for contact with the path.
func (h *hitTester) crosses(a, b state.Point) bool {
	length := math.Hypot(b.X-a.X, b.Y-a.Y)
	samples := max(h.minSamples, int(math.Ceil(length/h.interval)))
	for i := 0; i <= samples; i++ {
		t := float64(i) / float64(samples)
		if h.near(state.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}) {
			return true
		}
	}
	return false
}

// split partitions points into the maximal runs that survive the path.
// changed is false when the stroke comes through whole.
func (h *hitTester) split(points []state.Point) (runs [][]state.Point, changed bool) {
	if b, _ := boundsOf(points); !b.overlaps(h.reach) {
		return nil, false
	}

	start := -1
	prevNear := false
	for i, p := range points {
		isNear := h.near(p)
		erased := isNear
		if !erased && i > 0 && !prevNear {
			erased = h.crosses(points[i-1], p)
		}
		prevNear = isNear

		if erased {
			if start >= 0 {
				runs = append(runs, clonePoints(points[start:i]))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		runs = append(runs, clonePoints(points[start:]))
	}
	changed = len(runs) != 1 || len(runs[0]) != len(points)
	return runs, changed
}

func clonePoints(p []state.Point) []state.Point {
	return append([]state.Point(nil), p...)
}

// distanceToSegment is the distance from p to the closest point of a→b.
// A zero-length segment measures to a.
func distanceToSegment(p, a, b state.Point) float64 {
	cx, cy := b.X-a.X, b.Y-a.Y
	lenSq := cx*cx + cy*cy
	t := -1.0
	if lenSq != 0 {
		t = ((p.X-a.X)*cx + (p.Y-a.Y)*cy) / lenSq
	}
	var x, y float64
	switch {
	case t < 0:
		x, y = a.X, a.Y
	case t > 1:
		x, y = b.X, b.Y
	default:
		x, y = a.X+t*cx, a.Y+t*cy
	}
	return math.Hypot(p.X-x, p.Y-y)
}
