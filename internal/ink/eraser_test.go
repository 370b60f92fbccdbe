package ink

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarkBoard/internal/coords"
	"MarkBoard/internal/state"
)

// With a 1000px logical width at scale 1 the default radius is 0.03 and the
// sampling interval 0.005.
var units = coords.Units{Scale: 1, LogicalWidth: 1000}

var style = state.Style{Color: "#2680FF", Width: 4, Opacity: 1}

func pt(x, y float64) state.Point { return state.Point{X: x, Y: y} }

func mkStroke(id string, pts ...state.Point) state.Stroke {
	return state.Stroke{ID: id, Tool: state.ToolPen, Points: pts, Style: style, Timestamp: 7}
}

func line(id string, n int, y float64) state.Stroke {
	pts := make([]state.Point, n)
	for i := range pts {
		pts[i] = state.Point{X: float64(i) / float64(n), Y: y, Timestamp: int64(i)}
	}
	return mkStroke(id, pts...)
}

func TestErase_SplitsStroke(t *testing.T) {
	e := NewEraser(DefaultEraserConfig())
	strokes := state.Collection{mkStroke("s1", pt(0.1, 0.1), pt(0.2, 0.1), pt(0.3, 0.1))}

	out, changed := e.Erase([]state.Point{pt(0.2, 0.1)}, strokes, units)
	require.True(t, changed)
	require.Len(t, out, 2)

	assert.Equal(t, []state.Point{pt(0.1, 0.1)}, out[0].Points)
	assert.Equal(t, []state.Point{pt(0.3, 0.1)}, out[1].Points)
	for i, s := range out {
		assert.Equal(t, style, s.Style)
		assert.Equal(t, state.ToolPen, s.Tool)
		assert.Equal(t, int64(7), s.Timestamp)
		assert.Equal(t, state.DerivedID("s1", i), s.ID)
	}
	assert.NotEqual(t, out[0].ID, out[1].ID)
	assert.Len(t, strokes[0].Points, 3, "input collection must not be modified")
}

func TestErase_NoOp(t *testing.T) {
	e := NewEraser(DefaultEraserConfig())
	strokes := state.Collection{
		mkStroke("a", pt(0.1, 0.1), pt(0.2, 0.1), pt(0.3, 0.1)),
		line("b", 20, 0.5),
	}

	out, changed := e.Erase([]state.Point{pt(0.9, 0.9), pt(0.95, 0.85)}, strokes, units)
	assert.False(t, changed)
	assert.Nil(t, out)
}

func TestErase_FullErasureRemovesStroke(t *testing.T) {
	e := NewEraser(DefaultEraserConfig())
	strokes := state.Collection{
		mkStroke("gone", pt(0.50, 0.5), pt(0.51, 0.5), pt(0.52, 0.5)),
		mkStroke("kept", pt(0.1, 0.1), pt(0.2, 0.1)),
	}

	out, changed := e.Erase([]state.Point{pt(0.51, 0.5)}, strokes, units)
	require.True(t, changed)
	require.Len(t, out, 1)
	assert.Equal(t, "kept", out[0].ID, "untouched strokes keep their identity")
	assert.Equal(t, strokes[1].Points, out[0].Points)
}

func TestErase_SegmentCrossing(t *testing.T) {
	e := NewEraser(DefaultEraserConfig())
	// Both endpoints are far from the eraser, but the segment passes through it.
	strokes := state.Collection{mkStroke("long", pt(0.1, 0.5), pt(0.9, 0.5))}
	path := []state.Point{pt(0.5, 0.4), pt(0.5, 0.6)}

	out, changed := e.Erase(path, strokes, units)
	require.True(t, changed)
	require.Len(t, out, 1)
	assert.Equal(t, []state.Point{pt(0.1, 0.5)}, out[0].Points)
}

func TestErase_PathSegmentsCoverPointsBetweenSamples(t *testing.T) {
	e := NewEraser(DefaultEraserConfig())
	// The stroke point sits between two eraser samples that are far apart.
	strokes := state.Collection{mkStroke("s", pt(0.5, 0.2), pt(0.5, 0.5), pt(0.5, 0.8))}
	path := []state.Point{pt(0.1, 0.5), pt(0.9, 0.5)}

	out, changed := e.Erase(path, strokes, units)
	require.True(t, changed)
	require.Len(t, out, 2)
	assert.Equal(t, []state.Point{pt(0.5, 0.2)}, out[0].Points)
	assert.Equal(t, []state.Point{pt(0.5, 0.8)}, out[1].Points)
}

func TestErase_RunsPreserveOrder(t *testing.T) {
	e := NewEraser(DefaultEraserConfig())
	orig := line("l", 100, 0.3)
	path := []state.Point{pt(0.25, 0.2), pt(0.25, 0.4), pt(0.6, 0.4), pt(0.6, 0.2)}

	out, changed := e.Erase(path, state.Collection{orig}, units)
	require.True(t, changed)
	require.GreaterOrEqual(t, len(out), 2)

	last := -1
	total := 0
	for _, s := range out {
		require.NotEmpty(t, s.Points)
		start := -1
		for i, p := range orig.Points {
			if p == s.Points[0] {
				start = i
				break
			}
		}
		require.GreaterOrEqual(t, start, 0)
		assert.Greater(t, start, last, "runs must follow the original order")
		assert.Equal(t, orig.Points[start:start+len(s.Points)], s.Points)
		last = start + len(s.Points) - 1
		total += len(s.Points)
	}
	assert.Less(t, total, len(orig.Points))
}

func TestErase_RadiusScalesWithZoom(t *testing.T) {
	e := NewEraser(DefaultEraserConfig())
	strokes := state.Collection{mkStroke("s", pt(0.5, 0.5))}
	path := []state.Point{pt(0.52, 0.5)}

	// 0.02 away: inside 30px at scale 1, outside at scale 2 (radius 0.015).
	_, changed := e.Erase(path, strokes, units)
	assert.True(t, changed)
	_, changed = e.Erase(path, strokes, coords.Units{Scale: 2, LogicalWidth: 1000})
	assert.False(t, changed)
}

func TestErase_EdgeCases(t *testing.T) {
	e := NewEraser(DefaultEraserConfig())
	strokes := state.Collection{mkStroke("s", pt(0.5, 0.5))}

	t.Run("empty path", func(t *testing.T) {
		_, changed := e.Erase(nil, strokes, units)
		assert.False(t, changed)
	})
	t.Run("unmeasurable units", func(t *testing.T) {
		_, changed := e.Erase([]state.Point{pt(0.5, 0.5)}, strokes, coords.Units{})
		assert.False(t, changed)
	})
	t.Run("non-finite path points are ignored", func(t *testing.T) {
		path := []state.Point{{X: math.NaN(), Y: 0.5}, pt(0.5, 0.5)}
		out, changed := e.Erase(path, strokes, units)
		assert.True(t, changed)
		assert.Empty(t, out)
	})
	t.Run("malformed strokes alone do not trigger a change", func(t *testing.T) {
		bad := state.Collection{mkStroke("empty"), mkStroke("nan", state.Point{X: math.NaN()})}
		_, changed := e.Erase([]state.Point{pt(0.5, 0.5)}, bad, units)
		assert.False(t, changed)
	})
	t.Run("malformed strokes are dropped from a replacement", func(t *testing.T) {
		mixed := state.Collection{mkStroke("empty"), mkStroke("s", pt(0.5, 0.5)), mkStroke("far", pt(0.1, 0.1))}
		out, changed := e.Erase([]state.Point{pt(0.5, 0.5)}, mixed, units)
		require.True(t, changed)
		require.Len(t, out, 1)
		assert.Equal(t, "far", out[0].ID)
	})
}

func TestDistanceToSegment(t *testing.T) {
	a, b := pt(0, 0), pt(1, 0)
	assert.InDelta(t, 0.5, distanceToSegment(pt(0.5, 0.5), a, b), 1e-12)
	assert.InDelta(t, 1.0, distanceToSegment(pt(-1, 0), a, b), 1e-12)
	assert.InDelta(t, math.Sqrt2, distanceToSegment(pt(2, 1), a, b), 1e-12)
	assert.InDelta(t, 5.0, distanceToSegment(pt(3, 4), a, a), 1e-12)
}

func TestPath_Bounded(t *testing.T) {
	p := NewPath(50, 30)
	p.Reset(pt(0, 0))
	for i := 1; i <= 50; i++ {
		p.Add(pt(float64(i), 0))
	}
	require.Equal(t, 30, p.Len())
	assert.Equal(t, 50.0, p.Points()[29].X)
	assert.Equal(t, 21.0, p.Points()[0].X)

	p.Add(pt(51, 0))
	assert.Equal(t, 31, p.Len())

	p.Clear()
	assert.Zero(t, p.Len())
}

func TestPath_DefaultsForBadLimits(t *testing.T) {
	p := NewPath(0, 0)
	assert.Equal(t, DefaultPathLimit, p.limit)
	assert.Equal(t, DefaultPathKeep, p.keep)

	p = NewPath(10, 20)
	assert.Equal(t, 10, p.keep)
}

func TestBounds(t *testing.T) {
	b, ok := boundsOf([]state.Point{pt(0.2, 0.4), pt(0.1, 0.9), pt(0.3, 0.5)})
	require.True(t, ok)
	assert.Equal(t, box{0.1, 0.4, 0.3, 0.9}, b)

	_, ok = boundsOf(nil)
	assert.False(t, ok)

	far := box{0.5, 0.5, 0.6, 0.6}
	assert.False(t, b.overlaps(far))
	assert.True(t, b.pad(0.25).overlaps(far))
}
