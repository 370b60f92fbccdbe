package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarkBoard/internal/coords"
	"MarkBoard/internal/ink"
	"MarkBoard/internal/render"
	"MarkBoard/internal/state"
)

type paintLog struct {
	calls int
	lives []*render.Live
}

func (p *paintLog) Paint(live *render.Live) {
	p.calls++
	p.lives = append(p.lives, live)
}

// harness wires a dispatcher to a 1000x1000 container at the viewport
// origin, so viewport pixel (100, 250) is logical (0.1, 0.25).
type harness struct {
	d         *Dispatcher
	paint     *paintLog
	strokes   state.Collection
	completed []state.Stroke
	changes   []state.Collection
	starts    int
	frames    int
	measured  bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{paint: &paintLog{}, measured: true}
	surface := coords.SurfaceFunc(func() (coords.Layout, bool) {
		if !h.measured {
			return coords.Layout{}, false
		}
		return coords.Layout{
			Container:    coords.Rect{Width: 1000, Height: 1000},
			ScrollWidth:  1000,
			ScrollHeight: 1000,
		}, true
	})
	ids := 0
	h.d = NewDispatcher(Options{
		Mapper:  coords.NewMapper(surface, coords.WithClock(func() int64 { return 1 })),
		Painter: h.paint,
		Strokes: func() state.Collection { return h.strokes },
		Recorder: ink.NewRecorder(func() int64 { return 1 }, func() string {
			ids++
			return "stroke-" + string(rune('0'+ids))
		}),
	}, Handlers{
		OnStrokeComplete: func(s state.Stroke) {
			h.completed = append(h.completed, s)
			h.strokes = append(h.strokes.Clone(), s)
		},
		OnStrokesChange: func(c state.Collection) {
			h.changes = append(h.changes, c)
			h.strokes = c
		},
		OnDrawingStart: func() { h.starts++ },
		OnFrame:        func() { h.frames++ },
	})
	return h
}

var (
	pen    = Config{Tool: ToolPen, Width: ink.WidthMedium, Color: "#2680FF"}
	eraser = Config{Tool: ToolEraser}
)

func down(x, y float64) Event { return Event{Kind: PointerDown, X: x, Y: y, OnSurface: true} }
func move(x, y float64) Event { return Event{Kind: PointerMove, X: x, Y: y, OnSurface: true} }
func up() Event               { return Event{Kind: PointerUp, OnSurface: true} }

func TestDispatch_PenGesture(t *testing.T) {
	h := newHarness(t)

	assert.True(t, h.d.Dispatch(down(100, 100), pen))
	assert.True(t, h.d.Active())
	assert.True(t, h.d.Dispatch(move(200, 100), pen))
	assert.True(t, h.d.Dispatch(move(300, 100), pen))
	assert.True(t, h.d.Dispatch(up(), pen))
	assert.False(t, h.d.Active())

	require.Len(t, h.completed, 1)
	s := h.completed[0]
	assert.Equal(t, "stroke-1", s.ID)
	assert.Equal(t, state.Style{Color: "#2680FF", Width: 4, Opacity: 1}, s.Style)
	require.Len(t, s.Points, 3)
	assert.InDelta(t, 0.1, s.Points[0].X, 1e-12)
	assert.InDelta(t, 0.3, s.Points[2].X, 1e-12)
	assert.Equal(t, 1, h.starts)

	// Every handled event repaints; the live gesture is shown until commit.
	assert.Equal(t, 4, h.paint.calls)
	assert.Equal(t, 4, h.frames)
	require.NotNil(t, h.paint.lives[2])
	assert.Len(t, h.paint.lives[2].Points, 3)
	assert.Nil(t, h.paint.lives[3])
}

func TestDispatch_InterruptionCommitsPartialStroke(t *testing.T) {
	h := newHarness(t)

	h.d.Dispatch(down(100, 100), pen)
	h.d.Dispatch(move(150, 100), pen)
	foreign := move(900, 900)
	foreign.OnSurface = false
	assert.False(t, h.d.Dispatch(foreign, pen))

	require.Len(t, h.completed, 1)
	assert.Len(t, h.completed[0].Points, 2)
	assert.False(t, h.d.Active())

	// The rest of the gesture is ignored.
	assert.False(t, h.d.Dispatch(move(160, 100), pen))
	assert.False(t, h.d.Dispatch(up(), pen))
	assert.Len(t, h.completed, 1)
}

func TestDispatch_PointerLeaveFinishes(t *testing.T) {
	h := newHarness(t)
	h.d.Dispatch(down(100, 100), pen)
	assert.True(t, h.d.Dispatch(Event{Kind: PointerLeave}, pen))
	assert.Len(t, h.completed, 1)
}

func TestDispatch_NoTool(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.d.Dispatch(down(100, 100), Config{}))
	assert.False(t, h.d.Dispatch(move(200, 100), Config{}))
	assert.False(t, h.d.Dispatch(up(), Config{}))
	assert.Zero(t, h.paint.calls)
}

func TestDispatch_UnmeasurableSurfaceSkipsPoint(t *testing.T) {
	h := newHarness(t)
	h.measured = false

	assert.True(t, h.d.Dispatch(down(100, 100), pen))
	assert.False(t, h.d.Active())
	assert.False(t, h.d.Dispatch(up(), pen))
	assert.Empty(t, h.completed)

	h.measured = true
	h.d.Dispatch(down(100, 100), pen)
	h.measured = false
	assert.True(t, h.d.Dispatch(move(200, 100), pen))
	h.measured = true
	h.d.Dispatch(up(), pen)
	require.Len(t, h.completed, 1)
	assert.Len(t, h.completed[0].Points, 1)
}

func TestDispatch_EraserSplitsStroke(t *testing.T) {
	h := newHarness(t)
	h.strokes = state.Collection{{
		ID:     "s",
		Tool:   state.ToolPen,
		Points: []state.Point{{X: 0.1, Y: 0.1}, {X: 0.2, Y: 0.1}, {X: 0.3, Y: 0.1}},
		Style:  state.Style{Color: "#000000", Width: 2, Opacity: 1},
	}}

	assert.True(t, h.d.Dispatch(down(200, 100), eraser))
	require.Len(t, h.changes, 1)
	require.Len(t, h.strokes, 2)
	assert.Equal(t, []state.Point{{X: 0.1, Y: 0.1}}, h.strokes[0].Points)
	assert.Equal(t, []state.Point{{X: 0.3, Y: 0.1}}, h.strokes[1].Points)

	// Moving over empty space changes nothing and emits nothing.
	assert.True(t, h.d.Dispatch(move(200, 600), eraser))
	assert.True(t, h.d.Dispatch(up(), eraser))
	assert.Len(t, h.changes, 1)
	assert.Empty(t, h.completed)
	assert.Nil(t, h.paint.lives[0], "eraser gestures have no live stroke")
}

func TestDispatch_EraserMovesAccumulatePath(t *testing.T) {
	h := newHarness(t)
	h.strokes = state.Collection{{
		ID:     "v",
		Tool:   state.ToolPen,
		Points: []state.Point{{X: 0.5, Y: 0.2}, {X: 0.5, Y: 0.8}},
		Style:  state.Style{Color: "#000000", Width: 2, Opacity: 1},
	}}

	// Neither press point touches the stroke; the dragged segment crosses it.
	h.d.Dispatch(down(300, 500), eraser)
	assert.Empty(t, h.changes)
	h.d.Dispatch(move(700, 500), eraser)
	require.Len(t, h.changes, 1)
	require.Len(t, h.strokes, 1)
	assert.Equal(t, []state.Point{{X: 0.5, Y: 0.2}}, h.strokes[0].Points)
}

func TestDispatch_TwoFingerTouchPassesThrough(t *testing.T) {
	h := newHarness(t)
	two := []Contact{{X: 100, Y: 100}, {X: 200, Y: 200}}

	assert.False(t, h.d.Dispatch(Event{Kind: TouchStart, Touches: two, OnSurface: true}, pen))
	assert.False(t, h.d.Active())

	one := []Contact{{X: 100, Y: 100}}
	assert.True(t, h.d.Dispatch(Event{Kind: TouchStart, Touches: one, OnSurface: true}, pen))
	assert.True(t, h.d.Dispatch(Event{Kind: TouchMove, Touches: []Contact{{X: 120, Y: 100}}, OnSurface: true}, pen))

	// A second finger ends the stroke and hands the gesture to the UI.
	assert.False(t, h.d.Dispatch(Event{Kind: TouchMove, Touches: two, OnSurface: true}, pen))
	require.Len(t, h.completed, 1)
	assert.Len(t, h.completed[0].Points, 2)
	assert.False(t, h.d.Active())
}

func TestDispatch_TouchUsesFirstContact(t *testing.T) {
	h := newHarness(t)
	h.d.Dispatch(Event{Kind: TouchStart, X: 999, Y: 999, Touches: []Contact{{X: 400, Y: 250}}, OnSurface: true}, pen)
	h.d.Dispatch(Event{Kind: TouchEnd}, pen)

	require.Len(t, h.completed, 1)
	assert.InDelta(t, 0.4, h.completed[0].Points[0].X, 1e-12)
	assert.InDelta(t, 0.25, h.completed[0].Points[0].Y, 1e-12)
}

func TestDispatch_StyleSnapshotAtCommit(t *testing.T) {
	h := newHarness(t)
	h.d.Dispatch(down(100, 100), pen)

	thick := Config{Tool: ToolPen, Width: ink.WidthThick, Color: "#E47900"}
	h.d.Dispatch(up(), thick)

	require.Len(t, h.completed, 1)
	assert.Equal(t, state.Style{Color: "#E47900", Width: 6, Opacity: 1}, h.completed[0].Style)
}

func TestDispatch_NewPressFinishesPreviousGesture(t *testing.T) {
	h := newHarness(t)
	h.d.Dispatch(down(100, 100), pen)
	h.d.Dispatch(down(500, 500), pen)
	h.d.Dispatch(up(), pen)

	require.Len(t, h.completed, 2)
	assert.Equal(t, 2, h.starts)
}

func TestDispatch_SetEraser(t *testing.T) {
	h := newHarness(t)
	h.strokes = state.Collection{{
		ID:     "s",
		Tool:   state.ToolPen,
		Points: []state.Point{{X: 0.5, Y: 0.5}},
		Style:  state.Style{Color: "#000000", Width: 2, Opacity: 1},
	}}

	cfg := ink.DefaultEraserConfig()
	cfg.RadiusPx = 5
	h.d.SetEraser(ink.NewEraser(cfg))

	h.d.Dispatch(down(520, 500), eraser)
	assert.Empty(t, h.changes, "20px away is outside a 5px radius")
	h.d.Dispatch(up(), eraser)
}
