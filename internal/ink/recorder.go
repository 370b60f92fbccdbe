package ink

import "MarkBoard/internal/state"

type RecorderState int

const (
	Idle RecorderState = iota
	Drawing
)

func (s RecorderState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	default:
		return "unknown"
	}
}

// Recorder turns one pen gesture into a stroke.
type Recorder struct {
	state  RecorderState
	points []state.Point
	clock  state.Clock
	ids    state.IDSource
}

func NewRecorder(clock state.Clock, ids state.IDSource) *Recorder {
	if clock == nil {
		clock = state.SystemClock
	}
	if ids == nil {
		ids = state.RandomID
	}
	return &Recorder{clock: clock, ids: ids}
}

func (r *Recorder) State() RecorderState { return r.state }

// Begin starts a gesture at p, discarding any unfinished buffer.
func (r *Recorder) Begin(p state.Point) {
	r.state = Drawing
	r.points = append(r.points[:0:0], p)
}

// Extend appends p to the gesture. It reports false when no gesture is in
// progress or p is unusable.
func (r *Recorder) Extend(p state.Point) bool {
	if r.state != Drawing || len(r.points) == 0 || !p.Valid() {
		return false
	}
	r.points = append(r.points, p)
	return true
}

// Points returns a copy of the in-progress buffer.
func (r *Recorder) Points() []state.Point {
	if len(r.points) == 0 {
		return nil
	}
	out := make([]state.Point, len(r.points))
	copy(out, r.points)
	return out
}

// Commit ends the gesture. A stroke is produced only if at least one point
// was captured.
func (r *Recorder) Commit(pen Pen) (state.Stroke, bool) {
	pts := r.points
	r.state = Idle
	r.points = nil
	if len(pts) == 0 {
		return state.Stroke{}, false
	}
	return state.Stroke{
		ID:        r.ids(),
		Tool:      state.ToolPen,
		Points:    pts,
		Style:     pen.Style(),
		Timestamp: r.clock(),
	}, true
}
