package input

import (
	"MarkBoard/internal/coords"
	"MarkBoard/internal/ink"
	"MarkBoard/internal/logger"
	"MarkBoard/internal/render"
	"MarkBoard/internal/state"
)

// Mapper normalizes viewport positions.
type Mapper interface {
	ToLogical(vx, vy float64) (state.Point, bool)
	Units() coords.Units
}

// Painter repaints the surface. live is nil outside pen gestures.
type Painter interface {
	Paint(live *render.Live)
}

// Handlers receive the dispatcher's output. Any of them may be nil.
type Handlers struct {
	OnStrokeComplete func(state.Stroke)
	OnStrokesChange  func(state.Collection)
	OnDrawingStart   func()
	// OnFrame runs after every repaint.
	OnFrame func()
}

type phase int

const (
	phaseIdle phase = iota
	phaseDrawing
	phaseErasing
)

// Dispatcher is the gesture state machine. It is not safe for concurrent
// use; hosts deliver events one at a time.
type Dispatcher struct {
	Handlers

	mapper    Mapper
	painter   Painter
	strokes   func() state.Collection
	recorder  *ink.Recorder
	eraser    *ink.Eraser
	path      *ink.Path
	widths    ink.WidthTable
	indicator *Indicator
	phase     phase
}

type Options struct {
	Mapper  Mapper
	Painter Painter
	// Strokes returns the caller's current collection. It is only read.
	Strokes   func() state.Collection
	Recorder  *ink.Recorder
	Eraser    *ink.Eraser
	Widths    ink.WidthTable
	Indicator *Indicator
}

func NewDispatcher(opts Options, h Handlers) *Dispatcher {
	d := &Dispatcher{
		Handlers:  h,
		mapper:    opts.Mapper,
		painter:   opts.Painter,
		strokes:   opts.Strokes,
		recorder:  opts.Recorder,
		eraser:    opts.Eraser,
		widths:    opts.Widths,
		indicator: opts.Indicator,
	}
	if d.recorder == nil {
		d.recorder = ink.NewRecorder(nil, nil)
	}
	if d.eraser == nil {
		d.eraser = ink.NewEraser(ink.DefaultEraserConfig())
	}
	if d.widths == nil {
		d.widths = ink.DefaultWidths()
	}
	if d.strokes == nil {
		d.strokes = func() state.Collection { return nil }
	}
	d.path = d.eraser.NewPath()
	return d
}

// SetEraser swaps the eraser tuning. It takes effect from the next gesture.
func (d *Dispatcher) SetEraser(e *ink.Eraser) {
	if d.phase == phaseErasing {
		d.path.Clear()
		d.phase = phaseIdle
	}
	d.eraser = e
	d.path = e.NewPath()
}

func (d *Dispatcher) SetWidths(w ink.WidthTable) { d.widths = w }

// Active reports whether a gesture is in progress.
func (d *Dispatcher) Active() bool { return d.phase != phaseIdle }

// Live returns the in-progress pen gesture, or nil.
func (d *Dispatcher) Live(cfg Config) *render.Live {
	if d.phase != phaseDrawing {
		return nil
	}
	return &render.Live{Points: d.recorder.Points(), Style: d.pen(cfg).Style()}
}

// Dispatch handles one event and reports whether it was consumed. An
// unconsumed event should be left to the surrounding UI.
func (d *Dispatcher) Dispatch(ev Event, cfg Config) bool {
	// Two fingers belong to the surrounding UI for scrolling and zooming.
	if ev.Kind.touch() && len(ev.Touches) == 2 {
		if d.phase != phaseIdle {
			d.finish(cfg)
		}
		d.indicator.Hide()
		return false
	}

	switch ev.Kind {
	case PointerDown, TouchStart:
		return d.begin(ev, cfg)
	case PointerMove, TouchMove:
		return d.move(ev, cfg)
	case PointerUp, TouchEnd, PointerLeave:
		if d.phase == phaseIdle {
			return false
		}
		d.finish(cfg)
		return true
	}
	return false
}

func (d *Dispatcher) begin(ev Event, cfg Config) bool {
	if !cfg.Tool.Active() {
		return false
	}
	if d.phase != phaseIdle {
		d.finish(cfg)
	}
	x, y := ev.Position()
	p, ok := d.mapper.ToLogical(x, y)
	if !ok {
		return true
	}

	switch cfg.Tool {
	case ToolPen:
		if d.OnDrawingStart != nil {
			d.OnDrawingStart()
		}
		d.recorder.Begin(p)
		d.phase = phaseDrawing
	case ToolEraser:
		d.path.Reset(p)
		d.phase = phaseErasing
		d.indicator.Show(x, y)
		d.eraseStep()
	}
	d.repaint(cfg)
	return true
}

func (d *Dispatcher) move(ev Event, cfg Config) bool {
	if d.phase == phaseIdle {
		return false
	}
	if !ev.OnSurface {
		logger.For("input").Debug("gesture left the surface", "event", ev.Kind.String())
		d.finish(cfg)
		return false
	}
	x, y := ev.Position()
	p, ok := d.mapper.ToLogical(x, y)
	if !ok {
		return true
	}

	switch d.phase {
	case phaseDrawing:
		d.recorder.Extend(p)
	case phaseErasing:
		d.path.Add(p)
		d.indicator.Show(x, y)
		d.eraseStep()
	}
	d.repaint(cfg)
	return true
}

func (d *Dispatcher) finish(cfg Config) {
	switch d.phase {
	case phaseDrawing:
		if s, ok := d.recorder.Commit(d.pen(cfg)); ok && d.OnStrokeComplete != nil {
			d.OnStrokeComplete(s)
		}
	case phaseErasing:
		d.path.Clear()
		d.indicator.Hide()
	}
	d.phase = phaseIdle
	d.repaint(cfg)
}

func (d *Dispatcher) eraseStep() {
	out, changed := d.eraser.Erase(d.path.Points(), d.strokes(), d.mapper.Units())
	if changed && d.OnStrokesChange != nil {
		d.OnStrokesChange(out)
	}
}

func (d *Dispatcher) pen(cfg Config) ink.Pen {
	return ink.Pen{Color: cfg.Color, Width: cfg.Width, Widths: d.widths}
}

func (d *Dispatcher) repaint(cfg Config) {
	if d.painter != nil {
		d.painter.Paint(d.Live(cfg))
	}
	if d.OnFrame != nil {
		d.OnFrame()
	}
}
