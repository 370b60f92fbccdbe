package ui

import (
	"image/color"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"MarkBoard/internal/config"
	"MarkBoard/internal/coords"
	"MarkBoard/internal/ink"
	"MarkBoard/internal/input"
	"MarkBoard/internal/logger"
	"MarkBoard/internal/render"
	"MarkBoard/internal/state"
)

var (
	deskColor   = color.NRGBA{R: 245, G: 246, B: 248, A: 255}
	cursorColor = color.NRGBA{R: 90, G: 90, B: 90, A: 200}
)

// BoardWidget shows one page of the board and turns mouse and touch input
// into strokes. Input handlers and config reloads are serialized by mu.
type BoardWidget struct {
	widget.BaseWidget

	// Hooks for observers of the board. They run on the UI goroutine.
	OnStrokeComplete func(state.Stroke)
	OnStrokesChange  func(state.Collection)

	mu         sync.Mutex
	board      *state.Board
	view       viewport
	tool       input.Config
	mapper     *coords.Mapper
	dispatcher *input.Dispatcher
	indicator  *input.Indicator
	surface    *render.RasterSurface
	painter    *render.View
	image      *canvas.Image
	cursor     *canvas.Circle
	radius     float64
	lastMove   fyne.Position
	moved      bool

	hoverMu   sync.Mutex
	hoverSubs map[int]func(input.Hover)
	hoverNext int
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Scrollable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ mobile.Touchable = (*BoardWidget)(nil)
var _ input.PointerSource = (*BoardWidget)(nil)

func NewBoardWidget(board *state.Board, cfg config.Config) *BoardWidget {
	b := &BoardWidget{
		board:     board,
		view:      newViewport(cfg.Surface.LogicalWidth, cfg.Surface.PageHeight, cfg.Surface.Scale),
		tool:      input.Config{Tool: input.ToolPen, Width: ink.WidthMedium, Color: cfg.Pen.Color},
		radius:    cfg.Eraser.RadiusPx,
		hoverSubs: make(map[int]func(input.Hover)),
	}
	b.mapper = coords.NewMapper(coords.SurfaceFunc(func() (coords.Layout, bool) { return b.view.layout() }),
		coords.WithLogicalWidth(cfg.Surface.LogicalWidth),
		coords.WithScale(b.view.zoom),
	)

	pageW, pageH := int(math.Ceil(cfg.Surface.LogicalWidth)), int(math.Ceil(cfg.Surface.PageHeight))
	b.surface = render.NewRasterSurface(pageW, pageH)
	b.image = canvas.NewImageFromImage(b.surface.Image())
	b.image.FillMode = canvas.ImageFillStretch
	b.image.ScaleMode = canvas.ImageScaleFastest

	b.cursor = canvas.NewCircle(color.Transparent)
	b.cursor.StrokeColor = cursorColor
	b.cursor.StrokeWidth = 1.5
	b.cursor.Hide()
	b.indicator = input.NewIndicator(
		func() (coords.Rect, bool) { return b.view.container(), b.view.width > 0 },
		b.placeCursor,
	)

	b.painter = &render.View{
		Renderer: render.NewRenderer(b.mapper),
		Surface:  b.surface,
		Strokes:  board.Strokes,
		Offset:   func() (float64, float64) { return b.view.surfaceOffset() },
	}
	b.dispatcher = input.NewDispatcher(input.Options{
		Mapper:    b.mapper,
		Painter:   b.painter,
		Strokes:   board.Strokes,
		Eraser:    ink.NewEraser(cfg.EraserConfig()),
		Widths:    cfg.Widths(),
		Indicator: b.indicator,
	}, input.Handlers{
		OnStrokeComplete: b.strokeComplete,
		OnStrokesChange:  b.strokesChange,
		OnDrawingStart:   func() { logger.For("ui").Debug("drawing started") },
		OnFrame:          b.image.Refresh,
	})
	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) strokeComplete(s state.Stroke) {
	if !b.board.Add(s) {
		return
	}
	if b.OnStrokeComplete != nil {
		b.OnStrokeComplete(s)
	}
}

func (b *BoardWidget) strokesChange(c state.Collection) {
	b.board.Replace(c)
	if b.OnStrokesChange != nil {
		b.OnStrokesChange(c)
	}
}

// repaintLocked redraws committed strokes and any live gesture.
func (b *BoardWidget) repaintLocked() {
	b.painter.Paint(b.dispatcher.Live(b.tool))
	b.image.Refresh()
}

func (b *BoardWidget) placeCursor(x, y float64, visible bool) {
	if !visible {
		b.cursor.Hide()
		return
	}
	sx, sy := b.view.rezoom(x, y)
	r := float32(b.radius)
	b.cursor.Move(fyne.NewPos(float32(sx)-r, float32(sy)-r))
	b.cursor.Resize(fyne.NewSize(2*r, 2*r))
	b.cursor.Show()
	b.cursor.Refresh()
}

// Tool returns the current tool selection.
func (b *BoardWidget) Tool() input.Config {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tool
}

func (b *BoardWidget) SetTool(t input.Tool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tool.Tool = t
	b.indicator.Track(t, b)
}

func (b *BoardWidget) SetColor(c string) {
	b.mu.Lock()
	b.tool.Color = c
	b.mu.Unlock()
}

func (b *BoardWidget) SetWidth(w ink.WidthCategory) {
	b.mu.Lock()
	b.tool.Width = w
	b.mu.Unlock()
}

// Apply takes pen and eraser tuning from a reloaded configuration. Page
// size and zoom keep their current values.
func (b *BoardWidget) Apply(cfg config.Config) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dispatcher.SetEraser(ink.NewEraser(cfg.EraserConfig()))
	b.dispatcher.SetWidths(cfg.Widths())
	b.radius = cfg.Eraser.RadiusPx
	b.repaintLocked()
}

// Clear removes every stroke.
func (b *BoardWidget) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.board.Clear()
	if b.OnStrokesChange != nil {
		b.OnStrokesChange(state.Collection{})
	}
	b.repaintLocked()
}

// Strokes returns a snapshot of the board.
func (b *BoardWidget) Strokes() state.Collection { return b.board.Strokes() }

// PageSize is the page's unzoomed size in pixels.
func (b *BoardWidget) PageSize() (w, h float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view.pageW, b.view.pageH
}

func (b *BoardWidget) ZoomIn()  { b.zoom(b.view.zoomIn) }
func (b *BoardWidget) ZoomOut() { b.zoom(b.view.zoomOut) }

func (b *BoardWidget) ResetView() {
	b.zoom(func() {
		b.view.setZoom(1)
		b.view.scrollY = 0
	})
}

func (b *BoardWidget) zoom(apply func()) {
	b.mu.Lock()
	apply()
	b.mapper.SetScale(b.view.zoom)
	b.indicator.Hide()
	b.mu.Unlock()
	b.Refresh()
}

// Subscribe delivers pointer observations from anywhere over the widget.
func (b *BoardWidget) Subscribe(fn func(input.Hover)) func() {
	b.hoverMu.Lock()
	defer b.hoverMu.Unlock()
	id := b.hoverNext
	b.hoverNext++
	b.hoverSubs[id] = fn
	return func() {
		b.hoverMu.Lock()
		delete(b.hoverSubs, id)
		b.hoverMu.Unlock()
	}
}

// hoverLocked fans h out to subscribers. Callers hold mu.
func (b *BoardWidget) hoverLocked(kind input.HoverKind, pos fyne.Position, contacts int) {
	x, y := b.view.unzoom(float64(pos.X), float64(pos.Y))
	h := input.Hover{Kind: kind, X: x, Y: y, Contacts: contacts}

	b.hoverMu.Lock()
	subs := make([]func(input.Hover), 0, len(b.hoverSubs))
	for _, fn := range b.hoverSubs {
		subs = append(subs, fn)
	}
	b.hoverMu.Unlock()
	for _, fn := range subs {
		fn(h)
	}
}

func (b *BoardWidget) inside(pos fyne.Position) bool {
	return pos.X >= 0 && pos.Y >= 0 && float64(pos.X) <= b.view.width && float64(pos.Y) <= b.view.height
}

// dispatchLocked feeds one event to the dispatcher. Callers hold mu.
func (b *BoardWidget) dispatchLocked(kind input.Kind, pos fyne.Position, touches int) bool {
	if kind == input.PointerMove || kind == input.TouchMove {
		if b.moved && pos == b.lastMove {
			return true
		}
		b.lastMove, b.moved = pos, true
	} else {
		b.moved = false
	}
	x, y := b.view.unzoom(float64(pos.X), float64(pos.Y))
	ev := input.Event{Kind: kind, X: x, Y: y, OnSurface: b.inside(pos)}
	for range touches {
		ev.Touches = append(ev.Touches, input.Contact{X: x, Y: y})
	}
	return b.dispatcher.Dispatch(ev, b.tool)
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dispatchLocked(input.PointerDown, e.Position, 0)
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dispatchLocked(input.PointerUp, e.Position, 0)
}

func (b *BoardWidget) MouseIn(e *desktop.MouseEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hoverLocked(input.HoverMove, e.Position, 0)
}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hoverLocked(input.HoverMove, e.Position, 0)
	if b.dispatcher.Active() {
		b.dispatchLocked(input.PointerMove, e.Position, 0)
	}
}

func (b *BoardWidget) MouseOut() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hoverLocked(input.HoverLeave, fyne.Position{}, 0)
	b.dispatchLocked(input.PointerLeave, fyne.Position{X: -1, Y: -1}, 0)
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dispatchLocked(input.PointerMove, e.Position, 0)
}

func (b *BoardWidget) DragEnd() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dispatchLocked(input.PointerUp, b.lastMove, 0)
}

func (b *BoardWidget) TouchDown(e *mobile.TouchEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hoverLocked(input.HoverTouch, e.Position, 1)
	b.dispatchLocked(input.TouchStart, e.Position, 1)
}

func (b *BoardWidget) TouchUp(e *mobile.TouchEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hoverLocked(input.HoverEnd, e.Position, 0)
	b.dispatchLocked(input.TouchEnd, e.Position, 0)
}

func (b *BoardWidget) TouchCancel(e *mobile.TouchEvent) {
	b.TouchUp(e)
}

func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	b.mu.Lock()
	moved := b.view.scrollBy(-float64(e.Scrolled.DY))
	if moved {
		b.indicator.Hide()
	}
	b.mu.Unlock()
	if moved {
		b.Refresh()
	}
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	desk := canvas.NewRectangle(deskColor)
	page := canvas.NewRectangle(color.White)
	page.StrokeColor = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	page.StrokeWidth = 1
	b.mu.Lock()
	b.repaintLocked()
	b.mu.Unlock()
	return &boardWidgetRenderer{board: b, desk: desk, page: page}
}

type boardWidgetRenderer struct {
	board *BoardWidget
	desk  *canvas.Rectangle
	page  *canvas.Rectangle
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.desk, r.page, r.board.image, r.board.cursor}
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	b := r.board
	b.mu.Lock()
	b.view.resize(float64(size.Width), float64(size.Height))
	x, y := b.view.pageOrigin()
	w, h := b.view.pageSize()
	b.mu.Unlock()

	r.desk.Resize(size)
	pos := fyne.NewPos(float32(x), float32(y))
	dim := fyne.NewSize(float32(w), float32(h))
	r.page.Move(pos)
	r.page.Resize(dim)
	b.image.Move(pos)
	b.image.Resize(dim)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Refresh() {
	r.Layout(r.board.Size())
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) Destroy() {
	r.board.mu.Lock()
	r.board.indicator.Close()
	r.board.mu.Unlock()
}
