package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"MarkBoard/internal/config"
	"MarkBoard/internal/state"
)

const appID = "dev.markboard.app"

// Session is a running board window.
type Session struct {
	App    fyne.App
	Window fyne.Window
	Board  *BoardWidget
}

// NewSession builds the window around board. Nothing is shown until Run.
func NewSession(board *state.Board, cfg config.Config) *Session {
	a := app.NewWithID(appID)
	win := a.NewWindow("MarkBoard")
	win.Resize(fyne.NewSize(1024, 768))

	bw := NewBoardWidget(board, cfg)
	toolbar := NewToolbar(bw,
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			bw.Clear()
		}),
		widget.NewToolbarAction(theme.FileImageIcon(), func() {
			showExport(win, bw, formatPNG)
		}),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			showExport(win, bw, formatPDF)
		}),
	)

	win.SetContent(container.NewBorder(toolbar, nil, nil, nil, bw))
	return &Session{App: a, Window: win, Board: bw}
}

// Reload applies cfg from any goroutine.
func (s *Session) Reload(cfg config.Config) {
	fyne.Do(func() { s.Board.Apply(cfg) })
}

// Run shows the window and blocks until it is closed.
func (s *Session) Run() {
	s.Window.ShowAndRun()
}
