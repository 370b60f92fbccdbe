package ui

import (
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"MarkBoard/internal/export"
	"MarkBoard/internal/logger"
	"MarkBoard/internal/state"
)

type exportFormat struct {
	ext   string
	write func(io.Writer, export.Page, state.Collection) error
}

var (
	formatPNG = exportFormat{ext: ".png", write: export.WritePNG}
	formatPDF = exportFormat{ext: ".pdf", write: export.WritePDF}
)

// showExport asks for a destination and writes a snapshot of board there.
func showExport(win fyne.Window, board *BoardWidget, f exportFormat) {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if w == nil {
			return
		}
		if err := writeSnapshot(w, board, f); err != nil {
			logger.For("ui").Error("export failed", "uri", w.URI().String(), "error", err)
			dialog.ShowError(err, win)
			return
		}
		logger.For("ui").Info("exported", "uri", w.URI().String())
	}, win)
	d.SetFileName("board" + f.ext)
	d.SetFilter(storage.NewExtensionFileFilter([]string{f.ext}))
	d.Show()
}

func writeSnapshot(w fyne.URIWriteCloser, board *BoardWidget, f exportFormat) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", w.URI().Name(), cerr)
		}
	}()
	pw, ph := board.PageSize()
	return f.write(w, export.Page{Width: pw, Height: ph}, board.Strokes())
}
