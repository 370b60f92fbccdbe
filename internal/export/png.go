package export

import (
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"

	"MarkBoard/internal/render"
	"MarkBoard/internal/state"
)

// PNGSurface draws with gg onto an opaque white image.
type PNGSurface struct {
	dc  *gg.Context
	err error
}

func NewPNGSurface(width, height int) *PNGSurface {
	return &PNGSurface{dc: gg.NewContext(width, height)}
}

func (s *PNGSurface) Clear() {
	s.dc.ClearPath()
	s.dc.ClearWithColor(gg.White)
}

func (s *PNGSurface) SetPaint(p render.Paint) {
	s.dc.SetColor(p.Color)
	s.dc.SetLineWidth(p.Width)
	s.dc.SetLineCap(gg.LineCapRound)
	s.dc.SetLineJoin(gg.LineJoinRound)
}

func (s *PNGSurface) MoveTo(x, y float64)         { s.dc.MoveTo(x, y) }
func (s *PNGSurface) LineTo(x, y float64)         { s.dc.LineTo(x, y) }
func (s *PNGSurface) QuadTo(cx, cy, x, y float64) { s.dc.QuadraticTo(cx, cy, x, y) }

func (s *PNGSurface) Stroke() {
	s.keep(s.dc.Stroke())
}

func (s *PNGSurface) Dot(x, y, r float64) {
	s.dc.DrawCircle(x, y, r)
	s.keep(s.dc.Fill())
}

func (s *PNGSurface) keep(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

// WriteTo encodes the image. It fails with the first drawing error, if any.
func (s *PNGSurface) WriteTo(w io.Writer) error {
	if s.err != nil {
		return fmt.Errorf("draw png: %w", s.err)
	}
	if err := s.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func (s *PNGSurface) Close() error { return s.dc.Close() }

// WritePNG renders strokes at the page's size and writes a PNG to w.
func WritePNG(w io.Writer, page Page, strokes state.Collection) error {
	if !page.valid() {
		return ErrEmptyPage
	}
	s := NewPNGSurface(int(math.Ceil(page.Width)), int(math.Ceil(page.Height)))
	defer s.Close()
	paint(s, page, strokes)
	return s.WriteTo(w)
}
