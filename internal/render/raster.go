package render

import (
	"image"
	"image/draw"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// RasterSurface paints onto an RGBA image with rasterx. It backs the live
// board view.
type RasterSurface struct {
	img    *image.RGBA
	dasher *rasterx.Dasher
	paint  Paint
	open   bool
}

func NewRasterSurface(width, height int) *RasterSurface {
	s := &RasterSurface{}
	s.Resize(width, height)
	return s
}

// Resize reallocates the backing image. Contents are lost.
func (s *RasterSurface) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, s.img, s.img.Bounds())
	s.dasher = rasterx.NewDasher(width, height, scanner)
	s.open = false
}

func (s *RasterSurface) Image() *image.RGBA { return s.img }

func (s *RasterSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *RasterSurface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	s.dasher.Clear()
	s.open = false
}

func (s *RasterSurface) SetPaint(p Paint) {
	s.paint = p
	s.dasher.SetStroke(fixed.Int26_6(p.Width*64), 4*64,
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	s.dasher.SetColor(p.Color)
}

func (s *RasterSurface) MoveTo(x, y float64) {
	if s.open {
		s.dasher.Stop(false)
	}
	s.dasher.Start(rasterx.ToFixedP(x, y))
	s.open = true
}

func (s *RasterSurface) LineTo(x, y float64) {
	if !s.open {
		s.MoveTo(x, y)
		return
	}
	s.dasher.Line(rasterx.ToFixedP(x, y))
}

func (s *RasterSurface) QuadTo(cx, cy, x, y float64) {
	if !s.open {
		s.MoveTo(cx, cy)
	}
	s.dasher.QuadBezier(rasterx.ToFixedP(cx, cy), rasterx.ToFixedP(x, y))
}

func (s *RasterSurface) Stroke() {
	if !s.open {
		return
	}
	s.dasher.Stop(false)
	s.dasher.Draw()
	s.dasher.Clear()
	s.open = false
}

func (s *RasterSurface) Dot(x, y, r float64) {
	if r <= 0 {
		return
	}
	f := &s.dasher.Filler
	f.Clear()
	rasterx.AddCircle(x, y, r, f)
	f.SetColor(s.paint.Color)
	f.Draw()
	f.Clear()
}
