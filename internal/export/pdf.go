package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"MarkBoard/internal/render"
	"MarkBoard/internal/state"
)

// PDFSurface draws onto a single PDF page measured in points, one point
// per logical pixel.
type PDFSurface struct {
	pdf  *gofpdf.Fpdf
	page bool
}

func NewPDFSurface(width, height float64) *PDFSurface {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	return &PDFSurface{pdf: pdf}
}

func (s *PDFSurface) Clear() {
	if !s.page {
		s.pdf.AddPage()
		s.page = true
	}
}

func (s *PDFSurface) SetPaint(p render.Paint) {
	s.pdf.SetDrawColor(int(p.Color.R), int(p.Color.G), int(p.Color.B))
	s.pdf.SetFillColor(int(p.Color.R), int(p.Color.G), int(p.Color.B))
	s.pdf.SetAlpha(float64(p.Color.A)/255, "Normal")
	s.pdf.SetLineWidth(p.Width)
	s.pdf.SetLineCapStyle("round")
	s.pdf.SetLineJoinStyle("round")
}

func (s *PDFSurface) MoveTo(x, y float64)         { s.pdf.MoveTo(x, y) }
func (s *PDFSurface) LineTo(x, y float64)         { s.pdf.LineTo(x, y) }
func (s *PDFSurface) QuadTo(cx, cy, x, y float64) { s.pdf.CurveTo(cx, cy, x, y) }
func (s *PDFSurface) Stroke()                     { s.pdf.DrawPath("D") }
func (s *PDFSurface) Dot(x, y, r float64)         { s.pdf.Circle(x, y, r, "F") }

// WriteTo emits the document.
func (s *PDFSurface) WriteTo(w io.Writer) error {
	if err := s.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// WritePDF renders strokes on one page and writes the document to w.
func WritePDF(w io.Writer, page Page, strokes state.Collection) error {
	if !page.valid() {
		return ErrEmptyPage
	}
	s := NewPDFSurface(page.Width, page.Height)
	paint(s, page, strokes)
	return s.WriteTo(w)
}
