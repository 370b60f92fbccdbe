package ui

import (
	"math"

	"MarkBoard/internal/coords"
)

const (
	minZoom    = 0.3
	maxZoom    = 3.0
	zoomFactor = 1.2
)

// viewport is the on-screen placement of the page inside the board widget.
// The page is centred horizontally and scrolls vertically; zoom scales it
// about its top-left corner.
//
// Positions handed to the mapper are widget pixels divided by the zoom, so
// the page keeps its logical size in that frame.
type viewport struct {
	width, height float64
	pageW, pageH  float64
	zoom          float64
	scrollY       float64
}

func newViewport(pageW, pageH, zoom float64) viewport {
	v := viewport{pageW: pageW, pageH: pageH, zoom: 1}
	v.setZoom(zoom)
	return v
}

func (v *viewport) resize(w, h float64) {
	v.width, v.height = w, h
	v.clampScroll()
}

func (v *viewport) maxScroll() float64 {
	return math.Max(0, v.pageH*v.zoom-v.height)
}

func (v *viewport) clampScroll() {
	v.scrollY = math.Min(math.Max(v.scrollY, 0), v.maxScroll())
}

// scrollBy moves the page by dy widget pixels and reports whether it moved.
func (v *viewport) scrollBy(dy float64) bool {
	before := v.scrollY
	v.scrollY += dy
	v.clampScroll()
	return v.scrollY != before
}

func (v *viewport) setZoom(z float64) {
	if z <= 0 || math.IsNaN(z) {
		z = 1
	}
	v.zoom = math.Min(math.Max(z, minZoom), maxZoom)
	v.clampScroll()
}

func (v *viewport) zoomIn()  { v.setZoom(v.zoom * zoomFactor) }
func (v *viewport) zoomOut() { v.setZoom(v.zoom / zoomFactor) }

// pageOrigin is the page's top-left corner in widget pixels.
func (v viewport) pageOrigin() (x, y float64) {
	return math.Max(0, (v.width-v.pageW*v.zoom)/2), -v.scrollY
}

// pageSize is the page's on-screen size in widget pixels.
func (v viewport) pageSize() (w, h float64) {
	return v.pageW * v.zoom, v.pageH * v.zoom
}

// unzoom converts widget pixels to the mapper's frame.
func (v viewport) unzoom(x, y float64) (float64, float64) {
	return x / v.zoom, y / v.zoom
}

// rezoom is the inverse of unzoom.
func (v viewport) rezoom(x, y float64) (float64, float64) {
	return x * v.zoom, y * v.zoom
}

func (v viewport) container() coords.Rect {
	return coords.Rect{Width: v.width / v.zoom, Height: v.height / v.zoom}
}

// layout describes the widget as a scrolled container holding the page.
func (v viewport) layout() (coords.Layout, bool) {
	if v.width <= 0 || v.height <= 0 || v.pageW <= 0 || v.pageH <= 0 {
		return coords.Layout{}, false
	}
	left, top := v.pageOrigin()
	c := v.container()
	return coords.Layout{
		Container:    c,
		ScrollTop:    v.scrollY / v.zoom,
		ScrollWidth:  math.Max(c.Width, v.pageW+left/v.zoom),
		ScrollHeight: math.Max(c.Height, v.pageH),
		ClientWidth:  c.Width,
		ClientHeight: c.Height,
		Content: &coords.Content{
			Rect: coords.Rect{
				Left:   left / v.zoom,
				Top:    top / v.zoom,
				Width:  v.pageW,
				Height: v.pageH,
			},
			ScrollHeight: v.pageH * v.zoom,
		},
	}, true
}

// surfaceOffset moves container-space points onto the page raster.
func (v viewport) surfaceOffset() (x, y float64) {
	left, _ := v.pageOrigin()
	return -left / v.zoom, 0
}
