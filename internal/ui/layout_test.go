package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarkBoard/internal/coords"
	"MarkBoard/internal/state"
)

func mapperFor(v *viewport) *coords.Mapper {
	return coords.NewMapper(
		coords.SurfaceFunc(func() (coords.Layout, bool) { return v.layout() }),
		coords.WithLogicalWidth(v.pageW),
		coords.WithScale(v.zoom),
		coords.WithClock(func() int64 { return 1 }),
	)
}

func TestViewport_ZoomClamps(t *testing.T) {
	v := newViewport(1000, 2000, 1)
	for range 20 {
		v.zoomIn()
	}
	assert.Equal(t, maxZoom, v.zoom)
	for range 40 {
		v.zoomOut()
	}
	assert.Equal(t, minZoom, v.zoom)

	v.setZoom(0)
	assert.Equal(t, 1.0, v.zoom)
}

func TestViewport_ScrollClamps(t *testing.T) {
	v := newViewport(1000, 2000, 1)
	v.resize(1200, 800)

	assert.False(t, v.scrollBy(-10))
	assert.True(t, v.scrollBy(5000))
	assert.Equal(t, 1200.0, v.scrollY)

	v.setZoom(0.3)
	assert.Equal(t, 0.0, v.scrollY, "page fits, nothing to scroll")
}

func TestViewport_Unmeasurable(t *testing.T) {
	v := newViewport(1000, 2000, 1)
	_, ok := v.layout()
	assert.False(t, ok)
}

func TestViewport_MapperMatchesScreen(t *testing.T) {
	tests := []struct {
		name    string
		zoom    float64
		scroll  float64
		screenX float64
		screenY float64
		want    state.Point
	}{
		{"identity", 1, 0, 100, 0, state.Point{X: 0, Y: 0, Timestamp: 1}},
		{"centre of page", 1, 0, 600, 1000, state.Point{X: 0.5, Y: 0.5, Timestamp: 1}},
		{"scrolled", 1, 500, 600, 500, state.Point{X: 0.5, Y: 0.5, Timestamp: 1}},
		{"zoomed out", 0.5, 0, 600, 500, state.Point{X: 0.5, Y: 0.5, Timestamp: 1}},
		{"zoomed in and scrolled", 2, 1000, 1200, 1000, state.Point{X: 0.6, Y: 0.5, Timestamp: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViewport(1000, 2000, tt.zoom)
			v.resize(1200, 800)
			v.scrollBy(tt.scroll)
			m := mapperFor(&v)

			// Zoomed in, the page is wider than the widget and starts at 0.
			left, top := v.pageOrigin()
			pw, ph := v.pageSize()
			wantX := left + tt.want.X*pw
			wantY := top + tt.want.Y*ph
			assert.InDelta(t, tt.screenX, wantX, 1e-9, "test table self-check")
			assert.InDelta(t, tt.screenY, wantY, 1e-9, "test table self-check")

			p, ok := m.ToLogical(v.unzoom(tt.screenX, tt.screenY))
			require.True(t, ok)
			assert.InDelta(t, tt.want.X, p.X, 1e-9)
			assert.InDelta(t, tt.want.Y, p.Y, 1e-9)

			vp, ok := m.ToViewport(p)
			require.True(t, ok)
			sx, sy := v.rezoom(vp.X, vp.Y)
			assert.InDelta(t, tt.screenX, sx, 1e-9)
			assert.InDelta(t, tt.screenY, sy, 1e-9)
		})
	}
}

func TestViewport_SurfaceOffsetLandsOnPage(t *testing.T) {
	v := newViewport(1000, 2000, 0.5)
	v.resize(1200, 800)
	v.scrollBy(100)
	m := mapperFor(&v)

	abs, ok := m.ToAbsolute(state.Point{X: 0.25, Y: 0.75})
	require.True(t, ok)
	ox, oy := v.surfaceOffset()
	assert.InDelta(t, 250.0, abs.X+ox, 1e-9)
	assert.InDelta(t, 1500.0, abs.Y+oy, 1e-9)
}

func TestViewport_EraserUnitsFollowZoom(t *testing.T) {
	v := newViewport(1000, 2000, 2)
	v.resize(1200, 800)
	m := mapperFor(&v)

	// 30 screen pixels at 2x zoom are 15 page pixels.
	assert.InDelta(t, 15.0/1000, m.Units().Logical(30), 1e-12)
}
