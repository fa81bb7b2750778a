// Package hud draws the demo overlay: a frame around the surface, a
// crosshair and a marker sweeping along the top edge.
package hud

import (
	"github.com/kirides/d3doverlay/gfx"
	"github.com/kirides/d3doverlay/overlay"
)

type Style struct {
	// Background clears the overlay target first unless fully transparent.
	Background gfx.Color
	Frame      gfx.Color
	Marker     gfx.Color
	Thickness  float32
}

func DefaultStyle() Style {
	return Style{
		Frame:     gfx.RGBA(0x30, 0xc0, 0x60, 0xff),
		Marker:    gfx.RGBA(0xe0, 0x40, 0x30, 0xff),
		Thickness: 2,
	}
}

const markerSize = 24

// Draw appends one frame of the overlay to r. Frame counts up from zero and
// moves the marker.
func Draw(r *overlay.Renderer, s Style, frame int) {
	res := r.Resolution()
	w, h := float32(res[0]), float32(res[1])
	if s.Background[3] > 0 {
		r.Clear(s.Background)
	}

	inset := s.Thickness / 2
	r.Rect(gfx.Point{inset, inset}, gfx.Point{w - inset, h - inset}, s.Frame, s.Thickness)

	cx, cy := w/2, h/2
	arm := min(w, h) / 16
	r.Line(gfx.Point{cx - arm, cy}, gfx.Point{cx + arm, cy}, s.Frame, s.Thickness)
	r.Line(gfx.Point{cx, cy - arm}, gfx.Point{cx, cy + arm}, s.Frame, s.Thickness)

	x := markerX(frame, w)
	top := s.Thickness * 2
	r.RectFilled(gfx.Point{x, top}, gfx.Point{x + markerSize, top + markerSize}, s.Marker)
}

// markerX bounces the marker between both edges, one pixel per frame.
func markerX(frame int, width float32) float32 {
	span := int(width) - markerSize
	if span <= 0 {
		return 0
	}
	pos := frame % (2 * span)
	if pos > span {
		pos = 2*span - pos
	}
	return float32(pos)
}
