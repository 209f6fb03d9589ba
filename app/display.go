package app

import (
	"image/color"

	"rdpgl/rdpq"
	"rdpgl/surface"

	"tinygo.org/x/drivers"
)

// surfaceDisplay draws straight into a color surface from the CPU. The
// rasterizer must be idle on the surface while it is in use.
type surfaceDisplay struct {
	s *surface.Surface
}

var _ drivers.Displayer = surfaceDisplay{}

func (d surfaceDisplay) Size() (x, y int16) {
	if d.s == nil {
		return 0, 0
	}
	return int16(d.s.Width), int16(d.s.Height)
}

func (d surfaceDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.s == nil {
		return
	}
	px := rdpq.RGBA32(c.R, c.G, c.B, c.A)
	switch d.s.Format {
	case surface.FormatRGBA16:
		d.s.Set16(int(x), int(y), px.Packed16())
	case surface.FormatRGBA32:
		d.s.Set32(int(x), int(y), px.Packed32())
	}
}

func (d surfaceDisplay) Display() error { return nil }

func (d surfaceDisplay) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

func (d surfaceDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.s == nil {
		return nil
	}
	x0 := clampInt(int(x), 0, d.s.Width)
	y0 := clampInt(int(y), 0, d.s.Height)
	x1 := clampInt(int(x)+int(width), 0, d.s.Width)
	y1 := clampInt(int(y)+int(height), 0, d.s.Height)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			d.SetPixel(int16(px), int16(py), c)
		}
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
