package rdpq

import "rdpgl/surface"

// Color is an RGBA color in 8-bit channels, as programmed into the fill color
// register.
type Color struct {
	R, G, B, A uint8
}

func RGBA32(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// ColorFromPacked16 expands an RGBA5551 value. The expansion round-trips
// through Packed16 exactly, which the depth clear relies on.
func ColorFromPacked16(v uint16) Color {
	c := Color{
		R: uint8(v>>11&0x1F) << 3,
		G: uint8(v>>6&0x1F) << 3,
		B: uint8(v>>1&0x1F) << 3,
	}
	if v&1 != 0 {
		c.A = 0xFF
	}
	return c
}

// ColorFromPacked32 splits 0xRRGGBBAA.
func ColorFromPacked32(v uint32) Color {
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}

// Packed16 returns the color as RGBA5551.
func (c Color) Packed16() uint16 { return surface.Pack5551(c.R, c.G, c.B, c.A) }

// Packed32 returns the color as 0xRRGGBBAA.
func (c Color) Packed32() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}
