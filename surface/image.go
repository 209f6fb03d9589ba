package surface

import (
	"image"
	"image/color"
)

// RGB888From5551 expands an RGBA16 pixel to 8-bit channels.
func RGB888From5551(p uint16) (r, g, b, a uint8) {
	r = expand5(uint8(p>>11) & 0x1F)
	g = expand5(uint8(p>>6) & 0x1F)
	b = expand5(uint8(p>>1) & 0x1F)
	if p&1 != 0 {
		a = 0xFF
	}
	return r, g, b, a
}

func expand5(v uint8) uint8 { return v<<3 | v>>2 }

// Image converts the surface into an opaque-aware RGBA image.
//
// Z16 surfaces are rendered as grayscale (near = dark).
func (s *Surface) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	s.CopyRGBA(img.Pix)
	return img
}

// CopyRGBA writes the surface as tightly packed RGBA bytes into dst.
// dst must hold Width*Height*4 bytes; excess rows are skipped.
func (s *Surface) CopyRGBA(dst []byte) {
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			j := (y*s.Width + x) * 4
			if j+3 >= len(dst) {
				return
			}
			var c color.RGBA
			switch s.Format {
			case FormatRGBA16:
				c.R, c.G, c.B, _ = RGB888From5551(s.At16(x, y))
				// The display ignores coverage; show every pixel.
				c.A = 0xFF
			case FormatRGBA32:
				v := s.At32(x, y)
				c = color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: 0xFF}
			case FormatZ16:
				z := uint8(s.At16(x, y) >> 8)
				c = color.RGBA{R: z, G: z, B: z, A: 0xFF}
			}
			dst[j+0] = c.R
			dst[j+1] = c.G
			dst[j+2] = c.B
			dst[j+3] = c.A
		}
	}
}
