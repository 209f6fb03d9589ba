// Package surface describes the pixel memory the rasterizer draws into.
//
// A Surface is a plain buffer plus layout (format, size, stride). Surfaces do
// not own their memory in any special way: display surfaces are lent out by
// the swap chain, depth surfaces are carved from uncached memory by the GL
// context. 16-bit pixels are stored little-endian.
package surface

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Format defines the pixel encoding of a surface.
type Format uint8

const (
	FormatNone Format = iota
	// FormatRGBA16 is 16bpp: rrrrrgggggbbbbba.
	FormatRGBA16
	// FormatRGBA32 is 32bpp, bytes R, G, B, A.
	FormatRGBA32
	// FormatZ16 is the 16bpp packed depth format used by the depth buffer.
	FormatZ16
)

func (f Format) String() string {
	switch f {
	case FormatRGBA16:
		return "RGBA16"
	case FormatRGBA32:
		return "RGBA32"
	case FormatZ16:
		return "Z16"
	default:
		return "none"
	}
}

// BytesPerPixel returns the pixel size of the format, or 0 for FormatNone.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatRGBA16, FormatZ16:
		return 2
	case FormatRGBA32:
		return 4
	default:
		return 0
	}
}

var ErrShortBuffer = errors.New("surface: buffer too small for layout")

// Surface is a 2D pixel buffer.
type Surface struct {
	Format Format
	Width  int
	Height int
	Stride int // bytes per row
	Buf    []byte
}

// New allocates a tightly packed surface on the Go heap.
func New(format Format, width, height int) *Surface {
	stride := width * format.BytesPerPixel()
	return &Surface{
		Format: format,
		Width:  width,
		Height: height,
		Stride: stride,
		Buf:    make([]byte, stride*height),
	}
}

// Make wraps caller-provided memory.
func Make(format Format, width, height, stride int, buf []byte) (*Surface, error) {
	if format.BytesPerPixel() == 0 {
		return nil, fmt.Errorf("surface: unsupported format %s", format)
	}
	if width < 0 || height < 0 || stride < width*format.BytesPerPixel() {
		return nil, fmt.Errorf("surface: invalid layout %dx%d stride %d", width, height, stride)
	}
	if len(buf) < stride*height {
		return nil, ErrShortBuffer
	}
	return &Surface{Format: format, Width: width, Height: height, Stride: stride, Buf: buf}, nil
}

// View returns a surface sharing s's memory under a different layout.
//
// This is how the depth buffer is cleared with the rectangle fill fast path:
// a Z16 buffer viewed as RGBA16 has the same bit layout per pixel, so a
// fill color that packs to the wanted depth value writes that depth.
func (s *Surface) View(format Format, width, height, stride int) (*Surface, error) {
	if s == nil {
		return nil, errors.New("surface: view of nil surface")
	}
	return Make(format, width, height, stride, s.Buf)
}

// SameSize reports whether s and o have identical dimensions.
func (s *Surface) SameSize(o *Surface) bool {
	if s == nil || o == nil {
		return false
	}
	return s.Width == o.Width && s.Height == o.Height
}

// SizeBytes is the number of bytes the layout covers.
func (s *Surface) SizeBytes() int { return s.Stride * s.Height }

func (s *Surface) offset(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return 0, false
	}
	off := y*s.Stride + x*s.Format.BytesPerPixel()
	if off+s.Format.BytesPerPixel() > len(s.Buf) {
		return 0, false
	}
	return off, true
}

// At16 reads a 16bpp pixel. Out-of-bounds reads return 0.
func (s *Surface) At16(x, y int) uint16 {
	off, ok := s.offset(x, y)
	if !ok {
		return 0
	}
	return binary.LittleEndian.Uint16(s.Buf[off:])
}

// Set16 writes a 16bpp pixel. Out-of-bounds writes are dropped.
func (s *Surface) Set16(x, y int, v uint16) {
	off, ok := s.offset(x, y)
	if !ok {
		return
	}
	binary.LittleEndian.PutUint16(s.Buf[off:], v)
}

// At32 reads a 32bpp pixel as 0xRRGGBBAA.
func (s *Surface) At32(x, y int) uint32 {
	off, ok := s.offset(x, y)
	if !ok {
		return 0
	}
	return binary.BigEndian.Uint32(s.Buf[off:])
}

// Set32 writes a 32bpp pixel given as 0xRRGGBBAA.
func (s *Surface) Set32(x, y int, v uint32) {
	off, ok := s.offset(x, y)
	if !ok {
		return
	}
	binary.BigEndian.PutUint32(s.Buf[off:], v)
}
