package surface

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"
)

// Raw surface files hold a 16-byte little-endian header followed by
// Stride*Height bytes of pixel data, ready to be loaded as a texture or
// color image without conversion.
//
//	0  magic "SURF"
//	4  format
//	5  version
//	6  reserved
//	8  width
//	10 height
//	12 stride
const (
	fileMagic      = "SURF"
	fileVersion    = 1
	fileHeaderSize = 16

	// maxStridePad is the most row padding a file may declare.
	maxStridePad = 63
)

var ErrBadFile = errors.New("surface: bad file header")

// ParseFormat maps a format name (case-insensitive) to a Format.
func ParseFormat(name string) (Format, error) {
	for _, f := range []Format{FormatRGBA16, FormatRGBA32, FormatZ16} {
		if strings.EqualFold(name, f.String()) {
			return f, nil
		}
	}
	return FormatNone, fmt.Errorf("surface: unknown format %q", name)
}

// Pack5551 packs 8-bit channels into an RGBA16 pixel. Alpha is set when
// a >= 128.
func Pack5551(r, g, b, a uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>3)<<6 | uint16(b>>3)<<1 | uint16(a>>7)
}

// FromImage converts img into a new color surface.
func FromImage(img image.Image, format Format) (*Surface, error) {
	if format != FormatRGBA16 && format != FormatRGBA32 {
		return nil, fmt.Errorf("surface: cannot convert an image to %s", format)
	}
	b := img.Bounds()
	s := New(format, b.Dx(), b.Dy())
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			if format == FormatRGBA16 {
				s.Set16(x, y, Pack5551(c.R, c.G, c.B, c.A))
			} else {
				s.Set32(x, y, uint32(c.R)<<24|uint32(c.G)<<16|uint32(c.B)<<8|uint32(c.A))
			}
		}
	}
	return s, nil
}

// Encode writes s as a raw surface file.
func Encode(w io.Writer, s *Surface) error {
	if s.Width > 0xFFFF || s.Height > 0xFFFF {
		return fmt.Errorf("surface: %dx%d too large to encode", s.Width, s.Height)
	}
	if len(s.Buf) < s.SizeBytes() {
		return ErrShortBuffer
	}
	if s.Stride > s.Width*s.Format.BytesPerPixel()+maxStridePad {
		return fmt.Errorf("surface: stride %d too wide to encode", s.Stride)
	}

	var hdr [fileHeaderSize]byte
	copy(hdr[0:4], fileMagic)
	hdr[4] = byte(s.Format)
	hdr[5] = fileVersion
	binary.LittleEndian.PutUint16(hdr[8:10], uint16(s.Width))
	binary.LittleEndian.PutUint16(hdr[10:12], uint16(s.Height))
	binary.LittleEndian.PutUint32(hdr[12:16], uint32(s.Stride))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.Write(s.Buf[:s.SizeBytes()])
	return err
}

// Decode reads a raw surface file.
func Decode(r io.Reader) (*Surface, error) {
	var hdr [fileHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("surface: read header: %w", err)
	}
	if string(hdr[0:4]) != fileMagic {
		return nil, ErrBadFile
	}
	if hdr[5] != fileVersion {
		return nil, fmt.Errorf("%w: version %d", ErrBadFile, hdr[5])
	}
	format := Format(hdr[4])
	if format.BytesPerPixel() == 0 {
		return nil, fmt.Errorf("%w: format %d", ErrBadFile, hdr[4])
	}
	width := int(binary.LittleEndian.Uint16(hdr[8:10]))
	height := int(binary.LittleEndian.Uint16(hdr[10:12]))
	stride := int(binary.LittleEndian.Uint32(hdr[12:16]))
	row := width * format.BytesPerPixel()
	if stride < row || stride > row+maxStridePad {
		return nil, fmt.Errorf("%w: stride %d for %d %s pixels", ErrBadFile, stride, width, format)
	}

	// The buffer grows with the data actually read, so a header cannot
	// claim more memory than the file backs.
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r, int64(stride)*int64(height)); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("surface: read pixels: %w", err)
	}
	return Make(format, width, height, stride, buf.Bytes())
}
