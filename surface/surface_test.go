package surface

import "testing"

func TestNewLayout(t *testing.T) {
	s := New(FormatRGBA16, 320, 240)
	if s.Stride != 640 {
		t.Fatalf("expected stride 640, got %d", s.Stride)
	}
	if len(s.Buf) != 320*240*2 {
		t.Fatalf("expected %d bytes, got %d", 320*240*2, len(s.Buf))
	}
}

func TestMakeRejectsShortBuffer(t *testing.T) {
	if _, err := Make(FormatRGBA16, 4, 4, 8, make([]byte, 31)); err != ErrShortBuffer {
		t.Fatalf("expected ErrShortBuffer, got %v", err)
	}
	if _, err := Make(FormatNone, 4, 4, 8, make([]byte, 32)); err == nil {
		t.Fatal("expected error for FormatNone")
	}
	if _, err := Make(FormatRGBA32, 4, 4, 8, make([]byte, 64)); err == nil {
		t.Fatal("expected error for stride below row size")
	}
}

func TestViewSharesMemory(t *testing.T) {
	z := New(FormatZ16, 8, 2)
	v, err := z.View(FormatRGBA16, 8, 2, 16)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	v.Set16(3, 1, 0xFFFC)
	if got := z.At16(3, 1); got != 0xFFFC {
		t.Fatalf("expected depth 0xFFFC through view, got %#04x", got)
	}
}

func TestPixelAccessClips(t *testing.T) {
	s := New(FormatRGBA32, 2, 2)
	s.Set32(2, 0, 0xFFFFFFFF)
	s.Set32(-1, 0, 0xFFFFFFFF)
	for _, b := range s.Buf {
		if b != 0 {
			t.Fatal("out-of-bounds write reached the buffer")
		}
	}
	if got := s.At32(5, 5); got != 0 {
		t.Fatalf("expected 0 for out-of-bounds read, got %#x", got)
	}
	s.Set32(1, 1, 0xFF0000FF)
	if got := s.At32(1, 1); got != 0xFF0000FF {
		t.Fatalf("expected 0xFF0000FF, got %#08x", got)
	}
}

func TestRGB888From5551(t *testing.T) {
	r, g, b, a := RGB888From5551(0xF801)
	if r != 0xFF || g != 0 || b != 0 || a != 0xFF {
		t.Fatalf("expected opaque red, got %d %d %d %d", r, g, b, a)
	}
	_, _, _, a = RGB888From5551(0xF800)
	if a != 0 {
		t.Fatalf("expected zero coverage, got %d", a)
	}
}

func TestImageFromRGBA16(t *testing.T) {
	s := New(FormatRGBA16, 2, 1)
	s.Set16(1, 0, 0x07C1) // green
	img := s.Image()
	c := img.RGBAAt(1, 0)
	if c.R != 0 || c.G != 0xFF || c.B != 0 || c.A != 0xFF {
		t.Fatalf("expected green, got %+v", c)
	}
	if c := img.RGBAAt(0, 0); c.A != 0xFF || c.R != 0 {
		t.Fatalf("expected opaque black, got %+v", c)
	}
}
