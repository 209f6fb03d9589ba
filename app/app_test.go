package app

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"

	"rdpgl/gl"
	"rdpgl/hal"
	"rdpgl/rdpq"
	"rdpgl/surface"
)

func newHost(t *testing.T, w, h int) (hal.HAL, *hal.SwapChain, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	host := hal.New(hal.HostConfig{Width: w, Height: h, Out: &out})
	sc, ok := host.Display().(*hal.SwapChain)
	if !ok {
		t.Fatalf("unexpected display type %T", host.Display())
	}
	return host, sc, &out
}

func TestStepPresentsFrames(t *testing.T) {
	host, sc, out := newHost(t, 64, 48)
	a, err := New(host, Config{Overlay: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := a.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if a.Frames() != 5 || sc.Frames() != 5 {
		t.Fatalf("expected 5 frames, app=%d display=%d", a.Frames(), sc.Frames())
	}
	if img := sc.Frame(); img == nil || img.Bounds().Dx() != 64 {
		t.Fatal("expected a presented 64-pixel-wide frame")
	}
	if !strings.Contains(out.String(), "app: rdpgl ") || !strings.Contains(out.String(), "gl: init 64x48") {
		t.Fatalf("missing startup logs:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "app: 5 frames, ") {
		t.Fatalf("missing shutdown log:\n%s", out.String())
	}
}

type headlessHost struct{ hal.HAL }

func (headlessHost) Display() hal.Display { return nil }

func TestNewClosesQueueOnError(t *testing.T) {
	var q *rdpq.Soft
	defer func(f func(rdpq.SoftConfig) *rdpq.Soft) { newQueue = f }(newQueue)
	newQueue = func(cfg rdpq.SoftConfig) *rdpq.Soft {
		q = rdpq.NewSoft(cfg)
		return q
	}

	host, _, _ := newHost(t, 64, 48)
	a, err := New(headlessHost{host}, Config{})
	if !errors.Is(err, gl.ErrNoDisplay) || a != nil {
		t.Fatalf("expected ErrNoDisplay, got %v", err)
	}
	if q == nil {
		t.Fatal("queue was never started")
	}
	if err := q.Close(); err != rdpq.ErrClosed {
		t.Fatalf("expected queue to be closed already, got %v", err)
	}
}

func TestFaultScreenHaltsApp(t *testing.T) {
	host, sc, out := newHost(t, 320, 240)
	a, err := New(host, Config{FaultAt: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 6; i++ {
		if err := a.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}

	f := a.Fault()
	if f == nil || !strings.Contains(f.Reason, "stencil") {
		t.Fatalf("expected stencil fault, got %v", f)
	}
	if a.Frames() != 3 {
		t.Fatalf("expected the app to halt at frame 3, got %d", a.Frames())
	}
	// Two regular frames plus the fault screen.
	if got := sc.Frames(); got != 3 {
		t.Fatalf("expected 3 presented frames, got %d", got)
	}
	img := sc.Frame()
	if got := img.RGBAAt(319, 239); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("expected white fault screen background, got %v", got)
	}
	if !strings.Contains(out.String(), "app: fault at frame 3") {
		t.Fatalf("missing fault log:\n%s", out.String())
	}
}

func TestSurfaceDisplay(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}

	s16 := surface.New(surface.FormatRGBA16, 4, 4)
	d := surfaceDisplay{s: s16}
	if w, h := d.Size(); w != 4 || h != 4 {
		t.Fatalf("unexpected size %dx%d", w, h)
	}
	d.SetPixel(1, 1, red)
	d.SetPixel(-1, 9, red)
	if got := s16.At16(1, 1); got != 0xF801 {
		t.Fatalf("expected 0xF801, got %#04x", got)
	}

	s32 := surface.New(surface.FormatRGBA32, 4, 4)
	d = surfaceDisplay{s: s32}
	if err := d.FillRectangle(2, 2, 10, 10, red); err != nil {
		t.Fatalf("FillRectangle: %v", err)
	}
	if got := s32.At32(3, 3); got != 0xFF0000FF {
		t.Fatalf("expected filled pixel, got %#08x", got)
	}
	if got := s32.At32(1, 1); got != 0 {
		t.Fatalf("expected untouched pixel, got %#08x", got)
	}

	if w, h := (surfaceDisplay{}).Size(); w != 0 || h != 0 {
		t.Fatal("nil surface has no size")
	}
}

func TestBounce(t *testing.T) {
	cases := []struct{ v, span, want int }{
		{0, 10, 0},
		{7, 10, 7},
		{10, 10, 10},
		{13, 10, 7},
		{20, 10, 0},
		{25, 10, 5},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := bounce(tc.v, tc.span); got != tc.want {
			t.Fatalf("bounce(%d, %d) = %d, want %d", tc.v, tc.span, got, tc.want)
		}
	}
}

func TestTakeRunes(t *testing.T) {
	prefix, rest := takeRunes("héllo world", 5)
	if prefix != "héllo" || rest != " world" {
		t.Fatalf("got %q / %q", prefix, rest)
	}
	if prefix, rest := takeRunes("abc", 5); prefix != "abc" || rest != "" {
		t.Fatalf("got %q / %q", prefix, rest)
	}
}

func TestPaletteInRange(t *testing.T) {
	for n := uint64(0); n < 500; n += 7 {
		r, g, b := palette(n)
		for _, v := range []float32{r, g, b} {
			if v < 0 || v > 1 {
				t.Fatalf("palette(%d) out of range: %v %v %v", n, r, g, b)
			}
		}
	}
}
