package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"rdpgl/surface"

	"golang.org/x/image/bmp"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.bmp")
	raw := filepath.Join(dir, "img.surf")
	dst := filepath.Join(dir, "out.bmp")

	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(1, 2, color.RGBA{R: 255, G: 255, A: 255})
	f, err := os.Create(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if err := encodeBMP(src, raw, "rgba16"); err != nil {
		t.Fatalf("encode: %v", err)
	}
	rf, err := os.Open(raw)
	if err != nil {
		t.Fatal(err)
	}
	s, err := surface.Decode(rf)
	rf.Close()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s.Format != surface.FormatRGBA16 || s.Width != 4 || s.Height != 3 {
		t.Fatalf("unexpected surface %+v", s)
	}
	if got := s.At16(1, 2); got != 0xFFC1 {
		t.Fatalf("expected yellow, got %#04x", got)
	}

	if err := decodeSurface(raw, dst); err != nil {
		t.Fatalf("decode: %v", err)
	}
	df, err := os.Open(dst)
	if err != nil {
		t.Fatal(err)
	}
	defer df.Close()
	out, err := bmp.Decode(df)
	if err != nil {
		t.Fatalf("bmp: %v", err)
	}
	if r, g, b, _ := out.At(1, 2).RGBA(); r>>8 != 255 || g>>8 != 255 || b != 0 {
		t.Fatalf("unexpected decoded pixel %v", out.At(1, 2))
	}
}

func TestEncodeRejectsUnknownFormat(t *testing.T) {
	if err := encodeBMP("missing.bmp", "out.surf", "rgb565"); err == nil {
		t.Fatal("expected error")
	}
}
