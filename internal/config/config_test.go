//go:build !tinygo

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rdpgl/surface"
)

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse(`
[display]
width = 640
format = "rgba32"

[demo]
fault_at = 12
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Display.Width != 640 || cfg.Display.Height != 240 {
		t.Fatalf("unexpected display %+v", cfg.Display)
	}
	if cfg.Demo.FaultAt != 12 || !cfg.Demo.Overlay {
		t.Fatalf("unexpected demo %+v", cfg.Demo)
	}

	host, err := cfg.Host()
	if err != nil {
		t.Fatalf("Host: %v", err)
	}
	if host.Format != surface.FormatRGBA32 || host.Width != 640 {
		t.Fatalf("unexpected host config %+v", host)
	}
	if got := cfg.App(); got.FaultAt != 12 || !got.Overlay {
		t.Fatalf("unexpected app config %+v", got)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse("[display]\nwidht = 10\n")
	if err == nil || !strings.Contains(err.Error(), "display.widht") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestHostRejectsDepthFormat(t *testing.T) {
	cfg := Default()
	cfg.Display.Format = "Z16"
	if _, err := cfg.Host(); err == nil {
		t.Fatal("expected error for a depth display format")
	}
	cfg.Display.Format = "rgb565"
	if _, err := cfg.Host(); err == nil {
		t.Fatal("expected error for an unknown format")
	}
}

func TestWriteLoadRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Headless.Enabled = true
	cfg.Headless.Dump = "out.bmp"
	cfg.Demo.Slots = 64

	var buf bytes.Buffer
	if err := Write(&buf, cfg); err != nil {
		t.Fatalf("Write: %v", err)
	}
	path := filepath.Join(t.TempDir(), "rdpgl.toml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}
