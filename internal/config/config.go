//go:build !tinygo

// Package config is the on-disk form of the host command line. A file is
// loaded over the defaults and flags given on the command line win over the
// file.
package config

import (
	"fmt"
	"io"
	"strings"

	"rdpgl/app"
	"rdpgl/hal"
	"rdpgl/surface"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Display  Display  `toml:"display"`
	Headless Headless `toml:"headless"`
	Demo     Demo     `toml:"demo"`
}

type Display struct {
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Buffers int    `toml:"buffers"`
	Format  string `toml:"format"`
	Scale   int    `toml:"scale"`
	// Budget caps uncached memory in bytes (0 = unlimited).
	Budget  int    `toml:"budget"`
}

type Headless struct {
	Enabled bool   `toml:"enabled"`
	Hz      int    `toml:"hz"`
	Frames  uint64 `toml:"frames"`
	Dump    string `toml:"dump"`
}

type Demo struct {
	Overlay     bool   `toml:"overlay"`
	FaultAt     uint64 `toml:"fault_at"`
	DecoupleFog bool   `toml:"decouple_fog"`
	Slots       int    `toml:"slots"`
}

func Default() Config {
	return Config{
		Display: Display{
			Width:   320,
			Height:  240,
			Buffers: 3,
			Format:  surface.FormatRGBA16.String(),
			Scale:   2,
		},
		Headless: Headless{Hz: 60},
		Demo:     Demo{Overlay: true},
	}
}

// Load reads a TOML file over the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse is Load for in-memory TOML.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return fmt.Errorf("unknown keys: %s", strings.Join(names, ", "))
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Host returns the HAL configuration.
func (c Config) Host() (hal.HostConfig, error) {
	format, err := surface.ParseFormat(c.Display.Format)
	if err != nil {
		return hal.HostConfig{}, err
	}
	if format != surface.FormatRGBA16 && format != surface.FormatRGBA32 {
		return hal.HostConfig{}, fmt.Errorf("config: display format %s is not a color format", format)
	}
	return hal.HostConfig{
		Width:   c.Display.Width,
		Height:  c.Display.Height,
		Buffers: c.Display.Buffers,
		Format:  format,
		Budget:  c.Display.Budget,
	}, nil
}

// App returns the demo configuration.
func (c Config) App() app.Config {
	return app.Config{
		Overlay:     c.Demo.Overlay,
		FaultAt:     c.Demo.FaultAt,
		DecoupleFog: c.Demo.DecoupleFog,
		Slots:       c.Demo.Slots,
	}
}
