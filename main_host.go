//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"rdpgl/app"
	"rdpgl/hal"
	"rdpgl/internal/config"

	"golang.org/x/image/bmp"
)

func main() {
	cfg := config.Default()
	configPath := flag.String("config", "", "Load settings from a TOML file; flags override it.")
	dumpConfig := flag.Bool("dumpconfig", false, "Print the effective settings as TOML and exit.")
	flag.BoolVar(&cfg.Headless.Enabled, "headless", cfg.Headless.Enabled, "Run without a window.")
	flag.IntVar(&cfg.Headless.Hz, "hz", cfg.Headless.Hz, "Frame rate in headless mode.")
	flag.Uint64Var(&cfg.Headless.Frames, "frames", cfg.Headless.Frames, "Stop after N frames in headless mode (0 = run forever).")
	flag.StringVar(&cfg.Headless.Dump, "dump", cfg.Headless.Dump, "Headless mode: write the last presented frame to this BMP file.")
	flag.IntVar(&cfg.Display.Width, "width", cfg.Display.Width, "Display width.")
	flag.IntVar(&cfg.Display.Height, "height", cfg.Display.Height, "Display height.")
	flag.IntVar(&cfg.Display.Buffers, "buffers", cfg.Display.Buffers, "Swap chain length (at least 2).")
	flag.StringVar(&cfg.Display.Format, "format", cfg.Display.Format, "Display format: RGBA16|RGBA32.")
	flag.IntVar(&cfg.Display.Scale, "scale", cfg.Display.Scale, "Window scale factor.")
	flag.BoolVar(&cfg.Demo.Overlay, "overlay", cfg.Demo.Overlay, "Draw the frame counter.")
	flag.Uint64Var(&cfg.Demo.FaultAt, "fault-at", cfg.Demo.FaultAt, "Enable stencil testing on frame N to show the fault screen.")
	flag.BoolVar(&cfg.Demo.DecoupleFog, "decouple-fog", cfg.Demo.DecoupleFog, "Do not let FOG toggle LIGHTING.")
	flag.Parse()

	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fail(err)
		}
		cfg = loaded
		// Second pass: command-line flags win over the file.
		flag.Parse()
	}
	if *dumpConfig {
		if err := config.Write(os.Stdout, cfg); err != nil {
			fail(err)
		}
		return
	}

	host, err := cfg.Host()
	if err != nil {
		fail(err)
	}

	var a *app.App
	newApp := func(h hal.HAL) (func() error, error) {
		var err error
		a, err = app.New(h, cfg.App())
		if err != nil {
			return nil, err
		}
		return a.Step, nil
	}

	if cfg.Headless.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		sc, err := hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			Enabled: true,
			Hz:      cfg.Headless.Hz,
			Frames:  cfg.Headless.Frames,
			Host:    host,
		})
		if a != nil {
			if cerr := a.Close(); err == nil {
				err = cerr
			}
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			fail(err)
		}
		if cfg.Headless.Dump != "" {
			if err := writeBMP(cfg.Headless.Dump, sc); err != nil {
				fail(err)
			}
		}
		if a != nil && a.Fault() != nil {
			os.Exit(2)
		}
		return
	}

	err = hal.RunWindow(newApp, hal.WindowConfig{Scale: cfg.Display.Scale, Host: host})
	if a != nil {
		if cerr := a.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		fail(err)
	}
}

func writeBMP(path string, sc *hal.SwapChain) error {
	img := sc.Frame()
	if img == nil {
		return errors.New("dump: no frame has been presented")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bmp.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("dump: %w", err)
	}
	return f.Close()
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
