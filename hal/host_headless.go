//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	// Frames stops the runner after N steps (0 = run until ctx is done).
	Frames uint64
	Host   HostConfig
}

// RunHeadless runs the app without opening a window. It returns the swap chain
// so callers can inspect the last presented frame.
func RunHeadless(ctx context.Context, newApp func(HAL) (func() error, error), cfg HeadlessConfig) (*SwapChain, error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	h := newHost(cfg.Host)
	step, err := newApp(h)
	if err != nil {
		return h.disp, err
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return h.disp, fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var frame uint64
	for {
		select {
		case <-ctx.Done():
			return h.disp, ctx.Err()
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					return h.disp, err
				}
			}
			frame++
			if cfg.Frames > 0 && frame >= cfg.Frames {
				return h.disp, nil
			}
		}
	}
}
