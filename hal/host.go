//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"rdpgl/surface"
)

// HostConfig describes the emulated console on a desktop host.
type HostConfig struct {
	Width   int
	Height  int
	Buffers int
	Format  surface.Format
	// Budget caps uncached memory in bytes (0 = unlimited).
	Budget int
	Out    io.Writer
}

type hostHAL struct {
	logger *hostLogger
	disp   *SwapChain
	mem    *UncachedMemory
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	return newHost(cfg)
}

func newHost(cfg HostConfig) *hostHAL {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	logger := &hostLogger{w: cfg.Out}
	disp := NewSwapChain(SwapChainConfig{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Buffers: cfg.Buffers,
		Format:  cfg.Format,
	})
	logger.WriteLineString(fmt.Sprintf("hal: display %dx%d %s, %d buffers",
		disp.Width(), disp.Height(), disp.Format(), disp.Buffers()))
	return &hostHAL{
		logger: logger,
		disp:   disp,
		mem:    NewUncachedMemory(cfg.Budget),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return h.disp }
func (h *hostHAL) Memory() Memory   { return h.mem }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLogger returns a Logger writing lines to w.
func NewLogger(w io.Writer) Logger { return &hostLogger{w: w} }

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
