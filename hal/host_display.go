//go:build !tinygo

package hal

import (
	"image"
	"sync"

	"rdpgl/surface"
)

type bufState uint8

const (
	bufFree bufState = iota
	bufLocked
	bufShown
)

// SwapChainConfig configures a host swap chain.
type SwapChainConfig struct {
	Width   int
	Height  int
	Buffers int
	Format  surface.Format
}

// SwapChain is an in-memory Display with a fixed pool of surfaces.
//
// A surface cycles free → locked (TryLock) → shown (Show) → free, the last
// step happening when another surface is shown in its place.
type SwapChain struct {
	mu       sync.Mutex
	cfg      SwapChainConfig
	surfaces []*surface.Surface
	state    []bufState
	shown    int
	next     int
	frames   uint64
}

var _ Display = (*SwapChain)(nil)

// NewSwapChain allocates the surface pool. Defaults: 320x240, 3 buffers, RGBA16.
func NewSwapChain(cfg SwapChainConfig) *SwapChain {
	if cfg.Width <= 0 {
		cfg.Width = 320
	}
	if cfg.Height <= 0 {
		cfg.Height = 240
	}
	if cfg.Buffers < 2 {
		cfg.Buffers = 3
	}
	if cfg.Format == surface.FormatNone {
		cfg.Format = surface.FormatRGBA16
	}
	sc := &SwapChain{}
	sc.reset(cfg)
	return sc
}

func (sc *SwapChain) reset(cfg SwapChainConfig) {
	sc.cfg = cfg
	sc.surfaces = make([]*surface.Surface, cfg.Buffers)
	sc.state = make([]bufState, cfg.Buffers)
	for i := range sc.surfaces {
		sc.surfaces[i] = surface.New(cfg.Format, cfg.Width, cfg.Height)
	}
	sc.shown = -1
	sc.next = 0
}

// Resize replaces the surface pool with one of the new resolution, as if the
// video mode changed. Surfaces lent out before the call are orphaned: showing
// them later is ignored.
func (sc *SwapChain) Resize(width, height int) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	cfg := sc.cfg
	cfg.Width = width
	cfg.Height = height
	sc.reset(cfg)
}

func (sc *SwapChain) TryLock() *surface.Surface {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	n := len(sc.surfaces)
	for i := 0; i < n; i++ {
		idx := (sc.next + i) % n
		if sc.state[idx] != bufFree {
			continue
		}
		sc.state[idx] = bufLocked
		sc.next = (idx + 1) % n
		return sc.surfaces[idx]
	}
	return nil
}

func (sc *SwapChain) Show(s *surface.Surface) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	idx := sc.indexOf(s)
	if idx < 0 || sc.state[idx] != bufLocked {
		return
	}
	if sc.shown >= 0 {
		sc.state[sc.shown] = bufFree
	}
	sc.state[idx] = bufShown
	sc.shown = idx
	sc.frames++
}

func (sc *SwapChain) indexOf(s *surface.Surface) int {
	for i, p := range sc.surfaces {
		if p == s {
			return i
		}
	}
	return -1
}

func (sc *SwapChain) Width() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.cfg.Width
}

func (sc *SwapChain) Height() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.cfg.Height
}

func (sc *SwapChain) Format() surface.Format {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.cfg.Format
}

func (sc *SwapChain) Buffers() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return len(sc.surfaces)
}

// Frames returns the number of surfaces shown so far.
func (sc *SwapChain) Frames() uint64 {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.frames
}

// Locked returns how many surfaces are currently lent out for rendering.
func (sc *SwapChain) Locked() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	n := 0
	for _, st := range sc.state {
		if st == bufLocked {
			n++
		}
	}
	return n
}

// Frame returns a copy of the surface on screen, or nil before the first Show.
func (sc *SwapChain) Frame() *image.RGBA {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.shown < 0 {
		return nil
	}
	return sc.surfaces[sc.shown].Image()
}

// snapshotRGBA copies the surface on screen into dst as RGBA, reporting its size.
func (sc *SwapChain) snapshotRGBA(dst []byte) (w, h int, ok bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.shown < 0 {
		return sc.cfg.Width, sc.cfg.Height, false
	}
	s := sc.surfaces[sc.shown]
	if len(dst) < s.Width*s.Height*4 {
		return s.Width, s.Height, false
	}
	s.CopyRGBA(dst)
	return s.Width, s.Height, true
}
