package hal

import (
	"errors"

	"rdpgl/surface"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var (
	ErrOutOfMemory  = errors.New("hal: out of uncached memory")
	ErrBadAlignment = errors.New("hal: alignment must be a power of two")
)

// Display is the swap chain: a small fixed pool of presentable surfaces.
type Display interface {
	// TryLock returns the next free surface for rendering, or nil when every
	// surface is queued for or being shown. It never blocks.
	TryLock() *surface.Surface
	// Show presents a locked surface. Ownership returns to the swap chain; the
	// surface becomes free again once a later surface replaces it on screen.
	Show(s *surface.Surface)
}

// Memory hands out uncached, aligned memory shared with the rasterizer.
type Memory interface {
	AllocUncachedAligned(align, size int) ([]byte, error)
	FreeUncached(buf []byte)
}

// HAL provides the only contact point between the GL layer and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Memory() Memory
}
