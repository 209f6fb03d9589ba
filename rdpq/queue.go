// Package rdpq is the bridge to the rasterizer command processor.
//
// Commands are appended to a FIFO and drained asynchronously. Submission order
// is preserved; completion is only observable through Flush (publish, no
// wait), Wait (block until drained) and SyncFull (callback once everything
// queued before it has executed).
package rdpq

import "rdpgl/surface"

// Other-modes words. Only the cycle type field is interpreted here.
const (
	SOMCycleShift        = 52
	SOMCycleMask  uint64 = 3 << SOMCycleShift

	SOMCycle1    uint64 = 0 << SOMCycleShift
	SOMCycle2    uint64 = 1 << SOMCycleShift
	SOMCycleCopy uint64 = 2 << SOMCycleShift
	SOMCycleFill uint64 = 3 << SOMCycleShift
)

// Config toggles automatic behaviours of the queue.
type Config uint32

const (
	ConfigAutoSyncPipe Config = 1 << iota
	ConfigAutoSyncLoad
	ConfigAutoSyncTile
	// ConfigAutoScissor resets the scissor to the full color image whenever
	// the color image changes.
	ConfigAutoScissor

	ConfigDefault = ConfigAutoSyncPipe | ConfigAutoSyncLoad | ConfigAutoSyncTile | ConfigAutoScissor
)

// Queue is the command interface the GL layer drives.
//
// Implementations are used from a single producer goroutine.
type Queue interface {
	SetColorImage(s *surface.Surface)
	SetZImage(s *surface.Surface)
	SetOtherModesRaw(mode uint64)
	// ConfigSet replaces the configuration and returns the previous one.
	ConfigSet(cfg Config) Config
	// ConfigDisable clears bits and returns the previous configuration.
	ConfigDisable(bits Config) Config
	SetScissor(x0, y0, x1, y1 int)
	SetFillColor(c Color)
	// FillRectangle fills [x0,x1)x[y0,y1) with the fill color. Requires fill mode.
	FillRectangle(x0, y0, x1, y1 int)

	Flush()
	SyncFull(cb func())
	Wait()
	Close() error
}
