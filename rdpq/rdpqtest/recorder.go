// Package rdpqtest provides a recording rdpq.Queue for tests.
package rdpqtest

import (
	"fmt"

	"rdpgl/rdpq"
	"rdpgl/surface"
)

// Op names a recorded command.
type Op string

const (
	OpSetColorImage Op = "set_color_image"
	OpSetZImage     Op = "set_z_image"
	OpSetOtherModes Op = "set_other_modes"
	OpConfigSet     Op = "config_set"
	OpConfigDisable Op = "config_disable"
	OpSetScissor    Op = "set_scissor"
	OpSetFillColor  Op = "set_fill_color"
	OpFillRect      Op = "fill_rectangle"
	OpFlush         Op = "flush"
	OpSyncFull      Op = "sync_full"
	OpWait          Op = "wait"
	OpClose         Op = "close"
)

// Command is one recorded call.
type Command struct {
	Op      Op
	Surface *surface.Surface
	Mode    uint64
	Config  rdpq.Config
	Rect    [4]int
	Color   rdpq.Color
}

func (c Command) String() string {
	switch c.Op {
	case OpSetColorImage, OpSetZImage:
		if c.Surface == nil {
			return fmt.Sprintf("%s(nil)", c.Op)
		}
		return fmt.Sprintf("%s(%s %dx%d)", c.Op, c.Surface.Format, c.Surface.Width, c.Surface.Height)
	case OpSetOtherModes:
		return fmt.Sprintf("%s(%#x)", c.Op, c.Mode)
	case OpConfigSet, OpConfigDisable:
		return fmt.Sprintf("%s(%#x)", c.Op, c.Config)
	case OpSetScissor, OpFillRect:
		return fmt.Sprintf("%s(%d,%d,%d,%d)", c.Op, c.Rect[0], c.Rect[1], c.Rect[2], c.Rect[3])
	case OpSetFillColor:
		return fmt.Sprintf("%s(%#08x)", c.Op, c.Color.Packed32())
	default:
		return string(c.Op)
	}
}

// Recorder records every call and executes nothing. SyncFull callbacks run
// when the recorder is flushed or waited on, each exactly once.
type Recorder struct {
	Commands []Command

	cfg     rdpq.Config
	color   *surface.Surface
	pending []func()
	closed  bool
}

var _ rdpq.Queue = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{cfg: rdpq.ConfigDefault}
}

func (r *Recorder) record(c Command) { r.Commands = append(r.Commands, c) }

func (r *Recorder) SetColorImage(s *surface.Surface) {
	r.color = s
	r.record(Command{Op: OpSetColorImage, Surface: s})
}

func (r *Recorder) SetZImage(s *surface.Surface) {
	r.record(Command{Op: OpSetZImage, Surface: s})
}

func (r *Recorder) SetOtherModesRaw(mode uint64) {
	r.record(Command{Op: OpSetOtherModes, Mode: mode})
}

func (r *Recorder) ConfigSet(cfg rdpq.Config) rdpq.Config {
	old := r.cfg
	r.cfg = cfg
	r.record(Command{Op: OpConfigSet, Config: cfg})
	return old
}

func (r *Recorder) ConfigDisable(bits rdpq.Config) rdpq.Config {
	old := r.cfg
	r.cfg &^= bits
	r.record(Command{Op: OpConfigDisable, Config: bits})
	return old
}

func (r *Recorder) SetScissor(x0, y0, x1, y1 int) {
	r.record(Command{Op: OpSetScissor, Rect: [4]int{x0, y0, x1, y1}})
}

func (r *Recorder) SetFillColor(c rdpq.Color) {
	r.record(Command{Op: OpSetFillColor, Color: c})
}

func (r *Recorder) FillRectangle(x0, y0, x1, y1 int) {
	r.record(Command{Op: OpFillRect, Rect: [4]int{x0, y0, x1, y1}})
}

func (r *Recorder) Flush() {
	r.record(Command{Op: OpFlush})
	r.drain()
}

func (r *Recorder) SyncFull(cb func()) {
	r.record(Command{Op: OpSyncFull})
	if cb != nil {
		r.pending = append(r.pending, cb)
	}
}

func (r *Recorder) Wait() {
	r.record(Command{Op: OpWait})
	r.drain()
}

func (r *Recorder) Close() error {
	if r.closed {
		return rdpq.ErrClosed
	}
	r.closed = true
	r.drain()
	r.record(Command{Op: OpClose})
	return nil
}

func (r *Recorder) drain() {
	cbs := r.pending
	r.pending = nil
	for _, cb := range cbs {
		cb()
	}
}

// Config returns the current configuration word.
func (r *Recorder) Config() rdpq.Config { return r.cfg }

// ColorImage returns the last color image set.
func (r *Recorder) ColorImage() *surface.Surface { return r.color }

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool { return r.closed }

// Pending returns the number of SyncFull callbacks not yet run.
func (r *Recorder) Pending() int { return len(r.pending) }

// Ops returns the recorded op names.
func (r *Recorder) Ops() []Op {
	ops := make([]Op, len(r.Commands))
	for i, c := range r.Commands {
		ops[i] = c.Op
	}
	return ops
}

// Filter returns the recorded commands with the given op.
func (r *Recorder) Filter(op Op) []Command {
	var out []Command
	for _, c := range r.Commands {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded commands but keeps state.
func (r *Recorder) Reset() { r.Commands = nil }
