package rdpq

import "rdpgl/surface"

type opcode uint8

const (
	opSetColorImage opcode = iota + 1
	opSetZImage
	opSetOtherModes
	opSetScissor
	opSetFillColor
	opFillRect
	opSyncFull
)

func (o opcode) String() string {
	switch o {
	case opSetColorImage:
		return "set_color_image"
	case opSetZImage:
		return "set_z_image"
	case opSetOtherModes:
		return "set_other_modes"
	case opSetScissor:
		return "set_scissor"
	case opSetFillColor:
		return "set_fill_color"
	case opFillRect:
		return "fill_rectangle"
	case opSyncFull:
		return "sync_full"
	default:
		return "unknown"
	}
}

// command is one queued operation. Only the fields used by op are meaningful.
type command struct {
	op    opcode
	surf  *surface.Surface
	mode  uint64
	rect  [4]int
	color Color
	cb    func()
}

// ring is a fixed-size FIFO of commands. head and tail are free-running
// counters, so head-tail is the number of queued commands.
type ring struct {
	head  uint32
	tail  uint32
	slots []command
}

func newRing(size int) ring {
	if size <= 0 {
		size = 1
	}
	return ring{slots: make([]command, size)}
}

func (r *ring) len() int  { return int(r.head - r.tail) }
func (r *ring) full() bool { return r.len() >= len(r.slots) }

func (r *ring) push(cmd command) bool {
	if r.full() {
		return false
	}
	r.slots[r.head%uint32(len(r.slots))] = cmd
	r.head++
	return true
}

func (r *ring) pop() (command, bool) {
	if r.tail == r.head {
		return command{}, false
	}
	i := r.tail % uint32(len(r.slots))
	cmd := r.slots[i]
	// Drop references so surfaces and callbacks can be collected.
	r.slots[i] = command{}
	r.tail++
	return cmd, true
}
