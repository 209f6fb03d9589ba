package rdpq

import (
	"fmt"

	"rdpgl/surface"
)

// executor is the software rasterizer: the register file plus the fill unit.
type executor struct {
	color   *surface.Surface
	z       *surface.Surface
	mode    uint64
	scissor [4]int
	hasClip bool
	fill    Color
}

func (e *executor) exec(cmd command) error {
	switch cmd.op {
	case opSetColorImage:
		e.color = cmd.surf
	case opSetZImage:
		e.z = cmd.surf
	case opSetOtherModes:
		e.mode = cmd.mode
	case opSetScissor:
		e.scissor = cmd.rect
		e.hasClip = true
	case opSetFillColor:
		e.fill = cmd.color
	case opFillRect:
		if err := e.fillRect(cmd.rect); err != nil {
			return fmt.Errorf("%s: %w", cmd.op, err)
		}
	case opSyncFull:
		if cmd.cb != nil {
			cmd.cb()
		}
	default:
		return fmt.Errorf("rdpq: unknown opcode %d", cmd.op)
	}
	return nil
}

func (e *executor) fillRect(r [4]int) error {
	if e.mode&SOMCycleMask != SOMCycleFill {
		return ErrNotFillMode
	}
	img := e.color
	if img == nil {
		return ErrNoColorImage
	}

	x0, y0, x1, y1 := r[0], r[1], r[2], r[3]
	if e.hasClip {
		x0, y0 = maxInt(x0, e.scissor[0]), maxInt(y0, e.scissor[1])
		x1, y1 = minInt(x1, e.scissor[2]), minInt(y1, e.scissor[3])
	}
	x0, y0 = maxInt(x0, 0), maxInt(y0, 0)
	x1, y1 = minInt(x1, img.Width), minInt(y1, img.Height)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	switch img.Format {
	case surface.FormatRGBA16:
		v := e.fill.Packed16()
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				img.Set16(x, y, v)
			}
		}
	case surface.FormatRGBA32:
		v := e.fill.Packed32()
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				img.Set32(x, y, v)
			}
		}
	default:
		return fmt.Errorf("%w: %s", ErrFormat, img.Format)
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
