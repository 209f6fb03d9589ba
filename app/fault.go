package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"

	"rdpgl/gl"
	"rdpgl/internal/buildinfo"
)

// showFault is the context's fault handler. It logs a stack trace, paints a
// diagnostic over the current color target and presents it. Afterwards the
// app is halted.
func (a *App) showFault(c *gl.Context, f *gl.Fault) {
	a.fault = f

	l := a.h.Logger()
	l.WriteLineString(fmt.Sprintf("app: fault at frame %d: %v", a.frame, f))
	for _, line := range strings.Split(string(debug.Stack()), "\n") {
		if line == "" {
			continue
		}
		l.WriteLineString(line)
	}

	fb := c.CurrentFramebuffer()
	if fb == nil || fb.Color == nil {
		return
	}

	// The rasterizer may still own the surface.
	c.Finish()

	d := surfaceDisplay{s: fb.Color}
	w, h := d.Size()
	d.FillRectangle(0, 0, w, h, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	lines := []string{
		"rdpgl fault:",
		"op: " + f.Op,
		"reason: " + f.Reason,
		fmt.Sprintf("frame: %d", a.frame),
		"build: " + buildinfo.Short(),
	}
	drawLines(d, 0, 0, lines, color.RGBA{A: 255})

	a.h.Display().Show(fb.Color)
}
