// Package app is the demo that drives the GL core on the host: an animated
// clear, a scissored box bouncing across the screen and a frame counter.
package app

import (
	"fmt"
	"image/color"
	"math"

	"rdpgl/gl"
	"rdpgl/hal"
	"rdpgl/internal/buildinfo"
	"rdpgl/rdpq"
)

// Config selects demo behaviour.
type Config struct {
	// Overlay draws the frame counter into every frame.
	Overlay bool
	// FaultAt enables stencil testing on that frame (1-based) to bring up
	// the fault screen. 0 never does.
	FaultAt uint64
	// DecoupleFog is passed through to gl.Config.
	DecoupleFog bool
	// Slots sizes the rasterizer ring (0 = default).
	Slots int
}

// App owns a GL context rendering into the HAL swap chain.
type App struct {
	h     hal.HAL
	cfg   Config
	q     *rdpq.Soft
	gl    *gl.Context
	frame uint64
	fault *gl.Fault
}

var newQueue = rdpq.NewSoft

// New starts the rasterizer and creates the GL context. A fault during
// context creation is returned as an error.
func New(h hal.HAL, cfg Config) (a *App, err error) {
	q := newQueue(rdpq.SoftConfig{Slots: cfg.Slots, Logger: h.Logger()})
	a = &App{h: h, cfg: cfg, q: q}

	h.Logger().WriteLineString("app: rdpgl " + buildinfo.String())

	defer func() {
		if f := recoverFault(recover()); f != nil {
			q.Close()
			a, err = nil, f
		}
	}()
	c, err := gl.New(gl.Config{
		Display:     h.Display(),
		Memory:      h.Memory(),
		Logger:      h.Logger(),
		Queue:       a.q,
		OnFault:     a.showFault,
		DecoupleFog: cfg.DecoupleFog,
	})
	if err != nil {
		q.Close()
		return nil, err
	}
	a.gl = c
	return a, nil
}

// Step renders and presents one frame. After a fault the app is halted:
// the fault screen stays up and Step does nothing.
func (a *App) Step() (err error) {
	if a.fault != nil {
		return nil
	}
	defer func() {
		if f := recoverFault(recover()); f != nil {
			a.fault = f
		}
	}()

	a.render()

	if err := a.q.Err(); err != nil {
		return fmt.Errorf("app: frame %d: %w", a.frame, err)
	}
	return nil
}

// Fault returns the fault that halted the app, if any.
func (a *App) Fault() *gl.Fault { return a.fault }

// Frames returns the number of frames rendered.
func (a *App) Frames() uint64 { return a.frame }

// Close waits for the rasterizer and releases the context.
func (a *App) Close() error {
	err := a.gl.Close()
	a.h.Logger().WriteLineString(fmt.Sprintf("app: %d frames, %d rasterizer commands", a.frame, a.q.Executed()))
	return err
}

func (a *App) render() {
	c := a.gl
	n := a.frame
	a.frame++

	if a.cfg.FaultAt != 0 && a.frame == a.cfg.FaultAt {
		c.Enable(gl.StencilTest)
	}

	fb := c.CurrentFramebuffer().Color
	r, g, b := palette(n)
	c.ClearColor(r, g, b, 1)
	c.Clear(gl.ColorBufferBit | gl.DepthBufferBit)

	bw, bh := fb.Width/4, fb.Height/4
	c.Enable(gl.ScissorTest)
	c.Scissor(bounce(int(n)*2, fb.Width-bw), bounce(int(n)*3/2, fb.Height-bh), bw, bh)
	c.ClearColor(1-r, 1-g, 1-b, 1)
	c.Clear(gl.ColorBufferBit)
	c.Disable(gl.ScissorTest)

	if a.cfg.Overlay {
		c.Finish()
		drawLines(surfaceDisplay{s: fb}, 2, 2, []string{fmt.Sprintf("frame %d", a.frame)},
			color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}

	c.SwapBuffers()
}

// palette cycles smoothly through hues.
func palette(n uint64) (r, g, b float32) {
	t := float64(n) * 0.05
	r = float32(0.5 + 0.5*math.Sin(t))
	g = float32(0.5 + 0.5*math.Sin(t+2*math.Pi/3))
	b = float32(0.5 + 0.5*math.Sin(t+4*math.Pi/3))
	return r, g, b
}

// bounce folds v into [0, span] as a triangle wave.
func bounce(v, span int) int {
	if span <= 0 {
		return 0
	}
	p := v % (2 * span)
	if p > span {
		p = 2*span - p
	}
	return p
}

func recoverFault(r any) *gl.Fault {
	if r == nil {
		return nil
	}
	if f, ok := r.(*gl.Fault); ok {
		return f
	}
	panic(r)
}
