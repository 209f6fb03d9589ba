package gl

import (
	"errors"
	"fmt"
	"time"

	"rdpgl/surface"
)

// depthAlign is the alignment the rasterizer requires for the Z buffer.
const depthAlign = 64

var errExhausted = errors.New("retries exhausted")

// Framebuffer is a color target plus its depth buffer.
//
// For the default framebuffer Color is lent by the swap chain for one frame;
// Depth is owned by the context and always matches Color's size.
type Framebuffer struct {
	Color *surface.Surface
	Depth *surface.Surface
}

// pollBounded calls try up to attempts times, sleeping interval between
// failed attempts.
func pollBounded[T any](attempts int, interval time.Duration, try func() (T, bool)) (T, error) {
	var zero T
	for i := 0; i < attempts; i++ {
		if v, ok := try(); ok {
			return v, nil
		}
		if i+1 < attempts {
			time.Sleep(interval)
		}
	}
	return zero, fmt.Errorf("%w after %d attempts", errExhausted, attempts)
}

// BindFramebuffer makes fb the render target. A nil fb rebinds the default
// framebuffer. Sizes are not validated.
func (c *Context) BindFramebuffer(fb *Framebuffer) {
	if fb == nil {
		fb = &c.def
	}
	c.bindFramebuffer(fb)
}

func (c *Context) bindFramebuffer(fb *Framebuffer) {
	c.cur = fb
	c.q.SetColorImage(fb.Color)
	c.q.SetZImage(fb.Depth)
	// A new color image resets the hardware scissor.
	c.st.scissorDirty = true
}

// CurrentFramebuffer returns the active render target.
func (c *Context) CurrentFramebuffer() *Framebuffer { return c.cur }

// DefaultFramebuffer returns the swap-chain backed framebuffer.
func (c *Context) DefaultFramebuffer() *Framebuffer { return &c.def }

// NewFramebuffer allocates an off-screen framebuffer whose color and depth
// buffers are both owned by the caller until FreeFramebuffer.
func (c *Context) NewFramebuffer(format surface.Format, width, height int) (*Framebuffer, error) {
	if format != surface.FormatRGBA16 && format != surface.FormatRGBA32 {
		return nil, fmt.Errorf("gl: unsupported framebuffer format %s", format)
	}
	color := surface.New(format, width, height)
	depth, err := c.allocDepth(width, height)
	if err != nil {
		return nil, err
	}
	return &Framebuffer{Color: color, Depth: depth}, nil
}

// FreeFramebuffer releases an off-screen framebuffer. The default
// framebuffer cannot be freed this way.
func (c *Context) FreeFramebuffer(fb *Framebuffer) {
	if fb == nil || fb == &c.def {
		c.setError(InvalidOperation)
		return
	}
	if c.cur == fb {
		c.BindFramebuffer(nil)
	}
	if fb.Depth != nil {
		c.mem.FreeUncached(fb.Depth.Buf)
		fb.Depth = nil
	}
	fb.Color = nil
}

func (c *Context) allocDepth(width, height int) (*surface.Surface, error) {
	size := width * height * 2
	buf, err := c.mem.AllocUncachedAligned(depthAlign, size)
	if err != nil {
		return nil, fmt.Errorf("gl: depth buffer %dx%d: %w", width, height, err)
	}
	return surface.Make(surface.FormatZ16, width, height, width*2, buf)
}

// acquireDefaultFramebuffer locks the next swap-chain surface and makes the
// default framebuffer current, reallocating the depth buffer when the
// surface size changed.
func (c *Context) acquireDefaultFramebuffer() {
	color, err := pollBounded(c.cfg.AcquireAttempts, c.cfg.AcquireInterval, func() (*surface.Surface, bool) {
		s := c.disp.TryLock()
		return s, s != nil
	})
	if err != nil {
		c.fault("acquire framebuffer", "no display surface: "+err.Error())
	}

	fb := &c.def
	if fb.Depth != nil && (fb.Depth.Width != color.Width || fb.Depth.Height != color.Height) {
		c.mem.FreeUncached(fb.Depth.Buf)
		fb.Depth = nil
	}

	fb.Color = color

	if fb.Depth == nil {
		depth, err := c.allocDepth(color.Width, color.Height)
		if err != nil {
			c.fault("acquire framebuffer", err.Error())
		}
		fb.Depth = depth
		c.logf("gl: depth buffer %dx%d (%d bytes)", depth.Width, depth.Height, depth.SizeBytes())
	}

	c.bindFramebuffer(fb)
}

// SwapBuffers presents the default framebuffer once the rasterizer has
// finished it and immediately acquires the next one. Rendering of the
// presented frame may still be in flight on return.
func (c *Context) SwapBuffers() {
	color := c.def.Color
	disp := c.disp
	c.q.SyncFull(func() { disp.Show(color) })
	c.q.Flush()
	c.acquireDefaultFramebuffer()
}
