package gl

import (
	"rdpgl/rdpq"
	"rdpgl/surface"
)

// depthClearScale maps a [0,1] clear depth onto the packed 16-bit depth
// format. The low two bits stay clear at depth 1.0.
const depthClearScale = 0xFFFC

// Clear fills the buffers selected by mask with the rectangle fill fast path.
func (c *Context) Clear(mask Bitfield) {
	if c.cur == nil {
		c.fault("glClear", "no target is set")
	}

	c.q.SetOtherModesRaw(rdpq.SOMCycleFill)
	c.st.rendermodeDirty = true

	c.updateScissor()

	if mask&(StencilBufferBit|AccumBufferBit) != 0 {
		c.fault("glClear", "only color and depth buffers are supported")
	}

	fb := c.cur
	w, h := fb.Color.Width, fb.Color.Height

	if mask&DepthBufferBit != 0 {
		if fb.Depth == nil {
			c.fault("glClear", "framebuffer has no depth buffer")
		}
		c.clearDepthBuffer(fb, w, h)
	}

	if mask&ColorBufferBit != 0 {
		c.q.SetFillColor(rdpq.RGBA32(
			clampfToU8(c.st.clearColor[0]),
			clampfToU8(c.st.clearColor[1]),
			clampfToU8(c.st.clearColor[2]),
			clampfToU8(c.st.clearColor[3])))
		c.q.FillRectangle(0, 0, w, h)
	}
}

// clearDepthBuffer fills the depth buffer by pointing the color output at
// it, viewed as an RGBA16 surface of the same size, and restores the color
// target before returning.
func (c *Context) clearDepthBuffer(fb *Framebuffer, w, h int) {
	view, err := fb.Depth.View(surface.FormatRGBA16, w, h, w*2)
	if err != nil {
		c.fault("glClear", err.Error())
	}

	old := c.q.ConfigDisable(rdpq.ConfigAutoScissor)

	c.q.SetColorImage(view)
	c.q.SetFillColor(rdpq.ColorFromPacked16(uint16(c.st.clearDepth * depthClearScale)))
	c.q.FillRectangle(0, 0, w, h)

	c.q.SetColorImage(fb.Color)

	c.q.ConfigSet(old)
}

// ClearColor sets the color used by Clear. Values are clamped when used.
func (c *Context) ClearColor(r, g, b, a float32) {
	c.st.clearColor = [4]float32{r, g, b, a}
}

// ClearDepth sets the depth used by Clear, clamped to [0,1].
func (c *Context) ClearDepth(d float64) {
	c.st.clearDepth = clampd(d)
}

func clampfToU8(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 0xFF
	}
	return uint8(v * 255)
}

func clampd(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
