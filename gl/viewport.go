package gl

// Viewport sets the viewport rectangle in window coordinates.
func (c *Context) Viewport(x, y, w, h int) {
	if w < 0 || h < 0 {
		c.setError(InvalidValue)
		return
	}
	c.st.viewport = [4]int{x, y, w, h}
}

// DepthRange maps normalized depth onto [near, far], both clamped to [0,1].
func (c *Context) DepthRange(near, far float64) {
	c.st.depthRange = [2]float64{clampd(near), clampd(far)}
}

// CullFace selects which faces are culled when culling is enabled.
func (c *Context) CullFace(mode Enum) {
	switch mode {
	case Front, Back, FrontAndBack:
		c.st.cullFaceMode = mode
	default:
		c.setError(InvalidEnum)
	}
}

// FrontFace selects the winding of front faces.
func (c *Context) FrontFace(mode Enum) {
	switch mode {
	case CW, CCW:
		c.st.frontFace = mode
	default:
		c.setError(InvalidEnum)
	}
}

// Scissor sets the scissor box, with the origin at the bottom left.
func (c *Context) Scissor(x, y, w, h int) {
	if w < 0 || h < 0 {
		c.setError(InvalidValue)
		return
	}
	box := [4]int{x, y, w, h}
	if box != c.st.scissor {
		c.st.scissor = box
		c.st.scissorDirty = true
	}
}

// updateScissor programs the hardware scissor if it is stale. With the
// scissor test off the whole color target is writable.
func (c *Context) updateScissor() {
	if !c.ConsumeScissorDirty() || c.cur == nil {
		return
	}
	fb := c.cur.Color
	if !c.st.scissorTest {
		c.q.SetScissor(0, 0, fb.Width, fb.Height)
		return
	}
	x, y, w, h := c.st.scissor[0], c.st.scissor[1], c.st.scissor[2], c.st.scissor[3]
	c.q.SetScissor(x, fb.Height-(y+h), x+w, fb.Height-y)
}
