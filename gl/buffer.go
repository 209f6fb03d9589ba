package gl

// DrawBuffer selects the color output. Only single, front-facing targets
// exist; back, right and auxiliary buffers are GL_INVALID_OPERATION.
func (c *Context) DrawBuffer(buf Enum) {
	switch buf {
	case None, FrontLeft, Front, Left, FrontAndBack:
		c.st.drawBuffer = buf
	case FrontRight, BackLeft, BackRight, Back, Right, Aux0, Aux1, Aux2, Aux3:
		c.setError(InvalidOperation)
	default:
		c.setError(InvalidEnum)
	}
}

// RenderMode selects the rasterization mode. Only GL_RENDER is available.
func (c *Context) RenderMode(mode Enum) {
	switch mode {
	case Render:
	case Select, Feedback:
		c.fault("glRenderMode", "select and feedback modes are not supported")
	default:
		c.setError(InvalidEnum)
	}
}

// Flush asks the rasterizer to start on everything queued and returns
// immediately.
func (c *Context) Flush() { c.q.Flush() }

// Finish blocks until every queued command has executed.
func (c *Context) Finish() { c.q.Wait() }

// TypeSize returns the byte size of a GL data type, or 0 when the type is
// not one of the eight numeric types. Callers must treat 0 as an error.
func TypeSize(typ Enum) uint32 {
	switch typ {
	case Byte, UnsignedByte:
		return 1
	case Short, UnsignedShort:
		return 2
	case Int, UnsignedInt, Float:
		return 4
	case Double:
		return 8
	default:
		return 0
	}
}
