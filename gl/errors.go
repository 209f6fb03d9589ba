package gl

// Fault is an unrecoverable configuration fault: a request for a feature
// the hardware has no path for. Contexts panic with a *Fault.
type Fault struct {
	Op     string
	Reason string
}

func (f *Fault) Error() string { return "gl: " + f.Op + ": " + f.Reason }

// GetError returns the pending error and clears it. Only the most recent
// error is kept.
func (c *Context) GetError() Enum {
	err := c.st.err
	c.st.err = NoError
	return err
}

func (c *Context) setError(err Enum) {
	if err == NoError {
		panic("gl: setError called with GL_NO_ERROR")
	}
	c.st.err = err
}

func (c *Context) fault(op, reason string) {
	f := &Fault{Op: op, Reason: reason}
	c.log.WriteLineString("gl: fault: " + op + ": " + reason)
	if !c.faulted {
		c.faulted = true
		if c.cfg.OnFault != nil {
			c.cfg.OnFault(c, f)
		}
	}
	panic(f)
}
