// Package gl implements a fixed-function, immediate-mode GL 1.x surface on
// top of an asynchronous rectangle/triangle rasterizer.
//
// A Context owns all pipeline state, the depth buffer of the default
// framebuffer and the command queue. It is driven from one goroutine; the
// rasterizer runs concurrently behind rdpq.Queue and is only synchronized
// through Flush, Finish and SwapBuffers.
//
// Two failure tiers exist. Recoverable GL errors (invalid enum, invalid
// operation, ...) land in a single pending-error slot read by GetError.
// Requests the hardware can never honour (stencil, evaluators, select mode,
// ...) are configuration faults: the context logs a diagnostic and panics
// with a *Fault.
package gl

import (
	"errors"
	"fmt"
	"io"
	"time"

	"rdpgl/hal"
	"rdpgl/rdpq"
)

var (
	ErrClosed    = errors.New("gl: context closed")
	ErrNoDisplay = errors.New("gl: no display")
	ErrNoMemory  = errors.New("gl: no uncached memory allocator")
)

// Config wires a context to the platform.
type Config struct {
	Display hal.Display
	Memory  hal.Memory
	Logger  hal.Logger

	// Queue is the command queue. When nil, New starts an rdpq.Soft queue.
	Queue rdpq.Queue

	Subsystems Subsystems

	// AcquireAttempts bounds swap-chain polling per frame. Defaults to 200.
	AcquireAttempts int
	// AcquireInterval is the pause between polls. Defaults to 1ms.
	AcquireInterval time.Duration

	// OnFault runs once, on the first configuration fault, before the
	// context panics. It must not panic itself.
	OnFault func(c *Context, f *Fault)

	// DecoupleFog stops FOG from also toggling LIGHTING.
	DecoupleFog bool
}

func (cfg *Config) setDefaults() {
	if cfg.Logger == nil {
		cfg.Logger = hal.NewLogger(io.Discard)
	}
	if cfg.AcquireAttempts <= 0 {
		cfg.AcquireAttempts = 200
	}
	if cfg.AcquireInterval <= 0 {
		cfg.AcquireInterval = time.Millisecond
	}
}

type texGen struct {
	enabled bool
}

type light struct {
	enabled bool
}

// state is every fixed-function toggle and parameter the context tracks.
type state struct {
	err Enum

	drawBuffer Enum
	clearColor [4]float32
	clearDepth float64

	scissorTest  bool
	scissorDirty bool
	scissor      [4]int // x, y, w, h; GL origin is bottom-left

	depthTest       bool
	texture1D       bool
	texture2D       bool
	blend           bool
	alphaTest       bool
	dither          bool
	fog             bool
	multisample     bool
	rendermodeDirty bool

	cullFace     bool
	cullFaceMode Enum
	frontFace    Enum

	lighting      bool
	lights        [MaxLights]light
	colorMaterial bool
	sGen          texGen
	tGen          texGen
	rGen          texGen
	qGen          texGen
	normalize     bool

	depthRange [2]float64
	viewport   [4]int
}

// Context is the GL state machine. It is not safe for concurrent use.
type Context struct {
	cfg  Config
	q    rdpq.Queue
	disp hal.Display
	mem  hal.Memory
	log  hal.Logger

	st state

	cur *Framebuffer
	def Framebuffer

	faulted bool
	closed  bool
}

// New builds the command queue, initializes subsystems in their fixed order,
// applies GL defaults and acquires the first default framebuffer.
func New(cfg Config) (*Context, error) {
	if cfg.Display == nil {
		return nil, ErrNoDisplay
	}
	if cfg.Memory == nil {
		return nil, ErrNoMemory
	}
	cfg.setDefaults()

	c := &Context{
		cfg:  cfg,
		disp: cfg.Display,
		mem:  cfg.Memory,
		log:  cfg.Logger,
	}

	// Nothing may emit commands before the queue exists.
	c.q = cfg.Queue
	if c.q == nil {
		c.q = rdpq.NewSoft(rdpq.SoftConfig{Logger: cfg.Logger})
	}

	c.st = state{}

	for _, sub := range cfg.Subsystems.initOrder() {
		if err := sub.hook.Init(c); err != nil {
			c.q.Close()
			return nil, fmt.Errorf("gl: %s init: %w", sub.name, err)
		}
	}

	// Defaults go after subsystem init so the hooks cannot clobber them.
	c.DrawBuffer(Front)
	c.DepthRange(0, 1)
	c.ClearDepth(1)
	c.CullFace(Back)
	c.FrontFace(CCW)
	c.q.SetOtherModesRaw(0)

	c.acquireDefaultFramebuffer()

	w, h := c.def.Color.Width, c.def.Color.Height
	c.Viewport(0, 0, w, h)
	c.st.scissor = [4]int{0, 0, w, h}
	c.logf("gl: init %dx%d", w, h)
	return c, nil
}

// Close releases subsystem resources, drains and stops the queue, and frees
// the default depth buffer. It may be called once.
func (c *Context) Close() error {
	if c.closed {
		return ErrClosed
	}
	c.closed = true

	var errs []error
	for _, sub := range c.cfg.Subsystems.closeOrder() {
		cl, ok := sub.hook.(io.Closer)
		if !ok {
			continue
		}
		if err := cl.Close(); err != nil {
			errs = append(errs, fmt.Errorf("gl: %s close: %w", sub.name, err))
		}
	}
	if err := c.q.Close(); err != nil {
		errs = append(errs, fmt.Errorf("gl: queue close: %w", err))
	}
	if c.def.Depth != nil {
		c.mem.FreeUncached(c.def.Depth.Buf)
		c.def.Depth = nil
	}
	c.cur = nil
	c.log.WriteLineString("gl: closed")
	return errors.Join(errs...)
}

// Queue returns the command queue, for subsystems that emit commands.
func (c *Context) Queue() rdpq.Queue { return c.q }

// Logger returns the context logger.
func (c *Context) Logger() hal.Logger { return c.log }

// ConsumeRendermodeDirty reports and clears the rendermode dirty flag.
func (c *Context) ConsumeRendermodeDirty() bool {
	d := c.st.rendermodeDirty
	c.st.rendermodeDirty = false
	return d
}

// ConsumeScissorDirty reports and clears the scissor dirty flag.
func (c *Context) ConsumeScissorDirty() bool {
	d := c.st.scissorDirty
	c.st.scissorDirty = false
	return d
}

func (c *Context) logf(format string, args ...any) {
	c.log.WriteLineString(fmt.Sprintf(format, args...))
}
