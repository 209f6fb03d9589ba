package gl

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"rdpgl/hal"
	"rdpgl/rdpq"
	"rdpgl/rdpq/rdpqtest"
	"rdpgl/surface"
)

// stingyDisplay hands out a fixed number of surfaces and then nothing.
type stingyDisplay struct {
	left  int
	polls int
	shown []*surface.Surface
}

func (d *stingyDisplay) TryLock() *surface.Surface {
	d.polls++
	if d.left == 0 {
		return nil
	}
	d.left--
	return surface.New(surface.FormatRGBA16, 16, 16)
}

func (d *stingyDisplay) Show(s *surface.Surface) { d.shown = append(d.shown, s) }

func TestPollBounded(t *testing.T) {
	calls := 0
	v, err := pollBounded(5, time.Nanosecond, func() (int, bool) {
		calls++
		return calls * 10, calls == 3
	})
	if err != nil || v != 30 || calls != 3 {
		t.Fatalf("got v=%d err=%v calls=%d", v, err, calls)
	}

	calls = 0
	_, err = pollBounded(4, time.Nanosecond, func() (int, bool) {
		calls++
		return 0, false
	})
	if !errors.Is(err, errExhausted) || calls != 4 {
		t.Fatalf("expected exhaustion after 4 calls, got err=%v calls=%d", err, calls)
	}
}

func TestAcquireReallocatesDepthOnlyOnResize(t *testing.T) {
	rig := newRig(t, nil)
	c := rig.ctx

	if st := rig.mem.Stats(); st.Allocs != 1 || st.LastAlloc != 320*240*2 {
		t.Fatalf("unexpected initial allocation %+v", st)
	}

	c.SwapBuffers()
	c.SwapBuffers()
	if st := rig.mem.Stats(); st.Allocs != 1 || st.Frees != 0 {
		t.Fatalf("same-size acquire must not reallocate, got %+v", st)
	}

	rig.sc.Resize(640, 480)
	c.SwapBuffers()
	st := rig.mem.Stats()
	if st.Allocs != 2 || st.Frees != 1 {
		t.Fatalf("expected exactly one reallocation, got %+v", st)
	}
	if st.LastAlloc != 640*480*2 || st.InUse != 640*480*2 {
		t.Fatalf("expected a 640x480 depth buffer, got %+v", st)
	}
	fb := c.DefaultFramebuffer()
	if !fb.Color.SameSize(fb.Depth) {
		t.Fatalf("depth %dx%d does not match color %dx%d",
			fb.Depth.Width, fb.Depth.Height, fb.Color.Width, fb.Color.Height)
	}
	if !strings.Contains(rig.logs.String(), "gl: depth buffer 640x480 (614400 bytes)") {
		t.Fatalf("missing reallocation log:\n%s", rig.logs.String())
	}
}

func TestAcquireExhaustionFaults(t *testing.T) {
	disp := &stingyDisplay{left: 1}
	var handled []*Fault
	c, err := New(Config{
		Display:         disp,
		Memory:          hal.NewUncachedMemory(0),
		Queue:           rdpqtest.NewRecorder(),
		AcquireAttempts: 3,
		AcquireInterval: time.Nanosecond,
		OnFault:         func(_ *Context, f *Fault) { handled = append(handled, f) },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	polls := disp.polls
	f := mustFault(t, "no display surface", func() { c.SwapBuffers() })
	if f.Op != "acquire framebuffer" {
		t.Fatalf("unexpected op %q", f.Op)
	}
	if got := disp.polls - polls; got != 3 {
		t.Fatalf("expected 3 polls, got %d", got)
	}
	if len(disp.shown) != 1 {
		t.Fatalf("expected the frame to be presented before polling, got %d", len(disp.shown))
	}

	mustFault(t, "no display surface", func() { c.SwapBuffers() })
	if len(handled) != 1 || handled[0] != f {
		t.Fatalf("expected OnFault exactly once with the first fault, got %d calls", len(handled))
	}
}

func TestSwapBuffersPresentsAfterBarrier(t *testing.T) {
	rig := newRig(t, nil)
	c := rig.ctx
	presented := c.DefaultFramebuffer().Color

	rig.rec.Reset()
	c.SwapBuffers()

	want := []rdpqtest.Op{
		rdpqtest.OpSyncFull,
		rdpqtest.OpFlush,
		rdpqtest.OpSetColorImage,
		rdpqtest.OpSetZImage,
	}
	if ops := rig.rec.Ops(); !reflect.DeepEqual(ops, want) {
		t.Fatalf("unexpected swap sequence:\n got %v\nwant %v", ops, want)
	}
	if rig.sc.Frames() != 1 {
		t.Fatalf("expected one presented frame, got %d", rig.sc.Frames())
	}
	next := c.DefaultFramebuffer().Color
	if next == presented {
		t.Fatal("expected a different surface after swap")
	}
	if rig.rec.ColorImage() != next {
		t.Fatal("next surface must be the active color image")
	}
	if !c.ConsumeScissorDirty() {
		t.Fatal("rebinding must mark the scissor dirty")
	}
}

func TestSwapWithSoftQueue(t *testing.T) {
	sc := hal.NewSwapChain(hal.SwapChainConfig{Width: 32, Height: 32, Buffers: 2})
	q := rdpq.NewSoft(rdpq.SoftConfig{})
	c, err := New(Config{Display: sc, Memory: hal.NewUncachedMemory(0), Queue: q})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 10; i++ {
		c.ClearColor(float32(i%2), 1, 0, 1)
		c.Clear(ColorBufferBit | DepthBufferBit)
		c.SwapBuffers()
	}
	c.Finish()

	if got := sc.Frames(); got != 10 {
		t.Fatalf("expected 10 frames, got %d", got)
	}
	if err := q.Err(); err != nil {
		t.Fatalf("rasterizer error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestBindFramebuffer(t *testing.T) {
	rig := newRig(t, nil)
	c := rig.ctx

	fb, err := c.NewFramebuffer(surface.FormatRGBA32, 64, 32)
	if err != nil {
		t.Fatalf("NewFramebuffer: %v", err)
	}
	if fb.Depth.Format != surface.FormatZ16 || !fb.Color.SameSize(fb.Depth) {
		t.Fatalf("unexpected framebuffer %+v / %+v", fb.Color, fb.Depth)
	}

	rig.rec.Reset()
	c.BindFramebuffer(fb)
	cmds := rig.rec.Commands
	if len(cmds) != 2 || cmds[0].Surface != fb.Color || cmds[1].Surface != fb.Depth {
		t.Fatalf("unexpected bind commands %v", rig.rec.Ops())
	}
	if c.CurrentFramebuffer() != fb {
		t.Fatal("expected fb current")
	}

	c.FreeFramebuffer(fb)
	if c.CurrentFramebuffer() != c.DefaultFramebuffer() {
		t.Fatal("freeing the current framebuffer rebinds the default one")
	}
	if st := rig.mem.Stats(); st.Allocs != 2 || st.Frees != 1 {
		t.Fatalf("unexpected memory stats %+v", st)
	}

	c.BindFramebuffer(nil)
	if c.CurrentFramebuffer() != c.DefaultFramebuffer() {
		t.Fatal("nil binds the default framebuffer")
	}
}

func TestNewFramebufferRejectsFormats(t *testing.T) {
	rig := newRig(t, nil)
	if _, err := rig.ctx.NewFramebuffer(surface.FormatZ16, 8, 8); err == nil {
		t.Fatal("expected error for a depth-format color buffer")
	}
}

func TestFreeDefaultFramebufferIsInvalid(t *testing.T) {
	rig := newRig(t, nil)
	c := rig.ctx
	c.FreeFramebuffer(c.DefaultFramebuffer())
	if err := c.GetError(); err != InvalidOperation {
		t.Fatalf("expected GL_INVALID_OPERATION, got %s", ErrorString(err))
	}
	if c.DefaultFramebuffer().Depth == nil {
		t.Fatal("default depth buffer must survive")
	}
}

func TestDepthAllocationFailureFaults(t *testing.T) {
	f := mustFault(t, "out of uncached memory", func() {
		New(Config{
			Display: hal.NewSwapChain(hal.SwapChainConfig{}),
			Memory:  hal.NewUncachedMemory(1024),
			Queue:   rdpqtest.NewRecorder(),
		})
	})
	if f.Op != "acquire framebuffer" {
		t.Fatalf("unexpected op %q", f.Op)
	}
}
