package gl

import (
	"bytes"
	"strings"
	"testing"

	"rdpgl/hal"
	"rdpgl/rdpq/rdpqtest"
)

type testRig struct {
	ctx  *Context
	rec  *rdpqtest.Recorder
	sc   *hal.SwapChain
	mem  *hal.UncachedMemory
	logs *bytes.Buffer
}

func newRig(t *testing.T, mutate func(*Config)) *testRig {
	t.Helper()
	rig := &testRig{
		rec:  rdpqtest.NewRecorder(),
		sc:   hal.NewSwapChain(hal.SwapChainConfig{Width: 320, Height: 240}),
		mem:  hal.NewUncachedMemory(0),
		logs: &bytes.Buffer{},
	}
	cfg := Config{
		Display: rig.sc,
		Memory:  rig.mem,
		Logger:  hal.NewLogger(rig.logs),
		Queue:   rig.rec,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	ctx, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rig.ctx = ctx
	return rig
}

// mustFault runs fn and requires it to panic with a *Fault whose reason
// contains want.
func mustFault(t *testing.T, want string, fn func()) *Fault {
	t.Helper()
	var f *Fault
	func() {
		defer func() {
			r := recover()
			var ok bool
			if f, ok = r.(*Fault); !ok {
				t.Fatalf("expected *Fault panic, got %v", r)
			}
		}()
		fn()
	}()
	if !strings.Contains(f.Reason, want) {
		t.Fatalf("expected fault reason containing %q, got %q", want, f.Reason)
	}
	return f
}
