package rdpq

import (
	"errors"
	"fmt"
	"sync"

	"rdpgl/hal"
	"rdpgl/surface"
)

var (
	ErrClosed       = errors.New("rdpq: queue closed")
	ErrNotFillMode  = errors.New("rdpq: fill rectangle outside fill mode")
	ErrNoColorImage = errors.New("rdpq: no color image set")
	ErrFormat       = errors.New("rdpq: unsupported color image format")
)

// SoftConfig configures a software rasterizer queue.
type SoftConfig struct {
	// Slots is the ring capacity. A full ring publishes itself and blocks the
	// producer until the rasterizer makes room. Defaults to 256.
	Slots  int
	Logger hal.Logger
}

// Soft is a Queue executed by a software rasterizer goroutine.
//
// Queued commands are not visible to the rasterizer until published by Flush,
// Wait, SyncFull-and-Flush or a full ring.
type Soft struct {
	mu        sync.Mutex
	cond      *sync.Cond
	q         ring
	published uint32
	busy      bool
	closed    bool
	done      chan struct{}
	err       error
	executed  uint64

	// Producer-side state.
	cfg Config

	// Consumer-side state; only touched by run.
	ex executor

	log hal.Logger
}

var _ Queue = (*Soft)(nil)

// NewSoft starts a software queue.
func NewSoft(cfg SoftConfig) *Soft {
	if cfg.Slots <= 0 {
		cfg.Slots = 256
	}
	s := &Soft{
		q:    newRing(cfg.Slots),
		done: make(chan struct{}),
		cfg:  ConfigDefault,
		log:  cfg.Logger,
	}
	s.cond = sync.NewCond(&s.mu)
	go s.run()
	return s
}

func (s *Soft) run() {
	defer close(s.done)

	s.mu.Lock()
	for {
		for s.q.tail == s.published && !s.closed {
			s.cond.Wait()
		}
		if s.q.tail == s.published {
			s.mu.Unlock()
			return
		}
		cmd, _ := s.q.pop()
		s.busy = true
		s.mu.Unlock()

		err := s.ex.exec(cmd)

		s.mu.Lock()
		s.busy = false
		s.executed++
		if err != nil && s.err == nil {
			s.err = err
			if s.log != nil {
				s.log.WriteLineString(err.Error())
			}
		}
		s.cond.Broadcast()
	}
}

func (s *Soft) push(cmd command) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		if s.err == nil {
			s.err = fmt.Errorf("%s: %w", cmd.op, ErrClosed)
		}
		return
	}
	for s.q.full() {
		s.published = s.q.head
		s.cond.Broadcast()
		s.cond.Wait()
	}
	s.q.push(cmd)
}

func (s *Soft) SetColorImage(img *surface.Surface) {
	s.push(command{op: opSetColorImage, surf: img})
	if s.cfg&ConfigAutoScissor != 0 && img != nil {
		s.push(command{op: opSetScissor, rect: [4]int{0, 0, img.Width, img.Height}})
	}
}

func (s *Soft) SetZImage(img *surface.Surface) {
	s.push(command{op: opSetZImage, surf: img})
}

func (s *Soft) SetOtherModesRaw(mode uint64) {
	s.push(command{op: opSetOtherModes, mode: mode})
}

func (s *Soft) ConfigSet(cfg Config) Config {
	old := s.cfg
	s.cfg = cfg
	return old
}

func (s *Soft) ConfigDisable(bits Config) Config {
	old := s.cfg
	s.cfg &^= bits
	return old
}

func (s *Soft) SetScissor(x0, y0, x1, y1 int) {
	s.push(command{op: opSetScissor, rect: [4]int{x0, y0, x1, y1}})
}

func (s *Soft) SetFillColor(c Color) {
	s.push(command{op: opSetFillColor, color: c})
}

func (s *Soft) FillRectangle(x0, y0, x1, y1 int) {
	s.push(command{op: opFillRect, rect: [4]int{x0, y0, x1, y1}})
}

// SyncFull queues a full barrier. cb runs on the rasterizer goroutine once
// every earlier command has executed.
func (s *Soft) SyncFull(cb func()) {
	s.push(command{op: opSyncFull, cb: cb})
}

// Flush publishes queued commands and returns immediately.
func (s *Soft) Flush() {
	s.mu.Lock()
	s.published = s.q.head
	s.cond.Broadcast()
	s.mu.Unlock()
}

// Wait publishes queued commands and blocks until all have executed.
func (s *Soft) Wait() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published = s.q.head
	s.cond.Broadcast()
	for s.q.tail != s.q.head || s.busy {
		s.cond.Wait()
	}
}

// Close drains the queue and stops the rasterizer goroutine.
func (s *Soft) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.mu.Unlock()

	s.Wait()

	s.mu.Lock()
	s.closed = true
	s.cond.Broadcast()
	s.mu.Unlock()
	<-s.done
	return nil
}

// Err returns the first execution error, if any.
func (s *Soft) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Executed returns the number of commands the rasterizer has completed.
func (s *Soft) Executed() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.executed
}
