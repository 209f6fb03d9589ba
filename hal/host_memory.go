//go:build !tinygo

package hal

import (
	"fmt"
	"sync"
	"unsafe"
)

// MemStats counts uncached allocations.
type MemStats struct {
	Allocs uint64
	Frees  uint64
	// InUse is the number of live bytes handed out.
	InUse int
	// LastAlloc is the size of the most recent allocation.
	LastAlloc int
}

// UncachedMemory emulates the uncached RDRAM segment on the Go heap.
type UncachedMemory struct {
	mu     sync.Mutex
	budget int
	live   map[*byte]int
	stats  MemStats
}

var _ Memory = (*UncachedMemory)(nil)

// NewUncachedMemory returns an allocator capped at budget bytes (0 = unlimited).
func NewUncachedMemory(budget int) *UncachedMemory {
	return &UncachedMemory{budget: budget, live: make(map[*byte]int)}
}

func (m *UncachedMemory) AllocUncachedAligned(align, size int) ([]byte, error) {
	if align <= 0 || align&(align-1) != 0 {
		return nil, ErrBadAlignment
	}
	if size <= 0 {
		return nil, fmt.Errorf("hal: invalid allocation size %d", size)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.budget > 0 && m.stats.InUse+size > m.budget {
		return nil, fmt.Errorf("%w: %d bytes requested, %d of %d in use", ErrOutOfMemory, size, m.stats.InUse, m.budget)
	}

	raw := make([]byte, size+align)
	off := int(uintptr(align)-uintptr(unsafe.Pointer(&raw[0]))%uintptr(align)) % align
	buf := raw[off : off+size : off+size]

	m.live[&buf[0]] = size
	m.stats.Allocs++
	m.stats.InUse += size
	m.stats.LastAlloc = size
	return buf, nil
}

// FreeUncached releases a buffer returned by AllocUncachedAligned. Unknown
// buffers are ignored.
func (m *UncachedMemory) FreeUncached(buf []byte) {
	if len(buf) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := &buf[0]
	size, ok := m.live[key]
	if !ok {
		return
	}
	delete(m.live, key)
	m.stats.Frees++
	m.stats.InUse -= size
}

func (m *UncachedMemory) Stats() MemStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}
