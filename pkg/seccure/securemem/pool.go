package securemem

import (
	"context"
	"errors"
	"math/big"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/hsiuhsiu/seccure-go/pkg/seccure/logging"
)

const (
	// DefaultSlots is the number of slots in a pool built by NewDefaultPool.
	DefaultSlots = 128

	// DefaultSlotSize fits the largest exponent (66 bytes for secp521r1)
	// and a SHA-512 key block.
	DefaultSlotSize = 128
)

// ErrPoolClosed is returned by Close on a pool that is already closed.
var ErrPoolClosed = errors.New("seccure: secure memory pool closed")

// Pool is a locked arena of equally sized slots. It is safe for concurrent
// use.
type Pool struct {
	mu       sync.Mutex
	arena    []byte
	slotSize int
	free     []int
	locked   bool
	closed   atomic.Bool
	log      logging.Logger
}

// NewPool allocates slots·slotSize bytes and tries to lock them into RAM.
// Failure to lock is logged and the pool stays usable.
func NewPool(slots, slotSize int, log logging.Logger) *Pool {
	log = logging.OrDefault(log)
	if slots < 1 {
		slots = 1
	}
	if slotSize < 1 {
		slotSize = DefaultSlotSize
	}
	p := &Pool{
		arena:    make([]byte, slots*slotSize),
		slotSize: slotSize,
		free:     make([]int, 0, slots),
		log:      log,
	}
	for i := slots - 1; i >= 0; i-- {
		p.free = append(p.free, i)
	}
	if err := lock(p.arena); err != nil {
		log.Warn(context.Background(), "secure memory not locked", "bytes", len(p.arena), "error", err)
	} else {
		p.locked = true
	}
	return p
}

// NewDefaultPool returns NewPool(DefaultSlots, DefaultSlotSize, log).
func NewDefaultPool(log logging.Logger) *Pool {
	return NewPool(DefaultSlots, DefaultSlotSize, log)
}

// Locked reports whether the arena is locked into RAM.
func (p *Pool) Locked() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.locked
}

// Available returns the number of free slots.
func (p *Pool) Available() int {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed.Load() {
		return 0
	}
	return len(p.free)
}

// Acquire returns a zeroed buffer of n bytes. It never fails; a nil pool
// yields heap memory.
func (p *Pool) Acquire(n int) *Buffer {
	if n < 0 {
		n = 0
	}
	if p == nil {
		return heapBuffer(n)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed.Load() || n > p.slotSize || len(p.free) == 0 {
		p.log.Debug(context.Background(), "secure memory fallback to heap", "bytes", n, "free", len(p.free))
		return heapBuffer(n)
	}
	slot := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	off := slot * p.slotSize
	return &Buffer{pool: p, slot: slot, data: p.arena[off : off+n : off+n]}
}

func (p *Pool) release(b *Buffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed.Load() {
		return
	}
	p.free = append(p.free, b.slot)
}

// Close zeroes and unlocks the arena. Buffers still held become empty.
func (p *Pool) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed.CompareAndSwap(false, true) {
		return ErrPoolClosed
	}
	Wipe(p.arena)
	var err error
	if p.locked {
		err = unlock(p.arena)
		p.locked = false
	}
	p.free = nil
	return err
}

// Buffer is a secret byte buffer owned by exactly one holder.
type Buffer struct {
	pool     *Pool
	slot     int
	data     []byte
	released atomic.Bool
}

func heapBuffer(n int) *Buffer {
	return &Buffer{slot: -1, data: make([]byte, n)}
}

// Bytes returns the buffer contents, or nil once the buffer is released or
// its pool is closed. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte {
	if b == nil || b.released.Load() {
		return nil
	}
	if b.pool != nil && b.pool.closed.Load() {
		return nil
	}
	return b.data
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() int {
	return len(b.Bytes())
}

// Pooled reports whether the buffer lives in a pool arena.
func (b *Buffer) Pooled() bool {
	return b != nil && b.pool != nil
}

// Release zeroes the buffer and returns its slot. It is idempotent and
// nil-safe.
func (b *Buffer) Release() {
	if b == nil || !b.released.CompareAndSwap(false, true) {
		return
	}
	if b.pool != nil && b.pool.closed.Load() {
		return
	}
	Wipe(b.data)
	if b.pool != nil {
		b.pool.release(b)
	}
}

// With acquires n bytes from p, runs fn and releases the buffer on every
// return path.
func With(p *Pool, n int, fn func(buf []byte) error) error {
	b := p.Acquire(n)
	defer b.Release()
	return fn(b.Bytes())
}

// Wipe overwrites buf with zeros.
func Wipe(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}

// WipeInt zeroes the words backing x and sets it to zero.
func WipeInt(x *big.Int) {
	if x == nil {
		return
	}
	words := x.Bits()
	for i := range words {
		words[i] = 0
	}
	runtime.KeepAlive(words)
	x.SetInt64(0)
}
