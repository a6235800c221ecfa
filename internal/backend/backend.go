package backend

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	"lukechampine.com/frand"

	"github.com/hsiuhsiu/seccure-go/internal/errs"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/logging"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/securemem"
)

// Config selects per-handle backend behaviour.
type Config struct {
	// SecureRandom selects the operating system CSPRNG. When false the
	// handle draws from frand, a userspace ChaCha CSPRNG seeded from the
	// operating system.
	SecureRandom bool

	// Logger receives warnings. Nil binds to slog.Default().
	Logger logging.Logger
}

// Context is a reference-counted process-wide backend.
type Context struct {
	mu      sync.Mutex
	refs    int
	pool    *securemem.Pool
	entropy io.Reader
	newPool func(logging.Logger) *securemem.Pool
}

// NewContext returns an idle context. Most callers use Default.
func NewContext() *Context {
	return &Context{entropy: rand.Reader, newPool: securemem.NewDefaultPool}
}

var defaultContext = NewContext()

// Default returns the context shared by all sessions in the process.
func Default() *Context {
	return defaultContext
}

// Acquire registers a new user of the backend.
func (c *Context) Acquire(cfg Config) (*Handle, error) {
	log := logging.OrDefault(cfg.Logger)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.refs == 0 {
		probe := make([]byte, 16)
		if _, err := io.ReadFull(c.entropy, probe); err != nil {
			return nil, fmt.Errorf("%w: entropy source unavailable: %v", errs.ErrCryptoBackend, err)
		}
		securemem.Wipe(probe)
		c.pool = c.newPool(log)
		log.Debug(context.Background(), "seccure backend initialised", "locked", c.pool.Locked())
	}
	c.refs++

	h := &Handle{ctx: c, pool: c.pool, rand: rand.Reader}
	if !cfg.SecureRandom {
		h.rand = frandReader{}
	}
	return h, nil
}

func (c *Context) release() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.refs--
	if c.refs > 0 {
		return nil
	}
	pool := c.pool
	c.pool = nil
	c.refs = 0
	return pool.Close()
}

// Refs returns the number of live handles.
func (c *Context) Refs() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refs
}

// Handle is one user's claim on the backend.
type Handle struct {
	mu       sync.Mutex
	ctx      *Context
	pool     *securemem.Pool
	rand     io.Reader
	released bool
}

// Pool returns the secure-memory pool, or nil after Release.
func (h *Handle) Pool() *securemem.Pool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return nil
	}
	return h.pool
}

// Rand returns the random source selected for this handle.
func (h *Handle) Rand() io.Reader {
	return h.rand
}

// Release drops the handle's reference. Releasing twice is a no-op.
func (h *Handle) Release() error {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return nil
	}
	h.released = true
	h.mu.Unlock()
	return h.ctx.release()
}

type frandReader struct{}

func (frandReader) Read(p []byte) (int, error) {
	return frand.Read(p)
}
