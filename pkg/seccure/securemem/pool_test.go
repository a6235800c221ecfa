package securemem

import (
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/seccure-go/pkg/seccure/logging"
)

func TestAcquireRelease(t *testing.T) {
	p := NewPool(2, 32, logging.Nop())
	defer p.Close()

	a := p.Acquire(16)
	require.True(t, a.Pooled())
	require.Len(t, a.Bytes(), 16)
	assert.Equal(t, 1, p.Available())

	copy(a.Bytes(), []byte("0123456789abcdef"))
	a.Release()
	a.Release()
	assert.Nil(t, a.Bytes())
	assert.Equal(t, 2, p.Available())

	b := p.Acquire(32)
	assert.Equal(t, make([]byte, 32), b.Bytes(), "reused slot must come back zeroed")
	b.Release()
}

func TestAcquireFallsBackToHeap(t *testing.T) {
	p := NewPool(1, 8, logging.Nop())
	defer p.Close()

	oversized := p.Acquire(9)
	assert.False(t, oversized.Pooled())
	assert.Len(t, oversized.Bytes(), 9)

	first := p.Acquire(8)
	second := p.Acquire(8)
	assert.True(t, first.Pooled())
	assert.False(t, second.Pooled())

	first.Release()
	second.Release()
	oversized.Release()

	var nilPool *Pool
	h := nilPool.Acquire(4)
	assert.False(t, h.Pooled())
	assert.Len(t, h.Bytes(), 4)
	h.Release()
}

func TestCloseWipesOutstandingBuffers(t *testing.T) {
	p := NewPool(4, 16, logging.Nop())
	b := p.Acquire(16)
	raw := b.Bytes()
	copy(raw, []byte("secret-exponent!"))

	require.NoError(t, p.Close())
	assert.Equal(t, make([]byte, 16), raw)
	assert.Nil(t, b.Bytes())
	assert.ErrorIs(t, p.Close(), ErrPoolClosed)

	b.Release()
	after := p.Acquire(8)
	assert.False(t, after.Pooled())
	after.Release()
}

func TestWithReleasesOnError(t *testing.T) {
	p := NewPool(1, 16, logging.Nop())
	defer p.Close()

	boom := errors.New("boom")
	var seen []byte
	err := With(p, 16, func(buf []byte) error {
		seen = buf
		copy(buf, []byte("key material"))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, make([]byte, 16), seen)
	assert.Equal(t, 1, p.Available())
}

func TestConcurrentAcquire(t *testing.T) {
	p := NewPool(8, 32, logging.Nop())
	defer p.Close()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = With(p, 32, func(buf []byte) error {
					buf[0] = 1
					return nil
				})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, p.Available())
}

func TestWipeInt(t *testing.T) {
	x, ok := new(big.Int).SetString("be77c99b7f6acd6d86d664d556413ae694946f5c", 16)
	require.True(t, ok)
	words := x.Bits()
	WipeInt(x)
	assert.Zero(t, x.Sign())
	for _, w := range words {
		assert.Zero(t, w)
	}
	WipeInt(nil)
}
