package seccure

import (
	"sync"

	"github.com/hsiuhsiu/seccure-go/pkg/seccure/securemem"
)

// Data is an owned byte buffer returned by the boundary operations.
type Data struct {
	mu  sync.Mutex
	buf []byte
}

// NewData copies b into a new Data.
func NewData(b []byte) *Data {
	buf := make([]byte, len(b))
	copy(buf, b)
	return &Data{buf: buf}
}

// Bytes returns a copy of the contents.
func (d *Data) Bytes() []byte {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.buf == nil {
		return nil
	}
	out := make([]byte, len(d.buf))
	copy(out, d.buf)
	return out
}

// String returns the contents as a string. Compact keys and signatures are
// printable ASCII.
func (d *Data) String() string {
	return string(d.Bytes())
}

// Len returns the content length.
func (d *Data) Len() int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.buf)
}

// Free zeroes and drops the contents. It is idempotent and nil-safe.
func (d *Data) Free() {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	securemem.Wipe(d.buf)
	d.buf = nil
}

// FreeData frees d.
func FreeData(d *Data) {
	d.Free()
}

// ZeroizeBytes overwrites buf with zeros. Use it on passphrases once a key
// pair has been derived from them.
func ZeroizeBytes(buf []byte) {
	securemem.Wipe(buf)
}
