// Package securemem provides short-lived buffers for secret material.
//
// A Pool is one arena of fixed-size slots, locked into RAM with mlock where
// the platform allows it. Buffers handed out by a pool are zeroed when
// released and the whole arena is zeroed when the pool closes. When a pool is
// absent, closed, exhausted or asked for more than one slot, Acquire falls
// back to an ordinary heap buffer that still gets zeroed on release.
//
// Acquisition is scoped. Callers either defer Release right after Acquire or
// use With:
//
//	err := securemem.With(pool, 64, func(key []byte) error {
//	    return derive(key)
//	})
package securemem
