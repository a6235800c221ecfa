// Package backend owns the process-wide state shared by every seccure
// session: the reference count guarding one-time initialisation and the
// secure-memory pool.
//
// The first Acquire probes the operating system entropy source and builds the
// pool. Later calls only bump the count. The Release that drops the count to
// zero closes the pool, so the next Acquire starts from scratch.
package backend
