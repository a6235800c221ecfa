package seccure

import (
	"context"
	"sync"

	"github.com/hsiuhsiu/seccure-go/internal/backend"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/curve"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/logging"
)

// Session binds a curve to a claim on the process-wide backend. A Session is
// safe for concurrent use; Close waits for in-flight operations.
type Session struct {
	mu          sync.RWMutex
	opts        Options
	params      *curve.Params
	backend     *backend.Handle
	log         logging.Logger
	initialized bool
}

// NewSession opens a session. A nil opts means DefaultOptions(). The first
// live session in the process initialises the backend.
func NewSession(opts *Options) (*Session, error) {
	const op = "NewSession"
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	log := logging.OrDefault(o.Logger)

	params, err := curve.ByName(o.curveName())
	if err != nil {
		return nil, wrap(op, err)
	}

	h, err := backend.Default().Acquire(backend.Config{SecureRandom: o.SecureRandom, Logger: log})
	if err != nil {
		return nil, wrap(op, err)
	}

	s := &Session{
		opts:        o,
		params:      params,
		backend:     h,
		log:         log.With("curve", params.Name),
		initialized: true,
	}
	s.log.Debug(context.Background(), "session opened", "secure_random", o.SecureRandom)
	return s, nil
}

// Close releases the session's claim on the backend. A nil session is a
// no-op and a second Close returns ErrSessionClosed.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return ErrSessionClosed
	}

	s.initialized = false
	err := s.backend.Release()
	s.backend = nil
	s.params = nil
	s.opts = Options{}
	s.log.Debug(context.Background(), "session closed")
	return wrap("Close", err)
}

// FreeSession closes s.
func FreeSession(s *Session) error {
	return s.Close()
}

// Curve returns the session's curve parameters, or nil once closed.
func (s *Session) Curve() *curve.Params {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

// Options returns the options the session was opened with.
func (s *Session) Options() Options {
	if s == nil {
		return Options{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

// begin takes the read lock for an operation. On success the caller must
// call end.
func (s *Session) begin(op string) error {
	if s == nil {
		return &Error{Op: op, Err: ErrUninitializedSession}
	}
	s.mu.RLock()
	if !s.initialized {
		s.mu.RUnlock()
		return &Error{Op: op, Err: ErrUninitializedSession}
	}
	return nil
}

func (s *Session) end() {
	s.mu.RUnlock()
}

// DetectCurve returns the name of the curve whose compact public keys have
// the length of pub.
func DetectCurve(pub []byte) (string, error) {
	c, err := curve.ByPKLenCompact(len(pub))
	if err != nil {
		return "", wrap("DetectCurve", err)
	}
	return c.Name, nil
}

// Curves lists the supported curve names.
func Curves() []string {
	return curve.Names()
}
