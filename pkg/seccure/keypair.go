package seccure

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/hsiuhsiu/seccure-go/pkg/seccure/codec"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/curve"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/exponent"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/securemem"
)

// KeyKind tells which halves a KeyPair holds.
type KeyKind int

const (
	// PrivateOnly holds only the secret exponent.
	PrivateOnly KeyKind = iota + 1
	// PublicOnly holds only the compact public key.
	PublicOnly
	// Both holds the exponent and the public key.
	Both
)

func (k KeyKind) String() string {
	switch k {
	case PrivateOnly:
		return "private-only"
	case PublicOnly:
		return "public-only"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("KeyKind(%d)", int(k))
	}
}

// KeyPair holds a secret exponent, a compact public key, or both, for one
// curve. The exponent lives in secure memory and the public key is decoded on
// first use.
//
// A KeyPair is safe for concurrent use. Free must not race with operations
// using the key.
type KeyPair struct {
	mu     sync.RWMutex
	kind   KeyKind
	params *curve.Params
	priv   *securemem.Buffer
	pub    []byte
	freed  bool

	once  sync.Once
	point curve.Point
	perr  error
}

// NewKeyPair builds a key pair from a compact public key, a private
// passphrase, or both. The passphrase is hashed to an exponent and is not
// retained. At least one of pub and priv must be non-empty. When both are
// given they are not checked against each other.
func (s *Session) NewKeyPair(pub, priv []byte) (*KeyPair, error) {
	const op = "NewKeyPair"
	if err := s.begin(op); err != nil {
		return nil, err
	}
	defer s.end()

	if len(pub) == 0 && len(priv) == 0 {
		return nil, errorf(op, "%w: need a public key or a private passphrase", ErrInvalidArgument)
	}

	kp := &KeyPair{params: s.params}
	switch {
	case len(pub) > 0 && len(priv) > 0:
		kp.kind = Both
	case len(pub) > 0:
		kp.kind = PublicOnly
	default:
		kp.kind = PrivateOnly
	}

	if len(priv) > 0 {
		d, err := exponent.Hash(priv, s.params, s.backend.Pool())
		if err != nil {
			return nil, wrap(op, err)
		}
		kp.priv = s.storeExponent(d)
	}
	if len(pub) > 0 {
		kp.pub = make([]byte, len(pub))
		copy(kp.pub, pub)
	}
	return kp, nil
}

// Keygen creates a key pair with both halves. A non-empty priv is hashed to
// the exponent; otherwise a fresh random exponent is drawn.
func (s *Session) Keygen(priv []byte) (*KeyPair, error) {
	const op = "Keygen"
	if err := s.begin(op); err != nil {
		return nil, err
	}
	defer s.end()

	var (
		d   *big.Int
		err error
	)
	if len(priv) > 0 {
		d, err = exponent.Hash(priv, s.params, s.backend.Pool())
	} else {
		d, err = exponent.Random(s.backend.Rand(), s.params)
	}
	if err != nil {
		return nil, wrap(op, err)
	}

	q := s.params.ScalarBaseMult(d)
	pub, err := s.params.EncodePoint(q, codec.Compact)
	if err != nil {
		securemem.WipeInt(d)
		return nil, wrap(op, err)
	}

	kp := &KeyPair{kind: Both, params: s.params, priv: s.storeExponent(d), pub: pub}
	kp.once.Do(func() { kp.point = q })
	return kp, nil
}

// storeExponent moves d into secure memory and wipes d.
func (s *Session) storeExponent(d *big.Int) *securemem.Buffer {
	buf := s.backend.Pool().Acquire(s.params.OrderLenBin)
	d.FillBytes(buf.Bytes())
	securemem.WipeInt(d)
	return buf
}

// Kind reports which halves kp holds.
func (kp *KeyPair) Kind() KeyKind {
	if kp == nil {
		return 0
	}
	return kp.kind
}

// Curve returns the curve kp belongs to.
func (kp *KeyPair) Curve() *curve.Params {
	if kp == nil {
		return nil
	}
	return kp.params
}

// HasPrivate reports whether kp holds a secret exponent.
func (kp *KeyPair) HasPrivate() bool {
	return kp.Kind() == PrivateOnly || kp.Kind() == Both
}

// HasPublic reports whether kp holds a public key.
func (kp *KeyPair) HasPublic() bool {
	return kp.Kind() == PublicOnly || kp.Kind() == Both
}

// PublicKey returns a copy of the compact public key, or nil.
func (kp *KeyPair) PublicKey() []byte {
	if kp == nil {
		return nil
	}
	kp.mu.RLock()
	defer kp.mu.RUnlock()
	if kp.pub == nil {
		return nil
	}
	out := make([]byte, len(kp.pub))
	copy(out, kp.pub)
	return out
}

// Free wipes the exponent and drops the public key. It is idempotent and
// nil-safe.
func (kp *KeyPair) Free() {
	if kp == nil {
		return
	}
	kp.mu.Lock()
	defer kp.mu.Unlock()
	if kp.freed {
		return
	}
	kp.freed = true
	kp.priv.Release()
	kp.priv = nil
	securemem.Wipe(kp.pub)
	kp.pub = nil
}

// FreeKeyPair frees kp.
func FreeKeyPair(kp *KeyPair) {
	kp.Free()
}

// check confirms kp is usable with params.
func (kp *KeyPair) check(params *curve.Params) error {
	if kp == nil {
		return fmt.Errorf("%w: nil key pair", ErrInvalidArgument)
	}
	if kp.freed {
		return ErrKeyReleased
	}
	if kp.params != params {
		return fmt.Errorf("%w: key pair is for %s, session uses %s", ErrInvalidArgument, kp.params.Name, params.Name)
	}
	return nil
}

// exponent returns a copy of the secret exponent. The caller wipes it.
func (kp *KeyPair) exponent(params *curve.Params) (*big.Int, error) {
	kp.mu.RLock()
	defer kp.mu.RUnlock()
	if err := kp.check(params); err != nil {
		return nil, err
	}
	if kp.priv == nil {
		return nil, fmt.Errorf("%w: key pair has no private key", ErrInvalidArgument)
	}
	b := kp.priv.Bytes()
	if b == nil {
		return nil, ErrKeyReleased
	}
	return new(big.Int).SetBytes(b), nil
}

// publicPoint decodes the public key once and caches the outcome.
func (kp *KeyPair) publicPoint(params *curve.Params) (curve.Point, error) {
	kp.mu.RLock()
	defer kp.mu.RUnlock()
	if err := kp.check(params); err != nil {
		return curve.Point{}, err
	}
	if kp.pub == nil {
		return curve.Point{}, fmt.Errorf("%w: key pair has no public key", ErrInvalidArgument)
	}
	kp.once.Do(func() {
		kp.point, kp.perr = kp.params.DecodePoint(kp.pub, codec.Compact)
	})
	return kp.point, kp.perr
}
