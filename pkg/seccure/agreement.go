package seccure

import (
	"math/big"
	"sync"

	"github.com/hsiuhsiu/seccure-go/pkg/seccure/codec"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/curve"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/dh"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/securemem"
)

// KeyAgreement is one side of a two-step Diffie-Hellman exchange.
type KeyAgreement struct {
	mu     sync.Mutex
	s      *Session
	params *curve.Params
	secret *securemem.Buffer
	public []byte
}

// NewKeyAgreement runs the first step: it draws an ephemeral exponent and
// returns a handle whose PublicKey is sent to the peer.
func (s *Session) NewKeyAgreement() (*KeyAgreement, error) {
	const op = "NewKeyAgreement"
	if err := s.begin(op); err != nil {
		return nil, err
	}
	defer s.end()

	a, A, err := dh.Step1(s.backend.Rand(), s.params)
	if err != nil {
		return nil, wrap(op, err)
	}
	pub, err := s.params.EncodePoint(A, codec.Compact)
	if err != nil {
		securemem.WipeInt(a)
		return nil, wrap(op, err)
	}
	return &KeyAgreement{s: s, params: s.params, secret: s.storeExponent(a), public: pub}, nil
}

// PublicKey returns the compact public value to send to the peer.
func (ka *KeyAgreement) PublicKey() []byte {
	ka.mu.Lock()
	defer ka.mu.Unlock()
	out := make([]byte, len(ka.public))
	copy(out, ka.public)
	return out
}

// Finish runs the second step with the peer's compact public value and
// returns the shared key in compact form.
func (ka *KeyAgreement) Finish(peer []byte) (*Data, error) {
	const op = "KeyAgreement.Finish"
	if err := ka.s.begin(op); err != nil {
		return nil, err
	}
	defer ka.s.end()

	ka.mu.Lock()
	defer ka.mu.Unlock()
	if ka.secret == nil || ka.secret.Bytes() == nil {
		return nil, &Error{Op: op, Err: ErrKeyReleased}
	}

	b, err := ka.params.DecodePoint(peer, codec.Compact)
	if err != nil {
		return nil, wrap(op, err)
	}
	a := new(big.Int).SetBytes(ka.secret.Bytes())
	defer securemem.WipeInt(a)

	key, err := dh.Step2(b, a, ka.params)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer securemem.Wipe(key)

	k := new(big.Int).SetBytes(key)
	defer securemem.WipeInt(k)
	text, err := codec.Serialize(k, ka.params.DHLenCompact, codec.Compact)
	if err != nil {
		return nil, wrap(op, err)
	}
	return NewData(text), nil
}

// Free wipes the ephemeral exponent. It is idempotent and nil-safe.
func (ka *KeyAgreement) Free() {
	if ka == nil {
		return
	}
	ka.mu.Lock()
	defer ka.mu.Unlock()
	ka.secret.Release()
	ka.secret = nil
}
