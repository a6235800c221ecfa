package seccure

import (
	"context"
	"crypto/sha512"
	"errors"

	"github.com/hsiuhsiu/seccure-go/pkg/seccure/ecdsa"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/ecies"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/securemem"
)

// Sign signs SHA-512(msg) with the private half of kp and returns the
// compact signature. A nil msg is rejected; an empty one is signed.
func (s *Session) Sign(msg []byte, kp *KeyPair) (*Data, error) {
	const op = "Sign"
	if err := s.begin(op); err != nil {
		return nil, err
	}
	defer s.end()

	if msg == nil {
		return nil, errorf(op, "%w: nil message", ErrInvalidArgument)
	}
	d, err := kp.exponent(s.params)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer securemem.WipeInt(d)

	digest := sha512.Sum512(msg)
	sig, err := ecdsa.Sign(s.backend.Rand(), digest[:], d, s.params)
	if err != nil {
		return nil, wrap(op, err)
	}
	text, err := ecdsa.Encode(sig, s.params)
	if err != nil {
		return nil, wrap(op, err)
	}
	return NewData(text), nil
}

// Verify reports whether sig is a valid compact signature of msg under the
// public half of kp. Every failure, including a closed session, is false.
func (s *Session) Verify(msg, sig []byte, kp *KeyPair) bool {
	return s.VerifySignature(msg, sig, kp) == nil
}

// VerifySignature is Verify with the reason for rejection. A signature that
// parses but does not verify yields ErrInvalidSignature.
func (s *Session) VerifySignature(msg, sig []byte, kp *KeyPair) error {
	const op = "Verify"
	if err := s.begin(op); err != nil {
		return err
	}
	defer s.end()

	if msg == nil || len(sig) == 0 {
		return errorf(op, "%w: need message and signature", ErrInvalidArgument)
	}
	q, err := kp.publicPoint(s.params)
	if err != nil {
		return wrap(op, err)
	}
	v, err := ecdsa.Decode(sig, s.params)
	if err != nil {
		return wrap(op, err)
	}
	digest := sha512.Sum512(msg)
	if !ecdsa.Verify(digest[:], q, v, s.params) {
		return &Error{Op: op, Err: ErrInvalidSignature}
	}
	return nil
}

// Encrypt seals plaintext for the public half of kp and returns the binary
// envelope. Empty plaintext is rejected.
func (s *Session) Encrypt(plaintext []byte, kp *KeyPair) (*Data, error) {
	const op = "Encrypt"
	if err := s.begin(op); err != nil {
		return nil, err
	}
	defer s.end()

	if len(plaintext) == 0 {
		return nil, errorf(op, "%w: empty plaintext", ErrInvalidArgument)
	}
	q, err := kp.publicPoint(s.params)
	if err != nil {
		return nil, wrap(op, err)
	}
	env, err := ecies.Encrypt(s.backend.Rand(), plaintext, q, s.params, s.backend.Pool())
	if err != nil {
		return nil, wrap(op, err)
	}
	return NewData(env), nil
}

// Decrypt opens an envelope with the private half of kp. The tag is checked
// before any plaintext is produced.
func (s *Session) Decrypt(envelope []byte, kp *KeyPair) (*Data, error) {
	const op = "Decrypt"
	if err := s.begin(op); err != nil {
		return nil, err
	}
	defer s.end()

	if len(envelope) == 0 {
		return nil, errorf(op, "%w: empty envelope", ErrInvalidArgument)
	}
	d, err := kp.exponent(s.params)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer securemem.WipeInt(d)

	pt, err := ecies.Decrypt(envelope, d, s.params, s.backend.Pool())
	if err != nil {
		if errors.Is(err, ecies.ErrAuthentication) {
			s.log.Debug(context.Background(), "envelope rejected", "bytes", len(envelope))
		}
		return nil, wrap(op, err)
	}
	out := NewData(pt)
	securemem.Wipe(pt)
	return out, nil
}

// Overhead returns how many bytes Encrypt adds to a plaintext.
func (s *Session) Overhead() int {
	c := s.Curve()
	if c == nil {
		return 0
	}
	return ecies.Overhead(c)
}
