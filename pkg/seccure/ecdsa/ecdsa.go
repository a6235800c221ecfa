// Package ecdsa implements seccure-compatible ECDSA over the curves in
// package curve.
//
// A signature is carried as the single integer s·n + r and encoded in the
// Compact format at the curve's SigLenCompact width. The digest is read as a
// big-endian integer and reduced mod n without truncation; the boundary API
// signs SHA-512 digests.
package ecdsa

import (
	"fmt"
	"io"
	"math/big"

	"github.com/hsiuhsiu/seccure-go/internal/errs"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/codec"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/curve"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/exponent"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/securemem"
)

// maxNonceAttempts bounds the retries on r = 0 or s = 0.
const maxNonceAttempts = 64

// Sign signs digest with exponent d and returns the signature integer.
func Sign(rand io.Reader, digest []byte, d *big.Int, c *curve.Params) (*big.Int, error) {
	if len(digest) == 0 || d == nil || c == nil {
		return nil, fmt.Errorf("%w: ecdsa sign needs digest, exponent and curve", errs.ErrInvalidArgument)
	}
	if d.Sign() <= 0 || d.Cmp(c.N) >= 0 {
		return nil, fmt.Errorf("%w: exponent out of range", errs.ErrInvalidArgument)
	}

	e := new(big.Int).SetBytes(digest)
	e.Mod(e, c.N)

	for i := 0; i < maxNonceAttempts; i++ {
		k, err := exponent.Random(rand, c)
		if err != nil {
			return nil, err
		}
		r, s := signWithNonce(e, d, k, c)
		securemem.WipeInt(k)
		if r == nil {
			continue
		}
		return Combine(r, s, c), nil
	}
	return nil, fmt.Errorf("%w: no usable nonce", exponent.ErrRandomExhausted)
}

// signWithNonce returns nil when the nonce yields r = 0 or s = 0.
func signWithNonce(e, d, k *big.Int, c *curve.Params) (r, s *big.Int) {
	R := c.ScalarBaseMult(k)
	if R.IsZero() {
		return nil, nil
	}
	r = new(big.Int).Mod(R.X, c.N)
	if r.Sign() == 0 {
		return nil, nil
	}

	s = new(big.Int).Mul(d, r)
	s.Add(s, e)
	kinv := new(big.Int).ModInverse(k, c.N)
	s.Mul(s, kinv)
	s.Mod(s, c.N)
	securemem.WipeInt(kinv)
	if s.Sign() == 0 {
		return nil, nil
	}
	return r, s
}

// Verify reports whether sig is a valid signature of digest under public
// point q. Malformed input yields false.
func Verify(digest []byte, q curve.Point, sig *big.Int, c *curve.Params) bool {
	if c == nil || sig == nil || len(digest) == 0 {
		return false
	}
	r, s, ok := Split(sig, c)
	if !ok || !c.EmbeddedValid(q) {
		return false
	}

	e := new(big.Int).SetBytes(digest)
	e.Mod(e, c.N)

	w := new(big.Int).ModInverse(s, c.N)
	if w == nil {
		return false
	}
	u1 := new(big.Int).Mul(e, w)
	u1.Mod(u1, c.N)
	u2 := new(big.Int).Mul(r, w)
	u2.Mod(u2, c.N)

	x := c.Add(c.ScalarBaseMult(u1), c.ScalarMult(q, u2))
	if x.IsZero() {
		return false
	}
	v := new(big.Int).Mod(x.X, c.N)
	return v.Cmp(r) == 0
}

// Combine packs (r, s) as s·n + r.
func Combine(r, s *big.Int, c *curve.Params) *big.Int {
	sig := new(big.Int).Mul(s, c.N)
	return sig.Add(sig, r)
}

// Split unpacks a signature integer into r = sig mod n and s = sig / n and
// reports whether both lie in [1, n-1].
func Split(sig *big.Int, c *curve.Params) (r, s *big.Int, ok bool) {
	if sig.Sign() < 0 {
		return nil, nil, false
	}
	s, r = new(big.Int).QuoRem(sig, c.N, new(big.Int))
	if r.Sign() == 0 || s.Sign() == 0 || s.Cmp(c.N) >= 0 {
		return nil, nil, false
	}
	return r, s, true
}

// Encode renders sig in the Compact format.
func Encode(sig *big.Int, c *curve.Params) ([]byte, error) {
	return codec.Serialize(sig, c.SigLenCompact, codec.Compact)
}

// Decode parses a Compact signature of exactly SigLenCompact characters.
// Values of n² or more are rejected.
func Decode(text []byte, c *curve.Params) (*big.Int, error) {
	if len(text) != c.SigLenCompact {
		return nil, fmt.Errorf("%w: signature is %d characters, want %d", codec.ErrDeserialization, len(text), c.SigLenCompact)
	}
	limit := new(big.Int).Mul(c.N, c.N)
	return codec.DeserializeBounded(text, codec.Compact, limit)
}
