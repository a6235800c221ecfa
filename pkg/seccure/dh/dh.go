// Package dh implements the two-step seccure Diffie-Hellman exchange.
//
// Each party runs Step1 to obtain a private exponent and a public point,
// sends the point, and runs Step2 with the peer's point. The shared key is the
// leading DHLenBin bytes of SHA-512(X(P)) where P = (a·h)·B.
package dh

import (
	"crypto/sha512"
	"fmt"
	"io"
	"math/big"

	"github.com/hsiuhsiu/seccure-go/internal/errs"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/codec"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/curve"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/exponent"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/securemem"
)

// Step1 draws a private exponent and returns it with its public point.
func Step1(rand io.Reader, c *curve.Params) (*big.Int, curve.Point, error) {
	if c == nil {
		return nil, curve.Point{}, fmt.Errorf("%w: nil curve", errs.ErrInvalidArgument)
	}
	a, err := exponent.Random(rand, c)
	if err != nil {
		return nil, curve.Point{}, err
	}
	return a, c.ScalarBaseMult(a), nil
}

// Step2 combines the private exponent a with the peer point b and returns the
// DHLenBin-byte shared key.
func Step2(b curve.Point, a *big.Int, c *curve.Params) ([]byte, error) {
	if c == nil || a == nil || a.Sign() <= 0 || a.Cmp(c.N) >= 0 {
		return nil, fmt.Errorf("%w: dh needs exponent and curve", errs.ErrInvalidArgument)
	}
	if !c.FullValid(b) {
		return nil, fmt.Errorf("%w: peer key", curve.ErrInvalidPoint)
	}

	ah := new(big.Int).Mul(a, c.Cofactor)
	p := c.ScalarMult(b, ah)
	securemem.WipeInt(ah)
	if p.IsZero() {
		return nil, fmt.Errorf("%w: shared point at infinity", curve.ErrInvalidPoint)
	}

	x, err := codec.Serialize(p.X, c.ElemLenBin, codec.Binary)
	if err != nil {
		return nil, err
	}
	defer securemem.Wipe(x)
	h := sha512.Sum512(x)
	defer securemem.Wipe(h[:])

	key := make([]byte, c.DHLenBin)
	copy(key, h[:])
	return key, nil
}
