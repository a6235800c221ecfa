package exponent

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/minio/sha256-simd"

	"github.com/hsiuhsiu/seccure-go/internal/errs"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/curve"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/securemem"
)

// DigestSize is the size of the digest FromDigest expects.
const DigestSize = sha256.Size

// maxAttempts bounds rejection sampling in Random. For every registered curve
// a single draw is accepted with probability above 1/2.
const maxAttempts = 128

// ErrRandomExhausted is returned when Random keeps drawing out-of-range
// values.
var ErrRandomExhausted = errors.New("seccure: random exponent sampling exhausted")

// Hash derives the exponent for secret on curve c. Intermediate material is
// held in mem, which may be nil.
func Hash(secret []byte, c *curve.Params, mem *securemem.Pool) (*big.Int, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil curve", errs.ErrInvalidArgument)
	}
	digest := mem.Acquire(DigestSize)
	defer digest.Release()

	h := sha256.Sum256(secret)
	copy(digest.Bytes(), h[:])
	securemem.Wipe(h[:])

	return FromDigest(digest.Bytes(), c, mem)
}

// FromDigest expands a 32-byte digest with AES-256-CTR and reduces it into
// [1, n-1].
func FromDigest(digest []byte, c *curve.Params, mem *securemem.Pool) (*big.Int, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil curve", errs.ErrInvalidArgument)
	}
	if len(digest) != DigestSize {
		return nil, fmt.Errorf("%w: digest is %d bytes, want %d", errs.ErrInvalidArgument, len(digest), DigestSize)
	}

	block, err := aes.NewCipher(digest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCryptoBackend, err)
	}
	stream := cipher.NewCTR(block, make([]byte, aes.BlockSize))

	buf := mem.Acquire(c.OrderLenBin)
	defer buf.Release()
	stream.XORKeyStream(buf.Bytes(), buf.Bytes())

	return FromBytes(buf.Bytes(), c), nil
}

// FromBytes reads buf as a big-endian integer v and returns v mod (n-1) + 1.
func FromBytes(buf []byte, c *curve.Params) *big.Int {
	v := new(big.Int).SetBytes(buf)
	nm1 := new(big.Int).Sub(c.N, big.NewInt(1))
	v.Mod(v, nm1)
	return v.Add(v, big.NewInt(1))
}

// Random draws a uniform exponent in [1, n-1] from rand.
func Random(rand io.Reader, c *curve.Params) (*big.Int, error) {
	if rand == nil || c == nil {
		return nil, fmt.Errorf("%w: nil random source or curve", errs.ErrInvalidArgument)
	}
	bits := c.N.BitLen()
	buf := make([]byte, (bits+7)/8)
	defer securemem.Wipe(buf)
	mask := byte(0xff >> uint(8*len(buf)-bits))

	k := new(big.Int)
	for i := 0; i < maxAttempts; i++ {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, fmt.Errorf("%w: read random: %v", errs.ErrCryptoBackend, err)
		}
		buf[0] &= mask
		k.SetBytes(buf)
		if k.Sign() > 0 && k.Cmp(c.N) < 0 {
			return k, nil
		}
	}
	securemem.WipeInt(k)
	return nil, ErrRandomExhausted
}
