package ecies

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha512"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/minio/sha256-simd"

	"github.com/hsiuhsiu/seccure-go/internal/errs"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/codec"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/curve"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/exponent"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/securemem"
)

const (
	// MACLen is the length of the truncated authentication tag.
	MACLen = 10

	cipherKeyLen = 32
	keyBlockLen  = sha512.Size

	maxEphemeralAttempts = 64
)

var (
	// ErrTruncated reports an envelope shorter than Overhead.
	ErrTruncated = errors.New("seccure: envelope truncated")

	// ErrAuthentication reports an envelope whose tag does not match.
	ErrAuthentication = errors.New("seccure: envelope authentication failed")
)

// Overhead returns the number of bytes an envelope adds to its plaintext.
func Overhead(c *curve.Params) int {
	return c.PKLenBin + MACLen
}

// Encrypt seals plaintext for the public point q. Key material is held in
// mem, which may be nil.
func Encrypt(rand io.Reader, plaintext []byte, q curve.Point, c *curve.Params, mem *securemem.Pool) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil curve", errs.ErrInvalidArgument)
	}
	if !c.FullValid(q) {
		return nil, fmt.Errorf("%w: recipient key", curve.ErrInvalidPoint)
	}

	for i := 0; i < maxEphemeralAttempts; i++ {
		k, err := exponent.Random(rand, c)
		if err != nil {
			return nil, err
		}
		R := c.ScalarBaseMult(k)
		k.Mul(k, c.Cofactor)
		Z := c.ScalarMult(q, k)
		securemem.WipeInt(k)
		if Z.IsZero() {
			continue
		}
		return seal(plaintext, R, Z, c, mem)
	}
	return nil, fmt.Errorf("%w: no usable ephemeral key", exponent.ErrRandomExhausted)
}

func seal(plaintext []byte, R, Z curve.Point, c *curve.Params, mem *securemem.Pool) ([]byte, error) {
	keys := mem.Acquire(keyBlockLen)
	defer keys.Release()
	if err := deriveKeys(keys.Bytes(), R, Z, c); err != nil {
		return nil, err
	}

	rEnc, err := c.EncodePoint(R, codec.Binary)
	if err != nil {
		return nil, err
	}

	out := make([]byte, c.PKLenBin+len(plaintext)+MACLen)
	copy(out, rEnc)
	body := out[c.PKLenBin : c.PKLenBin+len(plaintext)]
	if err := xorKeyStream(body, plaintext, keys.Bytes()[:cipherKeyLen]); err != nil {
		return nil, err
	}
	copy(out[c.PKLenBin+len(plaintext):], tag(body, keys.Bytes()[cipherKeyLen:]))
	return out, nil
}

// Decrypt opens an envelope with exponent d.
func Decrypt(envelope []byte, d *big.Int, c *curve.Params, mem *securemem.Pool) ([]byte, error) {
	if c == nil || d == nil || d.Sign() <= 0 || d.Cmp(c.N) >= 0 {
		return nil, fmt.Errorf("%w: ecies decrypt needs exponent and curve", errs.ErrInvalidArgument)
	}
	if len(envelope) < Overhead(c) {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrTruncated, len(envelope), Overhead(c))
	}

	R, err := c.DecodePoint(envelope[:c.PKLenBin], codec.Binary)
	if err != nil {
		return nil, err
	}
	if !c.EmbeddedValid(R) {
		return nil, fmt.Errorf("%w: ephemeral key", curve.ErrInvalidPoint)
	}

	dh := new(big.Int).Mul(d, c.Cofactor)
	Z := c.ScalarMult(R, dh)
	securemem.WipeInt(dh)
	if Z.IsZero() {
		return nil, fmt.Errorf("%w: shared point at infinity", curve.ErrInvalidPoint)
	}

	keys := mem.Acquire(keyBlockLen)
	defer keys.Release()
	if err := deriveKeys(keys.Bytes(), R, Z, c); err != nil {
		return nil, err
	}

	bodyEnd := len(envelope) - MACLen
	body := envelope[c.PKLenBin:bodyEnd]
	if !hmac.Equal(tag(body, keys.Bytes()[cipherKeyLen:]), envelope[bodyEnd:]) {
		return nil, ErrAuthentication
	}

	plaintext := make([]byte, len(body))
	if err := xorKeyStream(plaintext, body, keys.Bytes()[:cipherKeyLen]); err != nil {
		return nil, err
	}
	return plaintext, nil
}

// deriveKeys fills dst with SHA-512(X(Z) ‖ X(R) ‖ Y(R)).
func deriveKeys(dst []byte, R, Z curve.Point, c *curve.Params) error {
	h := sha512.New()
	for _, v := range []*big.Int{Z.X, R.X, R.Y} {
		b, err := codec.Serialize(v, c.ElemLenBin, codec.Binary)
		if err != nil {
			return err
		}
		h.Write(b)
		securemem.Wipe(b)
	}
	h.Sum(dst[:0])
	return nil
}

func xorKeyStream(dst, src, key []byte) error {
	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrCryptoBackend, err)
	}
	cipher.NewCTR(block, make([]byte, aes.BlockSize)).XORKeyStream(dst, src)
	return nil
}

func tag(body, key []byte) []byte {
	m := hmac.New(sha256.New, key)
	m.Write(body)
	return m.Sum(nil)[:MACLen]
}
