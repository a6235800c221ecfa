package ecies

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"

	"github.com/hsiuhsiu/seccure-go/internal/errs"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/codec"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/curve"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/exponent"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/logging"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/securemem"
)

const (
	referenceExponent = "be77c99b7f6acd6d86d664d556413ae694946f5c"
	referenceMessage  = "This message will be encrypted\n"

	// Envelope for referenceMessage under the p160 reference key with the
	// ephemeral exponent 0x1234567890abcdef1234567890abcdef.
	referenceEnvelope = "00ee394683700ad6f6c4e01115af546c1ee09fa025ef4406b0e645780fa212ea832ee14ed6d8d22150598acfd30642c0ac971cd37bdfc8dbaf38a18a7196"
)

func byName(t *testing.T, name string) *curve.Params {
	t.Helper()
	c, err := curve.ByName(name)
	require.NoError(t, err)
	return c
}

func referenceKey(t *testing.T) (*curve.Params, *big.Int, curve.Point) {
	t.Helper()
	c := byName(t, "p160")
	d, ok := new(big.Int).SetString(referenceExponent, 16)
	require.True(t, ok)
	return c, d, c.ScalarBaseMult(d)
}

func testRNG() *frand.RNG {
	seed := sha256.Sum256([]byte("ecies tests"))
	return frand.NewCustom(seed[:], 64, 12)
}

func TestEncryptMatchesReferenceEnvelope(t *testing.T) {
	c, d, q := referenceKey(t)

	k, _ := new(big.Int).SetString("1234567890abcdef1234567890abcdef", 16)
	kbuf := make([]byte, c.OrderLenBin)
	k.FillBytes(kbuf)

	env, err := Encrypt(bytes.NewReader(kbuf), []byte(referenceMessage), q, c, nil)
	require.NoError(t, err)
	assert.Equal(t, referenceEnvelope, hex.EncodeToString(env))
	assert.Len(t, env, len(referenceMessage)+Overhead(c))

	pt, err := Decrypt(env, d, c, nil)
	require.NoError(t, err)
	assert.Equal(t, referenceMessage, string(pt))
}

func TestRoundTrip(t *testing.T) {
	rng := testRNG()
	pool := securemem.NewDefaultPool(logging.Nop())
	defer pool.Close()

	for _, name := range []string{"secp112r1", "p160", "secp256r1", "brainpoolp384r1", "secp521r1", "secp256k1"} {
		t.Run(name, func(t *testing.T) {
			c := byName(t, name)
			d, err := exponent.Random(rng, c)
			require.NoError(t, err)
			q := c.ScalarBaseMult(d)

			for _, size := range []int{0, 1, 15, 16, 17, 1000} {
				msg := frand.Bytes(size)
				env, err := Encrypt(rng, msg, q, c, pool)
				require.NoError(t, err)
				require.Len(t, env, size+Overhead(c))

				got, err := Decrypt(env, d, c, pool)
				require.NoError(t, err)
				assert.True(t, bytes.Equal(msg, got))
			}
		})
	}
	assert.Equal(t, securemem.DefaultSlots, pool.Available())
}

func TestEncryptIsRandomized(t *testing.T) {
	c, _, q := referenceKey(t)
	rng := testRNG()
	a, err := Encrypt(rng, []byte("same"), q, c, nil)
	require.NoError(t, err)
	b, err := Encrypt(rng, []byte("same"), q, c, nil)
	require.NoError(t, err)
	assert.False(t, bytes.Equal(a, b))
}

func TestDecryptRejectsTampering(t *testing.T) {
	c, d, _ := referenceKey(t)
	env, err := hex.DecodeString(referenceEnvelope)
	require.NoError(t, err)

	for _, i := range []int{c.PKLenBin, c.PKLenBin + 5, len(env) - MACLen - 1, len(env) - 1} {
		bad := bytes.Clone(env)
		bad[i] ^= 0x01
		_, err := Decrypt(bad, d, c, nil)
		assert.ErrorIs(t, err, ErrAuthentication, "flipped byte %d", i)
	}

	bad := bytes.Clone(env)
	bad[3] ^= 0x40
	_, err = Decrypt(bad, d, c, nil)
	assert.Error(t, err, "altered ephemeral key")
}

func TestDecryptWrongKey(t *testing.T) {
	c, _, _ := referenceKey(t)
	env, err := hex.DecodeString(referenceEnvelope)
	require.NoError(t, err)

	other, err := exponent.Hash([]byte("not my key"), c, nil)
	require.NoError(t, err)
	_, err = Decrypt(env, other, c, nil)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestDecryptTruncated(t *testing.T) {
	c, d, _ := referenceKey(t)
	env, err := hex.DecodeString(referenceEnvelope)
	require.NoError(t, err)

	_, err = Decrypt(env[:Overhead(c)-1], d, c, nil)
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = Decrypt(env[:len(env)-1], d, c, nil)
	assert.ErrorIs(t, err, ErrAuthentication)

	_, err = Decrypt(nil, d, c, nil)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecryptRejectsInvalidEphemeral(t *testing.T) {
	c, d, _ := referenceKey(t)
	env := make([]byte, Overhead(c)+4)

	// x = 1 is not the x coordinate of any secp160r1 point.
	env[c.PKLenBin-1] = 1
	_, err := Decrypt(env, d, c, nil)
	assert.ErrorIs(t, err, curve.ErrInvalidPoint)

	// Above 2p is not an encoding at all.
	for i := 0; i < c.PKLenBin; i++ {
		env[i] = 0xff
	}
	_, err = Decrypt(env, d, c, nil)
	assert.ErrorIs(t, err, codec.ErrDeserialization)
}

func TestEncryptRejectsInvalidRecipient(t *testing.T) {
	c, _, _ := referenceKey(t)
	rng := testRNG()

	_, err := Encrypt(rng, []byte("x"), curve.Infinity(), c, nil)
	assert.ErrorIs(t, err, curve.ErrInvalidPoint)

	off := curve.Point{X: big.NewInt(1), Y: big.NewInt(1)}
	_, err = Encrypt(rng, []byte("x"), off, c, nil)
	assert.ErrorIs(t, err, curve.ErrInvalidPoint)

	_, err = Encrypt(rng, []byte("x"), c.G, nil, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestCofactorCurveRejectsSmallSubgroupRecipient(t *testing.T) {
	toy, err := curve.New(curve.Definition{Name: "toy1019", P: "3fb", A: "1", B: "1", Gx: "a", Gy: "219", N: "107", H: 4})
	require.NoError(t, err)

	torsion := curve.Point{X: big.NewInt(467), Y: big.NewInt(0)}
	_, err = Encrypt(testRNG(), []byte("x"), torsion, toy, nil)
	assert.ErrorIs(t, err, curve.ErrInvalidPoint)
}
