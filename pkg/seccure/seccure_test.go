package seccure

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/seccure-go/internal/backend"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/logging"
)

const (
	referencePassphrase = "my private key"
	referencePublicKey  = "8W;>i^H0qi|J&$coR5MFpR*Vn"
	referenceMessage    = "This message will be signed\n"
	referenceSignature  = "$HPI?t(I*1vAYsl$|%21WXND=6Br*[>k(OR9B!GOwHqL0s+3Uq"
)

func openSession(t *testing.T, curveName string) *Session {
	t.Helper()
	opts := DefaultOptions()
	opts.Curve = curveName
	opts.Logger = logging.Nop()
	s, err := NewSession(&opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type mapSource map[string]string

func (m mapSource) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func TestKeygenReferencePassphrase(t *testing.T) {
	s := openSession(t, "")
	kp, err := s.Keygen([]byte(referencePassphrase))
	require.NoError(t, err)
	defer kp.Free()

	assert.Equal(t, Both, kp.Kind())
	assert.Equal(t, referencePublicKey, string(kp.PublicKey()))
	assert.Equal(t, "secp160r1", kp.Curve().Name)
}

func TestNewKeyPairMatchesKeygen(t *testing.T) {
	s := openSession(t, "p160")
	priv, err := s.NewKeyPair(nil, []byte(referencePassphrase))
	require.NoError(t, err)
	defer priv.Free()
	assert.Equal(t, PrivateOnly, priv.Kind())
	assert.Nil(t, priv.PublicKey())

	pub, err := s.NewKeyPair([]byte(referencePublicKey), nil)
	require.NoError(t, err)
	defer pub.Free()
	assert.Equal(t, PublicOnly, pub.Kind())

	sig, err := s.Sign([]byte("hello"), priv)
	require.NoError(t, err)
	assert.True(t, s.Verify([]byte("hello"), sig.Bytes(), pub))
}

func TestVerifyReferenceSignature(t *testing.T) {
	s := openSession(t, "p160")
	pub, err := s.NewKeyPair([]byte(referencePublicKey), nil)
	require.NoError(t, err)
	defer pub.Free()

	assert.True(t, s.Verify([]byte(referenceMessage), []byte(referenceSignature), pub))
	assert.False(t, s.Verify([]byte("This message will be signed"), []byte(referenceSignature), pub))
	assert.False(t, s.Verify([]byte(referenceMessage), []byte(referenceSignature[:49]), pub))

	err = s.VerifySignature([]byte("tampered"), []byte(referenceSignature), pub)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestSignVerifyAcrossCurves(t *testing.T) {
	for _, name := range []string{"secp112r1", "p160", "p256", "brainpoolp384r1", "p521", "p256k1"} {
		t.Run(name, func(t *testing.T) {
			s := openSession(t, name)
			kp, err := s.Keygen(nil)
			require.NoError(t, err)
			defer kp.Free()

			msg := []byte("message for " + name)
			sig, err := s.Sign(msg, kp)
			require.NoError(t, err)
			assert.Equal(t, s.Curve().SigLenCompact, sig.Len())
			assert.True(t, s.Verify(msg, sig.Bytes(), kp))

			pub, err := s.NewKeyPair(kp.PublicKey(), nil)
			require.NoError(t, err)
			defer pub.Free()
			assert.True(t, s.Verify(msg, sig.Bytes(), pub))
			assert.False(t, s.Verify(append(msg, '!'), sig.Bytes(), pub))
		})
	}
}

func TestSignEmptyMessage(t *testing.T) {
	s := openSession(t, "p160")
	kp, err := s.Keygen([]byte("k"))
	require.NoError(t, err)
	defer kp.Free()

	sig, err := s.Sign([]byte{}, kp)
	require.NoError(t, err)
	assert.True(t, s.Verify([]byte{}, sig.Bytes(), kp))

	_, err = s.Sign(nil, kp)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEncryptDecrypt(t *testing.T) {
	s := openSession(t, "p160")
	kp, err := s.Keygen([]byte(referencePassphrase))
	require.NoError(t, err)
	defer kp.Free()
	pub, err := s.NewKeyPair([]byte(referencePublicKey), nil)
	require.NoError(t, err)
	defer pub.Free()

	msg := []byte("This message will be encrypted\n")
	env, err := s.Encrypt(msg, pub)
	require.NoError(t, err)
	defer env.Free()
	assert.Equal(t, len(msg)+s.Overhead(), env.Len())

	pt, err := s.Decrypt(env.Bytes(), kp)
	require.NoError(t, err)
	assert.Equal(t, msg, pt.Bytes())
	pt.Free()
	assert.Nil(t, pt.Bytes())

	tampered := env.Bytes()
	tampered[len(tampered)-1] ^= 0x80
	_, err = s.Decrypt(tampered, kp)
	assert.ErrorIs(t, err, ErrAuthentication)

	_, err = s.Decrypt(env.Bytes()[:s.Overhead()-1], kp)
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = s.Encrypt(nil, pub)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = s.Decrypt(nil, kp)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestKeyPairMissingHalf(t *testing.T) {
	s := openSession(t, "p160")

	_, err := s.NewKeyPair(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	priv, err := s.NewKeyPair(nil, []byte("secret"))
	require.NoError(t, err)
	defer priv.Free()
	_, err = s.Encrypt([]byte("x"), priv)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.False(t, s.Verify([]byte("x"), []byte(referenceSignature), priv))

	pub, err := s.NewKeyPair([]byte(referencePublicKey), nil)
	require.NoError(t, err)
	defer pub.Free()
	_, err = s.Sign([]byte("x"), pub)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = s.Decrypt(make([]byte, 64), pub)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestInvalidPublicKeyFailsAtUse(t *testing.T) {
	s := openSession(t, "p160")

	bad, err := s.NewKeyPair([]byte("8W;>i^H0qi|J&$coR5MFpR*V\""), nil)
	require.NoError(t, err)
	defer bad.Free()
	_, err = s.Encrypt([]byte("x"), bad)
	assert.ErrorIs(t, err, ErrDeserialization)

	short, err := s.NewKeyPair([]byte("8W;>i^H0qi"), nil)
	require.NoError(t, err)
	defer short.Free()
	_, err = s.Encrypt([]byte("x"), short)
	assert.ErrorIs(t, err, ErrDeserialization)
	assert.False(t, s.Verify([]byte(referenceMessage), []byte(referenceSignature), short))
}

func TestKeyPairBoundToCurve(t *testing.T) {
	a := openSession(t, "p160")
	b := openSession(t, "p256")

	kp, err := a.Keygen(nil)
	require.NoError(t, err)
	defer kp.Free()

	_, err = b.Sign([]byte("x"), kp)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFreedKeyPair(t *testing.T) {
	s := openSession(t, "p160")
	kp, err := s.Keygen(nil)
	require.NoError(t, err)

	kp.Free()
	kp.Free()
	FreeKeyPair(nil)
	assert.Nil(t, kp.PublicKey())

	_, err = s.Sign([]byte("x"), kp)
	assert.ErrorIs(t, err, ErrKeyReleased)
}

func TestUnknownCurve(t *testing.T) {
	opts := Options{Curve: "curve25519", Logger: logging.Nop()}
	s, err := NewSession(&opts)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrUnknownCurve)

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "NewSession", e.Op)
}

func TestClosedSession(t *testing.T) {
	opts := DefaultOptions()
	opts.Logger = logging.Nop()
	s, err := NewSession(&opts)
	require.NoError(t, err)
	kp, err := s.Keygen(nil)
	require.NoError(t, err)

	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Close(), ErrSessionClosed)
	assert.Nil(t, s.Curve())

	_, err = s.Keygen(nil)
	assert.ErrorIs(t, err, ErrUninitializedSession)
	_, err = s.NewKeyPair(nil, []byte("x"))
	assert.ErrorIs(t, err, ErrUninitializedSession)
	_, err = s.Sign([]byte("x"), kp)
	assert.ErrorIs(t, err, ErrUninitializedSession)
	_, err = s.Encrypt([]byte("x"), kp)
	assert.ErrorIs(t, err, ErrUninitializedSession)
	_, err = s.Decrypt([]byte("x"), kp)
	assert.ErrorIs(t, err, ErrUninitializedSession)
	assert.ErrorIs(t, s.VerifySignature([]byte("x"), []byte("y"), kp), ErrUninitializedSession)
	_, err = s.NewKeyAgreement()
	assert.ErrorIs(t, err, ErrUninitializedSession)

	var nilSession *Session
	assert.NoError(t, FreeSession(nilSession))
	_, err = nilSession.Keygen(nil)
	assert.ErrorIs(t, err, ErrUninitializedSession)
	assert.False(t, nilSession.Verify(nil, nil, nil))
}

func TestSessionsShareBackend(t *testing.T) {
	base := backend.Default().Refs()

	a := openSession(t, "p160")
	b := openSession(t, "p256")
	assert.Equal(t, base+2, backend.Default().Refs())

	kp, err := a.Keygen([]byte("survives"))
	require.NoError(t, err)
	defer kp.Free()

	require.NoError(t, b.Close())
	assert.Equal(t, base+1, backend.Default().Refs())

	sig, err := a.Sign([]byte("x"), kp)
	require.NoError(t, err, "closing one session must not disturb another")
	assert.True(t, a.Verify([]byte("x"), sig.Bytes(), kp))

	require.NoError(t, a.Close())
	assert.Equal(t, base, backend.Default().Refs())
}

func TestInsecureRandomSession(t *testing.T) {
	opts := Options{Curve: "p192", SecureRandom: false, Logger: logging.Nop()}
	s, err := NewSession(&opts)
	require.NoError(t, err)
	defer s.Close()

	kp, err := s.Keygen(nil)
	require.NoError(t, err)
	defer kp.Free()
	env, err := s.Encrypt([]byte("frand"), kp)
	require.NoError(t, err)
	pt, err := s.Decrypt(env.Bytes(), kp)
	require.NoError(t, err)
	assert.Equal(t, "frand", pt.String())
}

func TestKeyAgreement(t *testing.T) {
	s := openSession(t, "p256")

	alice, err := s.NewKeyAgreement()
	require.NoError(t, err)
	defer alice.Free()
	bob, err := s.NewKeyAgreement()
	require.NoError(t, err)
	defer bob.Free()

	k1, err := alice.Finish(bob.PublicKey())
	require.NoError(t, err)
	k2, err := bob.Finish(alice.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, k1.Bytes(), k2.Bytes())
	assert.Equal(t, s.Curve().DHLenCompact, k1.Len())

	_, err = alice.Finish([]byte("not a key"))
	assert.ErrorIs(t, err, ErrDeserialization)

	alice.Free()
	_, err = alice.Finish(bob.PublicKey())
	assert.ErrorIs(t, err, ErrKeyReleased)
}

func TestDetectCurve(t *testing.T) {
	name, err := DetectCurve([]byte(referencePublicKey))
	require.NoError(t, err)
	assert.Equal(t, "secp160r1", name)

	_, err = DetectCurve([]byte("abc"))
	assert.ErrorIs(t, err, ErrUnknownCurve)
	assert.Contains(t, Curves(), "brainpoolp512r1")
}

func TestOptionsFromEnv(t *testing.T) {
	opts, err := OptionsFromEnv(mapSource{})
	require.NoError(t, err)
	assert.Equal(t, DefaultCurve, opts.Curve)
	assert.True(t, opts.SecureRandom)

	opts, err = OptionsFromEnv(mapSource{"SECCURE_CURVE": "p384", "SECCURE_SECURE_RANDOM": "false"})
	require.NoError(t, err)
	assert.Equal(t, "p384", opts.Curve)
	assert.False(t, opts.SecureRandom)

	_, err = OptionsFromEnv(mapSource{"SECCURE_SECURE_RANDOM": "sometimes"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestConcurrentOperations(t *testing.T) {
	s := openSession(t, "p160")
	kp, err := s.Keygen(nil)
	require.NoError(t, err)
	defer kp.Free()
	pub, err := s.NewKeyPair(kp.PublicKey(), nil)
	require.NoError(t, err)
	defer pub.Free()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			msg := bytes.Repeat([]byte{byte(i)}, i+1)
			sig, err := s.Sign(msg, kp)
			if !assert.NoError(t, err) {
				return
			}
			assert.True(t, s.Verify(msg, sig.Bytes(), pub))

			env, err := s.Encrypt(msg, pub)
			if !assert.NoError(t, err) {
				return
			}
			pt, err := s.Decrypt(env.Bytes(), kp)
			if assert.NoError(t, err) {
				assert.Equal(t, msg, pt.Bytes())
			}
		}(i)
	}
	wg.Wait()
}

func TestDataOwnership(t *testing.T) {
	src := []byte("abc")
	d := NewData(src)
	src[0] = 'x'
	assert.Equal(t, "abc", d.String())

	out := d.Bytes()
	out[0] = 'y'
	assert.Equal(t, "abc", d.String())

	FreeData(d)
	d.Free()
	assert.Equal(t, 0, d.Len())
	FreeData(nil)

	pass := []byte("passphrase")
	ZeroizeBytes(pass)
	assert.Equal(t, make([]byte, 10), pass)
}

func TestKeyKindString(t *testing.T) {
	assert.Equal(t, "private-only", PrivateOnly.String())
	assert.Equal(t, "public-only", PublicOnly.String())
	assert.Equal(t, "both", Both.String())
	assert.Equal(t, "KeyKind(9)", KeyKind(9).String())
}
